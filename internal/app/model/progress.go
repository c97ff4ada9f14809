package model

// Step identifies one screen of the contract wizard.
type Step string

const (
	StepCustomerInfo         Step = "customer-info"         // customer identity
	StepInstallationLocation Step = "installation-location" // installation address
	StepTechnicalConfig      Step = "technical-config"      // equipment list
	StepFinancialTerms       Step = "financial-terms"       // payment terms
	StepReview               Step = "review"                // final review
)

// StepOrder is the canonical wizard sequence.
var StepOrder = []Step{
	StepCustomerInfo,
	StepInstallationLocation,
	StepTechnicalConfig,
	StepFinancialTerms,
	StepReview,
}

// Valid reports whether s is a known wizard step.
func (s Step) Valid() bool {
	return stepIndex(s) >= 0
}

func stepIndex(s Step) int {
	for i, step := range StepOrder {
		if step == s {
			return i
		}
	}
	return -1
}

// NextStep returns the step after s. The last step has no successor and
// returns itself.
func NextStep(s Step) Step {
	idx := stepIndex(s)
	if idx < 0 || idx == len(StepOrder)-1 {
		return s
	}
	return StepOrder[idx+1]
}

// StepSet is the set of completed steps.
type StepSet map[Step]bool

func (s StepSet) Add(step Step) {
	s[step] = true
}

func (s StepSet) Has(step Step) bool {
	return s[step]
}

// Ordered returns the contained steps in wizard order.
func (s StepSet) Ordered() []Step {
	out := make([]Step, 0, len(s))
	for _, step := range StepOrder {
		if s.Has(step) {
			out = append(out, step)
		}
	}
	return out
}

// FormAggregate is the working copy of all wizard data for one session. Sub
// entities carry their database IDs once persisted, so a later save in the
// same session updates instead of inserting.
type FormAggregate struct {
	Customer  *Customer             `json:"customer,omitempty"`  // customer-info step
	Location  *InstallationLocation `json:"location,omitempty"`  // installation-location step
	Technical *TechnicalConfig      `json:"technical,omitempty"` // technical-config step
	Financial *FinancialTerms       `json:"financial,omitempty"` // financial-terms step
}

// CustomerID returns the persisted customer id held by the session, if any.
func (a *FormAggregate) CustomerID() (uint, bool) {
	if a.Customer == nil || a.Customer.ID == 0 {
		return 0, false
	}
	return a.Customer.ID, true
}

// FormProgress is the wizard session state. It is what the progress store
// serializes between requests.
type FormProgress struct {
	CurrentStep    Step          `json:"current_step"`    // step the operator is on
	CompletedSteps StepSet       `json:"completed_steps"` // steps saved at least once
	Data           FormAggregate `json:"data"`            // working data
}

// NewFormProgress returns a fresh session positioned on the first step.
func NewFormProgress() *FormProgress {
	return &FormProgress{
		CurrentStep:    StepCustomerInfo,
		CompletedSteps: StepSet{},
	}
}

// StartNew discards all session state and restarts at the first step.
func (p *FormProgress) StartNew() {
	p.CurrentStep = StepCustomerInfo
	p.CompletedSteps = StepSet{}
	p.Data = FormAggregate{}
}

// AdvanceCustomer records a saved customer-info step and moves forward.
func (p *FormProgress) AdvanceCustomer(customer *Customer) {
	p.Data.Customer = customer
	p.complete(StepCustomerInfo)
}

// AdvanceLocation records a saved installation-location step and moves forward.
func (p *FormProgress) AdvanceLocation(location *InstallationLocation) {
	p.Data.Location = location
	p.complete(StepInstallationLocation)
}

// AdvanceTechnical records a saved technical-config step and moves forward.
func (p *FormProgress) AdvanceTechnical(technical *TechnicalConfig) {
	p.Data.Technical = technical
	p.complete(StepTechnicalConfig)
}

// AdvanceFinancial records a saved financial-terms step and moves forward.
func (p *FormProgress) AdvanceFinancial(financial *FinancialTerms) {
	p.Data.Financial = financial
	p.complete(StepFinancialTerms)
}

func (p *FormProgress) complete(step Step) {
	if p.CompletedSteps == nil {
		p.CompletedSteps = StepSet{}
	}
	p.CompletedSteps.Add(step)
	p.CurrentStep = NextStep(step)
}

// GoTo moves the session to target when the step gate allows it. It reports
// whether the move happened; a rejected move leaves the session untouched.
func (p *FormProgress) GoTo(target Step) bool {
	if !CanNavigate(target, p.CurrentStep, p.CompletedSteps) {
		return false
	}
	p.CurrentStep = target
	return true
}

// Resume replaces the session data with a persisted record and recomputes
// which steps count as completed from the sub entities present. The session
// is positioned back on the first step so the operator can walk the record.
func (p *FormProgress) Resume(data FormAggregate) {
	p.Data = data
	p.CompletedSteps = StepSet{StepCustomerInfo: true}
	if data.Location != nil {
		p.CompletedSteps.Add(StepInstallationLocation)
	}
	if data.Technical != nil {
		p.CompletedSteps.Add(StepTechnicalConfig)
	}
	if data.Financial != nil {
		p.CompletedSteps.Add(StepFinancialTerms)
	}
	p.CurrentStep = StepCustomerInfo
}

// CanNavigate is the wizard step gate. A move is allowed when the target is
// the current step, an already completed step, or the immediate successor of
// a completed current step. Everything else is locked.
func CanNavigate(target, current Step, completed StepSet) bool {
	if !target.Valid() || !current.Valid() {
		return false
	}
	if target == current {
		return true
	}
	if completed.Has(target) {
		return true
	}
	if completed.Has(current) && NextStep(current) == target {
		return true
	}
	return false
}
