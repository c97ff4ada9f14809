package model

import (
	"time"

	"github.com/ecoenergi/meu-contrato-solar/pkg/util"
	"gorm.io/gorm"
)

// Cents is a monetary amount in centavos. Contract values are exact sums, so
// they are stored as integers rather than floats.
type Cents int64

// BRL renders the amount as a pt-BR currency string, e.g. "1.000,00".
func (c Cents) BRL() string {
	return util.FormatBRL(int64(c))
}

type PaymentMethod string // how one installment is paid

const (
	PaymentTransfer  PaymentMethod = "Transferência" // bank transfer
	PaymentBoleto    PaymentMethod = "Boleto"        // bank slip
	PaymentPix       PaymentMethod = "Pix"           // instant payment
	PaymentFinancing PaymentMethod = "Financiamento" // bank financing
)

// FinancialTerms holds the payment terms for a customer's contract. A
// customer has at most one. A single payment is a schedule with exactly one
// installment; TotalCents is always the exact sum of the installment amounts
// and is never taken from the client.
type FinancialTerms struct {
	ID         uint           `gorm:"primarykey" json:"id"`                    // terms ID
	CustomerID uint           `gorm:"not null;uniqueIndex" json:"customer_id"` // owning customer
	TotalCents Cents          `gorm:"not null" json:"total_cents"`             // contract total in centavos, derived
	Notes      string         `gorm:"type:text" json:"notes,omitempty"`        // free-form remarks
	CreatedAt  time.Time      `json:"created_at"`                              // creation time
	UpdatedAt  time.Time      `json:"updated_at"`                              // last update time
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                          // soft delete time

	Installments []Installment `gorm:"foreignKey:FinancialTermsID;constraint:OnDelete:CASCADE" json:"installments,omitempty"` // ordered by Number
}

func (FinancialTerms) TableName() string {
	return "financial_terms"
}

// Installment is one scheduled payment within FinancialTerms. Each carries
// its own payment method.
type Installment struct {
	ID               uint          `gorm:"primarykey" json:"id"`                     // installment ID
	FinancialTermsID uint          `gorm:"not null;index" json:"financial_terms_id"` // owning terms
	Number           int           `gorm:"not null" json:"number"`                   // 1-based position
	Method           PaymentMethod `gorm:"type:varchar(30);not null" json:"method"`  // payment method
	AmountCents      Cents         `gorm:"not null" json:"amount_cents"`             // amount in centavos
	DueDate          time.Time     `gorm:"not null" json:"due_date"`                 // payment due date
	CreatedAt        time.Time     `json:"created_at"`                               // creation time
}

func (Installment) TableName() string {
	return "installments"
}

// RecomputeTotal overwrites TotalCents with the exact cent sum of the
// installment amounts, whatever the caller put there.
func (f *FinancialTerms) RecomputeTotal() {
	var total Cents
	for _, inst := range f.Installments {
		total += inst.AmountCents
	}
	f.TotalCents = total
}

// IsSinglePayment reports whether the schedule is one installment.
func (f *FinancialTerms) IsSinglePayment() bool {
	return len(f.Installments) == 1
}
