package document

import (
	"fmt"
	"strings"

	"github.com/ecoenergi/meu-contrato-solar/internal/app/model"
	"github.com/ecoenergi/meu-contrato-solar/pkg/util"
)

// CompanyInfo identifies the contractor printed on every document.
type CompanyInfo struct {
	Name           string // legal name
	TaxID          string // CNPJ, digits only
	Address        string // head office address
	Representative string // legal representative name
	RepTaxID       string // representative CPF, digits only
}

// maritalStatusPT translates the stored civil status for print.
func maritalStatusPT(status *model.MaritalStatus) string {
	if status == nil {
		return ""
	}
	switch *status {
	case model.MaritalSingle:
		return "solteiro(a)"
	case model.MaritalMarried:
		return "casado(a)"
	case model.MaritalDivorced:
		return "divorciado(a)"
	case model.MaritalWidowed:
		return "viúvo(a)"
	default:
		return string(*status)
	}
}

func mountTypePT(t model.MountType, other string) string {
	switch t {
	case model.MountRoof:
		return "telhado"
	case model.MountGround:
		return "solo"
	case model.MountOther:
		if other != "" {
			return other
		}
		return "estrutura especial"
	default:
		return string(t)
	}
}

// formatKWP renders system power with two decimals and a comma, e.g. "11,10".
func formatKWP(kwp float64) string {
	return strings.Replace(fmt.Sprintf("%.2f", kwp), ".", ",", 1)
}

// contractorClause is the fixed CONTRATADA qualification paragraph.
func contractorClause(company CompanyInfo) string {
	clause := fmt.Sprintf(
		"CONTRATADA: %s, pessoa jurídica de direito privado, inscrita no CNPJ sob o nº %s, com sede em %s",
		company.Name, util.FormatTaxID(company.TaxID), company.Address,
	)
	if company.Representative != "" {
		clause += fmt.Sprintf(", neste ato representada por %s", company.Representative)
		if company.RepTaxID != "" {
			clause += fmt.Sprintf(", inscrito(a) no CPF sob o nº %s", util.FormatTaxID(company.RepTaxID))
		}
	}
	return clause + ", doravante denominada simplesmente CONTRATADA."
}

// contractingPartyClause qualifies the CONTRATANTE from the customer record.
func contractingPartyClause(customer *model.Customer, address string) string {
	if customer.IsCompany() {
		clause := fmt.Sprintf(
			"CONTRATANTE: %s, pessoa jurídica de direito privado, inscrita no CNPJ sob o nº %s",
			customer.FullName, util.FormatTaxID(customer.TaxID),
		)
		if address != "" {
			clause += fmt.Sprintf(", com sede em %s", address)
		}
		return clause + ", doravante denominada simplesmente CONTRATANTE."
	}

	parts := []string{customer.FullName}
	if customer.Nationality != "" {
		parts = append(parts, customer.Nationality)
	}
	if ms := maritalStatusPT(customer.MaritalStatus); ms != "" {
		parts = append(parts, ms)
	}
	if customer.Profession != "" {
		parts = append(parts, customer.Profession)
	}
	clause := fmt.Sprintf(
		"CONTRATANTE: %s, inscrito(a) no CPF sob o nº %s",
		strings.Join(parts, ", "), util.FormatTaxID(customer.TaxID),
	)
	if customer.RG != "" {
		clause += fmt.Sprintf(", portador(a) do RG nº %s", customer.RG)
		if customer.IssuingAuthority != "" {
			clause += " " + customer.IssuingAuthority
		}
	}
	if address != "" {
		clause += fmt.Sprintf(", residente e domiciliado(a) em %s", address)
	}
	return clause + ", doravante denominado(a) simplesmente CONTRATANTE."
}

// paymentClause builds the payment narrative. Exactly one installment reads
// as a single-payment sentence; a longer schedule enumerates every parcela
// with its method, amount and due date.
func paymentClause(terms *model.FinancialTerms) string {
	total := fmt.Sprintf("R$ %s", terms.TotalCents.BRL())

	if len(terms.Installments) == 0 {
		// Legacy rows without a schedule still render.
		return fmt.Sprintf(
			"O valor total dos serviços e equipamentos objeto deste contrato é de %s.",
			total,
		)
	}

	if terms.IsSinglePayment() {
		inst := terms.Installments[0]
		return fmt.Sprintf(
			"O valor total dos serviços e equipamentos objeto deste contrato é de %s, em pagamento único a ser pago via %s, com vencimento em %s.",
			total, inst.Method, util.FormatDate(inst.DueDate),
		)
	}

	var b strings.Builder
	fmt.Fprintf(&b,
		"O valor total dos serviços e equipamentos objeto deste contrato é de %s, a ser pago pela CONTRATANTE em %d parcela(s): ",
		total, len(terms.Installments),
	)
	for i, inst := range terms.Installments {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "Parcela %d: R$ %s via %s, com vencimento em %s",
			inst.Number, inst.AmountCents.BRL(), inst.Method, util.FormatDate(inst.DueDate))
	}
	b.WriteString(".")
	return b.String()
}

// equipmentItems lists the supplied equipment, one entry per bullet line.
func equipmentItems(cfg *model.TechnicalConfig) []string {
	items := []string{fmt.Sprintf(
		"%d Inversor(es) %s de %s kW de Potência de Saída, com garantia de %d ano(s)",
		cfg.Inverter1Quantity, cfg.Inverter1Brand, formatKWP(cfg.Inverter1PowerKW), cfg.Inverter1WarrantyYears,
	)}
	if second := cfg.SecondaryInverter(); second != nil {
		item := fmt.Sprintf("%d Inversor(es) %s de %s kW de Potência de Saída",
			second.Quantity, second.Brand, formatKWP(second.PowerKW))
		if second.WarrantyYears > 0 {
			item += fmt.Sprintf(", com garantia de %d ano(s)", second.WarrantyYears)
		}
		items = append(items, item)
	}
	items = append(items, fmt.Sprintf(
		"%d Módulo(s) Solar(es) %s de %d W de Potência",
		cfg.ModuleQuantity, cfg.ModuleBrand, cfg.ModulePowerW,
	))
	items = append(items, fmt.Sprintf(
		"Estrutura para fixação dos módulos instalados em %s",
		mountTypePT(cfg.MountType, cfg.MountTypeOther),
	))
	return items
}

// Fixed clauses.

const delinquencyClause = "Em caso de inadimplemento de qualquer parcela, incidirão sobre o valor devido multa moratória de 2% (dois por cento) e juros de mora de 3% (três por cento) ao mês, calculados pro rata die, sem prejuízo da correção monetária e da suspensão dos serviços até a regularização do débito."

const warrantyClause = "Os equipamentos fornecidos possuem garantia de fábrica conforme os prazos informados pelos respectivos fabricantes. A CONTRATADA garante os serviços de instalação pelo prazo de 12 (doze) meses contados da conclusão da obra."

func forumClause(city, state string) string {
	return fmt.Sprintf(
		"Fica eleito o foro da Comarca de %s/%s para dirimir quaisquer controvérsias oriundas do presente contrato, com renúncia expressa a qualquer outro, por mais privilegiado que seja.",
		city, state,
	)
}

// powerOfAttorneyBody is the fixed procuração text, parameterized by the
// grantor qualification, the utility the mandate targets and the company
// identity.
func powerOfAttorneyBody(grantor, utilityCompany string, company CompanyInfo) string {
	utility := "à concessionária de energia elétrica local"
	if utilityCompany != "" {
		utility = fmt.Sprintf("à concessionária %s", utilityCompany)
	}
	return fmt.Sprintf(
		"%s, nomeia e constitui sua bastante procuradora a empresa %s, inscrita no CNPJ sob o nº %s, com sede em %s, "+
			"outorgando-lhe poderes específicos para representá-lo(a) junto %s, podendo para tanto "+
			"solicitar vistorias, acessos e ligações, assinar formulários, solicitar a homologação de sistema de microgeração ou minigeração "+
			"distribuída de energia solar fotovoltaica, prestar e receber informações, bem como praticar todos os demais atos necessários "+
			"ao fiel cumprimento do presente mandato.",
		grantor, company.Name, util.FormatTaxID(company.TaxID), company.Address, utility,
	)
}

// grantorQualification builds the outorgante identification line.
func grantorQualification(poa *model.PowerOfAttorney) string {
	parts := []string{poa.GrantorName}
	if poa.GrantorNationality != "" {
		parts = append(parts, poa.GrantorNationality)
	}
	if ms := maritalStatusPT(poa.GrantorMaritalStatus); ms != "" {
		parts = append(parts, ms)
	}
	if poa.GrantorProfession != "" {
		parts = append(parts, poa.GrantorProfession)
	}

	label := "inscrito(a) no CPF sob o nº"
	if util.DetectDocumentType(poa.GrantorTaxID) == util.DocumentCNPJ {
		label = "inscrita no CNPJ sob o nº"
	}
	q := fmt.Sprintf("%s, %s %s", strings.Join(parts, ", "), label, util.FormatTaxID(poa.GrantorTaxID))
	if poa.GrantorRG != "" {
		q += fmt.Sprintf(", portador(a) do RG nº %s", poa.GrantorRG)
		if poa.GrantorIssuingAuthority != "" {
			q += " " + poa.GrantorIssuingAuthority
		}
	}
	return fmt.Sprintf("%s, residente e domiciliado(a) em %s", q, poa.FullAddress())
}
