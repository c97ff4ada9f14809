package document

import (
	"errors"
	"fmt"
	"time"

	"github.com/ecoenergi/meu-contrato-solar/internal/app/model"
	"github.com/ecoenergi/meu-contrato-solar/pkg/util"
)

var ErrMissingCustomer = errors.New("contract data has no customer")

// ContractData is everything the services contract needs. Customer is
// mandatory; the other sub entities are optional and their sections are
// skipped when absent.
type ContractData struct {
	Customer  *model.Customer
	Location  *model.InstallationLocation
	Technical *model.TechnicalConfig
	Financial *model.FinancialTerms
	Company   CompanyInfo
	Date      time.Time
}

// BuildServicesContract renders the contrato de prestação de serviços PDF.
func BuildServicesContract(data *ContractData) ([]byte, error) {
	if data == nil || data.Customer == nil {
		return nil, ErrMissingCustomer
	}

	c := newComposer()
	c.title("CONTRATO DE PRESTAÇÃO DE SERVIÇOS")

	// Parties
	address := ""
	if data.Location != nil {
		address = data.Location.FullAddress()
	}
	c.paragraph(contractorClause(data.Company))
	c.paragraph(contractingPartyClause(data.Customer, address))
	c.paragraph("As partes acima identificadas têm, entre si, justo e acertado o presente Contrato de Prestação de Serviços, que se regerá pelas cláusulas seguintes e pelas condições descritas no presente.")

	// Object
	c.heading("CLÁUSULA PRIMEIRA - DO OBJETO")
	object := "O presente contrato tem como objeto o fornecimento e a instalação, pela CONTRATADA, de um sistema de geração de energia solar fotovoltaica"
	if data.Technical != nil {
		object += fmt.Sprintf(", com potência instalada de %s kWp", formatKWP(data.Technical.SystemPowerKWP()))
	}
	if address != "" {
		object += fmt.Sprintf(", no imóvel situado em %s", address)
	}
	c.paragraph(object + ".")

	// Equipment
	if data.Technical != nil {
		c.heading("CLÁUSULA SEGUNDA - DOS EQUIPAMENTOS")
		c.paragraph("A CONTRATADA fornecerá e instalará os seguintes equipamentos:")
		for _, item := range equipmentItems(data.Technical) {
			c.line("- "+item, "")
		}

		if data.Technical.InstallationDays > 0 {
			c.heading("CLÁUSULA TERCEIRA - DO PRAZO DE INSTALAÇÃO")
			c.paragraph(fmt.Sprintf(
				"A CONTRATADA concluirá a instalação do sistema no prazo de até %d dia(s) útil(eis), contados da liberação do local pela CONTRATANTE e da entrega dos equipamentos, salvo atrasos decorrentes de caso fortuito ou força maior.",
				data.Technical.InstallationDays,
			))
		}
	}

	// Payment
	if data.Financial != nil {
		c.heading("CLÁUSULA QUARTA - DO VALOR E DA FORMA DE PAGAMENTO")
		c.paragraph(paymentClause(data.Financial))

		c.heading("CLÁUSULA QUINTA - DA INADIMPLÊNCIA")
		c.paragraph(delinquencyClause)
	}

	// Warranty and forum
	c.heading("CLÁUSULA SEXTA - DAS GARANTIAS")
	c.paragraph(warrantyClause)

	if data.Location != nil {
		c.heading("CLÁUSULA SÉTIMA - DO FORO")
		c.paragraph(forumClause(data.Location.City, data.Location.State))
	}

	c.paragraph("E por estarem assim justas e contratadas, as partes assinam o presente instrumento em duas vias de igual teor e forma, na presença das testemunhas abaixo.")

	// Date line
	city, state := "Campo Grande", "MS"
	if data.Location != nil {
		city, state = data.Location.City, data.Location.State
	}
	date := data.Date
	if date.IsZero() {
		date = time.Now()
	}
	c.spacer(4)
	c.line(fmt.Sprintf("%s - %s, %s.", city, state, util.FormatLongDate(date)), "")
	c.spacer(10)

	// Signatures
	c.signature(data.Customer.FullName, fmt.Sprintf("CONTRATANTE - %s", util.FormatTaxID(data.Customer.TaxID)))
	c.signature(data.Company.Name, fmt.Sprintf("CONTRATADA - CNPJ %s", util.FormatTaxID(data.Company.TaxID)))
	c.spacer(4)
	c.witnesses()

	return c.output()
}
