package document

import (
	"errors"
	"fmt"
	"time"

	"github.com/ecoenergi/meu-contrato-solar/internal/app/model"
	"github.com/ecoenergi/meu-contrato-solar/pkg/util"
)

var ErrMissingGrantor = errors.New("power of attorney has no grantor")

// BuildPowerOfAttorney renders the procuração PDF for the given grantor.
func BuildPowerOfAttorney(poa *model.PowerOfAttorney, company CompanyInfo) ([]byte, error) {
	if poa == nil || poa.GrantorName == "" {
		return nil, ErrMissingGrantor
	}

	c := newComposer()
	c.title("PROCURAÇÃO")

	c.line("OUTORGANTE:", "B")
	c.paragraph(grantorQualification(poa) + ".")

	c.line("OUTORGADA:", "B")
	c.paragraph(powerOfAttorneyBody(
		"Pelo presente instrumento particular de procuração, o(a) OUTORGANTE acima qualificado(a)",
		poa.UtilityCompany,
		company,
	))

	c.paragraph("A presente procuração é outorgada em caráter gratuito e terá validade pelo prazo necessário à conclusão do processo de homologação junto à concessionária, vedado o substabelecimento sem autorização expressa do(a) OUTORGANTE.")

	issued := poa.IssuedAt
	if issued.IsZero() {
		issued = time.Now()
	}
	c.spacer(4)
	c.line(fmt.Sprintf("%s - %s, %s.", poa.City, poa.State, util.FormatLongDate(issued)), "")
	c.spacer(14)

	c.signature(poa.GrantorName, fmt.Sprintf("OUTORGANTE - %s", util.FormatTaxID(poa.GrantorTaxID)))

	return c.output()
}
