package util

import "strings"

// DocumentType distinguishes person (CPF) from company (CNPJ) tax ids.
type DocumentType string

const (
	DocumentCPF  DocumentType = "cpf"
	DocumentCNPJ DocumentType = "cnpj"

	cpfDigits  = 11
	cnpjDigits = 14
)

// Digits strips every non-digit character from s.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DetectDocumentType resolves the document kind from the digit count of a
// tax id. Eleven or fewer digits reads as a CPF, anything longer as a CNPJ,
// mirroring how the id grows while being typed.
func DetectDocumentType(taxID string) DocumentType {
	if len(Digits(taxID)) <= cpfDigits {
		return DocumentCPF
	}
	return DocumentCNPJ
}

// ValidTaxIDLength reports whether the tax id has a complete CPF or CNPJ
// digit count.
func ValidTaxIDLength(taxID string) bool {
	n := len(Digits(taxID))
	return n == cpfDigits || n == cnpjDigits
}

// FormatTaxID re-applies the display mask for a complete CPF
// (999.999.999-99) or CNPJ (99.999.999/9999-99). Incomplete ids are
// returned digit-only.
func FormatTaxID(taxID string) string {
	d := Digits(taxID)
	switch len(d) {
	case cpfDigits:
		return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
	case cnpjDigits:
		return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14]
	default:
		return d
	}
}

// FormatCEP re-applies the postal code mask (99999-999) to a complete CEP.
func FormatCEP(cep string) string {
	d := Digits(cep)
	if len(d) != 8 {
		return d
	}
	return d[0:5] + "-" + d[5:8]
}
