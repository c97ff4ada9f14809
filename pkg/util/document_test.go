package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigits(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "Masked CPF", input: "123.456.789-01", want: "12345678901"},
		{name: "Masked CNPJ", input: "12.345.678/9012-34", want: "12345678901234"},
		{name: "Phone", input: "(67) 99999-1234", want: "67999991234"},
		{name: "Already clean", input: "12345", want: "12345"},
		{name: "Empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Digits(tt.input))
		})
	}
}

func TestDetectDocumentType(t *testing.T) {
	tests := []struct {
		name  string
		taxID string
		want  DocumentType
	}{
		{name: "11 digits is CPF", taxID: "12345678901", want: DocumentCPF},
		{name: "14 digits is CNPJ", taxID: "12345678901234", want: DocumentCNPJ},
		{name: "Masked CPF", taxID: "123.456.789-01", want: DocumentCPF},
		{name: "Masked CNPJ", taxID: "12.345.678/9012-34", want: DocumentCNPJ},
		{name: "Partial input reads as CPF", taxID: "123456", want: DocumentCPF},
		{name: "12 digits already reads as CNPJ", taxID: "123456789012", want: DocumentCNPJ},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectDocumentType(tt.taxID))
		})
	}
}

func TestValidTaxIDLength(t *testing.T) {
	assert.True(t, ValidTaxIDLength("123.456.789-01"))
	assert.True(t, ValidTaxIDLength("12.345.678/9012-34"))
	assert.False(t, ValidTaxIDLength("1234567890"))
	assert.False(t, ValidTaxIDLength("123456789012"))
	assert.False(t, ValidTaxIDLength(""))
}

func TestFormatTaxID(t *testing.T) {
	assert.Equal(t, "123.456.789-01", FormatTaxID("12345678901"))
	assert.Equal(t, "12.345.678/9012-34", FormatTaxID("12345678901234"))
	// Incomplete ids come back digit-only.
	assert.Equal(t, "12345", FormatTaxID("123.45"))
}

func TestFormatCEP(t *testing.T) {
	assert.Equal(t, "79690-000", FormatCEP("79690000"))
	assert.Equal(t, "79690-000", FormatCEP("79690-000"))
	assert.Equal(t, "7969", FormatCEP("7969"))
}
