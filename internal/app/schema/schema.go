// Package schema validates wizard step payloads before they reach the
// service layer. Each step has an input struct and a Validate function that
// returns either a typed model or a field keyed map of pt-BR messages.
package schema

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/ecoenergi/meu-contrato-solar/pkg/util"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

var ufPattern = regexp.MustCompile(`^[A-Z]{2}$`)

// Brazilian federation units.
var validUFs = map[string]bool{
	"AC": true, "AL": true, "AP": true, "AM": true, "BA": true, "CE": true,
	"DF": true, "ES": true, "GO": true, "MA": true, "MT": true, "MS": true,
	"MG": true, "PA": true, "PB": true, "PR": true, "PE": true, "PI": true,
	"RJ": true, "RN": true, "RS": true, "RO": true, "RR": true, "SC": true,
	"SP": true, "SE": true, "TO": true,
}

func newValidator() *validator.Validate {
	v := validator.New()

	// Error keys are the json field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// taxid: CPF (11 digits) or CNPJ (14 digits), mask allowed
	v.RegisterValidation("taxid", func(fl validator.FieldLevel) bool {
		return util.ValidTaxIDLength(fl.Field().String())
	})

	// cep: 8 digits, mask allowed
	v.RegisterValidation("cep", func(fl validator.FieldLevel) bool {
		return len(util.Digits(fl.Field().String())) == 8
	})

	// uf: two-letter federation unit
	v.RegisterValidation("uf", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return ufPattern.MatchString(s) && validUFs[s]
	})

	// brphone: 10 or 11 digits (landline or mobile with area code)
	v.RegisterValidation("brphone", func(fl validator.FieldLevel) bool {
		n := len(util.Digits(fl.Field().String()))
		return n == 10 || n == 11
	})

	return v
}

// fieldErrors turns validator output into a json-field keyed message map.
func fieldErrors(err error) map[string]string {
	fields := map[string]string{}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		fields["_"] = "Os dados informados são inválidos"
		return fields
	}

	for _, fe := range verrs {
		fields[fieldName(fe)] = fieldMessage(fe)
	}
	return fields
}

// fieldName is the json name the tag name func resolved.
func fieldName(fe validator.FieldError) string {
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Campo obrigatório"
	case "email":
		return "E-mail inválido"
	case "min":
		return "Valor abaixo do mínimo permitido"
	case "max":
		return "Valor acima do máximo permitido"
	case "gt":
		return "O valor deve ser maior que zero"
	case "gte":
		return "O valor não pode ser negativo"
	case "oneof":
		return "Valor fora das opções permitidas"
	case "taxid":
		return "CPF/CNPJ deve ter 11 ou 14 dígitos"
	case "cep":
		return "CEP deve ter 8 dígitos"
	case "uf":
		return "UF inválida"
	case "brphone":
		return "Telefone deve ter 10 ou 11 dígitos"
	case "datetime":
		return "Data inválida, use o formato AAAA-MM-DD"
	default:
		return "Valor inválido"
	}
}
