package util

import (
	"fmt"
	"strconv"
	"time"
)

// FormatBRL renders an amount in cents with Brazilian separators, e.g.
// 100000 -> "1.000,00". The sign is preserved for negative values.
func FormatBRL(cents int64) string {
	negative := cents < 0
	if negative {
		cents = -cents
	}

	reais := cents / 100
	frac := cents % 100

	digits := strconv.FormatInt(reais, 10)
	var grouped []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, '.')
		}
		grouped = append(grouped, d)
	}

	out := fmt.Sprintf("%s,%02d", grouped, frac)
	if negative {
		return "-" + out
	}
	return out
}

// FormatDate renders a date as dd/MM/yyyy.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

var monthNamesPTBR = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// FormatLongDate renders a date the way contracts are dated in Portuguese,
// e.g. "12 de janeiro de 2026".
func FormatLongDate(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), monthNamesPTBR[t.Month()-1], t.Year())
}
