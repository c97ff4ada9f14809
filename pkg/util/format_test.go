package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		name  string
		cents int64
		want  string
	}{
		{name: "Zero", cents: 0, want: "0,00"},
		{name: "Under one real", cents: 99, want: "0,99"},
		{name: "Exact thousand", cents: 100000, want: "1.000,00"},
		{name: "Millions", cents: 123456789, want: "1.234.567,89"},
		{name: "No grouping below thousand", cents: 99999, want: "999,99"},
		{name: "Negative", cents: -150050, want: "-1.500,50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBRL(tt.cents))
		})
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "10/01/2025", FormatDate(d))
}

func TestFormatLongDate(t *testing.T) {
	d := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "5 de março de 2026", FormatLongDate(d))
}
