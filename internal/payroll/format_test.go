package payroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatIndian(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"999", "999"},
		{"1000", "1,000"},
		{"12300", "12,300"},
		{"123456", "1,23,456"},
		{"1234567", "12,34,567"},
		{"123456789", "12,34,56,789"},
		{"12345.2", "12,345"},
		{"-123456", "-1,23,456"},
		{"-1234567", "-12,34,567"},
		{"-500", "-500"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatIndian(dec(tt.in)))
		})
	}
}

func TestFormatRupees(t *testing.T) {
	assert.Equal(t, "₹12,300", FormatRupees(dec("12300")))
	assert.Equal(t, "-₹1,000", FormatRupees(dec("-1000")))
}

func TestPercentOf(t *testing.T) {
	tests := []struct {
		name       string
		part, base string
		want       string
	}{
		{"exact", "2000", "10000", "20.00"},
		{"repeating", "1000", "3000", "33.33"},
		{"rounds amounts first", "1999.6", "10000.4", "20.00"},
		{"rounds result", "1234", "7000", "17.63"},
		{"zero part", "0", "10000", "0.00"},
		{"zero base", "2000", "0", "0"},
		{"base rounds to zero", "2000", "0.4", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PercentOf(dec(tt.part), dec(tt.base)))
		})
	}
}

func TestAbbreviateDesignation(t *testing.T) {
	assert.Equal(t, "SDA", AbbreviateDesignation("Second Division Assistant"))
	assert.Equal(t, "AE", AbbreviateDesignation("Assistant Engineer"))
	assert.Equal(t, "Clerk", AbbreviateDesignation("Clerk"))
}
