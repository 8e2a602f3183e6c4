package payroll

// convert.go coerces CSV cell text into amounts.
//
// Payroll exports carry thousands separators ("12,345.50") and the odd blank
// or placeholder cell. Coercion is deliberately lenient: anything that does
// not parse becomes zero rather than an error.

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// numericRegex matches integers, decimals and scientific notation once
// separators are stripped.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// digitsRegex matches a valid EMP No.
var digitsRegex = regexp.MustCompile(`^[0-9]+$`)

// ParseAmount converts an amount cell to a decimal.
// Commas are removed before parsing; empty or unparsable input yields zero.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}

	s = strings.ReplaceAll(s, ",", "")
	if !numericRegex.MatchString(s) {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ValidEmpNo reports whether s is a usable employee number: non-empty,
// not the header echo, and decimal digits only.
func ValidEmpNo(s string) bool {
	if s == "" || s == ColEmpNo {
		return false
	}
	return digitsRegex.MatchString(s)
}
