package export

import "github.com/shopspring/decimal"

// money converts an amount to a spreadsheet number rounded to paise.
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
