package payroll

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatIndian rounds d to whole units and groups digits the Indian way:
// the last three digits, then pairs (12,34,567).
func FormatIndian(d decimal.Decimal) string {
	rounded := d.Round(0)
	neg := rounded.IsNegative()
	digits := rounded.Abs().String()

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}

	if len(digits) <= 3 {
		b.WriteString(digits)
		return b.String()
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	lead := len(head) % 2
	if lead > 0 {
		b.WriteString(head[:lead])
	}
	for i := lead; i < len(head); i += 2 {
		if b.Len() > 0 && !(neg && b.Len() == 1) {
			b.WriteByte(',')
		}
		b.WriteString(head[i : i+2])
	}
	b.WriteByte(',')
	b.WriteString(tail)
	return b.String()
}

// FormatRupees formats d as a rupee amount, e.g. "₹12,300".
func FormatRupees(d decimal.Decimal) string {
	s := FormatIndian(d)
	if strings.HasPrefix(s, "-") {
		return "-₹" + s[1:]
	}
	return "₹" + s
}

var hundred = decimal.NewFromInt(100)

// PercentOf expresses part as a percentage of base with two decimals
// ("20.00"). Both amounts are rounded to whole units first. A base that
// rounds to zero or below yields "0".
func PercentOf(part, base decimal.Decimal) string {
	b := base.Round(0)
	if !b.IsPositive() {
		return "0"
	}
	return part.Round(0).Mul(hundred).Div(b).StringFixed(2)
}

var designationAbbreviations = map[string]string{
	"Second Division Assistant": "SDA",
	"Assistant":                 "Asst",
	"Senior Assistant":          "Sr Asst",
	"Superintendent":            "Supdt",
	"Assistant Superintendent":  "Asst Supdt",
	"Deputy Superintendent":     "Dy Supdt",
	"Junior Assistant":          "Jr Asst",
	"Senior Clerk":              "Sr Clerk",
	"Office Assistant":          "Office Asst",
	"Computer Operator":         "Comp Op",
	"Data Entry Operator":       "DEO",
	"Stenographer":              "Steno",
	"Junior Stenographer":       "Jr Steno",
	"Senior Stenographer":       "Sr Steno",
	"Senior Typist":             "Sr Typist",
	"Manager":                   "Mgr",
	"Assistant Manager":         "Asst Mgr",
	"Deputy Manager":            "Dy Mgr",
	"General Manager":           "GM",
	"Executive":                 "Exec",
	"Senior Executive":          "Sr Exec",
	"Chief Executive":           "Chief Exec",
	"Senior Officer":            "Sr Officer",
	"Assistant Officer":         "Asst Officer",
	"Junior Officer":            "Jr Officer",
	"Senior Accountant":         "Sr Accountant",
	"Chief Accountant":          "Chief Acc",
	"Internal Auditor":          "Int Auditor",
	"Team Leader":               "TL",
	"Project Manager":           "PM",
	"Technical Assistant":       "Tech Asst",
	"Laboratory Assistant":      "Lab Asst",
	"Field Assistant":           "Field Asst",
	"Research Assistant":        "Research Asst",
	"Administrative Officer":    "Admin Officer",
	"Personnel Officer":         "Personnel Off",
	"Finance Officer":           "Finance Off",
	"Accounts Officer":          "Accounts Off",
	"Security Officer":          "Security Off",
	"Welfare Officer":           "Welfare Off",
	"Training Officer":          "Training Off",
	"Public Relations Officer":  "PRO",
	"Information Officer":       "Info Officer",
	"Development Officer":       "Dev Officer",
	"Program Officer":           "Program Off",
	"Extension Officer":         "Ext Officer",
	"Technical Officer":         "Tech Officer",
	"Medical Officer":           "MO",
	"Veterinary Officer":        "VO",
	"Engineer":                  "Engr",
	"Assistant Engineer":        "AE",
	"Executive Engineer":        "EE",
	"Superintending Engineer":   "SE",
	"Chief Engineer":            "CE",
	"Junior Engineer":           "JE",
	"Sub Engineer":              "Sub Engr",
	"Technician":                "Tech",
	"Senior Technician":         "Sr Tech",
	"Laboratory Technician":     "Lab Tech",
	"Computer Technician":       "Comp Tech",
}

// AbbreviateDesignation shortens well-known designations for compact
// display. Unknown designations are returned unchanged.
func AbbreviateDesignation(designation string) string {
	if abbr, ok := designationAbbreviations[designation]; ok {
		return abbr
	}
	return designation
}
