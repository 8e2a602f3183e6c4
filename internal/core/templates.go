package core

import (
	"bytes"
	"encoding/csv"

	"github.com/JonMunkholm/salaryboard/internal/payroll"
)

// TemplateColumns is the header of the downloadable CSV template: the
// required columns followed by the optional totals and employee details.
var TemplateColumns = append(append([]string(nil), payroll.RequiredColumns...),
	payroll.ColGrossSalary,
	payroll.ColTotalDeductions,
	payroll.ColNetSalary,
	payroll.ColNextIncrementDate,
	payroll.ColGroup,
	payroll.ColBankAccount,
)

// TemplateCSV renders a header-only CSV that ingests as an empty dataset.
func TemplateCSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(TemplateColumns); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
