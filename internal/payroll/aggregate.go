package payroll

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// TotalsMode selects how gross, deductions and net are obtained per line.
type TotalsMode string

const (
	// ModeAuto uses ModeCSV when the header carries all precomputed total
	// columns and ModeComponents otherwise.
	ModeAuto TotalsMode = "auto"

	// ModeCSV trusts the Gross Salary, Total Deductions and Net Salary columns.
	ModeCSV TotalsMode = "csv"

	// ModeComponents recomputes totals from the amount components.
	ModeComponents TotalsMode = "components"
)

// ParseTotalsMode parses a configuration value. Empty means ModeAuto.
func ParseTotalsMode(s string) (TotalsMode, error) {
	switch TotalsMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeCSV:
		return ModeCSV, nil
	case ModeComponents:
		return ModeComponents, nil
	default:
		return "", fmt.Errorf("invalid totals mode %q: must be one of auto, csv, components", s)
	}
}

// Resolve returns the concrete mode to use for a dataset with the given header.
func (m TotalsMode) Resolve(header []string) TotalsMode {
	if m == ModeCSV || m == ModeComponents {
		return m
	}
	if hasColumns(header, ColGrossSalary, ColTotalDeductions, ColNetSalary) {
		return ModeCSV
	}
	return ModeComponents
}

func hasColumns(header []string, cols ...string) bool {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	for _, c := range cols {
		if !present[c] {
			return false
		}
	}
	return true
}

// Aggregator folds raw records into an AggregateResult.
type Aggregator struct {
	Mode TotalsMode
}

// NewAggregator creates an Aggregator using mode.
func NewAggregator(mode TotalsMode) *Aggregator {
	return &Aggregator{Mode: mode}
}

// Process builds the aggregate for records parsed with header.
// It performs a single pass in record order followed by the averages
// post-pass. Zero records yield an empty result.
func (a *Aggregator) Process(header []string, records []RawRecord) *AggregateResult {
	mode := ModeAuto
	if a != nil && a.Mode != "" {
		mode = a.Mode
	}
	mode = mode.Resolve(header)

	res := newAggregateResult(mode)
	seenYears := make(map[string]bool)
	seenMonths := make(map[string]bool)

	for _, raw := range records {
		rec := buildRecord(raw, mode)
		res.Records = append(res.Records, rec)

		emp, ok := res.Employees[rec.EmpNo]
		if !ok {
			emp = &Employee{
				EmpNo:       rec.EmpNo,
				Name:        raw[ColName],
				Designation: raw[ColDesignation],
			}
			res.Employees[rec.EmpNo] = emp
		}
		emp.Records = append(emp.Records, rec)
		emp.TotalNet = emp.TotalNet.Add(rec.Net)
		emp.TotalGross = emp.TotalGross.Add(rec.Gross)

		ys, ok := res.YearSummary[rec.Year]
		if !ok {
			ys = newPeriodSummary(rec.Year, "")
			res.YearSummary[rec.Year] = ys
		}
		ys.add(rec)

		key := MonthKey(rec.Year, rec.Month)
		ms, ok := res.MonthSummary[key]
		if !ok {
			ms = newPeriodSummary(rec.Year, rec.Month)
			res.MonthSummary[key] = ms
		}
		ms.add(rec)

		if !seenYears[rec.Year] {
			seenYears[rec.Year] = true
			res.Years = append(res.Years, rec.Year)
		}
		if !seenMonths[rec.Month] {
			seenMonths[rec.Month] = true
			res.Months = append(res.Months, rec.Month)
		}
	}

	for _, emp := range res.Employees {
		count := decimal.NewFromInt(int64(len(emp.Records)))
		emp.AvgNet = emp.TotalNet.Div(count)
		emp.AvgGross = emp.TotalGross.Div(count)
	}

	sort.Strings(res.Years)
	res.TotalEmployees = len(res.Employees)

	return res
}

// buildRecord derives an EmployeeRecord from one raw line.
func buildRecord(raw RawRecord, mode TotalsMode) *EmployeeRecord {
	rec := &EmployeeRecord{
		EmpNo:             raw[ColEmpNo],
		Year:              raw[ColYear],
		Month:             raw[ColMonth],
		Components:        AmountsFromRecord(raw),
		NextIncrementDate: raw[ColNextIncrementDate],
		Group:             raw[ColGroup],
		BankAccount:       raw[ColBankAccount],
		Raw:               raw,
	}

	switch mode {
	case ModeCSV:
		rec.Gross = ParseAmount(raw[ColGrossSalary])
		rec.Deductions = ParseAmount(raw[ColTotalDeductions])
		rec.Net = ParseAmount(raw[ColNetSalary])
	default:
		rec.Gross = rec.Components.Allowances()
		rec.Deductions = rec.Components.Deductions()
		rec.Net = rec.Gross.Sub(rec.Deductions)
	}

	return rec
}

// Ingest parses text and aggregates it in one call.
func Ingest(text string, mode TotalsMode) (ParseResult, *AggregateResult) {
	parsed := Parse(text)
	return parsed, NewAggregator(mode).Process(parsed.Header, parsed.Records)
}
