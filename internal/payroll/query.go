package payroll

// query.go provides read-only views over an AggregateResult for the
// dashboard, drill-down breakdowns and the employee page.

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Lookup returns the employee for empNo. Surrounding whitespace is ignored.
// A miss returns ErrEmployeeNotFound and leaves the result untouched.
func (r *AggregateResult) Lookup(empNo string) (*Employee, error) {
	if r == nil {
		return nil, ErrEmployeeNotFound
	}
	emp, ok := r.Employees[strings.TrimSpace(empNo)]
	if !ok {
		return nil, ErrEmployeeNotFound
	}
	return emp, nil
}

// Filter returns the records matching year and month in CSV order.
// An empty year or month matches every value.
func (r *AggregateResult) Filter(year, month string) []*EmployeeRecord {
	if r == nil {
		return nil
	}
	out := make([]*EmployeeRecord, 0, len(r.Records))
	for _, rec := range r.Records {
		if year != "" && rec.Year != year {
			continue
		}
		if month != "" && rec.Month != month {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Period returns the year-month summary.
func (r *AggregateResult) Period(year, month string) (*PeriodSummary, error) {
	if r == nil {
		return nil, ErrPeriodNotFound
	}
	ps, ok := r.MonthSummary[MonthKey(year, month)]
	if !ok {
		return nil, fmt.Errorf("%w: %s %s", ErrPeriodNotFound, month, year)
	}
	return ps, nil
}

// Year returns the summary for a whole year.
func (r *AggregateResult) Year(year string) (*PeriodSummary, error) {
	if r == nil {
		return nil, ErrPeriodNotFound
	}
	ps, ok := r.YearSummary[year]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPeriodNotFound, year)
	}
	return ps, nil
}

// FilterRaw filters raw records by their Year and Month columns.
// An empty year or month matches every value.
func FilterRaw(records []RawRecord, year, month string) []RawRecord {
	out := make([]RawRecord, 0, len(records))
	for _, rec := range records {
		if year != "" && rec[ColYear] != year {
			continue
		}
		if month != "" && rec[ColMonth] != month {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Metrics summarizes a set of records for the dashboard overview.
type Metrics struct {
	Employees  int
	Records    int
	Gross      decimal.Decimal
	Deductions decimal.Decimal
	Net        decimal.Decimal
	Components Amounts
}

// Summarize totals records.
func Summarize(records []*EmployeeRecord) Metrics {
	m := Metrics{Records: len(records)}
	seen := make(map[string]struct{})
	for _, rec := range records {
		seen[rec.EmpNo] = struct{}{}
		m.Gross = m.Gross.Add(rec.Gross)
		m.Deductions = m.Deductions.Add(rec.Deductions)
		m.Net = m.Net.Add(rec.Net)
		m.Components = m.Components.Add(rec.Components)
	}
	m.Employees = len(seen)
	return m
}

// MonthlyCards groups records by year-month, newest period first.
func MonthlyCards(records []*EmployeeRecord) []*PeriodSummary {
	byKey := make(map[string]*PeriodSummary)
	var cards []*PeriodSummary
	for _, rec := range records {
		key := MonthKey(rec.Year, rec.Month)
		ps, ok := byKey[key]
		if !ok {
			ps = newPeriodSummary(rec.Year, rec.Month)
			byKey[key] = ps
			cards = append(cards, ps)
		}
		ps.add(rec)
	}

	sort.SliceStable(cards, func(i, j int) bool {
		return ComparePeriods(cards[i].Year, cards[i].Month, cards[j].Year, cards[j].Month) > 0
	})
	return cards
}

// PeriodText describes the period covered by records under the given filter.
func PeriodText(records []*EmployeeRecord, year, month string) string {
	if len(records) == 0 {
		return "No Data Available"
	}

	switch {
	case year != "" && month != "":
		return month + " " + year
	case year != "":
		return "Year " + year
	case month != "":
		return month + " (All Years)"
	}

	first, last := records[0], records[0]
	for _, rec := range records[1:] {
		if ComparePeriods(rec.Year, rec.Month, first.Year, first.Month) < 0 {
			first = rec
		}
		if ComparePeriods(rec.Year, rec.Month, last.Year, last.Month) > 0 {
			last = rec
		}
	}
	return fmt.Sprintf("From %s %s To %s %s", first.Month, first.Year, last.Month, last.Year)
}

// SortedRecords returns the employee's records newest first.
// Records itself keeps CSV order.
func (e *Employee) SortedRecords() []*EmployeeRecord {
	out := append([]*EmployeeRecord(nil), e.Records...)
	sort.SliceStable(out, func(i, j int) bool {
		return ComparePeriods(out[i].Year, out[i].Month, out[j].Year, out[j].Month) > 0
	})
	return out
}

// Latest returns the most recent record, or nil for an employee without records.
func (e *Employee) Latest() *EmployeeRecord {
	sorted := e.SortedRecords()
	if len(sorted) == 0 {
		return nil
	}
	return sorted[0]
}

// PeriodRange describes the span of the employee's history,
// e.g. "April 2023 - March 2024", or a single "March 2024".
func (e *Employee) PeriodRange() string {
	sorted := e.SortedRecords()
	if len(sorted) == 0 {
		return ""
	}
	newest := sorted[0]
	if len(sorted) == 1 {
		return newest.Month + " " + newest.Year
	}
	oldest := sorted[len(sorted)-1]
	return fmt.Sprintf("%s %s - %s %s", oldest.Month, oldest.Year, newest.Month, newest.Year)
}

// TotalDeductions sums deductions over all of the employee's records.
func (e *Employee) TotalDeductions() decimal.Decimal {
	total := decimal.Zero
	for _, rec := range e.Records {
		total = total.Add(rec.Deductions)
	}
	return total
}

// Components sums the amount components over all of the employee's records.
func (e *Employee) Components() Amounts {
	var total Amounts
	for _, rec := range e.Records {
		total = total.Add(rec.Components)
	}
	return total
}

// Record returns the employee's first record for year and month.
func (e *Employee) Record(year, month string) (*EmployeeRecord, error) {
	for _, rec := range e.Records {
		if rec.Year == year && rec.Month == month {
			return rec, nil
		}
	}
	return nil, fmt.Errorf("%w: %s %s %s", ErrRecordNotFound, e.EmpNo, month, year)
}
