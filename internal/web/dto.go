package web

import (
	"time"

	"github.com/JonMunkholm/salaryboard/internal/core"
	"github.com/JonMunkholm/salaryboard/internal/payroll"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Money is an amount with its display form ("₹12,34,567").
type Money struct {
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

func newMoney(d decimal.Decimal) Money {
	return Money{
		Value:   d.Round(2).InexactFloat64(),
		Display: payroll.FormatRupees(d),
	}
}

// LineItem is one salary component in a breakdown. Percent is the share of
// Basic, set for DA and HRA on employee breakdowns.
type LineItem struct {
	Name    string `json:"name"`
	Amount  Money  `json:"amount"`
	Percent string `json:"percent,omitempty"`
}

// Breakdown splits amounts into allowances and deductions. The totals are
// the gross and deductions in effect for the totals mode, so in csv mode
// they follow the CSV columns rather than the component sums.
type Breakdown struct {
	Allowances      []LineItem `json:"allowances"`
	Deductions      []LineItem `json:"deductions"`
	TotalAllowances Money      `json:"totalAllowances"`
	TotalDeductions Money      `json:"totalDeductions"`
}

func newBreakdown(a payroll.Amounts, gross, deductions decimal.Decimal) Breakdown {
	item := func(name string, d decimal.Decimal) LineItem {
		return LineItem{Name: name, Amount: newMoney(d)}
	}
	return Breakdown{
		Allowances: []LineItem{
			item(payroll.ColBasic, a.Basic),
			item(payroll.ColDA, a.DA),
			item(payroll.ColHRA, a.HRA),
			item(payroll.ColIR, a.IR),
			item(payroll.ColSFN, a.SFN),
			item(payroll.ColSpayTypist, a.SpayTypist),
			item(payroll.ColP, a.P),
		},
		Deductions: []LineItem{
			item(payroll.ColIT, a.IT),
			item(payroll.ColPT, a.PT),
			item(payroll.ColGSLIC, a.GSLIC),
			item(payroll.ColLIC, a.LIC),
			item(payroll.ColFBF, a.FBF),
		},
		TotalAllowances: newMoney(gross),
		TotalDeductions: newMoney(deductions),
	}
}

// newEmployeeBreakdown adds the DA and HRA share of Basic.
func newEmployeeBreakdown(a payroll.Amounts, gross, deductions decimal.Decimal) Breakdown {
	b := newBreakdown(a, gross, deductions)
	b.Allowances[1].Percent = payroll.PercentOf(a.DA, a.Basic)
	b.Allowances[2].Percent = payroll.PercentOf(a.HRA, a.Basic)
	return b
}

// DatasetResponse describes the loaded dataset.
type DatasetResponse struct {
	ID             uuid.UUID          `json:"id"`
	Source         string             `json:"source"`
	LoadedAt       time.Time          `json:"loadedAt"`
	Bytes          int64              `json:"bytes"`
	Mode           payroll.TotalsMode `json:"mode"`
	Employees      int                `json:"employees"`
	Records        int                `json:"records"`
	Years          []string           `json:"years"`
	Months         []string           `json:"months"`
	Stats          payroll.Stats      `json:"stats"`
	MissingColumns []string           `json:"missingColumns,omitempty"`
}

func newDatasetResponse(ds *core.Dataset) DatasetResponse {
	return DatasetResponse{
		ID:             ds.ID,
		Source:         ds.Source,
		LoadedAt:       ds.LoadedAt,
		Bytes:          ds.Bytes,
		Mode:           ds.Result.Mode,
		Employees:      ds.Result.TotalEmployees,
		Records:        len(ds.Result.Records),
		Years:          ds.Result.Years,
		Months:         payroll.SortMonths(ds.Result.Months),
		Stats:          ds.Stats,
		MissingColumns: ds.MissingColumns,
	}
}

// PeriodResponse is a month or year summary.
type PeriodResponse struct {
	Year       string    `json:"year"`
	Month      string    `json:"month,omitempty"`
	Label      string    `json:"label"`
	Employees  int       `json:"employees"`
	Records    int       `json:"records"`
	Gross      Money     `json:"gross"`
	Deductions Money     `json:"deductions"`
	Net        Money     `json:"net"`
	Breakdown  Breakdown `json:"breakdown"`
}

func newPeriodResponse(p *payroll.PeriodSummary) PeriodResponse {
	label := "Year " + p.Year
	if p.Month != "" {
		label = p.Month + " " + p.Year
	}
	return PeriodResponse{
		Year:       p.Year,
		Month:      p.Month,
		Label:      label,
		Employees:  p.EmployeeCount(),
		Records:    p.Records,
		Gross:      newMoney(p.TotalGross),
		Deductions: newMoney(p.TotalDeductions),
		Net:        newMoney(p.TotalNet),
		Breakdown:  newBreakdown(p.Components, p.TotalGross, p.TotalDeductions),
	}
}

// MetricsResponse holds the dashboard headline figures.
type MetricsResponse struct {
	Employees  int       `json:"employees"`
	Records    int       `json:"records"`
	Gross      Money     `json:"gross"`
	Deductions Money     `json:"deductions"`
	Net        Money     `json:"net"`
	Breakdown  Breakdown `json:"breakdown"`
}

// DashboardResponse is the organization overview for a filter selection.
type DashboardResponse struct {
	Year       string           `json:"year,omitempty"`
	Month      string           `json:"month,omitempty"`
	PeriodText string           `json:"periodText"`
	Metrics    MetricsResponse  `json:"metrics"`
	Cards      []PeriodResponse `json:"cards"`
}

func newDashboardResponse(d *core.Dashboard) DashboardResponse {
	cards := make([]PeriodResponse, 0, len(d.Cards))
	for _, c := range d.Cards {
		cards = append(cards, newPeriodResponse(c))
	}
	return DashboardResponse{
		Year:       d.Year,
		Month:      d.Month,
		PeriodText: d.PeriodText,
		Metrics: MetricsResponse{
			Employees:  d.Metrics.Employees,
			Records:    d.Metrics.Records,
			Gross:      newMoney(d.Metrics.Gross),
			Deductions: newMoney(d.Metrics.Deductions),
			Net:        newMoney(d.Metrics.Net),
			Breakdown:  newBreakdown(d.Metrics.Components, d.Metrics.Gross, d.Metrics.Deductions),
		},
		Cards: cards,
	}
}

// RecordResponse is one employee's salary for one month.
type RecordResponse struct {
	Year              string    `json:"year"`
	Month             string    `json:"month"`
	Gross             Money     `json:"gross"`
	Deductions        Money     `json:"deductions"`
	Net               Money     `json:"net"`
	Breakdown         Breakdown `json:"breakdown"`
	NextIncrementDate string    `json:"nextIncrementDate,omitempty"`
	Group             string    `json:"group,omitempty"`
	BankAccount       string    `json:"bankAccount,omitempty"`
}

func newRecordResponse(rec *payroll.EmployeeRecord) RecordResponse {
	return RecordResponse{
		Year:              rec.Year,
		Month:             rec.Month,
		Gross:             newMoney(rec.Gross),
		Deductions:        newMoney(rec.Deductions),
		Net:               newMoney(rec.Net),
		Breakdown:         newEmployeeBreakdown(rec.Components, rec.Gross, rec.Deductions),
		NextIncrementDate: rec.NextIncrementDate,
		Group:             rec.Group,
		BankAccount:       rec.BankAccount,
	}
}

// EmployeeSummary identifies an employee.
type EmployeeSummary struct {
	EmpNo            string `json:"empNo"`
	Name             string `json:"name"`
	Designation      string `json:"designation"`
	DesignationShort string `json:"designationShort"`
}

func newEmployeeSummary(e *payroll.Employee) EmployeeSummary {
	return EmployeeSummary{
		EmpNo:            e.EmpNo,
		Name:             e.Name,
		Designation:      e.Designation,
		DesignationShort: payroll.AbbreviateDesignation(e.Designation),
	}
}

// EmployeeResponse is the signed-in employee's salary history.
type EmployeeResponse struct {
	EmployeeSummary
	PeriodRange     string           `json:"periodRange"`
	Months          int              `json:"months"`
	TotalGross      Money            `json:"totalGross"`
	TotalDeductions Money            `json:"totalDeductions"`
	TotalNet        Money            `json:"totalNet"`
	AvgGross        Money            `json:"avgGross"`
	AvgNet          Money            `json:"avgNet"`
	Breakdown       Breakdown        `json:"breakdown"`
	Latest          *RecordResponse  `json:"latest,omitempty"`
	Records         []RecordResponse `json:"records"`
}

func newEmployeeResponse(e *payroll.Employee) EmployeeResponse {
	sorted := e.SortedRecords()
	records := make([]RecordResponse, 0, len(sorted))
	for _, rec := range sorted {
		records = append(records, newRecordResponse(rec))
	}

	resp := EmployeeResponse{
		EmployeeSummary: newEmployeeSummary(e),
		PeriodRange:     e.PeriodRange(),
		Months:          len(e.Records),
		TotalGross:      newMoney(e.TotalGross),
		TotalDeductions: newMoney(e.TotalDeductions()),
		TotalNet:        newMoney(e.TotalNet),
		AvgGross:        newMoney(e.AvgGross),
		AvgNet:          newMoney(e.AvgNet),
		Breakdown:       newEmployeeBreakdown(e.Components(), e.TotalGross, e.TotalDeductions()),
		Records:         records,
	}
	if len(records) > 0 {
		resp.Latest = &records[0]
	}
	return resp
}

// EmployeeRecordResponse is one month of the signed-in employee's salary.
type EmployeeRecordResponse struct {
	Employee EmployeeSummary `json:"employee"`
	Record   RecordResponse  `json:"record"`
}

// LoginResponse carries the session token.
type LoginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	Employee  EmployeeSummary `json:"employee"`
}

// HistoryResponse lists recent ingestions and the limiter state.
type HistoryResponse struct {
	Entries []core.IngestSummary     `json:"entries"`
	Ingest  core.IngestLimiterStatus `json:"ingest"`
}

// RecordsResponse lists parsed CSV rows keyed by header column.
type RecordsResponse struct {
	Header  []string            `json:"header"`
	Count   int                 `json:"count"`
	Records []payroll.RawRecord `json:"records"`
}

// ThemeResponse is the client's theme preference.
type ThemeResponse struct {
	Theme string `json:"theme"`
}
