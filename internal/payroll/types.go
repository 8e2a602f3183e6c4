package payroll

import (
	"github.com/shopspring/decimal"
)

// Header names with special meaning to the pipeline.
const (
	ColEmpNo       = "EMP No"
	ColName        = "Name"
	ColDesignation = "Designation"
	ColYear        = "Year"
	ColMonth       = "Month"

	ColBasic      = "Basic"
	ColDA         = "DA"
	ColHRA        = "HRA"
	ColIR         = "IR"
	ColSFN        = "SFN"
	ColSpayTypist = "SPAY-TYPIST"
	ColP          = "P"

	ColIT    = "IT"
	ColPT    = "PT"
	ColGSLIC = "GSLIC"
	ColLIC   = "LIC"
	ColFBF   = "FBF"

	ColGrossSalary     = "Gross Salary"
	ColTotalDeductions = "Total Deductions"
	ColNetSalary       = "Net Salary"

	ColNextIncrementDate = "Next Increment Date"
	ColGroup             = "Group"
	ColBankAccount       = "Bank A/C Number"
)

// RequiredColumns lists the header fields every payroll export must carry.
var RequiredColumns = []string{
	ColEmpNo, ColName, ColDesignation, ColYear, ColMonth,
	ColBasic, ColDA, ColHRA, ColIR, ColSFN, ColSpayTypist, ColP,
	ColIT, ColPT, ColGSLIC, ColLIC, ColFBF,
}

// RawRecord is one parsed CSV data row keyed by header name.
// Every record produced by a single Parse call has the same key set.
type RawRecord map[string]string

// Get returns the value for a column, or "" when the column is absent.
func (r RawRecord) Get(col string) string {
	return r[col]
}

// Amounts holds the individual allowance and deduction components of one
// payroll line, or their sum over many lines.
type Amounts struct {
	Basic      decimal.Decimal `json:"basic"`
	DA         decimal.Decimal `json:"da"`
	HRA        decimal.Decimal `json:"hra"`
	IR         decimal.Decimal `json:"ir"`
	SFN        decimal.Decimal `json:"sfn"`
	SpayTypist decimal.Decimal `json:"spayTypist"`
	P          decimal.Decimal `json:"p"`

	IT    decimal.Decimal `json:"it"`
	PT    decimal.Decimal `json:"pt"`
	GSLIC decimal.Decimal `json:"gslic"`
	LIC   decimal.Decimal `json:"lic"`
	FBF   decimal.Decimal `json:"fbf"`
}

// AmountsFromRecord coerces every component column of r.
func AmountsFromRecord(r RawRecord) Amounts {
	return Amounts{
		Basic:      ParseAmount(r[ColBasic]),
		DA:         ParseAmount(r[ColDA]),
		HRA:        ParseAmount(r[ColHRA]),
		IR:         ParseAmount(r[ColIR]),
		SFN:        ParseAmount(r[ColSFN]),
		SpayTypist: ParseAmount(r[ColSpayTypist]),
		P:          ParseAmount(r[ColP]),
		IT:         ParseAmount(r[ColIT]),
		PT:         ParseAmount(r[ColPT]),
		GSLIC:      ParseAmount(r[ColGSLIC]),
		LIC:        ParseAmount(r[ColLIC]),
		FBF:        ParseAmount(r[ColFBF]),
	}
}

// Allowances returns Basic + DA + HRA + IR + SFN + SPAY-TYPIST + P.
func (a Amounts) Allowances() decimal.Decimal {
	return decimal.Sum(a.Basic, a.DA, a.HRA, a.IR, a.SFN, a.SpayTypist, a.P)
}

// Deductions returns IT + PT + GSLIC + LIC + FBF.
func (a Amounts) Deductions() decimal.Decimal {
	return decimal.Sum(a.IT, a.PT, a.GSLIC, a.LIC, a.FBF)
}

// OtherAllowances groups the minor allowance heads (IR, SFN, SPAY-TYPIST, P).
func (a Amounts) OtherAllowances() decimal.Decimal {
	return decimal.Sum(a.IR, a.SFN, a.SpayTypist, a.P)
}

// Insurance groups the insurance deductions (LIC + GSLIC).
func (a Amounts) Insurance() decimal.Decimal {
	return a.LIC.Add(a.GSLIC)
}

// Add returns the component-wise sum of a and b.
func (a Amounts) Add(b Amounts) Amounts {
	return Amounts{
		Basic:      a.Basic.Add(b.Basic),
		DA:         a.DA.Add(b.DA),
		HRA:        a.HRA.Add(b.HRA),
		IR:         a.IR.Add(b.IR),
		SFN:        a.SFN.Add(b.SFN),
		SpayTypist: a.SpayTypist.Add(b.SpayTypist),
		P:          a.P.Add(b.P),
		IT:         a.IT.Add(b.IT),
		PT:         a.PT.Add(b.PT),
		GSLIC:      a.GSLIC.Add(b.GSLIC),
		LIC:        a.LIC.Add(b.LIC),
		FBF:        a.FBF.Add(b.FBF),
	}
}

// EmployeeRecord is one payroll line for one employee.
// It is created by the Aggregator and never modified afterwards.
type EmployeeRecord struct {
	EmpNo string
	Year  string
	Month string

	Gross      decimal.Decimal
	Deductions decimal.Decimal
	Net        decimal.Decimal
	Components Amounts

	NextIncrementDate string
	Group             string
	BankAccount       string

	Raw RawRecord
}

// Employee is the derived history of one EMP No.
type Employee struct {
	EmpNo       string
	Name        string
	Designation string

	// Records is in CSV order. Use SortedRecords for date order.
	Records []*EmployeeRecord

	TotalNet   decimal.Decimal
	TotalGross decimal.Decimal
	AvgNet     decimal.Decimal
	AvgGross   decimal.Decimal
}

// PeriodSummary accumulates totals for a year or a year-month.
type PeriodSummary struct {
	Year  string
	Month string // empty for a year summary

	TotalNet        decimal.Decimal
	TotalGross      decimal.Decimal
	TotalDeductions decimal.Decimal
	Components      Amounts
	Records         int

	employees map[string]struct{}
}

func newPeriodSummary(year, month string) *PeriodSummary {
	return &PeriodSummary{
		Year:      year,
		Month:     month,
		employees: make(map[string]struct{}),
	}
}

func (p *PeriodSummary) add(rec *EmployeeRecord) {
	p.TotalNet = p.TotalNet.Add(rec.Net)
	p.TotalGross = p.TotalGross.Add(rec.Gross)
	p.TotalDeductions = p.TotalDeductions.Add(rec.Deductions)
	p.Components = p.Components.Add(rec.Components)
	p.employees[rec.EmpNo] = struct{}{}
	p.Records++
}

// EmployeeCount returns the number of distinct EMP Nos seen in the period.
func (p *PeriodSummary) EmployeeCount() int {
	return len(p.employees)
}

// HasEmployee reports whether empNo contributed to the period.
func (p *PeriodSummary) HasEmployee(empNo string) bool {
	_, ok := p.employees[empNo]
	return ok
}

// Key returns the MonthSummary key for the period ("2024-January"),
// or the year alone for a year summary.
func (p *PeriodSummary) Key() string {
	if p.Month == "" {
		return p.Year
	}
	return MonthKey(p.Year, p.Month)
}

// MonthKey builds the AggregateResult.MonthSummary key.
func MonthKey(year, month string) string {
	return year + "-" + month
}

// AggregateResult is the root structure produced by one ingestion.
// It is rebuilt from scratch on every ingestion, never patched.
type AggregateResult struct {
	Employees    map[string]*Employee
	YearSummary  map[string]*PeriodSummary
	MonthSummary map[string]*PeriodSummary

	// Years is sorted lexically; Months keeps first-seen order.
	Years  []string
	Months []string

	TotalEmployees int

	// Records holds every EmployeeRecord in CSV order.
	Records []*EmployeeRecord

	// Mode is the totals mode actually applied (never ModeAuto).
	Mode TotalsMode
}

func newAggregateResult(mode TotalsMode) *AggregateResult {
	return &AggregateResult{
		Employees:    make(map[string]*Employee),
		YearSummary:  make(map[string]*PeriodSummary),
		MonthSummary: make(map[string]*PeriodSummary),
		Years:        []string{},
		Months:       []string{},
		Records:      []*EmployeeRecord{},
		Mode:         mode,
	}
}

// Stats counts what happened to the input lines during parsing.
type Stats struct {
	Lines     int `json:"lines"`     // data lines read, excluding the header
	Processed int `json:"processed"` // records emitted
	Skipped   int `json:"skipped"`   // empty lines and closed rows with an invalid EMP No
	Discarded int `json:"discarded"` // buffers dropped unclosed (cap reached or end of input)
}

// ParseResult is the output of Ingestor.Parse.
type ParseResult struct {
	Header  []string
	Records []RawRecord
	Stats   Stats
}
