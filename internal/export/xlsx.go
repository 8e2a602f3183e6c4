// Package export renders dashboard data as spreadsheet downloads.
package export

import (
	"fmt"
	"io"

	"github.com/JonMunkholm/salaryboard/internal/core"
	"github.com/JonMunkholm/salaryboard/internal/payroll"
	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of the workbook written by WriteDashboard.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet names.
const (
	SheetSummary = "Summary"
	SheetMonthly = "Monthly"
	SheetRecords = "Records"
)

var monthlyHeadings = []interface{}{
	"Year", "Month", "Employees", "Records",
	"Gross", "Deductions", "Net",
	"Basic", "DA", "HRA", "Other Allowances",
	"IT", "PT", "Insurance", "Other Deductions",
}

var recordHeadings = []interface{}{
	"EMP No", "Name", "Designation", "Year", "Month",
	"Gross", "Deductions", "Net",
}

// Filename builds the attachment name for a filter selection,
// e.g. "salary-2024-January.xlsx" or "salary-all.xlsx".
func Filename(year, month string) string {
	switch {
	case year != "" && month != "":
		return fmt.Sprintf("salary-%s-%s.xlsx", year, month)
	case year != "":
		return fmt.Sprintf("salary-%s.xlsx", year)
	case month != "":
		return fmt.Sprintf("salary-%s.xlsx", month)
	}
	return "salary-all.xlsx"
}

// WriteDashboard writes a three-sheet workbook for dash to w: the overview
// metrics, one row per month (newest first) and every record in CSV order.
func WriteDashboard(w io.Writer, dash *core.Dashboard) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetMonthly, SheetRecords} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	if err := writeSummary(f, dash, bold); err != nil {
		return err
	}
	if err := writeRows(f, SheetMonthly, monthlyHeadings, monthlyRows(dash.Cards), bold); err != nil {
		return err
	}
	if err := writeRows(f, SheetRecords, recordHeadings, recordRows(dash.Records), bold); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, dash *core.Dashboard, bold int) error {
	m := dash.Metrics
	rows := [][]interface{}{
		{"Period", dash.PeriodText},
		{"Employees", m.Employees},
		{"Records", m.Records},
		{"Total Gross", money(m.Gross)},
		{"Total Deductions", money(m.Deductions)},
		{"Total Net", money(m.Net)},
		{"Basic", money(m.Components.Basic)},
		{"DA", money(m.Components.DA)},
		{"HRA", money(m.Components.HRA)},
		{"Other Allowances", money(m.Components.OtherAllowances())},
		{"Income Tax", money(m.Components.IT)},
		{"Professional Tax", money(m.Components.PT)},
		{"Insurance", money(m.Components.Insurance())},
		{"Other Deductions", money(m.Components.FBF)},
	}

	for i, row := range rows {
		if err := setRow(f, SheetSummary, i+1, row); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(SheetSummary, "A1", fmt.Sprintf("A%d", len(rows)), bold); err != nil {
		return fmt.Errorf("style summary: %w", err)
	}
	return f.SetColWidth(SheetSummary, "A", "B", 22)
}

func writeRows(f *excelize.File, sheet string, headings []interface{}, rows [][]interface{}, bold int) error {
	if err := setRow(f, sheet, 1, headings); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headings), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
		return fmt.Errorf("style %s header: %w", sheet, err)
	}

	for i, row := range rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func monthlyRows(cards []*payroll.PeriodSummary) [][]interface{} {
	rows := make([][]interface{}, 0, len(cards))
	for _, c := range cards {
		a := c.Components
		rows = append(rows, []interface{}{
			c.Year, c.Month, c.EmployeeCount(), c.Records,
			money(c.TotalGross), money(c.TotalDeductions), money(c.TotalNet),
			money(a.Basic), money(a.DA), money(a.HRA), money(a.OtherAllowances()),
			money(a.IT), money(a.PT), money(a.Insurance()), money(a.FBF),
		})
	}
	return rows
}

func recordRows(records []*payroll.EmployeeRecord) [][]interface{} {
	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, []interface{}{
			r.EmpNo, r.Raw.Get(payroll.ColName), r.Raw.Get(payroll.ColDesignation),
			r.Year, r.Month,
			money(r.Gross), money(r.Deductions), money(r.Net),
		})
	}
	return rows
}
