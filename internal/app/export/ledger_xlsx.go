package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/yigit/schooldesk/internal/app/ledger"
	"github.com/yigit/schooldesk/internal/app/models"
)

// Workbook sheet names
const (
	SheetReport   = "Report"
	SheetIncomes  = "Incomes"
	SheetExpenses = "Expenses"
)

var ledgerHeader = []string{"Date", "Type", "Description", "Amount"}

// LedgerWorkbook writes a period report as an xlsx workbook with the full report on the
// first sheet and one sheet per entry type.
func LedgerWorkbook(report ledger.Report) (*bytes.Buffer, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(SheetReport)
	if err != nil {
		return nil, "", fmt.Errorf("create report sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, "", fmt.Errorf("remove default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, "", fmt.Errorf("create header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, "", fmt.Errorf("create amount style: %w", err)
	}

	row, err := writeEntries(f, SheetReport, report.Entries, headerStyle, moneyStyle)
	if err != nil {
		return nil, "", err
	}

	row++
	totals := []struct {
		label string
		value float64
	}{
		{"Total Income", report.Totals.Income.InexactFloat64()},
		{"Total Expense", report.Totals.Expense.InexactFloat64()},
		{"Balance", report.Totals.Balance().InexactFloat64()},
	}
	for _, t := range totals {
		if err := f.SetCellValue(SheetReport, cell("C", row), t.label); err != nil {
			return nil, "", err
		}
		if err := f.SetCellValue(SheetReport, cell("D", row), t.value); err != nil {
			return nil, "", err
		}
		_ = f.SetCellStyle(SheetReport, cell("C", row), cell("C", row), headerStyle)
		_ = f.SetCellStyle(SheetReport, cell("D", row), cell("D", row), moneyStyle)
		row++
	}

	incomes, expenses := ledger.Split(report.Entries)
	for _, s := range []struct {
		name    string
		entries []models.LedgerEntry
	}{
		{SheetIncomes, incomes},
		{SheetExpenses, expenses},
	} {
		if _, err := f.NewSheet(s.name); err != nil {
			return nil, "", fmt.Errorf("create %s sheet: %w", s.name, err)
		}
		if _, err := writeEntries(f, s.name, s.entries, headerStyle, moneyStyle); err != nil {
			return nil, "", err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("write workbook: %w", err)
	}
	return buf, fmt.Sprintf("Cashbook_%s.xlsx", report.Query.Label()), nil
}

// writeEntries fills a header row and one row per entry. It returns the next free row.
func writeEntries(f *excelize.File, sheet string, entries []models.LedgerEntry, headerStyle, moneyStyle int) (int, error) {
	_ = f.SetColWidth(sheet, "A", "A", 12)
	_ = f.SetColWidth(sheet, "B", "B", 10)
	_ = f.SetColWidth(sheet, "C", "C", 40)
	_ = f.SetColWidth(sheet, "D", "D", 14)

	for i, h := range ledgerHeader {
		if err := f.SetCellValue(sheet, cell(colName(i), 1), h); err != nil {
			return 0, fmt.Errorf("write %s header: %w", sheet, err)
		}
	}
	_ = f.SetCellStyle(sheet, "A1", cell(colName(len(ledgerHeader)-1), 1), headerStyle)

	row := 2
	for _, e := range entries {
		values := []interface{}{e.Date.String(), string(e.Type), e.Description, e.Amount.InexactFloat64()}
		for i, v := range values {
			if err := f.SetCellValue(sheet, cell(colName(i), row), v); err != nil {
				return 0, fmt.Errorf("write %s row %d: %w", sheet, row, err)
			}
		}
		_ = f.SetCellStyle(sheet, cell("D", row), cell("D", row), moneyStyle)
		row++
	}
	return row, nil
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
