package upload

import (
	"bytes"
	"fmt"

	"financials/models"

	"github.com/xuri/excelize/v2"
)

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
}

func writeHeader(f *excelize.File, sheet string, headers []string) error {
	style, err := headerStyle(f)
	if err != nil {
		return err
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}
	last, _ := excelize.ColumnNumberToName(len(headers))
	return f.SetColWidth(sheet, "A", last, 16)
}

func newSheetFile(sheet string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func fileBytes(f *excelize.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExpenseTemplate 生成 12 个月的费用录入模板，其余列留空
func ExpenseTemplate(year int) ([]byte, error) {
	f, err := newSheetFile(ExpensesSheet)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	headers := ExpenseColumns()
	if err := writeHeader(f, ExpensesSheet, headers); err != nil {
		return nil, err
	}
	monthCol, _ := excelize.ColumnNumberToName(len(headers) - 1)
	yearCol, _ := excelize.ColumnNumberToName(len(headers))
	for m := 1; m <= 12; m++ {
		row := m + 1
		if err := f.SetCellValue(ExpensesSheet, fmt.Sprintf("%s%d", monthCol, row), m); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(ExpensesSheet, fmt.Sprintf("%s%d", yearCol, row), year); err != nil {
			return nil, err
		}
	}
	return fileBytes(f)
}

// UnitTemplate 为物业生成单元面积模板，unit_number 从 1 到户数
func UnitTemplate(p models.Property) ([]byte, error) {
	f, err := newSheetFile(UnitsSheet)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := writeHeader(f, UnitsSheet, UnitColumns()); err != nil {
		return nil, err
	}
	for n := 1; n <= p.Units; n++ {
		row := n + 1
		if err := f.SetCellValue(UnitsSheet, fmt.Sprintf("A%d", row), p.Name); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(UnitsSheet, fmt.Sprintf("B%d", row), n); err != nil {
			return nil, err
		}
	}
	return fileBytes(f)
}
