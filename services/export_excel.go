package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// InvoiceRegisterRow is one invoice in the register export.
type InvoiceRegisterRow struct {
	InvoiceNumber string
	ClientName    string
	IssueDate     string
	DueDate       string
	Status        string
	Currency      string
	Subtotal      float64
	TotalTax      float64
	Discount      float64
	Total         float64
}

// GenerateInvoiceRegisterExcel creates an Excel register of invoices and
// returns the file contents as a byte slice.
func GenerateInvoiceRegisterExcel(title string, rows []InvoiceRegisterRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := title
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = "Invoices"
	}

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}
	lastCol := columns[len(columns)-1]

	widths := []float64{18, 30, 12, 12, 10, 9, 14, 12, 12, 14}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	bodyStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create body style: %w", err)
	}

	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create total style: %w", err)
	}

	// Row 1: title merged across all columns.
	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(title))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	// Row 3: column headers.
	headers := []string{"Number", "Client", "Issued", "Due", "Status", "Currency", "Subtotal", "Tax", "Discount", "Total"}
	for i, h := range headers {
		f.SetCellValue(sheetName, fmt.Sprintf("%s3", columns[i]), h)
	}
	f.SetCellStyle(sheetName, "A3", lastCol+"3", headerStyle)

	// Data rows from row 4.
	rowNum := 4
	var grandTotal float64
	for _, r := range rows {
		rowStr := fmt.Sprintf("%d", rowNum)
		f.SetCellValue(sheetName, "A"+rowStr, sanitizeExcelCell(r.InvoiceNumber))
		f.SetCellValue(sheetName, "B"+rowStr, sanitizeExcelCell(r.ClientName))
		f.SetCellValue(sheetName, "C"+rowStr, r.IssueDate)
		f.SetCellValue(sheetName, "D"+rowStr, r.DueDate)
		f.SetCellValue(sheetName, "E"+rowStr, r.Status)
		f.SetCellValue(sheetName, "F"+rowStr, r.Currency)
		f.SetCellValue(sheetName, "G"+rowStr, FormatAmount(r.Subtotal))
		f.SetCellValue(sheetName, "H"+rowStr, FormatAmount(r.TotalTax))
		f.SetCellValue(sheetName, "I"+rowStr, FormatAmount(r.Discount))
		f.SetCellValue(sheetName, "J"+rowStr, FormatAmount(r.Total))
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, bodyStyle)

		grandTotal += r.Total
		rowNum++
	}

	// Summary row after a blank line.
	rowNum++
	summaryRow := fmt.Sprintf("%d", rowNum)
	f.SetCellValue(sheetName, "I"+summaryRow, "Total:")
	f.SetCellStyle(sheetName, "I"+summaryRow, "I"+summaryRow, totalStyle)
	f.SetCellValue(sheetName, "J"+summaryRow, FormatAmount(grandTotal))
	f.SetCellStyle(sheetName, "J"+summaryRow, "J"+summaryRow, totalStyle)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// ClientExportRow is one client in the client list export. The column set
// matches the import template so an export round-trips through import.
type ClientExportRow struct {
	Name    string
	Email   string
	Phone   string
	Address string
	City    string
	Country string
	Notes   string
}

// GenerateClientListExcel creates an Excel export of the client list.
func GenerateClientListExcel(rows []ClientExportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Clients"
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F", "G"}
	lastCol := columns[len(columns)-1]

	widths := []float64{28, 28, 16, 36, 16, 16, 36}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	bodyStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create body style: %w", err)
	}

	for i, field := range ClientImportFields() {
		label := field.Label
		if field.Required {
			label += " *"
		}
		f.SetCellValue(sheetName, fmt.Sprintf("%s1", columns[i]), label)
	}
	f.SetCellStyle(sheetName, "A1", lastCol+"1", headerStyle)

	rowNum := 2
	for _, r := range rows {
		rowStr := fmt.Sprintf("%d", rowNum)
		f.SetCellValue(sheetName, "A"+rowStr, sanitizeExcelCell(r.Name))
		f.SetCellValue(sheetName, "B"+rowStr, sanitizeExcelCell(r.Email))
		f.SetCellValue(sheetName, "C"+rowStr, sanitizeExcelCell(r.Phone))
		f.SetCellValue(sheetName, "D"+rowStr, sanitizeExcelCell(r.Address))
		f.SetCellValue(sheetName, "E"+rowStr, sanitizeExcelCell(r.City))
		f.SetCellValue(sheetName, "F"+rowStr, sanitizeExcelCell(r.Country))
		f.SetCellValue(sheetName, "G"+rowStr, sanitizeExcelCell(r.Notes))
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, bodyStyle)
		rowNum++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
