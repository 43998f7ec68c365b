package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"mime/multipart"
	"regexp"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/xuri/excelize/v2"
)

// TemplateField describes one column in the client import template.
type TemplateField struct {
	Key      string
	Label    string
	Required bool
}

// ClientImportFields returns the columns of the client import template in
// order. The same set drives the export so files round-trip.
func ClientImportFields() []TemplateField {
	return []TemplateField{
		{Key: "name", Label: "Name", Required: true},
		{Key: "email", Label: "Email"},
		{Key: "phone", Label: "Phone"},
		{Key: "address", Label: "Address"},
		{Key: "city", Label: "City"},
		{Key: "country", Label: "Country"},
		{Key: "notes", Label: "Notes"},
	}
}

// ImportRowError represents a single field-level error on one row.
type ImportRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportValidationResult is returned after parsing and validating an
// uploaded file.
type ImportValidationResult struct {
	TotalRows  int                 `json:"total_rows"`
	ValidRows  int                 `json:"valid_rows"`
	ErrorRows  int                 `json:"error_rows"`
	Errors     []ImportRowError    `json:"errors"`
	ParsedRows []map[string]string `json:"-"`
	FileName   string              `json:"-"`
}

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return allRows[0], allRows[1:], nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the
// first sheet.
func parseExcel(file multipart.File) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return rows[0], rows[1:], nil
}

// mapHeadersToFields maps uploaded column headers to template field keys.
// Returns an ordered list of field keys (one per column, "" for unknown
// columns) and the unrecognized headers.
func mapHeadersToFields(headers []string, fields []TemplateField) ([]string, []string) {
	labelToKey := make(map[string]string, len(fields))
	for _, f := range fields {
		labelToKey[strings.ToLower(strings.TrimSpace(f.Label))] = f.Key
	}

	mapped := make([]string, len(headers))
	var unrecognized []string

	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		// Strip trailing " *" that our template adds for required fields
		norm = strings.TrimSpace(strings.TrimSuffix(norm, " *"))

		if key, ok := labelToKey[norm]; ok {
			mapped[i] = key
		} else {
			mapped[i] = ""
			unrecognized = append(unrecognized, h)
		}
	}
	return mapped, unrecognized
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateClientFile parses and validates an uploaded client file (.csv or
// .xlsx). It never writes anything; CommitClientImport does that after the
// user confirms.
func ValidateClientFile(file multipart.File, fileName string) (*ImportValidationResult, error) {
	fields := ClientImportFields()

	var headers []string
	var dataRows [][]string
	var err error

	lowerName := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lowerName, ".csv"):
		headers, dataRows, err = parseCSV(file)
	case strings.HasSuffix(lowerName, ".xlsx"):
		headers, dataRows, err = parseExcel(file)
	default:
		return nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
	if err != nil {
		return nil, err
	}

	columnKeys, _ := mapHeadersToFields(headers, fields)

	keyToLabel := make(map[string]string, len(fields))
	isRequired := make(map[string]bool)
	for _, f := range fields {
		keyToLabel[f.Key] = f.Label
		if f.Required {
			isRequired[f.Key] = true
		}
	}

	result := &ImportValidationResult{
		TotalRows:  len(dataRows),
		FileName:   fileName,
		ParsedRows: make([]map[string]string, 0, len(dataRows)),
	}

	for rowIdx, row := range dataRows {
		rowNum := rowIdx + 2 // 1-indexed, +1 for header row
		rowData := make(map[string]string)
		var rowErrors []ImportRowError

		for colIdx, key := range columnKeys {
			if key == "" {
				continue
			}
			value := ""
			if colIdx < len(row) {
				value = strings.TrimSpace(row[colIdx])
			}
			rowData[key] = value
		}

		for key := range isRequired {
			if rowData[key] == "" {
				label := keyToLabel[key]
				rowErrors = append(rowErrors, ImportRowError{
					Row:     rowNum,
					Field:   label,
					Message: fmt.Sprintf("%s is required", label),
				})
			}
		}

		if v := rowData["email"]; v != "" && !emailPattern.MatchString(v) {
			rowErrors = append(rowErrors, ImportRowError{
				Row:     rowNum,
				Field:   "Email",
				Message: "Invalid email format",
			})
		}

		if len(rowErrors) > 0 {
			result.Errors = append(result.Errors, rowErrors...)
		}
		result.ParsedRows = append(result.ParsedRows, rowData)
	}

	errorRowSet := make(map[int]bool)
	for _, e := range result.Errors {
		errorRowSet[e.Row] = true
	}
	result.ErrorRows = len(errorRowSet)
	result.ValidRows = result.TotalRows - result.ErrorRows

	return result, nil
}

// CommitClientImport saves all parsed rows as client records owned by the
// given user. It should only be called with a result that validated cleanly.
func CommitClientImport(app *pocketbase.PocketBase, ownerID string, rows []map[string]string) (int, error) {
	col, err := app.FindCollectionByNameOrId("clients")
	if err != nil {
		return 0, fmt.Errorf("clients collection not found: %w", err)
	}

	saved := 0
	for _, rowData := range rows {
		record := core.NewRecord(col)
		record.Set("owner", ownerID)
		for _, f := range ClientImportFields() {
			record.Set(f.Key, rowData[f.Key])
		}
		if err := app.Save(record); err != nil {
			return saved, fmt.Errorf("save client row %d: %w", saved+1, err)
		}
		saved++
	}
	return saved, nil
}
