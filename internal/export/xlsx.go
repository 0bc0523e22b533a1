package export

import (
	"errors"
	"io"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/ROGER34-CDLAV123/Aula-Code-Dashboards/internal/dataset"
)

var errInvalidEncoding = errors.New("cell contains invalid UTF-8")

const sheetName = "Employees"

// WriteXLSX serializes the view as a single-sheet workbook. Numeric cells
// keep their native type so the file re-imports cleanly.
func WriteXLSX(w io.Writer, view []dataset.Employee) error {
	wb := excelize.NewFile()
	defer wb.Close()

	if err := wb.SetSheetName("Sheet1", sheetName); err != nil {
		return &ExportError{Format: FormatXLSX, Err: err}
	}

	header := make([]interface{}, 0, len(dataset.Columns()))
	for _, col := range dataset.Columns() {
		header = append(header, col)
	}
	if err := wb.SetSheetRow(sheetName, "A1", &header); err != nil {
		return &ExportError{Format: FormatXLSX, Err: err}
	}

	for i, emp := range view {
		row := xlsxRow(emp)
		for _, cell := range row {
			if s, ok := cell.(string); ok && !utf8.ValidString(s) {
				return &ExportError{Format: FormatXLSX, Err: errInvalidEncoding}
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return &ExportError{Format: FormatXLSX, Err: err}
		}
		if err := wb.SetSheetRow(sheetName, cell, &row); err != nil {
			return &ExportError{Format: FormatXLSX, Err: err}
		}
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		return &ExportError{Format: FormatXLSX, Err: err}
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return &ExportError{Format: FormatXLSX, Err: err}
	}
	return nil
}

func xlsxRow(emp dataset.Employee) []interface{} {
	termination := ""
	if emp.TerminationDate != nil {
		termination = emp.TerminationDate.Format(exportDateLayout)
	}
	return []interface{}{
		emp.ID,
		emp.FullName,
		emp.Department,
		emp.Role,
		emp.Level,
		emp.Sex,
		formatDate(emp.BirthDate),
		formatDate(emp.HireDate),
		termination,
		emp.BaseSalary,
		emp.Taxes,
		emp.Benefits,
		emp.TransportAllowance,
		emp.MealAllowance,
		emp.Rating,
		emp.Age,
		emp.TenureMonths,
		emp.Status,
		emp.TotalMonthlyCost,
	}
}
