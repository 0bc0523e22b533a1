package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// LoadError reports a dataset that could not be loaded: missing file,
// unreadable content or an incomplete column set. It aborts startup.
type LoadError struct {
	Path   string
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("load %s: %s", e.Path, e.Reason)
}

func (e *LoadError) Unwrap() error { return e.Err }

var requiredColumns = []string{
	"id", "full_name", "department", "role", "level", "sex",
	"birth_date", "hire_date", "base_salary",
}

// Header aliases so exports from other tools still map onto the schema.
var headerAliases = map[string]string{
	"name":        "full_name",
	"employee_id": "id",
	"salary":      "base_salary",
	"area":        "department",
	"position":    "role",
	"evaluation":  "rating",
}

// Load reads the employee table from path, dispatching on the file
// extension (.xlsx or .csv). Derived fields are computed against the
// current date.
func Load(path string) ([]Employee, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Reason: "cannot open file", Err: err}
	}
	defer f.Close()

	now := time.Now()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		emps, err := ParseXLSX(f, now)
		if err != nil {
			return nil, wrapLoadErr(path, err)
		}
		return emps, nil
	case ".csv":
		emps, err := ParseCSV(f, now)
		if err != nil {
			return nil, wrapLoadErr(path, err)
		}
		return emps, nil
	default:
		return nil, &LoadError{Path: path, Reason: "unsupported file extension"}
	}
}

func wrapLoadErr(path string, err error) error {
	if le, ok := err.(*LoadError); ok {
		le.Path = path
		return le
	}
	return &LoadError{Path: path, Reason: "parse failed", Err: err}
}

// ParseCSV reads a delimited-text employee table. The first row is the
// header; unmapped columns are ignored.
func ParseCSV(r io.Reader, now time.Time) ([]Employee, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	headers, err := cr.Read()
	if err != nil {
		return nil, &LoadError{Reason: "cannot read header row", Err: err}
	}

	var rows [][]string
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &LoadError{Reason: "cannot read data row", Err: err}
		}
		rows = append(rows, row)
	}

	return rowsToEmployees(headers, rows, now)
}

// ParseXLSX reads the first sheet of a spreadsheet as the employee table.
func ParseXLSX(r io.Reader, now time.Time) ([]Employee, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &LoadError{Reason: "cannot open workbook", Err: err}
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, &LoadError{Reason: "workbook has no sheets"}
	}

	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, &LoadError{Reason: "cannot read sheet rows", Err: err}
	}
	if len(rows) == 0 {
		return nil, &LoadError{Reason: "sheet is empty"}
	}

	return rowsToEmployees(rows[0], rows[1:], now)
}

func rowsToEmployees(headers []string, rows [][]string, now time.Time) ([]Employee, error) {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		key := normalizeHeader(h)
		if alias, ok := headerAliases[key]; ok {
			key = alias
		}
		if _, seen := index[key]; !seen {
			index[key] = i
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &LoadError{Reason: "missing required columns: " + strings.Join(missing, ", ")}
	}

	cell := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	employees := make([]Employee, 0, len(rows))
	for _, row := range rows {
		if isBlankRow(row) {
			continue
		}

		emp := Employee{
			ID:                 parseInt(cell(row, "id")),
			FullName:           cell(row, "full_name"),
			Department:         cell(row, "department"),
			Role:               cell(row, "role"),
			Level:              cell(row, "level"),
			Sex:                normalizeSex(cell(row, "sex")),
			BirthDate:          parseDate(cell(row, "birth_date")),
			HireDate:           parseDate(cell(row, "hire_date")),
			BaseSalary:         parseFloat(cell(row, "base_salary")),
			Taxes:              parseFloat(cell(row, "taxes")),
			Benefits:           parseFloat(cell(row, "benefits")),
			TransportAllowance: parseFloat(cell(row, "transport_allowance")),
			MealAllowance:      parseFloat(cell(row, "meal_allowance")),
			Rating:             parseFloat(cell(row, "rating")),
		}

		if t := parseDate(cell(row, "termination_date")); !t.IsZero() {
			emp.TerminationDate = &t
		}

		deriveFields(&emp, now)
		employees = append(employees, emp)
	}

	return employees, nil
}

// deriveFields fills the computed columns: age, tenure, status and total
// monthly cost. Negative spans clamp to zero.
func deriveFields(emp *Employee, now time.Time) {
	if !emp.BirthDate.IsZero() {
		age := int(now.Sub(emp.BirthDate).Hours() / 24 / 365)
		if age < 0 {
			age = 0
		}
		emp.Age = age
	}

	if !emp.HireDate.IsZero() {
		months := (now.Year()-emp.HireDate.Year())*12 + int(now.Month()) - int(emp.HireDate.Month())
		if months < 0 {
			months = 0
		}
		emp.TenureMonths = months
	}

	if emp.TerminationDate != nil {
		emp.Status = StatusTerminated
	} else {
		emp.Status = StatusActive
	}

	emp.TotalMonthlyCost = emp.BaseSalary + emp.Taxes + emp.Benefits +
		emp.TransportAllowance + emp.MealAllowance
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "_")
	h = strings.ReplaceAll(h, "-", "_")
	return h
}

func normalizeSex(s string) string {
	switch strings.ToUpper(s) {
	case "M", "MALE", "MASCULINO":
		return "M"
	case "F", "FEMALE", "FEMININO":
		return "F"
	default:
		return strings.ToUpper(s)
	}
}

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2006-01-02 15:04:05",
	"01-02-06",
	time.RFC3339,
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func parseInt(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
