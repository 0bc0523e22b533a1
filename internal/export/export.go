// Package export serializes a filtered employee view into downloadable
// tabular formats. Output is built fully in memory before any byte reaches
// the response writer, so a failed export never produces a partial file.
package export

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ROGER34-CDLAV123/Aula-Code-Dashboards/internal/dataset"
)

// Supported formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ExportError reports a failed serialization. The whole export aborts; the
// dataset itself is never touched.
type ExportError struct {
	Format string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s: %v", e.Format, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

const exportDateLayout = "2006-01-02"

// rowStrings renders one employee as text cells in the canonical column
// order from dataset.Columns.
func rowStrings(emp dataset.Employee) []string {
	termination := ""
	if emp.TerminationDate != nil {
		termination = emp.TerminationDate.Format(exportDateLayout)
	}
	return []string{
		strconv.FormatInt(emp.ID, 10),
		emp.FullName,
		emp.Department,
		emp.Role,
		emp.Level,
		emp.Sex,
		formatDate(emp.BirthDate),
		formatDate(emp.HireDate),
		termination,
		formatNumber(emp.BaseSalary),
		formatNumber(emp.Taxes),
		formatNumber(emp.Benefits),
		formatNumber(emp.TransportAllowance),
		formatNumber(emp.MealAllowance),
		formatNumber(emp.Rating),
		strconv.Itoa(emp.Age),
		strconv.Itoa(emp.TenureMonths),
		emp.Status,
		formatNumber(emp.TotalMonthlyCost),
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(exportDateLayout)
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
