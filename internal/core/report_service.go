package core

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/ROGER34-CDLAV123/Aula-Code-Dashboards/internal/analytics"
	"github.com/ROGER34-CDLAV123/Aula-Code-Dashboards/internal/dataset"
	"github.com/ROGER34-CDLAV123/Aula-Code-Dashboards/internal/export"
)

// ReportService owns the loaded employee table and answers every dataset
// question: filtered views, KPI sets, chart aggregates, filter options and
// exports. The table is immutable; all methods are pure reads.
type ReportService struct {
	table   []dataset.Employee
	options analytics.FilterOptions
	logger  *zap.Logger
}

func NewReportService(table []dataset.Employee, logger *zap.Logger) *ReportService {
	return &ReportService{
		table:   table,
		options: analytics.Options(table),
		logger:  logger,
	}
}

// Employees returns the filtered view for the given criteria.
func (s *ReportService) Employees(c analytics.Criteria) []dataset.Employee {
	return analytics.Apply(s.table, c)
}

// Summary computes the KPI set over the filtered view.
func (s *ReportService) Summary(c analytics.Criteria) analytics.Snapshot {
	return analytics.Summarize(analytics.Apply(s.table, c))
}

// Charts computes the chart set over the filtered view.
func (s *ReportService) Charts(c analytics.Criteria) []analytics.ChartConfig {
	return analytics.BuildCharts(analytics.Apply(s.table, c))
}

// Options returns filter-control metadata for the full table.
func (s *ReportService) Options() analytics.FilterOptions {
	return s.options
}

// Export serializes the filtered view in the requested format.
func (s *ReportService) Export(w io.Writer, c analytics.Criteria, format string) error {
	view := analytics.Apply(s.table, c)
	switch format {
	case export.FormatCSV:
		return export.WriteCSV(w, view)
	case export.FormatXLSX:
		return export.WriteXLSX(w, view)
	default:
		return &export.ExportError{Format: format, Err: fmt.Errorf("unsupported format")}
	}
}

// DatasetDigest renders a short text summary of the full table for the
// assistant's system instruction.
func (s *ReportService) DatasetDigest() string {
	snap := analytics.Summarize(s.table)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Total records: %d. Active headcount: %d. Terminated: %d.\n",
		len(s.table), snap.Headcount, snap.Terminated)
	fmt.Fprintf(&sb, "Monthly payroll (active): %s. Total monthly cost (active): %s.\n",
		analytics.FormatCurrency(snap.Payroll), analytics.FormatCurrency(snap.TotalCost))
	fmt.Fprintf(&sb, "Average age: %.1f years. Average performance rating: %.2f.\n",
		snap.AverageAge, snap.AverageRating)

	byDepartment := analytics.CountBy(s.table, func(e dataset.Employee) string { return e.Department })
	if len(byDepartment) > 0 {
		sb.WriteString("Headcount by department: ")
		parts := make([]string, 0, len(byDepartment))
		for _, g := range byDepartment {
			parts = append(parts, fmt.Sprintf("%s %d", g.Key, g.Count))
		}
		sb.WriteString(strings.Join(parts, ", "))
		sb.WriteString(".")
	}
	return sb.String()
}
