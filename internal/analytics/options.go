package analytics

import (
	"sort"
	"time"

	"github.com/ROGER34-CDLAV123/Aula-Code-Dashboards/internal/dataset"
)

// FilterOptions describes what the filter controls can offer: the distinct
// values per categorical attribute and the bounds of each numeric and date
// range. Computed once over the full table, not the filtered view.
type FilterOptions struct {
	Departments []string `json:"departments"`
	Roles       []string `json:"roles"`
	Levels      []string `json:"levels"`
	Sexes       []string `json:"sexes"`
	Statuses    []string `json:"statuses"`

	AgeMin    int     `json:"age_min"`
	AgeMax    int     `json:"age_max"`
	SalaryMin float64 `json:"salary_min"`
	SalaryMax float64 `json:"salary_max"`

	HiredMin      *time.Time `json:"hired_min,omitempty"`
	HiredMax      *time.Time `json:"hired_max,omitempty"`
	TerminatedMin *time.Time `json:"terminated_min,omitempty"`
	TerminatedMax *time.Time `json:"terminated_max,omitempty"`
}

// Options computes the filter-control metadata for a table.
func Options(table []dataset.Employee) FilterOptions {
	opts := FilterOptions{
		Departments: uniqueValues(table, func(e dataset.Employee) string { return e.Department }),
		Roles:       uniqueValues(table, func(e dataset.Employee) string { return e.Role }),
		Levels:      uniqueValues(table, func(e dataset.Employee) string { return e.Level }),
		Sexes:       uniqueValues(table, func(e dataset.Employee) string { return e.Sex }),
		Statuses:    uniqueValues(table, func(e dataset.Employee) string { return e.Status }),
	}

	for i, emp := range table {
		if i == 0 {
			opts.AgeMin, opts.AgeMax = emp.Age, emp.Age
			opts.SalaryMin, opts.SalaryMax = emp.BaseSalary, emp.BaseSalary
		}
		if emp.Age < opts.AgeMin {
			opts.AgeMin = emp.Age
		}
		if emp.Age > opts.AgeMax {
			opts.AgeMax = emp.Age
		}
		if emp.BaseSalary < opts.SalaryMin {
			opts.SalaryMin = emp.BaseSalary
		}
		if emp.BaseSalary > opts.SalaryMax {
			opts.SalaryMax = emp.BaseSalary
		}

		if !emp.HireDate.IsZero() {
			opts.HiredMin = minDate(opts.HiredMin, emp.HireDate)
			opts.HiredMax = maxDate(opts.HiredMax, emp.HireDate)
		}
		if emp.TerminationDate != nil {
			opts.TerminatedMin = minDate(opts.TerminatedMin, *emp.TerminationDate)
			opts.TerminatedMax = maxDate(opts.TerminatedMax, *emp.TerminationDate)
		}
	}

	return opts
}

func uniqueValues(table []dataset.Employee, keyFn func(dataset.Employee) string) []string {
	seen := make(map[string]bool)
	var values []string
	for _, emp := range table {
		val := keyFn(emp)
		if val != "" && !seen[val] {
			seen[val] = true
			values = append(values, val)
		}
	}
	sort.Strings(values)
	return values
}

func minDate(cur *time.Time, t time.Time) *time.Time {
	if cur == nil || t.Before(*cur) {
		return &t
	}
	return cur
}

func maxDate(cur *time.Time, t time.Time) *time.Time {
	if cur == nil || t.After(*cur) {
		return &t
	}
	return cur
}
