package analytics

import (
	"strings"
	"time"

	"github.com/ROGER34-CDLAV123/Aula-Code-Dashboards/internal/dataset"
)

// Criteria is the set of optional predicates a user can activate, one per
// filterable attribute. Predicates are AND-combined; values inside a set
// predicate are OR-combined. A nil/empty field means "no restriction".
type Criteria struct {
	Departments []string `json:"departments,omitempty"`
	Roles       []string `json:"roles,omitempty"`
	Levels      []string `json:"levels,omitempty"`
	Sexes       []string `json:"sexes,omitempty"`
	Statuses    []string `json:"statuses,omitempty"`

	NameContains string `json:"name_contains,omitempty"`

	MinAge *int `json:"min_age,omitempty"`
	MaxAge *int `json:"max_age,omitempty"`

	MinSalary *float64 `json:"min_salary,omitempty"`
	MaxSalary *float64 `json:"max_salary,omitempty"`

	HiredFrom      *time.Time `json:"hired_from,omitempty"`
	HiredTo        *time.Time `json:"hired_to,omitempty"`
	TerminatedFrom *time.Time `json:"terminated_from,omitempty"`
	TerminatedTo   *time.Time `json:"terminated_to,omitempty"`
}

// IsEmpty reports whether no predicate is active.
func (c Criteria) IsEmpty() bool {
	return len(c.Departments) == 0 && len(c.Roles) == 0 && len(c.Levels) == 0 &&
		len(c.Sexes) == 0 && len(c.Statuses) == 0 && c.NameContains == "" &&
		c.MinAge == nil && c.MaxAge == nil &&
		c.MinSalary == nil && c.MaxSalary == nil &&
		c.HiredFrom == nil && c.HiredTo == nil &&
		c.TerminatedFrom == nil && c.TerminatedTo == nil
}

// valid reports whether every active range is well-formed. A min above its
// max is treated as "no results", not as a hard failure.
func (c Criteria) valid() bool {
	if c.MinAge != nil && c.MaxAge != nil && *c.MinAge > *c.MaxAge {
		return false
	}
	if c.MinSalary != nil && c.MaxSalary != nil && *c.MinSalary > *c.MaxSalary {
		return false
	}
	if c.HiredFrom != nil && c.HiredTo != nil && c.HiredFrom.After(*c.HiredTo) {
		return false
	}
	if c.TerminatedFrom != nil && c.TerminatedTo != nil && c.TerminatedFrom.After(*c.TerminatedTo) {
		return false
	}
	return true
}

// Apply returns the subset of table satisfying every active predicate.
// Single pass, no side effects. An empty result is valid output.
func Apply(table []dataset.Employee, c Criteria) []dataset.Employee {
	if c.IsEmpty() {
		return table
	}
	if !c.valid() {
		return []dataset.Employee{}
	}

	departments := toLowerSet(c.Departments)
	roles := toLowerSet(c.Roles)
	levels := toLowerSet(c.Levels)
	sexes := toLowerSet(c.Sexes)
	statuses := toLowerSet(c.Statuses)
	needle := strings.ToLower(c.NameContains)

	out := make([]dataset.Employee, 0, len(table))
	for _, emp := range table {
		if !inSet(departments, emp.Department) ||
			!inSet(roles, emp.Role) ||
			!inSet(levels, emp.Level) ||
			!inSet(sexes, emp.Sex) ||
			!inSet(statuses, emp.Status) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(emp.FullName), needle) {
			continue
		}
		if c.MinAge != nil && emp.Age < *c.MinAge {
			continue
		}
		if c.MaxAge != nil && emp.Age > *c.MaxAge {
			continue
		}
		if c.MinSalary != nil && emp.BaseSalary < *c.MinSalary {
			continue
		}
		if c.MaxSalary != nil && emp.BaseSalary > *c.MaxSalary {
			continue
		}
		// Date ranges keep records with no value in the filtered column,
		// so a hire-period filter does not drop rows missing a hire date.
		if !dateInRange(timeOrNil(emp.HireDate), c.HiredFrom, c.HiredTo) {
			continue
		}
		if !dateInRange(emp.TerminationDate, c.TerminatedFrom, c.TerminatedTo) {
			continue
		}
		out = append(out, emp)
	}
	return out
}

func toLowerSet(items []string) map[string]bool {
	if len(items) == 0 {
		return nil
	}
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[strings.ToLower(item)] = true
	}
	return set
}

func inSet(set map[string]bool, val string) bool {
	if set == nil {
		return true
	}
	return set[strings.ToLower(val)]
}

func timeOrNil(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func dateInRange(t, from, to *time.Time) bool {
	if from == nil && to == nil {
		return true
	}
	if t == nil {
		return true
	}
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}
