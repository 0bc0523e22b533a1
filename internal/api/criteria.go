package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ROGER34-CDLAV123/Aula-Code-Dashboards/internal/analytics"
)

const criteriaDateLayout = "2006-01-02"

// ParseCriteria rebuilds the filter criteria from the request query string.
// Every parameter is optional. Unparseable scalar values deactivate their
// predicate (vacuously true); a min above its max is handled downstream by
// the filter engine, which degrades to an empty view.
//
// Multi-value parameters accept both repetition (?department=a&department=b)
// and comma separation (?department=a,b).
func ParseCriteria(r *http.Request) analytics.Criteria {
	q := r.URL.Query()

	c := analytics.Criteria{
		Departments:  multiValue(q["department"]),
		Roles:        multiValue(q["role"]),
		Levels:       multiValue(q["level"]),
		Sexes:        multiValue(q["sex"]),
		Statuses:     multiValue(q["status"]),
		NameContains: strings.TrimSpace(q.Get("name")),
	}

	c.MinAge = intParam(q.Get("min_age"))
	c.MaxAge = intParam(q.Get("max_age"))
	c.MinSalary = floatParam(q.Get("min_salary"))
	c.MaxSalary = floatParam(q.Get("max_salary"))
	c.HiredFrom = dateParam(q.Get("hired_from"))
	c.HiredTo = dateParam(q.Get("hired_to"))
	c.TerminatedFrom = dateParam(q.Get("terminated_from"))
	c.TerminatedTo = dateParam(q.Get("terminated_to"))

	return c
}

func multiValue(raw []string) []string {
	var out []string
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func intParam(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &n
}

func floatParam(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &f
}

func dateParam(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(criteriaDateLayout, strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &t
}
