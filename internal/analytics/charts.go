package analytics

import "github.com/ROGER34-CDLAV123/Aula-Code-Dashboards/internal/dataset"

// ChartConfig is render-ready chart data. The web layer hands it to the
// charting library unchanged; the JSON API returns it verbatim.
type ChartConfig struct {
	ID     string    `json:"id"`
	Type   string    `json:"type"` // "bar" or "pie"
	Title  string    `json:"title"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Colors []string  `json:"colors"`
}

var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// BuildCharts produces the dashboard chart set for a filtered view. Charts
// over an empty view come back with empty label/value slices, which the UI
// renders as blank panels.
func BuildCharts(view []dataset.Employee) []ChartConfig {
	byDepartment := CountBy(view, func(e dataset.Employee) string { return e.Department })

	salaryByRole := AverageBy(view,
		func(e dataset.Employee) string { return e.Role },
		func(e dataset.Employee) float64 { return e.BaseSalary })
	SortByValueDesc(salaryByRole)

	byStatus := CountBy(view, func(e dataset.Employee) string { return e.Status })

	byAge := CountByOrdered(view,
		func(e dataset.Employee) string { return AgeBucket(e.Age) }, AgeBucketOrder)

	byTenure := CountByOrdered(view,
		func(e dataset.Employee) string { return TenureBucket(e.TenureMonths) }, TenureBucketOrder)

	bySex := CountBy(view, func(e dataset.Employee) string { return e.Sex })

	ratingByDepartment := AverageBy(view,
		func(e dataset.Employee) string { return e.Department },
		func(e dataset.Employee) float64 { return e.Rating })
	SortByValueDesc(ratingByDepartment)

	ratingByRole := AverageBy(view,
		func(e dataset.Employee) string { return e.Role },
		func(e dataset.Employee) float64 { return e.Rating })
	SortByValueDesc(ratingByRole)

	return []ChartConfig{
		toChart("headcount_by_department", "bar", "Headcount by Department", byDepartment),
		toChart("salary_by_role", "bar", "Average Salary by Role", salaryByRole),
		toChart("status_split", "pie", "Active vs Terminated", byStatus),
		toChart("age_distribution", "bar", "Age Distribution", byAge),
		toChart("tenure_distribution", "bar", "Tenure Distribution", byTenure),
		toChart("sex_split", "pie", "Distribution by Sex", bySex),
		toChart("rating_by_department", "bar", "Average Rating by Department", ratingByDepartment),
		toChart("rating_by_role", "bar", "Average Rating by Role", ratingByRole),
	}
}

func toChart(id, chartType, title string, groups []Group) ChartConfig {
	cfg := ChartConfig{
		ID:     id,
		Type:   chartType,
		Title:  title,
		Labels: make([]string, 0, len(groups)),
		Values: make([]float64, 0, len(groups)),
		Colors: assignColors(len(groups)),
	}
	for _, g := range groups {
		cfg.Labels = append(cfg.Labels, g.Key)
		cfg.Values = append(cfg.Values, g.Value)
	}
	return cfg
}

func assignColors(count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}
