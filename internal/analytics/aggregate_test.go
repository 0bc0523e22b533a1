package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ROGER34-CDLAV123/Aula-Code-Dashboards/internal/dataset"
)

func dept(e dataset.Employee) string { return e.Department }

func TestCountBy(t *testing.T) {
	view := []dataset.Employee{
		{Department: "Sales"},
		{Department: "Engineering"},
		{Department: "Sales"},
		{Department: ""},
	}
	groups := CountBy(view, dept)
	require.Len(t, groups, 2)
	// Ordered ascending by key; empty keys dropped.
	assert.Equal(t, Group{Key: "Engineering", Value: 1, Count: 1}, groups[0])
	assert.Equal(t, Group{Key: "Sales", Value: 2, Count: 2}, groups[1])
}

func TestCountByOrdered_UsesBucketOrder(t *testing.T) {
	view := []dataset.Employee{
		{Age: 60}, {Age: 28}, {Age: 29}, {Age: 19},
	}
	groups := CountByOrdered(view, func(e dataset.Employee) string { return AgeBucket(e.Age) }, AgeBucketOrder)
	require.Len(t, groups, 3)
	assert.Equal(t, "18-24", groups[0].Key)
	assert.Equal(t, "25-34", groups[1].Key)
	assert.Equal(t, "55+", groups[2].Key)
	assert.Equal(t, 2.0, groups[1].Value)
}

func TestAverageBy(t *testing.T) {
	view := []dataset.Employee{
		{Department: "Sales", BaseSalary: 5000},
		{Department: "Sales", BaseSalary: 7000},
		{Department: "Engineering", BaseSalary: 10000},
	}
	groups := AverageBy(view, dept, func(e dataset.Employee) float64 { return e.BaseSalary })
	require.Len(t, groups, 2)
	assert.Equal(t, Group{Key: "Engineering", Value: 10000, Count: 1}, groups[0])
	assert.Equal(t, Group{Key: "Sales", Value: 6000, Count: 2}, groups[1])
}

func TestSortByValueDesc_TiesBreakByKey(t *testing.T) {
	groups := []Group{
		{Key: "b", Value: 2},
		{Key: "a", Value: 2},
		{Key: "c", Value: 5},
	}
	SortByValueDesc(groups)
	assert.Equal(t, []string{"c", "a", "b"}, []string{groups[0].Key, groups[1].Key, groups[2].Key})
}

func TestAgeBucket(t *testing.T) {
	tests := []struct {
		age  int
		want string
	}{
		{10, "under 18"}, {18, "18-24"}, {24, "18-24"},
		{25, "25-34"}, {34, "25-34"}, {44, "35-44"},
		{54, "45-54"}, {55, "55+"}, {80, "55+"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AgeBucket(tt.age), "age %d", tt.age)
	}
}

func TestTenureBucket(t *testing.T) {
	tests := []struct {
		months int
		want   string
	}{
		{0, "< 1 yr"}, {11, "< 1 yr"}, {12, "1-2 yr"},
		{35, "1-2 yr"}, {36, "3-5 yr"}, {71, "3-5 yr"},
		{72, "6-9 yr"}, {119, "6-9 yr"}, {120, "10+ yr"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TenureBucket(tt.months), "months %d", tt.months)
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{999.5, "999.50"},
		{1000, "1,000.00"},
		{1234567.89, "1,234,567.89"},
		{-45000.1, "-45,000.10"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCurrency(tt.in), "amount %v", tt.in)
	}
}

// ==========================
// Chart Building Tests
// ==========================

func TestBuildCharts_FullSet(t *testing.T) {
	charts := BuildCharts(testTable())
	require.Len(t, charts, 8)

	ids := make([]string, 0, len(charts))
	for _, c := range charts {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{
		"headcount_by_department", "salary_by_role", "status_split",
		"age_distribution", "tenure_distribution", "sex_split",
		"rating_by_department", "rating_by_role",
	}, ids)

	for _, c := range charts {
		assert.Len(t, c.Values, len(c.Labels), "chart %s", c.ID)
		assert.Len(t, c.Colors, len(c.Labels), "chart %s", c.ID)
	}
}

func TestBuildCharts_HeadcountValues(t *testing.T) {
	charts := BuildCharts(testTable())
	headcount := charts[0]
	require.Equal(t, []string{"Engineering", "Sales"}, headcount.Labels)
	assert.Equal(t, []float64{80, 20}, headcount.Values)
}

func TestBuildCharts_EmptyView(t *testing.T) {
	charts := BuildCharts(nil)
	require.Len(t, charts, 8)
	for _, c := range charts {
		assert.Empty(t, c.Labels, "chart %s", c.ID)
		assert.Empty(t, c.Values, "chart %s", c.ID)
	}
}
