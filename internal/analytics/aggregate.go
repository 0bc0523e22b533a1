package analytics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ROGER34-CDLAV123/Aula-Code-Dashboards/internal/dataset"
)

// Group is one grouped aggregate row: a key plus its value and the number
// of records behind it.
type Group struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// CountBy counts records per key, ordered ascending by key so repeated runs
// over the same view produce stable charts.
func CountBy(view []dataset.Employee, keyFn func(dataset.Employee) string) []Group {
	counts := make(map[string]int)
	for _, emp := range view {
		key := keyFn(emp)
		if key == "" {
			continue
		}
		counts[key]++
	}

	groups := make([]Group, 0, len(counts))
	for key, n := range counts {
		groups = append(groups, Group{Key: key, Value: float64(n), Count: n})
	}
	sortByKey(groups)
	return groups
}

// CountByOrdered counts records per key and orders the result by the given
// key sequence. Keys absent from the view are omitted; extra keys produced
// by keyFn land at the end in key order.
func CountByOrdered(view []dataset.Employee, keyFn func(dataset.Employee) string, order []string) []Group {
	groups := CountBy(view, keyFn)
	rank := make(map[string]int, len(order))
	for i, key := range order {
		rank[key] = i
	}
	sort.SliceStable(groups, func(i, j int) bool {
		ri, iok := rank[groups[i].Key]
		rj, jok := rank[groups[j].Key]
		if iok && jok {
			return ri < rj
		}
		if iok != jok {
			return iok
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}

// AverageBy computes the mean of valFn per key, ordered ascending by key.
func AverageBy(view []dataset.Employee, keyFn func(dataset.Employee) string, valFn func(dataset.Employee) float64) []Group {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, emp := range view {
		key := keyFn(emp)
		if key == "" {
			continue
		}
		sums[key] += valFn(emp)
		counts[key]++
	}

	groups := make([]Group, 0, len(sums))
	for key, sum := range sums {
		n := counts[key]
		groups = append(groups, Group{Key: key, Value: roundTo2(sum / float64(n)), Count: n})
	}
	sortByKey(groups)
	return groups
}

// SortByValueDesc reorders groups largest-first, breaking ties by key so
// the ordering stays deterministic.
func SortByValueDesc(groups []Group) {
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Value != groups[j].Value {
			return groups[i].Value > groups[j].Value
		}
		return groups[i].Key < groups[j].Key
	})
}

func sortByKey(groups []Group) {
	sort.Slice(groups, func(i, j int) bool {
		return strings.ToLower(groups[i].Key) < strings.ToLower(groups[j].Key)
	})
}

// Age buckets used by the age-distribution chart, in display order.
var AgeBucketOrder = []string{"under 18", "18-24", "25-34", "35-44", "45-54", "55+"}

// AgeBucket maps an age to its distribution bucket.
func AgeBucket(age int) string {
	switch {
	case age < 18:
		return "under 18"
	case age <= 24:
		return "18-24"
	case age <= 34:
		return "25-34"
	case age <= 44:
		return "35-44"
	case age <= 54:
		return "45-54"
	default:
		return "55+"
	}
}

// Tenure buckets used by the tenure-distribution chart, in display order.
var TenureBucketOrder = []string{"< 1 yr", "1-2 yr", "3-5 yr", "6-9 yr", "10+ yr"}

// TenureBucket maps tenure in months to its distribution bucket.
func TenureBucket(months int) string {
	years := months / 12
	switch {
	case years < 1:
		return "< 1 yr"
	case years <= 2:
		return "1-2 yr"
	case years <= 5:
		return "3-5 yr"
	case years <= 9:
		return "6-9 yr"
	default:
		return "10+ yr"
	}
}

// FormatCurrency renders an amount with comma thousands separators, for KPI
// cards and table cells.
func FormatCurrency(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	intPart := int64(amount)
	decPart := int64((amount-float64(intPart))*100 + 0.5)

	intStr := fmt.Sprintf("%d", intPart)
	if len(intStr) > 3 {
		var parts []string
		for len(intStr) > 3 {
			parts = append([]string{intStr[len(intStr)-3:]}, parts...)
			intStr = intStr[:len(intStr)-3]
		}
		parts = append([]string{intStr}, parts...)
		intStr = strings.Join(parts, ",")
	}

	result := fmt.Sprintf("%s.%02d", intStr, decPart)
	if negative {
		result = "-" + result
	}
	return result
}
