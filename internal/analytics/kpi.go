package analytics

import (
	"math"

	"github.com/ROGER34-CDLAV123/Aula-Code-Dashboards/internal/dataset"
)

// Snapshot is the KPI set for a filtered view. Every value is a pure
// function of the view; an empty view yields zeros, never a division error.
type Snapshot struct {
	Headcount     int     `json:"headcount"`
	Terminated    int     `json:"terminated"`
	Payroll       float64 `json:"payroll"`
	TotalCost     float64 `json:"total_cost"`
	AverageAge    float64 `json:"average_age"`
	AverageRating float64 `json:"average_rating"`
}

// Summarize computes the KPI set over a view. Payroll and total cost cover
// active employees only, mirroring what a monthly payroll run would pay.
func Summarize(view []dataset.Employee) Snapshot {
	var snap Snapshot
	if len(view) == 0 {
		return snap
	}

	var ageSum, ratingSum float64
	for _, emp := range view {
		if emp.Status == dataset.StatusTerminated {
			snap.Terminated++
		} else {
			snap.Headcount++
			snap.Payroll += emp.BaseSalary
			snap.TotalCost += emp.TotalMonthlyCost
		}
		ageSum += float64(emp.Age)
		ratingSum += emp.Rating
	}

	n := float64(len(view))
	snap.AverageAge = roundTo2(ageSum / n)
	snap.AverageRating = roundTo2(ratingSum / n)
	snap.Payroll = roundTo2(snap.Payroll)
	snap.TotalCost = roundTo2(snap.TotalCost)
	return snap
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
