package dataset

import "time"

// Employment status values derived from the termination date.
const (
	StatusActive     = "Active"
	StatusTerminated = "Terminated"
)

// Employee is one row of the loaded dataset. Records are read-only for the
// lifetime of the process; every filtered view shares the same backing data.
type Employee struct {
	ID                 int64      `json:"id"`
	FullName           string     `json:"full_name"`
	Department         string     `json:"department"`
	Role               string     `json:"role"`
	Level              string     `json:"level"`
	Sex                string     `json:"sex"`
	BirthDate          time.Time  `json:"birth_date"`
	HireDate           time.Time  `json:"hire_date"`
	TerminationDate    *time.Time `json:"termination_date,omitempty"`
	BaseSalary         float64    `json:"base_salary"`
	Taxes              float64    `json:"taxes"`
	Benefits           float64    `json:"benefits"`
	TransportAllowance float64    `json:"transport_allowance"`
	MealAllowance      float64    `json:"meal_allowance"`
	Rating             float64    `json:"rating"`

	// Derived at load time.
	Age              int     `json:"age"`
	TenureMonths     int     `json:"tenure_months"`
	Status           string  `json:"status"`
	TotalMonthlyCost float64 `json:"total_monthly_cost"`
}

// Columns is the canonical column order for exports and tables. Derived
// columns come last so a re-imported export still parses.
func Columns() []string {
	return []string{
		"id",
		"full_name",
		"department",
		"role",
		"level",
		"sex",
		"birth_date",
		"hire_date",
		"termination_date",
		"base_salary",
		"taxes",
		"benefits",
		"transport_allowance",
		"meal_allowance",
		"rating",
		"age",
		"tenure_months",
		"status",
		"total_monthly_cost",
	}
}
