package domain

import "github.com/shopspring/decimal"

// CategoryTotal is the summed amount of one category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// CategorySummary is ordered by amount descending; equal amounts keep first-appearance order.
type CategorySummary []CategoryTotal

// UserTotal is the summed amount of one user.
type UserTotal struct {
	User   string          `json:"user"`
	Amount decimal.Decimal `json:"amount"`
}

// UserSummary is ordered by user name.
type UserSummary []UserTotal

// MonthTotal is the summed amount of one calendar month.
type MonthTotal struct {
	Month  string          `json:"month"` // e.g. "2024-03"
	Amount decimal.Decimal `json:"amount"`
}

// MonthlySummary is ordered chronologically. Records without a date are not part of it.
type MonthlySummary []MonthTotal

// FinancialMetrics holds the scalar statistics of a run.
type FinancialMetrics struct {
	TotalExpense      decimal.Decimal `json:"total_expense"`
	AverageSpend      decimal.Decimal `json:"average_spend"`
	StandardDeviation decimal.Decimal `json:"standard_deviation"`
	Income            decimal.Decimal `json:"income"`
	Savings           decimal.Decimal `json:"savings"`
	SavingsPercent    decimal.Decimal `json:"savings_percent"`
}

// Report is the top-level result of a pipeline run.
type Report struct {
	Records         []TransactionRecord `json:"records"`
	CategorySummary CategorySummary     `json:"category_summary"`
	UserSummary     UserSummary         `json:"user_summary"`
	MonthlySummary  MonthlySummary      `json:"monthly_summary"`
	Metrics         *FinancialMetrics   `json:"metrics"`
}

// Total returns the sum of all entries.
func (s CategorySummary) Total() decimal.Decimal {
	total := decimal.Zero
	for _, c := range s {
		total = total.Add(c.Amount)
	}
	return total
}

// Total returns the sum of all entries.
func (s UserSummary) Total() decimal.Decimal {
	total := decimal.Zero
	for _, u := range s {
		total = total.Add(u.Amount)
	}
	return total
}
