package usecase

import (
	"fmt"
	"math"

	"finance-tracker/internal/domain"

	"github.com/shopspring/decimal"
)

const sqrtPrecision = 16

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// CalculateMetrics computes the scalar statistics of records against a monthly income.
// The standard deviation is the population one. With zero income, savings and savings percent are zero.
func CalculateMetrics(records []domain.TransactionRecord, income decimal.Decimal) (*domain.FinancialMetrics, error) {
	if income.IsNegative() {
		return nil, fmt.Errorf("%w: income must not be negative, got %s", domain.ErrInvalidIncome, income)
	}

	metrics := &domain.FinancialMetrics{
		TotalExpense:      decimal.Zero,
		AverageSpend:      decimal.Zero,
		StandardDeviation: decimal.Zero,
		Income:            income,
		Savings:           decimal.Zero,
		SavingsPercent:    decimal.Zero,
	}

	for _, r := range records {
		metrics.TotalExpense = metrics.TotalExpense.Add(r.Amount)
	}

	if n := len(records); n > 0 {
		count := decimal.NewFromInt(int64(n))
		metrics.AverageSpend = metrics.TotalExpense.Div(count)

		squares := decimal.Zero
		for _, r := range records {
			diff := r.Amount.Sub(metrics.AverageSpend)
			squares = squares.Add(diff.Mul(diff))
		}
		metrics.StandardDeviation = sqrt(squares.Div(count))
	}

	if income.IsPositive() {
		metrics.Savings = income.Sub(metrics.TotalExpense)
		metrics.SavingsPercent = metrics.Savings.Div(income).Mul(hundred)
	}

	return metrics, nil
}

// FormatPercent renders p with two decimals and a percent sign ("38.00%").
func FormatPercent(p decimal.Decimal) string {
	return p.StringFixed(2) + "%"
}

// sqrt returns the square root of x, refined with Newton's method in decimal arithmetic.
// Non-positive x yields zero.
func sqrt(x decimal.Decimal) decimal.Decimal {
	if !x.IsPositive() {
		return decimal.Zero
	}

	epsilon := decimal.New(1, -sqrtPrecision)
	guess := initialRoot(x)
	for i := 0; i < 100; i++ {
		next := guess.Add(x.DivRound(guess, sqrtPrecision)).Div(two)
		if next.IsZero() || next.Sub(guess).Abs().LessThanOrEqual(epsilon) {
			return next.Round(sqrtPrecision)
		}
		guess = next
	}
	return guess.Round(sqrtPrecision)
}

// initialRoot seeds the iteration from float64 when x is representable, otherwise from its magnitude.
func initialRoot(x decimal.Decimal) decimal.Decimal {
	if f := math.Sqrt(x.InexactFloat64()); f > 0 && !math.IsInf(f, 0) {
		return decimal.NewFromFloat(f)
	}
	magnitude := int32(x.NumDigits()) + x.Exponent()
	return decimal.New(1, magnitude/2)
}
