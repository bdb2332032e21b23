package usecase

import (
	"sort"

	"finance-tracker/internal/domain"

	"github.com/shopspring/decimal"
)

// Summaries bundles the grouped views of a record set.
type Summaries struct {
	Category domain.CategorySummary
	User     domain.UserSummary
	Monthly  domain.MonthlySummary
}

// Aggregate builds the category, user and monthly summaries of records.
func Aggregate(records []domain.TransactionRecord) Summaries {
	return Summaries{
		Category: SummarizeByCategory(records),
		User:     SummarizeByUser(records),
		Monthly:  SummarizeByMonth(records),
	}
}

// SummarizeByCategory sums amounts per category, largest first.
// Categories with equal sums stay in the order they first appeared.
func SummarizeByCategory(records []domain.TransactionRecord) domain.CategorySummary {
	keys, sums := groupSums(records, func(r domain.TransactionRecord) (string, bool) {
		return r.Category, true
	})

	summary := make(domain.CategorySummary, 0, len(keys))
	for _, k := range keys {
		summary = append(summary, domain.CategoryTotal{Category: k, Amount: sums[k]})
	}
	sort.SliceStable(summary, func(i, j int) bool {
		return summary[i].Amount.GreaterThan(summary[j].Amount)
	})
	return summary
}

// SummarizeByUser sums amounts per user, ordered by user name.
func SummarizeByUser(records []domain.TransactionRecord) domain.UserSummary {
	keys, sums := groupSums(records, func(r domain.TransactionRecord) (string, bool) {
		return r.User, true
	})
	sort.Strings(keys)

	summary := make(domain.UserSummary, 0, len(keys))
	for _, k := range keys {
		summary = append(summary, domain.UserTotal{User: k, Amount: sums[k]})
	}
	return summary
}

// SummarizeByMonth sums amounts per calendar month in chronological order.
// Records without a date are skipped.
func SummarizeByMonth(records []domain.TransactionRecord) domain.MonthlySummary {
	keys, sums := groupSums(records, func(r domain.TransactionRecord) (string, bool) {
		return r.Month(), r.HasDate()
	})
	sort.Strings(keys) // "YYYY-MM" sorts chronologically

	summary := make(domain.MonthlySummary, 0, len(keys))
	for _, k := range keys {
		summary = append(summary, domain.MonthTotal{Month: k, Amount: sums[k]})
	}
	return summary
}

// groupSums keeps running sums per key in a single pass.
// keys lists each distinct key once, in first-appearance order.
func groupSums(records []domain.TransactionRecord, keyOf func(domain.TransactionRecord) (string, bool)) ([]string, map[string]decimal.Decimal) {
	var keys []string
	sums := make(map[string]decimal.Decimal)
	for _, r := range records {
		key, ok := keyOf(r)
		if !ok {
			continue
		}
		sum, seen := sums[key]
		if !seen {
			keys = append(keys, key)
		}
		sums[key] = sum.Add(r.Amount)
	}
	return keys, sums
}
