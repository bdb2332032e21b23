package usecase

import (
	"fmt"

	"finance-tracker/internal/domain"
)

// Metric labels of the Summary sheet.
const (
	MetricTotalExpense   = "Total Expense"
	MetricAverageSpend   = "Average Spend"
	MetricSavingsPercent = "Savings (%)"
)

// ExportOptions controls optional columns of the exported document.
type ExportOptions struct {
	// IncludeMonth adds a derived "month" column to the Transactions sheet.
	IncludeMonth bool
}

// Export renders report as a four-section document:
// Transactions, By Category, By User and Summary.
func Export(report *domain.Report, opts ExportOptions) (*domain.Document, error) {
	if err := checkSections(report); err != nil {
		return nil, err
	}

	return &domain.Document{
		Sheets: []domain.Sheet{
			transactionsSheet(report.Records, opts),
			categorySheet(report.CategorySummary),
			userSheet(report.UserSummary),
			summarySheet(report.Metrics),
		},
	}, nil
}

func checkSections(report *domain.Report) error {
	if report == nil {
		return fmt.Errorf("%w: report is nil", domain.ErrExport)
	}
	missing := func(section string) error {
		return fmt.Errorf("%w: missing section %q", domain.ErrExport, section)
	}
	switch {
	case report.Records == nil:
		return missing(domain.SheetTransactions)
	case report.CategorySummary == nil:
		return missing(domain.SheetByCategory)
	case report.UserSummary == nil:
		return missing(domain.SheetByUser)
	case report.Metrics == nil:
		return missing(domain.SheetSummary)
	}
	return nil
}

func transactionsSheet(records []domain.TransactionRecord, opts ExportOptions) domain.Sheet {
	header := []string{"date", "category", "user", "amount"}
	if opts.IncludeMonth {
		header = append(header, "month")
	}

	rows := make([][]any, 0, len(records))
	for _, r := range records {
		var date, month any
		if r.HasDate() {
			date = *r.Date
			month = r.Month()
		}
		row := []any{date, r.Category, r.User, r.Amount.InexactFloat64()}
		if opts.IncludeMonth {
			row = append(row, month)
		}
		rows = append(rows, row)
	}
	return domain.Sheet{Name: domain.SheetTransactions, Header: header, Rows: rows}
}

func categorySheet(summary domain.CategorySummary) domain.Sheet {
	rows := make([][]any, 0, len(summary))
	for _, c := range summary {
		rows = append(rows, []any{c.Category, c.Amount.InexactFloat64()})
	}
	return domain.Sheet{Name: domain.SheetByCategory, Header: []string{"category", "amount"}, Rows: rows}
}

func userSheet(summary domain.UserSummary) domain.Sheet {
	rows := make([][]any, 0, len(summary))
	for _, u := range summary {
		rows = append(rows, []any{u.User, u.Amount.InexactFloat64()})
	}
	return domain.Sheet{Name: domain.SheetByUser, Header: []string{"user", "amount"}, Rows: rows}
}

func summarySheet(m *domain.FinancialMetrics) domain.Sheet {
	return domain.Sheet{
		Name:   domain.SheetSummary,
		Header: []string{"Metric", "Value"},
		Rows: [][]any{
			{MetricTotalExpense, m.TotalExpense.InexactFloat64()},
			{MetricAverageSpend, m.AverageSpend.InexactFloat64()},
			{MetricSavingsPercent, FormatPercent(m.SavingsPercent)},
		},
	}
}
