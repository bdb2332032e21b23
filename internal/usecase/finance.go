package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"finance-tracker/internal/domain"

	"github.com/shopspring/decimal"
)

// FinanceUseCase orchestrates the ingest, clean, aggregate and metrics pipeline.
// It holds no run data, so a single instance can serve concurrent runs.
type FinanceUseCase struct {
	reader TransactionReader
	logger *slog.Logger
}

// NewFinanceUseCase creates a new instance of the usecase.
func NewFinanceUseCase(reader TransactionReader, logger *slog.Logger) *FinanceUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &FinanceUseCase{reader: reader, logger: logger.With("component", "pipeline")}
}

// Run builds a report from a raw tabular source and a monthly income.
func (uc *FinanceUseCase) Run(ctx context.Context, src io.Reader, income decimal.Decimal) (*domain.Report, error) {
	if income.IsNegative() {
		return nil, fmt.Errorf("%w: income must not be negative, got %s", domain.ErrInvalidIncome, income)
	}

	// Step 1: Ingestion
	raw, err := uc.reader.ReadTransactions(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("could not read transactions: %w", err)
	}

	// Step 2: Cleaning
	records := Clean(raw)
	uc.logger.DebugContext(ctx, "Transactions cleaned",
		"rows_read", len(raw),
		"rows_kept", len(records),
		"rows_dropped", len(raw)-len(records))

	// Step 3: Aggregation and metrics
	summaries := Aggregate(records)
	metrics, err := CalculateMetrics(records, income)
	if err != nil {
		return nil, fmt.Errorf("could not calculate metrics: %w", err)
	}

	return &domain.Report{
		Records:         records,
		CategorySummary: summaries.Category,
		UserSummary:     summaries.User,
		MonthlySummary:  summaries.Monthly,
		Metrics:         metrics,
	}, nil
}

// Export renders report as a multi-section document.
func (uc *FinanceUseCase) Export(report *domain.Report, opts ExportOptions) (*domain.Document, error) {
	return Export(report, opts)
}

// Publish exports report and hands the document to w.
func (uc *FinanceUseCase) Publish(ctx context.Context, report *domain.Report, opts ExportOptions, w DocumentWriter) error {
	doc, err := Export(report, opts)
	if err != nil {
		return err
	}
	if err := w.WriteDocument(ctx, doc); err != nil {
		return fmt.Errorf("could not write document: %w", err)
	}
	uc.logger.InfoContext(ctx, "Report published", "sheets", len(doc.Sheets), "records", len(report.Records))
	return nil
}
