package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"finance-tracker/internal/config"
	"finance-tracker/internal/domain"
	"finance-tracker/internal/gateway"
	"finance-tracker/internal/logger"
	"finance-tracker/internal/usecase"

	"github.com/shopspring/decimal"
)

func main() {
	cfg := config.Load()

	// Define command-line flags
	inputFile := flag.String("input", "expense.csv", "Path to the expense CSV file (columns: date, category, user, amount)")
	incomeStr := flag.String("income", "", "Monthly income; prompted for when omitted")
	outputFile := flag.String("output", cfg.OutputPath, "Path of the Excel report to write")
	publish := flag.Bool("sheets", false, "Also publish the report to the Google Spreadsheet configured in the environment")
	asJSON := flag.Bool("json", false, "Print the full report as JSON instead of the insights")
	flag.Parse()

	log := logger.Init(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	if err := cfg.ValidateCLI(); err != nil {
		log.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	income, err := readIncome(*incomeStr, os.Stdin, os.Stdout)
	if err != nil {
		log.Error("Invalid income", "error", err)
		os.Exit(1)
	}

	// Wire the pipeline
	csvReader := gateway.NewCSVTransactionReader()
	financeUseCase := usecase.NewFinanceUseCase(csvReader, log)

	file, err := os.Open(*inputFile)
	if err != nil {
		log.Error("Failed to open expense file", "path", *inputFile, "error", err)
		os.Exit(1)
	}
	report, err := financeUseCase.Run(ctx, file, income)
	file.Close()
	if err != nil {
		log.Error("Analysis failed", "path", *inputFile, "error", err)
		os.Exit(1)
	}

	// Present the output
	if *asJSON {
		output, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			log.Error("Failed to generate JSON report", "error", err)
			os.Exit(1)
		}
		fmt.Println(string(output))
	} else {
		printPreview(os.Stdout, report.Records)
		printInsights(os.Stdout, report.Metrics)
	}

	if err := financeUseCase.Publish(ctx, report, usecase.ExportOptions{}, gateway.NewXLSXFileWriter(*outputFile)); err != nil {
		log.Error("Failed to write Excel report", "path", *outputFile, "error", err)
		os.Exit(1)
	}
	log.Info("Excel report generated", "path", *outputFile)

	if *publish {
		if err := publishToSheets(ctx, cfg, financeUseCase, report, log); err != nil {
			log.Error("Failed to publish report to Google Sheets", "error", err)
			os.Exit(1)
		}
	}
}

// readIncome parses flagValue, or asks on in when it is empty. A blank answer means zero.
func readIncome(flagValue string, in io.Reader, out io.Writer) (decimal.Decimal, error) {
	value := strings.TrimSpace(flagValue)
	if value == "" {
		fmt.Fprint(out, "Enter your monthly income: ")
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && err != io.EOF {
			return decimal.Zero, fmt.Errorf("failed to read income: %w", err)
		}
		value = strings.TrimSpace(line)
	}
	if value == "" {
		return decimal.Zero, nil
	}

	income, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidIncome, value)
	}
	if income.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: income must not be negative", domain.ErrInvalidIncome)
	}
	return income, nil
}

func printPreview(w io.Writer, records []domain.TransactionRecord) {
	fmt.Fprintln(w, "Preview of data:")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "date\tcategory\tuser\tamount")
	for i, r := range records {
		if i == 5 {
			break
		}
		date := "-"
		if r.HasDate() {
			date = r.Date.Format("2006-01-02")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", date, r.Category, r.User, r.Amount.StringFixed(2))
	}
	tw.Flush()
	fmt.Fprintf(w, "(%d records)\n\n", len(records))
}

func printInsights(w io.Writer, m *domain.FinancialMetrics) {
	fmt.Fprintln(w, "Insights:")
	fmt.Fprintf(w, "Total expense: %s\n", m.TotalExpense.StringFixed(2))
	fmt.Fprintf(w, "Average spend per transaction: %s\n", m.AverageSpend.StringFixed(2))
	fmt.Fprintf(w, "Spending deviation: %s\n", m.StandardDeviation.StringFixed(2))
	fmt.Fprintf(w, "Savings: %s (%s)\n", m.Savings.StringFixed(2), usecase.FormatPercent(m.SavingsPercent))
}

func publishToSheets(ctx context.Context, cfg *config.Config, uc *usecase.FinanceUseCase, report *domain.Report, log *slog.Logger) error {
	if !cfg.SheetsEnabled() {
		return fmt.Errorf("GOOGLE_SPREADSHEET_ID is not set")
	}
	creds, err := cfg.SheetsCredentials()
	if err != nil {
		return err
	}
	writer, err := gateway.NewSheetsDocumentWriter(ctx, cfg.GoogleSpreadsheetID, log, gateway.SheetsCredentials(creds)...)
	if err != nil {
		return err
	}
	return uc.Publish(ctx, report, usecase.ExportOptions{}, writer)
}
