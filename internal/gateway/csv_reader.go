package gateway

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"finance-tracker/internal/domain"
)

// Required column names of the transactions CSV.
const (
	ColumnDate     = "date"
	ColumnCategory = "category"
	ColumnUser     = "user"
	ColumnAmount   = "amount"
)

var requiredColumns = []string{ColumnDate, ColumnCategory, ColumnUser, ColumnAmount}

// CSVTransactionReader implements the TransactionReader interface for CSV sources.
type CSVTransactionReader struct{}

// NewCSVTransactionReader creates a new reader instance.
func NewCSVTransactionReader() *CSVTransactionReader {
	return &CSVTransactionReader{}
}

// ReadTransactions parses a CSV source with a header row into raw records, preserving row order.
// Values are passed through as-is; only structural problems are reported.
func (r *CSVTransactionReader) ReadTransactions(ctx context.Context, src io.Reader) ([]domain.RawRecord, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	// Stray quotes are row-level noise; keep them as literal text.
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: source is empty", domain.ErrMalformedInput)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read header: %v", domain.ErrMalformedInput, err)
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var records []domain.RawRecord
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, fmt.Errorf("%w: %v", domain.ErrMalformedInput, parseErr)
			}
			return nil, fmt.Errorf("error reading record: %w", err)
		}

		line, _ := reader.FieldPos(0)
		records = append(records, domain.RawRecord{
			Line:     line,
			Date:     cell(row, index[ColumnDate]),
			Category: cell(row, index[ColumnCategory]),
			User:     cell(row, index[ColumnUser]),
			Amount:   cell(row, index[ColumnAmount]),
		})
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: source has no data rows", domain.ErrMalformedInput)
	}
	return records, nil
}

// columnIndex maps each required column to its position in the header.
func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(requiredColumns))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name = strings.ToLower(strings.TrimSpace(name))
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required columns: %s", domain.ErrMalformedInput, strings.Join(missing, ", "))
	}
	return index, nil
}

// cell returns row[i], or "" for short rows.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
