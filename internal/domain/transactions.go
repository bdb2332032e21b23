package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawRecord is a single row exactly as it was read from the source.
// Values are not validated; cleaning happens in the usecase layer.
type RawRecord struct {
	Line     int    `json:"line"`
	Date     string `json:"date"`
	Category string `json:"category"`
	User     string `json:"user"`
	Amount   string `json:"amount"`
}

// TransactionRecord is a cleaned transaction.
// Date is nil when the source date could not be parsed.
type TransactionRecord struct {
	Date     *time.Time      `json:"date"`
	Category string          `json:"category"`
	User     string          `json:"user"`
	Amount   decimal.Decimal `json:"amount"`
}

// HasDate reports whether the record carries a usable date.
func (r TransactionRecord) HasDate() bool {
	return r.Date != nil
}

// Month returns the year-month key ("2024-03") of the record, or "" when the date is absent.
func (r TransactionRecord) Month() string {
	if r.Date == nil {
		return ""
	}
	return r.Date.Format(MonthLayout)
}

// MonthLayout is the layout of the keys used by MonthlySummary.
const MonthLayout = "2006-01"
