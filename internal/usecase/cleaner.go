package usecase

import (
	"strings"
	"time"

	"finance-tracker/internal/domain"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Year-first layouts are tried before day-first ones so ISO dates keep their meaning.
// Month-first layouts only apply when the day-first reading is impossible (e.g. 03/15/2024).
var dateLayouts = []string{
	time.RFC3339,
	"2006-1-2T15:04:05",
	"2006-1-2 15:04:05",
	"2006-1-2 15:04",
	"2006-1-2",
	"2006/1/2",
	"2006.1.2",

	"2-1-2006 15:04:05",
	"2/1/2006 15:04:05",
	"2-1-2006 15:04",
	"2/1/2006 15:04",
	"2-1-2006",
	"2/1/2006",
	"2.1.2006",
	"2-1-06",
	"2/1/06",
	"2.1.06",
	"2 Jan 2006",
	"2-Jan-2006",
	"2 January 2006",
	"2 Jan 06",
	"2-Jan-06",
	"Jan 2, 2006",
	"Jan 2 2006",
	"January 2, 2006",
	"January 2 2006",

	"1/2/2006",
	"1-2-2006",
	"1.2.2006",
	"1/2/06",
}

// Clean converts raw rows into trusted records.
// Rows whose amount cannot be parsed are dropped; rows whose date cannot be parsed keep a nil date.
func Clean(raw []domain.RawRecord) []domain.TransactionRecord {
	caser := cases.Title(language.Und)
	cleaned := make([]domain.TransactionRecord, 0, len(raw))
	for _, r := range raw {
		amount, ok := ParseAmount(r.Amount)
		if !ok {
			continue
		}
		cleaned = append(cleaned, domain.TransactionRecord{
			Date:     ParseDate(r.Date),
			Category: normalizeCategory(caser, r.Category),
			User:     r.User,
			Amount:   amount,
		})
	}
	return cleaned
}

// ParseDate parses s day-first. It returns nil when s is not a recognizable date.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// maxAmountDigits bounds both the integer and the fractional digits of an amount.
const maxAmountDigits = 30

// ParseAmount parses s as a decimal number.
// Amounts beyond maxAmountDigits integer or fractional digits are rejected as out of range.
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if d.Exponent() < -maxAmountDigits || d.NumDigits()+int(d.Exponent()) > maxAmountDigits {
		return decimal.Zero, false
	}
	return d, true
}

// NormalizeCategory trims s and title-cases every word ("  fast FOOD " -> "Fast Food").
// Normalizing an already normalized category returns it unchanged.
func NormalizeCategory(s string) string {
	return normalizeCategory(cases.Title(language.Und), s)
}

// cases.Caser keeps state between calls; callers own theirs.
func normalizeCategory(caser cases.Caser, s string) string {
	return caser.String(strings.TrimSpace(s))
}
