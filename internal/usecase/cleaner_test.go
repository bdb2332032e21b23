package usecase

import (
	"testing"
	"time"

	"finance-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  string // "" means absent
	}{
		{"2024-03-05", "2024-03-05"},
		{"2024/03/05", "2024-03-05"},
		{"05-03-2024", "2024-03-05"},
		{"05/03/2024", "2024-03-05"},
		{"5.3.2024", "2024-03-05"},
		{"05/03/24", "2024-03-05"},
		{" 05-03-2024 ", "2024-03-05"},
		{"5 Mar 2024", "2024-03-05"},
		{"05-Mar-2024", "2024-03-05"},
		{"March 5, 2024", "2024-03-05"},
		{"2024-03-05T10:30:00Z", "2024-03-05"},
		{"2024-03-05 10:30:00", "2024-03-05"},
		{"05/03/2024 10:30", "2024-03-05"},
		{"03/15/2024", "2024-03-15"}, // no 15th month, read month-first
		{"31/02/2024", ""},
		{"bad-date", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseDate(tt.input)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Format("2006-01-02"))
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"120", "120.00", true},
		{" 120.50 ", "120.50", true},
		{"-15", "-15.00", true},
		{"0", "0.00", true},
		{"1e3", "1000.00", true},
		{"abc", "", false},
		{"", "", false},
		{"   ", "", false},
		{"NaN", "", false},
		{"inf", "", false},
		{"1,200", "", false},
		{"$12", "", false},
		{"123456789012345678901234567890", "123456789012345678901234567890.00", true},
		{"1234567890123456789012345678901", "", false},
		{"-1e29", "-100000000000000000000000000000.00", true},
		{"1e200", "", false},
		{"-1e200", "", false},
		{"1e5000000", "", false},
		{"1e-30", "0.00", true},
		{"1e-31", "", false},
		{"1e-5000000", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseAmount(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got.StringFixed(2))
			}
		})
	}
}

func TestNormalizeCategory(t *testing.T) {
	tests := map[string]string{
		"Food":           "Food",
		" food ":         "Food",
		"FOOD":           "Food",
		"fOOd":           "Food",
		"  eating OUT  ": "Eating Out",
		"fast food":      "Fast Food",
		"":               "",
	}

	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			got := NormalizeCategory(input)
			assert.Equal(t, want, got)
			assert.Equal(t, got, NormalizeCategory(got), "normalization must be idempotent")
		})
	}
}

func TestClean(t *testing.T) {
	raw := []domain.RawRecord{
		{Line: 2, Date: "2024-03-05", Category: "food", User: "alice", Amount: "120"},
		{Line: 3, Date: "05-03-2024", Category: "Food", User: "bob", Amount: "abc"},
		{Line: 4, Date: "bad-date", Category: " Rent ", User: " alice ", Amount: "500"},
		{Line: 5, Date: "06-03-2024", Category: "FOOD", User: "bob", Amount: ""},
	}

	got := Clean(raw)

	require.Len(t, got, 2)

	assert.Equal(t, "Food", got[0].Category)
	assert.Equal(t, "alice", got[0].User)
	assert.Equal(t, "120.00", got[0].Amount.StringFixed(2))
	require.NotNil(t, got[0].Date)
	assert.True(t, got[0].Date.Equal(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)))

	assert.Equal(t, "Rent", got[1].Category)
	assert.Equal(t, " alice ", got[1].User)
	assert.Equal(t, "500.00", got[1].Amount.StringFixed(2))
	assert.Nil(t, got[1].Date)
}

func TestClean_Empty(t *testing.T) {
	got := Clean(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestClean_KeepsUserText(t *testing.T) {
	raw := []domain.RawRecord{
		{Line: 2, Date: "2024-01-01", Category: "food", User: "alice", Amount: "10"},
		{Line: 3, Date: "2024-01-01", Category: "food", User: " alice", Amount: "5"},
	}

	got := SummarizeByUser(Clean(raw))

	assert.Equal(t, []string{" alice=5.00", "alice=10.00"}, userPairs(got))
}
