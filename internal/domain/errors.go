package domain

import "errors"

var (
	// ErrMalformedInput means the source lacks the structure needed to build records
	// (no rows, missing columns, unreadable CSV).
	ErrMalformedInput = errors.New("malformed input")

	// ErrInvalidIncome means a negative income was supplied.
	ErrInvalidIncome = errors.New("invalid income")

	// ErrExport means a report section was missing when building the document.
	ErrExport = errors.New("export failed")
)
