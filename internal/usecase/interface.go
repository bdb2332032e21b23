package usecase

import (
	"context"
	"io"

	"finance-tracker/internal/domain"
)

// TransactionReader defines the interface for reading raw transactions from a tabular source.
// The usecase layer depends on this interface, not on a concrete implementation.
//
//go:generate mockgen -destination=mocks/mock_interface.go -source=interface.go
type TransactionReader interface {
	ReadTransactions(ctx context.Context, src io.Reader) ([]domain.RawRecord, error)
}

// DocumentWriter persists an exported document (a spreadsheet file, a remote sheet).
type DocumentWriter interface {
	WriteDocument(ctx context.Context, doc *domain.Document) error
}
