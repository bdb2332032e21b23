package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"finance-tracker/internal/domain"

	"github.com/xuri/excelize/v2"
)

// XLSXDocumentWriter writes a document as an .xlsx workbook, one worksheet per sheet.
type XLSXDocumentWriter struct {
	dst io.Writer
}

// NewXLSXDocumentWriter creates a writer that streams the workbook to dst.
func NewXLSXDocumentWriter(dst io.Writer) *XLSXDocumentWriter {
	return &XLSXDocumentWriter{dst: dst}
}

// WriteDocument renders doc into a workbook and writes it out.
func (w *XLSXDocumentWriter) WriteDocument(ctx context.Context, doc *domain.Document) error {
	if doc == nil || len(doc.Sheets) == 0 {
		return errors.New("document has no sheets")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range doc.Sheets {
		if err := ctx.Err(); err != nil {
			return err
		}
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return fmt.Errorf("failed to name sheet %q: %w", sheet.Name, err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", sheet.Name, err)
		}

		header := make([]any, len(sheet.Header))
		for j, h := range sheet.Header {
			header[j] = h
		}
		if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
			return fmt.Errorf("failed to write header of %q: %w", sheet.Name, err)
		}

		for j, row := range sheet.Rows {
			cell, err := excelize.CoordinatesToCellName(1, j+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet.Name, cell, &row); err != nil {
				return fmt.Errorf("failed to write row %d of %q: %w", j+1, sheet.Name, err)
			}
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w.dst); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// XLSXFileWriter writes a document to a workbook file, creating parent directories as needed.
type XLSXFileWriter struct {
	Path string
}

// NewXLSXFileWriter creates a writer targeting path.
func NewXLSXFileWriter(path string) *XLSXFileWriter {
	return &XLSXFileWriter{Path: path}
}

// WriteDocument creates (or truncates) the file and writes doc into it.
func (w *XLSXFileWriter) WriteDocument(ctx context.Context, doc *domain.Document) error {
	if dir := filepath.Dir(w.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	file, err := os.Create(w.Path)
	if err != nil {
		return fmt.Errorf("failed to create report file %s: %w", w.Path, err)
	}

	if err := NewXLSXDocumentWriter(file).WriteDocument(ctx, doc); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
