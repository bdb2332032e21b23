package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"finance-tracker/internal/domain"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// SheetsDocumentWriter publishes a document to a Google Spreadsheet, one tab per sheet.
// Existing tabs with the same names are cleared and overwritten.
type SheetsDocumentWriter struct {
	svc           *gsheet.Service
	spreadsheetID string
	logger        *slog.Logger
}

// NewSheetsDocumentWriter creates a writer for spreadsheetID. A nil logger uses slog.Default().
// Pass SheetsCredentials(...) for service-account auth, or test options such as WithEndpoint.
func NewSheetsDocumentWriter(ctx context.Context, spreadsheetID string, logger *slog.Logger, opts ...goption.ClientOption) (*SheetsDocumentWriter, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet ID")
	}

	svc, err := gsheet.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SheetsDocumentWriter{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		logger:        logger.With("component", "sheets"),
	}, nil
}

// SheetsCredentials returns the client options for a service-account JSON key.
func SheetsCredentials(credentialsJSON []byte) []goption.ClientOption {
	return []goption.ClientOption{
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope),
	}
}

// WriteDocument makes sure every tab exists, clears them and writes all values in one batch.
func (w *SheetsDocumentWriter) WriteDocument(ctx context.Context, doc *domain.Document) error {
	if doc == nil || len(doc.Sheets) == 0 {
		return errors.New("document has no sheets")
	}

	if err := w.ensureTabs(ctx, doc.Sheets); err != nil {
		return err
	}

	ranges := make([]string, 0, len(doc.Sheets))
	data := make([]*gsheet.ValueRange, 0, len(doc.Sheets))
	for _, sheet := range doc.Sheets {
		ranges = append(ranges, quoteSheetName(sheet.Name))
		data = append(data, &gsheet.ValueRange{
			Range:  quoteSheetName(sheet.Name) + "!A1",
			Values: sheetValues(sheet),
		})
	}

	if _, err := w.svc.Spreadsheets.Values.BatchClear(w.spreadsheetID, &gsheet.BatchClearValuesRequest{
		Ranges: ranges,
	}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear sheets: %w", err)
	}

	// RAW keeps user-supplied text (e.g. "=SUM(...)" categories) from being evaluated.
	if _, err := w.svc.Spreadsheets.Values.BatchUpdate(w.spreadsheetID, &gsheet.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data:             data,
	}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("write sheets: %w", err)
	}

	w.logger.DebugContext(ctx, "Document written to spreadsheet",
		"spreadsheet_id", w.spreadsheetID,
		"ranges", len(data))
	return nil
}

// ensureTabs adds the tabs of sheets that the spreadsheet does not have yet.
func (w *SheetsDocumentWriter) ensureTabs(ctx context.Context, sheets []domain.Sheet) error {
	ss, err := w.svc.Spreadsheets.Get(w.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("get spreadsheet: %w", err)
	}

	existing := make(map[string]bool, len(ss.Sheets))
	for _, s := range ss.Sheets {
		if s.Properties != nil {
			existing[s.Properties.Title] = true
		}
	}

	var requests []*gsheet.Request
	for _, sheet := range sheets {
		if existing[sheet.Name] {
			continue
		}
		requests = append(requests, &gsheet.Request{
			AddSheet: &gsheet.AddSheetRequest{
				Properties: &gsheet.SheetProperties{Title: sheet.Name},
			},
		})
	}
	if len(requests) == 0 {
		return nil
	}

	if _, err := w.svc.Spreadsheets.BatchUpdate(w.spreadsheetID, &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("add sheets: %w", err)
	}
	return nil
}

// sheetValues converts a sheet to the values matrix of the Sheets API, header first.
func sheetValues(sheet domain.Sheet) [][]interface{} {
	values := make([][]interface{}, 0, len(sheet.Rows)+1)

	header := make([]interface{}, len(sheet.Header))
	for i, h := range sheet.Header {
		header[i] = h
	}
	values = append(values, header)

	for _, row := range sheet.Rows {
		out := make([]interface{}, len(row))
		for i, v := range row {
			switch val := v.(type) {
			case nil:
				out[i] = ""
			case time.Time:
				out[i] = val.Format("2006-01-02")
			default:
				out[i] = val
			}
		}
		values = append(values, out)
	}
	return values
}

// quoteSheetName quotes a tab name for A1 notation ("By User" -> "'By User'").
func quoteSheetName(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
