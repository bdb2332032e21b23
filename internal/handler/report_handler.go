package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/gateway"
	"finance-tracker/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const (
	previewSize     = 5
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	reportFileName  = "finance_summary.xlsx"
)

// ReportService is the pipeline the dashboard drives.
type ReportService interface {
	Run(ctx context.Context, src io.Reader, income decimal.Decimal) (*domain.Report, error)
	Publish(ctx context.Context, report *domain.Report, opts usecase.ExportOptions, w usecase.DocumentWriter) error
}

type ReportHandler struct {
	service       ReportService
	publisher     usecase.DocumentWriter
	maxUploadSize int64
	logger        *slog.Logger
}

// NewReportHandler creates the dashboard handler. publisher may be nil when no spreadsheet is configured.
func NewReportHandler(service ReportService, publisher usecase.DocumentWriter, maxUploadSize int64, logger *slog.Logger) *ReportHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportHandler{
		service:       service,
		publisher:     publisher,
		maxUploadSize: maxUploadSize,
		logger:        logger.With("component", "http"),
	}
}

type categoryShare struct {
	Category string          `json:"category"`
	Percent  decimal.Decimal `json:"percent"`
}

type reportResponse struct {
	RecordCount         int                        `json:"record_count"`
	Preview             []domain.TransactionRecord `json:"preview"`
	Metrics             *domain.FinancialMetrics   `json:"metrics"`
	SavingsPercentLabel string                     `json:"savings_percent_label"`
	CategorySummary     domain.CategorySummary     `json:"category_summary"`
	CategoryShares      []categoryShare            `json:"category_shares"`
	UserSummary         domain.UserSummary         `json:"user_summary"`
	MonthlySummary      domain.MonthlySummary      `json:"monthly_summary"`
}

// Health reports liveness.
func (h *ReportHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Summarize runs the pipeline on the uploaded CSV and returns the dashboard data.
func (h *ReportHandler) Summarize(c *gin.Context) {
	report, ok := h.runUpload(c)
	if !ok {
		return
	}

	preview := report.Records
	if len(preview) > previewSize {
		preview = preview[:previewSize]
	}

	c.JSON(http.StatusOK, reportResponse{
		RecordCount:         len(report.Records),
		Preview:             preview,
		Metrics:             report.Metrics,
		SavingsPercentLabel: usecase.FormatPercent(report.Metrics.SavingsPercent),
		CategorySummary:     report.CategorySummary,
		CategoryShares:      categoryShares(report.CategorySummary),
		UserSummary:         report.UserSummary,
		MonthlySummary:      report.MonthlySummary,
	})
}

// Download runs the pipeline and returns the report as an .xlsx attachment.
func (h *ReportHandler) Download(c *gin.Context) {
	report, ok := h.runUpload(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	opts := usecase.ExportOptions{IncludeMonth: true}
	if err := h.service.Publish(c.Request.Context(), report, opts, gateway.NewXLSXDocumentWriter(&buf)); err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+reportFileName+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Publish runs the pipeline and writes the report to the configured spreadsheet.
func (h *ReportHandler) Publish(c *gin.Context) {
	if h.publisher == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "spreadsheet publishing is not configured"})
		return
	}

	report, ok := h.runUpload(c)
	if !ok {
		return
	}

	if err := h.service.Publish(c.Request.Context(), report, usecase.ExportOptions{IncludeMonth: true}, h.publisher); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "published", "records": len(report.Records)})
}

// runUpload reads the "file" and "income" form fields and runs the pipeline.
// On failure it writes the error response and returns false.
func (h *ReportHandler) runUpload(c *gin.Context) (*domain.Report, bool) {
	if c.Request.ContentLength > h.maxUploadSize {
		h.tooLarge(c)
		return nil, false
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.tooLarge(c)
			return nil, false
		}
		h.logger.WarnContext(c.Request.Context(), "Failed to retrieve file from request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to retrieve file from request, ensure the 'file' field is used"})
		return nil, false
	}

	income := decimal.Zero
	if v := strings.TrimSpace(c.PostForm("income")); v != "" {
		income, err = decimal.NewFromString(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "income must be a number"})
			return nil, false
		}
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	defer file.Close()

	h.logger.InfoContext(c.Request.Context(), "Processing upload",
		"request_id", c.GetString(requestIDKey),
		"filename", fileHeader.Filename,
		"size", fileHeader.Size)

	report, err := h.service.Run(c.Request.Context(), file, income)
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	return report, true
}

func (h *ReportHandler) tooLarge(c *gin.Context) {
	c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "upload too large"})
}

// fail maps pipeline errors to responses: input problems are the client's, the rest are ours.
func (h *ReportHandler) fail(c *gin.Context, err error) {
	ctx := c.Request.Context()
	switch {
	case errors.Is(err, domain.ErrMalformedInput), errors.Is(err, domain.ErrInvalidIncome):
		h.logger.WarnContext(ctx, "Rejected upload", "request_id", c.GetString(requestIDKey), "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.ErrorContext(ctx, "Report processing failed", "request_id", c.GetString(requestIDKey), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "an internal error occurred while processing the file"})
	}
}

// categoryShares returns each category's percentage of the total, rounded to one decimal.
func categoryShares(summary domain.CategorySummary) []categoryShare {
	total := summary.Total()
	shares := make([]categoryShare, 0, len(summary))
	for _, cat := range summary {
		pct := decimal.Zero
		if !total.IsZero() {
			pct = cat.Amount.Div(total).Mul(decimal.NewFromInt(100)).Round(1)
		}
		shares = append(shares, categoryShare{Category: cat.Category, Percent: pct})
	}
	return shares
}
