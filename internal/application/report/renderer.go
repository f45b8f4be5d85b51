package report

import (
	"context"
	"time"

	"github.com/amani/backend/internal/domain/report"
)

// ReportFormat selects the output artifact
type ReportFormat string

const (
	FormatPDF   ReportFormat = "pdf"
	FormatExcel ReportFormat = "xlsx"
)

// IsValid checks if the format is supported
func (f ReportFormat) IsValid() bool {
	return f == FormatPDF || f == FormatExcel
}

// ContentType returns the MIME type for the format
func (f ReportFormat) ContentType() string {
	if f == FormatExcel {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/pdf"
}

// ReportRenderer turns an aggregation dataset into a downloadable artifact.
// Implementations live in infrastructure/printing.
type ReportRenderer interface {
	// RenderPDF renders the dataset for the given report type into a PDF
	RenderPDF(ctx context.Context, reportType report.ReportType, title string, data any) ([]byte, error)
	// RenderExcel renders the dataset for the given report type into an xlsx workbook
	RenderExcel(ctx context.Context, reportType report.ReportType, title string, data any) ([]byte, error)
}

// ObjectStore is the slice of object storage the report service needs
type ObjectStore interface {
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
	Download(ctx context.Context, storageKey string) ([]byte, error)
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
	DeleteObject(ctx context.Context, storageKey string) error
}
