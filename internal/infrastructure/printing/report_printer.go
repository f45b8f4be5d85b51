package printing

import (
	"context"

	appreport "github.com/amani/backend/internal/application/report"
	"github.com/amani/backend/internal/domain/report"
)

// ReportPrinter combines the template engine, the PDF renderer, and the Excel
// exporter behind the report service's renderer interface.
type ReportPrinter struct {
	engine *TemplateEngine
	pdf    PDFRenderer
	excel  *ExcelExporter
}

// NewReportPrinter creates a new ReportPrinter
func NewReportPrinter(engine *TemplateEngine, pdf PDFRenderer, excel *ExcelExporter) *ReportPrinter {
	return &ReportPrinter{
		engine: engine,
		pdf:    pdf,
		excel:  excel,
	}
}

// RenderPDF renders the dataset into HTML and prints it to PDF
func (p *ReportPrinter) RenderPDF(ctx context.Context, reportType report.ReportType, title string, data any) ([]byte, error) {
	html, err := p.engine.Render(reportType, title, data)
	if err != nil {
		return nil, err
	}
	result, err := p.pdf.Render(ctx, &RenderRequest{
		HTML:  html,
		Title: title,
	})
	if err != nil {
		return nil, err
	}
	return result.PDFData, nil
}

// RenderExcel renders the dataset into an xlsx workbook
func (p *ReportPrinter) RenderExcel(ctx context.Context, reportType report.ReportType, title string, data any) ([]byte, error) {
	return p.excel.Export(reportType, title, data)
}

// Close releases the underlying PDF renderer
func (p *ReportPrinter) Close() error {
	return p.pdf.Close()
}

// Ensure ReportPrinter implements the report service renderer
var _ appreport.ReportRenderer = (*ReportPrinter)(nil)
