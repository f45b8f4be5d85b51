package printing

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/amani/backend/internal/domain/report"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

// templateFiles maps report types to their embedded template files
var templateFiles = map[report.ReportType]string{
	report.ReportTypeBudgetVsActual:     "templates/budget_vs_actual.html",
	report.ReportTypeCashFlowStatement:  "templates/cash_flow_statement.html",
	report.ReportTypeExpenseSummary:     "templates/expense_summary.html",
	report.ReportTypeDonorContributions: "templates/donor_contributions.html",
	report.ReportTypeProjectStatus:      "templates/project_status.html",
	// CUSTOM reports reuse the expense summary layout
	report.ReportTypeCustom: "templates/expense_summary.html",
}

// TemplateEngine renders report datasets into HTML using the embedded
// templates. Templates are parsed once at construction.
type TemplateEngine struct {
	templates map[report.ReportType]*template.Template
}

// NewTemplateEngine parses the embedded report templates
func NewTemplateEngine() (*TemplateEngine, error) {
	e := &TemplateEngine{
		templates: make(map[report.ReportType]*template.Template, len(templateFiles)),
	}
	for reportType, file := range templateFiles {
		content, err := templateFS.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", file, err)
		}
		tmpl, err := template.New(string(reportType)).Funcs(reportFuncMap()).Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", file, err)
		}
		e.templates[reportType] = tmpl
	}
	return e, nil
}

// Render executes the template for the report type against the dataset
func (e *TemplateEngine) Render(reportType report.ReportType, title string, data any) (string, error) {
	tmpl, ok := e.templates[reportType]
	if !ok {
		return "", NewRenderError(ErrCodeUnknownTemplate, "no template for report type "+string(reportType), nil)
	}

	var buf bytes.Buffer
	payload := struct {
		Title       string
		GeneratedAt time.Time
		Data        any
	}{
		Title:       title,
		GeneratedAt: time.Now(),
		Data:        data,
	}
	if err := tmpl.Execute(&buf, payload); err != nil {
		return "", NewRenderError(ErrCodeInvalidData, "failed to execute template", err)
	}
	return buf.String(), nil
}

// reportFuncMap returns the formatting functions available to templates
func reportFuncMap() template.FuncMap {
	return template.FuncMap{
		"formatMoney":    formatMoney,
		"formatDecimal":  formatDecimal,
		"formatPercent":  formatPercent,
		"formatDate":     formatDate,
		"formatDateTime": formatDateTime,
		"formatMonth":    formatMonth,
	}
}

// formatMoney renders a decimal with thousands separators and two decimals
func formatMoney(d decimal.Decimal) string {
	return groupThousands(d.StringFixed(2))
}

func formatDecimal(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func formatPercent(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}

// formatDate accepts both time.Time and *time.Time since optional dates are
// pointers in the datasets
func formatDate(v any) string {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	case *time.Time:
		if t == nil || t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	}
	return ""
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}

func formatMonth(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", month.String()[:3], year)
}

// groupThousands inserts comma separators into the integer part of a
// fixed-point decimal string
func groupThousands(s string) string {
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	intPart := s
	fracPart := ""
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			intPart = s[:i]
			fracPart = s[i:]
			break
		}
	}
	if len(intPart) > 3 {
		var buf bytes.Buffer
		lead := len(intPart) % 3
		if lead > 0 {
			buf.WriteString(intPart[:lead])
		}
		for i := lead; i < len(intPart); i += 3 {
			if buf.Len() > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(intPart[i : i+3])
		}
		intPart = buf.String()
	}
	result := intPart + fracPart
	if neg {
		result = "-" + result
	}
	return result
}
