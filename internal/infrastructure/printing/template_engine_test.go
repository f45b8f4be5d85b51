package printing

import (
	"testing"
	"time"

	appreport "github.com/amani/backend/internal/application/report"
	"github.com/amani/backend/internal/domain/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBudgetVsActual() *appreport.BudgetVsActualData {
	return &appreport.BudgetVsActualData{
		ProjectCode: "WASH-01",
		ProjectName: "Clean Water Initiative",
		BudgetName:  "FY2026 Operating Budget",
		FiscalYear:  2026,
		Currency:    "USD",
		PeriodStart: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		Rows: []appreport.BudgetVsActualRow{
			{
				Category:       "Transport",
				Allocated:      decimal.NewFromInt(10000),
				Spent:          decimal.NewFromInt(2500),
				Remaining:      decimal.NewFromInt(7500),
				UtilizationPct: decimal.NewFromInt(25),
			},
		},
		TotalAllocated: decimal.NewFromInt(10000),
		TotalSpent:     decimal.NewFromInt(2500),
		TotalRemaining: decimal.NewFromInt(7500),
	}
}

func TestNewTemplateEngine(t *testing.T) {
	engine, err := NewTemplateEngine()
	require.NoError(t, err)
	assert.NotNil(t, engine)
}

func TestTemplateEngine_RenderBudgetVsActual(t *testing.T) {
	engine, err := NewTemplateEngine()
	require.NoError(t, err)

	html, err := engine.Render(report.ReportTypeBudgetVsActual, "Budget vs Actual", sampleBudgetVsActual())
	require.NoError(t, err)

	assert.Contains(t, html, "Budget vs Actual")
	assert.Contains(t, html, "WASH-01")
	assert.Contains(t, html, "Clean Water Initiative")
	assert.Contains(t, html, "Transport")
	assert.Contains(t, html, "10,000.00")
	assert.Contains(t, html, "25.0%")
}

func TestTemplateEngine_RenderCashFlowStatement(t *testing.T) {
	engine, err := NewTemplateEngine()
	require.NoError(t, err)

	data := &appreport.CashFlowStatementData{
		PeriodStart: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
		Accounts: []appreport.CashFlowAccountSection{
			{
				AccountName:   "Operating Account",
				AccountNumber: "ACC-001",
				BankName:      "Equity Bank",
				Currency:      "USD",
				TotalInflow:   decimal.NewFromInt(5000),
				TotalOutflow:  decimal.NewFromInt(3000),
				NetFlow:       decimal.NewFromInt(2000),
			},
		},
		TotalInflow:  decimal.NewFromInt(5000),
		TotalOutflow: decimal.NewFromInt(3000),
		NetFlow:      decimal.NewFromInt(2000),
	}

	html, err := engine.Render(report.ReportTypeCashFlowStatement, "Cash Flow Statement", data)
	require.NoError(t, err)

	assert.Contains(t, html, "Operating Account")
	assert.Contains(t, html, "Equity Bank")
	assert.Contains(t, html, "5,000.00")
}

func TestTemplateEngine_CustomUsesExpenseSummaryLayout(t *testing.T) {
	engine, err := NewTemplateEngine()
	require.NoError(t, err)

	data := &appreport.ExpenseSummaryData{
		PeriodStart:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:     time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		CountByStatus: map[string]int{"PAID": 2},
		GrandTotal:    decimal.NewFromInt(312),
	}

	html, err := engine.Render(report.ReportTypeCustom, "Custom Report", data)
	require.NoError(t, err)
	assert.Contains(t, html, "Grand total")
	assert.Contains(t, html, "312.00")
}

func TestTemplateEngine_UnknownType(t *testing.T) {
	engine, err := NewTemplateEngine()
	require.NoError(t, err)

	_, err = engine.Render(report.ReportType("BOGUS"), "x", nil)
	require.Error(t, err)
	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, ErrCodeUnknownTemplate, renderErr.Code)
}

func TestGroupThousands(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0.00", "0.00"},
		{"999.99", "999.99"},
		{"1000.00", "1,000.00"},
		{"1234567.89", "1,234,567.89"},
		{"-1234567.89", "-1,234,567.89"},
		{"100", "100"},
		{"123456", "123,456"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, groupThousands(tt.in), "input %s", tt.in)
	}
}

func TestFormatMonth(t *testing.T) {
	assert.Equal(t, "Jan 2026", formatMonth(2026, time.January))
	assert.Equal(t, "Dec 2025", formatMonth(2025, time.December))
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-15", formatDate(d))
	assert.Equal(t, "2026-03-15", formatDate(&d))
	assert.Equal(t, "", formatDate((*time.Time)(nil)))
	assert.Equal(t, "", formatDate(time.Time{}))
}
