package printing

import (
	"bytes"
	"testing"

	"github.com/amani/backend/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExcelExporter_BudgetVsActual(t *testing.T) {
	exporter := NewExcelExporter()

	data, err := exporter.Export(report.ReportTypeBudgetVsActual, "Budget vs Actual", sampleBudgetVsActual())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Report", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Budget vs Actual", title)

	rows, err := f.GetRows("Report")
	require.NoError(t, err)

	var sawHeader, sawCategory bool
	for _, row := range rows {
		if len(row) > 0 && row[0] == "Category" {
			sawHeader = true
		}
		if len(row) > 0 && row[0] == "Transport" {
			sawCategory = true
		}
	}
	assert.True(t, sawHeader, "header row missing")
	assert.True(t, sawCategory, "data row missing")
}

func TestExcelExporter_RejectsUnknownData(t *testing.T) {
	exporter := NewExcelExporter()

	_, err := exporter.Export(report.ReportTypeBudgetVsActual, "x", struct{}{})
	require.Error(t, err)
	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, ErrCodeInvalidData, renderErr.Code)
}
