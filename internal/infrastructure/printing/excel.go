package printing

import (
	"fmt"

	appreport "github.com/amani/backend/internal/application/report"
	"github.com/amani/backend/internal/domain/report"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ExcelExporter builds xlsx workbooks from report datasets
type ExcelExporter struct{}

// NewExcelExporter creates a new ExcelExporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// Export renders the dataset for the report type into an xlsx workbook
func (e *ExcelExporter) Export(reportType report.ReportType, title string, data any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Report"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	w := &sheetWriter{f: f, sheet: sheet, headerStyle: headerStyle}
	w.writeRow(title)
	w.row++ // blank separator line

	switch d := data.(type) {
	case *appreport.BudgetVsActualData:
		e.writeBudgetVsActual(w, d)
	case *appreport.CashFlowStatementData:
		e.writeCashFlowStatement(w, d)
	case *appreport.ExpenseSummaryData:
		e.writeExpenseSummary(w, d)
	case *appreport.DonorContributionsData:
		e.writeDonorContributions(w, d)
	case *appreport.ProjectStatusData:
		e.writeProjectStatus(w, d)
	default:
		return nil, NewRenderError(ErrCodeInvalidData,
			fmt.Sprintf("no Excel layout for report type %s", reportType), nil)
	}
	if w.err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "failed to build workbook", w.err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "failed to serialize workbook", err)
	}
	return buf.Bytes(), nil
}

// sheetWriter appends rows to one sheet, remembering the first error
type sheetWriter struct {
	f           *excelize.File
	sheet       string
	headerStyle int
	row         int
	err         error
}

func (w *sheetWriter) writeRow(values ...any) {
	w.row++
	if w.err != nil {
		return
	}
	cell := fmt.Sprintf("A%d", w.row)
	w.err = w.f.SetSheetRow(w.sheet, cell, &values)
}

func (w *sheetWriter) writeHeader(values ...any) {
	w.writeRow(values...)
	if w.err != nil {
		return
	}
	start := fmt.Sprintf("A%d", w.row)
	end, err := excelize.CoordinatesToCellName(len(values), w.row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellStyle(w.sheet, start, end, w.headerStyle)
}

// money converts a decimal to float64 for cell storage. Report outputs are
// display artifacts, the lossless values stay in the database.
func money(d decimal.Decimal) float64 {
	v, _ := d.Float64()
	return v
}

func (e *ExcelExporter) writeBudgetVsActual(w *sheetWriter, d *appreport.BudgetVsActualData) {
	w.writeRow("Project", d.ProjectCode+" "+d.ProjectName)
	w.writeRow("Budget", d.BudgetName, "Fiscal year", d.FiscalYear, "Currency", d.Currency)
	w.writeRow("Period", d.PeriodStart.Format("2006-01-02"), "to", d.PeriodEnd.Format("2006-01-02"))
	w.row++
	w.writeHeader("Category", "Description", "Allocated", "Spent", "Remaining", "Utilization %")
	for _, row := range d.Rows {
		w.writeRow(row.Category, row.Description, money(row.Allocated), money(row.Spent),
			money(row.Remaining), money(row.UtilizationPct))
	}
	w.writeRow("Total", "", money(d.TotalAllocated), money(d.TotalSpent), money(d.TotalRemaining))
}

func (e *ExcelExporter) writeCashFlowStatement(w *sheetWriter, d *appreport.CashFlowStatementData) {
	w.writeRow("Period", d.PeriodStart.Format("2006-01-02"), "to", d.PeriodEnd.Format("2006-01-02"))
	for _, account := range d.Accounts {
		w.row++
		w.writeRow(account.AccountName, account.BankName, account.AccountNumber, account.Currency)
		w.writeHeader("Month", "Inflow", "Outflow")
		for _, m := range account.Months {
			w.writeRow(fmt.Sprintf("%04d-%02d", m.Year, int(m.Month)), money(m.Inflow), money(m.Outflow))
		}
		w.writeRow("Subtotal", money(account.TotalInflow), money(account.TotalOutflow))
	}
	w.row++
	w.writeRow("Total inflow", money(d.TotalInflow))
	w.writeRow("Total outflow", money(d.TotalOutflow))
	w.writeRow("Net cash flow", money(d.NetFlow))
}

func (e *ExcelExporter) writeExpenseSummary(w *sheetWriter, d *appreport.ExpenseSummaryData) {
	w.writeRow("Period", d.PeriodStart.Format("2006-01-02"), "to", d.PeriodEnd.Format("2006-01-02"))
	w.row++
	w.writeHeader("Number", "Description", "Date", "Status", "Amount", "Currency")
	for _, row := range d.Rows {
		w.writeRow(row.ExpenseNumber, row.Description, row.IncurredAt.Format("2006-01-02"),
			row.Status, money(row.Amount), row.Currency)
	}
	w.writeRow("Grand total", "", "", "", money(d.GrandTotal))
	w.writeRow("Approved total", "", "", "", money(d.TotalApproved))
	w.writeRow("Paid total", "", "", "", money(d.TotalPaid))
}

func (e *ExcelExporter) writeDonorContributions(w *sheetWriter, d *appreport.DonorContributionsData) {
	w.writeRow("Period", d.PeriodStart.Format("2006-01-02"), "to", d.PeriodEnd.Format("2006-01-02"))
	w.row++
	w.writeHeader("Donor", "Fundings", "Restricted", "Unrestricted", "Total")
	for _, row := range d.Rows {
		w.writeRow(row.DonorName, row.FundingCount, money(row.RestrictedAmount),
			money(row.UnrestrictedAmount), money(row.TotalAmount))
	}
	w.writeRow("Total", "", money(d.TotalRestricted), money(d.TotalUnrestricted), money(d.TotalAmount))
}

func (e *ExcelExporter) writeProjectStatus(w *sheetWriter, d *appreport.ProjectStatusData) {
	w.writeRow("Period", d.PeriodStart.Format("2006-01-02"), "to", d.PeriodEnd.Format("2006-01-02"))
	w.row++
	w.writeHeader("Code", "Project", "Status", "Start", "End", "Funding received", "Spent")
	for _, row := range d.Rows {
		end := ""
		if row.EndDate != nil {
			end = row.EndDate.Format("2006-01-02")
		}
		w.writeRow(row.Code, row.Name, row.Status, row.StartDate.Format("2006-01-02"), end,
			money(row.FundingReceived), money(row.Spent))
	}
	w.writeRow("Total", "", "", "", "", money(d.TotalFunding), money(d.TotalSpent))
}
