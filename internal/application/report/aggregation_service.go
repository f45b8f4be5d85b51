package report

import (
	"context"
	"time"

	"github.com/amani/backend/internal/domain/finance"
	"github.com/amani/backend/internal/domain/program"
	"github.com/amani/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetVsActualRow is one allocation line compared against recorded spending
type BudgetVsActualRow struct {
	Category       string          `json:"category"`
	Description    string          `json:"description,omitempty"`
	Allocated      decimal.Decimal `json:"allocated"`
	Spent          decimal.Decimal `json:"spent"`
	Remaining      decimal.Decimal `json:"remaining"`
	UtilizationPct decimal.Decimal `json:"utilization_pct"`
}

// BudgetVsActualData is the dataset behind a budget-vs-actual report
type BudgetVsActualData struct {
	ProjectCode    string             `json:"project_code"`
	ProjectName    string             `json:"project_name"`
	BudgetName     string             `json:"budget_name"`
	FiscalYear     int                `json:"fiscal_year"`
	Currency       string             `json:"currency"`
	PeriodStart    time.Time          `json:"period_start"`
	PeriodEnd      time.Time          `json:"period_end"`
	Rows           []BudgetVsActualRow `json:"rows"`
	TotalAllocated decimal.Decimal    `json:"total_allocated"`
	TotalSpent     decimal.Decimal    `json:"total_spent"`
	TotalRemaining decimal.Decimal    `json:"total_remaining"`
}

// CashFlowAccountSection is one bank account's monthly flow breakdown
type CashFlowAccountSection struct {
	AccountName    string                      `json:"account_name"`
	AccountNumber  string                      `json:"account_number"`
	BankName       string                      `json:"bank_name"`
	Currency       string                      `json:"currency"`
	CurrentBalance decimal.Decimal             `json:"current_balance"`
	Months         []finance.MonthlyFlowTotals `json:"months"`
	TotalInflow    decimal.Decimal             `json:"total_inflow"`
	TotalOutflow   decimal.Decimal             `json:"total_outflow"`
	NetFlow        decimal.Decimal             `json:"net_flow"`
}

// CashFlowStatementData is the dataset behind a cash-flow statement report
type CashFlowStatementData struct {
	PeriodStart  time.Time                `json:"period_start"`
	PeriodEnd    time.Time                `json:"period_end"`
	Accounts     []CashFlowAccountSection `json:"accounts"`
	TotalInflow  decimal.Decimal          `json:"total_inflow"`
	TotalOutflow decimal.Decimal          `json:"total_outflow"`
	NetFlow      decimal.Decimal          `json:"net_flow"`
}

// ExpenseSummaryRow is one expense line in the summary report
type ExpenseSummaryRow struct {
	ExpenseNumber string          `json:"expense_number"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Status        string          `json:"status"`
	IncurredAt    time.Time       `json:"incurred_at"`
}

// ExpenseSummaryData is the dataset behind an expense summary report
type ExpenseSummaryData struct {
	PeriodStart   time.Time           `json:"period_start"`
	PeriodEnd     time.Time           `json:"period_end"`
	Rows          []ExpenseSummaryRow `json:"rows"`
	CountByStatus map[string]int      `json:"count_by_status"`
	TotalApproved decimal.Decimal     `json:"total_approved"`
	TotalPaid     decimal.Decimal     `json:"total_paid"`
	GrandTotal    decimal.Decimal     `json:"grand_total"`
}

// DonorContributionsData is the dataset behind a donor contributions report
type DonorContributionsData struct {
	PeriodStart       time.Time                   `json:"period_start"`
	PeriodEnd         time.Time                   `json:"period_end"`
	Rows              []program.DonorContribution `json:"rows"`
	TotalAmount       decimal.Decimal             `json:"total_amount"`
	TotalRestricted   decimal.Decimal             `json:"total_restricted"`
	TotalUnrestricted decimal.Decimal             `json:"total_unrestricted"`
}

// ProjectStatusRow is one project line in the portfolio status report
type ProjectStatusRow struct {
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	Status          string          `json:"status"`
	StartDate       time.Time       `json:"start_date"`
	EndDate         *time.Time      `json:"end_date,omitempty"`
	FundingReceived decimal.Decimal `json:"funding_received"`
	Spent           decimal.Decimal `json:"spent"`
}

// ProjectStatusData is the dataset behind a project status report
type ProjectStatusData struct {
	PeriodStart  time.Time          `json:"period_start"`
	PeriodEnd    time.Time          `json:"period_end"`
	Rows         []ProjectStatusRow `json:"rows"`
	TotalFunding decimal.Decimal    `json:"total_funding"`
	TotalSpent   decimal.Decimal    `json:"total_spent"`
}

// AggregationService runs the read-only query sets behind each report type.
// No business state is mutated here.
type AggregationService struct {
	projectRepo     program.ProjectRepository
	budgetRepo      finance.BudgetRepository
	budgetItemRepo  finance.BudgetItemRepository
	expenseRepo     finance.ExpenseRepository
	bankAccountRepo finance.BankAccountRepository
	cashFlowRepo    finance.CashFlowRepository
	fundingRepo     program.DonorFundingRepository
}

// NewAggregationService creates a new AggregationService
func NewAggregationService(
	projectRepo program.ProjectRepository,
	budgetRepo finance.BudgetRepository,
	budgetItemRepo finance.BudgetItemRepository,
	expenseRepo finance.ExpenseRepository,
	bankAccountRepo finance.BankAccountRepository,
	cashFlowRepo finance.CashFlowRepository,
	fundingRepo program.DonorFundingRepository,
) *AggregationService {
	return &AggregationService{
		projectRepo:     projectRepo,
		budgetRepo:      budgetRepo,
		budgetItemRepo:  budgetItemRepo,
		expenseRepo:     expenseRepo,
		bankAccountRepo: bankAccountRepo,
		cashFlowRepo:    cashFlowRepo,
		fundingRepo:     fundingRepo,
	}
}

// BudgetVsActual builds the allocation-versus-spending dataset for a budget
func (s *AggregationService) BudgetVsActual(ctx context.Context, budgetID uuid.UUID, from, to time.Time) (*BudgetVsActualData, error) {
	budget, err := s.budgetRepo.FindByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	project, err := s.projectRepo.FindByID(ctx, budget.ProjectID)
	if err != nil {
		return nil, err
	}
	items, err := s.budgetItemRepo.FindByBudgetID(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	data := &BudgetVsActualData{
		ProjectCode:    project.Code,
		ProjectName:    project.Name,
		BudgetName:     budget.Name,
		FiscalYear:     budget.FiscalYear,
		Currency:       string(budget.Currency),
		PeriodStart:    from,
		PeriodEnd:      to,
		Rows:           make([]BudgetVsActualRow, 0, len(items)),
		TotalAllocated: decimal.Zero,
		TotalSpent:     decimal.Zero,
		TotalRemaining: decimal.Zero,
	}
	hundred := decimal.NewFromInt(100)
	for _, item := range items {
		row := BudgetVsActualRow{
			Category:    item.Category,
			Description: item.Description,
			Allocated:   item.AllocatedAmount,
			Spent:       item.SpentAmount,
			Remaining:   item.RemainingAmount,
		}
		if item.AllocatedAmount.IsPositive() {
			row.UtilizationPct = item.SpentAmount.Div(item.AllocatedAmount).Mul(hundred).Round(1)
		}
		data.Rows = append(data.Rows, row)
		data.TotalAllocated = data.TotalAllocated.Add(item.AllocatedAmount)
		data.TotalSpent = data.TotalSpent.Add(item.SpentAmount)
		data.TotalRemaining = data.TotalRemaining.Add(item.RemainingAmount)
	}
	return data, nil
}

// CashFlowStatement builds per-account monthly inflow/outflow sections.
// With a nil account filter every active account is included.
func (s *AggregationService) CashFlowStatement(ctx context.Context, bankAccountID *uuid.UUID, from, to time.Time) (*CashFlowStatementData, error) {
	var accounts []finance.BankAccount
	if bankAccountID != nil {
		account, err := s.bankAccountRepo.FindByID(ctx, *bankAccountID)
		if err != nil {
			return nil, err
		}
		accounts = []finance.BankAccount{*account}
	} else {
		active := true
		filter := finance.BankAccountFilter{IsActive: &active}
		var err error
		accounts, err = s.bankAccountRepo.FindAll(ctx, filter)
		if err != nil {
			return nil, err
		}
	}

	data := &CashFlowStatementData{
		PeriodStart:  from,
		PeriodEnd:    to,
		Accounts:     make([]CashFlowAccountSection, 0, len(accounts)),
		TotalInflow:  decimal.Zero,
		TotalOutflow: decimal.Zero,
		NetFlow:      decimal.Zero,
	}
	for _, account := range accounts {
		months, err := s.cashFlowRepo.MonthlyTotals(ctx, account.ID, from, to)
		if err != nil {
			return nil, err
		}
		section := CashFlowAccountSection{
			AccountName:    account.AccountName,
			AccountNumber:  account.AccountNumber,
			BankName:       account.BankName,
			Currency:       string(account.Currency),
			CurrentBalance: account.CurrentBalance,
			Months:         months,
			TotalInflow:    decimal.Zero,
			TotalOutflow:   decimal.Zero,
		}
		for _, m := range months {
			section.TotalInflow = section.TotalInflow.Add(m.Inflow)
			section.TotalOutflow = section.TotalOutflow.Add(m.Outflow)
		}
		section.NetFlow = section.TotalInflow.Sub(section.TotalOutflow)
		data.Accounts = append(data.Accounts, section)
		data.TotalInflow = data.TotalInflow.Add(section.TotalInflow)
		data.TotalOutflow = data.TotalOutflow.Add(section.TotalOutflow)
	}
	data.NetFlow = data.TotalInflow.Sub(data.TotalOutflow)
	return data, nil
}

// ExpenseSummary builds the expense listing with per-status counts for the period
func (s *AggregationService) ExpenseSummary(ctx context.Context, projectID *uuid.UUID, from, to time.Time) (*ExpenseSummaryData, error) {
	filter := finance.ExpenseFilter{
		ProjectID: projectID,
		FromDate:  &from,
		ToDate:    &to,
	}
	filter.OrderBy = "incurred_at"
	filter.OrderDir = "ASC"

	expenses, err := s.expenseRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	data := &ExpenseSummaryData{
		PeriodStart:   from,
		PeriodEnd:     to,
		Rows:          make([]ExpenseSummaryRow, 0, len(expenses)),
		CountByStatus: make(map[string]int),
		TotalApproved: decimal.Zero,
		TotalPaid:     decimal.Zero,
		GrandTotal:    decimal.Zero,
	}
	for _, e := range expenses {
		data.Rows = append(data.Rows, ExpenseSummaryRow{
			ExpenseNumber: e.ExpenseNumber,
			Description:   e.Description,
			Amount:        e.Amount,
			Currency:      string(e.Currency),
			Status:        string(e.Status),
			IncurredAt:    e.IncurredAt,
		})
		data.CountByStatus[string(e.Status)]++
		switch e.Status {
		case finance.ExpenseStatusApproved:
			data.TotalApproved = data.TotalApproved.Add(e.Amount)
		case finance.ExpenseStatusPaid:
			data.TotalPaid = data.TotalPaid.Add(e.Amount)
		}
		data.GrandTotal = data.GrandTotal.Add(e.Amount)
	}
	return data, nil
}

// DonorContributions builds the per-donor funding summary for the period
func (s *AggregationService) DonorContributions(ctx context.Context, from, to time.Time) (*DonorContributionsData, error) {
	rows, err := s.fundingRepo.ContributionsByDonor(ctx, from, to)
	if err != nil {
		return nil, err
	}

	data := &DonorContributionsData{
		PeriodStart:       from,
		PeriodEnd:         to,
		Rows:              rows,
		TotalAmount:       decimal.Zero,
		TotalRestricted:   decimal.Zero,
		TotalUnrestricted: decimal.Zero,
	}
	for _, row := range rows {
		data.TotalAmount = data.TotalAmount.Add(row.TotalAmount)
		data.TotalRestricted = data.TotalRestricted.Add(row.RestrictedAmount)
		data.TotalUnrestricted = data.TotalUnrestricted.Add(row.UnrestrictedAmount)
	}
	return data, nil
}

// ProjectStatus builds the portfolio view: funding received versus spending
// per project within the period
func (s *AggregationService) ProjectStatus(ctx context.Context, from, to time.Time) (*ProjectStatusData, error) {
	projects, err := s.projectRepo.FindAll(ctx, program.ProjectFilter{Filter: shared.Filter{OrderBy: "code", OrderDir: "ASC"}})
	if err != nil {
		return nil, err
	}

	spentStatuses := []finance.ExpenseStatus{finance.ExpenseStatusApproved, finance.ExpenseStatusPaid}
	data := &ProjectStatusData{
		PeriodStart:  from,
		PeriodEnd:    to,
		Rows:         make([]ProjectStatusRow, 0, len(projects)),
		TotalFunding: decimal.Zero,
		TotalSpent:   decimal.Zero,
	}
	for _, p := range projects {
		funding, err := s.fundingRepo.SumByProject(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		spent, err := s.expenseRepo.SumByProject(ctx, p.ID, spentStatuses, from, to)
		if err != nil {
			return nil, err
		}
		data.Rows = append(data.Rows, ProjectStatusRow{
			Code:            p.Code,
			Name:            p.Name,
			Status:          string(p.Status),
			StartDate:       p.StartDate,
			EndDate:         p.EndDate,
			FundingReceived: funding,
			Spent:           spent,
		})
		data.TotalFunding = data.TotalFunding.Add(funding)
		data.TotalSpent = data.TotalSpent.Add(spent)
	}
	return data, nil
}
