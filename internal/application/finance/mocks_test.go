package finance

import (
	"context"
	"time"

	"github.com/amani/backend/internal/domain/audit"
	"github.com/amani/backend/internal/domain/finance"
	"github.com/amani/backend/internal/domain/program"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockExpenseRepository is a mock implementation of finance.ExpenseRepository
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindByExpenseNumber(ctx context.Context, expenseNumber string) (*finance.Expense, error) {
	args := m.Called(ctx, expenseNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindAll(ctx context.Context, filter finance.ExpenseFilter) ([]finance.Expense, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) Count(ctx context.Context, filter finance.ExpenseFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockExpenseRepository) GenerateExpenseNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockExpenseRepository) SumByProject(ctx context.Context, projectID uuid.UUID, statuses []finance.ExpenseStatus, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, projectID, statuses, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockExpenseApprovalRepository is a mock implementation of finance.ExpenseApprovalRepository
type MockExpenseApprovalRepository struct {
	mock.Mock
}

func (m *MockExpenseApprovalRepository) Create(ctx context.Context, approval *finance.ExpenseApproval) error {
	args := m.Called(ctx, approval)
	return args.Error(0)
}

func (m *MockExpenseApprovalRepository) FindByExpenseID(ctx context.Context, expenseID uuid.UUID) ([]finance.ExpenseApproval, error) {
	args := m.Called(ctx, expenseID)
	return args.Get(0).([]finance.ExpenseApproval), args.Error(1)
}

// MockBudgetItemRepository is a mock implementation of finance.BudgetItemRepository
type MockBudgetItemRepository struct {
	mock.Mock
}

func (m *MockBudgetItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.BudgetItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.BudgetItem), args.Error(1)
}

func (m *MockBudgetItemRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*finance.BudgetItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.BudgetItem), args.Error(1)
}

func (m *MockBudgetItemRepository) FindByBudgetID(ctx context.Context, budgetID uuid.UUID) ([]finance.BudgetItem, error) {
	args := m.Called(ctx, budgetID)
	return args.Get(0).([]finance.BudgetItem), args.Error(1)
}

func (m *MockBudgetItemRepository) Save(ctx context.Context, item *finance.BudgetItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockBudgetItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBankAccountRepository is a mock implementation of finance.BankAccountRepository
type MockBankAccountRepository struct {
	mock.Mock
}

func (m *MockBankAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.BankAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*finance.BankAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) FindByAccountNumber(ctx context.Context, accountNumber string) (*finance.BankAccount, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) FindAll(ctx context.Context, filter finance.BankAccountFilter) ([]finance.BankAccount, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]finance.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) Count(ctx context.Context, filter finance.BankAccountFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBankAccountRepository) Save(ctx context.Context, account *finance.BankAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockBankAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCashFlowRepository is a mock implementation of finance.CashFlowRepository
type MockCashFlowRepository struct {
	mock.Mock
}

func (m *MockCashFlowRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.CashFlow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.CashFlow), args.Error(1)
}

func (m *MockCashFlowRepository) FindByTransactionNumber(ctx context.Context, transactionNumber string) (*finance.CashFlow, error) {
	args := m.Called(ctx, transactionNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.CashFlow), args.Error(1)
}

func (m *MockCashFlowRepository) FindAll(ctx context.Context, filter finance.CashFlowFilter) ([]finance.CashFlow, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]finance.CashFlow), args.Error(1)
}

func (m *MockCashFlowRepository) Count(ctx context.Context, filter finance.CashFlowFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCashFlowRepository) Create(ctx context.Context, flow *finance.CashFlow) error {
	args := m.Called(ctx, flow)
	return args.Error(0)
}

func (m *MockCashFlowRepository) Save(ctx context.Context, flow *finance.CashFlow) error {
	args := m.Called(ctx, flow)
	return args.Error(0)
}

func (m *MockCashFlowRepository) GenerateTransactionNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockCashFlowRepository) MonthlyTotals(ctx context.Context, bankAccountID uuid.UUID, from, to time.Time) ([]finance.MonthlyFlowTotals, error) {
	args := m.Called(ctx, bankAccountID, from, to)
	return args.Get(0).([]finance.MonthlyFlowTotals), args.Error(1)
}

// MockProjectRepository is a mock implementation of program.ProjectRepository
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*program.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*program.Project), args.Error(1)
}

func (m *MockProjectRepository) FindByCode(ctx context.Context, code string) (*program.Project, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*program.Project), args.Error(1)
}

func (m *MockProjectRepository) FindAll(ctx context.Context, filter program.ProjectFilter) ([]*program.Project, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*program.Project), args.Error(1)
}

func (m *MockProjectRepository) Count(ctx context.Context, filter program.ProjectFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProjectRepository) Save(ctx context.Context, project *program.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProjectRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockActivityLogRepository is a mock implementation of audit.ActivityLogRepository
type MockActivityLogRepository struct {
	mock.Mock
}

func (m *MockActivityLogRepository) Create(ctx context.Context, log *audit.ActivityLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockActivityLogRepository) FindAll(ctx context.Context, filter audit.ActivityLogFilter) ([]*audit.ActivityLog, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*audit.ActivityLog), args.Error(1)
}

func (m *MockActivityLogRepository) Count(ctx context.Context, filter audit.ActivityLogFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}
