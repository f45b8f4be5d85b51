package finance

import (
	"context"
	"time"

	"github.com/amani/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseFilter defines filtering options for expense queries
type ExpenseFilter struct {
	shared.Filter
	ProjectID    *uuid.UUID
	BudgetItemID *uuid.UUID
	Status       *ExpenseStatus
	SubmittedBy  *uuid.UUID
	FromDate     *time.Time
	ToDate       *time.Time
	MinAmount    *decimal.Decimal
	MaxAmount    *decimal.Decimal
}

// ExpenseRepository defines the interface for expense persistence
type ExpenseRepository interface {
	// FindByID finds an expense by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)

	// FindByIDForUpdate finds an expense by ID taking a row lock; must run
	// inside a transaction
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Expense, error)

	// FindByExpenseNumber finds an expense by its human-readable number
	FindByExpenseNumber(ctx context.Context, expenseNumber string) (*Expense, error)

	// FindAll finds expenses with filtering
	FindAll(ctx context.Context, filter ExpenseFilter) ([]Expense, error)

	// Count counts expenses with filtering
	Count(ctx context.Context, filter ExpenseFilter) (int64, error)

	// Save creates or updates an expense
	Save(ctx context.Context, expense *Expense) error

	// Delete soft deletes an expense
	Delete(ctx context.Context, id uuid.UUID) error

	// GenerateExpenseNumber generates the next expense number (EXP-YYYYMM-NNNNN)
	GenerateExpenseNumber(ctx context.Context) (string, error)

	// SumByProject sums expense amounts for a project within a date range,
	// restricted to the given statuses
	SumByProject(ctx context.Context, projectID uuid.UUID, statuses []ExpenseStatus, from, to time.Time) (decimal.Decimal, error)
}

// ExpenseApprovalRepository persists the append-only approval audit trail
type ExpenseApprovalRepository interface {
	// Create appends an approval record; records are never updated
	Create(ctx context.Context, approval *ExpenseApproval) error

	// FindByExpenseID lists approval records for an expense, oldest first
	FindByExpenseID(ctx context.Context, expenseID uuid.UUID) ([]ExpenseApproval, error)
}

// BudgetFilter defines filtering options for budget queries
type BudgetFilter struct {
	shared.Filter
	ProjectID  *uuid.UUID
	Status     *BudgetStatus
	FiscalYear *int
}

// BudgetRepository defines the interface for budget persistence
type BudgetRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Budget, error)
	FindAll(ctx context.Context, filter BudgetFilter) ([]Budget, error)
	Count(ctx context.Context, filter BudgetFilter) (int64, error)
	Save(ctx context.Context, budget *Budget) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BudgetItemRepository defines the interface for budget item persistence
type BudgetItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BudgetItem, error)

	// FindByIDForUpdate takes a row lock on the item; must run inside a
	// transaction so concurrent consumption serializes
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*BudgetItem, error)

	FindByBudgetID(ctx context.Context, budgetID uuid.UUID) ([]BudgetItem, error)
	Save(ctx context.Context, item *BudgetItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BankAccountFilter defines filtering options for bank account queries
type BankAccountFilter struct {
	shared.Filter
	IsActive *bool
	Currency *string
}

// BankAccountRepository defines the interface for bank account persistence
type BankAccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BankAccount, error)

	// FindByIDForUpdate takes a row lock on the account; must run inside a
	// transaction so concurrent postings serialize
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*BankAccount, error)

	FindByAccountNumber(ctx context.Context, accountNumber string) (*BankAccount, error)
	FindAll(ctx context.Context, filter BankAccountFilter) ([]BankAccount, error)
	Count(ctx context.Context, filter BankAccountFilter) (int64, error)
	Save(ctx context.Context, account *BankAccount) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CashFlowFilter defines filtering options for ledger queries
type CashFlowFilter struct {
	shared.Filter
	BankAccountID *uuid.UUID
	Type          *CashFlowType
	Category      *CashFlowCategory
	IsReconciled  *bool
	FromDate      *time.Time
	ToDate        *time.Time
}

// MonthlyFlowTotals holds aggregated inflow/outflow sums for one month
type MonthlyFlowTotals struct {
	Year    int
	Month   time.Month
	Inflow  decimal.Decimal
	Outflow decimal.Decimal
}

// CashFlowRepository defines the interface for cash flow ledger persistence
type CashFlowRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CashFlow, error)
	FindByTransactionNumber(ctx context.Context, transactionNumber string) (*CashFlow, error)
	FindAll(ctx context.Context, filter CashFlowFilter) ([]CashFlow, error)
	Count(ctx context.Context, filter CashFlowFilter) (int64, error)

	// Create appends a ledger entry; the ledger is append-only
	Create(ctx context.Context, flow *CashFlow) error

	// Save persists reconciliation metadata changes
	Save(ctx context.Context, flow *CashFlow) error

	// GenerateTransactionNumber generates the next transaction number
	// (TXN-YYYY-NNNNNN)
	GenerateTransactionNumber(ctx context.Context) (string, error)

	// MonthlyTotals aggregates inflow/outflow sums per calendar month for an
	// account over [from, to]
	MonthlyTotals(ctx context.Context, bankAccountID uuid.UUID, from, to time.Time) ([]MonthlyFlowTotals, error)
}

// PurchaseOrderFilter defines filtering options for purchase order queries
type PurchaseOrderFilter struct {
	shared.Filter
	ProjectID *uuid.UUID
	Status    *PurchaseOrderStatus
	FromDate  *time.Time
	ToDate    *time.Time
}

// PurchaseOrderRepository defines the interface for purchase order persistence
type PurchaseOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)
	FindByPONumber(ctx context.Context, poNumber string) (*PurchaseOrder, error)
	FindAll(ctx context.Context, filter PurchaseOrderFilter) ([]PurchaseOrder, error)
	Count(ctx context.Context, filter PurchaseOrderFilter) (int64, error)
	Save(ctx context.Context, order *PurchaseOrder) error
	Delete(ctx context.Context, id uuid.UUID) error

	// GeneratePONumber generates the next purchase order number (PO-YYYYMM-NNNNN)
	GeneratePONumber(ctx context.Context) (string, error)
}
