package finance

import (
	"context"

	"github.com/amani/backend/internal/domain/finance"
)

// TransactionScope provides transactional access to finance repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically. Row locks taken via the ForUpdate finders hold until the
// scope ends, which is how concurrent balance mutations serialize.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to finance repositories bound to
// the current transaction.
type TransactionalRepositories interface {
	// ExpenseRepo returns the expense repository scoped to the transaction
	ExpenseRepo() finance.ExpenseRepository
	// ApprovalRepo returns the approval trail repository scoped to the transaction
	ApprovalRepo() finance.ExpenseApprovalRepository
	// BudgetItemRepo returns the budget item repository scoped to the transaction
	BudgetItemRepo() finance.BudgetItemRepository
	// BankAccountRepo returns the bank account repository scoped to the transaction
	BankAccountRepo() finance.BankAccountRepository
	// CashFlowRepo returns the cash flow ledger repository scoped to the transaction
	CashFlowRepo() finance.CashFlowRepository
}

// NoOpTransactionScope runs the scoped function without a real transaction.
// Useful in tests where the repositories are mocks.
type NoOpTransactionScope struct {
	expenseRepo     finance.ExpenseRepository
	approvalRepo    finance.ExpenseApprovalRepository
	budgetItemRepo  finance.BudgetItemRepository
	bankAccountRepo finance.BankAccountRepository
	cashFlowRepo    finance.CashFlowRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	expenseRepo finance.ExpenseRepository,
	approvalRepo finance.ExpenseApprovalRepository,
	budgetItemRepo finance.BudgetItemRepository,
	bankAccountRepo finance.BankAccountRepository,
	cashFlowRepo finance.CashFlowRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		expenseRepo:     expenseRepo,
		approvalRepo:    approvalRepo,
		budgetItemRepo:  budgetItemRepo,
		bankAccountRepo: bankAccountRepo,
		cashFlowRepo:    cashFlowRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ExpenseRepo returns the expense repository
func (s *NoOpTransactionScope) ExpenseRepo() finance.ExpenseRepository {
	return s.expenseRepo
}

// ApprovalRepo returns the approval trail repository
func (s *NoOpTransactionScope) ApprovalRepo() finance.ExpenseApprovalRepository {
	return s.approvalRepo
}

// BudgetItemRepo returns the budget item repository
func (s *NoOpTransactionScope) BudgetItemRepo() finance.BudgetItemRepository {
	return s.budgetItemRepo
}

// BankAccountRepo returns the bank account repository
func (s *NoOpTransactionScope) BankAccountRepo() finance.BankAccountRepository {
	return s.bankAccountRepo
}

// CashFlowRepo returns the cash flow ledger repository
func (s *NoOpTransactionScope) CashFlowRepo() finance.CashFlowRepository {
	return s.cashFlowRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
