package persistence

import (
	"context"

	appfinance "github.com/amani/backend/internal/application/finance"
	"github.com/amani/backend/internal/domain/finance"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appfinance.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to all finance repositories
// within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// ExpenseRepo returns the expense repository scoped to the current transaction.
func (r *gormTransactionalRepositories) ExpenseRepo() finance.ExpenseRepository {
	return NewGormExpenseRepository(r.tx)
}

// ApprovalRepo returns the approval trail repository scoped to the current transaction.
func (r *gormTransactionalRepositories) ApprovalRepo() finance.ExpenseApprovalRepository {
	return NewGormExpenseApprovalRepository(r.tx)
}

// BudgetItemRepo returns the budget item repository scoped to the current transaction.
func (r *gormTransactionalRepositories) BudgetItemRepo() finance.BudgetItemRepository {
	return NewGormBudgetItemRepository(r.tx)
}

// BankAccountRepo returns the bank account repository scoped to the current transaction.
func (r *gormTransactionalRepositories) BankAccountRepo() finance.BankAccountRepository {
	return NewGormBankAccountRepository(r.tx)
}

// CashFlowRepo returns the cash flow ledger repository scoped to the current transaction.
func (r *gormTransactionalRepositories) CashFlowRepo() finance.CashFlowRepository {
	return NewGormCashFlowRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appfinance.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appfinance.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
