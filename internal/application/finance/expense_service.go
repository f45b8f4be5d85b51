package finance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amani/backend/internal/domain/audit"
	"github.com/amani/backend/internal/domain/finance"
	"github.com/amani/backend/internal/domain/program"
	"github.com/amani/backend/internal/domain/shared"
	"github.com/amani/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateExpenseCommand carries the input for creating an expense
type CreateExpenseCommand struct {
	ProjectID    uuid.UUID
	BudgetItemID *uuid.UUID
	Amount       valueobject.Money
	Description  string
	IncurredAt   time.Time
	SubmittedBy  uuid.UUID
}

// UpdateExpenseCommand carries the input for updating a draft or rejected expense
type UpdateExpenseCommand struct {
	BudgetItemID *uuid.UUID
	Amount       valueobject.Money
	Description  string
	IncurredAt   time.Time
}

// ExpenseService orchestrates the expense approval workflow. All transitions
// that touch budget or ledger balances run inside a TransactionScope with
// row locks, so concurrent attempts against the same expense serialize.
type ExpenseService struct {
	expenseRepo  finance.ExpenseRepository
	approvalRepo finance.ExpenseApprovalRepository
	projectRepo  program.ProjectRepository
	txScope      TransactionScope
	activityRepo audit.ActivityLogRepository
	logger       *zap.Logger
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(
	expenseRepo finance.ExpenseRepository,
	approvalRepo finance.ExpenseApprovalRepository,
	projectRepo program.ProjectRepository,
	txScope TransactionScope,
	activityRepo audit.ActivityLogRepository,
	logger *zap.Logger,
) *ExpenseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExpenseService{
		expenseRepo:  expenseRepo,
		approvalRepo: approvalRepo,
		projectRepo:  projectRepo,
		txScope:      txScope,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

func (s *ExpenseService) logActivity(ctx context.Context, actorID uuid.UUID, action audit.Action, entityID uuid.UUID, detail string) {
	if s.activityRepo == nil {
		return
	}
	entry, err := audit.NewActivityLog(actorID, action, "EXPENSE", entityID, detail)
	if err != nil {
		return
	}
	if err := s.activityRepo.Create(ctx, entry); err != nil {
		s.logger.Warn("failed to write activity log",
			zap.String("expense_id", entityID.String()),
			zap.Error(err))
	}
}

// CreateExpense creates a new draft expense
func (s *ExpenseService) CreateExpense(ctx context.Context, cmd CreateExpenseCommand) (*finance.Expense, error) {
	project, err := s.projectRepo.FindByID(ctx, cmd.ProjectID)
	if err != nil {
		return nil, err
	}
	if !project.AcceptsSpending() {
		return nil, shared.NewDomainError("INVALID_STATE", "Expenses can only be recorded against active projects")
	}

	number, err := s.expenseRepo.GenerateExpenseNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate expense number: %w", err)
	}

	expense, err := finance.NewExpense(number, cmd.ProjectID, cmd.BudgetItemID,
		cmd.Amount, cmd.Description, cmd.IncurredAt, cmd.SubmittedBy)
	if err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	s.logActivity(ctx, cmd.SubmittedBy, audit.ActionCreate, expense.ID, expense.ExpenseNumber)
	return expense, nil
}

// UpdateExpense edits a draft or rejected expense
func (s *ExpenseService) UpdateExpense(ctx context.Context, id uuid.UUID, actorID uuid.UUID, cmd UpdateExpenseCommand) (*finance.Expense, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense.SubmittedBy != actorID {
		return nil, shared.ErrForbidden
	}
	if err := expense.Update(cmd.BudgetItemID, cmd.Amount, cmd.Description, cmd.IncurredAt); err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	s.logActivity(ctx, actorID, audit.ActionUpdate, expense.ID, expense.ExpenseNumber)
	return expense, nil
}

// GetExpense returns one expense with its approval trail
func (s *ExpenseService) GetExpense(ctx context.Context, id uuid.UUID) (*finance.Expense, []finance.ExpenseApproval, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	trail, err := s.approvalRepo.FindByExpenseID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return expense, trail, nil
}

// ListExpenses returns a filtered page of expenses
func (s *ExpenseService) ListExpenses(ctx context.Context, filter finance.ExpenseFilter) (shared.Paginated[finance.Expense], error) {
	items, err := s.expenseRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[finance.Expense]{}, err
	}
	total, err := s.expenseRepo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[finance.Expense]{}, err
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// DeleteExpense soft deletes an expense. A deletion that reverses an applied
// budget consumption releases the budget item in the same transaction.
func (s *ExpenseService) DeleteExpense(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		expense, err := repos.ExpenseRepo().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if expense.BudgetApplied && expense.BudgetItemID != nil {
			item, err := repos.BudgetItemRepo().FindByIDForUpdate(ctx, *expense.BudgetItemID)
			if err != nil {
				return err
			}
			if err := item.Release(expense.Amount); err != nil {
				return err
			}
			if err := repos.BudgetItemRepo().Save(ctx, item); err != nil {
				return err
			}
			expense.MarkBudgetReleased()
			if err := repos.ExpenseRepo().Save(ctx, expense); err != nil {
				return err
			}
		}
		return repos.ExpenseRepo().Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.logActivity(ctx, actorID, audit.ActionDelete, id, "")
	return nil
}

// SubmitExpense moves a draft into the approval workflow
func (s *ExpenseService) SubmitExpense(ctx context.Context, id, actorID uuid.UUID) (*finance.Expense, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense.SubmittedBy != actorID {
		return nil, shared.ErrForbidden
	}
	if err := expense.Submit(actorID); err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	s.logActivity(ctx, actorID, audit.ActionSubmit, expense.ID, expense.ExpenseNumber)
	return expense, nil
}

// StartReview moves a submitted expense into finance review and records the
// level-1 approval trail row.
func (s *ExpenseService) StartReview(ctx context.Context, id, reviewerID uuid.UUID) (*finance.Expense, error) {
	var expense *finance.Expense
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		expense, err = repos.ExpenseRepo().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := expense.StartReview(reviewerID); err != nil {
			return err
		}
		approval, err := finance.NewExpenseApproval(expense.ID, finance.ApprovalLevelFinanceReview,
			finance.ApprovalActionApproved, reviewerID, "Passed finance review")
		if err != nil {
			return err
		}
		if err := repos.ApprovalRepo().Create(ctx, approval); err != nil {
			return err
		}
		return repos.ExpenseRepo().Save(ctx, expense)
	})
	if err != nil {
		return nil, err
	}
	s.logActivity(ctx, reviewerID, audit.ActionUpdate, id, "moved to review")
	return expense, nil
}

// ApproveExpense approves an expense under review. The linked budget item is
// consumed by the expense amount under a row lock; exceeding the remaining
// allocation aborts the whole transition.
func (s *ExpenseService) ApproveExpense(ctx context.Context, id, approverID uuid.UUID) (*finance.Expense, error) {
	var expense *finance.Expense
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		expense, err = repos.ExpenseRepo().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := expense.Approve(approverID); err != nil {
			return err
		}
		if expense.BudgetItemID != nil {
			item, err := repos.BudgetItemRepo().FindByIDForUpdate(ctx, *expense.BudgetItemID)
			if err != nil {
				return err
			}
			if err := item.Consume(expense.Amount); err != nil {
				return err
			}
			if err := repos.BudgetItemRepo().Save(ctx, item); err != nil {
				return err
			}
			expense.MarkBudgetApplied()
		}
		approval, err := finance.NewExpenseApproval(expense.ID, finance.ApprovalLevelManagement,
			finance.ApprovalActionApproved, approverID, "")
		if err != nil {
			return err
		}
		if err := repos.ApprovalRepo().Create(ctx, approval); err != nil {
			return err
		}
		return repos.ExpenseRepo().Save(ctx, expense)
	})
	if err != nil {
		return nil, err
	}
	s.logActivity(ctx, approverID, audit.ActionApprove, id, expense.ExpenseNumber)
	return expense, nil
}

// RejectExpense rejects an expense from any rejectable state. Rejections
// past the finance review, where the expense sits at the management level,
// require isManager; the tier is decided on the locked row. If a prior
// approval consumed the budget item, the consumption is released exactly
// once; a second rejection attempt fails on the status guard before any
// budget mutation.
func (s *ExpenseService) RejectExpense(ctx context.Context, id, actorID uuid.UUID, reason string, isManager bool) (*finance.Expense, error) {
	var expense *finance.Expense
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		expense, err = repos.ExpenseRepo().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		level := finance.ApprovalLevelFinanceReview
		action := finance.ApprovalActionRejected
		if expense.Status == finance.ExpenseStatusUnderReview {
			level = finance.ApprovalLevelManagement
		}
		if expense.Status == finance.ExpenseStatusApproved {
			level = finance.ApprovalLevelManagement
			action = finance.ApprovalActionReturned
		}
		if level == finance.ApprovalLevelManagement && !isManager {
			return shared.ErrForbidden
		}
		if err := expense.Reject(actorID, reason); err != nil {
			return err
		}
		if expense.BudgetApplied && expense.BudgetItemID != nil {
			item, err := repos.BudgetItemRepo().FindByIDForUpdate(ctx, *expense.BudgetItemID)
			if err != nil {
				return err
			}
			if err := item.Release(expense.Amount); err != nil {
				return err
			}
			if err := repos.BudgetItemRepo().Save(ctx, item); err != nil {
				return err
			}
			expense.MarkBudgetReleased()
		}
		approval, err := finance.NewExpenseApproval(expense.ID, level, action, actorID, reason)
		if err != nil {
			return err
		}
		if err := repos.ApprovalRepo().Create(ctx, approval); err != nil {
			return err
		}
		return repos.ExpenseRepo().Save(ctx, expense)
	})
	if err != nil {
		return nil, err
	}
	s.logActivity(ctx, actorID, audit.ActionReject, id, reason)
	return expense, nil
}

// ResubmitExpense returns a rejected expense to the submitted state
func (s *ExpenseService) ResubmitExpense(ctx context.Context, id, actorID uuid.UUID) (*finance.Expense, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := expense.Resubmit(actorID); err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	s.logActivity(ctx, actorID, audit.ActionSubmit, id, "resubmitted")
	return expense, nil
}

// PayExpense pays an approved expense from the given bank account. The
// account balance and the outflow ledger row are written atomically;
// insufficient balance fails the whole transition with no partial mutation.
func (s *ExpenseService) PayExpense(ctx context.Context, id, payerID, bankAccountID uuid.UUID) (*finance.Expense, error) {
	var expense *finance.Expense
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		expense, err = repos.ExpenseRepo().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !expense.Status.CanPay() {
			return shared.NewDomainError("INVALID_STATE",
				fmt.Sprintf("Cannot pay an expense in status %s", expense.Status))
		}

		account, err := repos.BankAccountRepo().FindByIDForUpdate(ctx, bankAccountID)
		if err != nil {
			return err
		}
		if account.Currency != expense.Currency {
			return shared.NewDomainError("CURRENCY_MISMATCH", "Bank account currency does not match the expense")
		}

		before, after, err := account.Post(finance.CashFlowTypeOutflow, expense.Amount)
		if err != nil {
			if errors.Is(err, shared.ErrInsufficientBalance) {
				return shared.ErrInsufficientFunds
			}
			return err
		}

		txnNumber, err := repos.CashFlowRepo().GenerateTransactionNumber(ctx)
		if err != nil {
			return fmt.Errorf("generate transaction number: %w", err)
		}
		flow, err := finance.NewCashFlow(txnNumber, account.ID, finance.CashFlowTypeOutflow,
			finance.CashFlowCategoryExpensePayment, expense.Amount, expense.Currency,
			before, after, "Payment for "+expense.ExpenseNumber, time.Now(), payerID)
		if err != nil {
			return err
		}
		flow.LinkExpense(expense.ID)

		if err := expense.MarkPaid(payerID, bankAccountID); err != nil {
			return err
		}

		if err := repos.CashFlowRepo().Create(ctx, flow); err != nil {
			return err
		}
		if err := repos.BankAccountRepo().Save(ctx, account); err != nil {
			return err
		}
		return repos.ExpenseRepo().Save(ctx, expense)
	})
	if err != nil {
		return nil, err
	}
	s.logActivity(ctx, payerID, audit.ActionPay, id, expense.ExpenseNumber)
	return expense, nil
}

// AttachReceipt stores the object storage key of an uploaded receipt
func (s *ExpenseService) AttachReceipt(ctx context.Context, id uuid.UUID, storageKey string) (*finance.Expense, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	expense.SetReceiptKey(storageKey)
	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}
