package finance

import (
	"context"

	"github.com/amani/backend/internal/domain/audit"
	"github.com/amani/backend/internal/domain/finance"
	"github.com/amani/backend/internal/domain/program"
	"github.com/amani/backend/internal/domain/shared"
	"github.com/amani/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateBudgetCommand carries the input for creating a budget
type CreateBudgetCommand struct {
	ProjectID  uuid.UUID
	Name       string
	FiscalYear int
	Currency   valueobject.Currency
}

// BudgetItemInput is one allocation line in a create/update request
type BudgetItemInput struct {
	Category    string
	Description string
	Allocated   decimal.Decimal
}

// BudgetService manages budgets and their allocation lines
type BudgetService struct {
	budgetRepo   finance.BudgetRepository
	itemRepo     finance.BudgetItemRepository
	projectRepo  program.ProjectRepository
	txScope      TransactionScope
	activityRepo audit.ActivityLogRepository
	logger       *zap.Logger
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(
	budgetRepo finance.BudgetRepository,
	itemRepo finance.BudgetItemRepository,
	projectRepo program.ProjectRepository,
	txScope TransactionScope,
	activityRepo audit.ActivityLogRepository,
	logger *zap.Logger,
) *BudgetService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BudgetService{
		budgetRepo:   budgetRepo,
		itemRepo:     itemRepo,
		projectRepo:  projectRepo,
		txScope:      txScope,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

func (s *BudgetService) logActivity(ctx context.Context, actorID uuid.UUID, action audit.Action, entityID uuid.UUID, detail string) {
	if s.activityRepo == nil {
		return
	}
	entry, err := audit.NewActivityLog(actorID, action, "BUDGET", entityID, detail)
	if err != nil {
		return
	}
	if err := s.activityRepo.Create(ctx, entry); err != nil {
		s.logger.Warn("failed to write activity log", zap.Error(err))
	}
}

// CreateBudget creates a draft budget with its allocation lines
func (s *BudgetService) CreateBudget(ctx context.Context, cmd CreateBudgetCommand, items []BudgetItemInput, actorID uuid.UUID) (*finance.Budget, []finance.BudgetItem, error) {
	exists, err := s.projectRepo.Exists(ctx, cmd.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	if !exists {
		return nil, nil, shared.ErrNotFound
	}

	budget, err := finance.NewBudget(cmd.ProjectID, cmd.Name, cmd.FiscalYear, cmd.Currency)
	if err != nil {
		return nil, nil, err
	}

	created := make([]finance.BudgetItem, 0, len(items))
	for _, in := range items {
		item, err := finance.NewBudgetItem(budget.ID, in.Category, in.Description, in.Allocated)
		if err != nil {
			return nil, nil, err
		}
		created = append(created, *item)
	}

	if err := s.budgetRepo.Save(ctx, budget); err != nil {
		return nil, nil, err
	}
	for i := range created {
		if err := s.itemRepo.Save(ctx, &created[i]); err != nil {
			return nil, nil, err
		}
	}
	s.logActivity(ctx, actorID, audit.ActionCreate, budget.ID, budget.Name)
	return budget, created, nil
}

// GetBudget returns a budget with its allocation lines
func (s *BudgetService) GetBudget(ctx context.Context, id uuid.UUID) (*finance.Budget, []finance.BudgetItem, error) {
	budget, err := s.budgetRepo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.itemRepo.FindByBudgetID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return budget, items, nil
}

// ListBudgets returns a filtered page of budgets
func (s *BudgetService) ListBudgets(ctx context.Context, filter finance.BudgetFilter) (shared.Paginated[finance.Budget], error) {
	items, err := s.budgetRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[finance.Budget]{}, err
	}
	total, err := s.budgetRepo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[finance.Budget]{}, err
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// ActivateBudget makes a draft budget live
func (s *BudgetService) ActivateBudget(ctx context.Context, id, actorID uuid.UUID) (*finance.Budget, error) {
	budget, err := s.budgetRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := budget.Activate(); err != nil {
		return nil, err
	}
	if err := s.budgetRepo.Save(ctx, budget); err != nil {
		return nil, err
	}
	s.logActivity(ctx, actorID, audit.ActionUpdate, id, "activated")
	return budget, nil
}

// CloseBudget closes an active budget
func (s *BudgetService) CloseBudget(ctx context.Context, id, actorID uuid.UUID) (*finance.Budget, error) {
	budget, err := s.budgetRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := budget.Close(); err != nil {
		return nil, err
	}
	if err := s.budgetRepo.Save(ctx, budget); err != nil {
		return nil, err
	}
	s.logActivity(ctx, actorID, audit.ActionUpdate, id, "closed")
	return budget, nil
}

// AddBudgetItem appends an allocation line to a budget
func (s *BudgetService) AddBudgetItem(ctx context.Context, budgetID uuid.UUID, in BudgetItemInput, actorID uuid.UUID) (*finance.BudgetItem, error) {
	budget, err := s.budgetRepo.FindByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if budget.Status == finance.BudgetStatusClosed {
		return nil, shared.NewDomainError("INVALID_STATE", "Closed budgets cannot be modified")
	}
	item, err := finance.NewBudgetItem(budget.ID, in.Category, in.Description, in.Allocated)
	if err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	s.logActivity(ctx, actorID, audit.ActionUpdate, budgetID, "added item "+in.Category)
	return item, nil
}

// ReallocateBudget moves unspent allocation between two lines of the same
// budget under row locks so concurrent consumption cannot interleave.
func (s *BudgetService) ReallocateBudget(ctx context.Context, fromItemID, toItemID uuid.UUID, amount decimal.Decimal, actorID uuid.UUID) error {
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		from, err := repos.BudgetItemRepo().FindByIDForUpdate(ctx, fromItemID)
		if err != nil {
			return err
		}
		to, err := repos.BudgetItemRepo().FindByIDForUpdate(ctx, toItemID)
		if err != nil {
			return err
		}
		if err := from.Reallocate(to, amount); err != nil {
			return err
		}
		if err := repos.BudgetItemRepo().Save(ctx, from); err != nil {
			return err
		}
		return repos.BudgetItemRepo().Save(ctx, to)
	})
	if err != nil {
		return err
	}
	s.logActivity(ctx, actorID, audit.ActionUpdate, fromItemID, "reallocated "+amount.String())
	return nil
}

// DeleteBudget soft deletes a draft budget and its lines
func (s *BudgetService) DeleteBudget(ctx context.Context, id, actorID uuid.UUID) error {
	budget, err := s.budgetRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if budget.Status == finance.BudgetStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Active budgets cannot be deleted; close them first")
	}
	if err := s.budgetRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logActivity(ctx, actorID, audit.ActionDelete, id, budget.Name)
	return nil
}
