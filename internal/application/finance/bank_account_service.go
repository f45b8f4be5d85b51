package finance

import (
	"context"
	"errors"

	"github.com/amani/backend/internal/domain/audit"
	"github.com/amani/backend/internal/domain/finance"
	"github.com/amani/backend/internal/domain/shared"
	"github.com/amani/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateBankAccountCommand carries the input for opening a bank account
type CreateBankAccountCommand struct {
	AccountNumber  string
	AccountName    string
	BankName       string
	Currency       valueobject.Currency
	OpeningBalance decimal.Decimal
}

// BankAccountService manages organization bank accounts
type BankAccountService struct {
	accountRepo  finance.BankAccountRepository
	activityRepo audit.ActivityLogRepository
	logger       *zap.Logger
}

// NewBankAccountService creates a new BankAccountService
func NewBankAccountService(accountRepo finance.BankAccountRepository, activityRepo audit.ActivityLogRepository, logger *zap.Logger) *BankAccountService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BankAccountService{
		accountRepo:  accountRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

func (s *BankAccountService) logActivity(ctx context.Context, actorID uuid.UUID, action audit.Action, entityID uuid.UUID, detail string) {
	if s.activityRepo == nil {
		return
	}
	entry, err := audit.NewActivityLog(actorID, action, "BANK_ACCOUNT", entityID, detail)
	if err != nil {
		return
	}
	if err := s.activityRepo.Create(ctx, entry); err != nil {
		s.logger.Warn("failed to write activity log", zap.Error(err))
	}
}

// CreateAccount opens a new bank account. Account numbers are unique.
func (s *BankAccountService) CreateAccount(ctx context.Context, cmd CreateBankAccountCommand, actorID uuid.UUID) (*finance.BankAccount, error) {
	existing, err := s.accountRepo.FindByAccountNumber(ctx, cmd.AccountNumber)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	account, err := finance.NewBankAccount(cmd.AccountNumber, cmd.AccountName, cmd.BankName, cmd.Currency, cmd.OpeningBalance)
	if err != nil {
		return nil, err
	}
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	s.logActivity(ctx, actorID, audit.ActionCreate, account.ID, account.AccountNumber)
	return account, nil
}

// GetAccount returns one bank account
func (s *BankAccountService) GetAccount(ctx context.Context, id uuid.UUID) (*finance.BankAccount, error) {
	return s.accountRepo.FindByID(ctx, id)
}

// ListAccounts returns a filtered page of bank accounts
func (s *BankAccountService) ListAccounts(ctx context.Context, filter finance.BankAccountFilter) (shared.Paginated[finance.BankAccount], error) {
	items, err := s.accountRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[finance.BankAccount]{}, err
	}
	total, err := s.accountRepo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[finance.BankAccount]{}, err
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// DeactivateAccount closes an account for further postings
func (s *BankAccountService) DeactivateAccount(ctx context.Context, id, actorID uuid.UUID) (*finance.BankAccount, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := account.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	s.logActivity(ctx, actorID, audit.ActionUpdate, id, "deactivated")
	return account, nil
}

// ActivateAccount re-enables a deactivated account
func (s *BankAccountService) ActivateAccount(ctx context.Context, id, actorID uuid.UUID) (*finance.BankAccount, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := account.Activate(); err != nil {
		return nil, err
	}
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	s.logActivity(ctx, actorID, audit.ActionUpdate, id, "activated")
	return account, nil
}
