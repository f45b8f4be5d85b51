package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/amani/backend/internal/domain/audit"
	"github.com/amani/backend/internal/domain/finance"
	"github.com/amani/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// projectionWindowMonths is the trailing history window used for averages
const projectionWindowMonths = 6

// RecordTransactionCommand carries the input for a manual ledger entry
type RecordTransactionCommand struct {
	BankAccountID uuid.UUID
	Type          finance.CashFlowType
	Category      finance.CashFlowCategory
	Amount        decimal.Decimal
	Description   string
	FlowDate      time.Time
	RecordedBy    uuid.UUID
}

// ProjectionPoint is one extrapolated month of the balance forecast
type ProjectionPoint struct {
	Month      time.Time       `json:"month"`
	BestCase   decimal.Decimal `json:"best_case"`
	LikelyCase decimal.Decimal `json:"likely_case"`
	WorstCase  decimal.Decimal `json:"worst_case"`
}

// Projection is the cash flow forecast for one account
type Projection struct {
	BankAccountID  uuid.UUID         `json:"bank_account_id"`
	CurrentBalance decimal.Decimal   `json:"current_balance"`
	AvgInflow      decimal.Decimal   `json:"avg_monthly_inflow"`
	AvgOutflow     decimal.Decimal   `json:"avg_monthly_outflow"`
	AvgNetFlow     decimal.Decimal   `json:"avg_monthly_net_flow"`
	Points         []ProjectionPoint `json:"points"`
}

// CashFlowService manages the append-only cash flow ledger
type CashFlowService struct {
	cashFlowRepo    finance.CashFlowRepository
	bankAccountRepo finance.BankAccountRepository
	txScope         TransactionScope
	activityRepo    audit.ActivityLogRepository
	logger          *zap.Logger
}

// NewCashFlowService creates a new CashFlowService
func NewCashFlowService(
	cashFlowRepo finance.CashFlowRepository,
	bankAccountRepo finance.BankAccountRepository,
	txScope TransactionScope,
	activityRepo audit.ActivityLogRepository,
	logger *zap.Logger,
) *CashFlowService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CashFlowService{
		cashFlowRepo:    cashFlowRepo,
		bankAccountRepo: bankAccountRepo,
		txScope:         txScope,
		activityRepo:    activityRepo,
		logger:          logger,
	}
}

func (s *CashFlowService) logActivity(ctx context.Context, actorID uuid.UUID, action audit.Action, entityID uuid.UUID, detail string) {
	if s.activityRepo == nil {
		return
	}
	entry, err := audit.NewActivityLog(actorID, action, "CASH_FLOW", entityID, detail)
	if err != nil {
		return
	}
	if err := s.activityRepo.Create(ctx, entry); err != nil {
		s.logger.Warn("failed to write activity log", zap.Error(err))
	}
}

// RecordTransaction posts a ledger entry against a bank account. The balance
// read, the account update, and the ledger insert run in one transaction
// under a row lock; an outflow that would drive the balance negative writes
// nothing.
func (s *CashFlowService) RecordTransaction(ctx context.Context, cmd RecordTransactionCommand) (*finance.CashFlow, error) {
	var flow *finance.CashFlow
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		account, err := repos.BankAccountRepo().FindByIDForUpdate(ctx, cmd.BankAccountID)
		if err != nil {
			return err
		}

		before, after, err := account.Post(cmd.Type, cmd.Amount)
		if err != nil {
			return err
		}

		txnNumber, err := repos.CashFlowRepo().GenerateTransactionNumber(ctx)
		if err != nil {
			return fmt.Errorf("generate transaction number: %w", err)
		}

		flow, err = finance.NewCashFlow(txnNumber, account.ID, cmd.Type, cmd.Category,
			cmd.Amount, account.Currency, before, after, cmd.Description, cmd.FlowDate, cmd.RecordedBy)
		if err != nil {
			return err
		}

		if err := repos.CashFlowRepo().Create(ctx, flow); err != nil {
			return err
		}
		return repos.BankAccountRepo().Save(ctx, account)
	})
	if err != nil {
		return nil, err
	}
	s.logActivity(ctx, cmd.RecordedBy, audit.ActionCreate, flow.ID, flow.TransactionNumber)
	return flow, nil
}

// GetTransaction returns one ledger entry
func (s *CashFlowService) GetTransaction(ctx context.Context, id uuid.UUID) (*finance.CashFlow, error) {
	return s.cashFlowRepo.FindByID(ctx, id)
}

// ListTransactions returns a filtered page of ledger entries
func (s *CashFlowService) ListTransactions(ctx context.Context, filter finance.CashFlowFilter) (shared.Paginated[finance.CashFlow], error) {
	items, err := s.cashFlowRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[finance.CashFlow]{}, err
	}
	total, err := s.cashFlowRepo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[finance.CashFlow]{}, err
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// Reconcile marks a ledger entry as verified against a bank statement.
// Balances are untouched; reconciling twice changes nothing.
func (s *CashFlowService) Reconcile(ctx context.Context, id, actorID uuid.UUID, reconciledAt time.Time) (*finance.CashFlow, error) {
	flow, err := s.cashFlowRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := flow.Reconcile(actorID, reconciledAt); err != nil {
		return nil, err
	}
	if err := s.cashFlowRepo.Save(ctx, flow); err != nil {
		return nil, err
	}
	s.logActivity(ctx, actorID, audit.ActionReconcile, id, flow.TransactionNumber)
	return flow, nil
}

// Unreconcile clears reconciliation metadata
func (s *CashFlowService) Unreconcile(ctx context.Context, id, actorID uuid.UUID) (*finance.CashFlow, error) {
	flow, err := s.cashFlowRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	flow.Unreconcile()
	if err := s.cashFlowRepo.Save(ctx, flow); err != nil {
		return nil, err
	}
	s.logActivity(ctx, actorID, audit.ActionUnreconcile, id, flow.TransactionNumber)
	return flow, nil
}

// Project forecasts the account balance for the given number of future
// months. Averages come from the trailing six months of ledger history; an
// account with no history projects a flat balance with zero averages.
func (s *CashFlowService) Project(ctx context.Context, bankAccountID uuid.UUID, months int) (*Projection, error) {
	if months < 3 || months > 12 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Projection months must be between 3 and 12")
	}

	account, err := s.bankAccountRepo.FindByID(ctx, bankAccountID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	from := now.AddDate(0, -projectionWindowMonths, 0)
	totals, err := s.cashFlowRepo.MonthlyTotals(ctx, bankAccountID, from, now)
	if err != nil {
		return nil, err
	}

	var sumInflow, sumOutflow decimal.Decimal
	for _, m := range totals {
		sumInflow = sumInflow.Add(m.Inflow)
		sumOutflow = sumOutflow.Add(m.Outflow)
	}
	window := decimal.NewFromInt(projectionWindowMonths)
	avgInflow := sumInflow.Div(window).Round(2)
	avgOutflow := sumOutflow.Div(window).Round(2)
	avgNet := avgInflow.Sub(avgOutflow)

	projection := &Projection{
		BankAccountID:  bankAccountID,
		CurrentBalance: account.CurrentBalance,
		AvgInflow:      avgInflow,
		AvgOutflow:     avgOutflow,
		AvgNetFlow:     avgNet,
		Points:         make([]ProjectionPoint, 0, months),
	}
	for n := 1; n <= months; n++ {
		step := decimal.NewFromInt(int64(n))
		projection.Points = append(projection.Points, ProjectionPoint{
			Month:      now.AddDate(0, n, 0),
			BestCase:   account.CurrentBalance.Add(avgInflow.Mul(step)),
			LikelyCase: account.CurrentBalance.Add(avgNet.Mul(step)),
			WorstCase:  account.CurrentBalance.Sub(avgOutflow.Mul(step)),
		})
	}
	return projection, nil
}
