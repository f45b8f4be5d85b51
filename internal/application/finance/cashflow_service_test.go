package finance

import (
	"context"
	"testing"
	"time"

	"github.com/amani/backend/internal/domain/finance"
	"github.com/amani/backend/internal/domain/shared"
	"github.com/amani/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type cashFlowServiceFixture struct {
	cashFlowRepo *MockCashFlowRepository
	accountRepo  *MockBankAccountRepository
	service      *CashFlowService
}

func newCashFlowServiceFixture() *cashFlowServiceFixture {
	f := &cashFlowServiceFixture{
		cashFlowRepo: new(MockCashFlowRepository),
		accountRepo:  new(MockBankAccountRepository),
	}
	scope := NewNoOpTransactionScope(nil, nil, nil, f.accountRepo, f.cashFlowRepo)
	f.service = NewCashFlowService(f.cashFlowRepo, f.accountRepo, scope, nil, nil)
	return f
}

func testAccount(t *testing.T, balance float64) *finance.BankAccount {
	t.Helper()
	a, err := finance.NewBankAccount("0099", "Operations", "KCB", valueobject.USD, decimal.NewFromFloat(balance))
	require.NoError(t, err)
	return a
}

func TestCashFlowServiceRecordTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("inflow writes a ledger row with both balances", func(t *testing.T) {
		f := newCashFlowServiceFixture()
		account := testAccount(t, 100000)

		f.accountRepo.On("FindByIDForUpdate", ctx, account.ID).Return(account, nil)
		f.cashFlowRepo.On("GenerateTransactionNumber", ctx).Return("TXN-2026-000101", nil)
		f.cashFlowRepo.On("Create", ctx, mock.AnythingOfType("*finance.CashFlow")).Return(nil)
		f.accountRepo.On("Save", ctx, account).Return(nil)

		flow, err := f.service.RecordTransaction(ctx, RecordTransactionCommand{
			BankAccountID: account.ID,
			Type:          finance.CashFlowTypeInflow,
			Category:      finance.CashFlowCategoryDonation,
			Amount:        decimal.NewFromFloat(5000),
			Description:   "Quarterly donation",
			FlowDate:      time.Now(),
			RecordedBy:    uuid.New(),
		})
		require.NoError(t, err)
		assert.Equal(t, "TXN-2026-000101", flow.TransactionNumber)
		assert.True(t, flow.BalanceBefore.Equal(decimal.NewFromFloat(100000)))
		assert.True(t, flow.BalanceAfter.Equal(decimal.NewFromFloat(105000)))
		assert.True(t, account.CurrentBalance.Equal(decimal.NewFromFloat(105000)))
	})

	t.Run("outflow beyond the balance writes nothing", func(t *testing.T) {
		f := newCashFlowServiceFixture()
		account := testAccount(t, 100000)

		f.accountRepo.On("FindByIDForUpdate", ctx, account.ID).Return(account, nil)

		_, err := f.service.RecordTransaction(ctx, RecordTransactionCommand{
			BankAccountID: account.ID,
			Type:          finance.CashFlowTypeOutflow,
			Category:      finance.CashFlowCategoryBankCharge,
			Amount:        decimal.NewFromFloat(200000),
			FlowDate:      time.Now(),
			RecordedBy:    uuid.New(),
		})
		assert.ErrorIs(t, err, shared.ErrInsufficientBalance)
		assert.True(t, account.CurrentBalance.Equal(decimal.NewFromFloat(100000)))
		f.cashFlowRepo.AssertNotCalled(t, "Create", ctx, mock.Anything)
		f.accountRepo.AssertNotCalled(t, "Save", ctx, mock.Anything)
	})
}

func TestCashFlowServiceReconcile(t *testing.T) {
	ctx := context.Background()

	t.Run("reconciling twice keeps the first reconciler", func(t *testing.T) {
		f := newCashFlowServiceFixture()
		flow, err := finance.NewCashFlow("TXN-2026-000102", uuid.New(), finance.CashFlowTypeInflow,
			finance.CashFlowCategoryGrant, decimal.NewFromFloat(100), valueobject.USD,
			decimal.Zero, decimal.NewFromFloat(100), "", time.Now(), uuid.New())
		require.NoError(t, err)

		f.cashFlowRepo.On("FindByID", ctx, flow.ID).Return(flow, nil)
		f.cashFlowRepo.On("Save", ctx, flow).Return(nil)

		first := uuid.New()
		_, err = f.service.Reconcile(ctx, flow.ID, first, time.Now())
		require.NoError(t, err)

		_, err = f.service.Reconcile(ctx, flow.ID, uuid.New(), time.Now())
		require.NoError(t, err)
		assert.Equal(t, first, *flow.ReconciledBy)
	})
}

func TestCashFlowServiceProject(t *testing.T) {
	ctx := context.Background()

	t.Run("extrapolates best likely and worst cases", func(t *testing.T) {
		f := newCashFlowServiceFixture()
		account := testAccount(t, 10000)

		// 6 months of history: 1200 in, 600 out each month
		totals := make([]finance.MonthlyFlowTotals, 0, 6)
		for i := 0; i < 6; i++ {
			totals = append(totals, finance.MonthlyFlowTotals{
				Year: 2026, Month: time.Month(i + 1),
				Inflow:  decimal.NewFromFloat(1200),
				Outflow: decimal.NewFromFloat(600),
			})
		}
		f.accountRepo.On("FindByID", ctx, account.ID).Return(account, nil)
		f.cashFlowRepo.On("MonthlyTotals", ctx, account.ID, mock.Anything, mock.Anything).Return(totals, nil)

		projection, err := f.service.Project(ctx, account.ID, 3)
		require.NoError(t, err)
		assert.True(t, projection.AvgInflow.Equal(decimal.NewFromFloat(1200)))
		assert.True(t, projection.AvgOutflow.Equal(decimal.NewFromFloat(600)))
		assert.True(t, projection.AvgNetFlow.Equal(decimal.NewFromFloat(600)))
		require.Len(t, projection.Points, 3)

		// month 2: likely = 10000 + 2*600, best = 10000 + 2*1200, worst = 10000 - 2*600
		second := projection.Points[1]
		assert.True(t, second.LikelyCase.Equal(decimal.NewFromFloat(11200)))
		assert.True(t, second.BestCase.Equal(decimal.NewFromFloat(12400)))
		assert.True(t, second.WorstCase.Equal(decimal.NewFromFloat(8800)))
	})

	t.Run("no history projects a flat balance with zero averages", func(t *testing.T) {
		f := newCashFlowServiceFixture()
		account := testAccount(t, 10000)

		f.accountRepo.On("FindByID", ctx, account.ID).Return(account, nil)
		f.cashFlowRepo.On("MonthlyTotals", ctx, account.ID, mock.Anything, mock.Anything).
			Return([]finance.MonthlyFlowTotals{}, nil)

		projection, err := f.service.Project(ctx, account.ID, 3)
		require.NoError(t, err)
		assert.True(t, projection.AvgInflow.IsZero())
		assert.True(t, projection.AvgOutflow.IsZero())
		for _, p := range projection.Points {
			assert.True(t, p.LikelyCase.Equal(decimal.NewFromFloat(10000)))
			assert.True(t, p.BestCase.Equal(decimal.NewFromFloat(10000)))
			assert.True(t, p.WorstCase.Equal(decimal.NewFromFloat(10000)))
		}
	})

	t.Run("rejects a horizon outside 3 to 12 months", func(t *testing.T) {
		f := newCashFlowServiceFixture()
		_, err := f.service.Project(ctx, uuid.New(), 2)
		assert.Error(t, err)
		_, err = f.service.Project(ctx, uuid.New(), 13)
		assert.Error(t, err)
	})
}
