package finance

import (
	"testing"

	"github.com/amani/backend/internal/domain/shared"
	"github.com/amani/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestBudget(t *testing.T) *Budget {
	t.Helper()
	b, err := NewBudget(uuid.New(), "FY2026 Operating Budget", 2026, valueobject.USD)
	require.NoError(t, err)
	return b
}

func createTestBudgetItem(t *testing.T, budgetID uuid.UUID, allocated float64) *BudgetItem {
	t.Helper()
	item, err := NewBudgetItem(budgetID, "Supplies", "Office and field supplies", decimal.NewFromFloat(allocated))
	require.NoError(t, err)
	return item
}

func TestNewBudget(t *testing.T) {
	t.Run("creates budget in draft status", func(t *testing.T) {
		b := createTestBudget(t)
		assert.Equal(t, BudgetStatusDraft, b.Status)
		assert.Equal(t, 2026, b.FiscalYear)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewBudget(uuid.New(), "", 2026, valueobject.USD)
		assert.Error(t, err)
	})
}

func TestBudgetLifecycle(t *testing.T) {
	t.Run("activate then close", func(t *testing.T) {
		b := createTestBudget(t)
		require.NoError(t, b.Activate())
		assert.True(t, b.IsActive())
		require.NoError(t, b.Close())
		assert.Equal(t, BudgetStatusClosed, b.Status)
	})

	t.Run("cannot activate twice", func(t *testing.T) {
		b := createTestBudget(t)
		require.NoError(t, b.Activate())
		assert.Error(t, b.Activate())
	})

	t.Run("cannot close a draft", func(t *testing.T) {
		b := createTestBudget(t)
		assert.Error(t, b.Close())
	})
}

func TestBudgetItemConsume(t *testing.T) {
	t.Run("spent plus remaining always equals allocated", func(t *testing.T) {
		item := createTestBudgetItem(t, uuid.New(), 50000)

		err := item.Consume(decimal.NewFromFloat(5000))
		require.NoError(t, err)
		assert.True(t, item.SpentAmount.Equal(decimal.NewFromFloat(5000)))
		assert.True(t, item.RemainingAmount.Equal(decimal.NewFromFloat(45000)))
		assert.True(t, item.AllocatedAmount.Equal(item.SpentAmount.Add(item.RemainingAmount)))
	})

	t.Run("rejects consumption beyond remaining", func(t *testing.T) {
		item := createTestBudgetItem(t, uuid.New(), 1000)
		require.NoError(t, item.Consume(decimal.NewFromFloat(800)))

		err := item.Consume(decimal.NewFromFloat(300))
		assert.ErrorIs(t, err, shared.ErrBudgetExceeded)
		assert.True(t, item.SpentAmount.Equal(decimal.NewFromFloat(800)))
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		item := createTestBudgetItem(t, uuid.New(), 1000)
		assert.Error(t, item.Consume(decimal.Zero))
		assert.Error(t, item.Consume(decimal.NewFromFloat(-5)))
	})

	t.Run("allows consuming exactly the remaining amount", func(t *testing.T) {
		item := createTestBudgetItem(t, uuid.New(), 1000)
		require.NoError(t, item.Consume(decimal.NewFromFloat(1000)))
		assert.True(t, item.RemainingAmount.IsZero())
	})
}

func TestBudgetItemRelease(t *testing.T) {
	t.Run("reverses a prior consumption", func(t *testing.T) {
		item := createTestBudgetItem(t, uuid.New(), 50000)
		require.NoError(t, item.Consume(decimal.NewFromFloat(5000)))

		err := item.Release(decimal.NewFromFloat(5000))
		require.NoError(t, err)
		assert.True(t, item.SpentAmount.IsZero())
		assert.True(t, item.RemainingAmount.Equal(decimal.NewFromFloat(50000)))
	})

	t.Run("cannot release more than spent", func(t *testing.T) {
		item := createTestBudgetItem(t, uuid.New(), 50000)
		require.NoError(t, item.Consume(decimal.NewFromFloat(5000)))

		err := item.Release(decimal.NewFromFloat(6000))
		assert.Error(t, err)
		assert.True(t, item.SpentAmount.Equal(decimal.NewFromFloat(5000)))
	})
}

func TestBudgetItemReallocate(t *testing.T) {
	t.Run("moves unspent allocation between items", func(t *testing.T) {
		budgetID := uuid.New()
		from := createTestBudgetItem(t, budgetID, 30000)
		to := createTestBudgetItem(t, budgetID, 10000)

		err := from.Reallocate(to, decimal.NewFromFloat(5000))
		require.NoError(t, err)
		assert.True(t, from.AllocatedAmount.Equal(decimal.NewFromFloat(25000)))
		assert.True(t, from.RemainingAmount.Equal(decimal.NewFromFloat(25000)))
		assert.True(t, to.AllocatedAmount.Equal(decimal.NewFromFloat(15000)))
		assert.True(t, to.RemainingAmount.Equal(decimal.NewFromFloat(15000)))
	})

	t.Run("rejects reallocation across budgets", func(t *testing.T) {
		from := createTestBudgetItem(t, uuid.New(), 30000)
		to := createTestBudgetItem(t, uuid.New(), 10000)
		err := from.Reallocate(to, decimal.NewFromFloat(5000))
		assert.Error(t, err)
	})

	t.Run("cannot reallocate spent funds", func(t *testing.T) {
		budgetID := uuid.New()
		from := createTestBudgetItem(t, budgetID, 10000)
		to := createTestBudgetItem(t, budgetID, 10000)
		require.NoError(t, from.Consume(decimal.NewFromFloat(8000)))

		err := from.Reallocate(to, decimal.NewFromFloat(5000))
		assert.ErrorIs(t, err, shared.ErrBudgetExceeded)
	})
}

func TestBudgetItemUtilization(t *testing.T) {
	item := createTestBudgetItem(t, uuid.New(), 50000)
	assert.True(t, item.UtilizationPercent().IsZero())

	require.NoError(t, item.Consume(decimal.NewFromFloat(12500)))
	assert.True(t, item.UtilizationPercent().Equal(decimal.NewFromFloat(25)))
}
