package finance

import (
	"testing"

	"github.com/amani/backend/internal/domain/shared"
	"github.com/amani/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestBankAccount(t *testing.T, balance float64) *BankAccount {
	t.Helper()
	a, err := NewBankAccount("0011223344", "Main Operating Account", "Equity Bank", valueobject.USD, decimal.NewFromFloat(balance))
	require.NoError(t, err)
	return a
}

func TestNewBankAccount(t *testing.T) {
	t.Run("creates active account", func(t *testing.T) {
		a := createTestBankAccount(t, 100000)
		assert.True(t, a.IsActive)
		assert.True(t, a.CurrentBalance.Equal(decimal.NewFromFloat(100000)))
	})

	t.Run("rejects negative opening balance", func(t *testing.T) {
		_, err := NewBankAccount("001", "Main", "Equity Bank", valueobject.USD, decimal.NewFromFloat(-1))
		assert.Error(t, err)
	})

	t.Run("rejects unsupported currency", func(t *testing.T) {
		_, err := NewBankAccount("001", "Main", "Equity Bank", "XXX", decimal.Zero)
		assert.Error(t, err)
	})
}

func TestBankAccountPost(t *testing.T) {
	t.Run("inflow increases the balance", func(t *testing.T) {
		a := createTestBankAccount(t, 100000)
		before, after, err := a.Post(CashFlowTypeInflow, decimal.NewFromFloat(5000))
		require.NoError(t, err)
		assert.True(t, before.Equal(decimal.NewFromFloat(100000)))
		assert.True(t, after.Equal(decimal.NewFromFloat(105000)))
		assert.True(t, a.CurrentBalance.Equal(after))
	})

	t.Run("outflow decreases the balance", func(t *testing.T) {
		a := createTestBankAccount(t, 100000)
		before, after, err := a.Post(CashFlowTypeOutflow, decimal.NewFromFloat(30000))
		require.NoError(t, err)
		assert.True(t, before.Equal(decimal.NewFromFloat(100000)))
		assert.True(t, after.Equal(decimal.NewFromFloat(70000)))
	})

	t.Run("outflow beyond the balance is rejected without mutating", func(t *testing.T) {
		a := createTestBankAccount(t, 100000)
		_, _, err := a.Post(CashFlowTypeOutflow, decimal.NewFromFloat(200000))
		assert.ErrorIs(t, err, shared.ErrInsufficientBalance)
		assert.True(t, a.CurrentBalance.Equal(decimal.NewFromFloat(100000)))
	})

	t.Run("outflow draining the balance to zero is allowed", func(t *testing.T) {
		a := createTestBankAccount(t, 100000)
		_, after, err := a.Post(CashFlowTypeOutflow, decimal.NewFromFloat(100000))
		require.NoError(t, err)
		assert.True(t, after.IsZero())
	})

	t.Run("rejects postings on an inactive account", func(t *testing.T) {
		a := createTestBankAccount(t, 100000)
		require.NoError(t, a.Deactivate())
		_, _, err := a.Post(CashFlowTypeInflow, decimal.NewFromFloat(100))
		assert.Error(t, err)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		a := createTestBankAccount(t, 100000)
		_, _, err := a.Post(CashFlowTypeInflow, decimal.Zero)
		assert.Error(t, err)
	})
}

func TestBankAccountActivation(t *testing.T) {
	a := createTestBankAccount(t, 0)
	require.NoError(t, a.Deactivate())
	assert.Error(t, a.Deactivate())
	require.NoError(t, a.Activate())
	assert.Error(t, a.Activate())
}

func TestBankAccountBalanceMoney(t *testing.T) {
	a := createTestBankAccount(t, 1234.5)
	m := a.GetBalanceMoney()
	assert.Equal(t, valueobject.USD, m.Currency())
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(1234.5)))
}
