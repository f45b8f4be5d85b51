package program

import (
	"testing"
	"time"

	"github.com/amani/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestDonor(t *testing.T) *Donor {
	t.Helper()
	d, err := NewDonor("Hansen Foundation", DonorTypeFoundation,
		"grants@hansen.org", "+254700000000", "Nairobi", "A. Hansen")
	require.NoError(t, err)
	return d
}

func TestNewDonor(t *testing.T) {
	t.Run("creates active donor with normalized email", func(t *testing.T) {
		d, err := NewDonor("Hansen Foundation", DonorTypeFoundation, "  Grants@Hansen.ORG ", "", "", "")
		require.NoError(t, err)
		assert.True(t, d.IsActive)
		assert.Equal(t, "grants@hansen.org", d.Email)
	})

	t.Run("rejects invalid donor type", func(t *testing.T) {
		_, err := NewDonor("X", DonorType("CHARITY"), "x@y.org", "", "", "")
		assert.Error(t, err)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		_, err := NewDonor("X", DonorTypeIndividual, "not-an-email", "", "", "")
		assert.Error(t, err)
	})
}

func TestDonorActivation(t *testing.T) {
	d := createTestDonor(t)
	require.NoError(t, d.Deactivate())
	assert.Error(t, d.Deactivate())
	require.NoError(t, d.Activate())
	assert.Error(t, d.Activate())
}

func TestNewDonorFunding(t *testing.T) {
	t.Run("records a restricted commitment", func(t *testing.T) {
		f, err := NewDonorFunding(uuid.New(), uuid.New(),
			valueobject.NewMoneyUSDFromFloat(25000), true, time.Now(), "GRANT-2026-04")
		require.NoError(t, err)
		assert.True(t, f.IsRestricted)
		assert.Equal(t, "GRANT-2026-04", f.Reference)
		assert.Equal(t, valueobject.USD, f.GetAmountMoney().Currency())
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewDonorFunding(uuid.New(), uuid.New(),
			valueobject.ZeroUSD(), false, time.Now(), "")
		assert.Error(t, err)
	})

	t.Run("requires donor and project", func(t *testing.T) {
		_, err := NewDonorFunding(uuid.Nil, uuid.New(),
			valueobject.NewMoneyUSDFromFloat(10), false, time.Now(), "")
		assert.Error(t, err)
	})
}
