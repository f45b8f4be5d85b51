package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestUser(t *testing.T) *User {
	t.Helper()
	u, err := NewUser("finance@amani.org", "$2a$10$abcdefghijklmnopqrstuv", "Jane Wambui", RoleFinanceOfficer)
	require.NoError(t, err)
	return u
}

func TestNewUser(t *testing.T) {
	t.Run("creates active user with normalized email", func(t *testing.T) {
		u, err := NewUser(" Finance@Amani.ORG ", "hash", "Jane Wambui", RoleFinanceOfficer)
		require.NoError(t, err)
		assert.True(t, u.IsActive)
		assert.Equal(t, "finance@amani.org", u.Email)
	})

	t.Run("rejects invalid role", func(t *testing.T) {
		_, err := NewUser("x@y.org", "hash", "X", Role("ADMIN"))
		assert.Error(t, err)
	})

	t.Run("rejects empty password hash", func(t *testing.T) {
		_, err := NewUser("x@y.org", "", "X", RoleProjectOfficer)
		assert.Error(t, err)
	})
}

func TestUserChangeRole(t *testing.T) {
	u := createTestUser(t)
	require.NoError(t, u.ChangeRole(RoleProgramsManager))
	assert.Equal(t, RoleProgramsManager, u.Role)
	assert.Error(t, u.ChangeRole(Role("SUPERUSER")))
}

func TestUserActivation(t *testing.T) {
	u := createTestUser(t)
	require.NoError(t, u.Deactivate())
	assert.False(t, u.IsActive)
	assert.Error(t, u.Deactivate())
	require.NoError(t, u.Activate())
	assert.Error(t, u.Activate())
}

func TestUserRecordLogin(t *testing.T) {
	u := createTestUser(t)
	at := time.Now()
	u.RecordLogin(at)
	require.NotNil(t, u.LastLoginAt)
	assert.True(t, u.LastLoginAt.Equal(at))
}
