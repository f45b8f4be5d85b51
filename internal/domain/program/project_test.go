package program

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestProject(t *testing.T) *Project {
	t.Helper()
	p, err := NewProject("WASH-2026", "Clean Water Initiative", "Borehole drilling in three districts",
		time.Now(), nil, uuid.New())
	require.NoError(t, err)
	return p
}

func TestNewProject(t *testing.T) {
	t.Run("creates project in planned status", func(t *testing.T) {
		p := createTestProject(t)
		assert.Equal(t, ProjectStatusPlanned, p.Status)
		assert.False(t, p.AcceptsSpending())
	})

	t.Run("rejects empty code", func(t *testing.T) {
		_, err := NewProject("", "Name", "", time.Now(), nil, uuid.New())
		assert.Error(t, err)
	})

	t.Run("rejects end date before start date", func(t *testing.T) {
		end := time.Now().Add(-48 * time.Hour)
		_, err := NewProject("P1", "Name", "", time.Now(), &end, uuid.New())
		assert.Error(t, err)
	})
}

func TestProjectLifecycle(t *testing.T) {
	t.Run("planned to active to completed", func(t *testing.T) {
		p := createTestProject(t)
		require.NoError(t, p.Activate())
		assert.True(t, p.AcceptsSpending())
		require.NoError(t, p.Complete())
		assert.Equal(t, ProjectStatusCompleted, p.Status)
		assert.NotNil(t, p.EndDate)
	})

	t.Run("hold and resume", func(t *testing.T) {
		p := createTestProject(t)
		require.NoError(t, p.Activate())
		require.NoError(t, p.Hold())
		assert.False(t, p.AcceptsSpending())
		require.NoError(t, p.Activate())
		assert.Equal(t, ProjectStatusActive, p.Status)
	})

	t.Run("cannot complete a planned project", func(t *testing.T) {
		p := createTestProject(t)
		err := p.Complete()
		assert.Error(t, err)
		assert.Equal(t, ProjectStatusPlanned, p.Status)
	})

	t.Run("cancel from any non-terminal status", func(t *testing.T) {
		p := createTestProject(t)
		require.NoError(t, p.Cancel())
		assert.Equal(t, ProjectStatusCancelled, p.Status)
	})

	t.Run("cannot cancel a completed project", func(t *testing.T) {
		p := createTestProject(t)
		require.NoError(t, p.Activate())
		require.NoError(t, p.Complete())
		assert.Error(t, p.Cancel())
	})
}

func TestProjectUpdate(t *testing.T) {
	t.Run("updates basic fields", func(t *testing.T) {
		p := createTestProject(t)
		err := p.Update("Renamed Initiative", "new description", "Mwanza", p.StartDate, nil)
		require.NoError(t, err)
		assert.Equal(t, "Renamed Initiative", p.Name)
		assert.Equal(t, "Mwanza", p.Location)
	})

	t.Run("terminal projects are read-only", func(t *testing.T) {
		p := createTestProject(t)
		require.NoError(t, p.Cancel())
		err := p.Update("x", "", "", p.StartDate, nil)
		assert.Error(t, err)
	})
}

func TestProjectAssignManager(t *testing.T) {
	p := createTestProject(t)
	next := uuid.New()
	require.NoError(t, p.AssignManager(next))
	assert.Equal(t, next, p.ManagerID)
	assert.Error(t, p.AssignManager(uuid.Nil))
}
