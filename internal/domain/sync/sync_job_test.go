package sync

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// SyncJob Tests
// ---------------------------------------------------------------------------

func TestNewSyncJob(t *testing.T) {
	tenantID := uuid.New()
	connectionID := uuid.New()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	t.Run("Valid job creation", func(t *testing.T) {
		job, err := NewSyncJob(tenantID, connectionID, JobKindManual, start, end)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, job.ID)
		assert.Equal(t, tenantID, job.TenantID)
		assert.Equal(t, connectionID, job.ConnectionID)
		assert.Equal(t, JobKindManual, job.Kind)
		assert.Equal(t, JobStatusRunning, job.Status)
		assert.Equal(t, start, job.PeriodStart)
		assert.Equal(t, end, job.PeriodEnd)
		assert.False(t, job.StartedAt.IsZero())
		assert.Nil(t, job.CompletedAt)
		assert.Empty(t, job.Errors)
	})

	t.Run("Single-day period is valid", func(t *testing.T) {
		job, err := NewSyncJob(tenantID, connectionID, JobKindScheduled, start, start)
		require.NoError(t, err)
		assert.Equal(t, JobStatusRunning, job.Status)
	})

	t.Run("Start after end", func(t *testing.T) {
		_, err := NewSyncJob(tenantID, connectionID, JobKindManual, end, start)
		assert.ErrorIs(t, err, ErrInvalidPeriod)
		assert.True(t, IsValidationError(err))
	})
}

func TestSyncJob_Complete(t *testing.T) {
	t.Run("Running to completed", func(t *testing.T) {
		job := newRunningJob(t)
		err := job.Complete(12, 5)
		require.NoError(t, err)
		assert.Equal(t, JobStatusCompleted, job.Status)
		assert.Equal(t, 12, job.RecordsProcessed)
		assert.Equal(t, 5, job.RecordsCreated)
		require.NotNil(t, job.CompletedAt)
		assert.Empty(t, job.Errors)
	})

	t.Run("Terminal jobs are immutable", func(t *testing.T) {
		job := newRunningJob(t)
		require.NoError(t, job.Complete(1, 1))
		assert.ErrorIs(t, job.Complete(2, 2), ErrJobAlreadyFinal)
		assert.ErrorIs(t, job.Fail("late failure"), ErrJobAlreadyFinal)
		assert.Equal(t, 1, job.RecordsProcessed)
	})
}

func TestSyncJob_Fail(t *testing.T) {
	t.Run("Running to failed", func(t *testing.T) {
		job := newRunningJob(t)
		err := job.Fail("connection refused")
		require.NoError(t, err)
		assert.Equal(t, JobStatusFailed, job.Status)
		assert.Equal(t, []string{"connection refused"}, job.Errors)
		require.NotNil(t, job.CompletedAt)
	})

	t.Run("Failed jobs are immutable", func(t *testing.T) {
		job := newRunningJob(t)
		require.NoError(t, job.Fail("first"))
		assert.ErrorIs(t, job.Fail("second"), ErrJobAlreadyFinal)
		assert.ErrorIs(t, job.Complete(0, 0), ErrJobAlreadyFinal)
		assert.Equal(t, []string{"first"}, job.Errors)
	})
}

func TestJobStatus_IsTerminal(t *testing.T) {
	assert.False(t, JobStatusRunning.IsTerminal())
	assert.True(t, JobStatusCompleted.IsTerminal())
	assert.True(t, JobStatusFailed.IsTerminal())
}

func TestJobKind_IsValid(t *testing.T) {
	assert.True(t, JobKindManual.IsValid())
	assert.True(t, JobKindScheduled.IsValid())
	assert.False(t, JobKind("CRON").IsValid())
}

func newRunningJob(t *testing.T) *SyncJob {
	t.Helper()
	job, err := NewSyncJob(uuid.New(), uuid.New(), JobKindManual,
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return job
}
