package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	syncdomain "github.com/dealersync/backend/internal/domain/sync"
)

type mockSyncRunner struct {
	mock.Mock
}

func (m *mockSyncRunner) TriggerSync(ctx context.Context, tenantID, connectionID uuid.UUID, periodStart, periodEnd time.Time, kind syncdomain.JobKind) (*syncdomain.SyncJob, error) {
	args := m.Called(ctx, tenantID, connectionID, periodStart, periodEnd, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*syncdomain.SyncJob), args.Error(1)
}

type mockConnectionProvider struct {
	mock.Mock
}

func (m *mockConnectionProvider) FindActive(ctx context.Context) ([]syncdomain.TenantConnection, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]syncdomain.TenantConnection), args.Error(1)
}

func testConnection(t *testing.T, tenantID uuid.UUID, name string) syncdomain.TenantConnection {
	t.Helper()
	conn, err := syncdomain.NewTenantConnection(tenantID, name, syncdomain.ErpTypeCDKDrive,
		"db.dealer.local", "dealerdb", "reporting_ro", "ciphertext", "cdk_drive_2020")
	require.NoError(t, err)
	return *conn
}

func completedJob(t *testing.T, tenantID, connectionID uuid.UUID, start, end time.Time) *syncdomain.SyncJob {
	t.Helper()
	job, err := syncdomain.NewSyncJob(tenantID, connectionID, syncdomain.JobKindScheduled, start, end)
	require.NoError(t, err)
	require.NoError(t, job.Complete(3, 3))
	return job
}

func TestConfig_Validate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		config := DefaultConfig()
		assert.NoError(t, config.Validate())
	})

	t.Run("rejects bad values", func(t *testing.T) {
		config := DefaultConfig()
		config.SyncInterval = 0
		assert.ErrorIs(t, config.Validate(), ErrInvalidConfig)

		config = DefaultConfig()
		config.JobTimeout = -time.Second
		assert.ErrorIs(t, config.Validate(), ErrInvalidConfig)

		config = DefaultConfig()
		config.LookbackDays = 0
		assert.ErrorIs(t, config.Validate(), ErrInvalidConfig)
	})
}

func TestSyncScheduler_RunSweep(t *testing.T) {
	fixedNow := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	yesterday := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)

	newScheduler := func(t *testing.T, config Config, runner SyncRunner, provider ConnectionProvider) *SyncScheduler {
		t.Helper()
		s, err := NewSyncScheduler(config, runner, provider, zap.NewNop())
		require.NoError(t, err)
		s.now = func() time.Time { return fixedNow }
		return s
	}

	t.Run("syncs every active connection for yesterday", func(t *testing.T) {
		runner := new(mockSyncRunner)
		provider := new(mockConnectionProvider)
		s := newScheduler(t, DefaultConfig(), runner, provider)

		tenantID := uuid.New()
		connA := testConnection(t, tenantID, "Store A")
		connB := testConnection(t, tenantID, "Store B")
		provider.On("FindActive", mock.Anything).Return([]syncdomain.TenantConnection{connA, connB}, nil)

		runner.On("TriggerSync", mock.Anything, tenantID, connA.ID, yesterday, yesterday, syncdomain.JobKindScheduled).
			Return(completedJob(t, tenantID, connA.ID, yesterday, yesterday), nil)
		runner.On("TriggerSync", mock.Anything, tenantID, connB.ID, yesterday, yesterday, syncdomain.JobKindScheduled).
			Return(completedJob(t, tenantID, connB.ID, yesterday, yesterday), nil)

		s.RunSweep(context.Background())

		runner.AssertNumberOfCalls(t, "TriggerSync", 2)
	})

	t.Run("lookback widens the window start", func(t *testing.T) {
		runner := new(mockSyncRunner)
		provider := new(mockConnectionProvider)
		config := DefaultConfig()
		config.LookbackDays = 7
		s := newScheduler(t, config, runner, provider)

		tenantID := uuid.New()
		conn := testConnection(t, tenantID, "Store A")
		provider.On("FindActive", mock.Anything).Return([]syncdomain.TenantConnection{conn}, nil)

		weekAgo := time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)
		runner.On("TriggerSync", mock.Anything, tenantID, conn.ID, weekAgo, yesterday, syncdomain.JobKindScheduled).
			Return(completedJob(t, tenantID, conn.ID, weekAgo, yesterday), nil)

		s.RunSweep(context.Background())

		runner.AssertExpectations(t)
	})

	t.Run("one failed connection does not stop the sweep", func(t *testing.T) {
		runner := new(mockSyncRunner)
		provider := new(mockConnectionProvider)
		s := newScheduler(t, DefaultConfig(), runner, provider)

		tenantID := uuid.New()
		connA := testConnection(t, tenantID, "Store A")
		connB := testConnection(t, tenantID, "Store B")
		provider.On("FindActive", mock.Anything).Return([]syncdomain.TenantConnection{connA, connB}, nil)

		runner.On("TriggerSync", mock.Anything, tenantID, connA.ID, yesterday, yesterday, syncdomain.JobKindScheduled).
			Return(nil, syncdomain.ErrErpUnreachable)
		runner.On("TriggerSync", mock.Anything, tenantID, connB.ID, yesterday, yesterday, syncdomain.JobKindScheduled).
			Return(completedJob(t, tenantID, connB.ID, yesterday, yesterday), nil)

		s.RunSweep(context.Background())

		runner.AssertNumberOfCalls(t, "TriggerSync", 2)
	})

	t.Run("provider error skips the sweep", func(t *testing.T) {
		runner := new(mockSyncRunner)
		provider := new(mockConnectionProvider)
		s := newScheduler(t, DefaultConfig(), runner, provider)

		provider.On("FindActive", mock.Anything).Return(nil, errors.New("db down"))

		s.RunSweep(context.Background())

		runner.AssertNotCalled(t, "TriggerSync",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSyncScheduler_StartStop(t *testing.T) {
	t.Run("start and stop are idempotent", func(t *testing.T) {
		runner := new(mockSyncRunner)
		provider := new(mockConnectionProvider)
		s, err := NewSyncScheduler(DefaultConfig(), runner, provider, zap.NewNop())
		require.NoError(t, err)

		ctx := context.Background()
		require.NoError(t, s.Start(ctx))
		require.NoError(t, s.Start(ctx))

		stopCtx, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		require.NoError(t, s.Stop(stopCtx))
		require.NoError(t, s.Stop(stopCtx))
	})

	t.Run("disabled scheduler never starts the loop", func(t *testing.T) {
		runner := new(mockSyncRunner)
		provider := new(mockConnectionProvider)
		config := DefaultConfig()
		config.Enabled = false
		s, err := NewSyncScheduler(config, runner, provider, zap.NewNop())
		require.NoError(t, err)

		require.NoError(t, s.Start(context.Background()))
		require.NoError(t, s.Stop(context.Background()))

		provider.AssertNotCalled(t, "FindActive", mock.Anything)
	})

	t.Run("rejects invalid configuration", func(t *testing.T) {
		config := DefaultConfig()
		config.LookbackDays = 0
		_, err := NewSyncScheduler(config, new(mockSyncRunner), new(mockConnectionProvider), zap.NewNop())
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}
