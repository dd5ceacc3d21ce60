package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	syncdomain "github.com/dealersync/backend/internal/domain/sync"
)

// ---------------------------------------------------------------------------
// Interfaces
// ---------------------------------------------------------------------------

// SyncRunner runs one sync for a tenant connection over a period. Satisfied
// by the sync orchestrator.
type SyncRunner interface {
	TriggerSync(ctx context.Context, tenantID, connectionID uuid.UUID, periodStart, periodEnd time.Time, kind syncdomain.JobKind) (*syncdomain.SyncJob, error)
}

// ConnectionProvider lists the connections eligible for scheduled syncs
type ConnectionProvider interface {
	FindActive(ctx context.Context) ([]syncdomain.TenantConnection, error)
}

// ---------------------------------------------------------------------------
// Config
// ---------------------------------------------------------------------------

// Config holds sync scheduler configuration
type Config struct {
	// Enabled indicates if the scheduler runs at all
	Enabled bool
	// SyncInterval is how often a full scheduled sweep runs
	SyncInterval time.Duration
	// JobTimeout is the maximum time a single connection sync can run
	JobTimeout time.Duration
	// LookbackDays is how many days before yesterday the synced window starts
	LookbackDays int
}

// DefaultConfig returns default scheduler configuration
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		SyncInterval: time.Hour,
		JobTimeout:   15 * time.Minute,
		LookbackDays: 1,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.SyncInterval <= 0 {
		return ErrInvalidConfig
	}
	if c.JobTimeout <= 0 {
		return ErrInvalidConfig
	}
	if c.LookbackDays < 1 {
		return ErrInvalidConfig
	}
	return nil
}

// ---------------------------------------------------------------------------
// SyncScheduler
// ---------------------------------------------------------------------------

// SyncScheduler periodically sweeps every active tenant connection and runs
// a scheduled sync for the trailing window ending yesterday. Connections are
// processed sequentially within a sweep; a failed connection is logged and
// the sweep moves on. Failed runs are not retried, the next sweep covers the
// same window again.
type SyncScheduler struct {
	config      Config
	runner      SyncRunner
	connections ConnectionProvider
	logger      *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool

	// now is swapped in tests to pin the sweep window
	now func() time.Time
}

// NewSyncScheduler creates a sync scheduler
func NewSyncScheduler(config Config, runner SyncRunner, connections ConnectionProvider, logger *zap.Logger) (*SyncScheduler, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &SyncScheduler{
		config:      config,
		runner:      runner,
		connections: connections,
		logger:      logger.Named("sync-scheduler"),
		now:         time.Now,
	}, nil
}

// Start starts the scheduler loop
func (s *SyncScheduler) Start(ctx context.Context) error {
	if !s.config.Enabled {
		s.logger.Info("Sync scheduler disabled")
		return nil
	}

	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runLoop(ctx)

	s.logger.Info("Sync scheduler started",
		zap.Duration("sync_interval", s.config.SyncInterval),
		zap.Duration("job_timeout", s.config.JobTimeout),
		zap.Int("lookback_days", s.config.LookbackDays),
	)

	return nil
}

// Stop gracefully stops the scheduler
func (s *SyncScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Sync scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Sync scheduler stop timed out")
		return ctx.Err()
	}
}

// runLoop runs a sweep on every interval tick until the context ends
func (s *SyncScheduler) runLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.SyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunSweep(ctx)
		}
	}
}

// RunSweep syncs every active connection once for the current window
func (s *SyncScheduler) RunSweep(ctx context.Context) {
	connections, err := s.connections.FindActive(ctx)
	if err != nil {
		s.logger.Error("Failed to list active connections for scheduled sync", zap.Error(err))
		return
	}

	periodStart, periodEnd := s.sweepWindow()

	s.logger.Info("Scheduled sync sweep started",
		zap.Int("connection_count", len(connections)),
		zap.Time("period_start", periodStart),
		zap.Time("period_end", periodEnd),
	)

	for i := range connections {
		conn := &connections[i]
		s.syncConnection(ctx, conn, periodStart, periodEnd)
	}
}

// syncConnection runs one scheduled sync under the job timeout
func (s *SyncScheduler) syncConnection(ctx context.Context, conn *syncdomain.TenantConnection, periodStart, periodEnd time.Time) {
	jobCtx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	defer cancel()

	job, err := s.runner.TriggerSync(jobCtx, conn.TenantID, conn.ID, periodStart, periodEnd, syncdomain.JobKindScheduled)
	if err != nil {
		fields := []zap.Field{
			zap.String("tenant_id", conn.TenantID.String()),
			zap.String("connection_id", conn.ID.String()),
			zap.Error(err),
		}
		if job != nil {
			fields = append(fields, zap.String("job_id", job.ID.String()))
		}
		s.logger.Error("Scheduled sync failed", fields...)
		return
	}

	s.logger.Info("Scheduled sync completed",
		zap.String("tenant_id", conn.TenantID.String()),
		zap.String("connection_id", conn.ID.String()),
		zap.String("job_id", job.ID.String()),
		zap.Int("records_processed", job.RecordsProcessed),
	)
}

// sweepWindow returns the inclusive date window ending yesterday. Day
// boundaries are taken in local time so the window matches posting dates.
func (s *SyncScheduler) sweepWindow() (time.Time, time.Time) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	periodEnd := today.AddDate(0, 0, -1)
	periodStart := today.AddDate(0, 0, -s.config.LookbackDays)
	return periodStart, periodEnd
}
