package sync

import (
	"time"

	"github.com/dealersync/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// JobKind represents what triggered a sync job
// ---------------------------------------------------------------------------

// JobKind represents what triggered a sync job
type JobKind string

const (
	// JobKindManual indicates the job was triggered by an API call
	JobKindManual JobKind = "MANUAL"
	// JobKindScheduled indicates the job was triggered by the scheduler
	JobKindScheduled JobKind = "SCHEDULED"
)

// IsValid returns true if the job kind is valid
func (k JobKind) IsValid() bool {
	switch k {
	case JobKindManual, JobKindScheduled:
		return true
	default:
		return false
	}
}

// String returns the string representation of JobKind
func (k JobKind) String() string {
	return string(k)
}

// ---------------------------------------------------------------------------
// JobStatus represents the state of a sync job
// ---------------------------------------------------------------------------

// JobStatus represents the state of a sync job
type JobStatus string

const (
	// JobStatusRunning indicates the job is in progress
	JobStatusRunning JobStatus = "RUNNING"
	// JobStatusCompleted indicates the job finished successfully
	JobStatusCompleted JobStatus = "COMPLETED"
	// JobStatusFailed indicates the job failed
	JobStatusFailed JobStatus = "FAILED"
)

// IsValid returns true if the status is valid
func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusRunning, JobStatusCompleted, JobStatusFailed:
		return true
	default:
		return false
	}
}

// String returns the string representation of JobStatus
func (s JobStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the status is a terminal state
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// ---------------------------------------------------------------------------
// SyncJob
// ---------------------------------------------------------------------------

// SyncJob is the audit record of one pull-normalize-upsert cycle. It is
// created in RUNNING state, makes exactly one transition to COMPLETED or
// FAILED, and is immutable afterwards. Jobs are never deleted or re-opened;
// repeated triggers for the same window each get their own job row.
type SyncJob struct {
	shared.TenantEntity
	// ConnectionID is the tenant connection this job pulled from
	ConnectionID uuid.UUID
	// Kind records what triggered the job
	Kind JobKind
	// Status is the job state (RUNNING until the terminal transition)
	Status JobStatus
	// PeriodStart is the inclusive start of the synced date range
	PeriodStart time.Time
	// PeriodEnd is the inclusive end of the synced date range
	PeriodEnd time.Time
	// StartedAt is when the job was created
	StartedAt time.Time
	// CompletedAt is when the job reached a terminal state
	CompletedAt *time.Time
	// RecordsProcessed counts every record pulled from the adapter
	RecordsProcessed int
	// RecordsCreated counts rows newly inserted into the normalized store
	RecordsCreated int
	// Errors is the ordered list of error messages (empty unless FAILED)
	Errors []string
}

// NewSyncJob creates a sync job in RUNNING state. Returns ErrInvalidPeriod
// when periodStart is after periodEnd; no job exists in that case.
func NewSyncJob(tenantID, connectionID uuid.UUID, kind JobKind, periodStart, periodEnd time.Time) (*SyncJob, error) {
	if periodStart.After(periodEnd) {
		return nil, ErrInvalidPeriod
	}
	if !kind.IsValid() {
		kind = JobKindManual
	}
	return &SyncJob{
		TenantEntity: shared.NewTenantEntity(tenantID),
		ConnectionID: connectionID,
		Kind:         kind,
		Status:       JobStatusRunning,
		PeriodStart:  periodStart,
		PeriodEnd:    periodEnd,
		StartedAt:    time.Now(),
		Errors:       []string{},
	}, nil
}

// Complete transitions the job to COMPLETED. Fails if the job is already terminal.
func (j *SyncJob) Complete(recordsProcessed, recordsCreated int) error {
	if j.Status.IsTerminal() {
		return ErrJobAlreadyFinal
	}
	now := time.Now()
	j.Status = JobStatusCompleted
	j.RecordsProcessed = recordsProcessed
	j.RecordsCreated = recordsCreated
	j.CompletedAt = &now
	j.UpdatedAt = now
	return nil
}

// Fail transitions the job to FAILED and records the error message.
// Fails if the job is already terminal.
func (j *SyncJob) Fail(message string) error {
	if j.Status.IsTerminal() {
		return ErrJobAlreadyFinal
	}
	now := time.Now()
	j.Status = JobStatusFailed
	j.Errors = append(j.Errors, message)
	j.CompletedAt = &now
	j.UpdatedAt = now
	return nil
}

// Duration returns how long the job ran, or zero if still running
func (j *SyncJob) Duration() time.Duration {
	if j.CompletedAt == nil {
		return 0
	}
	return j.CompletedAt.Sub(j.StartedAt)
}
