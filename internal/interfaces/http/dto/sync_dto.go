package dto

import (
	"time"

	syncdomain "github.com/dealersync/backend/internal/domain/sync"
)

// DateFormat is the wire format for sync period dates
const DateFormat = "2006-01-02"

// TriggerSyncRequest is the body of POST /sync/trigger. DealerID selects
// the tenant connection to pull from; it may be omitted when the tenant
// has exactly one active connection.
type TriggerSyncRequest struct {
	DealerID  string `json:"dealer_id"`
	JobType   string `json:"job_type"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

// SyncJobPayload is the wire representation of a sync job
type SyncJobPayload struct {
	ID               string     `json:"id"`
	DealerID         string     `json:"dealer_id"`
	JobType          string     `json:"job_type"`
	Status           string     `json:"status"`
	StartDate        string     `json:"start_date"`
	EndDate          string     `json:"end_date"`
	StartedAt        time.Time  `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	RecordsProcessed int        `json:"records_processed"`
	RecordsCreated   int        `json:"records_created"`
	Errors           []string   `json:"errors"`
}

// NewSyncJobPayload converts a domain job to its wire representation
func NewSyncJobPayload(job *syncdomain.SyncJob) SyncJobPayload {
	errs := job.Errors
	if errs == nil {
		errs = []string{}
	}
	return SyncJobPayload{
		ID:               job.ID.String(),
		DealerID:         job.ConnectionID.String(),
		JobType:          job.Kind.String(),
		Status:           job.Status.String(),
		StartDate:        job.PeriodStart.Format(DateFormat),
		EndDate:          job.PeriodEnd.Format(DateFormat),
		StartedAt:        job.StartedAt,
		CompletedAt:      job.CompletedAt,
		RecordsProcessed: job.RecordsProcessed,
		RecordsCreated:   job.RecordsCreated,
		Errors:           errs,
	}
}

// NewSyncJobPayloads converts a slice of domain jobs
func NewSyncJobPayloads(jobs []syncdomain.SyncJob) []SyncJobPayload {
	payloads := make([]SyncJobPayload, len(jobs))
	for i := range jobs {
		payloads[i] = NewSyncJobPayload(&jobs[i])
	}
	return payloads
}

// TriggerSyncResponse is the 200 body of POST /sync/trigger
type TriggerSyncResponse struct {
	Message string         `json:"message"`
	Job     SyncJobPayload `json:"job"`
}

// SyncFailureResponse is the 500 body of POST /sync/trigger: the run
// failed but a job row exists and is returned for diagnosis
type SyncFailureResponse struct {
	Error string         `json:"error"`
	Job   SyncJobPayload `json:"job"`
}

// ErrorResponse is the body of plain error replies
type ErrorResponse struct {
	Error string `json:"error"`
}

// JobListResponse is the body of GET /sync/jobs
type JobListResponse struct {
	Jobs []SyncJobPayload `json:"jobs"`
}

// JobResponse is the body of GET /sync/jobs/:id
type JobResponse struct {
	Job SyncJobPayload `json:"job"`
}
