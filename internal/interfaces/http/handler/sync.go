package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dealersync/backend/internal/domain/shared"
	syncdomain "github.com/dealersync/backend/internal/domain/sync"
	"github.com/dealersync/backend/internal/interfaces/http/dto"
)

// jobHistoryLimit caps the job list endpoint
const jobHistoryLimit = 50

// SyncTrigger runs one sync end to end. Satisfied by the sync orchestrator.
type SyncTrigger interface {
	TriggerSync(ctx context.Context, tenantID, connectionID uuid.UUID, periodStart, periodEnd time.Time, kind syncdomain.JobKind) (*syncdomain.SyncJob, error)
}

// SyncHandler handles sync trigger and job history endpoints
type SyncHandler struct {
	BaseHandler
	trigger  SyncTrigger
	jobRepo  syncdomain.SyncJobRepository
	connRepo syncdomain.TenantConnectionRepository
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(trigger SyncTrigger, jobRepo syncdomain.SyncJobRepository, connRepo syncdomain.TenantConnectionRepository) *SyncHandler {
	return &SyncHandler{
		trigger:  trigger,
		jobRepo:  jobRepo,
		connRepo: connRepo,
	}
}

// RegisterRoutes registers the sync endpoints
func (h *SyncHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sync := rg.Group("/sync")
	{
		sync.POST("/trigger", h.TriggerSync)
		sync.GET("/jobs", h.ListJobs)
		sync.GET("/jobs/:id", h.GetJob)
	}
}

// TriggerSync handles POST /sync/trigger. Validation and configuration
// problems return 400 with no job row; failures during the run return 500
// with the failed job attached.
func (h *SyncHandler) TriggerSync(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "tenant context required")
		return
	}

	var req dto.TriggerSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "start_date and end_date are required")
		return
	}

	periodStart, err := time.Parse(dto.DateFormat, req.StartDate)
	if err != nil {
		h.BadRequest(c, "start_date must be formatted YYYY-MM-DD")
		return
	}
	periodEnd, err := time.Parse(dto.DateFormat, req.EndDate)
	if err != nil {
		h.BadRequest(c, "end_date must be formatted YYYY-MM-DD")
		return
	}

	connectionID, err := h.resolveConnection(c.Request.Context(), tenantID, req.DealerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			h.NotFound(c, "connection not found")
			return
		}
		h.BadRequest(c, err.Error())
		return
	}

	kind := syncdomain.JobKind(req.JobType)
	if req.JobType == "" {
		kind = syncdomain.JobKindManual
	}
	if !kind.IsValid() {
		h.BadRequest(c, "job_type must be MANUAL or SCHEDULED")
		return
	}

	job, err := h.trigger.TriggerSync(c.Request.Context(), tenantID, connectionID, periodStart, periodEnd, kind)
	if err != nil {
		switch {
		case syncdomain.IsValidationError(err), syncdomain.IsConfigurationError(err):
			h.BadRequest(c, err.Error())
		case errors.Is(err, shared.ErrNotFound):
			h.NotFound(c, "connection not found")
		case job != nil:
			c.JSON(http.StatusInternalServerError, dto.SyncFailureResponse{
				Error: err.Error(),
				Job:   dto.NewSyncJobPayload(job),
			})
		default:
			h.InternalError(c, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, dto.TriggerSyncResponse{
		Message: "sync completed",
		Job:     dto.NewSyncJobPayload(job),
	})
}

// resolveConnection maps the optional dealer_id to a tenant connection.
// When omitted, the tenant must have exactly one active connection.
func (h *SyncHandler) resolveConnection(ctx context.Context, tenantID uuid.UUID, dealerID string) (uuid.UUID, error) {
	if dealerID != "" {
		id, err := uuid.Parse(dealerID)
		if err != nil {
			return uuid.Nil, errors.New("dealer_id must be a valid UUID")
		}
		return id, nil
	}

	connections, err := h.connRepo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return uuid.Nil, err
	}

	var active []syncdomain.TenantConnection
	for _, conn := range connections {
		if conn.IsActive {
			active = append(active, conn)
		}
	}
	switch len(active) {
	case 0:
		return uuid.Nil, shared.ErrNotFound
	case 1:
		return active[0].ID, nil
	default:
		return uuid.Nil, errors.New("dealer_id is required when multiple connections exist")
	}
}

// ListJobs handles GET /sync/jobs. Returns the tenant's newest jobs first,
// capped at 50, optionally filtered by dealer_id.
func (h *SyncHandler) ListJobs(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "tenant context required")
		return
	}

	var connectionID *uuid.UUID
	if dealerID := c.Query("dealer_id"); dealerID != "" {
		id, err := uuid.Parse(dealerID)
		if err != nil {
			h.BadRequest(c, "dealer_id must be a valid UUID")
			return
		}
		connectionID = &id
	}

	jobs, err := h.jobRepo.FindRecent(c.Request.Context(), tenantID, connectionID, jobHistoryLimit)
	if err != nil {
		h.InternalError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, dto.JobListResponse{Jobs: dto.NewSyncJobPayloads(jobs)})
}

// GetJob handles GET /sync/jobs/:id. Jobs belonging to another tenant
// return 403, unknown IDs return 404.
func (h *SyncHandler) GetJob(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "tenant context required")
		return
	}

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "job id must be a valid UUID")
		return
	}

	job, err := h.jobRepo.FindByID(c.Request.Context(), jobID)
	if err != nil {
		h.HandleLookupError(c, err)
		return
	}
	if job.TenantID != tenantID {
		h.Forbidden(c, "job belongs to another tenant")
		return
	}

	c.JSON(http.StatusOK, dto.JobResponse{Job: dto.NewSyncJobPayload(job)})
}
