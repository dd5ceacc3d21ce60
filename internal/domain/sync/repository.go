package sync

import (
	"context"

	"github.com/google/uuid"
)

// SyncJobRepository defines the interface for persisting sync jobs.
// Jobs are an append-only audit log: Save inserts or updates, nothing deletes.
type SyncJobRepository interface {
	// Save creates or updates a sync job
	Save(ctx context.Context, job *SyncJob) error

	// FindByID finds a job by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*SyncJob, error)

	// FindRecent returns a tenant's most recent jobs, newest first, capped
	// at limit. When connectionID is non-nil only that connection's jobs
	// are returned.
	FindRecent(ctx context.Context, tenantID uuid.UUID, connectionID *uuid.UUID, limit int) ([]SyncJob, error)
}

// TenantConnectionRepository defines the interface for persisting tenant connections
type TenantConnectionRepository interface {
	// Save creates or updates a tenant connection
	Save(ctx context.Context, conn *TenantConnection) error

	// FindByID finds a connection by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*TenantConnection, error)

	// FindByIDForTenant finds a connection by ID scoped to a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*TenantConnection, error)

	// FindAllForTenant finds all connections for a tenant, inactive ones included
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]TenantConnection, error)

	// FindActive finds every active connection across all tenants.
	// Used by the scheduler to enumerate sync targets.
	FindActive(ctx context.Context) ([]TenantConnection, error)
}
