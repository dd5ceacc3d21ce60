package reporting

import (
	"time"

	"github.com/dealersync/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ReportingPeriod is the normalized window (inclusive start/end dates) that
// all financial facts for a sync are attached to. At most one period exists
// per (tenant, period_start, period_end); re-syncs of the same window reuse
// the existing row and only update its provenance link.
type ReportingPeriod struct {
	shared.TenantEntity
	// PeriodStart is the inclusive start date of the window
	PeriodStart time.Time
	// PeriodEnd is the inclusive end date of the window
	PeriodEnd time.Time
	// DataSource tags which ERP variant the period's facts came from
	DataSource string
	// SyncJobID links to the sync job that created or last refreshed the period
	SyncJobID uuid.UUID
}

// NewReportingPeriod creates a reporting period for a tenant window
func NewReportingPeriod(tenantID uuid.UUID, periodStart, periodEnd time.Time, dataSource string, syncJobID uuid.UUID) *ReportingPeriod {
	return &ReportingPeriod{
		TenantEntity: shared.NewTenantEntity(tenantID),
		PeriodStart:  periodStart,
		PeriodEnd:    periodEnd,
		DataSource:   dataSource,
		SyncJobID:    syncJobID,
	}
}

// Refresh relinks the period to the sync job that re-synced it
func (p *ReportingPeriod) Refresh(syncJobID uuid.UUID, dataSource string) {
	p.SyncJobID = syncJobID
	p.DataSource = dataSource
	p.UpdatedAt = time.Now()
}
