package reporting

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ReportingPeriodRepository defines the interface for persisting reporting periods
type ReportingPeriodRepository interface {
	// Save creates or updates a reporting period
	Save(ctx context.Context, period *ReportingPeriod) error

	// FindByWindow finds the period for an exact (tenant, start, end) window.
	// Returns shared.ErrNotFound when no period exists yet.
	FindByWindow(ctx context.Context, tenantID uuid.UUID, periodStart, periodEnd time.Time) (*ReportingPeriod, error)

	// FindAllForTenant lists a tenant's periods, newest first
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]ReportingPeriod, error)
}

// DepartmentFinancialRepository defines the interface for persisting department financials
type DepartmentFinancialRepository interface {
	// Save creates or updates a department financial row
	Save(ctx context.Context, df *DepartmentFinancial) error

	// FindByPeriodAndDepartment finds the unique row for (period, department).
	// Returns shared.ErrNotFound when the department has no row yet.
	FindByPeriodAndDepartment(ctx context.Context, reportingPeriodID uuid.UUID, department string) (*DepartmentFinancial, error)

	// FindByPeriod lists every department row for a period
	FindByPeriod(ctx context.Context, reportingPeriodID uuid.UUID) ([]DepartmentFinancial, error)
}

// ExpenseAllocationRepository defines the interface for persisting expense allocations
type ExpenseAllocationRepository interface {
	// Insert appends an expense allocation row
	Insert(ctx context.Context, ea *ExpenseAllocation) error

	// FindByPeriod lists every expense row for a period
	FindByPeriod(ctx context.Context, reportingPeriodID uuid.UUID) ([]ExpenseAllocation, error)
}

// OperationalMetricRepository defines the interface for persisting operational metrics
type OperationalMetricRepository interface {
	// Insert appends an operational metric row
	Insert(ctx context.Context, om *OperationalMetric) error

	// FindByPeriod lists every metric row for a period
	FindByPeriod(ctx context.Context, reportingPeriodID uuid.UUID) ([]OperationalMetric, error)
}
