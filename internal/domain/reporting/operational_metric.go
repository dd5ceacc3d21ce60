package reporting

import (
	"github.com/dealersync/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OperationalMetric holds one operational KPI for a reporting period.
// Append-only, same as ExpenseAllocation.
type OperationalMetric struct {
	shared.TenantEntity
	// ReportingPeriodID is the period this metric belongs to
	ReportingPeriodID uuid.UUID
	// Name is the metric name (e.g. "repair_orders_closed")
	Name string
	// Category groups related metrics (e.g. "service", "sales")
	Category string
	// Value is the metric value
	Value decimal.Decimal
	// Unit is the measurement unit (e.g. "count", "hours")
	Unit string
}

// NewOperationalMetric creates an operational metric row
func NewOperationalMetric(tenantID, reportingPeriodID uuid.UUID, name, category string, value decimal.Decimal, unit string) *OperationalMetric {
	return &OperationalMetric{
		TenantEntity:      shared.NewTenantEntity(tenantID),
		ReportingPeriodID: reportingPeriodID,
		Name:              name,
		Category:          category,
		Value:             value,
		Unit:              unit,
	}
}
