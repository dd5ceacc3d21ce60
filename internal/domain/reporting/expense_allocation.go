package reporting

import (
	"github.com/dealersync/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseAllocation holds one expense fact for a reporting period. Unlike
// DepartmentFinancial there is no uniqueness constraint: every sync appends
// its pulled expense rows unconditionally. Report consumers filter by the
// originating sync job when they need a single run's view.
type ExpenseAllocation struct {
	shared.TenantEntity
	// ReportingPeriodID is the period this expense belongs to
	ReportingPeriodID uuid.UUID
	// Category is the expense category (e.g. "Advertising", "Payroll")
	Category string
	// Department is the department the expense is allocated to (empty = dealership-wide)
	Department string
	// Amount is the expense amount
	Amount decimal.Decimal
	// AllocationMethod tags how the amount was apportioned
	AllocationMethod string
}

// NewExpenseAllocation creates an expense allocation row
func NewExpenseAllocation(tenantID, reportingPeriodID uuid.UUID, category, department string, amount decimal.Decimal, allocationMethod string) *ExpenseAllocation {
	return &ExpenseAllocation{
		TenantEntity:      shared.NewTenantEntity(tenantID),
		ReportingPeriodID: reportingPeriodID,
		Category:          category,
		Department:        department,
		Amount:            amount,
		AllocationMethod:  allocationMethod,
	}
}
