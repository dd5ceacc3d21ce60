package reporting

import (
	"time"

	"github.com/dealersync/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DepartmentFinancial holds one department's financials for one reporting
// period. At most one row exists per (reporting_period_id, department).
// NetSales and GrossProfit are stored derived fields: they are recomputed on
// every create and update so rows are never out of sync with their inputs.
type DepartmentFinancial struct {
	shared.TenantEntity
	// ReportingPeriodID is the period this row belongs to
	ReportingPeriodID uuid.UUID
	// Department is the dealership department key (e.g. "Service", "Parts")
	Department string
	// GrossSales is the department's gross sales
	GrossSales decimal.Decimal
	// Discounts is the total discounts granted
	Discounts decimal.Decimal
	// NetSales is derived: gross_sales - discounts
	NetSales decimal.Decimal
	// CostOfGoodsSold is the department's COGS
	CostOfGoodsSold decimal.Decimal
	// GrossProfit is derived: net_sales - cost_of_goods_sold
	GrossProfit decimal.Decimal
	// UnitsSold is the number of units sold
	UnitsSold int
}

// NewDepartmentFinancial creates a department financial row with derived
// fields already computed
func NewDepartmentFinancial(tenantID, reportingPeriodID uuid.UUID, department string, grossSales, discounts, costOfGoodsSold decimal.Decimal, unitsSold int) *DepartmentFinancial {
	df := &DepartmentFinancial{
		TenantEntity:      shared.NewTenantEntity(tenantID),
		ReportingPeriodID: reportingPeriodID,
		Department:        department,
		GrossSales:        grossSales,
		Discounts:         discounts,
		CostOfGoodsSold:   costOfGoodsSold,
		UnitsSold:         unitsSold,
	}
	df.RecomputeDerived()
	return df
}

// ApplyBase replaces the base figures and recomputes the derived fields.
// This is the only mutation path, so stored rows stay self-consistent.
func (df *DepartmentFinancial) ApplyBase(grossSales, discounts, costOfGoodsSold decimal.Decimal, unitsSold int) {
	df.GrossSales = grossSales
	df.Discounts = discounts
	df.CostOfGoodsSold = costOfGoodsSold
	df.UnitsSold = unitsSold
	df.RecomputeDerived()
	df.UpdatedAt = time.Now()
}

// RecomputeDerived recomputes net_sales and gross_profit from the base fields
func (df *DepartmentFinancial) RecomputeDerived() {
	df.NetSales = df.GrossSales.Sub(df.Discounts)
	df.GrossProfit = df.NetSales.Sub(df.CostOfGoodsSold)
}

// GrossMarginRatio returns gross_profit / net_sales. A zero denominator means
// the margin is undefined; decimal.Zero is returned rather than an error so
// report consumers can sum and display without special-casing.
func (df *DepartmentFinancial) GrossMarginRatio() decimal.Decimal {
	if df.NetSales.IsZero() {
		return decimal.Zero
	}
	return df.GrossProfit.Div(df.NetSales)
}
