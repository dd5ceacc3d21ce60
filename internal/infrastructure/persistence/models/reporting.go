package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dealersync/backend/internal/domain/reporting"
)

// ReportingPeriodModel is the GORM model for reporting.ReportingPeriod.
// The composite unique index enforces at most one period per tenant window.
type ReportingPeriodModel struct {
	BaseModel
	TenantID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reporting_period_window,priority:1"`
	PeriodStart time.Time `gorm:"not null;uniqueIndex:idx_reporting_period_window,priority:2"`
	PeriodEnd   time.Time `gorm:"not null;uniqueIndex:idx_reporting_period_window,priority:3"`
	DataSource  string    `gorm:"type:varchar(50);not null"`
	SyncJobID   uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName specifies the table name
func (ReportingPeriodModel) TableName() string {
	return "reporting_periods"
}

// ToDomain converts the model to a domain entity
func (m *ReportingPeriodModel) ToDomain() *reporting.ReportingPeriod {
	p := &reporting.ReportingPeriod{
		PeriodStart: m.PeriodStart,
		PeriodEnd:   m.PeriodEnd,
		DataSource:  m.DataSource,
		SyncJobID:   m.SyncJobID,
	}
	p.BaseEntity = m.BaseModel.ToDomain()
	p.TenantID = m.TenantID
	return p
}

// FromDomain populates the model from a domain entity
func (m *ReportingPeriodModel) FromDomain(p *reporting.ReportingPeriod) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.TenantID = p.TenantID
	m.PeriodStart = p.PeriodStart
	m.PeriodEnd = p.PeriodEnd
	m.DataSource = p.DataSource
	m.SyncJobID = p.SyncJobID
}

// DepartmentFinancialModel is the GORM model for reporting.DepartmentFinancial.
// The composite unique index enforces at most one row per (period, department).
// Monetary columns use decimal(18,4) so summing across rows never drifts.
type DepartmentFinancialModel struct {
	TenantModel
	ReportingPeriodID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_dept_financial_period_dept,priority:1"`
	Department        string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_dept_financial_period_dept,priority:2"`
	GrossSales        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Discounts         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	NetSales          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CostOfGoodsSold   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	GrossProfit       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitsSold         int             `gorm:"not null;default:0"`
}

// TableName specifies the table name
func (DepartmentFinancialModel) TableName() string {
	return "department_financials"
}

// ToDomain converts the model to a domain entity
func (m *DepartmentFinancialModel) ToDomain() *reporting.DepartmentFinancial {
	return &reporting.DepartmentFinancial{
		TenantEntity:      m.ToDomainTenantEntity(),
		ReportingPeriodID: m.ReportingPeriodID,
		Department:        m.Department,
		GrossSales:        m.GrossSales,
		Discounts:         m.Discounts,
		NetSales:          m.NetSales,
		CostOfGoodsSold:   m.CostOfGoodsSold,
		GrossProfit:       m.GrossProfit,
		UnitsSold:         m.UnitsSold,
	}
}

// FromDomain populates the model from a domain entity
func (m *DepartmentFinancialModel) FromDomain(df *reporting.DepartmentFinancial) {
	m.FromDomainTenantEntity(df.TenantEntity)
	m.ReportingPeriodID = df.ReportingPeriodID
	m.Department = df.Department
	m.GrossSales = df.GrossSales
	m.Discounts = df.Discounts
	m.NetSales = df.NetSales
	m.CostOfGoodsSold = df.CostOfGoodsSold
	m.GrossProfit = df.GrossProfit
	m.UnitsSold = df.UnitsSold
}

// ExpenseAllocationModel is the GORM model for reporting.ExpenseAllocation.
// Append-only: no uniqueness constraint beyond the primary key.
type ExpenseAllocationModel struct {
	TenantModel
	ReportingPeriodID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Category          string          `gorm:"type:varchar(100);not null"`
	Department        string          `gorm:"type:varchar(100)"`
	Amount            decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AllocationMethod  string          `gorm:"type:varchar(50)"`
}

// TableName specifies the table name
func (ExpenseAllocationModel) TableName() string {
	return "expense_allocations"
}

// ToDomain converts the model to a domain entity
func (m *ExpenseAllocationModel) ToDomain() *reporting.ExpenseAllocation {
	return &reporting.ExpenseAllocation{
		TenantEntity:      m.ToDomainTenantEntity(),
		ReportingPeriodID: m.ReportingPeriodID,
		Category:          m.Category,
		Department:        m.Department,
		Amount:            m.Amount,
		AllocationMethod:  m.AllocationMethod,
	}
}

// FromDomain populates the model from a domain entity
func (m *ExpenseAllocationModel) FromDomain(ea *reporting.ExpenseAllocation) {
	m.FromDomainTenantEntity(ea.TenantEntity)
	m.ReportingPeriodID = ea.ReportingPeriodID
	m.Category = ea.Category
	m.Department = ea.Department
	m.Amount = ea.Amount
	m.AllocationMethod = ea.AllocationMethod
}

// OperationalMetricModel is the GORM model for reporting.OperationalMetric.
// Append-only, same as ExpenseAllocationModel.
type OperationalMetricModel struct {
	TenantModel
	ReportingPeriodID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name              string          `gorm:"type:varchar(100);not null"`
	Category          string          `gorm:"type:varchar(100)"`
	Value             decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Unit              string          `gorm:"type:varchar(50)"`
}

// TableName specifies the table name
func (OperationalMetricModel) TableName() string {
	return "operational_metrics"
}

// ToDomain converts the model to a domain entity
func (m *OperationalMetricModel) ToDomain() *reporting.OperationalMetric {
	return &reporting.OperationalMetric{
		TenantEntity:      m.ToDomainTenantEntity(),
		ReportingPeriodID: m.ReportingPeriodID,
		Name:              m.Name,
		Category:          m.Category,
		Value:             m.Value,
		Unit:              m.Unit,
	}
}

// FromDomain populates the model from a domain entity
func (m *OperationalMetricModel) FromDomain(om *reporting.OperationalMetric) {
	m.FromDomainTenantEntity(om.TenantEntity)
	m.ReportingPeriodID = om.ReportingPeriodID
	m.Name = om.Name
	m.Category = om.Category
	m.Value = om.Value
	m.Unit = om.Unit
}
