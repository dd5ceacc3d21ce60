package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dealersync/backend/internal/domain/reporting"
	"github.com/dealersync/backend/internal/infrastructure/persistence/models"
)

// GormExpenseAllocationRepository implements reporting.ExpenseAllocationRepository
// using GORM. Insert-only: rows are appended every sync run.
type GormExpenseAllocationRepository struct {
	db *gorm.DB
}

// NewGormExpenseAllocationRepository creates a new GormExpenseAllocationRepository
func NewGormExpenseAllocationRepository(db *gorm.DB) *GormExpenseAllocationRepository {
	return &GormExpenseAllocationRepository{db: db}
}

// Insert appends an expense allocation row
func (r *GormExpenseAllocationRepository) Insert(ctx context.Context, ea *reporting.ExpenseAllocation) error {
	var model models.ExpenseAllocationModel
	model.FromDomain(ea)
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByPeriod lists every expense row for a period
func (r *GormExpenseAllocationRepository) FindByPeriod(ctx context.Context, reportingPeriodID uuid.UUID) ([]reporting.ExpenseAllocation, error) {
	var eaModels []models.ExpenseAllocationModel
	if err := r.db.WithContext(ctx).
		Where("reporting_period_id = ?", reportingPeriodID).
		Order("created_at ASC").
		Find(&eaModels).Error; err != nil {
		return nil, err
	}

	expenses := make([]reporting.ExpenseAllocation, len(eaModels))
	for i, model := range eaModels {
		expenses[i] = *model.ToDomain()
	}
	return expenses, nil
}

// GormOperationalMetricRepository implements reporting.OperationalMetricRepository
// using GORM. Insert-only, same as expenses.
type GormOperationalMetricRepository struct {
	db *gorm.DB
}

// NewGormOperationalMetricRepository creates a new GormOperationalMetricRepository
func NewGormOperationalMetricRepository(db *gorm.DB) *GormOperationalMetricRepository {
	return &GormOperationalMetricRepository{db: db}
}

// Insert appends an operational metric row
func (r *GormOperationalMetricRepository) Insert(ctx context.Context, om *reporting.OperationalMetric) error {
	var model models.OperationalMetricModel
	model.FromDomain(om)
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByPeriod lists every metric row for a period
func (r *GormOperationalMetricRepository) FindByPeriod(ctx context.Context, reportingPeriodID uuid.UUID) ([]reporting.OperationalMetric, error) {
	var omModels []models.OperationalMetricModel
	if err := r.db.WithContext(ctx).
		Where("reporting_period_id = ?", reportingPeriodID).
		Order("created_at ASC").
		Find(&omModels).Error; err != nil {
		return nil, err
	}

	metrics := make([]reporting.OperationalMetric, len(omModels))
	for i, model := range omModels {
		metrics[i] = *model.ToDomain()
	}
	return metrics, nil
}
