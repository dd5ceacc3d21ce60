package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dealersync/backend/internal/domain/reporting"
	"github.com/dealersync/backend/internal/domain/shared"
	"github.com/dealersync/backend/internal/infrastructure/persistence/models"
)

// GormDepartmentFinancialRepository implements reporting.DepartmentFinancialRepository using GORM
type GormDepartmentFinancialRepository struct {
	db *gorm.DB
}

// NewGormDepartmentFinancialRepository creates a new GormDepartmentFinancialRepository
func NewGormDepartmentFinancialRepository(db *gorm.DB) *GormDepartmentFinancialRepository {
	return &GormDepartmentFinancialRepository{db: db}
}

// Save creates or updates a department financial row
func (r *GormDepartmentFinancialRepository) Save(ctx context.Context, df *reporting.DepartmentFinancial) error {
	var model models.DepartmentFinancialModel
	model.FromDomain(df)
	return r.db.WithContext(ctx).Save(&model).Error
}

// FindByPeriodAndDepartment finds the unique row for (period, department)
func (r *GormDepartmentFinancialRepository) FindByPeriodAndDepartment(ctx context.Context, reportingPeriodID uuid.UUID, department string) (*reporting.DepartmentFinancial, error) {
	var model models.DepartmentFinancialModel
	if err := r.db.WithContext(ctx).
		Where("reporting_period_id = ? AND department = ?", reportingPeriodID, department).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPeriod lists every department row for a period
func (r *GormDepartmentFinancialRepository) FindByPeriod(ctx context.Context, reportingPeriodID uuid.UUID) ([]reporting.DepartmentFinancial, error) {
	var dfModels []models.DepartmentFinancialModel
	if err := r.db.WithContext(ctx).
		Where("reporting_period_id = ?", reportingPeriodID).
		Order("department ASC").
		Find(&dfModels).Error; err != nil {
		return nil, err
	}

	financials := make([]reporting.DepartmentFinancial, len(dfModels))
	for i, model := range dfModels {
		financials[i] = *model.ToDomain()
	}
	return financials, nil
}
