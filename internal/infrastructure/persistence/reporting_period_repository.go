package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dealersync/backend/internal/domain/reporting"
	"github.com/dealersync/backend/internal/domain/shared"
	"github.com/dealersync/backend/internal/infrastructure/persistence/models"
)

// GormReportingPeriodRepository implements reporting.ReportingPeriodRepository using GORM
type GormReportingPeriodRepository struct {
	db *gorm.DB
}

// NewGormReportingPeriodRepository creates a new GormReportingPeriodRepository
func NewGormReportingPeriodRepository(db *gorm.DB) *GormReportingPeriodRepository {
	return &GormReportingPeriodRepository{db: db}
}

// Save creates or updates a reporting period
func (r *GormReportingPeriodRepository) Save(ctx context.Context, period *reporting.ReportingPeriod) error {
	var model models.ReportingPeriodModel
	model.FromDomain(period)
	return r.db.WithContext(ctx).Save(&model).Error
}

// FindByWindow finds the period for an exact (tenant, start, end) window
func (r *GormReportingPeriodRepository) FindByWindow(ctx context.Context, tenantID uuid.UUID, periodStart, periodEnd time.Time) (*reporting.ReportingPeriod, error) {
	var model models.ReportingPeriodModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND period_start = ? AND period_end = ?", tenantID, periodStart, periodEnd).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists a tenant's periods, newest first
func (r *GormReportingPeriodRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]reporting.ReportingPeriod, error) {
	var periodModels []models.ReportingPeriodModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("period_start DESC").
		Find(&periodModels).Error; err != nil {
		return nil, err
	}

	periods := make([]reporting.ReportingPeriod, len(periodModels))
	for i, model := range periodModels {
		periods[i] = *model.ToDomain()
	}
	return periods, nil
}
