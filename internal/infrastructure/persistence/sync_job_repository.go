package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dealersync/backend/internal/domain/shared"
	syncdomain "github.com/dealersync/backend/internal/domain/sync"
	"github.com/dealersync/backend/internal/infrastructure/persistence/models"
)

// GormSyncJobRepository implements sync.SyncJobRepository using GORM
type GormSyncJobRepository struct {
	db *gorm.DB
}

// NewGormSyncJobRepository creates a new GormSyncJobRepository
func NewGormSyncJobRepository(db *gorm.DB) *GormSyncJobRepository {
	return &GormSyncJobRepository{db: db}
}

// Save creates or updates a sync job row
func (r *GormSyncJobRepository) Save(ctx context.Context, job *syncdomain.SyncJob) error {
	var model models.SyncJobModel
	if err := model.FromDomain(job); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(&model).Error
}

// FindByID finds a sync job by its ID
func (r *GormSyncJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*syncdomain.SyncJob, error) {
	var model models.SyncJobModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindRecent lists a tenant's jobs newest first, optionally filtered by
// connection, capped at limit
func (r *GormSyncJobRepository) FindRecent(ctx context.Context, tenantID uuid.UUID, connectionID *uuid.UUID, limit int) ([]syncdomain.SyncJob, error) {
	query := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).Order("started_at DESC").Limit(limit)
	if connectionID != nil {
		query = query.Where("connection_id = ?", *connectionID)
	}

	var jobModels []models.SyncJobModel
	if err := query.Find(&jobModels).Error; err != nil {
		return nil, err
	}

	jobs := make([]syncdomain.SyncJob, len(jobModels))
	for i, model := range jobModels {
		jobs[i] = *model.ToDomain()
	}
	return jobs, nil
}
