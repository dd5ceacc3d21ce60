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

// GormTenantConnectionRepository implements sync.TenantConnectionRepository using GORM
type GormTenantConnectionRepository struct {
	db *gorm.DB
}

// NewGormTenantConnectionRepository creates a new GormTenantConnectionRepository
func NewGormTenantConnectionRepository(db *gorm.DB) *GormTenantConnectionRepository {
	return &GormTenantConnectionRepository{db: db}
}

// Save creates or updates a tenant connection
func (r *GormTenantConnectionRepository) Save(ctx context.Context, conn *syncdomain.TenantConnection) error {
	var model models.TenantConnectionModel
	model.FromDomain(conn)
	return r.db.WithContext(ctx).Save(&model).Error
}

// FindByID finds a connection by its ID
func (r *GormTenantConnectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*syncdomain.TenantConnection, error) {
	var model models.TenantConnectionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a connection by ID within a specific tenant
func (r *GormTenantConnectionRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*syncdomain.TenantConnection, error) {
	var model models.TenantConnectionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ? AND tenant_id = ?", id, tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists every connection of a tenant, active or not
func (r *GormTenantConnectionRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]syncdomain.TenantConnection, error) {
	var connModels []models.TenantConnectionModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at ASC").
		Find(&connModels).Error; err != nil {
		return nil, err
	}

	conns := make([]syncdomain.TenantConnection, len(connModels))
	for i, model := range connModels {
		conns[i] = *model.ToDomain()
	}
	return conns, nil
}

// FindActive lists every active connection across tenants, used by the
// scheduled sync sweep
func (r *GormTenantConnectionRepository) FindActive(ctx context.Context) ([]syncdomain.TenantConnection, error) {
	var connModels []models.TenantConnectionModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at ASC").
		Find(&connModels).Error; err != nil {
		return nil, err
	}

	conns := make([]syncdomain.TenantConnection, len(connModels))
	for i, model := range connModels {
		conns[i] = *model.ToDomain()
	}
	return conns, nil
}
