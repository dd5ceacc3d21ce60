package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	appsync "github.com/dealersync/backend/internal/application/sync"
	syncdomain "github.com/dealersync/backend/internal/domain/sync"
)

type MockSyncTrigger struct {
	mock.Mock
}

func (m *MockSyncTrigger) TriggerSync(ctx context.Context, tenantID, connectionID uuid.UUID, periodStart, periodEnd time.Time, kind syncdomain.JobKind) (*syncdomain.SyncJob, error) {
	args := m.Called(ctx, tenantID, connectionID, periodStart, periodEnd, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*syncdomain.SyncJob), args.Error(1)
}

type MockSyncJobRepository struct {
	mock.Mock
}

func (m *MockSyncJobRepository) Save(ctx context.Context, job *syncdomain.SyncJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockSyncJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*syncdomain.SyncJob, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*syncdomain.SyncJob), args.Error(1)
}

func (m *MockSyncJobRepository) FindRecent(ctx context.Context, tenantID uuid.UUID, connectionID *uuid.UUID, limit int) ([]syncdomain.SyncJob, error) {
	args := m.Called(ctx, tenantID, connectionID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]syncdomain.SyncJob), args.Error(1)
}

type MockTenantConnectionRepository struct {
	mock.Mock
}

func (m *MockTenantConnectionRepository) Save(ctx context.Context, conn *syncdomain.TenantConnection) error {
	args := m.Called(ctx, conn)
	return args.Error(0)
}

func (m *MockTenantConnectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*syncdomain.TenantConnection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*syncdomain.TenantConnection), args.Error(1)
}

func (m *MockTenantConnectionRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*syncdomain.TenantConnection, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*syncdomain.TenantConnection), args.Error(1)
}

func (m *MockTenantConnectionRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]syncdomain.TenantConnection, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]syncdomain.TenantConnection), args.Error(1)
}

func (m *MockTenantConnectionRepository) FindActive(ctx context.Context) ([]syncdomain.TenantConnection, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]syncdomain.TenantConnection), args.Error(1)
}

type MockConnectionManager struct {
	mock.Mock
}

func (m *MockConnectionManager) CreateConnection(ctx context.Context, tenantID uuid.UUID, input appsync.ConnectionInput) (*syncdomain.TenantConnection, error) {
	args := m.Called(ctx, tenantID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*syncdomain.TenantConnection), args.Error(1)
}

func (m *MockConnectionManager) GetConnection(ctx context.Context, tenantID, id uuid.UUID) (*syncdomain.TenantConnection, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*syncdomain.TenantConnection), args.Error(1)
}

func (m *MockConnectionManager) ListConnections(ctx context.Context, tenantID uuid.UUID) ([]syncdomain.TenantConnection, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]syncdomain.TenantConnection), args.Error(1)
}

func (m *MockConnectionManager) RotateCredentials(ctx context.Context, tenantID, id uuid.UUID, username, password string) (*syncdomain.TenantConnection, error) {
	args := m.Called(ctx, tenantID, id, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*syncdomain.TenantConnection), args.Error(1)
}

func (m *MockConnectionManager) DeactivateConnection(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockConnectionManager) TestConnection(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}
