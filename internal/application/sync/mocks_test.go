package sync

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dealersync/backend/internal/domain/reporting"
	syncdomain "github.com/dealersync/backend/internal/domain/sync"
)

// ---------------------------------------------------------------------------
// Repository mocks
// ---------------------------------------------------------------------------

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

type MockReportingPeriodRepository struct {
	mock.Mock
}

func (m *MockReportingPeriodRepository) Save(ctx context.Context, period *reporting.ReportingPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockReportingPeriodRepository) FindByWindow(ctx context.Context, tenantID uuid.UUID, periodStart, periodEnd time.Time) (*reporting.ReportingPeriod, error) {
	args := m.Called(ctx, tenantID, periodStart, periodEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reporting.ReportingPeriod), args.Error(1)
}

func (m *MockReportingPeriodRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]reporting.ReportingPeriod, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reporting.ReportingPeriod), args.Error(1)
}

type MockDepartmentFinancialRepository struct {
	mock.Mock
}

func (m *MockDepartmentFinancialRepository) Save(ctx context.Context, df *reporting.DepartmentFinancial) error {
	args := m.Called(ctx, df)
	return args.Error(0)
}

func (m *MockDepartmentFinancialRepository) FindByPeriodAndDepartment(ctx context.Context, reportingPeriodID uuid.UUID, department string) (*reporting.DepartmentFinancial, error) {
	args := m.Called(ctx, reportingPeriodID, department)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reporting.DepartmentFinancial), args.Error(1)
}

func (m *MockDepartmentFinancialRepository) FindByPeriod(ctx context.Context, reportingPeriodID uuid.UUID) ([]reporting.DepartmentFinancial, error) {
	args := m.Called(ctx, reportingPeriodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reporting.DepartmentFinancial), args.Error(1)
}

type MockExpenseAllocationRepository struct {
	mock.Mock
}

func (m *MockExpenseAllocationRepository) Insert(ctx context.Context, ea *reporting.ExpenseAllocation) error {
	args := m.Called(ctx, ea)
	return args.Error(0)
}

func (m *MockExpenseAllocationRepository) FindByPeriod(ctx context.Context, reportingPeriodID uuid.UUID) ([]reporting.ExpenseAllocation, error) {
	args := m.Called(ctx, reportingPeriodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reporting.ExpenseAllocation), args.Error(1)
}

type MockOperationalMetricRepository struct {
	mock.Mock
}

func (m *MockOperationalMetricRepository) Insert(ctx context.Context, om *reporting.OperationalMetric) error {
	args := m.Called(ctx, om)
	return args.Error(0)
}

func (m *MockOperationalMetricRepository) FindByPeriod(ctx context.Context, reportingPeriodID uuid.UUID) ([]reporting.OperationalMetric, error) {
	args := m.Called(ctx, reportingPeriodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reporting.OperationalMetric), args.Error(1)
}

// ---------------------------------------------------------------------------
// Adapter mocks
// ---------------------------------------------------------------------------

type MockAdapterFactory struct {
	mock.Mock
}

func (m *MockAdapterFactory) SupportedTypes() []syncdomain.ErpType {
	args := m.Called()
	return args.Get(0).([]syncdomain.ErpType)
}

func (m *MockAdapterFactory) GetAdapter(ctx context.Context, erpType syncdomain.ErpType, config syncdomain.ConnectionConfig) (syncdomain.ErpAdapter, error) {
	args := m.Called(ctx, erpType, config)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(syncdomain.ErpAdapter), args.Error(1)
}

type MockErpAdapter struct {
	mock.Mock
}

func (m *MockErpAdapter) ErpType() syncdomain.ErpType {
	args := m.Called()
	return args.Get(0).(syncdomain.ErpType)
}

func (m *MockErpAdapter) TestConnection(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockErpAdapter) GetDepartmentFinancials(ctx context.Context, start, end time.Time) ([]syncdomain.DepartmentFinancialRecord, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]syncdomain.DepartmentFinancialRecord), args.Error(1)
}

func (m *MockErpAdapter) GetExpenseAllocations(ctx context.Context, start, end time.Time) ([]syncdomain.ExpenseAllocationRecord, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]syncdomain.ExpenseAllocationRecord), args.Error(1)
}

func (m *MockErpAdapter) GetOperationalMetrics(ctx context.Context, start, end time.Time) ([]syncdomain.OperationalMetricRecord, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]syncdomain.OperationalMetricRecord), args.Error(1)
}

func (m *MockErpAdapter) GetFullReport(ctx context.Context, start, end time.Time) (*syncdomain.FullReport, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*syncdomain.FullReport), args.Error(1)
}

func (m *MockErpAdapter) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockCredentialCipher struct {
	mock.Mock
}

func (m *MockCredentialCipher) Encrypt(plaintext string) (string, error) {
	args := m.Called(plaintext)
	return args.String(0), args.Error(1)
}

func (m *MockCredentialCipher) Decrypt(ciphertext string) (string, error) {
	args := m.Called(ciphertext)
	return args.String(0), args.Error(1)
}
