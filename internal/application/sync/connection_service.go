package sync

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	syncdomain "github.com/dealersync/backend/internal/domain/sync"
)

// ConnectionInput carries the parameters for creating a tenant connection.
// Password arrives in plaintext from the admin API and is encrypted before
// anything is persisted.
type ConnectionInput struct {
	Name     string
	ErpType  syncdomain.ErpType
	Server   string
	Database string
	Username string
	Password string
	SchemaID string
}

// ConnectionService manages tenant ERP connections: registration, credential
// rotation, soft deactivation and connectivity checks
type ConnectionService struct {
	connRepo syncdomain.TenantConnectionRepository
	factory  syncdomain.AdapterFactory
	cipher   syncdomain.CredentialCipher
	logger   *zap.Logger
}

// NewConnectionService creates a connection service
func NewConnectionService(
	connRepo syncdomain.TenantConnectionRepository,
	factory syncdomain.AdapterFactory,
	cipher syncdomain.CredentialCipher,
	logger *zap.Logger,
) *ConnectionService {
	return &ConnectionService{
		connRepo: connRepo,
		factory:  factory,
		cipher:   cipher,
		logger:   logger.Named("connection-service"),
	}
}

// CreateConnection registers a new ERP connection for a tenant
func (s *ConnectionService) CreateConnection(ctx context.Context, tenantID uuid.UUID, input ConnectionInput) (*syncdomain.TenantConnection, error) {
	encrypted, err := s.cipher.Encrypt(input.Password)
	if err != nil {
		return nil, err
	}

	conn, err := syncdomain.NewTenantConnection(tenantID, input.Name, input.ErpType,
		input.Server, input.Database, input.Username, encrypted, input.SchemaID)
	if err != nil {
		return nil, err
	}

	if err := s.connRepo.Save(ctx, conn); err != nil {
		return nil, err
	}

	s.logger.Info("connection created",
		zap.String("connection_id", conn.ID.String()),
		zap.String("tenant_id", tenantID.String()),
		zap.String("erp_type", conn.ErpType.String()),
	)
	return conn, nil
}

// GetConnection retrieves a connection scoped to a tenant
func (s *ConnectionService) GetConnection(ctx context.Context, tenantID, id uuid.UUID) (*syncdomain.TenantConnection, error) {
	return s.connRepo.FindByIDForTenant(ctx, tenantID, id)
}

// ListConnections lists every connection of a tenant
func (s *ConnectionService) ListConnections(ctx context.Context, tenantID uuid.UUID) ([]syncdomain.TenantConnection, error) {
	return s.connRepo.FindAllForTenant(ctx, tenantID)
}

// RotateCredentials replaces a connection's username and password
func (s *ConnectionService) RotateCredentials(ctx context.Context, tenantID, id uuid.UUID, username, password string) (*syncdomain.TenantConnection, error) {
	conn, err := s.connRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	encrypted, err := s.cipher.Encrypt(password)
	if err != nil {
		return nil, err
	}
	if err := conn.RotateCredentials(username, encrypted); err != nil {
		return nil, err
	}
	if err := s.connRepo.Save(ctx, conn); err != nil {
		return nil, err
	}

	s.logger.Info("credentials rotated", zap.String("connection_id", conn.ID.String()))
	return conn, nil
}

// DeactivateConnection soft-deactivates a connection. Rows are never hard
// deleted so the sync job audit trail stays resolvable.
func (s *ConnectionService) DeactivateConnection(ctx context.Context, tenantID, id uuid.UUID) error {
	conn, err := s.connRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}

	conn.Deactivate()
	if err := s.connRepo.Save(ctx, conn); err != nil {
		return err
	}

	s.logger.Info("connection deactivated", zap.String("connection_id", conn.ID.String()))
	return nil
}

// TestConnection opens a live adapter for the connection and pings the
// source ERP. Decrypted credentials exist only for the duration of the call.
func (s *ConnectionService) TestConnection(ctx context.Context, tenantID, id uuid.UUID) error {
	conn, err := s.connRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if !conn.IsActive {
		return syncdomain.ErrConnectionInactive
	}

	password, err := s.cipher.Decrypt(conn.EncryptedPassword)
	if err != nil {
		return err
	}

	adapter, err := s.factory.GetAdapter(ctx, conn.ErpType, conn.Config(password))
	if err != nil {
		return err
	}
	defer adapter.Close()

	return adapter.TestConnection(ctx)
}
