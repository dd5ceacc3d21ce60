package sync

import (
	"time"

	"github.com/dealersync/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// LastSyncStatus
// ---------------------------------------------------------------------------

// LastSyncStatus records the outcome of the most recent sync over a connection
type LastSyncStatus string

const (
	// LastSyncStatusNever indicates no sync has run yet
	LastSyncStatusNever LastSyncStatus = "NEVER"
	// LastSyncStatusSuccess indicates the most recent sync completed
	LastSyncStatusSuccess LastSyncStatus = "SUCCESS"
	// LastSyncStatusFailed indicates the most recent sync failed
	LastSyncStatusFailed LastSyncStatus = "FAILED"
)

// String returns the string representation of LastSyncStatus
func (s LastSyncStatus) String() string {
	return string(s)
}

// ---------------------------------------------------------------------------
// TenantConnection
// ---------------------------------------------------------------------------

// TenantConnection holds one dealer's ERP endpoint and credentials. The
// password is stored as ciphertext; it is decrypted only transiently when an
// adapter is constructed. Connections are soft-deactivated, never hard-deleted,
// so the audit trail of past sync jobs keeps a valid reference.
type TenantConnection struct {
	shared.TenantEntity
	// Name is a human-readable label for the connection
	Name string
	// ErpType identifies the dealership ERP variant
	ErpType ErpType
	// Server is the ERP database address
	Server string
	// Database is the ERP database name
	Database string
	// Username is the ERP database user
	Username string
	// EncryptedPassword is the AES-encrypted ERP password (ciphertext only)
	EncryptedPassword string
	// SchemaID identifies the tenant's column-naming variant
	SchemaID string
	// IsActive is false once the connection has been soft-deactivated
	IsActive bool
	// LastSyncAt is when the most recent sync over this connection finished
	LastSyncAt *time.Time
	// LastSyncStatus is the outcome of the most recent sync
	LastSyncStatus LastSyncStatus
	// LastSyncError is the failure message of the most recent sync, if any
	LastSyncError string
}

// NewTenantConnection creates an active tenant connection. The password must
// already be encrypted by the credential cipher before it reaches the domain.
func NewTenantConnection(tenantID uuid.UUID, name string, erpType ErpType, server, database, username, encryptedPassword, schemaID string) (*TenantConnection, error) {
	if !erpType.IsValid() {
		return nil, ErrUnknownErpType
	}
	if server == "" || database == "" || username == "" || encryptedPassword == "" || schemaID == "" {
		return nil, ErrIncompleteConfig
	}
	return &TenantConnection{
		TenantEntity:      shared.NewTenantEntity(tenantID),
		Name:              name,
		ErpType:           erpType,
		Server:            server,
		Database:          database,
		Username:          username,
		EncryptedPassword: encryptedPassword,
		SchemaID:          schemaID,
		IsActive:          true,
		LastSyncStatus:    LastSyncStatusNever,
	}, nil
}

// Config assembles the adapter connection config from the connection row and
// the decrypted password. The plaintext never touches the entity's fields.
func (c *TenantConnection) Config(decryptedPassword string) ConnectionConfig {
	return ConnectionConfig{
		Server:   c.Server,
		Database: c.Database,
		Username: c.Username,
		Password: decryptedPassword,
		Schema:   c.SchemaID,
	}
}

// RotateCredentials replaces the stored ciphertext after a credential rotation
func (c *TenantConnection) RotateCredentials(username, encryptedPassword string) error {
	if username == "" || encryptedPassword == "" {
		return ErrIncompleteConfig
	}
	c.Username = username
	c.EncryptedPassword = encryptedPassword
	c.UpdatedAt = time.Now()
	return nil
}

// Deactivate soft-deactivates the connection. Idempotent.
func (c *TenantConnection) Deactivate() {
	c.IsActive = false
	c.UpdatedAt = time.Now()
}

// RecordSyncSuccess updates the last-sync bookkeeping after a completed job
func (c *TenantConnection) RecordSyncSuccess(at time.Time) {
	c.LastSyncAt = &at
	c.LastSyncStatus = LastSyncStatusSuccess
	c.LastSyncError = ""
	c.UpdatedAt = time.Now()
}

// RecordSyncFailure updates the last-sync bookkeeping after a failed job
func (c *TenantConnection) RecordSyncFailure(at time.Time, message string) {
	c.LastSyncAt = &at
	c.LastSyncStatus = LastSyncStatusFailed
	c.LastSyncError = message
	c.UpdatedAt = time.Now()
}
