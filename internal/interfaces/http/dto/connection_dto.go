package dto

import (
	"time"

	syncdomain "github.com/dealersync/backend/internal/domain/sync"
)

// CreateConnectionRequest is the body of POST /connections. The password
// arrives in plaintext over TLS and is encrypted before anything persists.
type CreateConnectionRequest struct {
	Name     string `json:"name" binding:"required"`
	ErpType  string `json:"erp_type" binding:"required,erptype"`
	Server   string `json:"server" binding:"required"`
	Database string `json:"database" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	SchemaID string `json:"schema_id"`
}

// RotateCredentialsRequest is the body of PUT /connections/:id/credentials
type RotateCredentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ConnectionPayload is the wire representation of a tenant connection.
// Credentials never appear here, not even in encrypted form.
type ConnectionPayload struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	ErpType        string     `json:"erp_type"`
	Server         string     `json:"server"`
	Database       string     `json:"database"`
	Username       string     `json:"username"`
	SchemaID       string     `json:"schema_id"`
	IsActive       bool       `json:"is_active"`
	LastSyncAt     *time.Time `json:"last_sync_at,omitempty"`
	LastSyncStatus string     `json:"last_sync_status"`
	CreatedAt      time.Time  `json:"created_at"`
}

// NewConnectionPayload converts a domain connection to its wire representation
func NewConnectionPayload(conn *syncdomain.TenantConnection) ConnectionPayload {
	return ConnectionPayload{
		ID:             conn.ID.String(),
		Name:           conn.Name,
		ErpType:        conn.ErpType.String(),
		Server:         conn.Server,
		Database:       conn.Database,
		Username:       conn.Username,
		SchemaID:       conn.SchemaID,
		IsActive:       conn.IsActive,
		LastSyncAt:     conn.LastSyncAt,
		LastSyncStatus: conn.LastSyncStatus.String(),
		CreatedAt:      conn.CreatedAt,
	}
}

// ConnectionResponse is the body of single-connection replies
type ConnectionResponse struct {
	Connection ConnectionPayload `json:"connection"`
}

// ConnectionListResponse is the body of GET /connections
type ConnectionListResponse struct {
	Connections []ConnectionPayload `json:"connections"`
}

// MessageResponse is the body of confirmation-only replies
type MessageResponse struct {
	Message string `json:"message"`
}
