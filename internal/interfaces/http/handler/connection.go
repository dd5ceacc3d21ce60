package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appsync "github.com/dealersync/backend/internal/application/sync"
	"github.com/dealersync/backend/internal/domain/shared"
	syncdomain "github.com/dealersync/backend/internal/domain/sync"
	"github.com/dealersync/backend/internal/interfaces/http/dto"
)

// ConnectionManager manages tenant ERP connections. Satisfied by the
// application connection service.
type ConnectionManager interface {
	CreateConnection(ctx context.Context, tenantID uuid.UUID, input appsync.ConnectionInput) (*syncdomain.TenantConnection, error)
	GetConnection(ctx context.Context, tenantID, id uuid.UUID) (*syncdomain.TenantConnection, error)
	ListConnections(ctx context.Context, tenantID uuid.UUID) ([]syncdomain.TenantConnection, error)
	RotateCredentials(ctx context.Context, tenantID, id uuid.UUID, username, password string) (*syncdomain.TenantConnection, error)
	DeactivateConnection(ctx context.Context, tenantID, id uuid.UUID) error
	TestConnection(ctx context.Context, tenantID, id uuid.UUID) error
}

// ConnectionHandler handles tenant connection administration endpoints
type ConnectionHandler struct {
	BaseHandler
	connections ConnectionManager
}

// NewConnectionHandler creates a new ConnectionHandler
func NewConnectionHandler(connections ConnectionManager) *ConnectionHandler {
	return &ConnectionHandler{connections: connections}
}

// RegisterRoutes registers the connection endpoints
func (h *ConnectionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	conns := rg.Group("/connections")
	{
		conns.POST("", h.CreateConnection)
		conns.GET("", h.ListConnections)
		conns.GET("/:id", h.GetConnection)
		conns.PUT("/:id/credentials", h.RotateCredentials)
		conns.DELETE("/:id", h.DeactivateConnection)
		conns.POST("/:id/test", h.TestConnection)
	}
}

// CreateConnection handles POST /connections
func (h *ConnectionHandler) CreateConnection(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "tenant context required")
		return
	}

	var req dto.CreateConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "name, erp_type, server, database, username and password are required")
		return
	}

	conn, err := h.connections.CreateConnection(c.Request.Context(), tenantID, appsync.ConnectionInput{
		Name:     req.Name,
		ErpType:  syncdomain.ErpType(req.ErpType),
		Server:   req.Server,
		Database: req.Database,
		Username: req.Username,
		Password: req.Password,
		SchemaID: req.SchemaID,
	})
	if err != nil {
		if syncdomain.IsConfigurationError(err) {
			h.BadRequest(c, err.Error())
			return
		}
		h.InternalError(c, err.Error())
		return
	}

	c.JSON(http.StatusCreated, dto.ConnectionResponse{Connection: dto.NewConnectionPayload(conn)})
}

// ListConnections handles GET /connections
func (h *ConnectionHandler) ListConnections(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "tenant context required")
		return
	}

	connections, err := h.connections.ListConnections(c.Request.Context(), tenantID)
	if err != nil {
		h.InternalError(c, err.Error())
		return
	}

	payloads := make([]dto.ConnectionPayload, len(connections))
	for i := range connections {
		payloads[i] = dto.NewConnectionPayload(&connections[i])
	}
	c.JSON(http.StatusOK, dto.ConnectionListResponse{Connections: payloads})
}

// GetConnection handles GET /connections/:id
func (h *ConnectionHandler) GetConnection(c *gin.Context) {
	tenantID, connID, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	conn, err := h.connections.GetConnection(c.Request.Context(), tenantID, connID)
	if err != nil {
		h.HandleLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ConnectionResponse{Connection: dto.NewConnectionPayload(conn)})
}

// RotateCredentials handles PUT /connections/:id/credentials
func (h *ConnectionHandler) RotateCredentials(c *gin.Context) {
	tenantID, connID, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	var req dto.RotateCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "username and password are required")
		return
	}

	conn, err := h.connections.RotateCredentials(c.Request.Context(), tenantID, connID, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			h.NotFound(c, "connection not found")
			return
		}
		if syncdomain.IsConfigurationError(err) {
			h.BadRequest(c, err.Error())
			return
		}
		h.InternalError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, dto.ConnectionResponse{Connection: dto.NewConnectionPayload(conn)})
}

// DeactivateConnection handles DELETE /connections/:id. Soft-deactivation
// only; the row stays for the job audit trail.
func (h *ConnectionHandler) DeactivateConnection(c *gin.Context) {
	tenantID, connID, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	if err := h.connections.DeactivateConnection(c.Request.Context(), tenantID, connID); err != nil {
		h.HandleLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "connection deactivated"})
}

// TestConnection handles POST /connections/:id/test
func (h *ConnectionHandler) TestConnection(c *gin.Context) {
	tenantID, connID, ok := h.tenantAndID(c)
	if !ok {
		return
	}

	if err := h.connections.TestConnection(c.Request.Context(), tenantID, connID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			h.NotFound(c, "connection not found")
			return
		}
		if syncdomain.IsConfigurationError(err) {
			h.BadRequest(c, err.Error())
			return
		}
		h.InternalError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "connection ok"})
}

// tenantAndID extracts the tenant context and :id path parameter, writing
// the error response itself when either is missing
func (h *ConnectionHandler) tenantAndID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "tenant context required")
		return uuid.Nil, uuid.Nil, false
	}

	connID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "connection id must be a valid UUID")
		return uuid.Nil, uuid.Nil, false
	}
	return tenantID, connID, true
}
