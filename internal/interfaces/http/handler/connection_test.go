package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appsync "github.com/dealersync/backend/internal/application/sync"
	"github.com/dealersync/backend/internal/domain/shared"
	syncdomain "github.com/dealersync/backend/internal/domain/sync"
	"github.com/dealersync/backend/internal/interfaces/http/dto"
)

type connectionHandlerFixture struct {
	manager *MockConnectionManager
	engine  *gin.Engine
}

func newConnectionHandlerFixture() *connectionHandlerFixture {
	f := &connectionHandlerFixture{manager: new(MockConnectionManager)}
	h := NewConnectionHandler(f.manager)
	f.engine = gin.New()
	h.RegisterRoutes(f.engine.Group("/api/v1"))
	return f
}

func (f *connectionHandlerFixture) request(t *testing.T, method, path string, tenantID uuid.UUID, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Tenant-ID", tenantID.String())
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func storedConnection(t *testing.T, tenantID uuid.UUID) *syncdomain.TenantConnection {
	t.Helper()
	conn, err := syncdomain.NewTenantConnection(tenantID, "Main store", syncdomain.ErpTypeCDKDrive,
		"db.dealer.local:5432", "dealerdb", "reporting_ro", "ciphertext", "cdk_drive_2020")
	require.NoError(t, err)
	return conn
}

func TestConnectionHandler_CreateConnection(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates and never echoes credentials", func(t *testing.T) {
		f := newConnectionHandlerFixture()
		conn := storedConnection(t, tenantID)

		f.manager.On("CreateConnection", mock.Anything, tenantID, mock.MatchedBy(func(input appsync.ConnectionInput) bool {
			return input.Password == "plaintext-pw" && input.ErpType == syncdomain.ErpTypeCDKDrive
		})).Return(conn, nil)

		w := f.request(t, http.MethodPost, "/api/v1/connections", tenantID, gin.H{
			"name":      "Main store",
			"erp_type":  "CDK_DRIVE",
			"server":    "db.dealer.local:5432",
			"database":  "dealerdb",
			"username":  "reporting_ro",
			"password":  "plaintext-pw",
			"schema_id": "cdk_drive_2020",
		})

		require.Equal(t, http.StatusCreated, w.Code)
		var resp dto.ConnectionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, conn.ID.String(), resp.Connection.ID)
		assert.NotContains(t, w.Body.String(), "plaintext-pw")
		assert.NotContains(t, w.Body.String(), "ciphertext")
	})

	t.Run("unknown ERP type returns 400", func(t *testing.T) {
		f := newConnectionHandlerFixture()

		f.manager.On("CreateConnection", mock.Anything, tenantID, mock.Anything).
			Return(nil, syncdomain.ErrUnknownErpType)

		w := f.request(t, http.MethodPost, "/api/v1/connections", tenantID, gin.H{
			"name":      "Main store",
			"erp_type":  "DEALERTRACK",
			"server":    "s",
			"database":  "d",
			"username":  "u",
			"password":  "p",
			"schema_id": "cdk_drive_2020",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing fields return 400 before the service runs", func(t *testing.T) {
		f := newConnectionHandlerFixture()

		w := f.request(t, http.MethodPost, "/api/v1/connections", tenantID, gin.H{
			"name": "Main store",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		f.manager.AssertNotCalled(t, "CreateConnection", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestConnectionHandler_GetAndList(t *testing.T) {
	tenantID := uuid.New()

	t.Run("gets a connection", func(t *testing.T) {
		f := newConnectionHandlerFixture()
		conn := storedConnection(t, tenantID)

		f.manager.On("GetConnection", mock.Anything, tenantID, conn.ID).Return(conn, nil)

		w := f.request(t, http.MethodGet, "/api/v1/connections/"+conn.ID.String(), tenantID, nil)

		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.ConnectionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "CDK_DRIVE", resp.Connection.ErpType)
	})

	t.Run("unknown connection returns 404", func(t *testing.T) {
		f := newConnectionHandlerFixture()
		id := uuid.New()

		f.manager.On("GetConnection", mock.Anything, tenantID, id).Return(nil, shared.ErrNotFound)

		w := f.request(t, http.MethodGet, "/api/v1/connections/"+id.String(), tenantID, nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("lists connections", func(t *testing.T) {
		f := newConnectionHandlerFixture()
		conn := storedConnection(t, tenantID)

		f.manager.On("ListConnections", mock.Anything, tenantID).
			Return([]syncdomain.TenantConnection{*conn}, nil)

		w := f.request(t, http.MethodGet, "/api/v1/connections", tenantID, nil)

		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.ConnectionListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Connections, 1)
	})
}

func TestConnectionHandler_Mutations(t *testing.T) {
	tenantID := uuid.New()

	t.Run("rotates credentials", func(t *testing.T) {
		f := newConnectionHandlerFixture()
		conn := storedConnection(t, tenantID)

		f.manager.On("RotateCredentials", mock.Anything, tenantID, conn.ID, "new_user", "new-pw").
			Return(conn, nil)

		w := f.request(t, http.MethodPut, "/api/v1/connections/"+conn.ID.String()+"/credentials", tenantID, gin.H{
			"username": "new_user",
			"password": "new-pw",
		})

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("deactivates a connection", func(t *testing.T) {
		f := newConnectionHandlerFixture()
		id := uuid.New()

		f.manager.On("DeactivateConnection", mock.Anything, tenantID, id).Return(nil)

		w := f.request(t, http.MethodDelete, "/api/v1/connections/"+id.String(), tenantID, nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("test endpoint maps inactive connection to 400", func(t *testing.T) {
		f := newConnectionHandlerFixture()
		id := uuid.New()

		f.manager.On("TestConnection", mock.Anything, tenantID, id).
			Return(syncdomain.ErrConnectionInactive)

		w := f.request(t, http.MethodPost, "/api/v1/connections/"+id.String()+"/test", tenantID, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("test endpoint reports success", func(t *testing.T) {
		f := newConnectionHandlerFixture()
		id := uuid.New()

		f.manager.On("TestConnection", mock.Anything, tenantID, id).Return(nil)

		w := f.request(t, http.MethodPost, "/api/v1/connections/"+id.String()+"/test", tenantID, nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
