package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	syncdomain "github.com/dealersync/backend/internal/domain/sync"
)

// TenantConnectionModel is the GORM model for sync.TenantConnection.
// The password column holds ciphertext only; plaintext never reaches
// the persistence layer.
type TenantConnectionModel struct {
	TenantModel
	Name              string                    `gorm:"type:varchar(100);not null"`
	ErpType           syncdomain.ErpType        `gorm:"type:varchar(30);not null"`
	Server            string                    `gorm:"type:varchar(255);not null"`
	DatabaseName      string                    `gorm:"type:varchar(100);not null"`
	Username          string                    `gorm:"type:varchar(100);not null"`
	EncryptedPassword string                    `gorm:"type:text;not null"`
	SchemaID          string                    `gorm:"type:varchar(50);not null"`
	IsActive          bool                      `gorm:"not null;default:true;index"`
	LastSyncAt        *time.Time                ``
	LastSyncStatus    syncdomain.LastSyncStatus `gorm:"type:varchar(20);not null;default:'NEVER'"`
	LastSyncError     string                    `gorm:"type:text"`
}

// TableName specifies the table name
func (TenantConnectionModel) TableName() string {
	return "tenant_connections"
}

// ToDomain converts the model to a domain entity
func (m *TenantConnectionModel) ToDomain() *syncdomain.TenantConnection {
	return &syncdomain.TenantConnection{
		TenantEntity:      m.ToDomainTenantEntity(),
		Name:              m.Name,
		ErpType:           m.ErpType,
		Server:            m.Server,
		Database:          m.DatabaseName,
		Username:          m.Username,
		EncryptedPassword: m.EncryptedPassword,
		SchemaID:          m.SchemaID,
		IsActive:          m.IsActive,
		LastSyncAt:        m.LastSyncAt,
		LastSyncStatus:    m.LastSyncStatus,
		LastSyncError:     m.LastSyncError,
	}
}

// FromDomain populates the model from a domain entity
func (m *TenantConnectionModel) FromDomain(c *syncdomain.TenantConnection) {
	m.FromDomainTenantEntity(c.TenantEntity)
	m.Name = c.Name
	m.ErpType = c.ErpType
	m.Server = c.Server
	m.DatabaseName = c.Database
	m.Username = c.Username
	m.EncryptedPassword = c.EncryptedPassword
	m.SchemaID = c.SchemaID
	m.IsActive = c.IsActive
	m.LastSyncAt = c.LastSyncAt
	m.LastSyncStatus = c.LastSyncStatus
	m.LastSyncError = c.LastSyncError
}

// SyncJobModel is the GORM model for sync.SyncJob. Jobs are an append-only
// audit log: rows are inserted at trigger time, updated once on the terminal
// transition, and never deleted.
type SyncJobModel struct {
	TenantModel
	ConnectionID     uuid.UUID            `gorm:"type:uuid;not null;index"`
	Kind             syncdomain.JobKind   `gorm:"type:varchar(20);not null"`
	Status           syncdomain.JobStatus `gorm:"type:varchar(20);not null;index"`
	PeriodStart      time.Time            `gorm:"not null"`
	PeriodEnd        time.Time            `gorm:"not null"`
	StartedAt        time.Time            `gorm:"not null;index"`
	CompletedAt      *time.Time           ``
	RecordsProcessed int                  `gorm:"not null;default:0"`
	RecordsCreated   int                  `gorm:"not null;default:0"`
	Errors           datatypes.JSON       `gorm:"type:jsonb"`
}

// TableName specifies the table name
func (SyncJobModel) TableName() string {
	return "sync_jobs"
}

// ToDomain converts the model to a domain entity
func (m *SyncJobModel) ToDomain() *syncdomain.SyncJob {
	var errs []string
	if len(m.Errors) > 0 {
		// A malformed errors column should not make the job unreadable
		_ = json.Unmarshal(m.Errors, &errs)
	}

	return &syncdomain.SyncJob{
		TenantEntity:     m.ToDomainTenantEntity(),
		ConnectionID:     m.ConnectionID,
		Kind:             m.Kind,
		Status:           m.Status,
		PeriodStart:      m.PeriodStart,
		PeriodEnd:        m.PeriodEnd,
		StartedAt:        m.StartedAt,
		CompletedAt:      m.CompletedAt,
		RecordsProcessed: m.RecordsProcessed,
		RecordsCreated:   m.RecordsCreated,
		Errors:           errs,
	}
}

// FromDomain populates the model from a domain entity
func (m *SyncJobModel) FromDomain(j *syncdomain.SyncJob) error {
	m.FromDomainTenantEntity(j.TenantEntity)
	m.ConnectionID = j.ConnectionID
	m.Kind = j.Kind
	m.Status = j.Status
	m.PeriodStart = j.PeriodStart
	m.PeriodEnd = j.PeriodEnd
	m.StartedAt = j.StartedAt
	m.CompletedAt = j.CompletedAt
	m.RecordsProcessed = j.RecordsProcessed
	m.RecordsCreated = j.RecordsCreated

	errs := j.Errors
	if errs == nil {
		errs = []string{}
	}
	raw, err := json.Marshal(errs)
	if err != nil {
		return err
	}
	m.Errors = datatypes.JSON(raw)
	return nil
}
