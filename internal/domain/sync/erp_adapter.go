package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// ErpAdapter Errors
// ---------------------------------------------------------------------------

var (
	// Configuration errors - the caller supplied something we cannot work with.
	// These surface before a sync job is ever created.
	ErrUnknownErpType     = errors.New("sync: unknown ERP type")
	ErrIncompleteConfig   = errors.New("sync: incomplete connection configuration")
	ErrConnectionInactive = errors.New("sync: connection is deactivated")

	// Validation errors
	ErrInvalidPeriod = errors.New("sync: period start must not be after period end")

	// Connection errors - the source ERP could not be reached or queried
	ErrErpUnreachable = errors.New("sync: ERP connection failed")
	ErrErpQueryFailed = errors.New("sync: ERP query failed")

	// Job errors
	ErrJobAlreadyFinal = errors.New("sync: job already in a terminal state")
)

// IsConfigurationError reports whether err belongs to the configuration error
// class (unknown ERP type or incomplete config). Handlers map these to 400
// without creating a sync job.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrUnknownErpType) ||
		errors.Is(err, ErrIncompleteConfig) ||
		errors.Is(err, ErrConnectionInactive)
}

// IsValidationError reports whether err belongs to the validation error class.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidPeriod)
}

// ---------------------------------------------------------------------------
// ErpType
// ---------------------------------------------------------------------------

// ErpType represents the type of dealership ERP back-end
type ErpType string

const (
	// ErpTypeCDKDrive represents CDK Drive DMS deployments (Postgres-backed)
	ErpTypeCDKDrive ErpType = "CDK_DRIVE"
	// ErpTypeReynoldsERA represents Reynolds & Reynolds ERA deployments (MySQL-backed)
	ErpTypeReynoldsERA ErpType = "REYNOLDS_ERA"
)

// IsValid returns true if the ERP type is valid
func (t ErpType) IsValid() bool {
	switch t {
	case ErpTypeCDKDrive, ErpTypeReynoldsERA:
		return true
	default:
		return false
	}
}

// String returns the string representation of ErpType
func (t ErpType) String() string {
	return string(t)
}

// DisplayName returns a human-readable name for the ERP type
func (t ErpType) DisplayName() string {
	switch t {
	case ErpTypeCDKDrive:
		return "CDK Drive"
	case ErpTypeReynoldsERA:
		return "Reynolds & Reynolds ERA"
	default:
		return string(t)
	}
}

// ---------------------------------------------------------------------------
// ConnectionConfig
// ---------------------------------------------------------------------------

// ConnectionConfig carries the decrypted parameters an adapter needs to open
// a connection to a tenant's ERP database. It only ever lives in memory;
// the persisted TenantConnection stores the password as ciphertext.
type ConnectionConfig struct {
	// Server is the ERP database address (host or host:port)
	Server string
	// Database is the ERP database name
	Database string
	// Username is the ERP database user
	Username string
	// Password is the decrypted ERP database password
	Password string
	// Schema identifies the tenant's column-naming variant
	Schema string
}

// Validate checks that every required connection parameter is present
func (c *ConnectionConfig) Validate() error {
	missing := ""
	switch {
	case c.Server == "":
		missing = "server"
	case c.Database == "":
		missing = "database"
	case c.Username == "":
		missing = "username"
	case c.Password == "":
		missing = "password"
	case c.Schema == "":
		missing = "schema"
	}
	if missing != "" {
		return fmt.Errorf("%w: missing %s", ErrIncompleteConfig, missing)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Domain Records
// ---------------------------------------------------------------------------

// DepartmentFinancialRecord is a schema-agnostic department financial row as
// pulled from a source ERP. Adapters translate physical column names into
// these logical fields so the orchestrator never sees vendor schemas.
type DepartmentFinancialRecord struct {
	// Department is the dealership department key (e.g. "Service", "Parts")
	Department string
	// GrossSales is the department's gross sales for the period
	GrossSales decimal.Decimal
	// Discounts is the total discounts granted for the period
	Discounts decimal.Decimal
	// CostOfGoodsSold is the department's COGS for the period
	CostOfGoodsSold decimal.Decimal
	// UnitsSold is the number of units sold in the period
	UnitsSold int
}

// ExpenseAllocationRecord is a schema-agnostic expense row pulled from a source ERP
type ExpenseAllocationRecord struct {
	// Category is the expense category (e.g. "Advertising", "Payroll")
	Category string
	// Department is the department the expense is allocated to (empty = dealership-wide)
	Department string
	// Amount is the expense amount for the period
	Amount decimal.Decimal
	// AllocationMethod tags how the amount was apportioned (e.g. "direct", "headcount")
	AllocationMethod string
}

// OperationalMetricRecord is a schema-agnostic operational KPI pulled from a source ERP
type OperationalMetricRecord struct {
	// Name is the metric name (e.g. "repair_orders_closed")
	Name string
	// Category groups related metrics (e.g. "service", "sales")
	Category string
	// Value is the metric value
	Value decimal.Decimal
	// Unit is the measurement unit (e.g. "count", "hours")
	Unit string
}

// FullReport aggregates everything an adapter can pull for one period
type FullReport struct {
	PeriodStart          time.Time
	PeriodEnd            time.Time
	DepartmentFinancials []DepartmentFinancialRecord
	ExpenseAllocations   []ExpenseAllocationRecord
	OperationalMetrics   []OperationalMetricRecord
}

// ---------------------------------------------------------------------------
// ErpAdapter Port Interface
// ---------------------------------------------------------------------------

// ErpAdapter defines the port interface for dealership ERP back-ends.
// This interface follows the Ports & Adapters pattern - it's defined in the
// domain layer, and concrete implementations (CDK Drive, Reynolds ERA) live
// in the infrastructure layer.
//
// An adapter wraps one live connection to one tenant's ERP database. It is a
// scoped resource: callers must Close it on every exit path. Query methods
// take an inclusive date range [start, end]; adapters translate that into the
// half-open interval [start, end+1d) when building queries.
type ErpAdapter interface {
	// ErpType returns the ERP type this adapter handles
	ErpType() ErpType

	// TestConnection verifies the underlying connection is usable
	TestConnection(ctx context.Context) error

	// GetDepartmentFinancials pulls department financial rows for the period
	GetDepartmentFinancials(ctx context.Context, start, end time.Time) ([]DepartmentFinancialRecord, error)

	// GetExpenseAllocations pulls expense allocation rows for the period
	GetExpenseAllocations(ctx context.Context, start, end time.Time) ([]ExpenseAllocationRecord, error)

	// GetOperationalMetrics pulls operational metric rows for the period
	GetOperationalMetrics(ctx context.Context, start, end time.Time) ([]OperationalMetricRecord, error)

	// GetFullReport pulls all three record kinds in one call
	GetFullReport(ctx context.Context, start, end time.Time) (*FullReport, error)

	// Close releases the underlying connection
	Close() error
}

// AdapterFactory creates ready-to-use adapters for supported ERP types
type AdapterFactory interface {
	// SupportedTypes enumerates the ERP variants this factory can construct
	SupportedTypes() []ErpType

	// GetAdapter opens a live connection and returns a ready-to-use adapter.
	// Fails with ErrUnknownErpType for unrecognized types and
	// ErrIncompleteConfig when the config is missing required fields.
	GetAdapter(ctx context.Context, erpType ErpType, config ConnectionConfig) (ErpAdapter, error)
}

// CredentialCipher encrypts and decrypts ERP connection secrets. Implemented
// in the infrastructure layer, keyed by a process-wide secret.
type CredentialCipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}
