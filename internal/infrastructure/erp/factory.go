package erp

import (
	"context"
	"fmt"
	"net/url"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	syncdomain "github.com/dealersync/backend/internal/domain/sync"
)

// SQLAdapterFactory builds live adapters for the supported ERP variants.
// CDK Drive installs expose a Postgres reporting replica; Reynolds ERA
// exposes MySQL. Both variants share the sqlAdapter implementation and
// differ only in the driver and DSN the factory opens.
type SQLAdapterFactory struct {
	resolver *ColumnResolver
	logger   *zap.Logger
}

// NewSQLAdapterFactory creates an adapter factory
func NewSQLAdapterFactory(resolver *ColumnResolver, logger *zap.Logger) *SQLAdapterFactory {
	return &SQLAdapterFactory{
		resolver: resolver,
		logger:   logger.Named("adapter-factory"),
	}
}

// SupportedTypes enumerates the ERP variants this factory can construct
func (f *SQLAdapterFactory) SupportedTypes() []syncdomain.ErpType {
	return []syncdomain.ErpType{
		syncdomain.ErpTypeCDKDrive,
		syncdomain.ErpTypeReynoldsERA,
	}
}

// GetAdapter opens a live connection and returns a ready-to-use adapter.
// The config's password is used only to build the DSN and is never logged.
func (f *SQLAdapterFactory) GetAdapter(ctx context.Context, erpType syncdomain.ErpType, config syncdomain.ConnectionConfig) (syncdomain.ErpAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var driverName, dsn string
	switch erpType {
	case syncdomain.ErpTypeCDKDrive:
		driverName = "postgres"
		dsn = postgresDSN(config)
	case syncdomain.ErpTypeReynoldsERA:
		driverName = "mysql"
		dsn = mysqlDSN(config)
	default:
		return nil, fmt.Errorf("%w: %q", syncdomain.ErrUnknownErpType, erpType)
	}

	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", syncdomain.ErrErpUnreachable, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", syncdomain.ErrErpUnreachable, err)
	}

	f.logger.Info("opened ERP connection",
		zap.String("erp_type", erpType.String()),
		zap.String("server", config.Server),
		zap.String("database", config.Database),
		zap.String("schema", config.Schema),
	)

	return newSQLAdapter(db, erpType, config.Schema, f.resolver, f.logger), nil
}

func postgresDSN(config syncdomain.ConnectionConfig) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(config.Username, config.Password),
		Host:   config.Server,
		Path:   config.Database,
	}
	q := u.Query()
	q.Set("sslmode", "prefer")
	u.RawQuery = q.Encode()
	return u.String()
}

func mysqlDSN(config syncdomain.ConnectionConfig) string {
	c := mysql.NewConfig()
	c.User = config.Username
	c.Passwd = config.Password
	c.Net = "tcp"
	c.Addr = config.Server
	c.DBName = config.Database
	c.ParseTime = true
	return c.FormatDSN()
}
