// Package container provides dependency injection.
package container

import (
	"context"
	"fmt"
	"strings"

	"github.com/satishbabariya/sqladmin/internal/adapters/database"
	"github.com/satishbabariya/sqladmin/internal/adapters/database/mssql"
	"github.com/satishbabariya/sqladmin/internal/adapters/database/mysql"
	"github.com/satishbabariya/sqladmin/internal/adapters/database/oracle"
	"github.com/satishbabariya/sqladmin/internal/adapters/database/postgres"
	"github.com/satishbabariya/sqladmin/internal/adapters/database/sqlite"
	"github.com/satishbabariya/sqladmin/internal/config"
	"github.com/satishbabariya/sqladmin/internal/service"
)

// Container holds all application dependencies.
type Container struct {
	config *config.Config

	dbAdapter    database.Adapter
	queryService *service.QueryService
}

// NewContainer creates a new dependency injection container. The adapter is
// built but not connected; call Connect before issuing queries.
func NewContainer(cfg *config.Config) (*Container, error) {
	adapter, err := NewAdapter(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create database adapter: %w", err)
	}
	return WithAdapter(cfg, adapter), nil
}

// WithAdapter builds a container around an existing adapter.
func WithAdapter(cfg *config.Config, adapter database.Adapter) *Container {
	return &Container{
		config:       cfg,
		dbAdapter:    adapter,
		queryService: service.NewQueryService(adapter),
	}
}

// Config returns the configuration the container was built from.
func (c *Container) Config() *config.Config {
	return c.config
}

// Adapter returns the database adapter.
func (c *Container) Adapter() database.Adapter {
	return c.dbAdapter
}

// QueryService returns the query service.
func (c *Container) QueryService() *service.QueryService {
	return c.queryService
}

// Connect initializes the database adapter.
func (c *Container) Connect(ctx context.Context) error {
	return c.dbAdapter.Initialize(ctx)
}

// Close cleans up resources.
func (c *Container) Close(ctx context.Context) error {
	if c.dbAdapter != nil {
		return c.dbAdapter.Shutdown(ctx)
	}
	return nil
}

// AdapterConfig converts the configuration into adapter settings.
func AdapterConfig(cfg config.DatabaseConfig) database.Config {
	return database.Config{
		Provider:            cfg.Provider,
		URL:                 cfg.URL,
		Driver:              cfg.Driver,
		PrimaryKey:          cfg.PrimaryKey,
		MaxConnections:      cfg.MaxConnections,
		MaxIdleTime:         cfg.MaxIdleTime,
		ConnectTimeout:      cfg.ConnectTimeout,
		HealthCheckInterval: cfg.HealthCheckInterval,
	}
}

// NewAdapter creates the appropriate database adapter based on provider.
func NewAdapter(cfg config.DatabaseConfig) (database.Adapter, error) {
	dbConfig := AdapterConfig(cfg)

	var adapter database.Adapter
	var err error

	switch strings.ToLower(cfg.Provider) {
	case "postgresql", "postgres":
		adapter, err = postgres.NewPostgresAdapter(dbConfig)
	case "mysql", "mariadb":
		adapter, err = mysql.NewMySQLAdapter(dbConfig)
	case "sqlserver", "mssql":
		adapter, err = mssql.NewSQLServerAdapter(dbConfig)
	case "oracle":
		adapter, err = oracle.NewOracleAdapter(dbConfig)
	case "sqlite", "sqlite3":
		adapter, err = sqlite.NewSQLiteAdapter(dbConfig)
	case "":
		return nil, fmt.Errorf("no database provider configured")
	default:
		return nil, fmt.Errorf("unsupported database provider: %s", cfg.Provider)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create adapter: %w", err)
	}

	return adapter, nil
}
