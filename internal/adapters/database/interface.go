// Package database defines the contract every dialect adapter satisfies.
//
// Table names, column names, column types, defaults, ORDER BY expressions,
// join clauses and projections are caller-trusted: they are written into SQL
// verbatim. Only values are bound as parameters.
package database

import (
	"context"

	"github.com/hashicorp/go-version"
	"github.com/satishbabariya/sqladmin/internal/core/query/domain"
)

// Adapter defines the database adapter interface.
type Adapter interface {
	// Initialize establishes the connection pool.
	Initialize(ctx context.Context) error

	// Find returns the rows of table matching the filter.
	Find(ctx context.Context, table string, filter domain.Filter, opts domain.Options) ([]domain.Row, error)

	// Create inserts data and returns the inserted row, or data plus its
	// generated primary key on dialects that cannot return rows.
	Create(ctx context.Context, table string, data domain.Record) (domain.Row, error)

	// Update applies data to every row matching the filter.
	Update(ctx context.Context, table string, data domain.Record, filter domain.Filter) (*domain.MutationResult, error)

	// Delete removes every row matching the filter.
	Delete(ctx context.Context, table string, filter domain.Filter) (*domain.MutationResult, error)

	// Execute runs a raw statement.
	Execute(ctx context.Context, query string, params ...interface{}) (*domain.ExecResult, error)

	// CreateTable creates a table.
	CreateTable(ctx context.Context, name string, columns []domain.Column) error

	// DeleteTable drops a table.
	DeleteTable(ctx context.Context, name string) error

	// AddColumn adds a column to a table.
	AddColumn(ctx context.Context, table, column, typ string) error

	// DropColumn removes a column from a table.
	DropColumn(ctx context.Context, table, column string) error

	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// Shutdown releases the pool. Calling it more than once is safe.
	Shutdown(ctx context.Context) error

	// Dialect returns the SQL dialect.
	Dialect() domain.SQLDialect

	// Capabilities returns what the dialect supports.
	Capabilities() Capability
}

// VersionReporter is implemented by adapters that can report the server version.
type VersionReporter interface {
	ServerVersion(ctx context.Context) (*version.Version, error)
}

// Config holds database connection configuration.
type Config struct {
	Provider string
	URL      string
	// Driver overrides the database/sql driver name, e.g. "pgx" instead of "postgres".
	Driver string
	// PrimaryKey names the generated key column. Defaults to "id".
	PrimaryKey          string
	MaxConnections      int
	MaxIdleTime         int // seconds
	ConnectTimeout      int // seconds
	HealthCheckInterval int // seconds
}

// DefaultPrimaryKey is used when Config.PrimaryKey is empty.
const DefaultPrimaryKey = "id"

// PK returns the configured primary key column.
func (c Config) PK() string {
	if c.PrimaryKey == "" {
		return DefaultPrimaryKey
	}
	return c.PrimaryKey
}
