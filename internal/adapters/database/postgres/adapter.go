// Package postgres implements PostgreSQL database adapter.
package postgres

import (
	"context"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver, registered as "pgx"
	_ "github.com/lib/pq"              // PostgreSQL driver
	"github.com/satishbabariya/sqladmin/internal/adapters/database"
	"github.com/satishbabariya/sqladmin/internal/adapters/database/base"
	"github.com/satishbabariya/sqladmin/internal/core/query/compiler"
	"github.com/satishbabariya/sqladmin/internal/core/query/domain"
)

// returning is appended to every mutation so rows come back in one round trip.
var returning = compiler.Returning{Suffix: "RETURNING *"}

// PostgresAdapter implements the database.Adapter interface for PostgreSQL.
type PostgresAdapter struct {
	*base.Core
}

// NewPostgresAdapter creates a new PostgreSQL adapter.
// Config.Driver selects "postgres" (lib/pq, default) or "pgx".
func NewPostgresAdapter(config database.Config) (*PostgresAdapter, error) {
	driver := config.Driver
	switch driver {
	case "":
		driver = "postgres"
	case "postgres", "pgx":
	default:
		return nil, fmt.Errorf("unsupported postgres driver: %s", driver)
	}

	return &PostgresAdapter{
		Core: base.New(compiler.Postgres, config, driver, config.URL),
	}, nil
}

// Create inserts data and returns the inserted row.
func (a *PostgresAdapter) Create(ctx context.Context, table string, data domain.Record) (domain.Row, error) {
	if _, err := a.Pool("create"); err != nil {
		return nil, err
	}
	q, err := compiler.Insert(a.CompilerDialect(), table, data, returning)
	if err != nil {
		return nil, err
	}

	rows, err := a.Query(ctx, "create", q)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return domain.Row{}, nil
	}
	return rows[0], nil
}

// Update applies data to matching rows and returns them.
func (a *PostgresAdapter) Update(ctx context.Context, table string, data domain.Record, filter domain.Filter) (*domain.MutationResult, error) {
	if _, err := a.Pool("update"); err != nil {
		return nil, err
	}
	q, err := compiler.Update(a.CompilerDialect(), table, data, filter, returning)
	if err != nil {
		return nil, err
	}
	return a.Returned(ctx, "update", q)
}

// Delete removes matching rows and returns them.
func (a *PostgresAdapter) Delete(ctx context.Context, table string, filter domain.Filter) (*domain.MutationResult, error) {
	return a.Returned(ctx, "delete", compiler.Delete(a.CompilerDialect(), table, filter, returning))
}

// Capabilities returns what PostgreSQL supports.
func (a *PostgresAdapter) Capabilities() database.Capability {
	return database.CapDropColumn | database.CapReturning | database.CapCreateIfNotExists | database.CapOffset
}

// Ensure PostgresAdapter implements Adapter interface.
var _ database.Adapter = (*PostgresAdapter)(nil)
