// Package sqlite implements SQLite database adapter.
package sqlite

import (
	"context"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/satishbabariya/sqladmin/internal/adapters/database"
	"github.com/satishbabariya/sqladmin/internal/adapters/database/base"
	"github.com/satishbabariya/sqladmin/internal/core/database/pool"
	"github.com/satishbabariya/sqladmin/internal/core/query/compiler"
	"github.com/satishbabariya/sqladmin/internal/core/query/domain"
	"github.com/satishbabariya/sqladmin/internal/core/query/mapper"
)

// SQLiteAdapter implements the database.Adapter interface for SQLite.
type SQLiteAdapter struct {
	*base.Core
}

// NewSQLiteAdapter creates a new SQLite adapter.
// The URL is a file path or ":memory:".
func NewSQLiteAdapter(config database.Config) (*SQLiteAdapter, error) {
	core := base.New(compiler.SQLite, config, "sqlite3", config.URL)

	// SQLite works on a single persistent handle: one connection that is
	// never recycled, so an in-memory database survives between calls.
	core.SetPoolConfig(pool.SingleConnConfig())

	core.SetSetup(func(ctx context.Context, p *pool.Pool) error {
		// Enable foreign keys (disabled by default in SQLite)
		if _, err := p.DB().ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			return fmt.Errorf("failed to enable foreign keys: %w", err)
		}
		return nil
	})

	return &SQLiteAdapter{Core: core}, nil
}

// Create inserts data and returns it with the driver's last insert id.
func (a *SQLiteAdapter) Create(ctx context.Context, table string, data domain.Record) (domain.Row, error) {
	if _, err := a.Pool("create"); err != nil {
		return nil, err
	}
	q, err := compiler.Insert(a.CompilerDialect(), table, data, compiler.Returning{})
	if err != nil {
		return nil, err
	}

	res, err := a.Exec(ctx, "create", q)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, a.Fail("create", q.Query, err)
	}
	return mapper.Merge(data, a.Config().PK(), id), nil
}

// Update applies data to matching rows and reports the change count.
func (a *SQLiteAdapter) Update(ctx context.Context, table string, data domain.Record, filter domain.Filter) (*domain.MutationResult, error) {
	if _, err := a.Pool("update"); err != nil {
		return nil, err
	}
	q, err := compiler.Update(a.CompilerDialect(), table, data, filter, compiler.Returning{})
	if err != nil {
		return nil, err
	}
	return a.Affected(ctx, "update", q)
}

// Delete removes matching rows and reports the change count.
func (a *SQLiteAdapter) Delete(ctx context.Context, table string, filter domain.Filter) (*domain.MutationResult, error) {
	return a.Affected(ctx, "delete", compiler.Delete(a.CompilerDialect(), table, filter, compiler.Returning{}))
}

// DropColumn always fails: this adapter does not rebuild tables to drop columns.
func (a *SQLiteAdapter) DropColumn(ctx context.Context, table, column string) error {
	return database.Unsupported(a.Dialect(), "dropColumn")
}

// Capabilities returns what SQLite supports.
func (a *SQLiteAdapter) Capabilities() database.Capability {
	return database.CapCreateIfNotExists | database.CapOffset | database.CapLastInsertID
}

// Ensure SQLiteAdapter implements Adapter interface.
var _ database.Adapter = (*SQLiteAdapter)(nil)
