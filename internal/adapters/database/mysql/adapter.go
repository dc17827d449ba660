// Package mysql implements MySQL database adapter.
package mysql

import (
	"context"
	"fmt"

	gomysql "github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/satishbabariya/sqladmin/internal/adapters/database"
	"github.com/satishbabariya/sqladmin/internal/adapters/database/base"
	"github.com/satishbabariya/sqladmin/internal/core/query/compiler"
	"github.com/satishbabariya/sqladmin/internal/core/query/domain"
	"github.com/satishbabariya/sqladmin/internal/core/query/mapper"
)

// MySQLAdapter implements the database.Adapter interface for MySQL.
type MySQLAdapter struct {
	*base.Core
}

// NewMySQLAdapter creates a new MySQL adapter.
//
// The DSN is rewritten to report matched rather than changed rows, so an
// update that changes nothing still counts the rows it matched.
func NewMySQLAdapter(config database.Config) (*MySQLAdapter, error) {
	dsn, err := FoundRowsDSN(config.URL)
	if err != nil {
		return nil, err
	}

	return &MySQLAdapter{
		Core: base.New(compiler.MySQL, config, "mysql", dsn),
	}, nil
}

// FoundRowsDSN parses a go-sql-driver DSN and enables CLIENT_FOUND_ROWS.
func FoundRowsDSN(dsn string) (string, error) {
	cfg, err := gomysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid mysql dsn: %w", err)
	}
	cfg.ClientFoundRows = true
	return cfg.FormatDSN(), nil
}

// Create inserts data and returns it with the generated primary key.
func (a *MySQLAdapter) Create(ctx context.Context, table string, data domain.Record) (domain.Row, error) {
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

// Update applies data to matching rows and reports how many matched.
func (a *MySQLAdapter) Update(ctx context.Context, table string, data domain.Record, filter domain.Filter) (*domain.MutationResult, error) {
	if _, err := a.Pool("update"); err != nil {
		return nil, err
	}
	q, err := compiler.Update(a.CompilerDialect(), table, data, filter, compiler.Returning{})
	if err != nil {
		return nil, err
	}
	return a.Affected(ctx, "update", q)
}

// Delete removes matching rows and reports how many were removed.
func (a *MySQLAdapter) Delete(ctx context.Context, table string, filter domain.Filter) (*domain.MutationResult, error) {
	return a.Affected(ctx, "delete", compiler.Delete(a.CompilerDialect(), table, filter, compiler.Returning{}))
}

// Capabilities returns what MySQL supports.
func (a *MySQLAdapter) Capabilities() database.Capability {
	return database.CapDropColumn | database.CapCreateIfNotExists | database.CapOffset | database.CapLastInsertID
}

// Ensure MySQLAdapter implements Adapter interface.
var _ database.Adapter = (*MySQLAdapter)(nil)
