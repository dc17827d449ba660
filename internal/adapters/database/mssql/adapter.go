// Package mssql implements SQL Server database adapter.
package mssql

import (
	"context"

	_ "github.com/microsoft/go-mssqldb" // SQL Server driver, registered as "sqlserver"
	"github.com/satishbabariya/sqladmin/internal/adapters/database"
	"github.com/satishbabariya/sqladmin/internal/adapters/database/base"
	"github.com/satishbabariya/sqladmin/internal/core/query/compiler"
	"github.com/satishbabariya/sqladmin/internal/core/query/domain"
)

var (
	outputInserted = compiler.Returning{Output: "OUTPUT INSERTED.*"}
	outputDeleted  = compiler.Returning{Output: "OUTPUT DELETED.*"}
)

// SQLServerAdapter implements the database.Adapter interface for SQL Server.
// Parameters are bound by name as @param1, @param2, ...
type SQLServerAdapter struct {
	*base.Core
}

// NewSQLServerAdapter creates a new SQL Server adapter.
func NewSQLServerAdapter(config database.Config) (*SQLServerAdapter, error) {
	return &SQLServerAdapter{
		Core: base.New(compiler.SQLServer, config, "sqlserver", config.URL),
	}, nil
}

// Create inserts data and returns the inserted row.
func (a *SQLServerAdapter) Create(ctx context.Context, table string, data domain.Record) (domain.Row, error) {
	if _, err := a.Pool("create"); err != nil {
		return nil, err
	}
	q, err := compiler.Insert(a.CompilerDialect(), table, data, outputInserted)
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

// Update applies data to matching rows and returns their new state.
func (a *SQLServerAdapter) Update(ctx context.Context, table string, data domain.Record, filter domain.Filter) (*domain.MutationResult, error) {
	if _, err := a.Pool("update"); err != nil {
		return nil, err
	}
	q, err := compiler.Update(a.CompilerDialect(), table, data, filter, outputInserted)
	if err != nil {
		return nil, err
	}
	return a.Returned(ctx, "update", q)
}

// Delete removes matching rows and returns them.
func (a *SQLServerAdapter) Delete(ctx context.Context, table string, filter domain.Filter) (*domain.MutationResult, error) {
	return a.Returned(ctx, "delete", compiler.Delete(a.CompilerDialect(), table, filter, outputDeleted))
}

// Capabilities returns what SQL Server supports. CREATE TABLE is made
// idempotent with an OBJECT_ID pre-check rather than IF NOT EXISTS.
func (a *SQLServerAdapter) Capabilities() database.Capability {
	return database.CapDropColumn | database.CapReturning | database.CapOffset | database.CapNamedParams
}

// Ensure SQLServerAdapter implements Adapter interface.
var _ database.Adapter = (*SQLServerAdapter)(nil)
