// Package testutil provides sqlmock-backed pools for adapter tests.
package testutil

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/satishbabariya/sqladmin/internal/core/database/pool"
	"github.com/stretchr/testify/require"
)

// MockConfig keeps one idle connection so a released connection is reused
// rather than closed.
var MockConfig = pool.Config{MaxOpenConns: 2, MaxIdleConns: 1}

// NewMock opens a sqlmock handle that matches statements verbatim
// (whitespace-normalized).
func NewMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	return db, mock
}

// Opener returns a pool opener that ignores the driver and wraps db.
func Opener(db *sql.DB) func(string, string, pool.Config) (*pool.Pool, error) {
	return func(string, string, pool.Config) (*pool.Pool, error) {
		return pool.FromDB(db, MockConfig), nil
	}
}

// Rows builds a result set whose columns all report a VARCHAR type.
// Column metadata is required because the row mapper inspects column types.
func Rows(columns ...string) *sqlmock.Rows {
	defs := make([]*sqlmock.Column, len(columns))
	for i, name := range columns {
		defs[i] = sqlmock.NewColumn(name).OfType("VARCHAR", "")
	}
	return sqlmock.NewRowsWithColumnDefinition(defs...)
}
