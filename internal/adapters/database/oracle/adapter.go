// Package oracle implements Oracle database adapter.
package oracle

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/sijms/go-ora/v2" // Oracle driver, registered as "oracle"
	"github.com/satishbabariya/sqladmin/internal/adapters/database"
	"github.com/satishbabariya/sqladmin/internal/adapters/database/base"
	"github.com/satishbabariya/sqladmin/internal/core/database/pool"
	"github.com/satishbabariya/sqladmin/internal/core/query/compiler"
	"github.com/satishbabariya/sqladmin/internal/core/query/domain"
	"github.com/satishbabariya/sqladmin/internal/core/query/mapper"
)

// OutParam is the bind name of the generated key in an insert.
const OutParam = "out"

// OracleAdapter implements the database.Adapter interface for Oracle.
// Parameters are bound by name as :param1, :param2, ...
type OracleAdapter struct {
	*base.Core
}

// ExecOptions controls raw execution.
type ExecOptions struct {
	// AutoCommit commits the statement. When false the statement runs in a
	// transaction that is rolled back before the connection is released.
	AutoCommit bool
}

// NewOracleAdapter creates a new Oracle adapter.
func NewOracleAdapter(config database.Config) (*OracleAdapter, error) {
	return &OracleAdapter{
		Core: base.New(compiler.Oracle, config, "oracle", config.URL),
	}, nil
}

// Create inserts data and returns it with the primary key read back through
// a RETURNING ... INTO output bind.
func (a *OracleAdapter) Create(ctx context.Context, table string, data domain.Record) (domain.Row, error) {
	if _, err := a.Pool("create"); err != nil {
		return nil, err
	}
	pk := a.Config().PK()
	ret := compiler.Returning{Suffix: fmt.Sprintf("RETURNING %s INTO :%s", pk, OutParam)}

	q, err := compiler.Insert(a.CompilerDialect(), table, data, ret)
	if err != nil {
		return nil, err
	}

	var id int64
	q.Args = append(q.Args, sql.Named(OutParam, sql.Out{Dest: &id}))

	if _, err := a.Exec(ctx, "create", q); err != nil {
		return nil, err
	}
	return mapper.Merge(data, pk, id), nil
}

// Update applies data to matching rows inside a committed transaction.
func (a *OracleAdapter) Update(ctx context.Context, table string, data domain.Record, filter domain.Filter) (*domain.MutationResult, error) {
	if _, err := a.Pool("update"); err != nil {
		return nil, err
	}
	q, err := compiler.Update(a.CompilerDialect(), table, data, filter, compiler.Returning{})
	if err != nil {
		return nil, err
	}
	return a.commit(ctx, "update", q)
}

// Delete removes matching rows inside a committed transaction.
func (a *OracleAdapter) Delete(ctx context.Context, table string, filter domain.Filter) (*domain.MutationResult, error) {
	return a.commit(ctx, "delete", compiler.Delete(a.CompilerDialect(), table, filter, compiler.Returning{}))
}

func (a *OracleAdapter) commit(ctx context.Context, op string, q domain.SQL) (*domain.MutationResult, error) {
	var result *domain.MutationResult

	err := a.WithConn(ctx, op, func(conn *pool.Conn) error {
		tx, err := conn.BeginTx(ctx, nil)
		if err != nil {
			return a.Fail(op, q.Query, err)
		}
		defer tx.Rollback()

		res, err := tx.ExecContext(ctx, q.Query, q.Args...)
		if err != nil {
			return a.Fail(op, q.Query, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return a.Fail(op, q.Query, err)
		}
		if err := tx.Commit(); err != nil {
			return a.Fail(op, q.Query, err)
		}

		result = &domain.MutationResult{RowsAffected: n}
		return nil
	})

	return result, err
}

// ExecuteWithOptions runs a raw statement. See ExecOptions for AutoCommit.
func (a *OracleAdapter) ExecuteWithOptions(ctx context.Context, query string, opts ExecOptions, params ...interface{}) (*domain.ExecResult, error) {
	if opts.AutoCommit {
		return a.Execute(ctx, query, params...)
	}

	var out *domain.ExecResult
	err := a.WithConn(ctx, "execute", func(conn *pool.Conn) error {
		tx, err := conn.BeginTx(ctx, nil)
		if err != nil {
			return a.Fail("execute", query, err)
		}
		// never committed
		defer tx.Rollback()

		out, err = a.ExecuteTx(ctx, tx, query, params)
		return err
	})
	return out, err
}

// ExecuteTx runs a raw statement inside tx.
func (a *OracleAdapter) ExecuteTx(ctx context.Context, tx *sql.Tx, query string, params []interface{}) (*domain.ExecResult, error) {
	args := a.BindRaw(params)

	if base.ReturnsRows(query) {
		rows, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, a.Fail("execute", query, err)
		}
		defer rows.Close()

		cols, result, err := mapper.ScanRows(rows)
		if err != nil {
			return nil, a.Fail("execute", query, err)
		}
		return &domain.ExecResult{Columns: cols, Rows: result, RowsAffected: int64(len(result))}, nil
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, a.Fail("execute", query, err)
	}
	out := &domain.ExecResult{}
	if n, err := res.RowsAffected(); err == nil {
		out.RowsAffected = n
	}
	return out, nil
}

// Capabilities returns what Oracle supports.
func (a *OracleAdapter) Capabilities() database.Capability {
	return database.CapDropColumn | database.CapOffset | database.CapNamedParams
}

// Ensure OracleAdapter implements Adapter interface.
var _ database.Adapter = (*OracleAdapter)(nil)
