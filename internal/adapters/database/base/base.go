// Package base holds the lifecycle and execution plumbing shared by the
// dialect adapters: pool ownership, scoped connection acquisition, statement
// logging and error tagging.
package base

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/hashicorp/go-version"
	"github.com/satishbabariya/sqladmin/internal/adapters/database"
	"github.com/satishbabariya/sqladmin/internal/core/database/pool"
	"github.com/satishbabariya/sqladmin/internal/core/query/compiler"
	"github.com/satishbabariya/sqladmin/internal/core/query/domain"
	"github.com/satishbabariya/sqladmin/internal/core/query/mapper"
	"github.com/satishbabariya/sqladmin/internal/debug"
)

// Opener creates the pool for a driver and data source.
type Opener func(driverName, dataSourceName string, config pool.Config) (*pool.Pool, error)

// SetupFunc runs once on a freshly opened pool, before Initialize returns.
type SetupFunc func(ctx context.Context, p *pool.Pool) error

// Core owns one pool and implements the parts of the adapter contract that
// do not depend on the dialect.
type Core struct {
	// Opener defaults to pool.New. Tests replace it to inject a handle.
	Opener Opener

	dialect    compiler.Dialect
	config     database.Config
	driverName string
	dsn        string
	poolConfig pool.Config
	setup      SetupFunc

	mu     sync.RWMutex
	pool   *pool.Pool
	closed bool
}

// New creates a core for the dialect. No connection is made until Initialize.
func New(d compiler.Dialect, cfg database.Config, driverName, dsn string) *Core {
	return &Core{
		Opener:     pool.New,
		dialect:    d,
		config:     cfg,
		driverName: driverName,
		dsn:        dsn,
		poolConfig: PoolConfig(cfg),
	}
}

// PoolConfig derives pool settings from adapter configuration.
func PoolConfig(cfg database.Config) pool.Config {
	pc := pool.DefaultConfig()
	if cfg.MaxConnections > 0 {
		pc.MaxOpenConns = cfg.MaxConnections
		pc.MaxIdleConns = cfg.MaxConnections / 2
		if pc.MaxIdleConns < 1 {
			pc.MaxIdleConns = 1
		}
	}
	if cfg.MaxIdleTime > 0 {
		pc.ConnMaxIdleTime = time.Duration(cfg.MaxIdleTime) * time.Second
	}
	pc.HealthCheckInterval = time.Duration(cfg.HealthCheckInterval) * time.Second
	return pc
}

// SetPoolConfig overrides the derived pool settings.
func (c *Core) SetPoolConfig(pc pool.Config) {
	c.poolConfig = pc
}

// SetSetup registers a hook run after the pool is opened.
func (c *Core) SetSetup(fn SetupFunc) {
	c.setup = fn
}

// CompilerDialect returns the compiler dialect.
func (c *Core) CompilerDialect() compiler.Dialect {
	return c.dialect
}

// Config returns the adapter configuration.
func (c *Core) Config() database.Config {
	return c.config
}

// Dialect returns the SQL dialect.
func (c *Core) Dialect() domain.SQLDialect {
	return c.dialect.Name
}

// Initialize opens the pool and verifies connectivity.
// Calling it again on a live adapter is a no-op.
func (c *Core) Initialize(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return fmt.Errorf("initialize: %w", database.ErrClosed)
	}
	if c.pool != nil {
		return nil
	}

	p, err := c.Opener(c.driverName, c.dsn, c.poolConfig)
	if err != nil {
		return fmt.Errorf("failed to open %s pool: %w", c.dialect.Name, err)
	}

	pingCtx := ctx
	if c.config.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, time.Duration(c.config.ConnectTimeout)*time.Second)
		defer cancel()
	}

	if err := p.DB().PingContext(pingCtx); err != nil {
		p.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if c.setup != nil {
		if err := c.setup(ctx, p); err != nil {
			p.Close()
			return err
		}
	}

	c.pool = p
	debug.Info("adapter initialized", "dialect", c.dialect.Name, "driver", c.driverName)
	return nil
}

// Shutdown closes the pool. The adapter is closed afterwards even if
// closing fails, and later calls return nil.
func (c *Core) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	p := c.pool
	c.pool = nil
	if p == nil {
		return nil
	}

	if err := p.Close(); err != nil {
		debug.Error("adapter shutdown failed", "dialect", c.dialect.Name, "error", err)
		return &database.ShutdownError{Dialect: c.dialect.Name, Err: err}
	}

	debug.Info("adapter shut down", "dialect", c.dialect.Name)
	return nil
}

// Pool returns the live pool or the lifecycle error explaining its absence.
func (c *Core) Pool(op string) (*pool.Pool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return nil, fmt.Errorf("%s: %w", op, database.ErrClosed)
	}
	if c.pool == nil {
		return nil, fmt.Errorf("%s: %w", op, database.ErrNotInitialized)
	}
	return c.pool, nil
}

// Stats returns pool statistics. The zero value is returned when no pool is open.
func (c *Core) Stats() pool.PoolStats {
	p, err := c.Pool("stats")
	if err != nil {
		return pool.PoolStats{}
	}
	return p.Stats()
}

// Ping checks the database connection.
func (c *Core) Ping(ctx context.Context) error {
	p, err := c.Pool("ping")
	if err != nil {
		return err
	}
	return p.HealthCheck(ctx)
}

var versionNumber = regexp.MustCompile(`\d+(\.\d+)+`)

// ParseServerVersion extracts the first dotted version number from a server
// banner such as "PostgreSQL 16.2 on x86_64-pc-linux-gnu".
func ParseServerVersion(banner string) (*version.Version, error) {
	raw := versionNumber.FindString(banner)
	if raw == "" {
		return nil, fmt.Errorf("no version number in %q", banner)
	}
	return version.NewVersion(raw)
}

// ServerVersion queries the server for its version.
func (c *Core) ServerVersion(ctx context.Context) (*version.Version, error) {
	if c.dialect.VersionQuery == "" {
		return nil, database.Unsupported(c.dialect.Name, "serverVersion")
	}

	rows, err := c.Query(ctx, "serverVersion", domain.SQL{Query: c.dialect.VersionQuery, Dialect: c.dialect.Name})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s serverVersion: no rows", c.dialect.Name)
	}

	for _, v := range rows[0] {
		return ParseServerVersion(fmt.Sprint(v))
	}
	return nil, fmt.Errorf("%s serverVersion: no columns", c.dialect.Name)
}

var _ database.VersionReporter = (*Core)(nil)

// WithConn checks a connection out for the duration of fn and releases it
// on every exit path.
func (c *Core) WithConn(ctx context.Context, op string, fn func(conn *pool.Conn) error) error {
	p, err := c.Pool(op)
	if err != nil {
		return err
	}

	conn, err := p.Acquire(ctx)
	if err != nil {
		return c.Fail(op, "", err)
	}
	defer conn.Release()

	return fn(conn)
}

// Fail tags a driver error with the operation and statement.
func (c *Core) Fail(op, query string, err error) error {
	debug.Debug("statement failed", "dialect", c.dialect.Name, "op", op, "error", err)
	return &database.QueryError{Dialect: c.dialect.Name, Op: op, Query: query, Err: err}
}

func (c *Core) log(op string, q domain.SQL) {
	debug.Debug("executing statement", "dialect", c.dialect.Name, "op", op, "query", q.Query, "args", len(q.Args))
}

// QueryConn runs a row-returning statement on conn.
func (c *Core) QueryConn(ctx context.Context, conn *pool.Conn, op string, q domain.SQL) ([]string, []domain.Row, error) {
	c.log(op, q)

	rows, err := conn.QueryContext(ctx, q.Query, q.Args...)
	if err != nil {
		return nil, nil, c.Fail(op, q.Query, err)
	}
	defer rows.Close()

	cols, result, err := mapper.ScanRows(rows)
	if err != nil {
		return nil, nil, c.Fail(op, q.Query, err)
	}
	return cols, result, nil
}

// ExecConn runs a statement that returns no rows on conn.
func (c *Core) ExecConn(ctx context.Context, conn *pool.Conn, op string, q domain.SQL) (sql.Result, error) {
	c.log(op, q)

	res, err := conn.ExecContext(ctx, q.Query, q.Args...)
	if err != nil {
		return nil, c.Fail(op, q.Query, err)
	}
	return res, nil
}

// Query acquires a connection, runs a row-returning statement and releases it.
func (c *Core) Query(ctx context.Context, op string, q domain.SQL) ([]domain.Row, error) {
	var rows []domain.Row
	err := c.WithConn(ctx, op, func(conn *pool.Conn) error {
		var err error
		_, rows, err = c.QueryConn(ctx, conn, op, q)
		return err
	})
	return rows, err
}

// Exec acquires a connection, runs a statement and releases it.
func (c *Core) Exec(ctx context.Context, op string, q domain.SQL) (sql.Result, error) {
	var res sql.Result
	err := c.WithConn(ctx, op, func(conn *pool.Conn) error {
		var err error
		res, err = c.ExecConn(ctx, conn, op, q)
		return err
	})
	return res, err
}

// Affected runs a statement and reports the driver's affected-row count.
func (c *Core) Affected(ctx context.Context, op string, q domain.SQL) (*domain.MutationResult, error) {
	res, err := c.Exec(ctx, op, q)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, c.Fail(op, q.Query, err)
	}
	return &domain.MutationResult{RowsAffected: n}, nil
}

// Returned runs a row-returning mutation and reports the rows it returned.
func (c *Core) Returned(ctx context.Context, op string, q domain.SQL) (*domain.MutationResult, error) {
	rows, err := c.Query(ctx, op, q)
	if err != nil {
		return nil, err
	}
	return &domain.MutationResult{Rows: rows, RowsAffected: int64(len(rows))}, nil
}

// DDL runs a schema statement.
func (c *Core) DDL(ctx context.Context, op, stmt string) error {
	_, err := c.Exec(ctx, op, domain.SQL{Query: stmt, Dialect: c.dialect.Name})
	return err
}

// Find runs a compiled select.
func (c *Core) Find(ctx context.Context, table string, f domain.Filter, opts domain.Options) ([]domain.Row, error) {
	return c.Query(ctx, "find", compiler.Select(c.dialect, table, f, opts))
}

// CreateTable compiles and runs a CREATE TABLE.
func (c *Core) CreateTable(ctx context.Context, name string, columns []domain.Column) error {
	if _, err := c.Pool("createTable"); err != nil {
		return err
	}
	ddl, err := compiler.CreateTable(c.dialect, name, columns)
	if err != nil {
		return err
	}
	return c.DDL(ctx, "createTable", ddl)
}

// DeleteTable runs a DROP TABLE.
func (c *Core) DeleteTable(ctx context.Context, name string) error {
	return c.DDL(ctx, "deleteTable", compiler.DropTable(c.dialect, name))
}

// AddColumn runs an ALTER TABLE ... ADD.
func (c *Core) AddColumn(ctx context.Context, table, column, typ string) error {
	return c.DDL(ctx, "addColumn", compiler.AddColumn(c.dialect, table, column, typ))
}

// DropColumn runs an ALTER TABLE ... DROP COLUMN. Dialects without the
// capability fail before touching the pool.
func (c *Core) DropColumn(ctx context.Context, table, column string) error {
	stmt, err := compiler.DropColumn(c.dialect, table, column)
	if err != nil {
		return database.Unsupported(c.dialect.Name, "dropColumn")
	}
	return c.DDL(ctx, "dropColumn", stmt)
}

var (
	readsRows     = regexp.MustCompile(`(?is)^\s*(SELECT|WITH|SHOW|PRAGMA|EXPLAIN|VALUES|DESCRIBE|DESC)\b`)
	returnsRows   = regexp.MustCompile(`(?is)\bRETURNING\b|\bOUTPUT\s+(INSERTED|DELETED)\b`)
	returningInto = regexp.MustCompile(`(?is)\bRETURNING\b.+\bINTO\b`)
)

// ReturnsRows guesses whether a raw statement produces a result set.
// RETURNING ... INTO writes to out binds instead, so it is executed.
func ReturnsRows(query string) bool {
	if readsRows.MatchString(query) {
		return true
	}
	return returnsRows.MatchString(query) && !returningInto.MatchString(query)
}

// BindRaw prepares raw parameters for the dialect. Named dialects receive
// plain values as param1, param2, ...; values that are already named or
// output binds pass through.
func (c *Core) BindRaw(params []interface{}) []interface{} {
	if !c.dialect.Named {
		return params
	}
	args := make([]interface{}, len(params))
	for i, p := range params {
		switch p.(type) {
		case sql.NamedArg, sql.Out:
			args[i] = p
		default:
			args[i] = sql.Named(compiler.ParamName(i+1), p)
		}
	}
	return args
}

// ExecuteConn runs a raw statement on conn.
func (c *Core) ExecuteConn(ctx context.Context, conn *pool.Conn, query string, params []interface{}) (*domain.ExecResult, error) {
	q := domain.SQL{Query: query, Args: c.BindRaw(params), Dialect: c.dialect.Name}

	if ReturnsRows(query) {
		cols, rows, err := c.QueryConn(ctx, conn, "execute", q)
		if err != nil {
			return nil, err
		}
		return &domain.ExecResult{Columns: cols, Rows: rows, RowsAffected: int64(len(rows))}, nil
	}

	res, err := c.ExecConn(ctx, conn, "execute", q)
	if err != nil {
		return nil, err
	}
	out := &domain.ExecResult{}
	if n, err := res.RowsAffected(); err == nil {
		out.RowsAffected = n
	}
	if id, err := res.LastInsertId(); err == nil {
		out.LastInsertID = id
	}
	return out, nil
}

// Execute acquires a connection and runs a raw statement.
func (c *Core) Execute(ctx context.Context, query string, params ...interface{}) (*domain.ExecResult, error) {
	var out *domain.ExecResult
	err := c.WithConn(ctx, "execute", func(conn *pool.Conn) error {
		var err error
		out, err = c.ExecuteConn(ctx, conn, query, params)
		return err
	})
	return out, err
}
