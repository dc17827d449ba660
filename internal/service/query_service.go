// Package service implements the query service.
package service

import (
	"context"
	"fmt"

	"github.com/satishbabariya/sqladmin/internal/adapters/database"
	"github.com/satishbabariya/sqladmin/internal/core/query/domain"
)

// QueryService wraps an adapter with option-based finders.
type QueryService struct {
	adapter database.Adapter
}

// NewQueryService creates a new query service.
func NewQueryService(adapter database.Adapter) *QueryService {
	return &QueryService{adapter: adapter}
}

// query collects what the options configure.
type query struct {
	filter domain.Filter
	opts   domain.Options
}

// QueryOption configures a find.
type QueryOption func(*query)

// WithWhere sets the filter.
func WithWhere(f domain.Filter) QueryOption {
	return func(q *query) {
		q.filter = f
	}
}

// WithSelect restricts the projected fields.
func WithSelect(fields ...string) QueryOption {
	return func(q *query) {
		q.opts.Fields = fields
	}
}

// WithOrderBy sets the ORDER BY expression.
func WithOrderBy(orderBy string) QueryOption {
	return func(q *query) {
		q.opts.OrderBy = orderBy
	}
}

// WithJoin sets the join clause.
func WithJoin(joins string) QueryOption {
	return func(q *query) {
		q.opts.Joins = joins
	}
}

// WithTake limits the number of rows.
func WithTake(n int) QueryOption {
	return func(q *query) {
		q.opts.Limit = n
	}
}

// WithSkip skips rows.
func WithSkip(n int) QueryOption {
	return func(q *query) {
		q.opts.Offset = n
	}
}

func build(opts []QueryOption) *query {
	q := &query{}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// NotFoundError is returned by the OrThrow finders when nothing matches.
type NotFoundError struct {
	Table     string
	Operation string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s on %s: no record found", e.Operation, e.Table)
}

// FindMany returns every matching row.
func (s *QueryService) FindMany(ctx context.Context, table string, opts ...QueryOption) ([]domain.Row, error) {
	q := build(opts)
	return s.adapter.Find(ctx, table, q.filter, q.opts)
}

// FindFirst returns the first matching row, or nil.
func (s *QueryService) FindFirst(ctx context.Context, table string, opts ...QueryOption) (domain.Row, error) {
	first := make([]QueryOption, 0, len(opts)+1)
	first = append(first, opts...)
	rows, err := s.FindMany(ctx, table, append(first, WithTake(1))...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// FindFirstOrThrow is FindFirst returning *NotFoundError when nothing matches.
func (s *QueryService) FindFirstOrThrow(ctx context.Context, table string, opts ...QueryOption) (domain.Row, error) {
	row, err := s.FindFirst(ctx, table, opts...)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, &NotFoundError{Table: table, Operation: "findFirst"}
	}
	return row, nil
}

// Count returns the number of matching rows. Only the filter and join
// options apply.
func (s *QueryService) Count(ctx context.Context, table string, opts ...QueryOption) (int64, error) {
	q := build(opts)
	countOpts := domain.Options{Joins: q.opts.Joins, Fields: []string{"COUNT(*) AS count"}}

	rows, err := s.adapter.Find(ctx, table, q.filter, countOpts)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return toInt64(firstValue(rows[0]))
}

// Create inserts a record.
func (s *QueryService) Create(ctx context.Context, table string, data domain.Record) (domain.Row, error) {
	return s.adapter.Create(ctx, table, data)
}

// Update updates every row matching the filter.
func (s *QueryService) Update(ctx context.Context, table string, data domain.Record, filter domain.Filter) (*domain.MutationResult, error) {
	return s.adapter.Update(ctx, table, data, filter)
}

// Delete removes every row matching the filter.
func (s *QueryService) Delete(ctx context.Context, table string, filter domain.Filter) (*domain.MutationResult, error) {
	return s.adapter.Delete(ctx, table, filter)
}

// Oracle upper-cases unquoted aliases, so the single column is read by position.
func firstValue(row domain.Row) interface{} {
	for _, v := range row {
		return v
	}
	return nil
}

func toInt64(v interface{}) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int32:
		return int64(n), nil
	case int:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case string:
		var out int64
		if _, err := fmt.Sscan(n, &out); err != nil {
			return 0, fmt.Errorf("unexpected count value %q: %w", n, err)
		}
		return out, nil
	case []byte:
		return toInt64(string(n))
	default:
		return 0, fmt.Errorf("unexpected count value of type %T", v)
	}
}
