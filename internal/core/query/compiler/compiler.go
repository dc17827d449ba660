// Package compiler translates filters and options into dialect-specific SQL.
//
// Values are always bound through a Binder. Table names, column names, ORDER BY
// expressions, join clauses, projections and column types are caller-trusted and
// written into the statement verbatim.
package compiler

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/satishbabariya/sqladmin/internal/core/query/domain"
)

// ErrUnsupported is returned for statements the dialect has no translation for.
var ErrUnsupported = errors.New("statement not supported by dialect")

// Binder allocates placeholders and records bound values in the same step,
// so placeholder n always refers to the n-th value.
type Binder struct {
	dialect Dialect
	values  []interface{}
}

// NewBinder creates a binder for the dialect.
func NewBinder(d Dialect) *Binder {
	return &Binder{dialect: d}
}

// Bind records v and returns its placeholder.
func (b *Binder) Bind(v interface{}) string {
	b.values = append(b.values, v)
	return b.dialect.Placeholder(len(b.values))
}

// Values returns the bound values in placeholder order.
func (b *Binder) Values() []interface{} {
	return b.values
}

// Args returns the bound values ready to hand to database/sql.
// Named dialects get sql.NamedArg values named param1, param2, ...
func (b *Binder) Args() []interface{} {
	if !b.dialect.Named {
		return b.values
	}
	args := make([]interface{}, len(b.values))
	for i, v := range b.values {
		args[i] = sql.Named(ParamName(i+1), v)
	}
	return args
}

func (b *Binder) sql(query string) domain.SQL {
	return domain.SQL{
		Query:   query,
		Args:    b.Args(),
		Dialect: b.dialect.Name,
	}
}

// Where compiles a filter into a WHERE fragment (without the keyword).
// An empty filter yields "".
func Where(f domain.Filter, b *Binder) string {
	if len(f.Or) > 0 {
		parts := make([]string, 0, len(f.Or))
		for _, c := range f.Or {
			ph := b.Bind(fmt.Sprintf("%%%v%%", c.Value))
			parts = append(parts, fmt.Sprintf("LOWER(%s) LIKE LOWER(%s)", c.Field, ph))
		}
		return "(" + strings.Join(parts, " OR ") + ")"
	}

	var clauses []string
	for _, c := range f.Conditions {
		clauses = append(clauses, condition(c, b))
	}
	return strings.Join(clauses, " AND ")
}

func condition(c domain.Condition, b *Binder) string {
	if !domain.IsList(c.Value) {
		return fmt.Sprintf("%s = %s", c.Field, b.Bind(c.Value))
	}

	values := domain.ListValues(c.Value)
	if len(values) == 0 {
		return "1 = 0"
	}
	placeholders := make([]string, len(values))
	for i, v := range values {
		placeholders[i] = b.Bind(v)
	}
	return fmt.Sprintf("%s IN (%s)", c.Field, strings.Join(placeholders, ", "))
}

// Select compiles a find on table.
func Select(d Dialect, table string, f domain.Filter, opts domain.Options) domain.SQL {
	b := NewBinder(d)

	projection := "*"
	if len(opts.Fields) > 0 {
		projection = strings.Join(opts.Fields, ", ")
	}

	parts := SelectParts{
		Projection: projection,
		From:       table,
		Joins:      opts.Joins,
		Where:      Where(f, b),
		OrderBy:    opts.OrderBy,
	}

	return b.sql(d.Paginator.Paginate(parts, opts.Limit, opts.Offset))
}
