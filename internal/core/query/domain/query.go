// Package domain contains the core entities shared by the condition compiler
// and the dialect adapters.
package domain

import (
	"database/sql/driver"
	"reflect"
	"sort"
)

// SQLDialect represents a SQL dialect.
type SQLDialect string

const (
	// PostgreSQL dialect.
	PostgreSQL SQLDialect = "postgres"
	// MySQL dialect.
	MySQL SQLDialect = "mysql"
	// SQLServer dialect.
	SQLServer SQLDialect = "sqlserver"
	// Oracle dialect.
	Oracle SQLDialect = "oracle"
	// SQLite dialect.
	SQLite SQLDialect = "sqlite"
)

// OrKey is the reserved filter key for a case-insensitive disjunction.
const OrKey = "$or"

// Condition binds a single column to a value. A slice value matches any of
// its elements; any other value matches by equality.
type Condition struct {
	Field string
	Value interface{}
}

// Filter is an ordered set of conditions.
//
// When Or is non-empty the filter compiles to an OR of case-insensitive
// substring matches and Conditions are ignored entirely.
type Filter struct {
	Conditions []Condition
	Or         []Condition
}

// Where creates a filter from alternating field/value pairs.
// A trailing field without a value is ignored.
func Where(pairs ...interface{}) Filter {
	var f Filter
	for i := 0; i+1 < len(pairs); i += 2 {
		field, ok := pairs[i].(string)
		if !ok {
			continue
		}
		f.Conditions = append(f.Conditions, Condition{Field: field, Value: pairs[i+1]})
	}
	return f
}

// And returns a copy of the filter with one more condition appended.
func (f Filter) And(field string, value interface{}) Filter {
	conds := make([]Condition, len(f.Conditions), len(f.Conditions)+1)
	copy(conds, f.Conditions)
	f.Conditions = append(conds, Condition{Field: field, Value: value})
	return f
}

// IsEmpty reports whether the filter produces no WHERE clause.
func (f Filter) IsEmpty() bool {
	return len(f.Conditions) == 0 && len(f.Or) == 0
}

// Options controls projection, joins, ordering and pagination of a find.
type Options struct {
	// Limit caps the number of rows. Zero or negative means no cap.
	Limit int
	// Offset skips rows. Zero or negative means none.
	Offset int
	// OrderBy is a raw ORDER BY expression, e.g. "created_at DESC".
	OrderBy string
	// Joins is a raw join clause, e.g. "LEFT JOIN users u ON u.id = t.user_id".
	Joins string
	// Fields is the projection. Empty means "*".
	Fields []string
}

// Record holds column values for an insert or update.
type Record map[string]interface{}

// Columns returns the record's keys in sorted order.
func (r Record) Columns() []string {
	cols := make([]string, 0, len(r))
	for k := range r {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

// Row is a single result row keyed by column name.
type Row map[string]interface{}

// Column describes a column for CreateTable.
type Column struct {
	Name string
	Type string
	// NotNull adds a NOT NULL constraint. The zero value keeps the column nullable.
	NotNull bool
	// Default is a raw default expression. Empty means no DEFAULT clause.
	Default string
}

// SQL is a compiled statement with its bound parameters.
type SQL struct {
	Query   string
	Args    []interface{}
	Dialect SQLDialect
}

// MutationResult is returned by update and delete.
// Rows is only populated by dialects that can return affected rows.
type MutationResult struct {
	Rows         []Row
	RowsAffected int64
}

// ExecResult is returned by raw execution.
type ExecResult struct {
	Columns      []string
	Rows         []Row
	RowsAffected int64
	LastInsertID int64
}

// IsList reports whether v compiles to an IN list. Only slices do; byte
// slices, arrays and driver.Valuer values (e.g. UUID types) are scalars.
func IsList(v interface{}) bool {
	if v == nil {
		return false
	}
	if _, ok := v.(driver.Valuer); ok {
		return false
	}
	t := reflect.TypeOf(v)
	return t.Kind() == reflect.Slice && t.Elem().Kind() != reflect.Uint8
}

// ListValues flattens a slice or array value into []interface{}.
func ListValues(v interface{}) []interface{} {
	if vals, ok := v.([]interface{}); ok {
		return vals
	}
	rv := reflect.ValueOf(v)
	out := make([]interface{}, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}
