package compiler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/satishbabariya/sqladmin/internal/core/query/domain"
)

// ErrNoColumns is returned when an insert or update carries no data.
var ErrNoColumns = errors.New("no columns to write")

// Returning lets each dialect attach its own row-return idiom.
type Returning struct {
	// Output is placed before VALUES (insert) or WHERE (update/delete),
	// e.g. "OUTPUT INSERTED.*".
	Output string
	// Suffix is appended to the statement, e.g. "RETURNING *".
	Suffix string
}

func (r Returning) output() string {
	if r.Output == "" {
		return ""
	}
	return " " + r.Output
}

func (r Returning) suffix() string {
	if r.Suffix == "" {
		return ""
	}
	return " " + r.Suffix
}

// Insert compiles an INSERT of data into table. Columns are written in
// sorted order.
func Insert(d Dialect, table string, data domain.Record, ret Returning) (domain.SQL, error) {
	if len(data) == 0 {
		return domain.SQL{}, fmt.Errorf("insert into %s: %w", table, ErrNoColumns)
	}

	b := NewBinder(d)
	cols := data.Columns()
	placeholders := make([]string, len(cols))
	for i, col := range cols {
		placeholders[i] = b.Bind(data[col])
	}

	query := fmt.Sprintf("INSERT INTO %s (%s)%s VALUES (%s)%s",
		table,
		strings.Join(cols, ", "),
		ret.output(),
		strings.Join(placeholders, ", "),
		ret.suffix(),
	)
	return b.sql(query), nil
}

// Update compiles an UPDATE of table. SET values are bound before WHERE values.
func Update(d Dialect, table string, data domain.Record, f domain.Filter, ret Returning) (domain.SQL, error) {
	if len(data) == 0 {
		return domain.SQL{}, fmt.Errorf("update %s: %w", table, ErrNoColumns)
	}

	b := NewBinder(d)
	cols := data.Columns()
	sets := make([]string, len(cols))
	for i, col := range cols {
		sets[i] = fmt.Sprintf("%s = %s", col, b.Bind(data[col]))
	}

	query := fmt.Sprintf("UPDATE %s SET %s%s", table, strings.Join(sets, ", "), ret.output())
	if where := Where(f, b); where != "" {
		query += " WHERE " + where
	}
	query += ret.suffix()

	return b.sql(query), nil
}

// Delete compiles a DELETE from table.
func Delete(d Dialect, table string, f domain.Filter, ret Returning) domain.SQL {
	b := NewBinder(d)

	query := fmt.Sprintf("DELETE FROM %s%s", table, ret.output())
	if where := Where(f, b); where != "" {
		query += " WHERE " + where
	}
	query += ret.suffix()

	return b.sql(query)
}
