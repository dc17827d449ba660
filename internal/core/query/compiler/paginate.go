package compiler

import (
	"fmt"
	"strings"
)

// SelectParts holds the already-compiled pieces of a SELECT.
type SelectParts struct {
	Projection string
	From       string
	Joins      string
	Where      string
	OrderBy    string
}

func (p SelectParts) body() string {
	var sb strings.Builder
	sb.WriteString(" FROM ")
	sb.WriteString(p.From)
	if p.Joins != "" {
		sb.WriteString(" ")
		sb.WriteString(p.Joins)
	}
	if p.Where != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(p.Where)
	}
	return sb.String()
}

func (p SelectParts) orderBy() string {
	if p.OrderBy == "" {
		return ""
	}
	return " ORDER BY " + p.OrderBy
}

// Paginator assembles a full SELECT from its parts, applying the dialect's
// pagination idiom. Zero or negative limit/offset means "not set".
type Paginator interface {
	Paginate(p SelectParts, limit, offset int) string
}

// LimitOffset appends LIMIT n OFFSET m.
type LimitOffset struct {
	// NoLimit is written as the LIMIT when only an offset is given.
	// Empty means OFFSET may stand alone.
	NoLimit string
}

// Paginate implements Paginator.
func (l LimitOffset) Paginate(p SelectParts, limit, offset int) string {
	q := "SELECT " + p.Projection + p.body() + p.orderBy()
	switch {
	case limit > 0:
		q += fmt.Sprintf(" LIMIT %d", limit)
	case offset > 0 && l.NoLimit != "":
		q += " LIMIT " + l.NoLimit
	}
	if offset > 0 {
		q += fmt.Sprintf(" OFFSET %d", offset)
	}
	return q
}

// Top prefixes the projection with TOP (n). An offset switches to
// OFFSET ... FETCH NEXT, which requires an ORDER BY.
type Top struct{}

// Paginate implements Paginator.
func (Top) Paginate(p SelectParts, limit, offset int) string {
	if offset <= 0 {
		q := "SELECT "
		if limit > 0 {
			q += fmt.Sprintf("TOP (%d) ", limit)
		}
		return q + p.Projection + p.body() + p.orderBy()
	}

	order := p.OrderBy
	if order == "" {
		order = "(SELECT NULL)"
	}
	q := "SELECT " + p.Projection + p.body() + " ORDER BY " + order
	q += fmt.Sprintf(" OFFSET %d ROWS", offset)
	if limit > 0 {
		q += fmt.Sprintf(" FETCH NEXT %d ROWS ONLY", limit)
	}
	return q
}

// RowNum wraps the ordered query in a subquery gated by ROWNUM.
// With an offset the gate is nested twice and the extra rnum_ column
// appears in the result.
type RowNum struct{}

// Paginate implements Paginator.
func (RowNum) Paginate(p SelectParts, limit, offset int) string {
	inner := "SELECT " + p.Projection + p.body() + p.orderBy()
	switch {
	case limit <= 0 && offset <= 0:
		return inner
	case offset <= 0:
		return fmt.Sprintf("SELECT * FROM (%s) WHERE ROWNUM <= %d", inner, limit)
	case limit <= 0:
		return fmt.Sprintf("SELECT * FROM (SELECT q_.*, ROWNUM rnum_ FROM (%s) q_) WHERE rnum_ > %d", inner, offset)
	default:
		return fmt.Sprintf("SELECT * FROM (SELECT q_.*, ROWNUM rnum_ FROM (%s) q_ WHERE ROWNUM <= %d) WHERE rnum_ > %d",
			inner, limit+offset, offset)
	}
}
