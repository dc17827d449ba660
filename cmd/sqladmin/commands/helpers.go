package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/satishbabariya/sqladmin/internal/core/query/domain"
)

// parseWhere parses a JSON filter; empty input means no filter.
func parseWhere(s string) (domain.Filter, error) {
	if strings.TrimSpace(s) == "" {
		return domain.Filter{}, nil
	}
	f, err := domain.ParseFilter([]byte(s))
	if err != nil {
		return domain.Filter{}, fmt.Errorf("invalid --where: %w", err)
	}
	return f, nil
}

// parseData parses a JSON object of column values.
func parseData(s string) (domain.Record, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("--data is required")
	}
	r, err := domain.ParseRecord([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("invalid --data: %w", err)
	}
	return r, nil
}

// parseParam turns a command-line argument into a bind value.
func parseParam(s string) interface{} {
	switch s {
	case "null", "NULL":
		return nil
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

func parseParams(args []string) []interface{} {
	params := make([]interface{}, len(args))
	for i, a := range args {
		params[i] = parseParam(a)
	}
	return params
}

// parseColumn parses "name:TYPE[:notnull][:default=VALUE]".
func parseColumn(s string) (domain.Column, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return domain.Column{}, fmt.Errorf("invalid column %q: want name:TYPE[:notnull][:default=VALUE]", s)
	}

	col := domain.Column{Name: parts[0], Type: parts[1]}
	for _, mod := range parts[2:] {
		switch {
		case strings.EqualFold(mod, "notnull"):
			col.NotNull = true
		case strings.HasPrefix(strings.ToLower(mod), "default="):
			col.Default = mod[len("default="):]
		default:
			return domain.Column{}, fmt.Errorf("invalid column %q: unknown modifier %q", s, mod)
		}
	}
	return col, nil
}

func parseColumns(specs []string) ([]domain.Column, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("at least one --column is required")
	}
	cols := make([]domain.Column, len(specs))
	for i, s := range specs {
		c, err := parseColumn(s)
		if err != nil {
			return nil, err
		}
		cols[i] = c
	}
	return cols, nil
}
