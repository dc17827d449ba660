package compiler

import (
	"fmt"
	"strings"

	"github.com/satishbabariya/sqladmin/internal/core/query/domain"
)

// PlaceholderFunc renders the placeholder for the n-th bound value (1-based).
type PlaceholderFunc func(n int) string

// Dollar renders $1, $2, ...
func Dollar(n int) string { return fmt.Sprintf("$%d", n) }

// Question renders ? for every position.
func Question(int) string { return "?" }

// AtNamed renders @param1, @param2, ...
func AtNamed(n int) string { return fmt.Sprintf("@%s", ParamName(n)) }

// ColonNamed renders :param1, :param2, ...
func ColonNamed(n int) string { return fmt.Sprintf(":%s", ParamName(n)) }

// ParamName is the bind name used by named-parameter dialects.
func ParamName(n int) string { return fmt.Sprintf("param%d", n) }

// Dialect bundles everything the compiler needs to know about one SQL variant.
type Dialect struct {
	Name        domain.SQLDialect
	Placeholder PlaceholderFunc
	// Named dialects receive their arguments as sql.NamedArg.
	Named     bool
	Paginator Paginator

	IfNotExists   bool
	IfExists      bool
	CanDropColumn bool
	// AddColumnKeyword follows "ALTER TABLE t"; ParenAddColumn wraps the definition.
	AddColumnKeyword string
	ParenAddColumn   bool
	// CreateGuard, when set, wraps a CREATE TABLE statement to make it idempotent.
	CreateGuard func(table, ddl string) string

	// VersionQuery returns one row with the server version in its only column.
	VersionQuery string
}

var (
	// Postgres is the generic builder dialect.
	Postgres = Dialect{
		Name:             domain.PostgreSQL,
		Placeholder:      Dollar,
		Paginator:        LimitOffset{},
		IfNotExists:      true,
		IfExists:         true,
		CanDropColumn:    true,
		AddColumnKeyword: "ADD COLUMN",
		VersionQuery:     "SELECT version()",
	}

	// MySQL needs a LIMIT whenever OFFSET is present.
	MySQL = Dialect{
		Name:             domain.MySQL,
		Placeholder:      Question,
		Paginator:        LimitOffset{NoLimit: "18446744073709551615"},
		IfNotExists:      true,
		IfExists:         true,
		CanDropColumn:    true,
		AddColumnKeyword: "ADD COLUMN",
		VersionQuery:     "SELECT VERSION()",
	}

	// SQLServer binds @paramN and paginates with TOP.
	SQLServer = Dialect{
		Name:             domain.SQLServer,
		Placeholder:      AtNamed,
		Named:            true,
		Paginator:        Top{},
		IfExists:         true,
		CanDropColumn:    true,
		AddColumnKeyword: "ADD",
		CreateGuard: func(table, ddl string) string {
			return fmt.Sprintf("IF OBJECT_ID(N'%s', N'U') IS NULL %s", strings.ReplaceAll(table, "'", "''"), ddl)
		},
		VersionQuery: "SELECT CAST(SERVERPROPERTY('ProductVersion') AS NVARCHAR(128))",
	}

	// Oracle binds :paramN and paginates with a ROWNUM subquery.
	Oracle = Dialect{
		Name:             domain.Oracle,
		Placeholder:      ColonNamed,
		Named:            true,
		Paginator:        RowNum{},
		CanDropColumn:    true,
		AddColumnKeyword: "ADD",
		ParenAddColumn:   true,
		VersionQuery:     "SELECT version FROM product_component_version WHERE product LIKE 'Oracle%' AND ROWNUM <= 1",
	}

	// SQLite cannot drop columns.
	SQLite = Dialect{
		Name:             domain.SQLite,
		Placeholder:      Question,
		Paginator:        LimitOffset{NoLimit: "-1"},
		IfNotExists:      true,
		IfExists:         true,
		AddColumnKeyword: "ADD COLUMN",
		VersionQuery:     "SELECT sqlite_version()",
	}
)

// ForName returns the dialect registered under name.
func ForName(name domain.SQLDialect) (Dialect, error) {
	switch name {
	case domain.PostgreSQL:
		return Postgres, nil
	case domain.MySQL:
		return MySQL, nil
	case domain.SQLServer:
		return SQLServer, nil
	case domain.Oracle:
		return Oracle, nil
	case domain.SQLite:
		return SQLite, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported dialect: %s", name)
	}
}
