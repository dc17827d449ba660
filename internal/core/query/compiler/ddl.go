package compiler

import (
	"fmt"
	"strings"

	"github.com/satishbabariya/sqladmin/internal/core/query/domain"
)

// ColumnDefinition renders "name type [DEFAULT x] [NOT NULL]".
// DEFAULT precedes NOT NULL because Oracle rejects the other order.
func ColumnDefinition(c domain.Column) string {
	def := c.Name + " " + c.Type
	if c.Default != "" {
		def += " DEFAULT " + c.Default
	}
	if c.NotNull {
		def += " NOT NULL"
	}
	return def
}

// CreateTable compiles a CREATE TABLE statement.
func CreateTable(d Dialect, name string, columns []domain.Column) (string, error) {
	if len(columns) == 0 {
		return "", fmt.Errorf("create table %s: %w", name, ErrNoColumns)
	}

	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = ColumnDefinition(c)
	}

	create := "CREATE TABLE "
	if d.IfNotExists {
		create += "IF NOT EXISTS "
	}
	ddl := fmt.Sprintf("%s%s (%s)", create, name, strings.Join(defs, ", "))

	if d.CreateGuard != nil {
		ddl = d.CreateGuard(name, ddl)
	}
	return ddl, nil
}

// DropTable compiles a DROP TABLE statement.
func DropTable(d Dialect, name string) string {
	if d.IfExists {
		return "DROP TABLE IF EXISTS " + name
	}
	return "DROP TABLE " + name
}

// AddColumn compiles an ALTER TABLE ... ADD statement.
func AddColumn(d Dialect, table, column, typ string) string {
	def := column + " " + typ
	if d.ParenAddColumn {
		def = "(" + def + ")"
	}
	return fmt.Sprintf("ALTER TABLE %s %s %s", table, d.AddColumnKeyword, def)
}

// DropColumn compiles an ALTER TABLE ... DROP COLUMN statement.
func DropColumn(d Dialect, table, column string) (string, error) {
	if !d.CanDropColumn {
		return "", fmt.Errorf("drop column on %s: %w", d.Name, ErrUnsupported)
	}
	return fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s", table, column), nil
}
