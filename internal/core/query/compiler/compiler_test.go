package compiler_test

import (
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"testing"

	mssql "github.com/microsoft/go-mssqldb"
	"github.com/satishbabariya/sqladmin/internal/core/query/compiler"
	"github.com/satishbabariya/sqladmin/internal/core/query/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allDialects = []compiler.Dialect{
	compiler.Postgres,
	compiler.MySQL,
	compiler.SQLServer,
	compiler.Oracle,
	compiler.SQLite,
}

// rawArgs strips sql.NamedArg wrappers.
func rawArgs(args []interface{}) []interface{} {
	out := make([]interface{}, len(args))
	for i, a := range args {
		if n, ok := a.(sql.NamedArg); ok {
			out[i] = n.Value
		} else {
			out[i] = a
		}
	}
	return out
}

func TestSelect_PostgreSQL(t *testing.T) {
	f := domain.Where("name", "a", "qty", []int{1, 2, 3}, "active", true)

	q := compiler.Select(compiler.Postgres, "widgets", f, domain.Options{})

	assert.Equal(t, "SELECT * FROM widgets WHERE name = $1 AND qty IN ($2, $3, $4) AND active = $5", q.Query)
	assert.Equal(t, []interface{}{"a", 1, 2, 3, true}, q.Args)
	assert.Equal(t, domain.PostgreSQL, q.Dialect)
}

func TestSelect_EmptyFilterHasNoWhere(t *testing.T) {
	for _, d := range allDialects {
		t.Run(string(d.Name), func(t *testing.T) {
			q := compiler.Select(d, "widgets", domain.Filter{}, domain.Options{})
			assert.Equal(t, "SELECT * FROM widgets", q.Query)
			assert.Empty(t, q.Args)
		})
	}
}

func TestSelect_InClauseEveryDialect(t *testing.T) {
	tests := []struct {
		dialect compiler.Dialect
		want    string
	}{
		{compiler.Postgres, "SELECT * FROM widgets WHERE qty IN ($1, $2, $3)"},
		{compiler.MySQL, "SELECT * FROM widgets WHERE qty IN (?, ?, ?)"},
		{compiler.SQLServer, "SELECT * FROM widgets WHERE qty IN (@param1, @param2, @param3)"},
		{compiler.Oracle, "SELECT * FROM widgets WHERE qty IN (:param1, :param2, :param3)"},
		{compiler.SQLite, "SELECT * FROM widgets WHERE qty IN (?, ?, ?)"},
	}

	for _, tt := range tests {
		t.Run(string(tt.dialect.Name), func(t *testing.T) {
			q := compiler.Select(tt.dialect, "widgets", domain.Where("qty", []int{1, 2, 3}), domain.Options{})
			assert.Equal(t, tt.want, q.Query)
			assert.Equal(t, []interface{}{1, 2, 3}, rawArgs(q.Args))
		})
	}
}

func TestSelect_NamedDialectsBindNamedArgs(t *testing.T) {
	q := compiler.Select(compiler.SQLServer, "widgets", domain.Where("name", "a", "qty", 3), domain.Options{})

	require.Len(t, q.Args, 2)
	assert.Equal(t, sql.Named("param1", "a"), q.Args[0])
	assert.Equal(t, sql.Named("param2", 3), q.Args[1])
}

func TestSelect_EmptyListMatchesNothing(t *testing.T) {
	q := compiler.Select(compiler.Postgres, "widgets", domain.Where("qty", []int{}, "name", "a"), domain.Options{})

	assert.Equal(t, "SELECT * FROM widgets WHERE 1 = 0 AND name = $1", q.Query)
	assert.Equal(t, []interface{}{"a"}, q.Args)
}

func TestSelect_ByteSliceIsScalar(t *testing.T) {
	q := compiler.Select(compiler.SQLite, "files", domain.Where("hash", []byte{0x01, 0x02}), domain.Options{})

	assert.Equal(t, "SELECT * FROM files WHERE hash = ?", q.Query)
	assert.Equal(t, []interface{}{[]byte{0x01, 0x02}}, q.Args)
}

func TestSelect_ValuerAndArrayAreScalars(t *testing.T) {
	id := mssql.UniqueIdentifier{0x01, 0x02, 0x03}

	q := compiler.Select(compiler.SQLServer, "widgets", domain.Where("id", id), domain.Options{})
	assert.Equal(t, "SELECT * FROM widgets WHERE id = @param1", q.Query)
	require.Len(t, q.Args, 1)
	assert.Equal(t, id, rawArgs(q.Args)[0])

	q = compiler.Select(compiler.Postgres, "widgets", domain.Where("pair", [2]int{1, 2}), domain.Options{})
	assert.Equal(t, "SELECT * FROM widgets WHERE pair = $1", q.Query)
	assert.Equal(t, []interface{}{[2]int{1, 2}}, q.Args)
}

func TestSelect_OrIsCaseInsensitiveAndShadowsConditions(t *testing.T) {
	f := domain.Filter{
		Conditions: []domain.Condition{{Field: "qty", Value: 3}},
		Or: []domain.Condition{
			{Field: "name", Value: "a"},
			{Field: "name", Value: "b"},
		},
	}

	tests := []struct {
		dialect compiler.Dialect
		want    string
	}{
		{compiler.Postgres, "SELECT * FROM widgets WHERE (LOWER(name) LIKE LOWER($1) OR LOWER(name) LIKE LOWER($2))"},
		{compiler.MySQL, "SELECT * FROM widgets WHERE (LOWER(name) LIKE LOWER(?) OR LOWER(name) LIKE LOWER(?))"},
		{compiler.SQLServer, "SELECT * FROM widgets WHERE (LOWER(name) LIKE LOWER(@param1) OR LOWER(name) LIKE LOWER(@param2))"},
		{compiler.Oracle, "SELECT * FROM widgets WHERE (LOWER(name) LIKE LOWER(:param1) OR LOWER(name) LIKE LOWER(:param2))"},
		{compiler.SQLite, "SELECT * FROM widgets WHERE (LOWER(name) LIKE LOWER(?) OR LOWER(name) LIKE LOWER(?))"},
	}

	for _, tt := range tests {
		t.Run(string(tt.dialect.Name), func(t *testing.T) {
			q := compiler.Select(tt.dialect, "widgets", f, domain.Options{})
			assert.Equal(t, tt.want, q.Query)
			// qty is dropped when $or is present
			assert.Equal(t, []interface{}{"%a%", "%b%"}, rawArgs(q.Args))
			assert.NotContains(t, q.Query, "qty")
		})
	}
}

func TestWhere_ParameterOrderMatchesInsertionOrder(t *testing.T) {
	var f domain.Filter
	for i := 0; i < 12; i++ {
		field := fmt.Sprintf("c%d", i)
		if i%3 == 0 {
			f = f.And(field, []string{field + "-x", field + "-y"})
		} else {
			f = f.And(field, field+"-v")
		}
	}

	clause := regexp.MustCompile(`(c\d+) (?:= (\S+)|IN \(([^)]*)\))`)
	phPattern := regexp.MustCompile(`\$\d+|@param\d+|:param\d+|\?`)

	for _, d := range allDialects {
		t.Run(string(d.Name), func(t *testing.T) {
			b := compiler.NewBinder(d)
			where := compiler.Where(f, b)
			values := b.Values()
			require.Len(t, values, 16)

			// every placeholder, in textual order, names its own position
			placeholders := phPattern.FindAllString(where, -1)
			require.Len(t, placeholders, len(values))
			for i, ph := range placeholders {
				assert.Equal(t, d.Placeholder(i+1), ph)
			}

			pos := 0
			for _, m := range clause.FindAllStringSubmatch(where, -1) {
				field := m[1]
				if m[2] != "" {
					assert.Equal(t, field+"-v", values[pos], "placeholder %d", pos+1)
					pos++
					continue
				}
				phs := phPattern.FindAllString(m[3], -1)
				require.Len(t, phs, 2)
				assert.Equal(t, field+"-x", values[pos])
				assert.Equal(t, field+"-y", values[pos+1])
				pos += 2
			}
			assert.Equal(t, len(values), pos)
		})
	}
}

func TestSelect_OptionsOrdering(t *testing.T) {
	opts := domain.Options{
		Fields:  []string{"w.id", "u.name"},
		Joins:   "LEFT JOIN users u ON u.id = w.owner_id",
		OrderBy: "w.id DESC",
		Limit:   5,
		Offset:  10,
	}

	q := compiler.Select(compiler.MySQL, "widgets w", domain.Where("w.qty", 3), opts)

	assert.Equal(t,
		"SELECT w.id, u.name FROM widgets w LEFT JOIN users u ON u.id = w.owner_id WHERE w.qty = ? ORDER BY w.id DESC LIMIT 5 OFFSET 10",
		q.Query)
	assert.Equal(t, []interface{}{3}, q.Args)
}

func TestSelect_Pagination(t *testing.T) {
	tests := []struct {
		name    string
		dialect compiler.Dialect
		opts    domain.Options
		want    string
	}{
		{"postgres limit", compiler.Postgres, domain.Options{Limit: 10}, "SELECT * FROM widgets LIMIT 10"},
		{"postgres offset only", compiler.Postgres, domain.Options{Offset: 5}, "SELECT * FROM widgets OFFSET 5"},
		{"mysql limit", compiler.MySQL, domain.Options{Limit: 10}, "SELECT * FROM widgets LIMIT 10"},
		{"mysql offset only", compiler.MySQL, domain.Options{Offset: 5}, "SELECT * FROM widgets LIMIT 18446744073709551615 OFFSET 5"},
		{"sqlite offset only", compiler.SQLite, domain.Options{Offset: 5}, "SELECT * FROM widgets LIMIT -1 OFFSET 5"},
		{"sqlserver top", compiler.SQLServer, domain.Options{Limit: 10}, "SELECT TOP (10) * FROM widgets"},
		{"sqlserver top ordered", compiler.SQLServer, domain.Options{Limit: 10, OrderBy: "id"}, "SELECT TOP (10) * FROM widgets ORDER BY id"},
		{
			"sqlserver offset", compiler.SQLServer, domain.Options{Limit: 10, Offset: 20},
			"SELECT * FROM widgets ORDER BY (SELECT NULL) OFFSET 20 ROWS FETCH NEXT 10 ROWS ONLY",
		},
		{
			"oracle rownum", compiler.Oracle, domain.Options{Limit: 10, OrderBy: "id"},
			"SELECT * FROM (SELECT * FROM widgets ORDER BY id) WHERE ROWNUM <= 10",
		},
		{
			"oracle offset", compiler.Oracle, domain.Options{Limit: 10, Offset: 20, OrderBy: "id"},
			"SELECT * FROM (SELECT q_.*, ROWNUM rnum_ FROM (SELECT * FROM widgets ORDER BY id) q_ WHERE ROWNUM <= 30) WHERE rnum_ > 20",
		},
		{
			"oracle offset only", compiler.Oracle, domain.Options{Offset: 20},
			"SELECT * FROM (SELECT q_.*, ROWNUM rnum_ FROM (SELECT * FROM widgets) q_) WHERE rnum_ > 20",
		},
		{"negative values ignored", compiler.Postgres, domain.Options{Limit: -1, Offset: -3}, "SELECT * FROM widgets"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := compiler.Select(tt.dialect, "widgets", domain.Filter{}, tt.opts)
			assert.Equal(t, tt.want, q.Query)
		})
	}
}

func TestSelect_OracleBindsBeforeRownumGate(t *testing.T) {
	q := compiler.Select(compiler.Oracle, "widgets", domain.Where("qty", 3), domain.Options{Limit: 1})

	assert.Equal(t, "SELECT * FROM (SELECT * FROM widgets WHERE qty = :param1) WHERE ROWNUM <= 1", q.Query)
	assert.Equal(t, []interface{}{sql.Named("param1", 3)}, q.Args)
}

func TestForName(t *testing.T) {
	for _, d := range allDialects {
		got, err := compiler.ForName(d.Name)
		require.NoError(t, err)
		assert.Equal(t, d.Name, got.Name)
		assert.NotEmpty(t, got.VersionQuery)
	}

	_, err := compiler.ForName("db2")
	assert.Error(t, err)
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "$12", compiler.Dollar(12))
	assert.Equal(t, "?", compiler.Question(12))
	assert.Equal(t, "@param12", compiler.AtNamed(12))
	assert.Equal(t, ":param12", compiler.ColonNamed(12))
	assert.Equal(t, "param"+strconv.Itoa(3), compiler.ParamName(3))
}
