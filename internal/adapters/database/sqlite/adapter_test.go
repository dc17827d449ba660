package sqlite_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/satishbabariya/sqladmin/internal/adapters/database"
	"github.com/satishbabariya/sqladmin/internal/adapters/database/sqlite"
	"github.com/satishbabariya/sqladmin/internal/core/query/domain"
	"github.com/satishbabariya/sqladmin/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var widgetColumns = []domain.Column{
	{Name: "id", Type: "INTEGER PRIMARY KEY AUTOINCREMENT"},
	{Name: "name", Type: "TEXT", NotNull: true},
	{Name: "qty", Type: "INTEGER", Default: "0"},
}

func newAdapter(t *testing.T) *sqlite.SQLiteAdapter {
	t.Helper()

	a, err := sqlite.NewSQLiteAdapter(database.Config{URL: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, a.Initialize(context.Background()))
	t.Cleanup(func() { _ = a.Shutdown(context.Background()) })

	require.NoError(t, a.CreateTable(context.Background(), "widgets", widgetColumns))
	return a
}

func assertNoLeaks(t *testing.T, a *sqlite.SQLiteAdapter) {
	t.Helper()
	assert.Equal(t, int64(0), a.Stats().Acquired, "connection not released")
}

func TestSQLite_UninitializedFailsBeforeIO(t *testing.T) {
	a, err := sqlite.NewSQLiteAdapter(database.Config{URL: ":memory:"})
	require.NoError(t, err)
	ctx := context.Background()

	_, err = a.Find(ctx, "widgets", domain.Filter{}, domain.Options{})
	assert.ErrorIs(t, err, database.ErrNotInitialized)

	_, err = a.Create(ctx, "widgets", domain.Record{"name": "a"})
	assert.ErrorIs(t, err, database.ErrNotInitialized)

	_, err = a.Update(ctx, "widgets", domain.Record{"name": "a"}, domain.Where("id", 1))
	assert.ErrorIs(t, err, database.ErrNotInitialized)

	_, err = a.Delete(ctx, "widgets", domain.Where("id", 1))
	assert.ErrorIs(t, err, database.ErrNotInitialized)

	_, err = a.Execute(ctx, "SELECT 1")
	assert.ErrorIs(t, err, database.ErrNotInitialized)

	err = a.CreateTable(ctx, "widgets", widgetColumns)
	assert.ErrorIs(t, err, database.ErrNotInitialized)

	assert.False(t, database.IsQueryFailed(err))

	testutil.AssertNotInitialized(t, a)
}

func TestSQLite_CreateReturnsData(t *testing.T) {
	a := newAdapter(t)

	row, err := a.Create(context.Background(), "widgets", domain.Record{"name": "a", "qty": 3})
	require.NoError(t, err)

	assert.Equal(t, "a", row["name"])
	assert.EqualValues(t, 3, row["qty"])
	assert.EqualValues(t, 1, row["id"])
	assertNoLeaks(t, a)
}

func TestSQLite_RoundTrip(t *testing.T) {
	a := newAdapter(t)
	ctx := context.Background()

	data := domain.Record{"name": "sprocket", "qty": 12}
	created, err := a.Create(ctx, "widgets", data)
	require.NoError(t, err)

	rows, err := a.Find(ctx, "widgets", domain.Where("id", created["id"]), domain.Options{})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	for k, v := range data {
		assert.EqualValues(t, v, rows[0][k], k)
	}
	assertNoLeaks(t, a)
}

func TestSQLite_UpdateCountsMatchedRows(t *testing.T) {
	a := newAdapter(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		_, err := a.Create(ctx, "widgets", domain.Record{"name": name, "qty": 1})
		require.NoError(t, err)
	}

	f := domain.Where("name", []string{"a", "b"})
	first, err := a.Update(ctx, "widgets", domain.Record{"qty": 9}, f)
	require.NoError(t, err)
	second, err := a.Update(ctx, "widgets", domain.Record{"qty": 9}, f)
	require.NoError(t, err)

	assert.Equal(t, int64(2), first.RowsAffected)
	assert.Equal(t, int64(2), second.RowsAffected)

	rows, err := a.Find(ctx, "widgets", domain.Where("qty", 9), domain.Options{OrderBy: "name"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0]["name"])
	assert.Equal(t, "b", rows[1]["name"])
}

func TestSQLite_Delete(t *testing.T) {
	a := newAdapter(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := a.Create(ctx, "widgets", domain.Record{"name": fmt.Sprintf("w%d", i)})
		require.NoError(t, err)
	}

	res, err := a.Delete(ctx, "widgets", domain.Where("name", "w1"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.RowsAffected)
	assert.Empty(t, res.Rows)

	rows, err := a.Find(ctx, "widgets", domain.Filter{}, domain.Options{})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestSQLite_Pagination(t *testing.T) {
	a := newAdapter(t)
	ctx := context.Background()

	for i := 1; i <= 25; i++ {
		_, err := a.Create(ctx, "widgets", domain.Record{"name": fmt.Sprintf("w%02d", i), "qty": i})
		require.NoError(t, err)
	}

	rows, err := a.Find(ctx, "widgets", domain.Filter{}, domain.Options{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, rows, 10)

	rows, err = a.Find(ctx, "widgets", domain.Filter{}, domain.Options{Limit: 10, Offset: 20, OrderBy: "qty"})
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.EqualValues(t, 21, rows[0]["qty"])

	rows, err = a.Find(ctx, "widgets", domain.Filter{}, domain.Options{Offset: 24, OrderBy: "qty"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.EqualValues(t, 25, rows[0]["qty"])
	assertNoLeaks(t, a)
}

func TestSQLite_FindInAndOr(t *testing.T) {
	a := newAdapter(t)
	ctx := context.Background()

	for i, name := range []string{"Alpha", "beta", "Gamma", "delta"} {
		_, err := a.Create(ctx, "widgets", domain.Record{"name": name, "qty": i + 1})
		require.NoError(t, err)
	}

	rows, err := a.Find(ctx, "widgets", domain.Where("qty", []int{1, 2, 3}), domain.Options{})
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	f := domain.Filter{
		Conditions: []domain.Condition{{Field: "qty", Value: 4}},
		Or: []domain.Condition{
			{Field: "name", Value: "ALP"},
			{Field: "name", Value: "BET"},
			{Field: "name", Value: "ELT"},
		},
	}
	rows, err = a.Find(ctx, "widgets", f, domain.Options{OrderBy: "name", Fields: []string{"name"}})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []domain.Row{{"name": "Alpha"}, {"name": "beta"}, {"name": "delta"}}, rows)
}

func TestSQLite_DropColumnUnsupported(t *testing.T) {
	ctx := context.Background()

	fresh, err := sqlite.NewSQLiteAdapter(database.Config{URL: ":memory:"})
	require.NoError(t, err)
	err = fresh.DropColumn(ctx, "widgets", "qty")
	assert.ErrorIs(t, err, database.ErrCapabilityUnsupported)

	a := newAdapter(t)
	before := a.Stats().TotalAcquired
	err = a.DropColumn(ctx, "widgets", "qty")
	assert.True(t, database.IsCapabilityUnsupported(err))
	assert.False(t, database.IsQueryFailed(err))
	assert.Equal(t, before, a.Stats().TotalAcquired, "no connection should be used")

	// the column is still there
	_, err = a.Find(ctx, "widgets", domain.Where("qty", 0), domain.Options{})
	assert.NoError(t, err)
	assert.False(t, database.Supports(a, database.CapDropColumn))
}

func TestSQLite_SchemaChanges(t *testing.T) {
	a := newAdapter(t)
	ctx := context.Background()

	// idempotent
	require.NoError(t, a.CreateTable(ctx, "widgets", widgetColumns))

	require.NoError(t, a.AddColumn(ctx, "widgets", "color", "TEXT"))
	_, err := a.Create(ctx, "widgets", domain.Record{"name": "a", "color": "red"})
	require.NoError(t, err)

	rows, err := a.Find(ctx, "widgets", domain.Where("color", "red"), domain.Options{})
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	require.NoError(t, a.DeleteTable(ctx, "widgets"))
	require.NoError(t, a.DeleteTable(ctx, "widgets"))

	_, err = a.Find(ctx, "widgets", domain.Filter{}, domain.Options{})
	assert.True(t, database.IsQueryFailed(err))
}

func TestSQLite_QueryErrorCarriesDriverError(t *testing.T) {
	a := newAdapter(t)

	_, err := a.Find(context.Background(), "missing", domain.Filter{}, domain.Options{})
	require.Error(t, err)

	var qe *database.QueryError
	require.True(t, errors.As(err, &qe))
	assert.Equal(t, "find", qe.Op)
	assert.Equal(t, "SELECT * FROM missing", qe.Query)

	var driverErr sqlite3.Error
	assert.True(t, errors.As(err, &driverErr))
	assertNoLeaks(t, a)
}

func TestSQLite_Execute(t *testing.T) {
	a := newAdapter(t)
	ctx := context.Background()

	res, err := a.Execute(ctx, "INSERT INTO widgets (name, qty) VALUES (?, ?)", "a", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.RowsAffected)
	assert.Equal(t, int64(1), res.LastInsertID)

	res, err = a.Execute(ctx, "SELECT name, qty FROM widgets WHERE qty = ?", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "qty"}, res.Columns)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "a", res.Rows[0]["name"])
}

func TestSQLite_ShutdownIsIdempotent(t *testing.T) {
	a, err := sqlite.NewSQLiteAdapter(database.Config{URL: ":memory:"})
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, a.Initialize(ctx))
	require.NoError(t, a.Initialize(ctx))

	require.NoError(t, a.Shutdown(ctx))
	require.NoError(t, a.Shutdown(ctx))

	_, err = a.Find(ctx, "widgets", domain.Filter{}, domain.Options{})
	assert.ErrorIs(t, err, database.ErrClosed)
	assert.True(t, database.IsNotInitialized(err))

	err = a.Initialize(ctx)
	assert.ErrorIs(t, err, database.ErrClosed)
}

func TestSQLite_ServerVersion(t *testing.T) {
	a := newAdapter(t)

	v, err := a.ServerVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, v.Segments()[0])
	assertNoLeaks(t, a)
}
