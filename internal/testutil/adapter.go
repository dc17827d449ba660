package testutil

import (
	"context"
	"testing"

	"github.com/satishbabariya/sqladmin/internal/adapters/database"
	"github.com/satishbabariya/sqladmin/internal/core/query/domain"
	"github.com/stretchr/testify/assert"
)

// AssertNotInitialized checks that every data and schema operation on an
// adapter that was never initialized fails with ErrNotInitialized, even when
// its arguments are invalid.
func AssertNotInitialized(t *testing.T, a database.Adapter) {
	t.Helper()
	ctx := context.Background()

	check := func(op string, err error) {
		t.Helper()
		assert.True(t, database.IsNotInitialized(err), "%s: got %v", op, err)
		assert.False(t, database.IsQueryFailed(err), "%s: got %v", op, err)
	}

	_, err := a.Find(ctx, "widgets", domain.Filter{}, domain.Options{})
	check("find", err)
	_, err = a.Create(ctx, "widgets", domain.Record{"name": "a"})
	check("create", err)
	_, err = a.Create(ctx, "widgets", domain.Record{})
	check("create without data", err)
	_, err = a.Update(ctx, "widgets", domain.Record{"name": "a"}, domain.Where("id", 1))
	check("update", err)
	_, err = a.Update(ctx, "widgets", domain.Record{}, domain.Where("id", 1))
	check("update without data", err)
	_, err = a.Delete(ctx, "widgets", domain.Where("id", 1))
	check("delete", err)
	_, err = a.Execute(ctx, "SELECT 1")
	check("execute", err)
	check("create table", a.CreateTable(ctx, "widgets", []domain.Column{{Name: "id", Type: "INT"}}))
	check("create table without columns", a.CreateTable(ctx, "widgets", nil))
	check("delete table", a.DeleteTable(ctx, "widgets"))
	check("add column", a.AddColumn(ctx, "widgets", "qty", "INT"))
	check("ping", a.Ping(ctx))
}
