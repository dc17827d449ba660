package container

import (
	"context"
	"testing"

	"github.com/satishbabariya/sqladmin/internal/adapters/database"
	"github.com/satishbabariya/sqladmin/internal/config"
	"github.com/satishbabariya/sqladmin/internal/core/query/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAdapter_Providers(t *testing.T) {
	tests := []struct {
		provider string
		url      string
		want     domain.SQLDialect
	}{
		{"postgres", "postgres://localhost/app", domain.PostgreSQL},
		{"PostgreSQL", "postgres://localhost/app", domain.PostgreSQL},
		{"mysql", "app:secret@tcp(localhost:3306)/app", domain.MySQL},
		{"mssql", "sqlserver://localhost", domain.SQLServer},
		{"sqlserver", "sqlserver://localhost", domain.SQLServer},
		{"oracle", "oracle://localhost:1521/XE", domain.Oracle},
		{"sqlite", ":memory:", domain.SQLite},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			a, err := NewAdapter(config.DatabaseConfig{Provider: tt.provider, URL: tt.url})
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.Dialect())
		})
	}
}

func TestNewAdapter_Errors(t *testing.T) {
	_, err := NewAdapter(config.DatabaseConfig{Provider: "db2"})
	assert.ErrorContains(t, err, "unsupported database provider")

	_, err = NewAdapter(config.DatabaseConfig{})
	assert.Error(t, err)

	_, err = NewAdapter(config.DatabaseConfig{Provider: "mysql", URL: "not a dsn"})
	assert.Error(t, err)
}

func TestAdapterConfig(t *testing.T) {
	got := AdapterConfig(config.DatabaseConfig{
		Provider:            "postgres",
		URL:                 "postgres://localhost/app",
		Driver:              "pgx",
		PrimaryKey:          "uuid",
		MaxConnections:      3,
		MaxIdleTime:         4,
		ConnectTimeout:      5,
		HealthCheckInterval: 6,
	})

	assert.Equal(t, database.Config{
		Provider:            "postgres",
		URL:                 "postgres://localhost/app",
		Driver:              "pgx",
		PrimaryKey:          "uuid",
		MaxConnections:      3,
		MaxIdleTime:         4,
		ConnectTimeout:      5,
		HealthCheckInterval: 6,
	}, got)
}

func TestContainer_Lifecycle(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{Provider: "sqlite", URL: ":memory:"}}
	c, err := NewContainer(cfg)
	require.NoError(t, err)
	ctx := context.Background()

	assert.Same(t, cfg, c.Config())
	require.NoError(t, c.Connect(ctx))

	res, err := c.Adapter().Execute(ctx, "SELECT 1 AS one")
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Rows[0]["one"])

	require.NoError(t, c.Close(ctx))
	require.NoError(t, c.Close(ctx))

	_, err = c.Adapter().Execute(ctx, "SELECT 1")
	assert.True(t, database.IsNotInitialized(err))
}

func TestWithAdapter(t *testing.T) {
	c := WithAdapter(&config.Config{}, database.Unimplemented{})

	err := c.Connect(context.Background())
	assert.True(t, database.IsCapabilityUnsupported(err))
	assert.NotNil(t, c.QueryService())
}
