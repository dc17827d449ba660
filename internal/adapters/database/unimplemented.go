package database

import (
	"context"

	"github.com/satishbabariya/sqladmin/internal/core/query/domain"
)

// Unimplemented satisfies Adapter with every operation failing with
// ErrCapabilityUnsupported, so using it by mistake fails loudly.
type Unimplemented struct{}

// Initialize implements Adapter.
func (Unimplemented) Initialize(context.Context) error {
	return Unsupported("", "initialize")
}

// Find implements Adapter.
func (Unimplemented) Find(context.Context, string, domain.Filter, domain.Options) ([]domain.Row, error) {
	return nil, Unsupported("", "find")
}

// Create implements Adapter.
func (Unimplemented) Create(context.Context, string, domain.Record) (domain.Row, error) {
	return nil, Unsupported("", "create")
}

// Update implements Adapter.
func (Unimplemented) Update(context.Context, string, domain.Record, domain.Filter) (*domain.MutationResult, error) {
	return nil, Unsupported("", "update")
}

// Delete implements Adapter.
func (Unimplemented) Delete(context.Context, string, domain.Filter) (*domain.MutationResult, error) {
	return nil, Unsupported("", "delete")
}

// Execute implements Adapter.
func (Unimplemented) Execute(context.Context, string, ...interface{}) (*domain.ExecResult, error) {
	return nil, Unsupported("", "execute")
}

// CreateTable implements Adapter.
func (Unimplemented) CreateTable(context.Context, string, []domain.Column) error {
	return Unsupported("", "createTable")
}

// DeleteTable implements Adapter.
func (Unimplemented) DeleteTable(context.Context, string) error {
	return Unsupported("", "deleteTable")
}

// AddColumn implements Adapter.
func (Unimplemented) AddColumn(context.Context, string, string, string) error {
	return Unsupported("", "addColumn")
}

// DropColumn implements Adapter.
func (Unimplemented) DropColumn(context.Context, string, string) error {
	return Unsupported("", "dropColumn")
}

// Ping implements Adapter.
func (Unimplemented) Ping(context.Context) error {
	return Unsupported("", "ping")
}

// Shutdown implements Adapter.
func (Unimplemented) Shutdown(context.Context) error {
	return Unsupported("", "shutdown")
}

// Dialect implements Adapter.
func (Unimplemented) Dialect() domain.SQLDialect {
	return ""
}

// Capabilities implements Adapter.
func (Unimplemented) Capabilities() Capability {
	return CapNone
}

// Ensure Unimplemented implements Adapter interface.
var _ Adapter = Unimplemented{}
