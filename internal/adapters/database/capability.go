package database

import "strings"

// Capability indicates the capabilities of a dialect adapter.
type Capability int

const (
	// CapNone means no optional capabilities.
	CapNone Capability = 0
	// CapDropColumn can drop a column.
	CapDropColumn Capability = 1 << iota
	// CapReturning returns rows from insert, update and delete.
	CapReturning
	// CapCreateIfNotExists creates tables idempotently.
	CapCreateIfNotExists
	// CapOffset can skip rows when paginating.
	CapOffset
	// CapNamedParams binds parameters by name.
	CapNamedParams
	// CapLastInsertID reports generated ids through the driver result.
	CapLastInsertID
)

// Has reports whether all of want are set.
func (c Capability) Has(want Capability) bool {
	return c&want == want
}

// Supports reports whether the adapter has the capability.
func Supports(a Adapter, want Capability) bool {
	return a.Capabilities().Has(want)
}

var capabilityNames = []struct {
	cap  Capability
	name string
}{
	{CapDropColumn, "drop-column"},
	{CapReturning, "returning"},
	{CapCreateIfNotExists, "create-if-not-exists"},
	{CapOffset, "offset"},
	{CapNamedParams, "named-params"},
	{CapLastInsertID, "last-insert-id"},
}

// String lists the set capabilities, e.g. "drop-column,offset".
func (c Capability) String() string {
	var names []string
	for _, n := range capabilityNames {
		if c.Has(n.cap) {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}
