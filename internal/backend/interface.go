// Package backend defines the store contract every persistence mode
// implements, and the factory that selects one at startup.
package backend

import (
	"context"

	"kharcha/internal/core"
)

// Store is the single authority for reading and mutating the expense
// collection. Implementations hide whether records live in a local
// SQLite database, a JSON file, or a remote record store.
type Store interface {
	// List returns the full collection in insertion order. Ordering for
	// display (most-recent-first) is the presentation layer's job.
	List(ctx context.Context) ([]core.Expense, error)

	// Add validates the draft, assigns an id, persists the record with
	// paid=false and returns it. No mutation happens on validation
	// failure.
	Add(ctx context.Context, draft core.Draft) (core.Expense, error)

	// SetPaid updates only the paid flag of the identified record and
	// returns the updated record. Returns core.ErrNotFound for an
	// unknown id.
	SetPaid(ctx context.Context, id string, paid bool) (core.Expense, error)

	// Remove deletes the identified record. Removing an id that is
	// already gone is a success; deletes are idempotent.
	Remove(ctx context.Context, id string) error
}

// CleanupFunc releases resources held by a store.
type CleanupFunc func() error

// Result contains the store instance and an optional cleanup function.
type Result struct {
	Store   Store
	Cleanup CleanupFunc
}

// Factory creates stores based on configuration.
type Factory interface {
	CreateStore(ctx context.Context, config Config) (*Result, error)
}

// StoreType selects a persistence mode.
type StoreType string

const (
	// SQLiteStore persists in a local SQLite database.
	SQLiteStore StoreType = "sqlite"
	// RemoteStore talks to a record-store server over HTTP.
	RemoteStore StoreType = "remote"
	// FileStore keeps the collection in memory and mirrors it to a
	// JSON file on every mutation.
	FileStore StoreType = "file"
)

// String implements fmt.Stringer.
func (st StoreType) String() string {
	return string(st)
}

// IsValid returns true if the store type is known.
func (st StoreType) IsValid() bool {
	switch st {
	case SQLiteStore, RemoteStore, FileStore:
		return true
	default:
		return false
	}
}
