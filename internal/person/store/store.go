// Package store defines the record store contract the person services and
// the CDC relay depend on. Implementations live in the memory and postgres
// subpackages.
package store

import (
	"context"

	"person-service/internal/person/models"
)

// Store is the durable person collection, keyed by record id.
type Store interface {
	// PutIfAbsent writes the record unless its id already exists, in which
	// case it returns sentinel.ErrConflict and leaves the stored record
	// untouched. Every successful put appends an INSERT mutation to the
	// store's change feed.
	PutIfAbsent(ctx context.Context, person *models.Person) error

	// ScanAll returns every stored record in a single pass. No ordering
	// guarantee.
	ScanAll(ctx context.Context) ([]*models.Person, error)
}
