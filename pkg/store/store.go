// Package store defines the persistence contract for the master dataset.
// A run loads the prior dataset, merges, and saves the result in one atomic
// replacement; a failed run must leave the prior dataset untouched.
package store

import (
	"context"

	"github.com/RolandGoud/bikescraper/pkg/catalog"
	"github.com/RolandGoud/bikescraper/pkg/errors"
)

// Store persists master datasets. Implementations must make Save atomic:
// readers observe either the prior dataset or the new one, never a partial
// write.
type Store interface {
	// Load returns the persisted dataset. A store with no dataset yet
	// returns an empty dataset, not an error.
	Load(ctx context.Context) (*catalog.Dataset, error)

	// Save replaces the persisted dataset with the given one.
	Save(ctx context.Context, dataset *catalog.Dataset) error

	// Close releases the store's resources.
	Close() error
}

// ReadOnly wraps a store so that Save fails. Dry runs load through the
// wrapped store and are guaranteed not to write through it.
func ReadOnly(s Store) Store {
	return &readOnlyStore{inner: s}
}

type readOnlyStore struct {
	inner Store
}

func (r *readOnlyStore) Load(ctx context.Context) (*catalog.Dataset, error) {
	return r.inner.Load(ctx)
}

func (r *readOnlyStore) Save(context.Context, *catalog.Dataset) error {
	return errors.ErrReadOnly
}

func (r *readOnlyStore) Close() error {
	return r.inner.Close()
}
