// Package memory provides an in-memory dataset store for tests and dry runs.
package memory

import (
	"context"
	"sync"

	"github.com/RolandGoud/bikescraper/pkg/catalog"
)

// Store holds a dataset in memory. Load and Save exchange deep copies, so a
// caller mutating its dataset never mutates the stored one.
type Store struct {
	mu      sync.RWMutex
	dataset *catalog.Dataset
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{}
}

// Seed creates a store preloaded with a copy of the given dataset.
func Seed(dataset *catalog.Dataset) *Store {
	s := New()
	if dataset != nil {
		s.dataset = dataset.Copy()
	}
	return s
}

// Load returns a copy of the stored dataset, or an empty dataset when
// nothing has been saved.
func (s *Store) Load(ctx context.Context) (*catalog.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dataset == nil {
		return catalog.NewDataset(), nil
	}
	return s.dataset.Copy(), nil
}

// Save stores a copy of the dataset.
func (s *Store) Save(ctx context.Context, dataset *catalog.Dataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dataset = dataset.Copy()
	return nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}
