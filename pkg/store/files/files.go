// Package files persists the master dataset as a single YAML file.
//
// Saves are atomic: the dataset is written to a temp file in the target
// directory and renamed over the previous file. A lock file next to the
// dataset serializes concurrent runs against the same path.
package files

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/agentstation/utc"
	"github.com/goccy/go-yaml"
	"github.com/gofrs/flock"

	"github.com/RolandGoud/bikescraper/pkg/catalog"
	"github.com/RolandGoud/bikescraper/pkg/constants"
	"github.com/RolandGoud/bikescraper/pkg/errors"
)

const backend = "files"

// documentVersion is the on-disk format version.
const documentVersion = 1

// document is the on-disk shape of a dataset. Entries are a sorted list
// rather than a map so that consecutive saves diff cleanly.
type document struct {
	Version int              `yaml:"version"`
	SavedAt string           `yaml:"savedAt"`
	Entries []*catalog.Entry `yaml:"entries"`
}

// Store reads and writes one dataset file.
type Store struct {
	path string
	lock *flock.Flock
}

// New creates a store for the given dataset path. The file does not need to
// exist yet.
func New(path string) *Store {
	return &Store{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Path returns the dataset file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the dataset file. A missing file yields an empty dataset.
func (s *Store) Load(ctx context.Context) (*catalog.Dataset, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return catalog.NewDataset(), nil
	}

	unlock, err := s.acquire(ctx, s.lock.TryRLockContext)
	if err != nil {
		return nil, err
	}
	defer unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return catalog.NewDataset(), nil
	}
	if err != nil {
		return nil, errors.NewStoreError("load", backend, s.path, err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewStoreError("load", backend, s.path,
			errors.WrapParse("yaml", s.path, err))
	}

	dataset := catalog.NewDataset()
	for _, e := range doc.Entries {
		dataset.Put(e)
	}
	if err := dataset.Validate(); err != nil {
		return nil, errors.NewStoreError("load", backend, s.path, err)
	}
	return dataset, nil
}

// Save writes the dataset atomically. The previous file stays intact until
// the rename.
func (s *Store) Save(ctx context.Context, dataset *catalog.Dataset) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.NewStoreError("save", backend, s.path, err)
	}

	unlock, err := s.acquire(ctx, s.lock.TryLockContext)
	if err != nil {
		return err
	}
	defer unlock()

	doc := document{
		Version: documentVersion,
		SavedAt: utc.Now().Format(time.RFC3339),
		Entries: dataset.List(),
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return errors.NewStoreError("save", backend, s.path, err)
	}

	tmp, err := os.CreateTemp(dir, ".master-*.yaml")
	if err != nil {
		return errors.NewStoreError("save", backend, s.path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.NewStoreError("save", backend, s.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.NewStoreError("save", backend, s.path, err)
	}
	if err := os.Chmod(tmpPath, constants.FilePermissions); err != nil {
		os.Remove(tmpPath)
		return errors.NewStoreError("save", backend, s.path, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return errors.NewStoreError("save", backend, s.path, err)
	}
	return nil
}

// Close releases the lock file handle.
func (s *Store) Close() error {
	return s.lock.Close()
}

// acquire takes the lock with retries, bounded by constants.LockTimeout.
func (s *Store) acquire(ctx context.Context, try func(context.Context, time.Duration) (bool, error)) (func(), error) {
	lockCtx, cancel := context.WithTimeout(ctx, constants.LockTimeout)
	defer cancel()

	ok, err := try(lockCtx, constants.LockRetryDelay)
	if err != nil {
		return nil, errors.NewStoreError("lock", backend, s.path, err)
	}
	if !ok {
		return nil, errors.NewStoreError("lock", backend, s.path,
			errors.New("dataset is locked by another run"))
	}
	return func() { s.lock.Unlock() }, nil
}
