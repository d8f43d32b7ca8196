package catalog

import (
	"sort"

	"github.com/RolandGoud/bikescraper/pkg/errors"
)

// Status is the availability state of a master entry.
type Status string

// The lifecycle state machine has exactly two states. First observation is
// Available; a key missing from a run transitions to Discontinued; a key
// that reappears transitions back to Available.
const (
	StatusAvailable    Status = "Available"
	StatusDiscontinued Status = "Discontinued"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusAvailable || s == StatusDiscontinued
}

// Entry is one product in the master dataset: a record plus its availability
// lifecycle. Entries are created on first observation and never deleted;
// disappearance is a status transition, not erasure.
type Entry struct {
	Key    string `json:"key" yaml:"key"`
	Record Record `json:"record" yaml:"record"`
	Status Status `json:"status" yaml:"status"`

	// FirstSeen is immutable once set. LastSeen records the last run the
	// product was actually observed; marking an entry Discontinued does
	// not touch it. LastUpdated advances on every run that touches the
	// entry, observed or not.
	FirstSeen   Date `json:"firstSeen" yaml:"firstSeen"`
	LastSeen    Date `json:"lastSeen" yaml:"lastSeen"`
	LastUpdated Date `json:"lastUpdated" yaml:"lastUpdated"`
}

// Validate checks the entry's internal invariants.
func (e *Entry) Validate() error {
	if e.Key == "" {
		return errors.NewValidationError("key", e.Key, "cannot be empty")
	}
	if !e.Status.Valid() {
		return errors.NewValidationError("status", e.Status, "unknown status")
	}
	if e.FirstSeen.After(e.LastSeen) {
		return errors.NewValidationError("firstSeen", e.FirstSeen.String(), "later than lastSeen")
	}
	if e.LastSeen.After(e.LastUpdated) {
		return errors.NewValidationError("lastSeen", e.LastSeen.String(), "later than lastUpdated")
	}
	return nil
}

// Copy returns a deep copy of the entry.
func (e *Entry) Copy() *Entry {
	clone := *e
	clone.Record = *e.Record.Copy()
	return &clone
}

// Dataset is the master dataset: one entry per identity key. It is the only
// persistent state of the core, owned exclusively by the lifecycle merge
// during a run and handed to stores as a plain value.
type Dataset struct {
	Entries map[string]*Entry `json:"entries" yaml:"entries"`
}

// NewDataset creates an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{Entries: make(map[string]*Entry)}
}

// Get returns the entry for a key.
func (d *Dataset) Get(key string) (*Entry, error) {
	e, ok := d.Entries[key]
	if !ok {
		return nil, errors.NewNotFoundError("entry", key)
	}
	return e, nil
}

// Put inserts or replaces an entry under its key.
func (d *Dataset) Put(e *Entry) {
	if d.Entries == nil {
		d.Entries = make(map[string]*Entry)
	}
	d.Entries[e.Key] = e
}

// Len returns the number of entries.
func (d *Dataset) Len() int {
	return len(d.Entries)
}

// Keys returns all identity keys in sorted order, for deterministic
// iteration during export.
func (d *Dataset) Keys() []string {
	keys := make([]string, 0, len(d.Entries))
	for k := range d.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// List returns all entries ordered by identity key.
func (d *Dataset) List() []*Entry {
	entries := make([]*Entry, 0, len(d.Entries))
	for _, k := range d.Keys() {
		entries = append(entries, d.Entries[k])
	}
	return entries
}

// Copy returns a deep copy of the dataset.
func (d *Dataset) Copy() *Dataset {
	clone := NewDataset()
	for k, e := range d.Entries {
		clone.Entries[k] = e.Copy()
	}
	return clone
}

// CountByStatus returns the number of entries per status.
func (d *Dataset) CountByStatus() map[Status]int {
	counts := make(map[Status]int, 2)
	for _, e := range d.Entries {
		counts[e.Status]++
	}
	return counts
}

// Validate checks every entry plus the cross-entry parity invariant: all
// entries must expose the identical specification key set.
func (d *Dataset) Validate() error {
	var reference []Field
	var referenceKey string
	for _, key := range d.Keys() {
		e := d.Entries[key]
		if err := e.Validate(); err != nil {
			return err
		}
		fields := e.Record.SpecFields()
		if reference == nil {
			reference = fields
			referenceKey = key
			continue
		}
		if !sameFields(reference, fields) {
			return errors.NewValidationError("specs", key,
				"specification keys differ from entry "+referenceKey)
		}
	}
	return nil
}

func sameFields(a, b []Field) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
