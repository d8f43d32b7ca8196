// Package lifecycle folds a run's snapshot into the persistent master
// dataset. It owns the dataset exclusively for the duration of a run:
// identity keys are derived here, status transitions are computed here, and
// no other component mutates entries.
package lifecycle

import (
	"github.com/RolandGoud/bikescraper/pkg/catalog"
	"github.com/RolandGoud/bikescraper/pkg/errors"
)

// Merger merges snapshots into master datasets.
type Merger struct {
	identity catalog.IdentityOptions
}

// New creates a Merger with the given identity-key options.
func New(identity catalog.IdentityOptions) *Merger {
	return &Merger{identity: identity}
}

// Key derives the identity key the merger uses for a record.
func (m *Merger) Key(r *catalog.Record) string {
	return catalog.Identity(r, m.identity)
}

// Merge joins a snapshot against the prior dataset and returns the next
// dataset plus a summary. The prior dataset is not modified; the caller
// decides whether to persist the result.
//
// Per incoming record: a new key creates an Available entry with all three
// dates set to runDate; an existing key takes the fresher record, becomes
// Available and advances lastSeen and lastUpdated. Prior entries absent from
// the snapshot become Discontinued with only lastUpdated advanced. Entries
// are never removed.
func (m *Merger) Merge(prior *catalog.Dataset, snapshot []*catalog.Record, runDate catalog.Date) (*catalog.Dataset, *Summary, error) {
	if runDate.IsZero() {
		return nil, nil, errors.NewValidationError("runDate", runDate, "cannot be zero")
	}
	if prior == nil {
		prior = catalog.NewDataset()
	}

	next := prior.Copy()
	summary := NewSummary(runDate)
	seen := make(map[string]struct{}, len(snapshot))

	for _, record := range snapshot {
		key := m.Key(record)
		if key == "" {
			return nil, nil, errors.NewMergeError(key, "record produced an empty identity key", nil)
		}
		if _, dup := seen[key]; dup {
			return nil, nil, errors.NewMergeError(key, "duplicate identity key in snapshot", nil)
		}
		seen[key] = struct{}{}

		existing, ok := next.Entries[key]
		if !ok {
			entry := &catalog.Entry{
				Key:         key,
				Record:      *record.Copy(),
				Status:      catalog.StatusAvailable,
				FirstSeen:   runDate,
				LastSeen:    runDate,
				LastUpdated: runDate,
			}
			next.Put(entry)
			summary.New = append(summary.New, entry)
			continue
		}

		// firstSeen is immutable once set.
		existing.Record = *record.Copy()
		existing.Status = catalog.StatusAvailable
		existing.LastSeen = runDate
		existing.LastUpdated = runDate
		summary.Updated = append(summary.Updated, existing)
	}

	for _, key := range next.Keys() {
		if _, ok := seen[key]; ok {
			continue
		}
		entry := next.Entries[key]
		if entry.Status != catalog.StatusDiscontinued {
			entry.Status = catalog.StatusDiscontinued
			summary.Discontinued = append(summary.Discontinued, entry)
		}
		// lastSeen records the last actual observation; only the
		// bookkeeping date advances.
		entry.LastUpdated = runDate
	}

	summary.Total = next.Len()
	return next, summary, nil
}

// Summary reports what one merge did, in the order entries were processed.
type Summary struct {
	RunDate catalog.Date

	// New entries observed for the first time this run.
	New []*catalog.Entry

	// Updated entries re-observed this run, including reappearances.
	Updated []*catalog.Entry

	// Discontinued entries that transitioned to Discontinued this run.
	// Entries already Discontinued before the run are not listed again.
	Discontinued []*catalog.Entry

	// Total entries in the merged dataset.
	Total int
}

// NewSummary creates an empty summary for a run date.
func NewSummary(runDate catalog.Date) *Summary {
	return &Summary{RunDate: runDate}
}

// Counts returns the new/updated/discontinued totals.
func (s *Summary) Counts() (created, updated, discontinued int) {
	return len(s.New), len(s.Updated), len(s.Discontinued)
}
