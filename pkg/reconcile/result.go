package reconcile

import (
	"fmt"
	"sort"
	"time"

	"github.com/agentstation/utc"

	"github.com/RolandGoud/bikescraper/pkg/catalog"
)

// Result is the outcome of one ingestion run, reported alongside the merged
// dataset. A run produces either a fully updated, parity-valid dataset plus
// this summary, or no change at all.
type Result struct {
	// RunID identifies this ingestion run in logs and reports.
	RunID string

	// RunDate is the calendar day the snapshot was merged under.
	RunDate catalog.Date

	// Fields is the reconciled specification key set, in order.
	Fields []catalog.Field

	// Errors contains fatal errors. Rejections are not listed here; they
	// live in the per-brand reports.
	Errors []error

	Metadata Metadata
	Stats    Statistics
}

// Metadata describes when and how the run executed.
type Metadata struct {
	StartTime utc.Time
	EndTime   utc.Time
	Duration  time.Duration
	Brands    []string
	DryRun    bool
}

// Statistics counts what the run did.
type Statistics struct {
	// Normalization
	RecordsAccepted int
	RecordsRejected int
	RejectedByBrand map[string]int

	// Inference
	FieldsInferred int

	// Lifecycle merge
	EntriesNew          int
	EntriesUpdated      int
	EntriesDiscontinued int
	EntriesTotal        int
}

// NewResult starts a result for a run.
func NewResult(runID string, runDate catalog.Date) *Result {
	return &Result{
		RunID:   runID,
		RunDate: runDate,
		Metadata: Metadata{
			StartTime: utc.Now(),
		},
		Stats: Statistics{
			RejectedByBrand: make(map[string]int),
		},
	}
}

// AddBrand records a brand as part of this run.
func (r *Result) AddBrand(brand string) {
	r.Metadata.Brands = append(r.Metadata.Brands, brand)
	sort.Strings(r.Metadata.Brands)
}

// AddError records a fatal error.
func (r *Result) AddError(err error) {
	if err != nil {
		r.Errors = append(r.Errors, err)
	}
}

// HasErrors reports whether the run hit a fatal error.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// Finalize stamps the end time and duration.
func (r *Result) Finalize() *Result {
	r.Metadata.EndTime = utc.Now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
	return r
}

// Summary returns a one-line human-readable summary.
func (r *Result) Summary() string {
	if r.HasErrors() {
		return fmt.Sprintf("Run %s failed with %d errors", r.RunID, len(r.Errors))
	}
	return fmt.Sprintf(
		"Run %s (%s): %d accepted, %d rejected, %d inferred; %d new, %d updated, %d discontinued, %d total",
		r.RunID, r.RunDate,
		r.Stats.RecordsAccepted, r.Stats.RecordsRejected, r.Stats.FieldsInferred,
		r.Stats.EntriesNew, r.Stats.EntriesUpdated, r.Stats.EntriesDiscontinued,
		r.Stats.EntriesTotal,
	)
}
