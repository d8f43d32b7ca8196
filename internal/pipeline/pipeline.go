// Package pipeline runs one ingestion: normalize per-brand snapshots,
// reconcile the schema, run inference, merge against the prior dataset and
// save the result. A run either produces a fully updated dataset or leaves
// the store untouched.
package pipeline

import (
	"context"

	"github.com/google/uuid"

	"github.com/RolandGoud/bikescraper/internal/config"
	"github.com/RolandGoud/bikescraper/pkg/catalog"
	"github.com/RolandGoud/bikescraper/pkg/errors"
	"github.com/RolandGoud/bikescraper/pkg/inference"
	"github.com/RolandGoud/bikescraper/pkg/lifecycle"
	"github.com/RolandGoud/bikescraper/pkg/logging"
	"github.com/RolandGoud/bikescraper/pkg/normalize"
	"github.com/RolandGoud/bikescraper/pkg/reconcile"
	"github.com/RolandGoud/bikescraper/pkg/store"
)

// Snapshot is one brand's raw scrape: the brand name plus its raw records
// as flat key-value maps.
type Snapshot struct {
	Brand   string              `json:"brand" yaml:"brand"`
	Records []map[string]string `json:"records" yaml:"records"`
}

// Options control one run.
type Options struct {
	// RunID identifies the run in logs and reports. Generated when empty.
	RunID string

	// RunDate is the calendar day the snapshot is merged under. Defaults
	// to today.
	RunDate catalog.Date

	// DryRun computes the full result without saving.
	DryRun bool
}

// Outcome bundles what one run produced.
type Outcome struct {
	Result  *reconcile.Result
	Summary *lifecycle.Summary
	Dataset *catalog.Dataset
	Reports []*normalize.Report
}

// Pipeline wires the stages together over a store.
type Pipeline struct {
	cfg    *config.Ingestion
	engine *inference.Engine
	merger *lifecycle.Merger
	store  store.Store
}

// New creates a pipeline using the default inference rules.
func New(cfg *config.Ingestion, st store.Store) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		engine: inference.New(inference.DefaultRules()...),
		merger: lifecycle.New(cfg.Identity),
		store:  st,
	}
}

// Run executes one ingestion over the given snapshots. Recoverable record
// rejections are counted and the run continues; a fatal error aborts before
// the store is written, leaving the prior dataset intact.
func (p *Pipeline) Run(ctx context.Context, snapshots []Snapshot, opts Options) (*Outcome, error) {
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	if opts.RunDate.IsZero() {
		opts.RunDate = catalog.Today()
	}

	log := logging.FromContext(logging.WithRunID(ctx, opts.RunID))
	result := reconcile.NewResult(opts.RunID, opts.RunDate)
	result.Metadata.DryRun = opts.DryRun

	outcome := &Outcome{Result: result}

	// Normalize.
	var records []*catalog.Record
	for _, snapshot := range snapshots {
		mapping, err := p.cfg.Mapping(snapshot.Brand)
		if err != nil {
			result.AddError(err)
			return outcome, err
		}
		normalizer, err := normalize.New(mapping)
		if err != nil {
			result.AddError(err)
			return outcome, err
		}

		brandRecords, report := normalizer.NormalizeAll(snapshot.Records)
		records = append(records, brandRecords...)
		outcome.Reports = append(outcome.Reports, report)

		result.AddBrand(normalizer.Brand())
		result.Stats.RecordsAccepted += report.Accepted
		result.Stats.RecordsRejected += report.Rejected
		if report.Rejected > 0 {
			result.Stats.RejectedByBrand[normalizer.Brand()] += report.Rejected
		}
		for _, rejection := range report.Rejections {
			log.Warn().Str("brand", snapshot.Brand).Err(rejection).Msg("Record rejected")
		}
		log.Info().
			Str("brand", snapshot.Brand).
			Int("accepted", report.Accepted).
			Int("rejected", report.Rejected).
			Msg("Normalized snapshot")
	}

	if err := ctx.Err(); err != nil {
		result.AddError(err)
		return outcome, errors.ErrCanceled
	}

	// Reconcile to schema parity.
	result.Fields = reconcile.Snapshot(records)
	log.Info().Int("fields", len(result.Fields)).Msg("Reconciled schema")

	// Inference.
	result.Stats.FieldsInferred = p.engine.InferSnapshot(records)
	log.Info().Int("inferred", result.Stats.FieldsInferred).Msg("Inference pass complete")

	// Merge against the prior dataset.
	prior, err := p.store.Load(ctx)
	if err != nil {
		result.AddError(err)
		return outcome, err
	}

	next, summary, err := p.merger.Merge(prior, records, opts.RunDate)
	if err != nil {
		result.AddError(err)
		return outcome, err
	}
	outcome.Summary = summary
	outcome.Dataset = next

	created, updated, discontinued := summary.Counts()
	result.Stats.EntriesNew = created
	result.Stats.EntriesUpdated = updated
	result.Stats.EntriesDiscontinued = discontinued
	result.Stats.EntriesTotal = summary.Total

	// Re-establish parity across the whole dataset: entries carried over
	// from earlier runs must expose the same key set as this run's records.
	merged := make([]*catalog.Record, 0, next.Len())
	for _, e := range next.List() {
		merged = append(merged, &e.Record)
	}
	result.Fields = reconcile.Snapshot(merged)

	if err := next.Validate(); err != nil {
		result.AddError(err)
		return outcome, err
	}

	if opts.DryRun {
		log.Info().Msg("Dry run, skipping save")
		result.Finalize()
		return outcome, nil
	}

	if err := p.store.Save(ctx, next); err != nil {
		result.AddError(err)
		return outcome, err
	}

	result.Finalize()
	log.Info().
		Int("new", created).
		Int("updated", updated).
		Int("discontinued", discontinued).
		Int("total", summary.Total).
		Dur("duration", result.Metadata.Duration).
		Msg("Run complete")
	return outcome, nil
}
