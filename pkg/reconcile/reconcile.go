// Package reconcile guarantees schema parity across a snapshot: after
// reconciliation every record, regardless of brand, exposes the identical
// ordered set of specification keys. The rest of the pipeline depends on
// this column-parity invariant.
package reconcile

import (
	"github.com/RolandGoud/bikescraper/pkg/catalog"
)

// Snapshot reconciles a full run's records in place. It computes the union
// of specification keys populated by any brand's mapping, bounded by the
// closed vocabulary, and pads every record to exactly that key set in the
// fixed vocabulary order. Padding inserts empty observed values; this stage
// never invents data.
func Snapshot(records []*catalog.Record) []catalog.Field {
	union := make(map[catalog.Field]struct{})
	for _, r := range records {
		for f := range r.Specs {
			if catalog.KnownField(f) {
				union[f] = struct{}{}
			}
		}
	}

	fields := catalog.OrderFields(union)

	for _, r := range records {
		if r.Specs == nil {
			r.Specs = make(map[catalog.Field]catalog.SpecValue, len(fields))
		}
		// Every record carries exactly the union, nothing more.
		for f := range r.Specs {
			if _, ok := union[f]; !ok {
				delete(r.Specs, f)
			}
		}
		for _, f := range fields {
			if _, ok := r.Specs[f]; !ok {
				r.Specs[f] = catalog.ObservedValue("")
			}
		}
	}

	return fields
}

// Verify checks the parity invariant over a reconciled snapshot, returning
// false on the first record whose key set diverges from fields.
func Verify(records []*catalog.Record, fields []catalog.Field) bool {
	for _, r := range records {
		if len(r.Specs) != len(fields) {
			return false
		}
		for _, f := range fields {
			if _, ok := r.Specs[f]; !ok {
				return false
			}
		}
	}
	return true
}
