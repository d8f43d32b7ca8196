// Package export renders the master dataset for downstream consumers: flat
// CSV, JSON, a WordPress/WooCommerce import sheet, a terminal table, and a
// plain-text status report. Exporters are pure readers; they never mutate
// the dataset.
package export

import (
	"strings"

	"github.com/RolandGoud/bikescraper/pkg/catalog"
)

// Filter selects entries for export. Zero-value means everything.
type Filter struct {
	// Statuses limits entries to the given statuses.
	Statuses []catalog.Status

	// Brands limits entries to the given brands, matched case-insensitively.
	Brands []string
}

// AvailableOnly is the filter WordPress exports use.
func AvailableOnly() Filter {
	return Filter{Statuses: []catalog.Status{catalog.StatusAvailable}}
}

// Match reports whether an entry passes the filter.
func (f Filter) Match(e *catalog.Entry) bool {
	if len(f.Statuses) > 0 {
		found := false
		for _, s := range f.Statuses {
			if e.Status == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(f.Brands) > 0 {
		found := false
		for _, b := range f.Brands {
			if strings.EqualFold(e.Record.Brand, b) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Select returns the dataset's matching entries ordered by identity key.
func Select(dataset *catalog.Dataset, filter Filter) []*catalog.Entry {
	var entries []*catalog.Entry
	for _, e := range dataset.List() {
		if filter.Match(e) {
			entries = append(entries, e)
		}
	}
	return entries
}

// Table is a rendered sheet: a header row plus data rows, all strings.
type Table struct {
	Header []string
	Rows   [][]string
}

// displayName is the product title: model plus variant.
func displayName(r *catalog.Record) string {
	return joinNonEmpty(" ", r.Model, r.Variant)
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// cleanField strips characters that break flat-file structure: newlines and
// tabs become spaces, repeated whitespace collapses.
func cleanField(value string) string {
	return strings.Join(strings.Fields(value), " ")
}
