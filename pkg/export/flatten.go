package export

import (
	"fmt"

	"github.com/RolandGoud/bikescraper/pkg/catalog"
	"github.com/RolandGoud/bikescraper/pkg/constants"
)

// FlattenOptions control the flat sheet layout.
type FlattenOptions struct {
	// DiscontinuedDate adds a date_discontinued column directly after the
	// name, filled with lastSeen for discontinued entries. Used by the
	// discontinued report so the date is visible without scrolling.
	DiscontinuedDate bool
}

// Flatten renders entries as one flat sheet. Core columns come first, then
// lifecycle dates, then one spec_ column per specification field in the
// fixed vocabulary order, then one column per hero image position.
func Flatten(entries []*catalog.Entry, opts FlattenOptions) *Table {
	fields := specFields(entries)
	images := maxImages(entries)

	header := []string{"name"}
	if opts.DiscontinuedDate {
		header = append(header, "date_discontinued")
	}
	header = append(header,
		"brand", "model", "variant", "color", "sku", "price", "category",
		"url", "description", "status",
		"first_seen_date", "last_seen_date", "last_updated",
	)
	for _, f := range fields {
		header = append(header, "spec_"+string(f))
	}
	for i := 1; i <= images; i++ {
		header = append(header, fmt.Sprintf("hero_image_%d_url", i))
	}

	t := &Table{Header: header}
	for _, e := range entries {
		r := &e.Record
		row := []string{cleanField(displayName(r))}
		if opts.DiscontinuedDate {
			date := ""
			if e.Status == catalog.StatusDiscontinued {
				date = e.LastSeen.String()
			}
			row = append(row, date)
		}
		row = append(row,
			cleanField(r.Brand),
			cleanField(r.Model),
			cleanField(r.Variant),
			cleanField(r.Color),
			cleanField(r.SKU),
			cleanField(r.Price),
			cleanField(r.Category),
			cleanField(r.URL),
			cleanField(r.Description),
			string(e.Status),
			e.FirstSeen.String(),
			e.LastSeen.String(),
			e.LastUpdated.String(),
		)
		for _, f := range fields {
			row = append(row, cleanField(r.Spec(f).Value))
		}
		for i := 0; i < images; i++ {
			url := ""
			if i < len(r.Images) {
				url = r.Images[i]
			}
			row = append(row, cleanField(url))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// specFields returns the union of specification fields across entries, in
// the fixed vocabulary order. Past the reconcile stage every entry carries
// the same set, so the union equals any single entry's fields.
func specFields(entries []*catalog.Entry) []catalog.Field {
	set := make(map[catalog.Field]struct{})
	for _, e := range entries {
		for f := range e.Record.Specs {
			set[f] = struct{}{}
		}
	}
	return catalog.OrderFields(set)
}

func maxImages(entries []*catalog.Entry) int {
	max := 0
	for _, e := range entries {
		if n := len(e.Record.Images); n > max {
			max = n
		}
	}
	if max > constants.MaxHeroImages {
		max = constants.MaxHeroImages
	}
	return max
}
