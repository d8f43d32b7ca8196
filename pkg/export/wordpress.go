package export

import (
	"fmt"
	"strings"

	"github.com/agentstation/utc"

	"github.com/RolandGoud/bikescraper/pkg/catalog"
	"github.com/RolandGoud/bikescraper/pkg/constants"
)

// importSource identifies the sheet's producer in the import metadata.
const importSource = "bikescraper"

// WordPress renders entries as a WooCommerce product import sheet.
// Specification fields and lifecycle dates become meta: custom fields; the
// first hero image is the main product image and the rest become
// meta:additional_image_N fields. Callers pass Available-only entries; a
// webshop never shows discontinued stock.
func WordPress(entries []*catalog.Entry, brands []string) *Table {
	fields := specFields(entries)
	images := maxImages(entries)

	header := []string{
		"post_title", "post_content", "post_status", "post_type",
		"sku", "regular_price", "product_cat", "brand", "product_url",
		"variant", "color",
		"meta:availability_status",
		"meta:first_seen_date",
		"meta:last_seen_date",
		"meta:last_updated",
	}
	for _, f := range fields {
		header = append(header, "meta:"+string(f))
	}
	if images > 0 {
		header = append(header, "images")
	}
	for i := 2; i <= images; i++ {
		header = append(header, fmt.Sprintf("meta:additional_image_%d", i))
	}
	header = append(header, "meta:import_date", "meta:import_source", "meta:import_brands")

	importDate := utc.Now().Format(constants.DateFormat + " 15:04:05")
	importBrands := "all_brands"
	if len(brands) > 0 {
		importBrands = strings.Join(brands, ", ")
	}

	t := &Table{Header: header}
	for _, e := range entries {
		r := &e.Record
		title := cleanField(displayName(r))
		if title == "" {
			continue
		}

		row := []string{
			title,
			cleanField(r.Description),
			"publish",
			"product",
			cleanField(r.SKU),
			cleanField(r.Price),
			cleanField(r.Category),
			cleanField(r.Brand),
			cleanField(r.URL),
			cleanField(r.Variant),
			cleanField(r.Color),
			string(e.Status),
			e.FirstSeen.String(),
			e.LastSeen.String(),
			e.LastUpdated.String(),
		}
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
		row = append(row, importDate, importSource, importBrands)
		t.Rows = append(t.Rows, row)
	}
	return t
}
