// Package normalize maps one brand's raw scraped records onto the canonical
// schema. Mappings are declarative per-brand tables supplied as
// configuration; adding a brand requires a new table, not new code.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/RolandGoud/bikescraper/pkg/catalog"
	"github.com/RolandGoud/bikescraper/pkg/errors"
)

// Core field names a mapping may target.
const (
	CoreModel       = "model"
	CoreVariant     = "variant"
	CoreColor       = "color"
	CoreSKU         = "sku"
	CorePrice       = "price"
	CoreCategory    = "category"
	CoreURL         = "url"
	CoreDescription = "description"
)

var knownCoreFields = map[string]struct{}{
	CoreModel:       {},
	CoreVariant:     {},
	CoreColor:       {},
	CoreSKU:         {},
	CorePrice:       {},
	CoreCategory:    {},
	CoreURL:         {},
	CoreDescription: {},
}

// Mapping is one brand's field-mapping table: canonical field on the left,
// the brand's source key on the right.
type Mapping struct {
	// Brand is the canonical brand name for every record this mapping
	// produces.
	Brand string `yaml:"brand" json:"brand"`

	// Core maps core record fields (model, variant, color, sku, price,
	// category, url, description) to source keys.
	Core map[string]string `yaml:"core" json:"core"`

	// Specs maps canonical specification fields to source keys. Every
	// field listed here appears on each normalized record, empty when
	// the source record lacks the key.
	Specs map[catalog.Field]string `yaml:"specs" json:"specs"`

	// Images lists the source keys holding image URLs, in hero order.
	Images []string `yaml:"images" json:"images"`

	// Required lists the core fields whose absence rejects a record.
	// Defaults to model and variant, the identity-contributing fields.
	Required []string `yaml:"required" json:"required"`
}

// Validate checks the mapping against the closed vocabulary. A mapping that
// references an unknown specification field is schema drift: fatal at
// configuration load, before any record is processed.
func (m *Mapping) Validate() error {
	if m.Brand == "" {
		return errors.NewConfigError("mapping", "brand cannot be empty", nil)
	}
	for field := range m.Specs {
		if !catalog.KnownField(field) {
			return errors.NewSchemaDriftError(m.Brand, string(field))
		}
	}
	for field := range m.Core {
		if _, ok := knownCoreFields[field]; !ok {
			return errors.NewConfigError("mapping",
				"unknown core field "+field+" for brand "+m.Brand, nil)
		}
	}
	for _, field := range m.Required {
		if _, ok := knownCoreFields[field]; !ok {
			return errors.NewConfigError("mapping",
				"unknown required field "+field+" for brand "+m.Brand, nil)
		}
	}
	return nil
}

// required returns the effective required core fields.
func (m *Mapping) required() []string {
	if len(m.Required) > 0 {
		return m.Required
	}
	return []string{CoreModel, CoreVariant}
}

// Report summarizes one brand's normalization pass. Rejected records are
// counted and reported, never silently dropped.
type Report struct {
	Brand      string
	Accepted   int
	Rejected   int
	Rejections []error
}

// Normalizer transforms one brand's raw records into canonical records.
type Normalizer struct {
	mapping Mapping
	caser   cases.Caser
}

// New creates a Normalizer, validating the mapping first.
func New(mapping Mapping) (*Normalizer, error) {
	if err := mapping.Validate(); err != nil {
		return nil, err
	}
	return &Normalizer{
		mapping: mapping,
		caser:   cases.Title(language.English, cases.NoLower),
	}, nil
}

// Brand returns the canonical brand name this normalizer produces.
func (n *Normalizer) Brand() string {
	return n.mapping.Brand
}

// Normalize maps a single raw record onto the canonical schema. It is a
// pure transform: unknown source keys are dropped, known-but-absent keys
// yield empty observed values, and a record missing a required identity
// field is rejected with a RejectedRecordError.
func (n *Normalizer) Normalize(raw map[string]string) (*catalog.Record, error) {
	record := &catalog.Record{
		Brand: n.caser.String(strings.TrimSpace(n.mapping.Brand)),
		Specs: make(map[catalog.Field]catalog.SpecValue, len(n.mapping.Specs)),
	}

	core := func(field string) string {
		key, ok := n.mapping.Core[field]
		if !ok {
			return ""
		}
		return clean(raw[key])
	}

	record.Model = core(CoreModel)
	record.Variant = core(CoreVariant)
	record.Color = core(CoreColor)
	record.SKU = core(CoreSKU)
	record.Price = core(CorePrice)
	record.Category = core(CoreCategory)
	record.URL = core(CoreURL)
	record.Description = core(CoreDescription)

	if missing := n.missingRequired(record); len(missing) > 0 {
		return nil, errors.NewRejectedRecordError(n.mapping.Brand, record.Model, missing)
	}

	for field, sourceKey := range n.mapping.Specs {
		record.Specs[field] = catalog.ObservedValue(clean(raw[sourceKey]))
	}

	for _, key := range n.mapping.Images {
		if url := strings.TrimSpace(raw[key]); url != "" {
			record.Images = append(record.Images, url)
		}
	}
	record.CapImages()

	return record, nil
}

// NormalizeAll maps a full raw snapshot for this brand, collecting
// rejections into the report and continuing past them.
func (n *Normalizer) NormalizeAll(raws []map[string]string) ([]*catalog.Record, *Report) {
	report := &Report{Brand: n.mapping.Brand}
	records := make([]*catalog.Record, 0, len(raws))

	for _, raw := range raws {
		record, err := n.Normalize(raw)
		if err != nil {
			report.Rejected++
			report.Rejections = append(report.Rejections, err)
			continue
		}
		report.Accepted++
		records = append(records, record)
	}

	return records, report
}

func (n *Normalizer) missingRequired(r *catalog.Record) []string {
	var missing []string
	for _, field := range n.mapping.required() {
		value := ""
		switch field {
		case CoreModel:
			value = r.Model
		case CoreVariant:
			value = r.Variant
		case CoreColor:
			value = r.Color
		case CoreSKU:
			value = r.SKU
		case CorePrice:
			value = r.Price
		case CoreCategory:
			value = r.Category
		case CoreURL:
			value = r.URL
		case CoreDescription:
			value = r.Description
		}
		if value == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

// clean trims a raw value and collapses internal whitespace runs, including
// newlines and tabs, into single spaces.
func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
