package catalog

import (
	"github.com/RolandGoud/bikescraper/pkg/constants"
)

// Record is one product as observed in one ingestion run, after
// normalization onto the canonical schema. Records are transient: they exist
// only within a run and are folded into Entries by the lifecycle merge.
type Record struct {
	Brand       string `json:"brand" yaml:"brand"`
	Model       string `json:"model" yaml:"model"`
	Variant     string `json:"variant" yaml:"variant"`
	Color       string `json:"color,omitempty" yaml:"color,omitempty"`
	SKU         string `json:"sku,omitempty" yaml:"sku,omitempty"`
	Price       string `json:"price,omitempty" yaml:"price,omitempty"`
	Category    string `json:"category,omitempty" yaml:"category,omitempty"`
	URL         string `json:"url,omitempty" yaml:"url,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Specs maps canonical specification fields to values. After the
	// reconcile stage every record in a snapshot carries the identical
	// key set; iteration order for export comes from the vocabulary.
	Specs map[Field]SpecValue `json:"specs" yaml:"specs"`

	// Images is an ordered sequence of hero image URLs, capped at
	// constants.MaxHeroImages. Images are not part of the schema-parity
	// contract.
	Images []string `json:"images,omitempty" yaml:"images,omitempty"`
}

// Spec returns the value for a field, or an empty observed value when the
// field is not present.
func (r *Record) Spec(f Field) SpecValue {
	if v, ok := r.Specs[f]; ok {
		return v
	}
	return ObservedValue("")
}

// SetSpec sets a specification value, allocating the map if needed.
func (r *Record) SetSpec(f Field, v SpecValue) {
	if r.Specs == nil {
		r.Specs = make(map[Field]SpecValue)
	}
	r.Specs[f] = v
}

// SpecFields returns the record's populated specification keys in the fixed
// vocabulary order.
func (r *Record) SpecFields() []Field {
	set := make(map[Field]struct{}, len(r.Specs))
	for f := range r.Specs {
		set[f] = struct{}{}
	}
	return OrderFields(set)
}

// CapImages truncates the image sequence to the maximum carried per record.
func (r *Record) CapImages() {
	if len(r.Images) > constants.MaxHeroImages {
		r.Images = r.Images[:constants.MaxHeroImages]
	}
}

// Copy returns a deep copy of the record.
func (r *Record) Copy() *Record {
	clone := *r
	if r.Specs != nil {
		clone.Specs = make(map[Field]SpecValue, len(r.Specs))
		for f, v := range r.Specs {
			clone.Specs[f] = v
		}
	}
	if r.Images != nil {
		clone.Images = append([]string(nil), r.Images...)
	}
	return &clone
}
