// Package config loads the ingestion configuration: per-brand field-mapping
// tables plus identity-key options. Built-in defaults cover Trek and Canyon;
// a YAML file can replace or extend them. Mapping validation runs at load,
// so schema drift fails the run before any record is processed.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/RolandGoud/bikescraper/pkg/catalog"
	"github.com/RolandGoud/bikescraper/pkg/errors"
	"github.com/RolandGoud/bikescraper/pkg/normalize"
)

// Ingestion is the validated ingestion configuration.
type Ingestion struct {
	Identity catalog.IdentityOptions
	Mappings []normalize.Mapping
}

// file is the YAML shape of an ingestion config file.
type file struct {
	Identity identitySection     `yaml:"identity"`
	Brands   []normalize.Mapping `yaml:"brands"`
}

type identitySection struct {
	IncludeColor *bool `yaml:"includeColor"`
	IncludeSKU   *bool `yaml:"includeSku"`
}

// Default returns the built-in configuration: the Trek and Canyon mappings
// with default identity options.
func Default() *Ingestion {
	return &Ingestion{
		Identity: catalog.DefaultIdentityOptions(),
		Mappings: []normalize.Mapping{
			defaultMapping("Trek"),
			defaultMapping("Canyon"),
		},
	}
}

// defaultMapping is the unified raw-record layout both built-in brand
// scrapers emit: lowercase core keys, Dutch specification keys, numbered
// hero image keys.
func defaultMapping(brand string) normalize.Mapping {
	specs := make(map[catalog.Field]string, len(catalog.Vocabulary()))
	for _, f := range catalog.Vocabulary() {
		specs[f] = string(f)
	}

	images := make([]string, 0, 10)
	for i := 1; i <= 10; i++ {
		images = append(images, "hero_image_"+strconv.Itoa(i)+"_url")
	}

	return normalize.Mapping{
		Brand: brand,
		Core: map[string]string{
			normalize.CoreModel:       "name",
			normalize.CoreVariant:     "variant",
			normalize.CoreColor:       "color",
			normalize.CoreSKU:         "sku",
			normalize.CorePrice:       "price",
			normalize.CoreCategory:    "category",
			normalize.CoreURL:         "url",
			normalize.CoreDescription: "description",
		},
		Specs:  specs,
		Images: images,
	}
}

// Load reads an ingestion config file. An empty path yields the built-in
// defaults.
func Load(path string) (*Ingestion, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError("ingestion", "cannot read "+path, err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.NewConfigError("ingestion", "cannot parse "+path,
			errors.WrapParse("yaml", path, err))
	}

	cfg := &Ingestion{
		Identity: catalog.DefaultIdentityOptions(),
		Mappings: f.Brands,
	}
	if f.Identity.IncludeColor != nil {
		cfg.Identity.IncludeColor = *f.Identity.IncludeColor
	}
	if f.Identity.IncludeSKU != nil {
		cfg.Identity.IncludeSKU = *f.Identity.IncludeSKU
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every mapping and rejects duplicate brands.
func (c *Ingestion) Validate() error {
	if len(c.Mappings) == 0 {
		return errors.NewConfigError("ingestion", "no brand mappings configured", nil)
	}
	seen := make(map[string]struct{}, len(c.Mappings))
	for i := range c.Mappings {
		m := &c.Mappings[i]
		if err := m.Validate(); err != nil {
			return err
		}
		key := strings.ToLower(m.Brand)
		if _, dup := seen[key]; dup {
			return errors.NewConfigError("ingestion", "duplicate brand "+m.Brand, nil)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// Mapping returns the mapping for a brand, matched case-insensitively.
func (c *Ingestion) Mapping(brand string) (normalize.Mapping, error) {
	for _, m := range c.Mappings {
		if strings.EqualFold(m.Brand, brand) {
			return m, nil
		}
	}
	return normalize.Mapping{}, errors.NewNotFoundError("brand mapping", brand)
}

// Brands returns the configured brand names in declaration order.
func (c *Ingestion) Brands() []string {
	brands := make([]string, 0, len(c.Mappings))
	for _, m := range c.Mappings {
		brands = append(brands, m.Brand)
	}
	return brands
}
