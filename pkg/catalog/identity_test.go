package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RolandGoud/bikescraper/pkg/catalog"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Domane", "domane"},
		{"spaces", "Domane AL 2", "domane-al-2"},
		{"diacritics", "Émonda SLR", "emonda-slr"},
		{"punctuation runs", "Speed  Concept / TT", "speed-concept-tt"},
		{"leading and trailing junk", " (Rim) ", "rim"},
		{"empty", "", ""},
		{"only junk", "//--", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, catalog.Slug(tt.input))
		})
	}
}

func TestIdentity(t *testing.T) {
	base := func() *catalog.Record {
		return &catalog.Record{
			Brand:   "Trek",
			Model:   "Domane AL 2",
			Variant: "Rim",
			Color:   "Quicksilver",
			SKU:     "5302000",
		}
	}

	t.Run("all fields", func(t *testing.T) {
		key := catalog.Identity(base(), catalog.DefaultIdentityOptions())
		assert.Equal(t, "trek-domane-al-2-rim-quicksilver-5302000", key)
	})

	t.Run("without color", func(t *testing.T) {
		opts := catalog.IdentityOptions{IncludeColor: false, IncludeSKU: true}
		key := catalog.Identity(base(), opts)
		assert.Equal(t, "trek-domane-al-2-rim-5302000", key)
	})

	t.Run("missing sku is skipped", func(t *testing.T) {
		r := base()
		r.SKU = ""
		key := catalog.Identity(r, catalog.DefaultIdentityOptions())
		assert.Equal(t, "trek-domane-al-2-rim-quicksilver", key)
	})

	t.Run("stable across runs", func(t *testing.T) {
		opts := catalog.DefaultIdentityOptions()
		assert.Equal(t, catalog.Identity(base(), opts), catalog.Identity(base(), opts))
	})

	t.Run("diacritics fold to the same key", func(t *testing.T) {
		a := base()
		a.Model = "Émonda SL 5"
		b := base()
		b.Model = "Emonda SL 5"
		opts := catalog.DefaultIdentityOptions()
		assert.Equal(t, catalog.Identity(a, opts), catalog.Identity(b, opts))
	})

	t.Run("distinct colors distinct keys", func(t *testing.T) {
		a := base()
		b := base()
		b.Color = "Crimson"
		opts := catalog.DefaultIdentityOptions()
		assert.NotEqual(t, catalog.Identity(a, opts), catalog.Identity(b, opts))
	})
}
