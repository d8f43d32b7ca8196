package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RolandGoud/bikescraper/pkg/catalog"
	"github.com/RolandGoud/bikescraper/pkg/errors"
	"github.com/RolandGoud/bikescraper/pkg/normalize"
)

func trekMapping() normalize.Mapping {
	return normalize.Mapping{
		Brand: "trek",
		Core: map[string]string{
			normalize.CoreModel:   "name",
			normalize.CoreVariant: "variant",
			normalize.CoreColor:   "color",
			normalize.CoreSKU:     "sku",
			normalize.CorePrice:   "price",
			normalize.CoreURL:     "url",
		},
		Specs: map[catalog.Field]string{
			catalog.FieldChain:    "spec_Ketting",
			catalog.FieldCassette: "spec_Cassette",
			catalog.FieldFrame:    "spec_Frame",
		},
		Images: []string{"hero_image_1", "hero_image_2"},
	}
}

func TestMappingValidate(t *testing.T) {
	t.Run("valid mapping", func(t *testing.T) {
		m := trekMapping()
		assert.NoError(t, m.Validate())
	})

	t.Run("unknown spec field is schema drift", func(t *testing.T) {
		m := trekMapping()
		m.Specs[catalog.Field("Banden")] = "spec_Banden"
		err := m.Validate()
		require.Error(t, err)
		assert.True(t, errors.IsSchemaDrift(err))
	})

	t.Run("unknown core field", func(t *testing.T) {
		m := trekMapping()
		m.Core["serial"] = "serial_number"
		assert.Error(t, m.Validate())
	})

	t.Run("empty brand", func(t *testing.T) {
		m := trekMapping()
		m.Brand = ""
		assert.Error(t, m.Validate())
	})

	t.Run("drift rejected at construction", func(t *testing.T) {
		m := trekMapping()
		m.Specs[catalog.Field("Banden")] = "spec_Banden"
		_, err := normalize.New(m)
		assert.True(t, errors.IsSchemaDrift(err))
	})
}

func TestNormalize(t *testing.T) {
	n, err := normalize.New(trekMapping())
	require.NoError(t, err)

	raw := map[string]string{
		"name":          "Domane AL 2",
		"variant":       "Rim",
		"color":         "Quicksilver",
		"sku":           "5302000",
		"price":         "1049.00",
		"url":           "https://www.trekbikes.com/domane-al-2",
		"spec_Ketting":  "KMC X8",
		"spec_Frame":    "Alpha  Aluminium\n100 Series",
		"hero_image_1":  "https://media.trekbikes.com/1.jpg",
		"hero_image_2":  "https://media.trekbikes.com/2.jpg",
		"unmapped_junk": "dropped",
	}

	record, err := n.Normalize(raw)
	require.NoError(t, err)

	t.Run("core fields mapped", func(t *testing.T) {
		assert.Equal(t, "Trek", record.Brand)
		assert.Equal(t, "Domane AL 2", record.Model)
		assert.Equal(t, "Rim", record.Variant)
		assert.Equal(t, "5302000", record.SKU)
	})

	t.Run("whitespace collapsed", func(t *testing.T) {
		assert.Equal(t, "Alpha Aluminium 100 Series", record.Spec(catalog.FieldFrame).Value)
	})

	t.Run("mapped but absent yields empty observed", func(t *testing.T) {
		v, ok := record.Specs[catalog.FieldCassette]
		require.True(t, ok)
		assert.True(t, v.IsEmpty())
		assert.Equal(t, catalog.Observed, v.Provenance)
	})

	t.Run("unmapped source keys dropped", func(t *testing.T) {
		assert.Len(t, record.Specs, 3)
	})

	t.Run("images collected in order", func(t *testing.T) {
		assert.Equal(t, []string{
			"https://media.trekbikes.com/1.jpg",
			"https://media.trekbikes.com/2.jpg",
		}, record.Images)
	})
}

func TestNormalizeRejection(t *testing.T) {
	n, err := normalize.New(trekMapping())
	require.NoError(t, err)

	t.Run("missing model", func(t *testing.T) {
		_, err := n.Normalize(map[string]string{"variant": "Rim"})
		require.Error(t, err)
		assert.True(t, errors.IsRejectedRecord(err))
	})

	t.Run("missing variant", func(t *testing.T) {
		_, err := n.Normalize(map[string]string{"name": "Domane AL 2"})
		require.Error(t, err)
		assert.True(t, errors.IsRejectedRecord(err))
	})

	t.Run("custom required set", func(t *testing.T) {
		m := trekMapping()
		m.Required = []string{normalize.CoreModel}
		loose, err := normalize.New(m)
		require.NoError(t, err)

		record, err := loose.Normalize(map[string]string{"name": "Domane AL 2"})
		require.NoError(t, err)
		assert.Empty(t, record.Variant)
	})
}

func TestNormalizeAll(t *testing.T) {
	n, err := normalize.New(trekMapping())
	require.NoError(t, err)

	raws := []map[string]string{
		{"name": "Domane AL 2", "variant": "Rim"},
		{"name": "", "variant": "Disc"}, // rejected
		{"name": "Madone SLR 9", "variant": "Disc"},
	}

	records, report := n.NormalizeAll(raws)
	assert.Len(t, records, 2)
	assert.Equal(t, "trek", report.Brand)
	assert.Equal(t, 2, report.Accepted)
	assert.Equal(t, 1, report.Rejected)
	require.Len(t, report.Rejections, 1)
	assert.True(t, errors.IsRejectedRecord(report.Rejections[0]))
}

func TestNormalizeImageCap(t *testing.T) {
	m := trekMapping()
	m.Images = nil
	for i := 0; i < 14; i++ {
		m.Images = append(m.Images, "img")
	}
	// All image keys point at the same source key on purpose
	n, err := normalize.New(m)
	require.NoError(t, err)

	record, err := n.Normalize(map[string]string{
		"name": "Domane", "variant": "Rim", "img": "https://x/1.jpg",
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(record.Images), 10)
}
