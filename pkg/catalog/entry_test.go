package catalog_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RolandGoud/bikescraper/pkg/catalog"
)

func testEntry(key string) *catalog.Entry {
	return &catalog.Entry{
		Key: key,
		Record: catalog.Record{
			Brand:   "Trek",
			Model:   "Domane AL 2",
			Variant: "Rim",
			Specs: map[catalog.Field]catalog.SpecValue{
				catalog.FieldChain:    catalog.ObservedValue("KMC X11"),
				catalog.FieldCassette: catalog.ObservedValue("Shimano HG500, 11-34, 10 speed"),
			},
		},
		Status:      catalog.StatusAvailable,
		FirstSeen:   catalog.NewDate(2025, time.January, 1),
		LastSeen:    catalog.NewDate(2025, time.February, 1),
		LastUpdated: catalog.NewDate(2025, time.February, 1),
	}
}

func TestEntryValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, testEntry("trek-domane-al-2-rim").Validate())
	})

	t.Run("empty key", func(t *testing.T) {
		e := testEntry("")
		assert.Error(t, e.Validate())
	})

	t.Run("unknown status", func(t *testing.T) {
		e := testEntry("k")
		e.Status = catalog.Status("New")
		assert.Error(t, e.Validate())
	})

	t.Run("firstSeen after lastSeen", func(t *testing.T) {
		e := testEntry("k")
		e.FirstSeen = catalog.NewDate(2025, time.March, 1)
		assert.Error(t, e.Validate())
	})

	t.Run("lastSeen after lastUpdated", func(t *testing.T) {
		e := testEntry("k")
		e.LastUpdated = catalog.NewDate(2025, time.January, 15)
		assert.Error(t, e.Validate())
	})
}

func TestDatasetAccessors(t *testing.T) {
	d := catalog.NewDataset()
	d.Put(testEntry("b-key"))
	d.Put(testEntry("a-key"))

	assert.Equal(t, 2, d.Len())
	assert.Equal(t, []string{"a-key", "b-key"}, d.Keys())

	entries := d.List()
	require.Len(t, entries, 2)
	assert.Equal(t, "a-key", entries[0].Key)

	e, err := d.Get("a-key")
	require.NoError(t, err)
	assert.Equal(t, "a-key", e.Key)

	_, err = d.Get("missing")
	assert.Error(t, err)
}

func TestDatasetCopyIsDeep(t *testing.T) {
	d := catalog.NewDataset()
	d.Put(testEntry("k"))

	clone := d.Copy()
	clone.Entries["k"].Record.SetSpec(catalog.FieldChain, catalog.ObservedValue("changed"))
	clone.Entries["k"].Status = catalog.StatusDiscontinued

	original := d.Entries["k"]
	assert.Equal(t, "KMC X11", original.Record.Spec(catalog.FieldChain).Value)
	assert.Equal(t, catalog.StatusAvailable, original.Status)
}

func TestDatasetCountByStatus(t *testing.T) {
	d := catalog.NewDataset()
	d.Put(testEntry("a"))
	gone := testEntry("b")
	gone.Status = catalog.StatusDiscontinued
	d.Put(gone)

	counts := d.CountByStatus()
	assert.Equal(t, 1, counts[catalog.StatusAvailable])
	assert.Equal(t, 1, counts[catalog.StatusDiscontinued])
}

func TestDatasetValidateParity(t *testing.T) {
	t.Run("identical key sets pass", func(t *testing.T) {
		d := catalog.NewDataset()
		d.Put(testEntry("a"))
		d.Put(testEntry("b"))
		assert.NoError(t, d.Validate())
	})

	t.Run("diverging key sets fail", func(t *testing.T) {
		d := catalog.NewDataset()
		d.Put(testEntry("a"))
		odd := testEntry("b")
		odd.Record.SetSpec(catalog.FieldFrameFit, catalog.ObservedValue("Endurance"))
		d.Put(odd)
		assert.Error(t, d.Validate())
	})
}

func TestRecordHelpers(t *testing.T) {
	t.Run("Spec returns empty observed for absent field", func(t *testing.T) {
		r := &catalog.Record{}
		v := r.Spec(catalog.FieldChain)
		assert.True(t, v.IsEmpty())
		assert.Equal(t, catalog.Observed, v.Provenance)
	})

	t.Run("SpecFields follows vocabulary order", func(t *testing.T) {
		r := &catalog.Record{}
		r.SetSpec(catalog.FieldFrameFit, catalog.ObservedValue("Endurance"))
		r.SetSpec(catalog.FieldFrame, catalog.ObservedValue("Alpha Aluminium"))
		assert.Equal(t, []catalog.Field{catalog.FieldFrame, catalog.FieldFrameFit}, r.SpecFields())
	})

	t.Run("CapImages truncates past the maximum", func(t *testing.T) {
		r := &catalog.Record{}
		for i := 0; i < 14; i++ {
			r.Images = append(r.Images, "https://example.com/img")
		}
		r.CapImages()
		assert.Len(t, r.Images, 10)
	})
}

func TestVocabulary(t *testing.T) {
	vocab := catalog.Vocabulary()
	assert.NotEmpty(t, vocab)
	assert.True(t, catalog.KnownField(catalog.FieldChain))
	assert.False(t, catalog.KnownField(catalog.Field("Banden")))

	// Returned slice is a copy
	vocab[0] = catalog.Field("mutated")
	assert.NotEqual(t, catalog.Field("mutated"), catalog.Vocabulary()[0])
}
