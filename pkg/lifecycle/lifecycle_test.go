package lifecycle_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RolandGoud/bikescraper/pkg/catalog"
	"github.com/RolandGoud/bikescraper/pkg/inference"
	"github.com/RolandGoud/bikescraper/pkg/lifecycle"
)

var (
	run1 = catalog.NewDate(2025, time.January, 6)
	run2 = catalog.NewDate(2025, time.January, 13)
	run3 = catalog.NewDate(2025, time.January, 20)
)

func domane() *catalog.Record {
	r := &catalog.Record{
		Brand:   "Trek",
		Model:   "Domane AL 2",
		Variant: "Rim",
		Price:   "1049.00",
	}
	r.SetSpec(catalog.FieldCassette, catalog.ObservedValue("SRAM PG-1130, 11-42, 11 speed"))
	r.SetSpec(catalog.FieldChain, catalog.ObservedValue(""))
	return r
}

func madone() *catalog.Record {
	return &catalog.Record{
		Brand:   "Trek",
		Model:   "Madone SLR 9",
		Variant: "Disc",
		Price:   "13999.00",
	}
}

func merger() *lifecycle.Merger {
	return lifecycle.New(catalog.DefaultIdentityOptions())
}

func TestMergeNewEntries(t *testing.T) {
	next, summary, err := merger().Merge(nil, []*catalog.Record{domane(), madone()}, run1)
	require.NoError(t, err)

	assert.Equal(t, 2, next.Len())
	created, updated, discontinued := summary.Counts()
	assert.Equal(t, 2, created)
	assert.Zero(t, updated)
	assert.Zero(t, discontinued)

	entry, err := next.Get("trek-domane-al-2-rim")
	require.NoError(t, err)
	assert.Equal(t, catalog.StatusAvailable, entry.Status)
	assert.Equal(t, run1, entry.FirstSeen)
	assert.Equal(t, run1, entry.LastSeen)
	assert.Equal(t, run1, entry.LastUpdated)
}

func TestMergePriorUntouched(t *testing.T) {
	prior, _, err := merger().Merge(nil, []*catalog.Record{domane()}, run1)
	require.NoError(t, err)

	_, _, err = merger().Merge(prior, nil, run2)
	require.NoError(t, err)

	// The input dataset is a value, not shared state.
	entry, err := prior.Get("trek-domane-al-2-rim")
	require.NoError(t, err)
	assert.Equal(t, catalog.StatusAvailable, entry.Status)
	assert.Equal(t, run1, entry.LastUpdated)
}

func TestMergeIdempotentReingestion(t *testing.T) {
	m := merger()

	first, _, err := m.Merge(nil, []*catalog.Record{domane(), madone()}, run1)
	require.NoError(t, err)

	second, summary, err := m.Merge(first, []*catalog.Record{domane(), madone()}, run1)
	require.NoError(t, err)

	assert.Equal(t, first.Len(), second.Len())
	created, updated, _ := summary.Counts()
	assert.Zero(t, created)
	assert.Equal(t, 2, updated)

	for _, key := range second.Keys() {
		was, _ := first.Get(key)
		is, _ := second.Get(key)
		assert.Equal(t, was.Record, is.Record)
		assert.Equal(t, was.FirstSeen, is.FirstSeen)
		assert.Equal(t, run1, is.LastSeen)
		assert.Equal(t, run1, is.LastUpdated)
	}
}

func TestMergeMonotonicFirstSeen(t *testing.T) {
	m := merger()
	dataset, _, err := m.Merge(nil, []*catalog.Record{domane()}, run1)
	require.NoError(t, err)

	for _, date := range []catalog.Date{run2, run3} {
		dataset, _, err = m.Merge(dataset, []*catalog.Record{domane()}, date)
		require.NoError(t, err)
		entry, err := dataset.Get("trek-domane-al-2-rim")
		require.NoError(t, err)
		assert.Equal(t, run1, entry.FirstSeen)
	}
}

func TestMergeLifecycleTransitions(t *testing.T) {
	m := merger()

	dataset, _, err := m.Merge(nil, []*catalog.Record{domane()}, run1)
	require.NoError(t, err)

	t.Run("absence discontinues", func(t *testing.T) {
		next, summary, err := m.Merge(dataset, nil, run2)
		require.NoError(t, err)

		entry, err := next.Get("trek-domane-al-2-rim")
		require.NoError(t, err)
		assert.Equal(t, catalog.StatusDiscontinued, entry.Status)
		assert.Equal(t, run1, entry.FirstSeen)
		assert.Equal(t, run1, entry.LastSeen, "lastSeen records the last actual observation")
		assert.Equal(t, run2, entry.LastUpdated)

		_, _, discontinued := summary.Counts()
		assert.Equal(t, 1, discontinued)
		dataset = next
	})

	t.Run("already discontinued is not recounted", func(t *testing.T) {
		next, summary, err := m.Merge(dataset, nil, run3)
		require.NoError(t, err)

		_, _, discontinued := summary.Counts()
		assert.Zero(t, discontinued)

		entry, err := next.Get("trek-domane-al-2-rim")
		require.NoError(t, err)
		assert.Equal(t, run3, entry.LastUpdated)
		assert.Equal(t, run1, entry.LastSeen)
	})

	t.Run("reappearance is availability, not rebirth", func(t *testing.T) {
		next, summary, err := m.Merge(dataset, []*catalog.Record{domane()}, run3)
		require.NoError(t, err)

		entry, err := next.Get("trek-domane-al-2-rim")
		require.NoError(t, err)
		assert.Equal(t, catalog.StatusAvailable, entry.Status)
		assert.Equal(t, run1, entry.FirstSeen)
		assert.Equal(t, run3, entry.LastSeen)
		assert.Equal(t, run3, entry.LastUpdated)

		created, updated, _ := summary.Counts()
		assert.Zero(t, created)
		assert.Equal(t, 1, updated)
	})
}

func TestMergeNeverDeletes(t *testing.T) {
	m := merger()
	dataset, _, err := m.Merge(nil, []*catalog.Record{domane(), madone()}, run1)
	require.NoError(t, err)

	dataset, _, err = m.Merge(dataset, nil, run2)
	require.NoError(t, err)
	dataset, _, err = m.Merge(dataset, []*catalog.Record{madone()}, run3)
	require.NoError(t, err)

	assert.Equal(t, 2, dataset.Len())
}

func TestMergeDuplicateKeyFails(t *testing.T) {
	_, _, err := merger().Merge(nil, []*catalog.Record{domane(), domane()}, run1)
	assert.Error(t, err)
}

func TestMergeZeroRunDateFails(t *testing.T) {
	_, _, err := merger().Merge(nil, []*catalog.Record{domane()}, catalog.Date{})
	assert.Error(t, err)
}

func TestMergeFresherValuesWin(t *testing.T) {
	m := merger()
	dataset, _, err := m.Merge(nil, []*catalog.Record{domane()}, run1)
	require.NoError(t, err)

	updated := domane()
	updated.Price = "999.00"
	dataset, _, err = m.Merge(dataset, []*catalog.Record{updated}, run2)
	require.NoError(t, err)

	entry, err := dataset.Get("trek-domane-al-2-rim")
	require.NoError(t, err)
	assert.Equal(t, "999.00", entry.Record.Price)
}

// The full three-run scenario: inference on first observation, a missed run,
// and a reappearance with a new price.
func TestDomaneThreeRunScenario(t *testing.T) {
	m := merger()
	engine := inference.New(inference.DefaultRules()...)

	// Run 1: chain empty, cassette populated; the drivetrain rule fires.
	snapshot1 := []*catalog.Record{domane()}
	engine.InferSnapshot(snapshot1)

	chain := snapshot1[0].Spec(catalog.FieldChain)
	require.Equal(t, catalog.Inferred, chain.Provenance)
	require.Equal(t, "SRAM PC-1130, 11-speed", chain.Value)

	dataset, _, err := m.Merge(nil, snapshot1, run1)
	require.NoError(t, err)

	key := "trek-domane-al-2-rim"
	entry, err := dataset.Get(key)
	require.NoError(t, err)
	assert.Equal(t, catalog.StatusAvailable, entry.Status)
	assert.Equal(t, catalog.Inferred, entry.Record.Spec(catalog.FieldChain).Provenance)

	// Run 2: the snapshot omits the bike entirely.
	dataset, _, err = m.Merge(dataset, nil, run2)
	require.NoError(t, err)

	entry, err = dataset.Get(key)
	require.NoError(t, err)
	assert.Equal(t, catalog.StatusDiscontinued, entry.Status)
	assert.Equal(t, run1, entry.LastSeen)
	assert.Equal(t, run2, entry.LastUpdated)

	// Run 3: same identity, updated price.
	reintroduced := domane()
	reintroduced.Price = "1099.00"
	snapshot3 := []*catalog.Record{reintroduced}
	engine.InferSnapshot(snapshot3)

	dataset, _, err = m.Merge(dataset, snapshot3, run3)
	require.NoError(t, err)

	entry, err = dataset.Get(key)
	require.NoError(t, err)
	assert.Equal(t, catalog.StatusAvailable, entry.Status)
	assert.Equal(t, "1099.00", entry.Record.Price)
	assert.Equal(t, run1, entry.FirstSeen)
	assert.Equal(t, run3, entry.LastSeen)
	assert.Equal(t, run3, entry.LastUpdated)

	// Inference was deterministic across runs.
	assert.Equal(t, "SRAM PC-1130, 11-speed", entry.Record.Spec(catalog.FieldChain).Value)
}
