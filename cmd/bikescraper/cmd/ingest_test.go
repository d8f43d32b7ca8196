package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RolandGoud/bikescraper/pkg/catalog"
)

func TestReadSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trek.json")
	content := `{"brand": "Trek", "records": [{"name": "Domane AL 2", "variant": "Rim"}]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	snapshot, err := readSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, "Trek", snapshot.Brand)
	require.Len(t, snapshot.Records, 1)
	assert.Equal(t, "Domane AL 2", snapshot.Records[0]["name"])
}

func TestReadSnapshotMissingBrand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anon.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"records": []}`), 0o644))

	_, err := readSnapshot(path)
	assert.Error(t, err)
}

func TestReadSnapshotMissingFile(t *testing.T) {
	_, err := readSnapshot(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestParseStatus(t *testing.T) {
	status, err := parseStatus("Available")
	require.NoError(t, err)
	assert.Equal(t, catalog.StatusAvailable, status)

	status, err = parseStatus("discontinued")
	require.NoError(t, err)
	assert.Equal(t, catalog.StatusDiscontinued, status)

	_, err = parseStatus("new")
	assert.Error(t, err)
}
