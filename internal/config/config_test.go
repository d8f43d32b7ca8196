package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RolandGoud/bikescraper/internal/config"
	"github.com/RolandGoud/bikescraper/pkg/errors"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, []string{"Trek", "Canyon"}, cfg.Brands())
	assert.True(t, cfg.Identity.IncludeColor)
	assert.True(t, cfg.Identity.IncludeSKU)

	trek, err := cfg.Mapping("trek")
	require.NoError(t, err)
	assert.Equal(t, "Trek", trek.Brand)
	assert.Equal(t, "name", trek.Core["model"])
	assert.Len(t, trek.Specs, 14)
	assert.Len(t, trek.Images, 10)
	assert.Equal(t, "hero_image_1_url", trek.Images[0])
	assert.Equal(t, "hero_image_10_url", trek.Images[9])
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"Trek", "Canyon"}, cfg.Brands())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brands.yaml")
	content := `identity:
  includeColor: false
brands:
  - brand: Specialized
    core:
      model: title
      variant: trim
      price: amount
    specs:
      Frame: frameset
      Ketting: chain
    images:
      - main_image
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.Identity.IncludeColor)
	assert.True(t, cfg.Identity.IncludeSKU)

	m, err := cfg.Mapping("Specialized")
	require.NoError(t, err)
	assert.Equal(t, "title", m.Core["model"])
	assert.Equal(t, "chain", m.Specs["Ketting"])
}

func TestLoadRejectsSchemaDrift(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brands.yaml")
	content := `brands:
  - brand: Specialized
    specs:
      Wheelbase: wheelbase
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := config.Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsSchemaDrift(err))
}

func TestValidateRejectsDuplicateBrands(t *testing.T) {
	cfg := config.Default()
	cfg.Mappings = append(cfg.Mappings, cfg.Mappings[0])
	assert.Error(t, cfg.Validate())
}

func TestMappingUnknownBrand(t *testing.T) {
	cfg := config.Default()
	_, err := cfg.Mapping("Specialized")
	assert.True(t, errors.IsNotFound(err))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
