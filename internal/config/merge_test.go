package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/postdeck/internal/config"
)

// writeOverlay is a test helper that writes YAML content to a temp file
// and returns its path.
func writeOverlay(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestShallowMergeYAML_SectionOverride(t *testing.T) {
	target := config.New()
	overlay := writeOverlay(t, `
api:
  base_url: https://api.example.com
  timeout: 3s
output:
  default_format: json
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, "https://api.example.com", target.API.BaseURL)
	assert.Equal(t, 3*time.Second, target.API.Timeout)
	assert.Equal(t, config.DefaultPageSize, target.API.PageSize, "keys missing from a section keep defaults")
	assert.Equal(t, "json", target.Output.DefaultFormat)
	assert.Equal(t, config.DefaultLogLevel, target.Logging.Level)
}

func TestShallowMergeYAML_IgnoresUnknownKeys(t *testing.T) {
	target := config.New()
	overlay := writeOverlay(t, `
plugins:
  anything: true
logging:
  level: debug
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.Equal(t, "debug", target.Logging.Level)
}

func TestShallowMergeYAML_EmptyFile(t *testing.T) {
	target := config.New()
	require.NoError(t, config.ShallowMergeYAML(target, writeOverlay(t, "# nothing here\n")))
	assert.Equal(t, config.New().API, target.API)
}

func TestShallowMergeYAML_Errors(t *testing.T) {
	require.Error(t, config.ShallowMergeYAML(nil, "x"))
	require.Error(t, config.ShallowMergeYAML(config.New(), filepath.Join(t.TempDir(), "missing.yaml")))

	bad := writeOverlay(t, "api:\n  timeout: [1, 2]\n")
	err := config.ShallowMergeYAML(config.New(), bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"api"`)
}
