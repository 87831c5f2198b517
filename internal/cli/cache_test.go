package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/postdeck/internal/cache"
	"github.com/rshade/postdeck/internal/config"
)

// writeExpiredEntry puts an already expired entry into the cache directory.
func writeExpiredEntry(t *testing.T, dir, key string) {
	t.Helper()
	data, err := json.Marshal(cache.NewEntry(key, json.RawMessage(`{}`), -60))
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, key+".json"), data, 0o600))
}

func TestCacheStats_Disabled(t *testing.T) {
	setupCLITest(t)

	out, err := execute(t, "cache", "stats")
	require.NoError(t, err)
	assert.Equal(t, "Cache: disabled\n", out)

	out, err = execute(t, "cache", "stats", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"enabled":false,"entries":0}`, out)
}

func TestCache_Lifecycle(t *testing.T) {
	home := setupCLITest(t)
	t.Setenv(config.EnvCacheEnabled, "true")
	url := newBackend(t)
	dir := filepath.Join(home, "cache")

	_, err := execute(t, "users", "list", "--api-url", url)
	require.NoError(t, err)
	writeExpiredEntry(t, dir, "stale")

	out, err := execute(t, "cache", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Cache: "+dir)
	assert.Contains(t, out, "Entries: 2")

	out, err = execute(t, "cache", "prune")
	require.NoError(t, err)
	assert.Equal(t, "Removed 1 expired entries\n", out)

	out, err = execute(t, "cache", "stats", "-o", "json")
	require.NoError(t, err)
	var stats map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, true, stats["enabled"])
	assert.Equal(t, dir, stats["directory"])
	assert.InDelta(t, float64(config.DefaultCacheTTLSeconds), stats["ttl_seconds"], 0)
	assert.InDelta(t, 1, stats["entries"], 0)

	out, err = execute(t, "cache", "clear")
	require.NoError(t, err)
	assert.Equal(t, "Cache cleared\n", out)

	out, err = execute(t, "cache", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Entries: 0")
}

func TestCachePrune_Disabled(t *testing.T) {
	setupCLITest(t)

	_, err := execute(t, "cache", "prune")
	require.ErrorIs(t, err, cache.ErrCacheDisabled)

	_, err = execute(t, "cache", "clear")
	require.ErrorIs(t, err, cache.ErrCacheDisabled)
}
