package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultWitnessCap, cfg.WitnessCap)
	assert.Equal(t, 0, cfg.Workers)
}

func TestDecodeKeepsDefaults(t *testing.T) {
	cfg, err := Decode(strings.NewReader("limits:\n  max_steps: 50\nworkers: 2\n"))
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Limits.MaxSteps)
	assert.Equal(t, DefaultMaxDepth, cfg.Limits.MaxDepth)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, DefaultCacheSize, cfg.CacheSize)
}

func TestDecodeEmpty(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader("witness_limit: 3\n"))
	assert.Error(t, err)
}

func TestValidationCollectsAllIssues(t *testing.T) {
	_, err := Decode(strings.NewReader("witness_cap: 0\ncache_size: -1\nlimits:\n  max_depth: 0\n"))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Issues, 3)
	assert.Contains(t, err.Error(), "witness_cap")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matchc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("witness_cap: 5\n"), 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.WitnessCap)
	assert.Equal(t, path, cfg.Path)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
