package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "dev", cfg.Server.Env)
	assert.Equal(t, 4, cfg.Pipeline.Workers)
	assert.Equal(t, 64, cfg.Pipeline.QueueSize)
	assert.Equal(t, 60, cfg.Pipeline.LLMBudgetSecs)
	assert.Equal(t, 500, cfg.Pipeline.StepPaceMs)
	assert.Equal(t, 2, cfg.Extract.MaxRetries)
	assert.Equal(t, 20, cfg.Limits.MinTextLen)
	assert.Equal(t, 10000, cfg.Limits.MaxTextLen)
}

func TestLoadConfigAppliesDefaultsToGaps(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
server:
  port: "9090"
pipeline:
  workers: 8
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 8, cfg.Pipeline.Workers)
	// Everything unspecified falls back to defaults.
	assert.Equal(t, 64, cfg.Pipeline.QueueSize)
	assert.Equal(t, "dev", cfg.Server.Env)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestManagerTenantOverrides(t *testing.T) {
	dir := t.TempDir()
	master := writeFile(t, dir, "config.yaml", `
pipeline:
  llm_budget_secs: 60
limits:
  max_text_len: 10000
`)
	tenants := writeFile(t, dir, "tenants.yaml", `
tenants:
  mayo_central:
    pipeline:
      llm_budget_secs: 90
    limits:
      max_text_len: 6000
  delaware_gsa:
    extract:
      max_retries: 3
`)

	m, err := NewManager(master, tenants)
	require.NoError(t, err)

	base := m.Get("")
	assert.Equal(t, 60, base.Pipeline.LLMBudgetSecs)
	assert.Equal(t, 10000, base.Limits.MaxTextLen)

	mayo := m.Get("mayo_central")
	assert.Equal(t, 90, mayo.Pipeline.LLMBudgetSecs)
	assert.Equal(t, 6000, mayo.Limits.MaxTextLen)
	// Fields the override omits keep the global values.
	assert.Equal(t, base.Extract.MaxRetries, mayo.Extract.MaxRetries)

	gsa := m.Get("delaware_gsa")
	assert.Equal(t, 3, gsa.Extract.MaxRetries)
	assert.Equal(t, 60, gsa.Pipeline.LLMBudgetSecs)

	// Unknown tenants resolve to the global config.
	assert.Equal(t, base, m.Get("nobody"))
}

func TestManagerMissingTenantsFile(t *testing.T) {
	dir := t.TempDir()
	master := writeFile(t, dir, "config.yaml", "server:\n  port: \"9191\"\n")

	m, err := NewManager(master, filepath.Join(dir, "no-tenants.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "9191", m.Get("anyone").Server.Port)
}

func TestManagerFromConfig(t *testing.T) {
	m := NewManagerFromConfig(Default())
	assert.Equal(t, 64, m.Get("x").Pipeline.QueueSize)
}
