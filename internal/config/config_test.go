package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specforge/schemascan/internal/resolver"
)

func TestLoad_DefaultsWhenNoConfigFile(t *testing.T) {
	root := t.TempDir()

	cfg, warnings, err := Load(root)
	require.NoError(t, err)

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "no config file found")
	assert.Equal(t, 12, cfg.MaxDepth)
	assert.False(t, cfg.FollowSymlinks)
	assert.Contains(t, cfg.IgnoreGlobs, ".git/**")
	assert.Contains(t, cfg.ArchivedStatuses, "archived")
	assert.Empty(t, cfg.PriorityChain)
}

func TestLoad_YAMLConfigFile(t *testing.T) {
	root := t.TempDir()
	content := `max_depth: 5
follow_symlinks: true
ignore:
  - "tmp/**"
archived_statuses:
  - parked
priority_chain:
  - explicit_primary
  - latest_modified
file_types:
  design:
    required: true
    max_instances: 2
`
	require.NoError(t, os.WriteFile(filepath.Join(root, ".schemascan.yaml"), []byte(content), 0o644))

	cfg, warnings, err := Load(root)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, 5, cfg.MaxDepth)
	assert.True(t, cfg.FollowSymlinks)
	assert.Equal(t, []string{"tmp/**"}, cfg.IgnoreGlobs)
	assert.Equal(t, []string{"parked"}, cfg.ArchivedStatuses)
	assert.Equal(t, []string{"explicit_primary", "latest_modified"}, cfg.PriorityChain)

	spec := cfg.FeatureSpec()
	require.Contains(t, spec, "design")
	assert.True(t, spec["design"].Required)
	assert.Equal(t, 2, spec["design"].MaxInstances)
}

func TestLoad_JSONConfigFile(t *testing.T) {
	root := t.TempDir()
	content := `{"max_depth": 3}`
	require.NoError(t, os.WriteFile(filepath.Join(root, ".schemascan.json"), []byte(content), 0o644))

	cfg, warnings, err := Load(root)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, 3, cfg.MaxDepth)
}

func TestLoad_FilePriorityOrder(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".schemascan.yaml"), []byte("max_depth: 7\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".schemascan.json"), []byte(`{"max_depth": 9}`), 0o644))

	cfg, _, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.MaxDepth, ".schemascan.yaml wins over .schemascan.json")
}

func TestLoad_EnvOverrides(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".schemascan.yaml"), []byte("max_depth: 7\n"), 0o644))
	t.Setenv("SCHEMASCAN_MAX_DEPTH", "4")

	cfg, _, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.MaxDepth)
}

func TestLoad_ValidationRejectsBadValues(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".schemascan.yaml"), []byte("max_depth: 0\n"), 0o644))

	_, _, err := Load(root)
	assert.Error(t, err)
}

func TestLoad_ValidationRejectsUnknownChainStage(t *testing.T) {
	root := t.TempDir()
	content := "priority_chain:\n  - bogus_stage\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, ".schemascan.yaml"), []byte(content), 0o644))

	_, _, err := Load(root)
	assert.Error(t, err)
}

func TestLoad_MalformedConfigFails(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".schemascan.yaml"), []byte("max_depth: [oops\n"), 0o644))

	_, _, err := Load(root)
	assert.Error(t, err)
}

func TestResolverOptions(t *testing.T) {
	cfg := &Config{
		PriorityChain:    []string{"active_status", "alphabetical"},
		ArchivedStatuses: []string{"parked"},
	}

	opts := cfg.ResolverOptions()
	assert.Equal(t, []resolver.Reason{resolver.ReasonActiveStatus, resolver.ReasonAlphabetical}, opts.Chain)
	assert.Equal(t, []string{"parked"}, opts.ArchivedStatuses)
}

func TestScannerOptions(t *testing.T) {
	cfg := &Config{IgnoreGlobs: []string{"x/**"}, MaxDepth: 6, FollowSymlinks: true}
	opts := cfg.ScannerOptions()
	assert.Equal(t, []string{"x/**"}, opts.IgnoreGlobs)
	assert.Equal(t, 6, opts.MaxDepth)
	assert.True(t, opts.FollowSymlinks)
}
