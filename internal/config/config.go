// Package config loads project configuration for the discovery engine from a
// conventional file at the project root, with environment overrides and
// built-in defaults. A missing config file is not an error: defaults apply
// and a warning is surfaced to the caller.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	vspec "github.com/specforge/schemascan/internal/validator"
)

// ConfigFileNames are searched at the project root in priority order; the
// first one found wins.
var ConfigFileNames = []string{".schemascan.yaml", ".schemascan.yml", ".schemascan.json"}

// Config is the project-level configuration for scans and validation.
type Config struct {
	// IgnoreGlobs are doublestar patterns matched against root-relative paths.
	IgnoreGlobs []string `koanf:"ignore"`
	// MaxDepth bounds the recursive walk below the project root.
	MaxDepth int `koanf:"max_depth" validate:"min=1,max=64"`
	// FollowSymlinks enables traversal through symbolic links.
	FollowSymlinks bool `koanf:"follow_symlinks"`
	// PriorityChain overrides the multi-instance resolution stage order.
	PriorityChain []string `koanf:"priority_chain" validate:"omitempty,dive,oneof=explicit_primary active_status latest_modified shallowest_path alphabetical"`
	// ArchivedStatuses overrides the vocabulary of non-active lifecycle tags.
	ArchivedStatuses []string `koanf:"archived_statuses"`
	// FileTypes overrides the per-file-type completeness specification.
	FileTypes map[string]vspec.FileTypeSpec `koanf:"file_types"`
}

// FeatureSpec returns the completeness specification configured for this
// project, falling back to the built-in defaults.
func (c *Config) FeatureSpec() vspec.FeatureSpec {
	if len(c.FileTypes) == 0 {
		return vspec.DefaultFeatureSpec()
	}
	return vspec.FeatureSpec(c.FileTypes)
}

// Load reads configuration for the given project root. The returned warnings
// are advisory (e.g. "no config file found") and never fail the load.
func Load(projectRoot string) (*Config, []string, error) {
	k := koanf.New(".")

	for key, value := range Defaults() {
		k.Set(key, value)
	}

	var warnings []string
	path, parser := findConfigFile(projectRoot)
	if path == "" {
		warnings = append(warnings, fmt.Sprintf("no config file found at %s, using built-in defaults", projectRoot))
	} else if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	// Environment variables win over everything.
	k.Load(env.Provider("SCHEMASCAN_", ".", envTransform), nil)

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, warnings, nil
}

func findConfigFile(projectRoot string) (string, koanf.Parser) {
	for _, name := range ConfigFileNames {
		path := filepath.Join(projectRoot, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if strings.HasSuffix(name, ".json") {
			return path, json.Parser()
		}
		return path, kyaml.Parser()
	}
	return "", nil
}

// envTransform converts environment variable names to config keys.
// Example: SCHEMASCAN_MAX_DEPTH -> max_depth
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "SCHEMASCAN_"))
}
