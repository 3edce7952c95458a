// Package testutil provides test utilities and helpers for schemascan tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes content to path, creating parent directories as needed.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// WriteYAMLArtifact writes a tagged YAML artifact under dir. Extra lines are
// appended verbatim after the schema tag, so callers can add metadata like
// "primary: true" or "status: archived".
func WriteYAMLArtifact(t *testing.T, dir, name, schemaID string, extra ...string) string {
	t.Helper()

	content := fmt.Sprintf("schema: %s\n", schemaID)
	for _, line := range extra {
		content += line + "\n"
	}
	path := filepath.Join(dir, name)
	WriteFile(t, path, content)
	return path
}

// WriteMarkdownArtifact writes a Markdown artifact with a metadata header
// carrying the given schema tag.
func WriteMarkdownArtifact(t *testing.T, dir, name, schemaID string, extra ...string) string {
	t.Helper()

	content := fmt.Sprintf("---\nschema: %s\n", schemaID)
	for _, line := range extra {
		content += line + "\n"
	}
	content += "---\n\n# Document\n\nBody text.\n"
	path := filepath.Join(dir, name)
	WriteFile(t, path, content)
	return path
}

// CreateFeatureDir creates a feature directory with a complete artifact set:
// a progress log, a design document, and a spec. Returns the feature
// directory path.
func CreateFeatureDir(t *testing.T, root, featureID string) string {
	t.Helper()

	dir := filepath.Join(root, "features", featureID)
	WriteYAMLArtifact(t, dir, "progress.yaml", "ai-coding/progress-log@1.0",
		fmt.Sprintf("feature: %s", featureID), "phase: 2")
	WriteMarkdownArtifact(t, dir, "design.md", "ai-coding/design@1.0",
		fmt.Sprintf("feature: %s", featureID))
	WriteMarkdownArtifact(t, dir, "spec.md", "ai-coding/spec@1.0",
		fmt.Sprintf("feature: %s", featureID))
	return dir
}
