package scanner

import (
	"time"

	"github.com/specforge/schemascan/internal/artifact"
	"github.com/specforge/schemascan/internal/resolver"
)

// FeatureScanResult groups everything discovered for one feature.
type FeatureScanResult struct {
	FeatureID string `json:"feature_id"`
	// Primary maps file-type to its resolved primary instance. An entry is
	// present only when resolution succeeded for that file-type.
	Primary map[string]*artifact.DiscoveredFile `json:"primary"`
	// All maps file-type to every candidate instance found.
	All map[string][]*artifact.DiscoveredFile `json:"all"`
	// Conflicts holds one report per file-type that had multiple candidates.
	Conflicts []resolver.ConflictReport `json:"conflicts,omitempty"`
	// Diagnostics pairs each conflict with its verbose decision log.
	Diagnostics []resolver.DiagnosticReport `json:"-"`
	// BaseDir is the shallowest common directory of the feature's files.
	// Advisory only.
	BaseDir string `json:"base_dir"`
}

// Stats summarizes one scan run.
type Stats struct {
	FilesVisited    int           `json:"files_visited"`    // YAML/Markdown files inspected
	FilesClassified int           `json:"files_classified"` // files with a recognized or legacy schema
	Elapsed         time.Duration `json:"elapsed"`
}

// ScanResult is the complete output of one project scan.
type ScanResult struct {
	Root         string                        `json:"root"`
	Features     map[string]*FeatureScanResult `json:"features"`
	ProjectFiles []*artifact.DiscoveredFile    `json:"project_files,omitempty"`
	Unknown      []artifact.UnknownSchemaItem  `json:"unknown,omitempty"`
	Warnings     []string                      `json:"warnings,omitempty"`
	Stats        Stats                         `json:"stats"`
}

// AsyncResult carries the outcome of a ScanAsync call.
type AsyncResult struct {
	Result *ScanResult
	Err    error
}
