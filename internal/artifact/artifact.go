// Package artifact defines the data model shared across the discovery engine:
// discovered files and the unknown-schema side list. Values are created fresh
// on every scan and never mutated afterwards.
package artifact

import (
	"time"

	"github.com/specforge/schemascan/internal/schema"
)

// DiscoveredFile is one classified artifact found during a scan.
type DiscoveredFile struct {
	Path      string         `json:"path"`               // relative to the project root, slash-separated
	SchemaID  string         `json:"schema_id"`          // base schema identifier
	Carrier   schema.Carrier `json:"carrier"`            // content format the file arrived in
	Content   map[string]any `json:"-"`                  // parsed structured value, nil for empty files
	ModTime   time.Time      `json:"mod_time"`
	Size      int64          `json:"size"`
	Legacy    bool           `json:"legacy"`             // classified by filename convention, no explicit tag
	IsPrimary bool           `json:"is_primary"`         // explicit author intent from file metadata
	Status    string         `json:"status,omitempty"`   // free-form lifecycle tag (active, archived, backup, ...)
	Version   string         `json:"version,omitempty"`  // declared content version
	FeatureID string         `json:"feature_id"`         // inferred owning feature, "" for project scope
}

// FileType returns the logical file-type: the trailing segment of the
// schema identifier.
func (f *DiscoveredFile) FileType() string {
	return schema.Definition{ID: f.SchemaID}.FileType()
}

// UnknownCategory classifies why a file landed on the unknown-schema list.
type UnknownCategory string

const (
	// CategoryInvalid marks a schema tag that failed the lexical grammar.
	CategoryInvalid UnknownCategory = "invalid"
	// CategoryUnknown marks a well-formed tag with no registry entry.
	CategoryUnknown UnknownCategory = "unknown"
	// CategoryLegacy marks a file eligible for legacy classification.
	CategoryLegacy UnknownCategory = "legacy"
)

// UnknownSchemaItem is a file whose schema tag failed format validation or
// registry lookup, paired with a suggested remediation.
type UnknownSchemaItem struct {
	File       DiscoveredFile  `json:"file"`
	Tag        string          `json:"tag"`
	Category   UnknownCategory `json:"category"`
	Suggestion string          `json:"suggestion"`
}

// Info is the projection of a DiscoveredFile consumed by presentation layers.
type Info struct {
	FileType    string `json:"file_type"`
	Path        string `json:"path"`
	DisplayName string `json:"display_name"`
	SchemaID    string `json:"schema_id"`
}

// InfoOf builds the presentation projection for a discovered file.
func InfoOf(f *DiscoveredFile) Info {
	display := f.Path
	if i := lastSlash(display); i >= 0 {
		display = display[i+1:]
	}
	return Info{
		FileType:    f.FileType(),
		Path:        f.Path,
		DisplayName: display,
		SchemaID:    f.SchemaID,
	}
}

func lastSlash(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '/' {
			return i
		}
	}
	return -1
}
