// Package legacy classifies files that predate the self-describing schema
// convention. Classification is driven by an ordered filename rule table:
// the first matching rule wins, and a file matching no rule is simply not
// classified (that is not an error).
package legacy

import (
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/specforge/schemascan/internal/artifact"
	"github.com/specforge/schemascan/internal/parser"
	"github.com/specforge/schemascan/internal/schema"
)

// Rule binds a base-filename pattern to a target schema. Rules are consulted
// in declaration order; patterns are kept mutually exclusive by convention so
// first-match never races best-match.
type Rule struct {
	Pattern         *regexp.Regexp
	SchemaID        string
	Carrier         schema.Carrier
	IdentifierField string
	FallbackFields  []string
}

// DefaultRules returns the built-in rule table for conventional artifact
// filenames such as 90_PROGRESS_LOG.yaml.
func DefaultRules() []Rule {
	return []Rule{
		{
			Pattern:         regexp.MustCompile(`^\d*_?PROGRESS_LOG\.ya?ml$`),
			SchemaID:        "ai-coding/progress-log@1.0",
			Carrier:         schema.CarrierYAML,
			IdentifierField: "meta.feature",
			FallbackFields:  []string{"feature", "feature_id"},
		},
		{
			Pattern:         regexp.MustCompile(`^\d*_?DESIGN(_DOC)?\.md$`),
			SchemaID:        "ai-coding/design@1.0",
			Carrier:         schema.CarrierMarkdown,
			IdentifierField: "meta.feature",
			FallbackFields:  []string{"feature", "feature_id"},
		},
		{
			Pattern:         regexp.MustCompile(`^\d*_?SPEC(IFICATION)?\.(md|ya?ml)$`),
			SchemaID:        "ai-coding/spec@1.0",
			Carrier:         schema.CarrierMarkdown,
			IdentifierField: "meta.feature",
			FallbackFields:  []string{"feature", "feature_id"},
		},
		{
			Pattern:         regexp.MustCompile(`^\d*_?PHASE_STATUS\.ya?ml$`),
			SchemaID:        "ai-coding/phase-status@1.0",
			Carrier:         schema.CarrierYAML,
			IdentifierField: "meta.feature",
			FallbackFields:  []string{"feature"},
		},
		{
			Pattern:         regexp.MustCompile(`^\d*_?CHECKLIST\.(md|ya?ml)$`),
			SchemaID:        "ai-coding/checklist@1.0",
			Carrier:         schema.CarrierMarkdown,
			IdentifierField: "meta.feature",
			FallbackFields:  []string{"feature"},
		},
	}
}

// containerDirs are the conventional parent directories whose next path
// segment names the owning feature.
var containerDirs = []string{"features", "docs", "specs"}

// Detector classifies untagged files by filename convention.
type Detector struct {
	rules []Rule
}

// NewDetector builds a detector over an ordered rule table.
func NewDetector(rules []Rule) *Detector {
	return &Detector{rules: rules}
}

// Detect classifies the file at relPath, returning nil when no rule matches.
// Feature identification first tries the matched rule's content fields, then
// falls back to the path segment following a conventional container directory.
func (d *Detector) Detect(relPath string, content map[string]any, modTime time.Time, size int64) *artifact.DiscoveredFile {
	base := path.Base(relPath)
	for _, rule := range d.rules {
		if !rule.Pattern.MatchString(base) {
			continue
		}

		featureID := parser.ExtractFeatureID(content, rule.IdentifierField, rule.FallbackFields)
		if featureID == "" {
			featureID = FeatureFromPath(relPath)
		}

		// Rules that accept several extensions default to the rule's
		// carrier; the actual extension wins when it maps to one.
		carrier := rule.Carrier
		if c, ok := parser.CarrierForPath(relPath); ok {
			carrier = c
		}

		isPrimary, status, version := parser.Metadata(content)
		return &artifact.DiscoveredFile{
			Path:      relPath,
			SchemaID:  schema.BaseID(rule.SchemaID),
			Carrier:   carrier,
			Content:   content,
			ModTime:   modTime,
			Size:      size,
			Legacy:    true,
			IsPrimary: isPrimary,
			Status:    status,
			Version:   version,
			FeatureID: featureID,
		}
	}
	return nil
}

// FeatureFromPath infers a feature identifier from the path segment that
// immediately follows a conventional container directory. Falls back to the
// file's parent directory name when no container appears in the path.
func FeatureFromPath(relPath string) string {
	segments := strings.Split(path.Clean(relPath), "/")
	for i, seg := range segments[:max(len(segments)-1, 0)] {
		for _, container := range containerDirs {
			if seg == container && i+1 < len(segments)-1 {
				return segments[i+1]
			}
		}
	}
	if len(segments) >= 2 {
		parent := segments[len(segments)-2]
		if parent != "." && parent != "" && !strings.HasPrefix(parent, "_") && !isContainer(parent) {
			return parent
		}
	}
	return ""
}

func isContainer(name string) bool {
	for _, c := range containerDirs {
		if name == c {
			return true
		}
	}
	return false
}
