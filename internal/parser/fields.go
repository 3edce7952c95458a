package parser

import (
	"fmt"
	"strings"
)

// LookupString walks a dotted field path (e.g. "meta.feature") through parsed
// content and returns the trimmed string value at the end of the path, or ""
// when any segment is missing or the leaf is not a scalar.
func LookupString(content map[string]any, path string) string {
	if content == nil || path == "" {
		return ""
	}
	var cur any = content
	for _, seg := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return ""
		}
		cur, ok = m[seg]
		if !ok {
			return ""
		}
	}
	return scalarString(cur)
}

// LookupBool walks a dotted field path and returns the boolean at its end.
// Missing paths and non-boolean leaves return false.
func LookupBool(content map[string]any, path string) bool {
	if content == nil || path == "" {
		return false
	}
	var cur any = content
	for _, seg := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return false
		}
		cur, ok = m[seg]
		if !ok {
			return false
		}
	}
	b, _ := cur.(bool)
	return b
}

// ExtractFeatureID extracts a feature identifier from parsed content: first
// via the dotted identifier field path, then through the ordered fallback
// field names at top level. The first non-empty string match wins.
func ExtractFeatureID(content map[string]any, identifierField string, fallbackFields []string) string {
	if content == nil {
		return ""
	}
	if id := LookupString(content, identifierField); id != "" {
		return id
	}
	for _, field := range fallbackFields {
		if v, ok := content[field]; ok {
			if id := scalarString(v); id != "" {
				return id
			}
		}
	}
	return ""
}

// Metadata pulls the optional instance metadata out of parsed content:
// an explicit primary declaration, a lifecycle status, and a version string.
// Each is looked up at top level first, then under the "meta" sub-map.
func Metadata(content map[string]any) (isPrimary bool, status, version string) {
	isPrimary = LookupBool(content, "primary") || LookupBool(content, "meta.primary")
	status = LookupString(content, "status")
	if status == "" {
		status = LookupString(content, "meta.status")
	}
	version = LookupString(content, "version")
	if version == "" {
		version = LookupString(content, "meta.version")
	}
	return isPrimary, status, version
}

func scalarString(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case int:
		return fmt.Sprintf("%d", s)
	case int64:
		return fmt.Sprintf("%d", s)
	case float64:
		// YAML integers sometimes decode as float64 through generic maps.
		if s == float64(int64(s)) {
			return fmt.Sprintf("%d", int64(s))
		}
		return fmt.Sprintf("%g", s)
	default:
		return ""
	}
}
