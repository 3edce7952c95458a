// Package parser turns raw artifact bytes into structured content plus an
// optional self-declared schema tag. Two carriers are supported: a plain YAML
// document and a Markdown file with a leading YAML header block.
package parser

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/specforge/schemascan/internal/schema"
)

// SchemaKey is the reserved top-level key a file uses to declare its schema.
const SchemaKey = "schema"

// Result is the outcome of parsing one file.
type Result struct {
	OK        bool           // false only on a syntax error inside present content
	Content   map[string]any // nil for empty files and non-object roots
	SchemaTag string         // raw value of the reserved schema key, "" if absent
	Err       *Error         // populated when OK is false
}

// Error describes a syntax error with its source location when known.
type Error struct {
	Line    int
	Column  int
	Message string
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// CarrierForPath maps a file extension to its carrier kind. The second return
// is false for extensions the engine does not inspect.
func CarrierForPath(path string) (schema.Carrier, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return schema.CarrierYAML, true
	case ".md", ".markdown":
		return schema.CarrierMarkdown, true
	default:
		return "", false
	}
}

// Parse dispatches raw bytes to the parser for the given carrier.
func Parse(carrier schema.Carrier, data []byte) Result {
	switch carrier {
	case schema.CarrierYAML:
		return ParseYAML(data)
	case schema.CarrierMarkdown:
		return ParseFrontmatter(data)
	default:
		return Result{OK: false, Err: &Error{Message: fmt.Sprintf("unsupported carrier %q", carrier)}}
	}
}

// yamlLinePattern extracts the line number yaml.v3 embeds in its error text,
// e.g. "yaml: line 4: mapping values are not allowed in this context".
var yamlLinePattern = regexp.MustCompile(`line (\d+)`)

func newSyntaxError(err error, lineOffset int) *Error {
	pe := &Error{Message: strings.TrimPrefix(err.Error(), "yaml: ")}
	if m := yamlLinePattern.FindStringSubmatch(err.Error()); m != nil {
		if n, convErr := strconv.Atoi(m[1]); convErr == nil {
			pe.Line = n + lineOffset
		}
	}
	return pe
}

func schemaTagOf(content map[string]any) string {
	if content == nil {
		return ""
	}
	if tag, ok := content[SchemaKey].(string); ok {
		return strings.TrimSpace(tag)
	}
	return ""
}
