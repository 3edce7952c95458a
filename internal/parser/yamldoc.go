package parser

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseYAML parses a whole file as a YAML document. Empty and
// whitespace-only input yields an OK result with no content. Non-object
// roots (scalars, sequences) are accepted as "no schema" rather than errors;
// only a true syntax error inside the document fails the parse.
func ParseYAML(data []byte) Result {
	if strings.TrimSpace(string(data)) == "" {
		return Result{OK: true}
	}

	var root any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return Result{OK: false, Err: newSyntaxError(err, 0)}
	}

	content, ok := root.(map[string]any)
	if !ok {
		return Result{OK: true}
	}

	return Result{OK: true, Content: content, SchemaTag: schemaTagOf(content)}
}
