package parser

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// headerDelimiter fences the YAML header block at the top of a Markdown file.
const headerDelimiter = "---"

// ParseFrontmatter parses a Markdown document with an optional leading YAML
// header. A file that does not start with the opening delimiter has no header
// (the whole content is body, not an error). An opening delimiter without a
// matching close is also "no header", tolerating partially-written files.
// Only a YAML syntax error inside a properly fenced header fails the parse.
func ParseFrontmatter(data []byte) Result {
	text := string(data)
	if strings.TrimSpace(text) == "" {
		return Result{OK: true}
	}

	lines := strings.SplitAfter(text, "\n")
	if strings.TrimRight(lines[0], "\r\n") != headerDelimiter {
		return Result{OK: true}
	}

	closing := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r\n") == headerDelimiter {
			closing = i
			break
		}
	}
	if closing < 0 {
		return Result{OK: true}
	}

	header := strings.Join(lines[1:closing], "")
	if strings.TrimSpace(header) == "" {
		return Result{OK: true}
	}

	var root any
	if err := yaml.Unmarshal([]byte(header), &root); err != nil {
		// Header lines start after the opening delimiter line.
		return Result{OK: false, Err: newSyntaxError(err, 1)}
	}

	content, ok := root.(map[string]any)
	if !ok {
		return Result{OK: true}
	}

	return Result{OK: true, Content: content, SchemaTag: schemaTagOf(content)}
}
