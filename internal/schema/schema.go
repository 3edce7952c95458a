// Package schema provides the schema definition catalog for feature artifacts.
// A schema identifier is a namespaced, optionally versioned tag such as
// "ai-coding/progress-log@1.0" that a file self-declares to announce its role.
package schema

import (
	"fmt"
	"regexp"
	"strings"
)

// Scope indicates whether a schema belongs to a single feature or to the
// project as a whole.
type Scope string

const (
	// ScopeFeature marks schemas owned by one feature directory.
	ScopeFeature Scope = "feature"
	// ScopeProject marks schemas that apply project-wide.
	ScopeProject Scope = "project"
)

// Carrier is the content format a file uses to carry schema-tagged data.
type Carrier string

const (
	// CarrierYAML is a plain YAML document with an object root.
	CarrierYAML Carrier = "yaml"
	// CarrierMarkdown is a Markdown file with a leading YAML header block.
	CarrierMarkdown Carrier = "markdown-with-header"
)

// Definition describes one registered schema.
type Definition struct {
	ID              string    // base identifier, namespace/name
	Version         string    // optional major.minor version
	Description     string    // human-readable role description
	Scope           Scope     // feature or project
	Required        bool      // whether a complete feature must carry this file
	IdentifierField string    // dotted path to the feature identifier, e.g. "meta.feature"
	FallbackFields  []string  // ordered top-level field names tried when IdentifierField yields nothing
	Carriers        []Carrier // content formats this schema may arrive in
}

// FileType returns the logical file-type for this schema: the trailing
// segment of the identifier ("ai-coding/progress-log" -> "progress-log").
func (d Definition) FileType() string {
	if i := strings.LastIndex(d.ID, "/"); i >= 0 {
		return d.ID[i+1:]
	}
	return d.ID
}

// SupportsCarrier reports whether the definition accepts the given carrier.
func (d Definition) SupportsCarrier(c Carrier) bool {
	for _, sc := range d.Carriers {
		if sc == c {
			return true
		}
	}
	return false
}

// idPattern enforces the lexical grammar for schema identifiers:
// lowercase-namespace/lowercase-name, optionally suffixed with @major.minor.
var idPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*/[a-z0-9][a-z0-9-]*(@[0-9]+\.[0-9]+)?$`)

// ValidateIDFormat checks a schema identifier against the lexical grammar.
// Malformed identifiers are rejected before any registry lookup happens.
func ValidateIDFormat(id string) error {
	if id == "" {
		return fmt.Errorf("schema identifier is empty")
	}
	if !idPattern.MatchString(id) {
		return fmt.Errorf("schema identifier %q does not match namespace/name[@major.minor]", id)
	}
	return nil
}

// BaseID strips an optional @version suffix from a schema identifier.
func BaseID(id string) string {
	if i := strings.Index(id, "@"); i >= 0 {
		return id[:i]
	}
	return id
}

// VersionOf returns the version suffix of an identifier, or "" if unversioned.
func VersionOf(id string) string {
	if i := strings.Index(id, "@"); i >= 0 {
		return id[i+1:]
	}
	return ""
}

// Registry is an in-memory catalog of schema definitions keyed by base
// identifier. It is a plain value passed into the scanner and validator so
// tests can register isolated schema sets without cross-test leakage.
type Registry struct {
	defs  map[string]Definition
	order []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// Register inserts or overwrites a definition by base identifier.
// Re-registration is last-write-wins.
func (r *Registry) Register(def Definition) {
	base := BaseID(def.ID)
	if v := VersionOf(def.ID); v != "" && def.Version == "" {
		def.Version = v
	}
	def.ID = base
	if _, exists := r.defs[base]; !exists {
		r.order = append(r.order, base)
	}
	r.defs[base] = def
}

// Get returns the definition for an identifier, accepting both versioned and
// unversioned forms. The second return is false when nothing is registered.
func (r *Registry) Get(id string) (Definition, bool) {
	def, ok := r.defs[BaseID(id)]
	return def, ok
}

// IsKnown reports whether an identifier resolves to a registered definition.
func (r *Registry) IsKnown(id string) bool {
	_, ok := r.Get(id)
	return ok
}

// ByScope returns all definitions with the given scope, in registration order.
func (r *Registry) ByScope(scope Scope) []Definition {
	var out []Definition
	for _, id := range r.order {
		if d := r.defs[id]; d.Scope == scope {
			out = append(out, d)
		}
	}
	return out
}

// Required returns all definitions flagged as required, in registration order.
func (r *Registry) Required() []Definition {
	var out []Definition
	for _, id := range r.order {
		if d := r.defs[id]; d.Required {
			out = append(out, d)
		}
	}
	return out
}

// All returns every registered definition in registration order.
func (r *Registry) All() []Definition {
	out := make([]Definition, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.defs[id])
	}
	return out
}
