package schema

// DefaultRegistry returns a registry pre-loaded with the conventional
// artifact schemas used by feature-directory projects. Callers that need an
// isolated catalog build their own with NewRegistry.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, def := range builtinDefinitions() {
		r.Register(def)
	}
	return r
}

func builtinDefinitions() []Definition {
	return []Definition{
		{
			ID:              "ai-coding/progress-log@1.0",
			Description:     "Per-feature progress log with phase and task tracking",
			Scope:           ScopeFeature,
			Required:        true,
			IdentifierField: "meta.feature",
			FallbackFields:  []string{"feature", "feature_id", "feature_name"},
			Carriers:        []Carrier{CarrierYAML},
		},
		{
			ID:              "ai-coding/design@1.0",
			Description:     "Design document describing a feature's architecture",
			Scope:           ScopeFeature,
			Required:        true,
			IdentifierField: "meta.feature",
			FallbackFields:  []string{"feature", "feature_id"},
			Carriers:        []Carrier{CarrierMarkdown, CarrierYAML},
		},
		{
			ID:              "ai-coding/spec@1.0",
			Description:     "Feature specification with requirements and acceptance criteria",
			Scope:           ScopeFeature,
			Required:        false,
			IdentifierField: "meta.feature",
			FallbackFields:  []string{"feature", "feature_id"},
			Carriers:        []Carrier{CarrierMarkdown, CarrierYAML},
		},
		{
			ID:              "ai-coding/phase-status@1.0",
			Description:     "Current implementation phase marker for a feature",
			Scope:           ScopeFeature,
			Required:        false,
			IdentifierField: "meta.feature",
			FallbackFields:  []string{"feature"},
			Carriers:        []Carrier{CarrierYAML},
		},
		{
			ID:              "ai-coding/checklist@1.0",
			Description:     "Review or release checklist for a feature",
			Scope:           ScopeFeature,
			Required:        false,
			IdentifierField: "meta.feature",
			FallbackFields:  []string{"feature"},
			Carriers:        []Carrier{CarrierMarkdown, CarrierYAML},
		},
		{
			ID:          "ai-coding/project-config@1.0",
			Description: "Project-wide conventions and tool configuration",
			Scope:       ScopeProject,
			Carriers:    []Carrier{CarrierYAML},
		},
	}
}
