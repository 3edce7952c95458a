package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specforge/schemascan/internal/artifact"
	"github.com/specforge/schemascan/internal/resolver"
	"github.com/specforge/schemascan/internal/scanner"
)

func discovered(path, schemaID string, content map[string]any) *artifact.DiscoveredFile {
	return &artifact.DiscoveredFile{
		Path:     path,
		SchemaID: schemaID,
		Content:  content,
		ModTime:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func featureResult(id string, files map[string]*artifact.DiscoveredFile) *scanner.FeatureScanResult {
	fr := &scanner.FeatureScanResult{
		FeatureID: id,
		Primary:   make(map[string]*artifact.DiscoveredFile),
		All:       make(map[string][]*artifact.DiscoveredFile),
	}
	for ft, f := range files {
		fr.Primary[ft] = f
		fr.All[ft] = []*artifact.DiscoveredFile{f}
	}
	return fr
}

func scanResult(features ...*scanner.FeatureScanResult) *scanner.ScanResult {
	res := &scanner.ScanResult{Features: make(map[string]*scanner.FeatureScanResult)}
	for _, fr := range features {
		res.Features[fr.FeatureID] = fr
	}
	return res
}

func TestValidate_CompleteFeatureIsValid(t *testing.T) {
	t.Parallel()

	fr := featureResult("auth", map[string]*artifact.DiscoveredFile{
		"progress-log": discovered("docs/auth/90_PROGRESS_LOG.yaml", "ai-coding/progress-log", map[string]any{"phase": 1}),
		"design":       discovered("docs/auth/DESIGN.md", "ai-coding/design", nil),
		"spec":         discovered("docs/auth/SPEC.md", "ai-coding/spec", nil),
	})

	report := Validate(scanResult(fr), DefaultFeatureSpec())

	assert.Equal(t, StatusValid, report.Status)
	require.Contains(t, report.Features, "auth")
	assert.Equal(t, StatusValid, report.Features["auth"].Status)
	assert.Empty(t, report.Features["auth"].Issues)
}

func TestValidate_MissingRequiredIsError(t *testing.T) {
	t.Parallel()

	// No design file at all: error independent of phase.
	fr := featureResult("auth", map[string]*artifact.DiscoveredFile{
		"progress-log": discovered("docs/auth/90_PROGRESS_LOG.yaml", "ai-coding/progress-log", map[string]any{"phase": 0}),
	})

	report := Validate(scanResult(fr), DefaultFeatureSpec())

	assert.Equal(t, StatusError, report.Status)
	fRep := report.Features["auth"]
	assert.Equal(t, StatusError, fRep.Status)
	assert.Contains(t, fRep.MissingRequired, "design")
}

func TestValidate_PhaseGatedFile(t *testing.T) {
	t.Parallel()

	spec := FeatureSpec{
		"progress-log": {Required: true},
		"checklist":    {RequiredFromPhase: 3},
	}

	t.Run("below threshold is valid", func(t *testing.T) {
		t.Parallel()
		fr := featureResult("auth", map[string]*artifact.DiscoveredFile{
			"progress-log": discovered("docs/auth/90_PROGRESS_LOG.yaml", "ai-coding/progress-log", map[string]any{"phase": 2}),
		})
		report := Validate(scanResult(fr), spec)
		assert.Equal(t, StatusValid, report.Status)
		assert.Empty(t, report.Features["auth"].MissingForPhase)
	})

	t.Run("at threshold is warning not error", func(t *testing.T) {
		t.Parallel()
		fr := featureResult("auth", map[string]*artifact.DiscoveredFile{
			"progress-log": discovered("docs/auth/90_PROGRESS_LOG.yaml", "ai-coding/progress-log", map[string]any{"phase": 3}),
		})
		report := Validate(scanResult(fr), spec)
		assert.Equal(t, StatusWarning, report.Status)
		fRep := report.Features["auth"]
		assert.Equal(t, StatusWarning, fRep.Status)
		assert.Contains(t, fRep.MissingForPhase, "checklist")
	})
}

func TestValidate_PhaseParsing(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content map[string]any
		want    int
	}{
		"integer":          {content: map[string]any{"phase": 4}, want: 4},
		"numeric string":   {content: map[string]any{"phase": "2"}, want: 2},
		"phase-n tag":      {content: map[string]any{"phase": "phase-3"}, want: 3},
		"current_phase":    {content: map[string]any{"current_phase": 5}, want: 5},
		"meta nested":      {content: map[string]any{"meta": map[string]any{"phase": 1}}, want: 1},
		"missing":          {content: map[string]any{}, want: 0},
		"garbage":          {content: map[string]any{"phase": "soon"}, want: 0},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			fr := featureResult("f", map[string]*artifact.DiscoveredFile{
				"progress-log": discovered("docs/f/90_PROGRESS_LOG.yaml", "ai-coding/progress-log", tc.content),
			})
			assert.Equal(t, tc.want, currentPhase(fr))
		})
	}
}

func TestValidate_MaxInstancesOverflow(t *testing.T) {
	t.Parallel()

	spec := FeatureSpec{"design": {Required: true, MaxInstances: 1}}
	a := discovered("docs/auth/DESIGN.md", "ai-coding/design", nil)
	b := discovered("docs/auth/drafts/DESIGN.md", "ai-coding/design", nil)

	fr := featureResult("auth", map[string]*artifact.DiscoveredFile{"design": a})
	fr.All["design"] = []*artifact.DiscoveredFile{a, b}

	report := Validate(scanResult(fr), spec)

	assert.Equal(t, StatusWarning, report.Status)
	fRep := report.Features["auth"]
	require.Len(t, fRep.Warnings, 1)
	assert.Contains(t, fRep.Warnings[0], "2 instances")
}

func TestValidate_ImplicitPrimaryWarning(t *testing.T) {
	t.Parallel()

	spec := FeatureSpec{"design": {Required: true, MaxInstances: 5}}
	a := discovered("docs/auth/a/DESIGN.md", "ai-coding/design", nil)
	b := discovered("docs/auth/b/DESIGN.md", "ai-coding/design", nil)

	fr := featureResult("auth", map[string]*artifact.DiscoveredFile{"design": a})
	fr.All["design"] = []*artifact.DiscoveredFile{a, b}
	fr.Conflicts = []resolver.ConflictReport{{
		FileType:           "design",
		InstancePaths:      []string{a.Path, b.Path},
		SelectedPath:       a.Path,
		Reason:             string(resolver.ReasonLatestModified),
		Detail:             "most recently modified instance",
		HasExplicitPrimary: false,
	}}

	report := Validate(scanResult(fr), spec)

	fRep := report.Features["auth"]
	assert.Equal(t, StatusWarning, fRep.Status)
	found := false
	for _, issue := range fRep.Issues {
		if issue.Code == CodeImplicitPrimary {
			found = true
			assert.Equal(t, a.Path, issue.File)
		}
	}
	assert.True(t, found, "expected an implicit-primary issue")
}

func TestValidate_ExplicitPrimaryConflictNotWarned(t *testing.T) {
	t.Parallel()

	spec := FeatureSpec{"design": {Required: true, MaxInstances: 5}}
	a := discovered("docs/auth/a/DESIGN.md", "ai-coding/design", nil)

	fr := featureResult("auth", map[string]*artifact.DiscoveredFile{"design": a})
	fr.Conflicts = []resolver.ConflictReport{{
		FileType:           "design",
		InstancePaths:      []string{a.Path, "docs/auth/b/DESIGN.md"},
		SelectedPath:       a.Path,
		Reason:             string(resolver.ReasonExplicitPrimary),
		Detail:             "instance explicitly declares itself primary",
		HasExplicitPrimary: true,
	}}

	report := Validate(scanResult(fr), spec)
	assert.Equal(t, StatusValid, report.Features["auth"].Status)
}

func TestValidate_UnknownSchemasDowngradeOverall(t *testing.T) {
	t.Parallel()

	fr := featureResult("auth", map[string]*artifact.DiscoveredFile{
		"progress-log": discovered("docs/auth/90_PROGRESS_LOG.yaml", "ai-coding/progress-log", nil),
		"design":       discovered("docs/auth/DESIGN.md", "ai-coding/design", nil),
	})
	res := scanResult(fr)
	res.Unknown = []artifact.UnknownSchemaItem{{
		Tag:      "custom/widget@1.0",
		Category: artifact.CategoryUnknown,
	}}

	report := Validate(res, FeatureSpec{"progress-log": {Required: true}, "design": {Required: true}})

	assert.Equal(t, StatusWarning, report.Status, "unknown schemas downgrade a valid report")
	assert.Equal(t, StatusValid, report.Features["auth"].Status)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, CodeUnknownSchemas, report.Issues[0].Code)
}

func TestValidate_WorstStatusAcrossFeatures(t *testing.T) {
	t.Parallel()

	good := featureResult("good", map[string]*artifact.DiscoveredFile{
		"progress-log": discovered("docs/good/90_PROGRESS_LOG.yaml", "ai-coding/progress-log", nil),
	})
	bad := featureResult("bad", nil)

	report := Validate(scanResult(good, bad), FeatureSpec{"progress-log": {Required: true}})

	assert.Equal(t, StatusError, report.Status)
	assert.Equal(t, StatusValid, report.Features["good"].Status)
	assert.Equal(t, StatusError, report.Features["bad"].Status)
}

func TestValidate_NilSpecUsesDefaults(t *testing.T) {
	t.Parallel()

	report := Validate(scanResult(featureResult("empty", nil)), nil)
	assert.Equal(t, StatusError, report.Status, "defaults require progress-log and design")
}
