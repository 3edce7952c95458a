package resolver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specforge/schemascan/internal/artifact"
)

func file(path string, opts ...func(*artifact.DiscoveredFile)) *artifact.DiscoveredFile {
	f := &artifact.DiscoveredFile{
		Path:     path,
		SchemaID: "ai-coding/design",
		ModTime:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func withPrimary() func(*artifact.DiscoveredFile) {
	return func(f *artifact.DiscoveredFile) { f.IsPrimary = true }
}

func withStatus(s string) func(*artifact.DiscoveredFile) {
	return func(f *artifact.DiscoveredFile) { f.Status = s }
}

func withModTime(t time.Time) func(*artifact.DiscoveredFile) {
	return func(f *artifact.DiscoveredFile) { f.ModTime = t }
}

func TestResolve_NoInstances(t *testing.T) {
	t.Parallel()

	res := Resolve("design", nil, Options{})
	assert.Nil(t, res.Primary)
	assert.Equal(t, ReasonNoInstances, res.Reason)
	assert.False(t, res.Confident)
	assert.Nil(t, res.Conflict)
	assert.Nil(t, res.Diagnostic)
}

func TestResolve_SingleInstance(t *testing.T) {
	t.Parallel()

	only := file("docs/foo/DESIGN.md")
	res := Resolve("design", []*artifact.DiscoveredFile{only}, Options{})

	assert.Same(t, only, res.Primary)
	assert.Equal(t, ReasonSingleInstance, res.Reason)
	assert.True(t, res.Confident)
	assert.Nil(t, res.Conflict, "single instance never produces a conflict report")
	assert.Nil(t, res.Diagnostic)
}

func TestResolve_ExplicitPrimaryWins(t *testing.T) {
	t.Parallel()

	old := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	marked := file("docs/foo/deep/nested/DESIGN.md", withPrimary(), withModTime(old))
	newer := file("docs/foo/DESIGN.md")

	res := Resolve("design", []*artifact.DiscoveredFile{newer, marked}, Options{})

	assert.Same(t, marked, res.Primary, "explicit primary beats mod time and path depth")
	assert.Equal(t, ReasonExplicitPrimary, res.Reason)
	assert.True(t, res.Confident)
	require.NotNil(t, res.Conflict)
	assert.True(t, res.Conflict.HasExplicitPrimary)
	assert.Equal(t, marked.Path, res.Conflict.SelectedPath)
}

func TestResolve_MultipleExplicitPrimariesContinueChain(t *testing.T) {
	t.Parallel()

	a := file("docs/foo/a/DESIGN.md", withPrimary(), withStatus("archived"))
	b := file("docs/foo/b/DESIGN.md", withPrimary())
	unmarked := file("docs/foo/DESIGN.md")

	res := Resolve("design", []*artifact.DiscoveredFile{a, b, unmarked}, Options{})

	assert.Same(t, b, res.Primary, "ambiguous explicit claims resolve among the claimants")
	assert.Equal(t, ReasonActiveStatus, res.Reason)
	assert.True(t, res.Confident)
}

func TestResolve_ActiveStatusFilter(t *testing.T) {
	t.Parallel()

	active := file("docs/foo/90_PROGRESS_LOG.yaml")
	archived := file("docs/foo/_old/90_PROGRESS_LOG.yaml", withStatus("archived"))

	res := Resolve("progress-log", []*artifact.DiscoveredFile{archived, active}, Options{})

	assert.Same(t, active, res.Primary)
	assert.Equal(t, ReasonActiveStatus, res.Reason)
	assert.True(t, res.Confident)
	require.NotNil(t, res.Conflict)
	assert.ElementsMatch(t, []string{active.Path, archived.Path}, res.Conflict.InstancePaths)
}

func TestResolve_AllArchivedKeepsFullSet(t *testing.T) {
	t.Parallel()

	t2 := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	a := file("docs/foo/a.yaml", withStatus("backup"))
	b := file("docs/foo/b.yaml", withStatus("deprecated"), withModTime(t2))

	res := Resolve("progress-log", []*artifact.DiscoveredFile{a, b}, Options{})

	assert.Same(t, b, res.Primary, "an all-archived group still gets a primary")
	assert.Equal(t, ReasonLatestModified, res.Reason)
	assert.False(t, res.Confident)
}

func TestResolve_LatestModified(t *testing.T) {
	t.Parallel()

	t1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t1.Add(2 * time.Hour)
	f1 := file("docs/bar/a/DESIGN.md", withModTime(t1))
	f2 := file("docs/bar/b/DESIGN.md", withModTime(t2))
	f3 := file("docs/bar/c/DESIGN.md", withModTime(t3))

	res := Resolve("design", []*artifact.DiscoveredFile{f2, f3, f1}, Options{})

	assert.Same(t, f3, res.Primary)
	assert.Equal(t, ReasonLatestModified, res.Reason)
	assert.False(t, res.Confident, "timestamps are a heuristic, not intent")
	require.NotNil(t, res.Conflict)
	assert.Len(t, res.Conflict.InstancePaths, 3)
	assert.False(t, res.Conflict.HasExplicitPrimary)
}

func TestResolve_ShallowestPath(t *testing.T) {
	t.Parallel()

	shared := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	shallow := file("docs/foo/DESIGN.md", withModTime(shared))
	deep := file("docs/foo/drafts/DESIGN.md", withModTime(shared))

	res := Resolve("design", []*artifact.DiscoveredFile{deep, shallow}, Options{})

	assert.Same(t, shallow, res.Primary)
	assert.Equal(t, ReasonShallowestPath, res.Reason)
	assert.False(t, res.Confident)
}

func TestResolve_AlphabeticalLastResort(t *testing.T) {
	t.Parallel()

	shared := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	a := file("docs/foo/a/DESIGN.md", withModTime(shared))
	b := file("docs/foo/b/DESIGN.md", withModTime(shared))

	res := Resolve("design", []*artifact.DiscoveredFile{b, a}, Options{})

	assert.Same(t, a, res.Primary)
	assert.Equal(t, ReasonAlphabetical, res.Reason)
	assert.False(t, res.Confident)
}

func TestResolve_DeterministicAcrossInputOrder(t *testing.T) {
	t.Parallel()

	shared := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	files := []*artifact.DiscoveredFile{
		file("docs/foo/x/DESIGN.md", withModTime(shared)),
		file("docs/foo/y/DESIGN.md", withModTime(shared)),
		file("docs/foo/z/DESIGN.md", withModTime(shared)),
	}

	forward := Resolve("design", files, Options{})
	reversed := Resolve("design", []*artifact.DiscoveredFile{files[2], files[1], files[0]}, Options{})

	assert.Equal(t, forward.Primary.Path, reversed.Primary.Path)
	assert.Equal(t, forward.Reason, reversed.Reason)
	assert.Equal(t, forward.Confident, reversed.Confident)
	assert.Equal(t, forward.Conflict.InstancePaths, reversed.Conflict.InstancePaths)
}

func TestResolve_CustomArchivedVocabulary(t *testing.T) {
	t.Parallel()

	active := file("docs/foo/a.yaml")
	parked := file("docs/foo/b.yaml", withStatus("parked"))
	opts := Options{ArchivedStatuses: []string{"parked"}}

	res := Resolve("progress-log", []*artifact.DiscoveredFile{parked, active}, opts)

	assert.Same(t, active, res.Primary)
	assert.Equal(t, ReasonActiveStatus, res.Reason)
}

func TestResolve_ChainOverrideDropsUnknownStages(t *testing.T) {
	t.Parallel()

	t2 := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	older := file("docs/foo/a.yaml")
	newer := file("docs/foo/b.yaml", withModTime(t2), withStatus("archived"))

	// Skip the active-status stage entirely: the archived file should win on
	// modification time.
	opts := Options{Chain: []Reason{"bogus_stage", ReasonLatestModified}}
	res := Resolve("progress-log", []*artifact.DiscoveredFile{older, newer}, opts)

	assert.Same(t, newer, res.Primary)
	assert.Equal(t, ReasonLatestModified, res.Reason)
}

func TestResolve_DecisionLogOrder(t *testing.T) {
	t.Parallel()

	t2 := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	a := file("docs/foo/a.yaml")
	b := file("docs/foo/b.yaml", withModTime(t2))

	res := Resolve("progress-log", []*artifact.DiscoveredFile{a, b}, Options{})

	require.NotNil(t, res.Diagnostic)
	log := res.Diagnostic.DecisionLog
	require.NotEmpty(t, log)
	assert.Contains(t, log[0], "2 candidate instances")
	assert.Contains(t, log[len(log)-1], "selected docs/foo/b.yaml")
	assert.Equal(t, ReasonLatestModified, res.Diagnostic.Reason)
}

func TestExplain(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "only one instance exists", Explain(ReasonSingleInstance))
	assert.Equal(t, "custom", Explain(Reason("custom")))
}
