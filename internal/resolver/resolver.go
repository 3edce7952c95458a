// Package resolver deterministically selects one primary file among multiple
// candidates claiming the same file-type for the same feature. Selection runs
// an ordered pipeline of narrowing stages and records an auditable decision
// log so users can see why a file was chosen.
package resolver

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/specforge/schemascan/internal/artifact"
)

// Reason identifies the pipeline stage that produced the final selection.
type Reason string

const (
	ReasonNoInstances     Reason = "no_instances"
	ReasonSingleInstance  Reason = "single_instance"
	ReasonExplicitPrimary Reason = "explicit_primary"
	ReasonActiveStatus    Reason = "active_status"
	ReasonLatestModified  Reason = "latest_modified"
	ReasonShallowestPath  Reason = "shallowest_path"
	ReasonAlphabetical    Reason = "alphabetical"
)

// reasonText maps reason codes to their human-readable explanations.
var reasonText = map[Reason]string{
	ReasonNoInstances:     "no candidate instances exist",
	ReasonSingleInstance:  "only one instance exists",
	ReasonExplicitPrimary: "instance explicitly declares itself primary",
	ReasonActiveStatus:    "only non-archived instance",
	ReasonLatestModified:  "most recently modified instance",
	ReasonShallowestPath:  "instance closest to the feature root",
	ReasonAlphabetical:    "first instance in path order (last-resort tie-break)",
}

// Explain returns the human-readable explanation for a reason code.
func Explain(r Reason) string {
	if text, ok := reasonText[r]; ok {
		return text
	}
	return string(r)
}

// DefaultChain is the stage order used when no override is configured.
var DefaultChain = []Reason{
	ReasonExplicitPrimary,
	ReasonActiveStatus,
	ReasonLatestModified,
	ReasonShallowestPath,
	ReasonAlphabetical,
}

// DefaultArchivedStatuses is the built-in vocabulary of lifecycle tags that
// mark an instance as not active.
var DefaultArchivedStatuses = []string{"archived", "backup", "deprecated", "obsolete"}

// Options configures a resolution run.
type Options struct {
	// Chain overrides the stage order. Unrecognized stage names are dropped
	// and the alphabetical terminator is always appended if missing.
	Chain []Reason
	// ArchivedStatuses overrides the archived-status vocabulary.
	ArchivedStatuses []string
}

func (o Options) chain() []Reason {
	chain := o.Chain
	if len(chain) == 0 {
		chain = DefaultChain
	}
	known := map[Reason]bool{
		ReasonExplicitPrimary: true,
		ReasonActiveStatus:    true,
		ReasonLatestModified:  true,
		ReasonShallowestPath:  true,
		ReasonAlphabetical:    true,
	}
	out := make([]Reason, 0, len(chain)+1)
	for _, stage := range chain {
		if known[stage] {
			out = append(out, stage)
		}
	}
	if len(out) == 0 || out[len(out)-1] != ReasonAlphabetical {
		out = append(out, ReasonAlphabetical)
	}
	return out
}

func (o Options) archived() map[string]bool {
	statuses := o.ArchivedStatuses
	if statuses == nil {
		statuses = DefaultArchivedStatuses
	}
	set := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		set[strings.ToLower(s)] = true
	}
	return set
}

// Result is the outcome of resolving one (feature, file-type) group.
type Result struct {
	Primary    *artifact.DiscoveredFile
	Reason     Reason
	Confident  bool
	Candidates []*artifact.DiscoveredFile
	Conflict   *ConflictReport
	Diagnostic *DiagnosticReport
}

// ConflictReport is the compact, user-facing explanation of a multi-instance
// resolution.
type ConflictReport struct {
	FileType           string   `json:"file_type"`
	InstancePaths      []string `json:"instance_paths"`
	SelectedPath       string   `json:"selected_path"`
	Reason             string   `json:"reason"` // stage code, e.g. "active_status"
	Detail             string   `json:"detail"` // human-readable explanation
	HasExplicitPrimary bool     `json:"has_explicit_primary"`
}

// DiagnosticReport is the verbose diagnostic shape with the full instance
// objects and the ordered decision log.
type DiagnosticReport struct {
	Instances   []*artifact.DiscoveredFile `json:"instances"`
	Reason      Reason                     `json:"reason"`
	DecisionLog []string                   `json:"decision_log"`
}

// Resolve selects zero or one primary file for a candidate group. It is a
// pure function of its inputs: identical candidate sets yield identical
// results regardless of input order.
func Resolve(fileType string, candidates []*artifact.DiscoveredFile, opts Options) Result {
	if len(candidates) == 0 {
		return Result{Reason: ReasonNoInstances}
	}

	// Canonical order makes every downstream tie-break order-independent.
	pool := make([]*artifact.DiscoveredFile, len(candidates))
	copy(pool, candidates)
	sort.Slice(pool, func(i, j int) bool { return pool[i].Path < pool[j].Path })

	if len(pool) == 1 {
		return Result{
			Primary:    pool[0],
			Reason:     ReasonSingleInstance,
			Confident:  true,
			Candidates: pool,
		}
	}

	var log []string
	log = append(log, fmt.Sprintf("%d candidate instances for file-type %q", len(pool), fileType))

	current := pool
	var winner *artifact.DiscoveredFile
	reason := ReasonAlphabetical
	confident := false

	for _, stage := range opts.chain() {
		var next []*artifact.DiscoveredFile
		next, winner, confident = runStage(stage, current, opts, &log)
		if winner != nil {
			reason = stage
			break
		}
		current = next
	}

	res := Result{
		Primary:    winner,
		Reason:     reason,
		Confident:  confident,
		Candidates: pool,
	}
	log = append(log, fmt.Sprintf("selected %s (%s)", winner.Path, Explain(reason)))

	res.Conflict = &ConflictReport{
		FileType:           fileType,
		InstancePaths:      pathsOf(pool),
		SelectedPath:       winner.Path,
		Reason:             string(reason),
		Detail:             Explain(reason),
		HasExplicitPrimary: anyPrimary(pool),
	}
	res.Diagnostic = &DiagnosticReport{
		Instances:   pool,
		Reason:      reason,
		DecisionLog: log,
	}
	return res
}

// runStage applies one pipeline stage. It returns either a narrowed candidate
// set to continue with, or a winner that terminates the chain.
func runStage(stage Reason, current []*artifact.DiscoveredFile, opts Options, log *[]string) (next []*artifact.DiscoveredFile, winner *artifact.DiscoveredFile, confident bool) {
	switch stage {
	case ReasonExplicitPrimary:
		declared := filter(current, func(f *artifact.DiscoveredFile) bool { return f.IsPrimary })
		switch len(declared) {
		case 0:
			*log = append(*log, "no instance declares itself primary")
			return current, nil, false
		case 1:
			*log = append(*log, fmt.Sprintf("%s is the only explicit primary", declared[0].Path))
			return nil, declared[0], true
		default:
			// Multiple explicit claims: resolve among the claimants, never
			// pick one arbitrarily.
			*log = append(*log, fmt.Sprintf("%d instances declare themselves primary, continuing with that subset", len(declared)))
			return declared, nil, false
		}

	case ReasonActiveStatus:
		archived := opts.archived()
		active := filter(current, func(f *artifact.DiscoveredFile) bool {
			return !archived[strings.ToLower(f.Status)]
		})
		switch len(active) {
		case 0:
			// An all-archived group still needs a primary.
			*log = append(*log, "all instances carry an archived status, keeping the full set")
			return current, nil, false
		case 1:
			*log = append(*log, fmt.Sprintf("%s is the only non-archived instance", active[0].Path))
			return nil, active[0], true
		default:
			if len(active) < len(current) {
				*log = append(*log, fmt.Sprintf("filtered %d archived instances", len(current)-len(active)))
			} else {
				*log = append(*log, "no instances carry an archived status")
			}
			return active, nil, false
		}

	case ReasonLatestModified:
		var latest time.Time
		for _, f := range current {
			if f.ModTime.After(latest) {
				latest = f.ModTime
			}
		}
		newest := filter(current, func(f *artifact.DiscoveredFile) bool { return f.ModTime.Equal(latest) })
		if len(newest) == 1 {
			*log = append(*log, fmt.Sprintf("%s has the latest modification time", newest[0].Path))
			// Timestamps are not proof of authorial intent.
			return nil, newest[0], false
		}
		*log = append(*log, fmt.Sprintf("%d instances tie on modification time", len(newest)))
		return newest, nil, false

	case ReasonShallowestPath:
		minDepth := -1
		for _, f := range current {
			if d := pathDepth(f.Path); minDepth < 0 || d < minDepth {
				minDepth = d
			}
		}
		shallow := filter(current, func(f *artifact.DiscoveredFile) bool { return pathDepth(f.Path) == minDepth })
		if len(shallow) == 1 {
			*log = append(*log, fmt.Sprintf("%s has the shallowest path", shallow[0].Path))
			return nil, shallow[0], false
		}
		*log = append(*log, fmt.Sprintf("%d instances tie on path depth", len(shallow)))
		return shallow, nil, false

	case ReasonAlphabetical:
		// Candidates are already in path order; the first one wins.
		*log = append(*log, "falling back to alphabetical path order")
		return nil, current[0], false
	}

	return current, nil, false
}

// pathDepth counts path-segment components of a relative slash path.
func pathDepth(p string) int {
	return len(strings.Split(p, "/"))
}

func filter(files []*artifact.DiscoveredFile, keep func(*artifact.DiscoveredFile) bool) []*artifact.DiscoveredFile {
	var out []*artifact.DiscoveredFile
	for _, f := range files {
		if keep(f) {
			out = append(out, f)
		}
	}
	return out
}

func pathsOf(files []*artifact.DiscoveredFile) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}

func anyPrimary(files []*artifact.DiscoveredFile) bool {
	for _, f := range files {
		if f.IsPrimary {
			return true
		}
	}
	return false
}
