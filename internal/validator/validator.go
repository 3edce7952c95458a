// Package validator compares a scan result against a feature specification
// and produces per-feature health reports. Issues are reported, never thrown:
// validation is an observability tool, not a gate.
package validator

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/specforge/schemascan/internal/parser"
	"github.com/specforge/schemascan/internal/scanner"
)

// Severity ranks a validation issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Status is the aggregated health of a feature or a whole report.
type Status string

const (
	StatusValid   Status = "valid"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
)

// Issue codes emitted by the validator.
const (
	CodeMissingRequired  = "missing_required_file"
	CodeMissingForPhase  = "missing_for_phase"
	CodeTooManyInstances = "instance_count_overflow"
	CodeImplicitPrimary  = "implicit_primary"
	CodeUnknownSchemas   = "unknown_schema_files"
)

// FileTypeSpec holds the completeness knobs for one file-type.
type FileTypeSpec struct {
	// Required file-types produce an error whenever absent, independent of
	// the feature's phase.
	Required bool `koanf:"required" json:"required"`
	// RequiredFromPhase produces a warning when the file-type is absent and
	// the feature's current phase is at or beyond this threshold. Zero
	// disables the check.
	RequiredFromPhase int `koanf:"required_from_phase" json:"required_from_phase,omitempty" validate:"min=0"`
	// MaxInstances produces a warning when a file-type's candidate count
	// exceeds this bound. Zero disables the check.
	MaxInstances int `koanf:"max_instances" json:"max_instances,omitempty" validate:"min=0"`
}

// FeatureSpec maps file-type names to their completeness knobs.
type FeatureSpec map[string]FileTypeSpec

// DefaultFeatureSpec mirrors the built-in schema catalog: required roles are
// always expected, checklists become expected from the review phase on.
func DefaultFeatureSpec() FeatureSpec {
	return FeatureSpec{
		"progress-log": {Required: true, MaxInstances: 2},
		"design":       {Required: true, MaxInstances: 3},
		"spec":         {RequiredFromPhase: 1},
		"checklist":    {RequiredFromPhase: 3},
	}
}

// Issue is one validation finding.
type Issue struct {
	Severity   Severity `json:"severity"`
	Code       string   `json:"code"`
	Message    string   `json:"message"`
	File       string   `json:"file,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// FeatureReport aggregates the findings for one feature.
type FeatureReport struct {
	FeatureID       string   `json:"feature_id"`
	Status          Status   `json:"status"`
	MissingRequired []string `json:"missing_required,omitempty"`
	MissingForPhase []string `json:"missing_for_phase,omitempty"`
	Issues          []Issue  `json:"issues,omitempty"`
	Warnings        []string `json:"warnings,omitempty"`
	Phase           int      `json:"phase"`
}

// Report is the project-wide validation outcome.
type Report struct {
	Status   Status                    `json:"status"`
	Features map[string]*FeatureReport `json:"features"`
	Issues   []Issue                   `json:"issues,omitempty"`
}

// phaseFileTypes are consulted, in order, to read a feature's current phase.
var phaseFileTypes = []string{"progress-log", "phase-status"}

// Validate checks every feature in the scan result against the specification.
func Validate(res *scanner.ScanResult, spec FeatureSpec) *Report {
	if spec == nil {
		spec = DefaultFeatureSpec()
	}

	report := &Report{Status: StatusValid, Features: make(map[string]*FeatureReport)}

	for featureID, fr := range res.Features {
		report.Features[featureID] = validateFeature(fr, spec)
	}

	for _, fr := range report.Features {
		report.Status = worst(report.Status, fr.Status)
	}

	// Unknown-schema files anywhere in the project downgrade the overall
	// report to at least a warning.
	if len(res.Unknown) > 0 {
		report.Status = worst(report.Status, StatusWarning)
		report.Issues = append(report.Issues, Issue{
			Severity:   SeverityWarning,
			Code:       CodeUnknownSchemas,
			Message:    fmt.Sprintf("%d file(s) carry an invalid or unregistered schema tag", len(res.Unknown)),
			Suggestion: "run a scan with --json to list the affected files",
		})
	}

	return report
}

func validateFeature(fr *scanner.FeatureScanResult, spec FeatureSpec) *FeatureReport {
	fRep := &FeatureReport{
		FeatureID: fr.FeatureID,
		Status:    StatusValid,
		Phase:     currentPhase(fr),
	}

	for _, ft := range sortedFileTypes(spec) {
		fts := spec[ft]
		_, present := fr.Primary[ft]

		if fts.Required && !present {
			fRep.MissingRequired = append(fRep.MissingRequired, ft)
			fRep.Issues = append(fRep.Issues, Issue{
				Severity:   SeverityError,
				Code:       CodeMissingRequired,
				Message:    fmt.Sprintf("required file-type %q has no primary instance", ft),
				Suggestion: fmt.Sprintf("create a %s artifact for feature %s", ft, fr.FeatureID),
			})
		}

		if !present && fts.RequiredFromPhase > 0 && fRep.Phase >= fts.RequiredFromPhase {
			fRep.MissingForPhase = append(fRep.MissingForPhase, ft)
			fRep.Issues = append(fRep.Issues, Issue{
				Severity:   SeverityWarning,
				Code:       CodeMissingForPhase,
				Message:    fmt.Sprintf("file-type %q is expected from phase %d (feature is at phase %d)", ft, fts.RequiredFromPhase, fRep.Phase),
				Suggestion: fmt.Sprintf("create a %s artifact before continuing", ft),
			})
		}

		if fts.MaxInstances > 0 {
			if count := len(fr.All[ft]); count > fts.MaxInstances {
				msg := fmt.Sprintf("file-type %q has %d instances, expected at most %d", ft, count, fts.MaxInstances)
				fRep.Warnings = append(fRep.Warnings, msg)
				fRep.Issues = append(fRep.Issues, Issue{
					Severity:   SeverityWarning,
					Code:       CodeTooManyInstances,
					Message:    msg,
					Suggestion: "archive or delete the stale copies",
				})
			}
		}
	}

	// A conflict resolved without any explicit primary declaration means the
	// engine guessed. Surface it regardless of instance-count checks.
	for _, conflict := range fr.Conflicts {
		if conflict.HasExplicitPrimary {
			continue
		}
		msg := fmt.Sprintf("file-type %q has %d instances and none declares itself primary (picked %s: %s)",
			conflict.FileType, len(conflict.InstancePaths), conflict.SelectedPath, conflict.Detail)
		fRep.Warnings = append(fRep.Warnings, msg)
		fRep.Issues = append(fRep.Issues, Issue{
			Severity:   SeverityWarning,
			Code:       CodeImplicitPrimary,
			Message:    msg,
			File:       conflict.SelectedPath,
			Suggestion: "add 'primary: true' to the authoritative instance",
		})
	}

	for _, issue := range fRep.Issues {
		switch issue.Severity {
		case SeverityError:
			fRep.Status = worst(fRep.Status, StatusError)
		case SeverityWarning:
			fRep.Status = worst(fRep.Status, StatusWarning)
		}
	}
	return fRep
}

// currentPhase reads the feature's phase from its progress-log or
// phase-status primary file. Accepts integers, numeric strings, and
// "phase-N" style tags. Unknown phases read as zero.
func currentPhase(fr *scanner.FeatureScanResult) int {
	for _, ft := range phaseFileTypes {
		primary, ok := fr.Primary[ft]
		if !ok || primary.Content == nil {
			continue
		}
		for _, field := range []string{"phase", "current_phase", "meta.phase"} {
			if raw := parser.LookupString(primary.Content, field); raw != "" {
				if n, ok := parsePhase(raw); ok {
					return n
				}
			}
		}
	}
	return 0
}

func parsePhase(raw string) (int, bool) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	raw = strings.TrimPrefix(raw, "phase-")
	raw = strings.TrimPrefix(raw, "phase ")
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func sortedFileTypes(spec FeatureSpec) []string {
	out := make([]string, 0, len(spec))
	for ft := range spec {
		out = append(out, ft)
	}
	sort.Strings(out)
	return out
}

// worst returns the more severe of two statuses.
func worst(a, b Status) Status {
	rank := map[Status]int{StatusValid: 0, StatusWarning: 1, StatusError: 2}
	if rank[b] > rank[a] {
		return b
	}
	return a
}
