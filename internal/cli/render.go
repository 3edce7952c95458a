package cli

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/fatih/color"

	"github.com/specforge/schemascan/internal/artifact"
	"github.com/specforge/schemascan/internal/scanner"
	"github.com/specforge/schemascan/internal/validator"
)

// timeRounding keeps elapsed times readable in summaries.
const timeRounding = time.Millisecond

var (
	headerColor  = color.New(color.Bold)
	goodColor    = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errColor     = color.New(color.FgRed)
	subtleColor  = color.New(color.Faint)
	primaryColor = color.New(color.FgCyan)
)

// renderScanResult prints the human-readable scan summary.
func renderScanResult(w io.Writer, res *scanner.ScanResult) {
	fmt.Fprintln(w, headerColor.Sprintf("Scan of %s", res.Root))
	fmt.Fprintf(w, "  %d files visited, %d classified, %s elapsed\n\n",
		res.Stats.FilesVisited, res.Stats.FilesClassified, res.Stats.Elapsed.Round(timeRounding))

	for _, featureID := range sortedFeatureIDs(res.Features) {
		fr := res.Features[featureID]
		fmt.Fprintln(w, headerColor.Sprintf("Feature: %s", featureID))
		if fr.BaseDir != "" {
			fmt.Fprintf(w, "  base: %s\n", subtleColor.Sprint(fr.BaseDir))
		}

		fileTypes := make([]string, 0, len(fr.All))
		for ft := range fr.All {
			fileTypes = append(fileTypes, ft)
		}
		sort.Strings(fileTypes)

		for _, ft := range fileTypes {
			primary, ok := fr.Primary[ft]
			count := len(fr.All[ft])
			if !ok {
				fmt.Fprintf(w, "  %-14s %s\n", ft, errColor.Sprint("unresolved"))
				continue
			}
			line := fmt.Sprintf("  %-14s %s", ft, primaryColor.Sprint(primary.Path))
			if primary.Legacy {
				line += subtleColor.Sprint(" (legacy)")
			}
			if count > 1 {
				line += warnColor.Sprintf(" (%d instances)", count)
			}
			fmt.Fprintln(w, line)
		}

		for _, conflict := range fr.Conflicts {
			fmt.Fprintf(w, "  %s %s: %s\n",
				warnColor.Sprint("conflict"), conflict.FileType, conflict.Reason)
		}
		fmt.Fprintln(w)
	}

	if len(res.ProjectFiles) > 0 {
		fmt.Fprintln(w, headerColor.Sprint("Project files:"))
		for _, f := range res.ProjectFiles {
			info := artifact.InfoOf(f)
			fmt.Fprintf(w, "  %-14s %s\n", info.FileType, info.Path)
		}
		fmt.Fprintln(w)
	}

	if len(res.Unknown) > 0 {
		fmt.Fprintln(w, warnColor.Sprint("Unknown schemas:"))
		for _, item := range res.Unknown {
			fmt.Fprintf(w, "  %s %s (%s)\n", item.File.Path, subtleColor.Sprintf("tag %q", item.Tag), item.Category)
			fmt.Fprintf(w, "    %s\n", subtleColor.Sprint(item.Suggestion))
		}
		fmt.Fprintln(w)
	}

	for _, warning := range res.Warnings {
		fmt.Fprintf(w, "%s %s\n", warnColor.Sprint("warning:"), warning)
	}
}

// renderValidationReport prints the human-readable validation report.
func renderValidationReport(w io.Writer, report *validator.Report) {
	fmt.Fprintf(w, "%s %s\n\n", headerColor.Sprint("Overall:"), statusBadge(report.Status))

	featureIDs := make([]string, 0, len(report.Features))
	for id := range report.Features {
		featureIDs = append(featureIDs, id)
	}
	sort.Strings(featureIDs)

	for _, id := range featureIDs {
		fRep := report.Features[id]
		fmt.Fprintf(w, "%s %s", statusBadge(fRep.Status), headerColor.Sprint(id))
		if fRep.Phase > 0 {
			fmt.Fprintf(w, " %s", subtleColor.Sprintf("(phase %d)", fRep.Phase))
		}
		fmt.Fprintln(w)

		for _, issue := range fRep.Issues {
			prefix := warnColor.Sprint("warn ")
			if issue.Severity == validator.SeverityError {
				prefix = errColor.Sprint("error")
			}
			fmt.Fprintf(w, "  %s %s\n", prefix, issue.Message)
			if issue.Suggestion != "" {
				fmt.Fprintf(w, "        %s\n", subtleColor.Sprint(issue.Suggestion))
			}
		}
	}

	for _, issue := range report.Issues {
		fmt.Fprintf(w, "\n%s %s\n", warnColor.Sprint("warn "), issue.Message)
	}
}

func statusBadge(s validator.Status) string {
	switch s {
	case validator.StatusValid:
		return goodColor.Sprint("valid  ")
	case validator.StatusWarning:
		return warnColor.Sprint("warning")
	default:
		return errColor.Sprint("error  ")
	}
}

func sortedFeatureIDs(features map[string]*scanner.FeatureScanResult) []string {
	ids := make([]string, 0, len(features))
	for id := range features {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
