// Package cli provides the Cobra-based command tree for schemascan: project
// scanning, completeness validation, and schema catalog inspection.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	apperrors "github.com/specforge/schemascan/internal/errors"
)

// Command group IDs for organizing help output
const (
	GroupDiscovery     = "discovery"
	GroupConfiguration = "configuration"
)

var rootCmd = &cobra.Command{
	Use:   "schemascan",
	Short: "feature artifact discovery and validation",
	Long: `schemascan discovers, classifies, and validates feature artifacts
scattered across a project tree.

Artifacts are YAML files or Markdown documents with a metadata header. Files
self-declare their role with a schema tag (e.g. "ai-coding/progress-log@1.0");
untagged files that follow the conventional naming patterns are classified by
filename. When several files claim the same role for one feature, schemascan
deterministically picks a single primary instance and explains why.`,
	Example: `  # Discover artifacts under the current directory
  schemascan scan .

  # Validate feature completeness against the project spec
  schemascan validate .

  # Machine-readable output for tooling
  schemascan scan --json . | jq '.features'

  # List the registered schema catalog
  schemascan schemas`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Exit-code-only errors are already reported
// to the user by the failing command; everything else is printed here.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		if _, ok := err.(*ExitError); !ok {
			fmt.Fprint(os.Stderr, apperrors.FormatSimpleError(err, apperrors.Runtime))
		}
	}
	return err
}

// newLogger builds the CLI logger honoring the --debug flag. Without debug
// the engine stays silent and results speak for themselves.
func newLogger(cmd *cobra.Command) *log.Logger {
	debug, _ := cmd.Flags().GetBool("debug")
	if !debug {
		return log.New(io.Discard)
	}
	logger := log.New(os.Stderr)
	logger.SetLevel(log.DebugLevel)
	return logger
}

func init() {
	rootCmd.AddGroup(&cobra.Group{ID: GroupDiscovery, Title: "Discovery:"})
	rootCmd.AddGroup(&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"})

	rootCmd.SetHelpCommandGroupID(GroupConfiguration)
	rootCmd.SetCompletionCommandGroupID(GroupConfiguration)

	// Global flags
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("json", false, "Emit machine-readable JSON on stdout")
}
