package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/specforge/schemascan/internal/config"
	apperrors "github.com/specforge/schemascan/internal/errors"
	"github.com/specforge/schemascan/internal/legacy"
	"github.com/specforge/schemascan/internal/progress"
	"github.com/specforge/schemascan/internal/scanner"
	"github.com/specforge/schemascan/internal/schema"
)

var scanCmd = &cobra.Command{
	Use:   "scan [project-root]",
	Short: "Discover and classify feature artifacts",
	Long: `Walk the project tree, classify every YAML and Markdown artifact by its
schema tag (or by filename convention for legacy files), group them by
feature, and resolve duplicate instances to a single primary per file-type.

The scan is read-only and best-effort: malformed files are skipped, unknown
schema tags are collected on a side list, and only an unusable project root
aborts the run.`,
	Args:    cobra.MaximumNArgs(1),
	GroupID: GroupDiscovery,
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) > 0 {
			root = args[0]
		}

		result, _, warnings, err := runScan(cmd, root)
		if err != nil {
			if cliErr, ok := err.(*apperrors.CLIError); ok {
				apperrors.PrintError(cliErr)
				return NewExitError(ExitScanFailed)
			}
			return err
		}
		result.Warnings = append(result.Warnings, warnings...)

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		renderScanResult(cmd.OutOrStdout(), result)
		return nil
	},
}

// runScan loads configuration, builds the engine, and executes one scan.
// Shared by the scan and validate commands.
func runScan(cmd *cobra.Command, root string) (*scanner.ScanResult, *config.Config, []string, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, nil, nil, apperrors.MissingProjectRoot(root)
	}

	cfg, warnings, err := config.Load(root)
	if err != nil {
		return nil, nil, nil, apperrors.ConfigLoadFailed(err)
	}

	opts := cfg.ScannerOptions()
	opts.Logger = newLogger(cmd)
	s := scanner.New(schema.DefaultRegistry(), legacy.NewDetector(legacy.DefaultRules()), opts)

	jsonOut, _ := cmd.Flags().GetBool("json")
	var display *progress.ScanDisplay
	if !jsonOut {
		display = progress.NewScanDisplay(progress.DetectTerminalCapabilities())
		display.Start(root)
	}

	result, err := s.Scan(root)
	if display != nil {
		if err != nil {
			display.Fail(err)
		} else {
			display.Complete(fmt.Sprintf("scanned %d files in %s", result.Stats.FilesVisited, result.Stats.Elapsed.Round(timeRounding)))
		}
	}
	if err != nil {
		return nil, nil, nil, apperrors.ScanFailed(err)
	}

	return result, cfg, warnings, nil
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
