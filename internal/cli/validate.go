package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	apperrors "github.com/specforge/schemascan/internal/errors"
	"github.com/specforge/schemascan/internal/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate [project-root]",
	Short: "Check feature completeness against the project spec",
	Long: `Scan the project tree, then compare every feature's resolved artifacts
against the completeness specification: required file-types, phase-gated
file-types, and instance-count bounds.

Exits non-zero when any feature is missing a required artifact, so the
command slots directly into CI.`,
	Args:    cobra.MaximumNArgs(1),
	GroupID: GroupDiscovery,
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) > 0 {
			root = args[0]
		}

		result, cfg, warnings, err := runScan(cmd, root)
		if err != nil {
			if cliErr, ok := err.(*apperrors.CLIError); ok {
				apperrors.PrintError(cliErr)
				return NewExitError(ExitScanFailed)
			}
			return err
		}
		result.Warnings = append(result.Warnings, warnings...)

		report := validator.Validate(result, cfg.FeatureSpec())

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}
		} else {
			renderValidationReport(cmd.OutOrStdout(), report)
		}

		if report.Status == validator.StatusError {
			return NewExitError(ExitValidationFailed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
