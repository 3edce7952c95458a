package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apperrors "github.com/specforge/schemascan/internal/errors"
	"github.com/specforge/schemascan/internal/schema"
)

var schemasCmd = &cobra.Command{
	Use:   "schemas [identifier]",
	Short: "List the registered schema catalog",
	Long: `Print every schema the engine recognizes, with its scope, required flag,
and supported content carriers. Files tagged with identifiers outside this
catalog land on the unknown-schema list during scans.

With an identifier argument, show just that schema. Versioned and
unversioned forms are both accepted.`,
	Args:    cobra.MaximumNArgs(1),
	GroupID: GroupConfiguration,
	RunE: func(cmd *cobra.Command, args []string) error {
		scope, _ := cmd.Flags().GetString("scope")
		registry := schema.DefaultRegistry()

		var defs []schema.Definition
		switch {
		case len(args) == 1:
			id := args[0]
			if err := schema.ValidateIDFormat(id); err != nil {
				apperrors.PrintError(apperrors.InvalidSchemaIdentifier(id))
				return NewExitError(ExitInvalidArguments)
			}
			def, ok := registry.Get(id)
			if !ok {
				return fmt.Errorf("schema %q is not registered", schema.BaseID(id))
			}
			defs = []schema.Definition{def}
		case scope == "":
			defs = registry.All()
		case scope == "feature":
			defs = registry.ByScope(schema.ScopeFeature)
		case scope == "project":
			defs = registry.ByScope(schema.ScopeProject)
		default:
			return fmt.Errorf("unknown scope %q, want feature or project", scope)
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(defs)
		}

		w := cmd.OutOrStdout()
		for _, def := range defs {
			id := def.ID
			if def.Version != "" {
				id = fmt.Sprintf("%s@%s", def.ID, def.Version)
			}
			required := ""
			if def.Required {
				required = " required"
			}
			fmt.Fprintf(w, "%-32s %s%s\n", id, def.Scope, required)
			fmt.Fprintf(w, "  %s\n", def.Description)
			fmt.Fprintf(w, "  carriers: %v\n", def.Carriers)
		}
		return nil
	},
}

func init() {
	schemasCmd.Flags().String("scope", "", "Filter by scope (feature or project)")
	rootCmd.AddCommand(schemasCmd)
}
