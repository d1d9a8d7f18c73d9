package cli

import (
	"fmt"
	"text/tabwriter"

	"consultcoach/internal/config"

	"github.com/spf13/cobra"
)

// ModelsOutput is the structured result of 'coach models'.
type ModelsOutput struct {
	Default string               `json:"default"`
	Models  []config.ModelOption `json:"models"`
}

func newModelsCommand(deps *Deps, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the selectable models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.setup(deps)
			if err != nil {
				return err
			}
			ai := rt.cfg.AI

			if opts.output != OutputText {
				return writeOutput(cmd.OutOrStdout(), opts.output, ModelsOutput{
					Default: ai.DefaultModel,
					Models:  ai.Models,
				})
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tLABEL\tDEFAULT")
			for _, m := range ai.Models {
				def := ""
				if m.ID == ai.DefaultModel {
					def = "*"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", m.ID, m.Label, def)
			}
			return w.Flush()
		},
	}
}
