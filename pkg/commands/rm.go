package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/snip/pkg/commands/options"
	"tableflip.dev/snip/pkg/runner/rm"
)

func addRemove(topLevel *cobra.Command) {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a block",
		Example: `
snip rm 2f1c…
snip rm 2f1c… --yes
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: blockCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(false)
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			r := rm.Remove{
				ID:      args[0],
				Service: s.Service,
				Out:     cmd.OutOrStdout(),
			}
			if !yes {
				r.Confirm = options.Confirm
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking.")

	topLevel.AddCommand(cmd)
}
