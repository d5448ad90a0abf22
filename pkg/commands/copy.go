package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/snip/pkg/runner/clip"
)

func addCopy(topLevel *cobra.Command) {
	var unfence bool

	cmd := &cobra.Command{
		Use:     "copy <id>",
		Aliases: []string{"cp"},
		Short:   "Copy a block's content to the clipboard",
		Example: `
snip copy 2f1c…
snip copy 2f1c… --unfence
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

			r := clip.Copy{
				ID:      args[0],
				Unfence: unfence,
				Service: s.Service,
				Out:     cmd.OutOrStdout(),
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVar(&unfence, "unfence", false, "Copy only the code inside a fenced block.")

	topLevel.AddCommand(cmd)
}
