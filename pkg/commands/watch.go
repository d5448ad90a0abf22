package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/snip/pkg/commands/options"
	"tableflip.dev/snip/pkg/runner/watch"
)

func addWatch(topLevel *cobra.Command) {
	bo := &options.BoardOptions{}
	var noClear bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the board and redraw it when the store changes",
		Example: `
snip watch
snip watch --category go --expand-all
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(true)
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			r := watch.Watch{
				Options:   bo.App(),
				ShowID:    bo.ShowID,
				ExpandAll: bo.ExpandAll,
				Clear:     !noClear,
				Service:   s.Service,
				ViewState: s.View,
				Logger:    logger,
				Out:       cmd.OutOrStdout(),
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddBoardArgs(cmd, bo)
	_ = cmd.RegisterFlagCompletionFunc("category", categoryCompletions)
	cmd.Flags().BoolVar(&noClear, "no-clear", false, "Append each redraw instead of clearing the screen.")

	topLevel.AddCommand(cmd)
}
