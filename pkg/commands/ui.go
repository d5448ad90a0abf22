package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/snip/pkg/commands/options"
	"tableflip.dev/snip/pkg/tui"
)

func addUI(topLevel *cobra.Command) {
	bo := &options.BoardOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive board",
		Long: options.Wrap80(`Browse the board in the terminal. Press ? for the key bindings. Changes made
here are saved to the view and show up in "snip get".`),
		Example: `
snip ui
snip ui --title "git *"
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(true)
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			return tui.Run(cmd.Context(), s.Service, s.View, tui.Options{
				Board:  bo.App(),
				Logger: logger,
			})
		},
	}

	options.AddBoardArgs(cmd, bo)
	_ = cmd.RegisterFlagCompletionFunc("category", categoryCompletions)

	topLevel.AddCommand(cmd)
}
