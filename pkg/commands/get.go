package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/snip/pkg/commands/options"
	"tableflip.dev/snip/pkg/printers"
	"tableflip.dev/snip/pkg/runner/get"
)

func addGet(topLevel *cobra.Command) {
	bo := &options.BoardOptions{}
	oo := &options.OutputOptions{}
	var render bool

	cmd := &cobra.Command{
		Use:     "get",
		Aliases: []string{"board", "ls"},
		Short:   "Print the board",
		Long: options.Wrap80(`Print blocks grouped by category. Groups follow the saved view: collapsed
groups print only their header and count, and groups with previews hidden print
titles only. Use "snip view" to change what is shown.`),
		Example: `
snip get
snip get --category go --category shell
snip get --all --expand-all
snip get --title "git *" --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			format, err := oo.Format()
			if err != nil {
				return err
			}
			s, err := openSession(true)
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()

			r := get.Get{
				Options:   bo.App(),
				ShowID:    bo.ShowID,
				ExpandAll: bo.ExpandAll,
				Service:   s.Service,
				ViewState: s.View,
				Format:    format,
				Out:       cmd.OutOrStdout(),
			}
			if render && printers.IsTerminal() {
				r.Markdown = markdownFor(s)
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddBoardArgs(cmd, bo)
	_ = cmd.RegisterFlagCompletionFunc("category", categoryCompletions)
	cmd.Flags().BoolVar(&render, "render", false, "Render previews as markdown.")
	options.AddStructuredOutputArgs(cmd, oo)

	topLevel.AddCommand(cmd)
}
