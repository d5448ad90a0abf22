package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tableflip.dev/snip/pkg/commands/options"
	"tableflip.dev/snip/pkg/printers"
	"tableflip.dev/snip/pkg/runner/show"
	"tableflip.dev/snip/pkg/viewstate"
)

func addShow(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	var plain bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one block",
		Example: `
snip show 2f1c…
snip show 2f1c… --plain
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: blockCompletions,
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

			r := show.Show{
				ID:      args[0],
				Service: s.Service,
				Format:  format,
				Out:     cmd.OutOrStdout(),
			}
			if !plain && printers.IsTerminal() {
				r.Markdown = markdownFor(s)
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Print the content without markdown rendering.")
	options.AddStructuredOutputArgs(cmd, oo)

	topLevel.AddCommand(cmd)
}

// markdownFor builds a glamour renderer matching the saved theme mode. It
// returns nil when the renderer cannot be built.
func markdownFor(s *session) *printers.Markdown {
	style := "dark"
	if s.View != nil && s.View.ThemeMode() == viewstate.ThemeLight {
		style = "light"
	}
	md, err := printers.NewMarkdown(style, 80)
	if err != nil {
		logger.Debug("markdown renderer", zap.Error(err))
		return nil
	}
	return md
}
