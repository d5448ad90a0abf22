package commands

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/snip/pkg/commands/options"
	"tableflip.dev/snip/pkg/runner/classify"
)

func addClassify(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	var languages bool

	cmd := &cobra.Command{
		Use:   "classify [text...]",
		Short: "Show how text would be stored",
		Long: options.Wrap80(`Report whether text is code, markdown or plain, and print what would be
stored. Reads stdin when no text is given. Nothing is saved. --languages lists
the languages code can be tagged with, in the order they are tried.`),
		Example: `
snip classify 'const x = 1;'
cat main.py | snip classify --json
snip classify --languages
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			format, err := oo.Format()
			if err != nil {
				return err
			}
			text := strings.Join(args, " ")
			if len(args) == 0 && !languages {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return oo.HandleError(err)
				}
				text = strings.TrimRight(string(b), "\n")
			}
			r := classify.Classify{
				Text:      text,
				Languages: languages,
				Format:    format,
				Out:       cmd.OutOrStdout(),
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddStructuredOutputArgs(cmd, oo)
	cmd.Flags().BoolVar(&languages, "languages", false, "List detectable languages in priority order.")

	topLevel.AddCommand(cmd)
}
