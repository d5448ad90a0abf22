package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/snip/pkg/commands/options"
	"tableflip.dev/snip/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command) {
	var (
		title, content, category string
		uncategorized, format    bool
	)
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a block",
		Example: `
snip edit 2f1c… --title "list all files"
snip edit 2f1c… --category go
snip edit 2f1c… --uncategorized
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: blockCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			out, err := oo.Format()
			if err != nil {
				return err
			}
			if uncategorized && cmd.Flags().Changed("category") {
				return errors.New("--category and --uncategorized are mutually exclusive")
			}

			r := edit.Edit{
				ID:     args[0],
				Format: format,
				Output: out,
				Out:    cmd.OutOrStdout(),
			}
			if cmd.Flags().Changed("title") {
				r.Title = &title
			}
			if cmd.Flags().Changed("content") {
				r.Content = &content
			}
			switch {
			case uncategorized:
				empty := ""
				r.Category = &empty
			case cmd.Flags().Changed("category"):
				r.Category = &category
			}

			s, err := openSession(false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()
			r.Service = s.Service
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title.")
	cmd.Flags().StringVar(&content, "content", "", "New content.")
	cmd.Flags().StringVar(&category, "category", "", "New category name or id.")
	cmd.Flags().BoolVar(&uncategorized, "uncategorized", false, "Remove the block from its category.")
	cmd.Flags().BoolVar(&format, "format", false, "Run the new content through code detection.")
	_ = cmd.RegisterFlagCompletionFunc("category", categoryCompletions)
	options.AddStructuredOutputArgs(cmd, oo)

	topLevel.AddCommand(cmd)
}
