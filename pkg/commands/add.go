package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/snip/pkg/commands/options"
	"tableflip.dev/snip/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	var (
		category string
		stdin    bool
		raw      bool
	)
	i := &options.InteractiveOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "add <title> [content...]",
		Short: "Add a block",
		Long: options.Wrap80(`Add a block to the board. Content that looks like source code is wrapped in a
fenced code block tagged with its language unless --raw is set.`),
		Example: `
snip add "list files" ls -la --category shell
git diff | snip add "last diff" --stdin
snip add -i
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if i.Interactive || len(args) > 0 {
				return nil
			}
			return fmt.Errorf("a title is required")
		},
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

			var title, content string
			if len(args) > 0 {
				title = args[0]
				content = strings.Join(args[1:], " ")
			}
			if stdin {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return oo.HandleError(err)
				}
				content = string(b)
			}

			if i.Interactive {
				if strings.TrimSpace(title) == "" {
					if title, err = options.PromptText("Title"); err != nil {
						return err
					}
				}
				if strings.TrimSpace(content) == "" {
					if content, err = options.PromptText("Content"); err != nil {
						return err
					}
				}
				if category == "" {
					categories, err := s.Service.Categories(cmd.Context())
					if err != nil {
						return oo.HandleError(err)
					}
					if category, err = options.SelectCategory(categories); err != nil {
						return err
					}
				}
			}

			r := add.Add{
				Title:     title,
				Content:   content,
				Category:  category,
				Raw:       raw,
				Service:   s.Service,
				ViewState: s.View,
				Format:    format,
				Out:       cmd.OutOrStdout(),
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "",
		"Category name or id.")
	cmd.Flags().BoolVar(&stdin, "stdin", false,
		"Read the content from stdin.")
	cmd.Flags().BoolVar(&raw, "raw", false,
		"Store the content exactly as given.")
	_ = cmd.RegisterFlagCompletionFunc("category", categoryCompletions)
	options.InteractiveArgs(cmd, i)
	options.AddStructuredOutputArgs(cmd, oo)

	topLevel.AddCommand(cmd)
}
