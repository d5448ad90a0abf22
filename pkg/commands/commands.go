package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tableflip.dev/snip/pkg/commands/options"
	"tableflip.dev/snip/pkg/logging"
	"tableflip.dev/snip/pkg/printers"
	"tableflip.dev/snip/pkg/snake"
)

var (
	output  = &options.OutputOptions{}
	verbose bool
	logger  = zap.NewNop()
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snip",
		Short: options.Wrap80("A categorized snippet board on the command line."),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(verbose)
			if err != nil {
				return err
			}
			logger = l
			zap.ReplaceGlobals(l)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !printers.IsTerminal() {
				return cmd.Help()
			}
			return walk(cmd)
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAdd(topLevel)
	addEdit(topLevel)
	addRemove(topLevel)
	addGet(topLevel)
	addShow(topLevel)
	addCopy(topLevel)
	addClassify(topLevel)
	addCategories(topLevel)
	addView(topLevel)
	addTheme(topLevel)
	addExport(topLevel)
	addImport(topLevel)
	addWatch(topLevel)
	addMCP(topLevel)
	addUI(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
	addUpgrade(topLevel)
}

// walk prompts for a command, then runs it as if it had been typed.
func walk(root *cobra.Command) error {
	argv, err := snake.Walk(root, snake.Terminal{In: root.InOrStdin(), Out: root.OutOrStdout()})
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return nil
	}
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(root.ErrOrStderr(), "%s %s\n", root.Name(), strings.Join(argv, " "))
	root.SetArgs(argv)
	return root.ExecuteContext(root.Context())
}
