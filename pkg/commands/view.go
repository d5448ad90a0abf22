package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/snip/pkg/commands/options"
	"tableflip.dev/snip/pkg/runner/view"
)

func addView(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Show or change which groups are expanded, previewed and selected",
		Long: options.Wrap80(`Groups are named by category; "Uncategorized" names the group of blocks
without a known category. The view is saved and shared with "snip get",
"snip watch" and "snip ui".`),
		Example: `
snip view
snip view expand Shell Go
snip view collapse --all
snip view preview Shell
snip view select Go
snip view select-all
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, view.ActionShow, nil, false, oo)
		},
	}
	options.AddStructuredOutputArgs(cmd, oo)

	for _, sub := range []struct {
		action view.Action
		short  string
		all    bool
	}{
		{view.ActionExpand, "Expand groups", true},
		{view.ActionCollapse, "Collapse groups", true},
		{view.ActionPreview, "Toggle block previews of groups", true},
		{view.ActionSelect, "Add groups to the selection", true},
		{view.ActionDeselect, "Remove groups from the selection", true},
		{view.ActionSelectAll, "Select every group", false},
		{view.ActionSelectNone, "Clear the selection", false},
	} {
		addViewAction(cmd, sub.action, sub.short, sub.all)
	}

	topLevel.AddCommand(cmd)
}

func addViewAction(parent *cobra.Command, action view.Action, short string, named bool) {
	oo := &options.OutputOptions{}
	var all bool

	cmd := &cobra.Command{
		Use:   string(action),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, action, args, all, oo)
		},
	}
	if named {
		cmd.Use += " [group...]"
		cmd.Args = cobra.ArbitraryArgs
		cmd.ValidArgsFunction = groupCompletions
		cmd.Flags().BoolVar(&all, "all", false, "Apply to every group.")
	}
	options.AddStructuredOutputArgs(cmd, oo)

	parent.AddCommand(cmd)
}

func runView(cmd *cobra.Command, action view.Action, names []string, all bool, oo *options.OutputOptions) error {
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

	r := view.View{
		Action:    action,
		Names:     names,
		All:       all,
		Service:   s.Service,
		ViewState: s.View,
		Format:    format,
		Out:       cmd.OutOrStdout(),
	}
	return oo.HandleError(r.Do(cmd.Context()))
}
