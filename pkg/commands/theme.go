package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/snip/pkg/runner/theme"
	"tableflip.dev/snip/pkg/viewstate"
)

func addTheme(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the colour theme",
		Example: `
snip theme
snip theme toggle
snip theme mode light
snip theme set ocean
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTheme(cmd, theme.ActionList, "")
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTheme(cmd, theme.ActionToggle, "")
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:       "mode <light|dark>",
		Short:     "Set light or dark mode",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(viewstate.ThemeLight), string(viewstate.ThemeDark)},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTheme(cmd, theme.ActionMode, args[0])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:       "set <variant>",
		Short:     "Choose a theme variant",
		Args:      cobra.ExactArgs(1),
		ValidArgs: variantIDs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTheme(cmd, theme.ActionSet, args[0])
		},
	})

	topLevel.AddCommand(cmd)
}

func runTheme(cmd *cobra.Command, action theme.Action, value string) error {
	cmd.SilenceUsage = true
	s, err := openSession(true)
	if err != nil {
		return output.HandleError(err)
	}
	defer s.Close()

	r := theme.Theme{
		Action:    action,
		Value:     value,
		ViewState: s.View,
		Out:       cmd.OutOrStdout(),
	}
	return output.HandleError(r.Do(cmd.Context()))
}

func variantIDs() []string {
	vs := viewstate.Variants()
	ids := make([]string, 0, len(vs))
	for _, v := range vs {
		ids = append(ids, v.ID)
	}
	return ids
}
