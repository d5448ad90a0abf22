package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/snip/pkg/commands/options"
	"tableflip.dev/snip/pkg/runner/categories"
)

func addCategories(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category", "cat"},
		Short:   "Manage categories",
		Example: `
snip categories
snip categories add Shell --color blue
snip categories edit Shell --name Bash
snip categories rm Bash
`,
	}

	list := addCategoriesList(cmd)
	addCategoriesAdd(cmd)
	addCategoriesEdit(cmd)
	addCategoriesRemove(cmd)

	// Bare "snip categories" lists.
	cmd.RunE = list.RunE
	cmd.Flags().AddFlagSet(list.Flags())

	topLevel.AddCommand(cmd)
}

func addCategoriesList(parent *cobra.Command) *cobra.Command {
	oo := &options.OutputOptions{}
	var palette bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List categories with their block counts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			format, err := oo.Format()
			if err != nil {
				return err
			}
			s, err := openSession(false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()

			r := categories.List{
				Palette: palette,
				Service: s.Service,
				Format:  format,
				Out:     cmd.OutOrStdout(),
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVar(&palette, "palette", false, "Also print the colour palette.")
	options.AddStructuredOutputArgs(cmd, oo)

	parent.AddCommand(cmd)
	return cmd
}

func addCategoriesAdd(parent *cobra.Command) {
	oo := &options.OutputOptions{}
	var color string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			format, err := oo.Format()
			if err != nil {
				return err
			}
			s, err := openSession(false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()

			r := categories.Add{
				Name:    args[0],
				Color:   color,
				Service: s.Service,
				Format:  format,
				Out:     cmd.OutOrStdout(),
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "Palette name or #rrggbb. Defaults to blue.")
	_ = cmd.RegisterFlagCompletionFunc("color", colorCompletions)
	options.AddStructuredOutputArgs(cmd, oo)

	parent.AddCommand(cmd)
}

func addCategoriesEdit(parent *cobra.Command) {
	oo := &options.OutputOptions{}
	var name, color string

	cmd := &cobra.Command{
		Use:               "edit <name|id>",
		Short:             "Rename or recolour a category",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: categoryCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			format, err := oo.Format()
			if err != nil {
				return err
			}
			s, err := openSession(false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()

			r := categories.Edit{
				Ref:     args[0],
				Service: s.Service,
				Format:  format,
				Out:     cmd.OutOrStdout(),
			}
			if cmd.Flags().Changed("name") {
				r.Name = &name
			}
			if cmd.Flags().Changed("color") {
				r.Color = &color
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name.")
	cmd.Flags().StringVar(&color, "color", "", "New palette name or #rrggbb.")
	_ = cmd.RegisterFlagCompletionFunc("color", colorCompletions)
	options.AddStructuredOutputArgs(cmd, oo)

	parent.AddCommand(cmd)
}

func addCategoriesRemove(parent *cobra.Command) {
	var yes bool

	cmd := &cobra.Command{
		Use:               "rm <name|id>",
		Aliases:           []string{"delete"},
		Short:             "Delete a category that holds no blocks",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: categoryCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(false)
			if err != nil {
				return output.HandleError(err)
			}
			defer s.Close()

			r := categories.Remove{
				Ref:     args[0],
				Service: s.Service,
				Out:     cmd.OutOrStdout(),
			}
			if !yes {
				r.Confirm = options.Confirm
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation.")

	parent.AddCommand(cmd)
}
