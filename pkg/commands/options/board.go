package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/snip/pkg/app"
)

// BoardOptions are the filters shared by board-printing commands.
type BoardOptions struct {
	Categories    []string
	All           bool
	NoneWhenEmpty bool
	Title         string
	Query         string
	ExpandAll     bool
	ShowID        bool
}

func AddBoardArgs(cmd *cobra.Command, o *BoardOptions) {
	cmd.Flags().StringArrayVar(&o.Categories, "category", nil,
		`Show only these categories (name or id, repeatable). "Uncategorized" selects blocks without one.`)
	cmd.Flags().BoolVar(&o.All, "all", false,
		"Show every category, ignoring the saved selection.")
	cmd.Flags().BoolVar(&o.NoneWhenEmpty, "none-when-empty", false,
		"Show nothing when no category is selected.")
	cmd.Flags().StringVar(&o.Title, "title", "",
		`Show only blocks whose title matches a glob, example: --title="git *".`)
	cmd.Flags().StringVar(&o.Query, "query", "",
		"Show only blocks whose title or content contains this text.")
	cmd.Flags().BoolVar(&o.ExpandAll, "expand-all", false,
		"Print every group expanded.")
	AddShowIDArgs(cmd, &o.ShowID)
}

func AddShowIDArgs(cmd *cobra.Command, showID *bool) {
	cmd.Flags().BoolVar(showID, "show-id", false,
		"Print block ids.")
}

// App converts the flags into service board options.
func (o *BoardOptions) App() app.BoardOptions {
	return app.BoardOptions{
		Categories:    o.Categories,
		All:           o.All,
		NoneWhenEmpty: o.NoneWhenEmpty,
		TitleGlob:     o.Title,
		Query:         o.Query,
	}
}
