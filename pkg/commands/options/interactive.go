package options

import (
	"errors"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"tableflip.dev/snip/pkg/block"
	"tableflip.dev/snip/pkg/block/viewmodel"
)

// InteractiveOptions
type InteractiveOptions struct {
	Interactive bool
}

func InteractiveArgs(cmd *cobra.Command, o *InteractiveOptions) {
	cmd.Flags().BoolVarP(&o.Interactive, "interactive", "i", false,
		`Interactive input of subcommands or options.`)
}

// SelectCategory asks the user to pick a category. Choosing Uncategorized
// returns "".
func SelectCategory(categories []block.Category) (string, error) {
	items := make([]string, 0, len(categories)+1)
	for _, c := range categories {
		items = append(items, c.Name)
	}
	items = append(items, viewmodel.Uncategorized)

	prompt := promptui.Select{
		Label: "Category",
		Items: items,
		Size:  10,
		Searcher: func(input string, index int) bool {
			return strings.Contains(strings.ToLower(items[index]), strings.ToLower(input))
		},
	}
	i, _, err := prompt.Run()
	if err != nil {
		return "", err
	}
	if i == len(categories) {
		return "", nil
	}
	return categories[i].ID, nil
}

// Confirm asks a yes/no question. Anything but yes is false.
func Confirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// PromptText asks for a single line of input.
func PromptText(label string) (string, error) {
	prompt := promptui.Prompt{
		Label: label,
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("a value is required")
			}
			return nil
		},
	}
	return prompt.Run()
}
