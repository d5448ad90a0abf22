package snake

import (
	"io"
	"strings"

	"github.com/manifoldco/promptui"
)

// Terminal prompts with promptui.
type Terminal struct {
	In  io.Reader
	Out io.Writer
}

func (t Terminal) Select(label string, items []string) (int, error) {
	prompt := promptui.Select{
		HideHelp: true,
		Label:    label,
		Items:    items,
		Size:     10,
		Searcher: func(input string, index int) bool {
			name := strings.ReplaceAll(strings.ToLower(items[index]), " ", "")
			input = strings.ReplaceAll(strings.ToLower(input), " ", "")
			return strings.Contains(name, input)
		},
		Stdin:  io.NopCloser(t.In),
		Stdout: nopWriteCloser{t.Out},
	}
	i, _, err := prompt.Run()
	return i, err
}

func (t Terminal) Text(label, def string, validate func(string) error) (string, error) {
	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }}: ",
		Valid:   "{{ . | green }}: ",
		Invalid: "{{ . | red }}: ",
		Success: "{{ . | bold }}: ",
	}
	prompt := promptui.Prompt{
		Label:     label,
		Default:   def,
		Templates: templates,
		Validate:  validate,
		Stdin:     io.NopCloser(t.In),
		Stdout:    nopWriteCloser{t.Out},
	}
	return prompt.Run()
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
