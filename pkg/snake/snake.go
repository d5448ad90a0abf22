// Package snake walks a cobra command tree with prompts so a command can be
// built without remembering its name, arguments or flags.
package snake

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Prompter asks the questions Walk needs answered.
type Prompter interface {
	// Select returns the index of the chosen item.
	Select(label string, items []string) (int, error)
	// Text returns a line of input. An empty answer means def.
	Text(label, def string, validate func(string) error) (string, error)
}

// runItem ends the flag loop.
const runItem = "↵ run"

// Walk prompts for a runnable command under root, then for its positional
// arguments and flags. It returns the argument list that runs the choice from
// root.
func Walk(root *cobra.Command, p Prompter) ([]string, error) {
	cmd, path, err := pickCommand(root, p)
	if err != nil {
		return nil, err
	}
	argv := append([]string(nil), path...)

	positional, err := promptArgs(cmd, p)
	if err != nil {
		return nil, err
	}
	flags, err := promptFlags(cmd, p)
	if err != nil {
		return nil, err
	}
	argv = append(argv, flags...)
	if len(positional) > 0 {
		argv = append(append(argv, "--"), positional...)
	}
	return argv, nil
}

func pickCommand(root *cobra.Command, p Prompter) (*cobra.Command, []string, error) {
	var path []string
	cmd := root
	for {
		subs := available(cmd)
		if len(subs) == 0 {
			return cmd, path, nil
		}
		var items []string
		self := cmd != root && cmd.Runnable()
		if self {
			items = append(items, describe(cmd.Name(), "run "+cmd.CommandPath()))
		}
		for _, sub := range subs {
			items = append(items, describe(sub.Name(), sub.Short))
		}
		i, err := p.Select(cmd.CommandPath(), items)
		if err != nil {
			return nil, nil, err
		}
		if self {
			if i == 0 {
				return cmd, path, nil
			}
			i--
		}
		if i < 0 || i >= len(subs) {
			return nil, nil, fmt.Errorf("snake: no command at %d", i)
		}
		cmd = subs[i]
		path = append(path, cmd.Name())
	}
}

func available(cmd *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, sub := range cmd.Commands() {
		if !sub.IsAvailableCommand() || sub.Name() == "help" {
			continue
		}
		out = append(out, sub)
	}
	return out
}

func describe(name, short string) string {
	return fmt.Sprintf("%-12s %s", name, short)
}

// promptArgs asks for positional arguments when the usage line names any.
func promptArgs(cmd *cobra.Command, p Prompter) ([]string, error) {
	usage := strings.Fields(cmd.Use)
	if len(usage) < 2 {
		return nil, nil
	}
	label := strings.Join(usage[1:], " ")
	answer, err := p.Text(label, "", func(in string) error {
		args, err := Split(in)
		if err != nil {
			return err
		}
		if cmd.Args == nil {
			return nil
		}
		return cmd.Args(cmd, args)
	})
	if err != nil {
		return nil, err
	}
	return Split(answer)
}

// promptFlags offers the command's own flags until runItem is chosen.
func promptFlags(cmd *cobra.Command, p Prompter) ([]string, error) {
	var flags []*pflag.Flag
	cmd.LocalNonPersistentFlags().VisitAll(func(f *pflag.Flag) {
		if f.Hidden || f.Deprecated != "" || f.Name == "help" {
			return
		}
		flags = append(flags, f)
	})
	sort.SliceStable(flags, func(i, j int) bool { return flags[i].Name < flags[j].Name })

	var out []string
	for len(flags) > 0 {
		items := []string{runItem}
		for _, f := range flags {
			items = append(items, describe("--"+f.Name, f.Usage))
		}
		i, err := p.Select(cmd.CommandPath()+" flags", items)
		if err != nil {
			return nil, err
		}
		if i <= 0 || i > len(flags) {
			break
		}
		f := flags[i-1]
		value, err := promptValue(f, p)
		if err != nil {
			return nil, err
		}
		out = append(out, fmt.Sprintf("--%s=%s", f.Name, value))
		if !repeatable(f) {
			flags = append(flags[:i-1:i-1], flags[i:]...)
		}
	}
	return out, nil
}

func promptValue(f *pflag.Flag, p Prompter) (string, error) {
	label := "--" + f.Name
	if f.Value.Type() == "bool" {
		answer, err := p.Text(label+" (yes/no)", "yes", func(in string) error {
			if in == "" {
				return nil
			}
			_, err := ParseBool(in)
			return err
		})
		if err != nil {
			return "", err
		}
		if answer == "" {
			answer = "yes"
		}
		b, _ := ParseBool(answer)
		return fmt.Sprint(b), nil
	}

	def := f.DefValue
	if repeatable(f) {
		def = ""
	}
	answer, err := p.Text(label, def, func(in string) error {
		if in == "" && def == "" {
			return errors.New("a value is required")
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if answer == "" {
		answer = def
	}
	return answer, nil
}

func repeatable(f *pflag.Flag) bool {
	return strings.HasSuffix(f.Value.Type(), "Array") || strings.HasSuffix(f.Value.Type(), "Slice")
}
