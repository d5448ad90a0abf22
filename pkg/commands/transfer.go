package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/snip/pkg/commands/options"
	"tableflip.dev/snip/pkg/runner/transfer"
)

func addExport(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write every category and block to a file",
		Long: options.Wrap80(`Export the store as YAML, or JSON when --json is set or the file ends in
.json. Writes to stdout when the file is "-" or not given.`),
		Example: `
snip export > snips.yaml
snip export backup.json
`,
		Args: cobra.MaximumNArgs(1),
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

			r := transfer.Export{
				Path:    transfer.Stdio,
				Format:  format,
				Service: s.Service,
				Out:     cmd.OutOrStdout(),
			}
			if len(args) == 1 {
				r.Path = args[0]
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddStructuredOutputArgs(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addImport(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Merge categories and blocks from an export",
		Long: options.Wrap80(`Import an export file. Categories are matched by id and then by name, blocks
whose id is already stored are skipped, and everything else is added. Reads
stdin when the file is "-" or not given.`),
		Example: `
snip import snips.yaml
cat backup.json | snip import --json
`,
		Args: cobra.MaximumNArgs(1),
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

			r := transfer.Import{
				Path:    transfer.Stdio,
				In:      cmd.InOrStdin(),
				Service: s.Service,
				Format:  format,
				Out:     cmd.OutOrStdout(),
			}
			if len(args) == 1 {
				r.Path = args[0]
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddStructuredOutputArgs(cmd, oo)

	topLevel.AddCommand(cmd)
}
