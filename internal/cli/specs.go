package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/pjv/pkg/errors"
	"github.com/matzehuels/pjv/pkg/report"
)

// specsCommand creates the specs command.
func (c *CLI) specsCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "specs",
		Short: "List the built-in specifications and their field rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateOutputFormat(output, report.Formats()...); err != nil {
				return err
			}
			return report.WriteSpecs(c.stdout, output, report.Specs())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", report.FormatText, "output format (text, json, yaml)")
	registerCompletions(cmd)
	return cmd
}
