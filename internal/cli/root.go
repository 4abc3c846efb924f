package cli

import (
	stderrors "errors"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pjv/pkg/buildinfo"
	"github.com/matzehuels/pjv/pkg/config"
)

// ErrInvalid is returned when at least one manifest is missing or invalid.
// The details have already been printed, so callers should only set the
// exit status.
var ErrInvalid = stderrors.New("validation failed")

// RootCommand creates the root cobra command with all subcommands registered.
// Run without a subcommand, pjv behaves like `pjv validate`.
func (c *CLI) RootCommand() *cobra.Command {
	opts := &validateOptions{}
	var verbose bool

	root := &cobra.Command{
		Use:   "pjv [files...]",
		Short: "Validate package.json files",
		Long: `pjv checks package.json manifests against the npm or CommonJS package
conventions and reports errors, warnings and recommendations.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
			if _, err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd, args, opts)
		},
	}

	root.SetOut(c.stdout)
	root.SetErr(c.stderr)
	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ./"+config.FileName+")")
	c.addValidateFlags(root, opts)

	root.AddCommand(c.validateCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.specsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
