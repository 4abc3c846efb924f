package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/pjv/pkg/report"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for pjv. Spec names and output
formats complete as flag values.`,
		Example: `  source <(pjv completion bash)
  pjv completion zsh > "${fpath[1]}/_pjv"
  pjv completion fish | source`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(c.stdout, true)
			case "zsh":
				return root.GenZshCompletion(c.stdout)
			case "fish":
				return root.GenFishCompletion(c.stdout, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(c.stdout)
			}
			return nil
		},
	}
}

// completeValues registers fixed completions for the named flag, if cmd
// defines it.
func completeValues(cmd *cobra.Command, flag string, values []string) {
	if cmd.Flags().Lookup(flag) == nil {
		return
	}
	_ = cmd.RegisterFlagCompletionFunc(flag, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
}

// registerCompletions wires value completion for --spec and --output.
func registerCompletions(cmd *cobra.Command) {
	completeValues(cmd, "spec", specNames())
	completeValues(cmd, "output", report.Formats())
}
