// Package completion provides shell completion generation commands.
package completion

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewCommand returns the completion command. The root command is
// needed because cobra generates completions from the full command
// tree.
func NewCommand(rootCmd *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:   "completion <shell>",
		Short: "Generate shell completions",
		Long: `Generate a completion script for pricekit subcommands and flags.

The script is written to stdout; source it from your shell profile.
For bash:

  echo 'source <(pricekit completion bash)' >> ~/.bashrc

For zsh, write it into a directory on your $fpath instead:

  pricekit completion zsh > ~/.zsh/completions/_pricekit

Fish and PowerShell users can pipe the output to their usual
completion locations.`,
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletion(os.Stdout)
			case "zsh":
				return rootCmd.GenZshCompletion(os.Stdout)
			case "fish":
				return rootCmd.GenFishCompletion(os.Stdout, true)
			case "powershell":
				return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return fmt.Errorf("unsupported shell: %s", args[0])
		},
	}
}
