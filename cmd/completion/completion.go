// Package completion provides shell completion generation commands.
package completion

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewCommand returns the completion command.
func NewCommand(rootCmd *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completions",
		Long: `Generate shell completion scripts for sheetkit.

Install instructions:
  Bash:       sheetkit completion bash > /etc/bash_completion.d/sheetkit
              echo 'source <(kit completion bash)' >> ~/.bashrc
  Zsh:        sheetkit completion zsh > ~/.zsh/completions/_sheetkit
  Fish:       sheetkit completion fish > ~/.config/fish/completions/sheetkit.fish
  PowerShell: sheetkit completion powershell >> $PROFILE`,
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Args:      cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				fmt.Fprintln(os.Stdout, "# sheetkit bash completion")
				fmt.Fprintln(os.Stdout, "# Install: sheetkit completion bash > /etc/bash_completion.d/sheetkit")
				fmt.Fprintln(os.Stdout, "# Or:      echo 'source <(kit completion bash)' >> ~/.bashrc")
				fmt.Fprintln(os.Stdout)
				return rootCmd.GenBashCompletion(os.Stdout)
			case "zsh":
				fmt.Fprintln(os.Stdout, "# sheetkit zsh completion")
				fmt.Fprintln(os.Stdout, "# Install: sheetkit completion zsh > ~/.zsh/completions/_sheetkit")
				fmt.Fprintln(os.Stdout)
				return rootCmd.GenZshCompletion(os.Stdout)
			case "fish":
				fmt.Fprintln(os.Stdout, "# sheetkit fish completion")
				fmt.Fprintln(os.Stdout, "# Install: sheetkit completion fish > ~/.config/fish/completions/sheetkit.fish")
				fmt.Fprintln(os.Stdout)
				return rootCmd.GenFishCompletion(os.Stdout, true)
			case "powershell":
				fmt.Fprintln(os.Stdout, "# sheetkit PowerShell completion")
				fmt.Fprintln(os.Stdout, "# Install: sheetkit completion powershell >> $PROFILE")
				fmt.Fprintln(os.Stdout)
				return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish, powershell)", args[0])
			}
		},
	}
	return cmd
}
