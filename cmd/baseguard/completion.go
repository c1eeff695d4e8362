package baseguard

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:       "completion [bash|zsh|fish|powershell]",
		Short:     "Generate shell completion scripts",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletion(out)
			case "zsh":
				return rootCmd.GenZshCompletion(out)
			case "fish":
				return rootCmd.GenFishCompletion(out, true)
			case "powershell":
				return rootCmd.GenPowerShellCompletionWithDesc(out)
			default:
				return usageErr(fmt.Errorf("unsupported shell: %s", args[0]))
			}
		},
		Example: `
# Bash
baseguard completion bash > /etc/bash_completion.d/baseguard

# Zsh
baseguard completion zsh > "${fpath[1]}/_baseguard"

# Fish
baseguard completion fish > ~/.config/fish/completions/baseguard.fish
`,
	}
	rootCmd.AddCommand(cmd)
}
