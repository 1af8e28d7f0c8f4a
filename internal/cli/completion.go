package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for sortviz.

To load completions:

Bash:
  $ source <(sortviz completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ sortviz completion bash > /etc/bash_completion.d/sortviz
  # macOS:
  $ sortviz completion bash > $(brew --prefix)/etc/bash_completion.d/sortviz

Zsh:
  $ sortviz completion zsh > "${fpath[1]}/_sortviz"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ sortviz completion fish | source

  # To load completions for each session, execute once:
  $ sortviz completion fish > ~/.config/fish/completions/sortviz.fish

PowerShell:
  PS> sortviz completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}
