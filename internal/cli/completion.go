package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/thrackle/pkg/render"
	"github.com/matzehuels/thrackle/pkg/thrackle/synth"
)

func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for thrackle.

Bash:
  $ source <(thrackle completion bash)

Zsh:
  $ thrackle completion zsh > "${fpath[1]}/_thrackle"

Fish:
  $ thrackle completion fish > ~/.config/fish/completions/thrackle.fish

PowerShell:
  PS> thrackle completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(stdout)
			}
			return nil
		},
	}
}

// completeShapes completes the first argument of synth and view.
func completeShapes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{synth.ShapePath, synth.ShapeCycle}, cobra.ShellCompDirectiveNoFileComp
}

// completeVariants offers the variants of the shape already typed, or all.
func completeVariants(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		if vs, ok := synth.Variants[args[0]]; ok {
			return vs, cobra.ShellCompDirectiveNoFileComp
		}
	}
	var all []string
	for _, shape := range []string{synth.ShapePath, synth.ShapeCycle} {
		all = append(all, synth.Variants[shape]...)
	}
	return all, cobra.ShellCompDirectiveNoFileComp
}

func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return render.Formats, cobra.ShellCompDirectiveNoFileComp
}
