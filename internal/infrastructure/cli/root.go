package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/tsuyoshi-dev/scriptsage/internal/app"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}

	root := &cobra.Command{
		Use:   "scriptsage",
		Short: "scriptsage - AppleScript automation with safety gating and pattern memory",
		Long: "scriptsage classifies AppleScript risk, gates execution behind confirmation,\n" +
			"remembers what worked, and diagnoses what failed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCommand(container))
	root.AddCommand(newClassifyCommand(container))
	root.AddCommand(newAnalyzeCommand(container))
	root.AddCommand(newPatternsCommand(container))
	root.AddCommand(newPolicyCommand(container))
	return root, nil
}
