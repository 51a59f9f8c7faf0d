package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsuyoshi-dev/scriptsage/internal/app"
)

func newClassifyCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "classify [script]",
		Short: "Classify a script's risk without running it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			verdict := container.Classifier.Classify(strings.Join(args, " "))
			renderVerdict(cmd.OutOrStdout(), verdict)
			return nil
		},
	}
}
