package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsuyoshi-dev/scriptsage/internal/app"
)

func newAnalyzeCommand(container *app.Container) *cobra.Command {
	var structured bool

	cmd := &cobra.Command{
		Use:   "analyze <script> <error>",
		Short: "Diagnose a failed script from its error message",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, errorMessage := args[0], args[1]
			out := cmd.OutOrStdout()
			if structured {
				renderAnalysis(out, container.Analyzer.Analyze(script, errorMessage))
				return nil
			}
			fmt.Fprintln(out, container.Analyzer.SmartMessage(script, errorMessage))
			return nil
		},
	}

	cmd.Flags().BoolVar(&structured, "structured", false, "Print the structured diagnosis instead of the formatted message")
	return cmd
}
