package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsuyoshi-dev/scriptsage/internal/app"
	"github.com/tsuyoshi-dev/scriptsage/internal/domain"
)

func newPatternsCommand(container *app.Container) *cobra.Command {
	patternsCmd := &cobra.Command{
		Use:   "patterns",
		Short: "Inspect the execution pattern store",
	}

	patternsCmd.AddCommand(
		newPatternsSimilarCommand(container),
		newPatternsTargetCommand(container),
		newPatternsStatsCommand(container),
		newPatternsClearCommand(container),
	)

	return patternsCmd
}

func newPatternsSimilarCommand(container *app.Container) *cobra.Command {
	var (
		target        string
		action        string
		limit         int
		includeFailed bool
	)

	cmd := &cobra.Command{
		Use:   "similar [intent]",
		Short: "Find stored patterns similar to an intent",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := domain.DefaultSimilarQuery()
			query.Target = target
			query.Action = action
			if limit > 0 {
				query.Limit = limit
			}
			if includeFailed {
				query.OnlySuccessful = false
			}
			records, err := container.PatternStore.FindSimilar(strings.Join(args, " "), query)
			if err != nil {
				return err
			}
			renderRecords(cmd.OutOrStdout(), records)
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "Restrict to one automation target")
	cmd.Flags().StringVar(&action, "action", "", "Restrict to one action verb (with --target)")
	cmd.Flags().IntVar(&limit, "limit", domain.DefaultSimilarLimit, "Max patterns to return")
	cmd.Flags().BoolVar(&includeFailed, "include-failed", false, "Include failed executions")
	return cmd
}

func newPatternsTargetCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "target <name>",
		Short: "List stored patterns for one automation target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := container.PatternStore.ByTarget(args[0])
			if err != nil {
				return err
			}
			renderRecords(cmd.OutOrStdout(), records)
			return nil
		},
	}
}

func newPatternsStatsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize the stored history",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := container.PatternStore.Stats()
			if err != nil {
				return err
			}
			renderStats(cmd.OutOrStdout(), stats)
			return nil
		},
	}
}

// Deletion is safety-gated at this boundary: the store itself does not
// guard Clear.
func newPatternsClearCommand(container *app.Container) *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all stored patterns",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return fmt.Errorf("this deletes all stored patterns; re-run with --confirm")
			}
			if err := container.PatternStore.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Pattern store cleared.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirm, "confirm", false, "Confirm deletion")
	return cmd
}
