package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsuyoshi-dev/scriptsage/internal/app"
	"github.com/tsuyoshi-dev/scriptsage/internal/infrastructure/safety"
)

func newPolicyCommand(container *app.Container) *cobra.Command {
	policyCmd := &cobra.Command{
		Use:   "policy",
		Short: "Inspect or initialize the safety policy",
	}

	policyCmd.AddCommand(newPolicyShowCommand(), newPolicyInitCommand())
	return policyCmd
}

func newPolicyShowCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective hazard table",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := safety.LoadPolicyDocument(path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, rule := range doc.Rules.HazardPatterns {
				fmt.Fprintf(out, "%-8s %-40s %s\n", rule.Level, rule.Pattern, rule.Warning)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Policy file (default ~/.scriptsage/policy.yaml)")
	return cmd
}

func newPolicyInitCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the built-in hazard table to the policy file for editing",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := safety.LoadPolicyDocument("")
			if err != nil {
				return err
			}
			if err := safety.SavePolicyDocument(path, doc); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Policy written.")
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Policy file (default ~/.scriptsage/policy.yaml)")
	return cmd
}
