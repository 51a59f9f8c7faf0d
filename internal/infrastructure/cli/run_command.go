package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tsuyoshi-dev/scriptsage/internal/app"
	"github.com/tsuyoshi-dev/scriptsage/internal/domain"
)

func newRunCommand(container *app.Container) *cobra.Command {
	var (
		scriptText string
		scriptFile string
		confirm    bool
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "run [intent]",
		Short: "Run a script with risk gating and outcome logging",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := resolveScript(scriptText, scriptFile, cmd.InOrStdin())
			if err != nil {
				return err
			}
			req := domain.RunRequest{
				Context:   cmd.Context(),
				Intent:    strings.Join(args, " "),
				Script:    script,
				Confirmed: confirm,
				TimeoutMS: timeout.Milliseconds(),
			}
			resp, err := container.AutomationService.Run(req)
			renderRunResponse(cmd.OutOrStdout(), resp)
			return err
		},
	}

	cmd.Flags().StringVarP(&scriptText, "script", "e", "", "Script text to run")
	cmd.Flags().StringVarP(&scriptFile, "file", "f", "", "Read the script from a file ('-' for stdin)")
	cmd.Flags().BoolVar(&confirm, "confirm", false, "Confirm execution of high or critical risk scripts")
	cmd.Flags().DurationVar(&timeout, "timeout", domain.DefaultScriptTimeout, "Script execution timeout")

	return cmd
}

func resolveScript(text, file string, stdin io.Reader) (string, error) {
	switch {
	case text != "":
		return text, nil
	case file == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("provide the script with --script or --file")
	}
}
