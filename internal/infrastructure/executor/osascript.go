package executor

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/tsuyoshi-dev/scriptsage/internal/domain"
	"github.com/tsuyoshi-dev/scriptsage/internal/ports"
)

// OsascriptExecutor runs scripts through the host's osascript binary.
type OsascriptExecutor struct {
	binary string
}

// NewOsascriptExecutor builds a new executor, binary defaults to osascript.
func NewOsascriptExecutor(binary string) *OsascriptExecutor {
	if binary == "" {
		binary = "osascript"
	}
	return &OsascriptExecutor{binary: binary}
}

// Execute implements ports.ScriptExecutor. The timeout is enforced here;
// the intelligence layer never cancels on its own.
func (e *OsascriptExecutor) Execute(ctx context.Context, script string, timeoutMS int64) (domain.ExecutionResult, error) {
	if timeoutMS > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(timeoutMS)*time.Millisecond)
		defer cancel()
	}

	c := exec.CommandContext(ctx, e.binary, "-e", script)
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	start := time.Now()
	err := c.Run()
	duration := time.Since(start).Milliseconds()

	result := domain.ExecutionResult{
		Stdout:     strings.TrimRight(stdout.String(), "\n"),
		Stderr:     strings.TrimRight(stderr.String(), "\n"),
		DurationMS: duration,
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		result.ExitCode = exitErr.ExitCode()
		return result, err
	}
	if err != nil {
		result.ExitCode = -1
		return result, err
	}
	return result, nil
}

var _ ports.ScriptExecutor = (*OsascriptExecutor)(nil)
