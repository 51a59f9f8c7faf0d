package automation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tsuyoshi-dev/scriptsage/internal/domain"
	"github.com/tsuyoshi-dev/scriptsage/internal/ports"
)

// Service orchestrates one gated script run end-to-end: classify, gate,
// execute, log, and analyze on failure.
type Service struct {
	Classifier ports.SafetyClassifier
	Executor   ports.ScriptExecutor
	Store      ports.PatternStore
	Analyzer   ports.FailureAnalyzer
	Logger     ports.Logger
}

// Run processes a single script submission. High and critical risk scripts
// are refused unless the request carries an explicit confirmation; the
// confirmation bypasses the block without changing the classification.
func (s *Service) Run(req domain.RunRequest) (domain.RunResponse, error) {
	if s.Classifier == nil || s.Executor == nil || s.Store == nil || s.Logger == nil {
		return domain.RunResponse{}, errors.New("automation.Service dependencies not satisfied")
	}

	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}

	verdict := s.Classifier.Classify(req.Script)
	resp := domain.RunResponse{Verdict: verdict}

	if verdict.RequiresConfirmation && !req.Confirmed {
		resp.Refused = true
		resp.Message = refusalMessage(verdict)
		return resp, nil
	}

	timeoutMS := req.TimeoutMS
	if timeoutMS <= 0 {
		timeoutMS = domain.DefaultScriptTimeout.Milliseconds()
	}

	result, execErr := s.Executor.Execute(ctx, req.Script, timeoutMS)
	resp.Executed = true
	resp.Result = &result

	success := execErr == nil
	outcome := result.Stdout
	if !success {
		outcome = result.Stderr
		if outcome == "" {
			outcome = execErr.Error()
		}
	}

	record, err := s.Store.Log(req.Intent, req.Script, success, outcome)
	if err != nil {
		s.Logger.Warn("log execution failed", map[string]interface{}{"error": err.Error()})
	} else {
		resp.Record = &record
	}

	if !success && s.Analyzer != nil {
		analysis := s.Analyzer.Analyze(req.Script, outcome)
		resp.Analysis = &analysis
		resp.Message = s.Analyzer.SmartMessage(req.Script, outcome)
	}

	return resp, nil
}

func refusalMessage(verdict domain.SafetyVerdict) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Refusing to run a %s risk script without confirmation.\n", verdict.Risk)
	for _, warning := range verdict.Warnings {
		fmt.Fprintf(&b, "  - %s\n", warning)
	}
	b.WriteString("Resubmit with the confirmation flag set to run it anyway.")
	return b.String()
}
