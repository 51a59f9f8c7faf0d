package domain

import "context"

// RunRequest submits one script for gated execution.
type RunRequest struct {
	Context   context.Context
	Intent    string
	Script    string
	Confirmed bool
	TimeoutMS int64
}

// RunResponse carries the outcome of a gated run back to the caller.
type RunResponse struct {
	Verdict  SafetyVerdict
	Refused  bool
	Message  string
	Executed bool
	Result   *ExecutionResult
	Record   *ExecutionRecord
	Analysis *FailureAnalysis
}

// ExecutionResult wraps details from the script executor.
type ExecutionResult struct {
	Stdout     string
	Stderr     string
	ExitCode   int
	DurationMS int64
}
