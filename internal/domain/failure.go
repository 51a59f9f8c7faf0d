package domain

// ErrorType is the closed failure taxonomy.
type ErrorType string

const (
	ErrorPermissionDenied     ErrorType = "permission_denied"
	ErrorAppNotRunning        ErrorType = "app_not_running"
	ErrorSyntax               ErrorType = "syntax_error"
	ErrorObjectNotFound       ErrorType = "object_not_found"
	ErrorPropertyNotFound     ErrorType = "property_not_found"
	ErrorCommandNotUnderstood ErrorType = "command_not_understood"
	ErrorTimeout              ErrorType = "timeout"
	ErrorTypeMismatch         ErrorType = "type_mismatch"
	ErrorIndexOutOfBounds     ErrorType = "index_out_of_bounds"
	ErrorMissingValue         ErrorType = "missing_value"
	ErrorUserCancelled        ErrorType = "user_cancelled"
	ErrorUnknown              ErrorType = "unknown"
)

// Confidence grades a failure diagnosis. Binary: a taxonomy match is high,
// anything else is low.
type Confidence string

const (
	ConfidenceHigh Confidence = "high"
	ConfidenceLow  Confidence = "low"
)

// FailureAnalysis is the structured diagnosis of one failed execution.
type FailureAnalysis struct {
	ErrorType                ErrorType  `json:"errorType"`
	RootCause                string     `json:"rootCause"`
	Suggestions              []string   `json:"suggestions"`
	RelatedSuccessfulPattern string     `json:"relatedSuccessfulPattern,omitempty"`
	FixedScript              string     `json:"fixedScript,omitempty"`
	Confidence               Confidence `json:"confidence"`
}
