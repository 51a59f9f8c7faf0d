// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). The application depends on these abstractions, never
// on concrete stores, executors, or CLI machinery.
package ports

import (
	"context"

	"github.com/tsuyoshi-dev/scriptsage/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.scriptsage/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// SafetyClassifier grades a script's risk before execution. Classification
// is pure and deterministic: the same script always yields the same verdict.
type SafetyClassifier interface {
	Classify(script string) domain.SafetyVerdict
}

// PatternStore is the durable, indexed history of script executions.
type PatternStore interface {
	Log(intent, script string, success bool, result string) (domain.ExecutionRecord, error)
	FindSimilar(intent string, query domain.SimilarQuery) ([]domain.ExecutionRecord, error)
	ByTarget(target string) ([]domain.ExecutionRecord, error)
	Stats() (domain.PatternStats, error)
	Clear() error
}

// PatternBackend persists the full record set and index as one snapshot.
// Load on a fresh or unreadable backend yields an empty snapshot rather than
// an error the store cannot recover from.
type PatternBackend interface {
	Load() ([]domain.ExecutionRecord, domain.PatternIndex, error)
	Save(records []domain.ExecutionRecord, index domain.PatternIndex) error
	Reset() error
}

// FailureAnalyzer maps raw error text to the failure taxonomy.
type FailureAnalyzer interface {
	Analyze(script, errorMessage string) domain.FailureAnalysis
	SmartMessage(script, errorMessage string) string
}

// ScriptExecutor runs a script through the external scripting engine.
// Timeout enforcement belongs entirely to the executor.
type ScriptExecutor interface {
	Execute(ctx context.Context, script string, timeoutMS int64) (domain.ExecutionResult, error)
}

// SkillProvider supplies example snippets for an automation target, used
// only to enrich failure suggestions. Optional collaborator.
type SkillProvider interface {
	ExamplesFor(target, intent string) []string
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
