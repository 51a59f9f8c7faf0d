package failure

import (
	"fmt"
	"strings"

	"github.com/tsuyoshi-dev/scriptsage/internal/domain"
	"github.com/tsuyoshi-dev/scriptsage/internal/ports"
)

// Analyzer maps raw error text to the failure taxonomy and proposes fixes.
// Store and Skills are optional; when wired they add a related successful
// pattern and example snippets to the diagnosis.
type Analyzer struct {
	Store  ports.PatternStore
	Skills ports.SkillProvider
}

// NewAnalyzer builds an analyzer with optional collaborators.
func NewAnalyzer(store ports.PatternStore, skills ports.SkillProvider) *Analyzer {
	return &Analyzer{Store: store, Skills: skills}
}

// Analyze walks the taxonomy in order and diagnoses the first matching
// entry. Unmatched input degrades to unknown with low confidence. Total:
// never fails.
func (a *Analyzer) Analyze(script, errorMessage string) domain.FailureAnalysis {
	analysis := a.classify(script, errorMessage)
	analysis.RelatedSuccessfulPattern = a.relatedPattern(script)
	a.enrichFromSkills(script, &analysis)
	return analysis
}

func (a *Analyzer) classify(script, errorMessage string) domain.FailureAnalysis {
	for _, entry := range taxonomy {
		if !entryMatches(entry, errorMessage) {
			continue
		}
		analysis := domain.FailureAnalysis{
			ErrorType:   entry.errorType,
			RootCause:   entry.cause(errorMessage, script),
			Suggestions: entry.suggestions(errorMessage, script),
			Confidence:  domain.ConfidenceHigh,
		}
		if entry.fix != nil {
			analysis.FixedScript = entry.fix(errorMessage, script)
		}
		return analysis
	}
	return domain.FailureAnalysis{
		ErrorType: domain.ErrorUnknown,
		RootCause: errorMessage,
		Suggestions: []string{
			"Run the script in Script Editor for a more detailed error",
			"Check the target application's scripting dictionary",
		},
		Confidence: domain.ConfidenceLow,
	}
}

func entryMatches(entry taxonomyEntry, errorMessage string) bool {
	for _, re := range entry.matchers {
		if re.MatchString(errorMessage) {
			return true
		}
	}
	return false
}

// relatedPattern pulls a previously-successful script for the same target.
// Best-effort context, not guaranteed to be the most relevant.
func (a *Analyzer) relatedPattern(script string) string {
	if a.Store == nil {
		return ""
	}
	target := domain.FirstTarget(script)
	if target == "" {
		return ""
	}
	records, err := a.Store.ByTarget(target)
	if err != nil {
		return ""
	}
	for _, rec := range records {
		if rec.Success {
			return rec.Script
		}
	}
	return ""
}

func (a *Analyzer) enrichFromSkills(script string, analysis *domain.FailureAnalysis) {
	if a.Skills == nil {
		return
	}
	target := domain.FirstTarget(script)
	if target == "" {
		return
	}
	for i, example := range a.Skills.ExamplesFor(target, "") {
		if i >= 2 {
			break
		}
		analysis.Suggestions = append(analysis.Suggestions,
			fmt.Sprintf("Known working example for %s:\n%s", target, example))
	}
}

// SmartMessage formats a human-facing message for a failed run. Safari
// quirk corrections run first and fully replace the generic message when
// one fires; Analyze always takes the generic path, so the two entry
// points can disagree for Safari scripts.
func (a *Analyzer) SmartMessage(script, errorMessage string) string {
	if msg := safariQuirkMessage(script, errorMessage); msg != "" {
		return msg
	}
	return formatAnalysis(a.Analyze(script, errorMessage))
}

func formatAnalysis(analysis domain.FailureAnalysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Script failed: %s\n", analysis.ErrorType)
	fmt.Fprintf(&b, "Root cause: %s\n", analysis.RootCause)
	if len(analysis.Suggestions) > 0 {
		b.WriteString("Suggestions:\n")
		for i, s := range analysis.Suggestions {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, s)
		}
	}
	if analysis.FixedScript != "" {
		b.WriteString("Suggested fix:\n")
		b.WriteString(analysis.FixedScript)
		b.WriteString("\n")
	}
	if analysis.RelatedSuccessfulPattern != "" {
		b.WriteString("A script like this worked before:\n")
		b.WriteString(analysis.RelatedSuccessfulPattern)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

var _ ports.FailureAnalyzer = (*Analyzer)(nil)
