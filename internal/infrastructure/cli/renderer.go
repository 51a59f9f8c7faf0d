package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/tsuyoshi-dev/scriptsage/internal/domain"
)

func renderVerdict(w io.Writer, verdict domain.SafetyVerdict) {
	fmt.Fprintf(w, "Risk: %s\n", verdict.Risk)
	fmt.Fprintf(w, "Safe: %t\n", verdict.Safe)
	fmt.Fprintf(w, "Requires confirmation: %t\n", verdict.RequiresConfirmation)
	for _, warning := range verdict.Warnings {
		fmt.Fprintf(w, "  - %s\n", warning)
	}
}

func renderRunResponse(w io.Writer, resp domain.RunResponse) {
	renderVerdict(w, resp.Verdict)
	if resp.Refused {
		fmt.Fprintln(w, resp.Message)
		return
	}
	if resp.Result != nil {
		if resp.Result.Stdout != "" {
			fmt.Fprintln(w, resp.Result.Stdout)
		}
		if resp.Result.Stderr != "" {
			fmt.Fprintln(w, resp.Result.Stderr)
		}
		fmt.Fprintf(w, "Exit code: %d (%dms)\n", resp.Result.ExitCode, resp.Result.DurationMS)
	}
	if resp.Message != "" {
		fmt.Fprintln(w, resp.Message)
	}
}

func renderAnalysis(w io.Writer, analysis domain.FailureAnalysis) {
	fmt.Fprintf(w, "Error type: %s (%s confidence)\n", analysis.ErrorType, analysis.Confidence)
	fmt.Fprintf(w, "Root cause: %s\n", analysis.RootCause)
	for i, s := range analysis.Suggestions {
		fmt.Fprintf(w, "  %d. %s\n", i+1, s)
	}
	if analysis.FixedScript != "" {
		fmt.Fprintf(w, "Suggested fix:\n%s\n", analysis.FixedScript)
	}
	if analysis.RelatedSuccessfulPattern != "" {
		fmt.Fprintf(w, "Related successful pattern:\n%s\n", analysis.RelatedSuccessfulPattern)
	}
}

func renderRecords(w io.Writer, records []domain.ExecutionRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No patterns recorded yet.")
		return
	}
	for _, rec := range records {
		status := "failed"
		if rec.Success {
			status = "ok"
		}
		fmt.Fprintf(w, "[%s] %s (targets: %s, successes: %d)\n",
			status, rec.Intent, strings.Join(rec.Targets, ", "), rec.SuccessCount)
		fmt.Fprintf(w, "    %s\n", strings.ReplaceAll(rec.Script, "\n", "\n    "))
	}
}

func renderStats(w io.Writer, stats domain.PatternStats) {
	fmt.Fprintf(w, "Records: %d (%d successful)\n", stats.TotalRecords, stats.SuccessfulRecords)
	fmt.Fprintln(w, "By target:")
	for _, line := range sortedCounts(stats.CountByTarget) {
		fmt.Fprintf(w, "  %s\n", line)
	}
	fmt.Fprintln(w, "By category:")
	for _, line := range sortedCounts(stats.CountByCategory) {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if len(stats.TopRecords) > 0 {
		fmt.Fprintln(w, "Top patterns:")
		for _, rec := range stats.TopRecords {
			fmt.Fprintf(w, "  %dx %s\n", rec.SuccessCount, rec.Intent)
		}
	}
}

func sortedCounts(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		lines = append(lines, fmt.Sprintf("%s: %d", key, counts[key]))
	}
	return lines
}
