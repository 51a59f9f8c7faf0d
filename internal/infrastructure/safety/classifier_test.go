package safety

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tsuyoshi-dev/scriptsage/internal/domain"
)

func TestClassifyEmptyTrashIsCritical(t *testing.T) {
	classifier := NewDefault()
	verdict := classifier.Classify(`tell application "Finder" to empty the trash`)
	if verdict.Risk != domain.RiskCritical {
		t.Fatalf("expected critical, got %+v", verdict)
	}
	if !verdict.RequiresConfirmation || verdict.Safe {
		t.Fatalf("flags wrong for critical verdict: %+v", verdict)
	}
	if len(verdict.Warnings) == 0 {
		t.Fatalf("expected at least one warning, got %+v", verdict)
	}
}

func TestClassifyBenignScriptIsNone(t *testing.T) {
	classifier := NewDefault()
	verdict := classifier.Classify(`tell application "Music" to play`)
	if verdict.Risk != domain.RiskNone {
		t.Fatalf("expected none, got %+v", verdict)
	}
	if !verdict.Safe || verdict.RequiresConfirmation {
		t.Fatalf("flags wrong for none verdict: %+v", verdict)
	}
	if len(verdict.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %+v", verdict)
	}
}

func TestClassifyAccumulatesAllMatches(t *testing.T) {
	classifier := NewDefault()
	script := `tell application "Finder"
	delete every item of trash
	empty the trash
end tell
do shell script "killall Dock"`
	verdict := classifier.Classify(script)
	if verdict.Risk != domain.RiskCritical {
		t.Fatalf("expected max level critical, got %+v", verdict)
	}
	if len(verdict.Warnings) < 3 {
		t.Fatalf("expected one warning per matched rule, got %v", verdict.Warnings)
	}
}

func TestClassifyIsIdempotent(t *testing.T) {
	classifier := NewDefault()
	script := `do shell script "sudo rm -rf /tmp/x"`
	first := classifier.Classify(script)
	second := classifier.Classify(script)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("verdicts differ between calls (-first +second):\n%s", diff)
	}
}

// Every enum value must derive safe and requiresConfirmation the same way.
func TestDerivedFlagsOverWholeEnum(t *testing.T) {
	tests := []struct {
		level        string
		script       string
		wantRisk     domain.RiskLevel
		wantSafe     bool
		wantConfirms bool
	}{
		{"none", "benign", domain.RiskNone, true, false},
		{"low", "trigger", domain.RiskLow, true, false},
		{"medium", "trigger", domain.RiskMedium, false, false},
		{"high", "trigger", domain.RiskHigh, false, true},
		{"critical", "trigger", domain.RiskCritical, false, true},
	}
	for _, tt := range tests {
		classifier := classifierWithSingleRule(t, tt.level)
		verdict := classifier.Classify(tt.script)
		if verdict.Risk != tt.wantRisk {
			t.Fatalf("level %s: got risk %s", tt.level, verdict.Risk)
		}
		if verdict.Safe != tt.wantSafe {
			t.Fatalf("level %s: safe=%t want %t", tt.level, verdict.Safe, tt.wantSafe)
		}
		if verdict.RequiresConfirmation != tt.wantConfirms {
			t.Fatalf("level %s: requiresConfirmation=%t want %t", tt.level, verdict.RequiresConfirmation, tt.wantConfirms)
		}
	}
}

func TestPolicyFileOverridesDefaults(t *testing.T) {
	classifier := classifierWithSingleRule(t, "critical")
	verdict := classifier.Classify("trigger")
	if verdict.Risk != domain.RiskCritical || len(verdict.Warnings) != 1 {
		t.Fatalf("expected single critical match from custom policy, got %+v", verdict)
	}
	// Defaults are replaced, not merged.
	if v := classifier.Classify("empty the trash"); v.Risk != domain.RiskNone {
		t.Fatalf("default rule leaked into custom policy: %+v", v)
	}
}

func classifierWithSingleRule(t *testing.T, level string) *Classifier {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policy.yaml")
	policy := `rules:
  hazard_patterns:
    - pattern: "trigger"
      level: "` + level + `"
      message: "test rule"
`
	if err := os.WriteFile(path, []byte(policy), 0o644); err != nil {
		t.Fatalf("write policy: %v", err)
	}
	classifier, err := NewClassifier(path)
	if err != nil {
		t.Fatalf("NewClassifier error: %v", err)
	}
	return classifier
}
