package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFingerprintNormalizesWhitespaceAndCase(t *testing.T) {
	a := Fingerprint("tell application \"Finder\"\n\tactivate\nend tell")
	b := Fingerprint("  TELL APPLICATION \"finder\"   activate  END TELL ")
	if a != b {
		t.Fatalf("fingerprints differ: %q vs %q", a, b)
	}
}

func TestScriptTargetsKeepsOrderAndDuplicates(t *testing.T) {
	script := `tell application "Finder"
	tell application "System Events" to keystroke "a"
	tell application "Finder" to open home
end tell`
	got := ScriptTargets(script)
	want := []string{"Finder", "System Events", "Finder"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("targets mismatch (-want +got):\n%s", diff)
	}
}

func TestScriptActionsDeduplicated(t *testing.T) {
	script := `tell application "Music" to play
play playlist "Focus"
delete track 1`
	got := ScriptActions(script)
	want := []string{"delete", "play"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("actions mismatch (-want +got):\n%s", diff)
	}
}

func TestScriptActionsRequiresWholeWords(t *testing.T) {
	if got := ScriptActions("display dialog \"setting up replay\""); len(got) != 0 {
		t.Fatalf("expected no actions from substrings, got %v", got)
	}
}

func TestKeywordsFilterShortTokensAndStopWords(t *testing.T) {
	got := Keywords("play the song", `tell application "Music" to play`)
	for _, tok := range got {
		if len(tok) <= 2 {
			t.Fatalf("short token survived: %q in %v", tok, got)
		}
		if tok == "the" || tok == "tell" || tok == "application" {
			t.Fatalf("stop word survived: %q in %v", tok, got)
		}
	}
	if !contains(got, "play") || !contains(got, "song") || !contains(got, "music") {
		t.Fatalf("expected play/song/music in keywords, got %v", got)
	}
}

func TestKeywordsDeduplicated(t *testing.T) {
	got := Keywords("play play play", "play")
	count := 0
	for _, tok := range got {
		if tok == "play" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected one play keyword, got %v", got)
	}
}

func TestCategorizePriorityOrder(t *testing.T) {
	tests := []struct {
		name    string
		targets []string
		actions []string
		want    Category
	}{
		{"media target", []string{"Music"}, nil, CategoryMedia},
		{"media beats files on action", []string{"Finder"}, []string{"play"}, CategoryMedia},
		{"files", []string{"Finder"}, []string{"open"}, CategoryFiles},
		{"communication", []string{"Mail"}, []string{"send"}, CategoryCommunication},
		{"productivity", []string{"Calendar"}, nil, CategoryProductivity},
		{"system", []string{"System Events"}, nil, CategorySystem},
		{"other", []string{"Obscure App"}, []string{"get"}, CategoryOther},
		{"case-insensitive target", []string{"FINDER"}, nil, CategoryFiles},
	}
	for _, tt := range tests {
		if got := Categorize(tt.targets, tt.actions); got != tt.want {
			t.Fatalf("%s: Categorize(%v, %v)=%s want %s", tt.name, tt.targets, tt.actions, got, tt.want)
		}
	}
}

func TestRiskLevelOrdering(t *testing.T) {
	order := []RiskLevel{RiskNone, RiskLow, RiskMedium, RiskHigh, RiskCritical}
	for i := 1; i < len(order); i++ {
		if !order[i].MoreSevere(order[i-1]) {
			t.Fatalf("%s should outrank %s", order[i], order[i-1])
		}
	}
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
