package domain

import (
	"regexp"
	"strings"
)

var (
	targetRe     = regexp.MustCompile(`(?i)tell\s+(?:application|app)\s+"([^"]+)"`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	nonAlnumRe   = regexp.MustCompile(`[^a-z0-9\s]+`)
)

// actionVocabulary is the fixed verb set recognized in scripts, in match order.
var actionVocabulary = []string{
	"create", "delete", "get", "set",
	"play", "pause", "stop",
	"open", "close", "quit",
	"move", "copy", "duplicate",
	"send", "add", "search", "list", "save",
}

// stopWords are dropped from keyword derivation; tokens of length <= 2 are
// dropped regardless.
var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true,
	"from": true, "that": true, "this": true, "then": true,
	"tell": true, "application": true, "end": true, "please": true,
}

// Fingerprint normalizes a script for deduplication: whitespace collapsed to
// single spaces, case folded, outer space trimmed.
func Fingerprint(script string) string {
	return strings.ToLower(strings.TrimSpace(whitespaceRe.ReplaceAllString(script, " ")))
}

// ScriptTargets lists every automation target the script addresses, including
// nested tell blocks, in first-appearance order with duplicates preserved.
func ScriptTargets(script string) []string {
	matches := targetRe.FindAllStringSubmatch(script, -1)
	targets := make([]string, 0, len(matches))
	for _, m := range matches {
		targets = append(targets, m[1])
	}
	return targets
}

// FirstTarget returns the first target in the script, or "".
func FirstTarget(script string) string {
	if targets := ScriptTargets(script); len(targets) > 0 {
		return targets[0]
	}
	return ""
}

// ScriptActions extracts the recognized verbs present in the script,
// deduplicated, in vocabulary order.
func ScriptActions(script string) []string {
	lower := strings.ToLower(script)
	var actions []string
	for _, verb := range actionVocabulary {
		if containsWord(lower, verb) {
			actions = append(actions, verb)
		}
	}
	return actions
}

func containsWord(lower, word string) bool {
	idx := 0
	for {
		pos := strings.Index(lower[idx:], word)
		if pos < 0 {
			return false
		}
		start := idx + pos
		end := start + len(word)
		startOK := start == 0 || !isWordChar(lower[start-1])
		endOK := end == len(lower) || !isWordChar(lower[end])
		if startOK && endOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_'
}

// Keywords derives the retrieval tokens for a record from its intent and
// script text: lowercased, punctuation stripped, short tokens and stop words
// discarded, deduplicated in first-appearance order.
func Keywords(intent, script string) []string {
	return Tokenize(intent + " " + script)
}

// Tokenize applies the keyword derivation rules to arbitrary text.
func Tokenize(text string) []string {
	cleaned := nonAlnumRe.ReplaceAllString(strings.ToLower(text), " ")
	seen := map[string]bool{}
	var tokens []string
	for _, tok := range strings.Fields(cleaned) {
		if len(tok) <= 2 || stopWords[tok] || seen[tok] {
			continue
		}
		seen[tok] = true
		tokens = append(tokens, tok)
	}
	return tokens
}

// categoryRule groups targets and actions belonging to one category.
type categoryRule struct {
	category Category
	targets  []string
	actions  []string
}

// categoryRules are evaluated in priority order; the first matching group
// wins.
var categoryRules = []categoryRule{
	{
		category: CategoryMedia,
		targets:  []string{"music", "itunes", "spotify", "tv", "quicktime player", "photos", "vlc"},
		actions:  []string{"play", "pause", "stop"},
	},
	{
		category: CategoryFiles,
		targets:  []string{"finder"},
		actions:  []string{"move", "copy", "duplicate"},
	},
	{
		category: CategoryCommunication,
		targets:  []string{"mail", "messages", "facetime"},
		actions:  []string{"send"},
	},
	{
		category: CategoryProductivity,
		targets:  []string{"calendar", "reminders", "notes", "contacts"},
	},
	{
		category: CategorySystem,
		targets:  []string{"system events", "system preferences", "system settings", "terminal"},
	},
}

// Categorize assigns the record category from its derived targets and
// actions.
func Categorize(targets, actions []string) Category {
	for _, rule := range categoryRules {
		for _, target := range targets {
			lower := strings.ToLower(target)
			for _, known := range rule.targets {
				if lower == known {
					return rule.category
				}
			}
		}
		for _, action := range actions {
			for _, known := range rule.actions {
				if action == known {
					return rule.category
				}
			}
		}
	}
	return CategoryOther
}
