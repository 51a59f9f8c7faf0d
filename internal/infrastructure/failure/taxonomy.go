package failure

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tsuyoshi-dev/scriptsage/internal/domain"
)

// taxonomyEntry is one row of the failure taxonomy. Matching is
// first-applicable: the walk stops at the first entry whose matcher fires
// against the error message.
type taxonomyEntry struct {
	errorType   domain.ErrorType
	matchers    []*regexp.Regexp
	cause       func(errorMessage, script string) string
	suggestions func(errorMessage, script string) []string
	fix         func(errorMessage, script string) string
}

func matchers(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile("(?i)"+p))
	}
	return compiled
}

// taxonomy is walked in order; earlier entries win.
var taxonomy = []taxonomyEntry{
	{
		errorType: domain.ErrorPermissionDenied,
		matchers:  matchers(`-1743`, `not authorized`, `not allowed`, `assistive access`),
		cause: func(_, script string) string {
			target := domain.FirstTarget(script)
			if target == "" {
				return "The host has not granted automation permission for this script"
			}
			return fmt.Sprintf("Automation access to %q has not been granted", target)
		},
		suggestions: func(_, script string) []string {
			return []string{
				"Open System Settings > Privacy & Security > Automation and enable access for the calling process",
				"If the script controls the UI, also enable Accessibility access",
				"Re-run the script after granting permission",
			}
		},
	},
	{
		errorType: domain.ErrorAppNotRunning,
		matchers:  matchers(`-600`, `isn't running`, `is not running`, `application isn.t running`),
		cause: func(_, script string) string {
			target := domain.FirstTarget(script)
			if target == "" {
				return "The targeted application is not running"
			}
			return fmt.Sprintf("%q is not running", target)
		},
		suggestions: func(_, script string) []string {
			return []string{
				"Add an activate step before sending commands to the application",
				"Add a short delay after launching so the application finishes starting",
			}
		},
		fix: injectActivate,
	},
	{
		errorType: domain.ErrorSyntax,
		matchers:  matchers(`-2741`, `-2740`, `syntax error`, `expected end of line`, `expected expression`),
		cause: func(errorMessage, _ string) string {
			return "The script does not parse: " + strings.TrimSpace(errorMessage)
		},
		suggestions: func(_, _ string) []string {
			return []string{
				"Check that every tell/if/repeat block has a matching end line",
				"Check quoting: string literals need straight double quotes",
				"Compile the script in Script Editor to pinpoint the failing line",
			}
		},
	},
	{
		errorType: domain.ErrorObjectNotFound,
		matchers:  matchers(`-1728`, `can['’]t get`, `doesn['’]t exist`),
		cause: func(_, _ string) string {
			return "The script references an object that does not exist right now"
		},
		suggestions: func(_, _ string) []string {
			return []string{
				"Verify the window, document, or item exists before referencing it",
				"Guard the reference with an exists check: if exists <object> then ...",
				"Indices are 1-based; item 0 is never valid",
			}
		},
	},
	{
		errorType: domain.ErrorPropertyNotFound,
		matchers:  matchers(`-10006`, `can['’]t set`, `property not found`),
		cause: func(_, _ string) string {
			return "The referenced property does not exist on that object or cannot be written"
		},
		suggestions: func(_, script string) []string {
			suggestions := []string{
				"Check the property name against the application's scripting dictionary",
				"Some properties are read-only; set the corresponding element instead",
			}
			if target := domain.FirstTarget(script); target != "" {
				suggestions = append(suggestions,
					fmt.Sprintf("Open the %s dictionary in Script Editor (File > Open Dictionary)", target))
			}
			return suggestions
		},
	},
	{
		errorType: domain.ErrorCommandNotUnderstood,
		matchers:  matchers(`-1708`, `doesn['’]t understand`),
		cause: func(_, script string) string {
			target := domain.FirstTarget(script)
			if target == "" {
				return "The application does not implement the command the script sent"
			}
			return fmt.Sprintf("%q does not implement the command the script sent", target)
		},
		suggestions: func(_, _ string) []string {
			return []string{
				"Check the command name against the application's scripting dictionary",
				"Make sure the command is sent inside the right tell block",
			}
		},
	},
	{
		errorType: domain.ErrorTimeout,
		matchers:  matchers(`-1712`, `timed out`),
		cause: func(_, _ string) string {
			return "The application did not respond before the AppleEvent timeout elapsed"
		},
		suggestions: func(_, _ string) []string {
			return []string{
				"Wrap the slow section in a with timeout block",
				"Break long-running operations into smaller steps",
			}
		},
		fix: wrapWithTimeout,
	},
	{
		errorType: domain.ErrorTypeMismatch,
		matchers:  matchers(`-1700`, `can['’]t make`, `into type`, `coerce`),
		cause: func(errorMessage, _ string) string {
			return "A value could not be coerced to the expected type: " + strings.TrimSpace(errorMessage)
		},
		suggestions: func(_, _ string) []string {
			return []string{
				"Coerce explicitly, e.g. (value as text) or (value as number)",
				"File parameters usually need a file or alias reference, not a plain string",
			}
		},
	},
	{
		errorType: domain.ErrorIndexOutOfBounds,
		matchers:  matchers(`-1719`, `invalid index`, `out of bounds`),
		cause: func(_, _ string) string {
			return "The script indexed past the end of a list or element collection"
		},
		suggestions: func(_, _ string) []string {
			return []string{
				"Count the elements first: if (count of windows) > 0 then ...",
				"Indices are 1-based; the last element is item -1",
			}
		},
	},
	{
		errorType: domain.ErrorMissingValue,
		matchers:  matchers(`missing value`),
		cause: func(_, _ string) string {
			return "An expression produced missing value where a real value was required"
		},
		suggestions: func(_, _ string) []string {
			return []string{
				"Check optional properties for missing value before using them",
				"Make sure the queried object is in the state the script expects",
			}
		},
	},
	{
		errorType: domain.ErrorUserCancelled,
		matchers:  matchers(`-128`, `user cancel`),
		cause: func(_, _ string) string {
			return "The user dismissed a dialog or the script was cancelled"
		},
		suggestions: func(_, _ string) []string {
			return []string{
				"Wrap dialogs in a try block if cancellation is an expected path",
			}
		},
	},
}

// injectActivate inserts an activation step immediately inside the first
// tell block. One-line tell forms get a standalone activation line instead.
func injectActivate(_, script string) string {
	loc := tellLineRe.FindStringSubmatchIndex(script)
	if loc == nil {
		return ""
	}
	lineEnd := loc[1]
	rest := script[lineEnd:]
	if strings.HasPrefix(strings.TrimLeft(rest, " \t"), "to ") || strings.HasPrefix(rest, " to ") {
		target := script[loc[2]:loc[3]]
		return fmt.Sprintf("tell application \"%s\" to activate\ndelay 1\n%s", target, script)
	}
	return script[:lineEnd] + "\n\tactivate" + rest
}

var tellLineRe = regexp.MustCompile(`(?i)tell\s+application\s+"([^"]+)"`)

func wrapWithTimeout(_, script string) string {
	return "with timeout of 120 seconds\n" + script + "\nend timeout"
}
