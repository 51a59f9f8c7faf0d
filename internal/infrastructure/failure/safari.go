package failure

import (
	"regexp"
	"strings"
)

// Safari's scripting API has a handful of well-known traps that the generic
// taxonomy diagnoses poorly. These four corrections run before the generic
// path inside SmartMessage only.

type safariQuirk func(script, errorMessage string) string

var safariQuirks = []safariQuirk{
	safariJavaScriptPermission,
	safariMissingDocumentReference,
	safariNoOpenWindow,
	safariOpenLocationMisuse,
}

var doJavaScriptRe = regexp.MustCompile(`(?i)do\s+javascript`)

func safariQuirkMessage(script, errorMessage string) string {
	if !targetsSafari(script) {
		return ""
	}
	for _, quirk := range safariQuirks {
		if msg := quirk(script, errorMessage); msg != "" {
			return msg
		}
	}
	return ""
}

func targetsSafari(script string) bool {
	return strings.Contains(strings.ToLower(script), `application "safari"`)
}

// do JavaScript fails until "Allow JavaScript from Apple Events" is enabled.
func safariJavaScriptPermission(script, errorMessage string) string {
	if !doJavaScriptRe.MatchString(script) {
		return ""
	}
	lower := strings.ToLower(errorMessage)
	if !strings.Contains(lower, "not allowed") && !strings.Contains(lower, "-1743") &&
		!strings.Contains(lower, "javascript") {
		return ""
	}
	return "Safari blocked the JavaScript call. Enable Safari > Develop > " +
		"Allow JavaScript from Apple Events (turn the Develop menu on under " +
		"Settings > Advanced first), then run the script again."
}

// do JavaScript needs an explicit document or tab to run in.
func safariMissingDocumentReference(script, errorMessage string) string {
	if !doJavaScriptRe.MatchString(script) {
		return ""
	}
	lower := strings.ToLower(script)
	if strings.Contains(lower, "in document") || strings.Contains(lower, "in tab") ||
		strings.Contains(lower, "in current tab") {
		return ""
	}
	return "Safari's do JavaScript needs a page to run in. Append " +
		`"in document 1" or "in current tab of front window" to the call, ` +
		"for example: do JavaScript \"...\" in document 1."
}

// Document references fail when Safari has no windows open.
func safariNoOpenWindow(script, errorMessage string) string {
	lower := strings.ToLower(errorMessage)
	if !strings.Contains(lower, "can't get document") && !strings.Contains(lower, "can’t get document") {
		return ""
	}
	return "Safari has no open document. Create one first: " +
		`tell application "Safari" to make new document, or open a page with ` +
		`open location "https://...".`
}

// open expects a file; URLs go through open location.
func safariOpenLocationMisuse(script, errorMessage string) string {
	lower := strings.ToLower(script)
	if !strings.Contains(lower, `open "http`) {
		return ""
	}
	return "Safari's open command expects a file, not a URL. Use " +
		`open location "https://..." instead of open "https://...".`
}
