package safety

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tsuyoshi-dev/scriptsage/internal/domain"
	"github.com/tsuyoshi-dev/scriptsage/internal/ports"
)

// Classifier implements the SafetyClassifier port. The hazard table is fixed
// at construction; Classify itself does no I/O and never fails.
type Classifier struct {
	patterns []compiledHazard
}

type compiledHazard struct {
	re   *regexp.Regexp
	rule domain.HazardRule
}

// PolicyDocument is the YAML schema root for user-supplied hazard rules.
type PolicyDocument struct {
	Rules struct {
		HazardPatterns []domain.HazardRule `yaml:"hazard_patterns"`
	} `yaml:"rules"`
}

// NewClassifier loads hazard rules from disk (or built-in defaults when the
// file is missing or empty).
func NewClassifier(path string) (*Classifier, error) {
	doc, err := loadRules(path)
	if err != nil {
		return nil, err
	}

	var compiled []compiledHazard
	for _, rule := range doc.Rules.HazardPatterns {
		re, err := regexp.Compile("(?i)" + rule.Pattern)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, compiledHazard{re: re, rule: rule})
	}

	return &Classifier{patterns: compiled}, nil
}

// NewDefault builds a classifier from the built-in hazard table without
// touching the filesystem.
func NewDefault() *Classifier {
	var compiled []compiledHazard
	for _, rule := range defaultHazards() {
		compiled = append(compiled, compiledHazard{
			re:   regexp.MustCompile("(?i)" + rule.Pattern),
			rule: rule,
		})
	}
	return &Classifier{patterns: compiled}
}

// Classify evaluates every hazard rule against the script. No short-circuit:
// each matching rule contributes one warning, in table order, duplicates
// preserved, and the highest matched level wins.
func (c *Classifier) Classify(script string) domain.SafetyVerdict {
	verdict := domain.SafetyVerdict{Risk: domain.RiskNone}
	for _, hazard := range c.patterns {
		if hazard.re.MatchString(script) {
			level := domain.ParseRiskLevel(hazard.rule.Level)
			if level.MoreSevere(verdict.Risk) {
				verdict.Risk = level
			}
			verdict.Warnings = append(verdict.Warnings, hazard.rule.Warning)
		}
	}
	verdict.Safe = verdict.Risk.Severity() <= domain.RiskLow.Severity()
	verdict.RequiresConfirmation = verdict.Risk.Severity() >= domain.RiskHigh.Severity()
	return verdict
}

func loadRules(path string) (PolicyDocument, error) {
	var doc PolicyDocument
	path = resolvePolicyPath(path)
	data, err := os.ReadFile(path)
	if err != nil {
		// fall back to defaults
		doc.Rules.HazardPatterns = defaultHazards()
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return PolicyDocument{}, err
	}
	if len(doc.Rules.HazardPatterns) == 0 {
		doc.Rules.HazardPatterns = defaultHazards()
	}
	return doc, nil
}

func resolvePolicyPath(path string) string {
	if path == "" {
		return filepath.Join(policyUserHome(), ".scriptsage", "policy.yaml")
	}
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(policyUserHome(), path[2:])
	}
	return filepath.Join(policyUserHome(), path)
}

// defaultHazards is the built-in hazard table. Order matters: warnings are
// reported in this order.
func defaultHazards() []domain.HazardRule {
	return []domain.HazardRule{
		{Pattern: `delete\s+every`, Level: "high", Warning: "Bulk deletion of items"},
		{Pattern: `delete\s+all`, Level: "high", Warning: "Bulk deletion of items"},
		{Pattern: `empty\s+(the\s+)?trash`, Level: "critical", Warning: "Emptying the trash is irreversible"},
		{Pattern: `erase\s+disk`, Level: "critical", Warning: "Erasing a disk is irreversible"},
		{Pattern: `shut\s+down`, Level: "high", Warning: "Shuts the machine down"},
		{Pattern: `restart`, Level: "high", Warning: "Restarts the machine"},
		{Pattern: `log\s*out`, Level: "medium", Warning: "Logs the user out"},
		{Pattern: `do\s+shell\s+script\s+.*\b(sudo|rm\s+-rf|mkfs|dd\s+if=)`, Level: "critical", Warning: "Privileged or destructive shell invocation"},
		{Pattern: `do\s+shell\s+script`, Level: "medium", Warning: "Runs an arbitrary shell command"},
		{Pattern: `with\s+administrator\s+privileges`, Level: "high", Warning: "Requests administrator privileges"},
		{Pattern: `keystroke`, Level: "medium", Warning: "Injects synthetic keyboard input"},
		{Pattern: `key\s+code`, Level: "medium", Warning: "Injects synthetic key codes"},
		{Pattern: `repeat\s+with\s+.*\bsend\b`, Level: "high", Warning: "Sends messages in bulk"},
		{Pattern: `delete\s+.*\b(file|folder|document)s\b`, Level: "medium", Warning: "Deletes files or folders"},
	}
}

func policyUserHome() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

var _ ports.SafetyClassifier = (*Classifier)(nil)

// LoadPolicyDocument returns the raw YAML structure.
func LoadPolicyDocument(path string) (PolicyDocument, error) {
	return loadRules(path)
}

// SavePolicyDocument writes the YAML structure to disk.
func SavePolicyDocument(path string, doc PolicyDocument) error {
	path = resolvePolicyPath(path)
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return err
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, domain.DataFilePermissions)
}
