package domain

// RiskLevel grades how hazardous a script appears.
type RiskLevel string

const (
	RiskNone     RiskLevel = "none"
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Severity positions the level on the none < low < medium < high < critical scale.
func (r RiskLevel) Severity() int {
	switch r {
	case RiskLow:
		return 1
	case RiskMedium:
		return 2
	case RiskHigh:
		return 3
	case RiskCritical:
		return 4
	default:
		return 0
	}
}

// MoreSevere reports whether r outranks other.
func (r RiskLevel) MoreSevere(other RiskLevel) bool {
	return r.Severity() > other.Severity()
}

// ParseRiskLevel maps a policy string to a RiskLevel, defaulting to none.
func ParseRiskLevel(value string) RiskLevel {
	switch value {
	case "low":
		return RiskLow
	case "medium":
		return RiskMedium
	case "high":
		return RiskHigh
	case "critical":
		return RiskCritical
	default:
		return RiskNone
	}
}

// HazardRule is one entry of the safety policy table.
type HazardRule struct {
	Pattern string `yaml:"pattern"`
	Level   string `yaml:"level"`
	Warning string `yaml:"message"`
}

// SafetyVerdict aggregates the safety evaluation of a single script.
// Warnings keep the policy table order, one entry per matched rule.
type SafetyVerdict struct {
	Risk                 RiskLevel `json:"risk"`
	Warnings             []string  `json:"warnings"`
	Safe                 bool      `json:"safe"`
	RequiresConfirmation bool      `json:"requiresConfirmation"`
}
