package domain

// Config mirrors ~/.scriptsage/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	Storage             StorageSettings   `yaml:"storage"`
	Safety              SafetySettings    `yaml:"safety"`
	Execution           ExecutionSettings `yaml:"execution"`
	Skills              SkillSettings     `yaml:"skills"`
}

// StorageSettings selects and locates the pattern persistence backend.
type StorageSettings struct {
	// Backend is "json" (default) or "sqlite".
	Backend string `yaml:"backend"`
	// Dir overrides the data directory, default ~/.scriptsage/patterns.
	Dir string `yaml:"dir"`
}

// SafetySettings configures the risk classifier.
type SafetySettings struct {
	// PolicyFile points at an optional YAML hazard table extending the
	// built-in one.
	PolicyFile string `yaml:"policy_file"`
}

// ExecutionSettings controls how scripts run.
type ExecutionSettings struct {
	TimeoutSeconds int `yaml:"timeout"`
}

// SkillSettings locates markdown skill files used to enrich suggestions.
type SkillSettings struct {
	Dir string `yaml:"dir"`
}
