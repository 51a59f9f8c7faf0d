package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tsuyoshi-dev/scriptsage/internal/domain"
	"github.com/tsuyoshi-dev/scriptsage/internal/ports"
)

// FileLoader loads YAML configuration from ~/.scriptsage/config.yaml
// (overridable via SCRIPTSAGE_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := defaultConfig()
			if err := writeDefault(path, cfg); err != nil {
				return domain.Config{}, err
			}
			return cfg, nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}

	return hydrateDefaults(cfg), nil
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv("SCRIPTSAGE_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(userHomeDir(), ".scriptsage", "config.yaml")
}

func ensureConfigDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, domain.DirectoryPermissions)
}

func writeDefault(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

func defaultConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		Storage: domain.StorageSettings{
			Backend: "json",
			Dir:     filepath.Join(userHomeDir(), ".scriptsage", "patterns"),
		},
		Safety: domain.SafetySettings{
			PolicyFile: filepath.Join(userHomeDir(), ".scriptsage", "policy.yaml"),
		},
		Execution: domain.ExecutionSettings{
			TimeoutSeconds: 60,
		},
		Skills: domain.SkillSettings{
			Dir: filepath.Join(userHomeDir(), ".scriptsage", "skills"),
		},
	}
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = "json"
	}
	if cfg.Storage.Dir == "" {
		cfg.Storage.Dir = filepath.Join(userHomeDir(), ".scriptsage", "patterns")
	}
	if cfg.Execution.TimeoutSeconds == 0 {
		cfg.Execution.TimeoutSeconds = 60
	}
	if cfg.Skills.Dir == "" {
		cfg.Skills.Dir = filepath.Join(userHomeDir(), ".scriptsage", "skills")
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(userHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

func userHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
