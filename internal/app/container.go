package app

import (
	"context"

	"github.com/tsuyoshi-dev/scriptsage/internal/application/automation"
	"github.com/tsuyoshi-dev/scriptsage/internal/infrastructure/config"
	"github.com/tsuyoshi-dev/scriptsage/internal/infrastructure/executor"
	"github.com/tsuyoshi-dev/scriptsage/internal/infrastructure/failure"
	"github.com/tsuyoshi-dev/scriptsage/internal/infrastructure/patterns"
	"github.com/tsuyoshi-dev/scriptsage/internal/infrastructure/safety"
	"github.com/tsuyoshi-dev/scriptsage/internal/infrastructure/skills"
	"github.com/tsuyoshi-dev/scriptsage/internal/pkg/logger"
	"github.com/tsuyoshi-dev/scriptsage/internal/ports"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	AutomationService *automation.Service
	ConfigProvider    ports.ConfigProvider
	Classifier        ports.SafetyClassifier
	PatternStore      ports.PatternStore
	Analyzer          ports.FailureAnalyzer
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.NewStd(verbose)

	classifier, err := safety.NewClassifier(cfg.Safety.PolicyFile)
	if err != nil {
		classifier = safety.NewDefault()
	}

	var backend ports.PatternBackend
	switch cfg.Storage.Backend {
	case "sqlite":
		backend = patterns.NewSQLiteBackend(cfg.Storage.Dir)
	default:
		backend = patterns.NewJSONBackend(cfg.Storage.Dir)
	}
	store := patterns.NewStore(backend, log)

	analyzer := failure.NewAnalyzer(store, skills.NewFileProvider(cfg.Skills.Dir))

	automationService := &automation.Service{
		Classifier: classifier,
		Executor:   executor.NewOsascriptExecutor(""),
		Store:      store,
		Analyzer:   analyzer,
		Logger:     log,
	}

	return &Container{
		AutomationService: automationService,
		ConfigProvider:    cfgLoader,
		Classifier:        classifier,
		PatternStore:      store,
		Analyzer:          analyzer,
	}, nil
}
