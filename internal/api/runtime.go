package api

import (
	"github.com/JaimeStill/laurel/internal/config"
	"github.com/JaimeStill/laurel/internal/infrastructure"
	"github.com/JaimeStill/laurel/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
	Evaluation config.EvaluationConfig
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
			Agent:     infra.Agent,
		},
		Pagination: cfg.API.Pagination,
		Evaluation: cfg.Evaluation,
	}
}
