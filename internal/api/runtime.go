package api

import (
	"github.com/corvalle/certilab/internal/config"
	"github.com/corvalle/certilab/internal/infrastructure"
	"github.com/corvalle/certilab/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Sheets:    infra.Sheets,
			Drive:     infra.Drive,
		},
		Pagination: cfg.API.Pagination,
	}
}
