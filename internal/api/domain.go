package api

import (
	"fmt"

	"github.com/corvalle/certilab/internal/certificates"
	"github.com/corvalle/certilab/internal/config"
	"github.com/corvalle/certilab/internal/registry"
	"github.com/corvalle/certilab/pkg/render"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Registry     registry.System
	Certificates certificates.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(cfg *config.Config, runtime *Runtime) (*Domain, error) {
	location := cfg.Certificate.Location()

	registrySystem := registry.New(
		runtime.Sheets,
		runtime.Logger,
		location,
	)

	renderer, err := render.New(&cfg.Render)
	if err != nil {
		return nil, fmt.Errorf("renderer init failed: %w", err)
	}

	certificatesSystem := certificates.New(
		runtime.Database.Connection(),
		registrySystem,
		renderer,
		runtime.Drive,
		runtime.Logger,
		runtime.Pagination,
		certificates.Options{
			City:               cfg.Certificate.City,
			SignerName:         cfg.Certificate.SignerName,
			SignerTitle:        cfg.Certificate.SignerTitle,
			Location:           location,
			ManualSalaryTitles: cfg.Certificate.ManualSalaryTitles,
			Fuzzy:              cfg.Certificate.Fuzzy,
		},
	)

	return &Domain{
		Registry:     registrySystem,
		Certificates: certificatesSystem,
	}, nil
}
