package main

import (
	"encoding/json"
	"net/http"

	"github.com/corvalle/certilab/internal/api"
	"github.com/corvalle/certilab/internal/config"
	"github.com/corvalle/certilab/internal/infrastructure"
	"github.com/corvalle/certilab/pkg/middleware"
	"github.com/corvalle/certilab/pkg/module"
	"github.com/corvalle/certilab/web/portal"
)

type Modules struct {
	API    *module.Module
	Portal *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	portalModule, err := portal.NewModule("/portal")
	if err != nil {
		return nil, err
	}
	portalModule.Use(middleware.Logger(infra.Logger))

	return &Modules{
		API:    apiModule,
		Portal: portalModule,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.Portal)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "not ready"})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	})

	return router
}
