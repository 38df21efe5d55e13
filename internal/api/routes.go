package api

import (
	"net/http"

	"github.com/corvalle/certilab/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain) {
	routes.Register(
		mux,
		domain.Certificates.Handler().Routes(),
	)
}
