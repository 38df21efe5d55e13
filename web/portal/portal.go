// Package portal serves the internal web UI for generating and reviewing
// labor certificates. Pages render server-side and call the JSON API from
// the browser.
package portal

import (
	"embed"
	"net/http"

	"github.com/corvalle/certilab/pkg/module"
	"github.com/corvalle/certilab/pkg/web"
)

//go:embed templates/*.html templates/views/*.html static/*
var staticFS embed.FS

var views = []web.ViewDef{
	{Route: "GET /{$}", Template: "generate.html", Title: "Generar certificado"},
	{Route: "GET /historial", Template: "history.html", Title: "Historial"},
}

// NewModule creates a module that serves the portal UI at basePath.
func NewModule(basePath string) (*module.Module, error) {
	ts, err := web.NewTemplateSet(
		staticFS,
		"templates/*.html",
		"templates/views",
		basePath,
		views,
	)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	for _, v := range views {
		mux.HandleFunc(v.Route, ts.PageHandler("layout", v))
	}
	mux.HandleFunc("GET /static/", web.DistServer(staticFS, "static", "/static"))

	return module.New(basePath, mux), nil
}
