package certificates

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/corvalle/certilab/pkg/handlers"
	"github.com/corvalle/certilab/pkg/pagination"
	"github.com/corvalle/certilab/pkg/routes"
)

// Handler provides HTTP endpoints for certificate operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "certificates"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for certificate endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/certificates",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Generate},
			{Method: "GET", Pattern: "/verify/{identity}", Handler: h.Verify},
			{Method: "GET", Pattern: "/runs", Handler: h.Runs},
		},
	}
}

// Generate accepts a JSON body with an identity number and optional salary
// override, runs the pipeline, and returns the per-entity results.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var cmd GenerateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidIdentity)
		return
	}

	result, err := h.sys.Generate(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Verify returns per-entity contract summaries for the identity number
// path parameter without rendering anything.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	result, err := h.sys.Verify(r.Context(), r.PathValue("identity"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Runs returns a paginated list of recorded generation runs, newest first.
func (h *Handler) Runs(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	result, err := h.sys.Runs(r.Context(), page)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
