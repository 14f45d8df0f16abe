package catalog

import (
	"log/slog"
	"net/http"

	"promptcraft/pkg/handlers"
	"promptcraft/pkg/routes"
)

// Handler provides HTTP endpoints for catalog lookups.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "catalog"),
	}
}

// Routes returns the route group definition for catalog endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/templates", Handler: h.Templates},
			{Method: "GET", Pattern: "/templates/categories", Handler: h.Categories},
			{Method: "GET", Pattern: "/templates/{id}", Handler: h.Template},
			{Method: "GET", Pattern: "/questions", Handler: h.Questions},
		},
	}
}

// Templates returns the full template gallery, optionally filtered by category.
func (h *Handler) Templates(w http.ResponseWriter, r *http.Request) {
	result := h.sys.Templates()

	if category := r.URL.Query().Get("category"); category != "" {
		filtered := make([]Template, 0, len(result))
		for _, t := range result {
			if t.Category == category {
				filtered = append(filtered, t)
			}
		}
		result = filtered
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Template returns a single template by id.
func (h *Handler) Template(w http.ResponseWriter, r *http.Request) {
	t, err := h.sys.Template(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, t)
}

// Categories returns the distinct template categories.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.sys.TemplateCategories())
}

// Questions returns the fixed clarifying question set.
func (h *Handler) Questions(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.sys.Questions())
}
