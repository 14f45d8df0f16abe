package api

import (
	"net/http"

	"promptcraft/internal/config"
	"promptcraft/pkg/middleware"
	"promptcraft/pkg/openapi"
	"promptcraft/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
) error {
	limit := middleware.RateLimit(&cfg.API.RateLimit, identityKey(domain))

	routes.Register(
		mux,
		domain.Sessions.Handler().Routes(),
		domain.Catalog.Handler().Routes(),
		limitRoutes(domain.Synthesis.Handler().Routes(), limit),
		domain.Wizard.Handler().Routes(),
		domain.Auth.Handler().Routes(),
	)

	spec, err := buildSpec(cfg)
	if err != nil {
		return err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(spec))

	return nil
}

// identityKey keys rate limits on the signed-in user when one exists. Empty
// keys fall back to the remote address inside the middleware.
func identityKey(domain *Domain) func(*http.Request) string {
	return func(r *http.Request) string {
		if identity := domain.Auth.Current(); identity != nil {
			return identity.ID.String()
		}
		return ""
	}
}

// limitRoutes wraps every handler in a group, recursively, with the given
// middleware. Generation endpoints are the expensive upstream calls, so the
// quota applies only to their group rather than module-wide.
func limitRoutes(group routes.Group, mw func(http.Handler) http.Handler) routes.Group {
	for i, route := range group.Routes {
		handler := mw(route.Handler)
		group.Routes[i].Handler = handler.ServeHTTP
	}
	for i, child := range group.Children {
		group.Children[i] = limitRoutes(child, mw)
	}
	return group
}
