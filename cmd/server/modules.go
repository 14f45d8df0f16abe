package main

import (
	"encoding/json"
	"net/http"

	"promptcraft/internal/api"
	"promptcraft/internal/config"
	"promptcraft/internal/infrastructure"
	"promptcraft/pkg/middleware"
	"promptcraft/pkg/module"
	"promptcraft/web/site"
)

type Modules struct {
	API  *module.Module
	Site *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	siteModule, err := site.NewModule("/site")
	if err != nil {
		return nil, err
	}
	siteModule.Use(middleware.Logger(infra.Logger))

	return &Modules{
		API:  apiModule,
		Site: siteModule,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.Site)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/site", http.StatusTemporaryRedirect)
	})

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
