// Package site serves the PromptCraft marketing and resource pages with
// embedded Go templates.
package site

import (
	"embed"
	"net/http"

	"promptcraft/internal/catalog"
	"promptcraft/pkg/module"
	"promptcraft/pkg/web"
)

//go:embed templates/layouts/*.html templates/views/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

const mainLayout = "main"

var pages = []web.ViewDef{
	{Route: "GET /{$}", Template: "home.html", Title: "PromptCraft"},
	{Route: "GET /about", Template: "about.html", Title: "About"},
	{Route: "GET /resources", Template: "resources.html", Title: "Resources"},
	{Route: "GET /support", Template: "support.html", Title: "Support"},
	{Route: "GET /terms", Template: "terms.html", Title: "Terms of Service"},
	{Route: "GET /privacy", Template: "privacy.html", Title: "Privacy Policy"},
}

var galleryPage = web.ViewDef{
	Route:    "GET /templates",
	Template: "gallery.html",
	Title:    "Starter Templates",
}

var notFoundPage = web.ViewDef{
	Template: "404.html",
	Title:    "Page Not Found",
}

// NewModule creates the site module mounted at basePath.
func NewModule(basePath string) (*module.Module, error) {
	views := make([]web.ViewDef, 0, len(pages)+2)
	views = append(views, pages...)
	views = append(views, galleryPage, notFoundPage)

	ts, err := web.NewTemplateSet(
		templateFS,
		templateFS,
		"templates/layouts/*.html",
		"templates/views",
		basePath,
		views,
	)
	if err != nil {
		return nil, err
	}

	router := web.NewRouter()
	for _, page := range pages {
		router.HandleFunc(page.Route, ts.PageHandler(mainLayout, page))
	}

	router.HandleFunc(galleryPage.Route, ts.DataHandler(mainLayout, galleryPage, func(r *http.Request) any {
		return catalog.Templates()
	}))

	router.HandleFunc("GET /static/", web.DistServer(staticFS, "static", "/static/"))
	router.HandleFunc("GET /robots.txt", web.PublicFile(staticFS, "static", "robots.txt"))
	router.HandleFunc("GET /favicon.svg", web.PublicFile(staticFS, "static", "favicon.svg"))
	router.SetFallback(ts.ErrorHandler(mainLayout, notFoundPage, http.StatusNotFound))

	return module.New(basePath, router), nil
}
