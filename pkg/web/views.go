// Package web provides infrastructure for serving web pages with Go templates
// and embedded static assets.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
)

// ViewDef defines a page with its route, template file, and title.
type ViewDef struct {
	Route    string
	Template string
	Title    string
}

// ViewData is the payload handed to page templates. BasePath lets
// templates build portable URLs via {{ .BasePath }}.
type ViewData struct {
	Title    string
	BasePath string
	Data     any
}

// TemplateSet holds per-view templates parsed once at startup; a
// broken template surfaces during assembly rather than on a request.
type TemplateSet struct {
	views    map[string]*template.Template
	basePath string
}

// NewTemplateSet parses the layout templates, then clones the layout
// set for each view and parses the view file into the clone.
func NewTemplateSet(layoutFS, viewFS embed.FS, layoutGlob, viewSubdir, basePath string, views []ViewDef) (*TemplateSet, error) {
	layouts, err := template.ParseFS(layoutFS, layoutGlob)
	if err != nil {
		return nil, err
	}

	viewSub, err := fs.Sub(viewFS, viewSubdir)
	if err != nil {
		return nil, err
	}

	ts := &TemplateSet{
		views:    make(map[string]*template.Template, len(views)),
		basePath: basePath,
	}
	for _, view := range views {
		t, err := layouts.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layouts for %s: %w", view.Template, err)
		}
		if _, err = t.ParseFS(viewSub, view.Template); err != nil {
			return nil, fmt.Errorf("parse template: %s: %w", view.Template, err)
		}
		ts.views[view.Template] = t
	}

	return ts, nil
}

func (ts *TemplateSet) data(title string, payload any) ViewData {
	return ViewData{Title: title, BasePath: ts.basePath, Data: payload}
}

// PageHandler renders a static view.
func (ts *TemplateSet) PageHandler(layout string, view ViewDef) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ts.Render(w, layout, view.Template, ts.data(view.Title, nil)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// DataHandler renders a view with per-request data produced by load.
func (ts *TemplateSet) DataHandler(layout string, view ViewDef, load func(r *http.Request) any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ts.Render(w, layout, view.Template, ts.data(view.Title, load(r))); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// ErrorHandler renders a view with the given status code, falling back
// to a plain status text response if the template itself fails.
func (ts *TemplateSet) ErrorHandler(layout string, view ViewDef, status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		if err := ts.Render(w, layout, view.Template, ts.data(view.Title, nil)); err != nil {
			http.Error(w, http.StatusText(status), status)
		}
	}
}

// Render executes the named layout template with the given view data.
func (ts *TemplateSet) Render(w http.ResponseWriter, layoutName, viewPath string, data ViewData) error {
	t, ok := ts.views[viewPath]
	if !ok {
		return fmt.Errorf("template not found: %s", viewPath)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return t.ExecuteTemplate(w, layoutName, data)
}
