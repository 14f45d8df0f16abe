// Package routes declares HTTP routing tables as data. Handlers expose
// groups of routes; Register walks them onto a ServeMux.
package routes

import "net/http"

// Route binds an HTTP method and pattern to a handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Group collects routes under a shared prefix. Child groups nest, with
// prefixes concatenated outside-in.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Register adds every route in the given groups to the mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, group := range groups {
		group.register(mux, "")
	}
}

func (g Group) register(mux *http.ServeMux, parent string) {
	prefix := parent + g.Prefix

	for _, route := range g.Routes {
		mux.HandleFunc(route.Method+" "+prefix+route.Pattern, route.Handler)
	}
	for _, child := range g.Children {
		child.register(mux, prefix)
	}
}
