// Package module mounts prefixed sub-applications on a shared router.
// Each module owns its routing table and middleware stack and sees
// request paths with its mount prefix already stripped.
package module

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"promptcraft/pkg/middleware"
)

// Module pairs an inner router with a mount prefix and middleware stack.
type Module struct {
	prefix     string
	router     http.Handler
	middleware middleware.System
}

// New creates a Module mounted at prefix. The prefix must be a single
// path segment with a leading slash ("/api", "/site"); anything else
// panics, since mount points are fixed at assembly time.
func New(prefix string, router http.Handler) *Module {
	if err := validatePrefix(prefix); err != nil {
		panic(err)
	}
	return &Module{
		prefix:     prefix,
		router:     router,
		middleware: middleware.New(),
	}
}

// Handler returns the inner router wrapped in the middleware stack.
func (m *Module) Handler() http.Handler {
	return m.middleware.Apply(m.router)
}

// Prefix returns the mount prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Serve strips the mount prefix from the request path and dispatches to
// the inner router. The incoming request is cloned, never mutated.
func (m *Module) Serve(w http.ResponseWriter, req *http.Request) {
	inner := req.URL.Path[len(m.prefix):]
	if inner == "" {
		inner = "/"
	}
	m.Handler().ServeHTTP(w, rewritePath(req, inner))
}

// Use appends middleware to the module's stack.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.middleware.Use(mw)
}

func rewritePath(req *http.Request, path string) *http.Request {
	clone := new(http.Request)
	*clone = *req
	clone.URL = new(url.URL)
	*clone.URL = *req.URL
	clone.URL.Path = path
	clone.URL.RawPath = ""
	return clone
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("module prefix cannot be empty")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("module prefix must start with /: %s", prefix)
	}
	if strings.Count(prefix, "/") != 1 {
		return fmt.Errorf("module prefix must be single-level sub-path: %s", prefix)
	}
	return nil
}
