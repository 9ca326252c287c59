// Package router keeps a table of template routes and dispatches requests to
// them. Templates are validated and compiled once at registration; lookups
// run the compiled patterns in registration order against the request path.
package router

import (
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/yshengliao/pathway/template"
)

// Router is a registry of compiled template routes. Registration happens
// during a single-threaded setup phase; lookups may run concurrently once
// registration is complete.
type Router struct {
	opts        template.Options
	logger      *zap.Logger
	middlewares []MiddlewareFunc

	mu     sync.RWMutex
	routes []*Route
	groups map[string][]*Route // fingerprint -> structurally identical routes
	shapes map[string]*Route   // method + fingerprint -> first registration
}

// New creates a Router with the given template options. A nil logger
// disables registration logging.
func New(opts template.Options, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		opts:   opts,
		logger: logger,
		groups: make(map[string][]*Route),
		shapes: make(map[string]*Route),
	}
}

// Use adds global middleware. Middleware added before a route is registered
// wraps that route's handler; later additions do not retroactively apply.
func (r *Router) Use(m ...MiddlewareFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middlewares = append(r.middlewares, m...)
}

// Add validates and compiles tmpl and registers the route. It fails when the
// template is rejected, when a parameter name repeats within the template, or
// when a structurally identical route (same method, same fingerprint) is
// already registered. A failed registration leaves the table unchanged.
func (r *Router) Add(method, tmpl string, h HandlerFunc, m ...MiddlewareFunc) (*Route, error) {
	compiled, err := template.Compile(tmpl, r.opts)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	shapeKey := method + " " + compiled.Fingerprint()
	if prior, ok := r.shapes[shapeKey]; ok {
		return nil, fmt.Errorf("route %s %s: structurally identical to already registered %s %s",
			method, tmpl, prior.Method(), prior.Template())
	}

	// Route middleware innermost, then global middleware, as at registration
	// time.
	handler := h
	for i := len(m) - 1; i >= 0; i-- {
		handler = m[i](handler)
	}
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		handler = r.middlewares[i](handler)
	}

	route := &Route{
		method:   method,
		tmpl:     tmpl,
		handler:  handler,
		compiled: compiled,
	}
	r.routes = append(r.routes, route)
	r.groups[compiled.Fingerprint()] = append(r.groups[compiled.Fingerprint()], route)
	r.shapes[shapeKey] = route

	r.logger.Info("registered route",
		zap.String("method", method),
		zap.String("template", tmpl),
		zap.String("fingerprint", compiled.Fingerprint()),
		zap.Strings("params", compiled.Params()))
	return route, nil
}

// GET registers a GET route.
func (r *Router) GET(tmpl string, h HandlerFunc, m ...MiddlewareFunc) (*Route, error) {
	return r.Add(http.MethodGet, tmpl, h, m...)
}

// POST registers a POST route.
func (r *Router) POST(tmpl string, h HandlerFunc, m ...MiddlewareFunc) (*Route, error) {
	return r.Add(http.MethodPost, tmpl, h, m...)
}

// PUT registers a PUT route.
func (r *Router) PUT(tmpl string, h HandlerFunc, m ...MiddlewareFunc) (*Route, error) {
	return r.Add(http.MethodPut, tmpl, h, m...)
}

// DELETE registers a DELETE route.
func (r *Router) DELETE(tmpl string, h HandlerFunc, m ...MiddlewareFunc) (*Route, error) {
	return r.Add(http.MethodDelete, tmpl, h, m...)
}

// PATCH registers a PATCH route.
func (r *Router) PATCH(tmpl string, h HandlerFunc, m ...MiddlewareFunc) (*Route, error) {
	return r.Add(http.MethodPatch, tmpl, h, m...)
}

// Lookup finds the first registered route whose pattern matches path under
// the given method, along with the decoded parameter values. Registration
// order is the only tie-break between overlapping routes.
func (r *Router) Lookup(method, path string) (*Route, *template.MatchResult, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, route := range r.routes {
		if route.method != method {
			continue
		}
		if res, ok := route.compiled.Match(path); ok {
			return route, res, true
		}
	}
	return nil, nil, false
}

// Test reports whether any registered route structurally matches, without
// paying for parameter extraction or decoding.
func (r *Router) Test(method, path string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, route := range r.routes {
		if route.method == method && route.compiled.Test(path) {
			return true
		}
	}
	return false
}

// Routes returns the registered routes in registration order.
func (r *Router) Routes() []*Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Route, len(r.routes))
	copy(out, r.routes)
	return out
}

// FingerprintGroups returns the registered routes grouped by fingerprint.
// Structurally identical routes land in the same group regardless of their
// parameter names.
func (r *Router) FingerprintGroups() map[string][]*Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string][]*Route, len(r.groups))
	for fp, routes := range r.groups {
		group := make([]*Route, len(routes))
		copy(group, routes)
		out[fp] = group
	}
	return out
}
