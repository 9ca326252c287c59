package router

import (
	"github.com/labstack/echo/v4"

	"github.com/yshengliao/pathway/template"
)

// HandlerFunc handles a dispatched request. It is echo's handler type; the
// matched route's parameters are available through the context by the time
// the handler runs.
type HandlerFunc = echo.HandlerFunc

// MiddlewareFunc wraps a handler. Route middleware runs after the route has
// been matched, so it can read the matched route from the context.
type MiddlewareFunc = echo.MiddlewareFunc

// Route is one registered route: its method, raw template and the compiled
// artifacts derived from it at registration time. A Route is never mutated
// after registration.
type Route struct {
	method   string
	tmpl     string
	handler  HandlerFunc
	compiled *template.Compiled
}

// Method returns the HTTP method the route is registered for.
func (r *Route) Method() string { return r.method }

// Template returns the raw path template.
func (r *Route) Template() string { return r.tmpl }

// Params returns the route's parameter names in declaration order.
func (r *Route) Params() []string { return r.compiled.Params() }

// Fingerprint returns the template's canonical structural shape. Consumers
// such as cache policies use it as a partition key for structurally
// identical routes.
func (r *Route) Fingerprint() string { return r.compiled.Fingerprint() }

// Compiled returns the route's compiled pattern for direct Test/Match use.
func (r *Route) Compiled() *template.Compiled { return r.compiled }
