package router

import (
	"github.com/labstack/echo/v4"
)

// RouteContextKey is the echo context key under which the dispatcher stores
// the matched *Route before running its handler chain.
const RouteContextKey = "pathway.route"

// Handler returns an echo handler that dispatches requests through the route
// table. On a match it populates echo's path parameters and the matched
// route, then runs the route's handler chain. A miss falls through as 404 so
// outer mux layers can keep trying.
func (r *Router) Handler() echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		// Match the escaped form: captures are percent-decoded by the
		// matcher itself, and %2F inside a captured value must not be
		// confused with a segment separator beforehand.
		route, res, ok := r.Lookup(req.Method, req.URL.EscapedPath())
		if !ok {
			return echo.ErrNotFound
		}
		c.SetParamNames(res.Names()...)
		c.SetParamValues(res.Values()...)
		c.Set(RouteContextKey, route)
		return route.handler(c)
	}
}

// Mount attaches the dispatcher to an echo instance as the catch-all route.
func (r *Router) Mount(e *echo.Echo) {
	e.Any("/*", r.Handler())
	e.Any("/", r.Handler())
}

// MatchedRoute returns the route the dispatcher resolved for this request,
// if any. Route middleware can use it to key decisions by template shape.
func MatchedRoute(c echo.Context) (*Route, bool) {
	route, ok := c.Get(RouteContextKey).(*Route)
	return route, ok
}
