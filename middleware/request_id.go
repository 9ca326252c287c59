// Package middleware provides echo middleware for pathway route tables.
// Everything here is route middleware: it runs after the dispatcher has
// resolved the route, so the matched template and fingerprint are available
// from the context.
package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestIDContextKey is the context key the request id is stored under.
const RequestIDContextKey = "pathway.request_id"

// RequestIDConfig defines the config for the RequestID middleware.
type RequestIDConfig struct {
	// Skipper defines a function to skip the middleware.
	Skipper func(echo.Context) bool

	// Generator generates an ID. Defaults to UUID v4.
	Generator func() string

	// TargetHeader is the header checked for an existing request ID.
	// Defaults to X-Request-ID.
	TargetHeader string
}

// DefaultRequestIDConfig is the default RequestID middleware config.
var DefaultRequestIDConfig = RequestIDConfig{
	Skipper:      func(echo.Context) bool { return false },
	Generator:    func() string { return uuid.New().String() },
	TargetHeader: echo.HeaderXRequestID,
}

// RequestID returns a middleware that tags every request with a unique ID,
// reusing an inbound one when the client supplied it.
func RequestID() echo.MiddlewareFunc {
	return RequestIDWithConfig(DefaultRequestIDConfig)
}

// RequestIDWithConfig returns a RequestID middleware with config.
func RequestIDWithConfig(config RequestIDConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = DefaultRequestIDConfig.Skipper
	}
	if config.Generator == nil {
		config.Generator = DefaultRequestIDConfig.Generator
	}
	if config.TargetHeader == "" {
		config.TargetHeader = DefaultRequestIDConfig.TargetHeader
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}
			rid := c.Request().Header.Get(config.TargetHeader)
			if rid == "" {
				rid = config.Generator()
			}
			c.Set(RequestIDContextKey, rid)
			c.Response().Header().Set(config.TargetHeader, rid)
			return next(c)
		}
	}
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(c echo.Context) string {
	rid, _ := c.Get(RequestIDContextKey).(string)
	return rid
}
