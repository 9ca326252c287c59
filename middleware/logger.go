package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/yshengliao/pathway/router"
)

// RouteLoggerConfig defines the config for the RouteLogger middleware.
type RouteLoggerConfig struct {
	// Logger instance to use. Required.
	Logger *zap.Logger

	// Skipper defines a function to skip logging for a request.
	Skipper func(echo.Context) bool
}

// RouteLogger returns a request logger enriched with the matched route's
// template and fingerprint.
func RouteLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return RouteLoggerWithConfig(RouteLoggerConfig{Logger: logger})
}

// RouteLoggerWithConfig returns a RouteLogger middleware with config.
func RouteLoggerWithConfig(config RouteLoggerConfig) echo.MiddlewareFunc {
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper != nil && config.Skipper(c) {
				return next(c)
			}

			start := time.Now()
			err := next(c)

			fields := []zap.Field{
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.EscapedPath()),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
			}
			if rid := GetRequestID(c); rid != "" {
				fields = append(fields, zap.String("request_id", rid))
			}
			if route, ok := router.MatchedRoute(c); ok {
				fields = append(fields,
					zap.String("template", route.Template()),
					zap.String("fingerprint", route.Fingerprint()))
			}
			if err != nil {
				fields = append(fields, zap.Error(err))
				config.Logger.Warn("request failed", fields...)
				return err
			}
			config.Logger.Info("request", fields...)
			return nil
		}
	}
}
