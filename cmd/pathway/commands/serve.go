package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yshengliao/pathway/config"
	"github.com/yshengliao/pathway/middleware"
	"github.com/yshengliao/pathway/router"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a route file for development, echoing matched routes",
		Long: `Serve loads the configuration, builds the route table from the configured
route file and answers every matched request with the resolved route and its
decoded parameters. The route file is watched and reloaded on change.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := &config.Config{}
			if err := config.Load(configPath, cfg); err != nil {
				return err
			}
			logger, err := cfg.BuildLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			return runServer(cfg, logger)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "pathway.yaml", "configuration file path")

	return cmd
}

func runServer(cfg *config.Config, logger *zap.Logger) error {
	var table atomic.Pointer[router.Router]

	build := func() (*router.Router, error) {
		return buildTable(cfg, logger)
	}
	t, err := build()
	if err != nil {
		return err
	}
	table.Store(t)

	// Swap the whole table on reload; in-flight requests keep the one they
	// started with.
	if cfg.Router.RoutesFile != "" {
		watcher, err := config.NewWatcher(cfg.Router.RoutesFile, logger, func() {
			next, err := build()
			if err != nil {
				logger.Error("route file reload failed, keeping previous table", zap.Error(err))
				return
			}
			table.Store(next)
			logger.Info("route table reloaded", zap.Int("routes", len(next.Routes())))
		})
		if err != nil {
			return err
		}
		defer watcher.Close()
	}

	e := echo.New()
	e.HideBanner = true
	dispatch := func(c echo.Context) error {
		return table.Load().Handler()(c)
	}
	e.Any("/*", dispatch)
	e.Any("/", dispatch)

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      e,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		logger.Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// buildTable compiles the configured route file into a fresh route table.
// Every route answers with the resolved template, fingerprint and decoded
// parameters, which makes serve a route-table debugger.
func buildTable(cfg *config.Config, logger *zap.Logger) (*router.Router, error) {
	table := router.New(cfg.Router.TemplateOptions(), logger)
	table.Use(
		middleware.RequestID(),
		middleware.RouteLogger(logger),
	)

	if cfg.Router.RoutesFile == "" {
		return table, nil
	}
	rf, err := config.LoadRouteFile(cfg.Router.RoutesFile)
	if err != nil {
		return nil, err
	}
	for _, rt := range rf.Routes {
		if _, err := table.Add(rt.Method, rt.Path, echoRoute); err != nil {
			return nil, fmt.Errorf("register route %s %s: %w", rt.Method, rt.Path, err)
		}
	}
	return table, nil
}

func echoRoute(c echo.Context) error {
	route, _ := router.MatchedRoute(c)
	params := make(map[string]string, len(c.ParamNames()))
	for _, name := range c.ParamNames() {
		params[name] = c.Param(name)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"template":    route.Template(),
		"fingerprint": route.Fingerprint(),
		"params":      params,
	})
}
