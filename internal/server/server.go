// Package server serves the mounted host page and the title's component
// route over Echo.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pthm/hxtitle"
	hxtitleecho "github.com/pthm/hxtitle/adapters/echo"
	"github.com/pthm/hxtitle/internal/bootstrap"
	"github.com/pthm/hxtitle/internal/config"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// ShutdownTimeout bounds graceful shutdown in Run.
const ShutdownTimeout = 5 * time.Second

// Server is the Echo instance serving the mounted page and its
// component routes.
type Server struct {
	Echo     *echo.Echo
	Registry *hxtitle.Registry
	App      *bootstrap.App
	addr     string
}

// New builds the Echo instance, registers the components and mounts the
// page. Mount failures are returned before anything listens.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	key, err := cfg.KeyBytes()
	if err != nil {
		return nil, err
	}
	if cfg.Key == "" {
		logger.Info("No props key configured, using a random one; component URLs change on restart")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	reg := hxtitleecho.Mount(e,
		hxtitleecho.WithKey(key),
		hxtitleecho.WithOnError(logErrors),
	)

	app, err := bootstrap.Boot(ctx, cfg, reg)
	if err != nil {
		return nil, err
	}

	e.GET("/", hxtitleecho.Page(app.Page))

	return &Server{
		Echo:     e,
		Registry: reg,
		App:      app,
		addr:     cfg.Addr,
	}, nil
}

// logErrors logs every failed component request before handing it on.
func logErrors(next func(http.ResponseWriter, *http.Request, error)) func(http.ResponseWriter, *http.Request, error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		logger.LogErr(err, "Component request failed", "path", r.URL.Path)
		next(w, r, err)
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("hxtitle server starting", "address", s.addr)
		if err := s.Echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return serr.Wrap(err, "server failed")
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("hxtitle server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.Echo.Shutdown(shutdownCtx); err != nil {
		return serr.Wrap(err, "graceful shutdown failed")
	}
	return nil
}
