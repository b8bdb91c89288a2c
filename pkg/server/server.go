// Package server implements the beacon collector: pages post their own
// performance entries and the server assembles one report per session.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/user/lcpweight/pkg/ports"
)

// Options configures a Server.
type Options struct {
	Version string

	// PublicURL is the base URL pages use to reach the server. Empty uses
	// the origin of the script request.
	PublicURL string

	// SessionTTL is how long an idle session is kept (default: 10 minutes).
	SessionTTL time.Duration
}

// Server is the HTTP surface of the beacon collector.
type Server struct {
	echo     *echo.Echo
	sessions *Manager
	store    ports.ReportStore
	logger   ports.Logger
	opts     Options
}

// New creates a Server. store may be nil to disable history endpoints and
// persistence of closed sessions.
func New(sessions *Manager, store ports.ReportStore, logger ports.Logger, opts Options) *Server {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 10 * time.Minute
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = HTTPErrorHandler
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:     e,
		sessions: sessions,
		store:    store,
		logger:   logger.WithComponent("server"),
		opts:     opts,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/lcpweight.js", s.handleScript)

	api := s.echo.Group("/api")
	api.GET("/sessions", s.handleListSessions)
	api.POST("/sessions", s.handleCreateSession)
	api.POST("/sessions/:id/entries", s.handlePushEntries)
	api.GET("/sessions/:id/report", s.handleReport)
	api.DELETE("/sessions/:id", s.handleCloseSession)

	api.GET("/reports", s.handleListReports)
	api.GET("/reports/:id", s.handleGetReport)
}

// Handler returns the server's http.Handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully.
// Idle sessions are expired in the background.
func (s *Server) Start(ctx context.Context, addr string) error {
	go s.expireSessions(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening on %s", addr)
		errCh <- s.echo.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("start server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	s.logger.Info("Server stopped")
	return nil
}

func (s *Server) expireSessions(ctx context.Context) {
	ticker := time.NewTicker(s.opts.SessionTTL / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sessions.Cleanup(s.opts.SessionTTL)
		}
	}
}
