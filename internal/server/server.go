// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes screening over HTTP. Every request loads and
// scores its own table; the server holds no screening state between
// requests.
package server

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/pdiddy/smallcap-screener/internal/history"
	"github.com/pdiddy/smallcap-screener/pkg/types"
)

// HistoryFetcher looks up recent prices for a stock code.
type HistoryFetcher interface {
	Fetch(ctx context.Context, code string) (*history.Series, error)
}

// Server wires the HTTP routes.
type Server struct {
	echo    *echo.Echo
	screen  types.ScreenConfig
	loader  types.LoaderConfig
	history HistoryFetcher
	log     zerolog.Logger
}

// New builds a server. screen holds the defaults that query parameters
// override per request. hist may be nil, in which case history lookups
// report unavailable.
func New(screen types.ScreenConfig, loader types.LoaderConfig, hist HistoryFetcher, log zerolog.Logger) *Server {
	s := &Server{
		echo:    echo.New(),
		screen:  screen,
		loader:  loader,
		history: hist,
		log:     log.With().Str("component", "server").Logger(),
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true

	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ev := s.log.Info()
			if v.Error != nil {
				ev = s.log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).Str("uri", v.URI).Int("status", v.Status).
				Dur("latency", v.Latency).Msg("request")
			return nil
		},
	}))
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.BodyLimit("32M"))

	s.echo.GET("/health", s.Health)
	api := s.echo.Group("/api")
	api.POST("/screen", s.Screen)
	api.GET("/history/:code", s.History)
	return s
}

// Handler returns the router for use with httptest or a custom listener.
func (s *Server) Handler() http.Handler { return s.echo }

// Start listens on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.log.Info().Str("addr", addr).Msg("listening")
	if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
