// Package server exposes the barista and quiz generation over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/existflow/digicafe/internal/genai"
	"github.com/existflow/digicafe/internal/logger"
)

// Server is the stateless Digi Cafe API
type Server struct {
	gen  genai.Generator
	echo *echo.Echo
}

// New creates a server backed by gen
func New(gen genai.Generator) *Server {
	s := &Server{gen: gen}
	s.setupEcho()
	return s
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler
	e.JSONSerializer = jsonSerializer{}

	e.Use(requestLogger)
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	// Health check
	e.GET("/health", s.handleHealth)

	api := e.Group("/api/v1")
	api.POST("/chat", s.handleChat)
	api.POST("/quiz", s.handleQuiz)
	api.GET("/sounds", s.handleSounds)

	s.echo = e
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Run serves on addr until ctx is canceled, then drains in-flight requests
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Digi Cafe API listening", logger.F("addr", addr))
		errCh <- s.echo.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("Shutting down API")
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
