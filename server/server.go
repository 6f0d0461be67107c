// Package server exposes the transcription pipeline over HTTP. It hosts a
// Gin engine behind an h2c wrapper so HTTP/2 cleartext clients work
// without TLS.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/Chundurirohan/Courtly-server/config"
	"github.com/Chundurirohan/Courtly-server/logger"
	"github.com/Chundurirohan/Courtly-server/service"
)

// Server is the HTTP front end over the transcription service.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	cfg        config.Config
	svc        *service.Service
	log        *logger.Logger
}

// New creates a Server, applies the middleware stack, and registers the
// API routes.
func New(cfg config.Config, svc *service.Service) *Server {
	// Gin mode follows the global zerolog level.
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	h2s := &http2.Server{
		MaxConcurrentStreams: 250,
		IdleTimeout:          120 * time.Second,
	}
	handler := h2c.NewHandler(engine, h2s)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	s := &Server{
		httpServer: httpServer,
		engine:     engine,
		cfg:        cfg,
		svc:        svc,
		log:        logger.Get("server"),
	}
	s.applyMiddleware()
	s.registerRoutes()
	return s
}

// GinEngine returns the underlying Gin engine, used by tests.
func (s *Server) GinEngine() *gin.Engine { return s.engine }

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.httpServer.Addr }

// Start binds the port and begins serving. It returns once the listener
// is bound; serving continues in a goroutine.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("server failed to bind %s: %w", s.httpServer.Addr, err)
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("Server error", logger.Fields(logger.FieldError, err.Error()))
		}
	}()

	s.log.Info("HTTP server started", logger.Fields("addr", s.httpServer.Addr))
	return nil
}

// Stop gracefully shuts down the server with a 5-second deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	return nil
}

func (s *Server) applyMiddleware() {
	s.engine.Use(Recovery())
	s.engine.Use(RequestID())
	s.engine.Use(CORS(s.cfg.Server.CORSOrigins))
	if s.cfg.Server.MaxBodyBytes > 0 {
		s.engine.Use(BodySizeLimit(s.cfg.Server.MaxBodyBytes))
	}
	s.engine.Use(RequestLogger())
}
