// Package http assembles the API router and runs the API and metrics servers.
package http

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/securemessenger/internal/auth/http"
	authService "github.com/allisson/securemessenger/internal/auth/service"
	authUseCase "github.com/allisson/securemessenger/internal/auth/usecase"
	chatHTTP "github.com/allisson/securemessenger/internal/chat/http"
	"github.com/allisson/securemessenger/internal/config"
	"github.com/allisson/securemessenger/internal/metrics"
	userHTTP "github.com/allisson/securemessenger/internal/user/http"
)

// Server is the public API server.
type Server struct {
	db     *sql.DB
	server *http.Server
	logger *slog.Logger
	router *gin.Engine
}

// Handlers groups the domain handlers mounted under /v1.
type Handlers struct {
	User    *userHTTP.UserHandler
	Session *authHTTP.SessionHandler
	Room    *chatHTTP.RoomHandler
	Message *chatHTTP.MessageHandler
}

// NewServer creates a Server. db backs the readiness probe and may be nil in tests.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", host, port),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// newBaseRouter installs the middleware every route shares.
func (s *Server) newBaseRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)
	return router
}

// SetupRouter builds the full API router. ctx bounds the rate limiter cleanup goroutines.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	handlers Handlers,
	sessionUseCase authUseCase.SessionUseCase,
	tokenService authService.TokenService,
	metricsProvider *metrics.Provider,
) {
	router := s.newBaseRouter()

	if cors := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); cors != nil {
		router.Use(cors)
	}
	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	v1 := router.Group("/v1")

	// Unauthenticated endpoints share one per-IP limiter.
	public := v1.Group("")
	if cfg.RateLimitLoginEnabled {
		public.Use(authHTTP.LoginRateLimitMiddleware(
			ctx, cfg.RateLimitLoginRequestsPerSec, cfg.RateLimitLoginBurst, s.logger,
		))
	}
	public.POST("/users", handlers.User.RegisterHandler)
	public.POST("/sessions", handlers.Session.LoginHandler)

	authenticated := v1.Group("")
	authenticated.Use(authHTTP.AuthenticationMiddleware(sessionUseCase, tokenService, s.logger))
	if cfg.RateLimitEnabled {
		authenticated.Use(authHTTP.RateLimitMiddleware(
			ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger,
		))
	}
	authenticated.DELETE("/sessions", handlers.Session.LogoutHandler)
	authenticated.GET("/users/me", handlers.User.MeHandler)

	rooms := authenticated.Group("/rooms")
	rooms.POST("", handlers.Room.CreateHandler)
	rooms.GET("", handlers.Room.ListHandler)
	rooms.POST("/join", handlers.Room.JoinHandler)
	rooms.GET("/:id/members", handlers.Room.MembersHandler)
	rooms.POST("/:id/messages", handlers.Message.SendHandler)
	rooms.GET("/:id/messages", handlers.Message.ListHandler)

	s.router = router
}

// GetHandler returns the configured router.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return errors.New("router not configured")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
