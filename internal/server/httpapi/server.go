// Package httpapi exposes the flashcards REST API over echo: routing, the
// auth middleware pipeline, typed request/response shapes and the mapping
// from service errors to HTTP status codes.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/hmori/flashcards/internal/logging"
	"github.com/hmori/flashcards/internal/server/auth"
	"github.com/hmori/flashcards/internal/server/config"
	"github.com/hmori/flashcards/internal/server/services"
	"github.com/hmori/flashcards/internal/server/validation"
)

// HTTPServer wires services and the authenticator into an echo route table.
type HTTPServer struct {
	address       string
	logger        logging.Logger
	users         *services.UserService
	cards         *services.CardService
	health        *services.HealthService
	authenticator auth.Authenticator
	validator     *validation.Validator
	cfg           *config.Config
	echo          *echo.Echo
}

// NewHTTPServer constructs the server and registers all routes.
func NewHTTPServer(cfg *config.Config, l logging.Logger, us *services.UserService, cs *services.CardService, hs *services.HealthService, a auth.Authenticator) *HTTPServer {
	s := &HTTPServer{
		address:       cfg.Address,
		logger:        l.With("module", "httpapi"),
		users:         us,
		cards:         cs,
		health:        hs,
		authenticator: a,
		validator:     validation.New(),
		cfg:           cfg,
	}
	s.echo = s.buildEcho()
	return s
}

func (s *HTTPServer) buildEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(s.requestLogger)
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     s.cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, "X-Requested-With", "X-CSRF-Token"},
		ExposeHeaders:    []string{echo.HeaderAuthorization, echo.HeaderContentType},
		AllowCredentials: s.cfg.CORSAllowCredentials,
		MaxAge:           86400,
	}))

	e.GET("/", s.handleRoot)
	e.GET("/health", s.handleHealth)

	e.POST("/auth/register", s.handleRegister)
	e.POST("/auth/login", s.handleLogin)
	e.POST("/auth/logout", s.handleLogout)

	api := e.Group("/api", s.requireAuth)
	api.GET("/me", s.handleMe)
	api.PUT("/me", s.handleUpdateMe)

	cards := api.Group("/flash-cards")
	cards.GET("", s.handleListCards)
	cards.POST("", s.handleCreateCard)
	cards.GET("/:id", s.handleGetCard)
	cards.PUT("/:id", s.handleUpdateCard)
	cards.PATCH("/:id", s.handleUpdateCard)
	cards.DELETE("/:id", s.handleDeleteCard)
	cards.POST("/:id/restore", s.handleRestoreCard)

	// Admin listing requires authentication first, then the admin flag.
	e.GET("/users", s.handleListUsers, s.requireAuth, s.requireAdmin)

	return e
}

// Run starts the HTTP server and shuts it down gracefully when ctx is done.
func (s *HTTPServer) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.echo.Start(s.address); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
