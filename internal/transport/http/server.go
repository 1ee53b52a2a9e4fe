// Package http exposes the application services over an echo HTTP surface.
// Every route is gated by the auth middleware before it reaches a service;
// handlers assume a pre-authorized call.
package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/lamergameryt/entrypoint/internal/auth"
	"github.com/rs/zerolog"
)

type Server struct {
	e       *echo.Echo
	events  EventService
	tickets TicketService
	users   UserService
	tokens  TokenIssuer
	assets  AssetService
}

type Config struct {
	Events      EventService
	Tickets     TicketService
	Users       UserService
	Tokens      *auth.Tokens
	Assets      AssetService
	CORSOrigins []string
	Logger      zerolog.Logger
}

func NewServer(cfg Config) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{
		e:       e,
		events:  cfg.Events,
		tickets: cfg.Tickets,
		users:   cfg.Users,
		tokens:  cfg.Tokens,
		assets:  cfg.Assets,
	}

	e.Use(RequestLogger(cfg.Logger))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))
	e.Use(auth.Middleware(cfg.Tokens))

	e.GET("/health", HealthHandler)

	user := e.Group("/user")
	user.POST("/register", srv.RegisterUser)
	user.POST("/login", srv.LoginUser)

	events := e.Group("/events")
	events.GET("", srv.ListAvailableEvents, auth.RequireCapability(auth.CapViewEvent))
	events.POST("", srv.CreateEvent, auth.RequireCapability(auth.CapCreateEvent))
	events.GET("/search", srv.SearchEvents, auth.RequireCapability(auth.CapViewEvent))
	events.DELETE("/:eventId", srv.DeleteEvent, auth.RequireCapability(auth.CapEditEvent))
	events.GET("/:eventId/tickets", srv.ListTicketsForEvent, auth.RequireCapability(auth.CapViewEvent))
	events.POST("/:eventId/tickets", srv.CreateTicketForEvent, auth.RequireCapability(auth.CapViewEvent))
	events.DELETE("/:eventId/tickets/:ticketId", srv.DeleteTicketForEvent, auth.RequireCapability(auth.CapEditEvent))
	events.GET("/:eventId/poster", srv.EventPosterDownloadURL, auth.RequireCapability(auth.CapViewEvent))
	events.PUT("/:eventId/poster", srv.EventPosterUploadURL, auth.RequireCapability(auth.CapEditEvent))

	return srv
}

// Echo exposes the underlying router, mainly for tests.
func (s *Server) Echo() *echo.Echo {
	return s.e
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

// HealthHandler reports process liveness.
func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
