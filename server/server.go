package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/minhokang/busanhunt/internal/config"
	"github.com/minhokang/busanhunt/internal/logger"
	"github.com/minhokang/busanhunt/internal/media"
	"github.com/minhokang/busanhunt/internal/store"
)

// Server is the hunt HTTP service
type Server struct {
	cfg   *config.Server
	store *store.TeamStore
	media media.Store
	echo  *echo.Echo

	ticketMu sync.Mutex
	tickets  map[string]uploadTicket
}

// New creates a new server over the injected store and media backends
func New(cfg *config.Server, st *store.TeamStore, ms media.Store) *Server {
	s := &Server{
		cfg:     cfg,
		store:   st,
		media:   ms,
		tickets: make(map[string]uploadTicket),
	}

	s.setupEcho()

	return s
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true

	// Request/response logging middleware
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			err := next(c)

			res := c.Response()
			logger.Info("HTTP",
				logger.F("method", req.Method),
				logger.F("uri", req.RequestURI),
				logger.F("status", res.Status),
				logger.F("size", res.Size),
				logger.F("duration", time.Since(start).String()))

			return err
		}
	})

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	// Health check
	e.GET("/health", s.handleHealth)

	// Game endpoints
	e.POST("/login", s.handleLogin)
	e.POST("/tasks", s.handleTaskUpdate)
	e.POST("/team", s.handleTeamRename)

	// Media endpoints
	e.POST("/upload", s.handleUpload)
	e.PUT("/upload/direct/:ticket", s.handleDirectUpload)
	e.GET("/media/:name", s.handleMedia)
	e.Static("/uploads", s.cfg.UploadDir)

	s.echo = e
}

// Close closes the team store backend
func (s *Server) Close() error {
	return s.store.Close()
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
