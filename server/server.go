package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/reqcraft/rqc"
	"github.com/reqcraft/rqc/ast"
	"github.com/reqcraft/rqc/parser"
)

// Info is the payload served by GET /api/info.
type Info struct {
	Name          string   `json:"name"`
	Version       string   `json:"version"`
	BaseURLs      []string `json:"baseUrls"`
	EndpointCount int      `json:"endpointCount"`
	MockMode      bool     `json:"mockMode"`
	CorsMode      bool     `json:"corsMode"`
}

// Server is the rqc dev server. Construct with New, then call Run or mount
// Router on your own listener.
type Server struct {
	// Host is the interface to bind. Defaults to 127.0.0.1.
	Host string
	// Port is the TCP port to bind. Defaults to 6400.
	Port int
	// Mock enables the /mock responder.
	Mock bool
	// CORS enables permissive CORS headers on all routes.
	CORS bool
	// Logger is the structured logger for request lifecycle events.
	// If nil, logging is disabled (default).
	Logger parser.Logger

	store *Store
}

// New creates a Server over the given snapshot store.
func New(store *Store) *Server {
	return &Server{store: store}
}

func (s *Server) log() parser.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return parser.NopLogger{}
}

func (s *Server) host() string {
	if s.Host != "" {
		return s.Host
	}
	return "127.0.0.1"
}

func (s *Server) port() int {
	if s.Port != 0 {
		return s.Port
	}
	return 6400
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	if s.CORS {
		r.Use(corsMiddleware())
	}

	api := r.Group("/api")
	{
		api.GET("/info", s.handleInfo)
		api.GET("/config", s.handleConfig)
		api.GET("/endpoints", s.handleEndpoints)
		api.GET("/categories", s.handleCategories)
		api.GET("/variables", s.handleVariables)
		api.GET("/headers", s.handleHeaders)
	}
	r.GET("/events", s.handleEvents)

	if s.Mock {
		r.Any("/mock/*path", s.handleMock)
	}
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.host(), s.port())
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log().Info("dev server listening", "addr", "http://"+addr, "mock", s.Mock, "cors", s.CORS)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, PATCH, HEAD, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "*")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (s *Server) handleInfo(c *gin.Context) {
	snap := s.store.Snapshot()
	c.JSON(http.StatusOK, Info{
		Name:          "reqcraft",
		Version:       rqc.Version(),
		BaseURLs:      snap.Doc.BaseURLs(),
		EndpointCount: len(snap.Endpoints),
		MockMode:      s.Mock,
		CorsMode:      s.CORS,
	})
}

func (s *Server) handleConfig(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Snapshot().Doc)
}

func (s *Server) handleEndpoints(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Snapshot().Endpoints)
}

func (s *Server) handleCategories(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Snapshot().Categories)
}

func (s *Server) handleVariables(c *gin.Context) {
	variables := []ast.VariableDefinition{}
	if cfg := s.store.Snapshot().Doc.Config; cfg != nil && cfg.Variables != nil {
		variables = cfg.Variables
	}
	c.JSON(http.StatusOK, variables)
}

func (s *Server) handleHeaders(c *gin.Context) {
	headers := []ast.HeaderDefinition{}
	if cfg := s.store.Snapshot().Doc.Config; cfg != nil && cfg.Headers != nil {
		headers = cfg.Headers
	}
	c.JSON(http.StatusOK, headers)
}

// handleEvents streams reload notifications as server-sent events until the
// client disconnects.
func (s *Server) handleEvents(c *gin.Context) {
	ch, cancel := s.store.Subscribe()
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ch:
			c.SSEvent("reload", "{}")
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
