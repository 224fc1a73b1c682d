// Package server wires the HTTP API together.
package server

import (
	"log"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"rfpdesk/internal/api"
	"rfpdesk/internal/config"
	"rfpdesk/internal/detector"
	"rfpdesk/internal/engine"
	"rfpdesk/internal/extractor"
	"rfpdesk/internal/planner"
	"rfpdesk/internal/store"
)

// Server is the HTTP server.
type Server struct {
	router *gin.Engine
	store  *store.Store
	api    *api.Handler
}

// NewServer creates the server, its engine, and the run-log store.
func NewServer(cfg *config.AppConfig) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}

	st, err := store.New(filepath.Join(dataDir, "rfpdesk.db"))
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	eng := engine.New(engine.Config{
		Detector: detector.Options{
			ScanRows:         cfg.Detect.HeaderScanRows,
			MinHeaderCells:   cfg.Detect.HeaderMinCells,
			MaxHeaderCellLen: cfg.Detect.HeaderMaxCellLen,
		},
		Extractor: extractor.Options{
			DividerMaxLen: cfg.Detect.DividerMaxLen,
		},
		Planner: planner.Options{
			Ceiling: cfg.Batch.Ceiling,
			Floor:   cfg.Batch.Floor,
		},
		Store: st,
	})

	s := &Server{
		router: gin.Default(),
		store:  st,
		api:    api.NewHandler(eng, st, dataDir),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	group := s.router.Group("/api")
	{
		s.api.RegisterRoutes(group)
	}
}

// Run starts the server.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close releases the store.
func (s *Server) Close() error {
	return s.store.Close()
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
