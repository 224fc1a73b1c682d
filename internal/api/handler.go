// Package api exposes the parse and write-back operations over HTTP.
package api

import (
	"github.com/gin-gonic/gin"

	"rfpdesk/internal/engine"
	"rfpdesk/internal/store"
)

// Handler holds the API dependencies.
type Handler struct {
	engine    *engine.Engine
	store     *store.Store
	dataDir   string
	downloads *downloadStore
}

// NewHandler creates the API handler.
func NewHandler(eng *engine.Engine, st *store.Store, dataDir string) *Handler {
	return &Handler{
		engine:    eng,
		store:     st,
		dataDir:   dataDir,
		downloads: newDownloadStore(),
	}
}

// RegisterRoutes registers all API routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/status", h.GetStatus)

	// Structure detection and question extraction
	router.POST("/parse", h.Parse)

	// Answer write-back
	router.POST("/write", h.WriteAnswers)
	router.GET("/download/:token", h.Download)

	// Run history
	router.GET("/runs", h.ListRuns)
}
