package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"rfpdesk/internal/store"
)

var startedAt = time.Now()

// StatusResponse is the health/status payload.
type StatusResponse struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	RunCount      int    `json:"run_count"`
}

// GetStatus reports service health and run history size.
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	resp := StatusResponse{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(startedAt).Seconds()),
	}
	if h.store != nil {
		if runs, err := h.store.ListRuns(0); err == nil {
			resp.RunCount = len(runs)
		}
	}
	c.JSON(http.StatusOK, resp)
}

// ListRuns returns the most recent pipeline runs.
// GET /api/runs?limit=N
func (h *Handler) ListRuns(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusOK, gin.H{"runs": []any{}})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	runs, err := h.store.ListRuns(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if runs == nil {
		runs = []store.Run{}
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}
