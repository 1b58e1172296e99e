// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const probeTimeout = 2 * time.Second

// Probe reports whether a backing service answers.
type Probe func(ctx context.Context) error

// HealthController serves GET /health.
type HealthController struct {
	database Probe
	cache    Probe
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Cache     string `json:"cache"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController wires the two probes. A nil probe counts as down.
func NewHealthController(database, cache Probe) *HealthController {
	return &HealthController{database: database, cache: cache}
}

// Check answers 503 without the database; a lost cache only degrades the
// service.
func (h *HealthController) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), probeTimeout)
	defer cancel()

	dbUp := probe(ctx, h.database)
	cacheUp := probe(ctx, h.cache)

	response := HealthResponse{
		Status:    "ok",
		Database:  state(dbUp),
		Cache:     state(cacheUp),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	status := http.StatusOK
	if !dbUp {
		response.Status, status = "unavailable", http.StatusServiceUnavailable
	} else if !cacheUp {
		response.Status = "degraded"
	}
	c.JSON(status, response)
}

func probe(ctx context.Context, p Probe) bool {
	return p != nil && p(ctx) == nil
}

func state(up bool) string {
	if up {
		return "connected"
	}
	return "disconnected"
}
