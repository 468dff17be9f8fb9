package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"portal-backend/internal/httpx"
	"portal-backend/internal/store"
)

type HealthHandler struct {
	Store store.Store
}

func NewHealthHandler(st store.Store) *HealthHandler {
	return &HealthHandler{Store: st}
}

func (h *HealthHandler) Get(c *gin.Context) {
	if err := h.Store.Ping(c.Request.Context()); err != nil {
		httpx.OK(c, http.StatusServiceUnavailable, gin.H{
			"status":    "unhealthy",
			"database":  "disconnected",
			"timestamp": time.Now().Format(time.RFC3339),
		}, "Service is unhealthy")
		return
	}

	httpx.OK(c, http.StatusOK, gin.H{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().Format(time.RFC3339),
	}, "Service is healthy")
}
