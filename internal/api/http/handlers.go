package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cyberproxy/backend/internal/domain/session"
	"github.com/cyberproxy/backend/internal/domain/tab"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	store *session.Store
	tabs  *tab.Service
}

// NewHandlers creates a new handler set
func NewHandlers(store *session.Store, tabs *tab.Service) *Handlers {
	return &Handlers{
		store: store,
		tabs:  tabs,
	}
}

// Root handles the service banner
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "CyberProxy Backend (Go)",
		"version": "0.3.0",
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"session": h.store.Stats(),
	})
}

// GetStats returns session statistics
func (h *Handlers) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"stats": h.store.Stats(),
	})
}

// GetSnapshot returns the full session state
func (h *Handlers) GetSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Snapshot())
}
