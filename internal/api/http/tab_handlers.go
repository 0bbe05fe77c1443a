package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cyberproxy/backend/internal/domain/session"
	"github.com/cyberproxy/backend/internal/shared/utils"
)

// ListTabs lists all open tabs
func (h *Handlers) ListTabs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"tabs":  h.store.List(),
		"stats": h.store.Stats(),
	})
}

// OpenTab creates a new tab and starts its advisory fetch
func (h *Handlers) OpenTab(c *gin.Context) {
	var req struct {
		GroupID *string `json:"group_id"`
	}
	// Empty body means no group
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
	}

	if req.GroupID != nil {
		if err := utils.ValidateID(*req.GroupID, "group_id", true); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	tab := h.tabs.Open(req.GroupID)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"tab":     tab,
	})
}

// GetTab returns a single tab
func (h *Handlers) GetTab(c *gin.Context) {
	tabID := c.Param("id")
	if err := utils.ValidateID(tabID, "tab_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tab, ok := h.store.Get(tabID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "tab not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tab": tab})
}

// CloseTab removes a tab. Closing the last remaining tab or an unknown ID
// reports success=false with the collection unchanged.
func (h *Handlers) CloseTab(c *gin.Context) {
	tabID := c.Param("id")
	if err := utils.ValidateID(tabID, "tab_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	success := h.store.CloseTab(tabID)
	c.JSON(http.StatusOK, gin.H{
		"success": success,
		"tab_id":  tabID,
	})
}

// FocusTab makes a tab the active one
func (h *Handlers) FocusTab(c *gin.Context) {
	tabID := c.Param("id")
	if err := utils.ValidateID(tabID, "tab_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	success := h.store.SwitchTab(tabID)
	c.JSON(http.StatusOK, gin.H{
		"success": success,
		"tab_id":  tabID,
	})
}

// MoveTab shifts a tab left or right in the strip
func (h *Handlers) MoveTab(c *gin.Context) {
	var req struct {
		Index     int    `json:"index"`
		Direction string `json:"direction" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	dir := session.Direction(req.Direction)
	if dir != session.MoveLeft && dir != session.MoveRight {
		c.JSON(http.StatusBadRequest, gin.H{"error": "direction must be left or right"})
		return
	}

	success := h.store.MoveTab(req.Index, dir)
	c.JSON(http.StatusOK, gin.H{"success": success})
}

// SearchTab starts a search or opens a direct URL in the tab
func (h *Handlers) SearchTab(c *gin.Context) {
	tabID := c.Param("id")
	if err := utils.ValidateID(tabID, "tab_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req struct {
		Query string `json:"query" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := utils.ValidateQuery(req.Query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := h.store.Get(tabID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "tab not found"})
		return
	}

	h.tabs.Search(tabID, req.Query)
	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"tab_id":  tabID,
	})
}

// RefreshAdvisory re-requests advisory text for the tab's current identity
func (h *Handlers) RefreshAdvisory(c *gin.Context) {
	tabID := c.Param("id")
	if err := utils.ValidateID(tabID, "tab_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := h.store.Get(tabID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "tab not found"})
		return
	}

	h.tabs.RefreshAdvisory(tabID)
	c.JSON(http.StatusAccepted, gin.H{"success": true})
}

// RotateIdentity swaps the tab's IP while keeping its location
func (h *Handlers) RotateIdentity(c *gin.Context) {
	tabID := c.Param("id")
	if err := utils.ValidateID(tabID, "tab_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	success := h.tabs.RotateIdentity(tabID)
	if !success {
		c.JSON(http.StatusNotFound, gin.H{"error": "tab not found"})
		return
	}

	tab, _ := h.store.Get(tabID)
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"identity": tab.Identity,
	})
}

// RegenerateIdentity replaces the tab's identity wholesale
func (h *Handlers) RegenerateIdentity(c *gin.Context) {
	tabID := c.Param("id")
	if err := utils.ValidateID(tabID, "tab_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	success := h.tabs.RegenerateIdentity(tabID)
	if !success {
		c.JSON(http.StatusNotFound, gin.H{"error": "tab not found"})
		return
	}

	tab, _ := h.store.Get(tabID)
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"identity": tab.Identity,
	})
}
