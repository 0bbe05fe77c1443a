package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cyberproxy/backend/internal/shared/utils"
)

// SaveBookmark captures the active tab's identity under a name
func (h *Handlers) SaveBookmark(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	// Name is optional; the bookmark defaults to its location label
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
	}
	if err := utils.ValidateName(req.Name, "name", false); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bookmark := h.store.SaveBookmark(req.Name)
	if bookmark == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active tab"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"bookmark": bookmark,
	})
}

// ListBookmarks lists saved identity bookmarks
func (h *Handlers) ListBookmarks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"bookmarks": h.store.Bookmarks(),
	})
}

// ApplyBookmark copies a bookmarked identity onto the active tab
func (h *Handlers) ApplyBookmark(c *gin.Context) {
	bookmarkID := c.Param("id")
	if err := utils.ValidateID(bookmarkID, "bookmark_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	success := h.store.ApplyBookmark(bookmarkID)
	if success {
		// Applied identities carry a new IP, so refresh the advisory
		if active := h.store.ActiveTab(); active != nil {
			h.tabs.RefreshAdvisory(active.ID)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     success,
		"bookmark_id": bookmarkID,
	})
}
