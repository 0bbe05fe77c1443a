package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cyberproxy/backend/internal/shared/types"
	"github.com/cyberproxy/backend/internal/shared/utils"
)

// AddVideo embeds a new player in the tab
func (h *Handlers) AddVideo(c *gin.Context) {
	tabID := c.Param("id")
	if err := utils.ValidateID(tabID, "tab_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req struct {
		URL   string `json:"url" binding:"required"`
		Title string `json:"title"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	video, ok := h.tabs.AddVideo(tabID, req.URL, req.Title)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "tab not found"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"video":   video,
	})
}

// QuickLaunch embeds a player pointed at a built-in sample stream
func (h *Handlers) QuickLaunch(c *gin.Context) {
	tabID := c.Param("id")
	if err := utils.ValidateID(tabID, "tab_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	video, ok := h.tabs.QuickLaunch(tabID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "tab not found"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"video":   video,
	})
}

// RemoveVideo deletes a player from the tab
func (h *Handlers) RemoveVideo(c *gin.Context) {
	tabID := c.Param("id")
	videoID := c.Param("video_id")
	if err := utils.ValidateID(tabID, "tab_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateID(videoID, "video_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	success := h.tabs.RemoveVideo(tabID, videoID)
	c.JSON(http.StatusOK, gin.H{
		"success":  success,
		"video_id": videoID,
	})
}

// RotateVideoIP assigns a fresh IP to a single player
func (h *Handlers) RotateVideoIP(c *gin.Context) {
	tabID := c.Param("id")
	videoID := c.Param("video_id")
	if err := utils.ValidateID(tabID, "tab_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateID(videoID, "video_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	success := h.tabs.RotateVideoIP(tabID, videoID)
	c.JSON(http.StatusOK, gin.H{
		"success":  success,
		"video_id": videoID,
	})
}

// SetPlayback changes a player's playback status
func (h *Handlers) SetPlayback(c *gin.Context) {
	tabID := c.Param("id")
	videoID := c.Param("video_id")
	if err := utils.ValidateID(tabID, "tab_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateID(videoID, "video_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	status := types.PlaybackStatus(req.Status)
	switch status {
	case types.StatusPlaying, types.StatusPaused, types.StatusBuffering:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be playing, paused, or buffering"})
		return
	}

	success := h.tabs.SetPlayback(tabID, videoID, status)
	c.JSON(http.StatusOK, gin.H{
		"success":  success,
		"video_id": videoID,
		"status":   status,
	})
}
