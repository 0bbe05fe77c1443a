package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cyberproxy/backend/internal/shared/utils"
)

// ListGroups lists tab groups
func (h *Handlers) ListGroups(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"groups": h.store.Groups(),
	})
}

// CreateGroup creates a tab group
func (h *Handlers) CreateGroup(c *gin.Context) {
	var req struct {
		Name  string `json:"name" binding:"required"`
		Color string `json:"color"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := utils.ValidateName(req.Name, "name", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateString(req.Color, "color", 0, utils.MaxColorLength, false); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group := h.store.CreateGroup(req.Name, req.Color)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"group":   group,
	})
}

// DeleteGroup removes a group and detaches its tabs
func (h *Handlers) DeleteGroup(c *gin.Context) {
	groupID := c.Param("id")
	if err := utils.ValidateID(groupID, "group_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	success := h.store.DeleteGroup(groupID)
	c.JSON(http.StatusOK, gin.H{
		"success":  success,
		"group_id": groupID,
	})
}

// AssignGroup attaches a tab to a group, or detaches it when group_id is null
func (h *Handlers) AssignGroup(c *gin.Context) {
	tabID := c.Param("id")
	if err := utils.ValidateID(tabID, "tab_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req struct {
		GroupID *string `json:"group_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if req.GroupID != nil {
		if err := utils.ValidateID(*req.GroupID, "group_id", true); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	success := h.store.AssignGroup(tabID, req.GroupID)
	c.JSON(http.StatusOK, gin.H{
		"success": success,
		"tab_id":  tabID,
	})
}
