package handler

import (
	"net/http"

	"github.com/fabioferrero90/strabello-manager/internal/shop/service"
	"github.com/gin-gonic/gin"
)

type QueueHandler struct {
	svc *service.QueueService
}

func NewQueueHandler(svc *service.QueueService) *QueueHandler {
	return &QueueHandler{svc: svc}
}

// Active GET /queue
func (h *QueueHandler) Active(c *gin.Context) {
	orders, err := h.svc.ActiveQueue()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": orders})
}

// Reorder PUT /queue/reorder
func (h *QueueHandler) Reorder(c *gin.Context) {
	var req struct {
		DraggedID string `json:"dragged_id" binding:"required"`
		TargetID  string `json:"target_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	if err := h.svc.Reorder(req.DraggedID, req.TargetID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success"})
}

// Toggle PUT /queue/:id/toggle
func (h *QueueHandler) Toggle(c *gin.Context) {
	order, err := h.svc.Toggle(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": order})
}

// MarkAvailable PUT /queue/:id/available
func (h *QueueHandler) MarkAvailable(c *gin.Context) {
	order, err := h.svc.MarkAvailable(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": order})
}

// Prioritize PUT /queue/:id/prioritize
func (h *QueueHandler) Prioritize(c *gin.Context) {
	var req struct {
		Prioritized *bool `json:"prioritized" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	order, err := h.svc.Prioritize(c.Param("id"), *req.Prioritized)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": order})
}
