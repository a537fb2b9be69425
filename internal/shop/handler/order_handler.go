package handler

import (
	"net/http"

	"github.com/fabioferrero90/strabello-manager/internal/shop/service"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	svc *service.OrderService
}

func NewOrderHandler(svc *service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// Preview POST /orders/preview
// 报价预览，幂等，不碰库存
func (h *OrderHandler) Preview(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	preview, err := h.svc.PreviewCost(req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": preview})
}

// Create POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	order, err := h.svc.CreateOrder(req, operatorFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": order})
}

// Get GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.svc.GetOrder(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": order})
}

// List GET /orders?status=
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.svc.ListOrders(c.Query("status"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": orders})
}

// Delete DELETE /orders/:id
// 请求体可选：原批次已丢弃时用 restore 指定替代恢复目标
func (h *OrderHandler) Delete(c *gin.Context) {
	var req struct {
		Restore []service.LotSelectionInput `json:"restore"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
			return
		}
	}
	if err := h.svc.DeleteQueuedOrder(c.Param("id"), req.Restore); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success"})
}

// EditLots PUT /orders/:id/lots
func (h *OrderHandler) EditLots(c *gin.Context) {
	var req struct {
		Selections []service.LotSelectionInput `json:"selections" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	order, err := h.svc.EditOrderLots(c.Param("id"), req.Selections)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": order})
}

// ListUsages GET /orders/:id/usages
func (h *OrderHandler) ListUsages(c *gin.Context) {
	usages, err := h.svc.ListUsages(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": usages})
}
