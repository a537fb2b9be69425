package handler

import (
	"net/http"
	"strconv"

	"github.com/fabioferrero90/strabello-manager/internal/shop/service"
	"github.com/gin-gonic/gin"
)

// InventoryHandler 料卷与配件批次的录入、查询和预警
type InventoryHandler struct {
	svc *service.CatalogService
}

func NewInventoryHandler(svc *service.CatalogService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// AddSpool POST /spools
func (h *InventoryHandler) AddSpool(c *gin.Context) {
	var req service.AddSpoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	sp, err := h.svc.AddSpool(req, operatorFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": sp})
}

// ListSpools GET /spools?material_id=
func (h *InventoryHandler) ListSpools(c *gin.Context) {
	items, err := h.svc.ListSpools(c.Query("material_id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": items})
}

// LowSpools GET /spools/low?threshold=
func (h *InventoryHandler) LowSpools(c *gin.Context) {
	threshold, _ := strconv.ParseFloat(c.DefaultQuery("threshold", "100"), 64)
	items, err := h.svc.LowSpools(threshold)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": items})
}

// DiscardSpool DELETE /spools/:id
func (h *InventoryHandler) DiscardSpool(c *gin.Context) {
	if err := h.svc.DiscardSpool(c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success"})
}

// DefaultSpool GET /spools/default?material_id=&grams=
func (h *InventoryHandler) DefaultSpool(c *gin.Context) {
	grams, err := strconv.ParseFloat(c.Query("grams"), 64)
	if err != nil || grams <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": "grams参数无效"})
		return
	}
	id, err := h.svc.DefaultSpool(c.Query("material_id"), grams)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": gin.H{"lot_id": id}})
}

// AddAccessoryLot POST /accessory-lots
func (h *InventoryHandler) AddAccessoryLot(c *gin.Context) {
	var req service.AddAccessoryLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	lot, err := h.svc.AddAccessoryLot(req, operatorFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": lot})
}

// ListAccessoryLots GET /accessory-lots?accessory_id=
func (h *InventoryHandler) ListAccessoryLots(c *gin.Context) {
	items, err := h.svc.ListAccessoryLots(c.Query("accessory_id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": items})
}
