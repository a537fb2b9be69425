package handler

import (
	"net/http"

	"github.com/fabioferrero90/strabello-manager/internal/shop/service"
	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	svc *service.CatalogService
}

func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// CreateMaterial POST /materials
func (h *CatalogHandler) CreateMaterial(c *gin.Context) {
	var req service.CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	m, err := h.svc.CreateMaterial(req, operatorFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": m})
}

// ListMaterials GET /materials
func (h *CatalogHandler) ListMaterials(c *gin.Context) {
	items, err := h.svc.ListMaterials()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": items})
}

// UpdateMaterial PUT /materials/:id
func (h *CatalogHandler) UpdateMaterial(c *gin.Context) {
	var req service.UpdateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	m, err := h.svc.UpdateMaterial(c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": m})
}

// DeleteMaterial DELETE /materials/:id
func (h *CatalogHandler) DeleteMaterial(c *gin.Context) {
	if err := h.svc.DeleteMaterial(c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success"})
}

// CreateModel POST /models
func (h *CatalogHandler) CreateModel(c *gin.Context) {
	var req service.CreateModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	m, err := h.svc.CreateModel(req, operatorFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": m})
}

// ListModels GET /models
func (h *CatalogHandler) ListModels(c *gin.Context) {
	items, err := h.svc.ListModels()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": items})
}

// GetModel GET /models/:id
func (h *CatalogHandler) GetModel(c *gin.Context) {
	m, err := h.svc.GetModel(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": m})
}

// DeleteModel DELETE /models/:id
func (h *CatalogHandler) DeleteModel(c *gin.Context) {
	if err := h.svc.DeleteModel(c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success"})
}

// CreateAccessory POST /accessories
func (h *CatalogHandler) CreateAccessory(c *gin.Context) {
	var req service.CreateAccessoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	a, err := h.svc.CreateAccessory(req, operatorFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": a})
}

// ListAccessories GET /accessories
func (h *CatalogHandler) ListAccessories(c *gin.Context) {
	items, err := h.svc.ListAccessories()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": items})
}

// CreateChannel POST /channels
func (h *CatalogHandler) CreateChannel(c *gin.Context) {
	var req service.CreateChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	ch, err := h.svc.CreateChannel(req, operatorFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": ch})
}

// ListChannels GET /channels
func (h *CatalogHandler) ListChannels(c *gin.Context) {
	items, err := h.svc.ListChannels()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": items})
}
