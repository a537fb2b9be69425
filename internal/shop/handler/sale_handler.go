package handler

import (
	"net/http"

	"github.com/fabioferrero90/strabello-manager/internal/shop/service"
	"github.com/gin-gonic/gin"
)

type SaleHandler struct {
	svc *service.SaleService
}

func NewSaleHandler(svc *service.SaleService) *SaleHandler {
	return &SaleHandler{svc: svc}
}

// Finalize POST /orders/:id/sale
func (h *SaleHandler) Finalize(c *gin.Context) {
	var req service.FinalizeSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	sale, err := h.svc.FinalizeSale(c.Param("id"), req, operatorFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": sale})
}

// GetLatest GET /orders/:id/sale
func (h *SaleHandler) GetLatest(c *gin.Context) {
	sale, err := h.svc.GetLatestSale(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": sale})
}

// List GET /sales
func (h *SaleHandler) List(c *gin.Context) {
	sales, err := h.svc.ListSales()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": sales})
}

// Export GET /sales/export
func (h *SaleHandler) Export(c *gin.Context) {
	f, filename, err := h.svc.ExportSales()
	if err != nil {
		fail(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 50001, "message": err.Error()})
	}
}
