package handler

import (
	"errors"
	"net/http"

	"github.com/fabioferrero90/strabello-manager/internal/shop/service"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handlers 车间HTTP处理器集合
type Handlers struct {
	Auth      *AuthHandler
	Catalog   *CatalogHandler
	Inventory *InventoryHandler
	Order     *OrderHandler
	Queue     *QueueHandler
	Sale      *SaleHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:      NewAuthHandler(services.Auth),
		Catalog:   NewCatalogHandler(services.Catalog),
		Inventory: NewInventoryHandler(services.Catalog),
		Order:     NewOrderHandler(services.Order),
		Queue:     NewQueueHandler(services.Queue),
		Sale:      NewSaleHandler(services.Sale),
	}
}

// fail 统一错误出口，把服务层哨兵错误映射为HTTP状态与业务码
func fail(c *gin.Context, err error) {
	var compErr *service.CompensationError
	switch {
	case errors.As(err, &compErr):
		// 补偿失败，库存可能不一致，需要人工对账
		c.JSON(http.StatusInternalServerError, gin.H{"code": 50002, "message": err.Error()})
	case errors.Is(err, service.ErrInsufficientInventory),
		errors.Is(err, service.ErrInsufficientAccessory):
		c.JSON(http.StatusConflict, gin.H{"code": 20001, "message": err.Error()})
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrMissingRequiredSelection),
		errors.Is(err, service.ErrMissingMaterialCode):
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"code": 10002, "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"code": 50001, "message": err.Error()})
	}
}

func operatorFrom(c *gin.Context) string {
	if v, ok := c.Get("operator"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
