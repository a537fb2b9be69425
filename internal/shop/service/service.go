package service

import (
	"github.com/fabioferrero90/strabello-manager/internal/config"
	"github.com/fabioferrero90/strabello-manager/internal/shop/repository"
	"github.com/redis/go-redis/v9"
)

// Services 车间服务集合
type Services struct {
	Auth    *AuthService
	Catalog *CatalogService
	Order   *OrderService
	Queue   *QueueService
	Sale    *SaleService
}

func NewServices(repos *repository.Repositories, rdb *redis.Client, cfg *config.Config) *Services {
	queue := NewQueueService(repos.Order, rdb, cfg.Shop.QueueCacheTTL)
	return &Services{
		Auth:    NewAuthService(cfg, rdb),
		Catalog: NewCatalogService(repos),
		Order:   NewOrderService(repos.Spool, repos.AccessoryLot, repos.Order, repos.Sale, repos.Material, repos.Model, queue),
		Queue:   queue,
		Sale:    NewSaleService(repos.Order, repos.Sale, repos.Channel),
	}
}
