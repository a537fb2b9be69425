package service

import (
	"github.com/fabioferrero90/strabello-manager/internal/shop/entity"
)

// 核心逻辑依赖的存储接口。gorm仓库实现这些接口；测试用内存假实现。
// 所有批次变更都是乐观的读后写，单操作员低并发下可接受（见设计文档）。

// SpoolStore 料卷批次存储
type SpoolStore interface {
	ListByMaterial(materialID string) ([]entity.Spool, error)
	Get(id string) (*entity.Spool, error)
	UpdateRemaining(id string, grams float64) error
}

// AccessoryLotStore 配件批次存储
type AccessoryLotStore interface {
	ListByAccessory(accessoryID string) ([]entity.AccessoryLot, error)
	Get(id string) (*entity.AccessoryLot, error)
	UpdateRemaining(id string, qty int) error
}

// OrderStore 生产订单存储
type OrderStore interface {
	Get(id string) (*entity.ProductionOrder, error)
	ListActive() ([]entity.ProductionOrder, error)
	ListByStatus(status string) ([]entity.ProductionOrder, error)
	Create(o *entity.ProductionOrder) error
	Update(o *entity.ProductionOrder) error
	UpdateMaterialRow(m *entity.OrderMaterial) error
	// UpdateQueueOrders 作为一个逻辑操作持久化全部N行的新序号
	UpdateQueueOrders(assignments []entity.QueueAssignment) error
	Delete(id string) error
	MaxActiveQueueOrder() (int, error)
	CreateUsages(usages []entity.AccessoryUsage) error
	DeleteUsagesByOrder(orderID string) error
	ListUsagesByOrder(orderID string) ([]entity.AccessoryUsage, error)
}

// SaleStore 销售记录存储
type SaleStore interface {
	Create(s *entity.SaleRecord) error
	Delete(id string) error
	GetLatestByOrder(orderID string) (*entity.SaleRecord, error)
	Update(s *entity.SaleRecord) error
	List() ([]entity.SaleRecord, error)
}

// MaterialStore 材料目录读取
type MaterialStore interface {
	Get(id string) (*entity.Material, error)
}

// ModelStore 模型目录读取（含配方颜色）
type ModelStore interface {
	Get(id string) (*entity.Model, error)
}

// ChannelStore 销售渠道读取
type ChannelStore interface {
	Get(id string) (*entity.SalesChannel, error)
}
