package repository

import (
	"github.com/fabioferrero90/strabello-manager/internal/shop/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Get(id string) (*entity.ProductionOrder, error) {
	var o entity.ProductionOrder
	err := r.db.Preload("Materials", func(db *gorm.DB) *gorm.DB {
		return db.Order("color_index ASC")
	}).Preload("ExtraCosts").
		Where("id = ? AND deleted_at IS NULL", id).
		First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// ListActive 排队中和打印中的订单，排序在服务层做
func (r *OrderRepository) ListActive() ([]entity.ProductionOrder, error) {
	var orders []entity.ProductionOrder
	err := r.db.Preload("Materials").Preload("ExtraCosts").
		Where("status IN ? AND deleted_at IS NULL",
			[]string{entity.OrderStatusQueued, entity.OrderStatusPrinting}).
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) ListByStatus(status string) ([]entity.ProductionOrder, error) {
	var orders []entity.ProductionOrder
	err := r.db.Preload("Materials").Preload("ExtraCosts").
		Where("status = ? AND deleted_at IS NULL", status).
		Order("updated_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) Create(o *entity.ProductionOrder) error {
	return r.db.Create(o).Error
}

// Update 只更新订单本行，材料行走UpdateMaterialRow
func (r *OrderRepository) Update(o *entity.ProductionOrder) error {
	return r.db.Omit(clause.Associations).Save(o).Error
}

func (r *OrderRepository) UpdateMaterialRow(m *entity.OrderMaterial) error {
	return r.db.Save(m).Error
}

// UpdateQueueOrders 一个事务里落全部N行的新序号
func (r *OrderRepository) UpdateQueueOrders(assignments []entity.QueueAssignment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, a := range assignments {
			if err := tx.Model(&entity.ProductionOrder{}).
				Where("id = ?", a.OrderID).
				Update("queue_order", a.QueueOrder).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete 连同材料行与附加成本行一起删除。
// 删除订单是补偿事务的一步，需要能用Create原样重建，所以是物理删除。
func (r *OrderRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&entity.OrderMaterial{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", id).Delete(&entity.OrderExtraCost{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.ProductionOrder{}).Error
	})
}

func (r *OrderRepository) MaxActiveQueueOrder() (int, error) {
	var result struct{ Max int }
	err := r.db.Raw(`
		SELECT COALESCE(MAX(queue_order), 0) as max
		FROM shop_production_orders
		WHERE status IN (?, ?) AND deleted_at IS NULL
	`, entity.OrderStatusQueued, entity.OrderStatusPrinting).Scan(&result).Error
	return result.Max, err
}

func (r *OrderRepository) CreateUsages(usages []entity.AccessoryUsage) error {
	if len(usages) == 0 {
		return nil
	}
	return r.db.Create(&usages).Error
}

func (r *OrderRepository) DeleteUsagesByOrder(orderID string) error {
	return r.db.Where("order_id = ?", orderID).Delete(&entity.AccessoryUsage{}).Error
}

func (r *OrderRepository) ListUsagesByOrder(orderID string) ([]entity.AccessoryUsage, error) {
	var usages []entity.AccessoryUsage
	err := r.db.Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&usages).Error
	return usages, err
}
