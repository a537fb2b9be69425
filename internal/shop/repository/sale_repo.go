package repository

import (
	"github.com/fabioferrero90/strabello-manager/internal/shop/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SaleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

func (r *SaleRepository) Create(s *entity.SaleRecord) error {
	return r.db.Create(s).Error
}

// Delete 物理删除，销售记录的插入可能被补偿事务撤销
func (r *SaleRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sale_id = ?", id).Delete(&entity.SaleExtraCost{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sale_id = ?", id).Delete(&entity.SaleAccountCost{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.SaleRecord{}).Error
	})
}

func (r *SaleRepository) GetLatestByOrder(orderID string) (*entity.SaleRecord, error) {
	var s entity.SaleRecord
	err := r.db.Preload("ExtraCosts").Preload("CostByAccount").
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Update 售后批次重归属会改写成本/利润字段并整体重建账户归属行
func (r *SaleRepository) Update(s *entity.SaleRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(s).Error; err != nil {
			return err
		}
		if err := tx.Where("sale_id = ?", s.ID).Delete(&entity.SaleAccountCost{}).Error; err != nil {
			return err
		}
		if len(s.CostByAccount) > 0 {
			if err := tx.Create(&s.CostByAccount).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SaleRepository) List() ([]entity.SaleRecord, error) {
	var sales []entity.SaleRecord
	err := r.db.Preload("ExtraCosts").Preload("CostByAccount").
		Order("created_at DESC").
		Find(&sales).Error
	return sales, err
}
