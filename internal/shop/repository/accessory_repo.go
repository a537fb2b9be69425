package repository

import (
	"time"

	"github.com/fabioferrero90/strabello-manager/internal/shop/entity"
	"gorm.io/gorm"
)

type AccessoryRepository struct {
	db *gorm.DB
}

func NewAccessoryRepository(db *gorm.DB) *AccessoryRepository {
	return &AccessoryRepository{db: db}
}

func (r *AccessoryRepository) Create(a *entity.Accessory) error {
	return r.db.Create(a).Error
}

func (r *AccessoryRepository) Get(id string) (*entity.Accessory, error) {
	var a entity.Accessory
	err := r.db.Where("id = ? AND deleted_at IS NULL", id).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccessoryRepository) List() ([]entity.Accessory, error) {
	var items []entity.Accessory
	err := r.db.Where("deleted_at IS NULL").Order("name ASC").Find(&items).Error
	return items, err
}

func (r *AccessoryRepository) Delete(id string) error {
	return r.db.Model(&entity.Accessory{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", time.Now()).Error
}

type AccessoryLotRepository struct {
	db *gorm.DB
}

func NewAccessoryLotRepository(db *gorm.DB) *AccessoryLotRepository {
	return &AccessoryLotRepository{db: db}
}

func (r *AccessoryLotRepository) Create(lot *entity.AccessoryLot) error {
	return r.db.Create(lot).Error
}

// ListByAccessory 按入库时间升序返回批次，分配按FIFO消耗
func (r *AccessoryLotRepository) ListByAccessory(accessoryID string) ([]entity.AccessoryLot, error) {
	var lots []entity.AccessoryLot
	err := r.db.Where("accessory_id = ?", accessoryID).
		Order("created_at ASC").
		Find(&lots).Error
	return lots, err
}

func (r *AccessoryLotRepository) Get(id string) (*entity.AccessoryLot, error) {
	var lot entity.AccessoryLot
	err := r.db.Where("id = ?", id).First(&lot).Error
	if err != nil {
		return nil, err
	}
	return &lot, nil
}

func (r *AccessoryLotRepository) UpdateRemaining(id string, qty int) error {
	return r.db.Model(&entity.AccessoryLot{}).
		Where("id = ?", id).
		Update("remaining_qty", qty).Error
}
