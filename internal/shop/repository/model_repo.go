package repository

import (
	"time"

	"github.com/fabioferrero90/strabello-manager/internal/shop/entity"
	"gorm.io/gorm"
)

type ModelRepository struct {
	db *gorm.DB
}

func NewModelRepository(db *gorm.DB) *ModelRepository {
	return &ModelRepository{db: db}
}

func (r *ModelRepository) Create(m *entity.Model) error {
	return r.db.Create(m).Error
}

// Get 读取模型及其配方颜色槽位
func (r *ModelRepository) Get(id string) (*entity.Model, error) {
	var m entity.Model
	err := r.db.Preload("Colors", func(db *gorm.DB) *gorm.DB {
		return db.Order("color_index ASC")
	}).Where("id = ? AND deleted_at IS NULL", id).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *ModelRepository) List() ([]entity.Model, error) {
	var items []entity.Model
	err := r.db.Preload("Colors", func(db *gorm.DB) *gorm.DB {
		return db.Order("color_index ASC")
	}).Where("deleted_at IS NULL").Order("name ASC").Find(&items).Error
	return items, err
}

func (r *ModelRepository) Delete(id string) error {
	return r.db.Model(&entity.Model{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", time.Now()).Error
}
