package repository

import (
	"time"

	"github.com/fabioferrero90/strabello-manager/internal/shop/entity"
	"gorm.io/gorm"
)

type MaterialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

func (r *MaterialRepository) Create(m *entity.Material) error {
	return r.db.Create(m).Error
}

func (r *MaterialRepository) Get(id string) (*entity.Material, error) {
	var m entity.Material
	err := r.db.Where("id = ? AND deleted_at IS NULL", id).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MaterialRepository) List() ([]entity.Material, error) {
	var items []entity.Material
	err := r.db.Where("deleted_at IS NULL").
		Order("brand ASC, type ASC, color ASC").
		Find(&items).Error
	return items, err
}

func (r *MaterialRepository) Update(m *entity.Material) error {
	return r.db.Save(m).Error
}

func (r *MaterialRepository) Delete(id string) error {
	return r.db.Model(&entity.Material{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", time.Now()).Error
}
