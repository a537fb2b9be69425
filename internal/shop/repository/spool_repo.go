package repository

import (
	"time"

	"github.com/fabioferrero90/strabello-manager/internal/shop/entity"
	"gorm.io/gorm"
)

type SpoolRepository struct {
	db *gorm.DB
}

func NewSpoolRepository(db *gorm.DB) *SpoolRepository {
	return &SpoolRepository{db: db}
}

func (r *SpoolRepository) Create(s *entity.Spool) error {
	return r.db.Create(s).Error
}

// ListByMaterial 返回某材料的全部在库料卷，入库时间升序
func (r *SpoolRepository) ListByMaterial(materialID string) ([]entity.Spool, error) {
	var spools []entity.Spool
	err := r.db.Where("material_id = ? AND deleted_at IS NULL", materialID).
		Order("created_at ASC").
		Find(&spools).Error
	return spools, err
}

func (r *SpoolRepository) ListAll() ([]entity.Spool, error) {
	var spools []entity.Spool
	err := r.db.Preload("Material").
		Where("deleted_at IS NULL").
		Order("created_at ASC").
		Find(&spools).Error
	return spools, err
}

// ListLow 剩余量低于阈值的料卷（不含已耗尽待丢弃的零头自行判断）
func (r *SpoolRepository) ListLow(thresholdGrams float64) ([]entity.Spool, error) {
	var spools []entity.Spool
	err := r.db.Preload("Material").
		Where("remaining_grams < ? AND deleted_at IS NULL", thresholdGrams).
		Order("remaining_grams ASC").
		Find(&spools).Error
	return spools, err
}

func (r *SpoolRepository) Get(id string) (*entity.Spool, error) {
	var s entity.Spool
	err := r.db.Where("id = ? AND deleted_at IS NULL", id).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SpoolRepository) UpdateRemaining(id string, grams float64) error {
	return r.db.Model(&entity.Spool{}).
		Where("id = ?", id).
		Update("remaining_grams", grams).Error
}

func (r *SpoolRepository) Delete(id string) error {
	return r.db.Model(&entity.Spool{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", time.Now()).Error
}
