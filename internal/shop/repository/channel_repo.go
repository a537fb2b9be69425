package repository

import (
	"time"

	"github.com/fabioferrero90/strabello-manager/internal/shop/entity"
	"gorm.io/gorm"
)

type ChannelRepository struct {
	db *gorm.DB
}

func NewChannelRepository(db *gorm.DB) *ChannelRepository {
	return &ChannelRepository{db: db}
}

func (r *ChannelRepository) Create(c *entity.SalesChannel) error {
	return r.db.Create(c).Error
}

func (r *ChannelRepository) Get(id string) (*entity.SalesChannel, error) {
	var c entity.SalesChannel
	err := r.db.Where("id = ? AND deleted_at IS NULL", id).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ChannelRepository) List() ([]entity.SalesChannel, error) {
	var items []entity.SalesChannel
	err := r.db.Where("deleted_at IS NULL").Order("name ASC").Find(&items).Error
	return items, err
}

func (r *ChannelRepository) Delete(id string) error {
	return r.db.Model(&entity.SalesChannel{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", time.Now()).Error
}
