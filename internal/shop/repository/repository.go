package repository

import "gorm.io/gorm"

// Repositories 车间仓库集合
type Repositories struct {
	Material     *MaterialRepository
	Model        *ModelRepository
	Accessory    *AccessoryRepository
	AccessoryLot *AccessoryLotRepository
	Spool        *SpoolRepository
	Order        *OrderRepository
	Sale         *SaleRepository
	Channel      *ChannelRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Material:     NewMaterialRepository(db),
		Model:        NewModelRepository(db),
		Accessory:    NewAccessoryRepository(db),
		AccessoryLot: NewAccessoryLotRepository(db),
		Spool:        NewSpoolRepository(db),
		Order:        NewOrderRepository(db),
		Sale:         NewSaleRepository(db),
		Channel:      NewChannelRepository(db),
	}
}
