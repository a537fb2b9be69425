package entity

import (
	"time"
)

// Accessory 配件目录条目（磁铁、挂钩、包装盒等）
type Accessory struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name      string     `json:"name" gorm:"size:128;not null"`
	CreatedBy string     `json:"created_by" gorm:"size:64"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at" gorm:"index"`
}

func (Accessory) TableName() string {
	return "shop_accessories"
}

// AccessoryLot 配件采购批次，FIFO消耗（CreatedAt最早的先用）
type AccessoryLot struct {
	ID              string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	AccessoryID     string    `json:"accessory_id" gorm:"type:uuid;not null;index"`
	RemainingQty    int       `json:"remaining_qty" gorm:"not null;default:0"`
	UnitCost        float64   `json:"unit_cost" gorm:"type:decimal(12,4);not null"`
	PurchaseAccount string    `json:"purchase_account" gorm:"size:64"`
	CreatedBy       string    `json:"created_by" gorm:"size:64"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Accessory *Accessory `json:"accessory,omitempty" gorm:"foreignKey:AccessoryID"`
}

func (AccessoryLot) TableName() string {
	return "shop_accessory_lots"
}

// AccessoryUsage 配件消耗台账，每个实际扣减的批次一行
type AccessoryUsage struct {
	ID              string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	OrderID         string    `json:"order_id" gorm:"type:uuid;not null;index"`
	AccessoryID     string    `json:"accessory_id" gorm:"type:uuid;not null"`
	LotID           string    `json:"lot_id" gorm:"type:uuid;not null"`
	QuantityUsed    int       `json:"quantity_used" gorm:"not null"`
	UnitCostAtUse   float64   `json:"unit_cost_at_use" gorm:"type:decimal(12,4);not null"`
	PurchaseAccount string    `json:"purchase_account" gorm:"size:64"`
	CreatedAt       time.Time `json:"created_at"`
}

func (AccessoryUsage) TableName() string {
	return "shop_accessory_usages"
}
