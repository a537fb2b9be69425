package entity

import (
	"time"
)

// SpoolFullGrams 整卷料的标称重量
const SpoolFullGrams = 1000.0

// Spool 料卷库存批次，剩余克数只能通过核心的扣减/恢复操作变动
type Spool struct {
	ID              string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	MaterialID      string     `json:"material_id" gorm:"type:uuid;not null;index"`
	RemainingGrams  float64    `json:"remaining_grams" gorm:"type:decimal(12,4);not null;default:1000"` // 0..1000
	PricePerKg      float64    `json:"price_per_kg" gorm:"type:decimal(12,4);not null"`
	PurchaseAccount string     `json:"purchase_account" gorm:"size:64"`
	PurchasedFrom   string     `json:"purchased_from" gorm:"size:128"`
	CreatedBy       string     `json:"created_by" gorm:"size:64"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	DeletedAt       *time.Time `json:"deleted_at" gorm:"index"`

	Material *Material `json:"material,omitempty" gorm:"foreignKey:MaterialID"`
}

func (Spool) TableName() string {
	return "shop_spools"
}
