package entity

import (
	"time"
)

// Material 耗材目录条目（品牌+类型+颜色），本身不可消耗
type Material struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Brand     string     `json:"brand" gorm:"size:64;not null"`
	Type      string     `json:"type" gorm:"size:32;not null"` // PLA, PETG, ABS, TPU
	Color     string     `json:"color" gorm:"size:64;not null"`
	Code      string     `json:"code" gorm:"size:4;index"` // 4位数字编码，用于SKU派生
	CostPerKg float64    `json:"cost_per_kg" gorm:"type:decimal(12,4);default:0"` // 名义价格，仅预览回退用
	CreatedBy string     `json:"created_by" gorm:"size:64"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at" gorm:"index"`
}

func (Material) TableName() string {
	return "shop_materials"
}
