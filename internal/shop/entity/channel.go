package entity

import (
	"time"
)

// 渠道费用模式
const (
	FeeModeFixed   = "FIXED"   // 每单固定费用
	FeeModePercent = "PERCENT" // 按比例抽成
)

// 抽成基数
const (
	PctBaseGross = "GROSS" // 含税售价
	PctBaseNet   = "NET"   // 售价减去增值税
)

// SalesChannel 销售渠道配置（市集、电商平台、直销等）
type SalesChannel struct {
	ID                 string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name               string     `json:"name" gorm:"size:64;not null;uniqueIndex"`
	FeeMode            string     `json:"fee_mode" gorm:"size:10;not null;default:FIXED"`
	FixedFee           float64    `json:"fixed_fee" gorm:"type:decimal(12,2);default:0"`
	PromotionPct       float64    `json:"promotion_pct" gorm:"type:decimal(6,2);default:0"`
	PctBase            string     `json:"pct_base" gorm:"size:10;not null;default:GROSS"`
	PackagingCost      float64    `json:"packaging_cost" gorm:"type:decimal(12,2);default:0"`
	AdministrativeCost float64    `json:"administrative_cost" gorm:"type:decimal(12,2);default:0"`
	DefaultVatRate     float64    `json:"default_vat_rate" gorm:"type:decimal(6,2);default:0"`
	CreatedBy          string     `json:"created_by" gorm:"size:64"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	DeletedAt          *time.Time `json:"deleted_at" gorm:"index"`
}

func (SalesChannel) TableName() string {
	return "shop_sales_channels"
}
