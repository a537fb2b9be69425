package entity

import (
	"time"
)

// SaleRecord 销售结账快照。创建后不可变，仅售后批次重归属会修正成本/利润字段
type SaleRecord struct {
	ID                  string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	OrderID             string    `json:"order_id" gorm:"type:uuid;not null;index"`
	ChannelID           string    `json:"channel_id" gorm:"type:uuid;not null"`
	ChannelName         string    `json:"channel_name" gorm:"size:64"`
	SalePrice           float64   `json:"sale_price" gorm:"type:decimal(12,2);not null"` // 含税售价
	VatRate             float64   `json:"vat_rate" gorm:"type:decimal(6,2);not null"`
	VatAmount           float64   `json:"vat_amount" gorm:"type:decimal(12,2);not null"`
	ProductionCostBase  float64   `json:"production_cost_base" gorm:"type:decimal(12,2);not null"`
	TotalProductionCost float64   `json:"total_production_cost" gorm:"type:decimal(12,2);not null"`
	PackagingCost       float64   `json:"packaging_cost" gorm:"type:decimal(12,2);default:0"`
	AdministrativeCost  float64   `json:"administrative_cost" gorm:"type:decimal(12,2);default:0"`
	PromotionCost       float64   `json:"promotion_cost" gorm:"type:decimal(12,2);default:0"`
	TotalCosts          float64   `json:"total_costs" gorm:"type:decimal(12,2);not null"`
	Revenue             float64   `json:"revenue" gorm:"type:decimal(12,2);not null"`
	Profit              float64   `json:"profit" gorm:"type:decimal(12,2);not null"`
	CreatedBy           string    `json:"created_by" gorm:"size:64"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	ExtraCosts    []SaleExtraCost   `json:"extra_costs,omitempty" gorm:"foreignKey:SaleID"`
	CostByAccount []SaleAccountCost `json:"cost_by_account,omitempty" gorm:"foreignKey:SaleID"`
}

func (SaleRecord) TableName() string {
	return "shop_sale_records"
}

// SaleExtraCost 销售时的附加成本行
type SaleExtraCost struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	SaleID    string    `json:"sale_id" gorm:"type:uuid;not null;index"`
	Amount    float64   `json:"amount" gorm:"type:decimal(12,2);not null"`
	Note      string    `json:"note" gorm:"size:255"`
	CreatedAt time.Time `json:"created_at"`
}

func (SaleExtraCost) TableName() string {
	return "shop_sale_extra_costs"
}

// SaleAccountCost 按采购账户的生产成本归属，独立报表维度，不参与利润公式
type SaleAccountCost struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	SaleID    string    `json:"sale_id" gorm:"type:uuid;not null;index"`
	Account   string    `json:"account" gorm:"size:64;not null"`
	Amount    float64   `json:"amount" gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (SaleAccountCost) TableName() string {
	return "shop_sale_account_costs"
}
