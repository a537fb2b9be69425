package entity

import (
	"time"
)

// OrderStatus 生产订单状态
const (
	OrderStatusQueued    = "QUEUED"
	OrderStatusPrinting  = "PRINTING"
	OrderStatusAvailable = "AVAILABLE"
	OrderStatusSold      = "SOLD"
)

// ProductionOrder 生产订单，始终对应一个实物单件
type ProductionOrder struct {
	ID             string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ModelID        string     `json:"model_id" gorm:"type:uuid;not null;index"`
	ModelName      string     `json:"model_name" gorm:"size:128"`
	SKU            string     `json:"sku" gorm:"size:64;not null;index"`
	Status         string     `json:"status" gorm:"size:16;not null;default:QUEUED"`
	QueueOrder     int        `json:"queue_order" gorm:"default:0"` // 仅排队/打印中有意义
	Prioritized    bool       `json:"prioritized" gorm:"default:false"`
	ProductionCost float64    `json:"production_cost" gorm:"type:decimal(12,2);not null"` // 消耗时刻的成本快照
	Notes          string     `json:"notes" gorm:"type:text"`
	CreatedBy      string     `json:"created_by" gorm:"size:64"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"deleted_at" gorm:"index"`

	Materials  []OrderMaterial  `json:"materials,omitempty" gorm:"foreignKey:OrderID"`
	ExtraCosts []OrderExtraCost `json:"extra_costs,omitempty" gorm:"foreignKey:OrderID"`
}

func (ProductionOrder) TableName() string {
	return "shop_production_orders"
}

// OrderMaterial 订单的材料归属行：每个必需颜色一行（单材料配方固定为槽位1）。
// 价格和采购账户是消耗时刻的快照，仅通过编辑重算变动。
type OrderMaterial struct {
	ID              string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	OrderID         string    `json:"order_id" gorm:"type:uuid;not null;index"`
	ColorIndex      int       `json:"color" gorm:"not null"` // 1..4
	MaterialID      string    `json:"material_id" gorm:"type:uuid;not null"`
	SpoolID         string    `json:"lot_id" gorm:"type:uuid;not null"`
	GramsUsed       float64   `json:"grams_used" gorm:"type:decimal(12,4);not null"`
	PricePerKgAtUse float64   `json:"price_per_kg_at_use" gorm:"type:decimal(12,4);not null"`
	PurchaseAccount string    `json:"purchase_account" gorm:"size:64"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (OrderMaterial) TableName() string {
	return "shop_order_materials"
}

// QueueAssignment 队列重排时一行的新序号，批量落库用
type QueueAssignment struct {
	OrderID    string
	QueueOrder int
}

// OrderExtraCost 订单附加生产成本
type OrderExtraCost struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	OrderID   string    `json:"order_id" gorm:"type:uuid;not null;index"`
	Amount    float64   `json:"amount" gorm:"type:decimal(12,2);not null"`
	Note      string    `json:"note" gorm:"size:255"`
	CreatedAt time.Time `json:"created_at"`
}

func (OrderExtraCost) TableName() string {
	return "shop_order_extra_costs"
}
