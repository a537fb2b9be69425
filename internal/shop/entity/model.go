package entity

import (
	"time"
)

// RecipeType 配方类型
const (
	RecipeTypeSingle = "SINGLE"
	RecipeTypeMulti  = "MULTI"
)

// Model 可打印模型及其材料配方
type Model struct {
	ID         string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name       string     `json:"name" gorm:"size:128;not null"`
	SKU        string     `json:"sku" gorm:"size:32;not null;uniqueIndex"`
	RecipeType string     `json:"recipe_type" gorm:"size:10;not null;default:SINGLE"`
	WeightKg   float64    `json:"weight_kg" gorm:"type:decimal(12,4);default:0"` // 单材料配方重量
	CreatedBy  string     `json:"created_by" gorm:"size:64"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `json:"deleted_at" gorm:"index"`

	Colors []ModelColor `json:"colors,omitempty" gorm:"foreignKey:ModelID"`
}

func (Model) TableName() string {
	return "shop_models"
}

// ModelColor 多材料配方的颜色槽位。槽位1-2必填，3-4仅在重量>0时存在
type ModelColor struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ModelID     string    `json:"model_id" gorm:"type:uuid;not null;index"`
	ColorIndex  int       `json:"color_index" gorm:"not null"` // 1..4
	WeightGrams float64   `json:"weight_grams" gorm:"type:decimal(12,4);not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (ModelColor) TableName() string {
	return "shop_model_colors"
}
