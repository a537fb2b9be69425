package service

import (
	"fmt"
	"time"

	"github.com/fabioferrero90/strabello-manager/internal/shop/entity"
	"github.com/fabioferrero90/strabello-manager/internal/shop/repository"
	"github.com/google/uuid"
)

// CatalogService 主数据维护：材料、模型、配件、渠道与批次录入。
// 这里只有简单CRUD，没有库存副作用；批次数量的变动一律走核心的
// 分配/补偿/恢复操作。
type CatalogService struct {
	materials *repository.MaterialRepository
	models    *repository.ModelRepository
	accs      *repository.AccessoryRepository
	spools    *repository.SpoolRepository
	lots      *repository.AccessoryLotRepository
	channels  *repository.ChannelRepository
}

func NewCatalogService(repos *repository.Repositories) *CatalogService {
	return &CatalogService{
		materials: repos.Material,
		models:    repos.Model,
		accs:      repos.Accessory,
		spools:    repos.Spool,
		lots:      repos.AccessoryLot,
		channels:  repos.Channel,
	}
}

// --- 材料 ---

type CreateMaterialRequest struct {
	Brand     string  `json:"brand" binding:"required"`
	Type      string  `json:"type" binding:"required"`
	Color     string  `json:"color" binding:"required"`
	Code      string  `json:"code" binding:"required,len=4,numeric"`
	CostPerKg float64 `json:"cost_per_kg" binding:"gte=0"`
}

func (s *CatalogService) CreateMaterial(req CreateMaterialRequest, operator string) (*entity.Material, error) {
	m := &entity.Material{
		ID:        uuid.New().String(),
		Brand:     req.Brand,
		Type:      req.Type,
		Color:     req.Color,
		Code:      req.Code,
		CostPerKg: req.CostPerKg,
		CreatedBy: operator,
	}
	if err := s.materials.Create(m); err != nil {
		return nil, fmt.Errorf("创建材料失败: %w", err)
	}
	return m, nil
}

func (s *CatalogService) ListMaterials() ([]entity.Material, error) {
	return s.materials.List()
}

type UpdateMaterialRequest struct {
	Brand     string  `json:"brand" binding:"required"`
	Type      string  `json:"type" binding:"required"`
	Color     string  `json:"color" binding:"required"`
	CostPerKg float64 `json:"cost_per_kg" binding:"gte=0"`
}

// UpdateMaterial 更新材料描述字段。编码不可改：历史订单的SKU是
// 下单时刻的快照，改编码只会让新旧SKU对不上。
func (s *CatalogService) UpdateMaterial(id string, req UpdateMaterialRequest) (*entity.Material, error) {
	m, err := s.materials.Get(id)
	if err != nil {
		return nil, fmt.Errorf("材料不存在: %w", err)
	}
	m.Brand = req.Brand
	m.Type = req.Type
	m.Color = req.Color
	m.CostPerKg = req.CostPerKg
	if err := s.materials.Update(m); err != nil {
		return nil, fmt.Errorf("更新材料失败: %w", err)
	}
	return m, nil
}

func (s *CatalogService) DeleteMaterial(id string) error {
	return s.materials.Delete(id)
}

// --- 模型 ---

type ModelColorInput struct {
	ColorIndex  int     `json:"color_index" binding:"required,min=1,max=4"`
	WeightGrams float64 `json:"weight_grams" binding:"gte=0"`
}

type CreateModelRequest struct {
	Name       string            `json:"name" binding:"required"`
	SKU        string            `json:"sku" binding:"required"`
	RecipeType string            `json:"recipe_type" binding:"required,oneof=SINGLE MULTI"`
	WeightKg   float64           `json:"weight_kg" binding:"gte=0"`
	Colors     []ModelColorInput `json:"colors"`
}

func (s *CatalogService) CreateModel(req CreateModelRequest, operator string) (*entity.Model, error) {
	m := &entity.Model{
		ID:         uuid.New().String(),
		Name:       req.Name,
		SKU:        req.SKU,
		RecipeType: req.RecipeType,
		WeightKg:   req.WeightKg,
		CreatedBy:  operator,
	}
	for _, c := range req.Colors {
		m.Colors = append(m.Colors, entity.ModelColor{
			ID:          uuid.New().String(),
			ModelID:     m.ID,
			ColorIndex:  c.ColorIndex,
			WeightGrams: c.WeightGrams,
		})
	}
	// 配方必须在入库前就是合法的
	if _, err := RecipeFromModel(m); err != nil {
		return nil, err
	}
	if err := s.models.Create(m); err != nil {
		return nil, fmt.Errorf("创建模型失败: %w", err)
	}
	return m, nil
}

func (s *CatalogService) ListModels() ([]entity.Model, error) {
	return s.models.List()
}

func (s *CatalogService) GetModel(id string) (*entity.Model, error) {
	return s.models.Get(id)
}

func (s *CatalogService) DeleteModel(id string) error {
	return s.models.Delete(id)
}

// --- 配件 ---

type CreateAccessoryRequest struct {
	Name string `json:"name" binding:"required"`
}

func (s *CatalogService) CreateAccessory(req CreateAccessoryRequest, operator string) (*entity.Accessory, error) {
	a := &entity.Accessory{
		ID:        uuid.New().String(),
		Name:      req.Name,
		CreatedBy: operator,
	}
	if err := s.accs.Create(a); err != nil {
		return nil, fmt.Errorf("创建配件失败: %w", err)
	}
	return a, nil
}

func (s *CatalogService) ListAccessories() ([]entity.Accessory, error) {
	return s.accs.List()
}

// --- 料卷批次 ---

type AddSpoolRequest struct {
	MaterialID      string  `json:"material_id" binding:"required"`
	RemainingGrams  float64 `json:"remaining_grams" binding:"required,gt=0,lte=1000"`
	PricePerKg      float64 `json:"price_per_kg" binding:"required,gt=0"`
	PurchaseAccount string  `json:"purchase_account"`
	PurchasedFrom   string  `json:"purchased_from"`
}

func (s *CatalogService) AddSpool(req AddSpoolRequest, operator string) (*entity.Spool, error) {
	if _, err := s.materials.Get(req.MaterialID); err != nil {
		return nil, fmt.Errorf("材料不存在: %w", err)
	}
	sp := &entity.Spool{
		ID:              uuid.New().String(),
		MaterialID:      req.MaterialID,
		RemainingGrams:  req.RemainingGrams,
		PricePerKg:      req.PricePerKg,
		PurchaseAccount: req.PurchaseAccount,
		PurchasedFrom:   req.PurchasedFrom,
		CreatedBy:       operator,
	}
	if err := s.spools.Create(sp); err != nil {
		return nil, fmt.Errorf("创建料卷失败: %w", err)
	}
	return sp, nil
}

func (s *CatalogService) ListSpools(materialID string) ([]entity.Spool, error) {
	if materialID != "" {
		return s.spools.ListByMaterial(materialID)
	}
	return s.spools.ListAll()
}

// LowSpools 剩余量低于阈值的料卷预警
func (s *CatalogService) LowSpools(thresholdGrams float64) ([]entity.Spool, error) {
	return s.spools.ListLow(thresholdGrams)
}

func (s *CatalogService) DiscardSpool(id string) error {
	return s.spools.Delete(id)
}

// DefaultSpool 为一个材料需求提出默认料卷建议（操作员可覆盖）
func (s *CatalogService) DefaultSpool(materialID string, requiredGrams float64) (string, error) {
	spools, err := s.spools.ListByMaterial(materialID)
	if err != nil {
		return "", fmt.Errorf("读取料卷失败: %w", err)
	}
	id, ok := SelectDefaultSpool(materialID, requiredGrams, spools)
	if !ok {
		return "", fmt.Errorf("%w: 材料%s需要%.1fg", ErrInsufficientInventory, materialID, requiredGrams)
	}
	return id, nil
}

// --- 配件批次 ---

type AddAccessoryLotRequest struct {
	AccessoryID     string  `json:"accessory_id" binding:"required"`
	Qty             int     `json:"qty" binding:"required,gt=0"`
	UnitCost        float64 `json:"unit_cost" binding:"required,gt=0"`
	PurchaseAccount string  `json:"purchase_account"`
}

func (s *CatalogService) AddAccessoryLot(req AddAccessoryLotRequest, operator string) (*entity.AccessoryLot, error) {
	if _, err := s.accs.Get(req.AccessoryID); err != nil {
		return nil, fmt.Errorf("配件不存在: %w", err)
	}
	lot := &entity.AccessoryLot{
		ID:              uuid.New().String(),
		AccessoryID:     req.AccessoryID,
		RemainingQty:    req.Qty,
		UnitCost:        req.UnitCost,
		PurchaseAccount: req.PurchaseAccount,
		CreatedBy:       operator,
		CreatedAt:       time.Now(),
	}
	if err := s.lots.Create(lot); err != nil {
		return nil, fmt.Errorf("创建配件批次失败: %w", err)
	}
	return lot, nil
}

func (s *CatalogService) ListAccessoryLots(accessoryID string) ([]entity.AccessoryLot, error) {
	return s.lots.ListByAccessory(accessoryID)
}

// --- 销售渠道 ---

type CreateChannelRequest struct {
	Name               string  `json:"name" binding:"required"`
	FeeMode            string  `json:"fee_mode" binding:"required,oneof=FIXED PERCENT"`
	FixedFee           float64 `json:"fixed_fee" binding:"gte=0"`
	PromotionPct       float64 `json:"promotion_pct" binding:"gte=0,lte=100"`
	PctBase            string  `json:"pct_base" binding:"omitempty,oneof=GROSS NET"`
	PackagingCost      float64 `json:"packaging_cost" binding:"gte=0"`
	AdministrativeCost float64 `json:"administrative_cost" binding:"gte=0"`
	DefaultVatRate     float64 `json:"default_vat_rate" binding:"gte=0"`
}

func (s *CatalogService) CreateChannel(req CreateChannelRequest, operator string) (*entity.SalesChannel, error) {
	pctBase := req.PctBase
	if pctBase == "" {
		pctBase = entity.PctBaseGross
	}
	ch := &entity.SalesChannel{
		ID:                 uuid.New().String(),
		Name:               req.Name,
		FeeMode:            req.FeeMode,
		FixedFee:           req.FixedFee,
		PromotionPct:       req.PromotionPct,
		PctBase:            pctBase,
		PackagingCost:      req.PackagingCost,
		AdministrativeCost: req.AdministrativeCost,
		DefaultVatRate:     req.DefaultVatRate,
		CreatedBy:          operator,
	}
	if err := s.channels.Create(ch); err != nil {
		return nil, fmt.Errorf("创建销售渠道失败: %w", err)
	}
	return ch, nil
}

func (s *CatalogService) ListChannels() ([]entity.SalesChannel, error) {
	return s.channels.List()
}
