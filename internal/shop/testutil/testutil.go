// Package testutil provides an in-memory store fake and HTTP helpers so
// service and handler tests can run without postgres or redis.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"time"

	"github.com/fabioferrero90/strabello-manager/internal/middleware"
	"github.com/fabioferrero90/strabello-manager/internal/shop/entity"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const JWTSecret = "strabello-test-jwt-secret"

// MemStore is an in-memory implementation of the service store interfaces.
// Fail lets tests inject a write failure for a named operation, e.g.
// "spool.update:<id>", "order.create", "usages.create", "sale.create".
type MemStore struct {
	mu sync.Mutex

	Spools    map[string]*entity.Spool
	Lots      map[string]*entity.AccessoryLot
	Orders    map[string]*entity.ProductionOrder
	Usages    []entity.AccessoryUsage
	Sales     map[string]*entity.SaleRecord
	Materials map[string]*entity.Material
	Models    map[string]*entity.Model
	Channels  map[string]*entity.SalesChannel

	Fail map[string]error
}

func NewMemStore() *MemStore {
	return &MemStore{
		Spools:    make(map[string]*entity.Spool),
		Lots:      make(map[string]*entity.AccessoryLot),
		Orders:    make(map[string]*entity.ProductionOrder),
		Sales:     make(map[string]*entity.SaleRecord),
		Materials: make(map[string]*entity.Material),
		Models:    make(map[string]*entity.Model),
		Channels:  make(map[string]*entity.SalesChannel),
		Fail:      make(map[string]error),
	}
}

func (m *MemStore) failFor(op string) error {
	if err, ok := m.Fail[op]; ok {
		return err
	}
	return nil
}

// SpoolView exposes the MemStore as a SpoolStore. The store interfaces
// collide on Get/UpdateRemaining, so each one gets its own thin view.
type SpoolView struct{ M *MemStore }

func (v SpoolView) ListByMaterial(materialID string) ([]entity.Spool, error) {
	v.M.mu.Lock()
	defer v.M.mu.Unlock()
	var out []entity.Spool
	for _, s := range v.M.Spools {
		if s.MaterialID == materialID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (v SpoolView) Get(id string) (*entity.Spool, error) {
	v.M.mu.Lock()
	defer v.M.mu.Unlock()
	s, ok := v.M.Spools[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (v SpoolView) UpdateRemaining(id string, grams float64) error {
	v.M.mu.Lock()
	defer v.M.mu.Unlock()
	if err := v.M.failFor("spool.update:" + id); err != nil {
		return err
	}
	s, ok := v.M.Spools[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.RemainingGrams = grams
	return nil
}

// LotView exposes the MemStore as an AccessoryLotStore.
type LotView struct{ M *MemStore }

func (v LotView) ListByAccessory(accessoryID string) ([]entity.AccessoryLot, error) {
	v.M.mu.Lock()
	defer v.M.mu.Unlock()
	var out []entity.AccessoryLot
	for _, l := range v.M.Lots {
		if l.AccessoryID == accessoryID {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (v LotView) Get(id string) (*entity.AccessoryLot, error) {
	v.M.mu.Lock()
	defer v.M.mu.Unlock()
	l, ok := v.M.Lots[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *l
	return &cp, nil
}

func (v LotView) UpdateRemaining(id string, qty int) error {
	v.M.mu.Lock()
	defer v.M.mu.Unlock()
	if err := v.M.failFor("lot.update:" + id); err != nil {
		return err
	}
	l, ok := v.M.Lots[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	l.RemainingQty = qty
	return nil
}

// OrderView exposes the MemStore as an OrderStore.
type OrderView struct{ M *MemStore }

func copyOrder(o *entity.ProductionOrder) *entity.ProductionOrder {
	cp := *o
	cp.Materials = append([]entity.OrderMaterial(nil), o.Materials...)
	cp.ExtraCosts = append([]entity.OrderExtraCost(nil), o.ExtraCosts...)
	return &cp
}

func (v OrderView) Get(id string) (*entity.ProductionOrder, error) {
	v.M.mu.Lock()
	defer v.M.mu.Unlock()
	o, ok := v.M.Orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return copyOrder(o), nil
}

func (v OrderView) ListActive() ([]entity.ProductionOrder, error) {
	v.M.mu.Lock()
	defer v.M.mu.Unlock()
	var out []entity.ProductionOrder
	for _, o := range v.M.Orders {
		if o.Status == entity.OrderStatusQueued || o.Status == entity.OrderStatusPrinting {
			out = append(out, *copyOrder(o))
		}
	}
	return out, nil
}

func (v OrderView) ListByStatus(status string) ([]entity.ProductionOrder, error) {
	v.M.mu.Lock()
	defer v.M.mu.Unlock()
	var out []entity.ProductionOrder
	for _, o := range v.M.Orders {
		if o.Status == status {
			out = append(out, *copyOrder(o))
		}
	}
	return out, nil
}

func (v OrderView) Create(o *entity.ProductionOrder) error {
	v.M.mu.Lock()
	defer v.M.mu.Unlock()
	if err := v.M.failFor("order.create"); err != nil {
		return err
	}
	v.M.Orders[o.ID] = copyOrder(o)
	return nil
}

func (v OrderView) Update(o *entity.ProductionOrder) error {
	v.M.mu.Lock()
	defer v.M.mu.Unlock()
	if err := v.M.failFor("order.update"); err != nil {
		return err
	}
	stored, ok := v.M.Orders[o.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	// row update only, attribution rows go through UpdateMaterialRow
	materials, extras := stored.Materials, stored.ExtraCosts
	cp := *o
	cp.Materials, cp.ExtraCosts = materials, extras
	v.M.Orders[o.ID] = &cp
	return nil
}

func (v OrderView) UpdateMaterialRow(row *entity.OrderMaterial) error {
	v.M.mu.Lock()
	defer v.M.mu.Unlock()
	if err := v.M.failFor("order.material:" + row.ID); err != nil {
		return err
	}
	o, ok := v.M.Orders[row.OrderID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range o.Materials {
		if o.Materials[i].ID == row.ID {
			o.Materials[i] = *row
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (v OrderView) UpdateQueueOrders(assignments []entity.QueueAssignment) error {
	v.M.mu.Lock()
	defer v.M.mu.Unlock()
	if err := v.M.failFor("order.queue"); err != nil {
		return err
	}
	for _, a := range assignments {
		o, ok := v.M.Orders[a.OrderID]
		if !ok {
			return gorm.ErrRecordNotFound
		}
		o.QueueOrder = a.QueueOrder
	}
	return nil
}

func (v OrderView) Delete(id string) error {
	v.M.mu.Lock()
	defer v.M.mu.Unlock()
	if err := v.M.failFor("order.delete"); err != nil {
		return err
	}
	delete(v.M.Orders, id)
	return nil
}

func (v OrderView) MaxActiveQueueOrder() (int, error) {
	v.M.mu.Lock()
	defer v.M.mu.Unlock()
	max := 0
	for _, o := range v.M.Orders {
		if (o.Status == entity.OrderStatusQueued || o.Status == entity.OrderStatusPrinting) && o.QueueOrder > max {
			max = o.QueueOrder
		}
	}
	return max, nil
}

func (v OrderView) CreateUsages(usages []entity.AccessoryUsage) error {
	v.M.mu.Lock()
	defer v.M.mu.Unlock()
	if err := v.M.failFor("usages.create"); err != nil {
		return err
	}
	v.M.Usages = append(v.M.Usages, usages...)
	return nil
}

func (v OrderView) DeleteUsagesByOrder(orderID string) error {
	v.M.mu.Lock()
	defer v.M.mu.Unlock()
	if err := v.M.failFor("usages.delete"); err != nil {
		return err
	}
	kept := v.M.Usages[:0]
	for _, u := range v.M.Usages {
		if u.OrderID != orderID {
			kept = append(kept, u)
		}
	}
	v.M.Usages = kept
	return nil
}

func (v OrderView) ListUsagesByOrder(orderID string) ([]entity.AccessoryUsage, error) {
	v.M.mu.Lock()
	defer v.M.mu.Unlock()
	var out []entity.AccessoryUsage
	for _, u := range v.M.Usages {
		if u.OrderID == orderID {
			out = append(out, u)
		}
	}
	return out, nil
}

// SaleView exposes the MemStore as a SaleStore.
type SaleView struct{ M *MemStore }

func copySale(s *entity.SaleRecord) *entity.SaleRecord {
	cp := *s
	cp.ExtraCosts = append([]entity.SaleExtraCost(nil), s.ExtraCosts...)
	cp.CostByAccount = append([]entity.SaleAccountCost(nil), s.CostByAccount...)
	return &cp
}

func (v SaleView) Create(s *entity.SaleRecord) error {
	v.M.mu.Lock()
	defer v.M.mu.Unlock()
	if err := v.M.failFor("sale.create"); err != nil {
		return err
	}
	v.M.Sales[s.ID] = copySale(s)
	return nil
}

func (v SaleView) Delete(id string) error {
	v.M.mu.Lock()
	defer v.M.mu.Unlock()
	delete(v.M.Sales, id)
	return nil
}

func (v SaleView) GetLatestByOrder(orderID string) (*entity.SaleRecord, error) {
	v.M.mu.Lock()
	defer v.M.mu.Unlock()
	var latest *entity.SaleRecord
	for _, s := range v.M.Sales {
		if s.OrderID != orderID {
			continue
		}
		if latest == nil || s.CreatedAt.After(latest.CreatedAt) {
			latest = s
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return copySale(latest), nil
}

func (v SaleView) Update(s *entity.SaleRecord) error {
	v.M.mu.Lock()
	defer v.M.mu.Unlock()
	if err := v.M.failFor("sale.update"); err != nil {
		return err
	}
	if _, ok := v.M.Sales[s.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	v.M.Sales[s.ID] = copySale(s)
	return nil
}

func (v SaleView) List() ([]entity.SaleRecord, error) {
	v.M.mu.Lock()
	defer v.M.mu.Unlock()
	var out []entity.SaleRecord
	for _, s := range v.M.Sales {
		out = append(out, *copySale(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// MaterialView exposes the MemStore as a MaterialStore.
type MaterialView struct{ M *MemStore }

func (v MaterialView) Get(id string) (*entity.Material, error) {
	v.M.mu.Lock()
	defer v.M.mu.Unlock()
	m, ok := v.M.Materials[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m
	return &cp, nil
}

// ModelView exposes the MemStore as a ModelStore.
type ModelView struct{ M *MemStore }

func (v ModelView) Get(id string) (*entity.Model, error) {
	v.M.mu.Lock()
	defer v.M.mu.Unlock()
	m, ok := v.M.Models[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m
	cp.Colors = append([]entity.ModelColor(nil), m.Colors...)
	return &cp, nil
}

// ChannelView exposes the MemStore as a ChannelStore.
type ChannelView struct{ M *MemStore }

func (v ChannelView) Get(id string) (*entity.SalesChannel, error) {
	v.M.mu.Lock()
	defer v.M.mu.Unlock()
	c, ok := v.M.Channels[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

// --- seed helpers ---

func (m *MemStore) SeedMaterial(brand, typ, color, code string, costPerKg float64) *entity.Material {
	mat := &entity.Material{
		ID:        uuid.New().String(),
		Brand:     brand,
		Type:      typ,
		Color:     color,
		Code:      code,
		CostPerKg: costPerKg,
		CreatedAt: time.Now(),
	}
	m.Materials[mat.ID] = mat
	return mat
}

func (m *MemStore) SeedSpool(materialID string, remainingGrams, pricePerKg float64, account string) *entity.Spool {
	sp := &entity.Spool{
		ID:              uuid.New().String(),
		MaterialID:      materialID,
		RemainingGrams:  remainingGrams,
		PricePerKg:      pricePerKg,
		PurchaseAccount: account,
		CreatedAt:       time.Now(),
	}
	m.Spools[sp.ID] = sp
	return sp
}

func (m *MemStore) SeedSingleModel(name, sku string, weightKg float64) *entity.Model {
	mod := &entity.Model{
		ID:         uuid.New().String(),
		Name:       name,
		SKU:        sku,
		RecipeType: entity.RecipeTypeSingle,
		WeightKg:   weightKg,
		CreatedAt:  time.Now(),
	}
	m.Models[mod.ID] = mod
	return mod
}

func (m *MemStore) SeedMultiModel(name, sku string, gramsByColor map[int]float64) *entity.Model {
	mod := &entity.Model{
		ID:         uuid.New().String(),
		Name:       name,
		SKU:        sku,
		RecipeType: entity.RecipeTypeMulti,
		CreatedAt:  time.Now(),
	}
	for color, grams := range gramsByColor {
		mod.Colors = append(mod.Colors, entity.ModelColor{
			ID:          uuid.New().String(),
			ModelID:     mod.ID,
			ColorIndex:  color,
			WeightGrams: grams,
		})
	}
	sort.Slice(mod.Colors, func(i, j int) bool { return mod.Colors[i].ColorIndex < mod.Colors[j].ColorIndex })
	m.Models[mod.ID] = mod
	return mod
}

func (m *MemStore) SeedAccessoryLot(accessoryID string, qty int, unitCost float64, account string, createdAt time.Time) *entity.AccessoryLot {
	lot := &entity.AccessoryLot{
		ID:              uuid.New().String(),
		AccessoryID:     accessoryID,
		RemainingQty:    qty,
		UnitCost:        unitCost,
		PurchaseAccount: account,
		CreatedAt:       createdAt,
	}
	m.Lots[lot.ID] = lot
	return lot
}

func (m *MemStore) SeedChannel(name, feeMode string, fixedFee, pct float64, pctBase string, packaging, admin, vatRate float64) *entity.SalesChannel {
	ch := &entity.SalesChannel{
		ID:                 uuid.New().String(),
		Name:               name,
		FeeMode:            feeMode,
		FixedFee:           fixedFee,
		PromotionPct:       pct,
		PctBase:            pctBase,
		PackagingCost:      packaging,
		AdministrativeCost: admin,
		DefaultVatRate:     vatRate,
		CreatedAt:          time.Now(),
	}
	m.Channels[ch.ID] = ch
	return ch
}

// --- HTTP helpers ---

// SetupRouter creates a gin test router
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	return r
}

// AuthGroup creates an API group with JWT auth middleware for testing
func AuthGroup(r *gin.Engine, path string) *gin.RouterGroup {
	return r.Group(path, middleware.JWTAuth(JWTSecret))
}

// TestToken creates a valid JWT token for the given operator
func TestToken(operator string) string {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      operator,
		"operator": operator,
		"iss":      "strabello-manager",
		"iat":      now.Unix(),
		"exp":      now.Add(24 * time.Hour).Unix(),
		"jti":      fmt.Sprintf("test-jti-%d", now.UnixNano()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(JWTSecret))
	return tokenString
}

// DoRequest executes an HTTP request against the test router
func DoRequest(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse parses the JSON response body into a map
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}
