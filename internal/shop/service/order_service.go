package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/fabioferrero90/strabello-manager/internal/shop/entity"
	"github.com/google/uuid"
)

// OrderService 生产订单编排：预览报价、下单（库存事务）、删除恢复、
// 批次改选重算。所有多步库存变更都走saga补偿纪律。
type OrderService struct {
	spools    SpoolStore
	lots      AccessoryLotStore
	orders    OrderStore
	sales     SaleStore
	materials MaterialStore
	models    ModelStore
	queue     *QueueService
}

func NewOrderService(spools SpoolStore, lots AccessoryLotStore, orders OrderStore, sales SaleStore, materials MaterialStore, models ModelStore, queue *QueueService) *OrderService {
	return &OrderService{spools: spools, lots: lots, orders: orders, sales: sales, materials: materials, models: models, queue: queue}
}

// LotSelectionInput 一个颜色槽位的材料/料卷选择
type LotSelectionInput struct {
	ColorIndex int    `json:"color"`
	MaterialID string `json:"material_id"`
	SpoolID    string `json:"lot_id"`
}

// ExtraCostInput 附加成本行
type ExtraCostInput struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Note   string  `json:"note"`
}

// CreateOrderRequest 下单/预览请求
type CreateOrderRequest struct {
	ModelID     string                  `json:"model_id" binding:"required"`
	Selections  []LotSelectionInput     `json:"selections"`
	Accessories []AccessoryRequestInput `json:"accessories"`
	ExtraCosts  []ExtraCostInput        `json:"extra_costs"`
	Prioritized bool                    `json:"prioritized"`
	Notes       string                  `json:"notes"`
}

// CostPreview 报价预览，只有合计取整
type CostPreview struct {
	MaterialCost  float64 `json:"material_cost"`
	AccessoryCost float64 `json:"accessory_cost"`
	Total         float64 `json:"total"`
}

// PreviewCost 报价预览。纯读：不碰任何批次，幂等。
// 未选料卷的颜色回退材料名义单价，仅供展示。
func (s *OrderService) PreviewCost(req CreateOrderRequest) (*CostPreview, error) {
	model, err := s.models.Get(req.ModelID)
	if err != nil {
		return nil, fmt.Errorf("模型不存在: %w", err)
	}
	recipe, err := RecipeFromModel(model)
	if err != nil {
		return nil, err
	}

	spoolByColor := make(map[int]*entity.Spool)
	nominal := make(map[int]float64)
	for _, sel := range req.Selections {
		if sel.SpoolID != "" {
			spool, err := s.spools.Get(sel.SpoolID)
			if err != nil {
				return nil, fmt.Errorf("料卷不存在: %w", err)
			}
			if sel.MaterialID != "" && spool.MaterialID != sel.MaterialID {
				return nil, fmt.Errorf("%w: 颜色槽位%d的料卷不属于所选材料", ErrValidation, sel.ColorIndex)
			}
			spoolByColor[sel.ColorIndex] = spool
			continue
		}
		if sel.MaterialID != "" {
			mat, err := s.materials.Get(sel.MaterialID)
			if err != nil {
				return nil, fmt.Errorf("材料不存在: %w", err)
			}
			nominal[sel.ColorIndex] = mat.CostPerKg
		}
	}

	matCost := PreviewMaterialCost(recipe, spoolByColor, nominal)

	var accCost float64
	if len(req.Accessories) > 0 {
		lotsByAccessory, err := s.loadAccessoryLots(req.Accessories)
		if err != nil {
			return nil, err
		}
		_, accCost, err = AllocateAccessories(req.Accessories, lotsByAccessory)
		if err != nil {
			return nil, err
		}
	}

	return &CostPreview{
		MaterialCost:  matCost,
		AccessoryCost: accCost,
		Total:         Round2(matCost + accCost),
	}, nil
}

// CreateOrder 下单。校验全部通过后以固定顺序执行库存事务：
// 1) 逐卷扣减材料 2) 按FIFO方案扣减配件批次 3) 插入订单 4) 插入消耗台账。
// 第k步失败时逆序用前像恢复第1..k-1步。
func (s *OrderService) CreateOrder(req CreateOrderRequest, operator string) (*entity.ProductionOrder, error) {
	model, err := s.models.Get(req.ModelID)
	if err != nil {
		return nil, fmt.Errorf("模型不存在: %w", err)
	}
	recipe, err := RecipeFromModel(model)
	if err != nil {
		return nil, err
	}
	need := recipe.RequiredGrams()

	// 校验阶段：任何写入前完成，失败零副作用
	selByColor := make(map[int]LotSelectionInput)
	for _, sel := range req.Selections {
		selByColor[sel.ColorIndex] = sel
	}

	type spoolPick struct {
		color int
		grams float64
		spool *entity.Spool
	}
	var picks []spoolPick
	spoolsByID := make(map[string]*entity.Spool)
	needBySpool := make(map[string]float64)
	var spoolIDs []string
	colors := SortedColors(recipe)
	for _, color := range colors {
		sel, ok := selByColor[color]
		if !ok || sel.SpoolID == "" {
			return nil, fmt.Errorf("%w: 颜色槽位%d", ErrMissingRequiredSelection, color)
		}
		spool, ok := spoolsByID[sel.SpoolID]
		if !ok {
			spool, err = s.spools.Get(sel.SpoolID)
			if err != nil {
				return nil, fmt.Errorf("料卷不存在: %w", err)
			}
			spoolsByID[spool.ID] = spool
			spoolIDs = append(spoolIDs, spool.ID)
		}
		if sel.MaterialID != "" && spool.MaterialID != sel.MaterialID {
			return nil, fmt.Errorf("%w: 颜色槽位%d的料卷不属于所选材料", ErrValidation, color)
		}
		grams := need[color]
		needBySpool[spool.ID] += grams
		picks = append(picks, spoolPick{color: color, grams: grams, spool: spool})
	}
	// 同一料卷可服务多个槽位：充足性按卷汇总校验，不按槽位
	for _, id := range spoolIDs {
		if spoolsByID[id].RemainingGrams < needBySpool[id] {
			return nil, fmt.Errorf("%w: 料卷%s需要%.1fg，剩余%.1fg", ErrInsufficientInventory, id, needBySpool[id], spoolsByID[id].RemainingGrams)
		}
	}

	// SKU派生：按槽位顺序拼材料编码
	var codes []string
	spoolByColor := make(map[int]*entity.Spool, len(picks))
	for _, p := range picks {
		mat, err := s.materials.Get(p.spool.MaterialID)
		if err != nil {
			return nil, fmt.Errorf("材料不存在: %w", err)
		}
		if mat.Code == "" {
			return nil, fmt.Errorf("%w: 材料%s", ErrMissingMaterialCode, mat.ID)
		}
		codes = append(codes, mat.Code)
		spoolByColor[p.color] = p.spool
	}
	sku, err := DeriveSKU(model.SKU, codes)
	if err != nil {
		return nil, err
	}

	// 配件FIFO方案（私有快照上计算）
	var plan []AccessoryDecrement
	var accCost float64
	if len(req.Accessories) > 0 {
		lotsByAccessory, err := s.loadAccessoryLots(req.Accessories)
		if err != nil {
			return nil, err
		}
		plan, accCost, err = AllocateAccessories(req.Accessories, lotsByAccessory)
		if err != nil {
			return nil, err
		}
	}

	matCost, err := MaterialCost(recipe, spoolByColor)
	if err != nil {
		return nil, err
	}

	maxQ, err := s.orders.MaxActiveQueueOrder()
	if err != nil {
		return nil, fmt.Errorf("读取队列序号失败: %w", err)
	}

	now := time.Now()
	order := &entity.ProductionOrder{
		ID:             uuid.New().String(),
		ModelID:        model.ID,
		ModelName:      model.Name,
		SKU:            sku,
		Status:         entity.OrderStatusQueued,
		QueueOrder:     maxQ + 1,
		Prioritized:    req.Prioritized,
		ProductionCost: Round2(matCost + accCost),
		Notes:          req.Notes,
		CreatedBy:      operator,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, p := range picks {
		order.Materials = append(order.Materials, entity.OrderMaterial{
			ID:              uuid.New().String(),
			OrderID:         order.ID,
			ColorIndex:      p.color,
			MaterialID:      p.spool.MaterialID,
			SpoolID:         p.spool.ID,
			GramsUsed:       p.grams,
			PricePerKgAtUse: p.spool.PricePerKg,
			PurchaseAccount: p.spool.PurchaseAccount,
		})
	}
	for _, ec := range req.ExtraCosts {
		order.ExtraCosts = append(order.ExtraCosts, entity.OrderExtraCost{
			ID:      uuid.New().String(),
			OrderID: order.ID,
			Amount:  ec.Amount,
			Note:    ec.Note,
		})
	}

	var usages []entity.AccessoryUsage
	for _, d := range plan {
		usages = append(usages, entity.AccessoryUsage{
			ID:              uuid.New().String(),
			OrderID:         order.ID,
			AccessoryID:     d.AccessoryID,
			LotID:           d.LotID,
			QuantityUsed:    d.Taken,
			UnitCostAtUse:   d.UnitCost,
			PurchaseAccount: d.PurchaseAccount,
		})
	}

	// 变更阶段：固定顺序 + 前像补偿。每个物理料卷只生成一步，
	// 写入的是该卷汇总扣减后的绝对值，避免同卷多槽位互相覆盖
	var tx saga
	for _, id := range spoolIDs {
		spoolID := id
		pre := spoolsByID[id].RemainingGrams
		post := pre - needBySpool[id]
		tx.add(fmt.Sprintf("扣减料卷%s", spoolID),
			func() error { return s.spools.UpdateRemaining(spoolID, post) },
			func() error { return s.spools.UpdateRemaining(spoolID, pre) })
	}
	for _, d := range plan {
		lotID, oldQty, newQty := d.LotID, d.OldQty, d.NewQty
		tx.add(fmt.Sprintf("扣减配件批次%s", lotID),
			func() error { return s.lots.UpdateRemaining(lotID, newQty) },
			func() error { return s.lots.UpdateRemaining(lotID, oldQty) })
	}
	tx.add("插入订单",
		func() error { return s.orders.Create(order) },
		func() error { return s.orders.Delete(order.ID) })
	if len(usages) > 0 {
		tx.add("插入配件消耗台账",
			func() error { return s.orders.CreateUsages(usages) },
			func() error { return s.orders.DeleteUsagesByOrder(order.ID) })
	}

	if err := tx.run(); err != nil {
		return nil, err
	}

	s.queue.invalidateCache()
	return order, nil
}

// DeleteQueuedOrder 删除排队/打印中的订单并恢复库存：把配方的克数/件数
// 加回原消耗批次。原批次已不存在时由操作员通过 restore 指定替代料卷。
func (s *OrderService) DeleteQueuedOrder(id string, restore []LotSelectionInput) error {
	order, err := s.orders.Get(id)
	if err != nil {
		return fmt.Errorf("订单不存在: %w", err)
	}
	if order.Status != entity.OrderStatusQueued && order.Status != entity.OrderStatusPrinting {
		return fmt.Errorf("%w: 状态%s的订单不能删除", ErrValidation, order.Status)
	}

	overrideByColor := make(map[int]string)
	for _, r := range restore {
		if r.SpoolID != "" {
			overrideByColor[r.ColorIndex] = r.SpoolID
		}
	}

	// 校验并捕获前像。多行归属同一卷（含操作员改指恢复目标）时
	// 先按卷汇总克数，每卷只恢复一次
	gramsBySpool := make(map[string]float64)
	var restoreSpoolIDs []string
	for _, m := range order.Materials {
		spoolID := m.SpoolID
		if alt, ok := overrideByColor[m.ColorIndex]; ok {
			spoolID = alt
		}
		if _, ok := gramsBySpool[spoolID]; !ok {
			restoreSpoolIDs = append(restoreSpoolIDs, spoolID)
		}
		gramsBySpool[spoolID] += m.GramsUsed
	}
	type spoolRestore struct {
		spoolID  string
		pre, new float64
	}
	var spoolRestores []spoolRestore
	for _, spoolID := range restoreSpoolIDs {
		spool, err := s.spools.Get(spoolID)
		if err != nil {
			return fmt.Errorf("恢复目标料卷不存在: %w", err)
		}
		spoolRestores = append(spoolRestores, spoolRestore{
			spoolID: spool.ID,
			pre:     spool.RemainingGrams,
			new:     spool.RemainingGrams + gramsBySpool[spoolID],
		})
	}

	usages, err := s.orders.ListUsagesByOrder(id)
	if err != nil {
		return fmt.Errorf("读取配件消耗台账失败: %w", err)
	}
	qtyByLot := make(map[string]int)
	var restoreLotIDs []string
	for _, u := range usages {
		if _, ok := qtyByLot[u.LotID]; !ok {
			restoreLotIDs = append(restoreLotIDs, u.LotID)
		}
		qtyByLot[u.LotID] += u.QuantityUsed
	}
	type lotRestore struct {
		lotID    string
		pre, new int
	}
	var lotRestores []lotRestore
	for _, lotID := range restoreLotIDs {
		lot, err := s.lots.Get(lotID)
		if err != nil {
			return fmt.Errorf("恢复目标配件批次不存在: %w", err)
		}
		lotRestores = append(lotRestores, lotRestore{lotID: lot.ID, pre: lot.RemainingQty, new: lot.RemainingQty + qtyByLot[lotID]})
	}

	var tx saga
	for _, r := range spoolRestores {
		r := r
		tx.add(fmt.Sprintf("恢复料卷%s", r.spoolID),
			func() error { return s.spools.UpdateRemaining(r.spoolID, r.new) },
			func() error { return s.spools.UpdateRemaining(r.spoolID, r.pre) })
	}
	for _, r := range lotRestores {
		r := r
		tx.add(fmt.Sprintf("恢复配件批次%s", r.lotID),
			func() error { return s.lots.UpdateRemaining(r.lotID, r.new) },
			func() error { return s.lots.UpdateRemaining(r.lotID, r.pre) })
	}
	usagesCopy := usages
	tx.add("删除配件消耗台账",
		func() error { return s.orders.DeleteUsagesByOrder(id) },
		func() error { return s.orders.CreateUsages(usagesCopy) })
	orderCopy := *order
	tx.add("删除订单",
		func() error { return s.orders.Delete(id) },
		func() error { return s.orders.Create(&orderCopy) })

	if err := tx.run(); err != nil {
		return err
	}

	// 删除后保持活动队列序号连续
	if err := s.queue.RenumberActive(); err != nil {
		return err
	}
	return nil
}

// EditOrderLots 改选订单的材料批次。
// 排队/打印中：先把旧批次的克数恢复，再扣减新批次（先验充足性），
// 与§删除相同的补偿纪律，恢复+扣减视为一个事务，并重算生产成本。
// 已售出：不碰库存（消耗已不可逆），只重算成本并把修正值传播到
// 最近一条关联销售记录，历史账目必须反映修正后的归属。
func (s *OrderService) EditOrderLots(id string, selections []LotSelectionInput) (*entity.ProductionOrder, error) {
	order, err := s.orders.Get(id)
	if err != nil {
		return nil, fmt.Errorf("订单不存在: %w", err)
	}
	switch order.Status {
	case entity.OrderStatusQueued, entity.OrderStatusPrinting:
		return s.editActiveLots(order, selections)
	case entity.OrderStatusAvailable:
		// 已打印完成，物理消耗不可逆，只做归属修正
		return s.reattributeLots(order, selections, false)
	case entity.OrderStatusSold:
		return s.reattributeLots(order, selections, true)
	default:
		return nil, fmt.Errorf("%w: 未知订单状态%q", ErrValidation, order.Status)
	}
}

type lotChange struct {
	row      *entity.OrderMaterial
	oldSpool *entity.Spool
	newSpool *entity.Spool
	grams    float64
}

// resolveLotChanges 校验改选并装配变更集，不做任何写入
func (s *OrderService) resolveLotChanges(order *entity.ProductionOrder, selections []LotSelectionInput, withInventory bool) ([]lotChange, error) {
	rowByColor := make(map[int]*entity.OrderMaterial)
	for i := range order.Materials {
		rowByColor[order.Materials[i].ColorIndex] = &order.Materials[i]
	}

	var changes []lotChange
	for _, sel := range selections {
		row, ok := rowByColor[sel.ColorIndex]
		if !ok {
			return nil, fmt.Errorf("%w: 订单没有颜色槽位%d", ErrValidation, sel.ColorIndex)
		}
		if sel.SpoolID == "" {
			return nil, fmt.Errorf("%w: 颜色槽位%d", ErrMissingRequiredSelection, sel.ColorIndex)
		}
		if sel.SpoolID == row.SpoolID {
			continue
		}
		newSpool, err := s.spools.Get(sel.SpoolID)
		if err != nil {
			return nil, fmt.Errorf("料卷不存在: %w", err)
		}
		if newSpool.MaterialID != row.MaterialID {
			return nil, fmt.Errorf("%w: 颜色槽位%d的新料卷材料不一致", ErrValidation, sel.ColorIndex)
		}
		// 充足性在调用方按卷汇总净变化量校验，这里不按槽位单判
		var oldSpool *entity.Spool
		if withInventory {
			oldSpool, err = s.spools.Get(row.SpoolID)
			if err != nil {
				return nil, fmt.Errorf("原料卷不存在: %w", err)
			}
		}
		changes = append(changes, lotChange{row: row, oldSpool: oldSpool, newSpool: newSpool, grams: row.GramsUsed})
	}
	return changes, nil
}

// recalcCost 按当前归属行与台账重算生产成本快照
func (s *OrderService) recalcCost(order *entity.ProductionOrder) (float64, error) {
	var matCost float64
	for _, m := range order.Materials {
		matCost += m.GramsUsed / 1000 * m.PricePerKgAtUse
	}
	usages, err := s.orders.ListUsagesByOrder(order.ID)
	if err != nil {
		return 0, fmt.Errorf("读取配件消耗台账失败: %w", err)
	}
	var accCost float64
	for _, u := range usages {
		accCost += float64(u.QuantityUsed) * u.UnitCostAtUse
	}
	return Round2(matCost + accCost), nil
}

func (s *OrderService) editActiveLots(order *entity.ProductionOrder, selections []LotSelectionInput) (*entity.ProductionOrder, error) {
	changes, err := s.resolveLotChanges(order, selections, true)
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return order, nil
	}

	// 恢复旧卷与扣减新卷按物理卷合并为净变化量，一卷一步。
	// 同材料两个槽位互换料卷时，各卷的绝对写入才不会互相覆盖
	preBySpool := make(map[string]float64)
	deltaBySpool := make(map[string]float64)
	var editSpoolIDs []string
	record := func(sp *entity.Spool, delta float64) {
		if _, ok := preBySpool[sp.ID]; !ok {
			preBySpool[sp.ID] = sp.RemainingGrams
			editSpoolIDs = append(editSpoolIDs, sp.ID)
		}
		deltaBySpool[sp.ID] += delta
	}
	for _, ch := range changes {
		record(ch.oldSpool, ch.grams)
		record(ch.newSpool, -ch.grams)
	}
	for _, id := range editSpoolIDs {
		if preBySpool[id]+deltaBySpool[id] < 0 {
			return nil, fmt.Errorf("%w: 料卷%s净扣减%.1fg，剩余%.1fg", ErrInsufficientInventory, id, -deltaBySpool[id], preBySpool[id])
		}
	}

	var tx saga
	for _, id := range editSpoolIDs {
		if deltaBySpool[id] == 0 {
			continue
		}
		spoolID, pre, post := id, preBySpool[id], preBySpool[id]+deltaBySpool[id]
		tx.add(fmt.Sprintf("调整料卷%s", spoolID),
			func() error { return s.spools.UpdateRemaining(spoolID, post) },
			func() error { return s.spools.UpdateRemaining(spoolID, pre) })
	}

	for _, ch := range changes {
		ch := ch
		prev := *ch.row
		tx.add(fmt.Sprintf("更新归属行(槽位%d)", ch.row.ColorIndex),
			func() error {
				ch.row.SpoolID = ch.newSpool.ID
				ch.row.PricePerKgAtUse = ch.newSpool.PricePerKg
				ch.row.PurchaseAccount = ch.newSpool.PurchaseAccount
				return s.orders.UpdateMaterialRow(ch.row)
			},
			func() error {
				restored := prev
				return s.orders.UpdateMaterialRow(&restored)
			})
	}

	prevCost := order.ProductionCost
	tx.add("更新订单成本", func() error {
		cost, err := s.recalcCost(order)
		if err != nil {
			return err
		}
		order.ProductionCost = cost
		return s.orders.Update(order)
	}, func() error {
		order.ProductionCost = prevCost
		return s.orders.Update(order)
	})

	if err := tx.run(); err != nil {
		return nil, err
	}
	return order, nil
}

// reattributeLots 不碰库存的批次重归属：修正归属行与成本快照；
// propagateSale 为真时把修正值传播到最近一条销售记录
func (s *OrderService) reattributeLots(order *entity.ProductionOrder, selections []LotSelectionInput, propagateSale bool) (*entity.ProductionOrder, error) {
	changes, err := s.resolveLotChanges(order, selections, false)
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return order, nil
	}

	for _, ch := range changes {
		ch.row.SpoolID = ch.newSpool.ID
		ch.row.PricePerKgAtUse = ch.newSpool.PricePerKg
		ch.row.PurchaseAccount = ch.newSpool.PurchaseAccount
		if err := s.orders.UpdateMaterialRow(ch.row); err != nil {
			return nil, fmt.Errorf("更新归属行失败: %w", err)
		}
	}

	cost, err := s.recalcCost(order)
	if err != nil {
		return nil, err
	}
	order.ProductionCost = cost
	if err := s.orders.Update(order); err != nil {
		return nil, fmt.Errorf("更新订单成本失败: %w", err)
	}
	if !propagateSale {
		return order, nil
	}

	// 把修正后的成本传播到最近一条销售记录
	sale, err := s.sales.GetLatestByOrder(order.ID)
	if err != nil {
		return nil, fmt.Errorf("读取销售记录失败: %w", err)
	}

	var extraProd float64
	for _, ec := range order.ExtraCosts {
		extraProd += ec.Amount
	}
	var extraSale float64
	for _, ec := range sale.ExtraCosts {
		extraSale += ec.Amount
	}
	sale.ProductionCostBase = cost
	sale.TotalProductionCost = Round2(cost + extraProd)
	sale.TotalCosts = Round2(cost + extraProd + sale.PackagingCost + sale.AdministrativeCost + sale.PromotionCost + extraSale)
	sale.Profit = Round2(sale.Revenue - sale.TotalCosts - sale.VatAmount)

	usages, err := s.orders.ListUsagesByOrder(order.ID)
	if err != nil {
		return nil, fmt.Errorf("读取配件消耗台账失败: %w", err)
	}
	sale.CostByAccount = buildCostByAccount(sale.ID, order.Materials, usages)

	if err := s.sales.Update(sale); err != nil {
		return nil, fmt.Errorf("更新销售记录失败: %w", err)
	}
	return order, nil
}

// GetOrder 读取订单（含归属行与附加成本）
func (s *OrderService) GetOrder(id string) (*entity.ProductionOrder, error) {
	return s.orders.Get(id)
}

// ListOrders 按状态列出订单，状态为空列出全部
func (s *OrderService) ListOrders(status string) ([]entity.ProductionOrder, error) {
	if status == "" {
		var all []entity.ProductionOrder
		for _, st := range []string{entity.OrderStatusQueued, entity.OrderStatusPrinting, entity.OrderStatusAvailable, entity.OrderStatusSold} {
			part, err := s.orders.ListByStatus(st)
			if err != nil {
				return nil, err
			}
			all = append(all, part...)
		}
		sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
		return all, nil
	}
	return s.orders.ListByStatus(status)
}

// ListUsages 读取订单的配件消耗台账
func (s *OrderService) ListUsages(orderID string) ([]entity.AccessoryUsage, error) {
	return s.orders.ListUsagesByOrder(orderID)
}

func (s *OrderService) loadAccessoryLots(reqs []AccessoryRequestInput) (map[string][]entity.AccessoryLot, error) {
	lotsByAccessory := make(map[string][]entity.AccessoryLot)
	for _, req := range reqs {
		if _, ok := lotsByAccessory[req.AccessoryID]; ok {
			continue
		}
		lots, err := s.lots.ListByAccessory(req.AccessoryID)
		if err != nil {
			return nil, fmt.Errorf("读取配件批次失败: %w", err)
		}
		lotsByAccessory[req.AccessoryID] = lots
	}
	return lotsByAccessory, nil
}

// buildCostByAccount 按采购账户归集生产成本：材料按颜色归属行，
// 配件按消耗台账行。独立报表维度，不进入利润公式。
func buildCostByAccount(saleID string, materials []entity.OrderMaterial, usages []entity.AccessoryUsage) []entity.SaleAccountCost {
	byAccount := make(map[string]float64)
	for _, m := range materials {
		byAccount[m.PurchaseAccount] += m.GramsUsed / 1000 * m.PricePerKgAtUse
	}
	for _, u := range usages {
		byAccount[u.PurchaseAccount] += float64(u.QuantityUsed) * u.UnitCostAtUse
	}

	accounts := make([]string, 0, len(byAccount))
	for acct := range byAccount {
		accounts = append(accounts, acct)
	}
	sort.Strings(accounts)

	rows := make([]entity.SaleAccountCost, 0, len(accounts))
	for _, acct := range accounts {
		rows = append(rows, entity.SaleAccountCost{
			ID:      uuid.New().String(),
			SaleID:  saleID,
			Account: acct,
			Amount:  Round2(byAccount[acct]),
		})
	}
	return rows
}
