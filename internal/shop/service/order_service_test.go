package service

import (
	"errors"
	"testing"
	"time"

	"github.com/fabioferrero90/strabello-manager/internal/shop/entity"
	"github.com/fabioferrero90/strabello-manager/internal/shop/testutil"
)

func newTestServices(ms *testutil.MemStore) (*OrderService, *QueueService, *SaleService) {
	orders := testutil.OrderView{M: ms}
	queue := NewQueueService(orders, nil, 0)
	order := NewOrderService(
		testutil.SpoolView{M: ms},
		testutil.LotView{M: ms},
		orders,
		testutil.SaleView{M: ms},
		testutil.MaterialView{M: ms},
		testutil.ModelView{M: ms},
		queue,
	)
	sale := NewSaleService(orders, testutil.SaleView{M: ms}, testutil.ChannelView{M: ms})
	return order, queue, sale
}

func TestCreateOrderSingleMaterial(t *testing.T) {
	ms := testutil.NewMemStore()
	mat := ms.SeedMaterial("Bambu", "PLA", "Black", "0012", 18)
	sp := ms.SeedSpool(mat.ID, 1000, 20, "amazon")
	model := ms.SeedSingleModel("Keychain", "KEY", 0.05)
	svc, _, _ := newTestServices(ms)

	order, err := svc.CreateOrder(CreateOrderRequest{
		ModelID:    model.ID,
		Selections: []LotSelectionInput{{ColorIndex: 1, MaterialID: mat.ID, SpoolID: sp.ID}},
	}, "fabio")
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	if order.SKU != "KEY-0012" {
		t.Errorf("SKU = %s, want KEY-0012", order.SKU)
	}
	if order.ProductionCost != 1.00 {
		t.Errorf("ProductionCost = %v, want 1.00", order.ProductionCost)
	}
	if order.Status != entity.OrderStatusQueued {
		t.Errorf("Status = %s, want QUEUED", order.Status)
	}
	if order.QueueOrder != 1 {
		t.Errorf("QueueOrder = %d, want 1", order.QueueOrder)
	}
	if got := ms.Spools[sp.ID].RemainingGrams; got != 950 {
		t.Errorf("spool remaining = %v, want 950", got)
	}
	if len(order.Materials) != 1 || order.Materials[0].PricePerKgAtUse != 20 {
		t.Errorf("attribution rows = %+v, want one row with price snapshot 20", order.Materials)
	}
}

func TestCreateOrderMissingSelection(t *testing.T) {
	ms := testutil.NewMemStore()
	model := ms.SeedSingleModel("Keychain", "KEY", 0.05)
	svc, _, _ := newTestServices(ms)

	_, err := svc.CreateOrder(CreateOrderRequest{ModelID: model.ID}, "fabio")
	if !errors.Is(err, ErrMissingRequiredSelection) {
		t.Errorf("err = %v, want ErrMissingRequiredSelection", err)
	}
}

func TestCreateOrderInsufficientInventory(t *testing.T) {
	ms := testutil.NewMemStore()
	mat := ms.SeedMaterial("Bambu", "PLA", "Black", "0012", 18)
	sp := ms.SeedSpool(mat.ID, 40, 20, "amazon")
	model := ms.SeedSingleModel("Keychain", "KEY", 0.05)
	svc, _, _ := newTestServices(ms)

	_, err := svc.CreateOrder(CreateOrderRequest{
		ModelID:    model.ID,
		Selections: []LotSelectionInput{{ColorIndex: 1, SpoolID: sp.ID}},
	}, "fabio")
	if !errors.Is(err, ErrInsufficientInventory) {
		t.Fatalf("err = %v, want ErrInsufficientInventory", err)
	}
	if got := ms.Spools[sp.ID].RemainingGrams; got != 40 {
		t.Errorf("spool remaining = %v, validation failure must not mutate", got)
	}
	if len(ms.Orders) != 0 {
		t.Error("no order should exist after a failed create")
	}
}

func TestCreateOrderMaterialWithoutCode(t *testing.T) {
	ms := testutil.NewMemStore()
	mat := ms.SeedMaterial("Bambu", "PLA", "Black", "", 18)
	sp := ms.SeedSpool(mat.ID, 1000, 20, "amazon")
	model := ms.SeedSingleModel("Keychain", "KEY", 0.05)
	svc, _, _ := newTestServices(ms)

	_, err := svc.CreateOrder(CreateOrderRequest{
		ModelID:    model.ID,
		Selections: []LotSelectionInput{{ColorIndex: 1, SpoolID: sp.ID}},
	}, "fabio")
	if !errors.Is(err, ErrMissingMaterialCode) {
		t.Errorf("err = %v, want ErrMissingMaterialCode", err)
	}
	if got := ms.Spools[sp.ID].RemainingGrams; got != 1000 {
		t.Errorf("spool remaining = %v, want untouched 1000", got)
	}
}

func TestCreateOrderRollbackRestoresSpools(t *testing.T) {
	ms := testutil.NewMemStore()
	mat := ms.SeedMaterial("Bambu", "PLA", "Black", "0012", 18)
	sp := ms.SeedSpool(mat.ID, 1000, 20, "amazon")
	model := ms.SeedSingleModel("Keychain", "KEY", 0.05)
	ms.Fail["order.create"] = errors.New("connection reset")
	svc, _, _ := newTestServices(ms)

	_, err := svc.CreateOrder(CreateOrderRequest{
		ModelID:    model.ID,
		Selections: []LotSelectionInput{{ColorIndex: 1, SpoolID: sp.ID}},
	}, "fabio")
	if !errors.Is(err, ErrStoreWrite) {
		t.Fatalf("err = %v, want ErrStoreWrite", err)
	}
	if got := ms.Spools[sp.ID].RemainingGrams; got != 1000 {
		t.Errorf("spool remaining = %v, compensation must restore 1000", got)
	}
	if len(ms.Orders) != 0 || len(ms.Usages) != 0 {
		t.Error("rollback must leave no order or usage rows")
	}
}

func TestCreateOrderWithAccessoriesFIFO(t *testing.T) {
	ms := testutil.NewMemStore()
	mat := ms.SeedMaterial("Bambu", "PLA", "Black", "0012", 18)
	sp := ms.SeedSpool(mat.ID, 1000, 20, "amazon")
	model := ms.SeedSingleModel("Keychain", "KEY", 0.05)
	base := time.Now().Add(-time.Hour)
	lotA := ms.SeedAccessoryLot("acc-ring", 3, 0.10, "cash", base)
	lotB := ms.SeedAccessoryLot("acc-ring", 3, 0.12, "cash", base.Add(time.Minute))
	svc, _, _ := newTestServices(ms)

	order, err := svc.CreateOrder(CreateOrderRequest{
		ModelID:     model.ID,
		Selections:  []LotSelectionInput{{ColorIndex: 1, SpoolID: sp.ID}},
		Accessories: []AccessoryRequestInput{{AccessoryID: "acc-ring", Qty: 5}},
	}, "fabio")
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	// material 1.00 + accessories 3*0.10 + 2*0.12 = 1.54
	if order.ProductionCost != 1.54 {
		t.Errorf("ProductionCost = %v, want 1.54", order.ProductionCost)
	}
	if got := ms.Lots[lotA.ID].RemainingQty; got != 0 {
		t.Errorf("oldest lot remaining = %d, want 0", got)
	}
	if got := ms.Lots[lotB.ID].RemainingQty; got != 1 {
		t.Errorf("newest lot remaining = %d, want 1", got)
	}
	if len(ms.Usages) != 2 {
		t.Fatalf("usage rows = %d, want 2", len(ms.Usages))
	}
	if ms.Usages[0].LotID != lotA.ID || ms.Usages[0].QuantityUsed != 3 {
		t.Errorf("first usage = %+v, want lotA qty 3", ms.Usages[0])
	}
}

func TestPreviewCostDoesNotMutate(t *testing.T) {
	ms := testutil.NewMemStore()
	mat := ms.SeedMaterial("Bambu", "PLA", "Black", "0012", 18)
	sp := ms.SeedSpool(mat.ID, 1000, 20, "amazon")
	model := ms.SeedSingleModel("Keychain", "KEY", 0.05)
	svc, _, _ := newTestServices(ms)

	preview, err := svc.PreviewCost(CreateOrderRequest{
		ModelID:    model.ID,
		Selections: []LotSelectionInput{{ColorIndex: 1, SpoolID: sp.ID}},
	})
	if err != nil {
		t.Fatalf("PreviewCost failed: %v", err)
	}
	if preview.Total != 1.00 {
		t.Errorf("Total = %v, want 1.00", preview.Total)
	}
	if got := ms.Spools[sp.ID].RemainingGrams; got != 1000 {
		t.Errorf("spool remaining = %v, preview must not decrement", got)
	}
	if len(ms.Orders) != 0 {
		t.Error("preview must not create orders")
	}
}

func TestPreviewCostNominalFallback(t *testing.T) {
	ms := testutil.NewMemStore()
	mat := ms.SeedMaterial("Bambu", "PLA", "Black", "0012", 18)
	model := ms.SeedSingleModel("Keychain", "KEY", 0.05)
	svc, _, _ := newTestServices(ms)

	// no lot selected yet, falls back to the nominal €18/kg
	preview, err := svc.PreviewCost(CreateOrderRequest{
		ModelID:    model.ID,
		Selections: []LotSelectionInput{{ColorIndex: 1, MaterialID: mat.ID}},
	})
	if err != nil {
		t.Fatalf("PreviewCost failed: %v", err)
	}
	if preview.Total != 0.90 {
		t.Errorf("Total = %v, want 0.90", preview.Total)
	}
}

func TestDeleteQueuedOrderRestoresInventory(t *testing.T) {
	ms := testutil.NewMemStore()
	mat := ms.SeedMaterial("Bambu", "PLA", "Black", "0012", 18)
	sp := ms.SeedSpool(mat.ID, 1000, 20, "amazon")
	model := ms.SeedSingleModel("Keychain", "KEY", 0.05)
	lot := ms.SeedAccessoryLot("acc-ring", 5, 0.10, "cash", time.Now())
	svc, _, _ := newTestServices(ms)

	order, err := svc.CreateOrder(CreateOrderRequest{
		ModelID:     model.ID,
		Selections:  []LotSelectionInput{{ColorIndex: 1, SpoolID: sp.ID}},
		Accessories: []AccessoryRequestInput{{AccessoryID: "acc-ring", Qty: 2}},
	}, "fabio")
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if ms.Spools[sp.ID].RemainingGrams != 950 || ms.Lots[lot.ID].RemainingQty != 3 {
		t.Fatal("unexpected inventory after create")
	}

	if err := svc.DeleteQueuedOrder(order.ID, nil); err != nil {
		t.Fatalf("DeleteQueuedOrder failed: %v", err)
	}
	if got := ms.Spools[sp.ID].RemainingGrams; got != 1000 {
		t.Errorf("spool remaining = %v, want restored 1000", got)
	}
	if got := ms.Lots[lot.ID].RemainingQty; got != 5 {
		t.Errorf("accessory lot remaining = %d, want restored 5", got)
	}
	if len(ms.Orders) != 0 || len(ms.Usages) != 0 {
		t.Error("order and usage rows should be gone")
	}
}

func TestDeleteQueuedOrderRestoreOverride(t *testing.T) {
	ms := testutil.NewMemStore()
	mat := ms.SeedMaterial("Bambu", "PLA", "Black", "0012", 18)
	spA := ms.SeedSpool(mat.ID, 1000, 20, "amazon")
	spB := ms.SeedSpool(mat.ID, 600, 22, "paypal")
	model := ms.SeedSingleModel("Keychain", "KEY", 0.05)
	svc, _, _ := newTestServices(ms)

	order, err := svc.CreateOrder(CreateOrderRequest{
		ModelID:    model.ID,
		Selections: []LotSelectionInput{{ColorIndex: 1, SpoolID: spA.ID}},
	}, "fabio")
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	// original spool discarded in the meantime, operator restores onto spB
	delete(ms.Spools, spA.ID)

	err = svc.DeleteQueuedOrder(order.ID, []LotSelectionInput{{ColorIndex: 1, SpoolID: spB.ID}})
	if err != nil {
		t.Fatalf("DeleteQueuedOrder failed: %v", err)
	}
	if got := ms.Spools[spB.ID].RemainingGrams; got != 650 {
		t.Errorf("override spool remaining = %v, want 650", got)
	}
}

func TestDeleteSoldOrderRejected(t *testing.T) {
	ms := testutil.NewMemStore()
	mat := ms.SeedMaterial("Bambu", "PLA", "Black", "0012", 18)
	sp := ms.SeedSpool(mat.ID, 1000, 20, "amazon")
	model := ms.SeedSingleModel("Keychain", "KEY", 0.05)
	svc, _, _ := newTestServices(ms)

	order, err := svc.CreateOrder(CreateOrderRequest{
		ModelID:    model.ID,
		Selections: []LotSelectionInput{{ColorIndex: 1, SpoolID: sp.ID}},
	}, "fabio")
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	ms.Orders[order.ID].Status = entity.OrderStatusSold

	if err := svc.DeleteQueuedOrder(order.ID, nil); !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestEditActiveLotsSwapsSpools(t *testing.T) {
	ms := testutil.NewMemStore()
	mat := ms.SeedMaterial("Bambu", "PLA", "Black", "0012", 18)
	spA := ms.SeedSpool(mat.ID, 1000, 20, "amazon")
	spB := ms.SeedSpool(mat.ID, 1000, 30, "paypal")
	model := ms.SeedSingleModel("Keychain", "KEY", 0.05)
	svc, _, _ := newTestServices(ms)

	order, err := svc.CreateOrder(CreateOrderRequest{
		ModelID:    model.ID,
		Selections: []LotSelectionInput{{ColorIndex: 1, SpoolID: spA.ID}},
	}, "fabio")
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	edited, err := svc.EditOrderLots(order.ID, []LotSelectionInput{{ColorIndex: 1, SpoolID: spB.ID}})
	if err != nil {
		t.Fatalf("EditOrderLots failed: %v", err)
	}

	if got := ms.Spools[spA.ID].RemainingGrams; got != 1000 {
		t.Errorf("old spool remaining = %v, want restored 1000", got)
	}
	if got := ms.Spools[spB.ID].RemainingGrams; got != 950 {
		t.Errorf("new spool remaining = %v, want 950", got)
	}
	if edited.ProductionCost != 1.50 {
		t.Errorf("ProductionCost = %v, want 1.50 at €30/kg", edited.ProductionCost)
	}
	row := ms.Orders[order.ID].Materials[0]
	if row.SpoolID != spB.ID || row.PricePerKgAtUse != 30 || row.PurchaseAccount != "paypal" {
		t.Errorf("attribution row = %+v, want snapshot of spB", row)
	}
}

func TestEditActiveLotsInsufficientNewSpool(t *testing.T) {
	ms := testutil.NewMemStore()
	mat := ms.SeedMaterial("Bambu", "PLA", "Black", "0012", 18)
	spA := ms.SeedSpool(mat.ID, 1000, 20, "amazon")
	spB := ms.SeedSpool(mat.ID, 30, 30, "paypal")
	model := ms.SeedSingleModel("Keychain", "KEY", 0.05)
	svc, _, _ := newTestServices(ms)

	order, err := svc.CreateOrder(CreateOrderRequest{
		ModelID:    model.ID,
		Selections: []LotSelectionInput{{ColorIndex: 1, SpoolID: spA.ID}},
	}, "fabio")
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	_, err = svc.EditOrderLots(order.ID, []LotSelectionInput{{ColorIndex: 1, SpoolID: spB.ID}})
	if !errors.Is(err, ErrInsufficientInventory) {
		t.Fatalf("err = %v, want ErrInsufficientInventory", err)
	}
	if ms.Spools[spA.ID].RemainingGrams != 950 || ms.Spools[spB.ID].RemainingGrams != 30 {
		t.Error("failed edit must not move any grams")
	}
}

func TestEditSoldOrderPropagatesToSale(t *testing.T) {
	ms := testutil.NewMemStore()
	mat := ms.SeedMaterial("Bambu", "PLA", "Black", "0012", 18)
	spA := ms.SeedSpool(mat.ID, 1000, 20, "amazon")
	spB := ms.SeedSpool(mat.ID, 1000, 30, "paypal")
	model := ms.SeedSingleModel("Keychain", "KEY", 0.05)
	ch := ms.SeedChannel("Etsy", entity.FeeModeFixed, 1.00, 0, entity.PctBaseGross, 0.50, 0.25, 22)
	svc, _, saleSvc := newTestServices(ms)

	order, err := svc.CreateOrder(CreateOrderRequest{
		ModelID:    model.ID,
		Selections: []LotSelectionInput{{ColorIndex: 1, SpoolID: spA.ID}},
	}, "fabio")
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	ms.Orders[order.ID].Status = entity.OrderStatusAvailable
	ms.Orders[order.ID].QueueOrder = 0

	sale, err := saleSvc.FinalizeSale(order.ID, FinalizeSaleRequest{SalePrice: 24.20, ChannelID: ch.ID}, "fabio")
	if err != nil {
		t.Fatalf("FinalizeSale failed: %v", err)
	}

	// reattribute to the €30/kg spool: inventory untouched, sale corrected
	_, err = svc.EditOrderLots(order.ID, []LotSelectionInput{{ColorIndex: 1, SpoolID: spB.ID}})
	if err != nil {
		t.Fatalf("EditOrderLots failed: %v", err)
	}

	if got := ms.Spools[spB.ID].RemainingGrams; got != 1000 {
		t.Errorf("spB remaining = %v, reattribution must not decrement", got)
	}
	updated := ms.Sales[sale.ID]
	if updated.ProductionCostBase != 1.50 {
		t.Errorf("ProductionCostBase = %v, want 1.50", updated.ProductionCostBase)
	}
	// totalCosts = 1.50 + 0.50 + 0.25 + 1.00 = 3.25
	if updated.TotalCosts != 3.25 {
		t.Errorf("TotalCosts = %v, want 3.25", updated.TotalCosts)
	}
	wantProfit := Round2(24.20 - 3.25 - updated.VatAmount)
	if updated.Profit != wantProfit {
		t.Errorf("Profit = %v, want %v", updated.Profit, wantProfit)
	}
	if len(updated.CostByAccount) != 1 || updated.CostByAccount[0].Account != "paypal" {
		t.Errorf("CostByAccount = %+v, want single paypal row", updated.CostByAccount)
	}
}

func TestCreateOrderSharedSpoolAcrossColors(t *testing.T) {
	// one physical spool serving two color slots: decrements must sum,
	// not overwrite each other
	ms := testutil.NewMemStore()
	mat := ms.SeedMaterial("Bambu", "PLA", "Black", "0012", 18)
	sp := ms.SeedSpool(mat.ID, 1000, 20, "amazon")
	model := ms.SeedMultiModel("Vase", "VASE", map[int]float64{1: 100, 2: 200})
	svc, _, _ := newTestServices(ms)

	order, err := svc.CreateOrder(CreateOrderRequest{
		ModelID: model.ID,
		Selections: []LotSelectionInput{
			{ColorIndex: 1, SpoolID: sp.ID},
			{ColorIndex: 2, SpoolID: sp.ID},
		},
	}, "fabio")
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	if got := ms.Spools[sp.ID].RemainingGrams; got != 700 {
		t.Errorf("spool remaining = %v, want 700 (both slots drawn)", got)
	}
	// 0.100*20 + 0.200*20 = 6.00
	if order.ProductionCost != 6.00 {
		t.Errorf("ProductionCost = %v, want 6.00", order.ProductionCost)
	}
	if len(order.Materials) != 2 {
		t.Errorf("attribution rows = %d, want one per color slot", len(order.Materials))
	}
}

func TestCreateOrderSharedSpoolOverCapacity(t *testing.T) {
	// each slot alone fits, the summed requirement does not
	ms := testutil.NewMemStore()
	mat := ms.SeedMaterial("Bambu", "PLA", "Black", "0012", 18)
	sp := ms.SeedSpool(mat.ID, 250, 20, "amazon")
	model := ms.SeedMultiModel("Vase", "VASE", map[int]float64{1: 200, 2: 200})
	svc, _, _ := newTestServices(ms)

	_, err := svc.CreateOrder(CreateOrderRequest{
		ModelID: model.ID,
		Selections: []LotSelectionInput{
			{ColorIndex: 1, SpoolID: sp.ID},
			{ColorIndex: 2, SpoolID: sp.ID},
		},
	}, "fabio")
	if !errors.Is(err, ErrInsufficientInventory) {
		t.Fatalf("err = %v, want ErrInsufficientInventory", err)
	}
	if got := ms.Spools[sp.ID].RemainingGrams; got != 250 {
		t.Errorf("spool remaining = %v, validation failure must not mutate", got)
	}
	if len(ms.Orders) != 0 {
		t.Error("no order should exist after a failed create")
	}
}

func TestEditActiveLotsSwapBetweenColors(t *testing.T) {
	// swap the two slots' spools: restores and decrements on the same
	// spool must net out instead of overwriting each other
	ms := testutil.NewMemStore()
	mat := ms.SeedMaterial("Bambu", "PLA", "Black", "0012", 18)
	spA := ms.SeedSpool(mat.ID, 1000, 20, "amazon")
	spB := ms.SeedSpool(mat.ID, 1000, 30, "paypal")
	model := ms.SeedMultiModel("Vase", "VASE", map[int]float64{1: 100, 2: 200})
	svc, _, _ := newTestServices(ms)

	order, err := svc.CreateOrder(CreateOrderRequest{
		ModelID: model.ID,
		Selections: []LotSelectionInput{
			{ColorIndex: 1, SpoolID: spA.ID},
			{ColorIndex: 2, SpoolID: spB.ID},
		},
	}, "fabio")
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if ms.Spools[spA.ID].RemainingGrams != 900 || ms.Spools[spB.ID].RemainingGrams != 800 {
		t.Fatal("unexpected inventory after create")
	}

	edited, err := svc.EditOrderLots(order.ID, []LotSelectionInput{
		{ColorIndex: 1, SpoolID: spB.ID},
		{ColorIndex: 2, SpoolID: spA.ID},
	})
	if err != nil {
		t.Fatalf("EditOrderLots failed: %v", err)
	}

	// spA: +100 back, -200 out = 800; spB: -100 out, +200 back = 900
	if got := ms.Spools[spA.ID].RemainingGrams; got != 800 {
		t.Errorf("spA remaining = %v, want 800", got)
	}
	if got := ms.Spools[spB.ID].RemainingGrams; got != 900 {
		t.Errorf("spB remaining = %v, want 900", got)
	}
	// 0.100*30 + 0.200*20 = 7.00
	if edited.ProductionCost != 7.00 {
		t.Errorf("ProductionCost = %v, want 7.00", edited.ProductionCost)
	}
}

func TestDeleteQueuedOrderRestoresSharedSpool(t *testing.T) {
	// two attribution rows on the same spool restore once with the sum
	ms := testutil.NewMemStore()
	mat := ms.SeedMaterial("Bambu", "PLA", "Black", "0012", 18)
	sp := ms.SeedSpool(mat.ID, 1000, 20, "amazon")
	model := ms.SeedMultiModel("Vase", "VASE", map[int]float64{1: 100, 2: 200})
	svc, _, _ := newTestServices(ms)

	order, err := svc.CreateOrder(CreateOrderRequest{
		ModelID: model.ID,
		Selections: []LotSelectionInput{
			{ColorIndex: 1, SpoolID: sp.ID},
			{ColorIndex: 2, SpoolID: sp.ID},
		},
	}, "fabio")
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	if err := svc.DeleteQueuedOrder(order.ID, nil); err != nil {
		t.Fatalf("DeleteQueuedOrder failed: %v", err)
	}
	if got := ms.Spools[sp.ID].RemainingGrams; got != 1000 {
		t.Errorf("spool remaining = %v, want fully restored 1000", got)
	}
}

func TestDeleteQueuedOrderOverrideCollapsesOntoOneSpool(t *testing.T) {
	// operator redirects both colors' restore onto a single spool
	ms := testutil.NewMemStore()
	mat := ms.SeedMaterial("Bambu", "PLA", "Black", "0012", 18)
	spA := ms.SeedSpool(mat.ID, 1000, 20, "amazon")
	spB := ms.SeedSpool(mat.ID, 1000, 30, "paypal")
	spC := ms.SeedSpool(mat.ID, 500, 25, "cash")
	model := ms.SeedMultiModel("Vase", "VASE", map[int]float64{1: 100, 2: 200})
	svc, _, _ := newTestServices(ms)

	order, err := svc.CreateOrder(CreateOrderRequest{
		ModelID: model.ID,
		Selections: []LotSelectionInput{
			{ColorIndex: 1, SpoolID: spA.ID},
			{ColorIndex: 2, SpoolID: spB.ID},
		},
	}, "fabio")
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	delete(ms.Spools, spA.ID)
	delete(ms.Spools, spB.ID)

	err = svc.DeleteQueuedOrder(order.ID, []LotSelectionInput{
		{ColorIndex: 1, SpoolID: spC.ID},
		{ColorIndex: 2, SpoolID: spC.ID},
	})
	if err != nil {
		t.Fatalf("DeleteQueuedOrder failed: %v", err)
	}
	if got := ms.Spools[spC.ID].RemainingGrams; got != 800 {
		t.Errorf("override spool remaining = %v, want 800 (500 + 100 + 200)", got)
	}
}

func TestCreateOrderQueueOrderAppends(t *testing.T) {
	ms := testutil.NewMemStore()
	mat := ms.SeedMaterial("Bambu", "PLA", "Black", "0012", 18)
	sp := ms.SeedSpool(mat.ID, 1000, 20, "amazon")
	model := ms.SeedSingleModel("Keychain", "KEY", 0.05)
	svc, _, _ := newTestServices(ms)

	req := CreateOrderRequest{
		ModelID:    model.ID,
		Selections: []LotSelectionInput{{ColorIndex: 1, SpoolID: sp.ID}},
	}
	first, err := svc.CreateOrder(req, "fabio")
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	second, err := svc.CreateOrder(req, "fabio")
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if first.QueueOrder != 1 || second.QueueOrder != 2 {
		t.Errorf("queue orders = %d, %d, want 1, 2", first.QueueOrder, second.QueueOrder)
	}
}
