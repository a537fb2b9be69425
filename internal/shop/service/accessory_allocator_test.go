package service

import (
	"errors"
	"testing"
	"time"

	"github.com/fabioferrero90/strabello-manager/internal/shop/entity"
)

func TestAllocateAccessoriesFIFO(t *testing.T) {
	// need 5; lotA (oldest, qty 3 @ 0.10), lotB (qty 3 @ 0.12)
	// expect 3 from lotA then 2 from lotB, cost 0.54
	base := time.Now()
	lots := map[string][]entity.AccessoryLot{
		"acc1": {
			{ID: "lotB", AccessoryID: "acc1", RemainingQty: 3, UnitCost: 0.12, CreatedAt: base.Add(time.Hour)},
			{ID: "lotA", AccessoryID: "acc1", RemainingQty: 3, UnitCost: 0.10, CreatedAt: base},
		},
	}

	plan, cost, err := AllocateAccessories([]AccessoryRequestInput{{AccessoryID: "acc1", Qty: 5}}, lots)
	if err != nil {
		t.Fatalf("AllocateAccessories failed: %v", err)
	}
	if len(plan) != 2 {
		t.Fatalf("plan has %d decrements, want 2", len(plan))
	}
	if plan[0].LotID != "lotA" || plan[0].Taken != 3 || plan[0].NewQty != 0 {
		t.Errorf("first decrement = %+v, want lotA taken 3 newQty 0", plan[0])
	}
	if plan[1].LotID != "lotB" || plan[1].Taken != 2 || plan[1].NewQty != 1 {
		t.Errorf("second decrement = %+v, want lotB taken 2 newQty 1", plan[1])
	}
	if !almostEqual(cost, 0.54) {
		t.Errorf("cost = %v, want 0.54", cost)
	}
}

func TestAllocateAccessoriesInsufficientFailsWholeBatch(t *testing.T) {
	// need 5, only 4 available anywhere: whole allocation fails, nothing mutated
	lots := map[string][]entity.AccessoryLot{
		"acc1": {
			{ID: "lotA", AccessoryID: "acc1", RemainingQty: 2, UnitCost: 0.10, CreatedAt: time.Now()},
			{ID: "lotB", AccessoryID: "acc1", RemainingQty: 2, UnitCost: 0.12, CreatedAt: time.Now().Add(time.Minute)},
		},
	}

	plan, _, err := AllocateAccessories([]AccessoryRequestInput{{AccessoryID: "acc1", Qty: 5}}, lots)
	if !errors.Is(err, ErrInsufficientAccessory) {
		t.Fatalf("err = %v, want ErrInsufficientAccessory", err)
	}
	if plan != nil {
		t.Errorf("plan = %v, want nil", plan)
	}
	// input lots untouched, the allocator works on a private snapshot
	if lots["acc1"][0].RemainingQty != 2 || lots["acc1"][1].RemainingQty != 2 {
		t.Error("input lots were mutated")
	}
}

func TestAllocateAccessoriesSecondRequirementFailsWholeBatch(t *testing.T) {
	lots := map[string][]entity.AccessoryLot{
		"acc1": {{ID: "lot1", AccessoryID: "acc1", RemainingQty: 10, UnitCost: 0.10, CreatedAt: time.Now()}},
		"acc2": {{ID: "lot2", AccessoryID: "acc2", RemainingQty: 1, UnitCost: 0.50, CreatedAt: time.Now()}},
	}
	reqs := []AccessoryRequestInput{
		{AccessoryID: "acc1", Qty: 2},
		{AccessoryID: "acc2", Qty: 3},
	}

	plan, _, err := AllocateAccessories(reqs, lots)
	if !errors.Is(err, ErrInsufficientAccessory) {
		t.Fatalf("err = %v, want ErrInsufficientAccessory", err)
	}
	if plan != nil {
		t.Errorf("plan = %v, want nil (all-or-nothing)", plan)
	}
}

func TestAllocateAccessoriesSharedSnapshot(t *testing.T) {
	// two requirements for the same accessory must draw from one snapshot
	lots := map[string][]entity.AccessoryLot{
		"acc1": {{ID: "lot1", AccessoryID: "acc1", RemainingQty: 5, UnitCost: 0.10, CreatedAt: time.Now()}},
	}
	reqs := []AccessoryRequestInput{
		{AccessoryID: "acc1", Qty: 3},
		{AccessoryID: "acc1", Qty: 3},
	}

	_, _, err := AllocateAccessories(reqs, lots)
	if !errors.Is(err, ErrInsufficientAccessory) {
		t.Fatalf("err = %v, want ErrInsufficientAccessory (5 < 3+3)", err)
	}
}

func TestAllocateAccessoriesSkipsEmptyLots(t *testing.T) {
	base := time.Now()
	lots := map[string][]entity.AccessoryLot{
		"acc1": {
			{ID: "empty", AccessoryID: "acc1", RemainingQty: 0, UnitCost: 0.05, CreatedAt: base},
			{ID: "stocked", AccessoryID: "acc1", RemainingQty: 4, UnitCost: 0.10, CreatedAt: base.Add(time.Minute)},
		},
	}

	plan, cost, err := AllocateAccessories([]AccessoryRequestInput{{AccessoryID: "acc1", Qty: 2}}, lots)
	if err != nil {
		t.Fatalf("AllocateAccessories failed: %v", err)
	}
	if len(plan) != 1 || plan[0].LotID != "stocked" {
		t.Fatalf("plan = %+v, want single decrement on stocked", plan)
	}
	if !almostEqual(cost, 0.20) {
		t.Errorf("cost = %v, want 0.20", cost)
	}
}
