package service

import (
	"errors"
	"math"
	"testing"

	"github.com/fabioferrero90/strabello-manager/internal/shop/entity"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{1.004, 1.00},
		{1.006, 1.01},
		{4.3639344262, 4.36},
		{0, 0},
	}
	for _, c := range cases {
		if got := Round2(c.in); got != c.want {
			t.Errorf("Round2(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestMaterialCostSingle(t *testing.T) {
	// 50 g at €20/kg = €1.00
	recipe := SingleRecipe{WeightKg: 0.05}
	spools := map[int]*entity.Spool{
		1: {ID: "sp1", PricePerKg: 20, RemainingGrams: 1000},
	}

	cost, err := MaterialCost(recipe, spools)
	if err != nil {
		t.Fatalf("MaterialCost failed: %v", err)
	}
	if !almostEqual(cost, 1.00) {
		t.Errorf("cost = %v, want 1.00", cost)
	}
}

func TestMaterialCostMultiColor(t *testing.T) {
	// color1 30 g @ €25/kg + color2 20 g @ €30/kg = €1.35
	recipe := MultiRecipe{Colors: []ColorRequirement{
		{Index: 1, WeightGrams: 30},
		{Index: 2, WeightGrams: 20},
	}}
	spools := map[int]*entity.Spool{
		1: {ID: "sp1", PricePerKg: 25},
		2: {ID: "sp2", PricePerKg: 30},
	}

	cost, err := MaterialCost(recipe, spools)
	if err != nil {
		t.Fatalf("MaterialCost failed: %v", err)
	}
	if !almostEqual(cost, 1.35) {
		t.Errorf("cost = %v, want 1.35", cost)
	}
}

func TestMaterialCostMissingSelection(t *testing.T) {
	recipe := MultiRecipe{Colors: []ColorRequirement{
		{Index: 1, WeightGrams: 30},
		{Index: 2, WeightGrams: 20},
	}}
	spools := map[int]*entity.Spool{
		1: {ID: "sp1", PricePerKg: 25},
	}

	_, err := MaterialCost(recipe, spools)
	if !errors.Is(err, ErrMissingRequiredSelection) {
		t.Errorf("err = %v, want ErrMissingRequiredSelection", err)
	}
}

func TestPreviewMaterialCostNominalFallback(t *testing.T) {
	recipe := MultiRecipe{Colors: []ColorRequirement{
		{Index: 1, WeightGrams: 30},
		{Index: 2, WeightGrams: 20},
	}}
	// color1 has a lot, color2 falls back to the material nominal price
	spools := map[int]*entity.Spool{
		1: {ID: "sp1", PricePerKg: 25},
	}
	nominal := map[int]float64{2: 30}

	cost := PreviewMaterialCost(recipe, spools, nominal)
	if !almostEqual(cost, 1.35) {
		t.Errorf("cost = %v, want 1.35", cost)
	}
}

func TestPreviewMaterialCostMissingNominalIsZero(t *testing.T) {
	recipe := SingleRecipe{WeightKg: 0.05}
	cost := PreviewMaterialCost(recipe, nil, nil)
	if !almostEqual(cost, 0) {
		t.Errorf("cost = %v, want 0", cost)
	}
}
