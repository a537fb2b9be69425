package repository

import (
	"sync"
	"testing"

	"github.com/fabioferrero90/strabello-manager/internal/shop/entity"
	"gorm.io/gorm/schema"
)

// The repositories reference these columns in raw query fragments
// (Order, Where, COALESCE(MAX(...))). The names must match what gorm
// derives from the entity fields at migration time.
func TestRawQueryColumnNames(t *testing.T) {
	cases := []struct {
		model  interface{}
		field  string
		column string
	}{
		{&entity.OrderMaterial{}, "ColorIndex", "color_index"},
		{&entity.OrderMaterial{}, "OrderID", "order_id"},
		{&entity.OrderExtraCost{}, "OrderID", "order_id"},
		{&entity.ProductionOrder{}, "QueueOrder", "queue_order"},
		{&entity.ProductionOrder{}, "Status", "status"},
		{&entity.ProductionOrder{}, "UpdatedAt", "updated_at"},
		{&entity.ProductionOrder{}, "DeletedAt", "deleted_at"},
		{&entity.Spool{}, "MaterialID", "material_id"},
		{&entity.Spool{}, "RemainingGrams", "remaining_grams"},
		{&entity.AccessoryLot{}, "AccessoryID", "accessory_id"},
		{&entity.AccessoryUsage{}, "OrderID", "order_id"},
		{&entity.SaleRecord{}, "OrderID", "order_id"},
		{&entity.SaleExtraCost{}, "SaleID", "sale_id"},
		{&entity.SaleAccountCost{}, "SaleID", "sale_id"},
		{&entity.ModelColor{}, "ColorIndex", "color_index"},
	}

	cache := &sync.Map{}
	for _, tc := range cases {
		s, err := schema.Parse(tc.model, cache, schema.NamingStrategy{})
		if err != nil {
			t.Fatalf("parse schema for %T: %v", tc.model, err)
		}
		f := s.LookUpField(tc.field)
		if f == nil {
			t.Fatalf("%T has no field %s", tc.model, tc.field)
		}
		if f.DBName != tc.column {
			t.Errorf("%T.%s column = %s, want %s", tc.model, tc.field, f.DBName, tc.column)
		}
	}
}
