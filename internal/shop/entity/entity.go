package entity

import "gorm.io/gorm"

// AutoMigrate 自动迁移所有车间表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// 目录
		&Material{},
		&Accessory{},
		&Model{},
		&ModelColor{},
		&SalesChannel{},

		// 库存批次
		&Spool{},
		&AccessoryLot{},

		// 生产
		&ProductionOrder{},
		&OrderMaterial{},
		&OrderExtraCost{},
		&AccessoryUsage{},

		// 销售
		&SaleRecord{},
		&SaleExtraCost{},
		&SaleAccountCost{},
	)
}
