package service

import (
	"fmt"
	"math"

	"github.com/fabioferrero90/strabello-manager/internal/shop/entity"
)

// Round2 金额保留两位小数。中间的逐色/逐批次累加不取整，
// 只对最终返回值取整，避免舍入误差累积。
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// MaterialCost 按实际选定的料卷计算材料成本（未取整）。
// 提交路径：每个必需颜色都必须有具体料卷，不允许名义价格回退。
func MaterialCost(r Recipe, spoolByColor map[int]*entity.Spool) (float64, error) {
	var total float64
	for _, color := range SortedColors(r) {
		grams := r.RequiredGrams()[color]
		spool, ok := spoolByColor[color]
		if !ok || spool == nil {
			return 0, fmt.Errorf("%w: 颜色槽位%d", ErrMissingRequiredSelection, color)
		}
		total += grams / 1000 * spool.PricePerKg
	}
	return total, nil
}

// PreviewMaterialCost 预览模式的材料成本（未取整）。
// 某颜色还没选料卷时回退到材料的名义单价，仅用于展示。
func PreviewMaterialCost(r Recipe, spoolByColor map[int]*entity.Spool, nominalPerKg map[int]float64) float64 {
	var total float64
	for color, grams := range r.RequiredGrams() {
		if spool, ok := spoolByColor[color]; ok && spool != nil {
			total += grams / 1000 * spool.PricePerKg
			continue
		}
		total += grams / 1000 * nominalPerKg[color]
	}
	return total
}
