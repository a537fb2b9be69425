package service

import (
	"fmt"
	"sort"

	"github.com/fabioferrero90/strabello-manager/internal/shop/entity"
)

// Recipe 模型的材料需求，单材料或多色多材料二选一
type Recipe interface {
	// RequiredGrams 每个必需颜色槽位的克数，单材料固定为槽位1
	RequiredGrams() map[int]float64
}

// SingleRecipe 单材料配方
type SingleRecipe struct {
	WeightKg float64
}

func (r SingleRecipe) RequiredGrams() map[int]float64 {
	return map[int]float64{1: r.WeightKg * 1000}
}

// ColorRequirement 多材料配方的一个颜色槽位
type ColorRequirement struct {
	Index       int
	WeightGrams float64
}

// MultiRecipe 多材料配方，颜色槽位2..4个
type MultiRecipe struct {
	Colors []ColorRequirement
}

func (r MultiRecipe) RequiredGrams() map[int]float64 {
	need := make(map[int]float64, len(r.Colors))
	for _, c := range r.Colors {
		need[c.Index] = c.WeightGrams
	}
	return need
}

// SortedColors 按槽位升序返回必需颜色列表
func SortedColors(r Recipe) []int {
	need := r.RequiredGrams()
	colors := make([]int, 0, len(need))
	for c := range need {
		colors = append(colors, c)
	}
	sort.Ints(colors)
	return colors
}

// RecipeFromModel 从模型实体构建配方并校验。
// 单个颜色需求不允许超过一整卷的容量，否则任何满卷都无法满足。
func RecipeFromModel(m *entity.Model) (Recipe, error) {
	switch m.RecipeType {
	case entity.RecipeTypeSingle:
		if m.WeightKg <= 0 {
			return nil, fmt.Errorf("%w: 单材料配方重量必须大于0", ErrValidation)
		}
		if m.WeightKg*1000 > entity.SpoolFullGrams {
			return nil, fmt.Errorf("%w: 配方重量%.0fg超过整卷容量%.0fg", ErrValidation, m.WeightKg*1000, entity.SpoolFullGrams)
		}
		return SingleRecipe{WeightKg: m.WeightKg}, nil

	case entity.RecipeTypeMulti:
		seen := make(map[int]bool)
		var colors []ColorRequirement
		for _, c := range m.Colors {
			if c.ColorIndex < 1 || c.ColorIndex > 4 {
				return nil, fmt.Errorf("%w: 非法颜色槽位%d", ErrValidation, c.ColorIndex)
			}
			if seen[c.ColorIndex] {
				return nil, fmt.Errorf("%w: 颜色槽位%d重复", ErrValidation, c.ColorIndex)
			}
			seen[c.ColorIndex] = true
			// 槽位3-4仅在重量>0时存在
			if c.WeightGrams <= 0 {
				if c.ColorIndex <= 2 {
					return nil, fmt.Errorf("%w: 颜色槽位%d重量必须大于0", ErrValidation, c.ColorIndex)
				}
				continue
			}
			if c.WeightGrams > entity.SpoolFullGrams {
				return nil, fmt.Errorf("%w: 颜色槽位%d重量%.0fg超过整卷容量", ErrValidation, c.ColorIndex, c.WeightGrams)
			}
			colors = append(colors, ColorRequirement{Index: c.ColorIndex, WeightGrams: c.WeightGrams})
		}
		if !seen[1] || !seen[2] {
			return nil, fmt.Errorf("%w: 多材料配方颜色槽位1和2必填", ErrValidation)
		}
		if len(colors) < 2 || len(colors) > 4 {
			return nil, fmt.Errorf("%w: 多材料配方需要2至4个颜色", ErrValidation)
		}
		return MultiRecipe{Colors: colors}, nil

	default:
		return nil, fmt.Errorf("%w: 未知配方类型%q", ErrValidation, m.RecipeType)
	}
}
