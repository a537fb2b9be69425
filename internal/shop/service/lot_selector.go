package service

import (
	"github.com/fabioferrero90/strabello-manager/internal/shop/entity"
)

// SelectDefaultSpool 为一个材料需求挑选默认料卷。纯函数，不改任何状态，
// 只提出默认值，操作员可以覆盖。
// 优先选已开封的卷（剩余量<整卷），把零头先用掉再开新卷；
// 没有已开封的候选时按稳定顺序取第一个满足的满卷。
// 没有任何候选满足时返回 false。
func SelectDefaultSpool(materialID string, requiredGrams float64, spools []entity.Spool) (string, bool) {
	firstFull := ""
	for _, s := range spools {
		if s.MaterialID != materialID || s.RemainingGrams < requiredGrams {
			continue
		}
		if s.RemainingGrams < entity.SpoolFullGrams {
			return s.ID, true
		}
		if firstFull == "" {
			firstFull = s.ID
		}
	}
	if firstFull != "" {
		return firstFull, true
	}
	return "", false
}
