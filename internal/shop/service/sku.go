package service

import (
	"fmt"
	"strings"
)

// DeriveSKU 派生订单SKU：模型SKU + "-" + 各颜色材料编码（按槽位顺序）。
// 单材料订单只有一个编码。
func DeriveSKU(modelSKU string, materialCodes []string) (string, error) {
	if modelSKU == "" {
		return "", fmt.Errorf("%w: 模型SKU为空", ErrValidation)
	}
	for i, code := range materialCodes {
		if code == "" {
			return "", fmt.Errorf("%w: 第%d个材料", ErrMissingMaterialCode, i+1)
		}
	}
	return modelSKU + "-" + strings.Join(materialCodes, "-"), nil
}
