package service

import (
	"errors"
	"fmt"
)

// 核心操作错误分类。校验类错误在任何写入发生前返回，零副作用；
// 写入阶段的失败触发补偿回滚后以 ErrStoreWrite 返回。
var (
	ErrValidation               = errors.New("参数校验失败")
	ErrInsufficientInventory    = errors.New("料卷剩余量不足")
	ErrInsufficientAccessory    = errors.New("配件库存不足")
	ErrMissingRequiredSelection = errors.New("缺少必需的批次选择")
	ErrMissingMaterialCode      = errors.New("材料缺少编码，无法派生SKU")
	ErrStoreWrite               = errors.New("存储写入失败")
)

// CompensationError 回滚步骤自身失败。此时库存状态可能已不一致，
// 必须人工对账，不能当作普通写入失败吞掉。
type CompensationError struct {
	Step    string // 失败的补偿步骤
	Cause   error  // 触发回滚的原始错误
	UndoErr error  // 补偿失败的错误
}

func (e *CompensationError) Error() string {
	return fmt.Sprintf("补偿步骤%q失败，库存状态可能不一致，需人工对账: %v (原始错误: %v)", e.Step, e.UndoErr, e.Cause)
}

func (e *CompensationError) Unwrap() []error {
	return []error{e.Cause, e.UndoErr}
}
