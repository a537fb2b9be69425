package service

import (
	"errors"
	"fmt"
)

// sagaStep 一个带补偿的存储变更步骤。undo 必须使用事先捕获的前像，
// 而不是重算增量。
type sagaStep struct {
	name string
	do   func() error
	undo func() error
}

// saga 有序的 {do, undo} 步骤列表。步骤按固定顺序串行执行；
// 第k步失败时按逆序补偿第1..k-1步。不提供真正的隔离。
type saga struct {
	steps []sagaStep
}

func (s *saga) add(name string, do, undo func() error) {
	s.steps = append(s.steps, sagaStep{name: name, do: do, undo: undo})
}

// run 执行全部步骤。某步失败且补偿全部成功时，返回带 ErrStoreWrite
// 标记的错误，库存已确认恢复；补偿自身失败时返回 *CompensationError，
// 这是更严重的独立状况。
func (s *saga) run() error {
	for i, step := range s.steps {
		err := step.do()
		if err == nil {
			continue
		}
		cause := fmt.Errorf("步骤%q: %w", step.name, err)
		for j := i - 1; j >= 0; j-- {
			if uerr := s.steps[j].undo(); uerr != nil {
				return &CompensationError{Step: s.steps[j].name, Cause: cause, UndoErr: uerr}
			}
		}
		return fmt.Errorf("库存已恢复: %w", errors.Join(ErrStoreWrite, cause))
	}
	return nil
}
