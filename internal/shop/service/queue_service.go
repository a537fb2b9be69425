package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/fabioferrero90/strabello-manager/internal/shop/entity"
	"github.com/redis/go-redis/v9"
)

const queueCacheKey = "shop:queue:active"

// QueueService 打印队列：活动集合（排队∪打印中）的排序视图、
// 拖拽重排、状态切换、插队标记。排序视图缓存在redis，
// 任何队列变更都使其失效。
type QueueService struct {
	orders OrderStore
	rdb    *redis.Client
	ttl    time.Duration
}

func NewQueueService(orders OrderStore, rdb *redis.Client, cacheTTL time.Duration) *QueueService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &QueueService{orders: orders, rdb: rdb, ttl: cacheTTL}
}

// SortActive 活动集合的排序键：插队标记优先，其次队列序号升序，
// 序号缺失/相等时按创建时间升序决胜。纯函数。
func SortActive(orders []entity.ProductionOrder) []entity.ProductionOrder {
	sorted := make([]entity.ProductionOrder, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Prioritized != b.Prioritized {
			return a.Prioritized
		}
		if a.QueueOrder != b.QueueOrder {
			return a.QueueOrder < b.QueueOrder
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	return sorted
}

// ActiveQueue 返回排序后的活动队列视图，优先走缓存
func (s *QueueService) ActiveQueue() ([]entity.ProductionOrder, error) {
	if s.rdb != nil {
		if data, err := s.rdb.Get(context.Background(), queueCacheKey).Bytes(); err == nil {
			var cached []entity.ProductionOrder
			if json.Unmarshal(data, &cached) == nil {
				return cached, nil
			}
		}
	}

	active, err := s.orders.ListActive()
	if err != nil {
		return nil, fmt.Errorf("读取活动队列失败: %w", err)
	}
	sorted := SortActive(active)

	if s.rdb != nil {
		if data, err := json.Marshal(sorted); err == nil {
			s.rdb.Set(context.Background(), queueCacheKey, data, s.ttl)
		}
	}
	return sorted, nil
}

// Reorder 拖拽重排：从排序视图中取出被拖拽项，插入目标项所在下标，
// 然后对结果重新分配连续序号1..N并一次性持久化全部N行。
func (s *QueueService) Reorder(draggedID, targetID string) error {
	active, err := s.orders.ListActive()
	if err != nil {
		return fmt.Errorf("读取活动队列失败: %w", err)
	}
	sorted := SortActive(active)

	draggedIdx, targetIdx := -1, -1
	for i, o := range sorted {
		if o.ID == draggedID {
			draggedIdx = i
		}
		if o.ID == targetID {
			targetIdx = i
		}
	}
	if draggedIdx < 0 || targetIdx < 0 {
		return fmt.Errorf("%w: 拖拽项或目标项不在活动队列中", ErrValidation)
	}
	if draggedIdx == targetIdx {
		return nil
	}

	dragged := sorted[draggedIdx]
	rest := append(sorted[:draggedIdx:draggedIdx], sorted[draggedIdx+1:]...)
	result := make([]entity.ProductionOrder, 0, len(sorted))
	result = append(result, rest[:targetIdx]...)
	result = append(result, dragged)
	result = append(result, rest[targetIdx:]...)

	assignments := make([]entity.QueueAssignment, len(result))
	for i, o := range result {
		assignments[i] = entity.QueueAssignment{OrderID: o.ID, QueueOrder: i + 1}
	}
	if err := s.orders.UpdateQueueOrders(assignments); err != nil {
		return fmt.Errorf("持久化重排失败: %w", err)
	}

	s.invalidateCache()
	return nil
}

// Toggle 排队↔打印中的手动切换，可逆
func (s *QueueService) Toggle(id string) (*entity.ProductionOrder, error) {
	order, err := s.orders.Get(id)
	if err != nil {
		return nil, fmt.Errorf("订单不存在: %w", err)
	}
	switch order.Status {
	case entity.OrderStatusQueued:
		order.Status = entity.OrderStatusPrinting
	case entity.OrderStatusPrinting:
		order.Status = entity.OrderStatusQueued
	default:
		return nil, fmt.Errorf("%w: 状态%s不能切换", ErrValidation, order.Status)
	}
	if err := s.orders.Update(order); err != nil {
		return nil, fmt.Errorf("更新订单状态失败: %w", err)
	}
	s.invalidateCache()
	return order, nil
}

// MarkAvailable 打印中→成品，对队列而言是终态；
// 离队后对剩余活动集合重新编号保持连续
func (s *QueueService) MarkAvailable(id string) (*entity.ProductionOrder, error) {
	order, err := s.orders.Get(id)
	if err != nil {
		return nil, fmt.Errorf("订单不存在: %w", err)
	}
	if order.Status != entity.OrderStatusPrinting {
		return nil, fmt.Errorf("%w: 状态%s不能标记为成品", ErrValidation, order.Status)
	}
	order.Status = entity.OrderStatusAvailable
	order.QueueOrder = 0
	if err := s.orders.Update(order); err != nil {
		return nil, fmt.Errorf("更新订单状态失败: %w", err)
	}
	if err := s.RenumberActive(); err != nil {
		return nil, err
	}
	return order, nil
}

// Prioritize 设置/取消插队标记
func (s *QueueService) Prioritize(id string, prioritized bool) (*entity.ProductionOrder, error) {
	order, err := s.orders.Get(id)
	if err != nil {
		return nil, fmt.Errorf("订单不存在: %w", err)
	}
	if order.Status != entity.OrderStatusQueued && order.Status != entity.OrderStatusPrinting {
		return nil, fmt.Errorf("%w: 状态%s不在队列中", ErrValidation, order.Status)
	}
	order.Prioritized = prioritized
	if err := s.orders.Update(order); err != nil {
		return nil, fmt.Errorf("更新订单失败: %w", err)
	}
	s.invalidateCache()
	return order, nil
}

// RenumberActive 对活动集合按当前排序重新分配连续序号1..N
func (s *QueueService) RenumberActive() error {
	active, err := s.orders.ListActive()
	if err != nil {
		return fmt.Errorf("读取活动队列失败: %w", err)
	}
	sorted := SortActive(active)
	assignments := make([]entity.QueueAssignment, len(sorted))
	for i, o := range sorted {
		assignments[i] = entity.QueueAssignment{OrderID: o.ID, QueueOrder: i + 1}
	}
	if err := s.orders.UpdateQueueOrders(assignments); err != nil {
		return fmt.Errorf("持久化队列序号失败: %w", err)
	}
	s.invalidateCache()
	return nil
}

func (s *QueueService) invalidateCache() {
	if s.rdb != nil {
		s.rdb.Del(context.Background(), queueCacheKey)
	}
}
