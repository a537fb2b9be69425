package service

import (
	"fmt"
	"sort"

	"github.com/fabioferrero90/strabello-manager/internal/shop/entity"
)

// AccessoryRequestInput 单个配件的需求
type AccessoryRequestInput struct {
	AccessoryID string `json:"accessory_id" binding:"required"`
	Qty         int    `json:"qty" binding:"required,gt=0"`
}

// AccessoryDecrement 分配方案中一个批次的扣减，带前像（OldQty）供补偿使用
type AccessoryDecrement struct {
	LotID           string  `json:"lot_id"`
	AccessoryID     string  `json:"accessory_id"`
	OldQty          int     `json:"old_qty"`
	NewQty          int     `json:"new_qty"`
	Taken           int     `json:"taken"`
	UnitCost        float64 `json:"unit_cost"`
	PurchaseAccount string  `json:"purchase_account"`
}

// AllocateAccessories 对整批配件需求做FIFO全有或全无分配。纯函数，
// 只在私有快照上计算，不碰存储；提交由事务协调器应用返回的方案。
// 每个需求独立地按批次创建时间从旧到新贪心消耗；任何一个需求无法完全
// 满足时整批失败——成本和库存必须作为一个工作单元汇报给调用方。
// 返回的总成本未取整。
func AllocateAccessories(reqs []AccessoryRequestInput, lotsByAccessory map[string][]entity.AccessoryLot) ([]AccessoryDecrement, float64, error) {
	// 同一配件可能出现在多个需求里，在快照上跟踪剩余量
	remaining := make(map[string]int)
	for _, lots := range lotsByAccessory {
		for _, lot := range lots {
			remaining[lot.ID] = lot.RemainingQty
		}
	}

	var plan []AccessoryDecrement
	var totalCost float64

	for _, req := range reqs {
		if req.Qty <= 0 {
			return nil, 0, fmt.Errorf("%w: 配件需求数量必须大于0", ErrValidation)
		}

		lots := make([]entity.AccessoryLot, len(lotsByAccessory[req.AccessoryID]))
		copy(lots, lotsByAccessory[req.AccessoryID])
		sort.SliceStable(lots, func(i, j int) bool {
			return lots[i].CreatedAt.Before(lots[j].CreatedAt)
		})

		need := req.Qty
		for _, lot := range lots {
			if need == 0 {
				break
			}
			avail := remaining[lot.ID]
			if avail <= 0 {
				continue
			}
			take := need
			if take > avail {
				take = avail
			}
			plan = append(plan, AccessoryDecrement{
				LotID:           lot.ID,
				AccessoryID:     lot.AccessoryID,
				OldQty:          avail,
				NewQty:          avail - take,
				Taken:           take,
				UnitCost:        lot.UnitCost,
				PurchaseAccount: lot.PurchaseAccount,
			})
			remaining[lot.ID] = avail - take
			totalCost += float64(take) * lot.UnitCost
			need -= take
		}
		if need > 0 {
			return nil, 0, fmt.Errorf("%w: 配件%s缺%d件", ErrInsufficientAccessory, req.AccessoryID, need)
		}
	}

	return plan, totalCost, nil
}
