package service

import (
	"fmt"
	"time"

	"github.com/fabioferrero90/strabello-manager/internal/shop/entity"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// SaleService 销售结账：把成品订单定格为不可变的会计快照。
// 不碰库存——消耗在下单时已经发生。
type SaleService struct {
	orders   OrderStore
	sales    SaleStore
	channels ChannelStore
}

func NewSaleService(orders OrderStore, sales SaleStore, channels ChannelStore) *SaleService {
	return &SaleService{orders: orders, sales: sales, channels: channels}
}

// FinalizeSaleRequest 结账请求。VatRate为空时使用渠道默认税率。
type FinalizeSaleRequest struct {
	SalePrice  float64          `json:"sale_price" binding:"required,gt=0"`
	ChannelID  string           `json:"channel_id" binding:"required"`
	VatRate    *float64         `json:"vat_rate"`
	ExtraCosts []ExtraCostInput `json:"extra_costs"`
}

// FinalizeSale 结账。售价视为含税：vat = price * rate/(100+rate)。
// 渠道费用按固定额或按比例（基数为含税或净额，看渠道配置）。
// 成功后订单转为已售出并生成唯一一条销售记录。
func (s *SaleService) FinalizeSale(orderID string, req FinalizeSaleRequest, operator string) (*entity.SaleRecord, error) {
	order, err := s.orders.Get(orderID)
	if err != nil {
		return nil, fmt.Errorf("订单不存在: %w", err)
	}
	if order.Status != entity.OrderStatusAvailable {
		return nil, fmt.Errorf("%w: 状态%s的订单不能结账", ErrValidation, order.Status)
	}

	channel, err := s.channels.Get(req.ChannelID)
	if err != nil {
		return nil, fmt.Errorf("销售渠道不存在: %w", err)
	}

	vatRate := channel.DefaultVatRate
	if req.VatRate != nil {
		vatRate = *req.VatRate
	}
	if vatRate < 0 {
		return nil, fmt.Errorf("%w: 税率不能为负", ErrValidation)
	}

	// 中间量不取整，只对落库金额取整
	vatAmount := req.SalePrice * vatRate / (100 + vatRate)

	var promotionCost float64
	switch channel.FeeMode {
	case entity.FeeModeFixed:
		promotionCost = channel.FixedFee
	case entity.FeeModePercent:
		base := req.SalePrice
		if channel.PctBase == entity.PctBaseNet {
			base = req.SalePrice - vatAmount
		}
		promotionCost = base * channel.PromotionPct / 100
	default:
		return nil, fmt.Errorf("%w: 未知渠道费用模式%q", ErrValidation, channel.FeeMode)
	}

	var extraProd float64
	for _, ec := range order.ExtraCosts {
		extraProd += ec.Amount
	}
	var extraSale float64
	for _, ec := range req.ExtraCosts {
		extraSale += ec.Amount
	}

	totalProduction := order.ProductionCost + extraProd
	totalCosts := totalProduction + channel.PackagingCost + channel.AdministrativeCost + promotionCost + extraSale
	revenue := req.SalePrice // 数量恒为1
	profit := revenue - totalCosts - vatAmount

	usages, err := s.orders.ListUsagesByOrder(order.ID)
	if err != nil {
		return nil, fmt.Errorf("读取配件消耗台账失败: %w", err)
	}

	now := time.Now()
	sale := &entity.SaleRecord{
		ID:                  uuid.New().String(),
		OrderID:             order.ID,
		ChannelID:           channel.ID,
		ChannelName:         channel.Name,
		SalePrice:           Round2(req.SalePrice),
		VatRate:             vatRate,
		VatAmount:           Round2(vatAmount),
		ProductionCostBase:  order.ProductionCost,
		TotalProductionCost: Round2(totalProduction),
		PackagingCost:       Round2(channel.PackagingCost),
		AdministrativeCost:  Round2(channel.AdministrativeCost),
		PromotionCost:       Round2(promotionCost),
		TotalCosts:          Round2(totalCosts),
		Revenue:             Round2(revenue),
		Profit:              Round2(profit),
		CreatedBy:           operator,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	for _, ec := range req.ExtraCosts {
		sale.ExtraCosts = append(sale.ExtraCosts, entity.SaleExtraCost{
			ID:     uuid.New().String(),
			SaleID: sale.ID,
			Amount: ec.Amount,
			Note:   ec.Note,
		})
	}
	sale.CostByAccount = buildCostByAccount(sale.ID, order.Materials, usages)

	prevStatus := order.Status
	var tx saga
	tx.add("插入销售记录",
		func() error { return s.sales.Create(sale) },
		func() error { return s.sales.Delete(sale.ID) })
	tx.add("更新订单状态", func() error {
		order.Status = entity.OrderStatusSold
		return s.orders.Update(order)
	}, func() error {
		order.Status = prevStatus
		return s.orders.Update(order)
	})

	if err := tx.run(); err != nil {
		return nil, err
	}
	return sale, nil
}

// GetLatestSale 读取订单最近一条销售记录
func (s *SaleService) GetLatestSale(orderID string) (*entity.SaleRecord, error) {
	return s.sales.GetLatestByOrder(orderID)
}

// ListSales 列出全部销售记录
func (s *SaleService) ListSales() ([]entity.SaleRecord, error) {
	return s.sales.List()
}

var saleExportHeaders = []string{
	"订单号", "SKU", "渠道", "售价", "税率%", "增值税",
	"生产成本", "包装", "管理", "推广", "总成本", "利润", "售出时间",
}

// ExportSales 导出销售台账为xlsx
func (s *SaleService) ExportSales() (*excelize.File, string, error) {
	sales, err := s.sales.List()
	if err != nil {
		return nil, "", fmt.Errorf("读取销售记录失败: %w", err)
	}

	f := excelize.NewFile()
	sheet := "销售台账"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range saleExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for i, sale := range sales {
		order, err := s.orders.Get(sale.OrderID)
		sku := ""
		if err == nil {
			sku = order.SKU
		}
		row := i + 2
		values := []interface{}{
			sale.OrderID, sku, sale.ChannelName,
			sale.SalePrice, sale.VatRate, sale.VatAmount,
			sale.TotalProductionCost, sale.PackagingCost, sale.AdministrativeCost,
			sale.PromotionCost, sale.TotalCosts, sale.Profit,
			sale.CreatedAt.Format("2006-01-02 15:04"),
		}
		for j, v := range values {
			col, _ := excelize.ColumnNumberToName(j + 1)
			f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, row), v)
		}
	}

	filename := fmt.Sprintf("sales_%s.xlsx", time.Now().Format("20060102"))
	return f, filename, nil
}
