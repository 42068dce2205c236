package excel

import (
	"github.com/xuri/excelize/v2"

	"github.com/taechang/erp-api/internal/application/usecase"
	"github.com/taechang/erp-api/internal/domain/repository"
)

var stockReportHeaders = []string{
	"품목코드", "품목명", "단위",
	"기초재고", "입고", "생산입고", "생산투입", "출고", "조정", "기말재고",
}

var _ usecase.StockReportRenderer = (*StockReportWorkbook)(nil)

// StockReportWorkbook renders the monthly stock report.
type StockReportWorkbook struct{}

// NewStockReportWorkbook builds the renderer.
func NewStockReportWorkbook() *StockReportWorkbook { return &StockReportWorkbook{} }

// Render writes one row per item: opening balance, movement by type, closing.
func (c *StockReportWorkbook) Render(month string, rows []repository.MonthlyStockRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "재고수불부"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheet, "A1", month+" 재고수불부"); err != nil {
		return nil, err
	}
	for col, h := range stockReportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 2)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	for r, row := range rows {
		values := []interface{}{
			row.ItemCode, row.ItemName, row.Unit,
			row.OpeningStock.InexactFloat64(),
			row.ReceivingQty.InexactFloat64(),
			row.ProductionIn.InexactFloat64(),
			row.ProductionOut.InexactFloat64(),
			row.ShippingQty.InexactFloat64(),
			row.AdjustmentQty.InexactFloat64(),
			row.ClosingStock.InexactFloat64(),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, r+3)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
