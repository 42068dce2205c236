package usecase

import (
	"context"
	"time"

	"github.com/taechang/erp-api/internal/application/dto"
	"github.com/taechang/erp-api/internal/domain"
	"github.com/taechang/erp-api/internal/domain/entity"
	"github.com/taechang/erp-api/internal/domain/repository"
)

// InventoryTxRunner runs a callback inside one database transaction, handing
// it ledger and item repositories bound to that transaction. The ledger row
// and the current_stock update must commit or roll back together.
type InventoryTxRunner interface {
	RunInventory(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		itemRepo repository.ItemRepository,
	) error) error
}

// InventoryUsecase owns the inventory ledger: registering movements, stock
// status, history, the monthly report and lot traceability.
type InventoryUsecase struct {
	txRunner InventoryTxRunner
	inv      repository.InventoryRepository
	items    repository.ItemRepository
	reports  repository.StockReportRepository
}

// NewInventoryUsecase builds the usecase. inv and items are the pool-bound
// repositories for reads; writes go through the runner.
func NewInventoryUsecase(
	txRunner InventoryTxRunner,
	inv repository.InventoryRepository,
	items repository.ItemRepository,
	reports repository.StockReportRepository,
) *InventoryUsecase {
	return &InventoryUsecase{txRunner: txRunner, inv: inv, items: items, reports: reports}
}

func validTxType(t string) bool {
	switch t {
	case entity.TxTypeReceiving, entity.TxTypeProductionIn, entity.TxTypeProductionOut,
		entity.TxTypeShipping, entity.TxTypeAdjustment:
		return true
	}
	return false
}

// Register appends one ledger row and moves the item's stock in the same
// database transaction. Outbound movements that would push stock negative are
// rejected unless the request allows it (adjustments may always go negative).
func (u *InventoryUsecase) Register(ctx context.Context, req *dto.RegisterTransactionRequest, createdBy string) (*dto.TransactionResponse, error) {
	if !validTxType(req.TransactionType) {
		return nil, domain.ErrInvalidInput
	}
	if req.TransactionType != entity.TxTypeAdjustment && !req.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if req.TransactionType == entity.TxTypeAdjustment && req.Quantity.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if req.TransactionDate.IsZero() {
		req.TransactionDate = time.Now()
	}

	tx := &entity.InventoryTransaction{
		TransactionType: req.TransactionType,
		ItemID:          req.ItemID,
		Quantity:        req.Quantity,
		UnitPrice:       req.UnitPrice,
		TransactionDate: req.TransactionDate,
		LotNo:           req.LotNo,
		CompanyID:       req.CompanyID,
		Remarks:         req.Remarks,
		CreatedBy:       createdBy,
		CreatedAt:       time.Now(),
	}

	var resp *dto.TransactionResponse
	err := u.txRunner.RunInventory(ctx, func(
		invRepo repository.InventoryRepository,
		itemRepo repository.ItemRepository,
	) error {
		item, err := itemRepo.GetByID(req.ItemID)
		if err != nil {
			return err
		}
		if item == nil || !item.Active() {
			return domain.ErrNotFound
		}

		delta := tx.StockDelta()
		after := item.CurrentStock.Add(delta)
		if after.IsNegative() && !req.AllowNegative && req.TransactionType != entity.TxTypeAdjustment {
			return domain.ErrInsufficientStock
		}

		if err := invRepo.Create(tx); err != nil {
			return err
		}
		if err := itemRepo.UpdateStock(item.ID, delta); err != nil {
			return err
		}

		resp = toTransactionResponse(tx, item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// History returns a filtered, paginated page of the ledger.
func (u *InventoryUsecase) History(filter repository.TransactionFilter, page dto.PageRequest) (*dto.TransactionListResponse, error) {
	page.DefaultPage()
	txs, total, err := u.inv.List(filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items, err := u.itemsFor(txs)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, *toTransactionResponse(tx, items[tx.ItemID]))
	}
	return &dto.TransactionListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// StockStatus lists current stock levels with the shortage flag. lowOnly
// restricts the page to items under their safety stock.
func (u *InventoryUsecase) StockStatus(filter repository.ItemFilter, lowOnly bool, page dto.PageRequest) (*dto.StockStatusResponse, error) {
	page.DefaultPage()
	items, total, err := u.items.List(filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockStatusRow, 0, len(items))
	for _, it := range items {
		if lowOnly && !it.BelowSafetyStock() {
			continue
		}
		out = append(out, dto.StockStatusRow{
			ItemID:       it.ID,
			ItemCode:     it.ItemCode,
			ItemName:     it.ItemName,
			Spec:         it.Spec,
			Unit:         it.Unit,
			CurrentStock: it.CurrentStock,
			SafetyStock:  it.SafetyStock,
			LowStock:     it.BelowSafetyStock(),
		})
	}
	return &dto.StockStatusResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// MonthlyReport builds the opening/movement/closing report for one month.
func (u *InventoryUsecase) MonthlyReport(ctx context.Context, month string) (*dto.MonthlyStockReportResponse, error) {
	if _, err := time.Parse("2006-01", month); err != nil {
		return nil, domain.ErrInvalidInput
	}
	rows, err := u.reports.MonthlyReport(ctx, month)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MonthlyStockReportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.MonthlyStockReportRow{
			ItemID:        r.ItemID,
			ItemCode:      r.ItemCode,
			ItemName:      r.ItemName,
			Unit:          r.Unit,
			OpeningStock:  r.OpeningStock,
			ReceivingQty:  r.ReceivingQty,
			ProductionIn:  r.ProductionIn,
			ProductionOut: r.ProductionOut,
			ShippingQty:   r.ShippingQty,
			AdjustmentQty: r.AdjustmentQty,
			ClosingStock:  r.ClosingStock,
		})
	}
	return &dto.MonthlyStockReportResponse{Month: month, Rows: out}, nil
}

// Traceability returns every ledger row carrying the lot number, oldest first,
// tying a production output back to its consumed inputs.
func (u *InventoryUsecase) Traceability(lotNo string) (*dto.TraceabilityResponse, error) {
	if lotNo == "" {
		return nil, domain.ErrInvalidInput
	}
	txs, err := u.inv.ListByLot(lotNo)
	if err != nil {
		return nil, err
	}
	items, err := u.itemsFor(txs)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, *toTransactionResponse(tx, items[tx.ItemID]))
	}
	return &dto.TraceabilityResponse{LotNo: lotNo, Transactions: out}, nil
}

// itemsFor batch-loads the items referenced by a transaction slice.
func (u *InventoryUsecase) itemsFor(txs []*entity.InventoryTransaction) (map[string]*entity.Item, error) {
	seen := make(map[string]struct{}, len(txs))
	ids := make([]string, 0, len(txs))
	for _, tx := range txs {
		if _, ok := seen[tx.ItemID]; ok {
			continue
		}
		seen[tx.ItemID] = struct{}{}
		ids = append(ids, tx.ItemID)
	}
	return u.items.GetByIDs(ids)
}

func toTransactionResponse(tx *entity.InventoryTransaction, item *entity.Item) *dto.TransactionResponse {
	resp := &dto.TransactionResponse{
		ID:              tx.ID,
		TransactionType: tx.TransactionType,
		ItemID:          tx.ItemID,
		Quantity:        tx.Quantity,
		UnitPrice:       tx.UnitPrice,
		TransactionDate: tx.TransactionDate,
		LotNo:           tx.LotNo,
		CompanyID:       tx.CompanyID,
		Remarks:         tx.Remarks,
		CreatedBy:       tx.CreatedBy,
		CreatedAt:       tx.CreatedAt,
	}
	if item != nil {
		resp.ItemCode = item.ItemCode
		resp.ItemName = item.ItemName
	}
	return resp
}
