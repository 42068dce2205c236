package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/taechang/erp-api/internal/domain/entity"
)

// TransactionFilter narrows ledger queries.
type TransactionFilter struct {
	ItemID          string
	TransactionType string
	LotNo           string
	DateFrom        time.Time
	DateTo          time.Time
}

// InventoryRepository is the persistence port for the inventory ledger.
type InventoryRepository interface {
	Create(tx *entity.InventoryTransaction) error
	GetByID(id string) (*entity.InventoryTransaction, error)
	List(filter TransactionFilter, limit, offset int) ([]*entity.InventoryTransaction, int, error)
	// ListByLot returns every ledger row carrying the lot number, oldest
	// first. Used by the traceability query.
	ListByLot(lotNo string) ([]*entity.InventoryTransaction, error)
}

// MonthlyStockRow is one line of the monthly stock report: opening balance,
// movement totals by direction and the derived closing balance.
type MonthlyStockRow struct {
	ItemID        string
	ItemCode      string
	ItemName      string
	Unit          string
	OpeningStock  decimal.Decimal
	ReceivingQty  decimal.Decimal
	ProductionIn  decimal.Decimal
	ProductionOut decimal.Decimal
	ShippingQty   decimal.Decimal
	AdjustmentQty decimal.Decimal
	ClosingStock  decimal.Decimal
}

// StockReportRepository provides read-only grouped queries over the ledger.
type StockReportRepository interface {
	// MonthlyReport aggregates per-item movement for month ('YYYY-MM'):
	// opening balance from rows before the month, per-type sums within it.
	MonthlyReport(ctx context.Context, month string) ([]MonthlyStockRow, error)
}
