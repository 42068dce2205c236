package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Inventory transaction types. The ledger is append-only; stock direction is
// derived from the type.
const (
	TxTypeReceiving     = "receiving"      // 입고
	TxTypeProductionIn  = "production_in"  // 생산 입고 (output of a process)
	TxTypeProductionOut = "production_out" // 생산 투입 (input consumed)
	TxTypeShipping      = "shipping"       // 출고
	TxTypeAdjustment    = "adjustment"     // 재고 조정 (signed quantity as-is)
)

// InventoryTransaction is one append-only ledger row affecting an item's stock.
type InventoryTransaction struct {
	ID              string
	TransactionType string
	ItemID          string
	Quantity        decimal.Decimal // always positive except adjustment, which is signed
	UnitPrice       decimal.Decimal
	TransactionDate time.Time
	LotNo           string
	CompanyID       string // counterparty for receiving/shipping
	Remarks         string
	CreatedBy       string
	CreatedAt       time.Time
}

// StockDelta returns the signed stock change this transaction applies.
func (t *InventoryTransaction) StockDelta() decimal.Decimal {
	switch t.TransactionType {
	case TxTypeReceiving, TxTypeProductionIn:
		return t.Quantity
	case TxTypeShipping, TxTypeProductionOut:
		return t.Quantity.Neg()
	case TxTypeAdjustment:
		return t.Quantity
	default:
		return decimal.Zero
	}
}
