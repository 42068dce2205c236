package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade record types.
const (
	TradeTypeSales    = "sales"    // 매출
	TradeTypePurchase = "purchase" // 매입
)

// TradeRecord is one sales or purchase line against a company. SupplyAmount is
// quantity × unit_price; TaxAmount is the 10% VAT on the supply amount.
type TradeRecord struct {
	ID           string
	TradeType    string
	CompanyID    string
	ItemID       string
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	SupplyAmount decimal.Decimal
	TaxAmount    decimal.Decimal
	RecordDate   time.Time
	Remarks      string
	CreatedBy    string
	CreatedAt    time.Time
}

// TotalAmount is supply + tax.
func (t *TradeRecord) TotalAmount() decimal.Decimal {
	return t.SupplyAmount.Add(t.TaxAmount)
}

// Settlement direction.
const (
	SettlementCollection = "collection" // 수금, money received from a customer
	SettlementPayment    = "payment"    // 지급, money paid to a supplier
)

// Settlement is a collection or payment against a company.
type Settlement struct {
	ID             string
	SettlementType string
	CompanyID      string
	Amount         decimal.Decimal
	Method         string // cash, transfer, note
	RecordDate     time.Time
	Remarks        string
	CreatedBy      string
	CreatedAt      time.Time
}
