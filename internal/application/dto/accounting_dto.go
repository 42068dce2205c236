package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTradeRequest input to record one sales or purchase line.
type CreateTradeRequest struct {
	TradeType    string          `json:"trade_type" validate:"required"` // sales | purchase
	CompanyID    string          `json:"company_id" validate:"required"`
	ItemID       string          `json:"item_id"`
	TradeDate    time.Time       `json:"trade_date"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	SupplyAmount decimal.Decimal `json:"supply_amount"`
	TaxAmount    decimal.Decimal `json:"tax_amount"`
	Remarks      string          `json:"remarks"`
}

// UpdateTradeRequest partial update; nil fields are left unchanged.
type UpdateTradeRequest struct {
	CompanyID    *string          `json:"company_id"`
	ItemID       *string          `json:"item_id"`
	TradeDate    *time.Time       `json:"trade_date"`
	Quantity     *decimal.Decimal `json:"quantity"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	SupplyAmount *decimal.Decimal `json:"supply_amount"`
	TaxAmount    *decimal.Decimal `json:"tax_amount"`
	Remarks      *string          `json:"remarks"`
}

// TradeResponse one trade record with labels.
type TradeResponse struct {
	ID           string          `json:"id"`
	TradeType    string          `json:"trade_type"`
	CompanyID    string          `json:"company_id"`
	CompanyName  string          `json:"company_name,omitempty"`
	ItemID       string          `json:"item_id,omitempty"`
	ItemName     string          `json:"item_name,omitempty"`
	TradeDate    time.Time       `json:"trade_date"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	SupplyAmount decimal.Decimal `json:"supply_amount"`
	TaxAmount    decimal.Decimal `json:"tax_amount"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Remarks      string          `json:"remarks,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// TradeListResponse paginated trade records.
type TradeListResponse struct {
	Items []TradeResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// CreateSettlementRequest input to record one collection or payment.
type CreateSettlementRequest struct {
	SettlementType string          `json:"settlement_type" validate:"required"` // collection | payment
	CompanyID      string          `json:"company_id" validate:"required"`
	SettleDate     time.Time       `json:"settle_date"`
	Amount         decimal.Decimal `json:"amount"`
	Method         string          `json:"method"`
	Remarks        string          `json:"remarks"`
}

// SettlementResponse one settlement row with the company label.
type SettlementResponse struct {
	ID             string          `json:"id"`
	SettlementType string          `json:"settlement_type"`
	CompanyID      string          `json:"company_id"`
	CompanyName    string          `json:"company_name,omitempty"`
	SettleDate     time.Time       `json:"settle_date"`
	Amount         decimal.Decimal `json:"amount"`
	Method         string          `json:"method,omitempty"`
	Remarks        string          `json:"remarks,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// SettlementListResponse paginated settlements.
type SettlementListResponse struct {
	Items []SettlementResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// CompanySummaryRow one company's line of the monthly accounting summary.
// Outstanding carries over all history up to the end of the month.
type CompanySummaryRow struct {
	CompanyID     string          `json:"company_id"`
	CompanyCode   string          `json:"company_code"`
	CompanyName   string          `json:"company_name"`
	SalesAmount   decimal.Decimal `json:"sales_amount"`
	PurchaseAmt   decimal.Decimal `json:"purchase_amount"`
	CollectedAmt  decimal.Decimal `json:"collected_amount"`
	PaidAmt       decimal.Decimal `json:"paid_amount"`
	Receivable    decimal.Decimal `json:"receivable"`
	Payable       decimal.Decimal `json:"payable"`
}

// AccountingSummaryResponse monthly accounting summary.
type AccountingSummaryResponse struct {
	Month string              `json:"month"`
	Rows  []CompanySummaryRow `json:"rows"`
}
