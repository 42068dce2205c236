package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterTransactionRequest input to append one inventory ledger row.
type RegisterTransactionRequest struct {
	TransactionType string          `json:"transaction_type" validate:"required"`
	ItemID          string          `json:"item_id" validate:"required"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TransactionDate time.Time       `json:"transaction_date"`
	LotNo           string          `json:"lot_no"`
	CompanyID       string          `json:"company_id"`
	Remarks         string          `json:"remarks"`
	// AllowNegative lets shipping/production_out push stock below zero.
	AllowNegative bool `json:"allow_negative"`
}

// TransactionResponse one ledger row, with the item label denormalized.
type TransactionResponse struct {
	ID              string          `json:"id"`
	TransactionType string          `json:"transaction_type"`
	ItemID          string          `json:"item_id"`
	ItemCode        string          `json:"item_code,omitempty"`
	ItemName        string          `json:"item_name,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TransactionDate time.Time       `json:"transaction_date"`
	LotNo           string          `json:"lot_no,omitempty"`
	CompanyID       string          `json:"company_id,omitempty"`
	Remarks         string          `json:"remarks,omitempty"`
	CreatedBy       string          `json:"created_by,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// TransactionListResponse paginated ledger page.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// StockStatusRow current stock of one item with the shortage flag.
type StockStatusRow struct {
	ItemID       string          `json:"item_id"`
	ItemCode     string          `json:"item_code"`
	ItemName     string          `json:"item_name"`
	Spec         string          `json:"spec"`
	Unit         string          `json:"unit"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	SafetyStock  decimal.Decimal `json:"safety_stock"`
	LowStock     bool            `json:"low_stock"`
}

// StockStatusResponse stock status listing.
type StockStatusResponse struct {
	Items []StockStatusRow `json:"items"`
	Page  PageResponse     `json:"page"`
}

// MonthlyStockReportRow one line of the monthly stock report.
type MonthlyStockReportRow struct {
	ItemID        string          `json:"item_id"`
	ItemCode      string          `json:"item_code"`
	ItemName      string          `json:"item_name"`
	Unit          string          `json:"unit"`
	OpeningStock  decimal.Decimal `json:"opening_stock"`
	ReceivingQty  decimal.Decimal `json:"receiving_qty"`
	ProductionIn  decimal.Decimal `json:"production_in"`
	ProductionOut decimal.Decimal `json:"production_out"`
	ShippingQty   decimal.Decimal `json:"shipping_qty"`
	AdjustmentQty decimal.Decimal `json:"adjustment_qty"`
	ClosingStock  decimal.Decimal `json:"closing_stock"`
}

// MonthlyStockReportResponse monthly stock report.
type MonthlyStockReportResponse struct {
	Month string                  `json:"month"`
	Rows  []MonthlyStockReportRow `json:"rows"`
}

// TraceabilityResponse the ledger chain sharing one lot number.
type TraceabilityResponse struct {
	LotNo        string                `json:"lot_no"`
	Transactions []TransactionResponse `json:"transactions"`
}
