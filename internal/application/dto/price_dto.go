package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceEntry one item's price for the bulk monthly upsert.
type PriceEntry struct {
	ItemID    string          `json:"item_id" validate:"required"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Note      string          `json:"note"`
}

// BulkUpsertPricesRequest sets many item prices for one month at once. The
// operation is idempotent: re-submitting replaces the same rows.
type BulkUpsertPricesRequest struct {
	PriceMonth string       `json:"price_month" validate:"required,len=7"` // YYYY-MM
	Prices     []PriceEntry `json:"prices" validate:"required,min=1"`
}

// PriceResponse one stored price row.
type PriceResponse struct {
	ID         string          `json:"id"`
	ItemID     string          `json:"item_id"`
	ItemCode   string          `json:"item_code,omitempty"`
	ItemName   string          `json:"item_name,omitempty"`
	PriceMonth string          `json:"price_month"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Note       string          `json:"note,omitempty"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ResolvedPriceResponse the effective price of an item for a month, with the
// source month it was carried forward from (or "master" fallback).
type ResolvedPriceResponse struct {
	ItemID      string          `json:"item_id"`
	PriceMonth  string          `json:"price_month"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	SourceMonth string          `json:"source_month,omitempty"`
	FromMaster  bool            `json:"from_master,omitempty"`
}

// PriceListResponse one month's price rows.
type PriceListResponse struct {
	PriceMonth string          `json:"price_month"`
	Items      []PriceResponse `json:"items"`
}
