package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest input to create an item master row.
type CreateItemRequest struct {
	ItemCode       string          `json:"item_code" validate:"required,min=1,max=50"`
	ItemName       string          `json:"item_name" validate:"required,min=1,max=200"`
	Spec           string          `json:"spec"`
	ItemCategory   string          `json:"item_category" validate:"required"`
	InventoryType  string          `json:"inventory_type"`
	Unit           string          `json:"unit"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	ScrapUnitPrice decimal.Decimal `json:"scrap_unit_price"`
	SafetyStock    decimal.Decimal `json:"safety_stock"`
	Thickness      decimal.Decimal `json:"thickness"`
	Width          decimal.Decimal `json:"width"`
	Height         decimal.Decimal `json:"height"`
	CustomerID     string          `json:"customer_id"`
	SupplierID     string          `json:"supplier_id"`
}

// UpdateItemRequest partial update; nil fields are left unchanged. Stock is
// not updatable here; it only moves through inventory transactions.
type UpdateItemRequest struct {
	ItemName       *string          `json:"item_name" validate:"omitempty,min=1,max=200"`
	Spec           *string          `json:"spec"`
	ItemCategory   *string          `json:"item_category"`
	InventoryType  *string          `json:"inventory_type"`
	Unit           *string          `json:"unit"`
	UnitPrice      *decimal.Decimal `json:"unit_price"`
	ScrapUnitPrice *decimal.Decimal `json:"scrap_unit_price"`
	SafetyStock    *decimal.Decimal `json:"safety_stock"`
	Thickness      *decimal.Decimal `json:"thickness"`
	Width          *decimal.Decimal `json:"width"`
	Height         *decimal.Decimal `json:"height"`
	CustomerID     *string          `json:"customer_id"`
	SupplierID     *string          `json:"supplier_id"`
}

// ItemResponse item output.
type ItemResponse struct {
	ID             string          `json:"id"`
	ItemCode       string          `json:"item_code"`
	ItemName       string          `json:"item_name"`
	Spec           string          `json:"spec"`
	ItemCategory   string          `json:"item_category"`
	InventoryType  string          `json:"inventory_type"`
	Unit           string          `json:"unit"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	ScrapUnitPrice decimal.Decimal `json:"scrap_unit_price"`
	CurrentStock   decimal.Decimal `json:"current_stock"`
	SafetyStock    decimal.Decimal `json:"safety_stock"`
	LowStock       bool            `json:"low_stock"`
	Thickness      decimal.Decimal `json:"thickness"`
	Width          decimal.Decimal `json:"width"`
	Height         decimal.Decimal `json:"height"`
	CustomerID     string          `json:"customer_id,omitempty"`
	SupplierID     string          `json:"supplier_id,omitempty"`
	UseYN          string          `json:"use_yn"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ItemListResponse paginated item list.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
