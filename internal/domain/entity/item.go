package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item categories used by the master data screens.
const (
	ItemCategoryRawMaterial  = "raw_material"
	ItemCategorySemiFinished = "semi_finished"
	ItemCategoryFinished     = "finished"
	ItemCategoryConsumable   = "consumable"
)

// Item is a row of the item master (품목). CurrentStock is owned by the
// inventory ledger: it is only ever updated inside the same transaction that
// inserts the ledger row.
type Item struct {
	ID             string
	ItemCode       string // unique business key
	ItemName       string
	Spec           string
	ItemCategory   string
	InventoryType  string // e.g. "mm_steel", "coil", "part"
	Unit           string // EA, KG, M ...
	UnitPrice      decimal.Decimal
	ScrapUnitPrice decimal.Decimal // revenue per scrap unit, netted in BOM costing
	CurrentStock   decimal.Decimal
	SafetyStock    decimal.Decimal
	Thickness      decimal.Decimal // mm
	Width          decimal.Decimal // mm
	Height         decimal.Decimal // mm
	CustomerID     string          // optional: owning customer
	SupplierID     string          // optional: main supplier
	UseYN          string          // 'Y' active, 'N' soft-deleted
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Active reports whether the item is usable (not soft-deleted).
func (i *Item) Active() bool { return i.UseYN != "N" }

// BelowSafetyStock reports whether current stock is under the safety level.
func (i *Item) BelowSafetyStock() bool {
	return i.SafetyStock.IsPositive() && i.CurrentStock.LessThan(i.SafetyStock)
}
