package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBOMEdgeRequest input for one parent -> child BOM line. Cyclic and
// self-referential lines are accepted (rework loops are business policy).
type CreateBOMEdgeRequest struct {
	ParentItemID     string          `json:"parent_item_id" validate:"required"`
	ChildItemID      string          `json:"child_item_id" validate:"required"`
	QuantityRequired decimal.Decimal `json:"quantity_required"`
	YieldRate        decimal.Decimal `json:"yield_rate"`
	LevelNo          int             `json:"level_no"`
	CustomerID       string          `json:"customer_id"`
	SupplierID       string          `json:"supplier_id"`
}

// CreateBOMBatchRequest creates several lines at once (screen "save all").
type CreateBOMBatchRequest struct {
	Edges []CreateBOMEdgeRequest `json:"edges" validate:"required,min=1"`
}

// UpdateBOMEdgeRequest partial update; nil fields are left unchanged.
type UpdateBOMEdgeRequest struct {
	QuantityRequired *decimal.Decimal `json:"quantity_required"`
	YieldRate        *decimal.Decimal `json:"yield_rate"`
	LevelNo          *int             `json:"level_no"`
	CustomerID       *string          `json:"customer_id"`
	SupplierID       *string          `json:"supplier_id"`
}

// BOMEdgeResponse one stored BOM line, with denormalized item labels.
type BOMEdgeResponse struct {
	ID               string          `json:"id"`
	ParentItemID     string          `json:"parent_item_id"`
	ParentItemCode   string          `json:"parent_item_code,omitempty"`
	ChildItemID      string          `json:"child_item_id"`
	ChildItemCode    string          `json:"child_item_code,omitempty"`
	ChildItemName    string          `json:"child_item_name,omitempty"`
	QuantityRequired decimal.Decimal `json:"quantity_required"`
	YieldRate        decimal.Decimal `json:"yield_rate"`
	LevelNo          int             `json:"level_no"`
	CustomerID       string          `json:"customer_id,omitempty"`
	SupplierID       string          `json:"supplier_id,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// BOMTreeNode one row of the flattened explosion under a parent item.
type BOMTreeNode struct {
	ItemID       string          `json:"item_id"`
	ItemCode     string          `json:"item_code"`
	ItemName     string          `json:"item_name"`
	Level        int             `json:"level"`
	QuantityPer  decimal.Decimal `json:"quantity_per"`  // per one unit of direct parent
	EffectiveQty decimal.Decimal `json:"effective_qty"` // per one unit of the root
	YieldRate    decimal.Decimal `json:"yield_rate"`
	Revisited    bool            `json:"revisited,omitempty"` // cycle cut point
	Leaf         bool            `json:"leaf"`
}

// BOMTreeResponse explosion output.
type BOMTreeResponse struct {
	RootItemID   string        `json:"root_item_id"`
	RootItemCode string        `json:"root_item_code"`
	Nodes        []BOMTreeNode `json:"nodes"`
}

// BOMCostLine one costed line of the roll-up.
type BOMCostLine struct {
	ItemID       string          `json:"item_id"`
	ItemCode     string          `json:"item_code"`
	ItemName     string          `json:"item_name"`
	Level        int             `json:"level"`
	EffectiveQty decimal.Decimal `json:"effective_qty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Amount       decimal.Decimal `json:"amount"`
	ScrapQty     decimal.Decimal `json:"scrap_qty"`
	ScrapRevenue decimal.Decimal `json:"scrap_revenue"`
	PriceMissing bool            `json:"price_missing,omitempty"`
}

// BOMCostResponse material cost roll-up for one root item.
type BOMCostResponse struct {
	RootItemID   string          `json:"root_item_id"`
	RootItemCode string          `json:"root_item_code"`
	PriceMonth   string          `json:"price_month"`
	MaterialCost decimal.Decimal `json:"material_cost"`
	ScrapRevenue decimal.Decimal `json:"scrap_revenue"`
	NetCost      decimal.Decimal `json:"net_cost"`
	Lines        []BOMCostLine   `json:"lines"`
}

// BOMCycle one reported cycle, as item codes.
type BOMCycle struct {
	Path []string `json:"path"`
}

// BOMValidationResponse cycle report over the whole edge set.
type BOMValidationResponse struct {
	HasCycles bool       `json:"has_cycles"`
	Cycles    []BOMCycle `json:"cycles,omitempty"`
}
