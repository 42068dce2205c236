package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BOMEdge is one parent -> child line of a bill of materials. Edges may be
// self-referential or form cycles; that is explicit business policy for rework
// loops, so writes never reject them. Traversals must be cycle-safe instead.
type BOMEdge struct {
	ID               string
	ParentItemID     string
	ChildItemID      string
	QuantityRequired decimal.Decimal // per one unit of parent
	YieldRate        decimal.Decimal // percent; 100 = lossless step
	LevelNo          int
	CustomerID       string // optional customer association for template sheets
	SupplierID       string
	UseYN            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// EffectiveQuantity is the input quantity needed for one unit of parent after
// yield adjustment: quantity_required / (yield_rate/100). A zero or missing
// yield rate is treated as 100%.
func (e *BOMEdge) EffectiveQuantity() decimal.Decimal {
	if e.YieldRate.IsZero() {
		return e.QuantityRequired
	}
	return e.QuantityRequired.Div(e.YieldRate.Div(decimal.NewFromInt(100)))
}
