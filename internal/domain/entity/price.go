package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemPriceHistory is the unit price of an item for one calendar month.
// PriceMonth uses the 'YYYY-MM' form; (item_id, price_month) is unique.
type ItemPriceHistory struct {
	ID         string
	ItemID     string
	PriceMonth string
	UnitPrice  decimal.Decimal
	Note       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
