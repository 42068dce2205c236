package repository

import "github.com/taechang/erp-api/internal/domain/entity"

// PriceRepository is the persistence port for monthly unit prices.
type PriceRepository interface {
	// Upsert inserts or replaces the price for (item_id, price_month).
	Upsert(price *entity.ItemPriceHistory) error
	GetByItemAndMonth(itemID, priceMonth string) (*entity.ItemPriceHistory, error)
	// GetLatestBefore returns the most recent price row at or before
	// priceMonth, or nil. Carry-forward resolution depends on this.
	GetLatestBefore(itemID, priceMonth string) (*entity.ItemPriceHistory, error)
	// GetForItemsAndMonth batch-resolves carry-forward prices for an id set
	// in one query (DISTINCT ON item_id ordered by price_month DESC).
	GetForItemsAndMonth(itemIDs []string, priceMonth string) (map[string]*entity.ItemPriceHistory, error)
	ListByMonth(priceMonth string) ([]*entity.ItemPriceHistory, error)
	ListByItem(itemID string) ([]*entity.ItemPriceHistory, error)
	Delete(id string) error
}
