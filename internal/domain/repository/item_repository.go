package repository

import (
	"github.com/shopspring/decimal"
	"github.com/taechang/erp-api/internal/domain/entity"
)

// ItemFilter narrows item listings. Zero values mean "no filter". Search
// matches item_code or item_name (ILIKE).
type ItemFilter struct {
	Category      string
	InventoryType string
	Search        string
	IncludeUnused bool
}

// ItemRepository is the persistence port for the item master.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	GetByCode(itemCode string) (*entity.Item, error)
	// GetByIDs loads a batch of items keyed by id. Used by the BOM cost
	// roll-up to avoid N+1 lookups.
	GetByIDs(ids []string) (map[string]*entity.Item, error)
	Update(item *entity.Item) error
	// UpdateStock applies a signed delta to current_stock. Must be called
	// inside the same transaction as the ledger insert.
	UpdateStock(itemID string, delta decimal.Decimal) error
	List(filter ItemFilter, limit, offset int) ([]*entity.Item, int, error)
	// Upsert inserts or updates by item_code (Excel / legacy CSV import path).
	Upsert(item *entity.Item) error
	SoftDelete(id string) error
}
