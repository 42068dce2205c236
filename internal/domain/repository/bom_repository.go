package repository

import "github.com/taechang/erp-api/internal/domain/entity"

// BOMRepository is the persistence port for BOM edges. Cyclic and
// self-referential edges are stored as-is; validation is a separate read path.
type BOMRepository interface {
	Create(edge *entity.BOMEdge) error
	GetByID(id string) (*entity.BOMEdge, error)
	GetByPair(parentItemID, childItemID string) (*entity.BOMEdge, error)
	Update(edge *entity.BOMEdge) error
	Delete(id string) error
	// Upsert inserts or updates by (parent_item_id, child_item_id). Used by
	// the Excel import so re-importing a template is idempotent.
	Upsert(edge *entity.BOMEdge) error
	ListByParent(parentItemID string) ([]*entity.BOMEdge, error)
	// ListAll returns every active edge; the graph routines (explosion,
	// cycle report, cost roll-up) traverse in memory.
	ListAll() ([]*entity.BOMEdge, error)
	// ListByCustomer returns active edges whose customer association matches,
	// for the per-customer template sheets.
	ListByCustomer(customerID string) ([]*entity.BOMEdge, error)
	// ParentItemIDs returns distinct parent ids having active edges,
	// optionally restricted to one customer.
	ParentItemIDs(customerID string) ([]string, error)
}
