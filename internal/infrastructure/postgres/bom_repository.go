package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taechang/erp-api/internal/domain"
	"github.com/taechang/erp-api/internal/domain/entity"
	"github.com/taechang/erp-api/internal/domain/repository"
)

var _ repository.BOMRepository = (*BOMRepo)(nil)

const bomColumns = `id, parent_item_id, child_item_id, quantity_required, yield_rate,
	level_no, customer_id, supplier_id, use_yn, created_at, updated_at`

// BOMRepo implements the BOM edge port over PostgreSQL. Cyclic edges are
// stored without complaint; validation is a separate read path.
type BOMRepo struct {
	q Querier
}

// NewBOMRepository builds the adapter. Pass a pool or a tx (Querier).
func NewBOMRepository(q Querier) *BOMRepo {
	return &BOMRepo{q: q}
}

// Create persists an edge. (parent, child) duplicates map to ErrDuplicate.
func (r *BOMRepo) Create(edge *entity.BOMEdge) error {
	query := `
		INSERT INTO bom_edges (` + bomColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		edge.ID, edge.ParentItemID, edge.ChildItemID, edge.QuantityRequired, edge.YieldRate,
		edge.LevelNo, nullStr(edge.CustomerID), nullStr(edge.SupplierID),
		edge.UseYN, edge.CreatedAt, edge.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert bom edge: %w", err)
	}
	return nil
}

// GetByID returns the edge or nil when absent.
func (r *BOMRepo) GetByID(id string) (*entity.BOMEdge, error) {
	return r.getOne(`SELECT `+bomColumns+` FROM bom_edges WHERE id = $1`, id)
}

// GetByPair returns the active edge for (parent, child) or nil.
func (r *BOMRepo) GetByPair(parentItemID, childItemID string) (*entity.BOMEdge, error) {
	var e entity.BOMEdge
	var customerID, supplierID *string
	err := r.q.QueryRow(context.Background(),
		`SELECT `+bomColumns+` FROM bom_edges WHERE parent_item_id = $1 AND child_item_id = $2`,
		parentItemID, childItemID,
	).Scan(
		&e.ID, &e.ParentItemID, &e.ChildItemID, &e.QuantityRequired, &e.YieldRate,
		&e.LevelNo, &customerID, &supplierID, &e.UseYN, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bom edge by pair: %w", err)
	}
	e.CustomerID = deref(customerID)
	e.SupplierID = deref(supplierID)
	return &e, nil
}

func (r *BOMRepo) getOne(query string, arg any) (*entity.BOMEdge, error) {
	var e entity.BOMEdge
	var customerID, supplierID *string
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&e.ID, &e.ParentItemID, &e.ChildItemID, &e.QuantityRequired, &e.YieldRate,
		&e.LevelNo, &customerID, &supplierID, &e.UseYN, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bom edge: %w", err)
	}
	e.CustomerID = deref(customerID)
	e.SupplierID = deref(supplierID)
	return &e, nil
}

// Update rewrites the editable fields of an edge.
func (r *BOMRepo) Update(edge *entity.BOMEdge) error {
	query := `
		UPDATE bom_edges SET quantity_required = $2, yield_rate = $3, level_no = $4,
			customer_id = $5, supplier_id = $6, use_yn = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		edge.ID, edge.QuantityRequired, edge.YieldRate, edge.LevelNo,
		nullStr(edge.CustomerID), nullStr(edge.SupplierID), edge.UseYN, edge.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update bom edge: %w", err)
	}
	return nil
}

// Delete removes an edge (hard delete; BOM lines are redefinable master data).
func (r *BOMRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM bom_edges WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete bom edge: %w", err)
	}
	return nil
}

// Upsert inserts or updates by (parent_item_id, child_item_id) so template
// re-imports are idempotent.
func (r *BOMRepo) Upsert(edge *entity.BOMEdge) error {
	query := `
		INSERT INTO bom_edges (` + bomColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (parent_item_id, child_item_id) DO UPDATE SET
			quantity_required = EXCLUDED.quantity_required, yield_rate = EXCLUDED.yield_rate,
			level_no = EXCLUDED.level_no, customer_id = EXCLUDED.customer_id,
			supplier_id = EXCLUDED.supplier_id, use_yn = EXCLUDED.use_yn,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		edge.ID, edge.ParentItemID, edge.ChildItemID, edge.QuantityRequired, edge.YieldRate,
		edge.LevelNo, nullStr(edge.CustomerID), nullStr(edge.SupplierID),
		edge.UseYN, edge.CreatedAt, edge.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert bom edge: %w", err)
	}
	return nil
}

// ListByParent returns the active edges under one parent.
func (r *BOMRepo) ListByParent(parentItemID string) ([]*entity.BOMEdge, error) {
	return r.list(`SELECT `+bomColumns+` FROM bom_edges
		WHERE parent_item_id = $1 AND use_yn = 'Y' ORDER BY level_no, child_item_id`, parentItemID)
}

// ListAll returns every active edge for in-memory traversal.
func (r *BOMRepo) ListAll() ([]*entity.BOMEdge, error) {
	return r.list(`SELECT ` + bomColumns + ` FROM bom_edges WHERE use_yn = 'Y' ORDER BY parent_item_id, level_no`)
}

// ListByCustomer returns active edges associated with one customer.
func (r *BOMRepo) ListByCustomer(customerID string) ([]*entity.BOMEdge, error) {
	return r.list(`SELECT `+bomColumns+` FROM bom_edges
		WHERE customer_id = $1 AND use_yn = 'Y' ORDER BY parent_item_id, level_no`, customerID)
}

// ParentItemIDs returns distinct parents of active edges, optionally for one customer.
func (r *BOMRepo) ParentItemIDs(customerID string) ([]string, error) {
	query := `SELECT DISTINCT parent_item_id FROM bom_edges WHERE use_yn = 'Y'`
	args := []any{}
	if customerID != "" {
		query += ` AND customer_id = $1`
		args = append(args, customerID)
	}
	query += ` ORDER BY parent_item_id`
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("bom parent ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan bom parent id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *BOMRepo) list(query string, args ...any) ([]*entity.BOMEdge, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bom edges: %w", err)
	}
	defer rows.Close()

	var list []*entity.BOMEdge
	for rows.Next() {
		var e entity.BOMEdge
		var customerID, supplierID *string
		if err := rows.Scan(
			&e.ID, &e.ParentItemID, &e.ChildItemID, &e.QuantityRequired, &e.YieldRate,
			&e.LevelNo, &customerID, &supplierID, &e.UseYN, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan bom edge: %w", err)
		}
		e.CustomerID = deref(customerID)
		e.SupplierID = deref(supplierID)
		list = append(list, &e)
	}
	return list, rows.Err()
}
