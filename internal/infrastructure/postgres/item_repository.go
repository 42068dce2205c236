package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/taechang/erp-api/internal/domain"
	"github.com/taechang/erp-api/internal/domain/entity"
	"github.com/taechang/erp-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, item_code, item_name, spec, item_category, inventory_type, unit,
	unit_price, scrap_unit_price, current_stock, safety_stock,
	thickness, width, height, customer_id, supplier_id, use_yn, created_at, updated_at`

// ItemRepo implements the item master port over PostgreSQL (pool or tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository builds the adapter. Pass a pool or a tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persists a new item. Stock starts at whatever the caller set
// (normally zero; imports may carry an opening balance).
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.ItemCode, item.ItemName, item.Spec, item.ItemCategory, item.InventoryType,
		item.Unit, item.UnitPrice, item.ScrapUnitPrice, item.CurrentStock, item.SafetyStock,
		item.Thickness, item.Width, item.Height,
		nullStr(item.CustomerID), nullStr(item.SupplierID), item.UseYN, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID returns the item or nil when absent.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
	return scanItem(row)
}

// GetByCode returns the item by its business key or nil.
func (r *ItemRepo) GetByCode(itemCode string) (*entity.Item, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+itemColumns+` FROM items WHERE item_code = $1`, itemCode)
	return scanItem(row)
}

// GetByIDs batch-loads items keyed by id. BOM costing calls this once per
// roll-up instead of one query per node.
func (r *ItemRepo) GetByIDs(ids []string) (map[string]*entity.Item, error) {
	if len(ids) == 0 {
		return map[string]*entity.Item{}, nil
	}
	rows, err := r.q.Query(context.Background(),
		`SELECT `+itemColumns+` FROM items WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("batch get items: %w", err)
	}
	defer rows.Close()

	out := make(map[string]*entity.Item, len(ids))
	for rows.Next() {
		item, err := scanItemFromRows(rows)
		if err != nil {
			return nil, err
		}
		out[item.ID] = item
	}
	return out, rows.Err()
}

// Update rewrites the editable master fields. CurrentStock is excluded; it
// only moves through UpdateStock inside a ledger transaction.
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items SET item_name = $2, spec = $3, item_category = $4, inventory_type = $5,
			unit = $6, unit_price = $7, scrap_unit_price = $8, safety_stock = $9,
			thickness = $10, width = $11, height = $12,
			customer_id = $13, supplier_id = $14, use_yn = $15, updated_at = $16
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.ItemName, item.Spec, item.ItemCategory, item.InventoryType,
		item.Unit, item.UnitPrice, item.ScrapUnitPrice, item.SafetyStock,
		item.Thickness, item.Width, item.Height,
		nullStr(item.CustomerID), nullStr(item.SupplierID), item.UseYN, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// UpdateStock applies a signed delta to current_stock.
func (r *ItemRepo) UpdateStock(itemID string, delta decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE items SET current_stock = current_stock + $2, updated_at = now() WHERE id = $1`,
		itemID, delta,
	)
	if err != nil {
		return fmt.Errorf("update item stock: %w", err)
	}
	return nil
}

// List returns a filtered page plus the total count.
func (r *ItemRepo) List(filter repository.ItemFilter, limit, offset int) ([]*entity.Item, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	n := 0
	if !filter.IncludeUnused {
		where += ` AND use_yn = 'Y'`
	}
	if filter.Category != "" {
		n++
		where += fmt.Sprintf(` AND item_category = $%d`, n)
		args = append(args, filter.Category)
	}
	if filter.InventoryType != "" {
		n++
		where += fmt.Sprintf(` AND inventory_type = $%d`, n)
		args = append(args, filter.InventoryType)
	}
	if filter.Search != "" {
		n++
		where += fmt.Sprintf(` AND (item_code ILIKE $%d OR item_name ILIKE $%d)`, n, n)
		args = append(args, "%"+filter.Search+"%")
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM items`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	query := `SELECT ` + itemColumns + ` FROM items` + where +
		fmt.Sprintf(` ORDER BY item_code LIMIT $%d OFFSET $%d`, n+1, n+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var list []*entity.Item
	for rows.Next() {
		item, err := scanItemFromRows(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, item)
	}
	return list, total, rows.Err()
}

// Upsert inserts or updates by item_code. Import path: re-importing the same
// sheet is idempotent, and stock is left untouched on update.
func (r *ItemRepo) Upsert(item *entity.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (item_code) DO UPDATE SET
			item_name = EXCLUDED.item_name, spec = EXCLUDED.spec,
			item_category = EXCLUDED.item_category, inventory_type = EXCLUDED.inventory_type,
			unit = EXCLUDED.unit, unit_price = EXCLUDED.unit_price,
			scrap_unit_price = EXCLUDED.scrap_unit_price, safety_stock = EXCLUDED.safety_stock,
			thickness = EXCLUDED.thickness, width = EXCLUDED.width, height = EXCLUDED.height,
			customer_id = EXCLUDED.customer_id, supplier_id = EXCLUDED.supplier_id,
			use_yn = EXCLUDED.use_yn, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.ItemCode, item.ItemName, item.Spec, item.ItemCategory, item.InventoryType,
		item.Unit, item.UnitPrice, item.ScrapUnitPrice, item.CurrentStock, item.SafetyStock,
		item.Thickness, item.Width, item.Height,
		nullStr(item.CustomerID), nullStr(item.SupplierID), item.UseYN, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert item: %w", err)
	}
	return nil
}

// SoftDelete flips use_yn to 'N'.
func (r *ItemRepo) SoftDelete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE items SET use_yn = 'N', updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete item: %w", err)
	}
	return nil
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var i entity.Item
	var customerID, supplierID *string
	err := row.Scan(
		&i.ID, &i.ItemCode, &i.ItemName, &i.Spec, &i.ItemCategory, &i.InventoryType, &i.Unit,
		&i.UnitPrice, &i.ScrapUnitPrice, &i.CurrentStock, &i.SafetyStock,
		&i.Thickness, &i.Width, &i.Height, &customerID, &supplierID, &i.UseYN, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan item: %w", err)
	}
	i.CustomerID = deref(customerID)
	i.SupplierID = deref(supplierID)
	return &i, nil
}

func scanItemFromRows(rows pgx.Rows) (*entity.Item, error) {
	item, err := scanItem(rows)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("scan item: unexpected empty row")
	}
	return item, nil
}

func nullStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
