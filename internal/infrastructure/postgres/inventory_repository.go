package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/taechang/erp-api/internal/domain/entity"
	"github.com/taechang/erp-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

const txColumns = `id, transaction_type, item_id, quantity, unit_price,
	transaction_date, lot_no, company_id, remarks, created_by, created_at`

// InventoryRepo implements the inventory ledger port over PostgreSQL. Rows are
// append-only; there is no update or delete.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository builds the adapter. Pass a pool or a tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Create appends one ledger row.
func (r *InventoryRepo) Create(t *entity.InventoryTransaction) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_transactions (` + txColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	// lot_no and created_by are NOT NULL DEFAULT '': an explicit NULL would
	// violate the constraint, so empty strings go in as-is. Only the nullable
	// company_id FK takes NULL.
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.TransactionType, t.ItemID, t.Quantity, t.UnitPrice,
		t.TransactionDate, t.LotNo, nullStr(t.CompanyID), t.Remarks,
		t.CreatedBy, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory transaction: %w", err)
	}
	return nil
}

// GetByID returns the ledger row or nil when absent.
func (r *InventoryRepo) GetByID(id string) (*entity.InventoryTransaction, error) {
	var t entity.InventoryTransaction
	var companyID *string
	err := r.q.QueryRow(context.Background(),
		`SELECT `+txColumns+` FROM inventory_transactions WHERE id = $1`, id,
	).Scan(
		&t.ID, &t.TransactionType, &t.ItemID, &t.Quantity, &t.UnitPrice,
		&t.TransactionDate, &t.LotNo, &companyID, &t.Remarks, &t.CreatedBy, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory transaction: %w", err)
	}
	t.CompanyID = deref(companyID)
	return &t, nil
}

// List returns a filtered, newest-first page of the ledger plus the total count.
func (r *InventoryRepo) List(filter repository.TransactionFilter, limit, offset int) ([]*entity.InventoryTransaction, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	n := 0
	if filter.ItemID != "" {
		n++
		where += fmt.Sprintf(` AND item_id = $%d`, n)
		args = append(args, filter.ItemID)
	}
	if filter.TransactionType != "" {
		n++
		where += fmt.Sprintf(` AND transaction_type = $%d`, n)
		args = append(args, filter.TransactionType)
	}
	if filter.LotNo != "" {
		n++
		where += fmt.Sprintf(` AND lot_no = $%d`, n)
		args = append(args, filter.LotNo)
	}
	if !filter.DateFrom.IsZero() {
		n++
		where += fmt.Sprintf(` AND transaction_date >= $%d`, n)
		args = append(args, filter.DateFrom)
	}
	if !filter.DateTo.IsZero() {
		n++
		where += fmt.Sprintf(` AND transaction_date <= $%d`, n)
		args = append(args, filter.DateTo)
	}

	var total int
	if err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM inventory_transactions`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count inventory transactions: %w", err)
	}

	query := `SELECT ` + txColumns + ` FROM inventory_transactions` + where +
		fmt.Sprintf(` ORDER BY transaction_date DESC, created_at DESC LIMIT $%d OFFSET $%d`, n+1, n+2)
	args = append(args, limit, offset)

	list, err := r.listRows(query, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListByLot returns every ledger row carrying the lot number, oldest first.
func (r *InventoryRepo) ListByLot(lotNo string) ([]*entity.InventoryTransaction, error) {
	return r.listRows(`SELECT `+txColumns+` FROM inventory_transactions
		WHERE lot_no = $1 ORDER BY transaction_date, created_at`, lotNo)
}

func (r *InventoryRepo) listRows(query string, args ...any) ([]*entity.InventoryTransaction, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory transactions: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryTransaction
	for rows.Next() {
		var t entity.InventoryTransaction
		var companyID *string
		if err := rows.Scan(
			&t.ID, &t.TransactionType, &t.ItemID, &t.Quantity, &t.UnitPrice,
			&t.TransactionDate, &t.LotNo, &companyID, &t.Remarks, &t.CreatedBy, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan inventory transaction: %w", err)
		}
		t.CompanyID = deref(companyID)
		list = append(list, &t)
	}
	return list, rows.Err()
}
