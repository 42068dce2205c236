package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taechang/erp-api/internal/domain/entity"
	"github.com/taechang/erp-api/internal/domain/repository"
)

var _ repository.PriceRepository = (*PriceRepo)(nil)

const priceColumns = `id, item_id, price_month, unit_price, note, created_at, updated_at`

// PriceRepo implements the monthly price history port over PostgreSQL.
type PriceRepo struct {
	q Querier
}

// NewPriceRepository builds the adapter. Pass a pool or a tx (Querier).
func NewPriceRepository(q Querier) *PriceRepo {
	return &PriceRepo{q: q}
}

// Upsert inserts or replaces the price for (item_id, price_month). Bulk
// monthly loads call this per row; re-running a load is idempotent.
func (r *PriceRepo) Upsert(p *entity.ItemPriceHistory) error {
	query := `
		INSERT INTO item_price_history (` + priceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (item_id, price_month) DO UPDATE SET
			unit_price = EXCLUDED.unit_price, note = EXCLUDED.note, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.ItemID, p.PriceMonth, p.UnitPrice, p.Note, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert item price: %w", err)
	}
	return nil
}

// GetByItemAndMonth returns the exact month's row or nil.
func (r *PriceRepo) GetByItemAndMonth(itemID, priceMonth string) (*entity.ItemPriceHistory, error) {
	return r.getOne(`SELECT `+priceColumns+` FROM item_price_history
		WHERE item_id = $1 AND price_month = $2`, itemID, priceMonth)
}

// GetLatestBefore returns the most recent row at or before priceMonth, or nil.
// 'YYYY-MM' strings order lexicographically, so plain <= works.
func (r *PriceRepo) GetLatestBefore(itemID, priceMonth string) (*entity.ItemPriceHistory, error) {
	return r.getOne(`SELECT `+priceColumns+` FROM item_price_history
		WHERE item_id = $1 AND price_month <= $2
		ORDER BY price_month DESC LIMIT 1`, itemID, priceMonth)
}

func (r *PriceRepo) getOne(query string, args ...any) (*entity.ItemPriceHistory, error) {
	var p entity.ItemPriceHistory
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&p.ID, &p.ItemID, &p.PriceMonth, &p.UnitPrice, &p.Note, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item price: %w", err)
	}
	return &p, nil
}

// GetForItemsAndMonth batch-resolves the carry-forward price per item in one
// query: the newest row at or before priceMonth for each id.
func (r *PriceRepo) GetForItemsAndMonth(itemIDs []string, priceMonth string) (map[string]*entity.ItemPriceHistory, error) {
	if len(itemIDs) == 0 {
		return map[string]*entity.ItemPriceHistory{}, nil
	}
	query := `
		SELECT DISTINCT ON (item_id) ` + priceColumns + `
		FROM item_price_history
		WHERE item_id = ANY($1) AND price_month <= $2
		ORDER BY item_id, price_month DESC`
	rows, err := r.q.Query(context.Background(), query, itemIDs, priceMonth)
	if err != nil {
		return nil, fmt.Errorf("batch get item prices: %w", err)
	}
	defer rows.Close()

	out := make(map[string]*entity.ItemPriceHistory, len(itemIDs))
	for rows.Next() {
		var p entity.ItemPriceHistory
		if err := rows.Scan(&p.ID, &p.ItemID, &p.PriceMonth, &p.UnitPrice, &p.Note, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item price: %w", err)
		}
		out[p.ItemID] = &p
	}
	return out, rows.Err()
}

// ListByMonth returns every price row of a month ordered by item.
func (r *PriceRepo) ListByMonth(priceMonth string) ([]*entity.ItemPriceHistory, error) {
	return r.list(`SELECT `+priceColumns+` FROM item_price_history
		WHERE price_month = $1 ORDER BY item_id`, priceMonth)
}

// ListByItem returns the full history of one item, newest first.
func (r *PriceRepo) ListByItem(itemID string) ([]*entity.ItemPriceHistory, error) {
	return r.list(`SELECT `+priceColumns+` FROM item_price_history
		WHERE item_id = $1 ORDER BY price_month DESC`, itemID)
}

// Delete removes one price row.
func (r *PriceRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM item_price_history WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item price: %w", err)
	}
	return nil
}

func (r *PriceRepo) list(query string, args ...any) ([]*entity.ItemPriceHistory, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list item prices: %w", err)
	}
	defer rows.Close()

	var list []*entity.ItemPriceHistory
	for rows.Next() {
		var p entity.ItemPriceHistory
		if err := rows.Scan(&p.ID, &p.ItemID, &p.PriceMonth, &p.UnitPrice, &p.Note, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan item price: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
