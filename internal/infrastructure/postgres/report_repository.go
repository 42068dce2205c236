package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taechang/erp-api/internal/domain/repository"
)

var _ repository.StockReportRepository = (*StockReportRepo)(nil)

// StockReportRepo runs read-only grouped queries over the inventory ledger.
type StockReportRepo struct {
	pool *pgxpool.Pool
}

// NewStockReportRepository builds the read-only adapter.
func NewStockReportRepository(pool *pgxpool.Pool) *StockReportRepo {
	return &StockReportRepo{pool: pool}
}

// MonthlyReport computes, per item, the opening balance (all ledger rows
// before the month), the per-type movement totals within the month and the
// derived closing balance. One grouped query; the signs mirror
// entity.InventoryTransaction.StockDelta.
func (r *StockReportRepo) MonthlyReport(ctx context.Context, month string) ([]repository.MonthlyStockRow, error) {
	const query = `
	WITH signed AS (
	    SELECT item_id,
	           transaction_type,
	           to_char(transaction_date, 'YYYY-MM') AS tx_month,
	           CASE transaction_type
	               WHEN 'receiving'      THEN quantity
	               WHEN 'production_in'  THEN quantity
	               WHEN 'shipping'       THEN -quantity
	               WHEN 'production_out' THEN -quantity
	               ELSE quantity
	           END AS delta,
	           quantity
	    FROM inventory_transactions
	)
	SELECT i.id, i.item_code, i.item_name, i.unit,
	       COALESCE(SUM(CASE WHEN s.tx_month < $1 THEN s.delta END), 0)                                            AS opening_stock,
	       COALESCE(SUM(CASE WHEN s.tx_month = $1 AND s.transaction_type = 'receiving'      THEN s.quantity END), 0) AS receiving_qty,
	       COALESCE(SUM(CASE WHEN s.tx_month = $1 AND s.transaction_type = 'production_in'  THEN s.quantity END), 0) AS production_in,
	       COALESCE(SUM(CASE WHEN s.tx_month = $1 AND s.transaction_type = 'production_out' THEN s.quantity END), 0) AS production_out,
	       COALESCE(SUM(CASE WHEN s.tx_month = $1 AND s.transaction_type = 'shipping'       THEN s.quantity END), 0) AS shipping_qty,
	       COALESCE(SUM(CASE WHEN s.tx_month = $1 AND s.transaction_type = 'adjustment'     THEN s.quantity END), 0) AS adjustment_qty,
	       COALESCE(SUM(CASE WHEN s.tx_month <= $1 THEN s.delta END), 0)                                           AS closing_stock
	FROM items i
	JOIN signed s ON s.item_id = i.id
	WHERE i.use_yn = 'Y'
	GROUP BY i.id, i.item_code, i.item_name, i.unit
	ORDER BY i.item_code`

	rows, err := r.pool.Query(ctx, query, month)
	if err != nil {
		return nil, fmt.Errorf("stock.MonthlyReport: %w", err)
	}
	defer rows.Close()

	var out []repository.MonthlyStockRow
	for rows.Next() {
		var row repository.MonthlyStockRow
		if err := rows.Scan(
			&row.ItemID, &row.ItemCode, &row.ItemName, &row.Unit,
			&row.OpeningStock, &row.ReceivingQty, &row.ProductionIn,
			&row.ProductionOut, &row.ShippingQty, &row.AdjustmentQty, &row.ClosingStock,
		); err != nil {
			return nil, fmt.Errorf("stock.MonthlyReport scan: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
