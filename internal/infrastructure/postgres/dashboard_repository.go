package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taechang/erp-api/internal/domain/entity"
	"github.com/taechang/erp-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo runs the read-only dashboard aggregates.
type DashboardRepo struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository builds the read-only adapter.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepo {
	return &DashboardRepo{pool: pool}
}

// Counts gathers the headline figures in one round trip.
func (r *DashboardRepo) Counts(ctx context.Context, today time.Time) (*repository.DashboardCounts, error) {
	const query = `
	SELECT
	    (SELECT count(*) FROM items     WHERE use_yn = 'Y'),
	    (SELECT count(*) FROM companies WHERE use_yn = 'Y'),
	    (SELECT count(*) FROM items
	        WHERE use_yn = 'Y' AND safety_stock > 0 AND current_stock < safety_stock),
	    (SELECT COALESCE(SUM(quantity), 0) FROM inventory_transactions
	        WHERE transaction_type = 'receiving' AND transaction_date::date = $1::date),
	    (SELECT COALESCE(SUM(quantity), 0) FROM inventory_transactions
	        WHERE transaction_type = 'shipping' AND transaction_date::date = $1::date),
	    (SELECT COALESCE(SUM(supply_amount + tax_amount), 0) FROM trade_records
	        WHERE trade_type = 'sales' AND to_char(record_date, 'YYYY-MM') = to_char($1::date, 'YYYY-MM')),
	    (SELECT COALESCE(SUM(supply_amount + tax_amount), 0) FROM trade_records
	        WHERE trade_type = 'purchase' AND to_char(record_date, 'YYYY-MM') = to_char($1::date, 'YYYY-MM'))`

	var c repository.DashboardCounts
	err := r.pool.QueryRow(ctx, query, today).Scan(
		&c.ItemCount, &c.CompanyCount, &c.LowStockCount,
		&c.TodayReceiving, &c.TodayShipping, &c.MonthSales, &c.MonthPurchases,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard.Counts: %w", err)
	}
	return &c, nil
}

// RecentTransactions returns the newest ledger rows.
func (r *DashboardRepo) RecentTransactions(ctx context.Context, limit int) ([]*entity.InventoryTransaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+txColumns+` FROM inventory_transactions
		 ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("dashboard.RecentTransactions: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryTransaction
	for rows.Next() {
		var t entity.InventoryTransaction
		var lotNo, companyID, createdBy *string
		if err := rows.Scan(
			&t.ID, &t.TransactionType, &t.ItemID, &t.Quantity, &t.UnitPrice,
			&t.TransactionDate, &lotNo, &companyID, &t.Remarks, &createdBy, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("dashboard.RecentTransactions scan: %w", err)
		}
		t.LotNo = deref(lotNo)
		t.CompanyID = deref(companyID)
		t.CreatedBy = deref(createdBy)
		list = append(list, &t)
	}
	return list, rows.Err()
}
