package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taechang/erp-api/internal/domain/entity"
	"github.com/taechang/erp-api/internal/domain/repository"
)

var (
	_ repository.TradeRepository             = (*TradeRepo)(nil)
	_ repository.SettlementRepository        = (*SettlementRepo)(nil)
	_ repository.AccountingSummaryRepository = (*AccountingSummaryRepo)(nil)
)

const tradeColumns = `id, trade_type, company_id, item_id, quantity, unit_price,
	supply_amount, tax_amount, record_date, remarks, created_by, created_at`

// TradeRepo implements the sales/purchase record port over PostgreSQL.
type TradeRepo struct {
	q Querier
}

// NewTradeRepository builds the adapter. Pass a pool or a tx (Querier).
func NewTradeRepository(q Querier) *TradeRepo {
	return &TradeRepo{q: q}
}

// Create persists a trade record.
func (r *TradeRepo) Create(rec *entity.TradeRecord) error {
	query := `
		INSERT INTO trade_records (` + tradeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	// item_id is a nullable FK: item-less trades store NULL, and an empty
	// string would not coerce to uuid. created_by is NOT NULL DEFAULT ''.
	_, err := r.q.Exec(context.Background(), query,
		rec.ID, rec.TradeType, rec.CompanyID, nullStr(rec.ItemID), rec.Quantity, rec.UnitPrice,
		rec.SupplyAmount, rec.TaxAmount, rec.RecordDate, rec.Remarks,
		rec.CreatedBy, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert trade record: %w", err)
	}
	return nil
}

// GetByID returns the record or nil when absent.
func (r *TradeRepo) GetByID(id string) (*entity.TradeRecord, error) {
	var t entity.TradeRecord
	var itemID *string
	err := r.q.QueryRow(context.Background(),
		`SELECT `+tradeColumns+` FROM trade_records WHERE id = $1`, id,
	).Scan(
		&t.ID, &t.TradeType, &t.CompanyID, &itemID, &t.Quantity, &t.UnitPrice,
		&t.SupplyAmount, &t.TaxAmount, &t.RecordDate, &t.Remarks, &t.CreatedBy, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get trade record: %w", err)
	}
	t.ItemID = deref(itemID)
	return &t, nil
}

// Update rewrites the editable fields and the derived amounts.
func (r *TradeRepo) Update(rec *entity.TradeRecord) error {
	query := `
		UPDATE trade_records SET company_id = $2, item_id = $3, quantity = $4, unit_price = $5,
			supply_amount = $6, tax_amount = $7, record_date = $8, remarks = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		rec.ID, rec.CompanyID, nullStr(rec.ItemID), rec.Quantity, rec.UnitPrice,
		rec.SupplyAmount, rec.TaxAmount, rec.RecordDate, rec.Remarks,
	)
	if err != nil {
		return fmt.Errorf("update trade record: %w", err)
	}
	return nil
}

// Delete removes a record.
func (r *TradeRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM trade_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete trade record: %w", err)
	}
	return nil
}

// List returns a filtered, newest-first page plus the total count.
func (r *TradeRepo) List(filter repository.TradeFilter, limit, offset int) ([]*entity.TradeRecord, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	n := 0
	if filter.TradeType != "" {
		n++
		where += fmt.Sprintf(` AND trade_type = $%d`, n)
		args = append(args, filter.TradeType)
	}
	if filter.CompanyID != "" {
		n++
		where += fmt.Sprintf(` AND company_id = $%d`, n)
		args = append(args, filter.CompanyID)
	}
	if filter.Month != "" {
		n++
		where += fmt.Sprintf(` AND to_char(record_date, 'YYYY-MM') = $%d`, n)
		args = append(args, filter.Month)
	}

	var total int
	if err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM trade_records`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count trade records: %w", err)
	}

	query := `SELECT ` + tradeColumns + ` FROM trade_records` + where +
		fmt.Sprintf(` ORDER BY record_date DESC, created_at DESC LIMIT $%d OFFSET $%d`, n+1, n+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list trade records: %w", err)
	}
	defer rows.Close()

	var list []*entity.TradeRecord
	for rows.Next() {
		var t entity.TradeRecord
		var itemID *string
		if err := rows.Scan(
			&t.ID, &t.TradeType, &t.CompanyID, &itemID, &t.Quantity, &t.UnitPrice,
			&t.SupplyAmount, &t.TaxAmount, &t.RecordDate, &t.Remarks, &t.CreatedBy, &t.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan trade record: %w", err)
		}
		t.ItemID = deref(itemID)
		list = append(list, &t)
	}
	return list, total, rows.Err()
}

const settlementColumns = `id, settlement_type, company_id, amount, method,
	record_date, remarks, created_by, created_at`

// SettlementRepo implements the collection/payment port over PostgreSQL.
type SettlementRepo struct {
	q Querier
}

// NewSettlementRepository builds the adapter. Pass a pool or a tx (Querier).
func NewSettlementRepository(q Querier) *SettlementRepo {
	return &SettlementRepo{q: q}
}

// Create persists a settlement.
func (r *SettlementRepo) Create(s *entity.Settlement) error {
	query := `
		INSERT INTO settlements (` + settlementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.SettlementType, s.CompanyID, s.Amount, s.Method,
		s.RecordDate, s.Remarks, s.CreatedBy, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert settlement: %w", err)
	}
	return nil
}

// GetByID returns the settlement or nil when absent.
func (r *SettlementRepo) GetByID(id string) (*entity.Settlement, error) {
	var s entity.Settlement
	err := r.q.QueryRow(context.Background(),
		`SELECT `+settlementColumns+` FROM settlements WHERE id = $1`, id,
	).Scan(
		&s.ID, &s.SettlementType, &s.CompanyID, &s.Amount, &s.Method,
		&s.RecordDate, &s.Remarks, &s.CreatedBy, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settlement: %w", err)
	}
	return &s, nil
}

// Delete removes a settlement.
func (r *SettlementRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM settlements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete settlement: %w", err)
	}
	return nil
}

// List returns a filtered, newest-first page plus the total count.
func (r *SettlementRepo) List(settlementType, companyID, month string, limit, offset int) ([]*entity.Settlement, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	n := 0
	if settlementType != "" {
		n++
		where += fmt.Sprintf(` AND settlement_type = $%d`, n)
		args = append(args, settlementType)
	}
	if companyID != "" {
		n++
		where += fmt.Sprintf(` AND company_id = $%d`, n)
		args = append(args, companyID)
	}
	if month != "" {
		n++
		where += fmt.Sprintf(` AND to_char(record_date, 'YYYY-MM') = $%d`, n)
		args = append(args, month)
	}

	var total int
	if err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM settlements`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count settlements: %w", err)
	}

	query := `SELECT ` + settlementColumns + ` FROM settlements` + where +
		fmt.Sprintf(` ORDER BY record_date DESC, created_at DESC LIMIT $%d OFFSET $%d`, n+1, n+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list settlements: %w", err)
	}
	defer rows.Close()

	var list []*entity.Settlement
	for rows.Next() {
		var s entity.Settlement
		if err := rows.Scan(
			&s.ID, &s.SettlementType, &s.CompanyID, &s.Amount, &s.Method,
			&s.RecordDate, &s.Remarks, &s.CreatedBy, &s.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan settlement: %w", err)
		}
		list = append(list, &s)
	}
	return list, total, rows.Err()
}

// AccountingSummaryRepo runs the grouped monthly summary query.
type AccountingSummaryRepo struct {
	pool *pgxpool.Pool
}

// NewAccountingSummaryRepository builds the read-only adapter.
func NewAccountingSummaryRepository(pool *pgxpool.Pool) *AccountingSummaryRepo {
	return &AccountingSummaryRepo{pool: pool}
}

// MonthlySummary aggregates VAT-inclusive trade and settlement totals per
// company for one month. Receivable = sales − collections, payable =
// purchases − payments; companies without activity are omitted.
func (r *AccountingSummaryRepo) MonthlySummary(ctx context.Context, month string) ([]repository.CompanySummaryRow, error) {
	const query = `
	WITH trade AS (
	    SELECT company_id,
	           SUM(CASE WHEN trade_type = 'sales'    THEN supply_amount + tax_amount ELSE 0 END) AS sales_total,
	           SUM(CASE WHEN trade_type = 'purchase' THEN supply_amount + tax_amount ELSE 0 END) AS purchase_total
	    FROM trade_records
	    WHERE to_char(record_date, 'YYYY-MM') = $1
	    GROUP BY company_id
	), settle AS (
	    SELECT company_id,
	           SUM(CASE WHEN settlement_type = 'collection' THEN amount ELSE 0 END) AS collections,
	           SUM(CASE WHEN settlement_type = 'payment'    THEN amount ELSE 0 END) AS payments
	    FROM settlements
	    WHERE to_char(record_date, 'YYYY-MM') = $1
	    GROUP BY company_id
	)
	SELECT c.id, c.company_code, c.company_name, c.company_type,
	       COALESCE(t.sales_total, 0),
	       COALESCE(t.purchase_total, 0),
	       COALESCE(s.collections, 0),
	       COALESCE(s.payments, 0),
	       COALESCE(t.sales_total, 0)    - COALESCE(s.collections, 0),
	       COALESCE(t.purchase_total, 0) - COALESCE(s.payments, 0)
	FROM companies c
	LEFT JOIN trade  t ON t.company_id = c.id
	LEFT JOIN settle s ON s.company_id = c.id
	WHERE t.company_id IS NOT NULL OR s.company_id IS NOT NULL
	ORDER BY c.company_code`

	rows, err := r.pool.Query(ctx, query, month)
	if err != nil {
		return nil, fmt.Errorf("accounting.MonthlySummary: %w", err)
	}
	defer rows.Close()

	var out []repository.CompanySummaryRow
	for rows.Next() {
		var row repository.CompanySummaryRow
		if err := rows.Scan(
			&row.CompanyID, &row.CompanyCode, &row.CompanyName, &row.CompanyType,
			&row.SalesTotal, &row.PurchaseTotal, &row.Collections, &row.Payments,
			&row.Receivable, &row.Payable,
		); err != nil {
			return nil, fmt.Errorf("accounting.MonthlySummary scan: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
