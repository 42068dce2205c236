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

var _ repository.ContractRepository = (*ContractRepo)(nil)

const contractColumns = `id, contract_no, company_id, contract_name, start_date, end_date,
	amount, status, file_note, created_at, updated_at`

// ContractRepo implements the contract port over PostgreSQL.
type ContractRepo struct {
	q Querier
}

// NewContractRepository builds the adapter. Pass a pool or a tx (Querier).
func NewContractRepository(q Querier) *ContractRepo {
	return &ContractRepo{q: q}
}

// Create persists a new contract.
func (r *ContractRepo) Create(c *entity.Contract) error {
	query := `
		INSERT INTO contracts (` + contractColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.ContractNo, c.CompanyID, c.ContractName, c.StartDate, c.EndDate,
		c.Amount, c.Status, c.FileNote, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert contract: %w", err)
	}
	return nil
}

// GetByID returns the contract or nil when absent.
func (r *ContractRepo) GetByID(id string) (*entity.Contract, error) {
	return r.getOne(`SELECT `+contractColumns+` FROM contracts WHERE id = $1`, id)
}

// GetByNo returns the contract by business key or nil.
func (r *ContractRepo) GetByNo(contractNo string) (*entity.Contract, error) {
	return r.getOne(`SELECT `+contractColumns+` FROM contracts WHERE contract_no = $1`, contractNo)
}

func (r *ContractRepo) getOne(query string, arg any) (*entity.Contract, error) {
	var c entity.Contract
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&c.ID, &c.ContractNo, &c.CompanyID, &c.ContractName, &c.StartDate, &c.EndDate,
		&c.Amount, &c.Status, &c.FileNote, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contract: %w", err)
	}
	return &c, nil
}

// Update rewrites the editable fields.
func (r *ContractRepo) Update(c *entity.Contract) error {
	query := `
		UPDATE contracts SET company_id = $2, contract_name = $3, start_date = $4, end_date = $5,
			amount = $6, status = $7, file_note = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.CompanyID, c.ContractName, c.StartDate, c.EndDate,
		c.Amount, c.Status, c.FileNote, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update contract: %w", err)
	}
	return nil
}

// Delete removes a contract.
func (r *ContractRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM contracts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contract: %w", err)
	}
	return nil
}

// List returns a filtered page plus the total count.
func (r *ContractRepo) List(companyID, status string, limit, offset int) ([]*entity.Contract, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	n := 0
	if companyID != "" {
		n++
		where += fmt.Sprintf(` AND company_id = $%d`, n)
		args = append(args, companyID)
	}
	if status != "" {
		n++
		where += fmt.Sprintf(` AND status = $%d`, n)
		args = append(args, status)
	}

	var total int
	if err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM contracts`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count contracts: %w", err)
	}

	query := `SELECT ` + contractColumns + ` FROM contracts` + where +
		fmt.Sprintf(` ORDER BY end_date DESC LIMIT $%d OFFSET $%d`, n+1, n+2)
	args = append(args, limit, offset)

	return r.listRows(query, total, args...)
}

// ListExpiring returns active contracts ending within the next days window.
func (r *ContractRepo) ListExpiring(days int) ([]*entity.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts
		WHERE status = 'active' AND end_date BETWEEN now() AND now() + make_interval(days => $1)
		ORDER BY end_date`
	list, _, err := r.listRows(query, 0, days)
	return list, err
}

func (r *ContractRepo) listRows(query string, total int, args ...any) ([]*entity.Contract, int, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list contracts: %w", err)
	}
	defer rows.Close()

	var list []*entity.Contract
	for rows.Next() {
		var c entity.Contract
		if err := rows.Scan(
			&c.ID, &c.ContractNo, &c.CompanyID, &c.ContractName, &c.StartDate, &c.EndDate,
			&c.Amount, &c.Status, &c.FileNote, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan contract: %w", err)
		}
		list = append(list, &c)
	}
	return list, total, rows.Err()
}
