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

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

const companyColumns = `id, company_code, company_name, company_type, business_no,
	ceo_name, phone, email, address, use_yn, created_at, updated_at`

// CompanyRepo implements the company master port over PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository builds the adapter. Pass a pool or a tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persists a new company.
func (r *CompanyRepo) Create(company *entity.Company) error {
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		company.ID, company.CompanyCode, company.CompanyName, company.CompanyType,
		company.BusinessNo, company.CEOName, company.Phone, company.Email, company.Address,
		company.UseYN, company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID returns the company or nil when absent.
func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	return r.getOne(`SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
}

// GetByCode returns the company by business key or nil.
func (r *CompanyRepo) GetByCode(companyCode string) (*entity.Company, error) {
	return r.getOne(`SELECT `+companyColumns+` FROM companies WHERE company_code = $1`, companyCode)
}

func (r *CompanyRepo) getOne(query string, arg any) (*entity.Company, error) {
	var c entity.Company
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&c.ID, &c.CompanyCode, &c.CompanyName, &c.CompanyType, &c.BusinessNo,
		&c.CEOName, &c.Phone, &c.Email, &c.Address, &c.UseYN, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// Update rewrites the editable fields.
func (r *CompanyRepo) Update(company *entity.Company) error {
	query := `
		UPDATE companies SET company_name = $2, company_type = $3, business_no = $4,
			ceo_name = $5, phone = $6, email = $7, address = $8, use_yn = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		company.ID, company.CompanyName, company.CompanyType, company.BusinessNo,
		company.CEOName, company.Phone, company.Email, company.Address,
		company.UseYN, company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// List returns a filtered page plus the total count.
func (r *CompanyRepo) List(companyType, search string, limit, offset int) ([]*entity.Company, int, error) {
	where := ` WHERE use_yn = 'Y'`
	args := []any{}
	n := 0
	if companyType != "" {
		n++
		where += fmt.Sprintf(` AND company_type = $%d`, n)
		args = append(args, companyType)
	}
	if search != "" {
		n++
		where += fmt.Sprintf(` AND (company_code ILIKE $%d OR company_name ILIKE $%d)`, n, n)
		args = append(args, "%"+search+"%")
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM companies`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count companies: %w", err)
	}

	query := `SELECT ` + companyColumns + ` FROM companies` + where +
		fmt.Sprintf(` ORDER BY company_code LIMIT $%d OFFSET $%d`, n+1, n+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var list []*entity.Company
	for rows.Next() {
		var c entity.Company
		if err := rows.Scan(
			&c.ID, &c.CompanyCode, &c.CompanyName, &c.CompanyType, &c.BusinessNo,
			&c.CEOName, &c.Phone, &c.Email, &c.Address, &c.UseYN, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, &c)
	}
	return list, total, rows.Err()
}

// SoftDelete flips use_yn to 'N'.
func (r *CompanyRepo) SoftDelete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE companies SET use_yn = 'N', updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete company: %w", err)
	}
	return nil
}
