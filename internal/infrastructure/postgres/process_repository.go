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

var _ repository.ProcessRepository = (*ProcessRepo)(nil)

const processColumns = `id, process_code, process_name, input_item_id, output_item_id,
	yield_rate, sequence_no, use_yn, created_at, updated_at`

// ProcessRepo implements the process operation port over PostgreSQL.
type ProcessRepo struct {
	q Querier
}

// NewProcessRepository builds the adapter. Pass a pool or a tx (Querier).
func NewProcessRepository(q Querier) *ProcessRepo {
	return &ProcessRepo{q: q}
}

// Create persists a new process definition.
func (r *ProcessRepo) Create(op *entity.ProcessOperation) error {
	query := `
		INSERT INTO process_operations (` + processColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		op.ID, op.ProcessCode, op.ProcessName, op.InputItemID, op.OutputItemID,
		op.YieldRate, op.SequenceNo, op.UseYN, op.CreatedAt, op.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert process operation: %w", err)
	}
	return nil
}

// GetByID returns the process or nil when absent.
func (r *ProcessRepo) GetByID(id string) (*entity.ProcessOperation, error) {
	return r.getOne(`SELECT `+processColumns+` FROM process_operations WHERE id = $1`, id)
}

// GetByCode returns the process by business key or nil.
func (r *ProcessRepo) GetByCode(processCode string) (*entity.ProcessOperation, error) {
	return r.getOne(`SELECT `+processColumns+` FROM process_operations WHERE process_code = $1`, processCode)
}

func (r *ProcessRepo) getOne(query string, arg any) (*entity.ProcessOperation, error) {
	var op entity.ProcessOperation
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&op.ID, &op.ProcessCode, &op.ProcessName, &op.InputItemID, &op.OutputItemID,
		&op.YieldRate, &op.SequenceNo, &op.UseYN, &op.CreatedAt, &op.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get process operation: %w", err)
	}
	return &op, nil
}

// Update rewrites the editable fields.
func (r *ProcessRepo) Update(op *entity.ProcessOperation) error {
	query := `
		UPDATE process_operations SET process_name = $2, input_item_id = $3, output_item_id = $4,
			yield_rate = $5, sequence_no = $6, use_yn = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		op.ID, op.ProcessName, op.InputItemID, op.OutputItemID,
		op.YieldRate, op.SequenceNo, op.UseYN, op.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update process operation: %w", err)
	}
	return nil
}

// List returns a searched page plus the total count.
func (r *ProcessRepo) List(search string, limit, offset int) ([]*entity.ProcessOperation, int, error) {
	where := ` WHERE use_yn = 'Y'`
	args := []any{}
	n := 0
	if search != "" {
		n++
		where += fmt.Sprintf(` AND (process_code ILIKE $%d OR process_name ILIKE $%d)`, n, n)
		args = append(args, "%"+search+"%")
	}

	var total int
	if err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM process_operations`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count process operations: %w", err)
	}

	query := `SELECT ` + processColumns + ` FROM process_operations` + where +
		fmt.Sprintf(` ORDER BY sequence_no, process_code LIMIT $%d OFFSET $%d`, n+1, n+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list process operations: %w", err)
	}
	defer rows.Close()

	var list []*entity.ProcessOperation
	for rows.Next() {
		var op entity.ProcessOperation
		if err := rows.Scan(
			&op.ID, &op.ProcessCode, &op.ProcessName, &op.InputItemID, &op.OutputItemID,
			&op.YieldRate, &op.SequenceNo, &op.UseYN, &op.CreatedAt, &op.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan process operation: %w", err)
		}
		list = append(list, &op)
	}
	return list, total, rows.Err()
}

// SoftDelete flips use_yn to 'N'.
func (r *ProcessRepo) SoftDelete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE process_operations SET use_yn = 'N', updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete process operation: %w", err)
	}
	return nil
}
