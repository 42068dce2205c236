package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taechang/erp-api/internal/domain/entity"
)

// recordingQuerier captures the args handed to Exec so tests can assert how
// optional fields are bound. The schema has NOT NULL DEFAULT '' text columns
// next to nullable uuid FKs; binding the wrong one raises 23502 or 22P02.
type recordingQuerier struct {
	sql  string
	args []any
}

func (q *recordingQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.sql = sql
	q.args = args
	return pgconn.CommandTag{}, nil
}

func (q *recordingQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("unexpected Query")
}

func (q *recordingQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	return errRow{}
}

type errRow struct{}

func (errRow) Scan(...any) error { return errors.New("unexpected QueryRow") }

func TestInventoryRepoCreate_BindsEmptyLotAndCreatorAsStrings(t *testing.T) {
	q := &recordingQuerier{}
	repo := NewInventoryRepository(q)

	err := repo.Create(&entity.InventoryTransaction{
		ItemID:          "0b9f2a64-3f44-4a7e-9a06-0f4e2b63d021",
		TransactionType: entity.TxTypeReceiving,
		TransactionDate: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, q.args, 11)

	// lot_no and created_by are NOT NULL DEFAULT '': they must go in as
	// plain strings even when empty, never as a NULL.
	assert.Equal(t, "", q.args[6])
	assert.Equal(t, "", q.args[9])
	// company_id is a nullable uuid FK: empty means NULL.
	assert.Nil(t, q.args[7])
}

func TestInventoryRepoCreate_BindsCompanyWhenSet(t *testing.T) {
	q := &recordingQuerier{}
	repo := NewInventoryRepository(q)

	err := repo.Create(&entity.InventoryTransaction{
		ItemID:          "0b9f2a64-3f44-4a7e-9a06-0f4e2b63d021",
		TransactionType: entity.TxTypeShipping,
		CompanyID:       "7c1d8e90-1111-4222-8333-444455556666",
		LotNo:           "PRESS01-20260810-abc12345",
		CreatedBy:       "manager1",
	})
	require.NoError(t, err)

	companyID, ok := q.args[7].(*string)
	require.True(t, ok)
	assert.Equal(t, "7c1d8e90-1111-4222-8333-444455556666", *companyID)
	assert.Equal(t, "PRESS01-20260810-abc12345", q.args[6])
	assert.Equal(t, "manager1", q.args[9])
}

func TestTradeRepoCreate_ItemlessTradeBindsNullItem(t *testing.T) {
	q := &recordingQuerier{}
	repo := NewTradeRepository(q)

	err := repo.Create(&entity.TradeRecord{
		ID:         "d4c3b2a1-0000-4000-8000-000000000001",
		TradeType:  entity.TradeTypeSales,
		CompanyID:  "7c1d8e90-1111-4222-8333-444455556666",
		RecordDate: time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, q.args, 12)

	// item_id is a nullable uuid FK: an empty string must become NULL.
	assert.Nil(t, q.args[3])
	// created_by is NOT NULL DEFAULT '': empty stays a string.
	assert.Equal(t, "", q.args[10])
}

func TestTradeRepoUpdate_ItemlessTradeBindsNullItem(t *testing.T) {
	q := &recordingQuerier{}
	repo := NewTradeRepository(q)

	err := repo.Update(&entity.TradeRecord{
		ID:         "d4c3b2a1-0000-4000-8000-000000000001",
		CompanyID:  "7c1d8e90-1111-4222-8333-444455556666",
		RecordDate: time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, q.args, 9)
	assert.Nil(t, q.args[2])
}

func TestSettlementRepoCreate_BindsEmptyCreatorAsString(t *testing.T) {
	q := &recordingQuerier{}
	repo := NewSettlementRepository(q)

	err := repo.Create(&entity.Settlement{
		ID:             "a0a0a0a0-0000-4000-8000-000000000002",
		SettlementType: entity.SettlementCollection,
		CompanyID:      "7c1d8e90-1111-4222-8333-444455556666",
		RecordDate:     time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, q.args, 9)
	assert.Equal(t, "", q.args[7])
}
