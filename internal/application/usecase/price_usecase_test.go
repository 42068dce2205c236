package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taechang/erp-api/internal/application/dto"
	"github.com/taechang/erp-api/internal/application/usecase"
	"github.com/taechang/erp-api/internal/domain"
	"github.com/taechang/erp-api/internal/domain/entity"
)

func priceRow(itemID, month string, price float64) *entity.ItemPriceHistory {
	return &entity.ItemPriceHistory{
		ID:         itemID + "-" + month,
		ItemID:     itemID,
		PriceMonth: month,
		UnitPrice:  decimal.NewFromFloat(price),
	}
}

func newPriceUC(prices *fakePriceRepo, items ...*entity.Item) *usecase.PriceUsecase {
	return usecase.NewPriceUsecase(prices, newFakeItemRepo(items...))
}

func TestResolve_ExactMonth(t *testing.T) {
	repo := &fakePriceRepo{rows: []*entity.ItemPriceHistory{
		priceRow("i1", "2026-03", 1200),
	}}
	uc := newPriceUC(repo, stockItem("i1", "RAW-001", 0, 0))

	resp, err := uc.Resolve("i1", "2026-03")
	require.NoError(t, err)
	assert.True(t, resp.UnitPrice.Equal(decimal.NewFromInt(1200)))
	assert.Equal(t, "2026-03", resp.SourceMonth)
	assert.False(t, resp.FromMaster)
}

func TestResolve_CarriesEarlierMonthForward(t *testing.T) {
	repo := &fakePriceRepo{rows: []*entity.ItemPriceHistory{
		priceRow("i1", "2025-11", 1000),
		priceRow("i1", "2026-01", 1100),
	}}
	uc := newPriceUC(repo, stockItem("i1", "RAW-001", 0, 0))

	// No row for 2026-04: the most recent earlier month wins.
	resp, err := uc.Resolve("i1", "2026-04")
	require.NoError(t, err)
	assert.True(t, resp.UnitPrice.Equal(decimal.NewFromInt(1100)))
	assert.Equal(t, "2026-01", resp.SourceMonth)
}

func TestResolve_FallsBackToItemMaster(t *testing.T) {
	it := stockItem("i1", "RAW-001", 0, 0)
	it.UnitPrice = decimal.NewFromInt(850)
	uc := newPriceUC(&fakePriceRepo{}, it)

	resp, err := uc.Resolve("i1", "2026-04")
	require.NoError(t, err)
	assert.True(t, resp.FromMaster)
	assert.True(t, resp.UnitPrice.Equal(decimal.NewFromInt(850)))
	assert.Empty(t, resp.SourceMonth)
}

func TestResolve_UnknownItemOrBadMonth(t *testing.T) {
	uc := newPriceUC(&fakePriceRepo{})

	_, err := uc.Resolve("missing", "2026-04")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Resolve("missing", "202604")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBulkUpsert_ReportsBadRowsWithoutAborting(t *testing.T) {
	repo := &fakePriceRepo{}
	uc := newPriceUC(repo, stockItem("i1", "RAW-001", 0, 0))

	result, err := uc.BulkUpsert(&dto.BulkUpsertPricesRequest{
		PriceMonth: "2026-05",
		Prices: []dto.PriceEntry{
			{ItemID: "i1", UnitPrice: decimal.NewFromInt(900)},
			{ItemID: "ghost", UnitPrice: decimal.NewFromInt(100)},
			{ItemID: "i1", UnitPrice: decimal.NewFromInt(-5)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 2, result.Skipped)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Equal(t, 3, result.Errors[1].Row)

	row, _ := repo.GetByItemAndMonth("i1", "2026-05")
	require.NotNil(t, row)
	assert.True(t, row.UnitPrice.Equal(decimal.NewFromInt(900)))
}

func TestBulkUpsert_SameMonthIsIdempotent(t *testing.T) {
	repo := &fakePriceRepo{}
	uc := newPriceUC(repo, stockItem("i1", "RAW-001", 0, 0))

	for _, price := range []int64{900, 950} {
		_, err := uc.BulkUpsert(&dto.BulkUpsertPricesRequest{
			PriceMonth: "2026-05",
			Prices:     []dto.PriceEntry{{ItemID: "i1", UnitPrice: decimal.NewFromInt(price)}},
		})
		require.NoError(t, err)
	}

	rows, _ := repo.ListByMonth("2026-05")
	require.Len(t, rows, 1, "re-saving the month must replace, not duplicate")
	assert.True(t, rows[0].UnitPrice.Equal(decimal.NewFromInt(950)))
}

func TestBulkUpsert_RejectsBadMonthOrEmptyBody(t *testing.T) {
	uc := newPriceUC(&fakePriceRepo{})

	_, err := uc.BulkUpsert(&dto.BulkUpsertPricesRequest{
		PriceMonth: "05-2026",
		Prices:     []dto.PriceEntry{{ItemID: "i1"}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.BulkUpsert(&dto.BulkUpsertPricesRequest{PriceMonth: "2026-05"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
