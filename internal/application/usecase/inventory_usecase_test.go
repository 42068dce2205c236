package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taechang/erp-api/internal/application/dto"
	"github.com/taechang/erp-api/internal/application/usecase"
	"github.com/taechang/erp-api/internal/domain"
	"github.com/taechang/erp-api/internal/domain/entity"
	"github.com/taechang/erp-api/internal/domain/repository"
)

func stockItem(id, code string, stock, safety float64) *entity.Item {
	return &entity.Item{
		ID:           id,
		ItemCode:     code,
		ItemName:     code + " name",
		Unit:         "EA",
		CurrentStock: decimal.NewFromFloat(stock),
		SafetyStock:  decimal.NewFromFloat(safety),
		UseYN:        "Y",
	}
}

func newInventoryUC(items ...*entity.Item) (*usecase.InventoryUsecase, *fakeInventoryRepo, *fakeItemRepo) {
	itemRepo := newFakeItemRepo(items...)
	invRepo := &fakeInventoryRepo{}
	runner := &fakeTxRunner{inv: invRepo, items: itemRepo}
	uc := usecase.NewInventoryUsecase(runner, invRepo, itemRepo, &fakeReportRepo{})
	return uc, invRepo, itemRepo
}

func TestRegister_ReceivingMovesStockUp(t *testing.T) {
	uc, invRepo, itemRepo := newInventoryUC(stockItem("i1", "RAW-001", 10, 0))

	resp, err := uc.Register(context.Background(), &dto.RegisterTransactionRequest{
		TransactionType: entity.TxTypeReceiving,
		ItemID:          "i1",
		Quantity:        decimal.NewFromInt(5),
	}, "tester")
	require.NoError(t, err)

	assert.Equal(t, "RAW-001", resp.ItemCode)
	assert.Equal(t, "tester", resp.CreatedBy)
	require.Len(t, invRepo.rows, 1)

	it, _ := itemRepo.GetByID("i1")
	assert.True(t, it.CurrentStock.Equal(decimal.NewFromInt(15)),
		"stock must move in the same call that writes the ledger, got %s", it.CurrentStock)
}

func TestRegister_ShippingCannotGoNegative(t *testing.T) {
	uc, invRepo, itemRepo := newInventoryUC(stockItem("i1", "FIN-001", 5, 0))

	_, err := uc.Register(context.Background(), &dto.RegisterTransactionRequest{
		TransactionType: entity.TxTypeShipping,
		ItemID:          "i1",
		Quantity:        decimal.NewFromInt(10),
	}, "tester")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, invRepo.rows, "a rejected movement must leave no ledger row")

	it, _ := itemRepo.GetByID("i1")
	assert.True(t, it.CurrentStock.Equal(decimal.NewFromInt(5)))
}

func TestRegister_AllowNegativeOverrides(t *testing.T) {
	uc, _, itemRepo := newInventoryUC(stockItem("i1", "FIN-001", 5, 0))

	_, err := uc.Register(context.Background(), &dto.RegisterTransactionRequest{
		TransactionType: entity.TxTypeShipping,
		ItemID:          "i1",
		Quantity:        decimal.NewFromInt(10),
		AllowNegative:   true,
	}, "tester")
	require.NoError(t, err)

	it, _ := itemRepo.GetByID("i1")
	assert.True(t, it.CurrentStock.Equal(decimal.NewFromInt(-5)))
}

func TestRegister_AdjustmentIsSignedAndMayGoNegative(t *testing.T) {
	uc, _, itemRepo := newInventoryUC(stockItem("i1", "RAW-001", 3, 0))

	// Negative adjustment past zero is legal without AllowNegative: stocktaking
	// corrections record reality, they do not ask permission.
	_, err := uc.Register(context.Background(), &dto.RegisterTransactionRequest{
		TransactionType: entity.TxTypeAdjustment,
		ItemID:          "i1",
		Quantity:        decimal.NewFromInt(-10),
	}, "tester")
	require.NoError(t, err)

	it, _ := itemRepo.GetByID("i1")
	assert.True(t, it.CurrentStock.Equal(decimal.NewFromInt(-7)))
}

func TestRegister_RejectsBadInput(t *testing.T) {
	uc, _, _ := newInventoryUC(stockItem("i1", "RAW-001", 10, 0))

	cases := []dto.RegisterTransactionRequest{
		{TransactionType: "teleport", ItemID: "i1", Quantity: decimal.NewFromInt(1)},
		{TransactionType: entity.TxTypeReceiving, ItemID: "i1", Quantity: decimal.NewFromInt(-1)},
		{TransactionType: entity.TxTypeReceiving, ItemID: "i1"}, // zero quantity
		{TransactionType: entity.TxTypeAdjustment, ItemID: "i1"},
	}
	for _, req := range cases {
		_, err := uc.Register(context.Background(), &req, "tester")
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "type=%s qty=%s", req.TransactionType, req.Quantity)
	}
}

func TestRegister_UnknownOrDeletedItem(t *testing.T) {
	deleted := stockItem("i2", "OLD-001", 0, 0)
	deleted.UseYN = "N"
	uc, _, _ := newInventoryUC(deleted)

	for _, id := range []string{"missing", "i2"} {
		_, err := uc.Register(context.Background(), &dto.RegisterTransactionRequest{
			TransactionType: entity.TxTypeReceiving,
			ItemID:          id,
			Quantity:        decimal.NewFromInt(1),
		}, "tester")
		assert.ErrorIs(t, err, domain.ErrNotFound, "item %s", id)
	}
}

func TestStockStatus_LowOnlyFiltersToShortages(t *testing.T) {
	uc, _, _ := newInventoryUC(
		stockItem("i1", "A", 2, 10),  // short
		stockItem("i2", "B", 50, 10), // fine
		stockItem("i3", "C", 0, 0),   // no safety level set, never "low"
	)

	resp, err := uc.StockStatus(repository.ItemFilter{}, true, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "A", resp.Items[0].ItemCode)
	assert.True(t, resp.Items[0].LowStock)
}

func TestMonthlyReport_RejectsBadMonth(t *testing.T) {
	uc, _, _ := newInventoryUC()
	_, err := uc.MonthlyReport(context.Background(), "2026-13")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTraceability_TiesLotRowsTogether(t *testing.T) {
	uc, invRepo, _ := newInventoryUC(
		stockItem("in", "RAW-001", 100, 0),
		stockItem("out", "SEMI-001", 0, 0),
	)
	invRepo.rows = []*entity.InventoryTransaction{
		{ID: "t1", TransactionType: entity.TxTypeProductionOut, ItemID: "in", LotNo: "PR01-20260810-abc"},
		{ID: "t2", TransactionType: entity.TxTypeProductionIn, ItemID: "out", LotNo: "PR01-20260810-abc"},
		{ID: "t3", TransactionType: entity.TxTypeReceiving, ItemID: "in", LotNo: "other"},
	}

	resp, err := uc.Traceability("PR01-20260810-abc")
	require.NoError(t, err)
	require.Len(t, resp.Transactions, 2)
	assert.Equal(t, "RAW-001", resp.Transactions[0].ItemCode)
	assert.Equal(t, "SEMI-001", resp.Transactions[1].ItemCode)

	_, err = uc.Traceability("")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
