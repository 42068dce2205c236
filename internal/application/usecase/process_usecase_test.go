package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taechang/erp-api/internal/application/dto"
	"github.com/taechang/erp-api/internal/application/usecase"
	"github.com/taechang/erp-api/internal/domain"
	"github.com/taechang/erp-api/internal/domain/entity"
)

func pressOp(yield float64) *entity.ProcessOperation {
	return &entity.ProcessOperation{
		ID:           "p1",
		ProcessCode:  "PRESS01",
		ProcessName:  "프레스",
		InputItemID:  "raw",
		OutputItemID: "semi",
		YieldRate:    decimal.NewFromFloat(yield),
		UseYN:        "Y",
	}
}

func newProcessUC(op *entity.ProcessOperation, items ...*entity.Item) (*usecase.ProcessUsecase, *fakeInventoryRepo, *fakeItemRepo) {
	itemRepo := newFakeItemRepo(items...)
	invRepo := &fakeInventoryRepo{}
	runner := &fakeTxRunner{inv: invRepo, items: itemRepo}
	procRepo := newFakeProcessRepo()
	if op != nil {
		procRepo.ops[op.ID] = op
	}
	return usecase.NewProcessUsecase(procRepo, itemRepo, runner), invRepo, itemRepo
}

func TestRun_YieldShrinksOutput(t *testing.T) {
	uc, invRepo, itemRepo := newProcessUC(pressOp(90),
		stockItem("raw", "RAW-001", 100, 0),
		stockItem("semi", "SEMI-001", 0, 0),
	)

	resp, err := uc.Run(context.Background(), &dto.RunProcessRequest{
		ProcessID:     "p1",
		InputQuantity: decimal.NewFromInt(100),
	}, "tester")
	require.NoError(t, err)

	assert.True(t, resp.OutputQuantity.Equal(decimal.NewFromInt(90)),
		"100 in at 90%% yield gives 90 out, got %s", resp.OutputQuantity)

	require.Len(t, invRepo.rows, 2, "one consumption row, one production row")
	assert.Equal(t, entity.TxTypeProductionOut, invRepo.rows[0].TransactionType)
	assert.Equal(t, entity.TxTypeProductionIn, invRepo.rows[1].TransactionType)
	assert.Equal(t, invRepo.rows[0].LotNo, invRepo.rows[1].LotNo,
		"both rows share the lot so traceability links input to output")

	raw, _ := itemRepo.GetByID("raw")
	semi, _ := itemRepo.GetByID("semi")
	assert.True(t, raw.CurrentStock.IsZero())
	assert.True(t, semi.CurrentStock.Equal(decimal.NewFromInt(90)))
}

func TestRun_GeneratedLotNoCarriesProcessAndDate(t *testing.T) {
	uc, _, _ := newProcessUC(pressOp(100),
		stockItem("raw", "RAW-001", 10, 0),
		stockItem("semi", "SEMI-001", 0, 0),
	)

	when := time.Date(2026, 8, 10, 14, 0, 0, 0, time.UTC)
	resp, err := uc.Run(context.Background(), &dto.RunProcessRequest{
		ProcessID:       "p1",
		InputQuantity:   decimal.NewFromInt(10),
		TransactionDate: when,
	}, "tester")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.LotNo, "PRESS01-20260810-"), "lot %q", resp.LotNo)
}

func TestRun_CallerLotNoWins(t *testing.T) {
	uc, invRepo, _ := newProcessUC(pressOp(100),
		stockItem("raw", "RAW-001", 10, 0),
		stockItem("semi", "SEMI-001", 0, 0),
	)

	resp, err := uc.Run(context.Background(), &dto.RunProcessRequest{
		ProcessID:     "p1",
		InputQuantity: decimal.NewFromInt(5),
		LotNo:         "LOT-외주-7",
	}, "tester")
	require.NoError(t, err)
	assert.Equal(t, "LOT-외주-7", resp.LotNo)
	assert.Equal(t, "LOT-외주-7", invRepo.rows[0].LotNo)
}

func TestRun_InsufficientInputStockRejected(t *testing.T) {
	uc, invRepo, itemRepo := newProcessUC(pressOp(90),
		stockItem("raw", "RAW-001", 50, 0),
		stockItem("semi", "SEMI-001", 0, 0),
	)

	_, err := uc.Run(context.Background(), &dto.RunProcessRequest{
		ProcessID:     "p1",
		InputQuantity: decimal.NewFromInt(100),
	}, "tester")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, invRepo.rows)

	semi, _ := itemRepo.GetByID("semi")
	assert.True(t, semi.CurrentStock.IsZero(), "a rejected run must not produce output")
}

func TestRun_AllowNegativeRunsAnyway(t *testing.T) {
	uc, invRepo, _ := newProcessUC(pressOp(100),
		stockItem("raw", "RAW-001", 50, 0),
		stockItem("semi", "SEMI-001", 0, 0),
	)

	_, err := uc.Run(context.Background(), &dto.RunProcessRequest{
		ProcessID:     "p1",
		InputQuantity: decimal.NewFromInt(100),
		AllowNegative: true,
	}, "tester")
	require.NoError(t, err)
	assert.Len(t, invRepo.rows, 2)
}

func TestRun_UnknownOrDisabledProcess(t *testing.T) {
	disabled := pressOp(100)
	disabled.UseYN = "N"
	uc, _, _ := newProcessUC(disabled,
		stockItem("raw", "RAW-001", 10, 0),
		stockItem("semi", "SEMI-001", 0, 0),
	)

	for _, id := range []string{"missing", "p1"} {
		_, err := uc.Run(context.Background(), &dto.RunProcessRequest{
			ProcessID:     id,
			InputQuantity: decimal.NewFromInt(1),
		}, "tester")
		assert.ErrorIs(t, err, domain.ErrNotFound, "process %s", id)
	}
}

func TestCreate_RejectsSelfLoopAndBadYield(t *testing.T) {
	uc, _, _ := newProcessUC(nil,
		stockItem("raw", "RAW-001", 0, 0),
		stockItem("semi", "SEMI-001", 0, 0),
	)

	_, err := uc.Create(&dto.CreateProcessOperationRequest{
		ProcessCode: "X", ProcessName: "X",
		InputItemID: "raw", OutputItemID: "raw",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(&dto.CreateProcessOperationRequest{
		ProcessCode: "X", ProcessName: "X",
		InputItemID: "raw", OutputItemID: "semi",
		YieldRate: decimal.NewFromInt(130),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
