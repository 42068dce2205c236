package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/taechang/erp-api/internal/application/dto"
	"github.com/taechang/erp-api/internal/domain"
	"github.com/taechang/erp-api/internal/domain/entity"
	"github.com/taechang/erp-api/internal/domain/repository"
)

// ProcessUsecase manages process step definitions and executes runs. A run
// consumes the input item and produces the output item under one lot number,
// both ledger rows in one database transaction.
type ProcessUsecase struct {
	processes repository.ProcessRepository
	items     repository.ItemRepository
	txRunner  InventoryTxRunner
}

// NewProcessUsecase builds the usecase.
func NewProcessUsecase(
	processes repository.ProcessRepository,
	items repository.ItemRepository,
	txRunner InventoryTxRunner,
) *ProcessUsecase {
	return &ProcessUsecase{processes: processes, items: items, txRunner: txRunner}
}

// Create registers a process step definition.
func (u *ProcessUsecase) Create(req *dto.CreateProcessOperationRequest) (*dto.ProcessOperationResponse, error) {
	req.ProcessCode = strings.TrimSpace(req.ProcessCode)
	req.ProcessName = strings.TrimSpace(req.ProcessName)
	if req.ProcessCode == "" || req.ProcessName == "" {
		return nil, domain.ErrInvalidInput
	}
	if req.InputItemID == req.OutputItemID {
		return nil, domain.ErrInvalidInput
	}
	if req.YieldRate.IsNegative() || req.YieldRate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, domain.ErrInvalidInput
	}
	for _, id := range []string{req.InputItemID, req.OutputItemID} {
		item, err := u.items.GetByID(id)
		if err != nil {
			return nil, err
		}
		if item == nil || !item.Active() {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	op := &entity.ProcessOperation{
		ID:           uuid.New().String(),
		ProcessCode:  req.ProcessCode,
		ProcessName:  req.ProcessName,
		InputItemID:  req.InputItemID,
		OutputItemID: req.OutputItemID,
		YieldRate:    req.YieldRate,
		SequenceNo:   req.SequenceNo,
		UseYN:        "Y",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.processes.Create(op); err != nil {
		return nil, err
	}
	return u.toResponse(op)
}

// GetByID loads one process definition.
func (u *ProcessUsecase) GetByID(id string) (*dto.ProcessOperationResponse, error) {
	op, err := u.processes.GetByID(id)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, domain.ErrNotFound
	}
	return u.toResponse(op)
}

// Update applies a partial update to a process definition.
func (u *ProcessUsecase) Update(id string, req *dto.UpdateProcessOperationRequest) (*dto.ProcessOperationResponse, error) {
	op, err := u.processes.GetByID(id)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, domain.ErrNotFound
	}

	if req.ProcessName != nil {
		name := strings.TrimSpace(*req.ProcessName)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		op.ProcessName = name
	}
	if req.InputItemID != nil {
		op.InputItemID = *req.InputItemID
	}
	if req.OutputItemID != nil {
		op.OutputItemID = *req.OutputItemID
	}
	if op.InputItemID == op.OutputItemID {
		return nil, domain.ErrInvalidInput
	}
	if req.YieldRate != nil {
		if req.YieldRate.IsNegative() || req.YieldRate.GreaterThan(decimal.NewFromInt(100)) {
			return nil, domain.ErrInvalidInput
		}
		op.YieldRate = *req.YieldRate
	}
	if req.SequenceNo != nil {
		op.SequenceNo = *req.SequenceNo
	}
	op.UpdatedAt = time.Now()

	if err := u.processes.Update(op); err != nil {
		return nil, err
	}
	return u.toResponse(op)
}

// List returns a filtered page of process definitions.
func (u *ProcessUsecase) List(search string, page dto.PageRequest) ([]dto.ProcessOperationResponse, *dto.PageResponse, error) {
	page.DefaultPage()
	ops, total, err := u.processes.List(search, page.Limit, page.Offset)
	if err != nil {
		return nil, nil, err
	}
	out := make([]dto.ProcessOperationResponse, 0, len(ops))
	for _, op := range ops {
		resp, err := u.toResponse(op)
		if err != nil {
			return nil, nil, err
		}
		out = append(out, *resp)
	}
	return out, &dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total}, nil
}

// Delete soft-deletes a process definition.
func (u *ProcessUsecase) Delete(id string) error {
	op, err := u.processes.GetByID(id)
	if err != nil {
		return err
	}
	if op == nil {
		return domain.ErrNotFound
	}
	return u.processes.SoftDelete(id)
}

// Run executes one process step: one production_out row consuming the input
// and one production_in row producing output at the step's yield rate, both
// under the same lot number and committed together. Insufficient input stock
// rejects the run unless the request allows negative stock.
func (u *ProcessUsecase) Run(ctx context.Context, req *dto.RunProcessRequest, createdBy string) (*dto.RunProcessResponse, error) {
	if !req.InputQuantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	op, err := u.processes.GetByID(req.ProcessID)
	if err != nil {
		return nil, err
	}
	if op == nil || op.UseYN == "N" {
		return nil, domain.ErrNotFound
	}

	when := req.TransactionDate
	if when.IsZero() {
		when = time.Now()
	}
	lotNo := req.LotNo
	if lotNo == "" {
		lotNo = newLotNo(op.ProcessCode, when)
	}

	outputQty := req.InputQuantity
	if !op.YieldRate.IsZero() {
		outputQty = req.InputQuantity.Mul(op.YieldRate.Div(decimal.NewFromInt(100)))
	}

	inTx := &entity.InventoryTransaction{
		TransactionType: entity.TxTypeProductionOut,
		ItemID:          op.InputItemID,
		Quantity:        req.InputQuantity,
		TransactionDate: when,
		LotNo:           lotNo,
		Remarks:         req.Remarks,
		CreatedBy:       createdBy,
		CreatedAt:       time.Now(),
	}
	outTx := &entity.InventoryTransaction{
		TransactionType: entity.TxTypeProductionIn,
		ItemID:          op.OutputItemID,
		Quantity:        outputQty,
		TransactionDate: when,
		LotNo:           lotNo,
		Remarks:         req.Remarks,
		CreatedBy:       createdBy,
		CreatedAt:       time.Now(),
	}

	var resp *dto.RunProcessResponse
	err = u.txRunner.RunInventory(ctx, func(
		invRepo repository.InventoryRepository,
		itemRepo repository.ItemRepository,
	) error {
		input, err := itemRepo.GetByID(op.InputItemID)
		if err != nil {
			return err
		}
		output, err := itemRepo.GetByID(op.OutputItemID)
		if err != nil {
			return err
		}
		if input == nil || output == nil || !input.Active() || !output.Active() {
			return domain.ErrNotFound
		}

		if input.CurrentStock.Sub(req.InputQuantity).IsNegative() && !req.AllowNegative {
			return domain.ErrInsufficientStock
		}

		if err := invRepo.Create(inTx); err != nil {
			return err
		}
		if err := itemRepo.UpdateStock(input.ID, inTx.StockDelta()); err != nil {
			return err
		}
		if err := invRepo.Create(outTx); err != nil {
			return err
		}
		if err := itemRepo.UpdateStock(output.ID, outTx.StockDelta()); err != nil {
			return err
		}

		resp = &dto.RunProcessResponse{
			LotNo:          lotNo,
			InputTx:        *toTransactionResponse(inTx, input),
			OutputTx:       *toTransactionResponse(outTx, output),
			OutputQuantity: outputQty,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// newLotNo derives a traceable lot number from the process code, run date and
// a short random suffix.
func newLotNo(processCode string, when time.Time) string {
	return fmt.Sprintf("%s-%s-%s", processCode, when.Format("20060102"), uuid.New().String()[:8])
}

func (u *ProcessUsecase) toResponse(op *entity.ProcessOperation) (*dto.ProcessOperationResponse, error) {
	items, err := u.items.GetByIDs([]string{op.InputItemID, op.OutputItemID})
	if err != nil {
		return nil, err
	}
	resp := &dto.ProcessOperationResponse{
		ID:           op.ID,
		ProcessCode:  op.ProcessCode,
		ProcessName:  op.ProcessName,
		InputItemID:  op.InputItemID,
		OutputItemID: op.OutputItemID,
		YieldRate:    op.YieldRate,
		SequenceNo:   op.SequenceNo,
		UseYN:        op.UseYN,
		CreatedAt:    op.CreatedAt,
		UpdatedAt:    op.UpdatedAt,
	}
	if it := items[op.InputItemID]; it != nil {
		resp.InputItemCode = it.ItemCode
		resp.InputItemName = it.ItemName
	}
	if it := items[op.OutputItemID]; it != nil {
		resp.OutputItemCode = it.ItemCode
		resp.OutputItemName = it.ItemName
	}
	return resp, nil
}
