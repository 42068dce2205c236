package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProcessOperationRequest input to define one process step
// (input item is consumed, output item is produced).
type CreateProcessOperationRequest struct {
	ProcessCode  string          `json:"process_code" validate:"required,min=1,max=50"`
	ProcessName  string          `json:"process_name" validate:"required,min=1,max=200"`
	InputItemID  string          `json:"input_item_id" validate:"required"`
	OutputItemID string          `json:"output_item_id" validate:"required"`
	YieldRate    decimal.Decimal `json:"yield_rate"`
	SequenceNo   int             `json:"sequence_no"`
}

// UpdateProcessOperationRequest partial update; nil fields are left unchanged.
type UpdateProcessOperationRequest struct {
	ProcessName  *string          `json:"process_name" validate:"omitempty,min=1,max=200"`
	InputItemID  *string          `json:"input_item_id"`
	OutputItemID *string          `json:"output_item_id"`
	YieldRate    *decimal.Decimal `json:"yield_rate"`
	SequenceNo   *int             `json:"sequence_no"`
}

// ProcessOperationResponse process step output with item labels.
type ProcessOperationResponse struct {
	ID             string          `json:"id"`
	ProcessCode    string          `json:"process_code"`
	ProcessName    string          `json:"process_name"`
	InputItemID    string          `json:"input_item_id"`
	InputItemCode  string          `json:"input_item_code,omitempty"`
	InputItemName  string          `json:"input_item_name,omitempty"`
	OutputItemID   string          `json:"output_item_id"`
	OutputItemCode string          `json:"output_item_code,omitempty"`
	OutputItemName string          `json:"output_item_name,omitempty"`
	YieldRate      decimal.Decimal `json:"yield_rate"`
	SequenceNo     int             `json:"sequence_no"`
	UseYN          string          `json:"use_yn"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// RunProcessRequest executes one process step: consumes input stock and
// produces output stock under a shared lot number, in one transaction.
type RunProcessRequest struct {
	ProcessID       string          `json:"process_id" validate:"required"`
	InputQuantity   decimal.Decimal `json:"input_quantity"`
	LotNo           string          `json:"lot_no"`
	TransactionDate time.Time       `json:"transaction_date"`
	AllowNegative   bool            `json:"allow_negative"`
	Remarks         string          `json:"remarks"`
}

// RunProcessResponse the pair of ledger rows a process run created.
type RunProcessResponse struct {
	LotNo          string              `json:"lot_no"`
	InputTx        TransactionResponse `json:"input_tx"`
	OutputTx       TransactionResponse `json:"output_tx"`
	OutputQuantity decimal.Decimal     `json:"output_quantity"`
}
