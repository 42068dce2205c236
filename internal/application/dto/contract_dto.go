package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateContractRequest input to register a supply contract.
type CreateContractRequest struct {
	ContractNo   string          `json:"contract_no" validate:"required,min=1,max=50"`
	ContractName string          `json:"contract_name" validate:"required,min=1,max=200"`
	CompanyID    string          `json:"company_id" validate:"required"`
	StartDate    time.Time       `json:"start_date"`
	EndDate      time.Time       `json:"end_date"`
	Amount       decimal.Decimal `json:"amount"`
	Remarks      string          `json:"remarks"`
}

// UpdateContractRequest partial update; nil fields are left unchanged.
type UpdateContractRequest struct {
	ContractName *string          `json:"contract_name" validate:"omitempty,min=1,max=200"`
	CompanyID    *string          `json:"company_id"`
	StartDate    *time.Time       `json:"start_date"`
	EndDate      *time.Time       `json:"end_date"`
	Amount       *decimal.Decimal `json:"amount"`
	Status       *string          `json:"status"`
	Remarks      *string          `json:"remarks"`
}

// ContractResponse contract output with the company label.
type ContractResponse struct {
	ID           string          `json:"id"`
	ContractNo   string          `json:"contract_no"`
	ContractName string          `json:"contract_name"`
	CompanyID    string          `json:"company_id"`
	CompanyName  string          `json:"company_name,omitempty"`
	StartDate    time.Time       `json:"start_date"`
	EndDate      time.Time       `json:"end_date"`
	Amount       decimal.Decimal `json:"amount"`
	Status       string          `json:"status"`
	Remarks      string          `json:"remarks,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ContractListResponse paginated contracts.
type ContractListResponse struct {
	Items []ContractResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
