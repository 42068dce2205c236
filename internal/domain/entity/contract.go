package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contract statuses.
const (
	ContractStatusActive     = "active"
	ContractStatusExpired    = "expired"
	ContractStatusTerminated = "terminated"
)

// Contract is a supply contract with a company.
type Contract struct {
	ID           string
	ContractNo   string // unique business key
	CompanyID    string
	ContractName string
	StartDate    time.Time
	EndDate      time.Time
	Amount       decimal.Decimal
	Status       string
	FileNote     string // reference to the filed paper/scan
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
