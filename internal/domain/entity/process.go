package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProcessOperation is a production step definition: it consumes the input item
// and produces the output item at the given yield rate (공정).
type ProcessOperation struct {
	ID           string
	ProcessCode  string // unique business key
	ProcessName  string
	InputItemID  string
	OutputItemID string
	YieldRate    decimal.Decimal // percent of input surviving the step
	SequenceNo   int
	UseYN        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
