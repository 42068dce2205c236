package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/taechang/erp-api/internal/domain/entity"
)

// TradeFilter narrows sales/purchase listings. Month is 'YYYY-MM'.
type TradeFilter struct {
	TradeType string
	CompanyID string
	Month     string
}

// TradeRepository is the persistence port for sales and purchase records.
type TradeRepository interface {
	Create(rec *entity.TradeRecord) error
	GetByID(id string) (*entity.TradeRecord, error)
	Update(rec *entity.TradeRecord) error
	Delete(id string) error
	List(filter TradeFilter, limit, offset int) ([]*entity.TradeRecord, int, error)
}

// SettlementRepository is the persistence port for collections and payments.
type SettlementRepository interface {
	Create(s *entity.Settlement) error
	GetByID(id string) (*entity.Settlement, error)
	Delete(id string) error
	List(settlementType, companyID, month string, limit, offset int) ([]*entity.Settlement, int, error)
}

// CompanySummaryRow is one company line of the monthly accounting summary.
// Receivable = sales − collections; Payable = purchases − payments. Totals are
// VAT-inclusive.
type CompanySummaryRow struct {
	CompanyID    string
	CompanyCode  string
	CompanyName  string
	CompanyType  string
	SalesTotal   decimal.Decimal
	PurchaseTotal decimal.Decimal
	Collections  decimal.Decimal
	Payments     decimal.Decimal
	Receivable   decimal.Decimal
	Payable      decimal.Decimal
}

// AccountingSummaryRepository provides the grouped monthly summary query.
type AccountingSummaryRepository interface {
	// MonthlySummary aggregates trade and settlement totals per company for
	// month ('YYYY-MM'). Companies with no activity are omitted.
	MonthlySummary(ctx context.Context, month string) ([]CompanySummaryRow, error)
}
