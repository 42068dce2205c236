package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/taechang/erp-api/internal/domain/entity"
)

// DashboardCounts are the headline figures of the main dashboard.
type DashboardCounts struct {
	ItemCount      int
	CompanyCount   int
	LowStockCount  int
	TodayReceiving decimal.Decimal
	TodayShipping  decimal.Decimal
	MonthSales     decimal.Decimal
	MonthPurchases decimal.Decimal
}

// DashboardRepository provides the read-only aggregates for the dashboard.
// Each method is best-effort from the caller's point of view: a failure is
// logged and rendered as zero, never a 500.
type DashboardRepository interface {
	Counts(ctx context.Context, today time.Time) (*DashboardCounts, error)
	RecentTransactions(ctx context.Context, limit int) ([]*entity.InventoryTransaction, error)
}
