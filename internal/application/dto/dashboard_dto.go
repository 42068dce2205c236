package dto

import "github.com/shopspring/decimal"

// DashboardResponse landing page figures. Sections that fail to load are
// zeroed rather than failing the whole response.
type DashboardResponse struct {
	TotalItems         int                   `json:"total_items"`
	TotalCompanies     int                   `json:"total_companies"`
	LowStockItems      int                   `json:"low_stock_items"`
	TodayReceiving     decimal.Decimal       `json:"today_receiving"`
	TodayShipping      decimal.Decimal       `json:"today_shipping"`
	MonthSales         decimal.Decimal       `json:"month_sales"`
	MonthPurchases     decimal.Decimal       `json:"month_purchases"`
	ExpiringContracts  int                   `json:"expiring_contracts"`
	RecentTransactions []TransactionResponse `json:"recent_transactions"`
}
