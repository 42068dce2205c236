package usecase

import (
	"context"
	"time"

	"github.com/taechang/erp-api/internal/application/dto"
	"github.com/taechang/erp-api/internal/domain/repository"
	"github.com/taechang/erp-api/pkg/logger"
)

// DashboardUsecase assembles the landing page. Each section is best-effort:
// a failed query is logged and zeroed so one broken aggregate never blanks
// the whole screen.
type DashboardUsecase struct {
	dash      repository.DashboardRepository
	contracts repository.ContractRepository
	items     repository.ItemRepository
	log       *logger.Logger
}

// NewDashboardUsecase builds the usecase.
func NewDashboardUsecase(
	dash repository.DashboardRepository,
	contracts repository.ContractRepository,
	items repository.ItemRepository,
	log *logger.Logger,
) *DashboardUsecase {
	return &DashboardUsecase{dash: dash, contracts: contracts, items: items, log: log}
}

// Summary returns the dashboard figures for today.
func (u *DashboardUsecase) Summary(ctx context.Context) (*dto.DashboardResponse, error) {
	resp := &dto.DashboardResponse{}

	counts, err := u.dash.Counts(ctx, time.Now())
	if err != nil {
		u.log.Warn().Err(err).Msg("dashboard counts failed, zeroing section")
	} else if counts != nil {
		resp.TotalItems = counts.ItemCount
		resp.TotalCompanies = counts.CompanyCount
		resp.LowStockItems = counts.LowStockCount
		resp.TodayReceiving = counts.TodayReceiving
		resp.TodayShipping = counts.TodayShipping
		resp.MonthSales = counts.MonthSales
		resp.MonthPurchases = counts.MonthPurchases
	}

	expiring, err := u.contracts.ListExpiring(30)
	if err != nil {
		u.log.Warn().Err(err).Msg("expiring contracts failed, zeroing section")
	} else {
		resp.ExpiringContracts = len(expiring)
	}

	recent, err := u.dash.RecentTransactions(ctx, 10)
	if err != nil {
		u.log.Warn().Err(err).Msg("recent transactions failed, zeroing section")
		resp.RecentTransactions = []dto.TransactionResponse{}
		return resp, nil
	}

	ids := make([]string, 0, len(recent))
	seen := map[string]bool{}
	for _, tx := range recent {
		if !seen[tx.ItemID] {
			seen[tx.ItemID] = true
			ids = append(ids, tx.ItemID)
		}
	}
	items, err := u.items.GetByIDs(ids)
	if err != nil {
		u.log.Warn().Err(err).Msg("item labels failed for recent transactions")
		items = nil
	}
	out := make([]dto.TransactionResponse, 0, len(recent))
	for _, tx := range recent {
		out = append(out, *toTransactionResponse(tx, items[tx.ItemID]))
	}
	resp.RecentTransactions = out
	return resp, nil
}
