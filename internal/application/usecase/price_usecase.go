package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/taechang/erp-api/internal/application/dto"
	"github.com/taechang/erp-api/internal/domain"
	"github.com/taechang/erp-api/internal/domain/entity"
	"github.com/taechang/erp-api/internal/domain/repository"
)

// PriceUsecase manages monthly unit prices and carry-forward resolution.
type PriceUsecase struct {
	prices repository.PriceRepository
	items  repository.ItemRepository
}

// NewPriceUsecase builds the usecase.
func NewPriceUsecase(prices repository.PriceRepository, items repository.ItemRepository) *PriceUsecase {
	return &PriceUsecase{prices: prices, items: items}
}

func validPriceMonth(month string) bool {
	_, err := time.Parse("2006-01", month)
	return err == nil
}

// BulkUpsert sets prices for one month. Re-submitting the same month replaces
// the rows, so the monthly price screen can save repeatedly. Bad rows are
// collected and reported without aborting the rest.
func (u *PriceUsecase) BulkUpsert(req *dto.BulkUpsertPricesRequest) (*dto.ImportResult, error) {
	if !validPriceMonth(req.PriceMonth) || len(req.Prices) == 0 {
		return nil, domain.ErrInvalidInput
	}

	result := &dto.ImportResult{}
	for i, p := range req.Prices {
		if p.ItemID == "" || p.UnitPrice.IsNegative() {
			result.Skipped++
			result.Errors = append(result.Errors, dto.RowError{Row: i + 1, Message: "missing item or negative price"})
			continue
		}
		item, err := u.items.GetByID(p.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			result.Skipped++
			result.Errors = append(result.Errors, dto.RowError{Row: i + 1, Message: "unknown item " + p.ItemID})
			continue
		}
		now := time.Now()
		err = u.prices.Upsert(&entity.ItemPriceHistory{
			ID:         uuid.New().String(),
			ItemID:     p.ItemID,
			PriceMonth: req.PriceMonth,
			UnitPrice:  p.UnitPrice,
			Note:       p.Note,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		if err != nil {
			return nil, err
		}
		result.Imported++
	}
	return result, nil
}

// ListByMonth returns the stored rows for one month with item labels.
func (u *PriceUsecase) ListByMonth(month string) (*dto.PriceListResponse, error) {
	if !validPriceMonth(month) {
		return nil, domain.ErrInvalidInput
	}
	rows, err := u.prices.ListByMonth(month)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ItemID)
	}
	items, err := u.items.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PriceResponse, 0, len(rows))
	for _, r := range rows {
		resp := dto.PriceResponse{
			ID:         r.ID,
			ItemID:     r.ItemID,
			PriceMonth: r.PriceMonth,
			UnitPrice:  r.UnitPrice,
			Note:       r.Note,
			UpdatedAt:  r.UpdatedAt,
		}
		if it := items[r.ItemID]; it != nil {
			resp.ItemCode = it.ItemCode
			resp.ItemName = it.ItemName
		}
		out = append(out, resp)
	}
	return &dto.PriceListResponse{PriceMonth: month, Items: out}, nil
}

// ListByItem returns the full price history of one item, newest first.
func (u *PriceUsecase) ListByItem(itemID string) ([]dto.PriceResponse, error) {
	rows, err := u.prices.ListByItem(itemID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PriceResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.PriceResponse{
			ID:         r.ID,
			ItemID:     r.ItemID,
			PriceMonth: r.PriceMonth,
			UnitPrice:  r.UnitPrice,
			Note:       r.Note,
			UpdatedAt:  r.UpdatedAt,
		})
	}
	return out, nil
}

// Resolve returns the effective price of an item for a month. A month with no
// row carries the most recent earlier month forward; with no history at all
// the item master price applies.
func (u *PriceUsecase) Resolve(itemID, month string) (*dto.ResolvedPriceResponse, error) {
	if !validPriceMonth(month) {
		return nil, domain.ErrInvalidInput
	}
	item, err := u.items.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	row, err := u.prices.GetLatestBefore(itemID, month)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return &dto.ResolvedPriceResponse{
			ItemID:     itemID,
			PriceMonth: month,
			UnitPrice:  item.UnitPrice,
			FromMaster: true,
		}, nil
	}
	return &dto.ResolvedPriceResponse{
		ItemID:      itemID,
		PriceMonth:  month,
		UnitPrice:   row.UnitPrice,
		SourceMonth: row.PriceMonth,
	}, nil
}

// Delete removes one stored price row.
func (u *PriceUsecase) Delete(id string) error {
	return u.prices.Delete(id)
}
