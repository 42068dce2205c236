package usecase_test

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/taechang/erp-api/internal/application/usecase"
	"github.com/taechang/erp-api/internal/domain/entity"
	"github.com/taechang/erp-api/internal/domain/repository"
)

// In-memory fakes for the repository ports. They keep just enough state for
// the usecase tests; no concurrency, no filtering beyond what the tests need.

type fakeItemRepo struct {
	items map[string]*entity.Item
}

func newFakeItemRepo(items ...*entity.Item) *fakeItemRepo {
	r := &fakeItemRepo{items: make(map[string]*entity.Item)}
	for _, it := range items {
		r.items[it.ID] = it
	}
	return r
}

func (r *fakeItemRepo) Create(item *entity.Item) error {
	r.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) GetByID(id string) (*entity.Item, error) {
	return r.items[id], nil
}

func (r *fakeItemRepo) GetByCode(itemCode string) (*entity.Item, error) {
	for _, it := range r.items {
		if it.ItemCode == itemCode {
			return it, nil
		}
	}
	return nil, nil
}

func (r *fakeItemRepo) GetByIDs(ids []string) (map[string]*entity.Item, error) {
	out := make(map[string]*entity.Item, len(ids))
	for _, id := range ids {
		if it, ok := r.items[id]; ok {
			out[id] = it
		}
	}
	return out, nil
}

func (r *fakeItemRepo) Update(item *entity.Item) error {
	r.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) UpdateStock(itemID string, delta decimal.Decimal) error {
	it := r.items[itemID]
	it.CurrentStock = it.CurrentStock.Add(delta)
	return nil
}

func (r *fakeItemRepo) List(filter repository.ItemFilter, limit, offset int) ([]*entity.Item, int, error) {
	var out []*entity.Item
	for _, it := range r.items {
		if !filter.IncludeUnused && !it.Active() {
			continue
		}
		if filter.Category != "" && it.ItemCategory != filter.Category {
			continue
		}
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemCode < out[j].ItemCode })
	return out, len(out), nil
}

func (r *fakeItemRepo) Upsert(item *entity.Item) error {
	for _, it := range r.items {
		if it.ItemCode == item.ItemCode {
			item.ID = it.ID
			r.items[it.ID] = item
			return nil
		}
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	r.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) SoftDelete(id string) error {
	if it, ok := r.items[id]; ok {
		it.UseYN = "N"
	}
	return nil
}

type fakeInventoryRepo struct {
	rows []*entity.InventoryTransaction
}

func (r *fakeInventoryRepo) Create(tx *entity.InventoryTransaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	r.rows = append(r.rows, tx)
	return nil
}

func (r *fakeInventoryRepo) GetByID(id string) (*entity.InventoryTransaction, error) {
	for _, tx := range r.rows {
		if tx.ID == id {
			return tx, nil
		}
	}
	return nil, nil
}

func (r *fakeInventoryRepo) List(filter repository.TransactionFilter, limit, offset int) ([]*entity.InventoryTransaction, int, error) {
	var out []*entity.InventoryTransaction
	for _, tx := range r.rows {
		if filter.ItemID != "" && tx.ItemID != filter.ItemID {
			continue
		}
		if filter.TransactionType != "" && tx.TransactionType != filter.TransactionType {
			continue
		}
		out = append(out, tx)
	}
	return out, len(out), nil
}

func (r *fakeInventoryRepo) ListByLot(lotNo string) ([]*entity.InventoryTransaction, error) {
	var out []*entity.InventoryTransaction
	for _, tx := range r.rows {
		if tx.LotNo == lotNo {
			out = append(out, tx)
		}
	}
	return out, nil
}

// fakeTxRunner hands the callback the same fakes the test seeded, so asserting
// on them after the call observes what "committed".
type fakeTxRunner struct {
	inv   *fakeInventoryRepo
	items *fakeItemRepo
}

var _ usecase.InventoryTxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) RunInventory(_ context.Context, fn func(
	invRepo repository.InventoryRepository,
	itemRepo repository.ItemRepository,
) error) error {
	return fn(r.inv, r.items)
}

type fakePriceRepo struct {
	rows []*entity.ItemPriceHistory
}

func (r *fakePriceRepo) Upsert(price *entity.ItemPriceHistory) error {
	for i, row := range r.rows {
		if row.ItemID == price.ItemID && row.PriceMonth == price.PriceMonth {
			r.rows[i] = price
			return nil
		}
	}
	r.rows = append(r.rows, price)
	return nil
}

func (r *fakePriceRepo) GetByItemAndMonth(itemID, priceMonth string) (*entity.ItemPriceHistory, error) {
	for _, row := range r.rows {
		if row.ItemID == itemID && row.PriceMonth == priceMonth {
			return row, nil
		}
	}
	return nil, nil
}

// GetLatestBefore relies on YYYY-MM sorting lexicographically.
func (r *fakePriceRepo) GetLatestBefore(itemID, priceMonth string) (*entity.ItemPriceHistory, error) {
	var best *entity.ItemPriceHistory
	for _, row := range r.rows {
		if row.ItemID != itemID || strings.Compare(row.PriceMonth, priceMonth) > 0 {
			continue
		}
		if best == nil || row.PriceMonth > best.PriceMonth {
			best = row
		}
	}
	return best, nil
}

func (r *fakePriceRepo) GetForItemsAndMonth(itemIDs []string, priceMonth string) (map[string]*entity.ItemPriceHistory, error) {
	out := make(map[string]*entity.ItemPriceHistory)
	for _, id := range itemIDs {
		row, _ := r.GetLatestBefore(id, priceMonth)
		if row != nil {
			out[id] = row
		}
	}
	return out, nil
}

func (r *fakePriceRepo) ListByMonth(priceMonth string) ([]*entity.ItemPriceHistory, error) {
	var out []*entity.ItemPriceHistory
	for _, row := range r.rows {
		if row.PriceMonth == priceMonth {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *fakePriceRepo) ListByItem(itemID string) ([]*entity.ItemPriceHistory, error) {
	var out []*entity.ItemPriceHistory
	for _, row := range r.rows {
		if row.ItemID == itemID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *fakePriceRepo) Delete(id string) error {
	for i, row := range r.rows {
		if row.ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeProcessRepo struct {
	ops map[string]*entity.ProcessOperation
}

func newFakeProcessRepo(ops ...*entity.ProcessOperation) *fakeProcessRepo {
	r := &fakeProcessRepo{ops: make(map[string]*entity.ProcessOperation)}
	for _, op := range ops {
		r.ops[op.ID] = op
	}
	return r
}

func (r *fakeProcessRepo) Create(op *entity.ProcessOperation) error {
	r.ops[op.ID] = op
	return nil
}

func (r *fakeProcessRepo) GetByID(id string) (*entity.ProcessOperation, error) {
	return r.ops[id], nil
}

func (r *fakeProcessRepo) GetByCode(processCode string) (*entity.ProcessOperation, error) {
	for _, op := range r.ops {
		if op.ProcessCode == processCode {
			return op, nil
		}
	}
	return nil, nil
}

func (r *fakeProcessRepo) Update(op *entity.ProcessOperation) error {
	r.ops[op.ID] = op
	return nil
}

func (r *fakeProcessRepo) List(search string, limit, offset int) ([]*entity.ProcessOperation, int, error) {
	var out []*entity.ProcessOperation
	for _, op := range r.ops {
		if op.UseYN == "N" {
			continue
		}
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SequenceNo < out[j].SequenceNo })
	return out, len(out), nil
}

func (r *fakeProcessRepo) SoftDelete(id string) error {
	if op, ok := r.ops[id]; ok {
		op.UseYN = "N"
	}
	return nil
}

type fakeReportRepo struct {
	rows []repository.MonthlyStockRow
}

func (r *fakeReportRepo) MonthlyReport(_ context.Context, month string) ([]repository.MonthlyStockRow, error) {
	return r.rows, nil
}
