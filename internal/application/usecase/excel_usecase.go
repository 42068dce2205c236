package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taechang/erp-api/internal/application/dto"
	"github.com/taechang/erp-api/internal/domain"
	"github.com/taechang/erp-api/internal/domain/entity"
	"github.com/taechang/erp-api/internal/domain/repository"
)

// BOMWorkbookCodec renders and parses the per-customer BOM workbook. Render
// and Parse must round-trip: a rendered file re-imported produces the same
// edge set. Parse reports unreadable rows instead of failing the file; the
// error return is for file-level problems only.
type BOMWorkbookCodec interface {
	Render(sheets []dto.BOMTemplateSheet) ([]byte, error)
	Parse(data []byte) ([]dto.BOMTemplateRow, []dto.RowError, error)
}

// ItemWorkbookCodec renders and parses the item master workbook.
type ItemWorkbookCodec interface {
	Render(items []*entity.Item) ([]byte, error)
	Parse(data []byte) ([]dto.ItemImportRow, []dto.RowError, error)
}

// PriceWorkbookCodec renders one month's price sheet and parses it back for
// the bulk price import.
type PriceWorkbookCodec interface {
	Render(month string, rows []dto.PriceResponse) ([]byte, error)
	Parse(data []byte) ([]dto.PriceImportRow, []dto.RowError, error)
}

// StockReportRenderer renders the monthly stock report workbook.
type StockReportRenderer interface {
	Render(month string, rows []repository.MonthlyStockRow) ([]byte, error)
}

// LegacyCSVParser parses the EUC-KR encoded item CSV exported by the old
// desktop program.
type LegacyCSVParser interface {
	ParseItems(data []byte) ([]dto.ItemImportRow, []dto.RowError, error)
}

// ExcelUsecase drives the file import/export screens.
type ExcelUsecase struct {
	items     repository.ItemRepository
	companies repository.CompanyRepository
	edges     repository.BOMRepository
	prices    repository.PriceRepository
	reports   repository.StockReportRepository

	bomCodec  BOMWorkbookCodec
	itemCodec ItemWorkbookCodec
	priceXLSX PriceWorkbookCodec
	stockXLSX StockReportRenderer
	legacyCSV LegacyCSVParser
}

// NewExcelUsecase builds the usecase.
func NewExcelUsecase(
	items repository.ItemRepository,
	companies repository.CompanyRepository,
	edges repository.BOMRepository,
	prices repository.PriceRepository,
	reports repository.StockReportRepository,
	bomCodec BOMWorkbookCodec,
	itemCodec ItemWorkbookCodec,
	priceXLSX PriceWorkbookCodec,
	stockXLSX StockReportRenderer,
	legacyCSV LegacyCSVParser,
) *ExcelUsecase {
	return &ExcelUsecase{
		items:     items,
		companies: companies,
		edges:     edges,
		prices:    prices,
		reports:   reports,
		bomCodec:  bomCodec,
		itemCodec: itemCodec,
		priceXLSX: priceXLSX,
		stockXLSX: stockXLSX,
		legacyCSV: legacyCSV,
	}
}

// ExportBOMWorkbook builds the workbook: one sheet per customer having BOM
// structures, plus a shared sheet for edges with no customer association.
func (u *ExcelUsecase) ExportBOMWorkbook() ([]byte, error) {
	edges, err := u.edges.ListAll()
	if err != nil {
		return nil, err
	}
	if len(edges) == 0 {
		return nil, domain.ErrNotFound
	}

	byCustomer := map[string][]*entity.BOMEdge{}
	for _, e := range edges {
		byCustomer[e.CustomerID] = append(byCustomer[e.CustomerID], e)
	}

	ids := make([]string, 0, len(edges)*2)
	seen := map[string]bool{}
	for _, e := range edges {
		for _, id := range []string{e.ParentItemID, e.ChildItemID} {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	items, err := u.items.GetByIDs(ids)
	if err != nil {
		return nil, err
	}

	var sheets []dto.BOMTemplateSheet
	for customerID, group := range byCustomer {
		sheet := dto.BOMTemplateSheet{}
		if customerID != "" {
			company, err := u.companies.GetByID(customerID)
			if err != nil {
				return nil, err
			}
			if company != nil {
				sheet.CustomerCode = company.CompanyCode
				sheet.CustomerName = company.CompanyName
			}
		}
		for _, e := range group {
			row := dto.BOMTemplateRow{
				Quantity:  e.QuantityRequired,
				YieldRate: e.YieldRate,
				LevelNo:   e.LevelNo,
			}
			if it := items[e.ParentItemID]; it != nil {
				row.ParentItemCode = it.ItemCode
			}
			if it := items[e.ChildItemID]; it != nil {
				row.ChildItemCode = it.ItemCode
				row.ChildItemName = it.ItemName
				row.Spec = it.Spec
				row.Unit = it.Unit
			}
			sheet.Rows = append(sheet.Rows, row)
		}
		sheets = append(sheets, sheet)
	}
	return u.bomCodec.Render(sheets)
}

// ImportBOMWorkbook parses a workbook and upserts edges keyed by
// (parent, child) item codes. Unknown codes skip the row; the import keeps
// going and reports every failure.
func (u *ExcelUsecase) ImportBOMWorkbook(data []byte) (*dto.ImportResult, error) {
	rows, rowErrs, err := u.bomCodec.Parse(data)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	result := &dto.ImportResult{Skipped: len(rowErrs), Errors: rowErrs}
	for i, row := range rows {
		parent, err := u.items.GetByCode(row.ParentItemCode)
		if err != nil {
			return nil, err
		}
		child, err := u.items.GetByCode(row.ChildItemCode)
		if err != nil {
			return nil, err
		}
		if parent == nil || child == nil {
			result.Skipped++
			result.Errors = append(result.Errors, dto.RowError{
				Row:     i + 1,
				Message: fmt.Sprintf("unknown item code %q or %q", row.ParentItemCode, row.ChildItemCode),
			})
			continue
		}
		if !row.Quantity.IsPositive() {
			result.Skipped++
			result.Errors = append(result.Errors, dto.RowError{Row: i + 1, Message: "quantity must be positive"})
			continue
		}

		now := time.Now()
		err = u.edges.Upsert(&entity.BOMEdge{
			ID:               uuid.New().String(),
			ParentItemID:     parent.ID,
			ChildItemID:      child.ID,
			QuantityRequired: row.Quantity,
			YieldRate:        row.YieldRate,
			LevelNo:          row.LevelNo,
			UseYN:            "Y",
			CreatedAt:        now,
			UpdatedAt:        now,
		})
		if err != nil {
			return nil, err
		}
		result.Imported++
	}
	return result, nil
}

// ExportItems renders the filtered item master as a workbook.
func (u *ExcelUsecase) ExportItems(filter repository.ItemFilter) ([]byte, error) {
	// One oversized page; the export is a full dump, not a listing.
	items, _, err := u.items.List(filter, 100000, 0)
	if err != nil {
		return nil, err
	}
	return u.itemCodec.Render(items)
}

// ImportItems upserts items by code from a workbook.
func (u *ExcelUsecase) ImportItems(data []byte) (*dto.ImportResult, error) {
	rows, rowErrs, err := u.itemCodec.Parse(data)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	return u.upsertItemRows(rows, rowErrs)
}

// ImportLegacyCSV upserts items from the EUC-KR CSV of the old program.
func (u *ExcelUsecase) ImportLegacyCSV(data []byte) (*dto.ImportResult, error) {
	rows, rowErrs, err := u.legacyCSV.ParseItems(data)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	return u.upsertItemRows(rows, rowErrs)
}

func (u *ExcelUsecase) upsertItemRows(rows []dto.ItemImportRow, rowErrs []dto.RowError) (*dto.ImportResult, error) {
	result := &dto.ImportResult{Skipped: len(rowErrs), Errors: rowErrs}
	for i, row := range rows {
		if row.ItemCode == "" || row.ItemName == "" {
			result.Skipped++
			result.Errors = append(result.Errors, dto.RowError{Row: i + 1, Message: "missing item code or name"})
			continue
		}
		category := row.ItemCategory
		if !validItemCategory(category) {
			category = entity.ItemCategoryRawMaterial
		}
		now := time.Now()
		err := u.items.Upsert(&entity.Item{
			ID:             uuid.New().String(),
			ItemCode:       row.ItemCode,
			ItemName:       row.ItemName,
			Spec:           row.Spec,
			ItemCategory:   category,
			Unit:           row.Unit,
			UnitPrice:      row.UnitPrice,
			ScrapUnitPrice: row.ScrapUnitPrice,
			SafetyStock:    row.SafetyStock,
			UseYN:          "Y",
			CreatedAt:      now,
			UpdatedAt:      now,
		})
		if err != nil {
			return nil, err
		}
		result.Imported++
	}
	return result, nil
}

// ExportPrices renders one month's price sheet.
func (u *ExcelUsecase) ExportPrices(month string) ([]byte, error) {
	if _, err := time.Parse("2006-01", month); err != nil {
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
			ItemID:     r.ItemID,
			PriceMonth: r.PriceMonth,
			UnitPrice:  r.UnitPrice,
			Note:       r.Note,
		}
		if it := items[r.ItemID]; it != nil {
			resp.ItemCode = it.ItemCode
			resp.ItemName = it.ItemName
		}
		out = append(out, resp)
	}
	return u.priceXLSX.Render(month, out)
}

// ImportPrices upserts one month's prices from a workbook, rows keyed by item
// code. Unknown codes and negative prices skip the row; the import keeps going
// and reports every failure.
func (u *ExcelUsecase) ImportPrices(month string, data []byte) (*dto.ImportResult, error) {
	if _, err := time.Parse("2006-01", month); err != nil {
		return nil, domain.ErrInvalidInput
	}
	rows, rowErrs, err := u.priceXLSX.Parse(data)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	result := &dto.ImportResult{Skipped: len(rowErrs), Errors: rowErrs}
	for i, row := range rows {
		if row.ItemCode == "" || row.UnitPrice.IsNegative() {
			result.Skipped++
			result.Errors = append(result.Errors, dto.RowError{Row: i + 1, Message: "missing item code or negative price"})
			continue
		}
		item, err := u.items.GetByCode(row.ItemCode)
		if err != nil {
			return nil, err
		}
		if item == nil {
			result.Skipped++
			result.Errors = append(result.Errors, dto.RowError{Row: i + 1, Message: "unknown item code " + row.ItemCode})
			continue
		}
		now := time.Now()
		err = u.prices.Upsert(&entity.ItemPriceHistory{
			ID:         uuid.New().String(),
			ItemID:     item.ID,
			PriceMonth: month,
			UnitPrice:  row.UnitPrice,
			Note:       row.Note,
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

// ExportMonthlyStockReport renders the monthly stock report workbook.
func (u *ExcelUsecase) ExportMonthlyStockReport(ctx context.Context, month string) ([]byte, error) {
	if _, err := time.Parse("2006-01", month); err != nil {
		return nil, domain.ErrInvalidInput
	}
	rows, err := u.reports.MonthlyReport(ctx, month)
	if err != nil {
		return nil, err
	}
	return u.stockXLSX.Render(month, rows)
}
