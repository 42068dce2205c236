package dto

import "github.com/shopspring/decimal"

// BOMTemplateRow is one line of the BOM workbook, keyed by item codes so the
// file round-trips without exposing internal ids.
type BOMTemplateRow struct {
	ParentItemCode string
	ChildItemCode  string
	ChildItemName  string
	Spec           string
	Unit           string
	Quantity       decimal.Decimal
	YieldRate      decimal.Decimal
	LevelNo        int
}

// BOMTemplateSheet is one per-customer sheet of the BOM workbook. An empty
// customer code labels the shared sheet for structures with no customer.
type BOMTemplateSheet struct {
	CustomerCode string
	CustomerName string
	Rows         []BOMTemplateRow
}

// PriceImportRow is one line of a monthly price workbook import, keyed by
// item code.
type PriceImportRow struct {
	ItemCode  string
	UnitPrice decimal.Decimal
	Note      string
}

// ItemImportRow is one line of an item workbook or legacy CSV import.
type ItemImportRow struct {
	ItemCode       string
	ItemName       string
	Spec           string
	ItemCategory   string
	Unit           string
	UnitPrice      decimal.Decimal
	ScrapUnitPrice decimal.Decimal
	SafetyStock    decimal.Decimal
}
