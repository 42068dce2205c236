package excel

import (
	"bytes"

	"github.com/xuri/excelize/v2"

	"github.com/taechang/erp-api/internal/application/dto"
	"github.com/taechang/erp-api/internal/application/usecase"
	"github.com/taechang/erp-api/internal/domain/entity"
)

var itemHeaders = []string{"품목코드", "품목명", "규격", "구분", "단위", "단가", "스크랩단가", "안전재고"}

const itemSheet = "품목"

// categoryLabels maps the Korean screen labels to the stored category codes.
// Both directions are accepted on import.
var categoryLabels = map[string]string{
	"원자재": entity.ItemCategoryRawMaterial,
	"반제품": entity.ItemCategorySemiFinished,
	"완제품": entity.ItemCategoryFinished,
	"소모품": entity.ItemCategoryConsumable,
}

var _ usecase.ItemWorkbookCodec = (*ItemWorkbook)(nil)

// ItemWorkbook renders and parses the item master workbook.
type ItemWorkbook struct{}

// NewItemWorkbook builds the codec.
func NewItemWorkbook() *ItemWorkbook { return &ItemWorkbook{} }

// Render writes the item dump, one row per item.
func (c *ItemWorkbook) Render(items []*entity.Item) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", itemSheet); err != nil {
		return nil, err
	}
	for col, h := range itemHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(itemSheet, cell, h); err != nil {
			return nil, err
		}
	}
	for r, it := range items {
		values := []interface{}{
			it.ItemCode, it.ItemName, it.Spec, categoryLabel(it.ItemCategory), it.Unit,
			it.UnitPrice.InexactFloat64(), it.ScrapUnitPrice.InexactFloat64(),
			it.SafetyStock.InexactFloat64(),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(itemSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Parse reads item rows from the first sheet carrying the header. A row with
// an unparseable cell is reported and skipped; the rest still imports.
func (c *ItemWorkbook) Parse(data []byte) ([]dto.ItemImportRow, []dto.RowError, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	var out []dto.ItemImportRow
	var rowErrs []dto.RowError
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, nil, err
		}
		headerRow, offset := findHeader(rows, itemHeaders)
		if headerRow < 0 {
			continue
		}
		for r := headerRow + 1; r < len(rows); r++ {
			row := rows[r]
			code := cellAt(row, offset)
			if code == "" {
				continue
			}
			price, err := parseDecimal(cellAt(row, offset+5))
			if err != nil {
				rowErrs = append(rowErrs, badCell(sheet, r+1, "bad price", err))
				continue
			}
			scrap, err := parseDecimal(cellAt(row, offset+6))
			if err != nil {
				rowErrs = append(rowErrs, badCell(sheet, r+1, "bad scrap price", err))
				continue
			}
			safety, err := parseDecimal(cellAt(row, offset+7))
			if err != nil {
				rowErrs = append(rowErrs, badCell(sheet, r+1, "bad safety stock", err))
				continue
			}
			out = append(out, dto.ItemImportRow{
				ItemCode:       code,
				ItemName:       cellAt(row, offset+1),
				Spec:           cellAt(row, offset+2),
				ItemCategory:   categoryCode(cellAt(row, offset+3)),
				Unit:           cellAt(row, offset+4),
				UnitPrice:      price,
				ScrapUnitPrice: scrap,
				SafetyStock:    safety,
			})
		}
		break // first matching sheet wins
	}
	return out, rowErrs, nil
}

// findHeader locates a header sequence anywhere on the sheet.
func findHeader(rows [][]string, headers []string) (int, int) {
	for r, row := range rows {
		for c := range row {
			if matchesHeaderSeq(row, c, headers) {
				return r, c
			}
		}
	}
	return -1, 0
}

func matchesHeaderSeq(row []string, offset int, headers []string) bool {
	if len(row) < offset+len(headers) {
		return false
	}
	for i, h := range headers {
		if cellAt(row, offset+i) != h {
			return false
		}
	}
	return true
}

func categoryLabel(code string) string {
	for label, c := range categoryLabels {
		if c == code {
			return label
		}
	}
	return code
}

func categoryCode(label string) string {
	if code, ok := categoryLabels[label]; ok {
		return code
	}
	return label
}
