package excel

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/taechang/erp-api/internal/application/dto"
	"github.com/taechang/erp-api/internal/application/usecase"
)

// Column headers of the BOM workbook. The parser locates this header row
// anywhere on the sheet, so files edited by hand (title rows inserted,
// columns shifted right) still import.
var bomHeaders = []string{"모품목코드", "자품목코드", "자품목명", "규격", "단위", "소요량", "수율(%)", "레벨"}

const sharedBOMSheet = "공용"

var _ usecase.BOMWorkbookCodec = (*BOMWorkbook)(nil)

// BOMWorkbook renders and parses the per-customer BOM workbook.
type BOMWorkbook struct{}

// NewBOMWorkbook builds the codec.
func NewBOMWorkbook() *BOMWorkbook { return &BOMWorkbook{} }

// Render writes one sheet per customer. Sheets carry the customer name in a
// title row above the header so the file reads like the old paper template.
func (c *BOMWorkbook) Render(sheets []dto.BOMTemplateSheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		name := sheet.CustomerCode
		if name == "" {
			name = sharedBOMSheet
		}
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, err
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return nil, err
			}
		}

		title := sheet.CustomerName
		if title == "" {
			title = "공용 BOM"
		}
		if err := f.SetCellValue(name, "A1", title); err != nil {
			return nil, err
		}
		for col, h := range bomHeaders {
			cell, err := excelize.CoordinatesToCellName(col+1, 2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(name, cell, h); err != nil {
				return nil, err
			}
		}
		for r, row := range sheet.Rows {
			values := []interface{}{
				row.ParentItemCode, row.ChildItemCode, row.ChildItemName,
				row.Spec, row.Unit,
				row.Quantity.InexactFloat64(), row.YieldRate.InexactFloat64(),
				row.LevelNo,
			}
			for col, v := range values {
				cell, err := excelize.CoordinatesToCellName(col+1, r+3)
				if err != nil {
					return nil, err
				}
				if err := f.SetCellValue(name, cell, v); err != nil {
					return nil, err
				}
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Parse reads every sheet, locating the header row wherever it sits. Rows
// under the header are read with the header's column offset applied. A row
// with an unparseable cell is reported and skipped; the rest of the file
// still imports.
func (c *BOMWorkbook) Parse(data []byte) ([]dto.BOMTemplateRow, []dto.RowError, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	var out []dto.BOMTemplateRow
	var rowErrs []dto.RowError
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, nil, err
		}
		headerRow, colOffset := findHeader(rows, bomHeaders)
		if headerRow < 0 {
			continue // no header on this sheet, skip it
		}
		for r := headerRow + 1; r < len(rows); r++ {
			row := rows[r]
			parent := cellAt(row, colOffset)
			child := cellAt(row, colOffset+1)
			if parent == "" && child == "" {
				continue
			}
			qty, err := parseDecimal(cellAt(row, colOffset+5))
			if err != nil {
				rowErrs = append(rowErrs, badCell(sheet, r+1, "bad quantity", err))
				continue
			}
			yield, err := parseDecimal(cellAt(row, colOffset+6))
			if err != nil {
				rowErrs = append(rowErrs, badCell(sheet, r+1, "bad yield", err))
				continue
			}
			level := 0
			if lv := cellAt(row, colOffset+7); lv != "" {
				d, err := parseDecimal(lv)
				if err != nil {
					rowErrs = append(rowErrs, badCell(sheet, r+1, "bad level", err))
					continue
				}
				level = int(d.IntPart())
			}
			out = append(out, dto.BOMTemplateRow{
				ParentItemCode: parent,
				ChildItemCode:  child,
				ChildItemName:  cellAt(row, colOffset+2),
				Spec:           cellAt(row, colOffset+3),
				Unit:           cellAt(row, colOffset+4),
				Quantity:       qty,
				YieldRate:      yield,
				LevelNo:        level,
			})
		}
	}
	return out, rowErrs, nil
}

func badCell(sheet string, row int, what string, err error) dto.RowError {
	return dto.RowError{Row: row, Message: fmt.Sprintf("sheet %s: %s: %v", sheet, what, err)}
}

func cellAt(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
}
