package excel

import (
	"bytes"

	"github.com/xuri/excelize/v2"

	"github.com/taechang/erp-api/internal/application/dto"
	"github.com/taechang/erp-api/internal/application/usecase"
)

var priceHeaders = []string{"품목코드", "품목명", "적용월", "단가", "비고"}

var _ usecase.PriceWorkbookCodec = (*PriceWorkbook)(nil)

// PriceWorkbook renders and parses one month's price sheet.
type PriceWorkbook struct{}

// NewPriceWorkbook builds the codec.
func NewPriceWorkbook() *PriceWorkbook { return &PriceWorkbook{} }

// Render writes the month's price rows under a title row.
func (c *PriceWorkbook) Render(month string, rows []dto.PriceResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := month
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheet, "A1", month+" 월별 단가"); err != nil {
		return nil, err
	}
	for col, h := range priceHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 2)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	for r, row := range rows {
		values := []interface{}{
			row.ItemCode, row.ItemName, row.PriceMonth,
			row.UnitPrice.InexactFloat64(), row.Note,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, r+3)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
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

// Parse reads price rows from the first sheet carrying the header. The target
// month comes from the caller, not the sheet, so a re-used file sets prices
// for the month being edited. A row with an unparseable price is reported and
// skipped; the rest still imports.
func (c *PriceWorkbook) Parse(data []byte) ([]dto.PriceImportRow, []dto.RowError, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	var out []dto.PriceImportRow
	var rowErrs []dto.RowError
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, nil, err
		}
		headerRow, offset := findHeader(rows, priceHeaders)
		if headerRow < 0 {
			continue
		}
		for r := headerRow + 1; r < len(rows); r++ {
			row := rows[r]
			code := cellAt(row, offset)
			if code == "" {
				continue
			}
			price, err := parseDecimal(cellAt(row, offset+3))
			if err != nil {
				rowErrs = append(rowErrs, badCell(sheet, r+1, "bad price", err))
				continue
			}
			out = append(out, dto.PriceImportRow{
				ItemCode:  code,
				UnitPrice: price,
				Note:      cellAt(row, offset+4),
			})
		}
		break
	}
	return out, rowErrs, nil
}
