package excel

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"

	"github.com/taechang/erp-api/internal/application/dto"
	"github.com/taechang/erp-api/internal/application/usecase"
)

var _ usecase.LegacyCSVParser = (*LegacyCSV)(nil)

// LegacyCSV parses the item CSV exported by the old desktop program. Those
// files are EUC-KR encoded; UTF-8 files pass through untouched.
type LegacyCSV struct{}

// NewLegacyCSV builds the parser.
func NewLegacyCSV() *LegacyCSV { return &LegacyCSV{} }

// ParseItems reads item rows. Column order is fixed by the old export:
// code, name, spec, category label, unit, price, scrap price, safety stock.
// A first row that fails to parse as data is treated as the header. A later
// row with an unparseable number is reported and skipped; the rest of the
// file still imports.
func (p *LegacyCSV) ParseItems(data []byte) ([]dto.ItemImportRow, []dto.RowError, error) {
	var src io.Reader = bytes.NewReader(data)
	if !utf8.Valid(data) {
		src = transform.NewReader(src, korean.EUCKR.NewDecoder())
	}

	r := csv.NewReader(src)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var out []dto.ItemImportRow
	var rowErrs []dto.RowError
	line := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		line++
		if len(record) < 2 || cellAt(record, 0) == "" {
			continue
		}
		price, perr := parseDecimal(cellAt(record, 5))
		if line == 1 && perr != nil {
			continue // header row
		}
		if perr != nil {
			rowErrs = append(rowErrs, dto.RowError{Row: line, Message: fmt.Sprintf("bad price: %v", perr)})
			continue
		}
		scrap, err := parseDecimal(cellAt(record, 6))
		if err != nil {
			rowErrs = append(rowErrs, dto.RowError{Row: line, Message: fmt.Sprintf("bad scrap price: %v", err)})
			continue
		}
		safety, err := parseDecimal(cellAt(record, 7))
		if err != nil {
			rowErrs = append(rowErrs, dto.RowError{Row: line, Message: fmt.Sprintf("bad safety stock: %v", err)})
			continue
		}
		out = append(out, dto.ItemImportRow{
			ItemCode:       cellAt(record, 0),
			ItemName:       cellAt(record, 1),
			Spec:           cellAt(record, 2),
			ItemCategory:   categoryCode(cellAt(record, 3)),
			Unit:           cellAt(record, 4),
			UnitPrice:      price,
			ScrapUnitPrice: scrap,
			SafetyStock:    safety,
		})
	}
	return out, rowErrs, nil
}
