package excel

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/taechang/erp-api/internal/application/dto"
)

func bomRow(parent, child string, qty, yield float64) dto.BOMTemplateRow {
	return dto.BOMTemplateRow{
		ParentItemCode: parent,
		ChildItemCode:  child,
		ChildItemName:  child + " 부품",
		Spec:           "1.6T",
		Unit:           "EA",
		Quantity:       decimal.NewFromFloat(qty),
		YieldRate:      decimal.NewFromFloat(yield),
		LevelNo:        1,
	}
}

func TestBOMWorkbook_RoundTrip(t *testing.T) {
	codec := NewBOMWorkbook()

	data, err := codec.Render([]dto.BOMTemplateSheet{
		{CustomerCode: "HMC", CustomerName: "현대자동차", Rows: []dto.BOMTemplateRow{
			bomRow("FIN-001", "SEMI-001", 2, 90),
			bomRow("SEMI-001", "RAW-001", 1.5, 100),
		}},
		{CustomerCode: "", CustomerName: "", Rows: []dto.BOMTemplateRow{
			bomRow("FIN-900", "RAW-900", 4, 100),
		}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, data)

	rows, rowErrs, err := codec.Parse(data)
	require.NoError(t, err)
	require.Empty(t, rowErrs)
	require.Len(t, rows, 3)

	assert.Equal(t, "FIN-001", rows[0].ParentItemCode)
	assert.Equal(t, "SEMI-001", rows[0].ChildItemCode)
	assert.True(t, rows[0].Quantity.Equal(decimal.NewFromInt(2)))
	assert.True(t, rows[0].YieldRate.Equal(decimal.NewFromInt(90)))
	assert.Equal(t, 1, rows[0].LevelNo)

	// The customer-less sheet rides along under the shared sheet name.
	assert.Equal(t, "FIN-900", rows[2].ParentItemCode)
}

func TestBOMWorkbook_SharedSheetName(t *testing.T) {
	codec := NewBOMWorkbook()
	data, err := codec.Render([]dto.BOMTemplateSheet{
		{CustomerCode: "", Rows: []dto.BOMTemplateRow{bomRow("A", "B", 1, 100)}},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{sharedBOMSheet}, f.GetSheetList())
}

// Hand-edited files often gain title rows and shifted columns. The parser must
// find the header wherever it sits.
func TestBOMWorkbook_ParseWithShiftedHeader(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetCellValue("Sheet1", "A1", "2026년 8월 BOM 개정판"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", "작성: 생산관리팀"))
	// Header at row 4, starting in column C.
	for i, h := range bomHeaders {
		cell, err := excelize.CoordinatesToCellName(3+i, 4)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("Sheet1", cell, h))
	}
	values := []interface{}{"FIN-001", "RAW-777", "브라켓", "2.0T", "EA", 3, 95, 1}
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(3+i, 5)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("Sheet1", cell, v))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, rowErrs, err := NewBOMWorkbook().Parse(buf.Bytes())
	require.NoError(t, err)
	require.Empty(t, rowErrs)
	require.Len(t, rows, 1)
	assert.Equal(t, "FIN-001", rows[0].ParentItemCode)
	assert.Equal(t, "RAW-777", rows[0].ChildItemCode)
	assert.True(t, rows[0].Quantity.Equal(decimal.NewFromInt(3)))
	assert.True(t, rows[0].YieldRate.Equal(decimal.NewFromInt(95)))
}

// A single unreadable cell must not throw away the rest of the file.
func TestBOMWorkbook_BadQuantityRowSkippedOthersKept(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	for i, h := range bomHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		require.NoError(t, f.SetCellValue("Sheet1", cell, h))
	}
	lines := [][]interface{}{
		{"FIN-001", "RAW-001", "", "", "EA", "두개", 100, 1},
		{"FIN-001", "RAW-002", "", "", "EA", 3, 95, 1},
	}
	for r, values := range lines {
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			require.NoError(t, f.SetCellValue("Sheet1", cell, v))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, rowErrs, err := NewBOMWorkbook().Parse(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, rows, 1, "the readable row survives")
	assert.Equal(t, "RAW-002", rows[0].ChildItemCode)
	require.Len(t, rowErrs, 1)
	assert.Equal(t, 2, rowErrs[0].Row)
	assert.Contains(t, rowErrs[0].Message, "bad quantity")
}

func TestItemWorkbook_RoundTripTranslatesCategoryLabels(t *testing.T) {
	codec := NewItemWorkbook()

	data, err := codec.Render(itemFixtures())
	require.NoError(t, err)

	rows, rowErrs, err := codec.Parse(data)
	require.NoError(t, err)
	require.Empty(t, rowErrs)
	require.Len(t, rows, 2)

	assert.Equal(t, "RAW-001", rows[0].ItemCode)
	assert.Equal(t, "raw_material", rows[0].ItemCategory,
		"the Korean label on the sheet maps back to the stored code")
	assert.True(t, rows[0].UnitPrice.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, "finished", rows[1].ItemCategory)
}
