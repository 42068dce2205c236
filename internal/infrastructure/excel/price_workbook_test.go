package excel

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taechang/erp-api/internal/application/dto"
)

func TestPriceWorkbook_RoundTrip(t *testing.T) {
	codec := NewPriceWorkbook()

	data, err := codec.Render("2026-08", []dto.PriceResponse{
		{ItemCode: "RAW-001", ItemName: "냉연강판", PriceMonth: "2026-08",
			UnitPrice: decimal.NewFromInt(310), Note: "인상분 반영"},
		{ItemCode: "RAW-002", ItemName: "코일", PriceMonth: "2026-08",
			UnitPrice: decimal.NewFromFloat(412.5)},
	})
	require.NoError(t, err)

	rows, rowErrs, err := codec.Parse(data)
	require.NoError(t, err)
	require.Empty(t, rowErrs)
	require.Len(t, rows, 2)

	assert.Equal(t, "RAW-001", rows[0].ItemCode)
	assert.True(t, rows[0].UnitPrice.Equal(decimal.NewFromInt(310)))
	assert.Equal(t, "인상분 반영", rows[0].Note)
	assert.True(t, rows[1].UnitPrice.Equal(decimal.NewFromFloat(412.5)))
}

func TestPriceWorkbook_ParseSkipsTitleAndBlankRows(t *testing.T) {
	codec := NewPriceWorkbook()
	data, err := codec.Render("2026-08", []dto.PriceResponse{
		{ItemCode: "RAW-001", UnitPrice: decimal.NewFromInt(310)},
	})
	require.NoError(t, err)

	// The title row above the header must not parse as data.
	rows, _, err := codec.Parse(data)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
