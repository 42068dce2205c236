package pdf

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taechang/erp-api/internal/domain/repository"
)

func summaryFixtures() []repository.CompanySummaryRow {
	return []repository.CompanySummaryRow{
		{
			CompanyCode: "HMC", CompanyName: "현대자동차",
			SalesTotal: decimal.NewFromInt(27500000), Collections: decimal.NewFromInt(20000000),
			Receivable: decimal.NewFromInt(7500000),
		},
		{
			CompanyCode: "POSCO", CompanyName: "포스코",
			PurchaseTotal: decimal.NewFromInt(9900000), Payments: decimal.NewFromInt(9900000),
		},
	}
}

func TestSummaryRenderer_Render(t *testing.T) {
	data, err := NewSummaryRenderer().Render("2026-07", summaryFixtures())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "output must be a PDF document")
}

// Each totals line is its own row so the four figures stack vertically
// instead of printing over each other.
func TestTotalsRows_OneRowPerLine(t *testing.T) {
	rows := totalsRows(summaryFixtures())
	assert.Len(t, rows, 4)
}

func TestMoney_GroupsThousands(t *testing.T) {
	assert.Equal(t, "27,500,000", money(decimal.NewFromInt(27500000)))
	assert.Equal(t, "-1,200", money(decimal.NewFromInt(-1200)))
	assert.Equal(t, "0", money(decimal.Zero))
	assert.Equal(t, "999", money(decimal.NewFromInt(999)))
}
