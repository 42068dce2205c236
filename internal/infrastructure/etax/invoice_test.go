package etax

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taechang/erp-api/internal/domain"
	"github.com/taechang/erp-api/internal/domain/entity"
)

var testSupplier = SupplierInfo{
	BusinessNo: "123-45-67890",
	Name:       "태창공업",
	CEOName:    "김대표",
	Address:    "경기도 안산시 단원구",
}

// testBuilder pins the clock inside the issuance window of the test trades.
func testBuilder() *InvoiceBuilder {
	b := NewInvoiceBuilder(testSupplier)
	b.now = func() time.Time { return time.Date(2026, 7, 20, 0, 0, 0, 0, time.UTC) }
	return b
}

func testTrade(tradeType string) *entity.TradeRecord {
	return &entity.TradeRecord{
		ID:           "a1b2c3d4-0000-0000-0000-000000000000",
		TradeType:    tradeType,
		CompanyID:    "c1",
		ItemID:       "i1",
		Quantity:     decimal.NewFromInt(100),
		UnitPrice:    decimal.NewFromInt(2500),
		SupplyAmount: decimal.NewFromInt(250000),
		TaxAmount:    decimal.NewFromInt(25000),
		RecordDate:   time.Date(2026, 7, 15, 10, 30, 0, 0, time.UTC),
	}
}

func testCompany() *entity.Company {
	return &entity.Company{
		ID: "c1", CompanyCode: "HMC", CompanyName: "현대자동차",
		BusinessNo: "999-88-77777", CEOName: "박사장", Address: "울산광역시",
	}
}

func findText(t *testing.T, doc *etree.Document, path string) string {
	t.Helper()
	el := doc.FindElement(path)
	require.NotNil(t, el, "element %s must exist", path)
	return el.Text()
}

func TestBuild_SalesInvoiceParties(t *testing.T) {
	b := testBuilder()
	item := &entity.Item{ID: "i1", ItemName: "브라켓", Spec: "1.6T"}

	data, err := b.Build(testTrade(entity.TradeTypeSales), testCompany(), item)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(data))

	// On a sale we invoice; the customer is invoiced. Business numbers are
	// stripped of dashes on the wire.
	assert.Equal(t, "1234567890",
		findText(t, doc, "//TaxInvoiceTradeSettlement/InvoicerParty/ID"))
	assert.Equal(t, "태창공업",
		findText(t, doc, "//TaxInvoiceTradeSettlement/InvoicerParty/NameText"))
	assert.Equal(t, "9998877777",
		findText(t, doc, "//TaxInvoiceTradeSettlement/InvoiceeParty/ID"))

	assert.Equal(t, "0101", findText(t, doc, "//TaxInvoiceDocument/TypeCode"))
	assert.Equal(t, "20260715103000", findText(t, doc, "//TaxInvoiceDocument/IssueDateTime"))
	assert.Equal(t, "20260715-a1b2c3d4", findText(t, doc, "//TaxInvoiceDocument/IssueID"))

	assert.Equal(t, "250000", findText(t, doc, "//SpecifiedMonetarySummation/ChargeTotalAmount"))
	assert.Equal(t, "25000", findText(t, doc, "//SpecifiedMonetarySummation/TaxTotalAmount"))
	assert.Equal(t, "275000", findText(t, doc, "//SpecifiedMonetarySummation/GrandTotalAmount"))

	assert.Equal(t, "브라켓", findText(t, doc, "//TaxInvoiceTradeLineItem/NameText"))
	assert.Equal(t, "1.6T", findText(t, doc, "//TaxInvoiceTradeLineItem/InformationText"))
}

func TestBuild_PurchaseSwapsParties(t *testing.T) {
	b := testBuilder()

	data, err := b.Build(testTrade(entity.TradeTypePurchase), testCompany(), nil)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(data))

	assert.Equal(t, "9998877777",
		findText(t, doc, "//TaxInvoiceTradeSettlement/InvoicerParty/ID"),
		"on a purchase the counterparty invoices us")
	assert.Equal(t, "1234567890",
		findText(t, doc, "//TaxInvoiceTradeSettlement/InvoiceeParty/ID"))
}

func TestBuild_RequiresTradeAndCompany(t *testing.T) {
	b := testBuilder()
	_, err := b.Build(nil, testCompany(), nil)
	assert.Error(t, err)
	_, err = b.Build(testTrade(entity.TradeTypeSales), nil, nil)
	assert.Error(t, err)
}

// Issuance after the 10th of the following month is refused, so the API
// answers 409 instead of emitting XML the NTS would reject.
func TestBuild_RefusesPastDeadlineTrade(t *testing.T) {
	b := NewInvoiceBuilder(testSupplier)
	b.now = func() time.Time { return time.Date(2026, 8, 11, 0, 0, 0, 0, time.UTC) }

	_, err := b.Build(testTrade(entity.TradeTypeSales), testCompany(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestValidIssueDate_TenthOfNextMonth(t *testing.T) {
	trade := time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)

	onDeadline := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	assert.True(t, ValidIssueDate(trade, onDeadline), "the 10th itself is still valid")

	past := time.Date(2026, 8, 11, 0, 0, 0, 0, time.UTC)
	assert.False(t, ValidIssueDate(trade, past))

	sameMonth := time.Date(2026, 7, 16, 0, 0, 0, 0, time.UTC)
	assert.True(t, ValidIssueDate(trade, sameMonth))
}
