// Package etax serializes trade records as Korean NTS electronic tax invoice
// (전자세금계산서) XML documents, following the KEC standard element layout.
// Digital signing (XAdES) happens outside this system; the ASP provider that
// transmits to the NTS signs the document.
package etax

import (
	"fmt"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/taechang/erp-api/internal/application/usecase"
	"github.com/taechang/erp-api/internal/domain"
	"github.com/taechang/erp-api/internal/domain/entity"
)

const (
	namespaceTaxInvoice = "urn:kr:or:kec:standard:Tax:ReusableAggregateBusinessInformationEntitySchemaModule:1:0"

	// Document type codes per the NTS code table.
	typeCodeTaxInvoice = "0101" // 일반 세금계산서
)

// SupplierInfo identifies our side of the invoice. Loaded from configuration,
// not from the companies table, since we are always the supplier or buyer.
type SupplierInfo struct {
	BusinessNo string
	Name       string
	CEOName    string
	Address    string
}

var _ usecase.TaxInvoiceBuilder = (*InvoiceBuilder)(nil)

// InvoiceBuilder builds the tax invoice XML for one trade record.
type InvoiceBuilder struct {
	supplier SupplierInfo
	now      func() time.Time
}

// NewInvoiceBuilder builds the builder.
func NewInvoiceBuilder(supplier SupplierInfo) *InvoiceBuilder {
	return &InvoiceBuilder{supplier: supplier, now: time.Now}
}

// Build serializes the trade. On a sales record we are the invoicer and the
// company is the invoicee; a purchase record swaps the parties. A trade past
// the NTS issuance deadline is refused.
func (b *InvoiceBuilder) Build(trade *entity.TradeRecord, company *entity.Company, item *entity.Item) ([]byte, error) {
	if trade == nil || company == nil {
		return nil, fmt.Errorf("etax: trade and company are required")
	}
	if !ValidIssueDate(trade.RecordDate, b.now()) {
		return nil, fmt.Errorf("etax: issuance deadline passed for trade dated %s: %w",
			trade.RecordDate.Format("2006-01-02"), domain.ErrConflict)
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("TaxInvoice")
	root.CreateAttr("xmlns", namespaceTaxInvoice)

	docEl := root.CreateElement("TaxInvoiceDocument")
	docEl.CreateElement("IssueID").SetText(issueID(trade))
	docEl.CreateElement("TypeCode").SetText(typeCodeTaxInvoice)
	docEl.CreateElement("IssueDateTime").SetText(trade.RecordDate.Format("20060102150405"))

	settlement := root.CreateElement("TaxInvoiceTradeSettlement")

	invoicer := settlement.CreateElement("InvoicerParty")
	invoicee := settlement.CreateElement("InvoiceeParty")
	if trade.TradeType == entity.TradeTypeSales {
		b.fillSupplier(invoicer)
		fillCompany(invoicee, company)
	} else {
		fillCompany(invoicer, company)
		b.fillSupplier(invoicee)
	}

	summation := settlement.CreateElement("SpecifiedMonetarySummation")
	summation.CreateElement("ChargeTotalAmount").SetText(trade.SupplyAmount.StringFixed(0))
	summation.CreateElement("TaxTotalAmount").SetText(trade.TaxAmount.StringFixed(0))
	summation.CreateElement("GrandTotalAmount").SetText(trade.TotalAmount().StringFixed(0))

	lineItem := root.CreateElement("TaxInvoiceTradeLineItem")
	lineItem.CreateElement("SequenceNumeric").SetText("1")
	if item != nil {
		lineItem.CreateElement("NameText").SetText(item.ItemName)
		if item.Spec != "" {
			lineItem.CreateElement("InformationText").SetText(item.Spec)
		}
	} else {
		lineItem.CreateElement("NameText").SetText(trade.Remarks)
	}
	lineItem.CreateElement("ChargeableUnitQuantity").SetText(trade.Quantity.String())
	lineItem.CreateElement("UnitPrice").CreateElement("UnitAmount").SetText(trade.UnitPrice.StringFixed(0))
	lineItem.CreateElement("InvoiceAmount").SetText(trade.SupplyAmount.StringFixed(0))
	lineItem.CreateElement("TotalTax").CreateElement("CalculatedAmount").SetText(trade.TaxAmount.StringFixed(0))
	lineItem.CreateElement("PurchaseExpiryDateTime").SetText(trade.RecordDate.Format("20060102"))

	doc.Indent(2)
	return doc.WriteToBytes()
}

// issueID derives the document identifier from the trade date plus a short
// serial taken from the trade id. The NTS approval number proper is assigned
// by the transmitting ASP, not here.
func issueID(trade *entity.TradeRecord) string {
	serial := strings.ReplaceAll(trade.ID, "-", "")
	if len(serial) > 8 {
		serial = serial[:8]
	}
	return trade.RecordDate.Format("20060102") + "-" + serial
}

func (b *InvoiceBuilder) fillSupplier(party *etree.Element) {
	party.CreateElement("ID").SetText(strings.ReplaceAll(b.supplier.BusinessNo, "-", ""))
	party.CreateElement("NameText").SetText(b.supplier.Name)
	ceo := party.CreateElement("SpecifiedPerson")
	ceo.CreateElement("NameText").SetText(b.supplier.CEOName)
	addr := party.CreateElement("SpecifiedAddress")
	addr.CreateElement("LineOneText").SetText(b.supplier.Address)
}

func fillCompany(party *etree.Element, company *entity.Company) {
	party.CreateElement("ID").SetText(strings.ReplaceAll(company.BusinessNo, "-", ""))
	party.CreateElement("NameText").SetText(company.CompanyName)
	ceo := party.CreateElement("SpecifiedPerson")
	ceo.CreateElement("NameText").SetText(company.CEOName)
	addr := party.CreateElement("SpecifiedAddress")
	addr.CreateElement("LineOneText").SetText(company.Address)
}

// ValidIssueDate reports whether a trade may still be invoiced: the NTS
// requires issuance by the 10th of the month after the trade.
func ValidIssueDate(tradeDate, now time.Time) bool {
	deadline := time.Date(tradeDate.Year(), tradeDate.Month(), 1, 0, 0, 0, 0, tradeDate.Location()).
		AddDate(0, 1, 0).AddDate(0, 0, 9)
	return !now.After(deadline)
}
