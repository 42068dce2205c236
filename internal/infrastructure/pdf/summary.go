// Package pdf renders the monthly accounting summary (월별 정산 요약) as an
// A4 document: one table row per company with sales, purchases, collections,
// payments and the outstanding balances.
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/taechang/erp-api/internal/application/usecase"
	"github.com/taechang/erp-api/internal/domain/repository"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ usecase.SummaryRenderer = (*SummaryRenderer)(nil)

// SummaryRenderer implements the monthly summary PDF with Maroto v2.
type SummaryRenderer struct{}

// NewSummaryRenderer builds the renderer.
func NewSummaryRenderer() *SummaryRenderer { return &SummaryRenderer{} }

// Render produces the PDF bytes for one month.
func (g *SummaryRenderer) Render(month string, rows []repository.CompanySummaryRow) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Monthly Settlement Summary", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(month))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range rows {
		m.AddRows(companyRow(r))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(rows)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(month string) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Monthly Settlement Summary", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New(month, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Company", 3, align.Left),
		h("Sales", 2, align.Right),
		h("Purchases", 2, align.Right),
		h("Collected", 1, align.Right),
		h("Paid", 1, align.Right),
		h("Receivable", 2, align.Right),
		h("Payable", 1, align.Right),
	)
}

func companyRow(r repository.CompanySummaryRow) core.Row {
	v := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{
			Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		v(r.CompanyName, 3, align.Left),
		v(money(r.SalesTotal), 2, align.Right),
		v(money(r.PurchaseTotal), 2, align.Right),
		v(money(r.Collections), 1, align.Right),
		v(money(r.Payments), 1, align.Right),
		v(money(r.Receivable), 2, align.Right),
		v(money(r.Payable), 1, align.Right),
	)
}

// totalsRows emits one row per totals line; stacking the four lines inside a
// single column would draw them on top of each other.
func totalsRows(rows []repository.CompanySummaryRow) []core.Row {
	var sales, purchases, receivable, payable decimal.Decimal
	for _, r := range rows {
		sales = sales.Add(r.SalesTotal)
		purchases = purchases.Add(r.PurchaseTotal)
		receivable = receivable.Add(r.Receivable)
		payable = payable.Add(r.Payable)
	}
	totalLine := func(label string, amount decimal.Decimal) core.Row {
		return row.New(5).Add(
			col.New(4),
			col.New(4).Add(text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Color: colorPrimary,
			})),
			col.New(4).Add(text.New(money(amount), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 1,
			})),
		)
	}
	return []core.Row{
		totalLine("Total sales:", sales),
		totalLine("Total purchases:", purchases),
		totalLine("Receivable:", receivable),
		totalLine("Payable:", payable),
	}
}

func money(d decimal.Decimal) string {
	s := d.StringFixed(0)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		s = "-" + s
	}
	return s
}
