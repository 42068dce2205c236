package bom

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taechang/erp-api/internal/domain/entity"
)

func item(id string, price, scrapPrice float64) *entity.Item {
	return &entity.Item{
		ID:             id,
		ItemCode:       id,
		UnitPrice:      decimal.NewFromFloat(price),
		ScrapUnitPrice: decimal.NewFromFloat(scrapPrice),
		UseYN:          "Y",
	}
}

func TestExplode_MultiLevelQuantities(t *testing.T) {
	// FIN needs 2 SEMI, each SEMI needs 3 RAW at 100% yield:
	// per FIN -> 2 SEMI, 6 RAW.
	adj := BuildAdjacency([]*entity.BOMEdge{
		edge("FIN", "SEMI", 2, 100),
		edge("SEMI", "RAW", 3, 100),
	})
	nodes := Explode(adj, "FIN", 0)
	require.Len(t, nodes, 2)

	assert.Equal(t, "SEMI", nodes[0].ItemID)
	assert.Equal(t, 1, nodes[0].Level)
	assert.True(t, nodes[0].EffectiveQty.Equal(decimal.NewFromInt(2)))
	assert.False(t, nodes[0].Leaf)

	assert.Equal(t, "RAW", nodes[1].ItemID)
	assert.Equal(t, 2, nodes[1].Level)
	assert.True(t, nodes[1].EffectiveQty.Equal(decimal.NewFromInt(6)))
	assert.True(t, nodes[1].Leaf)
}

func TestExplode_YieldInflatesQuantity(t *testing.T) {
	// 80% yield: 1 unit of input required becomes 1/0.8 = 1.25 consumed.
	adj := BuildAdjacency([]*entity.BOMEdge{
		edge("A", "B", 1, 80),
	})
	nodes := Explode(adj, "A", 0)
	require.Len(t, nodes, 1)
	assert.True(t, nodes[0].EffectiveQty.Equal(decimal.NewFromFloat(1.25)),
		"got %s", nodes[0].EffectiveQty)
	assert.True(t, nodes[0].ScrapQty.Equal(decimal.NewFromFloat(0.25)),
		"scrap is the yield loss: got %s", nodes[0].ScrapQty)
}

func TestExplode_CycleIsCutNotLooped(t *testing.T) {
	adj := BuildAdjacency([]*entity.BOMEdge{
		edge("A", "B", 1, 100),
		edge("B", "A", 1, 100), // rework loop back to A
	})
	nodes := Explode(adj, "A", 0)
	require.Len(t, nodes, 2, "traversal must terminate on the cycle")
	assert.False(t, nodes[0].Revisited)
	assert.True(t, nodes[1].Revisited, "second visit of A on the same path is a cut point")
}

func TestRollUpCost_HandComputed(t *testing.T) {
	// FIN ← 2×SEMI (90% yield), SEMI ← 1.5×RAW (100%).
	// Effective SEMI per FIN = 2/0.9 = 2.2222…, RAW = 2.2222… × 1.5 = 3.3333…
	// RAW price 300 → material cost = 1000.
	// Scrap: SEMI step loses 2/0.9 − 2 = 0.2222… units of SEMI, scrap price 45
	//        → scrap revenue = 10.
	adj := BuildAdjacency([]*entity.BOMEdge{
		edge("FIN", "SEMI", 2, 90),
		edge("SEMI", "RAW", 1.5, 100),
	})
	items := map[string]*entity.Item{
		"FIN":  item("FIN", 0, 0),
		"SEMI": item("SEMI", 0, 45),
		"RAW":  item("RAW", 300, 0),
	}
	res := RollUpCost(adj, "FIN", items, nil)

	wantCost := decimal.NewFromInt(1000)
	assert.True(t, res.MaterialCost.Round(6).Equal(wantCost.Round(6)),
		"material cost: want %s got %s", wantCost, res.MaterialCost)

	wantScrap := decimal.NewFromInt(10)
	assert.True(t, res.ScrapRevenue.Round(6).Equal(wantScrap.Round(6)),
		"scrap revenue: want %s got %s", wantScrap, res.ScrapRevenue)

	wantNet := decimal.NewFromInt(990)
	assert.True(t, res.NetCost.Round(6).Equal(wantNet.Round(6)),
		"net cost: want %s got %s", wantNet, res.NetCost)
}

func TestRollUpCost_MonthlyPriceBeatsMasterPrice(t *testing.T) {
	adj := BuildAdjacency([]*entity.BOMEdge{
		edge("A", "RAW", 2, 100),
	})
	items := map[string]*entity.Item{"RAW": item("RAW", 500, 0)}
	prices := map[string]decimal.Decimal{"RAW": decimal.NewFromInt(450)}

	res := RollUpCost(adj, "A", items, prices)
	assert.True(t, res.MaterialCost.Equal(decimal.NewFromInt(900)),
		"monthly price 450 × 2, got %s", res.MaterialCost)
}

func TestRollUpCost_MissingPriceIsBestEffort(t *testing.T) {
	adj := BuildAdjacency([]*entity.BOMEdge{
		edge("A", "RAW", 1, 100),
	})
	// RAW absent from both items and prices: line flagged, cost zero.
	res := RollUpCost(adj, "A", map[string]*entity.Item{}, nil)
	require.Len(t, res.Lines, 1)
	assert.True(t, res.Lines[0].PriceMissing)
	assert.True(t, res.MaterialCost.IsZero())
}

func TestCollectItemIDs(t *testing.T) {
	adj := BuildAdjacency([]*entity.BOMEdge{
		edge("A", "B", 1, 100),
		edge("B", "C", 1, 100),
		edge("A", "C", 1, 100),
	})
	ids := CollectItemIDs(adj, "A")
	assert.ElementsMatch(t, []string{"A", "B", "C"}, ids)
}
