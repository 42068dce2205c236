package bom

import (
	"github.com/shopspring/decimal"
	"github.com/taechang/erp-api/internal/domain/entity"
)

// Node is one row of a flattened BOM structure. EffectiveQty is the
// yield-adjusted quantity needed per one unit of the root item, accumulated
// down the path. Revisited marks a node already present on the current path
// (cycle cut point); traversal does not descend past it.
type Node struct {
	Edge         *entity.BOMEdge
	ItemID       string
	Level        int
	Path         []string
	EffectiveQty decimal.Decimal
	ScrapQty     decimal.Decimal // loss generated by this step, per root unit
	Revisited    bool
	Leaf         bool
}

// Explode flattens the structure under rootID depth-first. The traversal is
// cycle-safe: an item already on the current path is emitted once with
// Revisited set and not expanded again. maxDepth <= 0 means unlimited.
func Explode(adj Adjacency, rootID string, maxDepth int) []Node {
	var out []Node
	explode(adj, rootID, maxDepth, 1, decimal.NewFromInt(1), []string{rootID}, &out)
	return out
}

func explode(adj Adjacency, parentID string, maxDepth, level int, parentQty decimal.Decimal, path []string, out *[]Node) {
	if maxDepth > 0 && level > maxDepth {
		return
	}
	for _, edge := range adj[parentID] {
		eff := parentQty.Mul(edge.EffectiveQuantity())
		scrap := eff.Sub(parentQty.Mul(edge.QuantityRequired)) // input lost to yield
		node := Node{
			Edge:         edge,
			ItemID:       edge.ChildItemID,
			Level:        level,
			Path:         append(append([]string{}, path...), edge.ChildItemID),
			EffectiveQty: eff,
			ScrapQty:     scrap,
		}
		if onPath(path, edge.ChildItemID) {
			node.Revisited = true
			node.Leaf = true
			*out = append(*out, node)
			continue
		}
		children := adj[edge.ChildItemID]
		node.Leaf = len(children) == 0
		*out = append(*out, node)
		if !node.Leaf {
			explode(adj, edge.ChildItemID, maxDepth, level+1, eff, node.Path, out)
		}
	}
}

func onPath(path []string, id string) bool {
	for _, p := range path {
		if p == id {
			return true
		}
	}
	return false
}

// CostLine is one costed row of the roll-up. Only leaf rows carry material
// cost; intermediate rows are listed with quantity only.
type CostLine struct {
	ItemID       string
	Level        int
	EffectiveQty decimal.Decimal
	UnitPrice    decimal.Decimal
	Amount       decimal.Decimal // EffectiveQty × UnitPrice, leaves only
	ScrapQty     decimal.Decimal
	ScrapRevenue decimal.Decimal // ScrapQty × scrap unit price of the child item
	Leaf         bool
	Revisited    bool
	PriceMissing bool
}

// CostResult is the material cost roll-up for one root item:
// NetCost = MaterialCost − ScrapRevenue.
type CostResult struct {
	RootItemID   string
	MaterialCost decimal.Decimal
	ScrapRevenue decimal.Decimal
	NetCost      decimal.Decimal
	Lines        []CostLine
}

// RollUpCost flattens the structure under rootID and prices it. prices maps
// item id to the resolved monthly unit price; items supplies scrap unit
// prices and the master-price fallback. A leaf with no price anywhere is
// costed at zero and flagged PriceMissing instead of failing the roll-up.
func RollUpCost(adj Adjacency, rootID string, items map[string]*entity.Item, prices map[string]decimal.Decimal) *CostResult {
	nodes := Explode(adj, rootID, 0)
	res := &CostResult{
		RootItemID:   rootID,
		MaterialCost: decimal.Zero,
		ScrapRevenue: decimal.Zero,
	}

	for _, n := range nodes {
		line := CostLine{
			ItemID:       n.ItemID,
			Level:        n.Level,
			EffectiveQty: n.EffectiveQty,
			ScrapQty:     n.ScrapQty,
			Leaf:         n.Leaf,
			Revisited:    n.Revisited,
		}

		item := items[n.ItemID]

		if n.Leaf && !n.Revisited {
			price, ok := prices[n.ItemID]
			if !ok && item != nil {
				price = item.UnitPrice
				ok = !price.IsZero()
			}
			if !ok {
				line.PriceMissing = true
				price = decimal.Zero
			}
			line.UnitPrice = price
			line.Amount = n.EffectiveQty.Mul(price)
			res.MaterialCost = res.MaterialCost.Add(line.Amount)
		}

		if item != nil && n.ScrapQty.IsPositive() && item.ScrapUnitPrice.IsPositive() {
			line.ScrapRevenue = n.ScrapQty.Mul(item.ScrapUnitPrice)
			res.ScrapRevenue = res.ScrapRevenue.Add(line.ScrapRevenue)
		}

		res.Lines = append(res.Lines, line)
	}

	res.NetCost = res.MaterialCost.Sub(res.ScrapRevenue)
	return res
}

// CollectItemIDs returns the distinct item ids reachable from rootID,
// including the root itself. Feed this to the batched item/price loaders so
// the roll-up performs no per-node queries.
func CollectItemIDs(adj Adjacency, rootID string) []string {
	seen := map[string]bool{rootID: true}
	ids := []string{rootID}
	for _, n := range Explode(adj, rootID, 0) {
		if !seen[n.ItemID] {
			seen[n.ItemID] = true
			ids = append(ids, n.ItemID)
		}
	}
	return ids
}
