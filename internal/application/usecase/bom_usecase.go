package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/taechang/erp-api/internal/application/dto"
	"github.com/taechang/erp-api/internal/domain"
	"github.com/taechang/erp-api/internal/domain/bom"
	"github.com/taechang/erp-api/internal/domain/entity"
	"github.com/taechang/erp-api/internal/domain/repository"
)

// BOMUsecase manages BOM edges and the graph read paths: explosion, cycle
// report and material cost roll-up.
type BOMUsecase struct {
	edges  repository.BOMRepository
	items  repository.ItemRepository
	prices repository.PriceRepository
}

// NewBOMUsecase builds the usecase.
func NewBOMUsecase(
	edges repository.BOMRepository,
	items repository.ItemRepository,
	prices repository.PriceRepository,
) *BOMUsecase {
	return &BOMUsecase{edges: edges, items: items, prices: prices}
}

// CreateEdge stores one BOM line. Cyclic and self-referential lines are legal
// (rework loops); the cycle report surfaces them, writes never reject them.
func (u *BOMUsecase) CreateEdge(req *dto.CreateBOMEdgeRequest) (*dto.BOMEdgeResponse, error) {
	if req.ParentItemID == "" || req.ChildItemID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !req.QuantityRequired.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if req.YieldRate.IsNegative() || req.YieldRate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, domain.ErrInvalidInput
	}
	for _, id := range []string{req.ParentItemID, req.ChildItemID} {
		item, err := u.items.GetByID(id)
		if err != nil {
			return nil, err
		}
		if item == nil || !item.Active() {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	edge := &entity.BOMEdge{
		ID:               uuid.New().String(),
		ParentItemID:     req.ParentItemID,
		ChildItemID:      req.ChildItemID,
		QuantityRequired: req.QuantityRequired,
		YieldRate:        req.YieldRate,
		LevelNo:          req.LevelNo,
		CustomerID:       req.CustomerID,
		SupplierID:       req.SupplierID,
		UseYN:            "Y",
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := u.edges.Create(edge); err != nil {
		return nil, err
	}
	return u.edgeResponse(edge)
}

// CreateBatch stores several lines, skipping bad ones and reporting them.
func (u *BOMUsecase) CreateBatch(req *dto.CreateBOMBatchRequest) (*dto.ImportResult, error) {
	if len(req.Edges) == 0 {
		return nil, domain.ErrInvalidInput
	}
	result := &dto.ImportResult{}
	for i := range req.Edges {
		if _, err := u.CreateEdge(&req.Edges[i]); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, dto.RowError{Row: i + 1, Message: err.Error()})
			continue
		}
		result.Imported++
	}
	return result, nil
}

// UpdateEdge applies a partial update to one line.
func (u *BOMUsecase) UpdateEdge(id string, req *dto.UpdateBOMEdgeRequest) (*dto.BOMEdgeResponse, error) {
	edge, err := u.edges.GetByID(id)
	if err != nil {
		return nil, err
	}
	if edge == nil {
		return nil, domain.ErrNotFound
	}

	if req.QuantityRequired != nil {
		if !req.QuantityRequired.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		edge.QuantityRequired = *req.QuantityRequired
	}
	if req.YieldRate != nil {
		if req.YieldRate.IsNegative() || req.YieldRate.GreaterThan(decimal.NewFromInt(100)) {
			return nil, domain.ErrInvalidInput
		}
		edge.YieldRate = *req.YieldRate
	}
	if req.LevelNo != nil {
		edge.LevelNo = *req.LevelNo
	}
	if req.CustomerID != nil {
		edge.CustomerID = *req.CustomerID
	}
	if req.SupplierID != nil {
		edge.SupplierID = *req.SupplierID
	}
	edge.UpdatedAt = time.Now()

	if err := u.edges.Update(edge); err != nil {
		return nil, err
	}
	return u.edgeResponse(edge)
}

// DeleteEdge removes one line.
func (u *BOMUsecase) DeleteEdge(id string) error {
	edge, err := u.edges.GetByID(id)
	if err != nil {
		return err
	}
	if edge == nil {
		return domain.ErrNotFound
	}
	return u.edges.Delete(id)
}

// ListByParent returns the direct children of one parent item.
func (u *BOMUsecase) ListByParent(parentItemID string) ([]dto.BOMEdgeResponse, error) {
	edges, err := u.edges.ListByParent(parentItemID)
	if err != nil {
		return nil, err
	}
	items, err := u.itemsForEdges(edges)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BOMEdgeResponse, 0, len(edges))
	for _, e := range edges {
		out = append(out, *edgeResponseWith(e, items))
	}
	return out, nil
}

// Tree flattens the structure under rootItemID. maxDepth <= 0 is unlimited.
func (u *BOMUsecase) Tree(rootItemID string, maxDepth int) (*dto.BOMTreeResponse, error) {
	root, err := u.items.GetByID(rootItemID)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, domain.ErrNotFound
	}

	edges, err := u.edges.ListAll()
	if err != nil {
		return nil, err
	}
	adj := bom.BuildAdjacency(edges)
	nodes := bom.Explode(adj, rootItemID, maxDepth)

	items, err := u.items.GetByIDs(bom.CollectItemIDs(adj, rootItemID))
	if err != nil {
		return nil, err
	}

	out := make([]dto.BOMTreeNode, 0, len(nodes))
	for _, n := range nodes {
		row := dto.BOMTreeNode{
			ItemID:       n.ItemID,
			Level:        n.Level,
			QuantityPer:  n.Edge.QuantityRequired,
			EffectiveQty: n.EffectiveQty,
			YieldRate:    n.Edge.YieldRate,
			Revisited:    n.Revisited,
			Leaf:         n.Leaf,
		}
		if it := items[n.ItemID]; it != nil {
			row.ItemCode = it.ItemCode
			row.ItemName = it.ItemName
		}
		out = append(out, row)
	}
	return &dto.BOMTreeResponse{
		RootItemID:   rootItemID,
		RootItemCode: root.ItemCode,
		Nodes:        out,
	}, nil
}

// Cost rolls material cost up under rootItemID using the prices effective for
// priceMonth ('YYYY-MM'). Missing monthly prices carry forward; items with no
// history fall back to the master price; still-unpriced leaves are flagged.
func (u *BOMUsecase) Cost(rootItemID, priceMonth string) (*dto.BOMCostResponse, error) {
	if _, err := time.Parse("2006-01", priceMonth); err != nil {
		return nil, domain.ErrInvalidInput
	}
	root, err := u.items.GetByID(rootItemID)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, domain.ErrNotFound
	}

	edges, err := u.edges.ListAll()
	if err != nil {
		return nil, err
	}
	adj := bom.BuildAdjacency(edges)

	ids := bom.CollectItemIDs(adj, rootItemID)
	items, err := u.items.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	priceRows, err := u.prices.GetForItemsAndMonth(ids, priceMonth)
	if err != nil {
		return nil, err
	}
	prices := make(map[string]decimal.Decimal, len(priceRows))
	for id, row := range priceRows {
		prices[id] = row.UnitPrice
	}

	res := bom.RollUpCost(adj, rootItemID, items, prices)

	lines := make([]dto.BOMCostLine, 0, len(res.Lines))
	for _, l := range res.Lines {
		line := dto.BOMCostLine{
			ItemID:       l.ItemID,
			Level:        l.Level,
			EffectiveQty: l.EffectiveQty,
			UnitPrice:    l.UnitPrice,
			Amount:       l.Amount,
			ScrapQty:     l.ScrapQty,
			ScrapRevenue: l.ScrapRevenue,
			PriceMissing: l.PriceMissing,
		}
		if it := items[l.ItemID]; it != nil {
			line.ItemCode = it.ItemCode
			line.ItemName = it.ItemName
		}
		lines = append(lines, line)
	}
	return &dto.BOMCostResponse{
		RootItemID:   rootItemID,
		RootItemCode: root.ItemCode,
		PriceMonth:   priceMonth,
		MaterialCost: res.MaterialCost,
		ScrapRevenue: res.ScrapRevenue,
		NetCost:      res.NetCost,
		Lines:        lines,
	}, nil
}

// Validate reports every cycle in the stored structure, as item codes where
// known (ids otherwise).
func (u *BOMUsecase) Validate() (*dto.BOMValidationResponse, error) {
	edges, err := u.edges.ListAll()
	if err != nil {
		return nil, err
	}
	adj := bom.BuildAdjacency(edges)
	cycles := bom.DetectCycles(adj)
	if len(cycles) == 0 {
		return &dto.BOMValidationResponse{HasCycles: false}, nil
	}

	ids := make([]string, 0)
	seen := map[string]bool{}
	for _, c := range cycles {
		for _, id := range c.Path {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	items, err := u.items.GetByIDs(ids)
	if err != nil {
		return nil, err
	}

	out := make([]dto.BOMCycle, 0, len(cycles))
	for _, c := range cycles {
		path := make([]string, 0, len(c.Path))
		for _, id := range c.Path {
			if it := items[id]; it != nil {
				path = append(path, it.ItemCode)
			} else {
				path = append(path, id)
			}
		}
		out = append(out, dto.BOMCycle{Path: path})
	}
	return &dto.BOMValidationResponse{HasCycles: true, Cycles: out}, nil
}

func (u *BOMUsecase) edgeResponse(edge *entity.BOMEdge) (*dto.BOMEdgeResponse, error) {
	items, err := u.itemsForEdges([]*entity.BOMEdge{edge})
	if err != nil {
		return nil, err
	}
	return edgeResponseWith(edge, items), nil
}

func (u *BOMUsecase) itemsForEdges(edges []*entity.BOMEdge) (map[string]*entity.Item, error) {
	seen := map[string]bool{}
	ids := make([]string, 0, len(edges)*2)
	for _, e := range edges {
		for _, id := range []string{e.ParentItemID, e.ChildItemID} {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return u.items.GetByIDs(ids)
}

func edgeResponseWith(edge *entity.BOMEdge, items map[string]*entity.Item) *dto.BOMEdgeResponse {
	resp := &dto.BOMEdgeResponse{
		ID:               edge.ID,
		ParentItemID:     edge.ParentItemID,
		ChildItemID:      edge.ChildItemID,
		QuantityRequired: edge.QuantityRequired,
		YieldRate:        edge.YieldRate,
		LevelNo:          edge.LevelNo,
		CustomerID:       edge.CustomerID,
		SupplierID:       edge.SupplierID,
		CreatedAt:        edge.CreatedAt,
		UpdatedAt:        edge.UpdatedAt,
	}
	if it := items[edge.ParentItemID]; it != nil {
		resp.ParentItemCode = it.ItemCode
	}
	if it := items[edge.ChildItemID]; it != nil {
		resp.ChildItemCode = it.ItemCode
		resp.ChildItemName = it.ItemName
	}
	return resp
}
