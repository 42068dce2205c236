package bom

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taechang/erp-api/internal/domain/entity"
)

func edge(parent, child string, qty float64, yield float64) *entity.BOMEdge {
	return &entity.BOMEdge{
		ID:               parent + "->" + child,
		ParentItemID:     parent,
		ChildItemID:      child,
		QuantityRequired: decimal.NewFromFloat(qty),
		YieldRate:        decimal.NewFromFloat(yield),
		UseYN:            "Y",
	}
}

func TestDetectCycles_AcyclicGraphPasses(t *testing.T) {
	adj := BuildAdjacency([]*entity.BOMEdge{
		edge("A", "B", 1, 100),
		edge("A", "C", 2, 100),
		edge("B", "D", 1, 100),
		edge("C", "D", 3, 100),
	})
	assert.Empty(t, DetectCycles(adj), "diamond-shaped acyclic graph must report no cycles")
}

func TestDetectCycles_SimpleCycle(t *testing.T) {
	adj := BuildAdjacency([]*entity.BOMEdge{
		edge("A", "B", 1, 100),
		edge("B", "C", 1, 100),
		edge("C", "A", 1, 100),
	})
	cycles := DetectCycles(adj)
	require.Len(t, cycles, 1)
	// Roots are visited in sorted order, so the cycle is reported from A.
	assert.Equal(t, []string{"A", "B", "C", "A"}, cycles[0].Path)
}

func TestDetectCycles_SelfLoop(t *testing.T) {
	adj := BuildAdjacency([]*entity.BOMEdge{
		edge("X", "X", 1, 100),
	})
	cycles := DetectCycles(adj)
	require.Len(t, cycles, 1)
	assert.Equal(t, []string{"X", "X"}, cycles[0].Path)
}

func TestDetectCycles_FirstCyclePerRoot(t *testing.T) {
	// Two disjoint cyclic components plus an acyclic one.
	adj := BuildAdjacency([]*entity.BOMEdge{
		edge("A", "B", 1, 100),
		edge("B", "A", 1, 100),
		edge("M", "N", 1, 100),
		edge("N", "M", 1, 100),
		edge("P", "Q", 1, 100),
	})
	cycles := DetectCycles(adj)
	assert.Len(t, cycles, 2, "one cycle per cyclic component")
}

func TestDetectCycles_InactiveEdgeIgnored(t *testing.T) {
	back := edge("B", "A", 1, 100)
	back.UseYN = "N"
	adj := BuildAdjacency([]*entity.BOMEdge{
		edge("A", "B", 1, 100),
		back,
	})
	assert.Empty(t, DetectCycles(adj))
}

func TestBuildAdjacency_SkipsDuplicatePairs(t *testing.T) {
	adj := BuildAdjacency([]*entity.BOMEdge{
		edge("A", "B", 1, 100),
		edge("A", "B", 5, 90),
	})
	require.Len(t, adj["A"], 1)
	assert.True(t, adj["A"][0].QuantityRequired.Equal(decimal.NewFromInt(1)),
		"first occurrence wins on duplicate (parent, child) pairs")
}
