// Package bom holds the in-memory BOM graph routines: downward explosion,
// cycle reporting and the material cost roll-up. Everything here operates on
// edges already fetched from the database; no I/O.
package bom

import (
	"sort"

	"github.com/taechang/erp-api/internal/domain/entity"
)

// Adjacency maps a parent item id to its outgoing active edges.
type Adjacency map[string][]*entity.BOMEdge

// BuildAdjacency indexes edges by parent. Inactive edges are skipped;
// duplicate (parent, child) pairs keep the first occurrence.
func BuildAdjacency(edges []*entity.BOMEdge) Adjacency {
	adj := make(Adjacency, len(edges))
	for _, e := range edges {
		if e.UseYN == "N" {
			continue
		}
		dup := false
		for _, existing := range adj[e.ParentItemID] {
			if existing.ChildItemID == e.ChildItemID {
				dup = true
				break
			}
		}
		if !dup {
			adj[e.ParentItemID] = append(adj[e.ParentItemID], e)
		}
	}
	return adj
}

// Cycle is one cycle found in the edge set. Path starts and ends with the
// same item id.
type Cycle struct {
	Path []string
}

// DetectCycles runs a depth-first search with a recursion-stack set and
// reports the first cycle found under each unvisited root. Cyclic BOMs are
// legal to store (rework loops), so this is a report, not a write guard.
func DetectCycles(adj Adjacency) []Cycle {
	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	var cycles []Cycle

	roots := make([]string, 0, len(adj))
	for parent := range adj {
		roots = append(roots, parent)
	}
	sort.Strings(roots) // deterministic report order

	for _, root := range roots {
		if !visited[root] {
			dfsCycle(root, adj, visited, onStack, nil, &cycles)
		}
	}
	return cycles
}

func dfsCycle(current string, adj Adjacency, visited, onStack map[string]bool, path []string, cycles *[]Cycle) bool {
	visited[current] = true
	onStack[current] = true
	path = append(path, current)

	for _, edge := range adj[current] {
		child := edge.ChildItemID
		if onStack[child] {
			start := 0
			for i, id := range path {
				if id == child {
					start = i
					break
				}
			}
			cyc := append(append([]string{}, path[start:]...), child)
			*cycles = append(*cycles, Cycle{Path: cyc})
			onStack[current] = false
			return true // first cycle per root is enough
		}
		if !visited[child] {
			if dfsCycle(child, adj, visited, onStack, path, cycles) {
				onStack[current] = false
				return true
			}
		}
	}

	onStack[current] = false
	return false
}
