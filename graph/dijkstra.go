// SPDX-License-Identifier: MIT
// Package: ordlab/graph
//
// dijkstra.go - single-source shortest paths under an edge-weight ceiling.
//
// Contract:
//   - Every vertex starts queued at Unreachable, the source at 0.
//   - Edges heavier than the ceiling are skipped for the query, never removed.
//   - Distance sums saturate below Unreachable and cannot overflow.
//   - Trees are cached per (source, ceiling) until Forget or Reset.
//
// Complexity: O((V + E) log V) time and O(V) space per computed tree.

package graph

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/ordlab/pqueue"
)

// runner holds the mutable state of a single Dijkstra execution.
type runner struct {
	g       *Graph
	source  int
	ceiling int64
	dist    []int64
	parent  []int
	pq      *pqueue.IndexedQueue[int64] // min-heap on tentative distance
}

// dijkstra computes the shortest-path tree of source over edges with
// weight <= ceiling. Inputs are validated by the caller.
//
// Complexity:
//
//   - Time:  O((V + E) log V), one Pop per vertex and at most one Update per edge.
//   - Space: O(V).
func (g *Graph) dijkstra(source int, ceiling int64) (*tree, error) {
	// 1) Min-heap over all vertices, keyed by tentative distance.
	n := g.Order()
	pq, err := pqueue.NewIndexed[int64](n, pqueue.Reverse[int64](pqueue.Natural[int64]))
	if err != nil {
		return nil, err
	}

	// 2) Everything unreachable except the source.
	r := &runner{
		g:       g,
		source:  source,
		ceiling: ceiling,
		dist:    make([]int64, n),
		parent:  make([]int, n),
		pq:      pq,
	}
	if err = r.init(); err != nil {
		return nil, err
	}
	// 3) Finalize vertices in distance order until the rest are unreachable.
	if err = r.process(); err != nil {
		return nil, err
	}

	return &tree{dist: r.dist, parent: r.parent}, nil
}

// init sets every distance to Unreachable, the source to zero, and queues
// all vertices.
func (r *runner) init() error {
	for v := range r.dist {
		r.dist[v] = Unreachable
		r.parent[v] = NoParent
	}
	r.dist[r.source] = 0

	for v, d := range r.dist {
		if err := r.pq.Push(v, d); err != nil {
			return fmt.Errorf("graph: queue vertex %d: %w", v, err)
		}
	}

	return nil
}

// process extracts vertices in increasing distance and relaxes their edges.
// Once the minimum is Unreachable every remaining vertex is unreachable too.
func (r *runner) process() error {
	for {
		u, d, ok := r.pq.Pop()
		if !ok || d == Unreachable {
			return nil
		}
		if err := r.relax(u); err != nil {
			return err
		}
	}
}

// relax improves the neighbors of the finalized vertex u through edges at or
// below the ceiling. Heavier edges do not exist for this query.
func (r *runner) relax(u int) error {
	du := r.dist[u]
	for _, e := range r.g.adj[u] {
		if e.Weight > r.ceiling {
			continue
		}
		v := e.To
		if !r.pq.Contains(v) {
			continue // already final
		}

		// Saturate: a sum at or past Unreachable can never improve dist[v].
		if e.Weight >= Unreachable-du {
			continue
		}
		nd := du + e.Weight
		if nd >= r.dist[v] {
			continue
		}

		r.dist[v] = nd
		r.parent[v] = u
		if err := r.pq.Update(v, nd); err != nil {
			return fmt.Errorf("graph: decrease key of %d: %w", v, err)
		}
	}

	return nil
}

// lookup returns the cached tree for (source, ceiling), computing and
// storing it on first use. Only converged trees are stored.
func (g *Graph) lookup(source int, ceiling int64) (*tree, error) {
	// 1) Validate source and ceiling.
	if err := g.checkVertex(source); err != nil {
		return nil, err
	}
	if ceiling < 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadCeiling, ceiling)
	}

	// 2) Serve from the cache.
	key := treeKey{source: source, ceiling: ceiling}
	if t, ok := g.trees[key]; ok {
		return t, nil
	}

	// 3) Compute and store.
	t, err := g.dijkstra(source, ceiling)
	if err != nil {
		return nil, err
	}
	g.trees[key] = t

	// 4) Report coverage when debug logging is on.
	if ce := g.log.Check(zap.DebugLevel, "shortest-path tree computed"); ce != nil {
		reached := 0
		for _, d := range t.dist {
			if d != Unreachable {
				reached++
			}
		}
		ce.Write(
			zap.Int("source", source),
			zap.Int64("ceiling", ceiling),
			zap.Int("reached", reached),
			zap.Int("vertices", g.Order()),
		)
	}

	return t, nil
}
