// SPDX-License-Identifier: MIT

package graph

import (
	"fmt"

	"go.uber.org/zap"
)

// Graph is a weighted undirected graph over the dense vertex set [0, Order()).
//
// Parallel edges are all kept; relaxation considers each of them. Shortest
// path trees are memoized per (source, ceiling) and are NOT invalidated by
// AddEdge. Call Forget or Reset after mutating a graph that was queried.
//
// A Graph is not safe for concurrent use.
type Graph struct {
	adj   [][]Edge
	edges []Edge
	trees map[treeKey]*tree
	log   *zap.Logger
}

// New creates a graph with the given number of isolated vertices.
//
// Errors: ErrBadOrder if vertices < 0.
func New(vertices int, opts ...Option) (*Graph, error) {
	if vertices < 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadOrder, vertices)
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Graph{
		adj:   make([][]Edge, vertices),
		trees: make(map[treeKey]*tree),
		log:   cfg.Logger,
	}, nil
}

// Order returns the number of vertices.
func (g *Graph) Order() int { return len(g.adj) }

// Size returns the number of edges added, parallel edges counted separately.
func (g *Graph) Size() int { return len(g.edges) }

// AddEdge joins u and v with an edge of weight w in both directions.
// A self-loop is stored once per direction under the same vertex.
//
// Errors: ErrVertexRange, ErrNegativeWeight.
func (g *Graph) AddEdge(u, v int, w int64) error {
	if err := g.checkVertex(u); err != nil {
		return err
	}
	if err := g.checkVertex(v); err != nil {
		return err
	}
	if w < 0 {
		return fmt.Errorf("%w: edge %d-%d weight=%d", ErrNegativeWeight, u, v, w)
	}

	e := Edge{From: u, To: v, Weight: w}
	g.edges = append(g.edges, e)
	g.adj[u] = append(g.adj[u], e)
	g.adj[v] = append(g.adj[v], Edge{From: v, To: u, Weight: w})

	return nil
}

// Neighbors returns a copy of the adjacency entries of v in insertion order.
//
// Errors: ErrVertexRange.
func (g *Graph) Neighbors(v int) ([]Edge, error) {
	if err := g.checkVertex(v); err != nil {
		return nil, err
	}
	out := make([]Edge, len(g.adj[v]))
	copy(out, g.adj[v])

	return out, nil
}

// Edges returns every added edge once, in insertion order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)

	return out
}

func (g *Graph) checkVertex(v int) error {
	if v < 0 || v >= len(g.adj) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrVertexRange, v, len(g.adj))
	}

	return nil
}
