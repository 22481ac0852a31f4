// SPDX-License-Identifier: MIT

package graph

import "fmt"

// ShortestPath returns the cheapest path from source to target that uses only
// edges with weight <= ceiling. Pass NoCeiling to admit every edge.
//
// The shortest-path tree of (source, ceiling) is computed on the first query
// and reused afterwards; repeated calls return identical results. The
// returned Vertices slice is freshly allocated on each call.
//
// Errors: ErrVertexRange, ErrBadCeiling, ErrNotReachable.
func (g *Graph) ShortestPath(source, target int, ceiling int64) (Path, error) {
	t, err := g.lookup(source, ceiling)
	if err != nil {
		return Path{}, err
	}
	if err = g.checkVertex(target); err != nil {
		return Path{}, err
	}
	if t.dist[target] == Unreachable {
		return Path{}, fmt.Errorf("%w: %d -> %d under ceiling %d", ErrNotReachable, source, target, ceiling)
	}

	return Path{
		Source:   source,
		Target:   target,
		Distance: t.dist[target],
		Vertices: t.walk(target),
	}, nil
}

// Distance returns the shortest distance from source to target under
// ceiling, or Unreachable when no path exists.
//
// Errors: ErrVertexRange, ErrBadCeiling.
func (g *Graph) Distance(source, target int, ceiling int64) (int64, error) {
	t, err := g.lookup(source, ceiling)
	if err != nil {
		return Unreachable, err
	}
	if err = g.checkVertex(target); err != nil {
		return Unreachable, err
	}

	return t.dist[target], nil
}

// Distances returns a copy of the whole distance table of source under
// ceiling. Unreached vertices hold Unreachable.
//
// Errors: ErrVertexRange, ErrBadCeiling.
func (g *Graph) Distances(source int, ceiling int64) ([]int64, error) {
	t, err := g.lookup(source, ceiling)
	if err != nil {
		return nil, err
	}
	out := make([]int64, len(t.dist))
	copy(out, t.dist)

	return out, nil
}

// Route returns the path source -> via -> target, each leg a shortest path
// under ceiling. via appears once in the result.
//
// Errors: as ShortestPath, for either leg.
func (g *Graph) Route(source, via, target int, ceiling int64) (Path, error) {
	first, err := g.ShortestPath(source, via, ceiling)
	if err != nil {
		return Path{}, fmt.Errorf("graph: route leg to %d: %w", via, err)
	}
	second, err := g.ShortestPath(via, target, ceiling)
	if err != nil {
		return Path{}, fmt.Errorf("graph: route leg from %d: %w", via, err)
	}

	vertices := make([]int, 0, len(first.Vertices)+len(second.Vertices)-1)
	vertices = append(vertices, first.Vertices...)
	vertices = append(vertices, second.Vertices[1:]...)

	dist := Unreachable
	if second.Distance < Unreachable-first.Distance {
		dist = first.Distance + second.Distance
	}

	return Path{
		Source:   source,
		Target:   target,
		Distance: dist,
		Vertices: vertices,
	}, nil
}

// Cached reports whether the tree of (source, ceiling) is memoized.
func (g *Graph) Cached(source int, ceiling int64) bool {
	_, ok := g.trees[treeKey{source: source, ceiling: ceiling}]
	return ok
}

// Forget drops every memoized tree rooted at source.
func (g *Graph) Forget(source int) {
	for k := range g.trees {
		if k.source == source {
			delete(g.trees, k)
		}
	}
}

// Reset drops all memoized trees.
func (g *Graph) Reset() {
	clear(g.trees)
}

// walk follows parent pointers from target back to the root and returns the
// vertices root first.
func (t *tree) walk(target int) []int {
	n := 0
	for v := target; v != NoParent; v = t.parent[v] {
		n++
	}
	out := make([]int, n)
	for v := target; v != NoParent; v = t.parent[v] {
		n--
		out[n] = v
	}

	return out
}
