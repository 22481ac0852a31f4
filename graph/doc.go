// Package graph provides a weighted undirected graph over dense integer
// vertices and cached single-source shortest paths under an edge-weight
// ceiling.
//
// A query (source, target, ceiling) only considers edges whose weight is at
// most ceiling; heavier edges do not exist for it. This models a maximum
// single-hop constraint such as the range of a vehicle between stops.
//
// Dijkstra runs on a pqueue.IndexedQueue ordered by tentative distance.
// Every vertex is queued up front at Unreachable (the source at 0) and
// relaxation lowers keys in place, so the queue never holds stale entries.
// The search stops as soon as the smallest queued distance is Unreachable.
//
// Complexity:
//
//   - Time:  O((V + E) log V) per computed tree, O(path length) per cached query.
//   - Space: O(V) per cached tree.
//
// Caching:
//
// The first query for a (source, ceiling) pair stores the distance and parent
// tables; later queries only walk parent pointers. AddEdge does not touch the
// cache. Callers that mutate a graph after querying it must call Forget or
// Reset to see the new edges.
//
// Errors (sentinel):
//
//   - ErrBadOrder       negative vertex count.
//   - ErrVertexRange    vertex outside [0, Order()).
//   - ErrNegativeWeight edge weight below zero.
//   - ErrBadCeiling     negative ceiling.
//   - ErrNotReachable   no path under the ceiling (ShortestPath, Route).
//
// Example:
//
//	g, _ := graph.New(4)
//	_ = g.AddEdge(0, 1, 4)
//	_ = g.AddEdge(1, 3, 2)
//	p, err := g.ShortestPath(0, 3, graph.NoCeiling)
//	// p.Vertices == []int{0, 1, 3}, p.Distance == 6
package graph
