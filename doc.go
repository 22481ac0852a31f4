// Package ordlab is a small collection of priority-ordered containers and the
// algorithms built on them.
//
// Everything lives in subpackages:
//
//	pqueue/     generic binary max-heap Queue[T] and IndexedQueue[P] with decrease-key
//	orderbook/  sorted dynamic-array Book of priced orders and an Exchange that matches them
//	graph/      weighted undirected Graph with cached Dijkstra under an edge-weight ceiling
//	scheduler/  multi-core process scheduling simulated on a pqueue ready queue
//
// All containers are single-owner and not safe for concurrent use. Nothing in
// the library packages performs I/O; components that orchestrate work accept a
// *zap.Logger through their options and default to a no-op logger.
//
// Quick start:
//
//	q, _ := pqueue.New(0, pqueue.Natural[int], nil)
//	_ = q.Insert(3)
//	_ = q.Insert(9)
//	top, _ := q.ExtractMax() // 9
//
//	g, _ := graph.New(3)
//	_ = g.AddEdge(0, 1, 2)
//	_ = g.AddEdge(1, 2, 2)
//	p, _ := g.ShortestPath(0, 2, graph.NoCeiling) // 0 -> 1 -> 2 (4)
package ordlab
