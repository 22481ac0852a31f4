// SPDX-License-Identifier: MIT

package graph

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"
)

// Sentinel errors returned by graph operations.
var (
	// ErrBadOrder indicates a negative vertex count passed to New.
	ErrBadOrder = errors.New("graph: vertex count must be non-negative")

	// ErrVertexRange indicates a vertex index outside [0, Order()).
	ErrVertexRange = errors.New("graph: vertex out of range")

	// ErrNegativeWeight indicates an edge weight below zero.
	ErrNegativeWeight = errors.New("graph: negative edge weight")

	// ErrBadCeiling indicates a negative edge-weight ceiling.
	ErrBadCeiling = errors.New("graph: edge-weight ceiling must be non-negative")

	// ErrNotReachable indicates that no path joins source and target using
	// only edges at or below the ceiling.
	ErrNotReachable = errors.New("graph: target not reachable")
)

const (
	// Unreachable is the distance reported for vertices no path reaches.
	Unreachable int64 = math.MaxInt64

	// NoParent marks the source and unreachable vertices in a parent table.
	NoParent = -1

	// NoCeiling admits every edge.
	NoCeiling int64 = math.MaxInt64
)

// Edge is one adjacency entry. For an undirected edge {u, v} the Graph
// stores Edge{From: u, To: v} under u and Edge{From: v, To: u} under v.
type Edge struct {
	From   int
	To     int
	Weight int64
}

// Path is a shortest path from Source to Target, both included in Vertices.
type Path struct {
	Source   int
	Target   int
	Distance int64
	Vertices []int
}

// String renders the path as "0 -> 1 -> 3 (7)".
func (p Path) String() string {
	var sb strings.Builder
	for i, v := range p.Vertices {
		if i > 0 {
			sb.WriteString(" -> ")
		}
		fmt.Fprintf(&sb, "%d", v)
	}
	fmt.Fprintf(&sb, " (%d)", p.Distance)

	return sb.String()
}

// Options configures a Graph.
//
// Logger – receives a Debug entry each time a shortest-path tree is computed.
type Options struct {
	Logger *zap.Logger
}

// Option represents a functional option for graph construction.
type Option func(*Options)

// DefaultOptions returns Options with a no-op logger.
func DefaultOptions() Options {
	return Options{Logger: zap.NewNop()}
}

// WithLogger sets the logger. A nil logger keeps the default.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// treeKey identifies one cached shortest-path tree.
type treeKey struct {
	source  int
	ceiling int64
}

// tree is the converged result of one Dijkstra run.
type tree struct {
	dist   []int64
	parent []int
}
