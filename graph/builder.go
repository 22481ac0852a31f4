// SPDX-License-Identifier: MIT
// Package: ordlab/graph
//
// builder.go - deterministic fixture constructors.
//
// Contract:
//   - Constructors validate every argument first and return sentinel errors.
//   - Randomness comes only from the caller's *rand.Rand; no global source.
//   - Weights come from a WeightFn and must be non-negative.
//
// Determinism: same arguments and seed give an identical graph, edge order
// included, since pairs are visited in ascending (u, v) order.
//
// Complexity: Grid O(rows·cols), RandomSparse O(n²) draws.

package graph

import (
	"errors"
	"fmt"
	"math/rand"
)

// Builder errors.
var (
	// ErrBadProbability indicates an edge probability outside [0, 1].
	ErrBadProbability = errors.New("graph: probability must lie in [0, 1]")

	// ErrNeedRandSource indicates a random constructor called without an RNG.
	ErrNeedRandSource = errors.New("graph: random source is nil")

	// ErrNilWeightFn indicates a constructor called without a WeightFn.
	ErrNilWeightFn = errors.New("graph: weight function is nil")
)

// WeightFn produces an edge weight from an explicit random source.
// It must be deterministic for a given seed and never return a negative value.
type WeightFn func(rng *rand.Rand) int64

// ConstantWeight always yields w. Negative w surfaces as ErrNegativeWeight
// from the constructor that uses it.
func ConstantWeight(w int64) WeightFn {
	return func(_ *rand.Rand) int64 { return w }
}

// UniformWeight samples uniformly in [lo, hi]. A nil rng yields lo.
func UniformWeight(lo, hi int64) WeightFn {
	return func(rng *rand.Rand) int64 {
		if rng == nil || hi <= lo {
			return lo
		}

		return lo + rng.Int63n(hi-lo+1)
	}
}

// Grid builds a rows×cols orthogonal grid. Cell (r, c) is vertex r*cols+c and
// is joined to its right and bottom neighbors, in row-major order.
// rng is passed to weight and may be nil for deterministic weights.
//
// Errors: ErrBadOrder, ErrNilWeightFn, ErrNegativeWeight.
func Grid(rows, cols int, weight WeightFn, rng *rand.Rand, opts ...Option) (*Graph, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: grid %dx%d", ErrBadOrder, rows, cols)
	}
	if weight == nil {
		return nil, ErrNilWeightFn
	}
	g, err := New(rows*cols, opts...)
	if err != nil {
		return nil, err
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			u := r*cols + c
			if c+1 < cols {
				if err = g.AddEdge(u, u+1, weight(rng)); err != nil {
					return nil, fmt.Errorf("graph: grid (%d,%d) right: %w", r, c, err)
				}
			}
			if r+1 < rows {
				if err = g.AddEdge(u, u+cols, weight(rng)); err != nil {
					return nil, fmt.Errorf("graph: grid (%d,%d) down: %w", r, c, err)
				}
			}
		}
	}

	return g, nil
}

// RandomSparse builds an Erdős–Rényi graph on n vertices: each unordered
// pair {i, j}, i < j, is joined with probability p. Trials run in (i, j)
// ascending order, so a fixed seed always yields the same graph.
//
// Errors: ErrBadOrder, ErrBadProbability, ErrNeedRandSource,
// ErrNilWeightFn, ErrNegativeWeight.
func RandomSparse(n int, p float64, weight WeightFn, rng *rand.Rand, opts ...Option) (*Graph, error) {
	if p < 0 || p > 1 {
		return nil, fmt.Errorf("%w: %g", ErrBadProbability, p)
	}
	if rng == nil {
		return nil, ErrNeedRandSource
	}
	if weight == nil {
		return nil, ErrNilWeightFn
	}
	g, err := New(n, opts...)
	if err != nil {
		return nil, err
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if rng.Float64() >= p {
				continue
			}
			if err = g.AddEdge(i, j, weight(rng)); err != nil {
				return nil, fmt.Errorf("graph: random edge %d-%d: %w", i, j, err)
			}
		}
	}

	return g, nil
}
