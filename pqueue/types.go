// SPDX-License-Identifier: MIT

package pqueue

import (
	"errors"
	"math"

	"golang.org/x/exp/constraints"
)

// Sentinel errors returned by pqueue operations.
var (
	// ErrNilComparator indicates that a queue was constructed without a comparator.
	ErrNilComparator = errors.New("pqueue: comparator is nil")

	// ErrBadCapacity indicates a negative capacity hint or limit.
	ErrBadCapacity = errors.New("pqueue: capacity must be non-negative")

	// ErrOutOfMemory indicates that growing the backing array would exceed
	// the configured maximum capacity. The queue is left unchanged.
	ErrOutOfMemory = errors.New("pqueue: capacity limit reached")

	// ErrIndexRange indicates a heap position outside [0, Len()).
	ErrIndexRange = errors.New("pqueue: heap position out of range")

	// ErrKeyRange indicates a key outside [0, n) for an IndexedQueue.
	ErrKeyRange = errors.New("pqueue: key out of range")

	// ErrDuplicateKey indicates a Push of a key that is already queued.
	ErrDuplicateKey = errors.New("pqueue: key already queued")

	// ErrUnknownKey indicates an Update of a key that is not queued.
	ErrUnknownKey = errors.New("pqueue: key not queued")
)

// Comparator defines a total order over T. It returns a negative number when
// a sorts before b, zero when they are equal, and a positive number when a
// sorts after b. The queue always extracts the greatest item first.
type Comparator[T any] func(a, b T) int

// Disposer releases an item still owned by the queue when the queue is
// destroyed. It is never called for items handed out by ExtractMax.
type Disposer[T any] func(item T)

// Natural is the Comparator of the natural order of T. A queue built with it
// yields the largest value first.
func Natural[T constraints.Ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Reverse inverts cmp, turning the max-heap into a min-heap.
func Reverse[T any](cmp Comparator[T]) Comparator[T] {
	return func(a, b T) int { return cmp(b, a) }
}

// Options configures the growth policy of a Queue.
//
// MaxCapacity – growth ceiling, ≥ 0. Growing past it yields ErrOutOfMemory.
type Options struct {
	MaxCapacity int

	err error
}

// Option represents a functional option for queue construction.
type Option func(*Options)

// DefaultOptions returns the default growth policy: no ceiling other than
// what an int can address.
func DefaultOptions() Options {
	return Options{
		MaxCapacity: math.MaxInt / 2,
	}
}

// WithMaxCapacity limits how far the backing array may grow.
// A negative value is recorded and surfaces as ErrBadCapacity from New.
func WithMaxCapacity(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = ErrBadCapacity
			return
		}
		o.MaxCapacity = n
	}
}

// nextCapacity applies the doubling policy: 0 → 1, otherwise ×2.
// It reports false when the result would exceed limit.
func nextCapacity(current, limit int) (int, bool) {
	next := 1
	if current > 0 {
		next = current * 2
	}
	if next > limit || next < current {
		return current, false
	}

	return next, true
}
