// SPDX-License-Identifier: MIT

package pqueue

import "fmt"

// Queue is a binary max-heap stored in a single contiguous array.
//
// Position 0 is the root; the children of i live at 2i+1 and 2i+2.
// For every parent p and child c within Len(), cmp(heap[p], heap[c]) ≥ 0.
// Items are owned by the queue from Insert until ExtractMax or Destroy.
//
// A Queue is not safe for concurrent use.
type Queue[T any] struct {
	heap    []T // len(heap) is the capacity, size the length
	size    int
	maxCap  int
	cmp     Comparator[T]
	dispose Disposer[T]

	// moved, when set, is told the new position of every item that lands
	// somewhere in the heap. IndexedQueue uses it to keep its position map.
	moved func(item T, pos int)
}

// New creates an empty queue with room for capacity items.
//
// cmp defines the order (greatest first); dispose may be nil.
//
// Errors:
//   - ErrNilComparator if cmp is nil.
//   - ErrBadCapacity if capacity or an option limit is negative.
//   - ErrOutOfMemory if capacity exceeds the configured MaxCapacity.
//
// Complexity: O(capacity) for the initial allocation.
func New[T any](capacity int, cmp Comparator[T], dispose Disposer[T], opts ...Option) (*Queue[T], error) {
	if cmp == nil {
		return nil, ErrNilComparator
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}
	if capacity < 0 {
		return nil, ErrBadCapacity
	}
	if capacity > cfg.MaxCapacity {
		return nil, fmt.Errorf("%w: capacity %d above limit %d", ErrOutOfMemory, capacity, cfg.MaxCapacity)
	}

	return &Queue[T]{
		heap:    make([]T, capacity),
		maxCap:  cfg.MaxCapacity,
		cmp:     cmp,
		dispose: dispose,
	}, nil
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int { return q.size }

// Cap returns the capacity of the backing array.
func (q *Queue[T]) Cap() int { return len(q.heap) }

// IsEmpty reports whether the queue holds no items.
func (q *Queue[T]) IsEmpty() bool { return q.size == 0 }

// Insert appends item and sifts it up while it is greater than its parent.
// When the array is full its capacity doubles first (0 → 1).
//
// If growing would pass MaxCapacity, Insert returns ErrOutOfMemory and the
// queue is left exactly as it was.
//
// Complexity: amortized O(log n).
func (q *Queue[T]) Insert(item T) error {
	if q.size == len(q.heap) {
		if err := q.grow(); err != nil {
			return err
		}
	}
	q.set(q.size, item)
	q.size++
	q.up(q.size - 1)

	return nil
}

// ExtractMax removes and returns the greatest item. The second result is
// false when the queue is empty. Ownership of the item passes to the caller.
//
// Complexity: O(log n).
func (q *Queue[T]) ExtractMax() (T, bool) {
	var zero T
	if q.size == 0 {
		return zero, false
	}

	top := q.heap[0]
	q.size--
	if q.size > 0 {
		q.set(0, q.heap[q.size])
	}
	q.heap[q.size] = zero // drop the reference for the GC
	q.down(0)

	return top, true
}

// Peek returns the greatest item without removing it.
func (q *Queue[T]) Peek() (T, bool) {
	if q.size == 0 {
		var zero T
		return zero, false
	}

	return q.heap[0], true
}

// Fix restores the heap order after the item at position i changed its
// priority in place. The item moves up if it grew, down if it shrank.
//
// Complexity: O(log n).
func (q *Queue[T]) Fix(i int) error {
	if i < 0 || i >= q.size {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexRange, i, q.size)
	}
	if q.up(i) == i {
		q.down(i)
	}

	return nil
}

// Items returns a copy of the queued items in heap (array) order.
func (q *Queue[T]) Items() []T {
	out := make([]T, q.size)
	copy(out, q.heap[:q.size])

	return out
}

// Destroy hands every remaining item to the disposer, exactly once each,
// and empties the queue. It returns the number of items released.
// The queue stays usable afterwards.
func (q *Queue[T]) Destroy() int {
	var zero T
	n := q.size
	for i := 0; i < n; i++ {
		if q.dispose != nil {
			q.dispose(q.heap[i])
		}
		q.heap[i] = zero
	}
	q.size = 0

	return n
}

// grow doubles the backing array without touching the queued items on failure.
func (q *Queue[T]) grow() error {
	next, ok := nextCapacity(len(q.heap), q.maxCap)
	if !ok {
		return fmt.Errorf("%w: cannot grow past %d", ErrOutOfMemory, len(q.heap))
	}
	heap := make([]T, next)
	copy(heap, q.heap[:q.size])
	q.heap = heap

	return nil
}

func parent(i int) int { return (i - 1) / 2 }
func left(i int) int   { return 2*i + 1 }

func (q *Queue[T]) set(i int, item T) {
	q.heap[i] = item
	if q.moved != nil {
		q.moved(item, i)
	}
}

func (q *Queue[T]) swap(i, j int) {
	a, b := q.heap[i], q.heap[j]
	q.set(i, b)
	q.set(j, a)
}

// up sifts position i toward the root and returns where the item stopped.
func (q *Queue[T]) up(i int) int {
	for i > 0 {
		p := parent(i)
		if q.cmp(q.heap[i], q.heap[p]) <= 0 {
			break
		}
		q.swap(i, p)
		i = p
	}

	return i
}

// down sifts position i toward the leaves. A node with a single child only
// compares against that child; nothing past size is ever read.
func (q *Queue[T]) down(i int) {
	for {
		l := left(i)
		if l >= q.size {
			return
		}
		largest := i
		if q.cmp(q.heap[l], q.heap[largest]) > 0 {
			largest = l
		}
		if r := l + 1; r < q.size && q.cmp(q.heap[r], q.heap[largest]) > 0 {
			largest = r
		}
		if largest == i {
			return
		}
		q.swap(i, largest)
		i = largest
	}
}
