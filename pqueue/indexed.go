// SPDX-License-Identifier: MIT

package pqueue

import "fmt"

// slot is the heap entry of an IndexedQueue.
type slot[P any] struct {
	key  int
	prio P
}

// IndexedQueue is a max-heap of dense integer keys in [0, n), each carrying
// a priority of type P. It keeps a key → heap-position map that is updated on
// every move, so a queued key can have its priority changed in O(log n)
// without scanning the heap (decrease-key).
//
// Build it with Reverse(Natural[P]) to pop the smallest priority first, as
// shortest-path searches need.
type IndexedQueue[P any] struct {
	q   *Queue[slot[P]]
	pos []int // key → heap position, -1 when not queued
}

// NewIndexed creates an empty IndexedQueue for keys in [0, n).
//
// Errors:
//   - ErrNilComparator if cmp is nil.
//   - ErrBadCapacity if n is negative.
func NewIndexed[P any](n int, cmp Comparator[P]) (*IndexedQueue[P], error) {
	if cmp == nil {
		return nil, ErrNilComparator
	}
	if n < 0 {
		return nil, ErrBadCapacity
	}

	q, err := New[slot[P]](n, func(a, b slot[P]) int { return cmp(a.prio, b.prio) }, nil)
	if err != nil {
		return nil, err
	}
	iq := &IndexedQueue[P]{q: q, pos: make([]int, n)}
	for k := range iq.pos {
		iq.pos[k] = -1
	}
	q.moved = func(s slot[P], at int) { iq.pos[s.key] = at }

	return iq, nil
}

// Len returns the number of queued keys.
func (iq *IndexedQueue[P]) Len() int { return iq.q.Len() }

// IsEmpty reports whether no key is queued.
func (iq *IndexedQueue[P]) IsEmpty() bool { return iq.q.IsEmpty() }

// Contains reports whether key is currently queued.
func (iq *IndexedQueue[P]) Contains(key int) bool {
	return key >= 0 && key < len(iq.pos) && iq.pos[key] >= 0
}

// Priority returns the current priority of a queued key.
func (iq *IndexedQueue[P]) Priority(key int) (P, bool) {
	if !iq.Contains(key) {
		var zero P
		return zero, false
	}

	return iq.q.heap[iq.pos[key]].prio, true
}

// Push queues key with priority p.
//
// Errors: ErrKeyRange, ErrDuplicateKey.
func (iq *IndexedQueue[P]) Push(key int, p P) error {
	if key < 0 || key >= len(iq.pos) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrKeyRange, key, len(iq.pos))
	}
	if iq.pos[key] >= 0 {
		return fmt.Errorf("%w: %d", ErrDuplicateKey, key)
	}

	return iq.q.Insert(slot[P]{key: key, prio: p})
}

// Pop removes the key with the greatest priority. ok is false when empty.
func (iq *IndexedQueue[P]) Pop() (key int, p P, ok bool) {
	s, ok := iq.q.ExtractMax()
	if !ok {
		return -1, p, false
	}
	iq.pos[s.key] = -1

	return s.key, s.prio, true
}

// Update replaces the priority of a queued key and restores the heap order
// from its recorded position.
//
// Errors: ErrKeyRange, ErrUnknownKey.
func (iq *IndexedQueue[P]) Update(key int, p P) error {
	if key < 0 || key >= len(iq.pos) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrKeyRange, key, len(iq.pos))
	}
	at := iq.pos[key]
	if at < 0 {
		return fmt.Errorf("%w: %d", ErrUnknownKey, key)
	}
	iq.q.heap[at].prio = p

	return iq.q.Fix(at)
}
