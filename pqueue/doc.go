// Package pqueue implements array-backed binary max-heaps.
//
// Queue[T] orders arbitrary items with a caller-supplied Comparator and owns
// them until they are extracted; Destroy releases whatever is left through an
// optional Disposer, exactly once per item.
//
// IndexedQueue[P] specializes the heap for dense integer keys and tracks the
// position of every key, giving O(log n) decrease-key for graph searches.
//
// Growth policy:
//
//	capacity 0 → 1 → 2 → 4 → …, doubling only when the array is full.
//	WithMaxCapacity caps the growth; passing it yields ErrOutOfMemory and
//	leaves the queue untouched.
//
// Complexity:
//
//	Insert       O(log n) amortized
//	ExtractMax   O(log n)
//	Fix / Update O(log n)
//	Destroy      O(n)
//
// Ties: items that compare equal leave the heap in unspecified order.
// Callers needing a stable order must break ties inside the comparator.
//
// Example:
//
//	q, _ := pqueue.New(4, pqueue.Natural[int], nil)
//	_ = q.Insert(3)
//	_ = q.Insert(7)
//	v, _ := q.ExtractMax() // 7
package pqueue
