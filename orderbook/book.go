// SPDX-License-Identifier: MIT

package orderbook

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Book is a dynamically resized array of orders kept sorted ascending by
// price and, within a price level, by identity.
//
// Capacity doubles when the array is full (0 → 1) and halves once the
// occupancy drops to a quarter of it, so a single insert/remove pair at
// either boundary never resizes twice.
//
// Insertions and removals shift the tail of the array: O(n) each.
// A Book is not safe for concurrent use.
type Book struct {
	orders []Order // len(orders) is the capacity, size the length
	size   int
	maxCap int
	lastID uint64
}

// NewBook creates an empty book.
//
// Errors: ErrBadCapacity, ErrOutOfMemory (initial capacity above the limit).
func NewBook(opts ...Option) (*Book, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}
	if cfg.Capacity > cfg.MaxCapacity {
		return nil, fmt.Errorf("%w: capacity %d above limit %d", ErrOutOfMemory, cfg.Capacity, cfg.MaxCapacity)
	}

	return &Book{
		orders: make([]Order, cfg.Capacity),
		maxCap: cfg.MaxCapacity,
	}, nil
}

// Len returns the number of resting orders.
func (b *Book) Len() int { return b.size }

// Cap returns the capacity of the backing array.
func (b *Book) Cap() int { return len(b.orders) }

// LastID returns the greatest identity the book has accepted.
func (b *Book) LastID() uint64 { return b.lastID }

// At returns the order at position pos.
func (b *Book) At(pos int) (Order, bool) {
	if pos < 0 || pos >= b.size {
		return Order{}, false
	}

	return b.orders[pos], true
}

// Orders returns a copy of the resting orders in book order.
func (b *Book) Orders() []Order {
	out := make([]Order, b.size)
	copy(out, b.orders[:b.size])

	return out
}

// Add creates an order with the next identity and inserts it.
// It returns the stored order and its position.
func (b *Book) Add(quantity int64, price decimal.Decimal) (Order, int, error) {
	o := Order{ID: b.lastID + 1, Quantity: quantity, Price: price}
	pos, err := b.Insert(o)
	if err != nil {
		return Order{}, -1, err
	}

	return o, pos, nil
}

// Insert places o after every order with the same price, keeping the price
// level in arrival order, and returns its position.
//
// Errors:
//   - ErrIdentityOrder if o.ID is not greater than LastID().
//   - ErrOutOfMemory if the book is full and may not grow; nothing changes.
//
// Complexity: O(log n) search plus O(n) shift.
func (b *Book) Insert(o Order) (int, error) {
	if o.ID <= b.lastID {
		return -1, fmt.Errorf("%w: got %d after %d", ErrIdentityOrder, o.ID, b.lastID)
	}
	if b.size == len(b.orders) {
		if err := b.grow(); err != nil {
			return -1, err
		}
	}

	pos := b.InsertionPoint(o.Price)
	copy(b.orders[pos+1:b.size+1], b.orders[pos:b.size])
	b.orders[pos] = o
	b.size++
	b.lastID = o.ID

	return pos, nil
}

// Remove deletes the order at pos by shifting the tail left and returns it.
// The second result is false when pos does not address a resting order.
// The capacity halves when the book drops to a quarter full.
func (b *Book) Remove(pos int) (Order, bool) {
	if pos < 0 || pos >= b.size {
		return Order{}, false
	}

	o := b.orders[pos]
	copy(b.orders[pos:b.size-1], b.orders[pos+1:b.size])
	b.size--
	b.orders[b.size] = Order{}
	if b.size <= len(b.orders)/4 {
		b.shrink()
	}

	return o, true
}

// Fill decrements the quantity of the order at pos by qty and returns what is
// left, which may be zero or negative. The order stays in the book.
func (b *Book) Fill(pos int, qty int64) (int64, bool) {
	if pos < 0 || pos >= b.size {
		return 0, false
	}
	b.orders[pos].Quantity -= qty

	return b.orders[pos].Quantity, true
}

// Find returns the position of the earliest order at exactly price.
func (b *Book) Find(price decimal.Decimal) (int, bool) {
	pos := b.search(false, price, 0, b.size-1)
	if !b.priceAt(pos, price) {
		return -1, false
	}

	return pos, true
}

// Depth returns the total quantity resting at exactly price.
//
// Complexity: O(log n) search plus O(k) for the k orders of the level.
func (b *Book) Depth(price decimal.Decimal) int64 {
	return b.levelQuantity(price, math.MaxInt64)
}

// levelQuantity sums the positive quantities of the price level, earliest
// first, and stops as soon as the sum reaches limit. It never mutates.
func (b *Book) levelQuantity(price decimal.Decimal, limit int64) int64 {
	pos, ok := b.Find(price)
	if !ok {
		return 0
	}

	var sum int64
	for ; b.priceAt(pos, price); pos++ {
		q := b.orders[pos].Quantity
		if q <= 0 {
			continue
		}
		if q >= limit-sum {
			return limit
		}
		sum += q
	}

	return sum
}

// InsertionPoint returns where a new order at price would be placed: after
// every resting order with a lower or equal price.
func (b *Book) InsertionPoint(price decimal.Decimal) int {
	return b.search(true, price, 0, b.size-1)
}

// priceAt reports whether pos addresses a resting order priced exactly price.
func (b *Book) priceAt(pos int, price decimal.Decimal) bool {
	return pos >= 0 && pos < b.size && b.orders[pos].Price.Equal(price)
}

// search is a recursive binary search over the inclusive range [lo, hi].
//
// On an exact price match it keeps going: toward lower positions when
// looking for the earliest order of the level, toward higher positions when
// looking for the slot after the level. It returns lo once the range is
// empty, which is the answer in both modes.
func (b *Book) search(after bool, price decimal.Decimal, lo, hi int) int {
	if hi < lo {
		return lo
	}

	mid := lo + (hi-lo)/2
	switch c := b.orders[mid].Price.Cmp(price); {
	case c > 0:
		return b.search(after, price, lo, mid-1)
	case c < 0:
		return b.search(after, price, mid+1, hi)
	case after:
		return b.search(after, price, mid+1, hi)
	default:
		return b.search(after, price, lo, mid-1)
	}
}

// reserve makes sure one more order fits without growing later.
func (b *Book) reserve() error {
	if b.size < len(b.orders) {
		return nil
	}

	return b.grow()
}

func (b *Book) grow() error {
	next := 1
	if n := len(b.orders); n > 0 {
		next = 2 * n
	}
	if next > b.maxCap {
		return fmt.Errorf("%w: cannot grow past %d", ErrOutOfMemory, len(b.orders))
	}
	orders := make([]Order, next)
	copy(orders, b.orders[:b.size])
	b.orders = orders

	return nil
}

func (b *Book) shrink() {
	orders := make([]Order, len(b.orders)/2)
	copy(orders, b.orders[:b.size])
	b.orders = orders
}
