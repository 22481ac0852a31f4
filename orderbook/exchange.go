// SPDX-License-Identifier: MIT
// Package: ordlab/orderbook
//
// exchange.go - two books and exact-price FIFO matching between them.
//
// Contract:
//   - A submission trades only against resting orders at its exact price,
//     earliest first.
//   - Every order and trade gets an identity; failed calls assign none.
//   - Own-book capacity is claimed only for a remainder that will rest.

package orderbook

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Exchange matches buy and sell orders against two Books.
//
// Every submission receives the next identity from a single sequence shared
// by both sides. An order only trades against counter orders at exactly its
// own price, earliest first; whatever is left rests in its own book.
type Exchange struct {
	bids *Book
	asks *Book
	seq  uint64
	opts ExchangeOptions
	log  *zap.Logger
}

// NewExchange creates an exchange with two empty books.
func NewExchange(opts ...ExchangeOption) (*Exchange, error) {
	cfg := DefaultExchangeOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	bids, err := NewBook(cfg.Book...)
	if err != nil {
		return nil, fmt.Errorf("orderbook: bid book: %w", err)
	}
	asks, err := NewBook(cfg.Book...)
	if err != nil {
		return nil, fmt.Errorf("orderbook: ask book: %w", err)
	}

	return &Exchange{
		bids: bids,
		asks: asks,
		opts: cfg,
		log:  cfg.Logger,
	}, nil
}

// Book returns the book resting orders of side live in, or nil for an
// unknown side. The returned book must not be modified directly.
func (x *Exchange) Book(side Side) *Book {
	switch side {
	case Buy:
		return x.bids
	case Sell:
		return x.asks
	default:
		return nil
	}
}

// Sequence returns the identity given to the latest submission.
func (x *Exchange) Sequence() uint64 { return x.seq }

// Submit matches a new order of side against the opposite book and rests
// any remainder.
//
// Matching rules:
//  1. The counter order is the earliest resting order at exactly price.
//  2. Each fill trades min(counter quantity, remaining quantity).
//  3. A counter order filled to zero leaves its book and is reported
//     completed; the next order at the same position is tried only while it
//     still carries the same price.
//  4. A submission filled to zero is reported completed after its counters.
//  5. A remainder rests in the submitter's own book behind its price level.
//
// Errors: ErrBadSide, ErrBadQuantity, ErrBadPrice, or ErrOutOfMemory when a
// remainder would have to rest in a full book that may not grow. An order
// the counter level fills completely never touches its own book, so it
// succeeds even then. Failed submissions change nothing, not even the
// sequence.
//
// Complexity: O(k log n + k·n) for k fills, dominated by array shifts.
func (x *Exchange) Submit(side Side, quantity int64, price decimal.Decimal) (Result, error) {
	// 1) Validate side, quantity and price.
	own := x.Book(side)
	if own == nil {
		return Result{}, fmt.Errorf("%w: %d", ErrBadSide, uint8(side))
	}
	if quantity <= 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrBadQuantity, quantity)
	}
	if !price.IsPositive() {
		return Result{}, fmt.Errorf("%w: %s", ErrBadPrice, price)
	}

	// 2) Read the counter level without touching it. Only an order that
	//    outlasts the level needs room in its own book, and that room is
	//    secured before any fill so a refusal leaves both books intact.
	counter := x.Book(side.Opposite())
	if counter.levelQuantity(price, quantity) < quantity {
		if err := own.reserve(); err != nil {
			return Result{}, err
		}
	}

	// 3) Assign the identity.
	x.seq++
	res := Result{OrderID: x.seq, Side: side, Remaining: quantity, Position: -1}

	// 4) Fill against the earliest counter orders at exactly price.
	pos, found := counter.Find(price)
	for res.Remaining > 0 && found {
		resting, _ := counter.At(pos)
		left, _ := counter.Fill(pos, res.Remaining)

		traded := res.Remaining
		if left < 0 {
			traded += left
		}
		x.record(&res, side, resting.ID, traded, price)

		// 4a) Counter used up: it leaves the book; the next order of the
		//     level, if any, slides into pos.
		if left <= 0 {
			res.Remaining = -left
			done, _ := counter.Remove(pos)
			x.complete(&res, done.ID)
			found = counter.priceAt(pos, price)
		}
		// 4b) Submission used up.
		if left >= 0 {
			res.Remaining = 0
			x.complete(&res, res.OrderID)
		}
	}

	// 5) Rest the remainder behind its price level.
	if res.Remaining > 0 {
		at, err := own.Insert(Order{ID: res.OrderID, Quantity: res.Remaining, Price: price})
		if err != nil {
			return res, err // unreachable after reserve
		}
		res.Rested = true
		res.Position = at
	}

	return res, nil
}

// Cancel removes the resting order id from side's book.
// Complexity: O(n) scan plus O(n) shift.
func (x *Exchange) Cancel(side Side, id uint64) (Order, bool) {
	book := x.Book(side)
	if book == nil {
		return Order{}, false
	}
	for pos := 0; pos < book.Len(); pos++ {
		if book.orders[pos].ID == id {
			x.log.Debug("order canceled", zap.Uint64("order", id), zap.Stringer("side", side))
			return book.Remove(pos)
		}
	}

	return Order{}, false
}

func (x *Exchange) record(res *Result, side Side, resting uint64, qty int64, price decimal.Decimal) {
	t := Trade{
		ID:       x.opts.TradeID(),
		Seller:   res.OrderID,
		Buyer:    resting,
		Quantity: qty,
		Price:    price,
	}
	if side == Buy {
		t.Seller, t.Buyer = resting, res.OrderID
	}
	res.Trades = append(res.Trades, t)

	x.log.Debug("trade",
		zap.Uint64("seller", t.Seller),
		zap.Uint64("buyer", t.Buyer),
		zap.Int64("quantity", t.Quantity),
		zap.Stringer("price", t.Price),
	)
}

func (x *Exchange) complete(res *Result, id uint64) {
	res.Completed = append(res.Completed, id)
	x.log.Debug("order completed", zap.Uint64("order", id))
}
