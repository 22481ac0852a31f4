// SPDX-License-Identifier: MIT

package orderbook

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Sentinel errors returned by Book and Exchange.
var (
	// ErrBadCapacity indicates a negative capacity hint or limit.
	ErrBadCapacity = errors.New("orderbook: capacity must be non-negative")

	// ErrOutOfMemory indicates that the book would have to grow past its
	// configured maximum capacity. The book is left unchanged.
	ErrOutOfMemory = errors.New("orderbook: capacity limit reached")

	// ErrIdentityOrder indicates an Insert whose identity is not greater than
	// every identity the book has already seen.
	ErrIdentityOrder = errors.New("orderbook: order identities must strictly increase")

	// ErrBadQuantity indicates a submitted order with a non-positive quantity.
	ErrBadQuantity = errors.New("orderbook: quantity must be positive")

	// ErrBadPrice indicates a submitted order with a non-positive price.
	ErrBadPrice = errors.New("orderbook: price must be positive")

	// ErrBadSide indicates a Side value other than Buy or Sell.
	ErrBadSide = errors.New("orderbook: unknown side")
)

// Order is one resting order.
//
// ID is the insertion sequence number and breaks ties between equal prices.
// Quantity may be decremented to zero or below while the order is matched.
type Order struct {
	ID       uint64
	Quantity int64
	Price    decimal.Decimal
}

// String renders the order as "#id qty@price".
func (o Order) String() string {
	return fmt.Sprintf("#%d %d@%s", o.ID, o.Quantity, o.Price.StringFixed(2))
}

// Side selects the book an order belongs to.
type Side uint8

const (
	// Buy orders rest in the bid book and match against asks.
	Buy Side = iota + 1
	// Sell orders rest in the ask book and match against bids.
	Sell
)

// String returns "buy", "sell" or "side(n)".
func (s Side) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return fmt.Sprintf("side(%d)", uint8(s))
	}
}

// Opposite returns the side an order of s matches against.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}

	return Buy
}

// Trade records one fill between a selling and a buying order.
type Trade struct {
	ID       uuid.UUID
	Seller   uint64
	Buyer    uint64
	Quantity int64
	Price    decimal.Decimal
}

// Result describes what happened to a submitted order.
//
// Completed lists, in event order, the identities of every order fully
// filled by this submission (counter orders first, then possibly the
// submitted order itself). When Rested is true the unfilled Remaining
// quantity now sits in the submitter's book at Position.
type Result struct {
	OrderID   uint64
	Side      Side
	Trades    []Trade
	Completed []uint64
	Remaining int64
	Rested    bool
	Position  int
}

// Options configures the capacity policy of a Book.
//
// Capacity    – initial capacity, ≥ 0. Default 0.
// MaxCapacity – growth ceiling, ≥ Capacity. Growing past it yields ErrOutOfMemory.
type Options struct {
	Capacity    int
	MaxCapacity int

	err error
}

// Option represents a functional option for Book construction.
type Option func(*Options)

// DefaultOptions returns an empty book policy with no practical growth ceiling.
func DefaultOptions() Options {
	return Options{
		Capacity:    0,
		MaxCapacity: math.MaxInt / 2,
	}
}

// WithCapacity sets the initial capacity of the backing array.
func WithCapacity(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = ErrBadCapacity
			return
		}
		o.Capacity = n
	}
}

// WithMaxCapacity limits how far the backing array may grow.
func WithMaxCapacity(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = ErrBadCapacity
			return
		}
		o.MaxCapacity = n
	}
}

// ExchangeOptions configures an Exchange.
type ExchangeOptions struct {
	// Logger receives Debug events for trades and completed orders.
	Logger *zap.Logger
	// TradeID generates Trade.ID values.
	TradeID func() uuid.UUID
	// Book is applied to both the bid and the ask book.
	Book []Option
}

// ExchangeOption represents a functional option for NewExchange.
type ExchangeOption func(*ExchangeOptions)

// DefaultExchangeOptions returns a silent exchange using random trade IDs.
func DefaultExchangeOptions() ExchangeOptions {
	return ExchangeOptions{
		Logger:  zap.NewNop(),
		TradeID: uuid.New,
	}
}

// WithLogger sets the exchange logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) ExchangeOption {
	return func(o *ExchangeOptions) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithTradeIDs replaces the trade identifier generator. A nil func is ignored.
func WithTradeIDs(gen func() uuid.UUID) ExchangeOption {
	return func(o *ExchangeOptions) {
		if gen != nil {
			o.TradeID = gen
		}
	}
}

// WithBookOptions applies opts to both books of the exchange.
func WithBookOptions(opts ...Option) ExchangeOption {
	return func(o *ExchangeOptions) {
		o.Book = append(o.Book, opts...)
	}
}
