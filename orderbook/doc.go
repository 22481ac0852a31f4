// Package orderbook keeps priced orders in sorted dynamic arrays and matches
// buy against sell orders at equal prices.
//
// A Book is a contiguous array ordered ascending by (price, identity).
// Identities strictly increase, so the orders of one price level sit in
// arrival order and the earliest one is always matched first (FIFO).
//
// Two binary-search modes serve the two questions a matcher asks:
//
//	Find(price)           earliest order at exactly price   (counter order)
//	InsertionPoint(price) slot after the whole price level  (new order)
//
// Resize policy:
//
//	grow   ×2 when full (0 → 1)
//	shrink ½  when Len() ≤ Cap()/4
//
// Exchange owns one Book per Side and runs the matching protocol: a new
// order trades against the earliest counter orders at its exact price,
// fully filled orders leave their book, and any remainder rests.
//
// Prices are github.com/shopspring/decimal values so that equality of price
// levels is exact. Trades carry a github.com/google/uuid identifier.
package orderbook
