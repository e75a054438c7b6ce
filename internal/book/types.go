// Package book implements the single-instrument, price-time priority limit
// order book: the resting order state and the matching algorithm that runs
// against it. The book itself performs no I/O and starts no goroutines; it
// is driven synchronously by internal/dispatcher.
package book

import "time"

// Side identifies which side of the book an order rests on or crosses.
type Side uint8

const (
	Buy Side = iota
	Sell
)

// OrderType selects the matching behavior for an incoming order.
type OrderType uint8

const (
	Limit OrderType = iota
	Market
)

// OrderID is assigned by the caller (transport layer), never by the book.
type OrderID uint64

// Order is a single resting or incoming order. Price is denominated in
// integer ticks; for Market orders Price is ignored during matching.
type Order struct {
	ID                OrderID
	Side              Side
	Type              OrderType
	Price             uint64
	InitialQuantity   uint64
	RemainingQuantity uint64
	Timestamp         time.Time
}

// IsFilled reports whether the order has no quantity left to match.
func (o *Order) IsFilled() bool {
	return o.RemainingQuantity == 0
}

// Trade is emitted whenever an incoming order crosses a resting order.
type Trade struct {
	Price        uint64
	Quantity     uint64
	MakerOrderID OrderID
	TakerOrderID OrderID
	Timestamp    time.Time
}

// LevelView is a read-only snapshot of one price level, returned by
// Bids/Asks. It never exposes the underlying resting-order list.
type LevelView struct {
	Price       uint64
	TotalVolume uint64
}
