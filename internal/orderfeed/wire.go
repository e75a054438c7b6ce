package orderfeed

import (
	"time"

	"github.com/muhammadchandra19/matchcore/internal/book"
)

// Command mirrors the JSON command frames the reference transport
// accepts: {"type":"add",...} / {"type":"cancel",...}.
type Command struct {
	Type    string `json:"type"`
	OrderID uint64 `json:"orderId"`
	Side    string `json:"side,omitempty"`
	Price   uint64 `json:"price,omitempty"`
	Qty     uint64 `json:"qty,omitempty"`
}

// toOrder converts an "add" Command into a book.Order, returning ok=false
// for a malformed payload (the transport boundary's job per the error
// handling design: invalid payloads never reach the core).
func (c Command) toOrder() (*book.Order, bool) {
	if c.Type != "add" || c.Qty == 0 {
		return nil, false
	}

	var side book.Side
	switch c.Side {
	case "buy":
		side = book.Buy
	case "sell":
		side = book.Sell
	default:
		return nil, false
	}

	return &book.Order{
		ID:                book.OrderID(c.OrderID),
		Side:              side,
		Type:              book.Limit,
		Price:             c.Price,
		InitialQuantity:   c.Qty,
		RemainingQuantity: c.Qty,
		Timestamp:         time.Now(),
	}, true
}
