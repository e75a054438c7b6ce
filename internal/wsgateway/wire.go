package wsgateway

import (
	"time"

	"github.com/muhammadchandra19/matchcore/internal/book"
)

// inboundCommand mirrors the JSON command frames this gateway accepts.
type inboundCommand struct {
	Type    string `json:"type"`
	OrderID uint64 `json:"orderId"`
	Side    string `json:"side,omitempty"`
	Price   uint64 `json:"price,omitempty"`
	Qty     uint64 `json:"qty,omitempty"`
}

type levelFrame struct {
	Price uint64 `json:"price"`
	Qty   uint64 `json:"qty"`
}

type snapshotFrame struct {
	Type string       `json:"type"`
	Bids []levelFrame `json:"bids"`
	Asks []levelFrame `json:"asks"`
}

type bookFrame struct {
	Type string       `json:"type"`
	Bids []levelFrame `json:"bids"`
	Asks []levelFrame `json:"asks"`
}

type tradeFrame struct {
	Type         string    `json:"type"`
	Price        uint64    `json:"price"`
	Quantity     uint64    `json:"qty"`
	MakerOrderID uint64    `json:"makerOrderId"`
	TakerOrderID uint64    `json:"takerOrderId"`
	Timestamp    time.Time `json:"timestamp"`
}

func toLevelFrames(levels []book.LevelView) []levelFrame {
	out := make([]levelFrame, len(levels))
	for i, lv := range levels {
		out[i] = levelFrame{Price: lv.Price, Qty: lv.TotalVolume}
	}
	return out
}

func newSnapshotFrame(b *book.Book) snapshotFrame {
	return snapshotFrame{Type: "snapshot", Bids: toLevelFrames(b.Bids()), Asks: toLevelFrames(b.Asks())}
}

func newBookFrame(b *book.Book) bookFrame {
	return bookFrame{Type: "book", Bids: toLevelFrames(b.Bids()), Asks: toLevelFrames(b.Asks())}
}

func newTradeFrame(t book.Trade) tradeFrame {
	return tradeFrame{
		Type:         "trade",
		Price:        t.Price,
		Quantity:     t.Quantity,
		MakerOrderID: uint64(t.MakerOrderID),
		TakerOrderID: uint64(t.TakerOrderID),
		Timestamp:    t.Timestamp,
	}
}

// toOrder converts an "add" inboundCommand into a book.Order, assigning it
// id as the transport-owned order id. Returns ok=false for a malformed
// payload.
func (c inboundCommand) toOrder(id book.OrderID) (*book.Order, bool) {
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
		ID:                id,
		Side:              side,
		Type:              book.Limit,
		Price:             c.Price,
		InitialQuantity:   c.Qty,
		RemainingQuantity: c.Qty,
		Timestamp:         time.Now(),
	}, true
}
