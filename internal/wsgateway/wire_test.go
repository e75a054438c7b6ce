package wsgateway

import (
	"testing"

	"github.com/muhammadchandra19/matchcore/internal/book"
	"github.com/stretchr/testify/assert"
)

func TestToOrderAssignsTransportID(t *testing.T) {
	cmd := inboundCommand{Type: "add", Side: "sell", Price: 100, Qty: 5}
	order, ok := cmd.toOrder(7)

	assert.True(t, ok)
	assert.Equal(t, book.OrderID(7), order.ID)
	assert.Equal(t, book.Sell, order.Side)
	assert.Equal(t, uint64(5), order.RemainingQuantity)
}

func TestToOrderRejectsZeroQtyAndBadSide(t *testing.T) {
	_, ok := (inboundCommand{Type: "add", Side: "buy", Qty: 0}).toOrder(1)
	assert.False(t, ok)

	_, ok = (inboundCommand{Type: "add", Side: "sideways", Qty: 1}).toOrder(1)
	assert.False(t, ok)

	_, ok = (inboundCommand{Type: "cancel", Side: "buy", Qty: 1}).toOrder(1)
	assert.False(t, ok)
}
