package tradefeed

import (
	"testing"
	"time"

	"github.com/muhammadchandra19/matchcore/internal/book"
	"github.com/stretchr/testify/assert"
)

func TestToTradeFrameCopiesAllFields(t *testing.T) {
	ts := time.Now()
	trade := book.Trade{
		Price:        100,
		Quantity:     5,
		MakerOrderID: 1,
		TakerOrderID: 2,
		Timestamp:    ts,
	}

	frame := toTradeFrame(trade)

	assert.Equal(t, "trade", frame.Type)
	assert.Equal(t, uint64(100), frame.Price)
	assert.Equal(t, uint64(5), frame.Quantity)
	assert.Equal(t, uint64(1), frame.MakerOrderID)
	assert.Equal(t, uint64(2), frame.TakerOrderID)
	assert.Equal(t, ts, frame.Timestamp)
}
