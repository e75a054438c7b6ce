package dispatcher

import (
	"sync"
	"testing"
	"time"

	"github.com/muhammadchandra19/matchcore/internal/book"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func order(id book.OrderID, side book.Side, price, qty uint64) *book.Order {
	return &book.Order{
		ID:                id,
		Side:              side,
		Type:              book.Limit,
		Price:             price,
		InitialQuantity:   qty,
		RemainingQuantity: qty,
		Timestamp:         time.Now(),
	}
}

func TestDispatcherAppliesCommandsInFIFOOrderAndFiresCallbacks(t *testing.T) {
	b := book.New()
	d := New(b)

	var mu sync.Mutex
	var trades []book.Trade
	bookUpdates := 0

	d.SetTradeCallback(func(ts []book.Trade) {
		mu.Lock()
		defer mu.Unlock()
		trades = append(trades, ts...)
	})
	d.SetBookUpdateCallback(func() {
		mu.Lock()
		defer mu.Unlock()
		bookUpdates++
	})

	d.Start()
	d.SubmitAdd(order(1, book.Sell, 100, 5))
	d.SubmitAdd(order(2, book.Buy, 100, 5))
	d.Stop()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, trades, 1)
	assert.Equal(t, uint64(5), trades[0].Quantity)
	assert.Equal(t, 2, bookUpdates) // order 1 rests, order 2 fully fills the level
}

func TestDispatcherCancelFiresBookUpdateOnlyWhenFound(t *testing.T) {
	b := book.New()
	d := New(b)

	updates := 0
	var mu sync.Mutex
	d.SetBookUpdateCallback(func() {
		mu.Lock()
		defer mu.Unlock()
		updates++
	})

	d.Start()
	d.SubmitAdd(order(1, book.Buy, 100, 5))
	d.SubmitCancel(1)
	d.SubmitCancel(1) // idempotent: second cancel is a no-op, no callback
	d.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, updates)
}

func TestDispatcherStopIsIdempotentAndConcurrentSafe(t *testing.T) {
	b := book.New()
	d := New(b)
	d.Start()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Stop()
		}()
	}
	wg.Wait()

	assert.Equal(t, Stopped, d.State())
}

func TestDispatcherStopBeforeStart(t *testing.T) {
	d := New(book.New())
	d.Stop()
	assert.Equal(t, Stopped, d.State())
}

func TestDispatcherDuplicateIDAddFiresNoBookUpdate(t *testing.T) {
	b := book.New()
	d := New(b)

	updates := 0
	var mu sync.Mutex
	d.SetBookUpdateCallback(func() {
		mu.Lock()
		defer mu.Unlock()
		updates++
	})

	d.Start()
	d.SubmitAdd(order(1, book.Buy, 100, 5))
	d.SubmitAdd(order(1, book.Buy, 101, 7)) // duplicate id: core no-op
	d.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, updates) // only the first Add rests
}

func TestDispatcherMarketAddThatCrossesNothingFiresNoBookUpdate(t *testing.T) {
	b := book.New()
	d := New(b)

	updates := 0
	var mu sync.Mutex
	d.SetBookUpdateCallback(func() {
		mu.Lock()
		defer mu.Unlock()
		updates++
	})

	d.Start()
	d.SubmitAdd(&book.Order{
		ID:                1,
		Side:              book.Buy,
		Type:              book.Market,
		InitialQuantity:   10,
		RemainingQuantity: 10,
		Timestamp:         time.Now(),
	})
	d.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 0, updates)
}
