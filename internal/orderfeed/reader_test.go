package orderfeed

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/muhammadchandra19/matchcore/internal/book"
	"github.com/muhammadchandra19/matchcore/internal/dispatcher"
	"github.com/muhammadchandra19/matchcore/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func newTestReader(t *testing.T, d *dispatcher.Dispatcher) *Reader {
	t.Helper()
	log, err := logger.NewLogger()
	if err != nil {
		t.Fatalf("build logger: %v", err)
	}
	return &Reader{dispatcher: d, logger: log}
}

func TestApplyAddSubmitsOrderToDispatcher(t *testing.T) {
	b := book.New()
	d := dispatcher.New(b)

	var mu sync.Mutex
	updates := 0
	d.SetBookUpdateCallback(func() {
		mu.Lock()
		defer mu.Unlock()
		updates++
	})
	d.Start()
	defer d.Stop()

	r := newTestReader(t, d)
	r.apply(context.Background(), Command{Type: "add", OrderID: 1, Side: "buy", Price: 100, Qty: 5})

	// give the single worker goroutine a moment to process the command
	time.Sleep(20 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, updates)
}

func TestApplyCancelSubmitsCancelToDispatcher(t *testing.T) {
	b := book.New()
	d := dispatcher.New(b)
	d.Start()

	r := newTestReader(t, d)
	r.apply(context.Background(), Command{Type: "add", OrderID: 1, Side: "sell", Price: 100, Qty: 5})
	r.apply(context.Background(), Command{Type: "cancel", OrderID: 1})
	d.Stop()

	assert.False(t, b.Cancel(1)) // already cancelled, second attempt finds nothing
}

func TestApplyMalformedAddIsSkippedNotSubmitted(t *testing.T) {
	b := book.New()
	d := dispatcher.New(b)
	d.Start()
	defer d.Stop()

	r := newTestReader(t, d)
	r.apply(context.Background(), Command{Type: "add", OrderID: 1, Side: "bogus", Price: 100, Qty: 5})
	r.apply(context.Background(), Command{Type: "add", OrderID: 2, Side: "buy", Price: 100, Qty: 0})

	time.Sleep(10 * time.Millisecond)
	assert.False(t, b.Cancel(1))
	assert.False(t, b.Cancel(2))
}

func TestLastOffsetReportsStoredOffset(t *testing.T) {
	r := newTestReader(t, dispatcher.New(book.New()))
	r.lastOffset.Store(-1)
	assert.Equal(t, int64(-1), r.LastOffset())

	r.lastOffset.Store(41)
	assert.Equal(t, int64(41), r.LastOffset())
}

func TestApplyUnknownTypeIsIgnored(t *testing.T) {
	b := book.New()
	d := dispatcher.New(b)
	d.Start()
	defer d.Stop()

	r := newTestReader(t, d)
	assert.NotPanics(t, func() {
		r.apply(context.Background(), Command{Type: "unknown"})
	})
}
