// Package dispatcher serializes concurrent order/cancel submissions against
// a single book.Book behind one worker goroutine, and fans the resulting
// trade/book-update events out to registered observers in command order.
package dispatcher

import (
	"sync"
	"sync/atomic"

	"github.com/muhammadchandra19/matchcore/internal/book"
)

// State is the dispatcher's lifecycle: Idle -> Running -> Stopped.
type State int32

const (
	Idle State = iota
	Running
	Stopped
)

type commandKind int

const (
	cmdAdd commandKind = iota
	cmdCancel
	cmdStop
)

type command struct {
	kind  commandKind
	order *book.Order
	id    book.OrderID
}

// TradeCallback is invoked with the non-empty trade list produced by one
// processed Add command.
type TradeCallback func(trades []book.Trade)

// BookUpdateCallback is invoked once per command that changed the resting
// book (a rest, a fill of a resting order, or a successful cancel).
type BookUpdateCallback func()

// Dispatcher is the single-consumer command queue described by the
// component design: producers call Submit*, one worker goroutine drains the
// queue in FIFO order and is the book's only mutator.
type Dispatcher struct {
	book *book.Book

	queue chan command
	done  chan struct{}

	state atomic.Int32

	mu           sync.Mutex // guards callback registration before Start
	onTrade      TradeCallback
	onBookUpdate BookUpdateCallback

	stopOnce sync.Once
}

// queueCapacity bounds buffered submissions before Submit blocks a
// producer; it does not affect ordering, only backpressure.
const queueCapacity = 4096

// New wires a Dispatcher around b. b must not be touched by any other
// caller once Start is called.
func New(b *book.Book) *Dispatcher {
	d := &Dispatcher{
		book:  b,
		queue: make(chan command, queueCapacity),
		done:  make(chan struct{}),
	}
	d.state.Store(int32(Idle))
	return d
}

// SetTradeCallback registers the trade observer. Must be called before
// Start; behavior of calling it afterwards is undefined, per the component
// contract.
func (d *Dispatcher) SetTradeCallback(fn TradeCallback) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onTrade = fn
}

// SetBookUpdateCallback registers the book-update observer. Must be called
// before Start.
func (d *Dispatcher) SetBookUpdateCallback(fn BookUpdateCallback) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onBookUpdate = fn
}

// State returns the dispatcher's current lifecycle state.
func (d *Dispatcher) State() State {
	return State(d.state.Load())
}

// Start transitions Idle -> Running and launches the worker goroutine.
// Calling Start more than once is a no-op.
func (d *Dispatcher) Start() {
	if !d.state.CompareAndSwap(int32(Idle), int32(Running)) {
		return
	}
	go d.run()
}

// SubmitAdd enqueues an Add command. Non-blocking except for producer
// backpressure against queueCapacity.
func (d *Dispatcher) SubmitAdd(order *book.Order) {
	d.queue <- command{kind: cmdAdd, order: order}
}

// SubmitCancel enqueues a Cancel command.
func (d *Dispatcher) SubmitCancel(id book.OrderID) {
	d.queue <- command{kind: cmdCancel, id: id}
}

// Stop enqueues a Stop command behind any already-queued work and blocks
// until the worker observes it and exits. Idempotent and safe to call
// repeatedly, concurrently, or before Start.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		if !d.state.CompareAndSwap(int32(Idle), int32(Stopped)) {
			d.queue <- command{kind: cmdStop}
			<-d.done
			return
		}
		close(d.done)
	})
}

// run is the single worker loop: dequeue, apply to the book, deliver
// callbacks, repeat. Ordering guarantee: command k's callbacks are fully
// delivered before command k+1 begins processing.
func (d *Dispatcher) run() {
	defer func() {
		d.state.Store(int32(Stopped))
		close(d.done)
	}()

	for cmd := range d.queue {
		if cmd.kind == cmdStop {
			return
		}

		bookChanged := false
		switch cmd.kind {
		case cmdAdd:
			trades, rested := d.book.Add(cmd.order)
			if len(trades) > 0 {
				if fn := d.onTrade; fn != nil {
					fn(trades)
				}
				bookChanged = true
			}
			if rested {
				bookChanged = true
			}
		case cmdCancel:
			if d.book.Cancel(cmd.id) {
				bookChanged = true
			}
		}

		if bookChanged {
			if fn := d.onBookUpdate; fn != nil {
				fn()
			}
		}
	}
}
