package book

import "container/heap"

// Book holds one instrument's resting orders and applies price-time
// priority matching. A Book is not safe for concurrent use; the
// dispatcher's single worker goroutine is the only caller.
type Book struct {
	bids map[uint64]*level
	asks map[uint64]*level
	byID map[OrderID]*orderNode

	bidHeap maxPriceHeap
	askHeap minPriceHeap
}

// New returns an empty book.
func New() *Book {
	b := &Book{
		bids: make(map[uint64]*level),
		asks: make(map[uint64]*level),
		byID: make(map[OrderID]*orderNode),
	}
	heap.Init(&b.bidHeap)
	heap.Init(&b.askHeap)
	return b
}

// Add matches the incoming order against the opposite side, then rests any
// remaining quantity (Limit orders only). A duplicate id is a silent no-op.
// Returns the trades generated, in the order they occurred, and whether the
// order was left resting in the book.
func (b *Book) Add(order *Order) ([]Trade, bool) {
	if order == nil || order.RemainingQuantity == 0 {
		return nil, false
	}
	if _, exists := b.byID[order.ID]; exists {
		return nil, false
	}

	var trades []Trade
	if order.Side == Buy {
		trades = b.matchBuy(order)
	} else {
		trades = b.matchSell(order)
	}

	rested := false
	if !order.IsFilled() && order.Type == Limit {
		b.rest(order)
		rested = true
	}

	return trades, rested
}

// Cancel removes a resting order by id in O(1). Reports whether an order
// was found and removed.
func (b *Book) Cancel(id OrderID) bool {
	n := b.byID[id]
	if n == nil {
		return false
	}

	lv := n.lv
	lv.totalVolume -= n.order.RemainingQuantity
	lv.remove(n)
	delete(b.byID, id)

	if lv.empty() {
		if n.side == Buy {
			delete(b.bids, lv.price)
		} else {
			delete(b.asks, lv.price)
		}
	}
	releaseNode(n)
	return true
}

// Bids returns resting buy levels best-price-first (highest first).
//
// The heap tolerates stale price entries left behind by a level that drained
// to zero (cleaned up lazily by bestBid), so a price that empties and is
// later rested again can briefly occupy two heap slots. heap.Pop always
// yields a non-increasing sequence, so any duplicate prices surface back to
// back here; skip repeats to emit each live level once.
func (b *Book) Bids() []LevelView {
	ordered := append(maxPriceHeap(nil), b.bidHeap...)
	out := make([]LevelView, 0, len(b.bids))
	var last uint64
	seenOne := false
	for ordered.Len() > 0 {
		p := heap.Pop(&ordered).(uint64)
		if seenOne && p == last {
			continue
		}
		last, seenOne = p, true
		if lv, ok := b.bids[p]; ok {
			out = append(out, LevelView{Price: lv.price, TotalVolume: lv.totalVolume})
		}
	}
	return out
}

// Asks returns resting sell levels best-price-first (lowest first). See
// Bids for why duplicate prices can appear in the heap and why skipping
// repeats of the previously popped price is sufficient to dedup them.
func (b *Book) Asks() []LevelView {
	ordered := append(minPriceHeap(nil), b.askHeap...)
	out := make([]LevelView, 0, len(b.asks))
	var last uint64
	seenOne := false
	for ordered.Len() > 0 {
		p := heap.Pop(&ordered).(uint64)
		if seenOne && p == last {
			continue
		}
		last, seenOne = p, true
		if lv, ok := b.asks[p]; ok {
			out = append(out, LevelView{Price: lv.price, TotalVolume: lv.totalVolume})
		}
	}
	return out
}

// RestingOrders returns a copy of every resting order, grouped by side and
// price-level (best price first) and FIFO within a level. Replaying Add in
// this order against an empty Book reconstructs the same resting state;
// used by internal/snapshot to checkpoint and restore the book.
func (b *Book) RestingOrders() []Order {
	var out []Order
	for _, lv := range b.Asks() {
		appendLevelOrders(&out, b.asks[lv.Price])
	}
	for _, lv := range b.Bids() {
		appendLevelOrders(&out, b.bids[lv.Price])
	}
	return out
}

func appendLevelOrders(out *[]Order, lv *level) {
	if lv == nil {
		return
	}
	for n := lv.head; n != nil; n = n.next {
		*out = append(*out, *n.order)
	}
}

func (b *Book) rest(order *Order) {
	var lv *level
	if order.Side == Buy {
		lv = b.bids[order.Price]
		if lv == nil {
			lv = &level{price: order.Price}
			b.bids[order.Price] = lv
			heap.Push(&b.bidHeap, order.Price)
		}
	} else {
		lv = b.asks[order.Price]
		if lv == nil {
			lv = &level{price: order.Price}
			b.asks[order.Price] = lv
			heap.Push(&b.askHeap, order.Price)
		}
	}
	n := acquireNode(order, lv, order.Side)
	lv.pushBack(n)
	b.byID[order.ID] = n
}

func (b *Book) matchBuy(taker *Order) []Trade {
	var trades []Trade
	for taker.RemainingQuantity > 0 {
		bestPrice, ok := b.bestAsk()
		if !ok {
			break
		}
		if taker.Type == Limit && taker.Price < bestPrice {
			break
		}
		lv := b.asks[bestPrice]
		trades = append(trades, b.crossLevel(taker, lv, Sell)...)
		if lv.empty() {
			delete(b.asks, lv.price)
		}
	}
	return trades
}

func (b *Book) matchSell(taker *Order) []Trade {
	var trades []Trade
	for taker.RemainingQuantity > 0 {
		bestPrice, ok := b.bestBid()
		if !ok {
			break
		}
		if taker.Type == Limit && taker.Price > bestPrice {
			break
		}
		lv := b.bids[bestPrice]
		trades = append(trades, b.crossLevel(taker, lv, Buy)...)
		if lv.empty() {
			delete(b.bids, lv.price)
		}
	}
	return trades
}

// crossLevel walks a price level head-to-tail (oldest resting order first),
// filling the taker until either the taker or the level is exhausted.
func (b *Book) crossLevel(taker *Order, lv *level, makerSide Side) []Trade {
	var trades []Trade
	for taker.RemainingQuantity > 0 && !lv.empty() {
		n := lv.head
		maker := n.order

		qty := taker.RemainingQuantity
		if maker.RemainingQuantity < qty {
			qty = maker.RemainingQuantity
		}

		trades = append(trades, Trade{
			Price:        lv.price,
			Quantity:     qty,
			MakerOrderID: maker.ID,
			TakerOrderID: taker.ID,
			Timestamp:    taker.Timestamp,
		})

		taker.RemainingQuantity -= qty
		maker.RemainingQuantity -= qty
		lv.totalVolume -= qty

		if maker.IsFilled() {
			lv.remove(n)
			delete(b.byID, maker.ID)
			releaseNode(n)
		}
	}
	return trades
}

func (b *Book) bestAsk() (uint64, bool) {
	for b.askHeap.Len() > 0 {
		p := b.askHeap[0]
		if lv, ok := b.asks[p]; ok && !lv.empty() {
			return p, true
		}
		heap.Pop(&b.askHeap)
	}
	return 0, false
}

func (b *Book) bestBid() (uint64, bool) {
	for b.bidHeap.Len() > 0 {
		p := b.bidHeap[0]
		if lv, ok := b.bids[p]; ok && !lv.empty() {
			return p, true
		}
		heap.Pop(&b.bidHeap)
	}
	return 0, false
}
