package book

import "sync"

// level is the FIFO queue of resting orders at one price. Orders are kept
// in an intrusive doubly-linked list so cancellation never shifts a
// neighboring order's position; only the two adjacent links are rewritten.
type level struct {
	price       uint64
	totalVolume uint64
	head, tail  *orderNode
	size        int
}

// orderNode is the order index's locator: the stable handle a cancel looks
// up by order id and unlinks in O(1), with no positions to renumber.
type orderNode struct {
	prev, next *orderNode
	order      *Order
	lv         *level
	side       Side
}

var orderNodePool = sync.Pool{
	New: func() interface{} { return new(orderNode) },
}

func acquireNode(order *Order, lv *level, side Side) *orderNode {
	n := orderNodePool.Get().(*orderNode)
	n.prev, n.next = nil, nil
	n.order = order
	n.lv = lv
	n.side = side
	return n
}

func releaseNode(n *orderNode) {
	n.prev, n.next = nil, nil
	n.order = nil
	n.lv = nil
	orderNodePool.Put(n)
}

func (l *level) pushBack(n *orderNode) {
	n.prev, n.next = l.tail, nil
	if l.tail != nil {
		l.tail.next = n
	} else {
		l.head = n
	}
	l.tail = n
	l.size++
	l.totalVolume += n.order.RemainingQuantity
}

func (l *level) remove(n *orderNode) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev, n.next = nil, nil
	l.size--
}

func (l *level) empty() bool { return l.size == 0 }
