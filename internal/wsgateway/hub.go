// Package wsgateway is the reference transport: a websocket endpoint that
// accepts the JSON command contract from spec.md §6 and streams back
// snapshot/book/trade frames. Order ids are assigned here from a monotonic
// counter starting at 1 — the core never assigns them itself.
package wsgateway

import "sync"

// subscriber is one connected client's outbound frame queue. Publish never
// blocks: a slow client has frames dropped rather than stalling the
// dispatcher's worker goroutine that triggers the publish.
type subscriber struct {
	ch chan []byte
}

// Hub fans out book/trade frames to every connected client.
type Hub struct {
	mu    sync.RWMutex
	subs  map[*subscriber]struct{}
	qsize int
}

// NewHub returns a Hub whose subscribers buffer up to qsize frames before
// frames start being dropped.
func NewHub(qsize int) *Hub {
	return &Hub{subs: make(map[*subscriber]struct{}), qsize: qsize}
}

func (h *Hub) subscribe() *subscriber {
	s := &subscriber{ch: make(chan []byte, h.qsize)}
	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()
	return s
}

func (h *Hub) unsubscribe(s *subscriber) {
	h.mu.Lock()
	delete(h.subs, s)
	h.mu.Unlock()
	close(s.ch)
}

// Publish broadcasts frame to every current subscriber, dropping it for
// any subscriber whose queue is full.
func (h *Hub) Publish(frame []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.subs {
		select {
		case s.ch <- frame:
		default:
		}
	}
}
