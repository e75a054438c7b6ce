package wsgateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishFansOutToAllSubscribers(t *testing.T) {
	h := NewHub(4)
	a := h.subscribe()
	b := h.subscribe()
	defer h.unsubscribe(a)
	defer h.unsubscribe(b)

	h.Publish([]byte("hello"))

	assert.Equal(t, []byte("hello"), <-a.ch)
	assert.Equal(t, []byte("hello"), <-b.ch)
}

func TestPublishDropsForFullSubscriberQueue(t *testing.T) {
	h := NewHub(1)
	s := h.subscribe()
	defer h.unsubscribe(s)

	h.Publish([]byte("first"))
	h.Publish([]byte("second")) // dropped: queue of size 1 is already full

	assert.Equal(t, []byte("first"), <-s.ch)
	assert.Len(t, s.ch, 0)
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	h := NewHub(1)
	s := h.subscribe()
	h.unsubscribe(s)

	_, ok := <-s.ch
	assert.False(t, ok)
}
