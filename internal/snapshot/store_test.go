package snapshot

import (
	"context"
	"testing"
	"time"

	"github.com/muhammadchandra19/matchcore/internal/book"
	"github.com/muhammadchandra19/matchcore/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis is an in-memory stand-in for pkg/redis.Client, exercising the
// Get/Set contract Store relies on without a live Redis instance.
type fakeRedis struct {
	data map[string]string
}

func newFakeRedis() *fakeRedis { return &fakeRedis{data: make(map[string]string)} }

func (f *fakeRedis) Connect(ctx context.Context) error    { return nil }
func (f *fakeRedis) Disconnect(ctx context.Context) error { return nil }
func (f *fakeRedis) Ping(ctx context.Context) error       { return nil }
func (f *fakeRedis) Reconnect(ctx context.Context) bool   { return true }

func (f *fakeRedis) Get(ctx context.Context, key string) (string, error) {
	return f.data[key], nil
}

func (f *fakeRedis) Set(ctx context.Context, key string, value any, _ time.Duration) error {
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	return nil
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) (int64, error) {
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return n, nil
}

func newTestStore(t *testing.T) (*Store, *fakeRedis) {
	t.Helper()
	log, err := logger.NewLogger()
	require.NoError(t, err)
	fr := newFakeRedis()
	return NewStore(fr, "BTC-USD", log), fr
}

func TestStoreRoundTripsSnapshot(t *testing.T) {
	store, _ := newTestStore(t)
	b := book.New()
	b.Add(&book.Order{ID: 1, Side: book.Buy, Type: book.Limit, Price: 100, InitialQuantity: 5, RemainingQuantity: 5, Timestamp: time.Now()})
	b.Add(&book.Order{ID: 2, Side: book.Sell, Type: book.Limit, Price: 110, InitialQuantity: 3, RemainingQuantity: 3, Timestamp: time.Now()})

	snap := Take("BTC-USD", 42, b)
	require.NoError(t, store.Store(context.Background(), snap))

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "BTC-USD", loaded.Pair)
	assert.Equal(t, int64(42), loaded.Offset)
	assert.Len(t, loaded.Orders, 2)
}

func TestLoadReturnsNilWhenNothingStored(t *testing.T) {
	store, _ := newTestStore(t)
	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRestoreRebuildsRestingState(t *testing.T) {
	original := book.New()
	original.Add(&book.Order{ID: 1, Side: book.Buy, Type: book.Limit, Price: 100, InitialQuantity: 5, RemainingQuantity: 5, Timestamp: time.Now()})
	original.Add(&book.Order{ID: 2, Side: book.Buy, Type: book.Limit, Price: 100, InitialQuantity: 3, RemainingQuantity: 3, Timestamp: time.Now()})

	snap := Take("BTC-USD", 1, original)

	restored := book.New()
	Restore(restored, snap)

	bids := restored.Bids()
	require.Len(t, bids, 1)
	assert.Equal(t, uint64(100), bids[0].Price)
	assert.Equal(t, uint64(8), bids[0].TotalVolume)

	assert.True(t, restored.Cancel(1))
	assert.True(t, restored.Cancel(2))
}
