// Package snapshot checkpoints and restores a book.Book's resting orders
// to Redis, so a restarted engine doesn't replay every Kafka order message
// from the beginning of the topic.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/muhammadchandra19/matchcore/internal/book"
	"github.com/muhammadchandra19/matchcore/pkg/errors"
	"github.com/muhammadchandra19/matchcore/pkg/logger"
	"github.com/muhammadchandra19/matchcore/pkg/redis"
)

// Snapshot is the serialized form of a book's resting state at a point in
// time, keyed against the Kafka offset it was taken at so a restart knows
// where to resume consuming orders.
type Snapshot struct {
	Pair    string       `json:"pair"`
	Offset  int64        `json:"offset"`
	TakenAt time.Time    `json:"takenAt"`
	Orders  []book.Order `json:"orders"`
}

// Store persists and restores Snapshots for one instrument in Redis.
type Store struct {
	pair        string
	logger      *logger.Logger
	redisclient redis.Client
}

// NewStore constructs a Store for pair backed by the given Redis client.
func NewStore(redisclient redis.Client, pair string, logger *logger.Logger) *Store {
	return &Store{
		pair:        pair,
		redisclient: redisclient,
		logger:      logger,
	}
}

// Store serializes snap and writes it to Redis under this instrument's key.
func (s *Store) Store(ctx context.Context, snap *Snapshot) error {
	s.logger.InfoContext(ctx, fmt.Sprintf("storing snapshot for pair %s", s.pair),
		logger.NewField("pair", s.pair), logger.NewField("offset", snap.Offset))

	buf, err := json.Marshal(snap)
	if err != nil {
		s.logger.ErrorContext(ctx, errors.NewTracer("snapshot marshal failed").Wrap(err),
			logger.NewField("pair", s.pair))
		return errors.NewTracer(string(errors.SnapshotMarshalError)).Wrap(err)
	}

	if err := s.redisclient.Set(ctx, s.pair, buf, 0); err != nil {
		s.logger.ErrorContext(ctx, errors.TracerFromError(err), logger.NewField("pair", s.pair))
		return err
	}

	s.logger.InfoContext(ctx, fmt.Sprintf("snapshot stored for pair %s", s.pair),
		logger.NewField("pair", s.pair), logger.NewField("offset", snap.Offset))
	return nil
}

// Load reads and deserializes the snapshot for this instrument. Returns
// (nil, nil) if no snapshot has ever been stored.
func (s *Store) Load(ctx context.Context) (*Snapshot, error) {
	data, err := s.redisclient.Get(ctx, s.pair)
	if err != nil {
		s.logger.ErrorContext(ctx, errors.TracerFromError(err), logger.NewField("pair", s.pair))
		return nil, err
	}
	if data == "" {
		s.logger.WarnContext(ctx, fmt.Sprintf("no snapshot found for pair %s", s.pair),
			logger.NewField("pair", s.pair))
		return nil, nil
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		s.logger.ErrorContext(ctx, errors.NewTracer("snapshot unmarshal failed").Wrap(err),
			logger.NewField("pair", s.pair))
		return nil, errors.NewTracer(string(errors.SnapshotUnmarshalError)).Wrap(err)
	}
	return &snap, nil
}

// Take builds a Snapshot from the current state of b at the given offset.
func Take(pair string, offset int64, b *book.Book) *Snapshot {
	return &Snapshot{
		Pair:    pair,
		Offset:  offset,
		TakenAt: time.Now(),
		Orders:  b.RestingOrders(),
	}
}

// Restore replays every order in snap.Orders back into b, rebuilding the
// resting state it was taken from. b must be empty; Restore does not clear
// existing state.
func Restore(b *book.Book, snap *Snapshot) {
	for i := range snap.Orders {
		order := snap.Orders[i]
		b.Add(&order)
	}
}
