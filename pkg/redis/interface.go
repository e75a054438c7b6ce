// Package redis wraps github.com/redis/go-redis/v9 with the structured
// error/logging conventions of the rest of the ambient stack. Trimmed to
// the Get/Set/Del/Reconnect surface the snapshot store actually needs;
// hash/sorted-set/stream/pub-sub operations from the teacher's broader
// wrapper have no caller in this domain.
package redis

import (
	"context"
	"time"
)

// Client is the subset of Redis operations used by internal/snapshot.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=redis_mock
type Client interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	Ping(ctx context.Context) error
	Reconnect(ctx context.Context) bool

	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Del(ctx context.Context, keys ...string) (int64, error)
}
