// Package reqctx carries a request id through context.Context so log lines
// for one inbound connection or Kafka batch can be correlated.
package reqctx

import (
	"context"

	"github.com/google/uuid"
)

type key string

const requestIDKey = key("request-id")

// WithRequestID returns a context carrying id. An empty id is replaced with
// a freshly generated one.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = uuid.NewString()
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the request id stored in ctx, or "" if none is present.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
