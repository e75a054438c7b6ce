package wsgateway

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/muhammadchandra19/matchcore/internal/book"
	"github.com/muhammadchandra19/matchcore/internal/dispatcher"
	"github.com/muhammadchandra19/matchcore/pkg/logger"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *dispatcher.Dispatcher) {
	t.Helper()
	log, err := logger.NewLogger()
	require.NoError(t, err)

	b := book.New()
	d := dispatcher.New(b)
	hub := NewHub(16)
	srv := NewServer(hub, b, d, log)
	d.SetBookUpdateCallback(srv.PublishBookUpdate)
	d.SetTradeCallback(srv.PublishTrades)
	d.Start()
	t.Cleanup(d.Stop)

	return httptest.NewServer(srv), d
}

func dial(t *testing.T, httpURL string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(httpURL, "http")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	require.NoError(t, err)
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, data, err := conn.Read(ctx)
	require.NoError(t, err)
	var frame map[string]any
	require.NoError(t, json.Unmarshal(data, &frame))
	return frame
}

func TestServeHTTPSendsSnapshotOnConnect(t *testing.T) {
	ts, _ := newTestServer(t)
	defer ts.Close()

	conn := dial(t, ts.URL)
	defer conn.Close(websocket.StatusNormalClosure, "")

	frame := readFrame(t, conn)
	require.Equal(t, "snapshot", frame["type"])
}

func TestServeHTTPBroadcastsBookFrameAfterAdd(t *testing.T) {
	ts, _ := newTestServer(t)
	defer ts.Close()

	conn := dial(t, ts.URL)
	defer conn.Close(websocket.StatusNormalClosure, "")
	readFrame(t, conn) // snapshot

	add := inboundCommand{Type: "add", Side: "buy", Price: 100, Qty: 5}
	payload, err := json.Marshal(add)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, conn.Write(ctx, websocket.MessageText, payload))

	frame := readFrame(t, conn)
	require.Equal(t, "book", frame["type"])
	bids := frame["bids"].([]any)
	require.Len(t, bids, 1)
}
