package wsgateway

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/muhammadchandra19/matchcore/internal/book"
	"github.com/muhammadchandra19/matchcore/internal/dispatcher"
	"github.com/muhammadchandra19/matchcore/pkg/errors"
	"github.com/muhammadchandra19/matchcore/pkg/logger"
)

// Server serves the reference websocket endpoint: one connection per
// client, commands in, snapshot/book/trade frames out.
type Server struct {
	hub        *Hub
	book       *book.Book
	dispatcher *dispatcher.Dispatcher
	logger     *logger.Logger

	nextOrderID atomic.Uint64

	WriteTimeout time.Duration
}

// NewServer wires a Server around b/d. b is read (never mutated) directly
// from ServeHTTP to build the initial snapshot frame; every mutation still
// goes through d so the dispatcher's single worker remains the only
// mutator, per the concurrency model.
func NewServer(hub *Hub, b *book.Book, d *dispatcher.Dispatcher, log *logger.Logger) *Server {
	s := &Server{
		hub:          hub,
		book:         b,
		dispatcher:   d,
		logger:       log,
		WriteTimeout: 2 * time.Second,
	}
	s.nextOrderID.Store(1)
	return s
}

// PublishBookUpdate encodes the current book state as a "book" frame and
// broadcasts it. Intended as a dispatcher.BookUpdateCallback.
func (s *Server) PublishBookUpdate() {
	frame, err := json.Marshal(newBookFrame(s.book))
	if err != nil {
		s.logger.Error(errors.NewTracer("encode book frame failed").Wrap(err))
		return
	}
	s.hub.Publish(frame)
}

// PublishTrades encodes each trade as a "trade" frame and broadcasts it.
// Intended as a dispatcher.TradeCallback.
func (s *Server) PublishTrades(trades []book.Trade) {
	for _, t := range trades {
		frame, err := json.Marshal(newTradeFrame(t))
		if err != nil {
			s.logger.Error(errors.NewTracer("encode trade frame failed").Wrap(err))
			continue
		}
		s.hub.Publish(frame)
	}
}

// ServeHTTP upgrades the request to a websocket connection, sends the
// initial snapshot, then runs a read loop (decoding inbound commands) and
// a write loop (draining this connection's hub subscription) until either
// side closes.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close(websocket.StatusInternalError, "closing")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	snap, err := json.Marshal(newSnapshotFrame(s.book))
	if err != nil {
		s.logger.Error(errors.NewTracer("encode snapshot frame failed").Wrap(err))
		conn.Close(websocket.StatusInternalError, "snapshot encode failed")
		return
	}
	if err := conn.Write(ctx, websocket.MessageText, snap); err != nil {
		return
	}

	sub := s.hub.subscribe()
	defer s.hub.unsubscribe(sub)

	go s.readLoop(ctx, cancel, conn)
	s.writeLoop(ctx, conn, sub)
}

func (s *Server) readLoop(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn) {
	defer cancel()
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}

		var cmd inboundCommand
		if err := json.Unmarshal(data, &cmd); err != nil {
			s.logger.WarnContext(ctx, "rejected malformed command frame")
			continue
		}

		switch cmd.Type {
		case "add":
			id := book.OrderID(s.nextOrderID.Add(1) - 1)
			order, ok := cmd.toOrder(id)
			if !ok {
				s.logger.WarnContext(ctx, "rejected malformed add command")
				continue
			}
			s.dispatcher.SubmitAdd(order)
		case "cancel":
			s.dispatcher.SubmitCancel(book.OrderID(cmd.OrderID))
		default:
			s.logger.WarnContext(ctx, "unknown command type", logger.NewField("type", cmd.Type))
		}
	}
}

func (s *Server) writeLoop(ctx context.Context, conn *websocket.Conn, sub *subscriber) {
	for {
		select {
		case <-ctx.Done():
			return
		case frame, ok := <-sub.ch:
			if !ok {
				return
			}
			wctx, cancel := context.WithTimeout(ctx, s.WriteTimeout)
			err := conn.Write(wctx, websocket.MessageText, frame)
			cancel()
			if err != nil {
				return
			}
		}
	}
}
