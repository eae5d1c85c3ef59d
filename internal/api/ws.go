package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"nhooyr.io/websocket"

	"github.com/goliatone/go-asrdeploy/pkg/demo"
)

const (
	pingInterval = 30 * time.Second
	writeTimeout = 5 * time.Second
	sendBuffer   = 16
)

// DemoStream serves the prototype transcript over a websocket. Every
// connection owns its own transcript, started on accept and stopped when the
// socket closes.
type DemoStream struct {
	options []demo.Option
	logger  *slog.Logger
	active  atomic.Int64
}

// NewDemoStream creates a stream handler. options tune every per-connection
// transcript.
func NewDemoStream(logger *slog.Logger, options ...demo.Option) *DemoStream {
	if logger == nil {
		logger = slog.Default()
	}
	return &DemoStream{
		options: append(options, demo.WithLogger(logger)),
		logger:  logger,
	}
}

// Active reports the number of open streams.
func (s *DemoStream) Active() int64 {
	return s.active.Load()
}

// HandleWS upgrades the request and streams transcript events as JSON text
// messages until either side closes.
func (s *DemoStream) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // allow any origin for a local tool
	})
	if err != nil {
		s.logger.Warn("ws accept failed", "error", err)
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	s.active.Add(1)
	defer s.active.Add(-1)

	// Clients never send data; CloseRead cancels ctx once the peer closes.
	ctx := conn.CloseRead(r.Context())

	send := make(chan []byte, sendBuffer)
	transcript := demo.New(func(ev demo.Event) {
		data, err := json.Marshal(ev)
		if err != nil {
			return
		}
		select {
		case send <- data:
		default:
			// client too slow, skip
		}
	}, s.options...)

	if err := transcript.Start(ctx); err != nil {
		s.logger.Warn("demo transcript start failed", "error", err)
		conn.Close(websocket.StatusInternalError, "demo unavailable")
		return
	}
	defer transcript.Stop()

	s.writePump(ctx, conn, send)
}

func (s *DemoStream) writePump(ctx context.Context, conn *websocket.Conn, send <-chan []byte) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.Ping(ctx); err != nil {
				return
			}
		case data := <-send:
			writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := conn.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				return
			}
		}
	}
}
