package target

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/reconciler/pkg/fiber"
	"github.com/vango-dev/reconciler/pkg/protocol"
)

// Stream broadcasts every commit as a binary protocol frame to connected
// WebSocket clients. New clients first receive the latest snapshot of
// every live fiber, oldest commit first.
//
// Commit and Unmount never touch a socket: frames are queued per client
// and written by one goroutine per connection. A client whose queue is
// full is disconnected.
type Stream struct {
	mu       sync.Mutex
	clients  map[*streamClient]struct{}
	latest   map[uint64]*protocol.CommitRecord
	seq      uint64
	closed   bool
	upgrader websocket.Upgrader
	logger   *slog.Logger

	writeTimeout time.Duration
	sendBuffer   int
}

// streamClient is one connection and its outgoing frame queue. send is
// closed when the client is removed.
type streamClient struct {
	conn *websocket.Conn
	send chan []byte
}

// NewStream creates a stream target. A nil logger uses slog.Default().
func NewStream(logger *slog.Logger) *Stream {
	if logger == nil {
		logger = slog.Default()
	}
	return &Stream{
		clients: make(map[*streamClient]struct{}),
		latest:  make(map[uint64]*protocol.CommitRecord),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger:       logger,
		writeTimeout: 5 * time.Second,
		sendBuffer:   256,
	}
}

// ServeHTTP implements http.Handler.
func (s *Stream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.HandleWebSocket(w, r)
}

// HandleWebSocket upgrades the request and keeps the client registered
// until it disconnects.
func (s *Stream) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("stream upgrade failed", "error", err)
		return
	}

	c := s.register(conn)
	if c == nil {
		conn.Close()
		return
	}
	go s.writeLoop(c)

	// Clients only send control frames; reading drives ping/pong and close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	s.mu.Lock()
	s.removeLocked(c)
	s.mu.Unlock()
	conn.Close()
}

// register queues the current snapshots for conn and adds it to the
// client set. Both happen under the lock so no commit interleaves.
func (s *Stream) register(conn *websocket.Conn) *streamClient {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}

	recs := make([]*protocol.CommitRecord, 0, len(s.latest))
	for _, rec := range s.latest {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Seq < recs[j].Seq })

	c := &streamClient{
		conn: conn,
		send: make(chan []byte, len(recs)+s.sendBuffer),
	}
	for _, rec := range recs {
		c.send <- protocol.CommitFrame(rec).Encode()
	}
	s.clients[c] = struct{}{}
	return c
}

// writeLoop writes queued frames to the connection until the queue is
// closed or a write fails.
func (s *Stream) writeLoop(c *streamClient) {
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
		if err := c.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
			s.logger.Debug("stream write failed", "error", err)
			// Closing the connection ends the read loop, which removes c.
			c.conn.Close()
			for range c.send {
			}
			return
		}
	}
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	c.conn.Close()
}

// Open implements fiber.Target.
func (s *Stream) Open(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fiber.ErrRootClosed
	}
	return nil
}

// Commit implements fiber.Target.
func (s *Stream) Commit(_ context.Context, c fiber.Commit) error {
	rec := Record(c)
	data := protocol.CommitFrame(rec).Encode()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest[rec.Fiber] = rec
	if c.Seq > s.seq {
		s.seq = c.Seq
	}
	s.broadcast(data)
	return nil
}

// Unmount implements fiber.Unmounter.
func (s *Stream) Unmount(_ context.Context, id fiber.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.latest, uint64(id))
	data := protocol.UnmountFrame(&protocol.UnmountRecord{Seq: s.seq, Fiber: uint64(id)}).Encode()
	s.broadcast(data)
	return nil
}

// broadcast queues data for every client without blocking, dropping
// clients whose queue is full. Callers hold s.mu.
func (s *Stream) broadcast(data []byte) {
	for c := range s.clients {
		select {
		case c.send <- data:
		default:
			s.logger.Warn("stream client too slow, disconnecting",
				"queued", len(c.send))
			s.removeLocked(c)
		}
	}
}

// removeLocked drops c from the client set and closes its queue. The
// writer flushes what is queued and closes the connection. Callers hold
// s.mu.
func (s *Stream) removeLocked(c *streamClient) {
	if _, ok := s.clients[c]; !ok {
		return
	}
	delete(s.clients, c)
	close(c.send)
}

// ClientCount returns the number of connected clients.
func (s *Stream) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Close disconnects all clients after their queued frames are written.
// Later connections are refused.
func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for c := range s.clients {
		s.removeLocked(c)
	}
	return nil
}
