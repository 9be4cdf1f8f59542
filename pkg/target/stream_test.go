package target

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/reconciler/pkg/fiber"
	"github.com/vango-dev/reconciler/pkg/protocol"
	"github.com/vango-dev/reconciler/pkg/vdom"
)

func dialStream(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) *protocol.Frame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	mt, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error = %v", err)
	}
	if mt != websocket.BinaryMessage {
		t.Fatalf("message type = %d, want binary", mt)
	}
	f, err := protocol.DecodeFrame(data)
	if err != nil {
		t.Fatalf("DecodeFrame() error = %v", err)
	}
	return f
}

func waitClients(t *testing.T, s *Stream, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for s.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("ClientCount() = %d, want %d", s.ClientCount(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestStreamReplaysAndBroadcasts(t *testing.T) {
	s := NewStream(quietLogger())
	srv := httptest.NewServer(s)
	defer srv.Close()
	defer s.Close()

	r := mountDemo(t, s)

	conn := dialStream(t, srv)
	var seqs []uint64
	for i := 0; i < 3; i++ {
		f := readFrame(t, conn)
		if f.Type != protocol.FrameCommit {
			t.Fatalf("replay frame type = %v, want commit", f.Type)
		}
		rec, err := protocol.DecodeCommit(protocol.NewDecoder(f.Payload))
		if err != nil {
			t.Fatalf("DecodeCommit() error = %v", err)
		}
		if rec.Parent == 0 && !f.Flags.Has(protocol.FlagRoot) {
			t.Error("root commit without FlagRoot")
		}
		seqs = append(seqs, rec.Seq)
	}
	if seqs[0] > seqs[1] || seqs[1] > seqs[2] {
		t.Errorf("replay order = %v, want ascending", seqs)
	}
	waitClients(t, s, 1)

	click(t, r, "a")
	f := readFrame(t, conn)
	rec, err := protocol.DecodeCommit(protocol.NewDecoder(f.Payload))
	if err != nil {
		t.Fatalf("DecodeCommit() error = %v", err)
	}
	if rec.Seq != 4 || rec.Component != "Counter" {
		t.Errorf("broadcast record = seq %d %q, want seq 4 Counter", rec.Seq, rec.Component)
	}

	if err := r.Unmount(); err != nil {
		t.Fatalf("Unmount() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		f := readFrame(t, conn)
		if f.Type != protocol.FrameUnmount {
			t.Fatalf("frame type = %v, want unmount", f.Type)
		}
		u, err := protocol.DecodeUnmount(f.Payload)
		if err != nil {
			t.Fatalf("DecodeUnmount() error = %v", err)
		}
		if u.Seq != 4 {
			t.Errorf("unmount Seq = %d, want 4", u.Seq)
		}
	}
}

func TestStreamClose(t *testing.T) {
	s := NewStream(quietLogger())
	srv := httptest.NewServer(s)
	defer srv.Close()

	conn := dialStream(t, srv)
	waitClients(t, s, 1)

	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if s.ClientCount() != 0 {
		t.Errorf("ClientCount() after close = %d", s.ClientCount())
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("read after close succeeded")
	}
	if err := s.Open(context.Background()); err == nil {
		t.Error("Open() after close succeeded")
	}
}

func TestStreamDropsSlowClient(t *testing.T) {
	s := NewStream(quietLogger())
	s.sendBuffer = 1

	// No writer runs for this client, so its queue never drains.
	c := s.register(nil)
	if c == nil {
		t.Fatal("register() refused client")
	}

	r := fiber.NewRoot(s, fiber.WithLogger(quietLogger()))
	done := make(chan error, 1)
	go func() {
		done <- r.Mount(vdom.Div(counter.El("a"), counter.El("b")))
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Mount() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("commits blocked on a stalled client")
	}

	if s.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d, want slow client dropped", s.ClientCount())
	}
	queued := 0
	for range c.send {
		queued++
	}
	if queued != 1 {
		t.Errorf("queued frames = %d, want 1", queued)
	}
}
