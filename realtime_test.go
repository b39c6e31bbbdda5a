package client

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	clienterrors "github.com/campusjam/campusjam-client/internal/errors"
	"github.com/campusjam/campusjam-client/internal/ws"
)

type fakeConn struct {
	in        chan *ws.Envelope
	closed    chan struct{}
	closeOnce sync.Once
	joins     chan<- string
}

func (c *fakeConn) Emit(event string, data any) error {
	if event == ws.EventJoinChat {
		if id, ok := data.(string); ok {
			c.joins <- id
		}
	}
	return nil
}

func (c *fakeConn) ReadEnvelope() (*ws.Envelope, error) {
	select {
	case env := <-c.in:
		return env, nil
	case <-c.closed:
		return nil, errors.New("connection closed")
	}
}

func (c *fakeConn) Ping() error { return nil }

func (c *fakeConn) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	return nil
}

func (c *fakeConn) isClosed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

type fakeDialer struct {
	mu    sync.Mutex
	conns []*fakeConn
	joins chan string
}

func newFakeDialer() *fakeDialer {
	return &fakeDialer{joins: make(chan string, 16)}
}

func (d *fakeDialer) dial(ctx context.Context, url string) (ws.Conn, error) {
	c := &fakeConn{
		in:     make(chan *ws.Envelope, 16),
		closed: make(chan struct{}),
		joins:  d.joins,
	}
	d.mu.Lock()
	d.conns = append(d.conns, c)
	d.mu.Unlock()
	return c, nil
}

func (d *fakeDialer) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.conns)
}

func (d *fakeDialer) conn(i int) *fakeConn {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.conns[i]
}

func (d *fakeDialer) waitJoin(t *testing.T, want string) {
	t.Helper()
	select {
	case got := <-d.joins:
		if got != want {
			t.Fatalf("joined as %q, want %q", got, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for join as %q", want)
	}
}

func TestRealtime_IdentityTransitions(t *testing.T) {
	t.Parallel()
	d := newFakeDialer()
	r := NewRealtime("ws://test/ws", WithRealtimeDialer(d.dial))
	defer r.Close()

	r.SetIdentity("u1")
	d.waitJoin(t, "u1")
	if d.count() != 1 {
		t.Fatalf("expected 1 connection, got %d", d.count())
	}

	// Same identity is a no-op.
	r.SetIdentity("u1")
	if d.count() != 1 {
		t.Fatalf("identity no-op must not redial, got %d connections", d.count())
	}

	// New identity tears down the old connection before opening a new one.
	r.SetIdentity("u2")
	d.waitJoin(t, "u2")
	if d.count() != 2 {
		t.Fatalf("expected 2 connections, got %d", d.count())
	}
	if !d.conn(0).isClosed() {
		t.Fatal("previous identity's connection must be closed")
	}
}

func TestRealtime_TeardownDoesNotReconnect(t *testing.T) {
	t.Parallel()
	d := newFakeDialer()
	r := NewRealtime("ws://test/ws", WithRealtimeDialer(d.dial))

	r.SetIdentity("u1")
	d.waitJoin(t, "u1")

	// Close waits for the connection loop to exit, so any reconnect would
	// have happened by the time it returns.
	r.Close()
	if !d.conn(0).isClosed() {
		t.Fatal("teardown must close the connection")
	}
	time.Sleep(20 * time.Millisecond)
	if d.count() != 1 {
		t.Fatalf("teardown must not reconnect, got %d connections", d.count())
	}
	if r.Connected() {
		t.Fatal("Connected must report false after teardown")
	}
}

func TestRealtime_DeliversMessages(t *testing.T) {
	t.Parallel()
	d := newFakeDialer()
	r := NewRealtime("ws://test/ws", WithRealtimeDialer(d.dial))
	defer r.Close()

	r.SetIdentity("u1")
	d.waitJoin(t, "u1")

	conn := d.conn(0)
	// Unknown events and malformed payloads are skipped, not fatal.
	conn.in <- &ws.Envelope{Event: "typing", Data: []byte(`{}`)}
	conn.in <- &ws.Envelope{Event: ws.EventReceiveMessage, Data: []byte(`{malformed`)}
	conn.in <- &ws.Envelope{Event: ws.EventReceiveMessage, Data: []byte(`{"_id":"m1","sender":"u2","content":"sup"}`)}

	select {
	case msg := <-r.Events():
		if msg.ID != "m1" || msg.Sender.ID != "u2" || msg.Content != "sup" {
			t.Fatalf("unexpected message: %+v", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message event")
	}
	select {
	case msg := <-r.Events():
		t.Fatalf("unexpected extra event: %+v", msg)
	default:
	}
}

func TestRealtime_BoundedReconnect(t *testing.T) {
	t.Parallel()
	var dials atomic.Int32
	dial := func(ctx context.Context, url string) (ws.Conn, error) {
		dials.Add(1)
		return nil, errors.New("connection refused")
	}

	r := NewRealtime("ws://test/ws", WithRealtimeDialer(dial), WithReconnectAttempts(2))
	r.baseBackoff = time.Millisecond
	r.maxBackoff = time.Millisecond

	r.SetIdentity("u1")

	// With a bound of 2 retries: the initial dial plus two more, then the
	// loop gives up until the next identity change.
	deadline := time.Now().Add(2 * time.Second)
	for dials.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(50 * time.Millisecond)
	if n := dials.Load(); n != 3 {
		t.Fatalf("expected exactly 3 dials, got %d", n)
	}
	if r.Connected() {
		t.Fatal("Connected must report false after giving up")
	}
	r.Close()
}

func TestRealtime_IrrecoverableHandshakeStopsRetrying(t *testing.T) {
	t.Parallel()
	var dials atomic.Int32
	dial := func(ctx context.Context, url string) (ws.Conn, error) {
		dials.Add(1)
		return nil, clienterrors.New("dial realtime", 401)
	}

	r := NewRealtime("ws://test/ws", WithRealtimeDialer(dial), WithReconnectAttempts(5))
	r.baseBackoff = time.Millisecond
	r.maxBackoff = time.Millisecond

	r.SetIdentity("u1")
	time.Sleep(50 * time.Millisecond)
	if n := dials.Load(); n != 1 {
		t.Fatalf("rejected handshake must not be retried, got %d dials", n)
	}
	r.Close()
}

func TestRealtime_BindFollowsAuthTransitions(t *testing.T) {
	t.Parallel()
	d := newFakeDialer()
	r := NewRealtime("ws://test/ws", WithRealtimeDialer(d.dial))
	defer r.Close()

	m := NewAuthManager(New("http://unused"), NewMemoryTokenStore(), zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.Bind(ctx, m)

	m.Login(User{ID: "u1"}, "tok-1")
	d.waitJoin(t, "u1")

	m.Logout()
	deadline := time.Now().Add(2 * time.Second)
	for !d.conn(0).isClosed() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if !d.conn(0).isClosed() {
		t.Fatal("logout must tear down the realtime connection")
	}
}
