package client

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	clienterrors "github.com/campusjam/campusjam-client/internal/errors"
	"github.com/campusjam/campusjam-client/internal/ws"
)

// DialFunc opens a realtime connection; production code uses the default
// WebSocket dialer, tests inject fakes.
type DialFunc = ws.DialFunc

// Realtime owns the process's single realtime connection. Its lifecycle is
// keyed strictly on the authenticated identity: each distinct non-empty
// identity tears down any existing connection and opens a new one; the empty
// identity tears down without reconnecting. At most one connection is live
// at any time.
//
// After a transient failure the manager reconnects a bounded number of times
// for the same identity; beyond the bound the connection stays down until
// the next identity transition.
type Realtime struct {
	url         string
	dial        DialFunc
	log         zerolog.Logger
	maxAttempts int
	baseBackoff time.Duration
	maxBackoff  time.Duration
	events      chan Message

	connected atomic.Bool

	// lifeMu serializes identity transitions, including waiting for the
	// previous connection loop to exit.
	lifeMu   sync.Mutex
	identity string
	cancel   context.CancelFunc
	done     chan struct{}
}

// RealtimeOption configures a Realtime during construction.
type RealtimeOption func(*Realtime) error

// WithRealtimeDialer replaces the WebSocket dialer.
func WithRealtimeDialer(d DialFunc) RealtimeOption {
	return func(r *Realtime) error {
		if d == nil {
			return fmt.Errorf("dialer must not be nil")
		}
		r.dial = d
		return nil
	}
}

// WithReconnectAttempts bounds automatic reconnection per identity. Must be
// at least zero; zero disables reconnection entirely.
func WithReconnectAttempts(n int) RealtimeOption {
	return func(r *Realtime) error {
		if n < 0 {
			return fmt.Errorf("reconnect attempts must be >= 0")
		}
		r.maxAttempts = n
		return nil
	}
}

// WithRealtimeLogger sets the manager's logger.
func WithRealtimeLogger(l zerolog.Logger) RealtimeOption {
	return func(r *Realtime) error {
		r.log = l
		return nil
	}
}

// NewRealtime constructs a manager for the given socket URL (see
// SocketURLFor). No connection is opened until SetIdentity or Bind.
func NewRealtime(socketURL string, opts ...RealtimeOption) *Realtime {
	r := &Realtime{
		url:         socketURL,
		dial:        ws.Dial,
		log:         zerolog.Nop(),
		maxAttempts: 5,
		baseBackoff: time.Second,
		maxBackoff:  30 * time.Second,
		events:      make(chan Message, 64),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			panic(err)
		}
	}
	r.log = r.log.With().Str("component", "realtime").Logger()
	return r
}

// Events delivers inbound message payloads pushed to the user's personal
// channel. The channel is never closed; consumers select against their own
// context.
func (r *Realtime) Events() <-chan Message { return r.events }

// Connected reports whether a connection is currently open and joined.
func (r *Realtime) Connected() bool { return r.connected.Load() }

// SetIdentity drives the connection state machine. A no-op when the identity
// is unchanged; otherwise the existing connection (if any) is torn down
// first, and a new one is opened for a non-empty identity.
func (r *Realtime) SetIdentity(userID string) {
	r.lifeMu.Lock()
	defer r.lifeMu.Unlock()

	if userID == r.identity {
		return
	}

	if r.cancel != nil {
		r.cancel()
		<-r.done
		r.cancel, r.done = nil, nil
	}
	r.identity = userID
	if userID == "" {
		r.log.Debug().Msg("identity cleared, staying disconnected")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	r.cancel, r.done = cancel, done
	go r.run(ctx, userID, done)
}

// Close tears down any live connection. Equivalent to an identity transition
// to empty.
func (r *Realtime) Close() { r.SetIdentity("") }

// Bind subscribes the manager to auth transitions: authenticated sessions
// map to their user ID, everything else to the empty identity. Returns once
// the watcher goroutine is running.
func (r *Realtime) Bind(ctx context.Context, auth *AuthManager) {
	ch := auth.Subscribe()
	go func() {
		for {
			select {
			case <-ctx.Done():
				r.Close()
				return
			case s := <-ch:
				switch {
				case s.Status == AuthAuthenticated && s.User != nil:
					r.SetIdentity(s.User.ID)
				case s.Status == AuthAnonymous:
					r.SetIdentity("")
				}
			}
		}
	}()
}

// run is the per-identity connection loop. It exits on teardown, on an
// irrecoverable handshake rejection, or when the reconnection bound is
// exhausted.
func (r *Realtime) run(ctx context.Context, userID string, done chan struct{}) {
	defer close(done)
	defer r.connected.Store(false)

	attempts := 0
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = r.baseBackoff
	exp.Multiplier = 2
	exp.MaxInterval = r.maxBackoff
	exp.Reset()

	for {
		established, err := r.connectOnce(ctx, userID)
		if ctx.Err() != nil {
			return
		}
		if err != nil && clienterrors.IsIrrecoverable(err) {
			r.log.Error().Err(err).Str("user_id", userID).Msg("realtime connection rejected, not retrying")
			return
		}
		if established {
			attempts = 0
			exp.Reset()
		}

		attempts++
		if attempts > r.maxAttempts {
			r.log.Warn().Str("user_id", userID).Int("attempts", attempts-1).Msg("reconnection bound exhausted, staying down until next identity change")
			return
		}
		realtimeReconnectsTotal.Inc()
		r.log.Debug().Err(err).Int("attempt", attempts).Msg("reconnecting")

		select {
		case <-time.After(exp.NextBackOff()):
		case <-ctx.Done():
			return
		}
	}
}

// connectOnce dials, joins the personal channel, and pumps events until the
// connection drops. established reports whether the join succeeded, which
// resets the reconnection budget.
func (r *Realtime) connectOnce(ctx context.Context, userID string) (established bool, err error) {
	conn, err := r.dial(ctx, r.url)
	if err != nil {
		return false, err
	}
	defer func() { _ = conn.Close() }()

	// Join only after the connection reports itself open, so server pushes
	// addressed to this user reach this connection.
	if err := conn.Emit(ws.EventJoinChat, userID); err != nil {
		return false, err
	}
	r.log.Info().Str("user_id", userID).Msg("realtime connected")
	r.connected.Store(true)
	defer r.connected.Store(false)

	err = r.pump(ctx, conn)
	r.log.Info().Err(err).Str("user_id", userID).Msg("realtime disconnected")
	return true, err
}

func (r *Realtime) pump(ctx context.Context, conn ws.Conn) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(ws.PingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := conn.Ping(); err != nil {
					return
				}
			case <-ctx.Done():
				// Unblock the read below.
				_ = conn.Close()
				return
			case <-stop:
				return
			}
		}
	}()

	for {
		env, err := conn.ReadEnvelope()
		if err != nil {
			return err
		}
		if env.Event != ws.EventReceiveMessage {
			continue
		}
		var msg Message
		if err := json.Unmarshal(env.Data, &msg); err != nil {
			r.log.Warn().Err(err).Msg("malformed realtime message, skipping")
			continue
		}
		realtimeMessagesTotal.Inc()
		select {
		case r.events <- msg:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
