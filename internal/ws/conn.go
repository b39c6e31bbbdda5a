// Package ws wraps the realtime WebSocket transport behind a small interface
// so connection lifecycle logic can be tested with fake dialers.
package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	clienterrors "github.com/campusjam/campusjam-client/internal/errors"
)

// Wire events exchanged with the realtime endpoint.
const (
	// EventJoinChat is emitted by the client right after connecting,
	// carrying the user ID to join the personal channel.
	EventJoinChat = "join_chat"

	// EventReceiveMessage is pushed by the server with a message payload.
	EventReceiveMessage = "receive_message"
)

const (
	writeWait = 10 * time.Second
	pongWait  = 60 * time.Second
)

// PingInterval is how often callers should Ping to keep the read deadline
// fresh. Must be below pongWait.
const PingInterval = 54 * time.Second

// Envelope is the JSON frame carried over the socket.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Conn is a live realtime connection. ReadEnvelope must be called from a
// single goroutine; Emit and Ping are safe for concurrent use.
type Conn interface {
	Emit(event string, data any) error
	ReadEnvelope() (*Envelope, error)
	Ping() error
	Close() error
}

// DialFunc opens a realtime connection. Production uses Dial; tests inject
// fakes.
type DialFunc func(ctx context.Context, url string) (Conn, error)

// Dial connects to the realtime endpoint over a WebSocket. A rejected
// handshake surfaces as a classified StatusError so callers can decide
// whether reconnecting is worthwhile.
func Dial(ctx context.Context, url string) (Conn, error) {
	c, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		if resp != nil {
			return nil, clienterrors.New("dial realtime", resp.StatusCode)
		}
		return nil, err
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	_ = c.SetReadDeadline(time.Now().Add(pongWait))
	c.SetPongHandler(func(string) error {
		return c.SetReadDeadline(time.Now().Add(pongWait))
	})
	return &conn{ws: c}, nil
}

type conn struct {
	ws *websocket.Conn
	mu sync.Mutex // serializes writes
}

func (c *conn) Emit(event string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	frame, err := json.Marshal(Envelope{Event: event, Data: raw})
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteMessage(websocket.TextMessage, frame)
}

func (c *conn) ReadEnvelope() (*Envelope, error) {
	_, raw, err := c.ws.ReadMessage()
	if err != nil {
		return nil, err
	}
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

func (c *conn) Ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteMessage(websocket.PingMessage, nil)
}

func (c *conn) Close() error {
	c.mu.Lock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	_ = c.ws.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.mu.Unlock()
	return c.ws.Close()
}
