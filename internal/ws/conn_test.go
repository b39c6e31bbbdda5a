package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	clienterrors "github.com/campusjam/campusjam-client/internal/errors"
	"github.com/campusjam/campusjam-client/internal/types"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestDial_EmitAndRead(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer func() { _ = c.Close() }()

		// Expect a join frame, then echo a message push back.
		_, raw, err := c.ReadMessage()
		if err != nil {
			t.Errorf("server read: %v", err)
			return
		}
		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Errorf("server decode: %v", err)
			return
		}
		if env.Event != EventJoinChat {
			t.Errorf("expected %s, got %s", EventJoinChat, env.Event)
			return
		}
		var userID string
		_ = json.Unmarshal(env.Data, &userID)

		push, _ := json.Marshal(Envelope{
			Event: EventReceiveMessage,
			Data:  json.RawMessage(`{"_id":"m1","sender":"` + userID + `","content":"hey"}`),
		})
		_ = c.WriteMessage(websocket.TextMessage, push)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, err := Dial(ctx, wsURL(srv))
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	if err := conn.Emit(EventJoinChat, "u1"); err != nil {
		t.Fatalf("Emit: %v", err)
	}

	env, err := conn.ReadEnvelope()
	if err != nil {
		t.Fatalf("ReadEnvelope: %v", err)
	}
	if env.Event != EventReceiveMessage {
		t.Fatalf("unexpected event: %s", env.Event)
	}
	var msg types.Message
	if err := json.Unmarshal(env.Data, &msg); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if msg.ID != "m1" || msg.Sender.ID != "u1" {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

func TestDial_RejectedHandshakeIsClassified(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := Dial(ctx, wsURL(srv))
	if err == nil {
		t.Fatal("expected handshake error")
	}
	if !clienterrors.IsIrrecoverable(err) {
		t.Fatalf("403 handshake should be irrecoverable, got %v", err)
	}
	if !errors.Is(err, types.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized in chain, got %v", err)
	}
}

func TestDial_UnreachableHost(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := Dial(ctx, "ws://127.0.0.1:1")
	if err == nil {
		t.Fatal("expected dial error")
	}
	if clienterrors.IsIrrecoverable(err) {
		t.Fatalf("network failure must stay retryable, got %v", err)
	}
}
