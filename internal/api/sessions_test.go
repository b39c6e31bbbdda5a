package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campusjam/campusjam-client/internal/types"
)

func TestListSessions_Variants(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		call func(ctx context.Context, c *http.Client, base string) ([]types.Session, error)
		path string
	}{
		{"all", ListSessions, "/api/sessions"},
		{"upcoming", ListUpcomingSessions, "/api/sessions/upcoming"},
		{"active", ListActiveSessions, "/api/sessions/active"},
		{"past", ListPastSessions, "/api/sessions/past"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != tc.path {
					t.Fatalf("unexpected path: %s", r.URL.Path)
				}
				_ = json.NewEncoder(w).Encode([]types.Session{{ID: "s1", Title: "Acoustic Night"}})
			}))
			defer srv.Close()

			sessions, err := tc.call(context.Background(), srv.Client(), srv.URL)
			if err != nil {
				t.Fatalf("%s error: %v", tc.name, err)
			}
			if len(sessions) != 1 || sessions[0].ID != "s1" {
				t.Fatalf("unexpected sessions: %+v", sessions)
			}
		})
	}
}

func TestGetSession_NotFound(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Session not found"}`))
	}))
	defer srv.Close()

	_, err := GetSession(context.Background(), srv.Client(), srv.URL, "missing")
	if !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddParticipant_Conflict(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"Already a participant"}`))
	}))
	defer srv.Close()

	_, err := AddParticipant(context.Background(), srv.Client(), srv.URL, "s1", "u1")
	if !errors.Is(err, types.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestAddParticipant_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/sessions/s1/participants" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var got types.AddParticipantRequest
		_ = json.NewDecoder(r.Body).Decode(&got)
		if got.UserID != "u1" {
			t.Fatalf("unexpected userId: %s", got.UserID)
		}
		_ = json.NewEncoder(w).Encode(types.ParticipantsResponse{Attendees: []string{"u0", "u1"}})
	}))
	defer srv.Close()

	attendees, err := AddParticipant(context.Background(), srv.Client(), srv.URL, "s1", "u1")
	if err != nil {
		t.Fatalf("AddParticipant error: %v", err)
	}
	if len(attendees) != 2 || attendees[1] != "u1" {
		t.Fatalf("unexpected attendees: %v", attendees)
	}
}

func TestRemoveParticipant_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/sessions/s1/participants/u1" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(types.ParticipantsResponse{Attendees: []string{"u0"}})
	}))
	defer srv.Close()

	attendees, err := RemoveParticipant(context.Background(), srv.Client(), srv.URL, "s1", "u1")
	if err != nil {
		t.Fatalf("RemoveParticipant error: %v", err)
	}
	if len(attendees) != 1 || attendees[0] != "u0" {
		t.Fatalf("unexpected attendees: %v", attendees)
	}
}

func TestCreateSession_InputValidation(t *testing.T) {
	t.Parallel()
	dummy := httptest.NewServer(http.NotFoundHandler())
	defer dummy.Close()
	if _, err := CreateSession(context.Background(), dummy.Client(), dummy.URL, types.CreateSessionRequest{}); err == nil {
		t.Fatal("expected validation error for missing title")
	}
}

func TestDeleteSession_NoContent(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Fatalf("expected DELETE, got %s", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	if err := DeleteSession(context.Background(), srv.Client(), srv.URL, "s1"); err != nil {
		t.Fatalf("DeleteSession error: %v", err)
	}
}

func TestListSessions_CanceledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ListSessions(ctx, http.DefaultClient, "http://127.0.0.1:0"); err == nil {
		t.Fatal("expected error for canceled context")
	}
}
