package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campusjam/campusjam-client/internal/types"
)

func TestListNotifications_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/notifications" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode([]types.Notification{
			{ID: "n1", Message: "Riley invited you to a session", IsRead: false},
			{ID: "n2", Message: "New follower", IsRead: true},
		})
	}))
	defer srv.Close()

	list, err := ListNotifications(context.Background(), srv.Client(), srv.URL)
	if err != nil {
		t.Fatalf("ListNotifications error: %v", err)
	}
	if len(list) != 2 || list[0].ID != "n1" {
		t.Fatalf("unexpected notifications: %+v", list)
	}
}

func TestMarkNotificationRead_PathAndMethod(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/notifications/n1/read" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	}))
	defer srv.Close()

	if err := MarkNotificationRead(context.Background(), srv.Client(), srv.URL, "n1"); err != nil {
		t.Fatalf("MarkNotificationRead error: %v", err)
	}
}

func TestMarkNotificationRead_InputValidation(t *testing.T) {
	t.Parallel()
	dummy := httptest.NewServer(http.NotFoundHandler())
	defer dummy.Close()
	if err := MarkNotificationRead(context.Background(), dummy.Client(), dummy.URL, ""); err == nil {
		t.Fatal("expected validation error, got nil")
	}
}

func TestMarkAllNotificationsRead_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/notifications/read-all" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	}))
	defer srv.Close()

	if err := MarkAllNotificationsRead(context.Background(), srv.Client(), srv.URL); err != nil {
		t.Fatalf("MarkAllNotificationsRead error: %v", err)
	}
}
