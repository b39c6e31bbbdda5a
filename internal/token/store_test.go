package token

import (
	"path/filepath"
	"testing"
)

func TestFileStore_Roundtrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "token")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	// Missing file is not an error, just no token.
	tok, err := s.Load()
	if err != nil || tok != "" {
		t.Fatalf("Load on missing file: %q, %v", tok, err)
	}

	if err := s.Save("tok-abc"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	tok, err = s.Load()
	if err != nil || tok != "tok-abc" {
		t.Fatalf("Load after Save: %q, %v", tok, err)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	tok, err = s.Load()
	if err != nil || tok != "" {
		t.Fatalf("Load after Clear: %q, %v", tok, err)
	}

	// Clearing an already-empty store is idempotent.
	if err := s.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}

func TestFileStore_TrimsWhitespace(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "token")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := s.Save("tok-abc\n"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	tok, err := s.Load()
	if err != nil || tok != "tok-abc" {
		t.Fatalf("Load: %q, %v", tok, err)
	}
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	s := NewMemoryStore()
	if tok, err := s.Load(); err != nil || tok != "" {
		t.Fatalf("fresh store Load: %q, %v", tok, err)
	}
	if err := s.Save("tok-1"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if tok, _ := s.Load(); tok != "tok-1" {
		t.Fatalf("Load after Save: %q", tok)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if tok, _ := s.Load(); tok != "" {
		t.Fatalf("Load after Clear: %q", tok)
	}
}
