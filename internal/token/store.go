// Package token handles bearer-token persistence and advisory decoding.
package token

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store abstracts token persistence so the mechanism (file, keychain,
// encrypted store) is swappable per platform.
type Store interface {
	// Load returns the persisted token, or "" when none is stored.
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileStore persists the token as a single file with owner-only permissions.
type FileStore struct {
	path string
}

// NewFileStore builds a store at path. An empty path defaults to
// $HOME/.campusjam/token.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		path = filepath.Join(home, ".campusjam", "token")
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Load() (string, error) {
	b, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token), 0o600)
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// MemoryStore keeps the token in process memory only. Useful for tests and
// for platforms where nothing should touch disk.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
