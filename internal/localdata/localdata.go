// internal/localdata/localdata.go
// Persisted client state: the auth token and the theme preference survive
// restarts; everything else is rebuilt from the server.

package localdata

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const fileMode = 0o600

// Store is a small file-backed key/value store for the handful of values
// the client persists between runs. Writes go through a temp file rename so
// a crash never leaves a half-written state file.
type Store struct {
	mu   sync.Mutex
	path string
	data state
}

type state struct {
	Token string `json:"token,omitempty"`
	Theme string `json:"theme,omitempty"`
}

// DefaultPath returns the state file location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}
	return filepath.Join(dir, "kiekky", "state.json"), nil
}

// Open loads the state file at path, creating parent directories as needed.
// A missing file starts an empty store.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating state dir: %w", err)
	}

	s := &Store{path: path}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("reading state file: %w", err)
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		// A corrupt state file is not fatal; the user just signs in again.
		return &Store{path: path}, nil
	}
	return s, nil
}

// Token returns the persisted auth token, or empty when signed out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Token
}

// SetToken persists the auth token.
func (s *Store) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Token = token
	return s.flush()
}

// ClearToken removes the persisted auth token.
func (s *Store) ClearToken() error {
	return s.SetToken("")
}

// Theme returns the persisted theme preference, or empty when unset.
func (s *Store) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Theme
}

// SetTheme persists the theme preference.
func (s *Store) SetTheme(theme string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Theme = theme
	return s.flush()
}

// flush writes the state file atomically. Callers hold s.mu.
func (s *Store) flush() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, fileMode); err != nil {
		return fmt.Errorf("writing state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing state file: %w", err)
	}
	return nil
}
