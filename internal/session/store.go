// Package session persists the client-side session: the credential and the
// logged-in user, the pair the original web client kept in browser storage.
// Both live in one file so they are always written and cleared together.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alumninet/alumninet-be/internal/models"
)

// Store reads and writes the durable session file.
type Store struct {
	path string
}

type sessionFile struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// NewStore creates a session store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Save writes the credential and user atomically. Neither is ever persisted
// without the other.
func (s *Store) Save(token string, user models.User) error {
	data, err := json.Marshal(sessionFile{Token: token, User: user})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return os.Rename(tmp, s.path)
}

// Current returns the stored user. Absent or malformed data reads as "not
// logged in"; the token itself is never verified client-side — the server
// gate re-checks it on every request.
func (s *Store) Current() (models.User, bool) {
	session, ok := s.read()
	if !ok {
		return models.User{}, false
	}
	return session.User, true
}

// Token returns the stored credential string.
func (s *Store) Token() (string, bool) {
	session, ok := s.read()
	if !ok || session.Token == "" {
		return "", false
	}
	return session.Token, true
}

// Clear removes the session. A missing file is success: clearing must never
// fail on an already-logged-out client.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Store) read() (sessionFile, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return sessionFile{}, false
	}
	var session sessionFile
	if err := json.Unmarshal(data, &session); err != nil {
		return sessionFile{}, false
	}
	return session, true
}
