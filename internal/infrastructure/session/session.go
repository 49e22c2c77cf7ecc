package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"github.com/crewdeck/crewdeck/internal/domain/entities"
)

// fileState uses the backend's session key names so a session file
// survives across tools that share it.
type fileState struct {
	Token  string `json:"auth_token,omitempty"`
	UserID *int64 `json:"user_id,omitempty"`
	Role   string `json:"user_role,omitempty"`
}

// Store is a file-backed session store. All reads and writes go
// through the store; nothing else touches the session file.
type Store struct {
	mu    sync.RWMutex
	path  string
	state fileState
}

// tokenClaims is the subset of JWT claims the client cares about.
// The token is parsed without verification: the secret lives on the
// backend and the claims are display data only.
type tokenClaims struct {
	UserID int64         `json:"user_id"`
	Role   entities.Role `json:"role"`
	jwt.RegisteredClaims
}

// Open loads the session file at path, creating parent directories as
// needed. A missing file yields an empty (guest) session.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	if err := json.Unmarshal(data, &s.state); err != nil {
		// A corrupt session file is discarded rather than wedging
		// every command; the user signs in again.
		s.state = fileState{}
		return s, nil
	}

	s.recoverFromClaims()
	return s, nil
}

// Token returns the bearer token, if any.
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token, s.state.Token != ""
}

// Role returns the stored role, defaulting to GUEST when absent or
// unrecognized.
func (s *Store) Role() entities.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return entities.ParseRole(s.state.Role)
}

// UserID returns the signed-in user's id, if any.
func (s *Store) UserID() (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.UserID == nil {
		return 0, false
	}
	return *s.state.UserID, true
}

// SetRole persists a new role for the current session.
func (s *Store) SetRole(r entities.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Role = string(r)
	return s.flush()
}

// SetSession persists a freshly established session.
func (s *Store) SetSession(token string, userID int64, role entities.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = fileState{
		Token:  token,
		UserID: &userID,
		Role:   string(role),
	}
	return s.flush()
}

// Clear removes the token, id and role. Subsequent calls through the
// resource client go out unauthenticated.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = fileState{}
	return s.flush()
}

// recoverFromClaims fills in user id and role from the token's claims
// when the session file predates those fields.
func (s *Store) recoverFromClaims() {
	if s.state.Token == "" {
		return
	}
	if s.state.UserID != nil && entities.Role(s.state.Role).IsValid() {
		return
	}

	var claims tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(s.state.Token, &claims); err != nil {
		return
	}

	if s.state.UserID == nil && claims.UserID != 0 {
		id := claims.UserID
		s.state.UserID = &id
	}
	if !entities.Role(s.state.Role).IsValid() && claims.Role.IsValid() {
		s.state.Role = string(claims.Role)
	}
}

// flush writes the state to disk; callers hold the write lock.
func (s *Store) flush() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}
