// internal/identity/session.go
package identity

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the single holder of the authenticated identity. It is set at
// login, cleared at logout, and handed explicitly to whatever needs the
// token, instead of being read ad hoc from shared global state. Between
// console runs it persists to a small JSON file under the user's home.
type Session struct {
	BearerToken string `json:"token"`
	User        *User  `json:"user,omitempty"`

	path string
}

// DefaultSessionPath returns the session file location,
// ~/.mediastore/session.json.
func DefaultSessionPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".mediastore", "session.json"), nil
}

// LoadSession reads a persisted session, or returns an empty one if no file
// exists yet.
func LoadSession(path string) (*Session, error) {
	s := &Session{path: path}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	return s, nil
}

// Set stores the login result and persists it. This is the only place a
// token enters the session.
func (s *Session) Set(token string, user *User) error {
	s.BearerToken = token
	s.User = user
	return s.save()
}

// Clear wipes the session: logout.
func (s *Session) Clear() error {
	s.BearerToken = ""
	s.User = nil
	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// Token implements api.TokenSource. An expired token is not sent at all, so
// the backend's 401 path is never hit with a token known to be dead.
func (s *Session) Token() string {
	if s.Expired() {
		return ""
	}
	return s.BearerToken
}

// Authenticated reports whether a live token is present.
func (s *Session) Authenticated() bool {
	return s.BearerToken != "" && !s.Expired()
}

// IsAdmin reports whether the logged-in user carries the ADMIN role.
func (s *Session) IsAdmin() bool {
	return s.User != nil && s.User.HasRole(RoleAdmin)
}

// Expired inspects the token's exp claim without verifying the signature;
// verification is the backend's job, this is only to know when to prompt for
// a fresh login. A token without a readable exp claim is treated as live and
// left for the backend to judge.
func (s *Session) Expired() bool {
	if s.BearerToken == "" {
		return false
	}
	token, _, err := jwt.NewParser().ParseUnverified(s.BearerToken, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

func (s *Session) save() error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}
