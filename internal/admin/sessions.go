package admin

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/hookewild/curator/internal/db"
)

// ErrBadPassword is returned for an unlock attempt with the wrong password.
var ErrBadPassword = errors.New("incorrect password")

// Sessions issues and checks admin bearer tokens. Tokens live in the
// database but are wiped on every startup, so an admin unlock never
// outlives the process that granted it.
type Sessions struct {
	db       *db.DB
	password string
}

// NewSessions creates the session manager and clears any tokens left over
// from a previous run.
func NewSessions(database *db.DB, password string) (*Sessions, error) {
	s := &Sessions{db: database, password: password}
	if _, err := database.Exec(`DELETE FROM admin_sessions`); err != nil {
		return nil, fmt.Errorf("clearing stale sessions: %w", err)
	}
	return s, nil
}

// Unlock checks the password and mints a session token.
func (s *Sessions) Unlock(password string) (string, error) {
	if password != s.password {
		return "", ErrBadPassword
	}
	token := uuid.New().String()
	if _, err := s.db.Exec(`INSERT INTO admin_sessions (token) VALUES (?)`, token); err != nil {
		return "", fmt.Errorf("storing session: %w", err)
	}
	return token, nil
}

// Valid reports whether the token belongs to a live session.
func (s *Sessions) Valid(token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM admin_sessions WHERE token = ?`, token).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking session: %w", err)
	}
	return n > 0, nil
}

// Lock revokes a session token. Revoking an unknown token is not an error.
func (s *Sessions) Lock(token string) error {
	if _, err := s.db.Exec(`DELETE FROM admin_sessions WHERE token = ?`, token); err != nil {
		return fmt.Errorf("revoking session: %w", err)
	}
	return nil
}

// Middleware rejects requests that do not carry a valid admin bearer token.
func (s *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		ok, err := s.Valid(token)
		if err != nil {
			http.Error(w, `{"error":"failed to check session"}`, http.StatusInternalServerError)
			return
		}
		if !ok {
			http.Error(w, `{"error":"admin session required"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
