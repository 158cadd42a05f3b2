// Package session tracks the authenticated user across CLI commands. It
// wraps the token store and the API client: login stores tokens plus a
// denormalized user snapshot, logout clears everything, and Bootstrap
// restores an earlier session from disk.
package session

import (
	"context"
	"sync"

	"github.com/stocklyhq/stockly/internal/client/client"
	"github.com/stocklyhq/stockly/internal/client/models"
	"github.com/stocklyhq/stockly/internal/client/tokens"
	"github.com/stocklyhq/stockly/internal/logging"
)

// LoginClient is the slice of the API client the session needs.
type LoginClient interface {
	Login(ctx context.Context, username, password string) (*models.TokenPair, error)
}

type Session struct {
	client LoginClient
	store  tokens.Store
	log    logging.Logger

	mu      sync.RWMutex
	user    *models.StoredUser
	lastErr error
}

func New(c LoginClient, store tokens.Store, log logging.Logger) *Session {
	if log == nil {
		log = logging.NewNoopLogger()
	}
	return &Session{client: c, store: store, log: log}
}

// Login authenticates against the backend. It reports success or failure
// as a bool; the cause stays readable through LastError.
func (s *Session) Login(ctx context.Context, username, password string) bool {
	pair, err := s.client.Login(ctx, username, password)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
	if err != nil {
		s.log.Warn(ctx, "login failed", "username", username, "error", err)
		return false
	}

	s.store.SetTokens(pair.Access, pair.Refresh)

	user := userFromTokenClaims(pair.Access)
	if user == nil {
		// No usable claims. Keep at least the username so whoami works.
		user = &models.StoredUser{Username: username}
	}
	s.store.SetUser(user)
	s.user = user
	s.log.Info(ctx, "logged in", "username", user.Username)
	return true
}

// Logout clears tokens and the user snapshot. Safe to call when not
// logged in.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Clear()
	s.user = nil
	s.lastErr = nil
}

// Bootstrap restores the session from persisted credentials. It prefers
// the stored user snapshot and falls back to decoding the access token's
// claims when the snapshot is missing.
func (s *Session) Bootstrap() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store.AccessToken() == "" && s.store.RefreshToken() == "" {
		return false
	}
	if u := s.store.User(); u != nil {
		s.user = u
		return true
	}
	if u := userFromTokenClaims(s.store.AccessToken()); u != nil {
		s.store.SetUser(u)
		s.user = u
		return true
	}
	// Tokens without any identity are still a usable session; commands
	// that need a display name handle the nil user.
	s.user = nil
	return true
}

// User returns the current user snapshot, or nil when anonymous.
func (s *Session) User() *models.StoredUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Authenticated reports whether any credentials are present.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.AccessToken() != "" || s.store.RefreshToken() != ""
}

// LastError returns the error behind the most recent failed Login.
func (s *Session) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

var _ LoginClient = (client.Client)(nil)
