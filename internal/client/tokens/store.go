// Package tokens persists the access/refresh token pair and the
// denormalized user object across client restarts.
//
// Store implementations never let a storage failure escape: reads fall back
// to zero values and writes become no-ops, so a broken credentials file can
// never take the whole client down at boot.
package tokens

import (
	"sync"

	"github.com/stocklyhq/stockly/internal/client/models"
)

// Store is durable, synchronous-feeling key/value access to the token pair.
type Store interface {
	// AccessToken returns the stored access token, or "" if absent.
	AccessToken() string

	// RefreshToken returns the stored refresh token, or "" if absent.
	RefreshToken() string

	// SetTokens always overwrites the access token. The refresh token is
	// overwritten only when refresh is non-empty, which keeps the stored
	// value across refresh flows that rotate only the access token.
	SetTokens(access, refresh string)

	// Clear removes both tokens and the persisted user. Idempotent.
	Clear()

	// User returns the persisted denormalized user, or nil.
	User() *models.StoredUser

	// SetUser persists the denormalized user; nil removes it.
	SetUser(u *models.StoredUser)
}

// MemStore is an in-memory Store for tests and for headless processes that
// should not leave credentials on disk.
type MemStore struct {
	mu      sync.Mutex
	access  string
	refresh string
	user    *models.StoredUser
}

func NewMemStore() *MemStore { return &MemStore{} }

func (m *MemStore) AccessToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.access
}

func (m *MemStore) RefreshToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refresh
}

func (m *MemStore) SetTokens(access, refresh string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access = access
	if refresh != "" {
		m.refresh = refresh
	}
}

func (m *MemStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access = ""
	m.refresh = ""
	m.user = nil
}

func (m *MemStore) User() *models.StoredUser {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

func (m *MemStore) SetUser(u *models.StoredUser) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u == nil {
		m.user = nil
		return
	}
	v := *u
	m.user = &v
}
