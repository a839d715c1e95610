// Package auth caches the short-lived Daraja access token and performs the
// client-credentials exchange that mints it.
package auth

import (
	"sync"
	"time"
)

// expiryBuffer is subtracted from the token lifetime so a token that is
// about to expire is never handed to a dispatch that would then race the
// provider's clock.
const expiryBuffer = 30 * time.Second

// Token is a cached access token.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

// Valid reports whether the token can still be used. A token within the
// expiry buffer counts as stale.
func (t *Token) Valid() bool {
	if t == nil || t.AccessToken == "" {
		return false
	}

	if t.ExpiresAt.IsZero() {
		return true
	}

	return time.Now().Before(t.ExpiresAt.Add(-expiryBuffer))
}

// TokenStore holds the cached token behind a read-write lock.
type TokenStore struct {
	mu    sync.RWMutex
	token *Token
}

// NewTokenStore creates an empty token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get returns the stored token, or nil when none is cached.
func (s *TokenStore) Get() *Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// Set replaces the stored token.
func (s *TokenStore) Set(token *Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
}

// Clear drops the stored token so the next GetToken forces an exchange.
func (s *TokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = nil
}
