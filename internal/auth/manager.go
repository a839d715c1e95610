package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/c12i/mpesa-go/pkg/mpesa"
)

// defaultTokenLifetime is assumed when the provider omits expires_in.
const defaultTokenLifetime = 3600 * time.Second

// Config carries the credentials and transport for the token exchange.
type Config struct {
	// TokenURL is the full address of the token endpoint.
	TokenURL string
	// ConsumerKey and ConsumerSecret authenticate the exchange via HTTP
	// basic auth.
	ConsumerKey    string
	ConsumerSecret string
	// HTTPClient performs the exchange. Its timeout bounds the request
	// because the exchange runs detached from any caller context.
	HTTPClient *http.Client
	// UserAgent is sent with the exchange request when set.
	UserAgent string
}

// refresh is one in-flight token exchange. Every waiter blocks on done and
// then reads the same outcome.
type refresh struct {
	done  chan struct{}
	token string
	err   error
}

// TokenManager caches the access token and coalesces concurrent refreshes:
// when N goroutines ask for a token and the cache is stale, exactly one
// exchange runs and all N receive its result. The exchange itself is
// detached from the waiters' contexts so one cancelled waiter cannot abort
// a refresh the others still need.
type TokenManager struct {
	config Config
	store  *TokenStore

	mu       sync.Mutex
	inflight *refresh
}

// NewTokenManager creates a token manager over an empty cache.
func NewTokenManager(config Config) *TokenManager {
	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &TokenManager{
		config: config,
		store:  NewTokenStore(),
	}
}

// GetToken returns a valid access token, minting one if the cache is empty
// or stale. The context bounds only this caller's wait; a timed-out waiter
// gets a NetworkError while the shared exchange keeps running for the rest.
func (m *TokenManager) GetToken(ctx context.Context) (string, error) {
	if token := m.store.Get(); token.Valid() {
		return token.AccessToken, nil
	}

	m.mu.Lock()
	// Another waiter may have finished a refresh while we waited for the
	// lock.
	if token := m.store.Get(); token.Valid() {
		m.mu.Unlock()

		return token.AccessToken, nil
	}

	current := m.inflight
	if current == nil {
		current = &refresh{done: make(chan struct{})}
		m.inflight = current

		go m.exchange(current)
	}
	m.mu.Unlock()

	select {
	case <-current.done:
		return current.token, current.err
	case <-ctx.Done():
		return "", &mpesa.NetworkError{
			Timeout: errors.Is(ctx.Err(), context.DeadlineExceeded),
			Err:     fmt.Errorf("waiting for token exchange: %w", ctx.Err()),
		}
	}
}

// SetHTTPClient replaces the exchange transport. The client calls it after
// construction so the exchange shares the dispatch transport's timeout and
// retry policy; it must not be called once exchanges have started.
func (m *TokenManager) SetHTTPClient(httpClient *http.Client) {
	if httpClient != nil {
		m.config.HTTPClient = httpClient
	}
}

// Invalidate drops the cached token. The dispatch layer calls it when the
// provider rejects a token that the cache still considered valid.
func (m *TokenManager) Invalidate() {
	m.store.Clear()
}

// SetToken seeds the cache, mainly for tests.
func (m *TokenManager) SetToken(accessToken string, expiresAt time.Time) {
	m.store.Set(&Token{AccessToken: accessToken, ExpiresAt: expiresAt})
}

// exchange runs one refresh and publishes its outcome to every waiter. A
// failed exchange does not poison the cache: the next GetToken starts a
// fresh one.
func (m *TokenManager) exchange(r *refresh) {
	token, err := m.fetch()
	if err != nil {
		r.err = err
	} else {
		m.store.Set(token)
		r.token = token.AccessToken
	}

	m.mu.Lock()
	m.inflight = nil
	m.mu.Unlock()

	close(r.done)
}

// tokenResponse is the token endpoint's body. The provider has been
// observed sending expires_in both as a JSON number and as a quoted string.
type tokenResponse struct {
	AccessToken string        `json:"access_token"`
	ExpiresIn   expirySeconds `json:"expires_in"`
}

type expirySeconds int64

func (e *expirySeconds) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*e = 0

		return nil
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("parsing expires_in: %w", err)
	}

	*e = expirySeconds(n)

	return nil
}

func (m *TokenManager) fetch() (*Token, error) {
	url := m.config.TokenURL + "?grant_type=client_credentials"

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		return nil, &mpesa.AuthError{Err: fmt.Errorf("building token request: %w", err)}
	}

	req.SetBasicAuth(m.config.ConsumerKey, m.config.ConsumerSecret)
	req.Header.Set("Accept", "application/json")

	if m.config.UserAgent != "" {
		req.Header.Set("User-Agent", m.config.UserAgent)
	}

	resp, err := m.config.HTTPClient.Do(req)
	if err != nil {
		var netErr net.Error
		timeout := errors.As(err, &netErr) && netErr.Timeout()

		return nil, &mpesa.NetworkError{Timeout: timeout, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &mpesa.NetworkError{Err: fmt.Errorf("reading token response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		if apiErr, parseErr := mpesa.ParseAPIError(body); parseErr == nil && apiErr.Code != "" {
			return nil, &mpesa.AuthError{Code: apiErr.Code, Description: apiErr.Message}
		}

		return nil, &mpesa.AuthError{Err: fmt.Errorf("token endpoint returned status %d", resp.StatusCode)}
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, &mpesa.SerializationError{Err: fmt.Errorf("decoding token response: %w", err)}
	}

	if tr.AccessToken == "" {
		return nil, &mpesa.AuthError{Err: mpesa.ErrNoTokenInResponse}
	}

	lifetime := time.Duration(tr.ExpiresIn) * time.Second
	if lifetime <= 0 {
		lifetime = defaultTokenLifetime
	}

	return &Token{
		AccessToken: tr.AccessToken,
		ExpiresAt:   time.Now().Add(lifetime),
	}, nil
}
