package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c12i/mpesa-go/internal/auth"
	"github.com/c12i/mpesa-go/pkg/mpesa"
)

func newTokenServer(t *testing.T, hits *atomic.Int64, body string, status int) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)

		assert.Equal(t, "client_credentials", r.URL.Query().Get("grant_type"))

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "test-key", user)
		assert.Equal(t, "test-secret", pass)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server
}

func newManager(server *httptest.Server) *auth.TokenManager {
	return auth.NewTokenManager(auth.Config{
		TokenURL:       server.URL + "/oauth/v1/generate",
		ConsumerKey:    "test-key",
		ConsumerSecret: "test-secret",
		HTTPClient:     server.Client(),
	})
}

func TestTokenManager_GetToken(t *testing.T) {
	var hits atomic.Int64

	server := newTokenServer(t, &hits, `{"access_token":"abc123","expires_in":3599}`, http.StatusOK)
	manager := newManager(server)

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)
	assert.Equal(t, int64(1), hits.Load())

	// Second call is served from the cache.
	token, err = manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)
	assert.Equal(t, int64(1), hits.Load())
}

func TestTokenManager_StringExpiresIn(t *testing.T) {
	var hits atomic.Int64

	server := newTokenServer(t, &hits, `{"access_token":"abc123","expires_in":"3599"}`, http.StatusOK)
	manager := newManager(server)

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)
}

func TestTokenManager_CoalescesConcurrentRefreshes(t *testing.T) {
	var hits atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		// Hold the exchange open long enough for every waiter to pile up.
		time.Sleep(50 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"abc123","expires_in":3599}`))
	}))
	t.Cleanup(server.Close)

	manager := auth.NewTokenManager(auth.Config{
		TokenURL:       server.URL + "/oauth/v1/generate",
		ConsumerKey:    "test-key",
		ConsumerSecret: "test-secret",
		HTTPClient:     server.Client(),
	})

	const waiters = 20

	var wg sync.WaitGroup

	tokens := make([]string, waiters)
	errs := make([]error, waiters)

	for i := 0; i < waiters; i++ {
		wg.Add(1)

		i := i

		go func() {
			defer wg.Done()
			tokens[i], errs[i] = manager.GetToken(context.Background())
		}()
	}

	wg.Wait()

	for i := 0; i < waiters; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "abc123", tokens[i])
	}

	assert.Equal(t, int64(1), hits.Load())
}

func TestTokenManager_FailurePropagatesToAllWaiters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(20 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"requestId":"1","errorCode":"400.008.01","errorMessage":"Invalid Authentication passed"}`))
	}))
	t.Cleanup(server.Close)

	manager := auth.NewTokenManager(auth.Config{
		TokenURL:       server.URL + "/oauth/v1/generate",
		ConsumerKey:    "bad-key",
		ConsumerSecret: "bad-secret",
		HTTPClient:     server.Client(),
	})

	const waiters = 5

	var wg sync.WaitGroup

	errs := make([]error, waiters)

	for i := 0; i < waiters; i++ {
		wg.Add(1)

		i := i

		go func() {
			defer wg.Done()
			_, errs[i] = manager.GetToken(context.Background())
		}()
	}

	wg.Wait()

	for i := 0; i < waiters; i++ {
		require.Error(t, errs[i])
		assert.True(t, mpesa.IsAuthError(errs[i]))
		assert.Equal(t, errs[0], errs[i])
	}
}

func TestTokenManager_FailedExchangeDoesNotPoisonCache(t *testing.T) {
	var hits atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)

			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"abc123","expires_in":3599}`))
	}))
	t.Cleanup(server.Close)

	manager := auth.NewTokenManager(auth.Config{
		TokenURL:       server.URL + "/oauth/v1/generate",
		ConsumerKey:    "test-key",
		ConsumerSecret: "test-secret",
		HTTPClient:     server.Client(),
	})

	_, err := manager.GetToken(context.Background())
	require.Error(t, err)

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)
	assert.Equal(t, int64(2), hits.Load())
}

func TestTokenManager_WaiterContextCancellation(t *testing.T) {
	release := make(chan struct{})

	var hits atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"abc123","expires_in":3599}`))
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	manager := auth.NewTokenManager(auth.Config{
		TokenURL:       server.URL + "/oauth/v1/generate",
		ConsumerKey:    "test-key",
		ConsumerSecret: "test-secret",
		HTTPClient:     server.Client(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	// The cancelled waiter gets a timeout error.
	_, err := manager.GetToken(ctx)
	require.Error(t, err)
	assert.True(t, mpesa.IsTimeout(err))

	// The exchange itself was not aborted: once the server releases it, a
	// patient caller is served by the same refresh or the cache it filled.
	done := make(chan struct{})

	go func() {
		defer close(done)

		token, err := manager.GetToken(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, "abc123", token)
	}()

	release <- struct{}{}
	<-done
	assert.Equal(t, int64(1), hits.Load())
}

func TestTokenManager_Invalidate(t *testing.T) {
	var hits atomic.Int64

	server := newTokenServer(t, &hits, `{"access_token":"abc123","expires_in":3599}`, http.StatusOK)
	manager := newManager(server)

	_, err := manager.GetToken(context.Background())
	require.NoError(t, err)

	manager.Invalidate()

	_, err = manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), hits.Load())
}

func TestTokenManager_EmptyTokenInResponse(t *testing.T) {
	var hits atomic.Int64

	server := newTokenServer(t, &hits, `{"expires_in":3599}`, http.StatusOK)
	manager := newManager(server)

	_, err := manager.GetToken(context.Background())
	require.Error(t, err)
	assert.True(t, mpesa.IsAuthError(err))
	require.ErrorIs(t, err, mpesa.ErrNoTokenInResponse)
}
