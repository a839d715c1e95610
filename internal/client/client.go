// Package client implements the mpesa.Client interface: it wires the token
// cache, the credential encryptor, and the transport into the dispatch
// pipeline every operation goes through.
package client

import (
	"context"
	"sync"

	"github.com/c12i/mpesa-go/internal/auth"
	"github.com/c12i/mpesa-go/internal/constants"
	"github.com/c12i/mpesa-go/internal/http"
	"github.com/c12i/mpesa-go/internal/security"
	"github.com/c12i/mpesa-go/pkg/mpesa"
)

// credentialStore holds the mutable initiator password behind a lock so
// rotation is safe against concurrent dispatches.
type credentialStore struct {
	mu       sync.RWMutex
	password string
}

func (s *credentialStore) get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.password
}

func (s *credentialStore) set(password string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.password = password
}

// Client implements the mpesa.Client interface.
type Client struct {
	httpClient   *http.Client
	tokenManager *auth.TokenManager
	encryptor    *security.Encryptor
	credentials  *credentialStore
	logger       mpesa.Logger
}

// New creates a client from the config. The environment certificate is
// parsed here so a broken certificate fails construction instead of the
// first privileged call.
func New(config *mpesa.Config) (*Client, error) {
	if config == nil {
		return nil, mpesa.ErrConfigRequired
	}

	if config.ConsumerKey == "" || config.ConsumerSecret == "" {
		return nil, mpesa.ErrConsumerKeyRequired
	}

	if config.Environment == nil {
		return nil, mpesa.ErrEnvironmentRequired
	}

	encryptor, err := security.NewEncryptor(config.Environment.Certificate())
	if err != nil {
		return nil, err
	}

	timeout := config.HTTPTimeout
	if timeout <= 0 {
		timeout = constants.DefaultHTTPTimeout
	}

	opts := []http.Option{
		http.WithHTTPTimeout(timeout),
		http.WithDebug(config.Debug),
	}

	if config.Logger != nil {
		opts = append(opts, http.WithLogger(config.Logger))
	}

	if config.RetryMax > 0 {
		opts = append(opts, http.WithRetryConfig(config.RetryMax, config.RetryWaitMin, config.RetryWaitMax))
	}

	if config.UserAgent != "" {
		opts = append(opts, http.WithUserAgent(config.UserAgent))
	}

	tokenManager := auth.NewTokenManager(auth.Config{
		TokenURL:       config.Environment.BaseURL() + constants.TokenPath,
		ConsumerKey:    config.ConsumerKey,
		ConsumerSecret: config.ConsumerSecret,
		UserAgent:      config.UserAgent,
	})

	httpClient := http.NewClient(config.Environment.BaseURL(), tokenManager, opts...)

	// The exchange runs on the same transport as dispatches, so HTTPTimeout
	// and the retry knobs bound it too.
	tokenManager.SetHTTPClient(httpClient.HTTPClient())

	password := config.InitiatorPassword
	if password == "" {
		password = mpesa.DefaultInitiatorPassword
	}

	return &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		encryptor:    encryptor,
		credentials:  &credentialStore{password: password},
		logger:       config.Logger,
	}, nil
}

// Token returns a currently valid bearer token, performing the exchange if
// the cached one is absent or stale.
func (c *Client) Token(ctx context.Context) (string, error) {
	return c.tokenManager.GetToken(ctx)
}

// SetInitiatorPassword replaces the initiator password. The next privileged
// dispatch derives its security credential from the new value; nothing is
// cached between dispatches.
func (c *Client) SetInitiatorPassword(password string) {
	c.credentials.set(password)
}

// securityCredential encrypts the current initiator password. It is
// derived fresh on every privileged dispatch so a rotated password takes
// effect immediately.
func (c *Client) securityCredential() (string, error) {
	return c.encryptor.Encrypt(c.credentials.get())
}
