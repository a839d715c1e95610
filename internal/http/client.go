// Package http wraps the underlying transport for every call the client
// makes: it attaches bearer tokens, encodes JSON bodies, and maps transport
// and provider failures onto the shared error taxonomy.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/c12i/mpesa-go/pkg/mpesa"
)

const defaultTimeout = 30 * time.Second

// TokenManager supplies a valid bearer token for each request.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
}

// Request describes one API call.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Headers map[string]string
	Body    interface{}
	// NoAuth skips the bearer token. Only the token endpoint itself uses
	// it.
	NoAuth bool
}

// Response is the raw outcome of a call. Body is fully read and the
// connection returned to the pool before Do returns.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client issues authenticated requests against one base URL.
type Client struct {
	baseURL      string
	tokenManager TokenManager
	httpClient   *retryablehttp.Client
	userAgent    string
	debug        bool
	logger       mpesa.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPTimeout bounds each round trip.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithRetryConfig enables transport retries. The default is no retries:
// the payment operations are not idempotent, so retry policy stays with
// the caller unless explicitly turned on here.
func WithRetryConfig(maxRetries int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = maxRetries
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithLogger sets the logger used when debug logging is on.
func WithLogger(logger mpesa.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug turns request/response logging on.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// NewClient creates a client for the given base URL. A nil tokenManager
// sends unauthenticated requests.
func NewClient(baseURL string, tokenManager TokenManager, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil
	retryClient.HTTPClient.Timeout = defaultTimeout
	// Hand back the final response instead of a synthesized "giving up"
	// error so provider error bodies stay inspectable.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client := &Client{
		baseURL:      baseURL,
		tokenManager: tokenManager,
		httpClient:   retryClient,
		userAgent:    "mpesa-go",
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// HTTPClient exposes the transport as a standard *http.Client so the token
// manager shares the same timeout and retry policy as dispatches.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient.StandardClient()
}

// Do performs one request and maps every failure onto the error taxonomy:
// body problems become SerializationError, transport problems NetworkError,
// rejected tokens AuthError, and provider error bodies APIError. The
// *Response is returned alongside provider errors so callers can inspect
// the raw body.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, mpesa.ErrNilRequest
	}

	var body io.Reader

	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, &mpesa.SerializationError{Err: fmt.Errorf("encoding request body: %w", err)}
		}

		body = bytes.NewReader(data)
	}

	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, &mpesa.NetworkError{Err: fmt.Errorf("building request: %w", err)}
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if !req.NoAuth && c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			return nil, err
		}

		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, wrapTransportError(ctx, err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &mpesa.NetworkError{Err: fmt.Errorf("reading response body: %w", err)}
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": resp.StatusCode,
			"url":    fullURL,
		})
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return resp, c.errorFromResponse(resp)
	}

	return resp, nil
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// errorFromResponse maps a non-2xx response onto the error taxonomy. Token
// rejections become AuthError; everything else carries the provider's own
// code and message as an APIError.
func (c *Client) errorFromResponse(resp *Response) error {
	apiErr, parseErr := mpesa.ParseAPIError(resp.Body)

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		if parseErr == nil && apiErr.Code != "" {
			return &mpesa.AuthError{Code: apiErr.Code, Description: apiErr.Message}
		}

		return &mpesa.AuthError{Err: fmt.Errorf("provider returned status %d", resp.StatusCode)}
	}

	if parseErr == nil && (apiErr.Code != "" || apiErr.Message != "") {
		return apiErr
	}

	return &mpesa.APIError{
		Code:    fmt.Sprintf("%d", resp.StatusCode),
		Message: http.StatusText(resp.StatusCode),
	}
}

func wrapTransportError(ctx context.Context, err error) error {
	var netErr net.Error

	timeout := errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout())

	return &mpesa.NetworkError{Timeout: timeout, Err: err}
}
