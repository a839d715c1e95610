package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/c12i/mpesa-go/internal/http"
	"github.com/c12i/mpesa-go/pkg/mpesa"
)

// dispatch runs the shared pipeline for every operation: inject the
// security credential when the request is privileged, POST the body, decode
// the response, and turn a business-level rejection into an APIError. A nil
// request never reaches the wire.
//
// The credential goes into a copy, never into the caller's request: built
// requests are immutable and may be in flight on other goroutines.
func (c *Client) dispatch(ctx context.Context, path string, body interface{}, out mpesa.StatusResponse) error {
	if priv, ok := body.(mpesa.PrivilegedRequest); ok {
		credential, err := c.securityCredential()
		if err != nil {
			return err
		}

		body = priv.WithSecurityCredential(credential)
	}

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method: "POST",
		Path:   path,
		Body:   body,
	})
	if err != nil {
		// A rejected token means the cache is stale; drop it so the next
		// call mints a fresh one.
		if mpesa.IsAuthError(err) {
			c.tokenManager.Invalidate()
		}

		return err
	}

	if err := json.Unmarshal(resp.Body, out); err != nil {
		return &mpesa.SerializationError{Err: fmt.Errorf("decoding response body: %w", err)}
	}

	if !out.Accepted() {
		code, desc := out.ResponseStatus()

		return &mpesa.APIError{Code: code, Message: desc}
	}

	return nil
}
