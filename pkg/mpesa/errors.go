package mpesa

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Static errors that can be wrapped with context.
var (
	ErrUnknownEnvironment    = errors.New("unknown environment")
	ErrConfigRequired        = errors.New("config is required")
	ErrConsumerKeyRequired   = errors.New("consumer key is required")
	ErrEnvironmentRequired   = errors.New("environment is required")
	ErrEmptyInitiatorPass    = errors.New("initiator password is empty")
	ErrNilRequest            = errors.New("request is nil")
	ErrNoTokenInResponse     = errors.New("authentication response carried no access token")
	ErrPlaintextTooLong      = errors.New("initiator password too long for certificate key size")
	ErrCertificateNoRSAKey   = errors.New("certificate does not carry an RSA public key")
	ErrMissingPEMBlock       = errors.New("no PEM block found in certificate")
	ErrInvalidTransactionTyp = errors.New("express transactions must use CustomerPayBillOnline or CustomerBuyGoodsOnline")
)

// ValidationError reports a request field that failed builder validation.
// It is always produced locally, before any network call.
type ValidationError struct {
	Field   string `json:"field"   yaml:"field"`
	Message string `json:"message" yaml:"message"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: field %q %s", e.Field, e.Message)
}

// AuthError reports rejected authentication: bad consumer credentials or a
// token the provider refused. Code and Description are the provider's own
// values when the rejection came from the API.
type AuthError struct {
	Code        string `json:"code"        yaml:"code"`
	Description string `json:"description" yaml:"description"`
	Err         error  `json:"-"           yaml:"-"`
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("authentication rejected: %s (code: %s)", e.Description, e.Code)
	}

	if e.Err != nil {
		return fmt.Sprintf("authentication failed: %v", e.Err)
	}

	return "authentication failed"
}

// Unwrap returns the underlying cause, if any.
func (e *AuthError) Unwrap() error { return e.Err }

// EncryptionError reports a failure deriving the security credential from
// the environment certificate.
type EncryptionError struct {
	Message string `json:"message" yaml:"message"`
	Err     error  `json:"-"       yaml:"-"`
}

// Error implements the error interface.
func (e *EncryptionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("security credential: %s: %v", e.Message, e.Err)
	}

	return "security credential: " + e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *EncryptionError) Unwrap() error { return e.Err }

// NetworkError reports a transport-level failure: connection errors and
// timeouts. The operation was not necessarily received by the provider;
// retrying is the caller's decision because the underlying operations move
// money.
type NetworkError struct {
	Timeout bool  `json:"timeout" yaml:"timeout"`
	Err     error `json:"-"       yaml:"-"`
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("network timeout: %v", e.Err)
	}

	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying cause.
func (e *NetworkError) Unwrap() error { return e.Err }

// SerializationError reports a malformed request or response body.
type SerializationError struct {
	Err error `json:"-" yaml:"-"`
}

// Error implements the error interface.
func (e *SerializationError) Error() string {
	return fmt.Sprintf("serialization error: %v", e.Err)
}

// Unwrap returns the underlying cause.
func (e *SerializationError) Unwrap() error { return e.Err }

// APIError is a business-level rejection from the provider, distinct from
// transport failure. Code and Message are the provider's values verbatim,
// either from an HTTP error body (errorCode/errorMessage) or from a
// rejecting response code inside a successful transport response.
type APIError struct {
	RequestID string `json:"requestId,omitempty" yaml:"requestId,omitempty"`
	Code      string `json:"errorCode"           yaml:"errorCode"`
	Message   string `json:"errorMessage"        yaml:"errorMessage"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s (code: %s)", e.Message, e.Code)
}

// IsValidationError checks if the error is a builder validation failure.
func IsValidationError(err error) bool {
	target := &ValidationError{}

	return errors.As(err, &target)
}

// ValidationField returns the offending field name when err is a
// ValidationError, or "" otherwise.
func ValidationField(err error) string {
	target := &ValidationError{}
	if errors.As(err, &target) {
		return target.Field
	}

	return ""
}

// IsAuthError checks if the error is an authentication failure.
func IsAuthError(err error) bool {
	target := &AuthError{}

	return errors.As(err, &target)
}

// IsEncryptionError checks if the error is a security-credential failure.
func IsEncryptionError(err error) bool {
	target := &EncryptionError{}

	return errors.As(err, &target)
}

// IsNetworkError checks if the error is a transport failure.
func IsNetworkError(err error) bool {
	target := &NetworkError{}

	return errors.As(err, &target)
}

// IsTimeout checks if the error is a transport failure caused by a timeout.
func IsTimeout(err error) bool {
	target := &NetworkError{}

	return errors.As(err, &target) && target.Timeout
}

// IsSerializationError checks if the error is a malformed body.
func IsSerializationError(err error) bool {
	target := &SerializationError{}

	return errors.As(err, &target)
}

// IsAPIError checks if the error is a business-level rejection from the
// provider.
func IsAPIError(err error) bool {
	target := &APIError{}

	return errors.As(err, &target)
}

// APIErrorCode returns the provider code when err is an APIError, or ""
// otherwise.
func APIErrorCode(err error) string {
	target := &APIError{}
	if errors.As(err, &target) {
		return target.Code
	}

	return ""
}

// ParseAPIError parses a provider error body. Daraja error bodies look like
// {"requestId":"...","errorCode":"404.001.03","errorMessage":"..."}.
func ParseAPIError(data []byte) (*APIError, error) {
	var apiErr APIError

	err := json.Unmarshal(data, &apiErr)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal error response: %w", err)
	}

	return &apiErr, nil
}
