package mpesa

import "net/url"

// PrivilegedRequest is implemented by requests that carry an encrypted
// security credential. The client derives the credential from the initiator
// password and the environment certificate at dispatch time and serializes
// the returned copy; the built request itself is never written to, so it
// stays safe to reuse across concurrent calls. Any credential set by the
// caller is overwritten in the copy.
type PrivilegedRequest interface {
	WithSecurityCredential(credential string) interface{}
}

// StatusResponse is implemented by every operation response. It exposes the
// provider's acknowledgement uniformly across the two response conventions
// (ResponseCode "0" for the core operations, rescode "200" for bill manager).
type StatusResponse interface {
	// ResponseStatus returns the provider's response code and description.
	ResponseStatus() (code, description string)
	// Accepted reports whether the provider accepted the request for
	// processing. A false return becomes an APIError at the client layer.
	Accepted() bool
}

// CoreResponse is the acknowledgement shape shared by the asynchronous core
// operations (balance, B2C, B2B, status, reversal). The terminal outcome
// arrives later on the registered result URL; this only acknowledges the
// submission.
type CoreResponse struct {
	OriginatorConversationID string `json:"OriginatorConversationID,omitempty" yaml:"originatorConversationId,omitempty"`
	ConversationID           string `json:"ConversationID,omitempty"           yaml:"conversationId,omitempty"`
	ResponseCode             string `json:"ResponseCode"                       yaml:"responseCode"`
	ResponseDescription      string `json:"ResponseDescription"                yaml:"responseDescription"`
}

// ResponseStatus returns the provider's response code and description.
func (r CoreResponse) ResponseStatus() (string, string) {
	return r.ResponseCode, r.ResponseDescription
}

// Accepted reports whether the provider accepted the request.
func (r CoreResponse) Accepted() bool { return r.ResponseCode == "0" }

// BillManagerStatus is the acknowledgement shape shared by the bill manager
// operations, which use a different convention from the core operations.
type BillManagerStatus struct {
	ResponseCode    string `json:"rescode" yaml:"rescode"`
	ResponseMessage string `json:"resmsg"  yaml:"resmsg"`
}

// ResponseStatus returns the provider's response code and message.
func (r BillManagerStatus) ResponseStatus() (string, string) {
	return r.ResponseCode, r.ResponseMessage
}

// Accepted reports whether the provider accepted the request.
func (r BillManagerStatus) Accepted() bool { return r.ResponseCode == "200" }

// missingField builds the ValidationError for a required field left unset.
func missingField(field string) *ValidationError {
	return &ValidationError{Field: field, Message: "is required"}
}

// checkURL validates that raw parses as an absolute http(s) address. The
// checked setters use it so a malformed callback address fails at Build
// instead of after the provider tries to invoke it.
func checkURL(field, raw string) *ValidationError {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return &ValidationError{Field: field, Message: "must be an absolute URL"}
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return &ValidationError{Field: field, Message: "must use an http or https scheme"}
	}

	return nil
}

// firstErr returns the earliest checked-setter failure, preserving the order
// in which setters were called.
func firstErr(errs []*ValidationError) *ValidationError {
	for _, e := range errs {
		if e != nil {
			return e
		}
	}

	return nil
}
