package mpesa

import "github.com/google/uuid"

// TransactionStatusRequest queries the status of a completed or pending
// transaction by its M-Pesa receipt number. It is a privileged operation;
// SecurityCredential is filled in at dispatch time.
type TransactionStatusRequest struct {
	Initiator                string         `json:"Initiator"`
	SecurityCredential       string         `json:"SecurityCredential"`
	CommandID                CommandID      `json:"CommandID"`
	TransactionID            string         `json:"TransactionID"`
	OriginatorConversationID string         `json:"OriginatorConversationID,omitempty"`
	PartyA                   string         `json:"PartyA"`
	IdentifierType           IdentifierType `json:"IdentifierType"`
	ResultURL                string         `json:"ResultURL"`
	QueueTimeOutURL          string         `json:"QueueTimeOutURL"`
	Remarks                  string         `json:"Remarks"`
	Occasion                 string         `json:"Occasion"`
}

// WithSecurityCredential implements PrivilegedRequest. The value receiver
// copies the request, so the original is untouched.
func (r TransactionStatusRequest) WithSecurityCredential(credential string) interface{} {
	r.SecurityCredential = credential

	return r
}

// TransactionStatusResponse acknowledges a status query. The status detail
// arrives asynchronously on the result URL.
type TransactionStatusResponse struct {
	CoreResponse `yaml:",inline"`
}

// TransactionStatusBuilder assembles a TransactionStatusRequest.
type TransactionStatusBuilder struct {
	req  TransactionStatusRequest
	errs []*ValidationError
}

// NewTransactionStatusBuilder starts a status query issued by the given
// initiator. TransactionID, PartyA, ResultURL, and QueueTimeoutURL must be
// set before Build.
func NewTransactionStatusBuilder(initiator string) *TransactionStatusBuilder {
	return &TransactionStatusBuilder{
		req: TransactionStatusRequest{
			Initiator:      initiator,
			CommandID:      CommandTransactionStatusQuery,
			IdentifierType: IdentifierShortcode,
			Remarks:        "None",
			Occasion:       "None",
		},
	}
}

// TransactionID sets the M-Pesa receipt number to look up.
func (b *TransactionStatusBuilder) TransactionID(id string) *TransactionStatusBuilder {
	b.req.TransactionID = id

	return b
}

// OriginatorConversationID looks the transaction up by the submission
// identifier instead of the receipt number.
func (b *TransactionStatusBuilder) OriginatorConversationID(id string) *TransactionStatusBuilder {
	b.req.OriginatorConversationID = id

	return b
}

// PartyA sets the organization shortcode the transaction belongs to.
func (b *TransactionStatusBuilder) PartyA(shortCode string) *TransactionStatusBuilder {
	b.req.PartyA = shortCode

	return b
}

// IdentifierType overrides the default Shortcode identifier for PartyA.
func (b *TransactionStatusBuilder) IdentifierType(t IdentifierType) *TransactionStatusBuilder {
	b.req.IdentifierType = t

	return b
}

// Remarks overrides the default remarks comment.
func (b *TransactionStatusBuilder) Remarks(remarks string) *TransactionStatusBuilder {
	b.req.Remarks = remarks

	return b
}

// Occasion overrides the default occasion comment.
func (b *TransactionStatusBuilder) Occasion(occasion string) *TransactionStatusBuilder {
	b.req.Occasion = occasion

	return b
}

// ResultURL sets the result callback address without checking it.
func (b *TransactionStatusBuilder) ResultURL(raw string) *TransactionStatusBuilder {
	b.req.ResultURL = raw

	return b
}

// CheckedResultURL sets the result callback address, rejecting it at Build
// if it is not a well-formed absolute URL.
func (b *TransactionStatusBuilder) CheckedResultURL(raw string) *TransactionStatusBuilder {
	b.errs = append(b.errs, checkURL("ResultURL", raw))
	b.req.ResultURL = raw

	return b
}

// QueueTimeoutURL sets the timeout callback address without checking it.
func (b *TransactionStatusBuilder) QueueTimeoutURL(raw string) *TransactionStatusBuilder {
	b.req.QueueTimeOutURL = raw

	return b
}

// CheckedQueueTimeoutURL sets the timeout callback address, rejecting it at
// Build if it is not a well-formed absolute URL.
func (b *TransactionStatusBuilder) CheckedQueueTimeoutURL(raw string) *TransactionStatusBuilder {
	b.errs = append(b.errs, checkURL("QueueTimeOutURL", raw))
	b.req.QueueTimeOutURL = raw

	return b
}

// Build validates the staged fields and freezes the request.
func (b *TransactionStatusBuilder) Build() (*TransactionStatusRequest, error) {
	if err := firstErr(b.errs); err != nil {
		return nil, err
	}

	switch {
	case b.req.Initiator == "":
		return nil, missingField("Initiator")
	case b.req.TransactionID == "" && b.req.OriginatorConversationID == "":
		return nil, missingField("TransactionID")
	case b.req.PartyA == "":
		return nil, missingField("PartyA")
	case b.req.ResultURL == "":
		return nil, missingField("ResultURL")
	case b.req.QueueTimeOutURL == "":
		return nil, missingField("QueueTimeOutURL")
	}

	if !b.req.IdentifierType.Valid() {
		return nil, &ValidationError{Field: "IdentifierType", Message: "is not a known identifier type"}
	}

	req := b.req

	return &req, nil
}

// TransactionReversalRequest reverses a completed transaction. It is a
// privileged operation; SecurityCredential is filled in at dispatch time.
//
// RecieverIdentifierType keeps the provider's own spelling of the wire
// field; the API rejects the corrected form.
type TransactionReversalRequest struct {
	Initiator                string         `json:"Initiator"`
	SecurityCredential       string         `json:"SecurityCredential"`
	CommandID                CommandID      `json:"CommandID"`
	TransactionID            string         `json:"TransactionID"`
	OriginatorConversationID string         `json:"OriginatorConversationID,omitempty"`
	Amount                   float64        `json:"Amount"`
	ReceiverParty            string         `json:"ReceiverParty"`
	ReceiverIdentifierType   IdentifierType `json:"RecieverIdentifierType"`
	ResultURL                string         `json:"ResultURL"`
	QueueTimeOutURL          string         `json:"QueueTimeOutURL"`
	Remarks                  string         `json:"Remarks"`
	Occasion                 string         `json:"Occasion"`
}

// WithSecurityCredential implements PrivilegedRequest. The value receiver
// copies the request, so the original is untouched.
func (r TransactionReversalRequest) WithSecurityCredential(credential string) interface{} {
	r.SecurityCredential = credential

	return r
}

// TransactionReversalResponse acknowledges a reversal submission. The
// reversal result arrives asynchronously on the result URL.
type TransactionReversalResponse struct {
	CoreResponse `yaml:",inline"`
}

// TransactionReversalBuilder assembles a TransactionReversalRequest.
type TransactionReversalBuilder struct {
	req  TransactionReversalRequest
	errs []*ValidationError
}

// NewTransactionReversalBuilder starts a reversal issued by the given
// initiator. TransactionID, a positive Amount, ReceiverParty, ResultURL,
// and QueueTimeoutURL must be set before Build. The originator conversation
// ID defaults to a fresh UUID so a resubmission can be told apart from a
// duplicate.
func NewTransactionReversalBuilder(initiator string) *TransactionReversalBuilder {
	return &TransactionReversalBuilder{
		req: TransactionReversalRequest{
			OriginatorConversationID: uuid.NewString(),
			Initiator:                initiator,
			CommandID:                CommandTransactionReversal,
			ReceiverIdentifierType:   IdentifierShortcode,
			Remarks:                  "None",
			Occasion:                 "None",
		},
	}
}

// TransactionID sets the M-Pesa receipt number of the transaction to
// reverse.
func (b *TransactionReversalBuilder) TransactionID(id string) *TransactionReversalBuilder {
	b.req.TransactionID = id

	return b
}

// OriginatorConversationID overrides the generated submission identifier.
func (b *TransactionReversalBuilder) OriginatorConversationID(id string) *TransactionReversalBuilder {
	b.req.OriginatorConversationID = id

	return b
}

// Amount sets the amount to reverse.
func (b *TransactionReversalBuilder) Amount(amount float64) *TransactionReversalBuilder {
	b.req.Amount = amount

	return b
}

// ReceiverParty sets the organization that received the original
// transaction.
func (b *TransactionReversalBuilder) ReceiverParty(shortCode string) *TransactionReversalBuilder {
	b.req.ReceiverParty = shortCode

	return b
}

// ReceiverIdentifierType overrides the default Shortcode identifier for the
// receiver party.
func (b *TransactionReversalBuilder) ReceiverIdentifierType(t IdentifierType) *TransactionReversalBuilder {
	b.req.ReceiverIdentifierType = t

	return b
}

// Remarks overrides the default remarks comment.
func (b *TransactionReversalBuilder) Remarks(remarks string) *TransactionReversalBuilder {
	b.req.Remarks = remarks

	return b
}

// Occasion overrides the default occasion comment.
func (b *TransactionReversalBuilder) Occasion(occasion string) *TransactionReversalBuilder {
	b.req.Occasion = occasion

	return b
}

// ResultURL sets the result callback address without checking it.
func (b *TransactionReversalBuilder) ResultURL(raw string) *TransactionReversalBuilder {
	b.req.ResultURL = raw

	return b
}

// CheckedResultURL sets the result callback address, rejecting it at Build
// if it is not a well-formed absolute URL.
func (b *TransactionReversalBuilder) CheckedResultURL(raw string) *TransactionReversalBuilder {
	b.errs = append(b.errs, checkURL("ResultURL", raw))
	b.req.ResultURL = raw

	return b
}

// QueueTimeoutURL sets the timeout callback address without checking it.
func (b *TransactionReversalBuilder) QueueTimeoutURL(raw string) *TransactionReversalBuilder {
	b.req.QueueTimeOutURL = raw

	return b
}

// CheckedQueueTimeoutURL sets the timeout callback address, rejecting it at
// Build if it is not a well-formed absolute URL.
func (b *TransactionReversalBuilder) CheckedQueueTimeoutURL(raw string) *TransactionReversalBuilder {
	b.errs = append(b.errs, checkURL("QueueTimeOutURL", raw))
	b.req.QueueTimeOutURL = raw

	return b
}

// Build validates the staged fields and freezes the request.
func (b *TransactionReversalBuilder) Build() (*TransactionReversalRequest, error) {
	if err := firstErr(b.errs); err != nil {
		return nil, err
	}

	switch {
	case b.req.Initiator == "":
		return nil, missingField("Initiator")
	case b.req.TransactionID == "":
		return nil, missingField("TransactionID")
	case b.req.ReceiverParty == "":
		return nil, missingField("ReceiverParty")
	case b.req.ResultURL == "":
		return nil, missingField("ResultURL")
	case b.req.QueueTimeOutURL == "":
		return nil, missingField("QueueTimeOutURL")
	}

	if b.req.Amount <= 0 {
		return nil, &ValidationError{Field: "Amount", Message: "must be greater than zero"}
	}

	if !b.req.ReceiverIdentifierType.Valid() {
		return nil, &ValidationError{Field: "RecieverIdentifierType", Message: "is not a known identifier type"}
	}

	req := b.req

	return &req, nil
}
