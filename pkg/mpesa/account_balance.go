package mpesa

// AccountBalanceRequest queries the balance on an M-Pesa shortcode. It is a
// privileged operation; SecurityCredential is filled in at dispatch time.
type AccountBalanceRequest struct {
	Initiator          string         `json:"Initiator"`
	SecurityCredential string         `json:"SecurityCredential"`
	CommandID          CommandID      `json:"CommandID"`
	PartyA             string         `json:"PartyA"`
	IdentifierType     IdentifierType `json:"IdentifierType"`
	Remarks            string         `json:"Remarks"`
	QueueTimeOutURL    string         `json:"QueueTimeOutURL"`
	ResultURL          string         `json:"ResultURL"`
}

// WithSecurityCredential implements PrivilegedRequest. The value receiver
// copies the request, so the original is untouched.
func (r AccountBalanceRequest) WithSecurityCredential(credential string) interface{} {
	r.SecurityCredential = credential

	return r
}

// AccountBalanceResponse acknowledges an account balance query. The balance
// itself arrives asynchronously on the result URL.
type AccountBalanceResponse struct {
	CoreResponse `yaml:",inline"`
}

// AccountBalanceBuilder assembles an AccountBalanceRequest.
type AccountBalanceBuilder struct {
	req  AccountBalanceRequest
	errs []*ValidationError
}

// NewAccountBalanceBuilder starts an account balance query issued by the
// given initiator. PartyA, ResultURL, and QueueTimeoutURL must be set before
// Build; everything else carries a default.
func NewAccountBalanceBuilder(initiator string) *AccountBalanceBuilder {
	return &AccountBalanceBuilder{
		req: AccountBalanceRequest{
			Initiator:      initiator,
			CommandID:      CommandAccountBalance,
			IdentifierType: IdentifierShortcode,
			Remarks:        "None",
		},
	}
}

// PartyA sets the organization shortcode whose balance is queried.
func (b *AccountBalanceBuilder) PartyA(shortCode string) *AccountBalanceBuilder {
	b.req.PartyA = shortCode

	return b
}

// IdentifierType overrides the default Shortcode identifier for PartyA.
func (b *AccountBalanceBuilder) IdentifierType(t IdentifierType) *AccountBalanceBuilder {
	b.req.IdentifierType = t

	return b
}

// Remarks overrides the default remarks comment.
func (b *AccountBalanceBuilder) Remarks(remarks string) *AccountBalanceBuilder {
	b.req.Remarks = remarks

	return b
}

// ResultURL sets the result callback address without checking it.
func (b *AccountBalanceBuilder) ResultURL(raw string) *AccountBalanceBuilder {
	b.req.ResultURL = raw

	return b
}

// CheckedResultURL sets the result callback address, rejecting it at Build
// if it is not a well-formed absolute URL.
func (b *AccountBalanceBuilder) CheckedResultURL(raw string) *AccountBalanceBuilder {
	b.errs = append(b.errs, checkURL("ResultURL", raw))
	b.req.ResultURL = raw

	return b
}

// QueueTimeoutURL sets the timeout callback address without checking it.
func (b *AccountBalanceBuilder) QueueTimeoutURL(raw string) *AccountBalanceBuilder {
	b.req.QueueTimeOutURL = raw

	return b
}

// CheckedQueueTimeoutURL sets the timeout callback address, rejecting it at
// Build if it is not a well-formed absolute URL.
func (b *AccountBalanceBuilder) CheckedQueueTimeoutURL(raw string) *AccountBalanceBuilder {
	b.errs = append(b.errs, checkURL("QueueTimeOutURL", raw))
	b.req.QueueTimeOutURL = raw

	return b
}

// Build validates the staged fields and freezes the request. It fails with a
// ValidationError naming the first missing or malformed field; no network
// activity happens here or in any other builder method.
func (b *AccountBalanceBuilder) Build() (*AccountBalanceRequest, error) {
	if err := firstErr(b.errs); err != nil {
		return nil, err
	}

	switch {
	case b.req.Initiator == "":
		return nil, missingField("Initiator")
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
