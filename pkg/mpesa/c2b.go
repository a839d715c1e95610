package mpesa

// C2BRegisterRequest registers the validation and confirmation callback
// addresses for inbound customer payments to a shortcode.
type C2BRegisterRequest struct {
	ShortCode       string       `json:"ShortCode"`
	ResponseType    ResponseType `json:"ResponseType"`
	ConfirmationURL string       `json:"ConfirmationURL"`
	ValidationURL   string       `json:"ValidationURL"`
}

// C2BRegisterResponse acknowledges a URL registration.
//
// OriginatorCoversationID keeps the provider's own spelling of the response
// field.
type C2BRegisterResponse struct {
	OriginatorConversationID string `json:"OriginatorCoversationID,omitempty" yaml:"originatorConversationId,omitempty"`
	ConversationID           string `json:"ConversationID,omitempty"          yaml:"conversationId,omitempty"`
	ResponseCode             string `json:"ResponseCode,omitempty"            yaml:"responseCode,omitempty"`
	ResponseDescription      string `json:"ResponseDescription"               yaml:"responseDescription"`
}

// ResponseStatus returns the provider's response code and description.
func (r C2BRegisterResponse) ResponseStatus() (string, string) {
	return r.ResponseCode, r.ResponseDescription
}

// Accepted reports whether the provider accepted the registration. The
// endpoint omits the response code on success, so absence counts as
// acceptance.
func (r C2BRegisterResponse) Accepted() bool {
	return r.ResponseCode == "" || r.ResponseCode == "0"
}

// C2BRegisterBuilder assembles a C2BRegisterRequest.
type C2BRegisterBuilder struct {
	req  C2BRegisterRequest
	errs []*ValidationError
}

// NewC2BRegisterBuilder starts a URL registration. ShortCode,
// ConfirmationURL, and ValidationURL must be set before Build. The response
// type defaults to Completed, which tells the provider to complete a payment
// when the validation endpoint is unreachable.
func NewC2BRegisterBuilder() *C2BRegisterBuilder {
	return &C2BRegisterBuilder{
		req: C2BRegisterRequest{ResponseType: ResponseCompleted},
	}
}

// ShortCode sets the organization shortcode being registered.
func (b *C2BRegisterBuilder) ShortCode(shortCode string) *C2BRegisterBuilder {
	b.req.ShortCode = shortCode

	return b
}

// ResponseType overrides the default Completed fallback behavior.
func (b *C2BRegisterBuilder) ResponseType(t ResponseType) *C2BRegisterBuilder {
	b.req.ResponseType = t

	return b
}

// ConfirmationURL sets the payment confirmation address without checking it.
func (b *C2BRegisterBuilder) ConfirmationURL(raw string) *C2BRegisterBuilder {
	b.req.ConfirmationURL = raw

	return b
}

// CheckedConfirmationURL sets the payment confirmation address, rejecting it
// at Build if it is not a well-formed absolute URL.
func (b *C2BRegisterBuilder) CheckedConfirmationURL(raw string) *C2BRegisterBuilder {
	b.errs = append(b.errs, checkURL("ConfirmationURL", raw))
	b.req.ConfirmationURL = raw

	return b
}

// ValidationURL sets the payment validation address without checking it.
func (b *C2BRegisterBuilder) ValidationURL(raw string) *C2BRegisterBuilder {
	b.req.ValidationURL = raw

	return b
}

// CheckedValidationURL sets the payment validation address, rejecting it at
// Build if it is not a well-formed absolute URL.
func (b *C2BRegisterBuilder) CheckedValidationURL(raw string) *C2BRegisterBuilder {
	b.errs = append(b.errs, checkURL("ValidationURL", raw))
	b.req.ValidationURL = raw

	return b
}

// Build validates the staged fields and freezes the request.
func (b *C2BRegisterBuilder) Build() (*C2BRegisterRequest, error) {
	if err := firstErr(b.errs); err != nil {
		return nil, err
	}

	switch {
	case b.req.ShortCode == "":
		return nil, missingField("ShortCode")
	case b.req.ConfirmationURL == "":
		return nil, missingField("ConfirmationURL")
	case b.req.ValidationURL == "":
		return nil, missingField("ValidationURL")
	}

	if !b.req.ResponseType.Valid() {
		return nil, &ValidationError{Field: "ResponseType", Message: "must be Completed or Cancelled"}
	}

	req := b.req

	return &req, nil
}

// C2BSimulateRequest simulates an inbound customer payment. The endpoint
// only exists in the sandbox environment.
type C2BSimulateRequest struct {
	CommandID     CommandID `json:"CommandID"`
	Amount        float64   `json:"Amount"`
	Msisdn        string    `json:"Msisdn"`
	BillRefNumber string    `json:"BillRefNumber"`
	ShortCode     string    `json:"ShortCode"`
}

// C2BSimulateResponse acknowledges a simulated payment.
type C2BSimulateResponse struct {
	OriginatorConversationID string `json:"OriginatorCoversationID,omitempty" yaml:"originatorConversationId,omitempty"`
	ConversationID           string `json:"ConversationID,omitempty"          yaml:"conversationId,omitempty"`
	ResponseCode             string `json:"ResponseCode,omitempty"            yaml:"responseCode,omitempty"`
	ResponseDescription      string `json:"ResponseDescription"               yaml:"responseDescription"`
}

// ResponseStatus returns the provider's response code and description.
func (r C2BSimulateResponse) ResponseStatus() (string, string) {
	return r.ResponseCode, r.ResponseDescription
}

// Accepted reports whether the provider accepted the simulation. The
// endpoint omits the response code on success, so absence counts as
// acceptance.
func (r C2BSimulateResponse) Accepted() bool {
	return r.ResponseCode == "" || r.ResponseCode == "0"
}

// C2BSimulateBuilder assembles a C2BSimulateRequest.
type C2BSimulateBuilder struct {
	req C2BSimulateRequest
}

// NewC2BSimulateBuilder starts a simulated customer payment. ShortCode,
// Msisdn, and a positive Amount must be set before Build. The command
// defaults to CustomerPayBillOnline and the bill reference to "None".
func NewC2BSimulateBuilder() *C2BSimulateBuilder {
	return &C2BSimulateBuilder{
		req: C2BSimulateRequest{
			CommandID:     CommandCustomerPayBillOnline,
			BillRefNumber: "None",
		},
	}
}

// CommandID overrides the default CustomerPayBillOnline command.
// CustomerBuyGoodsOnline is the other C2B command.
func (b *C2BSimulateBuilder) CommandID(id CommandID) *C2BSimulateBuilder {
	b.req.CommandID = id

	return b
}

// Amount sets the amount the simulated customer pays.
func (b *C2BSimulateBuilder) Amount(amount float64) *C2BSimulateBuilder {
	b.req.Amount = amount

	return b
}

// Msisdn sets the paying customer phone number in 2547XXXXXXXX format.
func (b *C2BSimulateBuilder) Msisdn(msisdn string) *C2BSimulateBuilder {
	b.req.Msisdn = msisdn

	return b
}

// BillRefNumber overrides the default bill account reference.
func (b *C2BSimulateBuilder) BillRefNumber(ref string) *C2BSimulateBuilder {
	b.req.BillRefNumber = ref

	return b
}

// ShortCode sets the organization shortcode receiving the payment.
func (b *C2BSimulateBuilder) ShortCode(shortCode string) *C2BSimulateBuilder {
	b.req.ShortCode = shortCode

	return b
}

// Build validates the staged fields and freezes the request.
func (b *C2BSimulateBuilder) Build() (*C2BSimulateRequest, error) {
	switch {
	case b.req.ShortCode == "":
		return nil, missingField("ShortCode")
	case b.req.Msisdn == "":
		return nil, missingField("Msisdn")
	}

	if b.req.Amount <= 0 {
		return nil, &ValidationError{Field: "Amount", Message: "must be greater than zero"}
	}

	switch b.req.CommandID {
	case CommandCustomerPayBillOnline, CommandCustomerBuyGoodsOnline:
	default:
		return nil, &ValidationError{Field: "CommandID", Message: "must be a C2B payment command"}
	}

	req := b.req

	return &req, nil
}
