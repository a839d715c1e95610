package mpesa

import "github.com/google/uuid"

// B2CRequest pays out from an organization shortcode to a customer phone
// number: salaries, business payments, promotions. It is a privileged
// operation; SecurityCredential is filled in at dispatch time.
type B2CRequest struct {
	OriginatorConversationID string    `json:"OriginatorConversationID"`
	InitiatorName            string    `json:"InitiatorName"`
	SecurityCredential       string    `json:"SecurityCredential"`
	CommandID                CommandID `json:"CommandID"`
	Amount                   float64   `json:"Amount"`
	PartyA                   string    `json:"PartyA"`
	PartyB                   string    `json:"PartyB"`
	Remarks                  string    `json:"Remarks"`
	QueueTimeOutURL          string    `json:"QueueTimeOutURL"`
	ResultURL                string    `json:"ResultURL"`
	Occasion                 string    `json:"Occasion"`
}

// WithSecurityCredential implements PrivilegedRequest. The value receiver
// copies the request, so the original is untouched.
func (r B2CRequest) WithSecurityCredential(credential string) interface{} {
	r.SecurityCredential = credential

	return r
}

// B2CResponse acknowledges a B2C payment submission. The payment result
// arrives asynchronously on the result URL.
type B2CResponse struct {
	CoreResponse `yaml:",inline"`
}

// B2CBuilder assembles a B2CRequest.
type B2CBuilder struct {
	req  B2CRequest
	errs []*ValidationError
}

// NewB2CBuilder starts a business-to-customer payment issued by the given
// initiator. PartyA, PartyB, a positive Amount, ResultURL, and
// QueueTimeoutURL must be set before Build. The command defaults to
// BusinessPayment and the originator conversation ID to a fresh UUID, which
// the provider uses to de-duplicate resubmissions.
func NewB2CBuilder(initiatorName string) *B2CBuilder {
	return &B2CBuilder{
		req: B2CRequest{
			OriginatorConversationID: uuid.NewString(),
			InitiatorName:            initiatorName,
			CommandID:                CommandBusinessPayment,
			Remarks:                  "None",
			Occasion:                 "None",
		},
	}
}

// CommandID overrides the default BusinessPayment command. SalaryPayment and
// PromotionPayment are the other B2C commands.
func (b *B2CBuilder) CommandID(id CommandID) *B2CBuilder {
	b.req.CommandID = id

	return b
}

// OriginatorConversationID overrides the generated submission identifier.
// Reusing an identifier lets the provider reject a duplicate submission.
func (b *B2CBuilder) OriginatorConversationID(id string) *B2CBuilder {
	b.req.OriginatorConversationID = id

	return b
}

// PartyA sets the paying organization shortcode.
func (b *B2CBuilder) PartyA(shortCode string) *B2CBuilder {
	b.req.PartyA = shortCode

	return b
}

// PartyB sets the receiving customer phone number in 2547XXXXXXXX format.
func (b *B2CBuilder) PartyB(phoneNumber string) *B2CBuilder {
	b.req.PartyB = phoneNumber

	return b
}

// Amount sets the amount to pay out.
func (b *B2CBuilder) Amount(amount float64) *B2CBuilder {
	b.req.Amount = amount

	return b
}

// Remarks overrides the default remarks comment.
func (b *B2CBuilder) Remarks(remarks string) *B2CBuilder {
	b.req.Remarks = remarks

	return b
}

// Occasion overrides the default occasion comment.
func (b *B2CBuilder) Occasion(occasion string) *B2CBuilder {
	b.req.Occasion = occasion

	return b
}

// ResultURL sets the result callback address without checking it.
func (b *B2CBuilder) ResultURL(raw string) *B2CBuilder {
	b.req.ResultURL = raw

	return b
}

// CheckedResultURL sets the result callback address, rejecting it at Build
// if it is not a well-formed absolute URL.
func (b *B2CBuilder) CheckedResultURL(raw string) *B2CBuilder {
	b.errs = append(b.errs, checkURL("ResultURL", raw))
	b.req.ResultURL = raw

	return b
}

// QueueTimeoutURL sets the timeout callback address without checking it.
func (b *B2CBuilder) QueueTimeoutURL(raw string) *B2CBuilder {
	b.req.QueueTimeOutURL = raw

	return b
}

// CheckedQueueTimeoutURL sets the timeout callback address, rejecting it at
// Build if it is not a well-formed absolute URL.
func (b *B2CBuilder) CheckedQueueTimeoutURL(raw string) *B2CBuilder {
	b.errs = append(b.errs, checkURL("QueueTimeOutURL", raw))
	b.req.QueueTimeOutURL = raw

	return b
}

// Build validates the staged fields and freezes the request.
func (b *B2CBuilder) Build() (*B2CRequest, error) {
	if err := firstErr(b.errs); err != nil {
		return nil, err
	}

	switch {
	case b.req.InitiatorName == "":
		return nil, missingField("InitiatorName")
	case b.req.PartyA == "":
		return nil, missingField("PartyA")
	case b.req.PartyB == "":
		return nil, missingField("PartyB")
	case b.req.ResultURL == "":
		return nil, missingField("ResultURL")
	case b.req.QueueTimeOutURL == "":
		return nil, missingField("QueueTimeOutURL")
	}

	if b.req.Amount <= 0 {
		return nil, &ValidationError{Field: "Amount", Message: "must be greater than zero"}
	}

	switch b.req.CommandID {
	case CommandSalaryPayment, CommandBusinessPayment, CommandPromotionPayment:
	default:
		return nil, &ValidationError{Field: "CommandID", Message: "must be a B2C payment command"}
	}

	req := b.req

	return &req, nil
}
