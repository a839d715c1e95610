package mpesa

// B2BRequest moves money between two organization shortcodes: paybill
// settlements, till purchases, transfers. It is a privileged operation;
// SecurityCredential is filled in at dispatch time.
//
// RecieverIdentifierType keeps the provider's own spelling of the wire
// field; the API rejects the corrected form.
type B2BRequest struct {
	Initiator              string         `json:"Initiator"`
	SecurityCredential     string         `json:"SecurityCredential"`
	CommandID              CommandID      `json:"CommandID"`
	SenderIdentifierType   IdentifierType `json:"SenderIdentifierType"`
	ReceiverIdentifierType IdentifierType `json:"RecieverIdentifierType"`
	Amount                 float64        `json:"Amount"`
	PartyA                 string         `json:"PartyA"`
	PartyB                 string         `json:"PartyB"`
	AccountReference       string         `json:"AccountReference"`
	Remarks                string         `json:"Remarks"`
	QueueTimeOutURL        string         `json:"QueueTimeOutURL"`
	ResultURL              string         `json:"ResultURL"`
}

// WithSecurityCredential implements PrivilegedRequest. The value receiver
// copies the request, so the original is untouched.
func (r B2BRequest) WithSecurityCredential(credential string) interface{} {
	r.SecurityCredential = credential

	return r
}

// B2BResponse acknowledges a B2B payment submission.
type B2BResponse struct {
	CoreResponse `yaml:",inline"`
}

// B2BBuilder assembles a B2BRequest.
type B2BBuilder struct {
	req  B2BRequest
	errs []*ValidationError
}

// NewB2BBuilder starts a business-to-business payment issued by the given
// initiator. PartyA, PartyB, a positive Amount, AccountReference, ResultURL,
// and QueueTimeoutURL must be set before Build. Both parties default to the
// Shortcode identifier and the command to BusinessToBusinessTransfer.
func NewB2BBuilder(initiator string) *B2BBuilder {
	return &B2BBuilder{
		req: B2BRequest{
			Initiator:              initiator,
			CommandID:              CommandBusinessToBusinessTransfer,
			SenderIdentifierType:   IdentifierShortcode,
			ReceiverIdentifierType: IdentifierShortcode,
			Remarks:                "None",
		},
	}
}

// CommandID overrides the default BusinessToBusinessTransfer command.
func (b *B2BBuilder) CommandID(id CommandID) *B2BBuilder {
	b.req.CommandID = id

	return b
}

// PartyA sets the sending organization shortcode.
func (b *B2BBuilder) PartyA(shortCode string) *B2BBuilder {
	b.req.PartyA = shortCode

	return b
}

// PartyB sets the receiving organization shortcode.
func (b *B2BBuilder) PartyB(shortCode string) *B2BBuilder {
	b.req.PartyB = shortCode

	return b
}

// SenderIdentifierType overrides the default Shortcode identifier for PartyA.
func (b *B2BBuilder) SenderIdentifierType(t IdentifierType) *B2BBuilder {
	b.req.SenderIdentifierType = t

	return b
}

// ReceiverIdentifierType overrides the default Shortcode identifier for
// PartyB.
func (b *B2BBuilder) ReceiverIdentifierType(t IdentifierType) *B2BBuilder {
	b.req.ReceiverIdentifierType = t

	return b
}

// Amount sets the amount to transfer.
func (b *B2BBuilder) Amount(amount float64) *B2BBuilder {
	b.req.Amount = amount

	return b
}

// AccountReference sets the account the payment is credited against on the
// receiving paybill.
func (b *B2BBuilder) AccountReference(ref string) *B2BBuilder {
	b.req.AccountReference = ref

	return b
}

// Remarks overrides the default remarks comment.
func (b *B2BBuilder) Remarks(remarks string) *B2BBuilder {
	b.req.Remarks = remarks

	return b
}

// ResultURL sets the result callback address without checking it.
func (b *B2BBuilder) ResultURL(raw string) *B2BBuilder {
	b.req.ResultURL = raw

	return b
}

// CheckedResultURL sets the result callback address, rejecting it at Build
// if it is not a well-formed absolute URL.
func (b *B2BBuilder) CheckedResultURL(raw string) *B2BBuilder {
	b.errs = append(b.errs, checkURL("ResultURL", raw))
	b.req.ResultURL = raw

	return b
}

// QueueTimeoutURL sets the timeout callback address without checking it.
func (b *B2BBuilder) QueueTimeoutURL(raw string) *B2BBuilder {
	b.req.QueueTimeOutURL = raw

	return b
}

// CheckedQueueTimeoutURL sets the timeout callback address, rejecting it at
// Build if it is not a well-formed absolute URL.
func (b *B2BBuilder) CheckedQueueTimeoutURL(raw string) *B2BBuilder {
	b.errs = append(b.errs, checkURL("QueueTimeOutURL", raw))
	b.req.QueueTimeOutURL = raw

	return b
}

// Build validates the staged fields and freezes the request.
func (b *B2BBuilder) Build() (*B2BRequest, error) {
	if err := firstErr(b.errs); err != nil {
		return nil, err
	}

	switch {
	case b.req.Initiator == "":
		return nil, missingField("Initiator")
	case b.req.PartyA == "":
		return nil, missingField("PartyA")
	case b.req.PartyB == "":
		return nil, missingField("PartyB")
	case b.req.AccountReference == "":
		return nil, missingField("AccountReference")
	case b.req.ResultURL == "":
		return nil, missingField("ResultURL")
	case b.req.QueueTimeOutURL == "":
		return nil, missingField("QueueTimeOutURL")
	}

	if b.req.Amount <= 0 {
		return nil, &ValidationError{Field: "Amount", Message: "must be greater than zero"}
	}

	if !b.req.SenderIdentifierType.Valid() {
		return nil, &ValidationError{Field: "SenderIdentifierType", Message: "is not a known identifier type"}
	}

	if !b.req.ReceiverIdentifierType.Valid() {
		return nil, &ValidationError{Field: "RecieverIdentifierType", Message: "is not a known identifier type"}
	}

	switch b.req.CommandID {
	case CommandBusinessPayBill, CommandBusinessBuyGoods, CommandDisburseFundsToBusiness,
		CommandBusinessToBusinessTransfer, CommandBusinessTransferFromMMF:
	default:
		return nil, &ValidationError{Field: "CommandID", Message: "must be a B2B transfer command"}
	}

	req := b.req

	return &req, nil
}
