package mpesa

// DynamicQRRequest generates a scannable payment QR code for a merchant.
type DynamicQRRequest struct {
	MerchantName          string          `json:"MerchantName"`
	RefNo                 string          `json:"RefNo"`
	Amount                float64         `json:"Amount"`
	TransactionType       TransactionType `json:"TrxCode"`
	CreditPartyIdentifier string          `json:"CPI"`
	Size                  string          `json:"Size"`
}

// DynamicQRResponse carries the generated QR code as a base64 image.
type DynamicQRResponse struct {
	QRCode              string `json:"QRCode"              yaml:"qrCode"`
	ResponseCode        string `json:"ResponseCode"        yaml:"responseCode"`
	ResponseDescription string `json:"ResponseDescription" yaml:"responseDescription"`
}

// ResponseStatus returns the provider's response code and description.
func (r DynamicQRResponse) ResponseStatus() (string, string) {
	return r.ResponseCode, r.ResponseDescription
}

// Accepted reports whether the QR code was generated.
func (r DynamicQRResponse) Accepted() bool { return r.ResponseCode == "00" || r.ResponseCode == "0" }

// DynamicQRBuilder assembles a DynamicQRRequest.
type DynamicQRBuilder struct {
	req DynamicQRRequest
}

// NewDynamicQRBuilder starts a QR code generation. MerchantName, RefNo, a
// positive Amount, TransactionType, and CreditPartyIdentifier must be set
// before Build. The image size defaults to 300 pixels.
func NewDynamicQRBuilder() *DynamicQRBuilder {
	return &DynamicQRBuilder{
		req: DynamicQRRequest{Size: "300"},
	}
}

// MerchantName sets the name shown to the paying customer.
func (b *DynamicQRBuilder) MerchantName(name string) *DynamicQRBuilder {
	b.req.MerchantName = name

	return b
}

// RefNo sets the transaction reference.
func (b *DynamicQRBuilder) RefNo(ref string) *DynamicQRBuilder {
	b.req.RefNo = ref

	return b
}

// Amount sets the amount encoded into the QR code.
func (b *DynamicQRBuilder) Amount(amount float64) *DynamicQRBuilder {
	b.req.Amount = amount

	return b
}

// TransactionType sets the payment kind the QR code triggers.
func (b *DynamicQRBuilder) TransactionType(t TransactionType) *DynamicQRBuilder {
	b.req.TransactionType = t

	return b
}

// CreditPartyIdentifier sets the receiving party: a phone number, till,
// paybill, or agent number depending on the transaction type.
func (b *DynamicQRBuilder) CreditPartyIdentifier(cpi string) *DynamicQRBuilder {
	b.req.CreditPartyIdentifier = cpi

	return b
}

// Size overrides the default 300 pixel image size. The image is always
// square.
func (b *DynamicQRBuilder) Size(size string) *DynamicQRBuilder {
	b.req.Size = size

	return b
}

// Build validates the staged fields and freezes the request.
func (b *DynamicQRBuilder) Build() (*DynamicQRRequest, error) {
	switch {
	case b.req.MerchantName == "":
		return nil, missingField("MerchantName")
	case b.req.RefNo == "":
		return nil, missingField("RefNo")
	case b.req.CreditPartyIdentifier == "":
		return nil, missingField("CPI")
	}

	if b.req.Amount <= 0 {
		return nil, &ValidationError{Field: "Amount", Message: "must be greater than zero"}
	}

	if !b.req.TransactionType.Valid() {
		return nil, &ValidationError{Field: "TrxCode", Message: "is not a known transaction type"}
	}

	req := b.req

	return &req, nil
}
