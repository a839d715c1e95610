package mpesa

import (
	"encoding/base64"
	"time"
)

// DefaultPasskey is the published STK push passkey for the sandbox
// environment. Production shortcodes receive their own passkey from the
// provider.
const DefaultPasskey = "bfb279f9aa9bdbcf158e97dd71a467cd2e0c893059b10f78e6b72ada1ed2c919"

// expressTimestampLayout is the YYYYMMDDHHMMSS format the API expects.
const expressTimestampLayout = "20060102150405"

// EncodeExpressPassword derives the express API password: the base64
// encoding of the shortcode, passkey, and timestamp concatenated in that
// order.
func EncodeExpressPassword(businessShortCode, passkey, timestamp string) string {
	return base64.StdEncoding.EncodeToString([]byte(businessShortCode + passkey + timestamp))
}

// ExpressRequest initiates an STK push: a payment prompt on the customer's
// phone. Password and Timestamp are derived by the builder.
type ExpressRequest struct {
	BusinessShortCode string    `json:"BusinessShortCode"`
	Password          string    `json:"Password"`
	Timestamp         string    `json:"Timestamp"`
	TransactionType   CommandID `json:"TransactionType"`
	Amount            float64   `json:"Amount"`
	PartyA            string    `json:"PartyA"`
	PartyB            string    `json:"PartyB"`
	PhoneNumber       string    `json:"PhoneNumber"`
	CallBackURL       string    `json:"CallBackURL"`
	AccountReference  string    `json:"AccountReference"`
	TransactionDesc   string    `json:"TransactionDesc,omitempty"`
}

// ExpressResponse acknowledges an STK push submission. The payment outcome
// arrives on the callback URL; CheckoutRequestID keys the follow-up query.
type ExpressResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"   yaml:"merchantRequestId"`
	CheckoutRequestID   string `json:"CheckoutRequestID"   yaml:"checkoutRequestId"`
	ResponseCode        string `json:"ResponseCode"        yaml:"responseCode"`
	ResponseDescription string `json:"ResponseDescription" yaml:"responseDescription"`
	CustomerMessage     string `json:"CustomerMessage"     yaml:"customerMessage"`
}

// ResponseStatus returns the provider's response code and description.
func (r ExpressResponse) ResponseStatus() (string, string) {
	return r.ResponseCode, r.ResponseDescription
}

// Accepted reports whether the provider accepted the push request.
func (r ExpressResponse) Accepted() bool { return r.ResponseCode == "0" }

// ExpressBuilder assembles an ExpressRequest.
type ExpressBuilder struct {
	req     ExpressRequest
	passkey string
	now     time.Time
	errs    []*ValidationError
}

// NewExpressBuilder starts an STK push for the given business shortcode.
// Amount, PartyA, PartyB, PhoneNumber, CallbackURL, and AccountReference
// must be set before Build. The transaction type defaults to
// CustomerPayBillOnline and the passkey to the sandbox value; Build derives
// Password and Timestamp from them.
func NewExpressBuilder(businessShortCode string) *ExpressBuilder {
	return &ExpressBuilder{
		req: ExpressRequest{
			BusinessShortCode: businessShortCode,
			TransactionType:   CommandCustomerPayBillOnline,
		},
		passkey: DefaultPasskey,
	}
}

// TransactionType overrides the default CustomerPayBillOnline command. Only
// CustomerPayBillOnline and CustomerBuyGoodsOnline are accepted.
func (b *ExpressBuilder) TransactionType(id CommandID) *ExpressBuilder {
	b.req.TransactionType = id

	return b
}

// Passkey overrides the default sandbox passkey.
func (b *ExpressBuilder) Passkey(passkey string) *ExpressBuilder {
	b.passkey = passkey

	return b
}

// Amount sets the amount to charge.
func (b *ExpressBuilder) Amount(amount float64) *ExpressBuilder {
	b.req.Amount = amount

	return b
}

// PartyA sets the paying customer phone number in 2547XXXXXXXX format.
func (b *ExpressBuilder) PartyA(phoneNumber string) *ExpressBuilder {
	b.req.PartyA = phoneNumber

	return b
}

// PartyB sets the organization shortcode receiving the funds.
func (b *ExpressBuilder) PartyB(shortCode string) *ExpressBuilder {
	b.req.PartyB = shortCode

	return b
}

// PhoneNumber sets the number that receives the PIN prompt, usually the
// same as PartyA.
func (b *ExpressBuilder) PhoneNumber(phoneNumber string) *ExpressBuilder {
	b.req.PhoneNumber = phoneNumber

	return b
}

// AccountReference sets the transaction identifier shown to the customer.
func (b *ExpressBuilder) AccountReference(ref string) *ExpressBuilder {
	b.req.AccountReference = ref

	return b
}

// TransactionDesc sets an optional comment sent along with the request.
func (b *ExpressBuilder) TransactionDesc(desc string) *ExpressBuilder {
	b.req.TransactionDesc = desc

	return b
}

// Timestamp pins the request timestamp instead of using the current time.
func (b *ExpressBuilder) Timestamp(t time.Time) *ExpressBuilder {
	b.now = t

	return b
}

// CallbackURL sets the result callback address without checking it.
func (b *ExpressBuilder) CallbackURL(raw string) *ExpressBuilder {
	b.req.CallBackURL = raw

	return b
}

// CheckedCallbackURL sets the result callback address, rejecting it at
// Build if it is not a well-formed absolute URL.
func (b *ExpressBuilder) CheckedCallbackURL(raw string) *ExpressBuilder {
	b.errs = append(b.errs, checkURL("CallBackURL", raw))
	b.req.CallBackURL = raw

	return b
}

// Build validates the staged fields, derives Password and Timestamp, and
// freezes the request.
func (b *ExpressBuilder) Build() (*ExpressRequest, error) {
	if err := firstErr(b.errs); err != nil {
		return nil, err
	}

	switch {
	case b.req.BusinessShortCode == "":
		return nil, missingField("BusinessShortCode")
	case b.req.PartyA == "":
		return nil, missingField("PartyA")
	case b.req.PartyB == "":
		return nil, missingField("PartyB")
	case b.req.PhoneNumber == "":
		return nil, missingField("PhoneNumber")
	case b.req.CallBackURL == "":
		return nil, missingField("CallBackURL")
	case b.req.AccountReference == "":
		return nil, missingField("AccountReference")
	}

	if b.req.Amount <= 0 {
		return nil, &ValidationError{Field: "Amount", Message: "must be greater than zero"}
	}

	switch b.req.TransactionType {
	case CommandCustomerPayBillOnline, CommandCustomerBuyGoodsOnline:
	default:
		return nil, &ValidationError{Field: "TransactionType", Message: ErrInvalidTransactionTyp.Error()}
	}

	now := b.now
	if now.IsZero() {
		now = time.Now()
	}

	req := b.req
	req.Timestamp = now.Format(expressTimestampLayout)
	req.Password = EncodeExpressPassword(req.BusinessShortCode, b.passkey, req.Timestamp)

	return &req, nil
}

// ExpressQueryRequest looks up the outcome of an earlier STK push by its
// checkout request identifier.
type ExpressQueryRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	CheckoutRequestID string `json:"CheckoutRequestID"`
}

// ExpressQueryResponse reports the outcome of an STK push. ResponseCode
// acknowledges the query itself; ResultCode is the outcome of the payment
// being queried.
type ExpressQueryResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"   yaml:"merchantRequestId"`
	CheckoutRequestID   string `json:"CheckoutRequestID"   yaml:"checkoutRequestId"`
	ResponseCode        string `json:"ResponseCode"        yaml:"responseCode"`
	ResponseDescription string `json:"ResponseDescription" yaml:"responseDescription"`
	ResultCode          string `json:"ResultCode"          yaml:"resultCode"`
	ResultDesc          string `json:"ResultDesc"          yaml:"resultDesc"`
}

// ResponseStatus returns the provider's response code and description.
func (r ExpressQueryResponse) ResponseStatus() (string, string) {
	return r.ResponseCode, r.ResponseDescription
}

// Accepted reports whether the provider accepted the query. A successful
// query can still carry a non-zero ResultCode for the payment itself.
func (r ExpressQueryResponse) Accepted() bool { return r.ResponseCode == "0" }

// ExpressQueryBuilder assembles an ExpressQueryRequest.
type ExpressQueryBuilder struct {
	req     ExpressQueryRequest
	passkey string
	now     time.Time
}

// NewExpressQueryBuilder starts a push status query for the given business
// shortcode. CheckoutRequestID must be set before Build.
func NewExpressQueryBuilder(businessShortCode string) *ExpressQueryBuilder {
	return &ExpressQueryBuilder{
		req:     ExpressQueryRequest{BusinessShortCode: businessShortCode},
		passkey: DefaultPasskey,
	}
}

// Passkey overrides the default sandbox passkey.
func (b *ExpressQueryBuilder) Passkey(passkey string) *ExpressQueryBuilder {
	b.passkey = passkey

	return b
}

// CheckoutRequestID sets the identifier returned by the push submission.
func (b *ExpressQueryBuilder) CheckoutRequestID(id string) *ExpressQueryBuilder {
	b.req.CheckoutRequestID = id

	return b
}

// Timestamp pins the request timestamp instead of using the current time.
func (b *ExpressQueryBuilder) Timestamp(t time.Time) *ExpressQueryBuilder {
	b.now = t

	return b
}

// Build validates the staged fields, derives Password and Timestamp, and
// freezes the request.
func (b *ExpressQueryBuilder) Build() (*ExpressQueryRequest, error) {
	switch {
	case b.req.BusinessShortCode == "":
		return nil, missingField("BusinessShortCode")
	case b.req.CheckoutRequestID == "":
		return nil, missingField("CheckoutRequestID")
	}

	now := b.now
	if now.IsZero() {
		now = time.Now()
	}

	req := b.req
	req.Timestamp = now.Format(expressTimestampLayout)
	req.Password = EncodeExpressPassword(req.BusinessShortCode, b.passkey, req.Timestamp)

	return &req, nil
}
