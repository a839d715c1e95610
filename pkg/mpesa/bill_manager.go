package mpesa

import "time"

// OnboardRequest opts a shortcode in as a biller on the bill manager
// service. The bill manager endpoints use camelCase wire fields, unlike the
// core operations.
type OnboardRequest struct {
	CallbackURL     string        `json:"callbackUrl"`
	Email           string        `json:"email"`
	Logo            string        `json:"logo"`
	OfficialContact string        `json:"officialContact"`
	SendReminders   SendReminders `json:"sendReminders"`
	ShortCode       string        `json:"shortcode"`
}

// OnboardResponse acknowledges biller onboarding. AppKey authenticates
// subsequent bill manager calls on the provider side.
type OnboardResponse struct {
	AppKey            string `json:"app_key" yaml:"appKey"`
	BillManagerStatus `yaml:",inline"`
}

// OnboardBuilder assembles an OnboardRequest.
type OnboardBuilder struct {
	req  OnboardRequest
	errs []*ValidationError
}

// NewOnboardBuilder starts a biller onboarding. ShortCode, CallbackURL,
// Email, Logo, and OfficialContact must be set before Build. Payment
// reminders default to disabled.
func NewOnboardBuilder() *OnboardBuilder {
	return &OnboardBuilder{}
}

// ShortCode sets the shortcode being onboarded.
func (b *OnboardBuilder) ShortCode(shortCode string) *OnboardBuilder {
	b.req.ShortCode = shortCode

	return b
}

// Email sets the biller's official contact email.
func (b *OnboardBuilder) Email(email string) *OnboardBuilder {
	b.req.Email = email

	return b
}

// Logo sets the image shown on invoices and payment receipts.
func (b *OnboardBuilder) Logo(logo string) *OnboardBuilder {
	b.req.Logo = logo

	return b
}

// OfficialContact sets the biller's official contact phone number.
func (b *OnboardBuilder) OfficialContact(contact string) *OnboardBuilder {
	b.req.OfficialContact = contact

	return b
}

// SendReminders enables or disables payment reminders to customers.
func (b *OnboardBuilder) SendReminders(s SendReminders) *OnboardBuilder {
	b.req.SendReminders = s

	return b
}

// CallbackURL sets the payment notification address without checking it.
func (b *OnboardBuilder) CallbackURL(raw string) *OnboardBuilder {
	b.req.CallbackURL = raw

	return b
}

// CheckedCallbackURL sets the payment notification address, rejecting it at
// Build if it is not a well-formed absolute URL.
func (b *OnboardBuilder) CheckedCallbackURL(raw string) *OnboardBuilder {
	b.errs = append(b.errs, checkURL("callbackUrl", raw))
	b.req.CallbackURL = raw

	return b
}

// Build validates the staged fields and freezes the request.
func (b *OnboardBuilder) Build() (*OnboardRequest, error) {
	if err := firstErr(b.errs); err != nil {
		return nil, err
	}

	switch {
	case b.req.ShortCode == "":
		return nil, missingField("shortcode")
	case b.req.CallbackURL == "":
		return nil, missingField("callbackUrl")
	case b.req.Email == "":
		return nil, missingField("email")
	case b.req.Logo == "":
		return nil, missingField("logo")
	case b.req.OfficialContact == "":
		return nil, missingField("officialContact")
	}

	req := b.req

	return &req, nil
}

// OnboardModifyRequest updates an onboarded biller's details. Only the set
// fields are sent; ShortCode identifies the biller and is always required.
type OnboardModifyRequest struct {
	CallbackURL     string         `json:"callbackUrl,omitempty"`
	Email           string         `json:"email,omitempty"`
	Logo            string         `json:"logo,omitempty"`
	OfficialContact string         `json:"officialContact,omitempty"`
	SendReminders   *SendReminders `json:"sendReminders,omitempty"`
	ShortCode       string         `json:"shortcode"`
}

// OnboardModifyResponse acknowledges a biller detail update.
type OnboardModifyResponse struct {
	BillManagerStatus `yaml:",inline"`
}

// OnboardModifyBuilder assembles an OnboardModifyRequest.
type OnboardModifyBuilder struct {
	req  OnboardModifyRequest
	errs []*ValidationError
}

// NewOnboardModifyBuilder starts a detail update for an onboarded
// shortcode. Every other field is optional; unset fields keep their current
// value on the provider side.
func NewOnboardModifyBuilder(shortCode string) *OnboardModifyBuilder {
	return &OnboardModifyBuilder{
		req: OnboardModifyRequest{ShortCode: shortCode},
	}
}

// Email replaces the biller's contact email.
func (b *OnboardModifyBuilder) Email(email string) *OnboardModifyBuilder {
	b.req.Email = email

	return b
}

// Logo replaces the invoice logo.
func (b *OnboardModifyBuilder) Logo(logo string) *OnboardModifyBuilder {
	b.req.Logo = logo

	return b
}

// OfficialContact replaces the contact phone number.
func (b *OnboardModifyBuilder) OfficialContact(contact string) *OnboardModifyBuilder {
	b.req.OfficialContact = contact

	return b
}

// SendReminders enables or disables payment reminders.
func (b *OnboardModifyBuilder) SendReminders(s SendReminders) *OnboardModifyBuilder {
	b.req.SendReminders = &s

	return b
}

// CallbackURL replaces the payment notification address without checking
// it.
func (b *OnboardModifyBuilder) CallbackURL(raw string) *OnboardModifyBuilder {
	b.req.CallbackURL = raw

	return b
}

// CheckedCallbackURL replaces the payment notification address, rejecting
// it at Build if it is not a well-formed absolute URL.
func (b *OnboardModifyBuilder) CheckedCallbackURL(raw string) *OnboardModifyBuilder {
	b.errs = append(b.errs, checkURL("callbackUrl", raw))
	b.req.CallbackURL = raw

	return b
}

// Build validates the staged fields and freezes the request.
func (b *OnboardModifyBuilder) Build() (*OnboardModifyRequest, error) {
	if err := firstErr(b.errs); err != nil {
		return nil, err
	}

	if b.req.ShortCode == "" {
		return nil, missingField("shortcode")
	}

	req := b.req

	return &req, nil
}

// InvoiceItem is a line item on an invoice.
type InvoiceItem struct {
	Amount   float64 `json:"amount"`
	ItemName string  `json:"itemName"`
}

// Invoice is a single customer invoice. DueDate marshals as RFC 3339.
type Invoice struct {
	Amount            float64       `json:"amount"`
	AccountReference  string        `json:"accountReference"`
	BilledFullName    string        `json:"billedFullName"`
	BilledPeriod      string        `json:"billedPeriod"`
	BilledPhoneNumber string        `json:"billedPhoneNumber"`
	DueDate           time.Time     `json:"dueDate"`
	ExternalReference string        `json:"externalReference"`
	InvoiceItems      []InvoiceItem `json:"invoiceItems,omitempty"`
	InvoiceName       string        `json:"invoiceName"`
}

// SingleInvoiceRequest sends one invoice to one customer.
type SingleInvoiceRequest = Invoice

// SingleInvoiceResponse acknowledges a sent invoice.
type SingleInvoiceResponse struct {
	BillManagerStatus `yaml:",inline"`
	StatusMessage     string `json:"Status_Message" yaml:"statusMessage"`
}

// BulkInvoiceRequest sends a batch of invoices in one call. It marshals as
// a bare JSON array.
type BulkInvoiceRequest []Invoice

// BulkInvoiceResponse acknowledges a sent invoice batch.
type BulkInvoiceResponse struct {
	BillManagerStatus `yaml:",inline"`
	StatusMessage     string `json:"Status_Message" yaml:"statusMessage"`
}

// InvoiceBuilder assembles an Invoice for single or bulk sending.
type InvoiceBuilder struct {
	inv Invoice
}

// NewInvoiceBuilder starts an invoice. ExternalReference, InvoiceName,
// AccountReference, BilledFullName, BilledPhoneNumber, BilledPeriod,
// DueDate, and a positive Amount must all be set before Build.
func NewInvoiceBuilder() *InvoiceBuilder {
	return &InvoiceBuilder{}
}

// Amount sets the total amount due in Kenyan shillings.
func (b *InvoiceBuilder) Amount(amount float64) *InvoiceBuilder {
	b.inv.Amount = amount

	return b
}

// AccountReference sets the account number that identifies the customer.
func (b *InvoiceBuilder) AccountReference(ref string) *InvoiceBuilder {
	b.inv.AccountReference = ref

	return b
}

// BilledFullName sets the recipient's name.
func (b *InvoiceBuilder) BilledFullName(name string) *InvoiceBuilder {
	b.inv.BilledFullName = name

	return b
}

// BilledPeriod sets the period being billed, for example "August 2026".
func (b *InvoiceBuilder) BilledPeriod(period string) *InvoiceBuilder {
	b.inv.BilledPeriod = period

	return b
}

// BilledPhoneNumber sets the number that receives the invoice SMS.
func (b *InvoiceBuilder) BilledPhoneNumber(phoneNumber string) *InvoiceBuilder {
	b.inv.BilledPhoneNumber = phoneNumber

	return b
}

// DueDate sets the payment deadline.
func (b *InvoiceBuilder) DueDate(due time.Time) *InvoiceBuilder {
	b.inv.DueDate = due

	return b
}

// ExternalReference sets the biller's own invoice identifier. It keys later
// cancellation.
func (b *InvoiceBuilder) ExternalReference(ref string) *InvoiceBuilder {
	b.inv.ExternalReference = ref

	return b
}

// InvoiceName sets the descriptive name shown on the invoice.
func (b *InvoiceBuilder) InvoiceName(name string) *InvoiceBuilder {
	b.inv.InvoiceName = name

	return b
}

// AddItem appends a line item. Items are optional; the invoice total is
// Amount regardless of items.
func (b *InvoiceBuilder) AddItem(itemName string, amount float64) *InvoiceBuilder {
	b.inv.InvoiceItems = append(b.inv.InvoiceItems, InvoiceItem{Amount: amount, ItemName: itemName})

	return b
}

// Build validates the staged fields and freezes the invoice.
func (b *InvoiceBuilder) Build() (*Invoice, error) {
	switch {
	case b.inv.ExternalReference == "":
		return nil, missingField("externalReference")
	case b.inv.InvoiceName == "":
		return nil, missingField("invoiceName")
	case b.inv.AccountReference == "":
		return nil, missingField("accountReference")
	case b.inv.BilledFullName == "":
		return nil, missingField("billedFullName")
	case b.inv.BilledPhoneNumber == "":
		return nil, missingField("billedPhoneNumber")
	case b.inv.BilledPeriod == "":
		return nil, missingField("billedPeriod")
	case b.inv.DueDate.IsZero():
		return nil, missingField("dueDate")
	}

	if b.inv.Amount <= 0 {
		return nil, &ValidationError{Field: "amount", Message: "must be greater than zero"}
	}

	inv := b.inv
	inv.InvoiceItems = append([]InvoiceItem(nil), b.inv.InvoiceItems...)

	return &inv, nil
}

// BulkInvoiceBuilder collects invoices into a batch.
type BulkInvoiceBuilder struct {
	invoices []Invoice
}

// NewBulkInvoiceBuilder starts an invoice batch. At least one invoice must
// be added before Build.
func NewBulkInvoiceBuilder() *BulkInvoiceBuilder {
	return &BulkInvoiceBuilder{}
}

// Add appends a built invoice to the batch.
func (b *BulkInvoiceBuilder) Add(inv Invoice) *BulkInvoiceBuilder {
	b.invoices = append(b.invoices, inv)

	return b
}

// Build validates the batch and freezes it.
func (b *BulkInvoiceBuilder) Build() (*BulkInvoiceRequest, error) {
	if len(b.invoices) == 0 {
		return nil, &ValidationError{Field: "invoices", Message: "must contain at least one invoice"}
	}

	req := BulkInvoiceRequest(append([]Invoice(nil), b.invoices...))

	return &req, nil
}

// ReconciliationRequest notifies bill manager of a payment received outside
// it, so the matching invoice can be marked settled.
type ReconciliationRequest struct {
	AccountReference string    `json:"accountReference"`
	DateCreated      time.Time `json:"dateCreated"`
	Msisdn           string    `json:"msisdn"`
	PaidAmount       float64   `json:"paidAmount"`
	ShortCode        string    `json:"shortCode"`
	TransactionID    string    `json:"transactionId"`
}

// ReconciliationResponse acknowledges a reconciliation.
type ReconciliationResponse struct {
	BillManagerStatus `yaml:",inline"`
}

// ReconciliationBuilder assembles a ReconciliationRequest.
type ReconciliationBuilder struct {
	req ReconciliationRequest
}

// NewReconciliationBuilder starts a reconciliation. AccountReference,
// Msisdn, ShortCode, TransactionID, and a positive PaidAmount must be set
// before Build. The payment date defaults to the current time.
func NewReconciliationBuilder() *ReconciliationBuilder {
	return &ReconciliationBuilder{
		req: ReconciliationRequest{DateCreated: time.Now()},
	}
}

// AccountReference sets the invoiced account the payment settles.
func (b *ReconciliationBuilder) AccountReference(ref string) *ReconciliationBuilder {
	b.req.AccountReference = ref

	return b
}

// DateCreated overrides the default payment date.
func (b *ReconciliationBuilder) DateCreated(t time.Time) *ReconciliationBuilder {
	b.req.DateCreated = t

	return b
}

// Msisdn sets the paying customer phone number.
func (b *ReconciliationBuilder) Msisdn(msisdn string) *ReconciliationBuilder {
	b.req.Msisdn = msisdn

	return b
}

// PaidAmount sets the amount that was paid.
func (b *ReconciliationBuilder) PaidAmount(amount float64) *ReconciliationBuilder {
	b.req.PaidAmount = amount

	return b
}

// ShortCode sets the shortcode that received the payment.
func (b *ReconciliationBuilder) ShortCode(shortCode string) *ReconciliationBuilder {
	b.req.ShortCode = shortCode

	return b
}

// TransactionID sets the M-Pesa receipt number of the payment.
func (b *ReconciliationBuilder) TransactionID(id string) *ReconciliationBuilder {
	b.req.TransactionID = id

	return b
}

// Build validates the staged fields and freezes the request.
func (b *ReconciliationBuilder) Build() (*ReconciliationRequest, error) {
	switch {
	case b.req.AccountReference == "":
		return nil, missingField("accountReference")
	case b.req.Msisdn == "":
		return nil, missingField("msisdn")
	case b.req.ShortCode == "":
		return nil, missingField("shortCode")
	case b.req.TransactionID == "":
		return nil, missingField("transactionId")
	}

	if b.req.PaidAmount <= 0 {
		return nil, &ValidationError{Field: "paidAmount", Message: "must be greater than zero"}
	}

	req := b.req

	return &req, nil
}

// CancelInvoiceRequest recalls a previously sent invoice by its external
// reference.
type CancelInvoiceRequest struct {
	ExternalReference string `json:"externalReference"`
}

// CancelInvoiceResponse acknowledges an invoice cancellation.
type CancelInvoiceResponse struct {
	BillManagerStatus `yaml:",inline"`
	StatusMessage     string `json:"Status_Message" yaml:"statusMessage"`
}

// NewCancelInvoiceRequest builds a cancellation for the given external
// reference. It fails with a ValidationError when the reference is empty.
func NewCancelInvoiceRequest(externalReference string) (*CancelInvoiceRequest, error) {
	if externalReference == "" {
		return nil, missingField("externalReference")
	}

	return &CancelInvoiceRequest{ExternalReference: externalReference}, nil
}

// BulkCancelInvoiceRequest recalls several invoices in one call. A pointer
// to it marshals as a bare JSON array, which is the shape the endpoint
// expects.
type BulkCancelInvoiceRequest []CancelInvoiceRequest

// BulkCancelInvoiceResponse acknowledges a bulk cancellation.
type BulkCancelInvoiceResponse struct {
	BillManagerStatus `yaml:",inline"`
	StatusMessage     string `json:"Status_Message" yaml:"statusMessage"`
}

// NewBulkCancelInvoiceRequest builds a bulk cancellation for the given
// external references. At least one reference is required and none may be
// empty.
func NewBulkCancelInvoiceRequest(externalReferences ...string) (*BulkCancelInvoiceRequest, error) {
	if len(externalReferences) == 0 {
		return nil, missingField("externalReference")
	}

	req := make(BulkCancelInvoiceRequest, 0, len(externalReferences))

	for _, ref := range externalReferences {
		if ref == "" {
			return nil, missingField("externalReference")
		}

		req = append(req, CancelInvoiceRequest{ExternalReference: ref})
	}

	return &req, nil
}
