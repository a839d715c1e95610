package mpesa

import (
	"context"
	"time"
)

// AccountClient groups the privileged organization-account operations.
type AccountClient interface {
	AccountBalance(ctx context.Context, req *AccountBalanceRequest) (*AccountBalanceResponse, error)
	TransactionStatus(ctx context.Context, req *TransactionStatusRequest) (*TransactionStatusResponse, error)
	TransactionReversal(ctx context.Context, req *TransactionReversalRequest) (*TransactionReversalResponse, error)
}

// PaymentClient groups the money-movement operations.
type PaymentClient interface {
	B2C(ctx context.Context, req *B2CRequest) (*B2CResponse, error)
	B2B(ctx context.Context, req *B2BRequest) (*B2BResponse, error)
	ExpressPush(ctx context.Context, req *ExpressRequest) (*ExpressResponse, error)
	ExpressQuery(ctx context.Context, req *ExpressQueryRequest) (*ExpressQueryResponse, error)
}

// C2BClient groups customer-to-business setup and simulation.
type C2BClient interface {
	C2BRegister(ctx context.Context, req *C2BRegisterRequest) (*C2BRegisterResponse, error)
	C2BSimulate(ctx context.Context, req *C2BSimulateRequest) (*C2BSimulateResponse, error)
}

// BillManagerClient groups the bill manager invoicing operations.
type BillManagerClient interface {
	OnboardBiller(ctx context.Context, req *OnboardRequest) (*OnboardResponse, error)
	ModifyBillerDetails(ctx context.Context, req *OnboardModifyRequest) (*OnboardModifyResponse, error)
	SendSingleInvoice(ctx context.Context, req *SingleInvoiceRequest) (*SingleInvoiceResponse, error)
	SendBulkInvoices(ctx context.Context, req *BulkInvoiceRequest) (*BulkInvoiceResponse, error)
	ReconcileTransaction(ctx context.Context, req *ReconciliationRequest) (*ReconciliationResponse, error)
	CancelInvoice(ctx context.Context, req *CancelInvoiceRequest) (*CancelInvoiceResponse, error)
	CancelBulkInvoices(ctx context.Context, req *BulkCancelInvoiceRequest) (*BulkCancelInvoiceResponse, error)
}

// Client is the full Daraja API surface.
type Client interface {
	AccountClient
	PaymentClient
	C2BClient
	BillManagerClient

	// DynamicQR generates a payment QR code.
	DynamicQR(ctx context.Context, req *DynamicQRRequest) (*DynamicQRResponse, error)

	// Token returns a currently valid bearer token, performing the
	// authentication exchange if the cached one is absent or stale.
	Token(ctx context.Context) (string, error)

	// SetInitiatorPassword replaces the initiator password used to derive
	// security credentials. The change applies to the next privileged call;
	// nothing is cached between calls.
	SetInitiatorPassword(password string)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// DefaultInitiatorPassword is the pre-set initiator password for the sandbox
// environment. Production clients must call SetInitiatorPassword (or set
// Config.InitiatorPassword) before issuing privileged operations.
const DefaultInitiatorPassword = "Safcom496!"

// Config carries everything needed to build a client.
//
// # Credentials
//
// ConsumerKey and ConsumerSecret are the app credentials issued by the
// provider and are fixed for the client's lifetime. InitiatorPassword is
// the only mutable credential: it defaults to the sandbox value and can be
// rotated later through Client.SetInitiatorPassword; the rotation is picked
// up by the very next privileged call because security credentials are
// derived fresh per dispatch.
//
// # Timeouts and retries
//
// HTTPTimeout bounds each network round trip (token exchange and operation
// dispatch); exceeding it surfaces as a NetworkError flagged as a timeout.
// RetryMax/RetryWaitMin/RetryWaitMax configure transport-level retries and
// default to zero: the financial operations are not idempotent and blind
// retries risk duplicate submission, so retry policy belongs to the caller.
type Config struct {
	// ConsumerKey is the app's consumer key (required).
	ConsumerKey string
	// ConsumerSecret is the app's consumer secret (required).
	ConsumerSecret string
	// Environment selects the deployment target (required). Use Sandbox,
	// Production, or any custom Environment implementation.
	Environment Environment

	// InitiatorPassword is the initiator's password for privileged
	// operations. Empty means DefaultInitiatorPassword.
	InitiatorPassword string

	// HTTPTimeout bounds each network round trip. Zero means 30 seconds.
	HTTPTimeout time.Duration
	// RetryMax is the maximum number of transport retries. Leave at zero
	// unless every operation you issue is safe to repeat.
	RetryMax int
	// RetryWaitMin is the minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax is the maximum backoff between retries.
	RetryWaitMax time.Duration

	// Debug enables request/response logging through Logger.
	Debug bool
	// Logger receives transport logs when Debug is set.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string
}
