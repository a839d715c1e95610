// Package constants holds the API endpoint paths and shared defaults.
package constants

import "time"

// Authentication.
const (
	// TokenPath is the client-credentials token endpoint.
	TokenPath = "/oauth/v1/generate"
)

// Core operation endpoints.
const (
	AccountBalancePath    = "/mpesa/accountbalance/v1/query"
	B2CPaymentPath        = "/mpesa/b2c/v1/paymentrequest"
	B2BPaymentPath        = "/mpesa/b2b/v1/paymentrequest"
	TransactionStatusPath = "/mpesa/transactionstatus/v1/query"
	ReversalPath          = "/mpesa/reversal/v1/request"
	C2BRegisterPath       = "/mpesa/c2b/v1/registerurl"
	C2BSimulatePath       = "/mpesa/c2b/v1/simulate"
	ExpressPushPath       = "/mpesa/stkpush/v1/processrequest"
	ExpressQueryPath      = "/mpesa/stkpushquery/v1/query"
	DynamicQRPath         = "/mpesa/qrcode/v1/generate"
)

// Bill manager endpoints.
const (
	OnboardPath        = "/v1/billmanager-invoice/optin"
	OnboardModifyPath  = "/v1/billmanager-invoice/change-optin-details"
	SingleInvoicePath  = "/v1/billmanager-invoice/single-invoicing"
	BulkInvoicePath    = "/v1/billmanager-invoice/bulk-invoicing"
	ReconciliationPath = "/v1/billmanager-invoice/reconciliation"
	CancelInvoicePath  = "/v1/billmanager-invoice/cancel-single-invoice"
	BulkCancelPath     = "/v1/billmanager-invoice/cancel-bulk-invoices"
)

// Transport defaults.
const (
	// DefaultHTTPTimeout bounds each round trip when the config does not
	// set one.
	DefaultHTTPTimeout = 30 * time.Second
)
