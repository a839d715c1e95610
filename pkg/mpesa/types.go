package mpesa

import "fmt"

// CommandID is the unique command passed to the M-Pesa system with a
// transaction request. The set is closed: an unknown command can never reach
// the wire.
type CommandID string

// Command identifiers accepted by the API.
const (
	CommandTransactionReversal        CommandID = "TransactionReversal"
	CommandSalaryPayment              CommandID = "SalaryPayment"
	CommandBusinessPayment            CommandID = "BusinessPayment"
	CommandPromotionPayment           CommandID = "PromotionPayment"
	CommandAccountBalance             CommandID = "AccountBalance"
	CommandCustomerPayBillOnline      CommandID = "CustomerPayBillOnline"
	CommandCustomerBuyGoodsOnline     CommandID = "CustomerBuyGoodsOnline"
	CommandTransactionStatusQuery     CommandID = "TransactionStatusQuery"
	CommandCheckIdentity              CommandID = "CheckIdentity"
	CommandBusinessPayBill            CommandID = "BusinessPayBill"
	CommandBusinessBuyGoods           CommandID = "BusinessBuyGoods"
	CommandDisburseFundsToBusiness    CommandID = "DisburseFundsToBusiness"
	CommandBusinessToBusinessTransfer CommandID = "BusinessToBusinessTransfer"
	CommandBusinessTransferFromMMF    CommandID = "BusinessTransferFromMMFToUtility"
)

// Valid reports whether the command is one of the defined identifiers.
func (c CommandID) Valid() bool {
	switch c {
	case CommandTransactionReversal, CommandSalaryPayment, CommandBusinessPayment,
		CommandPromotionPayment, CommandAccountBalance, CommandCustomerPayBillOnline,
		CommandCustomerBuyGoodsOnline, CommandTransactionStatusQuery, CommandCheckIdentity,
		CommandBusinessPayBill, CommandBusinessBuyGoods, CommandDisburseFundsToBusiness,
		CommandBusinessToBusinessTransfer, CommandBusinessTransferFromMMF:
		return true
	}

	return false
}

// IdentifierType identifies a transaction party as a phone number, a till
// number, or an organization short code.
type IdentifierType int

// Identifier types defined by the API.
const (
	IdentifierMSISDN     IdentifierType = 1
	IdentifierTillNumber IdentifierType = 2
	IdentifierShortcode  IdentifierType = 4
)

// Valid reports whether the identifier type is one of the defined values.
func (i IdentifierType) Valid() bool {
	switch i {
	case IdentifierMSISDN, IdentifierTillNumber, IdentifierShortcode:
		return true
	}

	return false
}

func (i IdentifierType) String() string {
	switch i {
	case IdentifierMSISDN:
		return "MSISDN"
	case IdentifierTillNumber:
		return "TillNumber"
	case IdentifierShortcode:
		return "Shortcode"
	default:
		return fmt.Sprintf("IdentifierType(%d)", int(i))
	}
}

// ResponseType tells the provider what to do with a C2B payment when the
// validation endpoint cannot be reached.
type ResponseType string

// Response types for C2B URL registration.
const (
	ResponseCompleted ResponseType = "Completed"
	ResponseCancelled ResponseType = "Cancelled"
)

// Valid reports whether the response type is one of the defined values.
func (r ResponseType) Valid() bool {
	return r == ResponseCompleted || r == ResponseCancelled
}

// TransactionType is the QR transaction code (TrxCode) for dynamic QR
// generation.
type TransactionType string

// Dynamic QR transaction codes.
const (
	TrxBuyGoods       TransactionType = "BG"
	TrxPayBill        TransactionType = "PB"
	TrxWithdrawCash   TransactionType = "WA"
	TrxSendMoney      TransactionType = "SM"
	TrxSendToBusiness TransactionType = "SB"
)

// Valid reports whether the transaction type is one of the defined codes.
func (t TransactionType) Valid() bool {
	switch t {
	case TrxBuyGoods, TrxPayBill, TrxWithdrawCash, TrxSendMoney, TrxSendToBusiness:
		return true
	}

	return false
}

// SendReminders controls whether bill manager sends payment reminders to
// customers.
type SendReminders int

// Send-reminder settings for bill manager onboarding.
const (
	RemindersDisabled SendReminders = 0
	RemindersEnabled  SendReminders = 1
)

// Result codes the provider uses in operation results and callbacks.
const (
	ResultSuccess                 = 0
	ResultInsufficientFunds       = 1
	ResultLessThanMinimum         = 2
	ResultMoreThanMaximum         = 3
	ResultExceededDailyLimit      = 4
	ResultExceededMinimumBalance  = 5
	ResultUnresolvedPrimaryParty  = 6
	ResultUnresolvedReceiverParty = 7
	ResultExceededMaximumBalance  = 8
	ResultInvalidDebitAccount     = 11
	ResultInvalidCreditAccount    = 12
	ResultUnresolvedDebitAccount  = 13
	ResultUnresolvedCreditAccount = 14
	ResultDuplicateDetected       = 15
	ResultInternalFailure         = 17
	ResultUnresolvedInitiator     = 20
	ResultTrafficBlocking         = 26
)
