package mpesa

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "https", raw: "https://example.com/callback", wantErr: false},
		{name: "http", raw: "http://example.com/callback", wantErr: false},
		{name: "relative", raw: "/callback", wantErr: true},
		{name: "missing host", raw: "https://", wantErr: true},
		{name: "bare word", raw: "not-a-url", wantErr: true},
		{name: "wrong scheme", raw: "ftp://example.com/callback", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkURL("ResultURL", tt.raw)
			if tt.wantErr {
				require.NotNil(t, err)
				assert.Equal(t, "ResultURL", err.Field)
			} else {
				assert.Nil(t, err)
			}
		})
	}
}

func TestCoreResponse_Accepted(t *testing.T) {
	ok := CoreResponse{ResponseCode: "0", ResponseDescription: "Accept the service request successfully."}
	assert.True(t, ok.Accepted())

	code, desc := ok.ResponseStatus()
	assert.Equal(t, "0", code)
	assert.Equal(t, "Accept the service request successfully.", desc)

	rejected := CoreResponse{ResponseCode: "1", ResponseDescription: "Insufficient funds"}
	assert.False(t, rejected.Accepted())
}

func TestBillManagerStatus_Accepted(t *testing.T) {
	ok := BillManagerStatus{ResponseCode: "200", ResponseMessage: "Success"}
	assert.True(t, ok.Accepted())

	rejected := BillManagerStatus{ResponseCode: "409", ResponseMessage: "short code already onboarded"}
	assert.False(t, rejected.Accepted())
}

func TestAccountBalanceBuilder_Defaults(t *testing.T) {
	req, err := NewAccountBalanceBuilder("testapi").
		PartyA("600999").
		ResultURL("https://example.com/result").
		QueueTimeoutURL("https://example.com/timeout").
		Build()
	require.NoError(t, err)

	assert.Equal(t, "testapi", req.Initiator)
	assert.Equal(t, CommandAccountBalance, req.CommandID)
	assert.Equal(t, IdentifierShortcode, req.IdentifierType)
	assert.Equal(t, "None", req.Remarks)
	assert.Empty(t, req.SecurityCredential)
}

func TestAccountBalanceBuilder_MissingPartyA(t *testing.T) {
	_, err := NewAccountBalanceBuilder("testapi").
		ResultURL("https://example.com/result").
		QueueTimeoutURL("https://example.com/timeout").
		Build()

	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Equal(t, "PartyA", ValidationField(err))
}

func TestAccountBalanceBuilder_CheckedURLRejectsMalformed(t *testing.T) {
	_, err := NewAccountBalanceBuilder("testapi").
		PartyA("600999").
		CheckedResultURL("not a url").
		QueueTimeoutURL("https://example.com/timeout").
		Build()

	require.Error(t, err)
	assert.Equal(t, "ResultURL", ValidationField(err))
}

func TestAccountBalanceBuilder_TrustingURLAcceptsAnything(t *testing.T) {
	req, err := NewAccountBalanceBuilder("testapi").
		PartyA("600999").
		ResultURL("not a url").
		QueueTimeoutURL("also not a url").
		Build()

	require.NoError(t, err)
	assert.Equal(t, "not a url", req.ResultURL)
}

func TestAccountBalanceBuilder_FrozenRequestIsACopy(t *testing.T) {
	b := NewAccountBalanceBuilder("testapi").
		PartyA("600999").
		ResultURL("https://example.com/result").
		QueueTimeoutURL("https://example.com/timeout")

	req, err := b.Build()
	require.NoError(t, err)

	b.PartyA("600111")
	assert.Equal(t, "600999", req.PartyA)
}

func TestB2CBuilder(t *testing.T) {
	req, err := NewB2CBuilder("testapi").
		PartyA("600999").
		PartyB("254708374149").
		Amount(150).
		CheckedResultURL("https://example.com/result").
		CheckedQueueTimeoutURL("https://example.com/timeout").
		Build()
	require.NoError(t, err)

	assert.Equal(t, CommandBusinessPayment, req.CommandID)
	assert.NotEmpty(t, req.OriginatorConversationID)
	assert.Equal(t, "None", req.Occasion)
}

func TestB2CBuilder_RejectsNonPositiveAmount(t *testing.T) {
	_, err := NewB2CBuilder("testapi").
		PartyA("600999").
		PartyB("254708374149").
		Amount(0).
		ResultURL("https://example.com/result").
		QueueTimeoutURL("https://example.com/timeout").
		Build()

	require.Error(t, err)
	assert.Equal(t, "Amount", ValidationField(err))
}

func TestB2CBuilder_RejectsNonB2CCommand(t *testing.T) {
	_, err := NewB2CBuilder("testapi").
		CommandID(CommandAccountBalance).
		PartyA("600999").
		PartyB("254708374149").
		Amount(150).
		ResultURL("https://example.com/result").
		QueueTimeoutURL("https://example.com/timeout").
		Build()

	require.Error(t, err)
	assert.Equal(t, "CommandID", ValidationField(err))
}

func TestB2BBuilder_WireSpelling(t *testing.T) {
	req, err := NewB2BBuilder("testapi").
		PartyA("600999").
		PartyB("600000").
		Amount(500).
		AccountReference("ACC-1").
		ResultURL("https://example.com/result").
		QueueTimeoutURL("https://example.com/timeout").
		Build()
	require.NoError(t, err)

	data, err := json.Marshal(req)
	require.NoError(t, err)

	// The provider's misspelled field name is part of the wire contract.
	assert.Contains(t, string(data), `"RecieverIdentifierType":4`)
	assert.NotContains(t, string(data), `"ReceiverIdentifierType"`)
}

func TestC2BRegisterBuilder(t *testing.T) {
	req, err := NewC2BRegisterBuilder().
		ShortCode("600999").
		CheckedConfirmationURL("https://example.com/confirm").
		CheckedValidationURL("https://example.com/validate").
		Build()
	require.NoError(t, err)

	assert.Equal(t, ResponseCompleted, req.ResponseType)
}

func TestC2BRegisterBuilder_MissingValidationURL(t *testing.T) {
	_, err := NewC2BRegisterBuilder().
		ShortCode("600999").
		ConfirmationURL("https://example.com/confirm").
		Build()

	require.Error(t, err)
	assert.Equal(t, "ValidationURL", ValidationField(err))
}

func TestC2BSimulateBuilder_Defaults(t *testing.T) {
	req, err := NewC2BSimulateBuilder().
		ShortCode("600999").
		Msisdn("254708374149").
		Amount(100).
		Build()
	require.NoError(t, err)

	assert.Equal(t, CommandCustomerPayBillOnline, req.CommandID)
	assert.Equal(t, "None", req.BillRefNumber)
}

func TestDynamicQRBuilder(t *testing.T) {
	req, err := NewDynamicQRBuilder().
		MerchantName("TEST SUPERMARKET").
		RefNo("Invoice-001").
		Amount(2000).
		TransactionType(TrxBuyGoods).
		CreditPartyIdentifier("373132").
		Build()
	require.NoError(t, err)

	assert.Equal(t, "300", req.Size)

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"TrxCode":"BG"`)
	assert.Contains(t, string(data), `"CPI":"373132"`)
}

func TestDynamicQRBuilder_RejectsUnknownTrxCode(t *testing.T) {
	_, err := NewDynamicQRBuilder().
		MerchantName("TEST SUPERMARKET").
		RefNo("Invoice-001").
		Amount(2000).
		TransactionType("XX").
		CreditPartyIdentifier("373132").
		Build()

	require.Error(t, err)
	assert.Equal(t, "TrxCode", ValidationField(err))
}
