package mpesa

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandID_Valid(t *testing.T) {
	assert.True(t, CommandAccountBalance.Valid())
	assert.True(t, CommandBusinessTransferFromMMF.Valid())
	assert.False(t, CommandID("TransferEverything").Valid())
	assert.False(t, CommandID("").Valid())
}

func TestIdentifierType(t *testing.T) {
	tests := []struct {
		name     string
		id       IdentifierType
		valid    bool
		expected string
	}{
		{name: "msisdn", id: IdentifierMSISDN, valid: true, expected: "MSISDN"},
		{name: "till", id: IdentifierTillNumber, valid: true, expected: "TillNumber"},
		{name: "shortcode", id: IdentifierShortcode, valid: true, expected: "Shortcode"},
		{name: "unknown", id: IdentifierType(3), valid: false, expected: "IdentifierType(3)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.id.Valid())
			assert.Equal(t, tt.expected, tt.id.String())
		})
	}
}

func TestIdentifierType_MarshalsAsNumber(t *testing.T) {
	data, err := json.Marshal(IdentifierShortcode)
	require.NoError(t, err)
	assert.Equal(t, "4", string(data))
}

func TestResponseType_Valid(t *testing.T) {
	assert.True(t, ResponseCompleted.Valid())
	assert.True(t, ResponseCancelled.Valid())
	assert.False(t, ResponseType("Maybe").Valid())
}

func TestTransactionType_Valid(t *testing.T) {
	assert.True(t, TrxBuyGoods.Valid())
	assert.True(t, TrxSendToBusiness.Valid())
	assert.False(t, TransactionType("XX").Valid())
}

func TestParseEnvironment(t *testing.T) {
	env, err := ParseEnvironment("Sandbox")
	require.NoError(t, err)
	assert.Equal(t, "https://sandbox.safaricom.co.ke", env.BaseURL())

	env, err = ParseEnvironment("production")
	require.NoError(t, err)
	assert.Equal(t, "https://api.safaricom.co.ke", env.BaseURL())

	_, err = ParseEnvironment("staging")
	require.ErrorIs(t, err, ErrUnknownEnvironment)
}

func TestBuiltinEnvironments_CarryCertificates(t *testing.T) {
	assert.Contains(t, Sandbox.Certificate(), "BEGIN CERTIFICATE")
	assert.Contains(t, Production.Certificate(), "BEGIN CERTIFICATE")
}
