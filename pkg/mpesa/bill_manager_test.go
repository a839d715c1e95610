package mpesa

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnboardBuilder(t *testing.T) {
	req, err := NewOnboardBuilder().
		ShortCode("718003").
		Email("billing@example.com").
		Logo("https://example.com/logo.png").
		OfficialContact("0710123456").
		SendReminders(RemindersEnabled).
		CheckedCallbackURL("https://example.com/billmanager").
		Build()
	require.NoError(t, err)

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"callbackUrl":"https://example.com/billmanager"`)
	assert.Contains(t, string(data), `"sendReminders":1`)
	assert.Contains(t, string(data), `"shortcode":"718003"`)
}

func TestOnboardBuilder_MissingEmail(t *testing.T) {
	_, err := NewOnboardBuilder().
		ShortCode("718003").
		Logo("https://example.com/logo.png").
		OfficialContact("0710123456").
		CallbackURL("https://example.com/billmanager").
		Build()

	require.Error(t, err)
	assert.Equal(t, "email", ValidationField(err))
}

func TestOnboardModifyBuilder_OmitsUnsetFields(t *testing.T) {
	req, err := NewOnboardModifyBuilder("718003").
		Email("new-billing@example.com").
		Build()
	require.NoError(t, err)

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"email"`)
	assert.NotContains(t, string(data), `"logo"`)
	assert.NotContains(t, string(data), `"sendReminders"`)
}

func TestInvoiceBuilder(t *testing.T) {
	due := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)

	inv, err := NewInvoiceBuilder().
		Amount(3500).
		AccountReference("A-001").
		BilledFullName("John Doe").
		BilledPeriod("August 2026").
		BilledPhoneNumber("0710123456").
		DueDate(due).
		ExternalReference("INV-2026-001").
		InvoiceName("Water bill").
		AddItem("Supply", 3000).
		AddItem("Sewer", 500).
		Build()
	require.NoError(t, err)

	assert.Len(t, inv.InvoiceItems, 2)

	data, err := json.Marshal(inv)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"invoiceItems":[{"amount":3000,"itemName":"Supply"}`)
	assert.Contains(t, string(data), `"dueDate":"2026-09-30T00:00:00Z"`)
}

func TestInvoiceBuilder_MissingDueDate(t *testing.T) {
	_, err := NewInvoiceBuilder().
		Amount(3500).
		AccountReference("A-001").
		BilledFullName("John Doe").
		BilledPeriod("August 2026").
		BilledPhoneNumber("0710123456").
		ExternalReference("INV-2026-001").
		InvoiceName("Water bill").
		Build()

	require.Error(t, err)
	assert.Equal(t, "dueDate", ValidationField(err))
}

func TestBulkInvoiceBuilder_MarshalsAsArray(t *testing.T) {
	due := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)

	inv, err := NewInvoiceBuilder().
		Amount(3500).
		AccountReference("A-001").
		BilledFullName("John Doe").
		BilledPeriod("August 2026").
		BilledPhoneNumber("0710123456").
		DueDate(due).
		ExternalReference("INV-2026-001").
		InvoiceName("Water bill").
		Build()
	require.NoError(t, err)

	batch, err := NewBulkInvoiceBuilder().Add(*inv).Add(*inv).Build()
	require.NoError(t, err)

	data, err := json.Marshal(batch)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
	assert.Equal(t, byte('['), data[0])
}

func TestBulkInvoiceBuilder_RejectsEmptyBatch(t *testing.T) {
	_, err := NewBulkInvoiceBuilder().Build()

	require.Error(t, err)
	assert.Equal(t, "invoices", ValidationField(err))
}

func TestReconciliationBuilder(t *testing.T) {
	req, err := NewReconciliationBuilder().
		AccountReference("A-001").
		Msisdn("0710123456").
		PaidAmount(3500).
		ShortCode("718003").
		TransactionID("QXJ12345").
		Build()
	require.NoError(t, err)

	assert.False(t, req.DateCreated.IsZero())
}

func TestReconciliationBuilder_MissingTransactionID(t *testing.T) {
	_, err := NewReconciliationBuilder().
		AccountReference("A-001").
		Msisdn("0710123456").
		PaidAmount(3500).
		ShortCode("718003").
		Build()

	require.Error(t, err)
	assert.Equal(t, "transactionId", ValidationField(err))
}

func TestNewCancelInvoiceRequest(t *testing.T) {
	req, err := NewCancelInvoiceRequest("INV-2026-001")
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-001", req.ExternalReference)

	_, err = NewCancelInvoiceRequest("")
	require.Error(t, err)
	assert.Equal(t, "externalReference", ValidationField(err))
}

func TestNewBulkCancelInvoiceRequest_MarshalsAsArray(t *testing.T) {
	req, err := NewBulkCancelInvoiceRequest("INV-2026-001", "INV-2026-002")
	require.NoError(t, err)

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"externalReference":"INV-2026-001"},
		{"externalReference":"INV-2026-002"}
	]`, string(data))
}

func TestNewBulkCancelInvoiceRequest_Validation(t *testing.T) {
	_, err := NewBulkCancelInvoiceRequest()
	require.Error(t, err)
	assert.Equal(t, "externalReference", ValidationField(err))

	_, err = NewBulkCancelInvoiceRequest("INV-2026-001", "")
	require.Error(t, err)
	assert.Equal(t, "externalReference", ValidationField(err))
}

func TestBillManagerResponses_Unmarshal(t *testing.T) {
	var resp SingleInvoiceResponse
	body := `{"rescode":"200","resmsg":"Success","Status_Message":"Invoice sent successfully"}`

	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.True(t, resp.Accepted())
	assert.Equal(t, "Invoice sent successfully", resp.StatusMessage)

	var onboard OnboardResponse
	body = `{"app_key":"AG_2376487236_126732989KJ","rescode":"200","resmsg":"Success"}`

	require.NoError(t, json.Unmarshal([]byte(body), &onboard))
	assert.True(t, onboard.Accepted())
	assert.Equal(t, "AG_2376487236_126732989KJ", onboard.AppKey)
}
