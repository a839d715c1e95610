package client_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c12i/mpesa-go/internal/client"
	"github.com/c12i/mpesa-go/pkg/mpesa"
)

// testEnvironment points the client at a mock server with a certificate the
// test can decrypt.
type testEnvironment struct {
	baseURL     string
	certificate string
}

func (e testEnvironment) BaseURL() string     { return e.baseURL }
func (e testEnvironment) Certificate() string { return e.certificate }

func newTestKeypair(t *testing.T) (string, *rsa.PrivateKey) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	template := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "test.invalid"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}

	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	require.NoError(t, err)

	return string(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})), key
}

// mockDaraja is a test double for the provider: a token endpoint plus one
// recording operation endpoint.
type mockDaraja struct {
	server     *httptest.Server
	tokenHits  atomic.Int64
	lastBodies sync.Map
}

func newMockDaraja(t *testing.T, operationResponses map[string]string) *mockDaraja {
	t.Helper()

	m := &mockDaraja{}

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/v1/generate", func(w http.ResponseWriter, r *http.Request) {
		m.tokenHits.Add(1)

		if _, _, ok := r.BasicAuth(); !ok {
			w.WriteHeader(http.StatusUnauthorized)

			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"test-token","expires_in":3599}`))
	})

	for path, response := range operationResponses {
		response := response
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer test-token" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"requestId":"1","errorCode":"404.001.03","errorMessage":"Invalid Access Token"}`))

				return
			}

			body := make(map[string]interface{})
			_ = json.NewDecoder(r.Body).Decode(&body)
			m.lastBodies.Store(r.URL.Path, body)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(response))
		})
	}

	m.server = httptest.NewServer(mux)
	t.Cleanup(m.server.Close)

	return m
}

func (m *mockDaraja) lastBody(path string) map[string]interface{} {
	v, ok := m.lastBodies.Load(path)
	if !ok {
		return nil
	}

	body, _ := v.(map[string]interface{})

	return body
}

func newTestClient(t *testing.T, daraja *mockDaraja, cert string) *client.Client {
	t.Helper()

	c, err := client.New(&mpesa.Config{
		ConsumerKey:    "test-key",
		ConsumerSecret: "test-secret",
		Environment:    testEnvironment{baseURL: daraja.server.URL, certificate: cert},
	})
	require.NoError(t, err)

	return c
}

func TestNew_Validation(t *testing.T) {
	cert, _ := newTestKeypair(t)

	_, err := client.New(nil)
	require.ErrorIs(t, err, mpesa.ErrConfigRequired)

	_, err = client.New(&mpesa.Config{Environment: mpesa.Sandbox})
	require.ErrorIs(t, err, mpesa.ErrConsumerKeyRequired)

	_, err = client.New(&mpesa.Config{ConsumerKey: "k", ConsumerSecret: "s"})
	require.ErrorIs(t, err, mpesa.ErrEnvironmentRequired)

	_, err = client.New(&mpesa.Config{
		ConsumerKey:    "k",
		ConsumerSecret: "s",
		Environment:    testEnvironment{baseURL: "http://test.invalid", certificate: "garbage"},
	})
	require.Error(t, err)
	assert.True(t, mpesa.IsEncryptionError(err))

	_, err = client.New(&mpesa.Config{
		ConsumerKey:    "k",
		ConsumerSecret: "s",
		Environment:    testEnvironment{baseURL: "http://test.invalid", certificate: cert},
	})
	require.NoError(t, err)
}

func TestClient_AccountBalance_FullPipeline(t *testing.T) {
	cert, key := newTestKeypair(t)

	daraja := newMockDaraja(t, map[string]string{
		"/mpesa/accountbalance/v1/query": `{
			"OriginatorConversationID": "29464-48063588-1",
			"ConversationID": "AG_20260831_0000273da5e6e8f35a73",
			"ResponseCode": "0",
			"ResponseDescription": "Accept the service request successfully."
		}`,
	})

	c := newTestClient(t, daraja, cert)

	req, err := mpesa.NewAccountBalanceBuilder("testapi").
		PartyA("600999").
		CheckedResultURL("https://example.com/result").
		CheckedQueueTimeoutURL("https://example.com/timeout").
		Build()
	require.NoError(t, err)

	resp, err := c.AccountBalance(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Accepted())
	assert.Equal(t, "AG_20260831_0000273da5e6e8f35a73", resp.ConversationID)

	// Exactly one token exchange happened.
	assert.Equal(t, int64(1), daraja.tokenHits.Load())

	// The dispatched body carried a security credential that decrypts back
	// to the initiator password.
	body := daraja.lastBody("/mpesa/accountbalance/v1/query")
	require.NotNil(t, body)

	credential, _ := body["SecurityCredential"].(string)
	require.NotEmpty(t, credential)

	ciphertext, err := base64.StdEncoding.DecodeString(credential)
	require.NoError(t, err)

	plaintext, err := rsa.DecryptPKCS1v15(nil, key, ciphertext)
	require.NoError(t, err)
	assert.Equal(t, mpesa.DefaultInitiatorPassword, string(plaintext))
}

func TestClient_ConcurrentDispatches_OneTokenExchange(t *testing.T) {
	cert, _ := newTestKeypair(t)

	daraja := newMockDaraja(t, map[string]string{
		"/mpesa/accountbalance/v1/query": `{"ResponseCode":"0","ResponseDescription":"Accepted"}`,
	})

	c := newTestClient(t, daraja, cert)

	req, err := mpesa.NewAccountBalanceBuilder("testapi").
		PartyA("600999").
		ResultURL("https://example.com/result").
		QueueTimeoutURL("https://example.com/timeout").
		Build()
	require.NoError(t, err)

	const callers = 10

	var wg sync.WaitGroup

	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)

		i := i

		go func() {
			defer wg.Done()
			_, errs[i] = c.AccountBalance(context.Background(), req)
		}()
	}

	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
	}

	assert.Equal(t, int64(1), daraja.tokenHits.Load())

	// The shared request was never written to: each dispatch serialized its
	// own credential-bearing copy, so the built value stays reusable.
	assert.Empty(t, req.SecurityCredential)

	body := daraja.lastBody("/mpesa/accountbalance/v1/query")
	require.NotNil(t, body)

	credential, _ := body["SecurityCredential"].(string)
	assert.NotEmpty(t, credential)
}

func TestClient_BusinessRejectionBecomesAPIError(t *testing.T) {
	cert, _ := newTestKeypair(t)

	daraja := newMockDaraja(t, map[string]string{
		"/mpesa/b2c/v1/paymentrequest": `{"ResponseCode":"1","ResponseDescription":"Insufficient funds"}`,
	})

	c := newTestClient(t, daraja, cert)

	req, err := mpesa.NewB2CBuilder("testapi").
		PartyA("600999").
		PartyB("254708374149").
		Amount(100).
		ResultURL("https://example.com/result").
		QueueTimeoutURL("https://example.com/timeout").
		Build()
	require.NoError(t, err)

	_, err = c.B2C(context.Background(), req)
	require.Error(t, err)
	assert.True(t, mpesa.IsAPIError(err))
	assert.Equal(t, "1", mpesa.APIErrorCode(err))
}

func TestClient_RotatedInitiatorPasswordAppliesImmediately(t *testing.T) {
	cert, key := newTestKeypair(t)

	daraja := newMockDaraja(t, map[string]string{
		"/mpesa/accountbalance/v1/query": `{"ResponseCode":"0","ResponseDescription":"Accepted"}`,
	})

	c := newTestClient(t, daraja, cert)

	req, err := mpesa.NewAccountBalanceBuilder("testapi").
		PartyA("600999").
		ResultURL("https://example.com/result").
		QueueTimeoutURL("https://example.com/timeout").
		Build()
	require.NoError(t, err)

	c.SetInitiatorPassword("rotated-secret")

	_, err = c.AccountBalance(context.Background(), req)
	require.NoError(t, err)

	body := daraja.lastBody("/mpesa/accountbalance/v1/query")
	credential, _ := body["SecurityCredential"].(string)

	ciphertext, err := base64.StdEncoding.DecodeString(credential)
	require.NoError(t, err)

	plaintext, err := rsa.DecryptPKCS1v15(nil, key, ciphertext)
	require.NoError(t, err)
	assert.Equal(t, "rotated-secret", string(plaintext))
}

func TestClient_UnprivilegedRequestCarriesNoCredential(t *testing.T) {
	cert, _ := newTestKeypair(t)

	daraja := newMockDaraja(t, map[string]string{
		"/mpesa/c2b/v1/registerurl": `{"OriginatorCoversationID":"1","ResponseDescription":"success"}`,
	})

	c := newTestClient(t, daraja, cert)

	req, err := mpesa.NewC2BRegisterBuilder().
		ShortCode("600999").
		ConfirmationURL("https://example.com/confirm").
		ValidationURL("https://example.com/validate").
		Build()
	require.NoError(t, err)

	resp, err := c.C2BRegister(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Accepted())

	body := daraja.lastBody("/mpesa/c2b/v1/registerurl")
	_, present := body["SecurityCredential"]
	assert.False(t, present)
}

func TestClient_NilRequest(t *testing.T) {
	cert, _ := newTestKeypair(t)
	daraja := newMockDaraja(t, nil)
	c := newTestClient(t, daraja, cert)

	_, err := c.AccountBalance(context.Background(), nil)
	require.ErrorIs(t, err, mpesa.ErrNilRequest)

	_, err = c.ExpressPush(context.Background(), nil)
	require.ErrorIs(t, err, mpesa.ErrNilRequest)

	assert.Equal(t, int64(0), daraja.tokenHits.Load())
}

func TestClient_BillManagerConvention(t *testing.T) {
	cert, _ := newTestKeypair(t)

	daraja := newMockDaraja(t, map[string]string{
		"/v1/billmanager-invoice/single-invoicing": `{"rescode":"200","resmsg":"Success","Status_Message":"Invoice sent successfully"}`,
		"/v1/billmanager-invoice/optin":            `{"app_key":"AG_1234","rescode":"409","resmsg":"shortcode already onboarded"}`,
	})

	c := newTestClient(t, daraja, cert)

	inv, err := mpesa.NewInvoiceBuilder().
		Amount(3500).
		AccountReference("A-001").
		BilledFullName("John Doe").
		BilledPeriod("August 2026").
		BilledPhoneNumber("0710123456").
		DueDate(time.Now().Add(14 * 24 * time.Hour)).
		ExternalReference("INV-2026-001").
		InvoiceName("Water bill").
		Build()
	require.NoError(t, err)

	resp, err := c.SendSingleInvoice(context.Background(), inv)
	require.NoError(t, err)
	assert.Equal(t, "Invoice sent successfully", resp.StatusMessage)

	// A rescode other than 200 is a business rejection.
	onboard, err := mpesa.NewOnboardBuilder().
		ShortCode("718003").
		Email("billing@example.com").
		Logo("https://example.com/logo.png").
		OfficialContact("0710123456").
		CallbackURL("https://example.com/billmanager").
		Build()
	require.NoError(t, err)

	_, err = c.OnboardBiller(context.Background(), onboard)
	require.Error(t, err)
	assert.True(t, mpesa.IsAPIError(err))
	assert.Equal(t, "409", mpesa.APIErrorCode(err))
}

func TestClient_CancelBulkInvoices(t *testing.T) {
	cert, _ := newTestKeypair(t)

	daraja := newMockDaraja(t, map[string]string{
		"/v1/billmanager-invoice/cancel-bulk-invoices": `{"rescode":"200","resmsg":"Success","Status_Message":"Invoices cancelled"}`,
	})

	c := newTestClient(t, daraja, cert)

	req, err := mpesa.NewBulkCancelInvoiceRequest("INV-2026-001", "INV-2026-002")
	require.NoError(t, err)

	resp, err := c.CancelBulkInvoices(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Invoices cancelled", resp.StatusMessage)
}

func TestClient_TransportFailureKeepsCachedToken(t *testing.T) {
	cert, _ := newTestKeypair(t)

	var tokenHits atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/v1/generate", func(w http.ResponseWriter, r *http.Request) {
		tokenHits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"test-token","expires_in":3599}`))
	})
	mux.HandleFunc("/mpesa/accountbalance/v1/query", func(w http.ResponseWriter, r *http.Request) {
		// Drop the connection mid-flight so the dispatch fails at the
		// transport, not at the provider.
		hj, ok := w.(http.Hijacker)
		require.True(t, ok)

		conn, _, err := hj.Hijack()
		require.NoError(t, err)
		_ = conn.Close()
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	c, err := client.New(&mpesa.Config{
		ConsumerKey:    "test-key",
		ConsumerSecret: "test-secret",
		Environment:    testEnvironment{baseURL: server.URL, certificate: cert},
	})
	require.NoError(t, err)

	// Prime the cache.
	_, err = c.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1), tokenHits.Load())

	req, err := mpesa.NewAccountBalanceBuilder("testapi").
		PartyA("600999").
		ResultURL("https://example.com/result").
		QueueTimeoutURL("https://example.com/timeout").
		Build()
	require.NoError(t, err)

	_, err = c.AccountBalance(context.Background(), req)
	require.Error(t, err)
	assert.True(t, mpesa.IsNetworkError(err))

	// A transport failure is not a token rejection: the cached token
	// survives and the next ask performs no second exchange.
	token, err := c.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "test-token", token)
	assert.Equal(t, int64(1), tokenHits.Load())
}

func TestClient_HTTPTimeoutBoundsTokenExchange(t *testing.T) {
	cert, _ := newTestKeypair(t)

	release := make(chan struct{})

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/v1/generate", func(w http.ResponseWriter, r *http.Request) {
		<-release
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	// Unblock the handler before server.Close waits on it.
	t.Cleanup(func() { close(release) })

	c, err := client.New(&mpesa.Config{
		ConsumerKey:    "test-key",
		ConsumerSecret: "test-secret",
		Environment:    testEnvironment{baseURL: server.URL, certificate: cert},
		HTTPTimeout:    100 * time.Millisecond,
	})
	require.NoError(t, err)

	start := time.Now()
	_, err = c.Token(context.Background())
	require.Error(t, err)

	var netErr *mpesa.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.True(t, netErr.Timeout)

	// The configured timeout, not the transport default, bounded the
	// exchange.
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestClient_Token(t *testing.T) {
	cert, _ := newTestKeypair(t)
	daraja := newMockDaraja(t, nil)
	c := newTestClient(t, daraja, cert)

	token, err := c.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "test-token", token)

	// Cached on the second ask.
	_, err = c.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), daraja.tokenHits.Load())
}
