// Package mpesa provides types, builders, and error helpers for working with
// the Safaricom Daraja (M-Pesa) API.
//
// # Overview
//
// The mpesa package defines the request and response types for each Daraja
// operation (account balance, B2C, B2B, C2B, M-Pesa Express/STK push,
// transaction status and reversal, dynamic QR, bill manager), the fluent
// builders that validate and freeze those requests, the Environment
// abstraction, and the shared error taxonomy. A concrete client is provided
// by the mpesaclient package, which wires configuration, transport, token
// caching, and security-credential generation. Most consumers should import
// mpesaclient to construct a client and then work with the types exposed
// here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/c12i/mpesa-go/pkg/mpesa"
//	  "github.com/c12i/mpesa-go/pkg/mpesaclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := mpesaclient.New(&mpesa.Config{
//	    ConsumerKey:    "key",
//	    ConsumerSecret: "secret",
//	    Environment:    mpesa.Sandbox,
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  req, err := mpesa.NewAccountBalanceBuilder("testapi496").
//	    PartyA("600496").
//	    ResultURL("https://example.com/result").
//	    QueueTimeoutURL("https://example.com/timeout").
//	    Build()
//	  if err != nil { log.Fatal(err) }
//
//	  resp, err := cli.AccountBalance(ctx, req)
//	  if err != nil { log.Fatal(err) }
//	  _ = resp
//	}
//
// # Builders
//
// Every operation has a builder with setters for its required and optional
// fields. Optional fields carry the defaults documented by the provider
// (remarks default to "None", command identifiers default per operation,
// identifier types default to Shortcode). Build validates that every
// required field was set and returns an immutable request value; a missing
// field yields a *ValidationError naming it, before any network traffic.
//
// URL-typed fields have two setter forms: the plain setter stores the value
// as given, while the Checked variant parses it and makes Build fail for
// anything that is not an absolute URL. Use the Checked form for callback
// addresses you assemble at runtime; a malformed callback otherwise fails
// only when the provider tries to invoke it.
//
// # Errors
//
// Failures surface through a closed set of error types: *ValidationError,
// *AuthError, *EncryptionError, *NetworkError, *SerializationError, and
// *APIError (a business-level rejection carrying the provider's code and
// message verbatim). Helpers such as IsAuthError, IsNetworkError, and
// IsAPIError make it easy to branch without string matching.
//
// # Environments
//
// Sandbox and Production are built in. Environment is an interface, so tests
// and self-hosted gateways can supply their own base URL and certificate.
package mpesa
