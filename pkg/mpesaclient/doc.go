// Package mpesaclient provides the primary entry point for constructing a
// Daraja API client that implements the mpesa.Client interface.
//
// It layers configuration, HTTP transport, token caching, and security
// credential encryption on top of the request and response types defined in
// the mpesa package. Most applications should import mpesaclient to build a
// client, then use the returned mpesa.Client to issue operations.
//
// Quick start
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
//
//	  cli, err := mpesaclient.New(&mpesa.Config{
//	    ConsumerKey:    "key",
//	    ConsumerSecret: "secret",
//	    Environment:    mpesa.Sandbox,
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  req, err := mpesa.NewAccountBalanceBuilder("testapi").
//	    PartyA("600999").
//	    CheckedResultURL("https://example.com/result").
//	    CheckedQueueTimeoutURL("https://example.com/timeout").
//	    Build()
//	  if err != nil { log.Fatal(err) }
//
//	  resp, err := cli.AccountBalance(ctx, req)
//	  if err != nil { log.Fatal(err) }
//	  _ = resp
//	}
//
// # Helpers
//
// The package also provides convenience constructors NewSandbox and
// NewProduction that wrap New with the matching environment.
package mpesaclient
