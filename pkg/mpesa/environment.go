package mpesa

import (
	_ "embed"
	"fmt"
	"strings"
)

// Environment supplies the deployment-specific pieces of a client: the API
// base address and the X509 certificate used to encrypt initiator
// credentials. Sandbox and Production are provided; callers may implement
// the interface themselves, for example to point at a mock server in tests.
type Environment interface {
	// BaseURL returns the API base address without a trailing slash.
	BaseURL() string
	// Certificate returns the PEM-encoded X509 certificate whose public key
	// encrypts the initiator password into a security credential.
	Certificate() string
}

//go:embed certificates/sandbox.cer
var sandboxCertificate string

//go:embed certificates/production.cer
var productionCertificate string

type builtinEnvironment struct {
	name        string
	baseURL     string
	certificate string
}

func (e builtinEnvironment) BaseURL() string     { return e.baseURL }
func (e builtinEnvironment) Certificate() string { return e.certificate }
func (e builtinEnvironment) String() string      { return e.name }

// Built-in environments.
var (
	// Sandbox is the Daraja test environment.
	Sandbox Environment = builtinEnvironment{
		name:        "sandbox",
		baseURL:     "https://sandbox.safaricom.co.ke",
		certificate: sandboxCertificate,
	}

	// Production is the live Daraja environment.
	Production Environment = builtinEnvironment{
		name:        "production",
		baseURL:     "https://api.safaricom.co.ke",
		certificate: productionCertificate,
	}
)

// ParseEnvironment maps an environment name to a built-in Environment.
// Matching is case-insensitive. Only "sandbox" and "production" are known;
// anything else returns ErrUnknownEnvironment wrapped with the bad name.
func ParseEnvironment(name string) (Environment, error) {
	switch strings.ToLower(name) {
	case "sandbox":
		return Sandbox, nil
	case "production":
		return Production, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEnvironment, name)
	}
}
