// Package mpesaclient provides the main entry point for creating Daraja API clients.
package mpesaclient

import (
	"fmt"

	"github.com/c12i/mpesa-go/internal/client"
	"github.com/c12i/mpesa-go/pkg/mpesa"
)

// New creates a Daraja API client from the config.
func New(config *mpesa.Config) (mpesa.Client, error) {
	if config == nil {
		return nil, mpesa.ErrConfigRequired
	}

	cli, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return cli, nil
}

// NewSandbox creates a client against the sandbox environment with the
// given app credentials.
func NewSandbox(consumerKey, consumerSecret string) (mpesa.Client, error) {
	return New(&mpesa.Config{
		ConsumerKey:    consumerKey,
		ConsumerSecret: consumerSecret,
		Environment:    mpesa.Sandbox,
	})
}

// NewProduction creates a client against the live environment with the
// given app credentials. Set the initiator password before issuing
// privileged operations.
func NewProduction(consumerKey, consumerSecret string) (mpesa.Client, error) {
	return New(&mpesa.Config{
		ConsumerKey:    consumerKey,
		ConsumerSecret: consumerSecret,
		Environment:    mpesa.Production,
	})
}
