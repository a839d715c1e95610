package client

import (
	"context"

	"github.com/c12i/mpesa-go/internal/constants"
	"github.com/c12i/mpesa-go/pkg/mpesa"
)

// AccountBalance queries the balance on an organization shortcode.
func (c *Client) AccountBalance(ctx context.Context, req *mpesa.AccountBalanceRequest) (*mpesa.AccountBalanceResponse, error) {
	if req == nil {
		return nil, mpesa.ErrNilRequest
	}

	var resp mpesa.AccountBalanceResponse
	if err := c.dispatch(ctx, constants.AccountBalancePath, req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// TransactionStatus queries the status of a transaction.
func (c *Client) TransactionStatus(ctx context.Context, req *mpesa.TransactionStatusRequest) (*mpesa.TransactionStatusResponse, error) {
	if req == nil {
		return nil, mpesa.ErrNilRequest
	}

	var resp mpesa.TransactionStatusResponse
	if err := c.dispatch(ctx, constants.TransactionStatusPath, req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// TransactionReversal reverses a completed transaction.
func (c *Client) TransactionReversal(ctx context.Context, req *mpesa.TransactionReversalRequest) (*mpesa.TransactionReversalResponse, error) {
	if req == nil {
		return nil, mpesa.ErrNilRequest
	}

	var resp mpesa.TransactionReversalResponse
	if err := c.dispatch(ctx, constants.ReversalPath, req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}
