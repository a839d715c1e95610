package client

import (
	"context"

	"github.com/c12i/mpesa-go/internal/constants"
	"github.com/c12i/mpesa-go/pkg/mpesa"
)

// OnboardBiller opts a shortcode in to the bill manager service.
func (c *Client) OnboardBiller(ctx context.Context, req *mpesa.OnboardRequest) (*mpesa.OnboardResponse, error) {
	if req == nil {
		return nil, mpesa.ErrNilRequest
	}

	var resp mpesa.OnboardResponse
	if err := c.dispatch(ctx, constants.OnboardPath, req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// ModifyBillerDetails updates an onboarded biller's details.
func (c *Client) ModifyBillerDetails(ctx context.Context, req *mpesa.OnboardModifyRequest) (*mpesa.OnboardModifyResponse, error) {
	if req == nil {
		return nil, mpesa.ErrNilRequest
	}

	var resp mpesa.OnboardModifyResponse
	if err := c.dispatch(ctx, constants.OnboardModifyPath, req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// SendSingleInvoice sends one invoice to one customer.
func (c *Client) SendSingleInvoice(ctx context.Context, req *mpesa.SingleInvoiceRequest) (*mpesa.SingleInvoiceResponse, error) {
	if req == nil {
		return nil, mpesa.ErrNilRequest
	}

	var resp mpesa.SingleInvoiceResponse
	if err := c.dispatch(ctx, constants.SingleInvoicePath, req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// SendBulkInvoices sends a batch of invoices in one call.
func (c *Client) SendBulkInvoices(ctx context.Context, req *mpesa.BulkInvoiceRequest) (*mpesa.BulkInvoiceResponse, error) {
	if req == nil {
		return nil, mpesa.ErrNilRequest
	}

	var resp mpesa.BulkInvoiceResponse
	if err := c.dispatch(ctx, constants.BulkInvoicePath, req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// ReconcileTransaction marks an invoice settled by an out-of-band payment.
func (c *Client) ReconcileTransaction(ctx context.Context, req *mpesa.ReconciliationRequest) (*mpesa.ReconciliationResponse, error) {
	if req == nil {
		return nil, mpesa.ErrNilRequest
	}

	var resp mpesa.ReconciliationResponse
	if err := c.dispatch(ctx, constants.ReconciliationPath, req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// CancelInvoice recalls a previously sent invoice.
func (c *Client) CancelInvoice(ctx context.Context, req *mpesa.CancelInvoiceRequest) (*mpesa.CancelInvoiceResponse, error) {
	if req == nil {
		return nil, mpesa.ErrNilRequest
	}

	var resp mpesa.CancelInvoiceResponse
	if err := c.dispatch(ctx, constants.CancelInvoicePath, req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// CancelBulkInvoices recalls several invoices in one call.
func (c *Client) CancelBulkInvoices(ctx context.Context, req *mpesa.BulkCancelInvoiceRequest) (*mpesa.BulkCancelInvoiceResponse, error) {
	if req == nil {
		return nil, mpesa.ErrNilRequest
	}

	var resp mpesa.BulkCancelInvoiceResponse
	if err := c.dispatch(ctx, constants.BulkCancelPath, req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}
