package client

import (
	"context"

	"github.com/c12i/mpesa-go/internal/constants"
	"github.com/c12i/mpesa-go/pkg/mpesa"
)

// C2BRegister registers validation and confirmation callbacks for inbound
// payments.
func (c *Client) C2BRegister(ctx context.Context, req *mpesa.C2BRegisterRequest) (*mpesa.C2BRegisterResponse, error) {
	if req == nil {
		return nil, mpesa.ErrNilRequest
	}

	var resp mpesa.C2BRegisterResponse
	if err := c.dispatch(ctx, constants.C2BRegisterPath, req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// C2BSimulate simulates an inbound customer payment. Sandbox only.
func (c *Client) C2BSimulate(ctx context.Context, req *mpesa.C2BSimulateRequest) (*mpesa.C2BSimulateResponse, error) {
	if req == nil {
		return nil, mpesa.ErrNilRequest
	}

	var resp mpesa.C2BSimulateResponse
	if err := c.dispatch(ctx, constants.C2BSimulatePath, req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// DynamicQR generates a payment QR code.
func (c *Client) DynamicQR(ctx context.Context, req *mpesa.DynamicQRRequest) (*mpesa.DynamicQRResponse, error) {
	if req == nil {
		return nil, mpesa.ErrNilRequest
	}

	var resp mpesa.DynamicQRResponse
	if err := c.dispatch(ctx, constants.DynamicQRPath, req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}
