package client

import (
	"context"

	"github.com/c12i/mpesa-go/internal/constants"
	"github.com/c12i/mpesa-go/pkg/mpesa"
)

// B2C pays out from an organization shortcode to a customer phone number.
func (c *Client) B2C(ctx context.Context, req *mpesa.B2CRequest) (*mpesa.B2CResponse, error) {
	if req == nil {
		return nil, mpesa.ErrNilRequest
	}

	var resp mpesa.B2CResponse
	if err := c.dispatch(ctx, constants.B2CPaymentPath, req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// B2B moves money between two organization shortcodes.
func (c *Client) B2B(ctx context.Context, req *mpesa.B2BRequest) (*mpesa.B2BResponse, error) {
	if req == nil {
		return nil, mpesa.ErrNilRequest
	}

	var resp mpesa.B2BResponse
	if err := c.dispatch(ctx, constants.B2BPaymentPath, req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// ExpressPush sends a payment prompt to the customer's phone.
func (c *Client) ExpressPush(ctx context.Context, req *mpesa.ExpressRequest) (*mpesa.ExpressResponse, error) {
	if req == nil {
		return nil, mpesa.ErrNilRequest
	}

	var resp mpesa.ExpressResponse
	if err := c.dispatch(ctx, constants.ExpressPushPath, req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// ExpressQuery looks up the outcome of an earlier push prompt.
func (c *Client) ExpressQuery(ctx context.Context, req *mpesa.ExpressQueryRequest) (*mpesa.ExpressQueryResponse, error) {
	if req == nil {
		return nil, mpesa.ErrNilRequest
	}

	var resp mpesa.ExpressQueryResponse
	if err := c.dispatch(ctx, constants.ExpressQueryPath, req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}
