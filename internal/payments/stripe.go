// Package payments is a thin client for the slice of the Stripe REST API
// the subscription flow needs: creating payment intents and reading back
// checkout sessions. Amounts are integer minor units throughout; nothing in
// this package does float arithmetic on money.
package payments

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/crystal-grimoire/backend/internal/model"
)

const defaultBaseURL = "https://api.stripe.com"

// Client talks to the Stripe REST API.
type Client struct {
	http *resty.Client
}

// New creates a Client with the given secret key. baseURL is overridable
// for tests and stripe-mock; empty selects the live endpoint.
func New(secretKey, baseURL string) (*Client, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("stripe secret key required: %w", model.ErrInvalidArgument)
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	c := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(secretKey).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetTimeout(30 * time.Second)
	return &Client{http: c}, nil
}

// PaymentIntent is the subset of Stripe's payment intent object we read.
type PaymentIntent struct {
	ID           string `json:"id"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
	ClientSecret string `json:"client_secret"`
}

// CheckoutSession is the subset of Stripe's checkout session object we read.
type CheckoutSession struct {
	ID            string `json:"id"`
	PaymentStatus string `json:"payment_status"`
	Status        string `json:"status"`
	AmountTotal   int64  `json:"amount_total"`
	Currency      string `json:"currency"`
	CustomerEmail string `json:"customer_email"`
}

type stripeError struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreatePaymentIntent creates a payment intent for amount minor units.
// Non-positive amounts are rejected before any network call.
func (c *Client) CreatePaymentIntent(ctx context.Context, amount int64, currency, userID string) (PaymentIntent, error) {
	if amount <= 0 {
		return PaymentIntent{}, fmt.Errorf("amount must be positive minor units, got %d: %w", amount, model.ErrInvalidArgument)
	}
	if currency == "" {
		return PaymentIntent{}, fmt.Errorf("currency required: %w", model.ErrInvalidArgument)
	}

	var out PaymentIntent
	var apiErr stripeError
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"amount":           strconv.FormatInt(amount, 10),
			"currency":         currency,
			"metadata[userId]": userID,
		}).
		SetResult(&out).
		SetError(&apiErr).
		Post("/v1/payment_intents")
	if err != nil {
		return PaymentIntent{}, fmt.Errorf("stripe request: %w", err)
	}
	if resp.IsError() {
		return PaymentIntent{}, stripeStatusErr(resp.StatusCode(), apiErr)
	}
	return out, nil
}

// GetCheckoutSession fetches a checkout session by id, usually to verify a
// completed purchase before upgrading the user's tier.
func (c *Client) GetCheckoutSession(ctx context.Context, sessionID string) (CheckoutSession, error) {
	if sessionID == "" {
		return CheckoutSession{}, fmt.Errorf("session id required: %w", model.ErrInvalidArgument)
	}

	var out CheckoutSession
	var apiErr stripeError
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&apiErr).
		Get("/v1/checkout/sessions/" + sessionID)
	if err != nil {
		return CheckoutSession{}, fmt.Errorf("stripe request: %w", err)
	}
	if resp.IsError() {
		return CheckoutSession{}, stripeStatusErr(resp.StatusCode(), apiErr)
	}
	return out, nil
}

func stripeStatusErr(status int, apiErr stripeError) error {
	msg := apiErr.Error.Message
	if msg == "" {
		msg = http.StatusText(status)
	}
	switch status {
	case http.StatusNotFound:
		return fmt.Errorf("stripe: %s: %w", msg, model.ErrNotFound)
	case http.StatusBadRequest, http.StatusPaymentRequired:
		return fmt.Errorf("stripe: %s: %w", msg, model.ErrInvalidArgument)
	case http.StatusUnauthorized:
		return fmt.Errorf("stripe: %s: %w", msg, model.ErrUnauthenticated)
	default:
		return fmt.Errorf("stripe: status %d: %s: %w", status, msg, model.ErrInternal)
	}
}
