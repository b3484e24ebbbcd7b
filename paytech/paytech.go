// Package paytech implements the gateway contract for the PayTech payment
// provider. Every operation is a single outbound HTTP call plus field
// mapping; there are no retries and no internal state beyond the
// configuration set at initialization.
package paytech

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"payment-gateway-sdk/gateway"
)

const providerName = "paytech"

var _ gateway.Gateway = (*Adapter)(nil)

func init() {
	gateway.Register(providerName, func() gateway.Gateway { return NewAdapter() })
}

// Adapter talks to the PayTech REST API. Its configuration is immutable after
// Initialize, so concurrent calls against one Adapter are safe: each call
// builds its own request and response values.
type Adapter struct {
	cfg         gateway.Config
	client      *apiClient
	logger      *zap.Logger
	initialized bool
}

// AdapterOption configures an Adapter before initialization.
type AdapterOption func(*Adapter)

// WithLogger attaches a logger used for outbound call diagnostics.
func WithLogger(logger *zap.Logger) AdapterOption {
	return func(a *Adapter) { a.logger = logger }
}

// NewAdapter returns an uninitialized adapter. Payment operations fail with
// gateway.ErrNotInitialized until Initialize is called.
func NewAdapter(opts ...AdapterOption) *Adapter {
	a := &Adapter{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Adapter) Name() string { return providerName }

// Initialize stores credentials and builds the HTTP client. There is no
// network verification of the credentials; a bad key surfaces on the first
// payment call.
func (a *Adapter) Initialize(cfg gateway.Config) error {
	a.cfg = cfg
	a.client = newAPIClient(cfg.Options["base_url"], cfg.APIKey, cfg.APISecret, a.logger)
	a.initialized = true
	return nil
}

// CreatePayment validates the request, posts it to the provider and
// normalizes the answer. Provider and transport failures come back as a
// failure response with a nil error; only caller misuse is an error.
func (a *Adapter) CreatePayment(ctx context.Context, req gateway.PaymentRequest) (gateway.PaymentResponse, error) {
	if !a.initialized {
		return gateway.PaymentResponse{}, gateway.ErrNotInitialized
	}
	if req.Reference == "" {
		return gateway.PaymentResponse{}, gateway.ErrMissingReference
	}
	if req.Description == "" {
		return gateway.PaymentResponse{}, gateway.ErrMissingDescription
	}
	if !gateway.ValidAmount(req.Amount) {
		return gateway.PaymentResponse{}, gateway.ErrInvalidAmount
	}
	if !IsValidCurrency(req.Currency) {
		return gateway.PaymentResponse{}, gateway.ErrUnsupportedCurrency
	}

	wire, err := a.client.requestPayment(ctx, buildPaymentRequest(req, a.cfg))
	now := time.Now()
	if err != nil {
		a.logger.Error("paytech payment request failed",
			zap.String("reference", req.Reference),
			zap.Error(err))
		return failedPaymentResponse(callErrorMessage(err, fallbackPaymentError), now), nil
	}

	resp := mapPaymentResponse(wire, now)
	a.logger.Info("paytech payment created",
		zap.String("reference", req.Reference),
		zap.Bool("success", resp.Success),
		zap.String("token", resp.Token))
	return resp, nil
}

// VerifyPayment asks the provider for the current status of a payment token.
// Transport failures are returned as errors; a token the provider does not
// know about reports StatusFailed with a nil error.
func (a *Adapter) VerifyPayment(ctx context.Context, paymentID string) (gateway.TransactionStatus, error) {
	if !a.initialized {
		return "", gateway.ErrNotInitialized
	}
	if paymentID == "" {
		return "", gateway.ErrMissingPaymentID
	}

	wire, err := a.client.checkStatus(ctx, paymentID)
	if err != nil {
		if errors.Is(err, errPaymentNotFound) {
			return gateway.StatusFailed, nil
		}
		return "", err
	}
	if wire.Success != 1 {
		return gateway.StatusFailed, nil
	}
	return mapStatus(wire.Status), nil
}

// RefundPayment requests a refund for a payment token. Pass amount 0 for a
// full refund; a positive amount requests a partial one and takes precedence
// over the provider-reported amount in the result.
func (a *Adapter) RefundPayment(ctx context.Context, paymentID string, amount int64) (gateway.RefundResponse, error) {
	if !a.initialized {
		return gateway.RefundResponse{}, gateway.ErrNotInitialized
	}
	if paymentID == "" {
		return gateway.RefundResponse{}, gateway.ErrMissingPaymentID
	}
	if amount < 0 {
		return gateway.RefundResponse{}, gateway.ErrInvalidAmount
	}

	wire := refundRequestWire{Token: paymentID}
	if amount > 0 {
		wire.Amount = strconv.FormatInt(amount, 10)
	}

	respWire, err := a.client.refund(ctx, wire)
	now := time.Now()
	if err != nil {
		a.logger.Error("paytech refund request failed",
			zap.String("token", paymentID),
			zap.Error(err))
		return failedRefundResponse(callErrorMessage(err, fallbackRefundError), now), nil
	}

	resp := mapRefundResponse(respWire, amount, now)
	a.logger.Info("paytech refund processed",
		zap.String("token", paymentID),
		zap.Bool("success", resp.Success),
		zap.String("refund_id", resp.RefundID))
	return resp, nil
}

// ValidateWebhook checks an inbound IPN payload for completeness and, when a
// webhook secret was configured, verifies its signature.
func (a *Adapter) ValidateWebhook(payload map[string]any, headers http.Header) gateway.WebhookValidationResult {
	return validateWebhook(payload, headers, a.cfg.WebhookSecret)
}

// ProcessWebhook converts a raw IPN payload into a unified event. Malformed
// metadata never fails the mapping; a nil payload is the only error case.
func (a *Adapter) ProcessWebhook(payload map[string]any) (gateway.WebhookEvent, error) {
	if len(payload) == 0 {
		return gateway.WebhookEvent{}, gateway.ErrNilPayload
	}
	return mapWebhookEvent(payload), nil
}

// callErrorMessage extracts the provider's error field from an HTTP error
// response, falling back to the transport error text.
func callErrorMessage(err error, fallback string) string {
	var apiErr *apiError
	if errors.As(err, &apiErr) && apiErr.message != "" {
		return apiErr.message
	}
	if err != nil {
		return err.Error()
	}
	return fallback
}
