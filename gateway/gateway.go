// Package gateway defines the unified payment model and the contract every
// payment provider adapter implements. Applications talk to one Client that
// delegates to the adapter selected at initialization; provider packages
// register themselves with the package registry on import.
package gateway

import (
	"context"
	"errors"
	"net/http"
)

// Caller-misuse errors. These are returned before any network call is made
// and are never converted into a failure response value.
var (
	ErrNotInitialized         = errors.New("gateway not initialized")
	ErrUnknownProvider        = errors.New("unknown payment provider")
	ErrProviderNotImplemented = errors.New("payment provider not implemented")

	ErrMissingReference    = errors.New("payment reference is required")
	ErrMissingDescription  = errors.New("payment description is required")
	ErrInvalidAmount       = errors.New("payment amount must be positive")
	ErrUnsupportedCurrency = errors.New("currency not supported by provider")
	ErrMissingPaymentID    = errors.New("payment id is required")
	ErrNilPayload          = errors.New("webhook payload is empty")
)

// Gateway is the contract implemented by every payment provider adapter.
//
// CreatePayment and RefundPayment convert provider or transport failures into
// a failure response with a nil error; only caller misuse yields an error.
// VerifyPayment returns transport failures as errors, but reports a payment
// the provider does not know about as StatusFailed with a nil error.
type Gateway interface {
	Name() string

	// Initialize stores credentials and defaults. It performs no network
	// verification and leaves the adapter ready for its lifetime.
	Initialize(cfg Config) error

	CreatePayment(ctx context.Context, req PaymentRequest) (PaymentResponse, error)
	VerifyPayment(ctx context.Context, paymentID string) (TransactionStatus, error)
	RefundPayment(ctx context.Context, paymentID string, amount int64) (RefundResponse, error)

	ValidateWebhook(payload map[string]any, headers http.Header) WebhookValidationResult
	ProcessWebhook(payload map[string]any) (WebhookEvent, error)
}
