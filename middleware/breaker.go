// Package middleware provides opt-in decorators around a gateway.Gateway.
// Nothing here changes adapter behavior unless the embedding application
// chooses to wrap its gateway.
package middleware

import (
	"context"
	"net/http"

	"github.com/sony/gobreaker"

	"payment-gateway-sdk/gateway"
)

// Breaker wraps a Gateway with a circuit breaker. Errors returned by the
// wrapped gateway count as failures; provider-declined payments come back as
// failure responses with a nil error and do not trip the breaker. The wrapped
// adapter itself stays single-shot with no retries.
type Breaker struct {
	next gateway.Gateway
	cb   *gobreaker.CircuitBreaker
}

var _ gateway.Gateway = (*Breaker)(nil)

// NewBreaker wraps next with a breaker configured by settings. A zero
// Settings value uses gobreaker's defaults.
func NewBreaker(next gateway.Gateway, settings gobreaker.Settings) *Breaker {
	if settings.Name == "" {
		settings.Name = next.Name()
	}
	return &Breaker{next: next, cb: gobreaker.NewCircuitBreaker(settings)}
}

func (b *Breaker) Name() string { return b.next.Name() }

func (b *Breaker) Initialize(cfg gateway.Config) error {
	return b.next.Initialize(cfg)
}

func (b *Breaker) CreatePayment(ctx context.Context, req gateway.PaymentRequest) (gateway.PaymentResponse, error) {
	v, err := b.cb.Execute(func() (any, error) {
		return b.next.CreatePayment(ctx, req)
	})
	if err != nil {
		return gateway.PaymentResponse{}, err
	}
	return v.(gateway.PaymentResponse), nil
}

func (b *Breaker) VerifyPayment(ctx context.Context, paymentID string) (gateway.TransactionStatus, error) {
	v, err := b.cb.Execute(func() (any, error) {
		return b.next.VerifyPayment(ctx, paymentID)
	})
	if err != nil {
		return "", err
	}
	return v.(gateway.TransactionStatus), nil
}

func (b *Breaker) RefundPayment(ctx context.Context, paymentID string, amount int64) (gateway.RefundResponse, error) {
	v, err := b.cb.Execute(func() (any, error) {
		return b.next.RefundPayment(ctx, paymentID, amount)
	})
	if err != nil {
		return gateway.RefundResponse{}, err
	}
	return v.(gateway.RefundResponse), nil
}

// Webhook handling is local computation, so it bypasses the breaker.

func (b *Breaker) ValidateWebhook(payload map[string]any, headers http.Header) gateway.WebhookValidationResult {
	return b.next.ValidateWebhook(payload, headers)
}

func (b *Breaker) ProcessWebhook(payload map[string]any) (gateway.WebhookEvent, error) {
	return b.next.ProcessWebhook(payload)
}
