// Package moneyfusion reserves the MoneyFusion provider name. The adapter is
// not implemented yet; every operation returns a clear not-implemented error
// rather than failing silently.
package moneyfusion

import (
	"context"
	"fmt"
	"net/http"

	"payment-gateway-sdk/gateway"
)

const providerName = "moneyfusion"

func init() {
	gateway.Register(providerName, func() gateway.Gateway { return &Adapter{} })
}

type Adapter struct{}

var _ gateway.Gateway = (*Adapter)(nil)

func (a *Adapter) Name() string { return providerName }

func (a *Adapter) Initialize(cfg gateway.Config) error {
	return notImplemented()
}

func (a *Adapter) CreatePayment(ctx context.Context, req gateway.PaymentRequest) (gateway.PaymentResponse, error) {
	return gateway.PaymentResponse{}, notImplemented()
}

func (a *Adapter) VerifyPayment(ctx context.Context, paymentID string) (gateway.TransactionStatus, error) {
	return "", notImplemented()
}

func (a *Adapter) RefundPayment(ctx context.Context, paymentID string, amount int64) (gateway.RefundResponse, error) {
	return gateway.RefundResponse{}, notImplemented()
}

func (a *Adapter) ValidateWebhook(payload map[string]any, headers http.Header) gateway.WebhookValidationResult {
	return gateway.WebhookValidationResult{Valid: false, Reason: notImplemented().Error()}
}

func (a *Adapter) ProcessWebhook(payload map[string]any) (gateway.WebhookEvent, error) {
	return gateway.WebhookEvent{}, notImplemented()
}

func notImplemented() error {
	return fmt.Errorf("%s: %w", providerName, gateway.ErrProviderNotImplemented)
}
