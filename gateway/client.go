package gateway

import (
	"context"
	"net/http"
	"sync"

	"go.uber.org/zap"
)

// Client holds the currently selected provider adapter and forwards every
// call to it. It is an explicit object the embedding application constructs
// and owns, so several clients with different providers can coexist in one
// process. Only one provider is active per Client; re-initializing replaces
// the prior adapter wholesale.
type Client struct {
	mu     sync.RWMutex
	gw     Gateway
	logger *zap.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithLogger attaches a logger used for initialization events.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) { c.logger = logger }
}

// NewClient returns a Client with no active provider. Every delegate call
// fails with ErrNotInitialized until Initialize succeeds.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initialize selects a provider by name, initializes a fresh adapter with the
// given config and makes it the active one. A previously active adapter is
// discarded.
func (c *Client) Initialize(provider string, cfg Config) error {
	gw, err := New(provider)
	if err != nil {
		return err
	}
	if err := gw.Initialize(cfg); err != nil {
		return err
	}

	c.mu.Lock()
	c.gw = gw
	c.mu.Unlock()

	c.logger.Info("payment gateway initialized",
		zap.String("provider", gw.Name()),
		zap.String("environment", cfg.Environment))
	return nil
}

// Provider returns the active provider's name, or "" before initialization.
func (c *Client) Provider() string {
	if gw := c.active(); gw != nil {
		return gw.Name()
	}
	return ""
}

func (c *Client) active() Gateway {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gw
}

func (c *Client) CreatePayment(ctx context.Context, req PaymentRequest) (PaymentResponse, error) {
	gw := c.active()
	if gw == nil {
		return PaymentResponse{}, ErrNotInitialized
	}
	return gw.CreatePayment(ctx, req)
}

func (c *Client) VerifyPayment(ctx context.Context, paymentID string) (TransactionStatus, error) {
	gw := c.active()
	if gw == nil {
		return "", ErrNotInitialized
	}
	return gw.VerifyPayment(ctx, paymentID)
}

func (c *Client) RefundPayment(ctx context.Context, paymentID string, amount int64) (RefundResponse, error) {
	gw := c.active()
	if gw == nil {
		return RefundResponse{}, ErrNotInitialized
	}
	return gw.RefundPayment(ctx, paymentID, amount)
}

func (c *Client) ValidateWebhook(payload map[string]any, headers http.Header) (WebhookValidationResult, error) {
	gw := c.active()
	if gw == nil {
		return WebhookValidationResult{}, ErrNotInitialized
	}
	return gw.ValidateWebhook(payload, headers), nil
}

func (c *Client) ProcessWebhook(payload map[string]any) (WebhookEvent, error) {
	gw := c.active()
	if gw == nil {
		return WebhookEvent{}, ErrNotInitialized
	}
	return gw.ProcessWebhook(payload)
}
