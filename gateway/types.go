package gateway

import "time"

// TransactionStatus is the canonical status every provider-specific status
// string is mapped into.
type TransactionStatus string

const (
	StatusPending           TransactionStatus = "pending"
	StatusCompleted         TransactionStatus = "completed"
	StatusFailed            TransactionStatus = "failed"
	StatusCanceled          TransactionStatus = "canceled"
	StatusRefunded          TransactionStatus = "refunded"
	StatusPartiallyRefunded TransactionStatus = "partially_refunded"
)

// WebhookEventType identifies the kind of lifecycle event a provider webhook
// reports, normalized across providers.
type WebhookEventType string

const (
	EventPaymentSuccess       WebhookEventType = "payment.success"
	EventPaymentFailed        WebhookEventType = "payment.failed"
	EventPaymentPending       WebhookEventType = "payment.pending"
	EventRefundSuccess        WebhookEventType = "refund.success"
	EventRefundFailed         WebhookEventType = "refund.failed"
	EventSubscriptionCreated  WebhookEventType = "subscription.created"
	EventSubscriptionRenewed  WebhookEventType = "subscription.renewed"
	EventSubscriptionCanceled WebhookEventType = "subscription.canceled"
)

// PaymentRequest contains the provider-agnostic data for initiating a payment.
// Amount is expressed in the smallest currency unit (e.g. cents).
type PaymentRequest struct {
	Amount      int64
	Currency    string
	Reference   string // merchant-unique order reference
	Description string

	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	// Metadata is carried through the provider untouched and echoed back on
	// webhook events.
	Metadata map[string]any

	// Per-request URLs. When empty, the defaults configured at initialization
	// are used instead.
	SuccessURL string
	CancelURL  string
	WebhookURL string
}

// PaymentResponse holds the normalized result of a payment initiation.
type PaymentResponse struct {
	Success     bool
	RedirectURL string
	// Token is the provider-issued payment identifier. PaymentID carries the
	// same value for providers that have no separate identifier.
	Token     string
	PaymentID string
	Status    TransactionStatus
	Message   string
	CreatedAt time.Time
}

// RefundResponse holds the normalized result of a refund request.
type RefundResponse struct {
	Success   bool
	RefundID  string
	Amount    int64
	Status    TransactionStatus
	Message   string
	CreatedAt time.Time
}

// WebhookEventData is the payload carried by a WebhookEvent.
type WebhookEventData struct {
	Reference string
	PaymentID string
	Amount    int64
	Currency  string
	Status    TransactionStatus
	Metadata  map[string]any
	// GatewayReference is the provider's own transaction identifier, when it
	// differs from the payment token.
	GatewayReference string
	// Extra holds provider fields that have no unified equivalent.
	Extra map[string]any
}

// WebhookEvent is a normalized provider notification.
type WebhookEvent struct {
	Type      WebhookEventType
	Data      WebhookEventData
	CreatedAt time.Time
	Gateway   string
}

// WebhookValidationResult reports whether an inbound webhook payload should be
// trusted, with a human-readable reason when it should not.
type WebhookValidationResult struct {
	Valid  bool
	Reason string
}

// Config carries the credentials and defaults a provider adapter needs.
// It is read-only after the adapter is initialized.
type Config struct {
	APIKey    string
	APISecret string
	// Environment selects the provider environment: "test" or "production".
	Environment string
	// WebhookSecret enables signature verification on inbound webhooks.
	// When empty, any well-formed payload is accepted.
	WebhookSecret string

	// Default URLs, used when a PaymentRequest omits its own.
	SuccessURL string
	CancelURL  string
	WebhookURL string

	// Options holds provider-specific settings (e.g. an alternate base URL).
	Options map[string]string
}

const (
	EnvironmentTest       = "test"
	EnvironmentProduction = "production"
)
