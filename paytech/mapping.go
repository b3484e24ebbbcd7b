package paytech

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"payment-gateway-sdk/gateway"
)

// supportedCurrencies is PayTech's fixed allow-list.
var supportedCurrencies = []string{"XOF", "EUR", "USD", "CAD", "GBP", "MAD"}

// IsValidCurrency reports whether PayTech accepts the given currency code,
// compared case-insensitively.
func IsValidCurrency(code string) bool {
	return gateway.SupportedCurrency(code, supportedCurrencies)
}

// providerDateLayout is the timestamp format PayTech uses in refund responses
// and webhook payloads.
const providerDateLayout = "2006-01-02 15:04:05"

const fallbackPaymentError = "Payment request failed"
const fallbackRefundError = "Refund request failed"

// buildPaymentRequest maps the unified request onto the PayTech wire format.
// The amount is passed through verbatim as a smallest-unit integer string;
// no currency-unit conversion happens here. Request-level URLs always win
// over the defaults configured at initialization.
func buildPaymentRequest(req gateway.PaymentRequest, cfg gateway.Config) paymentRequestWire {
	wire := paymentRequestWire{
		ItemName:    req.Description,
		ItemPrice:   strconv.FormatInt(req.Amount, 10),
		Currency:    req.Currency,
		RefCommand:  req.Reference,
		CommandName: req.Reference,
		Env:         mapEnvironment(cfg.Environment),
		IPNURL:      firstNonEmpty(req.WebhookURL, cfg.WebhookURL),
		SuccessURL:  firstNonEmpty(req.SuccessURL, cfg.SuccessURL),
		CancelURL:   firstNonEmpty(req.CancelURL, cfg.CancelURL),
	}
	if len(req.Metadata) > 0 {
		if encoded, err := json.Marshal(req.Metadata); err == nil {
			wire.CustomField = string(encoded)
		}
	}
	return wire
}

// mapEnvironment translates the unified environment tag into PayTech's
// two-valued env field.
func mapEnvironment(env string) string {
	if env == gateway.EnvironmentProduction {
		return "prod"
	}
	return "test"
}

// mapPaymentResponse normalizes the provider's payment response. PayTech
// signals success with a numeric flag and issues no separate payment id, so
// the token doubles as the identifier. It also echoes no timestamp back, so
// the creation time is the call time.
func mapPaymentResponse(wire paymentResponseWire, now time.Time) gateway.PaymentResponse {
	if wire.Success != 1 {
		return failedPaymentResponse(providerErrorMessage(wire.Errors, wire.Message, fallbackPaymentError), now)
	}
	return gateway.PaymentResponse{
		Success:     true,
		RedirectURL: wire.RedirectURL,
		Token:       wire.Token,
		PaymentID:   wire.Token,
		Status:      gateway.StatusPending,
		CreatedAt:   now,
	}
}

func failedPaymentResponse(message string, now time.Time) gateway.PaymentResponse {
	return gateway.PaymentResponse{
		Success:   false,
		Status:    gateway.StatusFailed,
		Message:   message,
		CreatedAt: now,
	}
}

// mapRefundResponse normalizes the provider's refund response. The amount the
// caller explicitly requested takes precedence over the provider-reported one;
// the provider echo is only used when the caller asked for a full refund.
func mapRefundResponse(wire refundResponseWire, requestedAmount int64, now time.Time) gateway.RefundResponse {
	if wire.Success != 1 {
		return failedRefundResponse(providerErrorMessage(wire.Errors, "", fallbackRefundError), now)
	}

	amount := requestedAmount
	if amount <= 0 {
		amount, _ = strconv.ParseInt(wire.Amount, 10, 64)
	}

	createdAt := now
	if wire.Date != "" {
		if parsed, err := time.Parse(providerDateLayout, wire.Date); err == nil {
			createdAt = parsed
		}
	}

	return gateway.RefundResponse{
		Success:   true,
		RefundID:  wire.RefundID,
		Amount:    amount,
		Status:    gateway.StatusRefunded,
		CreatedAt: createdAt,
	}
}

func failedRefundResponse(message string, now time.Time) gateway.RefundResponse {
	return gateway.RefundResponse{
		Success:   false,
		Status:    gateway.StatusFailed,
		Message:   message,
		CreatedAt: now,
	}
}

// mapStatus is the single authority translating PayTech status vocabulary to
// the unified enumeration. It is total: unrecognized values map to failed so
// a future provider status never breaks the caller.
func mapStatus(status string) gateway.TransactionStatus {
	switch strings.ToLower(status) {
	case "completed", "success":
		return gateway.StatusCompleted
	case "pending", "waiting":
		return gateway.StatusPending
	case "canceled", "cancelled":
		return gateway.StatusCanceled
	case "refunded":
		return gateway.StatusRefunded
	default:
		return gateway.StatusFailed
	}
}

func providerErrorMessage(errField, msgField, fallback string) string {
	if errField != "" {
		return errField
	}
	if msgField != "" {
		return msgField
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
