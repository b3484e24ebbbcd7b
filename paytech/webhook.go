package paytech

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"payment-gateway-sdk/gateway"
)

const signatureHeader = "X-Paytech-Signature"

// requiredWebhookFields are checked in order; the first missing key names the
// rejection reason.
var requiredWebhookFields = []string{"token", "ref_command", "type", "status"}

// eventTypes maps PayTech IPN event names onto the unified enumeration.
// Unmapped names fall through to payment.success, matching the provider SDK
// this mirrors.
var eventTypes = map[string]gateway.WebhookEventType{
	"sale_complete":         gateway.EventPaymentSuccess,
	"sale_canceled":         gateway.EventPaymentFailed,
	"sale_cancel":           gateway.EventPaymentFailed,
	"sale_pending":          gateway.EventPaymentPending,
	"refund_complete":       gateway.EventRefundSuccess,
	"refund_failed":         gateway.EventRefundFailed,
	"subscription_created":  gateway.EventSubscriptionCreated,
	"subscription_renewed":  gateway.EventSubscriptionRenewed,
	"subscription_canceled": gateway.EventSubscriptionCanceled,
}

// validateWebhook checks payload completeness and, when a secret is
// configured, the HMAC signature header. Without a secret any well-formed
// payload is accepted; callers needing authenticity in that mode get none.
func validateWebhook(payload map[string]any, headers http.Header, secret string) gateway.WebhookValidationResult {
	if len(payload) == 0 {
		return gateway.WebhookValidationResult{Valid: false, Reason: "Empty payload"}
	}

	for _, field := range requiredWebhookFields {
		if _, ok := payload[field]; !ok {
			return gateway.WebhookValidationResult{
				Valid:  false,
				Reason: fmt.Sprintf("Missing required field: %s", field),
			}
		}
	}

	if secret != "" {
		provided := signatureFromHeaders(headers)
		if provided == "" {
			return gateway.WebhookValidationResult{Valid: false, Reason: "Missing signature header"}
		}
		expected := signPayload(payload, secret)
		if !hmac.Equal([]byte(expected), []byte(provided)) {
			return gateway.WebhookValidationResult{Valid: false, Reason: "Invalid signature"}
		}
	}

	return gateway.WebhookValidationResult{Valid: true}
}

// signatureFromHeaders looks the signature up under both the canonical and
// the all-lowercase header key, since payloads arrive through proxies that
// disagree on casing.
func signatureFromHeaders(headers http.Header) string {
	if v := headers.Get(signatureHeader); v != "" {
		return v
	}
	// http.Header.Get canonicalizes its key, so a map built with a raw
	// lowercase key needs a direct lookup.
	if vs := headers[strings.ToLower(signatureHeader)]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// signPayload computes the expected signature: payload keys sorted
// lexicographically, joined as key=value pairs with '&', HMAC-SHA256 with the
// secret, hex-encoded.
func signPayload(payload map[string]any, secret string) string {
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+canonicalValue(payload[k]))
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strings.Join(pairs, "&")))
	return hex.EncodeToString(mac.Sum(nil))
}

// canonicalValue renders a payload value the way the provider does when
// signing: scalars as plain text, anything structured as compact JSON.
func canonicalValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case json.Number:
		return val.String()
	default:
		encoded, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(encoded)
	}
}

// mapWebhookEvent converts a raw IPN payload into the unified event. It never
// fails on malformed metadata: an unparseable custom_field is wrapped as
// {"raw": <string>} instead of aborting the mapping.
func mapWebhookEvent(payload map[string]any) gateway.WebhookEvent {
	rawType := stringField(payload, "type")
	eventType, ok := eventTypes[rawType]
	if !ok {
		eventType = gateway.EventPaymentSuccess
	}

	data := gateway.WebhookEventData{
		Reference:        stringField(payload, "ref_command"),
		PaymentID:        stringField(payload, "token"),
		Amount:           int64Field(payload, "amount"),
		Currency:         stringField(payload, "currency"),
		Status:           mapStatus(stringField(payload, "status")),
		Metadata:         parseCustomField(payload["custom_field"]),
		GatewayReference: stringField(payload, "transaction_id"),
	}

	known := map[string]bool{
		"token": true, "ref_command": true, "type": true, "status": true,
		"amount": true, "currency": true, "transaction_id": true,
		"custom_field": true, "date": true,
	}
	for k, v := range payload {
		if known[k] {
			continue
		}
		if data.Extra == nil {
			data.Extra = map[string]any{}
		}
		data.Extra[k] = v
	}

	createdAt := time.Now()
	if date := stringField(payload, "date"); date != "" {
		if parsed, err := time.Parse(providerDateLayout, date); err == nil {
			createdAt = parsed
		}
	}

	return gateway.WebhookEvent{
		Type:      eventType,
		Data:      data,
		CreatedAt: createdAt,
		Gateway:   providerName,
	}
}

func parseCustomField(raw any) map[string]any {
	s, ok := raw.(string)
	if !ok || s == "" {
		if m, ok := raw.(map[string]any); ok {
			return m
		}
		return nil
	}
	var parsed map[string]any
	if err := json.Unmarshal([]byte(s), &parsed); err != nil {
		return map[string]any{"raw": s}
	}
	return parsed
}

func stringField(payload map[string]any, key string) string {
	switch v := payload[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

func int64Field(payload map[string]any, key string) int64 {
	switch v := payload[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
		if f, err := v.Float64(); err == nil {
			return int64(f)
		}
		return 0
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return int64(f)
		}
		return 0
	default:
		return 0
	}
}
