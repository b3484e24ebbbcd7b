package paytech

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"testing"

	"payment-gateway-sdk/gateway"
)

func completePayload() map[string]any {
	return map[string]any{
		"token":       "tk_1",
		"ref_command": "ORD-42",
		"type":        "sale_complete",
		"status":      "completed",
	}
}

func TestValidateWebhookEmptyPayload(t *testing.T) {
	for _, payload := range []map[string]any{nil, {}} {
		res := validateWebhook(payload, nil, "")
		if res.Valid {
			t.Fatal("empty payload accepted")
		}
		if res.Reason != "Empty payload" {
			t.Errorf("Reason = %q", res.Reason)
		}
	}
}

func TestValidateWebhookMissingField(t *testing.T) {
	payload := completePayload()
	delete(payload, "status")

	res := validateWebhook(payload, nil, "")
	if res.Valid {
		t.Fatal("payload missing status accepted")
	}
	if !strings.Contains(res.Reason, "status") {
		t.Errorf("Reason = %q, want missing field name", res.Reason)
	}
}

func TestValidateWebhookNoSecretAcceptsUnsigned(t *testing.T) {
	res := validateWebhook(completePayload(), http.Header{}, "")
	if !res.Valid {
		t.Fatalf("well-formed payload rejected without secret: %q", res.Reason)
	}
}

func TestValidateWebhookMissingSignatureHeader(t *testing.T) {
	res := validateWebhook(completePayload(), http.Header{}, "s3cret")
	if res.Valid {
		t.Fatal("unsigned payload accepted with secret configured")
	}
	if res.Reason != "Missing signature header" {
		t.Errorf("Reason = %q", res.Reason)
	}
}

func TestValidateWebhookSignature(t *testing.T) {
	payload := completePayload()
	secret := "s3cret"

	// Recompute the canonical form by hand: keys sorted, k=v joined with &.
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte("ref_command=ORD-42&status=completed&token=tk_1&type=sale_complete"))
	sig := hex.EncodeToString(mac.Sum(nil))

	headers := http.Header{}
	headers.Set(signatureHeader, sig)
	if res := validateWebhook(payload, headers, secret); !res.Valid {
		t.Fatalf("valid signature rejected: %q", res.Reason)
	}

	// Lowercase header key, as some proxies deliver it.
	lower := http.Header{"x-paytech-signature": []string{sig}}
	if res := validateWebhook(payload, lower, secret); !res.Valid {
		t.Fatalf("lowercase signature header rejected: %q", res.Reason)
	}

	headers.Set(signatureHeader, "deadbeef")
	res := validateWebhook(payload, headers, secret)
	if res.Valid {
		t.Fatal("tampered signature accepted")
	}
	if res.Reason != "Invalid signature" {
		t.Errorf("Reason = %q", res.Reason)
	}
}

func TestSignPayloadNumbers(t *testing.T) {
	payload := map[string]any{"amount": float64(5000), "token": "tk"}

	mac := hmac.New(sha256.New, []byte("k"))
	mac.Write([]byte("amount=5000&token=tk"))
	want := hex.EncodeToString(mac.Sum(nil))

	if got := signPayload(payload, "k"); got != want {
		t.Errorf("signPayload = %q, want %q (numbers rendered without decimal point)", got, want)
	}
}

func TestMapWebhookEventTypes(t *testing.T) {
	cases := map[string]gateway.WebhookEventType{
		"sale_complete":         gateway.EventPaymentSuccess,
		"sale_canceled":         gateway.EventPaymentFailed,
		"sale_cancel":           gateway.EventPaymentFailed,
		"sale_pending":          gateway.EventPaymentPending,
		"refund_complete":       gateway.EventRefundSuccess,
		"refund_failed":         gateway.EventRefundFailed,
		"subscription_created":  gateway.EventSubscriptionCreated,
		"subscription_renewed":  gateway.EventSubscriptionRenewed,
		"subscription_canceled": gateway.EventSubscriptionCanceled,
		// Unmapped provider event types keep the historical default.
		"totally_new_event": gateway.EventPaymentSuccess,
	}
	for in, want := range cases {
		payload := completePayload()
		payload["type"] = in
		event := mapWebhookEvent(payload)
		if event.Type != want {
			t.Errorf("mapWebhookEvent type %q = %q, want %q", in, event.Type, want)
		}
	}
}

func TestMapWebhookEventData(t *testing.T) {
	payload := map[string]any{
		"token":          "tk_1",
		"ref_command":    "ORD-42",
		"type":           "sale_complete",
		"status":         "completed",
		"amount":         float64(15000),
		"currency":       "XOF",
		"transaction_id": "TXN-9",
		"custom_field":   `{"a":1}`,
		"customer_info":  map[string]any{"name": "Awa"},
		"date":           "2026-03-01 12:30:00",
	}

	event := mapWebhookEvent(payload)

	if event.Gateway != "paytech" {
		t.Errorf("Gateway = %q", event.Gateway)
	}
	d := event.Data
	if d.Reference != "ORD-42" || d.PaymentID != "tk_1" {
		t.Errorf("reference/payment id: %+v", d)
	}
	if d.Amount != 15000 || d.Currency != "XOF" {
		t.Errorf("amount/currency: %+v", d)
	}
	if d.Status != gateway.StatusCompleted {
		t.Errorf("Status = %q", d.Status)
	}
	if d.GatewayReference != "TXN-9" {
		t.Errorf("GatewayReference = %q", d.GatewayReference)
	}
	if d.Metadata["a"] != float64(1) {
		t.Errorf("Metadata = %v", d.Metadata)
	}
	if _, ok := d.Extra["customer_info"]; !ok {
		t.Errorf("customer_info should land in Extra, got %v", d.Extra)
	}
	if event.CreatedAt.Year() != 2026 {
		t.Errorf("CreatedAt = %v, want provider date", event.CreatedAt)
	}
}

func TestMapWebhookEventMalformedMetadata(t *testing.T) {
	payload := completePayload()
	payload["custom_field"] = "{not json"

	event := mapWebhookEvent(payload)
	if event.Data.Metadata["raw"] != "{not json" {
		t.Fatalf("malformed custom_field must be wrapped as raw, got %v", event.Data.Metadata)
	}
}

func TestMapWebhookEventStringAmount(t *testing.T) {
	payload := completePayload()
	payload["amount"] = "2500"

	event := mapWebhookEvent(payload)
	if event.Data.Amount != 2500 {
		t.Errorf("Amount = %d, want 2500", event.Data.Amount)
	}
}
