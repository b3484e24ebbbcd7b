package config

import (
	"testing"

	"payment-gateway-sdk/gateway"
)

func TestPaytech(t *testing.T) {
	t.Setenv("PAYTECH_API_KEY", "k")
	t.Setenv("PAYTECH_API_SECRET", "s")
	t.Setenv("PAYTECH_ENV", "production")
	t.Setenv("PAYTECH_WEBHOOK_SECRET", "whs")
	t.Setenv("PAYTECH_IPN_URL", "https://app.example/ipn")
	t.Setenv("PAYTECH_BASE_URL", "https://sandbox.example/api")

	cfg := Paytech()
	if cfg.APIKey != "k" || cfg.APISecret != "s" {
		t.Fatalf("credentials: %+v", cfg)
	}
	if cfg.Environment != gateway.EnvironmentProduction {
		t.Errorf("Environment = %q", cfg.Environment)
	}
	if cfg.WebhookSecret != "whs" || cfg.WebhookURL != "https://app.example/ipn" {
		t.Errorf("webhook config: %+v", cfg)
	}
	if cfg.Options["base_url"] != "https://sandbox.example/api" {
		t.Errorf("Options = %v", cfg.Options)
	}
}

func TestPaytechDefaultsToTestEnvironment(t *testing.T) {
	t.Setenv("PAYTECH_ENV", "")
	cfg := Paytech()
	if cfg.Environment != gateway.EnvironmentTest {
		t.Errorf("Environment = %q, want test default", cfg.Environment)
	}
}
