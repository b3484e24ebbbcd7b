// Package config loads gateway configuration from environment variables.
package config

import (
	"os"

	"payment-gateway-sdk/gateway"
)

// Paytech builds a PayTech gateway config from the PAYTECH_* environment
// variables.
func Paytech() gateway.Config {
	cfg := gateway.Config{
		APIKey:        os.Getenv("PAYTECH_API_KEY"),
		APISecret:     os.Getenv("PAYTECH_API_SECRET"),
		Environment:   getEnv("PAYTECH_ENV", gateway.EnvironmentTest),
		WebhookSecret: os.Getenv("PAYTECH_WEBHOOK_SECRET"),
		SuccessURL:    os.Getenv("PAYTECH_SUCCESS_URL"),
		CancelURL:     os.Getenv("PAYTECH_CANCEL_URL"),
		WebhookURL:    os.Getenv("PAYTECH_IPN_URL"),
	}
	if base := os.Getenv("PAYTECH_BASE_URL"); base != "" {
		cfg.Options = map[string]string{"base_url": base}
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
