// Command demo is an example application embedding the payment gateway SDK:
// it exposes a pay endpoint, a status endpoint and a webhook receiver, with
// redis-backed webhook dedupe when REDIS_ADDR is set.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"payment-gateway-sdk/config"
	"payment-gateway-sdk/gateway"
	"payment-gateway-sdk/idempotency"
	_ "payment-gateway-sdk/paytech"
)

type app struct {
	client *gateway.Client
	dedupe idempotency.Store
	logger *zap.Logger
}

type payRequest struct {
	Amount      int64          `json:"amount"`
	Currency    string         `json:"currency"`
	Reference   string         `json:"reference"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

func (a *app) payHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		json.NewEncoder(w).Encode(map[string]string{"error": "Method Not Allowed"})
		return
	}

	var req payRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid Request Body"})
		return
	}
	if req.Reference == "" {
		req.Reference = "ORD-" + uuid.NewString()
	}

	resp, err := a.client.CreatePayment(r.Context(), gateway.PaymentRequest{
		Amount:      req.Amount,
		Currency:    req.Currency,
		Reference:   req.Reference,
		Description: req.Description,
		Metadata:    req.Metadata,
	})
	if err != nil {
		// Caller misuse: missing fields, bad amount, unsupported currency.
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	a.logger.Info("payment created",
		zap.String("reference", req.Reference),
		zap.Bool("success", resp.Success),
		zap.String("status", string(resp.Status)))

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

func (a *app) statusHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	token := r.URL.Query().Get("token")
	status, err := a.client.VerifyPayment(r.Context(), token)
	if err != nil {
		code := http.StatusBadGateway
		if errors.Is(err, gateway.ErrMissingPaymentID) || errors.Is(err, gateway.ErrNotInitialized) {
			code = http.StatusBadRequest
		}
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"token": token, "status": string(status)})
}

func (a *app) webhookHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		json.NewEncoder(w).Encode(map[string]string{"error": "Method Not Allowed"})
		return
	}

	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid Request Body"})
		return
	}

	result, err := a.client.ValidateWebhook(payload, r.Header)
	if err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}
	if !result.Valid {
		a.logger.Warn("webhook rejected", zap.String("reason", result.Reason))
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": result.Reason})
		return
	}

	event, err := a.client.ProcessWebhook(payload)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	// Providers redeliver until acknowledged; dedupe on the provider's
	// transaction reference so a redelivery is a 200 without reprocessing.
	if a.dedupe != nil && event.Data.GatewayReference != "" {
		seen, err := a.dedupe.BeginProcessing(r.Context(), event.Gateway, event.Data.GatewayReference)
		if err != nil && !errors.Is(err, idempotency.ErrInProgress) {
			a.logger.Error("webhook dedupe check failed", zap.Error(err))
		}
		if seen {
			a.logger.Info("webhook redelivery acknowledged",
				zap.String("gateway_reference", event.Data.GatewayReference))
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{"status": "duplicate"})
			return
		}
	}

	a.logger.Info("webhook event",
		zap.String("type", string(event.Type)),
		zap.String("reference", event.Data.Reference),
		zap.Int64("amount", event.Data.Amount),
		zap.String("status", string(event.Data.Status)))

	if a.dedupe != nil && event.Data.GatewayReference != "" {
		if err := a.dedupe.MarkProcessed(r.Context(), event.Gateway, event.Data.GatewayReference); err != nil {
			a.logger.Error("webhook dedupe mark failed", zap.Error(err))
		}
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	client := gateway.NewClient(gateway.WithLogger(logger))
	if err := client.Initialize("paytech", config.Paytech()); err != nil {
		logger.Fatal("gateway init failed", zap.Error(err))
	}

	a := &app{client: client, logger: logger}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		a.dedupe = idempotency.NewRedisStore(addr, os.Getenv("REDIS_PASS"), 0)
	}

	http.HandleFunc("/v1/pay", a.payHandler)
	http.HandleFunc("/v1/status", a.statusHandler)
	http.HandleFunc("/v1/webhook", a.webhookHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info("starting server", zap.String("port", port))

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
