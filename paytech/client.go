package paytech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://paytech.sn/api"

// errPaymentNotFound marks a status check for a token the provider does not
// know about.
var errPaymentNotFound = errors.New("paytech: payment not found")

// apiError carries the provider's error message from a non-2xx response.
type apiError struct {
	statusCode int
	message    string
}

func (e *apiError) Error() string {
	if e.message != "" {
		return fmt.Sprintf("paytech: %s (http %d)", e.message, e.statusCode)
	}
	return fmt.Sprintf("paytech: request failed with http %d", e.statusCode)
}

// apiClient performs the outbound HTTP calls. Authentication is two custom
// headers carried on every call.
type apiClient struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
	logger     *zap.Logger
}

func newAPIClient(baseURL, apiKey, apiSecret string, logger *zap.Logger) *apiClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &apiClient{
		baseURL:   baseURL,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

func (c *apiClient) requestPayment(ctx context.Context, wire paymentRequestWire) (paymentResponseWire, error) {
	var out paymentResponseWire
	err := c.do(ctx, http.MethodPost, "/payment/request-payment", wire, &out)
	return out, err
}

func (c *apiClient) checkStatus(ctx context.Context, token string) (statusResponseWire, error) {
	var out statusResponseWire
	err := c.do(ctx, http.MethodGet, "/payment/check-status/"+token, nil, &out)
	var apiErr *apiError
	if errors.As(err, &apiErr) && apiErr.statusCode == http.StatusNotFound {
		return out, errPaymentNotFound
	}
	return out, err
}

func (c *apiClient) refund(ctx context.Context, wire refundRequestWire) (refundResponseWire, error) {
	var out refundResponseWire
	err := c.do(ctx, http.MethodPost, "/payment/refund", wire, &out)
	return out, err
}

func (c *apiClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("paytech: encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("paytech: build request: %w", err)
	}
	req.Header.Set("API_KEY", c.apiKey)
	req.Header.Set("API_SECRET", c.apiSecret)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("paytech request", zap.String("method", method), zap.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("paytech request failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("paytech: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		// The provider puts its error message in the body of error responses.
		var wire struct {
			Errors  string `json:"errors"`
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&wire)
		msg := wire.Errors
		if msg == "" {
			msg = wire.Message
		}
		c.logger.Error("paytech error response",
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode),
			zap.String("message", msg))
		return &apiError{statusCode: resp.StatusCode, message: msg}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("paytech: decode response: %w", err)
	}
	return nil
}
