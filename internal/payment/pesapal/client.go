// Package pesapal implements the payment gateway port against the Pesapal
// API v3 hosted-checkout flow.
package pesapal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/safari-hms/hotel-backend/internal/config"
	"github.com/safari-hms/hotel-backend/internal/metrics"
	"github.com/safari-hms/hotel-backend/internal/payment"
)

const (
	tokenPath  = "/api/Auth/RequestToken"
	submitPath = "/api/Transactions/SubmitOrderRequest"
	statusPath = "/api/Transactions/GetTransactionStatus"

	// Pesapal access tokens expire after five minutes; cache slightly
	// under that so a cached token is never presented stale.
	tokenCacheKey = "pesapal:access_token"
	tokenCacheTTL = 4 * time.Minute

	tokenAttempts = 3
)

// Client talks to the Pesapal v3 API. The redis client is optional; when
// nil, every call requests a fresh access token.
type Client struct {
	cfg    config.PesapalConfig
	http   *http.Client
	rdb    *redis.Client
	logger zerolog.Logger
}

var _ payment.Gateway = (*Client)(nil)

func NewClient(cfg config.PesapalConfig, rdb *redis.Client, logger zerolog.Logger) *Client {
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		rdb:    rdb,
		logger: logger.With().Str("component", "pesapal").Logger(),
	}
}

type tokenResponse struct {
	Token   string `json:"token"`
	Expiry  string `json:"expiryDate"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type submitOrderRequest struct {
	ID             string          `json:"id"`
	Currency       string          `json:"currency"`
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description"`
	CallbackURL    string          `json:"callback_url"`
	NotificationID string          `json:"notification_id"`
	Billing        billingAddress  `json:"billing_address"`
}

type billingAddress struct {
	Email string `json:"email_address"`
	Phone string `json:"phone_number,omitempty"`
}

type submitOrderResponse struct {
	OrderTrackingID string        `json:"order_tracking_id"`
	MerchantRef     string        `json:"merchant_reference"`
	RedirectURL     string        `json:"redirect_url"`
	Status          string        `json:"status"`
	Error           *pesapalError `json:"error"`
}

type transactionStatusResponse struct {
	PaymentMethod   string          `json:"payment_method"`
	Amount          decimal.Decimal `json:"amount"`
	StatusDesc      string          `json:"payment_status_description"`
	MerchantRef     string          `json:"merchant_reference"`
	OrderTrackingID string          `json:"order_tracking_id"`
	Currency        string          `json:"currency"`
	Error           *pesapalError   `json:"error"`
}

type pesapalError struct {
	Type    string `json:"error_type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *pesapalError) empty() bool {
	return e == nil || (e.Code == "" && e.Message == "")
}

func (c *Client) SubmitOrder(ctx context.Context, req payment.OrderRequest) (*payment.OrderResponse, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	body := submitOrderRequest{
		ID:             req.MerchantRef,
		Currency:       req.Currency,
		Amount:         req.Amount,
		Description:    req.Description,
		CallbackURL:    c.cfg.CallbackURL,
		NotificationID: c.cfg.NotificationID,
		Billing: billingAddress{
			Email: req.Email,
			Phone: req.Phone,
		},
	}

	var resp submitOrderResponse
	if err := c.doJSON(ctx, http.MethodPost, submitPath, token, body, &resp); err != nil {
		metrics.IncGatewayRequest("submit_order", "error")
		return nil, err
	}

	if !resp.Error.empty() || resp.OrderTrackingID == "" {
		metrics.IncGatewayRequest("submit_order", "error")
		c.logger.Error().
			Str("merchant_ref", req.MerchantRef).
			Interface("gateway_error", resp.Error).
			Msg("submit order rejected")
		return nil, payment.ErrGatewayQuery
	}

	metrics.IncGatewayRequest("submit_order", "ok")
	return &payment.OrderResponse{
		TrackingID:  resp.OrderTrackingID,
		RedirectURL: resp.RedirectURL,
	}, nil
}

func (c *Client) GetTransactionStatus(ctx context.Context, trackingID string) (*payment.TransactionStatus, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	path := statusPath + "?orderTrackingId=" + url.QueryEscape(trackingID)
	raw, err := c.do(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		metrics.IncGatewayRequest("transaction_status", "error")
		return nil, err
	}

	var resp transactionStatusResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		metrics.IncGatewayRequest("transaction_status", "error")
		return nil, fmt.Errorf("decode transaction status failed: %w", err)
	}

	if !resp.Error.empty() || resp.StatusDesc == "" {
		metrics.IncGatewayRequest("transaction_status", "error")
		c.logger.Error().
			Str("tracking_id", trackingID).
			Interface("gateway_error", resp.Error).
			Msg("transaction status rejected")
		return nil, payment.ErrGatewayQuery
	}

	metrics.IncGatewayRequest("transaction_status", "ok")
	return &payment.TransactionStatus{
		TrackingID:    resp.OrderTrackingID,
		MerchantRef:   resp.MerchantRef,
		Status:        resp.StatusDesc,
		Amount:        resp.Amount,
		Currency:      resp.Currency,
		PaymentMethod: resp.PaymentMethod,
		Raw:           raw,
	}, nil
}

// accessToken returns a bearer token, preferring the redis cache when one
// is configured.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	if c.rdb != nil {
		token, err := c.rdb.Get(ctx, tokenCacheKey).Result()
		if err == nil && token != "" {
			return token, nil
		}
		if err != nil && !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Msg("token cache read failed")
		}
	}

	token, err := c.requestToken(ctx)
	if err != nil {
		return "", err
	}

	if c.rdb != nil {
		if err := c.rdb.Set(ctx, tokenCacheKey, token, tokenCacheTTL).Err(); err != nil {
			c.logger.Warn().Err(err).Msg("token cache write failed")
		}
	}
	return token, nil
}

func (c *Client) requestToken(ctx context.Context) (string, error) {
	body := map[string]string{
		"consumer_key":    c.cfg.ConsumerKey,
		"consumer_secret": c.cfg.ConsumerSecret,
	}

	var lastErr error
	for attempt := 1; attempt <= tokenAttempts; attempt++ {
		var resp tokenResponse
		err := c.doJSON(ctx, http.MethodPost, tokenPath, "", body, &resp)
		if err == nil && resp.Token != "" {
			metrics.IncGatewayRequest("request_token", "ok")
			return resp.Token, nil
		}

		if err == nil {
			err = fmt.Errorf("empty token in response (status %q)", resp.Status)
		}
		lastErr = err
		c.logger.Warn().Err(err).Int("attempt", attempt).Msg("token request failed")

		if attempt < tokenAttempts {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}
	}

	metrics.IncGatewayRequest("request_token", "error")
	c.logger.Error().Err(lastErr).Msg("token request exhausted retries")
	return "", payment.ErrGatewayAuth
}

func (c *Client) doJSON(ctx context.Context, method, path, token string, body, out any) error {
	raw, err := c.do(ctx, method, path, token, body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode gateway response failed: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payloadBytes, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode gateway request failed: %w", err)
		}
		reader = bytes.NewReader(payloadBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build gateway request failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read gateway response failed: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, payment.ErrGatewayAuth
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error().
			Int("status_code", resp.StatusCode).
			Str("path", path).
			Msg("gateway returned non-2xx")
		return nil, payment.ErrGatewayQuery
	}
	return raw, nil
}
