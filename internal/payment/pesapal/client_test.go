package pesapal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safari-hms/hotel-backend/internal/config"
	"github.com/safari-hms/hotel-backend/internal/payment"
)

type gatewayStub struct {
	tokenCalls  atomic.Int64
	tokenFails  int64
	submitCalls atomic.Int64
	statusDesc  string
}

func (g *gatewayStub) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc(tokenPath, func(w http.ResponseWriter, r *http.Request) {
		n := g.tokenCalls.Add(1)
		if n <= g.tokenFails {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"token": "test-token", "status": "200"})
	})

	mux.HandleFunc(submitPath, func(w http.ResponseWriter, r *http.Request) {
		g.submitCalls.Add(1)
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(map[string]any{
			"order_tracking_id":  "trk-1",
			"merchant_reference": body["id"],
			"redirect_url":       "https://pay.example.com/trk-1",
			"status":             "200",
		})
	})

	mux.HandleFunc(statusPath, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"payment_status_description": g.statusDesc,
			"order_tracking_id":          r.URL.Query().Get("orderTrackingId"),
			"merchant_reference":         "ref-1",
			"amount":                     450,
			"currency":                   "UGX",
			"payment_method":             "MPESA",
		})
	})

	return mux
}

func newTestClient(t *testing.T, baseURL string, rdb *redis.Client) *Client {
	t.Helper()
	return NewClient(config.PesapalConfig{
		BaseURL:        baseURL,
		ConsumerKey:    "key",
		ConsumerSecret: "secret",
		CallbackURL:    "https://hotel.example.com/v1/payments/callback",
		NotificationID: "ipn-1",
		Currency:       "UGX",
		Timeout:        5 * time.Second,
	}, rdb, zerolog.Nop())
}

func TestSubmitOrder(t *testing.T) {
	stub := &gatewayStub{}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	c := newTestClient(t, srv.URL, nil)

	resp, err := c.SubmitOrder(context.Background(), payment.OrderRequest{
		MerchantRef: "ref-1",
		Amount:      decimal.NewFromInt(450),
		Currency:    "UGX",
		Description: "Room 204 booking",
		Email:       "guest@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "trk-1", resp.TrackingID)
	assert.Equal(t, "https://pay.example.com/trk-1", resp.RedirectURL)
	assert.EqualValues(t, 1, stub.tokenCalls.Load())
}

func TestGetTransactionStatus(t *testing.T) {
	stub := &gatewayStub{statusDesc: "COMPLETED"}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	c := newTestClient(t, srv.URL, nil)

	ts, err := c.GetTransactionStatus(context.Background(), "trk-1")
	require.NoError(t, err)

	assert.Equal(t, "COMPLETED", ts.Status)
	assert.Equal(t, "trk-1", ts.TrackingID)
	assert.Equal(t, "MPESA", ts.PaymentMethod)
	assert.True(t, ts.Amount.Equal(decimal.NewFromInt(450)))
	assert.NotEmpty(t, ts.Raw)

	// The raw body round-trips so it can be stored in the audit log.
	var raw map[string]any
	require.NoError(t, json.Unmarshal(ts.Raw, &raw))
	assert.Equal(t, "COMPLETED", raw["payment_status_description"])
}

func TestTokenCache(t *testing.T) {
	stub := &gatewayStub{statusDesc: "PENDING"}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	c := newTestClient(t, srv.URL, rdb)
	ctx := context.Background()

	_, err := c.GetTransactionStatus(ctx, "trk-1")
	require.NoError(t, err)
	_, err = c.GetTransactionStatus(ctx, "trk-2")
	require.NoError(t, err)

	// One token request serves both calls.
	assert.EqualValues(t, 1, stub.tokenCalls.Load())
	cached, err := mr.Get(tokenCacheKey)
	require.NoError(t, err)
	assert.Equal(t, "test-token", cached)

	// An expired cache entry triggers a fresh token request.
	mr.FastForward(tokenCacheTTL + time.Second)
	_, err = c.GetTransactionStatus(ctx, "trk-3")
	require.NoError(t, err)
	assert.EqualValues(t, 2, stub.tokenCalls.Load())
}

func TestTokenRetry(t *testing.T) {
	stub := &gatewayStub{tokenFails: 2, statusDesc: "PENDING"}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	c := newTestClient(t, srv.URL, nil)

	// Two failures then success: the bounded retry absorbs them.
	_, err := c.GetTransactionStatus(context.Background(), "trk-1")
	require.NoError(t, err)
	assert.EqualValues(t, 3, stub.tokenCalls.Load())
}

func TestTokenExhaustedRetries(t *testing.T) {
	stub := &gatewayStub{tokenFails: int64(tokenAttempts)}
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	c := newTestClient(t, srv.URL, nil)

	_, err := c.SubmitOrder(context.Background(), payment.OrderRequest{MerchantRef: "ref-1"})
	assert.ErrorIs(t, err, payment.ErrGatewayAuth)
	assert.EqualValues(t, tokenAttempts, stub.tokenCalls.Load())
}

func TestGatewayErrorBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(tokenPath, func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"token": "test-token"})
	})
	mux.HandleFunc(submitPath, func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"code": "invalid_currency", "message": "unsupported currency"},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv.URL, nil)

	_, err := c.SubmitOrder(context.Background(), payment.OrderRequest{MerchantRef: "ref-1"})
	assert.ErrorIs(t, err, payment.ErrGatewayQuery)
}
