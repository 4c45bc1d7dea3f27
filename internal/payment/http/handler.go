package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/safari-hms/hotel-backend/internal/auth"
	"github.com/safari-hms/hotel-backend/internal/payment"
	"github.com/safari-hms/hotel-backend/internal/pkg/response"
	"github.com/safari-hms/hotel-backend/internal/staff"
)

type Handler struct {
	service      payment.Service
	staffService staff.Service
	logger       zerolog.Logger
}

func NewHandler(service payment.Service, staffService staff.Service, logger zerolog.Logger) *Handler {
	return &Handler{
		service:      service,
		staffService: staffService,
		logger:       logger.With().Str("component", "payment_http").Logger(),
	}
}

func (h *Handler) isStaff(c *gin.Context, userID string) bool {
	p, err := h.staffService.GetProfileByUserID(c.Request.Context(), userID)
	if err != nil {
		return false
	}
	return p.Active
}

func (h *Handler) Initiate(c *gin.Context) {
	var body InitiatePaymentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	p, err := h.service.Initiate(c.Request.Context(), payment.InitiateRequest{
		BookingID: body.BookingID,
		UserID:    userID,
		Amount:    body.Amount,
		Email:     body.Email,
		Phone:     body.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewPaymentResponse(p))
}

// Callback handles the customer's browser redirect after hosted checkout.
// It reconciles immediately so the customer sees the final verdict.
func (h *Handler) Callback(c *gin.Context) {
	var query CallbackRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing callback parameters"})
		return
	}

	p, err := h.service.Reconcile(c.Request.Context(), query.OrderMerchantRef, query.OrderTrackingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewPaymentResponse(p))
}

// IPN handles server-to-server notifications. The gateway retries on
// non-200 responses, so failures are logged but always acknowledged.
func (h *Handler) IPN(c *gin.Context) {
	var body IPNRequest
	if c.Request.Method == http.MethodGet {
		_ = c.ShouldBindQuery(&body)
	} else {
		_ = c.ShouldBindJSON(&body)
	}

	if body.OrderMerchantRef == "" {
		h.logger.Warn().Msg("ipn received without merchant reference")
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	if _, err := h.service.Reconcile(c.Request.Context(), body.OrderMerchantRef, body.OrderTrackingID); err != nil {
		h.logger.Error().Err(err).
			Str("merchant_ref", body.OrderMerchantRef).
			Msg("ipn reconcile failed")
		c.JSON(http.StatusOK, gin.H{"status": "error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orderNotificationType":  body.OrderNotificationTyp,
		"orderTrackingId":        body.OrderTrackingID,
		"orderMerchantReference": body.OrderMerchantRef,
		"status":                 200,
	})
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	userID := auth.GetUserID(c)

	p, err := h.service.GetByID(c.Request.Context(), id, userID, h.isStaff(c, userID))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewPaymentResponse(p))
}

// ListLogs exposes the payment's audit trail; staff only.
func (h *Handler) ListLogs(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	logs, err := h.service.ListLogs(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]LogResponse, len(logs))
	for i, l := range logs {
		items[i] = NewLogResponse(l)
	}

	c.JSON(http.StatusOK, items)
}
