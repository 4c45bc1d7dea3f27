package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/safari-hms/hotel-backend/internal/auth"
	"github.com/safari-hms/hotel-backend/internal/booking"
	"github.com/safari-hms/hotel-backend/internal/pkg/response"
	"github.com/safari-hms/hotel-backend/internal/staff"
)

type Handler struct {
	service      booking.Service
	staffService staff.Service
}

func NewHandler(service booking.Service, staffService staff.Service) *Handler {
	return &Handler{
		service:      service,
		staffService: staffService,
	}
}

// isStaff helper checks if the current user has an active staff profile.
func (h *Handler) isStaff(c *gin.Context, userID string) bool {
	p, err := h.staffService.GetProfileByUserID(c.Request.Context(), userID)
	if err != nil {
		return false
	}
	return p.Active
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	checkIn, checkOut, err := body.Dates()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		UserID:          userID,
		RoomID:          body.RoomID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Guests:          body.Guests,
		SpecialRequests: body.SpecialRequests,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	// Access Check: owner or staff only
	userID := auth.GetUserID(c)
	if b.UserID != userID && !h.isStaff(c, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	userID := auth.GetUserID(c)

	bookings, total, err := h.service.ListForUser(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings"})
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

func (h *Handler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	userID := auth.GetUserID(c)

	b, err := h.service.Cancel(c.Request.Context(), id, userID, h.isStaff(c, userID))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// CheckIn is a front-desk operation; route is staff-protected.
func (h *Handler) CheckIn(c *gin.Context) {
	h.frontDeskTransition(c, h.service.CheckIn)
}

// CheckOut is a front-desk operation; route is staff-protected.
func (h *Handler) CheckOut(c *gin.Context) {
	h.frontDeskTransition(c, h.service.CheckOut)
}

func (h *Handler) frontDeskTransition(c *gin.Context, op func(ctx context.Context, id string) (*booking.Booking, error)) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := op(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}
