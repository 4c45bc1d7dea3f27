package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/safari-hms/hotel-backend/internal/pkg/request"
	"github.com/safari-hms/hotel-backend/internal/pkg/response"
	"github.com/safari-hms/hotel-backend/internal/staff"
)

type Handler struct {
	service staff.Service
}

func NewHandler(service staff.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateStaff(c *gin.Context) {
	var body CreateStaffRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	p, err := h.service.CreateStaff(c.Request.Context(), staff.CreateStaffRequest{
		Email:       body.Email,
		Password:    body.Password,
		DisplayName: body.DisplayName,
		Role:        body.Role,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewProfileResponse(p))
}

func (h *Handler) AssignTask(c *gin.Context) {
	var body AssignTaskRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := staff.AssignTaskRequest{
		StaffID: body.StaffID,
		RoomID:  body.RoomID,
		Title:   body.Title,
		Details: body.Details,
	}

	if body.DueDate != "" {
		due, err := request.ParseDate(body.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		req.DueDate = &due
	}

	t, err := h.service.AssignTask(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewTaskResponse(t))
}

func (h *Handler) UpdateTaskStatus(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	t, err := h.service.UpdateTaskStatus(c.Request.Context(), id, staff.TaskStatus(body.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewTaskResponse(t))
}

func (h *Handler) ListTasks(c *gin.Context) {
	staffID := c.Param("id")
	if _, err := uuid.Parse(staffID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	tasks, err := h.service.ListTasksForStaff(c.Request.Context(), staffID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		items[i] = NewTaskResponse(t)
	}

	c.JSON(http.StatusOK, items)
}
