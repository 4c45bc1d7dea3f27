package http

import (
	"time"

	"github.com/safari-hms/hotel-backend/internal/pkg/request"
	"github.com/safari-hms/hotel-backend/internal/staff"
)

type CreateStaffRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role" binding:"required"`
}

type AssignTaskRequest struct {
	StaffID string `json:"staff_id" binding:"required,uuid"`
	RoomID  string `json:"room_id" binding:"omitempty,uuid"`
	Title   string `json:"title" binding:"required"`
	Details string `json:"details"`
	DueDate string `json:"due_date"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending in_progress done"`
}

type ProfileResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	HiredDate time.Time `json:"hired_date"`
}

func NewProfileResponse(p *staff.Profile) ProfileResponse {
	return ProfileResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		Email:     p.Email,
		Role:      p.Role,
		Active:    p.Active,
		HiredDate: p.HiredDate,
	}
}

type TaskResponse struct {
	ID         string    `json:"id"`
	StaffID    string    `json:"staff_id"`
	RoomID     *string   `json:"room_id,omitempty"`
	Title      string    `json:"title"`
	Details    *string   `json:"details,omitempty"`
	DueDate    *string   `json:"due_date,omitempty"`
	Status     string    `json:"status"`
	AssignedAt time.Time `json:"assigned_at"`
}

func NewTaskResponse(t *staff.Task) TaskResponse {
	var due *string
	if t.DueDate != nil {
		d := t.DueDate.Format(request.DateLayout)
		due = &d
	}
	return TaskResponse{
		ID:         t.ID,
		StaffID:    t.StaffID,
		RoomID:     t.RoomID,
		Title:      t.Title,
		Details:    t.Details,
		DueDate:    due,
		Status:     string(t.Status),
		AssignedAt: t.AssignedAt,
	}
}
