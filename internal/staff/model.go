package staff

import (
	"net/http"
	"time"

	"github.com/safari-hms/hotel-backend/internal/pkg/apperror"
)

var (
	ErrProfileNotFound   = apperror.New(http.StatusNotFound, "staff profile not found")
	ErrTaskNotFound      = apperror.New(http.StatusNotFound, "task not found")
	ErrAlreadyStaff      = apperror.New(http.StatusConflict, "user already has a staff profile")
	ErrInvalidTaskStatus = apperror.New(http.StatusBadRequest, "invalid task status")
	ErrTitleRequired     = apperror.New(http.StatusBadRequest, "task title is required")
)

// Profile links a user account to a hotel role.
type Profile struct {
	ID        string
	UserID    string
	Email     string
	Role      string
	Active    bool
	HiredDate time.Time
}

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

// Valid reports whether s is a known task status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskDone:
		return true
	}
	return false
}

// Task is a unit of work assigned to a staff member, optionally tied to a
// room (housekeeping, maintenance).
type Task struct {
	ID         string
	StaffID    string
	RoomID     *string
	Title      string
	Details    *string
	DueDate    *time.Time
	Status     TaskStatus
	AssignedAt time.Time
}
