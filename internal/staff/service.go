package staff

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/safari-hms/hotel-backend/internal/user"
)

type CreateStaffRequest struct {
	Email       string
	Password    string
	DisplayName string
	Role        string
}

type AssignTaskRequest struct {
	StaffID string
	RoomID  string
	Title   string
	Details string
	DueDate *time.Time
}

type Service interface {
	// CreateStaff registers a user account and attaches a staff profile.
	CreateStaff(ctx context.Context, req CreateStaffRequest) (*Profile, error)
	GetProfileByUserID(ctx context.Context, userID string) (*Profile, error)

	AssignTask(ctx context.Context, req AssignTaskRequest) (*Task, error)
	UpdateTaskStatus(ctx context.Context, taskID string, status TaskStatus) (*Task, error)
	ListTasksForStaff(ctx context.Context, staffID string) ([]*Task, error)
}

type service struct {
	repo        Repository
	userService user.Service
	logger      zerolog.Logger
}

func NewService(repo Repository, userService user.Service, logger zerolog.Logger) Service {
	return &service{
		repo:        repo,
		userService: userService,
		logger:      logger.With().Str("component", "staff").Logger(),
	}
}

func (s *service) CreateStaff(ctx context.Context, req CreateStaffRequest) (*Profile, error) {
	u, err := s.userService.Register(ctx, req.Email, req.Password, req.DisplayName, "")
	if err != nil {
		return nil, err
	}

	p := &Profile{
		UserID: u.ID,
		Email:  u.Email,
		Role:   strings.TrimSpace(req.Role),
		Active: true,
	}

	if err := s.repo.CreateProfile(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info().Str("staff_id", p.ID).Str("role", p.Role).Msg("staff profile created")
	return p, nil
}

func (s *service) GetProfileByUserID(ctx context.Context, userID string) (*Profile, error) {
	return s.repo.GetProfileByUserID(ctx, userID)
}

func (s *service) AssignTask(ctx context.Context, req AssignTaskRequest) (*Task, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}

	if _, err := s.repo.GetProfileByID(ctx, req.StaffID); err != nil {
		return nil, err
	}

	var roomIDPtr *string
	if req.RoomID != "" {
		roomIDPtr = &req.RoomID
	}
	var detailsPtr *string
	if d := strings.TrimSpace(req.Details); d != "" {
		detailsPtr = &d
	}

	t := &Task{
		StaffID: req.StaffID,
		RoomID:  roomIDPtr,
		Title:   strings.TrimSpace(req.Title),
		Details: detailsPtr,
		DueDate: req.DueDate,
		Status:  TaskPending,
	}

	if err := s.repo.CreateTask(ctx, t); err != nil {
		return nil, err
	}

	s.logger.Info().Str("task_id", t.ID).Str("staff_id", t.StaffID).Msg("task assigned")
	return t, nil
}

func (s *service) UpdateTaskStatus(ctx context.Context, taskID string, status TaskStatus) (*Task, error) {
	if !status.Valid() {
		return nil, ErrInvalidTaskStatus
	}

	t, err := s.repo.GetTaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateTaskStatus(ctx, taskID, status); err != nil {
		return nil, err
	}
	t.Status = status
	return t, nil
}

func (s *service) ListTasksForStaff(ctx context.Context, staffID string) ([]*Task, error) {
	return s.repo.ListTasksForStaff(ctx, staffID)
}
