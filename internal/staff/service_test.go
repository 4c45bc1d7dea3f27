package staff

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safari-hms/hotel-backend/internal/user"
)

type memRepo struct {
	profiles map[string]*Profile
	tasks    map[string]*Task
}

func newMemRepo() *memRepo {
	return &memRepo{
		profiles: make(map[string]*Profile),
		tasks:    make(map[string]*Task),
	}
}

func (r *memRepo) CreateProfile(_ context.Context, p *Profile) error {
	for _, existing := range r.profiles {
		if existing.UserID == p.UserID {
			return ErrAlreadyStaff
		}
	}
	p.ID = uuid.NewString()
	p.HiredDate = time.Now().UTC()
	r.profiles[p.ID] = p
	return nil
}

func (r *memRepo) GetProfileByUserID(_ context.Context, userID string) (*Profile, error) {
	for _, p := range r.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, ErrProfileNotFound
}

func (r *memRepo) GetProfileByID(_ context.Context, id string) (*Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

func (r *memRepo) CreateTask(_ context.Context, t *Task) error {
	t.ID = uuid.NewString()
	t.AssignedAt = time.Now().UTC()
	r.tasks[t.ID] = t
	return nil
}

func (r *memRepo) GetTaskByID(_ context.Context, id string) (*Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}
	return t, nil
}

func (r *memRepo) UpdateTaskStatus(_ context.Context, id string, status TaskStatus) error {
	t, ok := r.tasks[id]
	if !ok {
		return ErrTaskNotFound
	}
	t.Status = status
	return nil
}

func (r *memRepo) ListTasksForStaff(_ context.Context, staffID string) ([]*Task, error) {
	var out []*Task
	for _, t := range r.tasks {
		if t.StaffID == staffID {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeUserService struct {
	registered []string
}

func (s *fakeUserService) Register(_ context.Context, email, _, _, _ string) (*user.User, error) {
	s.registered = append(s.registered, email)
	return &user.User{ID: uuid.NewString(), Email: email, IsActive: true}, nil
}

func (s *fakeUserService) Login(context.Context, string, string) (*user.User, error) {
	panic("not used")
}

func (s *fakeUserService) GetByID(context.Context, string) (*user.User, error) {
	panic("not used")
}

func newTestService(t *testing.T) (Service, *memRepo, *fakeUserService) {
	t.Helper()
	repo := newMemRepo()
	users := &fakeUserService{}
	return NewService(repo, users, zerolog.Nop()), repo, users
}

func TestCreateStaff(t *testing.T) {
	svc, _, users := newTestService(t)

	p, err := svc.CreateStaff(context.Background(), CreateStaffRequest{
		Email:    "housekeeper@hotel.example.com",
		Password: "password123",
		Role:     "housekeeping",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "housekeeping", p.Role)
	assert.True(t, p.Active)
	assert.Equal(t, []string{"housekeeper@hotel.example.com"}, users.registered)
}

func TestAssignTask(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	p, err := svc.CreateStaff(ctx, CreateStaffRequest{
		Email:    "cleaner@hotel.example.com",
		Password: "password123",
		Role:     "housekeeping",
	})
	require.NoError(t, err)

	task, err := svc.AssignTask(ctx, AssignTaskRequest{
		StaffID: p.ID,
		Title:   "  Deep clean room 204  ",
		Details: "Guest reported spilled wine",
	})
	require.NoError(t, err)

	assert.Equal(t, "Deep clean room 204", task.Title)
	assert.Equal(t, TaskPending, task.Status)
	require.NotNil(t, task.Details)

	tasks, err := svc.ListTasksForStaff(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestAssignTaskValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AssignTask(ctx, AssignTaskRequest{StaffID: uuid.NewString(), Title: "   "})
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = svc.AssignTask(ctx, AssignTaskRequest{StaffID: uuid.NewString(), Title: "Restock minibar"})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestUpdateTaskStatus(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	p, err := svc.CreateStaff(ctx, CreateStaffRequest{
		Email:    "porter@hotel.example.com",
		Password: "password123",
		Role:     "porter",
	})
	require.NoError(t, err)

	task, err := svc.AssignTask(ctx, AssignTaskRequest{StaffID: p.ID, Title: "Carry luggage"})
	require.NoError(t, err)

	got, err := svc.UpdateTaskStatus(ctx, task.ID, TaskInProgress)
	require.NoError(t, err)
	assert.Equal(t, TaskInProgress, got.Status)

	_, err = svc.UpdateTaskStatus(ctx, task.ID, TaskStatus("paused"))
	assert.ErrorIs(t, err, ErrInvalidTaskStatus)

	_, err = svc.UpdateTaskStatus(ctx, uuid.NewString(), TaskDone)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}
