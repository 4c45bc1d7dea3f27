package user

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/safari-hms/hotel-backend/internal/auth"
)

type memRepo struct {
	byEmail map[string]*User
}

func newMemRepo() *memRepo {
	return &memRepo{byEmail: make(map[string]*User)}
}

func (r *memRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memRepo) Create(_ context.Context, u *User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return ErrEmailAlreadyUsed
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()
	r.byEmail[u.Email] = u
	return nil
}

func (r *memRepo) UpdateLastLogin(_ context.Context, id string, t time.Time) error {
	u, err := r.GetByID(context.Background(), id)
	if err != nil {
		return err
	}
	u.LastLoginAt = &t
	return nil
}

func newTestService() Service {
	// Minimum bcrypt cost keeps the tests fast.
	return NewService(newMemRepo(), auth.NewBcryptPasswordHasherWithCost(bcrypt.MinCost), zerolog.Nop())
}

func TestRegister(t *testing.T) {
	svc := newTestService()

	u, err := svc.Register(context.Background(), "  Guest@Example.COM ", "password123", "Guest", "")
	require.NoError(t, err)

	assert.Equal(t, "guest@example.com", u.Email)
	assert.NotEqual(t, "password123", u.PasswordHash)
	assert.True(t, u.IsActive)
	require.NotNil(t, u.DisplayName)
	assert.Equal(t, "Guest", *u.DisplayName)
	assert.Nil(t, u.Phone)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "   ", "password123", "", "")
	assert.ErrorIs(t, err, ErrEmailRequired)

	_, err = svc.Register(ctx, "guest@example.com", "short", "", "")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = svc.Register(ctx, "guest@example.com", "password123", "", "")
	require.NoError(t, err)

	// Same email with different casing is still a duplicate.
	_, err = svc.Register(ctx, "GUEST@example.com", "password123", "", "")
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
}

func TestLogin(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "guest@example.com", "password123", "", "+256700000000")
	require.NoError(t, err)

	u, err := svc.Login(ctx, "guest@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)

	_, err = svc.Login(ctx, "guest@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "guest@example.com", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
