package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeepthiAddanki/Fleetrace/internal/common/apperr"
	"github.com/DeepthiAddanki/Fleetrace/internal/common/auth"
	commonmodel "github.com/DeepthiAddanki/Fleetrace/internal/common/model"
	"github.com/DeepthiAddanki/Fleetrace/internal/user/model"
)

type fakeRepo struct {
	users    map[string]model.User // keyed by email
	profiles map[string]commonmodel.Profile
	drivers  map[string]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:    map[string]model.User{},
		profiles: map[string]commonmodel.Profile{},
		drivers:  map[string]bool{},
	}
}

func (r *fakeRepo) CreateAccount(ctx context.Context, user model.User, name string, role commonmodel.Role) error {
	if _, exists := r.users[user.Email]; exists {
		return fmt.Errorf("%w: email already registered", apperr.ErrValidation)
	}
	r.users[user.Email] = user
	r.profiles[user.ID] = commonmodel.Profile{ID: user.ID, Name: name, Role: role}
	if role == commonmodel.RoleDriver {
		r.drivers[user.ID] = true
	}
	return nil
}

func (r *fakeRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	u, ok := r.users[email]
	if !ok {
		return model.User{}, fmt.Errorf("%w: user %s", apperr.ErrNotFound, email)
	}
	return u, nil
}

func (r *fakeRepo) GetProfile(ctx context.Context, id string) (commonmodel.Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return commonmodel.Profile{}, fmt.Errorf("%w: profile %s", apperr.ErrNotFound, id)
	}
	return p, nil
}

func newTestService(repo *fakeRepo) *AuthService {
	return NewAuthService(repo, auth.NewManager("test-secret", time.Hour))
}

func TestSignup_CreatesDriverAccount(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	session, err := svc.Signup(context.Background(), SignupRequest{
		Name: "Dee", Email: "dee@example.com", Password: "secret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, commonmodel.RoleDriver, session.Role)

	// Signup provisions the bare driver row alongside the profile.
	assert.True(t, repo.drivers[session.UserID])
	assert.Equal(t, "Dee", repo.profiles[session.UserID].Name)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupRequest{Name: "A", Email: "dup@example.com", Password: "secret-pass"})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, SignupRequest{Name: "B", Email: "dup@example.com", Password: "secret-pass"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestSignin_RoundTrip(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupRequest{Name: "Dee", Email: "dee@example.com", Password: "secret-pass"})
	require.NoError(t, err)

	session, err := svc.Signin(ctx, "dee@example.com", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, commonmodel.RoleDriver, session.Role)
	assert.NotEmpty(t, session.Token)
}

func TestSignin_WrongPassword(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Signup(ctx, SignupRequest{Name: "Dee", Email: "dee@example.com", Password: "secret-pass"})
	require.NoError(t, err)

	_, err = svc.Signin(ctx, "dee@example.com", "wrong-pass")
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestSignin_UnknownEmail(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.Signin(context.Background(), "ghost@example.com", "whatever")
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated,
		"unknown email must look identical to a wrong password")
}

func TestMe(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	session, err := svc.Signup(ctx, SignupRequest{Name: "Dee", Email: "dee@example.com", Password: "secret-pass"})
	require.NoError(t, err)

	profile, err := svc.Me(ctx, session.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Dee", profile.Name)
	assert.Equal(t, commonmodel.RoleDriver, profile.Role)
}
