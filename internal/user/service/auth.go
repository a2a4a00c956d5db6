package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/DeepthiAddanki/Fleetrace/internal/common/apperr"
	"github.com/DeepthiAddanki/Fleetrace/internal/common/auth"
	"github.com/DeepthiAddanki/Fleetrace/internal/common/logger"
	commonmodel "github.com/DeepthiAddanki/Fleetrace/internal/common/model"
	"github.com/DeepthiAddanki/Fleetrace/internal/user/model"
)

type UserRepository interface {
	CreateAccount(ctx context.Context, user model.User, name string, role commonmodel.Role) error
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetProfile(ctx context.Context, id string) (commonmodel.Profile, error)
}

type AuthService struct {
	repo       UserRepository
	jwtManager *auth.Manager
}

func NewAuthService(repo UserRepository, jwtManager *auth.Manager) *AuthService {
	return &AuthService{repo: repo, jwtManager: jwtManager}
}

type SignupRequest struct {
	Name     string
	Email    string
	Password string
}

type Session struct {
	Token  string
	UserID string
	Role   commonmodel.Role
}

// Signup registers a driver account. Admin accounts are provisioned
// out of band, so public signup always creates the driver role, with
// the bare driver row the onboarding flow later completes.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (Session, error) {
	logger.Info("signup", "registration process started")

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	if err := s.repo.CreateAccount(ctx, user, req.Name, commonmodel.RoleDriver); err != nil {
		logger.Error("signup", "failed to create account", err)
		return Session{}, err
	}

	token, err := s.jwtManager.GenerateToken(user.ID, string(commonmodel.RoleDriver))
	if err != nil {
		return Session{}, err
	}

	logger.Info("signup", "user successfully registered", logger.User(user.ID))
	return Session{Token: token, UserID: user.ID, Role: commonmodel.RoleDriver}, nil
}

// Signin checks the credentials and issues a session token. The role
// is read from the profile so the client knows which dashboard to load.
func (s *AuthService) Signin(ctx context.Context, email, password string) (Session, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Session{}, fmt.Errorf("%w: invalid email or password", apperr.ErrUnauthenticated)
		}
		return Session{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Warn("signin", "invalid credentials", logger.User(user.ID))
		return Session{}, fmt.Errorf("%w: invalid email or password", apperr.ErrUnauthenticated)
	}

	profile, err := s.repo.GetProfile(ctx, user.ID)
	if err != nil {
		return Session{}, err
	}

	token, err := s.jwtManager.GenerateToken(user.ID, string(profile.Role))
	if err != nil {
		return Session{}, err
	}

	logger.Info("signin", "user successfully logged in", logger.User(user.ID))
	return Session{Token: token, UserID: user.ID, Role: profile.Role}, nil
}

// Me returns the caller's own profile.
func (s *AuthService) Me(ctx context.Context, id string) (commonmodel.Profile, error) {
	return s.repo.GetProfile(ctx, id)
}
