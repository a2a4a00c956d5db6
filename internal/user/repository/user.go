package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DeepthiAddanki/Fleetrace/internal/common/apperr"
	commonmodel "github.com/DeepthiAddanki/Fleetrace/internal/common/model"
	"github.com/DeepthiAddanki/Fleetrace/internal/user/model"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// CreateAccount inserts the user, its profile and the bare driver row
// in one transaction. The driver row starts with only the id set; all
// other columns stay NULL until onboarding completes.
func (r *UserRepository) CreateAccount(ctx context.Context, user model.User, name string, role commonmodel.Role) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin tx: %v", apperr.ErrUnavailable, err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO users (id, email, password_hash)
		VALUES ($1, $2, $3)
	`, user.ID, user.Email, user.PasswordHash)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: email already registered", apperr.ErrValidation)
		}
		return fmt.Errorf("%w: insert user: %v", apperr.ErrUnavailable, err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO profiles (id, name, role)
		VALUES ($1, $2, $3)
	`, user.ID, name, string(role))
	if err != nil {
		return fmt.Errorf("%w: insert profile: %v", apperr.ErrUnavailable, err)
	}

	if role == commonmodel.RoleDriver {
		_, err = tx.Exec(ctx, `
			INSERT INTO drivers (id) VALUES ($1)
		`, user.ID)
		if err != nil {
			return fmt.Errorf("%w: insert driver: %v", apperr.ErrUnavailable, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit tx: %v", apperr.ErrUnavailable, err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := r.db.QueryRow(ctx, `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE email = $1
	`, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, fmt.Errorf("%w: user %s", apperr.ErrNotFound, email)
		}
		return model.User{}, fmt.Errorf("%w: get user by email: %v", apperr.ErrUnavailable, err)
	}
	return u, nil
}

// GetProfile is the point read the authorization guard relies on.
func (r *UserRepository) GetProfile(ctx context.Context, id string) (commonmodel.Profile, error) {
	var p commonmodel.Profile
	var role string
	err := r.db.QueryRow(ctx, `
		SELECT id, name, role
		FROM profiles
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return commonmodel.Profile{}, fmt.Errorf("%w: profile %s", apperr.ErrNotFound, id)
		}
		return commonmodel.Profile{}, fmt.Errorf("%w: get profile: %v", apperr.ErrUnavailable, err)
	}
	p.Role = commonmodel.Role(role)
	return p, nil
}
