package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/DeepthiAddanki/Fleetrace/internal/common/apperr"
	"github.com/DeepthiAddanki/Fleetrace/internal/common/model"
)

// ProfileStore is the point-read surface the guard needs. The role in
// the store, not the one inside the token, decides authorization.
type ProfileStore interface {
	GetProfile(ctx context.Context, id string) (model.Profile, error)
}

// OnboardingStore reports whether a driver finished profile completion.
type OnboardingStore interface {
	IsOnboarded(ctx context.Context, id string) (bool, error)
}

// Guard enforces the per-endpoint access predicates.
type Guard struct {
	profiles   ProfileStore
	onboarding OnboardingStore
}

func NewGuard(profiles ProfileStore, onboarding OnboardingStore) *Guard {
	return &Guard{profiles: profiles, onboarding: onboarding}
}

// RequireRole fetches the caller's profile and fails with ErrForbidden
// unless the stored role matches. A missing profile row is also
// Forbidden: every signed-up user has one, so absence means the caller
// is not a subject this system trusts.
func (g *Guard) RequireRole(ctx context.Context, identity string, want model.Role) (model.Profile, error) {
	profile, err := g.profiles.GetProfile(ctx, identity)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return model.Profile{}, fmt.Errorf("%w: no profile for identity", apperr.ErrForbidden)
		}
		return model.Profile{}, err
	}
	if profile.Role != want {
		return model.Profile{}, fmt.Errorf("%w: role %q required", apperr.ErrForbidden, want)
	}
	return profile, nil
}

// RequireOnboarded gates the driver dashboard. A missing driver row
// counts as incomplete, not as an error.
func (g *Guard) RequireOnboarded(ctx context.Context, identity string) error {
	onboarded, err := g.onboarding.IsOnboarded(ctx, identity)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.ErrNotOnboarded
		}
		return err
	}
	if !onboarded {
		return apperr.ErrNotOnboarded
	}
	return nil
}
