package service

import (
	"context"
	"time"

	"github.com/DeepthiAddanki/Fleetrace/internal/admin/model"
)

type Repository interface {
	ListLiveLocations(ctx context.Context) ([]model.LiveLocation, error)
	ListDrivers(ctx context.Context) ([]model.DriverRow, error)
}

// AdminService is the read path for the fleet overview. The presence
// flag in the store is push-only, so this layer stamps every row with
// a read-time staleness verdict instead of trusting the flag.
type AdminService struct {
	repo       Repository
	staleAfter time.Duration
	now        func() time.Time
}

func NewAdminService(repo Repository, staleAfter time.Duration) *AdminService {
	return &AdminService{
		repo:       repo,
		staleAfter: staleAfter,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *AdminService) ListLiveLocations(ctx context.Context) ([]model.LiveLocation, error) {
	locations, err := s.repo.ListLiveLocations(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for i := range locations {
		locations[i].Stale = now.Sub(locations[i].UpdatedAt) > s.staleAfter
	}
	return locations, nil
}

func (s *AdminService) ListDrivers(ctx context.Context) ([]model.DriverRow, error) {
	drivers, err := s.repo.ListDrivers(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for i := range drivers {
		d := &drivers[i]
		d.EffectivelyOnline = d.IsOnline &&
			d.LastSeen != nil &&
			now.Sub(*d.LastSeen) <= s.staleAfter
	}
	return drivers, nil
}
