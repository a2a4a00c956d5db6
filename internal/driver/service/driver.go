package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/DeepthiAddanki/Fleetrace/internal/common/logger"
	"github.com/DeepthiAddanki/Fleetrace/internal/driver/model"
)

// DriverService owns the presence state machine and the location
// ingestion pipeline. Drivers are Offline until they enter the
// dashboard, heartbeat or declare themselves online; nothing demotes
// them automatically; staleness is computed on the read side.
type DriverService struct {
	repo   Repository
	events EventPublisher
	now    func() time.Time
}

func NewDriverService(repo Repository, events EventPublisher) *DriverService {
	return &DriverService{
		repo:   repo,
		events: events,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// EnterDashboard marks the driver online and returns the profile
// summary the dashboard shows. last_seen is not stamped here; the
// client's heartbeat loop takes over once the dashboard loads.
func (s *DriverService) EnterDashboard(ctx context.Context, driverID string) (model.Summary, error) {
	if err := s.repo.EnterDashboard(ctx, driverID); err != nil {
		return model.Summary{}, err
	}
	s.publishStatus(ctx, driverID, true)

	return s.repo.GetSummary(ctx, driverID)
}

// Heartbeat refreshes the liveness stamp. Safe to call any number of
// times; the last call wins.
func (s *DriverService) Heartbeat(ctx context.Context, driverID string) (time.Time, error) {
	at := s.now()
	if err := s.repo.Heartbeat(ctx, driverID, at); err != nil {
		return time.Time{}, err
	}
	return at, nil
}

// SetStatus applies an explicit online/offline declaration. Going
// online stamps last_seen; going offline clears it.
func (s *DriverService) SetStatus(ctx context.Context, driverID string, online bool) error {
	if err := s.repo.SetStatus(ctx, driverID, online, s.now()); err != nil {
		return err
	}
	s.publishStatus(ctx, driverID, online)
	return nil
}

// Logout flips the driver offline. Session invalidation happens at the
// auth layer as a side channel; it is not presence state.
func (s *DriverService) Logout(ctx context.Context, driverID string) error {
	if err := s.repo.SetOffline(ctx, driverID); err != nil {
		return err
	}
	s.publishStatus(ctx, driverID, false)
	return nil
}

// ReportLocation runs the dual write (normalized record plus the
// denormalized mirror) in one transaction and reports the new
// position downstream.
func (s *DriverService) ReportLocation(ctx context.Context, driverID string, lat, lng float64) (time.Time, error) {
	at := s.now()
	if err := s.repo.ReportLocation(ctx, driverID, lat, lng, at); err != nil {
		return time.Time{}, err
	}

	if s.events != nil {
		if err := s.events.PublishLocation(ctx, driverID, lat, lng); err != nil {
			logger.Warn("publish_location", "Failed to publish location event", logger.Driver(driverID))
		}
	}
	return at, nil
}

// CompleteProfile sets the onboarding fields and flips is_onboarded.
// Re-submission is allowed and overwrites the previous values.
func (s *DriverService) CompleteProfile(ctx context.Context, driverID string, p model.ProfileCompletion) error {
	return s.repo.CompleteProfile(ctx, driverID, p)
}

func (s *DriverService) GetSummary(ctx context.Context, driverID string) (model.Summary, error) {
	return s.repo.GetSummary(ctx, driverID)
}

func (s *DriverService) AddVehicle(ctx context.Context, driverID, vehicleNumber string) error {
	return s.repo.AddVehicle(ctx, uuid.NewString(), driverID, vehicleNumber)
}

func (s *DriverService) publishStatus(ctx context.Context, driverID string, online bool) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishStatus(ctx, driverID, online); err != nil {
		logger.Warn("publish_status", "Failed to publish status event", logger.Driver(driverID))
	}
}
