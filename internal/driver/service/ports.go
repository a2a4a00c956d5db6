package service

import (
	"context"
	"time"

	"github.com/DeepthiAddanki/Fleetrace/internal/driver/model"
)

// Repository is the store surface the presence and location logic
// needs. All state lives behind it; the service keeps none.
type Repository interface {
	EnterDashboard(ctx context.Context, driverID string) error
	Heartbeat(ctx context.Context, driverID string, at time.Time) error
	SetStatus(ctx context.Context, driverID string, online bool, at time.Time) error
	SetOffline(ctx context.Context, driverID string) error
	ReportLocation(ctx context.Context, driverID string, lat, lng float64, at time.Time) error
	CompleteProfile(ctx context.Context, driverID string, p model.ProfileCompletion) error
	GetSummary(ctx context.Context, driverID string) (model.Summary, error)
	IsOnboarded(ctx context.Context, driverID string) (bool, error)
	AddVehicle(ctx context.Context, id, driverID, vehicleNumber string) error
}

// EventPublisher pushes presence changes to the message broker for
// downstream consumers. Publishing is best effort; the request path
// never fails on a broker error.
type EventPublisher interface {
	PublishStatus(ctx context.Context, driverID string, online bool) error
	PublishLocation(ctx context.Context, driverID string, lat, lng float64) error
}
