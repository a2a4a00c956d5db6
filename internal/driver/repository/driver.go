package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DeepthiAddanki/Fleetrace/internal/common/apperr"
	"github.com/DeepthiAddanki/Fleetrace/internal/driver/model"
)

type DriverRepository struct {
	db *pgxpool.Pool
}

func NewDriverRepository(db *pgxpool.Pool) *DriverRepository {
	return &DriverRepository{db: db}
}

// EnterDashboard flips the driver online. It deliberately does not
// touch last_seen: the heartbeat is the liveness signal.
func (r *DriverRepository) EnterDashboard(ctx context.Context, driverID string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE drivers
		SET is_online = true
		WHERE id = $1
	`, driverID)
	if err != nil {
		return fmt.Errorf("%w: set online: %v", apperr.ErrUnavailable, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: driver %s", apperr.ErrNotFound, driverID)
	}
	return nil
}

func (r *DriverRepository) Heartbeat(ctx context.Context, driverID string, at time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE drivers
		SET is_online = true, last_seen = $2
		WHERE id = $1
	`, driverID, at)
	if err != nil {
		return fmt.Errorf("%w: heartbeat: %v", apperr.ErrUnavailable, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: driver %s", apperr.ErrNotFound, driverID)
	}
	return nil
}

// SetStatus applies the explicit status declaration: going online
// stamps last_seen, going offline clears it. Clearing on explicit
// offline is the contract, not an accident.
func (r *DriverRepository) SetStatus(ctx context.Context, driverID string, online bool, at time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE drivers
		SET is_online = $2,
		    last_seen = CASE WHEN $2 THEN $3 ELSE NULL END
		WHERE id = $1
	`, driverID, online, at)
	if err != nil {
		return fmt.Errorf("%w: set status: %v", apperr.ErrUnavailable, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: driver %s", apperr.ErrNotFound, driverID)
	}
	return nil
}

func (r *DriverRepository) SetOffline(ctx context.Context, driverID string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE drivers
		SET is_online = false
		WHERE id = $1
	`, driverID)
	if err != nil {
		return fmt.Errorf("%w: set offline: %v", apperr.ErrUnavailable, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: driver %s", apperr.ErrNotFound, driverID)
	}
	return nil
}

// ReportLocation writes the normalized record and the mirror on the
// driver row in a single transaction, so no caller ever observes the
// two views disagreeing about the current position.
func (r *DriverRepository) ReportLocation(ctx context.Context, driverID string, lat, lng float64, at time.Time) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin tx: %v", apperr.ErrUnavailable, err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO vehicle_locations (driver_id, latitude, longitude, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (driver_id) DO UPDATE
		SET latitude = EXCLUDED.latitude,
		    longitude = EXCLUDED.longitude,
		    updated_at = EXCLUDED.updated_at
	`, driverID, lat, lng, at)
	if err != nil {
		return fmt.Errorf("%w: upsert location: %v", apperr.ErrUnavailable, err)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE drivers
		SET last_latitude = $2,
		    last_longitude = $3,
		    last_location_at = $4
		WHERE id = $1
	`, driverID, lat, lng, at)
	if err != nil {
		return fmt.Errorf("%w: mirror location: %v", apperr.ErrUnavailable, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: driver %s", apperr.ErrNotFound, driverID)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit tx: %v", apperr.ErrUnavailable, err)
	}
	return nil
}

func (r *DriverRepository) CompleteProfile(ctx context.Context, driverID string, p model.ProfileCompletion) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE drivers
		SET first_name = $2,
		    last_name = $3,
		    phone_number = $4,
		    license_number = $5,
		    vehicle_number = $6,
		    vehicle_type = $7,
		    vehicle_model = $8,
		    is_onboarded = true
		WHERE id = $1
	`, driverID, p.FirstName, p.LastName, p.PhoneNumber,
		p.LicenseNumber, p.VehicleNumber, p.VehicleType, p.VehicleModel)
	if err != nil {
		return fmt.Errorf("%w: complete profile: %v", apperr.ErrUnavailable, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: driver %s", apperr.ErrNotFound, driverID)
	}
	return nil
}

func (r *DriverRepository) GetSummary(ctx context.Context, driverID string) (model.Summary, error) {
	var s model.Summary
	err := r.db.QueryRow(ctx, `
		SELECT p.name,
		       d.first_name, d.last_name, d.phone_number, d.license_number,
		       d.vehicle_number, d.vehicle_type, d.vehicle_model
		FROM drivers d
		JOIN profiles p ON p.id = d.id
		WHERE d.id = $1
	`, driverID).Scan(
		&s.Name,
		&s.FirstName, &s.LastName, &s.PhoneNumber, &s.LicenseNumber,
		&s.VehicleNumber, &s.VehicleType, &s.VehicleModel,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Summary{}, fmt.Errorf("%w: driver %s", apperr.ErrNotFound, driverID)
		}
		return model.Summary{}, fmt.Errorf("%w: get summary: %v", apperr.ErrUnavailable, err)
	}
	return s, nil
}

func (r *DriverRepository) IsOnboarded(ctx context.Context, driverID string) (bool, error) {
	var onboarded bool
	err := r.db.QueryRow(ctx, `
		SELECT is_onboarded FROM drivers WHERE id = $1
	`, driverID).Scan(&onboarded)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, fmt.Errorf("%w: driver %s", apperr.ErrNotFound, driverID)
		}
		return false, fmt.Errorf("%w: check onboarding: %v", apperr.ErrUnavailable, err)
	}
	return onboarded, nil
}

func (r *DriverRepository) AddVehicle(ctx context.Context, id, driverID, vehicleNumber string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO vehicles (id, vehicle_number, driver_id)
		VALUES ($1, $2, $3)
	`, id, vehicleNumber, driverID)
	if err != nil {
		return fmt.Errorf("%w: insert vehicle: %v", apperr.ErrUnavailable, err)
	}
	return nil
}
