package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DeepthiAddanki/Fleetrace/internal/admin/model"
	"github.com/DeepthiAddanki/Fleetrace/internal/common/apperr"
)

type AdminRepository struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{db: db}
}

// ListLiveLocations joins current positions with driver identity
// fields, newest report first. Every driver who ever reported appears;
// staleness is the service's concern.
func (r *AdminRepository) ListLiveLocations(ctx context.Context) ([]model.LiveLocation, error) {
	locations := make([]model.LiveLocation, 0)

	rows, err := r.db.Query(ctx, `
		SELECT vl.latitude, vl.longitude, vl.updated_at,
		       d.first_name, d.last_name, d.vehicle_number
		FROM vehicle_locations vl
		JOIN drivers d ON d.id = vl.driver_id
		ORDER BY vl.updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: list live locations: %v", apperr.ErrUnavailable, err)
	}
	defer rows.Close()

	for rows.Next() {
		var loc model.LiveLocation
		err := rows.Scan(
			&loc.Latitude, &loc.Longitude, &loc.UpdatedAt,
			&loc.FirstName, &loc.LastName, &loc.VehicleNumber,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scan live location: %v", apperr.ErrUnavailable, err)
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list live locations: %v", apperr.ErrUnavailable, err)
	}

	return locations, nil
}

// ListDrivers scans the presence, contact and vehicle columns of every
// driver row.
func (r *AdminRepository) ListDrivers(ctx context.Context) ([]model.DriverRow, error) {
	drivers := make([]model.DriverRow, 0)

	rows, err := r.db.Query(ctx, `
		SELECT id, first_name, last_name, phone_number, vehicle_number,
		       last_latitude, last_longitude, last_location_at,
		       is_online, last_seen
		FROM drivers
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: list drivers: %v", apperr.ErrUnavailable, err)
	}
	defer rows.Close()

	for rows.Next() {
		var d model.DriverRow
		err := rows.Scan(
			&d.ID, &d.FirstName, &d.LastName, &d.PhoneNumber, &d.VehicleNumber,
			&d.LastLatitude, &d.LastLongitude, &d.LastLocationAt,
			&d.IsOnline, &d.LastSeen,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scan driver: %v", apperr.ErrUnavailable, err)
		}
		drivers = append(drivers, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list drivers: %v", apperr.ErrUnavailable, err)
	}

	return drivers, nil
}
