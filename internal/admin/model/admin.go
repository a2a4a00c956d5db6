package model

import "time"

// LiveLocation is one row of the admin map view: current position plus
// the identity fields needed to label the marker.
type LiveLocation struct {
	Latitude      float64
	Longitude     float64
	UpdatedAt     time.Time
	FirstName     *string
	LastName      *string
	VehicleNumber *string

	// Stale is computed at read time from UpdatedAt against the
	// configured threshold; it is never stored.
	Stale bool
}

// DriverRow is one row of the admin fleet table.
type DriverRow struct {
	ID             string
	FirstName      *string
	LastName       *string
	PhoneNumber    *string
	VehicleNumber  *string
	LastLatitude   *float64
	LastLongitude  *float64
	LastLocationAt *time.Time
	IsOnline       bool
	LastSeen       *time.Time

	// EffectivelyOnline is the read-side liveness verdict: the stored
	// flag and a fresh-enough last_seen. The stored flag alone only
	// proves a bit was set, not that the driver is reachable.
	EffectivelyOnline bool
}
