package model

import "time"

// Driver is the per-driver presence and vehicle record. Every column
// except the id is NULL until onboarding completes.
type Driver struct {
	ID             string
	FirstName      *string
	LastName       *string
	PhoneNumber    *string
	LicenseNumber  *string
	VehicleNumber  *string
	VehicleType    *string
	VehicleModel   *string
	IsOnboarded    bool
	IsOnline       bool
	LastSeen       *time.Time
	LastLatitude   *float64
	LastLongitude  *float64
	LastLocationAt *time.Time
}

// Summary is the driver's own profile view: the display name from the
// profile joined with the onboarding fields.
type Summary struct {
	Name          string
	FirstName     *string
	LastName      *string
	PhoneNumber   *string
	LicenseNumber *string
	VehicleNumber *string
	VehicleType   *string
	VehicleModel  *string
}

// ProfileCompletion carries the seven fields the onboarding form sets.
// Completing the profile is an always-allowed update: re-submission
// overwrites the fields and leaves is_onboarded set.
type ProfileCompletion struct {
	FirstName     string
	LastName      string
	PhoneNumber   string
	LicenseNumber string
	VehicleNumber string
	VehicleType   string
	VehicleModel  string
}

// VehicleLocation is the normalized current-position record, one row
// per driver, replaced on every report.
type VehicleLocation struct {
	DriverID  string
	Latitude  float64
	Longitude float64
	UpdatedAt time.Time
}
