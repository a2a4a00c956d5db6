package dto

type LiveLocationDriver struct {
	FirstName     *string `json:"first_name"`
	LastName      *string `json:"last_name"`
	VehicleNumber *string `json:"vehicle_number"`
}

type LiveLocation struct {
	Latitude  float64            `json:"latitude"`
	Longitude float64            `json:"longitude"`
	UpdatedAt string             `json:"updated_at"`
	Stale     bool               `json:"stale"`
	Driver    LiveLocationDriver `json:"driver"`
}

type DriverRow struct {
	ID                string   `json:"id"`
	FirstName         *string  `json:"first_name"`
	LastName          *string  `json:"last_name"`
	PhoneNumber       *string  `json:"phone_number"`
	VehicleNumber     *string  `json:"vehicle_number"`
	LastLatitude      *float64 `json:"last_latitude"`
	LastLongitude     *float64 `json:"last_longitude"`
	LastLocationAt    *string  `json:"last_location_at"`
	IsOnline          bool     `json:"is_online"`
	LastSeen          *string  `json:"last_seen"`
	EffectivelyOnline bool     `json:"effectively_online"`
}
