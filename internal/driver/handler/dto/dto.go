package dto

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// LocationRequest uses pointers so a present-but-zero coordinate is
// distinguishable from a missing field.
type LocationRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"required,min=-180,max=180"`
}

func (r LocationRequest) Validate() error {
	return validate.Struct(r)
}

type LocationResponse struct {
	Message   string `json:"message"`
	UpdatedAt string `json:"updated_at"`
}

type HeartbeatResponse struct {
	Status   string `json:"status"`
	LastSeen string `json:"last_seen"`
}

type StatusRequest struct {
	IsOnline bool `json:"is_online"`
}

type StatusResponse struct {
	Success  bool `json:"success"`
	IsOnline bool `json:"is_online"`
}

type CompleteProfileRequest struct {
	FirstName     string `json:"firstName" validate:"required"`
	LastName      string `json:"lastName" validate:"required"`
	Phone         string `json:"phone" validate:"required"`
	License       string `json:"license" validate:"required"`
	VehicleNumber string `json:"vehicleNumber" validate:"required"`
	VehicleType   string `json:"vehicleType" validate:"required"`
	VehicleModel  string `json:"vehicleModel" validate:"required"`
}

func (r CompleteProfileRequest) Validate() error {
	return validate.Struct(r)
}

type AddVehicleRequest struct {
	VehicleNumber string `json:"vehicle_number" validate:"required"`
}

func (r AddVehicleRequest) Validate() error {
	return validate.Struct(r)
}

type SummaryResponse struct {
	Name          string  `json:"name"`
	FirstName     *string `json:"first_name"`
	LastName      *string `json:"last_name"`
	PhoneNumber   *string `json:"phone_number"`
	LicenseNumber *string `json:"license_number"`
	VehicleNumber *string `json:"vehicle_number"`
	VehicleType   *string `json:"vehicle_type"`
	VehicleModel  *string `json:"vehicle_model"`
}
