package dto

import "github.com/go-playground/validator/v10"

var validate = validator.New()

type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (r SignupRequest) Validate() error {
	return validate.Struct(r)
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r SigninRequest) Validate() error {
	return validate.Struct(r)
}

type SessionResponse struct {
	UserID     string `json:"user_id"`
	Role       string `json:"role"`
	RedirectTo string `json:"redirect_to"`
}

type MeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}
