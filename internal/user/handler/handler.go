package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/DeepthiAddanki/Fleetrace/internal/common/apperr"
	"github.com/DeepthiAddanki/Fleetrace/internal/common/auth"
	"github.com/DeepthiAddanki/Fleetrace/internal/common/logger"
	"github.com/DeepthiAddanki/Fleetrace/internal/common/model"
	"github.com/DeepthiAddanki/Fleetrace/internal/user/handler/dto"
	"github.com/DeepthiAddanki/Fleetrace/internal/user/service"
)

type authService interface {
	Signup(ctx context.Context, req service.SignupRequest) (service.Session, error)
	Signin(ctx context.Context, email, password string) (service.Session, error)
	Me(ctx context.Context, id string) (model.Profile, error)
}

type AuthHandler struct {
	service    authService
	cookieName string
	cookieTTL  time.Duration
}

func NewHandler(s authService, cookieName string, cookieTTL time.Duration) *AuthHandler {
	return &AuthHandler{service: s, cookieName: cookieName, cookieTTL: cookieTTL}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		logger.Warn("signup", "validation failed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	session, err := h.service.Signup(r.Context(), service.SignupRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	h.setSessionCookie(w, session.Token)
	writeJSON(w, http.StatusCreated, dto.SessionResponse{
		UserID:     session.UserID,
		Role:       string(session.Role),
		RedirectTo: "/driver/onboarding",
	})
}

func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req dto.SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	session, err := h.service.Signin(r.Context(), req.Email, req.Password)
	if err != nil {
		http.Error(w, "invalid email or password", apperr.HTTPStatus(err))
		return
	}

	redirect := "/driver/dashboard"
	if session.Role == model.RoleAdmin {
		redirect = "/admin/dashboard"
	}

	h.setSessionCookie(w, session.Token)
	writeJSON(w, http.StatusOK, dto.SessionResponse{
		UserID:     session.UserID,
		Role:       string(session.Role),
		RedirectTo: redirect,
	})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := auth.FromContext(r)
	if claims == nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	profile, err := h.service.Me(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	writeJSON(w, http.StatusOK, dto.MeResponse{
		ID:   profile.ID,
		Name: profile.Name,
		Role: string(profile.Role),
	})
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(h.cookieTTL.Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("write_response", "Failed to encode response", err)
	}
}
