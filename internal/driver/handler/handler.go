package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/DeepthiAddanki/Fleetrace/internal/common/apperr"
	"github.com/DeepthiAddanki/Fleetrace/internal/common/auth"
	"github.com/DeepthiAddanki/Fleetrace/internal/common/logger"
	commonmodel "github.com/DeepthiAddanki/Fleetrace/internal/common/model"
	"github.com/DeepthiAddanki/Fleetrace/internal/driver/handler/dto"
	"github.com/DeepthiAddanki/Fleetrace/internal/driver/model"
)

type driverService interface {
	EnterDashboard(ctx context.Context, driverID string) (model.Summary, error)
	Heartbeat(ctx context.Context, driverID string) (time.Time, error)
	SetStatus(ctx context.Context, driverID string, online bool) error
	Logout(ctx context.Context, driverID string) error
	ReportLocation(ctx context.Context, driverID string, lat, lng float64) (time.Time, error)
	CompleteProfile(ctx context.Context, driverID string, p model.ProfileCompletion) error
	GetSummary(ctx context.Context, driverID string) (model.Summary, error)
	AddVehicle(ctx context.Context, driverID, vehicleNumber string) error
}

type accessGuard interface {
	RequireRole(ctx context.Context, identity string, want commonmodel.Role) (commonmodel.Profile, error)
	RequireOnboarded(ctx context.Context, identity string) error
}

type sessionRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
}

type DriverHandler struct {
	service    driverService
	guard      accessGuard
	revoker    sessionRevoker
	cookieName string
}

func NewHandler(s driverService, guard accessGuard, revoker sessionRevoker, cookieName string) *DriverHandler {
	return &DriverHandler{service: s, guard: guard, revoker: revoker, cookieName: cookieName}
}

// Dashboard gates entry on role and onboarding, then flips the driver
// online. Incomplete onboarding redirects instead of failing.
func (h *DriverHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.requireDriver(w, r)
	if !ok {
		return
	}

	if err := h.guard.RequireOnboarded(r.Context(), claims.UserID); err != nil {
		if errors.Is(err, apperr.ErrNotOnboarded) {
			http.Redirect(w, r, "/driver/onboarding", http.StatusSeeOther)
			return
		}
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	summary, err := h.service.EnterDashboard(r.Context(), claims.UserID)
	if err != nil {
		logger.Error("enter_dashboard", "Failed to enter dashboard", err, logger.Driver(claims.UserID))
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	logger.Info("enter_dashboard", "Driver is now online", logger.Driver(claims.UserID))
	writeJSON(w, http.StatusOK, summaryResponse(summary))
}

func (h *DriverHandler) ReportLocation(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.requireDriver(w, r)
	if !ok {
		return
	}

	var req dto.LocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		logger.Warn("update_location", "Invalid location payload", logger.Driver(claims.UserID))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	at, err := h.service.ReportLocation(r.Context(), claims.UserID, *req.Latitude, *req.Longitude)
	if err != nil {
		logger.Error("update_location", "Failed to update driver location", err, logger.Driver(claims.UserID))
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	writeJSON(w, http.StatusOK, dto.LocationResponse{
		Message:   "Location updated",
		UpdatedAt: at.Format(time.RFC3339),
	})
}

func (h *DriverHandler) Heartbeat(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.requireDriver(w, r)
	if !ok {
		return
	}

	at, err := h.service.Heartbeat(r.Context(), claims.UserID)
	if err != nil {
		logger.Error("heartbeat", "Failed to record heartbeat", err, logger.Driver(claims.UserID))
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	writeJSON(w, http.StatusOK, dto.HeartbeatResponse{
		Status:   "alive",
		LastSeen: at.Format(time.RFC3339),
	})
}

func (h *DriverHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.requireDriver(w, r)
	if !ok {
		return
	}

	var req dto.StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if err := h.service.SetStatus(r.Context(), claims.UserID, req.IsOnline); err != nil {
		logger.Error("set_status", "Failed to set driver status", err, logger.Driver(claims.UserID))
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	writeJSON(w, http.StatusOK, dto.StatusResponse{Success: true, IsOnline: req.IsOnline})
}

// Logout flips presence offline and revokes the session token so the
// cookie cannot be replayed.
func (h *DriverHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.requireDriver(w, r)
	if !ok {
		return
	}

	if err := h.service.Logout(r.Context(), claims.UserID); err != nil {
		logger.Error("logout", "Failed to set driver offline", err, logger.Driver(claims.UserID))
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	if h.revoker != nil && claims.ExpiresAt != nil {
		if err := h.revoker.Revoke(r.Context(), claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
			logger.Error("logout", "Failed to revoke session", err, logger.Driver(claims.UserID))
			http.Error(w, err.Error(), apperr.HTTPStatus(err))
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	logger.Info("logout", "Driver logged out", logger.Driver(claims.UserID))
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *DriverHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.requireDriver(w, r)
	if !ok {
		return
	}

	summary, err := h.service.GetSummary(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	writeJSON(w, http.StatusOK, summaryResponse(summary))
}

func (h *DriverHandler) CompleteProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.requireDriver(w, r)
	if !ok {
		return
	}

	var req dto.CompleteProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err := h.service.CompleteProfile(r.Context(), claims.UserID, model.ProfileCompletion{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		PhoneNumber:   req.Phone,
		LicenseNumber: req.License,
		VehicleNumber: req.VehicleNumber,
		VehicleType:   req.VehicleType,
		VehicleModel:  req.VehicleModel,
	})
	if err != nil {
		logger.Error("complete_profile", "Failed to complete driver profile", err, logger.Driver(claims.UserID))
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	logger.Info("complete_profile", "Driver profile completed", logger.Driver(claims.UserID))
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *DriverHandler) AddVehicle(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.requireDriver(w, r)
	if !ok {
		return
	}

	var req dto.AddVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.AddVehicle(r.Context(), claims.UserID, req.VehicleNumber); err != nil {
		logger.Error("add_vehicle", "Failed to add vehicle", err, logger.Driver(claims.UserID))
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Vehicle added successfully"})
}

func (h *DriverHandler) requireDriver(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims := auth.FromContext(r)
	if claims == nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return nil, false
	}

	if _, err := h.guard.RequireRole(r.Context(), claims.UserID, commonmodel.RoleDriver); err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return nil, false
	}
	return claims, true
}

func summaryResponse(s model.Summary) dto.SummaryResponse {
	return dto.SummaryResponse{
		Name:          s.Name,
		FirstName:     s.FirstName,
		LastName:      s.LastName,
		PhoneNumber:   s.PhoneNumber,
		LicenseNumber: s.LicenseNumber,
		VehicleNumber: s.VehicleNumber,
		VehicleType:   s.VehicleType,
		VehicleModel:  s.VehicleModel,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("write_response", "Failed to encode response", err)
	}
}
