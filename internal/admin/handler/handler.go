package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/DeepthiAddanki/Fleetrace/internal/admin/handler/dto"
	adminmodel "github.com/DeepthiAddanki/Fleetrace/internal/admin/model"
	"github.com/DeepthiAddanki/Fleetrace/internal/common/apperr"
	"github.com/DeepthiAddanki/Fleetrace/internal/common/auth"
	"github.com/DeepthiAddanki/Fleetrace/internal/common/logger"
	commonmodel "github.com/DeepthiAddanki/Fleetrace/internal/common/model"
)

type adminService interface {
	ListLiveLocations(ctx context.Context) ([]adminmodel.LiveLocation, error)
	ListDrivers(ctx context.Context) ([]adminmodel.DriverRow, error)
}

type accessGuard interface {
	RequireRole(ctx context.Context, identity string, want commonmodel.Role) (commonmodel.Profile, error)
}

type AdminHandler struct {
	service adminService
	guard   accessGuard
}

func NewHandler(s adminService, guard accessGuard) *AdminHandler {
	return &AdminHandler{service: s, guard: guard}
}

func (h *AdminHandler) LiveLocations(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	locations, err := h.service.ListLiveLocations(r.Context())
	if err != nil {
		logger.Error("live_locations", "Failed to list live locations", err)
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	out := make([]dto.LiveLocation, 0, len(locations))
	for _, loc := range locations {
		out = append(out, dto.LiveLocation{
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
			UpdatedAt: loc.UpdatedAt.Format(time.RFC3339),
			Stale:     loc.Stale,
			Driver: dto.LiveLocationDriver{
				FirstName:     loc.FirstName,
				LastName:      loc.LastName,
				VehicleNumber: loc.VehicleNumber,
			},
		})
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *AdminHandler) Drivers(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	drivers, err := h.service.ListDrivers(r.Context())
	if err != nil {
		logger.Error("list_drivers", "Failed to list drivers", err)
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return
	}

	out := make([]dto.DriverRow, 0, len(drivers))
	for _, d := range drivers {
		out = append(out, dto.DriverRow{
			ID:                d.ID,
			FirstName:         d.FirstName,
			LastName:          d.LastName,
			PhoneNumber:       d.PhoneNumber,
			VehicleNumber:     d.VehicleNumber,
			LastLatitude:      d.LastLatitude,
			LastLongitude:     d.LastLongitude,
			LastLocationAt:    formatTime(d.LastLocationAt),
			IsOnline:          d.IsOnline,
			LastSeen:          formatTime(d.LastSeen),
			EffectivelyOnline: d.EffectivelyOnline,
		})
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *AdminHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	claims := auth.FromContext(r)
	if claims == nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return false
	}

	if _, err := h.guard.RequireRole(r.Context(), claims.UserID, commonmodel.RoleAdmin); err != nil {
		http.Error(w, err.Error(), apperr.HTTPStatus(err))
		return false
	}
	return true
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("write_response", "Failed to encode response", err)
	}
}
