package fleet_service

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	adminhandler "github.com/DeepthiAddanki/Fleetrace/internal/admin/handler"
	adminrepository "github.com/DeepthiAddanki/Fleetrace/internal/admin/repository"
	adminservice "github.com/DeepthiAddanki/Fleetrace/internal/admin/service"
	"github.com/DeepthiAddanki/Fleetrace/internal/common/auth"
	"github.com/DeepthiAddanki/Fleetrace/internal/common/config"
	"github.com/DeepthiAddanki/Fleetrace/internal/common/logger"
	driverhandler "github.com/DeepthiAddanki/Fleetrace/internal/driver/handler"
	driverrepository "github.com/DeepthiAddanki/Fleetrace/internal/driver/repository"
	driverservice "github.com/DeepthiAddanki/Fleetrace/internal/driver/service"
	userhandler "github.com/DeepthiAddanki/Fleetrace/internal/user/handler"
	userrepository "github.com/DeepthiAddanki/Fleetrace/internal/user/repository"
	userservice "github.com/DeepthiAddanki/Fleetrace/internal/user/service"
)

// Run wires the repositories, services and handlers and serves the
// HTTP surface. events may be nil when no broker is configured.
func Run(cfg *config.Config, pool *pgxpool.Pool, rdb *redis.Client, events driverservice.EventPublisher) error {
	jwtManager := auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL)
	revocation := auth.NewRevocationStore(rdb)

	userRepo := userrepository.NewUserRepository(pool)
	driverRepo := driverrepository.NewDriverRepository(pool)
	adminRepo := adminrepository.NewAdminRepository(pool)

	guard := auth.NewGuard(userRepo, driverRepo)

	authService := userservice.NewAuthService(userRepo, jwtManager)
	driverService := driverservice.NewDriverService(driverRepo, events)
	adminService := adminservice.NewAdminService(adminRepo, cfg.Presence.StaleAfter)

	authHandler := userhandler.NewHandler(authService, cfg.Auth.CookieName, cfg.Auth.AccessTTL)
	driverHandler := driverhandler.NewHandler(driverService, guard, revocation, cfg.Auth.CookieName)
	adminHandler := adminhandler.NewHandler(adminService, guard)

	sessions := auth.NewMiddleware(jwtManager, revocation, cfg.Auth.CookieName)

	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /auth/signin", authHandler.Signin)

	authed := http.NewServeMux()
	authed.HandleFunc("GET /me", authHandler.Me)
	authed.HandleFunc("GET /driver/dashboard", driverHandler.Dashboard)
	authed.HandleFunc("POST /driver/complete-profile", driverHandler.CompleteProfile)
	authed.HandleFunc("POST /driver/location", driverHandler.ReportLocation)
	authed.HandleFunc("POST /driver/heartbeat", driverHandler.Heartbeat)
	authed.HandleFunc("POST /driver/status", driverHandler.SetStatus)
	authed.HandleFunc("POST /driver/logout", driverHandler.Logout)
	authed.HandleFunc("POST /driver/vehicles", driverHandler.AddVehicle)
	authed.HandleFunc("GET /driver/me", driverHandler.Me)
	authed.HandleFunc("GET /admin/live-locations", adminHandler.LiveLocations)
	authed.HandleFunc("GET /admin/drivers", adminHandler.Drivers)

	mux.Handle("/", sessions.Authenticate(authed))

	logger.Info("service_started", "Fleet tracking service running on "+cfg.HTTP.Addr)
	return http.ListenAndServe(cfg.HTTP.Addr, mux)
}
