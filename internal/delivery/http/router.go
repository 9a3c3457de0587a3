package http

import (
	"net/http"

	"graphene-trace-portal/internal/delivery/http/handler"
	"graphene-trace-portal/internal/delivery/http/middleware"
	"graphene-trace-portal/internal/domain/entity"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	router            *mux.Router
	authHandler       *handler.AuthHandler
	dashboardHandler  *handler.DashboardHandler
	userHandler       *handler.UserHandler
	assignmentHandler *handler.AssignmentHandler
	reportHandler     *handler.ReportHandler
	settingsHandler   *handler.SettingsHandler
	auditLogHandler   *handler.AuditLogHandler
	healthHandler     *handler.HealthHandler
	authMiddleware    *middleware.AuthMiddleware
	roleMiddleware    *middleware.RoleMiddleware
	corsMiddleware    *middleware.CORSMiddleware
	requestMiddleware *middleware.RequestMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	dashboardHandler *handler.DashboardHandler,
	userHandler *handler.UserHandler,
	assignmentHandler *handler.AssignmentHandler,
	reportHandler *handler.ReportHandler,
	settingsHandler *handler.SettingsHandler,
	auditLogHandler *handler.AuditLogHandler,
	healthHandler *handler.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
	roleMiddleware *middleware.RoleMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	requestMiddleware *middleware.RequestMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		authHandler:       authHandler,
		dashboardHandler:  dashboardHandler,
		userHandler:       userHandler,
		assignmentHandler: assignmentHandler,
		reportHandler:     reportHandler,
		settingsHandler:   settingsHandler,
		auditLogHandler:   auditLogHandler,
		healthHandler:     healthHandler,
		authMiddleware:    authMiddleware,
		roleMiddleware:    roleMiddleware,
		corsMiddleware:    corsMiddleware,
		requestMiddleware: requestMiddleware,
	}
}

// area returns a subrouter that requires a session holding role
func (r *Router) area(api *mux.Router, prefix, role string) *mux.Router {
	sub := api.PathPrefix(prefix).Subrouter()
	sub.Use(r.authMiddleware.Authenticate)
	sub.Use(middleware.NoCache)
	sub.Use(r.roleMiddleware.RequireRole(role))
	return sub
}

func (r *Router) Setup() *mux.Router {
	r.router.Use(r.requestMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	r.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthHandler.Health).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.Use(middleware.NoCache)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Clinician and patient areas
	clinician := r.area(api, "/clinician", entity.RoleClinician)
	clinician.HandleFunc("/dashboard", r.dashboardHandler.Landing(entity.RoleClinician)).Methods(http.MethodGet)

	patient := r.area(api, "/patient", entity.RolePatient)
	patient.HandleFunc("/dashboard", r.dashboardHandler.Landing(entity.RolePatient)).Methods(http.MethodGet)

	// Admin routes (protected - admin only)
	admin := r.area(api, "/admin", entity.RoleAdmin)
	admin.HandleFunc("/dashboard", r.reportHandler.Dashboard).Methods(http.MethodGet)
	admin.HandleFunc("/kpi/{type}", r.reportHandler.KPIDetails).Methods(http.MethodGet)

	// User management (admin)
	admin.HandleFunc("/users", r.userHandler.ListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/users", r.userHandler.CreateUser).Methods(http.MethodPost)
	admin.HandleFunc("/users/{id}", r.userHandler.UpdateUser).Methods(http.MethodPut)
	admin.HandleFunc("/users/{id}", r.userHandler.DeleteUser).Methods(http.MethodDelete)
	admin.HandleFunc("/users/{id}/role", r.userHandler.SetRole).Methods(http.MethodPut)
	admin.HandleFunc("/roles", r.userHandler.ListRoles).Methods(http.MethodGet)

	// Assignments (admin)
	admin.HandleFunc("/assignments", r.assignmentHandler.Assign).Methods(http.MethodPost)
	admin.HandleFunc("/assignments/{patientId}", r.assignmentHandler.Unassign).Methods(http.MethodDelete)

	// Settings (admin)
	admin.HandleFunc("/settings", r.settingsHandler.GetSettings).Methods(http.MethodGet)
	admin.HandleFunc("/settings", r.settingsHandler.SaveSettings).Methods(http.MethodPut)
	admin.HandleFunc("/settings/password", r.settingsHandler.ChangePassword).Methods(http.MethodPost)

	// Logs (admin)
	admin.HandleFunc("/logs", r.auditLogHandler.GetSessionLogs).Methods(http.MethodGet)
	admin.HandleFunc("/logs/{id:[0-9]+}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// CORS preflight
	r.router.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r.router
}
