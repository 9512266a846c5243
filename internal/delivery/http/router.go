package http

import (
	"net/http"

	"immunization-tracker/internal/delivery/http/handler"
	"immunization-tracker/internal/delivery/http/middleware"
	"immunization-tracker/pkg/response"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	childHandler        *handler.ChildHandler
	vaccinationHandler  *handler.VaccinationHandler
	reactionHandler     *handler.ReactionHandler
	dashboardHandler    *handler.DashboardHandler
	reportHandler       *handler.ReportHandler
	notificationHandler *handler.NotificationHandler
	catalogHandler      *handler.CatalogHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

// Handlers groups the HTTP handlers the router mounts.
type Handlers struct {
	Auth         *handler.AuthHandler
	Child        *handler.ChildHandler
	Vaccination  *handler.VaccinationHandler
	Reaction     *handler.ReactionHandler
	Dashboard    *handler.DashboardHandler
	Report       *handler.ReportHandler
	Notification *handler.NotificationHandler
	Catalog      *handler.CatalogHandler
	AuditLog     *handler.AuditLogHandler
}

func NewRouter(
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         handlers.Auth,
		childHandler:        handlers.Child,
		vaccinationHandler:  handlers.Vaccination,
		reactionHandler:     handlers.Reaction,
		dashboardHandler:    handlers.Dashboard,
		reportHandler:       handlers.Report,
		notificationHandler: handlers.Notification,
		catalogHandler:      handlers.Catalog,
		auditLogHandler:     handlers.AuditLog,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Everything below needs a valid access token
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	protected.HandleFunc("/auth/logout", r.authHandler.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/auth/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Children
	protected.HandleFunc("/children", r.childHandler.RegisterChild).Methods(http.MethodPost)
	protected.HandleFunc("/children", r.childHandler.GetChildren).Methods(http.MethodGet)
	protected.HandleFunc("/children/{id}", r.childHandler.GetChild).Methods(http.MethodGet)
	protected.HandleFunc("/children/{id}/vaccinations", r.vaccinationHandler.GetStatus).Methods(http.MethodGet)
	protected.HandleFunc("/children/{id}/vaccinations", r.vaccinationHandler.UpdateStatus).Methods(http.MethodPut)
	protected.HandleFunc("/children/{id}/reactions", r.reactionHandler.LogReaction).Methods(http.MethodPost)
	protected.HandleFunc("/children/{id}/reactions", r.reactionHandler.GetReactions).Methods(http.MethodGet)
	protected.HandleFunc("/children/{id}/reminders", r.notificationHandler.SendReminder).Methods(http.MethodPost)
	protected.HandleFunc("/children/{id}/messages", r.notificationHandler.SendMessage).Methods(http.MethodPost)
	protected.HandleFunc("/children/{id}/card", r.reportHandler.VaccinationCard).Methods(http.MethodGet)

	// Reporting
	protected.HandleFunc("/reports/children", r.reportHandler.ChildrenReport).Methods(http.MethodGet)
	protected.HandleFunc("/dashboard", r.dashboardHandler.GetSummary).Methods(http.MethodGet)
	protected.HandleFunc("/trends/births", r.childHandler.GetBirthTrends).Methods(http.MethodGet)

	// Reference data
	protected.HandleFunc("/schedule", r.vaccinationHandler.GetSchedule).Methods(http.MethodGet)
	protected.HandleFunc("/vaccines", r.catalogHandler.GetVaccines).Methods(http.MethodGet)
	protected.HandleFunc("/vaccines/{name}", r.catalogHandler.GetVaccine).Methods(http.MethodGet)
	protected.HandleFunc("/assistant/ask", r.catalogHandler.Ask).Methods(http.MethodPost)

	// Audit trail
	protected.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	protected.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
