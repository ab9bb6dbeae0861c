package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventregistration/internal/delivery/http/controllers"
	"eventregistration/internal/delivery/http/middleware"
	"eventregistration/internal/domain"
)

// RouterDeps carries what the router needs to mount every route.
type RouterDeps struct {
	Registrations *controllers.RegistrationController
	Purge         *controllers.PurgeController
	Verifier      domain.TokenVerifier
	Permissions   domain.PermissionChecker
	// Metrics serves /metrics; nil leaves the route unmounted.
	Metrics http.Handler
	Logger  *slog.Logger
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(d RouterDeps) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(d.Verifier, d.Logger)
	admin := func(next http.HandlerFunc) http.HandlerFunc {
		return auth(middleware.RequireCapability(d.Permissions, domain.CapabilityManageRegistrations, d.Logger)(next))
	}

	// Public registration routes; the capability token authorizes access.
	mux.HandleFunc("POST /occurrences/{occurrenceID}/registrations", d.Registrations.CreateRegistration)
	mux.HandleFunc("GET /events/{eventID}/registration/{registrationID}", d.Registrations.GetRegistrationByToken)
	mux.HandleFunc("POST /events/{eventID}/registration/{registrationID}/submit", d.Registrations.SubmitRegistration)
	mux.HandleFunc("POST /events/{eventID}/registration/{registrationID}/cancel", d.Registrations.CancelRegistration)

	// Admin
	mux.HandleFunc("GET /admin/registrations/{registrationID}", admin(d.Registrations.GetRegistration))
	mux.HandleFunc("PATCH /admin/registrations/{registrationID}/status", admin(d.Registrations.UpdateRegistrationStatus))
	mux.HandleFunc("PUT /admin/registrations/{registrationID}/tickets", admin(d.Registrations.ReplaceRegistrationTickets))
	mux.HandleFunc("DELETE /admin/registrations/{registrationID}", admin(d.Registrations.DeleteRegistration))
	mux.HandleFunc("GET /admin/occurrences/{occurrenceID}/registrations", admin(d.Registrations.ListRegistrations))
	mux.HandleFunc("POST /admin/purge", admin(d.Purge.RunPurge))

	if d.Metrics != nil {
		mux.Handle("GET /metrics", d.Metrics)
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
