package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"clubportal/internal/delivery/http/controllers"
	"clubportal/internal/delivery/http/middleware"
	"clubportal/internal/domain"
)

// Controllers bundles the controllers the router mounts.
type Controllers struct {
	Auth        *controllers.AuthController
	Profile     *controllers.ProfileController
	Event       *controllers.EventController
	Membership  *controllers.MembershipController
	CheckIn     *controllers.CheckInController
	Application *controllers.ApplicationController
}

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(c Controllers, verifier domain.TokenVerifier) *http.ServeMux {
	mux := http.NewServeMux()

	authed := middleware.RequireAuth(verifier)
	elevated := middleware.RequireRole(verifier, domain.RoleExec, domain.RoleAdmin)
	optional := middleware.OptionalAuth(verifier)

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.LogIn)

	// Profiles
	mux.HandleFunc("GET /profiles/me", authed(c.Profile.GetMe))
	mux.HandleFunc("PATCH /profiles/me", authed(c.Profile.UpdateMe))
	mux.HandleFunc("GET /admin/profiles", elevated(c.Profile.ListProfiles))

	// Events
	mux.HandleFunc("GET /events", c.Event.ListEvents)
	mux.HandleFunc("GET /events/active", c.Event.ListActiveEvents)
	mux.HandleFunc("GET /events/{eventID}", c.Event.GetEvent)
	mux.HandleFunc("POST /events", elevated(c.Event.CreateEvent))
	mux.HandleFunc("PATCH /events/{eventID}", elevated(c.Event.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", elevated(c.Event.DeleteEvent))

	// Memberships
	mux.HandleFunc("GET /memberships/me", authed(c.Membership.GetMine))
	mux.HandleFunc("POST /admin/memberships", elevated(c.Membership.Grant))
	mux.HandleFunc("DELETE /admin/memberships/{membershipID}", elevated(c.Membership.Revoke))
	mux.HandleFunc("GET /admin/memberships", elevated(c.Membership.List))

	// Check-in
	mux.HandleFunc("POST /checkin", authed(c.CheckIn.SelfCheckIn))
	mux.HandleFunc("POST /admin/checkin", elevated(c.CheckIn.ManualCheckIn))
	mux.HandleFunc("DELETE /admin/checkin", elevated(c.CheckIn.UncheckIn))
	mux.HandleFunc("GET /events/{eventID}/attendance/me", optional(c.CheckIn.MyAttendanceStatus))
	mux.HandleFunc("GET /admin/events/{eventID}/attendance", elevated(c.CheckIn.ListAttendance))

	// Applications
	mux.HandleFunc("POST /applications", authed(c.Application.Submit))
	mux.HandleFunc("GET /applications/me", authed(c.Application.ListMine))
	mux.HandleFunc("GET /admin/applications", elevated(c.Application.List))
	mux.HandleFunc("POST /admin/applications/{applicationID}/decision", elevated(c.Application.Decide))

	// Operational
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
