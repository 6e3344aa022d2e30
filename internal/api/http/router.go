package http

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"

	"agrirent-backend/internal/config"
	"agrirent-backend/internal/metrics"
	"agrirent-backend/internal/service"
	"agrirent-backend/internal/storage"
)

// RouterDeps collects everything the HTTP surface needs.
type RouterDeps struct {
	DB            *sql.DB
	Config        *config.Config
	Auth          service.AuthService
	Machinery     service.MachineryService
	Bookings      service.BookingService
	Notifications service.NotificationService
	Storage       storage.Service
}

// NewRouter wires all routes. Public routes are registration, login,
// machinery browsing and image serving; everything else requires a
// Bearer token.
func NewRouter(deps RouterDeps) *mux.Router {
	router := mux.NewRouter()
	router.Use(ObservabilityMiddleware)

	authHandler := NewAuthHandler(deps.Auth)
	machineryHandler := NewMachineryHandler(deps.Machinery)
	bookingHandler := NewBookingHandler(deps.Bookings)
	notificationHandler := NewNotificationHandler(deps.Notifications)
	uploadHandler := NewUploadHandler(deps.Machinery, deps.Storage,
		deps.Config.MaxFileSizeBytes(), deps.Config.Storage.MaxImages)

	requireAuth := AuthMiddleware(deps.Auth)

	// Auth routes
	auth := router.PathPrefix("/api/auth").Subrouter()
	auth.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	authProtected := router.PathPrefix("/api/auth").Subrouter()
	authProtected.Use(requireAuth)
	authProtected.HandleFunc("/check-auth", authHandler.CheckAuth).Methods(http.MethodPost)
	authProtected.HandleFunc("/profile", authHandler.GetProfile).Methods(http.MethodGet)
	authProtected.HandleFunc("/profile", authHandler.UpdateProfile).Methods(http.MethodPut)
	authProtected.HandleFunc("/roles/add", authHandler.AddRole).Methods(http.MethodPost)
	authProtected.HandleFunc("/roles/remove", authHandler.RemoveRole).Methods(http.MethodPost)
	authProtected.HandleFunc("/labour/availability", authHandler.UpdateLabourAvailability).Methods(http.MethodPut)
	authProtected.HandleFunc("/updatePassword/{id}", authHandler.UpdatePassword).Methods(http.MethodPost)

	// Machinery routes: browsing is public, mutation is owner-gated.
	machinery := router.PathPrefix("/api/machinery").Subrouter()
	machinery.HandleFunc("", machineryHandler.List).Methods(http.MethodGet)
	machinery.HandleFunc("/{id:[0-9]+}", machineryHandler.Get).Methods(http.MethodGet)
	machinery.HandleFunc("/provider/{providerId:[0-9]+}", machineryHandler.ListByProvider).Methods(http.MethodGet)

	machineryProtected := router.PathPrefix("/api/machinery").Subrouter()
	machineryProtected.Use(requireAuth)
	machineryProtected.HandleFunc("", machineryHandler.Create).Methods(http.MethodPost)
	machineryProtected.HandleFunc("/{id:[0-9]+}", machineryHandler.Update).Methods(http.MethodPut)
	machineryProtected.HandleFunc("/{id:[0-9]+}", machineryHandler.Delete).Methods(http.MethodDelete)
	machineryProtected.HandleFunc("/{id:[0-9]+}/images", uploadHandler.UploadImages).Methods(http.MethodPost)

	// Booking routes
	bookings := router.PathPrefix("/api/bookings").Subrouter()
	bookings.Use(requireAuth)
	bookings.HandleFunc("", bookingHandler.Create).Methods(http.MethodPost)
	bookings.HandleFunc("", bookingHandler.List).Methods(http.MethodGet)
	bookings.HandleFunc("/{id:[0-9]+}", bookingHandler.Get).Methods(http.MethodGet)
	bookings.HandleFunc("/{id:[0-9]+}/status", bookingHandler.UpdateStatus).Methods(http.MethodPatch)
	bookings.HandleFunc("/{id:[0-9]+}", bookingHandler.Cancel).Methods(http.MethodDelete)

	// Notifications
	notifications := router.PathPrefix("/api/notifications").Subrouter()
	notifications.Use(requireAuth)
	notifications.HandleFunc("", notificationHandler.List).Methods(http.MethodGet)
	notifications.HandleFunc("/{id:[0-9]+}/read", notificationHandler.MarkAsRead).Methods(http.MethodPost)

	// Stored images
	router.HandleFunc("/image/machinery/{file}", uploadHandler.ServeImage).Methods(http.MethodGet)

	// Operational endpoints
	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/health", healthHandler(deps.DB)).Methods(http.MethodGet)

	return router
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, envelope{Success: false, Message: "database unreachable"})
			return
		}
		respondData(w, http.StatusOK, "ok", nil)
	}
}
