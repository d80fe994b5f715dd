package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth         *AuthHandler
	Item         *ItemHandler
	Booking      *BookingHandler
	Profile      *ProfileHandler
	Notification *NotificationHandler
}

// NewRouter wires all API routes. Everything under the authenticated
// subrouter requires a valid access token.
func NewRouter(h Handlers, auth *AuthMiddleware) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/signup", h.Auth.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", h.Auth.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/items", h.Item.Search).Methods(http.MethodGet)
	api.HandleFunc("/items/{id}", h.Item.Get).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}", h.Profile.Get).Methods(http.MethodGet)

	// Authenticated routes
	authed := api.NewRoute().Subrouter()
	authed.Use(auth.Require)

	authed.HandleFunc("/items", h.Item.Create).Methods(http.MethodPost)
	authed.HandleFunc("/items/{id}", h.Item.Update).Methods(http.MethodPut)
	authed.HandleFunc("/items/{id}", h.Item.Delete).Methods(http.MethodDelete)
	authed.HandleFunc("/my/items", h.Item.ListMine).Methods(http.MethodGet)

	authed.HandleFunc("/bookings", h.Booking.Create).Methods(http.MethodPost)
	authed.HandleFunc("/bookings/{id}/status", h.Booking.UpdateStatus).Methods(http.MethodPatch)
	authed.HandleFunc("/my/bookings", h.Booking.History).Methods(http.MethodGet)
	authed.HandleFunc("/my/bookings/pending-count", h.Booking.PendingCount).Methods(http.MethodGet)
	authed.HandleFunc("/my/credits", h.Booking.CreditHistory).Methods(http.MethodGet)

	authed.HandleFunc("/me", h.Profile.Me).Methods(http.MethodGet)
	authed.HandleFunc("/me", h.Profile.Update).Methods(http.MethodPut)

	authed.HandleFunc("/notifications", h.Notification.List).Methods(http.MethodGet)
	authed.HandleFunc("/notifications/{id}/read", h.Notification.MarkAsRead).Methods(http.MethodPost)

	return r
}
