package http

import (
	"net/http"

	"eventreg-request-service/internal/security"
	"eventreg-request-service/internal/service"

	"github.com/gorilla/mux"
)

// NewRouter builds the public HTTP API. A nil token manager disables
// authentication.
func NewRouter(requestSvc service.RequestService, eventStateSvc service.EventStateService, tokens security.TokenManager) *mux.Router {
	h := NewRequestHandler(requestSvc, eventStateSvc)

	router := mux.NewRouter()
	router.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	users := router.PathPrefix("/users/{userId:[0-9]+}").Subrouter()
	users.HandleFunc("/requests", h.CreateRequest).Methods(http.MethodPost)
	users.HandleFunc("/requests", h.ListRequestsForRequester).Methods(http.MethodGet)
	users.HandleFunc("/requests/{requestId}/cancel", h.CancelRequest).Methods(http.MethodPatch)
	users.HandleFunc("/events/{eventId:[0-9]+}/requests", h.ListRequestsForEvent).Methods(http.MethodGet)
	users.HandleFunc("/events/{eventId:[0-9]+}/requests", h.ChangeRequestStatus).Methods(http.MethodPatch)
	users.HandleFunc("/events/{eventId:[0-9]+}/state", h.ChangeEventStateByInitiator).Methods(http.MethodPatch)

	admin := router.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/events/{eventId:[0-9]+}/state", h.ChangeEventStateByAdmin).Methods(http.MethodPatch)
	admin.HandleFunc("/requests/count/{eventId:[0-9]+}", h.CountRequests).Methods(http.MethodGet)

	if tokens != nil {
		users.Use(authenticate(tokens), requirePathUser)
		admin.Use(authenticate(tokens), requireAdmin)
	}
	return router
}
