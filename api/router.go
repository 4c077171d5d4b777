package api

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"listing-monitor/utils"
)

// NewRouter mounts the listing routes at the root and again under /api,
// wrapped in request logging, panic recovery and CORS for frontendURL.
func NewRouter(h *ListingHandler, logger *utils.Logger, frontendURL string) http.Handler {
	r := mux.NewRouter()
	register(r, h)
	register(r.PathPrefix("/api").Subrouter(), h)

	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{
			Message: "Method not allowed",
			Error:   req.Method + " " + req.URL.Path,
		})
	})
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{
			Message: "Not found",
			Error:   req.URL.Path,
		})
	})

	r.Use(requestLogger(logger))

	var handler http.Handler = r
	handler = handlers.RecoveryHandler(
		handlers.RecoveryLogger(logger),
		handlers.PrintRecoveryStack(false),
	)(handler)
	handler = handlers.CORS(
		handlers.AllowedOrigins([]string{frontendURL}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", requestIDHeader}),
		handlers.ExposedHeaders([]string{requestIDHeader}),
	)(handler)
	return handler
}

func register(r *mux.Router, h *ListingHandler) {
	r.HandleFunc("/listings", h.GetListings).Methods(http.MethodGet)
	r.HandleFunc("/listings", h.DeleteListings).Methods(http.MethodDelete)
	r.HandleFunc("/scrape", h.Scrape).Methods(http.MethodPost)
	r.HandleFunc("/details", h.Details).Methods(http.MethodGet)
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
}
