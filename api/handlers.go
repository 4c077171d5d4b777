// Package api exposes the listing pipelines over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"listing-monitor/apperr"
	"listing-monitor/models"
)

// ListingAPI is the pipeline surface the handlers drive.
type ListingAPI interface {
	Listings(ctx context.Context) ([]models.PersistedListing, error)
	ClearListings(ctx context.Context) error
	Scrape(ctx context.Context, minPriceRaw string) ([]models.CandidateListing, error)
	Details(ctx context.Context, url string) (*models.ListingDetail, error)
}

type ListingHandler struct {
	svc ListingAPI
}

func NewListingHandler(svc ListingAPI) *ListingHandler {
	return &ListingHandler{svc: svc}
}

type listingsResponse struct {
	Listings []models.PersistedListing `json:"listings"`
}

type newListingsResponse struct {
	NewListings []models.CandidateListing `json:"newListings"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	URL     string `json:"url,omitempty"`
}

type scrapeRequest struct {
	MinPrice json.RawMessage `json:"minPrice"`
}

// GetListings handles GET /listings.
func (h *ListingHandler) GetListings(w http.ResponseWriter, r *http.Request) {
	listings, err := h.svc.Listings(r.Context())
	if err != nil {
		writeError(w, r, "Failed to fetch listings", err, "")
		return
	}
	writeJSON(w, http.StatusOK, listingsResponse{Listings: listings})
}

// DeleteListings handles DELETE /listings.
func (h *ListingHandler) DeleteListings(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearListings(r.Context()); err != nil {
		writeError(w, r, "Failed to delete listings", err, "")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "All listings deleted"})
}

// Scrape handles POST /scrape. The body is optional; minPrice may be sent
// as a number or a string.
func (h *ListingHandler) Scrape(w http.ResponseWriter, r *http.Request) {
	minPrice, err := decodeMinPrice(r.Body)
	if err != nil {
		writeError(w, r, "Invalid request body", err, "")
		return
	}

	fresh, err := h.svc.Scrape(r.Context(), minPrice)
	if err != nil {
		writeError(w, r, "Scraping failed", err, "")
		return
	}
	writeJSON(w, http.StatusOK, newListingsResponse{NewListings: fresh})
}

// Details handles GET /details?url=.
func (h *ListingHandler) Details(w http.ResponseWriter, r *http.Request) {
	url := strings.TrimSpace(r.URL.Query().Get("url"))

	detail, err := h.svc.Details(r.Context(), url)
	if err != nil {
		writeError(w, r, "Failed to fetch listing details", err, url)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// Health handles GET /health.
func (h *ListingHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decodeMinPrice(body io.Reader) (string, error) {
	if body == nil {
		return "", nil
	}
	var req scrapeRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return "", nil
		}
		return "", apperr.Validation("malformed JSON body: %v", err)
	}

	raw := strings.TrimSpace(string(req.MinPrice))
	if raw == "" || raw == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(req.MinPrice, &s); err == nil {
		return s, nil
	}
	return raw, nil
}
