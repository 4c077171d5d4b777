package models

import "time"

// Unknown is the placeholder for any detail field the page did not yield.
const Unknown = "N/A"

// CandidateListing is one listing card read from the current scrape.
// It is not stored as-is; only its URL and price text survive reconciliation.
type CandidateListing struct {
	URL      string `json:"url"`
	RawPrice string `json:"price"`
}

// PersistedListing is a row of the stored snapshot, keyed by URL.
type PersistedListing struct {
	URL       string    `json:"url"`
	Price     string    `json:"price"`
	ScrapedAt time.Time `json:"scrapedAt"`
}

// KeyValue is a single term/description pair from a feature or cost list.
type KeyValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ListingDetail holds the fields read from a single listing page.
// Scalars default to Unknown and slices to empty, never nil.
type ListingDetail struct {
	Price         string     `json:"price"`
	Address       string     `json:"address"`
	Description   string     `json:"description"`
	Features      []KeyValue `json:"features"`
	OtherFeatures []string   `json:"otherFeatures"`
	Surface       string     `json:"surface"`
	Costs         []KeyValue `json:"costs"`
}

// NewListingDetail returns a detail record with every field unset.
func NewListingDetail() *ListingDetail {
	return &ListingDetail{
		Price:         Unknown,
		Address:       Unknown,
		Description:   Unknown,
		Features:      []KeyValue{},
		OtherFeatures: []string{},
		Surface:       Unknown,
		Costs:         []KeyValue{},
	}
}

// ScrapeReport summarises one scrape cycle for the logs.
type ScrapeReport struct {
	Matched   int
	Extracted int
	MinPrice  int
	Kept      int
	Previous  int
	New       int
	// Preserved is set when the store was left untouched.
	Preserved bool

	Priced       int
	LowestPrice  int
	HighestPrice int
	AvgPrice     float64
}
