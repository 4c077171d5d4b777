package services

import (
	"listing-monitor/models"
	"listing-monitor/utils"
)

// Reconciliation is the outcome of comparing a scrape with the stored
// snapshot.
type Reconciliation struct {
	// NewListings are candidates whose URL was not in the prior snapshot.
	NewListings []models.CandidateListing
	// Snapshot replaces the stored snapshot in full.
	Snapshot []models.CandidateListing
}

// Reconcile splits out the candidates not seen before. Identity is the URL
// alone, so a known listing with a changed price is not new.
func Reconcile(candidates []models.CandidateListing, prior *utils.URLSet) Reconciliation {
	fresh := make([]models.CandidateListing, 0)
	for _, c := range candidates {
		if !prior.Contains(c.URL) {
			fresh = append(fresh, c)
		}
	}
	return Reconciliation{NewListings: fresh, Snapshot: candidates}
}

// PriorURLs collects the URLs of a stored snapshot.
func PriorURLs(stored []models.PersistedListing) *utils.URLSet {
	set := utils.NewURLSet()
	for _, l := range stored {
		set.Add(l.URL)
	}
	return set
}
