package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"listing-monitor/models"
	"listing-monitor/utils"
)

func urls(ls []models.CandidateListing) []string {
	out := make([]string, 0, len(ls))
	for _, l := range ls {
		out = append(out, l.URL)
	}
	return out
}

func TestReconcileNewSinceLastRun(t *testing.T) {
	candidates := []models.CandidateListing{
		{URL: "B", RawPrice: "€ 100"},
		{URL: "C", RawPrice: "€ 200"},
	}

	r := Reconcile(candidates, utils.NewURLSet("A", "B"))

	assert.Equal(t, []string{"C"}, urls(r.NewListings))
	assert.Equal(t, candidates, r.Snapshot)
}

func TestReconcilePriceChangeIsNotNew(t *testing.T) {
	prior := PriorURLs([]models.PersistedListing{{URL: "A", Price: "€ 100"}})
	r := Reconcile([]models.CandidateListing{{URL: "A", RawPrice: "€ 90"}}, prior)
	assert.Empty(t, r.NewListings)
}

func TestReconcileIdempotentAcrossCycles(t *testing.T) {
	candidates := []models.CandidateListing{{URL: "A"}, {URL: "B"}, {URL: "C"}}

	first := Reconcile(candidates, utils.NewURLSet())
	assert.Equal(t, []string{"A", "B", "C"}, urls(first.NewListings))

	second := Reconcile(candidates, utils.NewURLSet(urls(first.Snapshot)...))
	assert.Empty(t, second.NewListings)
	assert.Equal(t, candidates, second.Snapshot)
}

func TestReconcileSubsetProperty(t *testing.T) {
	candidates := []models.CandidateListing{{URL: "1"}, {URL: "2"}, {URL: "3"}, {URL: "4"}}
	prior := utils.NewURLSet("2", "4", "9")

	r := Reconcile(candidates, prior)
	in := utils.NewURLSet(urls(candidates)...)
	for _, l := range r.NewListings {
		assert.True(t, in.Contains(l.URL), "%s not in candidates", l.URL)
		assert.False(t, prior.Contains(l.URL), "%s was already known", l.URL)
	}
	assert.ElementsMatch(t, urls(candidates), urls(r.Snapshot))
}

func TestReconcileEmpty(t *testing.T) {
	r := Reconcile(nil, utils.NewURLSet("A"))
	assert.NotNil(t, r.NewListings)
	assert.Empty(t, r.NewListings)
	assert.Empty(t, r.Snapshot)

	r = Reconcile([]models.CandidateListing{{URL: "A"}}, nil)
	assert.Equal(t, []string{"A"}, urls(r.NewListings))
}
