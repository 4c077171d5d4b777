package services

import (
	"strconv"
	"strings"

	"listing-monitor/models"
)

// NormalizePrice turns listing price text into a whole number of euros.
// Everything but digits and '.' is dropped and '.' is read as a thousands
// separator, so "€ 1.250" is 1250. Text without a usable number yields 0.
func NormalizePrice(text string) int {
	if text == "" {
		return 0
	}

	var b strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	// Dropping the dots here is the same as splitting on them and joining
	// the digit groups back together.
	digits := b.String()
	if digits == "" {
		return 0
	}

	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// ParseMinPrice reads the optional minimum-price filter. Empty or
// unparseable input disables the filter.
func ParseMinPrice(raw string) int {
	return NormalizePrice(strings.TrimSpace(raw))
}

// FilterByMinPrice keeps candidates whose normalized price is at least min,
// preserving order. min <= 0 returns the input unchanged.
func FilterByMinPrice(candidates []models.CandidateListing, min int) []models.CandidateListing {
	if min <= 0 {
		return candidates
	}
	kept := make([]models.CandidateListing, 0, len(candidates))
	for _, c := range candidates {
		if NormalizePrice(c.RawPrice) >= min {
			kept = append(kept, c)
		}
	}
	return kept
}
