// Package immobiliare extracts listing cards and listing details from the
// immobiliare.it agency and listing pages.
package immobiliare

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"listing-monitor/config"
	"listing-monitor/models"
	"listing-monitor/scraper"
)

// ExtractResult is the outcome of reading one rendered agency page.
type ExtractResult struct {
	Items []models.CandidateListing
	// Matched counts listing-item elements found, usable or not.
	Matched int
}

// ListingExtractor reads listing cards from the agency page.
type ListingExtractor struct {
	vendor config.Vendor
	base   *url.URL
}

// NewListingExtractor binds an extractor to the vendor settings.
func NewListingExtractor(vendor config.Vendor) (*ListingExtractor, error) {
	base, err := url.Parse(vendor.Origin())
	if err != nil {
		return nil, fmt.Errorf("immobiliare: vendor origin: %w", err)
	}
	return &ListingExtractor{vendor: vendor, base: base}, nil
}

// ItemSelector is the element a render should wait for.
func (e *ListingExtractor) ItemSelector() string { return listingItemSelector }

// Extract returns the listing cards in document order. Cards without a
// link, or whose link is not a listing page, are skipped.
func (e *ListingExtractor) Extract(html string) (ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ExtractResult{}, fmt.Errorf("immobiliare: parse listing page: %w", err)
	}

	items := doc.Find(listingItemSelector)
	res := ExtractResult{
		Items:   make([]models.CandidateListing, 0, items.Length()),
		Matched: items.Length(),
	}

	items.Each(func(_ int, item *goquery.Selection) {
		link := item.Find(listingLinkSelector).First()
		if link.Length() == 0 {
			return
		}
		href, ok := link.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		abs, ok := e.resolve(href)
		if !ok || !strings.Contains(abs, e.vendor.ListingMarker) {
			return
		}
		price, _ := scraper.FirstText(item, listingPriceChain)
		res.Items = append(res.Items, models.CandidateListing{URL: abs, RawPrice: price})
	})

	return res, nil
}

func (e *ListingExtractor) resolve(href string) (string, bool) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", false
	}
	return e.base.ResolveReference(ref).String(), true
}
