package immobiliare

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"listing-monitor/models"
	"listing-monitor/scraper"
)

// DetailExtractor reads the structured fields of a single listing page.
// Missing fields come back as models.Unknown or an empty list; only an
// unparseable document is an error.
type DetailExtractor struct{}

func NewDetailExtractor() *DetailExtractor { return &DetailExtractor{} }

// Extract parses raw listing HTML.
func (e *DetailExtractor) Extract(raw []byte) (*models.ListingDetail, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("immobiliare: parse detail page: %w", err)
	}
	root := doc.Selection

	d := models.NewListingDetail()
	d.Price = scraper.ExtractFirst(root, priceChain)
	d.Address = scraper.ExtractFirst(root, addressChain)
	d.Description = scraper.ExtractFirst(root, descriptionChain)
	d.Features = features(root)
	d.OtherFeatures = otherFeatures(root)
	d.Surface = surface(root, d.Features)
	d.Costs = costs(root)
	return d, nil
}

func features(root *goquery.Selection) []models.KeyValue {
	for _, s := range featureContainers {
		if pairs := scraper.Pairs(root.Find(s.Selector())); len(pairs) > 0 {
			return pairs
		}
	}
	return scraper.PairsBy(root, legacyFeatureTerm, legacyFeatureDesc)
}

func otherFeatures(root *goquery.Selection) []string {
	for _, sel := range otherFeatureSelectors {
		if tags := scraper.Texts(root, sel); len(tags) > 0 {
			return tags
		}
	}
	return []string{}
}

func surface(root *goquery.Selection, feats []models.KeyValue) string {
	for _, f := range feats {
		key := strings.ToLower(f.Key)
		for _, want := range surfaceKeys {
			if strings.Contains(key, want) {
				return f.Value
			}
		}
	}
	return scraper.ExtractFirst(root, surfaceChain)
}

func costs(root *goquery.Selection) []models.KeyValue {
	list := root.Find(costHeadingSelector).First().Next().Filter("dl")
	if pairs := scraper.Pairs(list); len(pairs) > 0 {
		return pairs
	}
	return scraper.Pairs(root.Find(costFallbackList))
}
