package immobiliare

import "listing-monitor/scraper"

// Agency listing page.
const (
	listingItemSelector = "li.nd-list__item"
	listingLinkSelector = "a.in-listingCardTitle"
)

var listingPriceChain = scraper.Chain{
	scraper.ByCSS(".in-listingCardPrice span"),
	scraper.ByClass("in-listingCardPrice"),
}

// Listing detail page. Each chain covers the current and the older page
// template; order matters.
var (
	priceChain = scraper.Chain{
		scraper.ByTestID("price-value"),
		scraper.ByClass("in-price__value"),
		scraper.ByClass("im-priceDetail__price"),
	}

	addressChain = scraper.Chain{
		scraper.ByTestID("address"),
		scraper.ByCSS(".in-location span"),
	}

	descriptionChain = scraper.Chain{
		scraper.ByCSS(".in-readAll > div"),
		scraper.ByCSS(`.in-readAll div[class*="description"]`),
		scraper.ByTestID("description"),
	}

	featureContainers = scraper.Chain{
		scraper.ByCSS(`[data-testid="features"] dl.im-features__list`),
		scraper.ByCSS("dl.in-features__list"),
		scraper.ByCSS("dl.nd-list--features"),
	}

	surfaceChain = scraper.Chain{
		scraper.ByTestID("surface-value"),
		scraper.ByClass("ld-surfaceElement"),
	}

	otherFeatureSelectors = []string{
		`[data-testid="features-others"] .im-features__tag`,
		"li.ld-featuresBadges__badge span",
	}

	costHeadingSelector = `h2:contains("Costi"), h2:contains("Spese")`
	costFallbackList    = "dl.in-detailFeatures"
)

const (
	legacyFeatureTerm = "dt.ld-featuresItem__title"
	legacyFeatureDesc = "dd.ld-featuresItem__description"
)

// surfaceKeys are matched case-insensitively against feature keys.
var surfaceKeys = []string{"superficie", "surface"}
