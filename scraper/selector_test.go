package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing-monitor/models"
)

func parse(t *testing.T, html string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc.Selection
}

func TestStrategySelector(t *testing.T) {
	assert.Equal(t, `[data-testid="price-value"]`, ByTestID("price-value").Selector())
	assert.Equal(t, ".in-price__value", ByClass("in-price__value").Selector())
	assert.Equal(t, ".in-location span", ByCSS(".in-location span").Selector())
}

func TestExtractFirstPrecedence(t *testing.T) {
	doc := parse(t, `
		<div data-testid="price-value">  € 300.000 </div>
		<div class="in-price__value">€ 1</div>`)

	chain := Chain{ByTestID("price-value"), ByClass("in-price__value")}
	assert.Equal(t, "€ 300.000", ExtractFirst(doc, chain))

	reversed := Chain{ByClass("in-price__value"), ByTestID("price-value")}
	assert.Equal(t, "€ 1", ExtractFirst(doc, reversed))
}

func TestExtractFirstSkipsBlankMatches(t *testing.T) {
	doc := parse(t, `
		<div data-testid="price-value">   </div>
		<div class="im-priceDetail__price">€ 99</div>`)

	chain := Chain{ByTestID("price-value"), ByClass("in-price__value"), ByClass("im-priceDetail__price")}
	assert.Equal(t, "€ 99", ExtractFirst(doc, chain))
}

func TestExtractFirstUnknownWhenNothingMatches(t *testing.T) {
	doc := parse(t, `<p>nothing here</p>`)

	assert.Equal(t, models.Unknown, ExtractFirst(doc, Chain{ByTestID("address"), ByCSS(".in-location span")}))

	text, ok := FirstText(doc, Chain{ByTestID("address")})
	assert.False(t, ok)
	assert.Empty(t, text)

	assert.Equal(t, models.Unknown, ExtractFirst(doc, nil))
}

func TestPairs(t *testing.T) {
	doc := parse(t, `
		<dl class="list">
			<dt>Locali</dt><dd>3</dd>
			<dt>Orphan</dt>
			<dt>Piano</dt><dd>2</dd>
			<dd>stray</dd>
			<dt>  </dt><dd>blank key</dd>
			<dt>Empty</dt><dd> </dd>
		</dl>`)

	got := Pairs(doc.Find("dl.list"))
	assert.Equal(t, []models.KeyValue{{Key: "Locali", Value: "3"}, {Key: "Piano", Value: "2"}}, got)
}

func TestPairsEmptyContainer(t *testing.T) {
	doc := parse(t, `<div></div>`)
	got := Pairs(doc.Find("dl.missing"))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPairsBy(t *testing.T) {
	doc := parse(t, `
		<div>
			<dt class="t">Superficie</dt><dd class="d">90 m²</dd>
			<dt class="t">Bagni</dt><dd class="other">1</dd>
		</div>`)

	got := PairsBy(doc, "dt.t", "dd.d")
	assert.Equal(t, []models.KeyValue{{Key: "Superficie", Value: "90 m²"}}, got)
}

func TestTexts(t *testing.T) {
	doc := parse(t, `<ul><li class="b"><span> Cantina </span></li><li class="b"><span></span></li><li class="b"><span>Balcone</span></li></ul>`)
	assert.Equal(t, []string{"Cantina", "Balcone"}, Texts(doc, "li.b span"))
}
