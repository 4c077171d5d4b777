package immobiliare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing-monitor/models"
)

const currentTemplate = `
<html><body>
  <div data-testid="price-value">€ 320.000</div>
  <div class="in-price__value">€ 1</div>
  <span data-testid="address">Via Roma 1, Padova</span>
  <div class="in-readAll"><div>Luminoso trilocale in centro.</div></div>
  <section data-testid="features">
    <dl class="im-features__list">
      <dt>Locali</dt><dd>3</dd>
      <dt>Superficie</dt><dd>95 m²</dd>
      <dt>Senza valore</dt>
    </dl>
  </section>
  <div data-testid="features-others">
    <span class="im-features__tag">Balcone</span>
    <span class="im-features__tag">Cantina</span>
  </div>
  <h2>Costi</h2>
  <dl>
    <dt>Spese condominio</dt><dd>€ 80/mese</dd>
  </dl>
</body></html>`

const legacyTemplate = `
<html><body>
  <div class="im-priceDetail__price">€ 150.000</div>
  <div class="in-location"><span>Padova</span><span>Arcella</span></div>
  <div data-testid="description">Appartamento da ristrutturare.</div>
  <dl>
    <dt class="ld-featuresItem__title">Bagni</dt><dd class="ld-featuresItem__description">1</dd>
    <dt class="ld-featuresItem__title">Piano</dt><dd class="ld-featuresItem__description">2</dd>
  </dl>
  <ul><li class="ld-featuresBadges__badge"><span>Ascensore</span></li></ul>
  <div data-testid="surface-value">70 m²</div>
  <dl class="in-detailFeatures">
    <dt>Spese riscaldamento</dt><dd>€ 500/anno</dd>
  </dl>
</body></html>`

func TestDetailCurrentTemplate(t *testing.T) {
	d, err := NewDetailExtractor().Extract([]byte(currentTemplate))
	require.NoError(t, err)

	assert.Equal(t, "€ 320.000", d.Price)
	assert.Equal(t, "Via Roma 1, Padova", d.Address)
	assert.Equal(t, "Luminoso trilocale in centro.", d.Description)
	assert.Equal(t, []models.KeyValue{{Key: "Locali", Value: "3"}, {Key: "Superficie", Value: "95 m²"}}, d.Features)
	assert.Equal(t, []string{"Balcone", "Cantina"}, d.OtherFeatures)
	assert.Equal(t, "95 m²", d.Surface)
	assert.Equal(t, []models.KeyValue{{Key: "Spese condominio", Value: "€ 80/mese"}}, d.Costs)
}

func TestDetailLegacyTemplate(t *testing.T) {
	d, err := NewDetailExtractor().Extract([]byte(legacyTemplate))
	require.NoError(t, err)

	assert.Equal(t, "€ 150.000", d.Price)
	assert.Equal(t, "Padova", d.Address)
	assert.Equal(t, "Appartamento da ristrutturare.", d.Description)
	assert.Equal(t, []models.KeyValue{{Key: "Bagni", Value: "1"}, {Key: "Piano", Value: "2"}}, d.Features)
	assert.Equal(t, []string{"Ascensore"}, d.OtherFeatures)
	assert.Equal(t, "70 m²", d.Surface, "surface falls back to the direct lookup")
	assert.Equal(t, []models.KeyValue{{Key: "Spese riscaldamento", Value: "€ 500/anno"}}, d.Costs)
}

func TestDetailFeatureContainerOrder(t *testing.T) {
	page := `
<dl class="nd-list--features"><dt>Da nd</dt><dd>x</dd></dl>
<dl class="in-features__list"><dt>Da in</dt><dd>y</dd></dl>`

	d, err := NewDetailExtractor().Extract([]byte(page))
	require.NoError(t, err)
	assert.Equal(t, []models.KeyValue{{Key: "Da in", Value: "y"}}, d.Features)
}

func TestDetailEmptyContainerFallsThrough(t *testing.T) {
	page := `
<dl class="in-features__list"><dt>Solo chiave</dt></dl>
<dl class="nd-list--features"><dt>Tipologia</dt><dd>Appartamento</dd></dl>`

	d, err := NewDetailExtractor().Extract([]byte(page))
	require.NoError(t, err)
	assert.Equal(t, []models.KeyValue{{Key: "Tipologia", Value: "Appartamento"}}, d.Features)
}

func TestDetailMissingEverything(t *testing.T) {
	d, err := NewDetailExtractor().Extract([]byte(`<html><body><p>Annuncio non disponibile</p></body></html>`))
	require.NoError(t, err)

	assert.Equal(t, models.Unknown, d.Price)
	assert.Equal(t, models.Unknown, d.Address)
	assert.Equal(t, models.Unknown, d.Description)
	assert.Equal(t, models.Unknown, d.Surface)
	assert.NotNil(t, d.Features)
	assert.Empty(t, d.Features)
	assert.NotNil(t, d.OtherFeatures)
	assert.Empty(t, d.OtherFeatures)
	assert.NotNil(t, d.Costs)
	assert.Empty(t, d.Costs)
}

func TestDetailSpeseHeading(t *testing.T) {
	page := `
<h2>Descrizione</h2><dl><dt>Wrong</dt><dd>list</dd></dl>
<h2>Spese</h2><dl><dt>IMU</dt><dd>€ 300</dd></dl>`

	d, err := NewDetailExtractor().Extract([]byte(page))
	require.NoError(t, err)
	assert.Equal(t, []models.KeyValue{{Key: "IMU", Value: "€ 300"}}, d.Costs)
}

func TestDetailDescriptionFallback(t *testing.T) {
	page := `<div class="in-readAll"><div>   </div><div class="in-description__text">Testo lungo</div></div>`

	d, err := NewDetailExtractor().Extract([]byte(page))
	require.NoError(t, err)
	assert.Equal(t, "Testo lungo", d.Description)
}
