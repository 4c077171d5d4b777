package services

import (
	"context"
	"errors"
	"fmt"

	"listing-monitor/apperr"
	"listing-monitor/config"
	"listing-monitor/models"
	"listing-monitor/scraper"
	"listing-monitor/scraper/immobiliare"
	"listing-monitor/storage"
	"listing-monitor/utils"
)

var blockedResources = []string{
	scraper.ResourceImage,
	scraper.ResourceStylesheet,
	scraper.ResourceFont,
}

// ListingService runs the scrape and detail pipelines against one vendor.
type ListingService struct {
	vendor   config.Vendor
	renderer scraper.Renderer
	fetcher  scraper.Fetcher
	listings *immobiliare.ListingExtractor
	details  *immobiliare.DetailExtractor
	store    storage.SnapshotStore
	audit    storage.CandidateWriter
	report   *ReportService
	logger   *utils.Logger

	upsertConcurrency int
	upsertRatePerSec  float64

	// gate admits one scrape at a time.
	gate chan struct{}
}

// ListingServiceConfig gathers the dependencies of a ListingService.
// Audit is optional.
type ListingServiceConfig struct {
	Vendor            config.Vendor
	Renderer          scraper.Renderer
	Fetcher           scraper.Fetcher
	Store             storage.SnapshotStore
	Audit             storage.CandidateWriter
	Logger            *utils.Logger
	UpsertConcurrency int
	UpsertRatePerSec  float64
}

func NewListingService(c ListingServiceConfig) (*ListingService, error) {
	if c.Renderer == nil || c.Fetcher == nil || c.Store == nil || c.Logger == nil {
		return nil, errors.New("listing service: renderer, fetcher, store and logger are required")
	}
	extractor, err := immobiliare.NewListingExtractor(c.Vendor)
	if err != nil {
		return nil, fmt.Errorf("listing service: %w", err)
	}
	return &ListingService{
		vendor:            c.Vendor,
		renderer:          c.Renderer,
		fetcher:           c.Fetcher,
		listings:          extractor,
		details:           immobiliare.NewDetailExtractor(),
		store:             c.Store,
		audit:             c.Audit,
		report:            NewReportService(c.Logger),
		logger:            c.Logger,
		upsertConcurrency: c.UpsertConcurrency,
		upsertRatePerSec:  c.UpsertRatePerSec,
		gate:              make(chan struct{}, 1),
	}, nil
}

// Listings returns the stored snapshot, most recently seen first.
func (s *ListingService) Listings(ctx context.Context) ([]models.PersistedListing, error) {
	stored, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, apperr.Persistence("list", err)
	}
	return stored, nil
}

// ClearListings empties the stored snapshot.
func (s *ListingService) ClearListings(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return apperr.Persistence("clear", err)
	}
	s.logger.Info("[store] snapshot cleared")
	return nil
}

// Scrape renders the vendor page, reconciles what it finds against the
// stored snapshot, replaces the snapshot and returns the listings that were
// not stored before. minPriceRaw is optional; empty or unparseable input
// disables the price filter.
//
// When the page yields no listing items at all the stored snapshot is left
// untouched and no new listings are reported.
func (s *ListingService) Scrape(ctx context.Context, minPriceRaw string) ([]models.CandidateListing, error) {
	select {
	case s.gate <- struct{}{}:
	case <-ctx.Done():
		return nil, apperr.Timeout("scrape", ctx.Err())
	}
	defer func() { <-s.gate }()

	html, err := s.renderer.Render(ctx, scraper.RenderRequest{
		URL:          s.vendor.URL,
		UserAgent:    s.vendor.RandomUserAgent(),
		BlockedTypes: blockedResources,
		WaitSelector: s.listings.ItemSelector(),
	})
	if err != nil {
		return nil, fmt.Errorf("scrape: render %s: %w", s.vendor.URL, err)
	}

	extracted, err := s.listings.Extract(html)
	if err != nil {
		return nil, fmt.Errorf("scrape: extract: %w", err)
	}

	report := &models.ScrapeReport{
		Matched:   extracted.Matched,
		Extracted: len(extracted.Items),
		MinPrice:  ParseMinPrice(minPriceRaw),
	}

	stored, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, apperr.Persistence("list", err)
	}
	report.Previous = len(stored)

	if extracted.Matched == 0 {
		report.Preserved = true
		s.report.Log(report)
		return []models.CandidateListing{}, nil
	}

	kept := FilterByMinPrice(extracted.Items, report.MinPrice)
	report.Kept = len(kept)
	s.writeAudit(kept)

	rec := Reconcile(kept, PriorURLs(stored))
	report.New = len(rec.NewListings)

	if err := s.replace(ctx, rec.Snapshot); err != nil {
		return nil, err
	}

	s.report.PriceStats(report, kept)
	s.report.Log(report)
	return rec.NewListings, nil
}

// replace swaps the stored snapshot for the given one. Upserts run on a
// bounded pool; the first failure is returned once all of them finish.
func (s *ListingService) replace(ctx context.Context, snapshot []models.CandidateListing) error {
	if err := s.store.Clear(ctx); err != nil {
		return apperr.Persistence("clear", err)
	}

	pool := utils.NewWorkerPool(s.upsertConcurrency, s.upsertRatePerSec)
	for _, l := range snapshot {
		l := l
		pool.Submit(ctx, func(ctx context.Context) error {
			return s.store.Upsert(ctx, l.URL, l.RawPrice)
		})
	}

	errs := pool.Wait()
	if len(errs) > 0 {
		s.logger.Error("[store] %d of %d upserts failed, first: %v", len(errs), len(snapshot), errs[0])
		return apperr.Persistence("upsert", errs[0])
	}
	return nil
}

func (s *ListingService) writeAudit(kept []models.CandidateListing) {
	if s.audit == nil || len(kept) == 0 {
		return
	}
	if err := s.audit.WriteCandidates(kept); err != nil {
		s.logger.Warn("[audit] csv write failed: %v", err)
	}
}

// Details fetches one listing page and extracts its structured fields.
func (s *ListingService) Details(ctx context.Context, url string) (*models.ListingDetail, error) {
	if url == "" {
		return nil, apperr.Validation("url query parameter is required")
	}
	if !s.vendor.IsDetailURL(url) {
		return nil, apperr.Validation("url must start with %s", s.vendor.DetailURLPrefix)
	}

	body, _, err := s.fetcher.Fetch(ctx, url, s.vendor.DetailHeaders())
	if err != nil {
		return nil, fmt.Errorf("details: %w", err)
	}

	detail, err := s.details.Extract(body)
	if err != nil {
		return nil, fmt.Errorf("details: extract %s: %w", url, err)
	}
	s.logger.Debug("[details] %s: price=%s features=%d costs=%d", url, detail.Price, len(detail.Features), len(detail.Costs))
	return detail, nil
}
