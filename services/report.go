package services

import (
	"listing-monitor/models"
	"listing-monitor/utils"
)

// ReportService computes and logs per-cycle scrape statistics.
type ReportService struct {
	logger *utils.Logger
}

func NewReportService(logger *utils.Logger) *ReportService {
	return &ReportService{logger: logger}
}

// PriceStats fills the price fields of r from the kept listings. Listings
// without a usable price are left out of the statistics.
func (s *ReportService) PriceStats(r *models.ScrapeReport, kept []models.CandidateListing) {
	var total int
	r.Priced, r.LowestPrice, r.HighestPrice, r.AvgPrice = 0, 0, 0, 0

	for _, l := range kept {
		p := NormalizePrice(l.RawPrice)
		if p <= 0 {
			continue
		}
		if r.Priced == 0 || p < r.LowestPrice {
			r.LowestPrice = p
		}
		if p > r.HighestPrice {
			r.HighestPrice = p
		}
		total += p
		r.Priced++
	}

	if r.Priced > 0 {
		r.AvgPrice = round2(float64(total) / float64(r.Priced))
	}
}

// Log writes the report as one summary line.
func (s *ReportService) Log(r *models.ScrapeReport) {
	if r.Preserved {
		s.logger.Warn("[scrape] matched=%d extracted=%d: no listing items found, stored snapshot of %d kept as is",
			r.Matched, r.Extracted, r.Previous)
		return
	}
	s.logger.Info("[scrape] matched=%d extracted=%d min_price=%d kept=%d previous=%d new=%d",
		r.Matched, r.Extracted, r.MinPrice, r.Kept, r.Previous, r.New)
	if r.Priced > 0 {
		s.logger.Info("[scrape] prices over %d listings: min=%d max=%d avg=%.2f",
			r.Priced, r.LowestPrice, r.HighestPrice, r.AvgPrice)
	}
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}
