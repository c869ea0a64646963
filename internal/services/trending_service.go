package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"kicksranker/internal/config"
	"kicksranker/internal/domain"
	"kicksranker/internal/log"
	"kicksranker/internal/provider"
)

// DiagnosticTimeout bounds the single-keyword diagnostic fetch.
const DiagnosticTimeout = 30 * time.Second

type TrendingService struct {
	Fetcher    *Fetcher
	Normalizer *Normalizer
	Patterns   []domain.Pattern
	Mode       domain.RankMode
	TopN       int
	Now        func() time.Time
}

func NewTrendingService(cfg config.Config, p provider.Provider) *TrendingService {
	return &TrendingService{
		Fetcher:    NewFetcher(p, cfg.PerPattern, cfg.FetchTimeout, cfg.FetchDelay),
		Normalizer: NewNormalizer(cfg.Threshold, cfg.ExcludeWords),
		Patterns:   cfg.Patterns,
		Mode:       cfg.RankMode,
		TopN:       cfg.TopN,
		Now:        time.Now,
	}
}

// Run fetches every pattern, then filters, dedupes and ranks the results.
// Provider failures only shrink the result; the returned error is reserved
// for a service that cannot run at all.
func (s *TrendingService) Run(ctx context.Context) (domain.TrendingResult, error) {
	if len(s.Patterns) == 0 {
		return domain.TrendingResult{}, fmt.Errorf("trending: no patterns configured")
	}
	if s.Mode != domain.RankByType && s.Mode != domain.RankByPriority {
		return domain.TrendingResult{}, fmt.Errorf("trending: unknown rank mode %q", s.Mode)
	}

	runID := uuid.NewString()
	start := time.Now()
	log.Info(nil, "trending.start", map[string]any{"run_id": runID, "patterns": len(s.Patterns)})

	batches, failures := s.Fetcher.FetchAll(ctx, s.Patterns)

	var all []domain.Opportunity
	for _, b := range batches {
		now := s.now()
		for _, raw := range b.Products {
			if o, ok := s.Normalizer.Normalize(raw, b.Pattern, now); ok {
				all = append(all, o)
			}
		}
	}
	elapsed := time.Since(start)

	top := Rank(Dedupe(all), s.Mode, s.TopN)
	summary := Summarize(top, elapsed)
	log.Info(nil, "trending.done", map[string]any{
		"run_id":     runID,
		"qualified":  len(all),
		"returned":   len(top),
		"collabs":    summary.Collaborations,
		"failures":   len(failures),
		"latency_ms": elapsed.Milliseconds(),
	})

	return domain.TrendingResult{
		RunID:         runID,
		Opportunities: top,
		Summary:       summary,
		Errors:        failures,
	}, nil
}

// Diagnose runs one unfiltered search and reports the provider error verbatim.
func (s *TrendingService) Diagnose(ctx context.Context, keyword string, limit int) domain.DiagnosticResult {
	if limit <= 0 {
		limit = s.Fetcher.PerPattern
	}
	products, err := s.Fetcher.Fetch(ctx, keyword, limit, DiagnosticTimeout)
	if err != nil {
		return domain.DiagnosticResult{Success: false, Error: err.Error()}
	}
	if products == nil {
		return domain.DiagnosticResult{Success: false, Error: "provider returned no result"}
	}
	return domain.DiagnosticResult{Success: true, Products: products}
}

func Summarize(top []domain.Opportunity, elapsed time.Duration) domain.Summary {
	var collabs int
	var sumIncrease, sumProfit float64
	for _, o := range top {
		if o.PatternType == domain.Collab {
			collabs++
		}
		sumIncrease += o.PriceIncrease
		sumProfit += o.Profit
	}
	avg := 0.0
	if len(top) > 0 {
		avg = sumIncrease / float64(len(top))
	}
	return domain.Summary{
		TotalOpportunities:   len(top),
		Collaborations:       collabs,
		Brands:               len(top) - collabs,
		AvgPriceIncrease:     fmt.Sprintf("+%.1f%%", avg),
		TotalPotentialProfit: fmt.Sprintf("$%.0f", sumProfit),
		SearchTime:           fmt.Sprintf("%.1fs", elapsed.Seconds()),
	}
}

func (s *TrendingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
