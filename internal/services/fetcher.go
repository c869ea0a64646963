package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kicksranker/internal/domain"
	"kicksranker/internal/log"
	"kicksranker/internal/provider"
)

var ErrFetchTimeout = errors.New("fetch timed out")

type Batch struct {
	Pattern  domain.Pattern
	Products []domain.RawProduct
}

// Fetcher queries the provider one pattern at a time.
type Fetcher struct {
	Provider   provider.Provider
	PerPattern int
	Timeout    time.Duration
	Delay      time.Duration
}

func NewFetcher(p provider.Provider, perPattern int, timeout, delay time.Duration) *Fetcher {
	return &Fetcher{Provider: p, PerPattern: perPattern, Timeout: timeout, Delay: delay}
}

// Fetch runs a single provider search and gives up after timeout even if the
// provider never returns.
func (f *Fetcher) Fetch(ctx context.Context, keyword string, limit int, timeout time.Duration) ([]domain.RawProduct, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		products []domain.RawProduct
		err      error
	}
	ch := make(chan result, 1)
	go func() {
		products, err := f.Provider.Search(ctx, keyword, limit)
		ch <- result{products, err}
	}()

	select {
	case r := <-ch:
		return r.products, r.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %q after %s", ErrFetchTimeout, keyword, timeout)
		}
		return nil, ctx.Err()
	}
}

// FetchAll walks patterns in order. A failing pattern contributes an empty
// batch and an entry in the returned error list; it never stops the loop.
// The delay follows every pattern, the last one included.
func (f *Fetcher) FetchAll(ctx context.Context, patterns []domain.Pattern) ([]Batch, []domain.FetchError) {
	batches := make([]Batch, 0, len(patterns))
	var failures []domain.FetchError

	for _, p := range patterns {
		if ctx.Err() != nil {
			break
		}
		log.Info(nil, "fetch.start", map[string]any{"pattern": p.Keyword, "type": p.Type, "avg_roi": p.AvgROI})

		products, err := f.Fetch(ctx, p.Keyword, f.PerPattern, f.Timeout)
		switch {
		case err != nil:
			log.Warn(nil, "fetch.fail", err, map[string]any{"pattern": p.Keyword})
			failures = append(failures, domain.FetchError{Pattern: p.Keyword, Error: err.Error()})
			products = nil
		case products == nil:
			log.Warn(nil, "fetch.empty", nil, map[string]any{"pattern": p.Keyword})
			failures = append(failures, domain.FetchError{Pattern: p.Keyword, Error: "no result"})
		default:
			log.Info(nil, "fetch.ok", map[string]any{"pattern": p.Keyword, "found": len(products)})
		}
		batches = append(batches, Batch{Pattern: p, Products: products})

		if err := sleep(ctx, f.Delay); err != nil {
			break
		}
	}
	return batches, failures
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
