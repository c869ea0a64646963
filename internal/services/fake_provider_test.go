package services_test

import (
	"context"
	"sync"

	"kicksranker/internal/domain"
)

// fakeProvider answers from canned results. Keywords listed in hang never
// answer until release is closed.
type fakeProvider struct {
	mu        sync.Mutex
	results   map[string][]domain.RawProduct
	errs      map[string]error
	hang      map[string]bool
	release   chan struct{}
	calls     []string
	active    int
	maxActive int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		results: map[string][]domain.RawProduct{},
		errs:    map[string]error{},
		hang:    map[string]bool{},
		release: make(chan struct{}),
	}
}

func (f *fakeProvider) Search(ctx context.Context, keyword string, limit int) ([]domain.RawProduct, error) {
	f.mu.Lock()
	f.calls = append(f.calls, keyword)
	f.active++
	if f.active > f.maxActive {
		f.maxActive = f.active
	}
	hang := f.hang[keyword]
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.active--
		f.mu.Unlock()
	}()

	if hang {
		<-f.release
		return nil, nil
	}
	if err := f.errs[keyword]; err != nil {
		return nil, err
	}
	res, ok := f.results[keyword]
	if !ok {
		return nil, nil
	}
	if len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

func (f *fakeProvider) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func raw(name, styleID string, retail, stockx float64) domain.RawProduct {
	return domain.RawProduct{
		ShoeName:          name,
		StyleID:           styleID,
		Brand:             "Jordan",
		RetailPrice:       domain.Price(retail),
		LowestResellPrice: domain.ResellPrices{StockX: domain.Price(stockx)},
	}
}
