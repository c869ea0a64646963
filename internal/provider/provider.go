package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"kicksranker/internal/domain"
)

// Provider searches an external product catalog. A nil slice with a nil error
// means the provider answered with no result at all.
type Provider interface {
	Search(ctx context.Context, keyword string, limit int) ([]domain.RawProduct, error)
}

// SneaksClient talks to a sneaks-api compatible service exposing
// GET /search/{keyword}?count=N.
type SneaksClient struct {
	http *resty.Client
}

func NewSneaksClient(baseURL string) *SneaksClient {
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(baseURL, "/"))
	client.SetHeader("accept", "application/json")
	client.SetHeader("user-agent", "kicksranker/1.0")
	return &SneaksClient{http: client}
}

func (c *SneaksClient) Search(ctx context.Context, keyword string, limit int) ([]domain.RawProduct, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetPathParam("keyword", keyword).
		SetQueryParam("count", strconv.Itoa(limit)).
		Get("/search/{keyword}")
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", keyword, err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("search %q: provider returned %s", keyword, res.Status())
	}

	body := res.Body()
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, nil
	}
	var products []domain.RawProduct
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, fmt.Errorf("search %q: decode: %w", keyword, err)
	}
	if len(products) > limit && limit > 0 {
		products = products[:limit]
	}
	return products, nil
}
