package services

import (
	"math"
	"regexp"
	"strings"
	"time"

	"kicksranker/internal/domain"
)

// VintageAfterDays is the age past which a release counts as vintage.
const VintageAfterDays = 1825

var releaseLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05", "01/02/2006"}

type Normalizer struct {
	Threshold float64
	exclude   *regexp.Regexp
}

func NewNormalizer(threshold float64, excludeWords []string) *Normalizer {
	n := &Normalizer{Threshold: threshold}
	var quoted []string
	for _, w := range excludeWords {
		if w = strings.TrimSpace(w); w != "" {
			quoted = append(quoted, regexp.QuoteMeta(w))
		}
	}
	if len(quoted) > 0 {
		n.exclude = regexp.MustCompile(`(?i)(` + strings.Join(quoted, "|") + `)`)
	}
	return n
}

// Excluded reports whether name looks like apparel rather than footwear.
func (n *Normalizer) Excluded(name string) bool {
	return n.exclude != nil && n.exclude.MatchString(name)
}

// Normalize turns a provider record into an Opportunity. The second return
// is false when the record is rejected.
func (n *Normalizer) Normalize(raw domain.RawProduct, p domain.Pattern, now time.Time) (domain.Opportunity, bool) {
	if raw.ShoeName == "" || n.Excluded(raw.ShoeName) {
		return domain.Opportunity{}, false
	}
	retail := float64(raw.RetailPrice)
	stockx := float64(raw.LowestResellPrice.StockX)
	if !(retail > 0) || !(stockx > 0) {
		return domain.Opportunity{}, false
	}
	increase := PriceIncrease(retail, stockx)
	profit := Profit(retail, stockx)
	if !finite(increase) || !finite(profit) || !(increase > n.Threshold) {
		return domain.Opportunity{}, false
	}

	return domain.Opportunity{
		Name:               raw.ShoeName,
		StyleID:            orNA(raw.StyleID),
		Brand:              orNA(raw.Brand),
		RetailPrice:        retail,
		StockXPrice:        stockx,
		GoatPrice:          float64(raw.LowestResellPrice.Goat),
		PriceIncrease:      increase,
		Profit:             profit,
		MatchedPattern:     p.Keyword,
		PatternType:        p.Type,
		Priority:           p.Priority,
		ExpectedAvgROI:     p.AvgROI,
		PatternSuccessRate: p.SuccessRate,
		InvestmentGrade:    Grade(increase, p.Type),
		Vintage:            IsVintage(raw.ReleaseDate, now),
		ReleaseDate:        raw.ReleaseDate,
		StockXURL:          raw.ResellLinks.StockX,
		GoatURL:            raw.ResellLinks.Goat,
		Thumbnail:          raw.Thumbnail,
		FetchedAt:          now,
	}, true
}

// PriceIncrease is the resale premium over retail in percent, one decimal.
func PriceIncrease(retail, resale float64) float64 {
	return round(((resale-retail)/retail)*100, 1)
}

func Profit(retail, resale float64) float64 {
	return round(resale-retail, 0)
}

func Grade(increase float64, t domain.PatternType) string {
	if t == domain.Collab {
		switch {
		case increase > 100:
			return "A+ (Hot Collab)"
		case increase > 50:
			return "A (Strong Collab)"
		case increase > 30:
			return "B+ (Good Collab)"
		default:
			return "B (Decent Collab)"
		}
	}
	switch {
	case increase > 50:
		return "A (Exceptional Brand)"
	case increase > 30:
		return "B+ (Strong Brand)"
	case increase > 20:
		return "B (Good Brand)"
	default:
		return "C (Average)"
	}
}

// IsVintage is false for dates it cannot parse.
func IsVintage(releaseDate string, now time.Time) bool {
	releaseDate = strings.TrimSpace(releaseDate)
	if releaseDate == "" {
		return false
	}
	for _, layout := range releaseLayouts {
		if t, err := time.Parse(layout, releaseDate); err == nil {
			return now.Sub(t).Hours()/24 > VintageAfterDays
		}
	}
	return false
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
