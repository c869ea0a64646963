package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

type PatternType string

const (
	Collab PatternType = "collab"
	Brand  PatternType = "brand"
)

// RankMode selects the primary ranking key.
type RankMode string

const (
	RankByType     RankMode = "type"
	RankByPriority RankMode = "priority"
)

type Pattern struct {
	Keyword     string      `json:"keyword"`
	Priority    int         `json:"priority"`
	Type        PatternType `json:"type"`
	AvgROI      float64     `json:"avgROI,omitempty"`
	SuccessRate float64     `json:"successRate,omitempty"`
}

// Price accepts a JSON number, a numeric string or null. Anything that does
// not parse to a finite number becomes 0.
type Price float64

func (p *Price) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*p = 0
		return nil
	}
	s := string(b)
	if b[0] == '"' {
		var raw string
		if err := json.Unmarshal(b, &raw); err != nil {
			*p = 0
			return nil
		}
		s = strings.TrimSpace(raw)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		*p = 0
		return nil
	}
	*p = Price(f)
	return nil
}

type Marketplaces struct {
	StockX       string `json:"stockX,omitempty"`
	Goat         string `json:"goat,omitempty"`
	FlightClub   string `json:"flightClub,omitempty"`
	StadiumGoods string `json:"stadiumGoods,omitempty"`
}

type ResellPrices struct {
	StockX       Price `json:"stockX"`
	Goat         Price `json:"goat"`
	FlightClub   Price `json:"flightClub"`
	StadiumGoods Price `json:"stadiumGoods"`
}

// RawProduct is a record as returned by the product search provider.
type RawProduct struct {
	ShoeName          string       `json:"shoeName"`
	Brand             string       `json:"brand"`
	StyleID           string       `json:"styleID"`
	Colorway          string       `json:"colorway"`
	RetailPrice       Price        `json:"retailPrice"`
	ReleaseDate       string       `json:"releaseDate"`
	Thumbnail         string       `json:"thumbnail"`
	ResellLinks       Marketplaces `json:"resellLinks"`
	LowestResellPrice ResellPrices `json:"lowestResellPrice"`
}

type Opportunity struct {
	Name               string      `json:"name"`
	StyleID            string      `json:"styleID"`
	Brand              string      `json:"brand"`
	RetailPrice        float64     `json:"retailPrice"`
	StockXPrice        float64     `json:"stockxPrice"`
	GoatPrice          float64     `json:"goatPrice"`
	PriceIncrease      float64     `json:"priceIncrease"`
	Profit             float64     `json:"profit"`
	MatchedPattern     string      `json:"matchedPattern"`
	PatternType        PatternType `json:"patternType"`
	Priority           int         `json:"priority"`
	ExpectedAvgROI     float64     `json:"expectedAvgROI,omitempty"`
	PatternSuccessRate float64     `json:"patternSuccessRate,omitempty"`
	InvestmentGrade    string      `json:"investmentGrade"`
	Vintage            bool        `json:"vintage"`
	ReleaseDate        string      `json:"releaseDate,omitempty"`
	StockXURL          string      `json:"stockxUrl"`
	GoatURL            string      `json:"goatUrl"`
	Thumbnail          string      `json:"thumbnail"`
	FetchedAt          time.Time   `json:"fetchedAt"`
}

type FetchError struct {
	Pattern string `json:"pattern"`
	Error   string `json:"error"`
}

type Summary struct {
	TotalOpportunities   int    `json:"totalOpportunities"`
	Collaborations       int    `json:"collaborations"`
	Brands               int    `json:"brands"`
	AvgPriceIncrease     string `json:"avgPriceIncrease"`
	TotalPotentialProfit string `json:"totalPotentialProfit"`
	SearchTime           string `json:"searchTime"`
}

type TrendingResult struct {
	RunID         string
	Opportunities []Opportunity
	Summary       Summary
	Errors        []FetchError
}

type DiagnosticResult struct {
	Success  bool         `json:"success"`
	Products []RawProduct `json:"products,omitempty"`
	Error    string       `json:"error,omitempty"`
}
