package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"kicksranker/internal/domain"
)

type Config struct {
	Port            string
	ProviderURL     string
	LogFile         string
	PatternsFile    string
	Threshold       float64
	PerPattern      int
	TopN            int
	FetchTimeout    time.Duration
	FetchDelay      time.Duration
	RankMode        domain.RankMode
	Debug           bool
	RateLimitPerMin int
	ExcludeWords    []string
	Patterns        []domain.Pattern
}

// DefaultExcludeWords is the apparel vocabulary rejected by name.
var DefaultExcludeWords = []string{"hoodie", "shirt", "tee", "jacket", "pants", "shorts", "socks"}

// DefaultPatterns ranks collaborations ahead of brands by historical ROI.
var DefaultPatterns = []domain.Pattern{
	{Keyword: "Travis Scott", Priority: 1, Type: domain.Collab, AvgROI: 37.7, SuccessRate: 47.9},
	{Keyword: "Off-White", Priority: 2, Type: domain.Collab, AvgROI: 37.7, SuccessRate: 47.9},
	{Keyword: "Fragment", Priority: 3, Type: domain.Collab, AvgROI: 37.7, SuccessRate: 47.9},
	{Keyword: "Union", Priority: 4, Type: domain.Collab, AvgROI: 37.7, SuccessRate: 47.9},
	{Keyword: "Fear of God", Priority: 5, Type: domain.Brand, AvgROI: 20.5, SuccessRate: 28.7},
}

// Default returns the configuration used when no environment is set.
func Default() Config {
	return Config{
		Port:            "3000",
		ProviderURL:     "http://localhost:4000",
		Threshold:       20,
		PerPattern:      8,
		TopN:            10,
		FetchTimeout:    12 * time.Second,
		FetchDelay:      time.Second,
		RankMode:        domain.RankByType,
		RateLimitPerMin: 30,
		ExcludeWords:    append([]string(nil), DefaultExcludeWords...),
		Patterns:        append([]domain.Pattern(nil), DefaultPatterns...),
	}
}

func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("[config] no .env file, using process environment")
	}

	cfg := Default()
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("PROVIDER_URL"); v != "" {
		cfg.ProviderURL = strings.TrimRight(v, "/")
	}
	cfg.LogFile = os.Getenv("LOG_FILE")
	cfg.PatternsFile = os.Getenv("PATTERNS_FILE")

	var err error
	if cfg.Threshold, err = envFloat("THRESHOLD_PERCENT", cfg.Threshold); err != nil {
		return cfg, err
	}
	if cfg.PerPattern, err = envInt("PRODUCTS_PER_PATTERN", cfg.PerPattern); err != nil {
		return cfg, err
	}
	if cfg.TopN, err = envInt("TOP_N", cfg.TopN); err != nil {
		return cfg, err
	}
	if cfg.RateLimitPerMin, err = envInt("RATE_LIMIT_PER_MIN", cfg.RateLimitPerMin); err != nil {
		return cfg, err
	}
	if cfg.FetchTimeout, err = envDuration("FETCH_TIMEOUT", cfg.FetchTimeout); err != nil {
		return cfg, err
	}
	if cfg.FetchDelay, err = envDuration("FETCH_DELAY", cfg.FetchDelay); err != nil {
		return cfg, err
	}
	if v := os.Getenv("RANK_MODE"); v != "" {
		cfg.RankMode = domain.RankMode(strings.ToLower(strings.TrimSpace(v)))
	}
	if v := os.Getenv("DEBUG"); v != "" {
		if cfg.Debug, err = strconv.ParseBool(v); err != nil {
			return cfg, fmt.Errorf("DEBUG: %w", err)
		}
	}
	if v := os.Getenv("EXCLUDE_WORDS"); v != "" {
		cfg.ExcludeWords = splitWords(v)
	}

	if cfg.PatternsFile != "" {
		patterns, err := ReadPatterns(cfg.PatternsFile)
		if err != nil {
			return cfg, fmt.Errorf("patterns file %s: %w", cfg.PatternsFile, err)
		}
		cfg.Patterns = patterns
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	log.Printf("[config] PORT=%s PROVIDER_URL=%s THRESHOLD_PERCENT=%.1f PRODUCTS_PER_PATTERN=%d TOP_N=%d FETCH_TIMEOUT=%s FETCH_DELAY=%s RANK_MODE=%s DEBUG=%t PATTERNS=%d",
		cfg.Port, cfg.ProviderURL, cfg.Threshold, cfg.PerPattern, cfg.TopN, cfg.FetchTimeout, cfg.FetchDelay, cfg.RankMode, cfg.Debug, len(cfg.Patterns))
	return cfg, nil
}

func (c Config) Validate() error {
	if c.RankMode != domain.RankByType && c.RankMode != domain.RankByPriority {
		return fmt.Errorf("RANK_MODE must be %q or %q, got %q", domain.RankByType, domain.RankByPriority, c.RankMode)
	}
	if c.PerPattern <= 0 {
		return fmt.Errorf("PRODUCTS_PER_PATTERN must be positive")
	}
	if c.TopN <= 0 {
		return fmt.Errorf("TOP_N must be positive")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive")
	}
	if c.FetchDelay < 0 {
		return fmt.Errorf("FETCH_DELAY must not be negative")
	}
	if len(c.Patterns) == 0 {
		return fmt.Errorf("no patterns configured")
	}
	for i, p := range c.Patterns {
		if strings.TrimSpace(p.Keyword) == "" {
			return fmt.Errorf("pattern %d: empty keyword", i)
		}
		if p.Type != domain.Collab && p.Type != domain.Brand {
			return fmt.Errorf("pattern %q: unknown type %q", p.Keyword, p.Type)
		}
	}
	return nil
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

// envDuration accepts Go duration strings ("12s") or a bare number of seconds.
func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	if secs, err := strconv.ParseFloat(v, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func splitWords(s string) []string {
	var out []string
	for _, w := range strings.Split(s, ",") {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			out = append(out, w)
		}
	}
	return out
}
