package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"kicksranker/internal/domain"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, k := range []string{"PORT", "PROVIDER_URL", "THRESHOLD_PERCENT", "PRODUCTS_PER_PATTERN", "TOP_N",
		"FETCH_TIMEOUT", "FETCH_DELAY", "RANK_MODE", "DEBUG", "EXCLUDE_WORDS", "PATTERNS_FILE", "RATE_LIMIT_PER_MIN"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "3000", cfg.Port)
	require.Equal(t, 20.0, cfg.Threshold)
	require.Equal(t, 8, cfg.PerPattern)
	require.Equal(t, 10, cfg.TopN)
	require.Equal(t, 12*time.Second, cfg.FetchTimeout)
	require.Equal(t, time.Second, cfg.FetchDelay)
	require.Equal(t, domain.RankByType, cfg.RankMode)
	require.False(t, cfg.Debug)
	require.Len(t, cfg.Patterns, 5)
	require.Equal(t, DefaultExcludeWords, cfg.ExcludeWords)
}

func TestLoadFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "8088")
	t.Setenv("PROVIDER_URL", "http://sneaks:4000/")
	t.Setenv("THRESHOLD_PERCENT", "15")
	t.Setenv("PRODUCTS_PER_PATTERN", "20")
	t.Setenv("TOP_N", "15")
	t.Setenv("FETCH_TIMEOUT", "30s")
	t.Setenv("FETCH_DELAY", "2")
	t.Setenv("RANK_MODE", "Priority")
	t.Setenv("DEBUG", "true")
	t.Setenv("EXCLUDE_WORDS", "Hoodie, beanie ,")
	t.Setenv("PATTERNS_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8088", cfg.Port)
	require.Equal(t, "http://sneaks:4000", cfg.ProviderURL)
	require.Equal(t, 15.0, cfg.Threshold)
	require.Equal(t, 20, cfg.PerPattern)
	require.Equal(t, 15, cfg.TopN)
	require.Equal(t, 30*time.Second, cfg.FetchTimeout)
	require.Equal(t, 2*time.Second, cfg.FetchDelay)
	require.Equal(t, domain.RankByPriority, cfg.RankMode)
	require.True(t, cfg.Debug)
	require.Equal(t, []string{"hoodie", "beanie"}, cfg.ExcludeWords)
}

func TestLoadRejectsBadValues(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PATTERNS_FILE", "")

	t.Setenv("RANK_MODE", "random")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("RANK_MODE", "")
	t.Setenv("TOP_N", "ten")
	_, err = Load()
	require.ErrorContains(t, err, "TOP_N")
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TOP_N=3\n"), 0o644))
	os.Unsetenv("TOP_N")
	t.Cleanup(func() { os.Unsetenv("TOP_N") })
	t.Setenv("PATTERNS_FILE", "")
	t.Setenv("RANK_MODE", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 3, cfg.TopN)
}

func TestReadPatternsWithLocalOverride(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "patterns.json5")
	require.NoError(t, os.WriteFile(base, []byte(`{
		// shipped defaults
		patterns: [
			{keyword: "Travis Scott", priority: 1, type: "collab", avgROI: 37.7},
			{keyword: "Vans", priority: 2, type: "Brand"},
		],
	}`), 0o644))

	patterns, err := ReadPatterns(base)
	require.NoError(t, err)
	require.Len(t, patterns, 2)
	require.Equal(t, domain.Brand, patterns[1].Type)
	require.Equal(t, 37.7, patterns[0].AvgROI)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "patterns.local.json5"), []byte(`{
		patterns: [{keyword: "Sacai", priority: 1, type: "collab"}],
	}`), 0o644))
	patterns, err = ReadPatterns(base)
	require.NoError(t, err)
	require.Len(t, patterns, 1)
	require.Equal(t, "Sacai", patterns[0].Keyword)
}

func TestReadPatternsMissing(t *testing.T) {
	_, err := ReadPatterns(filepath.Join(t.TempDir(), "nope.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidatePatterns(t *testing.T) {
	cfg := Default()
	cfg.Patterns = []domain.Pattern{{Keyword: "Union", Type: "retro"}}
	require.Error(t, cfg.Validate())

	cfg.Patterns = nil
	require.Error(t, cfg.Validate())

	require.NoError(t, Default().Validate())
}

func TestShippedPatternsMatchDefaults(t *testing.T) {
	patterns, err := ReadPatterns("../../configs/patterns.json5")
	require.NoError(t, err)
	require.Equal(t, DefaultPatterns, patterns)
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
