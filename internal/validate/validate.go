package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var reKeyword = regexp.MustCompile(`^[A-Za-z0-9 '\-]{1,50}$`)

// Keyword validates a search keyword: trims, then allows letters, digits,
// space, apostrophe and hyphen up to 50 characters.
func Keyword(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !reKeyword.MatchString(s) {
		return "", false
	}
	return s, true
}

// Limit parses a result count, falling back to def and clamping to max.
func Limit(s string, def, max int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return def
	}
	if n > max {
		return max
	}
	return n
}
