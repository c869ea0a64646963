package services

import "kicksranker/internal/domain"

// Dedupe keeps the first opportunity seen for each style ID, in order.
func Dedupe(opps []domain.Opportunity) []domain.Opportunity {
	seen := make(map[string]bool, len(opps))
	out := make([]domain.Opportunity, 0, len(opps))
	for _, o := range opps {
		if seen[o.StyleID] {
			continue
		}
		seen[o.StyleID] = true
		out = append(out, o)
	}
	return out
}
